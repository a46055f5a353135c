package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"ecom_admin_v1/internal/controller"
	"ecom_admin_v1/internal/middleware"
	"ecom_admin_v1/internal/model"
	"ecom_admin_v1/internal/repository"
	"ecom_admin_v1/internal/router"
	"ecom_admin_v1/internal/service"
	"ecom_admin_v1/internal/task"
	"ecom_admin_v1/pkg/config"
	"ecom_admin_v1/pkg/database"
	"ecom_admin_v1/pkg/identity"
	"ecom_admin_v1/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径，缺省时查找 ./config.yaml")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// 3. 初始化数据库
	db, err := database.InitDB(cfg.Database, zlog, model.All()...)
	if err != nil {
		zlog.Fatal("初始化数据库失败", zap.Error(err))
	}

	// 4. 初始化依赖
	deps := initDependencies(cfg, db, zlog)

	// 5. 启动定时任务
	tasks, err := initTasks(cfg, deps, zlog)
	if err != nil {
		zlog.Fatal("初始化定时任务失败", zap.Error(err))
	}
	tasks.Start()

	// 6. 初始化路由
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.Recovery(zlog), middleware.RequestLogger(zlog))
	router.InitRoutes(r, deps.Controllers, router.Options{
		Verifier:     deps.Verifier,
		Limiter:      deps.Limiter,
		AuthCooldown: cfg.RateLimit.AuthCooldown,
	})

	// 7. 启动服务
	startServer(cfg.Server, r, tasks, zlog)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
	Verifier    *middleware.TokenVerifier
	Limiter     *middleware.CooldownLimiter
}

// Repositories 仓库集合
type Repositories struct {
	User    repository.UserRepository
	Address repository.AddressRepository
	Product repository.ProductRepository
	Sku     repository.SkuRepository
	Review  repository.ReviewRepository
	Order   repository.OrderRepository
	Health  *repository.HealthRepo
}

// Services 服务集合
type Services struct {
	Auth        *service.AuthService
	Health      *service.HealthService
	User        *service.UserService
	Address     *service.AddressService
	Product     *service.ProductService
	Sku         *service.SkuService
	Review      *service.ReviewService
	Order       *service.OrderService
	EditSession *service.EditSessionService
}

// ==================== 初始化函数 ====================

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB, zlog *zap.Logger) *Dependencies {
	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- 外部服务 --------
	idp := identity.NewClient(identity.Config{
		BaseURL: cfg.Identity.BaseURL,
		AnonKey: cfg.Identity.AnonKey,
		Timeout: cfg.Identity.Timeout,
	})

	// -------- 业务服务 --------
	services := &Services{
		Auth:    service.NewAuthService(idp, zlog),
		Health:  service.NewHealthService(repos.Health),
		User:    service.NewUserService(repos.User),
		Address: service.NewAddressService(repos.User, repos.Address, zlog),
		Product: service.NewProductService(repos.Product, zlog),
		Sku:     service.NewSkuService(repos.Product, repos.Sku),
		Review:  service.NewReviewService(repos.Product, repos.Review),
		Order:   service.NewOrderService(repos.Order, zlog),
	}
	services.EditSession = service.NewEditSessionService(services.Product, cfg.Editor.SessionTTL, zlog)

	verifier := middleware.NewTokenVerifier(cfg.Identity.JWTSecret)

	// -------- Controller 层 --------
	controllers := initControllers(services, verifier, zlog)

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		Verifier:    verifier,
		Limiter:     middleware.NewCooldownLimiter(),
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    repository.NewUserRepo(db),
		Address: repository.NewAddressRepo(db),
		Product: repository.NewProductRepo(db),
		Sku:     repository.NewSkuRepo(db),
		Review:  repository.NewReviewRepo(db),
		Order:   repository.NewOrderRepo(db),
		Health:  repository.NewHealthRepo(db),
	}
}

// initControllers 初始化所有控制器
func initControllers(svc *Services, verifier *middleware.TokenVerifier, zlog *zap.Logger) *router.Controllers {
	return &router.Controllers{
		Auth:        controller.NewAuthController(svc.Auth, verifier, zlog),
		Health:      controller.NewHealthController(svc.Health, zlog),
		Product:     controller.NewProductController(svc.Product, zlog),
		Sku:         controller.NewSkuController(svc.Sku, zlog),
		Review:      controller.NewReviewController(svc.Review, zlog),
		User:        controller.NewUserController(svc.User, zlog),
		Address:     controller.NewAddressController(svc.Address, zlog),
		Order:       controller.NewOrderController(svc.Order, zlog),
		ProductEdit: controller.NewProductEditController(svc.EditSession, zlog),
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(cfg *config.Config, deps *Dependencies, zlog *zap.Logger) (*task.TaskManager, error) {
	tmCfg := task.DefaultConfig()
	tmCfg.AddressAuditEnabled = cfg.Tasks.AddressAuditEnabled
	tmCfg.AddressAuditSpec = cfg.Tasks.AddressAuditSpec

	idle := 10 * cfg.RateLimit.AuthCooldown
	if idle < time.Minute {
		idle = time.Minute
	}

	return task.NewTaskManager(&task.TaskManagerDeps{
		AddressRepairer: deps.Services.Address,
		Purgers: map[string]task.Purger{
			"edit_sessions": deps.Services.EditSession.PurgeExpired,
			"token_claims":  deps.Verifier.PurgeExpired,
			"rate_limiter":  func() int { return deps.Limiter.PurgeIdle(idle) },
		},
	}, tmCfg, zlog)
}

// ==================== 服务启动 ====================

// startServer 启动服务并在收到退出信号后优雅关闭
func startServer(cfg config.ServerConfig, r *gin.Engine, tasks *task.TaskManager, zlog *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 异步启动服务
	go func() {
		zlog.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("服务强制关闭", zap.Error(err))
	}
	tasks.Stop(ctx)

	zlog.Info("服务已退出")
}
