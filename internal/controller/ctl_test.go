package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ecom_admin_v1/internal/middleware"
	"ecom_admin_v1/internal/model"
	"ecom_admin_v1/internal/repository"
	"ecom_admin_v1/internal/service"
)

// ==================== 测试辅助 ====================

const testOwnerHeader = "X-Test-User"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "连接测试数据库失败")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.All()...))
	return db
}

// fakeAuth 以请求头模拟已登录用户
func fakeAuth(c *gin.Context) {
	owner := c.GetHeader(testOwnerHeader)
	if owner == "" {
		owner = "admin-1"
	}
	c.Set(middleware.ContextKeyUserID, owner)
	c.Next()
}

func setupRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	productSvc := service.NewProductService(productRepo, log)

	products := NewProductController(productSvc, log)
	skus := NewSkuController(service.NewSkuService(productRepo, repository.NewSkuRepo(db)), log)
	reviews := NewReviewController(service.NewReviewService(productRepo, repository.NewReviewRepo(db)), log)
	users := NewUserController(service.NewUserService(userRepo), log)
	addresses := NewAddressController(service.NewAddressService(userRepo, repository.NewAddressRepo(db), log), log)
	orders := NewOrderController(service.NewOrderService(repository.NewOrderRepo(db), log), log)
	health := NewHealthController(service.NewHealthService(repository.NewHealthRepo(db)), log)
	edits := NewProductEditController(service.NewEditSessionService(productSvc, time.Hour, log), log)

	r := gin.New()
	api := r.Group("/api", fakeAuth)
	api.GET("/health/db", health.DB)

	api.GET("/products", products.List)
	api.POST("/products", products.Create)
	api.GET("/products/:id", products.Get)
	api.PUT("/products/:id", products.Update)
	api.DELETE("/products/:id", products.Delete)
	api.GET("/products/:id/skus", skus.List)
	api.POST("/products/:id/skus", skus.Create)
	api.PUT("/products/:id/skus/:skuId", skus.Update)
	api.DELETE("/products/:id/skus/:skuId", skus.Delete)
	api.GET("/products/:id/reviews", reviews.List)
	api.POST("/products/:id/reviews/:reviewId/reply", reviews.Reply)
	api.PATCH("/products/:id/reviews/:reviewId/status", reviews.UpdateStatus)

	api.GET("/users/:id", users.Get)
	api.PATCH("/users/:id", users.Update)
	api.GET("/users/:id/addresses", addresses.List)
	api.POST("/users/:id/addresses", addresses.Create)
	api.PUT("/users/:id/addresses/:addressId/default", addresses.SetDefault)
	api.DELETE("/users/:id/addresses/:addressId", addresses.Delete)

	api.GET("/orders", orders.List)
	api.GET("/orders/:id", orders.Get)
	api.POST("/orders/:id/pay", orders.Pay)
	api.POST("/orders/:id/ship", orders.Ship)
	api.POST("/orders/:id/complete", orders.Complete)
	api.POST("/orders/:id/cancel", orders.Cancel)

	api.POST("/product-edits", edits.Open)
	api.GET("/product-edits/:sid", edits.Get)
	api.DELETE("/product-edits/:sid", edits.Cancel)
	api.POST("/product-edits/:sid/save", edits.Save)
	api.POST("/product-edits/:sid/specs", edits.AddSpec)
	api.PATCH("/product-edits/:sid/specs/:index", edits.UpdateSpec)
	api.DELETE("/product-edits/:sid/specs/:index", edits.RemoveSpec)
	api.POST("/product-edits/:sid/specs/:index/move", edits.MoveSpec)
	api.POST("/product-edits/:sid/specs/:index/values", edits.AddSpecValue)
	api.DELETE("/product-edits/:sid/specs/:index/values/:vindex", edits.RemoveSpecValue)
	api.POST("/product-edits/:sid/images", edits.AddImage)
	api.POST("/product-edits/:sid/image-batch", edits.AddImagesBatch)
	api.DELETE("/product-edits/:sid/images/:index", edits.RemoveImage)
	api.POST("/product-edits/:sid/images/:index/move", edits.MoveImage)
	return r
}

type testResp struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// doJSON 发送请求，body 为 nil 时不带请求体
func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, headers ...string) (int, testResp) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp testResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func decode(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v))
}
