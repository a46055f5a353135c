package router

import (
	"time"

	"github.com/gin-gonic/gin"

	"ecom_admin_v1/internal/controller"
	"ecom_admin_v1/internal/middleware"
)

// Controllers 路由依赖的全部控制器
type Controllers struct {
	Auth        *controller.AuthController
	Health      *controller.HealthController
	Product     *controller.ProductController
	Sku         *controller.SkuController
	Review      *controller.ReviewController
	User        *controller.UserController
	Address     *controller.AddressController
	Order       *controller.OrderController
	ProductEdit *controller.ProductEditController
}

// Options 路由级中间件配置
type Options struct {
	Verifier     *middleware.TokenVerifier
	Limiter      *middleware.CooldownLimiter
	AuthCooldown time.Duration
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctl *Controllers, opts Options) {
	api := r.Group("/api")

	// health 无需登录
	api.GET("/health/db", ctl.Health.DB)

	// auth 鉴权组，注册与登录按 IP 限流
	auth := api.Group("/auth")
	{
		// POST /api/auth/register
		auth.POST("/register", middleware.CooldownByIP(opts.Limiter, "register", opts.AuthCooldown), ctl.Auth.Register)
		// POST /api/auth/login
		auth.POST("/login", middleware.CooldownByIP(opts.Limiter, "login", opts.AuthCooldown), ctl.Auth.Login)

		auth.POST("/logout", middleware.Auth(opts.Verifier), ctl.Auth.Logout)
		auth.GET("/me", middleware.Auth(opts.Verifier), ctl.Auth.Me)
	}

	// 以下接口需要登录
	admin := api.Group("", middleware.Auth(opts.Verifier))

	// product 商品组，SKU 与评论挂在商品下
	products := admin.Group("/products")
	{
		products.GET("", ctl.Product.List)
		products.POST("", ctl.Product.Create)
		products.GET("/:id", ctl.Product.Get)
		products.PUT("/:id", ctl.Product.Update)
		products.DELETE("/:id", ctl.Product.Delete)

		products.GET("/:id/skus", ctl.Sku.List)
		products.POST("/:id/skus", ctl.Sku.Create)
		products.PUT("/:id/skus/:skuId", ctl.Sku.Update)
		products.DELETE("/:id/skus/:skuId", ctl.Sku.Delete)

		products.GET("/:id/reviews", ctl.Review.List)
		products.POST("/:id/reviews/:reviewId/reply", ctl.Review.Reply)
		products.PATCH("/:id/reviews/:reviewId/status", ctl.Review.UpdateStatus)
		products.DELETE("/:id/reviews/:reviewId", ctl.Review.Delete)
	}

	// product-edits 商品编辑会话
	edits := admin.Group("/product-edits")
	{
		edits.POST("", ctl.ProductEdit.Open)
		edits.GET("/:sid", ctl.ProductEdit.Get)
		edits.DELETE("/:sid", ctl.ProductEdit.Cancel)
		edits.POST("/:sid/save", ctl.ProductEdit.Save)

		edits.POST("/:sid/specs", ctl.ProductEdit.AddSpec)
		edits.PATCH("/:sid/specs/:index", ctl.ProductEdit.UpdateSpec)
		edits.DELETE("/:sid/specs/:index", ctl.ProductEdit.RemoveSpec)
		edits.POST("/:sid/specs/:index/move", ctl.ProductEdit.MoveSpec)
		edits.POST("/:sid/specs/:index/values", ctl.ProductEdit.AddSpecValue)
		edits.DELETE("/:sid/specs/:index/values/:vindex", ctl.ProductEdit.RemoveSpecValue)

		edits.POST("/:sid/images", ctl.ProductEdit.AddImage)
		edits.POST("/:sid/image-batch", ctl.ProductEdit.AddImagesBatch)
		edits.DELETE("/:sid/images/:index", ctl.ProductEdit.RemoveImage)
		edits.POST("/:sid/images/:index/move", ctl.ProductEdit.MoveImage)
	}

	// users 用户与收货地址
	users := admin.Group("/users")
	{
		users.GET("", ctl.User.List)
		users.GET("/:id", ctl.User.Get)
		users.PATCH("/:id", ctl.User.Update)

		users.GET("/:id/addresses", ctl.Address.List)
		users.POST("/:id/addresses", ctl.Address.Create)
		users.PATCH("/:id/addresses/:addressId", ctl.Address.Update)
		users.PUT("/:id/addresses/:addressId/default", ctl.Address.SetDefault)
		users.DELETE("/:id/addresses/:addressId", ctl.Address.Delete)
	}

	// orders 订单
	orders := admin.Group("/orders")
	{
		orders.GET("", ctl.Order.List)
		orders.GET("/:id", ctl.Order.Get)
		orders.POST("/:id/pay", ctl.Order.Pay)
		orders.POST("/:id/ship", ctl.Order.Ship)
		orders.POST("/:id/complete", ctl.Order.Complete)
		orders.POST("/:id/cancel", ctl.Order.Cancel)
	}
}
