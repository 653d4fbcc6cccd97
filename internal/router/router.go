// Package router 提供 HTTP 路由设置和中间件配置功能
package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MorseWayne/boutique_shop/internal/api"
	"github.com/MorseWayne/boutique_shop/internal/cache"
	"github.com/MorseWayne/boutique_shop/internal/config"
	"github.com/MorseWayne/boutique_shop/internal/limiter"
	mw "github.com/MorseWayne/boutique_shop/internal/middleware"
)

// Dependencies 包含路由设置所需的所有依赖
type Dependencies struct {
	CatalogHandler *api.CatalogHandler
	CartHandler    *api.CartHandler

	// Cache 用于购物车写接口的幂等键存储
	Cache cache.Cache

	// CartLimiter 购物车接口限流器，为nil时不启用限流
	CartLimiter limiter.Limiter
}

// Router 路由器接口
type Router interface {
	Setup(cfg *config.Config, deps *Dependencies, lg *zap.Logger) http.Handler
}

// GinRouter Gin路由器实现
type GinRouter struct {
	engine *gin.Engine
	deps   *Dependencies
	logger *zap.Logger
	cfg    *config.Config
}

// New 创建新的路由器实例
func New() Router {
	return &GinRouter{}
}

// Setup 设置路由和中间件
func (r *GinRouter) Setup(cfg *config.Config, deps *Dependencies, lg *zap.Logger) http.Handler {
	// 根据环境设置 Gin 模式
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	r.engine = gin.New()
	r.deps = deps
	r.logger = lg
	r.cfg = cfg

	r.setupMiddleware()
	r.setupRoutes()

	// 外层标准库中间件链：请求进入顺序为
	// access log → CORS → timeout → recovery → request ID → gin
	handler := mw.RequestID(r.engine)
	handler = mw.Recovery(lg)(handler)
	handler = mw.Timeout(cfg.App.RequestTimeout)(handler)
	handler = mw.CORS(mw.CORSConfig{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: cfg.CORS.AllowedMethods,
		AllowedHeaders: cfg.CORS.AllowedHeaders,
	})(handler)
	handler = mw.AccessLog(lg)(handler)

	return handler
}

// setupMiddleware 设置 Gin 中间件
func (r *GinRouter) setupMiddleware() {
	// panic兜底，外层 Recovery 之外再保一层gin自身的恢复
	r.engine.Use(gin.Recovery())

	// 请求日志走结构化 logger
	r.engine.Use(r.ginLogger())
}

// setupRoutes 设置所有路由
func (r *GinRouter) setupRoutes() {
	// 健康检查
	r.engine.GET("/healthz", r.healthCheck)

	// API v1 路由组
	v1 := r.engine.Group("/api/v1")
	{
		// 商品目录路由（公开、只读）
		products := v1.Group("/products")
		{
			products.GET("", r.wrapHandler(r.deps.CatalogHandler.ListProducts))
			products.GET("/categories", r.wrapHandler(r.deps.CatalogHandler.GetCategories))
			products.GET("/featured", r.wrapHandler(r.deps.CatalogHandler.GetFeatured))
			products.GET("/new", r.wrapHandler(r.deps.CatalogHandler.GetNewArrivals))
			products.GET("/:id", r.wrapHandler(r.deps.CatalogHandler.GetProduct))
			products.GET("/:id/related", r.wrapHandler(r.deps.CatalogHandler.GetRelated))
		}

		// 购物车路由（基于会话Cookie）
		cart := v1.Group("/cart")
		if r.deps.CartLimiter != nil {
			cart.Use(limiter.CartRateLimitMiddleware(r.deps.CartLimiter, r.cfg.Cart.SessionCookie))
		}
		if r.deps.Cache != nil {
			cart.Use(mw.Idempotency(r.deps.Cache, &mw.IdempotencyConfig{
				IdempotencyKeyHeader: "X-Idempotency-Key",
				SkipMethods:          []string{"GET", "HEAD", "OPTIONS"},
				SessionCookie:        r.cfg.Cart.SessionCookie,
				CacheTTL:             time.Minute,
			}))
		}
		{
			cart.GET("", r.wrapHandler(r.deps.CartHandler.GetCart))
			cart.DELETE("", r.wrapHandler(r.deps.CartHandler.ClearCart))
			cart.POST("/items", r.wrapHandler(r.deps.CartHandler.AddItem))
			cart.PUT("/items/:id", r.wrapHandler(r.deps.CartHandler.UpdateItem))
			cart.DELETE("/items/:id", r.wrapHandler(r.deps.CartHandler.RemoveItem))
		}
	}
}

// healthCheck 健康检查处理器
func (r *GinRouter) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": r.cfg.App.Name,
		"version": r.cfg.App.Version,
	})
}

// wrapHandler 将标准的 http.HandlerFunc 包装为 gin.HandlerFunc
func (r *GinRouter) wrapHandler(handler func(http.ResponseWriter, *http.Request)) gin.HandlerFunc {
	return gin.WrapF(handler)
}

// ginLogger 将 Gin 请求日志接入 zap
func (r *GinRouter) ginLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		r.logger.Debug("gin request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
