// Package limiter 限流中间件实现
package limiter

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MorseWayne/boutique_shop/internal/resp"
)

// MiddlewareConfig 中间件配置
type MiddlewareConfig struct {
	// 限流器
	Limiter Limiter

	// Key生成函数
	KeyGenerator func(*gin.Context) string

	// 错误处理函数
	ErrorHandler func(*gin.Context, error)

	// 限流回调函数
	OnLimitReached func(*gin.Context, *LimitResult)

	// 是否跳过限流检查
	Skip func(*gin.Context) bool

	// 响应头配置
	Headers *HeaderConfig
}

// HeaderConfig 响应头配置
type HeaderConfig struct {
	// 是否添加限流头
	Enable bool

	RemainingHeader  string // X-RateLimit-Remaining
	RetryAfterHeader string // Retry-After
}

// DefaultHeaderConfig 默认头配置
func DefaultHeaderConfig() *HeaderConfig {
	return &HeaderConfig{
		Enable:           true,
		RemainingHeader:  "X-RateLimit-Remaining",
		RetryAfterHeader: "Retry-After",
	}
}

// DefaultKeyGenerator 默认Key生成器（基于IP）
func DefaultKeyGenerator(c *gin.Context) string {
	return fmt.Sprintf("global:%s", c.ClientIP())
}

// SessionKeyGenerator 会话Key生成器。
// 优先使用购物车会话Cookie，游客无Cookie时退回IP维度。
func SessionKeyGenerator(cookieName string) func(*gin.Context) string {
	return func(c *gin.Context) string {
		if sessionID, err := c.Cookie(cookieName); err == nil && sessionID != "" {
			return fmt.Sprintf("session:%s", sessionID)
		}
		return fmt.Sprintf("ip:%s", c.ClientIP())
	}
}

// RateLimitMiddleware 创建限流中间件
func RateLimitMiddleware(config *MiddlewareConfig) gin.HandlerFunc {
	// 设置默认值
	if config.KeyGenerator == nil {
		config.KeyGenerator = DefaultKeyGenerator
	}

	if config.ErrorHandler == nil {
		config.ErrorHandler = defaultErrorHandler
	}

	if config.OnLimitReached == nil {
		config.OnLimitReached = defaultOnLimitReached
	}

	if config.Headers == nil {
		config.Headers = DefaultHeaderConfig()
	}

	return func(c *gin.Context) {
		// 检查是否跳过限流
		if config.Skip != nil && config.Skip(c) {
			c.Next()
			return
		}

		// 生成限流Key
		key := config.KeyGenerator(c)

		// 执行限流检查
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		result, err := config.Limiter.Allow(ctx, key)
		if err != nil {
			config.ErrorHandler(c, err)
			return
		}

		// 设置响应头
		if config.Headers.Enable {
			setRateLimitHeaders(c, result, config.Headers)
		}

		// 检查是否被限流
		if !result.Allowed {
			config.OnLimitReached(c, result)
			return
		}

		c.Next()
	}
}

// CartRateLimitMiddleware 购物车写操作限流中间件。
// 以会话为限流维度，防止单个会话高频刷购物车接口。
func CartRateLimitMiddleware(l Limiter, sessionCookie string) gin.HandlerFunc {
	config := &MiddlewareConfig{
		Limiter:      l,
		KeyGenerator: SessionKeyGenerator(sessionCookie),
		OnLimitReached: func(c *gin.Context, result *LimitResult) {
			requestID := c.GetString("request_id")
			resp.Error(c.Writer, http.StatusTooManyRequests, resp.CodeInvalidParam,
				"请求过于频繁，请稍后重试", requestID, "")
			c.Abort()
		},
		Headers: DefaultHeaderConfig(),
	}

	return RateLimitMiddleware(config)
}

// setRateLimitHeaders 设置限流相关的响应头
func setRateLimitHeaders(c *gin.Context, result *LimitResult, headers *HeaderConfig) {
	if headers.RemainingHeader != "" {
		c.Header(headers.RemainingHeader, strconv.FormatInt(result.Remaining, 10))
	}

	if headers.RetryAfterHeader != "" && result.RetryAfter > 0 {
		c.Header(headers.RetryAfterHeader, strconv.FormatInt(int64(result.RetryAfter.Seconds()), 10))
	}
}

// defaultErrorHandler 默认错误处理器。
// 限流依赖的Redis异常时放行请求，不让限流故障放大为业务故障。
func defaultErrorHandler(c *gin.Context, err error) {
	c.Next()
}

// defaultOnLimitReached 默认限流回调
func defaultOnLimitReached(c *gin.Context, result *LimitResult) {
	requestID := c.GetString("request_id")
	resp.Error(c.Writer, http.StatusTooManyRequests, resp.CodeInvalidParam,
		"请求过于频繁，请稍后重试", requestID, "")
	c.Abort()
}
