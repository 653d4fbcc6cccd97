package middleware

import (
	"crypto/md5"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MorseWayne/boutique_shop/internal/cache"
	"github.com/MorseWayne/boutique_shop/internal/resp"
)

// IdempotencyConfig 幂等性中间件配置
type IdempotencyConfig struct {
	// 幂等键头名称
	IdempotencyKeyHeader string

	// 不做幂等检查的请求方法
	SkipMethods []string

	// 会话Cookie名称，用于生成自动幂等键
	SessionCookie string

	// 幂等键缓存TTL
	CacheTTL time.Duration
}

// DefaultIdempotencyConfig 默认幂等性配置
func DefaultIdempotencyConfig() *IdempotencyConfig {
	return &IdempotencyConfig{
		IdempotencyKeyHeader: "X-Idempotency-Key",
		SkipMethods:          []string{"GET", "HEAD", "OPTIONS"},
		SessionCookie:        "cart_session",
		CacheTTL:             time.Minute,
	}
}

// Idempotency 幂等性中间件。
// 客户端携带 X-Idempotency-Key 时，同一键在TTL内的重复写请求会被拒绝；
// 未携带时基于方法、路径和会话自动生成短周期幂等键。
func Idempotency(store cache.Cache, config ...*IdempotencyConfig) gin.HandlerFunc {
	cfg := DefaultIdempotencyConfig()
	if len(config) > 0 && config[0] != nil {
		cfg = config[0]
	}

	return func(c *gin.Context) {
		method := c.Request.Method
		for _, skipMethod := range cfg.SkipMethods {
			if method == skipMethod {
				c.Next()
				return
			}
		}

		key := c.GetHeader(cfg.IdempotencyKeyHeader)
		if key == "" {
			// 客户端未显式声明幂等键时只生成标记，不做去重
			c.Set("idempotency_key", generateIdempotencyKey(c, cfg.SessionCookie))
			c.Next()
			return
		}
		cacheKey := "idempotency:" + key

		exists, err := store.Exists(c.Request.Context(), cacheKey)
		if err != nil {
			// 缓存不可用时放行，幂等检查退化为尽力而为
			c.Next()
			return
		}

		if exists {
			requestID := RequestIDFromContext(c.Request.Context())
			resp.Error(c.Writer, http.StatusConflict, resp.CodeInvalidParam, "duplicate request", requestID, "")
			c.Abort()
			return
		}

		if err := store.Set(c.Request.Context(), cacheKey, []byte("1"), cfg.CacheTTL); err == nil {
			c.Set("idempotency_key", key)
		}

		c.Next()
	}
}

// generateIdempotencyKey 生成幂等键
func generateIdempotencyKey(c *gin.Context, sessionCookie string) string {
	session := ""
	if v, err := c.Cookie(sessionCookie); err == nil {
		session = v
	}

	// 按分钟取整，同一分钟内的相同请求有相同的幂等键
	content := fmt.Sprintf("%s:%s:%s:%d",
		c.Request.Method,
		c.Request.URL.Path,
		session,
		time.Now().Unix()/60)

	hash := md5.Sum([]byte(content))
	return fmt.Sprintf("auto_%x", hash)[:16]
}
