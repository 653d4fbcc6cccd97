// Package cart 实现购物车聚合引擎与持久化。
package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MorseWayne/boutique_shop/internal/cache"
	"github.com/MorseWayne/boutique_shop/internal/domain"
)

// ErrNoSavedCart 表示存储中没有已保存的购物车
var ErrNoSavedCart = errors.New("cart: no saved cart")

// Store 定义购物车行项目序列的持久化接口。
// 整个序列作为一个值存取：每次变更全量覆盖写入，加载时全量读出。
type Store interface {
	// Load 读取已保存的行项目序列。
	// 没有保存过返回 ErrNoSavedCart；数据损坏返回反序列化错误。
	Load(ctx context.Context) ([]domain.CartItem, error)

	// Save 全量写入行项目序列，在返回前完成持久化
	Save(ctx context.Context, items []domain.CartItem) error
}

// cacheStore 基于 cache.Cache 的持久化实现。
// 每个会话一个固定键，对应原始系统中浏览器 localStorage 的单键存储。
type cacheStore struct {
	cache cache.Cache
	key   string
	ttl   time.Duration
}

// NewCacheStore 创建基于键值存储的购物车持久化实例。
// ttl 为 0 表示购物车永不过期。
func NewCacheStore(c cache.Cache, key string, ttl time.Duration) Store {
	return &cacheStore{cache: c, key: key, ttl: ttl}
}

func (s *cacheStore) Load(ctx context.Context) ([]domain.CartItem, error) {
	var items []domain.CartItem
	err := s.cache.Get(ctx, s.key, &items)
	if err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, ErrNoSavedCart
		}
		return nil, fmt.Errorf("load cart %s: %w", s.key, err)
	}
	return items, nil
}

func (s *cacheStore) Save(ctx context.Context, items []domain.CartItem) error {
	if err := s.cache.Set(ctx, s.key, items, s.ttl); err != nil {
		return fmt.Errorf("save cart %s: %w", s.key, err)
	}
	return nil
}
