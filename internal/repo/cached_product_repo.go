// Package repo 提供带缓存的商品仓储实现
package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/MorseWayne/boutique_shop/internal/cache"
	"github.com/MorseWayne/boutique_shop/internal/domain"
)

// CachedProductRepository 带缓存的商品仓储。
// 装饰基础仓储：单品与全量目录的读取结果写入缓存层，
// 目录只读，因此没有失效路径，只依赖TTL过期。
type CachedProductRepository struct {
	repo  ProductRepository
	cache cache.Cache
	ttl   time.Duration
}

// NewCachedProductRepository 创建带缓存的商品仓储
func NewCachedProductRepository(repo ProductRepository, c cache.Cache, ttl time.Duration) ProductRepository {
	return &CachedProductRepository{
		repo:  repo,
		cache: c,
		ttl:   ttl,
	}
}

// ListAll 返回完整目录（带缓存）
func (r *CachedProductRepository) ListAll() ([]*domain.Product, error) {
	ctx := context.Background()
	cacheKey := "catalog:products:all"

	var products []*domain.Product
	if err := r.cache.Get(ctx, cacheKey, &products); err == nil {
		return products, nil
	}

	products, err := r.repo.ListAll()
	if err != nil {
		return nil, err
	}

	_ = r.cache.Set(ctx, cacheKey, products, r.ttl)
	return products, nil
}

// GetByID 根据ID获取商品（带缓存）
func (r *CachedProductRepository) GetByID(id int64) (*domain.Product, error) {
	ctx := context.Background()
	cacheKey := r.productCacheKey(id)

	var product domain.Product
	if err := r.cache.Get(ctx, cacheKey, &product); err == nil {
		return &product, nil
	}

	result, err := r.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, nil
	}

	_ = r.cache.Set(ctx, cacheKey, result, r.ttl)
	return result, nil
}

// GetByIDs 批量获取不走缓存，直接透传基础仓储
func (r *CachedProductRepository) GetByIDs(ids []int64) ([]*domain.Product, error) {
	return r.repo.GetByIDs(ids)
}

// Count 统计不走缓存，直接透传基础仓储
func (r *CachedProductRepository) Count() (int64, error) {
	return r.repo.Count()
}

func (r *CachedProductRepository) productCacheKey(id int64) string {
	return fmt.Sprintf("catalog:product:%d", id)
}
