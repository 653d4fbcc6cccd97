// Package service 实现业务逻辑层，协调目录存储与购物车引擎完成业务需求。
package service

import (
	"github.com/MorseWayne/boutique_shop/internal/catalog"
	"github.com/MorseWayne/boutique_shop/internal/domain"
)

// relatedProductsLimit 详情页相关商品的默认数量
const relatedProductsLimit = 4

// CatalogService 定义商品目录业务逻辑接口
type CatalogService interface {
	// ListProducts 按查询配置返回筛选排序后的商品列表
	ListProducts(q domain.ProductQuery) ([]*domain.Product, error)

	// GetProduct 获取商品详情
	GetProduct(id int64) (*domain.Product, error)

	// RelatedProducts 返回与指定商品同分类的其他商品，目录原序，最多4个
	RelatedProducts(id int64) ([]*domain.Product, error)

	// FeaturedProducts 返回精选商品，目录原序
	FeaturedProducts(limit int) []*domain.Product

	// NewArrivals 返回新品，上架时间倒序
	NewArrivals(limit int) []*domain.Product

	// Categories 返回固定的分类集合
	Categories() []domain.Category
}

// catalogService 实现CatalogService接口
type catalogService struct {
	store *catalog.Store
}

// NewCatalogService 创建目录服务实例
func NewCatalogService(store *catalog.Store) CatalogService {
	return &catalogService{store: store}
}

// ListProducts 按查询配置返回商品列表
func (s *catalogService) ListProducts(q domain.ProductQuery) ([]*domain.Product, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return catalog.Query(s.store.All(), q), nil
}

// GetProduct 获取商品详情
func (s *catalogService) GetProduct(id int64) (*domain.Product, error) {
	product := s.store.GetByID(id)
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// RelatedProducts 返回同分类的其他商品
func (s *catalogService) RelatedProducts(id int64) ([]*domain.Product, error) {
	product := s.store.GetByID(id)
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	related := make([]*domain.Product, 0, relatedProductsLimit)
	for _, p := range s.store.All() {
		if p.Category == product.Category && p.ID != product.ID {
			related = append(related, p)
			if len(related) == relatedProductsLimit {
				break
			}
		}
	}
	return related, nil
}

// FeaturedProducts 返回精选商品
func (s *catalogService) FeaturedProducts(limit int) []*domain.Product {
	featured := make([]*domain.Product, 0, limit)
	for _, p := range s.store.All() {
		if p.IsFeatured {
			featured = append(featured, p)
			if limit > 0 && len(featured) == limit {
				break
			}
		}
	}
	return featured
}

// NewArrivals 返回新品，上架时间倒序
func (s *catalogService) NewArrivals(limit int) []*domain.Product {
	arrivals := make([]*domain.Product, 0, limit)
	for _, p := range s.store.All() {
		if p.IsNew {
			arrivals = append(arrivals, p)
		}
	}

	q := domain.ProductQuery{
		Category:   domain.CategoryAll,
		PriceRange: domain.PriceRangeAll,
		SortKey:    domain.SortNewest,
	}
	arrivals = catalog.Query(arrivals, q)

	if limit > 0 && len(arrivals) > limit {
		arrivals = arrivals[:limit]
	}
	return arrivals
}

// Categories 返回固定的分类集合
func (s *catalogService) Categories() []domain.Category {
	return domain.Categories()
}
