// Package catalog 提供商品目录的内存存储。
package catalog

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/MorseWayne/boutique_shop/internal/domain"
	"github.com/MorseWayne/boutique_shop/internal/repo"
)

// Store 持有会话期间只读的有序商品集合。
// 启动时从仓储加载一次，之后目录顺序保持稳定；外部只能读取快照，不能修改。
type Store struct {
	products []*domain.Product
	byID     map[int64]*domain.Product
	logger   *zap.Logger
}

// NewStore 从商品仓储加载目录并构建存储。
// 目录为空不是错误，商店可以先上线后补数据。
func NewStore(productRepo repo.ProductRepository, logger *zap.Logger) (*Store, error) {
	products, err := productRepo.ListAll()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	byID := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	logger.Info("catalog loaded", zap.Int("products", len(products)))

	return &Store{
		products: products,
		byID:     byID,
		logger:   logger,
	}, nil
}

// NewStoreFromProducts 直接从给定集合构建存储，主要用于测试
func NewStoreFromProducts(products []*domain.Product) *Store {
	byID := make(map[int64]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Store{products: products, byID: byID, logger: zap.NewNop()}
}

// All 返回目录的有序快照。
// 返回副本切片，调用方无法改变目录顺序；切片元素共享底层商品对象。
func (s *Store) All() []*domain.Product {
	out := make([]*domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// GetByID 按ID查找商品，未找到返回 nil
func (s *Store) GetByID(id int64) *domain.Product {
	return s.byID[id]
}

// Len 返回目录中的商品数量
func (s *Store) Len() int {
	return len(s.products)
}
