// Package service 实现购物车会话编排：每个会话一个独立的聚合引擎。
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/MorseWayne/boutique_shop/internal/cache"
	"github.com/MorseWayne/boutique_shop/internal/cart"
	"github.com/MorseWayne/boutique_shop/internal/catalog"
	"github.com/MorseWayne/boutique_shop/internal/domain"
	"github.com/MorseWayne/boutique_shop/internal/selection"
)

// CartService 定义购物车业务逻辑接口。
// 所有操作以会话ID定位购物车；引擎按需创建并从持久化存储恢复。
type CartService interface {
	// GetCart 返回购物车快照
	GetCart(ctx context.Context, sessionID string) (*domain.CartView, error)

	// AddItem 经选择状态校验后将商品加入购物车
	AddItem(ctx context.Context, sessionID string, req *domain.AddCartItemRequest) (*domain.CartView, error)

	// UpdateQuantity 修改指定商品的数量，quantity < 1 时静默忽略
	UpdateQuantity(ctx context.Context, sessionID string, productID, quantity int64) (*domain.CartView, error)

	// RemoveItem 删除指定商品的所有行项目（不区分变体）
	RemoveItem(ctx context.Context, sessionID string, productID int64) (*domain.CartView, error)

	// ClearCart 清空购物车
	ClearCart(ctx context.Context, sessionID string) (*domain.CartView, error)
}

// cartService 实现CartService接口
type cartService struct {
	store     *catalog.Store
	cache     cache.Cache
	keyPrefix string
	ttl       time.Duration
	logger    *zap.Logger

	mu      sync.Mutex
	engines map[string]*cart.Engine
}

// NewCartService 创建购物车服务实例
func NewCartService(store *catalog.Store, c cache.Cache, keyPrefix string, ttl time.Duration, logger *zap.Logger) CartService {
	return &cartService{
		store:     store,
		cache:     c,
		keyPrefix: keyPrefix,
		ttl:       ttl,
		logger:    logger,
		engines:   make(map[string]*cart.Engine),
	}
}

// engineFor 返回会话对应的引擎，不存在时创建并从存储恢复。
// 同一会话始终拿到同一个引擎实例，保证序列的独占所有权。
func (s *cartService) engineFor(ctx context.Context, sessionID string) *cart.Engine {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.engines[sessionID]; ok {
		return e
	}

	key := fmt.Sprintf("%s:%s", s.keyPrefix, sessionID)
	e := cart.NewEngine(ctx, cart.NewCacheStore(s.cache, key, s.ttl), s.logger.With(zap.String("cart_session", sessionID)))
	s.engines[sessionID] = e
	return e
}

// GetCart 返回购物车快照
func (s *cartService) GetCart(ctx context.Context, sessionID string) (*domain.CartView, error) {
	view := s.engineFor(ctx, sessionID).View()
	return &view, nil
}

// AddItem 将商品加入购物车。
// 流程与详情页一致：定位商品 → 构造选择状态 → 应用请求字段 →
// 提交校验（先尺码后颜色，一次一个错误）→ 引擎合并入车。
func (s *cartService) AddItem(ctx context.Context, sessionID string, req *domain.AddCartItemRequest) (*domain.CartView, error) {
	product := s.store.GetByID(req.ProductID)
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	sel := selection.New(product)
	if req.Size != "" {
		sel.SetSize(req.Size)
	}
	if req.Color != "" {
		sel.SetColor(req.Color)
	}
	if req.Quantity > 0 {
		sel.SetQuantity(req.Quantity)
	}

	item, err := sel.Submit()
	if err != nil {
		return nil, err
	}

	e := s.engineFor(ctx, sessionID)
	if err := e.Add(ctx, *item); err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	s.logger.Info("cart item added",
		zap.String("cart_session", sessionID),
		zap.Int64("product_id", item.ProductID),
		zap.Int64("quantity", item.Quantity),
	)

	view := e.View()
	return &view, nil
}

// UpdateQuantity 修改指定商品的数量
func (s *cartService) UpdateQuantity(ctx context.Context, sessionID string, productID, quantity int64) (*domain.CartView, error) {
	e := s.engineFor(ctx, sessionID)
	if err := e.UpdateQuantity(ctx, productID, quantity); err != nil {
		return nil, fmt.Errorf("failed to update cart quantity: %w", err)
	}

	view := e.View()
	return &view, nil
}

// RemoveItem 删除指定商品的所有行项目
func (s *cartService) RemoveItem(ctx context.Context, sessionID string, productID int64) (*domain.CartView, error) {
	e := s.engineFor(ctx, sessionID)
	if err := e.Remove(ctx, productID); err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}

	view := e.View()
	return &view, nil
}

// ClearCart 清空购物车
func (s *cartService) ClearCart(ctx context.Context, sessionID string) (*domain.CartView, error) {
	e := s.engineFor(ctx, sessionID)
	if err := e.Clear(ctx); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	view := e.View()
	return &view, nil
}
