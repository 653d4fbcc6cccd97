// Package cart 实现购物车聚合引擎：按变体身份合并、数量修改、总价计算与同步持久化。
package cart

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/MorseWayne/boutique_shop/internal/domain"
)

// Engine 持有一个购物车的可变行项目序列。
// 序列由引擎独占，外部只能读取快照或调用公开的变更方法，
// 保证总价不会与行项目脱节。所有变更在返回前同步持久化。
type Engine struct {
	mu     sync.Mutex
	items  []domain.CartItem
	store  Store
	logger *zap.Logger
}

// NewEngine 创建购物车引擎并从存储恢复已保存的行项目。
// 没有保存记录时从空购物车开始；已保存数据损坏时丢弃并记录日志，
// 同样从空购物车开始，不让启动失败。
func NewEngine(ctx context.Context, store Store, logger *zap.Logger) *Engine {
	e := &Engine{store: store, logger: logger}

	items, err := store.Load(ctx)
	switch {
	case err == nil:
		e.items = sanitize(items)
	case errors.Is(err, ErrNoSavedCart):
		// 首次访问，空购物车
	default:
		logger.Warn("discarding malformed saved cart", zap.Error(err))
	}

	return e
}

// sanitize 丢弃恢复数据中数量不足 1 的行项目。
// 正常写入路径不会产生这种数据，但持久化内容可能被外部篡改。
func sanitize(items []domain.CartItem) []domain.CartItem {
	out := items[:0]
	for _, it := range items {
		if it.Quantity >= 1 {
			out = append(out, it)
		}
	}
	return out
}

// Add 将行项目并入购物车。
// 按 (商品ID, 尺码, 颜色) 三元组精确匹配已有行项目：
// 命中则就地累加数量并保持位置，未命中则追加到末尾。
// 数量合法性由调用方（选择状态）保证。
func (e *Engine) Add(ctx context.Context, item domain.CartItem) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	merged := false
	for i := range e.items {
		if e.items[i].SameVariant(&item) {
			e.items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		e.items = append(e.items, item)
	}

	return e.persist(ctx)
}

// Remove 删除指定商品的所有行项目，不区分变体。
// 这是刻意保留的粗粒度行为：按商品ID整体移除，而非按变体键逐条移除。
// 没有匹配项时不视为错误。
func (e *Engine) Remove(ctx context.Context, productID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	kept := e.items[:0]
	for _, it := range e.items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	e.items = kept

	return e.persist(ctx)
}

// UpdateQuantity 修改指定商品的行项目数量。
// quantity 小于 1 时静默忽略，不删除行项目也不报错；
// 否则将该商品ID下所有行项目（含全部变体）的数量设为目标值。
func (e *Engine) UpdateQuantity(ctx context.Context, productID int64, quantity int64) error {
	if quantity < 1 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := range e.items {
		if e.items[i].ProductID == productID {
			e.items[i].Quantity = quantity
		}
	}

	return e.persist(ctx)
}

// Clear 清空购物车
func (e *Engine) Clear(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil
	return e.persist(ctx)
}

// Items 返回行项目序列的快照，保持插入顺序
func (e *Engine) Items() []domain.CartItem {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.CartItem, len(e.items))
	copy(out, e.items)
	return out
}

// Total 返回当前总价。
// 每次从行项目重新计算，不做增量维护，避免累计漂移。
func (e *Engine) Total() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.total()
}

// View 返回购物车只读快照（行项目与总价一致）
func (e *Engine) View() domain.CartView {
	e.mu.Lock()
	defer e.mu.Unlock()

	items := make([]domain.CartItem, len(e.items))
	copy(items, e.items)
	return domain.CartView{Items: items, Total: e.total()}
}

// total 计算 Σ(price × quantity)，调用方须持有锁
func (e *Engine) total() float64 {
	var sum float64
	for _, it := range e.items {
		sum += it.Subtotal()
	}
	return sum
}

// persist 全量写入存储，调用方须持有锁
func (e *Engine) persist(ctx context.Context) error {
	items := e.items
	if items == nil {
		items = []domain.CartItem{}
	}
	return e.store.Save(ctx, items)
}
