// Package selection 实现商品详情页的变体选择状态机：
// 数量、尺码、颜色三个可观察字段，外加一个校验错误标志。
package selection

import (
	"github.com/MorseWayne/boutique_shop/internal/domain"
)

// State 持有一个商品的临时选择状态。
// 状态随商品详情会话存在，不持久化；商品身份变化时整体重置。
type State struct {
	product       *domain.Product
	quantity      int64
	selectedSize  string
	selectedColor string
	err           error
}

// New 创建绑定到指定商品的选择状态。
// 初始数量为 1，尺码和颜色均未选中；默认选项只在商品身份切换时应用（见 SetProduct）。
func New(product *domain.Product) *State {
	return &State{
		product:  product,
		quantity: 1,
	}
}

// SetProduct 切换底层商品并整体重置状态：
// 数量回到 1，尺码/颜色取新商品的第一个可选项（没有对应维度则为空），
// 未决的校验错误一并清除。
func (s *State) SetProduct(product *domain.Product) {
	s.product = product
	s.quantity = 1
	s.selectedSize = ""
	s.selectedColor = ""
	s.err = nil

	if product == nil {
		return
	}
	if product.HasSizes() {
		s.selectedSize = product.Sizes[0]
	}
	if product.HasColors() {
		s.selectedColor = product.Colors[0]
	}
}

// SetSize 选择尺码，总是成功并清除已有校验错误
func (s *State) SetSize(size string) {
	s.selectedSize = size
	s.err = nil
}

// SetColor 选择颜色，总是成功并清除已有校验错误
func (s *State) SetColor(color string) {
	s.selectedColor = color
	s.err = nil
}

// IncrementQuantity 数量加一，无上限
func (s *State) IncrementQuantity() {
	s.quantity++
}

// DecrementQuantity 数量减一，下限为 1：到达下限后静默保持，不报错
func (s *State) DecrementQuantity() {
	if s.quantity > 1 {
		s.quantity--
	}
}

// SetQuantity 直接设置数量，小于 1 时钳制为 1
func (s *State) SetQuantity(quantity int64) {
	if quantity < 1 {
		quantity = 1
	}
	s.quantity = quantity
}

// Quantity 返回当前数量
func (s *State) Quantity() int64 {
	return s.quantity
}

// Size 返回当前选中的尺码（可能为空）
func (s *State) Size() string {
	return s.selectedSize
}

// Color 返回当前选中的颜色（可能为空）
func (s *State) Color() string {
	return s.selectedColor
}

// Err 返回最近一次 Submit 失败的校验错误（可能为 nil）
func (s *State) Err() error {
	return s.err
}

// Submit 校验选择并生成可直接交给购物车引擎的行项目快照。
// 校验按顺序进行且一次只报一个错误：商品声明了尺码维度而未选尺码时
// 返回 ErrSizeRequired；通过后再检查颜色。调用方修正后需重新提交
// 才能看到下一个错误。
func (s *State) Submit() (*domain.CartItem, error) {
	if s.product.HasSizes() && s.selectedSize == "" {
		s.err = domain.ErrSizeRequired
		return nil, s.err
	}
	if s.product.HasColors() && s.selectedColor == "" {
		s.err = domain.ErrColorRequired
		return nil, s.err
	}

	s.err = nil
	return &domain.CartItem{
		ProductID: s.product.ID,
		Name:      s.product.Name,
		Price:     s.product.Price,
		ImageURL:  s.product.ImageURL,
		Quantity:  s.quantity,
		Size:      s.selectedSize,
		Color:     s.selectedColor,
	}, nil
}
