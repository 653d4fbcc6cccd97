// Package domain 定义购物车行项目模型。
package domain

// CartItem 表示购物车中的一个行项目。
// ProductID 是对商品的弱引用，name/price/image 为加入购物车时捕获的展示快照，
// 不随商品目录后续变化而更新。
type CartItem struct {
	ProductID int64   `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image"`
	Quantity  int64   `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
}

// SameVariant 判断两个行项目是否为同一变体。
// 合并身份键为 (ProductID, Size, Color) 三元组，三者必须完全一致，
// 包括两侧同时缺失（空串）的情况。
func (i *CartItem) SameVariant(other *CartItem) bool {
	return i.ProductID == other.ProductID &&
		i.Size == other.Size &&
		i.Color == other.Color
}

// Subtotal 返回行项目小计
func (i *CartItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// CartView 表示对外暴露的购物车只读快照
type CartView struct {
	Items []CartItem `json:"items"`
	Total float64    `json:"total"`
}

// UpdateQuantityRequest 表示修改行项目数量的请求
type UpdateQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// AddCartItemRequest 表示加入购物车的请求。
// quantity 缺省为 1；size/color 缺省时由选择状态回退到商品的第一个可选项。
type AddCartItemRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}
