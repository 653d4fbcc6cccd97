// Package domain 定义商品与购物车相关的业务领域模型和核心业务规则。
package domain

import (
	"time"
)

// Category 定义商品分类类型
type Category string

const (
	CategoryWomen       Category = "women"       // 女装
	CategoryMen         Category = "men"         // 男装
	CategoryAccessories Category = "accessories" // 配饰
)

// Categories 返回固定的分类集合，顺序即展示顺序
func Categories() []Category {
	return []Category{CategoryWomen, CategoryMen, CategoryAccessories}
}

// IsValidCategory 判断分类是否合法
func IsValidCategory(c Category) bool {
	switch c {
	case CategoryWomen, CategoryMen, CategoryAccessories:
		return true
	}
	return false
}

// Product 表示商品领域模型。
// 商品目录在会话期间只读，列表顺序稳定；sizes/colors 为空表示该商品没有对应的变体维度。
type Product struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	LongDescription string    `json:"long_description,omitempty"`
	Price           float64   `json:"price"`
	OldPrice        *float64  `json:"old_price,omitempty"` // 降价前价格，仅用于展示
	Discount        int       `json:"discount"`            // 折扣百分比，0 表示无折扣
	ImageURL        string    `json:"image_url"`
	Category        Category  `json:"category"`
	IsNew           bool      `json:"is_new"`
	IsFeatured      bool      `json:"is_featured"`
	InStock         bool      `json:"in_stock"`
	Sizes           []string  `json:"sizes,omitempty"`
	Colors          []string  `json:"colors,omitempty"`
	Rating          float64   `json:"rating"`  // 平均评分 0-5
	Reviews         int       `json:"reviews"` // 评价数量
	ListedAt        time.Time `json:"listed_at"`
}

// HasSizes 判断商品是否声明了尺码维度
func (p *Product) HasSizes() bool {
	return len(p.Sizes) > 0
}

// HasColors 判断商品是否声明了颜色维度
func (p *Product) HasColors() bool {
	return len(p.Colors) > 0
}
