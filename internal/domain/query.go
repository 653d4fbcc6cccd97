// Package domain 定义商品目录查询配置。
package domain

// PriceRange 定义价格区间筛选类型
type PriceRange string

// 固定的价格区间集合。
// 区间边界刻意不对称：50to100 含两端，100to200 左开右闭，
// 与线上行为保持一致，不得调整。
const (
	PriceRangeAll      PriceRange = "all"
	PriceRangeUnder50  PriceRange = "under50"  // price < 50
	PriceRange50To100  PriceRange = "50to100"  // 50 <= price <= 100
	PriceRange100To200 PriceRange = "100to200" // 100 < price <= 200
	PriceRangeOver200  PriceRange = "over200"  // price > 200
)

// IsValidPriceRange 判断价格区间是否合法
func IsValidPriceRange(r PriceRange) bool {
	switch r {
	case PriceRangeAll, PriceRangeUnder50, PriceRange50To100, PriceRange100To200, PriceRangeOver200:
		return true
	}
	return false
}

// SortKey 定义商品列表排序方式
type SortKey string

const (
	SortFeatured  SortKey = "featured"  // 保持目录原始顺序
	SortNewest    SortKey = "newest"    // 上架时间倒序
	SortPriceAsc  SortKey = "priceAsc"  // 价格升序
	SortPriceDesc SortKey = "priceDesc" // 价格降序
)

// IsValidSortKey 判断排序方式是否合法
func IsValidSortKey(k SortKey) bool {
	switch k {
	case SortFeatured, SortNewest, SortPriceAsc, SortPriceDesc:
		return true
	}
	return false
}

// CategoryAll 表示不做分类筛选
const CategoryAll Category = "all"

// ProductQuery 表示一次商品列表查询的筛选与排序配置。
// 配置不持久化，由调用方每次查询时重新构造。
type ProductQuery struct {
	Category   Category   `json:"category"`
	PriceRange PriceRange `json:"price_range"`
	SortKey    SortKey    `json:"sort_key"`
}

// DefaultProductQuery 返回默认查询配置：不筛选，目录原序
func DefaultProductQuery() ProductQuery {
	return ProductQuery{
		Category:   CategoryAll,
		PriceRange: PriceRangeAll,
		SortKey:    SortFeatured,
	}
}

// Validate 校验查询配置
func (q *ProductQuery) Validate() error {
	if q.Category != CategoryAll && !IsValidCategory(q.Category) {
		return ErrInvalidCategory
	}
	if !IsValidPriceRange(q.PriceRange) {
		return ErrInvalidPriceRange
	}
	if !IsValidSortKey(q.SortKey) {
		return ErrInvalidSortKey
	}
	return nil
}
