// Package catalog 实现商品目录的内存存储与查询引擎。
package catalog

import (
	"sort"

	"github.com/MorseWayne/boutique_shop/internal/domain"
)

// Query 对商品集合执行筛选与排序，返回新的有序切片，不修改入参。
// 流水线顺序固定：先分类筛选，再价格筛选，最后排序。
// 返回值永远非 nil，空结果用空切片表示，以便与"未查询"区分。
func Query(products []*domain.Product, q domain.ProductQuery) []*domain.Product {
	result := make([]*domain.Product, 0, len(products))

	for _, p := range products {
		if q.Category != domain.CategoryAll && p.Category != q.Category {
			continue
		}
		if !matchesPriceRange(p.Price, q.PriceRange) {
			continue
		}
		result = append(result, p)
	}

	sortProducts(result, q.SortKey)
	return result
}

// matchesPriceRange 判断价格是否落在区间内。
// 边界与线上行为保持一致：50to100 含两端，100to200 不含 100、含 200。
func matchesPriceRange(price float64, r domain.PriceRange) bool {
	switch r {
	case domain.PriceRangeUnder50:
		return price < 50
	case domain.PriceRange50To100:
		return price >= 50 && price <= 100
	case domain.PriceRange100To200:
		return price > 100 && price <= 200
	case domain.PriceRangeOver200:
		return price > 200
	default:
		return true
	}
}

// sortProducts 按排序键就地排序。
// 使用稳定排序，相等键保持原有相对顺序，保证结果可复现。
func sortProducts(products []*domain.Product, key domain.SortKey) {
	switch key {
	case domain.SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].ListedAt.After(products[j].ListedAt)
		})
	case domain.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case domain.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	default:
		// featured：保持目录原始顺序
	}
}
