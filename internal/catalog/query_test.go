package catalog

import (
	"testing"
	"time"

	"github.com/MorseWayne/boutique_shop/internal/domain"
)

func makeProduct(id int64, price float64, category domain.Category) *domain.Product {
	return &domain.Product{
		ID:       id,
		Name:     "Product",
		Price:    price,
		Category: category,
		ListedAt: time.Date(2024, 1, int(id), 0, 0, 0, 0, time.UTC),
	}
}

func ids(products []*domain.Product) []int64 {
	out := make([]int64, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestQuery_PriceRangeBoundaries(t *testing.T) {
	products := []*domain.Product{
		makeProduct(1, 49.99, domain.CategoryWomen),
		makeProduct(2, 50.00, domain.CategoryWomen),
		makeProduct(3, 100.00, domain.CategoryWomen),
		makeProduct(4, 100.01, domain.CategoryWomen),
		makeProduct(5, 200.00, domain.CategoryWomen),
		makeProduct(6, 200.01, domain.CategoryWomen),
	}

	tests := []struct {
		name    string
		rng     domain.PriceRange
		wantIDs []int64
	}{
		{name: "under50 excludes exact 50", rng: domain.PriceRangeUnder50, wantIDs: []int64{1}},
		{name: "50to100 includes both bounds", rng: domain.PriceRange50To100, wantIDs: []int64{2, 3}},
		{name: "100to200 excludes 100 includes 200", rng: domain.PriceRange100To200, wantIDs: []int64{4, 5}},
		{name: "over200 excludes exact 200", rng: domain.PriceRangeOver200, wantIDs: []int64{6}},
		{name: "all keeps everything", rng: domain.PriceRangeAll, wantIDs: []int64{1, 2, 3, 4, 5, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := domain.DefaultProductQuery()
			q.PriceRange = tt.rng
			got := Query(products, q)
			if !equalIDs(ids(got), tt.wantIDs) {
				t.Errorf("Query() ids = %v, want %v", ids(got), tt.wantIDs)
			}
		})
	}
}

func TestQuery_CategoryFilter(t *testing.T) {
	products := []*domain.Product{
		makeProduct(1, 30, domain.CategoryWomen),
		makeProduct(2, 40, domain.CategoryMen),
		makeProduct(3, 50, domain.CategoryAccessories),
		makeProduct(4, 60, domain.CategoryWomen),
	}

	q := domain.DefaultProductQuery()
	q.Category = domain.CategoryWomen
	got := Query(products, q)
	if !equalIDs(ids(got), []int64{1, 4}) {
		t.Errorf("Query() ids = %v, want [1 4]", ids(got))
	}

	q.Category = domain.CategoryAll
	got = Query(products, q)
	if len(got) != 4 {
		t.Errorf("Query() with category all returned %d products, want 4", len(got))
	}
}

func TestQuery_SortStability(t *testing.T) {
	// 两个同价商品，升序排序后必须保持原有相对顺序
	products := []*domain.Product{
		makeProduct(1, 80, domain.CategoryWomen),
		makeProduct(2, 80, domain.CategoryWomen),
		makeProduct(3, 20, domain.CategoryWomen),
	}

	q := domain.DefaultProductQuery()
	q.SortKey = domain.SortPriceAsc
	got := Query(products, q)
	if !equalIDs(ids(got), []int64{3, 1, 2}) {
		t.Errorf("Query() priceAsc ids = %v, want [3 1 2]", ids(got))
	}

	q.SortKey = domain.SortPriceDesc
	got = Query(products, q)
	if !equalIDs(ids(got), []int64{1, 2, 3}) {
		t.Errorf("Query() priceDesc ids = %v, want [1 2 3]", ids(got))
	}
}

func TestQuery_SortNewest(t *testing.T) {
	products := []*domain.Product{
		makeProduct(1, 10, domain.CategoryWomen), // listed 2024-01-01
		makeProduct(3, 30, domain.CategoryWomen), // listed 2024-01-03
		makeProduct(2, 20, domain.CategoryWomen), // listed 2024-01-02
	}

	q := domain.DefaultProductQuery()
	q.SortKey = domain.SortNewest
	got := Query(products, q)
	if !equalIDs(ids(got), []int64{3, 2, 1}) {
		t.Errorf("Query() newest ids = %v, want [3 2 1]", ids(got))
	}
}

func TestQuery_FeaturedKeepsCatalogOrder(t *testing.T) {
	products := []*domain.Product{
		makeProduct(5, 90, domain.CategoryMen),
		makeProduct(2, 10, domain.CategoryMen),
		makeProduct(9, 50, domain.CategoryMen),
	}

	got := Query(products, domain.DefaultProductQuery())
	if !equalIDs(ids(got), []int64{5, 2, 9}) {
		t.Errorf("Query() featured ids = %v, want [5 2 9]", ids(got))
	}
}

func TestQuery_CombinedScenario(t *testing.T) {
	// 固定场景：四个价格档各一个商品，筛选 100to200 后只剩 id=3
	products := []*domain.Product{
		makeProduct(1, 45, domain.CategoryWomen),
		makeProduct(2, 75, domain.CategoryMen),
		makeProduct(3, 150, domain.CategoryWomen),
		makeProduct(4, 250, domain.CategoryAccessories),
	}

	q := domain.ProductQuery{
		Category:   domain.CategoryAll,
		PriceRange: domain.PriceRange100To200,
		SortKey:    domain.SortPriceAsc,
	}
	got := Query(products, q)
	if !equalIDs(ids(got), []int64{3}) {
		t.Errorf("Query() ids = %v, want [3]", ids(got))
	}
}

func TestQuery_DoesNotMutateInput(t *testing.T) {
	products := []*domain.Product{
		makeProduct(1, 300, domain.CategoryWomen),
		makeProduct(2, 10, domain.CategoryWomen),
	}

	q := domain.DefaultProductQuery()
	q.SortKey = domain.SortPriceAsc
	Query(products, q)

	if !equalIDs(ids(products), []int64{1, 2}) {
		t.Errorf("source slice reordered to %v, want [1 2]", ids(products))
	}
}

func TestQuery_EmptyResultIsNotNil(t *testing.T) {
	products := []*domain.Product{
		makeProduct(1, 30, domain.CategoryWomen),
	}

	q := domain.DefaultProductQuery()
	q.PriceRange = domain.PriceRangeOver200
	got := Query(products, q)
	if got == nil {
		t.Fatal("Query() returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("Query() returned %d products, want 0", len(got))
	}
}
