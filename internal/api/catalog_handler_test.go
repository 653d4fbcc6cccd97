package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/MorseWayne/boutique_shop/internal/domain"
)

// MockCatalogService for testing
type MockCatalogService struct {
	listProductsFunc     func(q domain.ProductQuery) ([]*domain.Product, error)
	getProductFunc       func(id int64) (*domain.Product, error)
	relatedProductsFunc  func(id int64) ([]*domain.Product, error)
	featuredProductsFunc func(limit int) []*domain.Product
	newArrivalsFunc      func(limit int) []*domain.Product
	categoriesFunc       func() []domain.Category
}

func (m *MockCatalogService) ListProducts(q domain.ProductQuery) ([]*domain.Product, error) {
	if m.listProductsFunc != nil {
		return m.listProductsFunc(q)
	}
	return []*domain.Product{}, nil
}

func (m *MockCatalogService) GetProduct(id int64) (*domain.Product, error) {
	if m.getProductFunc != nil {
		return m.getProductFunc(id)
	}
	return &domain.Product{ID: id, Name: "Test Product"}, nil
}

func (m *MockCatalogService) RelatedProducts(id int64) ([]*domain.Product, error) {
	if m.relatedProductsFunc != nil {
		return m.relatedProductsFunc(id)
	}
	return []*domain.Product{}, nil
}

func (m *MockCatalogService) FeaturedProducts(limit int) []*domain.Product {
	if m.featuredProductsFunc != nil {
		return m.featuredProductsFunc(limit)
	}
	return []*domain.Product{}
}

func (m *MockCatalogService) NewArrivals(limit int) []*domain.Product {
	if m.newArrivalsFunc != nil {
		return m.newArrivalsFunc(limit)
	}
	return []*domain.Product{}
}

func (m *MockCatalogService) Categories() []domain.Category {
	if m.categoriesFunc != nil {
		return m.categoriesFunc()
	}
	return domain.Categories()
}

func TestCatalogHandler_ListProducts(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		mockFunc   func(q domain.ProductQuery) ([]*domain.Product, error)
		wantStatus int
		wantCount  int
	}{
		{
			name:  "default parameters",
			query: "",
			mockFunc: func(q domain.ProductQuery) ([]*domain.Product, error) {
				if q.Category != domain.CategoryAll || q.PriceRange != domain.PriceRangeAll || q.SortKey != domain.SortFeatured {
					t.Errorf("ListProducts() query = %+v, want defaults", q)
				}
				return []*domain.Product{{ID: 1}, {ID: 2}}, nil
			},
			wantStatus: http.StatusOK,
			wantCount:  2,
		},
		{
			name:  "with filters",
			query: "?category=women&price=50to100&sort=priceAsc",
			mockFunc: func(q domain.ProductQuery) ([]*domain.Product, error) {
				if q.Category != domain.CategoryWomen {
					t.Errorf("ListProducts() category = %v, want women", q.Category)
				}
				if q.PriceRange != domain.PriceRange50To100 {
					t.Errorf("ListProducts() price = %v, want 50to100", q.PriceRange)
				}
				if q.SortKey != domain.SortPriceAsc {
					t.Errorf("ListProducts() sort = %v, want priceAsc", q.SortKey)
				}
				return []*domain.Product{{ID: 3}}, nil
			},
			wantStatus: http.StatusOK,
			wantCount:  1,
		},
		{
			name:  "invalid category",
			query: "?category=toys",
			mockFunc: func(q domain.ProductQuery) ([]*domain.Product, error) {
				return nil, domain.ErrInvalidCategory
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "invalid sort key",
			query: "?sort=random",
			mockFunc: func(q domain.ProductQuery) ([]*domain.Product, error) {
				return nil, domain.ErrInvalidSortKey
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCatalogHandler(&MockCatalogService{listProductsFunc: tt.mockFunc}, zap.NewNop())

			req := httptest.NewRequest("GET", "/api/v1/products"+tt.query, nil)
			w := httptest.NewRecorder()

			handler.ListProducts(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("ListProducts() status = %d, want %d", w.Code, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				var response map[string]interface{}
				if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
					t.Fatalf("ListProducts() failed to parse response: %v", err)
				}
				if data, ok := response["data"].([]interface{}); !ok {
					t.Errorf("ListProducts() data is not a list")
				} else if len(data) != tt.wantCount {
					t.Errorf("ListProducts() product count = %d, want %d", len(data), tt.wantCount)
				}
			}
		})
	}
}

func TestCatalogHandler_GetCategories(t *testing.T) {
	handler := NewCatalogHandler(&MockCatalogService{}, zap.NewNop())

	req := httptest.NewRequest("GET", "/api/v1/products/categories", nil)
	w := httptest.NewRecorder()

	handler.GetCategories(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GetCategories() status = %d, want %d", w.Code, http.StatusOK)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("GetCategories() failed to parse response: %v", err)
	}
	data, ok := response["data"].([]interface{})
	if !ok {
		t.Fatalf("GetCategories() data is not a list")
	}
	if len(data) != 3 {
		t.Errorf("GetCategories() category count = %d, want 3", len(data))
	}
}

func TestCatalogHandler_GetFeatured(t *testing.T) {
	var gotLimit int
	handler := NewCatalogHandler(&MockCatalogService{
		featuredProductsFunc: func(limit int) []*domain.Product {
			gotLimit = limit
			return []*domain.Product{{ID: 1, IsFeatured: true}}
		},
	}, zap.NewNop())

	req := httptest.NewRequest("GET", "/api/v1/products/featured?limit=4", nil)
	w := httptest.NewRecorder()

	handler.GetFeatured(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("GetFeatured() status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotLimit != 4 {
		t.Errorf("GetFeatured() limit = %d, want 4", gotLimit)
	}
}

func TestCatalogHandler_GetNewArrivals_DefaultLimit(t *testing.T) {
	var gotLimit int
	handler := NewCatalogHandler(&MockCatalogService{
		newArrivalsFunc: func(limit int) []*domain.Product {
			gotLimit = limit
			return []*domain.Product{}
		},
	}, zap.NewNop())

	req := httptest.NewRequest("GET", "/api/v1/products/new?limit=bogus", nil)
	w := httptest.NewRecorder()

	handler.GetNewArrivals(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("GetNewArrivals() status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotLimit != 8 {
		t.Errorf("GetNewArrivals() limit = %d, want default 8", gotLimit)
	}
}

func TestCatalogHandler_GetProduct(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		mockFunc   func(id int64) (*domain.Product, error)
		wantStatus int
	}{
		{
			name: "valid product ID",
			path: "/api/v1/products/1",
			mockFunc: func(id int64) (*domain.Product, error) {
				return &domain.Product{ID: id, Name: "Silk Dress", Price: 120}, nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid product ID",
			path:       "/api/v1/products/invalid",
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "product not found",
			path: "/api/v1/products/999",
			mockFunc: func(id int64) (*domain.Product, error) {
				return nil, domain.ErrProductNotFound
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCatalogHandler(&MockCatalogService{getProductFunc: tt.mockFunc}, zap.NewNop())

			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()

			handler.GetProduct(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("GetProduct() status = %d, want %d", w.Code, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				var response map[string]interface{}
				if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
					t.Fatalf("GetProduct() failed to parse response: %v", err)
				}
				data, ok := response["data"].(map[string]interface{})
				if !ok {
					t.Fatalf("GetProduct() missing data field")
				}
				if name, ok := data["name"].(string); !ok || name != "Silk Dress" {
					t.Errorf("GetProduct() name = %v, want Silk Dress", data["name"])
				}
			}
		})
	}
}

func TestCatalogHandler_GetRelated(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		mockFunc   func(id int64) ([]*domain.Product, error)
		wantStatus int
		wantCount  int
	}{
		{
			name: "related products capped at four",
			path: "/api/v1/products/1/related",
			mockFunc: func(id int64) ([]*domain.Product, error) {
				if id != 1 {
					t.Errorf("RelatedProducts() id = %d, want 1", id)
				}
				return []*domain.Product{{ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}, nil
			},
			wantStatus: http.StatusOK,
			wantCount:  4,
		},
		{
			name:       "invalid product ID",
			path:       "/api/v1/products/x/related",
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "product not found",
			path: "/api/v1/products/999/related",
			mockFunc: func(id int64) ([]*domain.Product, error) {
				return nil, domain.ErrProductNotFound
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCatalogHandler(&MockCatalogService{relatedProductsFunc: tt.mockFunc}, zap.NewNop())

			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()

			handler.GetRelated(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("GetRelated() status = %d, want %d", w.Code, tt.wantStatus)
			}

			if tt.wantStatus == http.StatusOK {
				var response map[string]interface{}
				if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
					t.Fatalf("GetRelated() failed to parse response: %v", err)
				}
				if data, ok := response["data"].([]interface{}); !ok || len(data) != tt.wantCount {
					t.Errorf("GetRelated() product count = %v, want %d", data, tt.wantCount)
				}
			}
		})
	}
}
