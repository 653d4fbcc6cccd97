package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/MorseWayne/boutique_shop/internal/cache"
	"github.com/MorseWayne/boutique_shop/internal/catalog"
	"github.com/MorseWayne/boutique_shop/internal/domain"
)

func cartTestProducts() []*domain.Product {
	return []*domain.Product{
		{ID: 1, Name: "Linen Shirt", Price: 79, ImageURL: "/img/shirt.jpg", Category: domain.CategoryMen, Sizes: []string{"S", "M", "L"}},
		{ID: 2, Name: "Leather Belt", Price: 35, Category: domain.CategoryAccessories},
		{ID: 3, Name: "Wrap Dress", Price: 130, Category: domain.CategoryWomen, Sizes: []string{"S", "M"}, Colors: []string{"navy", "rust"}},
	}
}

func newTestCartService() (CartService, *cache.MemoryCache) {
	mem := cache.NewMemoryCache()
	store := catalog.NewStoreFromProducts(cartTestProducts())
	return NewCartService(store, mem, "cart:items", 0, zap.NewNop()), mem
}

func TestCartService_AddItem(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	view, err := svc.AddItem(ctx, "s1", &domain.AddCartItemRequest{
		ProductID: 1,
		Quantity:  2,
		Size:      "M",
	})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if len(view.Items) != 1 {
		t.Fatalf("view has %d items, want 1", len(view.Items))
	}

	it := view.Items[0]
	if it.Name != "Linen Shirt" || it.Price != 79 || it.ImageURL != "/img/shirt.jpg" {
		t.Errorf("snapshot = %+v, want fields captured from product", it)
	}
	if view.Total != 158 {
		t.Errorf("view.Total = %v, want 158", view.Total)
	}
}

func TestCartService_AddItemValidation(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	tests := []struct {
		name    string
		req     *domain.AddCartItemRequest
		wantErr error
	}{
		{
			name:    "unknown product",
			req:     &domain.AddCartItemRequest{ProductID: 99, Quantity: 1},
			wantErr: domain.ErrProductNotFound,
		},
		{
			name:    "missing size",
			req:     &domain.AddCartItemRequest{ProductID: 1, Quantity: 1},
			wantErr: domain.ErrSizeRequired,
		},
		{
			name:    "missing color reported after size fixed",
			req:     &domain.AddCartItemRequest{ProductID: 3, Quantity: 1, Size: "S"},
			wantErr: domain.ErrColorRequired,
		},
		{
			name:    "size checked before color",
			req:     &domain.AddCartItemRequest{ProductID: 3, Quantity: 1},
			wantErr: domain.ErrSizeRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddItem(ctx, "s1", tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("AddItem() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// 校验失败的请求不得写入购物车
	view, err := svc.GetCart(ctx, "s1")
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if len(view.Items) != 0 {
		t.Errorf("cart has %d items after failed adds, want 0", len(view.Items))
	}
}

func TestCartService_AddItemDefaultQuantity(t *testing.T) {
	svc, _ := newTestCartService()

	view, err := svc.AddItem(context.Background(), "s1", &domain.AddCartItemRequest{ProductID: 2})
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if view.Items[0].Quantity != 1 {
		t.Errorf("quantity = %d, want default 1", view.Items[0].Quantity)
	}
}

func TestCartService_SessionsAreIsolated(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "alice", &domain.AddCartItemRequest{ProductID: 2, Quantity: 3}); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	view, err := svc.GetCart(ctx, "bob")
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if len(view.Items) != 0 {
		t.Errorf("bob's cart has %d items, want 0", len(view.Items))
	}
}

func TestCartService_UpdateAndRemove(t *testing.T) {
	svc, _ := newTestCartService()
	ctx := context.Background()

	_, _ = svc.AddItem(ctx, "s1", &domain.AddCartItemRequest{ProductID: 2, Quantity: 1})

	view, err := svc.UpdateQuantity(ctx, "s1", 2, 5)
	if err != nil {
		t.Fatalf("UpdateQuantity() error = %v", err)
	}
	if view.Items[0].Quantity != 5 || view.Total != 175 {
		t.Errorf("after update: quantity=%d total=%v, want 5/175", view.Items[0].Quantity, view.Total)
	}

	// 非法数量静默忽略
	view, err = svc.UpdateQuantity(ctx, "s1", 2, 0)
	if err != nil {
		t.Fatalf("UpdateQuantity() error = %v", err)
	}
	if view.Items[0].Quantity != 5 {
		t.Errorf("quantity changed to %d by zero update, want 5", view.Items[0].Quantity)
	}

	view, err = svc.RemoveItem(ctx, "s1", 2)
	if err != nil {
		t.Fatalf("RemoveItem() error = %v", err)
	}
	if len(view.Items) != 0 || view.Total != 0 {
		t.Errorf("after remove: %d items total %v, want empty cart", len(view.Items), view.Total)
	}
}

func TestCartService_CartSurvivesServiceRestart(t *testing.T) {
	mem := cache.NewMemoryCache()
	store := catalog.NewStoreFromProducts(cartTestProducts())
	ctx := context.Background()

	svc := NewCartService(store, mem, "cart:items", 0, zap.NewNop())
	if _, err := svc.AddItem(ctx, "s1", &domain.AddCartItemRequest{ProductID: 2, Quantity: 2}); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	// 新的服务实例共享同一存储：会话恢复后内容一致
	svc2 := NewCartService(store, mem, "cart:items", 0, zap.NewNop())
	view, err := svc2.GetCart(ctx, "s1")
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
		t.Errorf("restored cart = %+v, want product 2 with quantity 2", view.Items)
	}
	if view.Total != 70 {
		t.Errorf("restored total = %v, want 70", view.Total)
	}
}
