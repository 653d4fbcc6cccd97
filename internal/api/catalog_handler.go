// Package api 提供商品目录相关的HTTP API处理器实现。
package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/MorseWayne/boutique_shop/internal/domain"
	"github.com/MorseWayne/boutique_shop/internal/middleware"
	"github.com/MorseWayne/boutique_shop/internal/resp"
	"github.com/MorseWayne/boutique_shop/internal/service"
)

// CatalogHandler 商品目录相关的HTTP处理器
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler 创建目录处理器实例
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ListProducts 获取商品列表
// GET /api/v1/products?category=women&price=50to100&sort=priceAsc
// 所有参数可选，缺省为不筛选、目录原序
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	q := domain.DefaultProductQuery()
	if v := r.URL.Query().Get("category"); v != "" {
		q.Category = domain.Category(v)
	}
	if v := r.URL.Query().Get("price"); v != "" {
		q.PriceRange = domain.PriceRange(v)
	}
	if v := r.URL.Query().Get("sort"); v != "" {
		q.SortKey = domain.SortKey(v)
	}

	products, err := h.catalogService.ListProducts(q)
	if err != nil {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, err.Error(), reqID, "")
		return
	}

	resp.OK(w, &products, reqID, "")
}

// GetCategories 获取固定的商品分类集合
// GET /api/v1/products/categories
func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	categories := h.catalogService.Categories()
	resp.OK(w, &categories, reqID, "")
}

// GetFeatured 获取精选商品
// GET /api/v1/products/featured?limit=4
func (h *CatalogHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	products := h.catalogService.FeaturedProducts(parseLimit(r, 8))
	resp.OK(w, &products, reqID, "")
}

// GetNewArrivals 获取新品
// GET /api/v1/products/new?limit=4
func (h *CatalogHandler) GetNewArrivals(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	products := h.catalogService.NewArrivals(parseLimit(r, 8))
	resp.OK(w, &products, reqID, "")
}

// GetProduct 获取商品详情
// GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	id, ok := productIDFromPath(r.URL.Path)
	if !ok {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid product ID", reqID, "")
		return
	}

	product, err := h.catalogService.GetProduct(id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
			return
		}

		h.logger.Error("get product failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "get product failed", reqID, "")
		return
	}

	resp.OK(w, product, reqID, "")
}

// GetRelated 获取相关商品（同分类，最多4个）
// GET /api/v1/products/{id}/related
func (h *CatalogHandler) GetRelated(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())

	id, ok := productIDFromPath(strings.TrimSuffix(r.URL.Path, "/related"))
	if !ok {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid product ID", reqID, "")
		return
	}

	products, err := h.catalogService.RelatedProducts(id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
			return
		}

		h.logger.Error("get related products failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "get related products failed", reqID, "")
		return
	}

	resp.OK(w, &products, reqID, "")
}

// productIDFromPath 从 /api/v1/products/{id} 形式的路径中提取商品ID
func productIDFromPath(path string) (int64, bool) {
	parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
	if len(parts) < 5 {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[4], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseLimit 解析 limit 查询参数，非法或缺省时返回默认值
func parseLimit(r *http.Request, def int) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
