// Package api 提供购物车相关的HTTP API处理器实现。
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MorseWayne/boutique_shop/internal/domain"
	"github.com/MorseWayne/boutique_shop/internal/middleware"
	"github.com/MorseWayne/boutique_shop/internal/resp"
	"github.com/MorseWayne/boutique_shop/internal/service"
)

// CartHandler 购物车相关的HTTP处理器。
// 购物车以会话Cookie定位：首次访问时签发一个UUID会话，
// 之后同一浏览器的所有购物车操作都落到同一个持久化键上。
type CartHandler struct {
	cartService   service.CartService
	sessionCookie string
	sessionMaxAge time.Duration
	logger        *zap.Logger
}

// NewCartHandler 创建购物车处理器实例
func NewCartHandler(cartService service.CartService, sessionCookie string, sessionMaxAge time.Duration, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService:   cartService,
		sessionCookie: sessionCookie,
		sessionMaxAge: sessionMaxAge,
		logger:        logger,
	}
}

// GetCart 获取购物车快照
// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := h.sessionID(w, r)

	view, err := h.cartService.GetCart(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("get cart failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "get cart failed", reqID, "")
		return
	}

	resp.OK(w, view, reqID, "")
}

// AddItem 加入购物车
// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := h.sessionID(w, r)

	var req domain.AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	if req.ProductID <= 0 {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid product id", reqID, "")
		return
	}

	view, err := h.cartService.AddItem(r.Context(), sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			resp.Error(w, http.StatusNotFound, resp.CodeNotFound, "product not found", reqID, "")
		case errors.Is(err, domain.ErrSizeRequired), errors.Is(err, domain.ErrColorRequired):
			// 校验错误一次只报一个：修正后重新提交才能看到下一个
			resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, err.Error(), reqID, "")
		default:
			h.logger.Error("add cart item failed", zap.String("request_id", reqID), zap.Error(err))
			resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "add cart item failed", reqID, "")
		}
		return
	}

	resp.OK(w, view, reqID, "")
}

// UpdateItem 修改行项目数量
// PUT /api/v1/cart/items/{id}
// quantity 小于 1 时为静默空操作，返回当前购物车快照
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := h.sessionID(w, r)

	productID, ok := cartItemIDFromPath(r.URL.Path)
	if !ok {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid product ID", reqID, "")
		return
	}

	var req domain.UpdateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid request body", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid request body", reqID, "")
		return
	}

	view, err := h.cartService.UpdateQuantity(r.Context(), sessionID, productID, req.Quantity)
	if err != nil {
		h.logger.Error("update cart item failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "update cart item failed", reqID, "")
		return
	}

	resp.OK(w, view, reqID, "")
}

// RemoveItem 删除指定商品的所有行项目（不区分变体）
// DELETE /api/v1/cart/items/{id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := h.sessionID(w, r)

	productID, ok := cartItemIDFromPath(r.URL.Path)
	if !ok {
		resp.Error(w, http.StatusBadRequest, resp.CodeInvalidParam, "invalid product ID", reqID, "")
		return
	}

	view, err := h.cartService.RemoveItem(r.Context(), sessionID, productID)
	if err != nil {
		h.logger.Error("remove cart item failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "remove cart item failed", reqID, "")
		return
	}

	resp.OK(w, view, reqID, "")
}

// ClearCart 清空购物车
// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.RequestIDFromContext(r.Context())
	sessionID := h.sessionID(w, r)

	view, err := h.cartService.ClearCart(r.Context(), sessionID)
	if err != nil {
		h.logger.Error("clear cart failed", zap.String("request_id", reqID), zap.Error(err))
		resp.Error(w, http.StatusInternalServerError, resp.CodeInternalError, "clear cart failed", reqID, "")
		return
	}

	resp.OK(w, view, reqID, "")
}

// sessionID 解析购物车会话ID。
// Cookie缺失或内容不是合法UUID时签发新会话，保证后续请求的购物车稳定。
func (h *CartHandler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(h.sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     h.sessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(h.sessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// cartItemIDFromPath 从 /api/v1/cart/items/{id} 形式的路径中提取商品ID
func cartItemIDFromPath(path string) (int64, bool) {
	parts := strings.Split(strings.TrimSuffix(path, "/"), "/")
	if len(parts) < 6 {
		return 0, false
	}
	id, err := strconv.ParseInt(parts[5], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
