package handler

import (
	"strconv"

	"weedhaven-storefront/internal/adapter/http/dto"
	"weedhaven-storefront/internal/adapter/http/middleware"
	"weedhaven-storefront/internal/core/ports"
	"weedhaven-storefront/pkg/apperror"
	"weedhaven-storefront/pkg/response"

	"github.com/gin-gonic/gin"
)

// CartHandler handles cart endpoints.
type CartHandler struct {
	cartSvc ports.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cartSvc ports.CartService) *CartHandler {
	return &CartHandler{cartSvc: cartSvc}
}

// GetCart handles GET /api/v1/cart.
func (h *CartHandler) GetCart(c *gin.Context) {
	view, err := h.cartSvc.GetCart(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toCartResponse(view))
}

// AddItem handles POST /api/v1/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	view, err := h.cartSvc.AddItem(c.Request.Context(), middleware.SessionID(c), req.ProductID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toCartResponse(view))
}

// RemoveItem handles DELETE /api/v1/cart/items/:productId. All line items
// for the product are removed; an absent product is a no-op.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		response.Error(c, apperror.Validation("product id must be an integer"))
		return
	}

	view, err := h.cartSvc.RemoveItem(c.Request.Context(), middleware.SessionID(c), productID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toCartResponse(view))
}

func toCartResponse(view *ports.CartView) dto.CartResponse {
	items := make([]dto.CartItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, dto.CartItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price.StringFixed(2),
		})
	}
	return dto.CartResponse{
		Items:    items,
		Subtotal: view.Subtotal.StringFixed(2),
		Fee:      view.Fee.StringFixed(2),
		Total:    view.Total.StringFixed(2),
	}
}
