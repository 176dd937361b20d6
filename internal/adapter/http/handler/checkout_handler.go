package handler

import (
	"weedhaven-storefront/internal/adapter/http/dto"
	"weedhaven-storefront/internal/adapter/http/middleware"
	"weedhaven-storefront/internal/core/domain"
	"weedhaven-storefront/internal/core/ports"
	"weedhaven-storefront/pkg/apperror"
	"weedhaven-storefront/pkg/response"

	"github.com/gin-gonic/gin"
)

// CheckoutHandler handles the checkout endpoint.
type CheckoutHandler struct {
	checkoutSvc ports.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutSvc ports.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutSvc: checkoutSvc}
}

// Checkout handles POST /api/v1/checkout. A failed attempt surfaces as an
// error envelope; when the failure happened after an on-chain transfer the
// error message carries the transaction hash.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	checkout := ports.CheckoutRequest{
		SessionID:    middleware.SessionID(c),
		Method:       domain.PaymentMethod(req.Method),
		DispensaryID: req.DispensaryID,
	}
	if req.Card != nil {
		checkout.Card = &ports.CardDetails{
			Number:   req.Card.Number,
			ExpMonth: req.Card.ExpMonth,
			ExpYear:  req.Card.ExpYear,
			CVC:      req.Card.CVC,
			Holder:   req.Card.Holder,
		}
	}

	result, err := h.checkoutSvc.Checkout(c.Request.Context(), checkout)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toCheckoutResponse(result))
}

func toCheckoutResponse(result *domain.PaymentResult) dto.CheckoutResponse {
	return dto.CheckoutResponse{
		Success: result.Success,
		Message: result.Message,
		Amount:  result.Amount.StringFixed(2),
		TxHash:  result.TxHash,
	}
}
