package handler

import (
	"time"

	"weedhaven-storefront/internal/adapter/http/dto"
	"weedhaven-storefront/internal/adapter/http/middleware"
	"weedhaven-storefront/internal/core/domain"
	"weedhaven-storefront/internal/core/ports"
	"weedhaven-storefront/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet session endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

// Connect handles POST /api/v1/wallet/connect.
func (h *WalletHandler) Connect(c *gin.Context) {
	session, err := h.walletSvc.Connect(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toSessionResponse(session))
}

// Disconnect handles POST /api/v1/wallet/disconnect.
func (h *WalletHandler) Disconnect(c *gin.Context) {
	if err := h.walletSvc.Disconnect(c.Request.Context(), middleware.SessionID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toSessionResponse(&domain.UserSession{}))
}

// Get handles GET /api/v1/wallet. It passively restores an existing wallet
// authorization; provider failures read as "not connected".
func (h *WalletHandler) Get(c *gin.Context) {
	session, err := h.walletSvc.CheckExistingConnection(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toSessionResponse(session))
}

func toSessionResponse(session *domain.UserSession) dto.WalletSessionResponse {
	out := dto.WalletSessionResponse{Connected: session.Connected()}
	out.Address = session.Address
	if session.NativeBalance != nil {
		v := session.NativeBalance.String()
		out.NativeBalance = &v
	}
	if session.TokenBalance != nil {
		v := session.TokenBalance.String()
		out.TokenBalance = &v
	}
	if session.ConnectedAt != nil {
		v := session.ConnectedAt.UTC().Format(time.RFC3339)
		out.ConnectedAt = &v
	}
	return out
}
