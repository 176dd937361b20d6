package handler

import (
	"strconv"

	"weedhaven-storefront/internal/adapter/http/dto"
	"weedhaven-storefront/internal/core/domain"
	"weedhaven-storefront/internal/core/ports"
	"weedhaven-storefront/pkg/apperror"
	"weedhaven-storefront/pkg/response"

	"github.com/gin-gonic/gin"
)

// CatalogHandler handles product and dispensary endpoints.
type CatalogHandler struct {
	catalog ports.Catalog
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog ports.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListProducts handles GET /api/v1/catalog/products.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListProducts(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	response.OK(c, out)
}

// ListDispensaries handles GET /api/v1/catalog/dispensaries.
func (h *CatalogHandler) ListDispensaries(c *gin.Context) {
	dispensaries, err := h.catalog.ListDispensaries(c.Request.Context())
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	out := make([]dto.DispensaryResponse, 0, len(dispensaries))
	for _, d := range dispensaries {
		out = append(out, toDispensaryResponse(d))
	}
	response.OK(c, out)
}

// GetDispensary handles GET /api/v1/catalog/dispensaries/:id.
func (h *CatalogHandler) GetDispensary(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, apperror.Validation("dispensary id must be an integer"))
		return
	}

	dispensary, err := h.catalog.GetDispensary(c.Request.Context(), id)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}
	if dispensary == nil {
		response.Error(c, apperror.ErrDispensaryNotFound())
		return
	}
	response.OK(c, toDispensaryResponse(*dispensary))
}

func toProductResponse(p domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price.StringFixed(2),
		Image: p.Image,
	}
}

func toDispensaryResponse(d domain.Dispensary) dto.DispensaryResponse {
	return dto.DispensaryResponse{
		ID:            d.ID,
		Name:          d.Name,
		StreetAddress: d.StreetAddress,
		Rating:        d.Rating,
		PayoutAddress: d.PayoutAddress,
		Balance:       d.Balance.StringFixed(2),
	}
}
