package ports

import (
	"context"

	"weedhaven-storefront/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Catalog is the read-only product/dispensary data source. CreditDispensary
// is the single permitted mutation: recording a settled crypto payment
// against the vendor's local balance.
type Catalog interface {
	ListDispensaries(ctx context.Context) ([]domain.Dispensary, error)
	GetDispensary(ctx context.Context, id int64) (*domain.Dispensary, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreditDispensary(ctx context.Context, id int64, amount decimal.Decimal) error
}
