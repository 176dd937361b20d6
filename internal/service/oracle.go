package service

import (
	"context"

	"github.com/shopspring/decimal"
)

// StaticPriceOracle implements ports.PriceOracle with a fixed fiat-to-token
// rate. The default rate is 1:1, since the storefront settles in a USD
// stablecoin. It stands in for a real price-oracle lookup.
type StaticPriceOracle struct {
	rate decimal.Decimal
}

// NewStaticPriceOracle creates an oracle with the given fiat-to-token rate.
func NewStaticPriceOracle(rate decimal.Decimal) *StaticPriceOracle {
	return &StaticPriceOracle{rate: rate}
}

// NewOneToOneOracle creates the default 1:1 oracle.
func NewOneToOneOracle() *StaticPriceOracle {
	return NewStaticPriceOracle(decimal.NewFromInt(1))
}

// Quote converts a fiat amount to the settlement token amount.
func (o *StaticPriceOracle) Quote(_ context.Context, fiatAmount decimal.Decimal) (decimal.Decimal, error) {
	return fiatAmount.Mul(o.rate), nil
}
