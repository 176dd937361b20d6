package domain

import "github.com/shopspring/decimal"

// Dispensary is a storefront vendor. PayoutAddress is the vendor's on-chain
// account in 0x-hex form; Balance is the locally recorded settlement balance,
// mutated only by successful crypto payments and never durable.
type Dispensary struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	StreetAddress string          `json:"street_address"`
	Rating        float64         `json:"rating"` // 0-5
	PayoutAddress string          `json:"payout_address"`
	Balance       decimal.Decimal `json:"balance"`
}

// CanReceiveCrypto reports whether the dispensary has a payout address set.
func (d *Dispensary) CanReceiveCrypto() bool {
	return d.PayoutAddress != ""
}
