package dto

// ProductResponse is one catalog product.
type ProductResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Image string `json:"image"`
}

// DispensaryResponse is one catalog dispensary.
type DispensaryResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	StreetAddress string  `json:"street_address"`
	Rating        float64 `json:"rating"`
	PayoutAddress string  `json:"payout_address"`
	Balance       string  `json:"balance"`
}

// AddItemRequest is the request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
}

// CartItemResponse is one cart line item.
type CartItemResponse struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
}

// CartResponse is the cart snapshot with computed totals.
type CartResponse struct {
	Items    []CartItemResponse `json:"items"`
	Subtotal string             `json:"subtotal"`
	Fee      string             `json:"fee"`
	Total    string             `json:"total"`
}

// WalletSessionResponse is the session's wallet state.
type WalletSessionResponse struct {
	Connected     bool    `json:"connected"`
	Address       *string `json:"address,omitempty"`
	NativeBalance *string `json:"native_balance,omitempty"`
	TokenBalance  *string `json:"token_balance,omitempty"`
	ConnectedAt   *string `json:"connected_at,omitempty"`
}

// CardRequest is the card form payload for card checkouts. Whether the card
// is chargeable is the processor's call; these rules only catch an obviously
// incomplete form.
type CardRequest struct {
	Number   string `json:"number" binding:"required,card_number"`
	ExpMonth int    `json:"exp_month" binding:"required,min=1,max=12"`
	ExpYear  int    `json:"exp_year" binding:"required,min=2024,max=2100"`
	CVC      string `json:"cvc" binding:"required,numeric,min=3,max=4"`
	Holder   string `json:"holder" binding:"required,max=100"`
}

// CheckoutRequest is the request body for a checkout attempt.
type CheckoutRequest struct {
	Method       string       `json:"method" binding:"required,oneof=card crypto"`
	DispensaryID int64        `json:"dispensary_id" binding:"required,gt=0"`
	Card         *CardRequest `json:"card,omitempty"`
}

// CheckoutResponse is the terminal result of a checkout attempt.
type CheckoutResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Amount  string  `json:"amount"`
	TxHash  *string `json:"tx_hash,omitempty"`
}
