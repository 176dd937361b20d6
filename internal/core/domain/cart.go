package domain

import "github.com/shopspring/decimal"

// CartItem is one line in a cart. The same product added twice yields two
// line items; price is captured at add time from the catalog.
type CartItem struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// Cart is the ordered collection of a session's selected products.
type Cart struct {
	Items []CartItem `json:"items"`
}

// Add appends a line item.
func (c *Cart) Add(item CartItem) {
	c.Items = append(c.Items, item)
}

// RemoveAll removes every line item with the given product id and returns
// how many were removed. Removing an absent id is a no-op.
func (c *Cart) RemoveAll(productID int64) int {
	kept := c.Items[:0]
	removed := 0
	for _, item := range c.Items {
		if item.ProductID == productID {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	c.Items = kept
	return removed
}

// Subtotal returns the sum of line item prices. The service fee is applied
// only by the checkout-total computation, never here.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price)
	}
	return total
}

// IsEmpty reports whether the cart has no line items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
