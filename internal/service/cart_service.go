package service

import (
	"context"
	"fmt"
	"time"

	"weedhaven-storefront/internal/core/domain"
	"weedhaven-storefront/internal/core/ports"
	"weedhaven-storefront/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// CartServiceImpl implements ports.CartService.
type CartServiceImpl struct {
	catalog ports.Catalog
	store   ports.CartStore
	fee     decimal.Decimal
	ttl     time.Duration
	log     zerolog.Logger
}

// NewCartService creates a new CartServiceImpl. fee is the fixed service fee
// added on top of the cart subtotal at checkout.
func NewCartService(
	catalog ports.Catalog,
	store ports.CartStore,
	fee decimal.Decimal,
	ttl time.Duration,
	log zerolog.Logger,
) *CartServiceImpl {
	return &CartServiceImpl{
		catalog: catalog,
		store:   store,
		fee:     fee,
		ttl:     ttl,
		log:     log,
	}
}

// AddItem appends the product as a new line item. Adding the same product
// twice yields two line items; the price is captured from the catalog.
func (s *CartServiceImpl) AddItem(ctx context.Context, sessionID string, productID int64) (*ports.CartView, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("lookup product: %w", err))
	}
	if product == nil {
		return nil, apperror.ErrProductNotFound()
	}

	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load cart: %w", err))
	}

	cart.Add(domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
	})

	if err := s.store.Save(ctx, sessionID, cart, s.ttl); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("save cart: %w", err))
	}

	s.log.Debug().
		Str("session_id", sessionID).
		Int64("product_id", productID).
		Int("cart_size", len(cart.Items)).
		Msg("added product to cart")

	return s.view(cart), nil
}

// RemoveItem removes every line item matching the product id. Removing an
// absent id leaves the cart unchanged.
func (s *CartServiceImpl) RemoveItem(ctx context.Context, sessionID string, productID int64) (*ports.CartView, error) {
	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load cart: %w", err))
	}

	if removed := cart.RemoveAll(productID); removed > 0 {
		if err := s.store.Save(ctx, sessionID, cart, s.ttl); err != nil {
			return nil, apperror.InternalError(fmt.Errorf("save cart: %w", err))
		}
		s.log.Debug().
			Str("session_id", sessionID).
			Int64("product_id", productID).
			Int("removed", removed).
			Msg("removed product from cart")
	}

	return s.view(cart), nil
}

// GetCart returns the cart with its computed totals.
func (s *CartServiceImpl) GetCart(ctx context.Context, sessionID string) (*ports.CartView, error) {
	cart, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load cart: %w", err))
	}
	return s.view(cart), nil
}

func (s *CartServiceImpl) view(cart *domain.Cart) *ports.CartView {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	subtotal := cart.Subtotal()
	return &ports.CartView{
		Items:    items,
		Subtotal: subtotal,
		Fee:      s.fee,
		Total:    subtotal.Add(s.fee),
	}
}
