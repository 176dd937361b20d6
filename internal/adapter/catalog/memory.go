// Package catalog provides the seeded in-memory product and dispensary
// source. The storefront is a demo: the catalog ships with fixed data and
// the only mutation is crediting a dispensary after a settled crypto
// payment.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"weedhaven-storefront/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Memory implements ports.Catalog over seeded slices guarded by a RWMutex.
type Memory struct {
	mu           sync.RWMutex
	products     []domain.Product
	dispensaries []domain.Dispensary
}

// NewMemory creates a catalog with the demo seed data.
func NewMemory() *Memory {
	return &Memory{
		products:     seedProducts(),
		dispensaries: seedDispensaries(),
	}
}

func seedProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Blue Dream", Price: decimal.RequireFromString("15.00"), Image: "🌿"},
		{ID: 2, Name: "Sour Diesel", Price: decimal.RequireFromString("12.00"), Image: "🍃"},
		{ID: 3, Name: "OG Kush", Price: decimal.RequireFromString("18.00"), Image: "🌱"},
	}
}

func seedDispensaries() []domain.Dispensary {
	return []domain.Dispensary{
		{
			ID:            1,
			Name:          "Green Leaf Dispensary",
			StreetAddress: "123 Main St",
			Rating:        4.8,
			PayoutAddress: "0x1234567890123456789012345678901234567890",
			Balance:       decimal.NewFromInt(1000),
		},
		{
			ID:            2,
			Name:          "Herbal Bliss",
			StreetAddress: "456 Oak Ave",
			Rating:        4.6,
			PayoutAddress: "0x2345678901234567890123456789012345678901",
			Balance:       decimal.NewFromInt(1500),
		},
		{
			ID:            3,
			Name:          "Nature's Gift",
			StreetAddress: "789 Pine Rd",
			Rating:        4.9,
			PayoutAddress: "0x3456789012345678901234567890123456789012",
			Balance:       decimal.NewFromInt(2000),
		},
	}
}

// ListDispensaries returns all dispensaries.
func (m *Memory) ListDispensaries(_ context.Context) ([]domain.Dispensary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Dispensary(nil), m.dispensaries...), nil
}

// GetDispensary returns the dispensary with the given id, or nil when
// unknown.
func (m *Memory) GetDispensary(_ context.Context, id int64) (*domain.Dispensary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, d := range m.dispensaries {
		if d.ID == id {
			found := d
			return &found, nil
		}
	}
	return nil, nil
}

// ListProducts returns all products.
func (m *Memory) ListProducts(_ context.Context) ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Product(nil), m.products...), nil
}

// GetProduct returns the product with the given id, or nil when unknown.
func (m *Memory) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

// CreditDispensary adds a settled payment amount to the dispensary's local
// balance.
func (m *Memory) CreditDispensary(_ context.Context, id int64, amount decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.dispensaries {
		if m.dispensaries[i].ID == id {
			m.dispensaries[i].Balance = m.dispensaries[i].Balance.Add(amount)
			return nil
		}
	}
	return fmt.Errorf("unknown dispensary %d", id)
}
