package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"weedhaven-storefront/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartStore_GetMissing_ReturnsEmptyCart(t *testing.T) {
	store := NewCartStore()

	cart, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	require.NotNil(t, cart)
	assert.True(t, cart.IsEmpty())
}

func TestCartStore_SaveAndGet(t *testing.T) {
	store := NewCartStore()
	ctx := context.Background()

	cart := &domain.Cart{}
	cart.Add(domain.CartItem{ProductID: 1, Name: "Blue Dream", Price: decimal.RequireFromString("15.00")})
	require.NoError(t, store.Save(ctx, "sess-1", cart, time.Hour))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Blue Dream", got.Items[0].Name)
}

func TestCartStore_GetReturnsCopy(t *testing.T) {
	store := NewCartStore()
	ctx := context.Background()

	cart := &domain.Cart{}
	cart.Add(domain.CartItem{ProductID: 1, Name: "Blue Dream", Price: decimal.RequireFromString("15.00")})
	require.NoError(t, store.Save(ctx, "sess-1", cart, time.Hour))

	first, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	first.RemoveAll(1)

	second, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, second.Items, 1, "mutating a returned cart must not change the stored one")
}

func TestCartStore_Expiry(t *testing.T) {
	store := NewCartStore()
	current := time.Now()
	store.now = func() time.Time { return current }
	ctx := context.Background()

	cart := &domain.Cart{}
	cart.Add(domain.CartItem{ProductID: 1, Name: "Blue Dream", Price: decimal.RequireFromString("15.00")})
	require.NoError(t, store.Save(ctx, "sess-1", cart, time.Minute))

	current = current.Add(2 * time.Minute)

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestCartStore_ConcurrentAccess(t *testing.T) {
	store := NewCartStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cart := &domain.Cart{}
			cart.Add(domain.CartItem{ProductID: 1, Name: "Blue Dream", Price: decimal.RequireFromString("15.00")})
			_ = store.Save(ctx, "sess-1", cart, time.Hour)
			_, _ = store.Get(ctx, "sess-1")
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}

func TestSessionStore_Lifecycle(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, got.Connected())

	addr := "0x1234567890123456789012345678901234567890"
	require.NoError(t, store.Save(ctx, "sess-1", &domain.UserSession{Address: &addr}, time.Hour))

	got, err = store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, got.Connected())
	assert.Equal(t, addr, *got.Address)

	require.NoError(t, store.Delete(ctx, "sess-1"))

	got, err = store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, got.Connected())
}

func TestSessionStore_Expiry(t *testing.T) {
	store := NewSessionStore()
	current := time.Now()
	store.now = func() time.Time { return current }
	ctx := context.Background()

	addr := "0x1234567890123456789012345678901234567890"
	require.NoError(t, store.Save(ctx, "sess-1", &domain.UserSession{Address: &addr}, time.Minute))

	current = current.Add(2 * time.Minute)

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.False(t, got.Connected())
}
