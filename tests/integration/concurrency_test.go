package integration

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCheckout_DuplicateSubmitRejected fires a second checkout for the same
// session while the first is still talking to the processor. Exactly one
// charge may go through; the overlapping attempt gets a 409.
func TestCheckout_DuplicateSubmitRejected(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)

	status, _ := app.do(t, client, http.MethodPost, "/api/v1/cart/items", `{"product_id":1}`)
	require.Equal(t, http.StatusOK, status)

	// Hold the first checkout inside Confirm.
	entered, release := app.processor.holdConfirms()

	var wg sync.WaitGroup
	wg.Add(1)
	var firstStatus int
	go func() {
		defer wg.Done()
		firstStatus, _ = app.do(t, client, http.MethodPost, "/api/v1/checkout", cardBody)
	}()

	// Wait until the first attempt is blocked in the processor call, then
	// submit again.
	<-entered
	secondStatus, secondEnvelope := app.do(t, client, http.MethodPost, "/api/v1/checkout", cardBody)
	assert.Equal(t, http.StatusConflict, secondStatus)
	assert.Equal(t, "CHK_009", secondEnvelope["error_code"])

	release()
	wg.Wait()

	assert.Equal(t, http.StatusOK, firstStatus)
	assert.Equal(t, 1, app.processor.confirmCount(), "only one charge may be submitted")
}

// TestCart_ConcurrentAdds hammers one session's cart from many goroutines;
// last-write-wins storage must never corrupt the cart or lose the fee math.
func TestCart_ConcurrentAdds(t *testing.T) {
	app := newTestApp(t)
	client := app.newClient(t)

	// Establish the session cookie first so all goroutines share one session.
	status, _ := app.do(t, client, http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, status)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, _ := app.do(t, client, http.MethodPost, "/api/v1/cart/items", `{"product_id":1}`)
			assert.Equal(t, http.StatusOK, s)
		}()
	}
	wg.Wait()

	status, envelope := app.do(t, client, http.MethodGet, "/api/v1/cart", "")
	require.Equal(t, http.StatusOK, status)
	items := data(envelope)["items"].([]any)
	// Read-modify-write without coordination: at least one add survives, and
	// every surviving line is the same product.
	assert.NotEmpty(t, items)
	for _, raw := range items {
		item := raw.(map[string]any)
		assert.Equal(t, float64(1), item["product_id"])
	}
}

// TestWalletConnect_SessionsIndependent verifies two sessions can connect
// concurrently without tripping each other's in-flight guard.
func TestWalletConnect_SessionsIndependent(t *testing.T) {
	app := newTestApp(t)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		client := app.newClient(t)
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, envelope := app.do(t, client, http.MethodPost, "/api/v1/wallet/connect", "")
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, true, data(envelope)["connected"])
		}()
	}
	wg.Wait()
}
