package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClientOptions returns resolved options pointing at a test server.
func testClientOptions(host string) clientOptions {
	return clientOptions{
		host:           host,
		apiKey:         "test-key",
		exchange:       "NSE",
		indexExchange:  "NSE_INDEX",
		product:        "MIS",
		optionsProduct: "NRML",
		strategyTag:    "oa-cli",
		tradingEnabled: true,
	}
}

func TestOrderPlaceCmd_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/placeorder", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-key", req["apikey"])
		assert.Equal(t, "RELIANCE", req["symbol"])
		assert.Equal(t, "NSE", req["exchange"])
		assert.Equal(t, "BUY", req["action"])
		assert.Equal(t, float64(10), req["quantity"])
		assert.Equal(t, "MARKET", req["pricetype"])
		assert.Equal(t, "MIS", req["product"])

		_, _ = w.Write([]byte(`{"status": "success", "orderid": "240131000012345"}`))
	}))
	defer server.Close()

	opts := testClientOptions(server.URL)
	cmd := newOrderPlaceCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"reliance", "--action", "BUY", "--quantity", "10", "--yes"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Order placed")
	assert.Contains(t, out.String(), "240131000012345")
}

func TestOrderPlaceCmd_Rejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "error", "message": "insufficient margin"}`))
	}))
	defer server.Close()

	opts := testClientOptions(server.URL)
	cmd := newOrderPlaceCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"RELIANCE", "--action", "BUY", "--quantity", "10", "--yes"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient margin")
}

func TestOrderPlaceCmd_TradingDisabled(t *testing.T) {
	opts := testClientOptions("http://127.0.0.1:1")
	opts.tradingEnabled = false
	cmd := newOrderPlaceCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"RELIANCE", "--action", "BUY", "--quantity", "10", "--yes"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "trading is disabled")
}

func TestOrderPlaceCmd_RequiresConfirmation(t *testing.T) {
	opts := testClientOptions("http://127.0.0.1:1")
	cmd := newOrderPlaceCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"RELIANCE", "--action", "BUY", "--quantity", "10"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")
	// Preview still printed before the refusal
	assert.Contains(t, out.String(), "Order Preview")
}

func TestOrderPlaceCmd_LimitRequiresPrice(t *testing.T) {
	opts := testClientOptions("http://127.0.0.1:1")
	cmd := newOrderPlaceCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"RELIANCE", "--action", "BUY", "--quantity", "10", "--price-type", "LIMIT", "--yes"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--price")
}

func TestOrderSmartCmd_NoOp(t *testing.T) {
	var placed atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/positionbook":
			_, _ = w.Write([]byte(`{"status": "success", "data": [
				{"symbol": "RELIANCE", "exchange": "NSE", "product": "MIS", "quantity": 100, "average_price": "2890.00", "ltp": "2900.00", "pnl": "1000.00"}
			]}`))
		case "/api/v1/placesmartorder":
			placed.Add(1)
			_, _ = w.Write([]byte(`{"status": "success", "orderid": "x"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	opts := testClientOptions(server.URL)
	cmd := newOrderSmartCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"RELIANCE", "--action", "BUY", "--quantity", "25", "--position-size", "100", "--yes"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "No order sent")
	assert.Equal(t, int32(0), placed.Load(), "no order must reach the venue when position matches target")
}

func TestOrderSmartCmd_ComputedDeltaWins(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/positionbook":
			// Short 5, target 3: the venue must see a BUY of 8.
			_, _ = w.Write([]byte(`{"status": "success", "data": [
				{"symbol": "RELIANCE", "exchange": "NSE", "product": "MIS", "quantity": -5, "average_price": "2890.00", "ltp": "2900.00", "pnl": "0"}
			]}`))
		case "/api/v1/placesmartorder":
			var req map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "BUY", req["action"])
			assert.Equal(t, float64(8), req["quantity"])
			assert.Equal(t, float64(3), req["position_size"])
			_, _ = w.Write([]byte(`{"status": "success", "orderid": "240131000054321"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	opts := testClientOptions(server.URL)
	cmd := newOrderSmartCmd(&opts)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	// Stated SELL contradicts the computed BUY
	cmd.SetArgs([]string{"RELIANCE", "--action", "SELL", "--quantity", "8", "--position-size", "3", "--yes"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, errOut.String(), "Warning")
	assert.Contains(t, out.String(), "BUY 8")
}

func TestOrderSplitCmd_AllChunks(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/placeorder", r.URL.Path)
		n := calls.Add(1)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, float64(100), req["quantity"])

		_, _ = w.Write([]byte(`{"status": "success", "orderid": "order-` + string(rune('0'+n)) + `"}`))
	}))
	defer server.Close()

	opts := testClientOptions(server.URL)
	cmd := newOrderSplitCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"NIFTY28NOV2424000CE", "--action", "SELL", "--quantity", "500", "--max-chunk", "100", "--exchange", "NFO", "--product", "NRML", "--yes"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, int32(5), calls.Load())
	assert.Contains(t, out.String(), "500 in 5 orders")
}

func TestOrderSplitCmd_PartialFailure(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 2 {
			_, _ = w.Write([]byte(`{"status": "error", "message": "rms limit exceeded"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status": "success", "orderid": "ok"}`))
	}))
	defer server.Close()

	opts := testClientOptions(server.URL)
	cmd := newOrderSplitCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"NIFTY28NOV2424000CE", "--action", "SELL", "--quantity", "250", "--max-chunk", "100", "--exchange", "NFO", "--product", "NRML", "--yes"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 orders failed")
	// All three chunks were attempted and reported
	assert.Equal(t, int32(3), calls.Load())
	assert.Contains(t, out.String(), "rms limit exceeded")
}

func TestOrderSplitCmd_InvalidChunk(t *testing.T) {
	opts := testClientOptions("http://127.0.0.1:1")
	cmd := newOrderSplitCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"RELIANCE", "--action", "BUY", "--quantity", "100", "--max-chunk", "0", "--yes"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid split")
}

func TestOrderBasketCmd_FromFile(t *testing.T) {
	var calls atomic.Int32
	symbols := make(chan string, 2)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		symbols <- req["symbol"].(string)
		_, _ = w.Write([]byte(`{"status": "success", "orderid": "ok"}`))
	}))
	defer server.Close()

	basket := filepath.Join(t.TempDir(), "basket.json")
	require.NoError(t, os.WriteFile(basket, []byte(`[
		{"symbol": "RELIANCE", "action": "BUY", "quantity": 10},
		{"symbol": "TCS", "action": "SELL", "quantity": 5, "pricetype": "LIMIT", "price": "3700"}
	]`), 0o600))

	opts := testClientOptions(server.URL)
	cmd := newOrderBasketCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--file", basket, "--yes"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, int32(2), calls.Load())

	close(symbols)
	seen := map[string]bool{}
	for s := range symbols {
		seen[s] = true
	}
	assert.True(t, seen["RELIANCE"])
	assert.True(t, seen["TCS"])
}

func TestOrderBasketCmd_BadEntry(t *testing.T) {
	basket := filepath.Join(t.TempDir(), "basket.json")
	require.NoError(t, os.WriteFile(basket, []byte(`[{"symbol": "RELIANCE", "action": "HOLD", "quantity": 10}]`), 0o600))

	opts := testClientOptions("http://127.0.0.1:1")
	cmd := newOrderBasketCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--file", basket, "--yes"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid action")
}
