package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteCmd_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/quotes", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "RELIANCE", req["symbol"])
		assert.Equal(t, "NSE", req["exchange"])

		_, _ = w.Write([]byte(`{
			"status": "success",
			"data": {"ltp": 2901.5, "open": 2890, "high": 2910, "low": 2885, "prev_close": 2895, "volume": 1234567, "bid": 2901.25, "ask": 2901.75}
		}`))
	}))
	defer server.Close()

	opts := testClientOptions(server.URL)
	cmd := newQuoteCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"reliance"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "RELIANCE (NSE)")
	assert.Contains(t, out.String(), "2901.50")
	assert.Contains(t, out.String(), "1,234,567")
}

func TestQuoteCmd_JSONMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "success", "data": {"ltp": 2901.5}}`))
	}))
	defer server.Close()

	opts := testClientOptions(server.URL)
	opts.jsonMode = true
	cmd := newQuoteCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"RELIANCE"})

	require.NoError(t, cmd.Execute())

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, "2901.50", decoded["LTP"])
}

func TestQuoteCmd_UnknownSymbol(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "error", "message": "symbol not found"}`))
	}))
	defer server.Close()

	opts := testClientOptions(server.URL)
	cmd := newQuoteCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"NOPE"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symbol not found")
}

func TestQuoteDepthCmd_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/depth", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"status": "success",
			"data": {
				"bids": [{"price": 2901.25, "quantity": 300}],
				"asks": [{"price": 2901.75, "quantity": 150}, {"price": 2902.00, "quantity": 500}],
				"ltp": 2901.5,
				"volume": 9000
			}
		}`))
	}))
	defer server.Close()

	opts := testClientOptions(server.URL)
	cmd := newQuoteDepthCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"RELIANCE"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "2901.25")
	assert.Contains(t, out.String(), "2902.00")
	// Uneven book pads the missing side
	assert.Contains(t, out.String(), "-")
}
