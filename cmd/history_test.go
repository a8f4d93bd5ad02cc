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

func TestHistoryCmd_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/history", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "NIFTY", req["symbol"])
		assert.Equal(t, "NSE_INDEX", req["exchange"])
		assert.Equal(t, "5m", req["interval"])
		assert.Equal(t, "2024-11-01", req["start_date"])
		assert.Equal(t, "2024-11-28", req["end_date"])

		_, _ = w.Write([]byte(`{
			"status": "success",
			"data": [
				{"timestamp": 1732776300, "open": 24100, "high": 24120, "low": 24090, "close": 24115, "volume": 5000}
			]
		}`))
	}))
	defer server.Close()

	opts := testClientOptions(server.URL)
	cmd := newHistoryCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"NIFTY", "--exchange", "NSE_INDEX", "--interval", "5m", "--from", "2024-11-01", "--to", "2024-11-28"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "24115.00")
	assert.Contains(t, out.String(), "5,000")
}

func TestHistoryCmd_InvalidDate(t *testing.T) {
	opts := testClientOptions("http://127.0.0.1:1")
	cmd := newHistoryCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"NIFTY", "--from", "01-11-2024", "--to", "2024-11-28"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "YYYY-MM-DD")
}

func TestHistoryCmd_MissingRange(t *testing.T) {
	opts := testClientOptions("http://127.0.0.1:1")
	cmd := newHistoryCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"NIFTY"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--from")
}

func TestHistoryIntervalsCmd_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/intervals", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"status": "success",
			"data": {"minutes": ["1m", "5m", "15m"], "days": ["D"]}
		}`))
	}))
	defer server.Close()

	opts := testClientOptions(server.URL)
	cmd := newHistoryIntervalsCmd(&opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "1m, 5m, 15m")
	assert.Contains(t, out.String(), "days")
}
