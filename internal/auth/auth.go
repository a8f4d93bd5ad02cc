// Package auth verifies OpenAlgo API credentials.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tradeplumber/oa/pkg/openalgo"
)

// Verify checks an API key against the server's ping endpoint. It is
// used during configure so a mistyped key is caught before it lands in
// the keyring, and this is the only process-fatal credential path: every
// later command fails per-request instead.
func Verify(ctx context.Context, host, apiKey string) error {
	payload, err := json.Marshal(map[string]string{"apikey": apiKey})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	url := strings.TrimSuffix(host, "/") + "/api/v1/ping"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		if len(body) > 0 {
			return fmt.Errorf("key verification failed: %d - %s", resp.StatusCode, string(body))
		}
		return fmt.Errorf("key verification failed: %d", resp.StatusCode)
	}

	var ping openalgo.PingResponse
	if err := json.NewDecoder(resp.Body).Decode(&ping); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if ping.Status != openalgo.StatusSuccess {
		if ping.Message != "" {
			return fmt.Errorf("key verification failed: %s", ping.Message)
		}
		return fmt.Errorf("key verification failed")
	}

	return nil
}
