// Package api implements the OpenAlgo REST client used by the commands.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tradeplumber/oa/pkg/openalgo"
)

// Client handles HTTP requests to an OpenAlgo server. Every endpoint is
// a POST to /api/v1/{endpoint}; the API key travels in the payload, not
// in a header.
type Client struct {
	Host       string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a new API client for the given host and API key.
func NewClient(host, apiKey string) *Client {
	return &Client{
		Host:   strings.TrimSuffix(host, "/"),
		APIKey: apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// post sends a JSON payload to /api/v1/{endpoint} and returns the raw
// response after HTTP-level error checking. Callers decode the envelope.
func (c *Client) post(ctx context.Context, endpoint string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	url := c.Host + "/api/v1/" + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if err := openalgo.CheckResponse(resp); err != nil {
		_ = resp.Body.Close()
		return nil, err
	}

	return resp, nil
}

// call posts the payload and decodes the response envelope into out.
func (c *Client) call(ctx context.Context, endpoint string, payload, out any) error {
	resp, err := c.post(ctx, endpoint, payload)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	return openalgo.DecodeJSON(resp, out)
}

// keyed is the minimal payload for endpoints that take only the API key.
type keyed struct {
	APIKey string `json:"apikey"`
}
