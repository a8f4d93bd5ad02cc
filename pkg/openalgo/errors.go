package openalgo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// APIError represents an error response from the OpenAlgo API. It covers
// both HTTP-level failures and "status": "error" envelopes returned with
// a 200.
type APIError struct {
	StatusCode int
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.StatusCode != 0 && e.StatusCode != http.StatusOK {
		return fmt.Sprintf("API error (%d): %s", e.StatusCode, msg)
	}
	return fmt.Sprintf("API error: %s", msg)
}

// IsUnauthorized returns true if the error is a 401/403, which for
// OpenAlgo means an invalid or revoked API key.
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// errorEnvelope is the JSON shape of OpenAlgo error responses.
type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// CheckResponse checks an HTTP response for errors. A status code >= 400
// is parsed into an APIError with the server's message when one is
// present. 2xx responses return nil; the "status": "error" envelope on a
// 2xx is left to the per-endpoint decoders, which see the full payload.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(resp.Body)
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		// Body is not JSON; keep the HTTP status text.
		return apiErr
	}

	if env.Message != "" {
		apiErr.Message = env.Message
	} else if env.Error != "" {
		apiErr.Message = env.Error
	}

	return apiErr
}

// DecodeJSON decodes a JSON response body into the given target.
func DecodeJSON(resp *http.Response, target interface{}) error {
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
