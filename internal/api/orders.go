package api

import (
	"context"

	"github.com/tradeplumber/oa/pkg/openalgo"
)

// PlaceOrder submits a single order. The response envelope is returned
// as-is: a rejected order comes back with Status "error" and a message,
// not a Go error, so batch callers can report each leg independently.
func (c *Client) PlaceOrder(ctx context.Context, req openalgo.OrderRequest) (*openalgo.OrderResponse, error) {
	req.APIKey = c.APIKey

	var out openalgo.OrderResponse
	if err := c.call(ctx, "placeorder", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PlaceSmartOrder submits a position-aware order. The server sizes the
// order against the current position for the symbol.
func (c *Client) PlaceSmartOrder(ctx context.Context, req openalgo.SmartOrderRequest) (*openalgo.OrderResponse, error) {
	req.APIKey = c.APIKey

	var out openalgo.OrderResponse
	if err := c.call(ctx, "placesmartorder", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
