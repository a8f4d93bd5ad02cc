package api

import (
	"context"

	"github.com/tradeplumber/oa/pkg/openalgo"
)

// OptionsOrder places a single option leg resolved from an underlying
// and a strike offset. Strike selection happens server-side.
func (c *Client) OptionsOrder(ctx context.Context, req openalgo.OptionsOrderRequest) (*openalgo.OptionsOrderResponse, error) {
	req.APIKey = c.APIKey

	var out openalgo.OptionsOrderResponse
	if err := c.call(ctx, "optionsorder", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OptionsMultiOrder places a multi-leg options strategy in one call.
// Legs fail independently; per-leg outcomes are in the Results slice
// even when the overall status is "error".
func (c *Client) OptionsMultiOrder(ctx context.Context, req openalgo.MultiOrderRequest) (*openalgo.MultiOrderResponse, error) {
	req.APIKey = c.APIKey

	var out openalgo.MultiOrderResponse
	if err := c.call(ctx, "optionsmultiorder", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
