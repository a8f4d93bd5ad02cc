package api

import (
	"context"

	"github.com/tradeplumber/oa/pkg/openalgo"
)

// Funds fetches cash balances and margin utilisation.
func (c *Client) Funds(ctx context.Context) (*openalgo.Funds, error) {
	var out openalgo.FundsResponse
	if err := c.call(ctx, "funds", keyed{APIKey: c.APIKey}, &out); err != nil {
		return nil, err
	}
	if out.Status != openalgo.StatusSuccess {
		return nil, &openalgo.APIError{Message: out.Message}
	}
	return &out.Data, nil
}

// PositionBook fetches open positions.
func (c *Client) PositionBook(ctx context.Context) ([]openalgo.Position, error) {
	var out openalgo.PositionBookResponse
	if err := c.call(ctx, "positionbook", keyed{APIKey: c.APIKey}, &out); err != nil {
		return nil, err
	}
	if out.Status != openalgo.StatusSuccess {
		return nil, &openalgo.APIError{Message: out.Message}
	}
	return out.Data, nil
}

// Holdings fetches long-term holdings.
func (c *Client) Holdings(ctx context.Context) ([]openalgo.Holding, error) {
	var out openalgo.HoldingsResponse
	if err := c.call(ctx, "holdings", keyed{APIKey: c.APIKey}, &out); err != nil {
		return nil, err
	}
	if out.Status != openalgo.StatusSuccess {
		return nil, &openalgo.APIError{Message: out.Message}
	}
	return out.Data, nil
}

// OrderBook fetches today's orders with their current statuses.
func (c *Client) OrderBook(ctx context.Context) ([]openalgo.BookOrder, error) {
	var out openalgo.OrderBookResponse
	if err := c.call(ctx, "orderbook", keyed{APIKey: c.APIKey}, &out); err != nil {
		return nil, err
	}
	if out.Status != openalgo.StatusSuccess {
		return nil, &openalgo.APIError{Message: out.Message}
	}
	return out.Data, nil
}

// MarginCalculator estimates the margin required for a set of
// hypothetical positions without placing them.
func (c *Client) MarginCalculator(ctx context.Context, positions []openalgo.MarginPosition) (*openalgo.Margin, error) {
	payload := openalgo.MarginRequest{APIKey: c.APIKey, Positions: positions}

	var out openalgo.MarginResponse
	if err := c.call(ctx, "margincalculator", payload, &out); err != nil {
		return nil, err
	}
	if out.Status != openalgo.StatusSuccess {
		return nil, &openalgo.APIError{Message: out.Message}
	}
	return &out.Data, nil
}
