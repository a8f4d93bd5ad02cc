package api

import (
	"context"

	"github.com/tradeplumber/oa/pkg/openalgo"
)

type symbolRequest struct {
	APIKey   string `json:"apikey"`
	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`
}

type historyRequest struct {
	APIKey    string `json:"apikey"`
	Symbol    string `json:"symbol"`
	Exchange  string `json:"exchange"`
	Interval  string `json:"interval"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Quotes fetches the latest quote for a symbol.
func (c *Client) Quotes(ctx context.Context, symbol, exchange string) (*openalgo.Quote, error) {
	payload := symbolRequest{APIKey: c.APIKey, Symbol: symbol, Exchange: exchange}

	var out openalgo.QuoteResponse
	if err := c.call(ctx, "quotes", payload, &out); err != nil {
		return nil, err
	}
	if out.Status != openalgo.StatusSuccess {
		return nil, &openalgo.APIError{Message: out.Message}
	}
	return &out.Data, nil
}

// MarketDepth fetches order book depth for a symbol.
func (c *Client) MarketDepth(ctx context.Context, symbol, exchange string) (*openalgo.Depth, error) {
	payload := symbolRequest{APIKey: c.APIKey, Symbol: symbol, Exchange: exchange}

	var out openalgo.DepthResponse
	if err := c.call(ctx, "depth", payload, &out); err != nil {
		return nil, err
	}
	if out.Status != openalgo.StatusSuccess {
		return nil, &openalgo.APIError{Message: out.Message}
	}
	return &out.Data, nil
}

// History fetches OHLCV candles for a symbol over a date range. Dates
// are YYYY-MM-DD as the server expects.
func (c *Client) History(ctx context.Context, symbol, exchange, interval, startDate, endDate string) ([]openalgo.Candle, error) {
	payload := historyRequest{
		APIKey:    c.APIKey,
		Symbol:    symbol,
		Exchange:  exchange,
		Interval:  interval,
		StartDate: startDate,
		EndDate:   endDate,
	}

	var out openalgo.HistoryResponse
	if err := c.call(ctx, "history", payload, &out); err != nil {
		return nil, err
	}
	if out.Status != openalgo.StatusSuccess {
		return nil, &openalgo.APIError{Message: out.Message}
	}
	return out.Data, nil
}

// Intervals fetches the candle intervals the connected broker supports,
// grouped by family (seconds, minutes, hours, days).
func (c *Client) Intervals(ctx context.Context) (map[string][]string, error) {
	var out openalgo.IntervalsResponse
	if err := c.call(ctx, "intervals", keyed{APIKey: c.APIKey}, &out); err != nil {
		return nil, err
	}
	if out.Status != openalgo.StatusSuccess {
		return nil, &openalgo.APIError{Message: out.Message}
	}
	return out.Data, nil
}
