// Package batch submits constructed orders to the trading endpoint with
// bounded concurrency and per-order result accounting. It is the only
// part of the order engine that performs network I/O.
package batch

import (
	"context"
	"log/slog"

	"github.com/alitto/pond"
	"golang.org/x/time/rate"

	"github.com/tradeplumber/oa/pkg/openalgo"
)

// Defaults keep a batch comfortably inside typical venue rate limits.
const (
	DefaultMaxInFlight = 4
	DefaultRateLimit   = 10 // orders per second
)

// Placer places a single order with the venue. *api.Client satisfies it.
type Placer interface {
	PlaceOrder(ctx context.Context, req openalgo.OrderRequest) (*openalgo.OrderResponse, error)
}

// LegResult is the outcome of one submitted order. Every submitted order
// yields exactly one LegResult, failure or not.
type LegResult struct {
	OrderNum int    `json:"order_num"`
	Symbol   string `json:"symbol"`
	Quantity int    `json:"quantity"`
	Status   string `json:"status"`
	OrderID  string `json:"orderid,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Result aggregates a batch submission. Status is "success" iff every
// leg succeeded; Results always enumerates every order in submission
// order so the caller can reconcile exactly which legs went through.
type Result struct {
	Status  string      `json:"status"`
	Results []LegResult `json:"results"`
}

// Failed returns the legs that did not place.
func (r Result) Failed() []LegResult {
	var failed []LegResult
	for _, lr := range r.Results {
		if lr.Status != openalgo.StatusSuccess {
			failed = append(failed, lr)
		}
	}
	return failed
}

// Executor coordinates batch submission. Orders are independent network
// calls with no dependency on one another: one leg's failure never
// prevents attempting the rest, and no retry is ever made here. A
// timeout counts as that leg's failure (status unknown at the venue,
// caller reconciles against the order book).
type Executor struct {
	placer      Placer
	maxInFlight int
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// Option configures an Executor.
type Option func(*Executor)

// WithMaxInFlight caps concurrent in-flight submissions.
func WithMaxInFlight(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.maxInFlight = n
		}
	}
}

// WithRateLimit sets the venue request rate limit.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(e *Executor) {
		if perSecond > 0 && burst > 0 {
			e.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
		}
	}
}

// WithLogger sets the debug logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an Executor over the given Placer.
func New(p Placer, opts ...Option) *Executor {
	e := &Executor{
		placer:      p,
		maxInFlight: DefaultMaxInFlight,
		limiter:     rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultMaxInFlight),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Submit places every order in the batch and returns per-leg results.
// Results are keyed to their originating order by index, so completion
// order cannot lose or duplicate attribution.
func (e *Executor) Submit(ctx context.Context, orders []openalgo.OrderRequest) Result {
	results := make([]LegResult, len(orders))
	if len(orders) == 0 {
		return Result{Status: openalgo.StatusSuccess, Results: results}
	}

	pool := pond.New(e.maxInFlight, len(orders))
	group := pool.Group()
	for i, ord := range orders {
		group.Submit(func() {
			results[i] = e.placeOne(ctx, i, ord)
		})
	}
	group.Wait()
	pool.StopAndWait()

	status := openalgo.StatusSuccess
	for _, lr := range results {
		if lr.Status != openalgo.StatusSuccess {
			status = openalgo.StatusError
			break
		}
	}
	return Result{Status: status, Results: results}
}

func (e *Executor) placeOne(ctx context.Context, index int, ord openalgo.OrderRequest) LegResult {
	lr := LegResult{
		OrderNum: index + 1,
		Symbol:   ord.Symbol,
		Quantity: ord.Quantity,
	}

	if err := e.limiter.Wait(ctx); err != nil {
		lr.Status = openalgo.StatusError
		lr.Error = err.Error()
		return lr
	}

	e.logger.Debug("placing order",
		"order_num", lr.OrderNum, "symbol", ord.Symbol,
		"action", ord.Action, "quantity", ord.Quantity)

	resp, err := e.placer.PlaceOrder(ctx, ord)
	if err != nil {
		lr.Status = openalgo.StatusError
		lr.Error = err.Error()
		e.logger.Debug("order failed", "order_num", lr.OrderNum, "error", err)
		return lr
	}
	if resp.Status != openalgo.StatusSuccess {
		lr.Status = openalgo.StatusError
		lr.Error = resp.Message
		if lr.Error == "" {
			lr.Error = "order rejected"
		}
		return lr
	}

	lr.Status = openalgo.StatusSuccess
	lr.OrderID = resp.OrderID
	return lr
}
