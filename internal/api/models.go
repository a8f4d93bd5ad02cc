package api

import "github.com/tradeplumber/oa/pkg/openalgo"

// Re-export the wire types so command code can stay in this package.
type (
	OrderRequest         = openalgo.OrderRequest
	OrderResponse        = openalgo.OrderResponse
	SmartOrderRequest    = openalgo.SmartOrderRequest
	OptionsOrderRequest  = openalgo.OptionsOrderRequest
	OptionsOrderResponse = openalgo.OptionsOrderResponse
	MultiLeg             = openalgo.MultiLeg
	MultiOrderRequest    = openalgo.MultiOrderRequest
	MultiOrderResponse   = openalgo.MultiOrderResponse
	Quote                = openalgo.Quote
	Depth                = openalgo.Depth
	Candle               = openalgo.Candle
	Funds                = openalgo.Funds
	Position             = openalgo.Position
	Holding              = openalgo.Holding
	BookOrder            = openalgo.BookOrder
	Margin               = openalgo.Margin
	MarginPosition       = openalgo.MarginPosition
	MarginRequest        = openalgo.MarginRequest
)
