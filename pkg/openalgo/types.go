// Package openalgo provides shared request/response types and utilities
// for the OpenAlgo REST API.
package openalgo

// Every API call is a POST to {host}/api/v1/{endpoint} with the API key
// carried in the JSON payload. Responses share the envelope
// {"status": "success"|"error", ...}.

// StatusSuccess and StatusError are the two values of the response
// envelope's status field.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// OrderRequest represents a placeorder request.
type OrderRequest struct {
	APIKey            string `json:"apikey"`
	Strategy          string `json:"strategy"`
	Symbol            string `json:"symbol"`
	Exchange          string `json:"exchange"`
	Action            string `json:"action"`
	Quantity          int    `json:"quantity"`
	PriceType         string `json:"pricetype"`
	Product           string `json:"product"`
	Price             string `json:"price,omitempty"`
	TriggerPrice      string `json:"trigger_price,omitempty"`
	DisclosedQuantity string `json:"disclosed_quantity,omitempty"`
}

// OrderResponse represents the response to placeorder and placesmartorder.
type OrderResponse struct {
	Status  string `json:"status"`
	OrderID string `json:"orderid"`
	Message string `json:"message,omitempty"`
}

// SmartOrderRequest represents a placesmartorder request. PositionSize is
// the desired net position after the order fills; the venue derives the
// actual order quantity from it.
type SmartOrderRequest struct {
	APIKey       string `json:"apikey"`
	Strategy     string `json:"strategy"`
	Symbol       string `json:"symbol"`
	Exchange     string `json:"exchange"`
	Action       string `json:"action"`
	Quantity     int    `json:"quantity"`
	PositionSize int    `json:"position_size"`
	PriceType    string `json:"pricetype"`
	Product      string `json:"product"`
}

// OptionsOrderRequest represents an optionsorder request. The venue
// resolves Offset (ATM, ITM1-10, OTM1-10) against the live underlying
// price and returns the concrete contract symbol.
type OptionsOrderRequest struct {
	APIKey     string `json:"apikey"`
	Strategy   string `json:"strategy"`
	Underlying string `json:"underlying"`
	Exchange   string `json:"exchange"`
	ExpiryDate string `json:"expiry_date"`
	Offset     string `json:"offset"`
	OptionType string `json:"option_type"`
	Action     string `json:"action"`
	Quantity   int    `json:"quantity"`
	PriceType  string `json:"pricetype"`
	Product    string `json:"product"`
	SplitSize  int    `json:"splitsize,omitempty"`
}

// OptionsOrderResponse represents the response to optionsorder.
type OptionsOrderResponse struct {
	Status        string `json:"status"`
	OrderID       string `json:"orderid"`
	Symbol        string `json:"symbol"`
	Exchange      string `json:"exchange"`
	UnderlyingLTP string `json:"underlying_ltp"`
	Message       string `json:"message,omitempty"`
}

// MultiLeg is one leg of an optionsmultiorder request.
type MultiLeg struct {
	Offset     string `json:"offset"`
	OptionType string `json:"option_type"`
	Action     string `json:"action"`
	Quantity   int    `json:"quantity"`
}

// MultiOrderRequest represents an optionsmultiorder request.
type MultiOrderRequest struct {
	APIKey     string     `json:"apikey"`
	Strategy   string     `json:"strategy"`
	Underlying string     `json:"underlying"`
	Exchange   string     `json:"exchange"`
	ExpiryDate string     `json:"expiry_date"`
	Legs       []MultiLeg `json:"legs"`
	PriceType  string     `json:"pricetype"`
	Product    string     `json:"product"`
}

// MultiLegResult is the per-leg outcome within a MultiOrderResponse.
// Legs fail independently; a failed leg never blocks its siblings.
type MultiLegResult struct {
	Leg     int    `json:"leg"`
	Status  string `json:"status"`
	Action  string `json:"action"`
	Symbol  string `json:"symbol"`
	OrderID string `json:"orderid,omitempty"`
	Message string `json:"message,omitempty"`
}

// MultiOrderResponse represents the response to optionsmultiorder.
type MultiOrderResponse struct {
	Status        string           `json:"status"`
	UnderlyingLTP string           `json:"underlying_ltp"`
	Results       []MultiLegResult `json:"results"`
	Message       string           `json:"message,omitempty"`
}

// Quote represents the data section of a quotes response.
type Quote struct {
	LTP    float64 `json:"ltp"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"prev_close"`
	Volume int64   `json:"volume"`
	Bid    float64 `json:"bid"`
	Ask    float64 `json:"ask"`
}

// QuoteResponse represents the response to quotes.
type QuoteResponse struct {
	Status  string `json:"status"`
	Data    Quote  `json:"data"`
	Message string `json:"message,omitempty"`
}

// DepthLevel is one price level of the order book.
type DepthLevel struct {
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// Depth represents the data section of a depth response.
type Depth struct {
	Bids   []DepthLevel `json:"bids"`
	Asks   []DepthLevel `json:"asks"`
	LTP    float64      `json:"ltp"`
	Volume int64        `json:"volume"`
}

// DepthResponse represents the response to depth.
type DepthResponse struct {
	Status  string `json:"status"`
	Data    Depth  `json:"data"`
	Message string `json:"message,omitempty"`
}

// Candle is one OHLCV bar of a history response.
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

// HistoryResponse represents the response to history.
type HistoryResponse struct {
	Status  string   `json:"status"`
	Data    []Candle `json:"data"`
	Message string   `json:"message,omitempty"`
}

// IntervalsResponse represents the response to intervals. Categories map
// interval families (seconds, minutes, hours, days) to supported codes.
type IntervalsResponse struct {
	Status  string              `json:"status"`
	Data    map[string][]string `json:"data"`
	Message string              `json:"message,omitempty"`
}

// Funds represents the data section of a funds response. Monetary values
// arrive as strings and are formatted, never computed on, locally.
type Funds struct {
	AvailableCash  string `json:"availablecash"`
	Collateral     string `json:"collateral"`
	M2MRealized    string `json:"m2mrealized"`
	M2MUnrealized  string `json:"m2munrealized"`
	UtilizedDebits string `json:"utiliseddebits"`
}

// FundsResponse represents the response to funds.
type FundsResponse struct {
	Status  string `json:"status"`
	Data    Funds  `json:"data"`
	Message string `json:"message,omitempty"`
}

// Position represents one entry of a positionbook response.
type Position struct {
	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
	AvgPrice string `json:"average_price"`
	LTP      string `json:"ltp"`
	PNL      string `json:"pnl"`
}

// PositionBookResponse represents the response to positionbook.
type PositionBookResponse struct {
	Status  string     `json:"status"`
	Data    []Position `json:"data"`
	Message string     `json:"message,omitempty"`
}

// Holding represents one entry of a holdings response.
type Holding struct {
	Symbol    string `json:"symbol"`
	Exchange  string `json:"exchange"`
	Quantity  int    `json:"quantity"`
	AvgPrice  string `json:"average_price"`
	LTP       string `json:"ltp"`
	PNL       string `json:"pnl"`
	PNLPct    string `json:"pnlpercent"`
	DayChange string `json:"day_change"`
}

// HoldingsResponse represents the response to holdings.
type HoldingsResponse struct {
	Status  string    `json:"status"`
	Data    []Holding `json:"data"`
	Message string    `json:"message,omitempty"`
}

// BookOrder represents one entry of an orderbook response.
type BookOrder struct {
	OrderID   string `json:"orderid"`
	Symbol    string `json:"symbol"`
	Exchange  string `json:"exchange"`
	Action    string `json:"action"`
	Quantity  int    `json:"quantity"`
	Price     string `json:"price"`
	PriceType string `json:"pricetype"`
	Product   string `json:"product"`
	Status    string `json:"order_status"`
	Timestamp string `json:"timestamp"`
}

// OrderBookResponse represents the response to orderbook.
type OrderBookResponse struct {
	Status  string      `json:"status"`
	Data    []BookOrder `json:"data"`
	Message string      `json:"message,omitempty"`
}

// MarginPosition is one hypothetical position of a margincalculator
// request. Quantity is a string on the wire.
type MarginPosition struct {
	Symbol    string `json:"symbol"`
	Exchange  string `json:"exchange"`
	Action    string `json:"action"`
	Product   string `json:"product"`
	PriceType string `json:"pricetype"`
	Quantity  string `json:"quantity"`
}

// MarginRequest represents a margincalculator request.
type MarginRequest struct {
	APIKey    string           `json:"apikey"`
	Positions []MarginPosition `json:"positions"`
}

// Margin represents the data section of a margincalculator response.
type Margin struct {
	TotalMarginRequired float64 `json:"total_margin_required"`
	SpanMargin          float64 `json:"span_margin"`
	ExposureMargin      float64 `json:"exposure_margin"`
}

// MarginResponse represents the response to margincalculator.
type MarginResponse struct {
	Status  string `json:"status"`
	Data    Margin `json:"data"`
	Message string `json:"message,omitempty"`
}

// PingResponse represents the response to ping, used to verify an API key.
type PingResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}
