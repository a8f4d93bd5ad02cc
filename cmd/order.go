package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/tradeplumber/oa/internal/api"
	"github.com/tradeplumber/oa/internal/batch"
	"github.com/tradeplumber/oa/internal/config"
	"github.com/tradeplumber/oa/internal/output"
	"github.com/tradeplumber/oa/internal/strategy"
	"github.com/tradeplumber/oa/pkg/openalgo"
)

// orderParams holds the shared order entry flags.
type orderParams struct {
	action       string
	quantity     int
	exchange     string
	priceType    string
	product      string
	price        string
	triggerPrice string
}

// newOrderCmd creates the parent order command.
func newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place orders",
		Long: `Place single, position-targeted, split, and basket orders.

Examples:
  oa order place RELIANCE --action BUY --quantity 10 --yes
  oa order smart RELIANCE --action BUY --quantity 25 --position-size 100 --yes
  oa order split NIFTY28NOV2424000CE --action SELL --quantity 500 --max-chunk 100 --yes
  oa order basket --file basket.json --yes`,
	}

	return cmd
}

// addOrderParamFlags registers the common order entry flags.
func addOrderParamFlags(cmd *cobra.Command, params *orderParams) {
	cmd.Flags().StringVarP(&params.action, "action", "a", "", "Order side: BUY or SELL (required)")
	cmd.Flags().IntVarP(&params.quantity, "quantity", "q", 0, "Order quantity (required)")
	cmd.Flags().StringVarP(&params.exchange, "exchange", "e", "", "Exchange (default from config)")
	cmd.Flags().StringVar(&params.priceType, "price-type", "MARKET", "Price type: MARKET, LIMIT, SL, SL-M")
	cmd.Flags().StringVar(&params.product, "product", "", "Product: MIS, CNC, NRML (default from config)")
	cmd.Flags().StringVar(&params.price, "price", "", "Limit price for LIMIT and SL orders")
	cmd.Flags().StringVar(&params.triggerPrice, "trigger-price", "", "Trigger price for SL and SL-M orders")
}

// resolveOrderParams applies config defaults and validates the flags.
func resolveOrderParams(opts clientOptions, params *orderParams) error {
	params.action = strings.ToUpper(params.action)
	if params.action != "BUY" && params.action != "SELL" {
		return fmt.Errorf("invalid action: %q (use BUY or SELL)", params.action)
	}
	if params.quantity <= 0 {
		return fmt.Errorf("quantity must be positive (use --quantity)")
	}
	if params.exchange == "" {
		params.exchange = opts.exchange
	}
	if params.product == "" {
		params.product = opts.product
	}

	params.priceType = strings.ToUpper(params.priceType)
	switch params.priceType {
	case "MARKET", "LIMIT", "SL", "SL-M":
	default:
		return fmt.Errorf("invalid price type: %q (use MARKET, LIMIT, SL or SL-M)", params.priceType)
	}
	if (params.priceType == "LIMIT" || params.priceType == "SL") && params.price == "" {
		return fmt.Errorf("%s orders require --price", params.priceType)
	}
	if (params.priceType == "SL" || params.priceType == "SL-M") && params.triggerPrice == "" {
		return fmt.Errorf("%s orders require --trigger-price", params.priceType)
	}

	return nil
}

// newOrderPlaceCmd creates the place subcommand with the given options.
func newOrderPlaceCmd(opts *clientOptions) *cobra.Command {
	var params orderParams
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "place SYMBOL",
		Short: "Place a single order",
		Long: `Place a single order for the given trading symbol.

Examples:
  oa order place RELIANCE --action BUY --quantity 10 --yes
  oa order place RELIANCE --action BUY --quantity 10 --price-type LIMIT --price 2890.00 --yes
  oa order place NIFTY28NOV2424000CE --action SELL --quantity 75 --exchange NFO --product NRML --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrderPlace(cmd, *opts, args[0], params, skipConfirm)
		},
	}

	addOrderParamFlags(cmd, &params)
	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cmd.SilenceUsage = true

	return cmd
}

func runOrderPlace(cmd *cobra.Command, opts clientOptions, symbol string, params orderParams, skipConfirm bool) error {
	if !opts.tradingEnabled {
		return config.ErrTradingDisabled
	}

	symbol = strings.ToUpper(symbol)
	if err := resolveOrderParams(opts, &params); err != nil {
		return err
	}

	// Show order preview (not in JSON mode)
	if !opts.jsonMode {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nOrder Preview:\n")
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Action:   %s\n", params.action)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Symbol:   %s (%s)\n", symbol, params.exchange)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Quantity: %d\n", params.quantity)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Type:     %s\n", params.priceType)
		if params.price != "" {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Price:    %s\n", params.price)
		}
		if params.triggerPrice != "" {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Trigger:  %s\n", params.triggerPrice)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Product:  %s\n\n", params.product)
	}

	// Require confirmation unless --yes flag is set
	if !skipConfirm {
		return fmt.Errorf("order requires confirmation (use --yes to confirm)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := api.NewClient(opts.host, opts.apiKey)
	resp, err := client.PlaceOrder(ctx, api.OrderRequest{
		Strategy:     opts.strategyTag,
		Symbol:       symbol,
		Exchange:     params.exchange,
		Action:       params.action,
		Quantity:     params.quantity,
		PriceType:    params.priceType,
		Product:      params.product,
		Price:        params.price,
		TriggerPrice: params.triggerPrice,
	})
	if err != nil {
		return fmt.Errorf("failed to place order: %w", err)
	}
	if resp.Status != openalgo.StatusSuccess {
		msg := resp.Message
		if msg == "" {
			msg = "order rejected"
		}
		return fmt.Errorf("order rejected: %s", msg)
	}

	if opts.jsonMode {
		result := map[string]any{
			"orderid":  resp.OrderID,
			"status":   "placed",
			"symbol":   symbol,
			"action":   params.action,
			"quantity": params.quantity,
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Order placed successfully!\n")
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Order ID: %s\n", resp.OrderID)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s %d x %s (%s)\n", params.action, params.quantity, symbol, params.priceType)

	return nil
}

// newOrderSmartCmd creates the smart subcommand with the given options.
func newOrderSmartCmd(opts *clientOptions) *cobra.Command {
	var params orderParams
	var positionSize int
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "smart SYMBOL",
		Short: "Place a position-targeted order",
		Long: `Place an order sized to move the current net position to a target.

The order quantity is the difference between the target position and the
current net position, fetched from the position book. If the position is
already at the target, no order is sent. The stated action is advisory:
the computed direction wins, with a warning on mismatch.

Examples:
  oa order smart RELIANCE --action BUY --quantity 25 --position-size 100 --yes
  oa order smart RELIANCE --action SELL --quantity 50 --position-size 0 --yes   # flatten`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrderSmart(cmd, *opts, args[0], params, positionSize, skipConfirm)
		},
	}

	addOrderParamFlags(cmd, &params)
	cmd.Flags().IntVarP(&positionSize, "position-size", "p", 0, "Target net position after fill (required)")
	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cmd.SilenceUsage = true

	return cmd
}

func runOrderSmart(cmd *cobra.Command, opts clientOptions, symbol string, params orderParams, positionSize int, skipConfirm bool) error {
	if !opts.tradingEnabled {
		return config.ErrTradingDisabled
	}

	symbol = strings.ToUpper(symbol)
	params.action = strings.ToUpper(params.action)
	if params.action != "BUY" && params.action != "SELL" {
		return fmt.Errorf("invalid action: %q (use BUY or SELL)", params.action)
	}
	if params.exchange == "" {
		params.exchange = opts.exchange
	}
	if params.product == "" {
		params.product = opts.product
	}
	if params.priceType == "" {
		params.priceType = "MARKET"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := api.NewClient(opts.host, opts.apiKey)

	current, err := currentPosition(ctx, client, symbol, params.exchange, params.product)
	if err != nil {
		return fmt.Errorf("failed to fetch current position: %w", err)
	}

	sized, ok := strategy.Delta(current, positionSize)
	if !ok {
		if opts.jsonMode {
			result := map[string]any{
				"status":        "no-op",
				"symbol":        symbol,
				"position_size": positionSize,
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Position already at target (%d). No order sent.\n", positionSize)
		return nil
	}

	// The computed delta is authoritative; a contradictory stated action
	// is worth a warning but never obeyed.
	if string(sized.Action) != params.action {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: stated %s but moving %d -> %d requires %s; placing %s\n",
			params.action, current, positionSize, sized.Action, sized.Action)
	}

	if !opts.jsonMode {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nSmart Order Preview:\n")
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Symbol:   %s (%s)\n", symbol, params.exchange)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Current:  %d\n", current)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Target:   %d\n", positionSize)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Order:    %s %d\n", sized.Action, sized.Quantity)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Product:  %s\n\n", params.product)
	}

	if !skipConfirm {
		return fmt.Errorf("order requires confirmation (use --yes to confirm)")
	}

	resp, err := client.PlaceSmartOrder(ctx, api.SmartOrderRequest{
		Strategy:     opts.strategyTag,
		Symbol:       symbol,
		Exchange:     params.exchange,
		Action:       string(sized.Action),
		Quantity:     sized.Quantity,
		PositionSize: positionSize,
		PriceType:    params.priceType,
		Product:      params.product,
	})
	if err != nil {
		return fmt.Errorf("failed to place smart order: %w", err)
	}
	if resp.Status != openalgo.StatusSuccess {
		msg := resp.Message
		if msg == "" {
			msg = "order rejected"
		}
		return fmt.Errorf("order rejected: %s", msg)
	}

	if opts.jsonMode {
		result := map[string]any{
			"orderid":       resp.OrderID,
			"status":        "placed",
			"symbol":        symbol,
			"action":        string(sized.Action),
			"quantity":      sized.Quantity,
			"position_size": positionSize,
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Smart order placed successfully!\n")
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Order ID: %s\n", resp.OrderID)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %s %d x %s (target position %d)\n", sized.Action, sized.Quantity, symbol, positionSize)

	return nil
}

// currentPosition returns the net quantity for symbol/exchange/product,
// zero when no position exists.
func currentPosition(ctx context.Context, client *api.Client, symbol, exchange, product string) (int, error) {
	positions, err := client.PositionBook(ctx)
	if err != nil {
		return 0, err
	}
	for _, p := range positions {
		if p.Symbol == symbol && p.Exchange == exchange && p.Product == product {
			return p.Quantity, nil
		}
	}
	return 0, nil
}

// newOrderSplitCmd creates the split subcommand with the given options.
func newOrderSplitCmd(opts *clientOptions) *cobra.Command {
	var params orderParams
	var maxChunk int
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "split SYMBOL",
		Short: "Split a large order into chunks",
		Long: `Split a large order into chunks no bigger than --max-chunk and place
them concurrently. Every chunk is reported individually; a failed chunk
never stops the others.

Examples:
  oa order split NIFTY28NOV2424000CE --action SELL --quantity 500 --max-chunk 100 --exchange NFO --product NRML --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrderSplit(cmd, *opts, args[0], params, maxChunk, skipConfirm)
		},
	}

	addOrderParamFlags(cmd, &params)
	cmd.Flags().IntVarP(&maxChunk, "max-chunk", "m", 0, "Maximum quantity per chunk (required)")
	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cmd.SilenceUsage = true

	return cmd
}

func runOrderSplit(cmd *cobra.Command, opts clientOptions, symbol string, params orderParams, maxChunk int, skipConfirm bool) error {
	if !opts.tradingEnabled {
		return config.ErrTradingDisabled
	}

	symbol = strings.ToUpper(symbol)
	if err := resolveOrderParams(opts, &params); err != nil {
		return err
	}

	chunks, err := strategy.Split(params.quantity, maxChunk)
	if err != nil {
		return err
	}

	batchID := uuid.New().String()

	if !opts.jsonMode {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nSplit Order Preview:\n")
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Action:   %s\n", params.action)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Symbol:   %s (%s)\n", symbol, params.exchange)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Total:    %d in %d orders (max %d each)\n", params.quantity, len(chunks), maxChunk)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Batch ID: %s\n\n", batchID)
	}

	if !skipConfirm {
		return fmt.Errorf("order requires confirmation (use --yes to confirm)")
	}

	orders := make([]api.OrderRequest, len(chunks))
	for i, qty := range chunks {
		orders[i] = api.OrderRequest{
			Strategy:     opts.strategyTag,
			Symbol:       symbol,
			Exchange:     params.exchange,
			Action:       params.action,
			Quantity:     qty,
			PriceType:    params.priceType,
			Product:      params.product,
			Price:        params.price,
			TriggerPrice: params.triggerPrice,
		}
	}

	return submitBatch(cmd, opts, batchID, orders)
}

// basketEntry is one order of a basket file. Missing exchange, product
// and price type fall back to config defaults.
type basketEntry struct {
	Symbol    string `json:"symbol"`
	Exchange  string `json:"exchange,omitempty"`
	Action    string `json:"action"`
	Quantity  int    `json:"quantity"`
	PriceType string `json:"pricetype,omitempty"`
	Product   string `json:"product,omitempty"`
	Price     string `json:"price,omitempty"`
}

// newOrderBasketCmd creates the basket subcommand with the given options.
func newOrderBasketCmd(opts *clientOptions) *cobra.Command {
	var file string
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "basket",
		Short: "Place a basket of orders from a file",
		Long: `Place every order in a JSON basket file concurrently. Orders are
independent: each succeeds or fails on its own and all outcomes are
reported.

The file holds a JSON array of orders:
  [
    {"symbol": "RELIANCE", "action": "BUY", "quantity": 10},
    {"symbol": "TCS", "action": "SELL", "quantity": 5, "pricetype": "LIMIT", "price": "3700"}
  ]

Examples:
  oa order basket --file basket.json --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrderBasket(cmd, *opts, file, skipConfirm)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Basket file (required)")
	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cmd.SilenceUsage = true

	return cmd
}

func runOrderBasket(cmd *cobra.Command, opts clientOptions, file string, skipConfirm bool) error {
	if !opts.tradingEnabled {
		return config.ErrTradingDisabled
	}
	if file == "" {
		return fmt.Errorf("basket file is required (use --file)")
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read basket file: %w", err)
	}

	var entries []basketEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse basket file: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("basket file contains no orders")
	}

	orders := make([]api.OrderRequest, len(entries))
	for i, e := range entries {
		action := strings.ToUpper(e.Action)
		if action != "BUY" && action != "SELL" {
			return fmt.Errorf("basket entry %d: invalid action %q", i+1, e.Action)
		}
		if e.Symbol == "" {
			return fmt.Errorf("basket entry %d: symbol is required", i+1)
		}
		if e.Quantity <= 0 {
			return fmt.Errorf("basket entry %d: quantity must be positive", i+1)
		}
		if e.Exchange == "" {
			e.Exchange = opts.exchange
		}
		if e.Product == "" {
			e.Product = opts.product
		}
		if e.PriceType == "" {
			e.PriceType = "MARKET"
		}

		orders[i] = api.OrderRequest{
			Strategy:  opts.strategyTag,
			Symbol:    strings.ToUpper(e.Symbol),
			Exchange:  e.Exchange,
			Action:    action,
			Quantity:  e.Quantity,
			PriceType: strings.ToUpper(e.PriceType),
			Product:   e.Product,
			Price:     e.Price,
		}
	}

	batchID := uuid.New().String()

	if !opts.jsonMode {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nBasket Preview (%d orders):\n", len(orders))
		for i, o := range orders {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  %d. %s %d x %s (%s, %s)\n", i+1, o.Action, o.Quantity, o.Symbol, o.Exchange, o.PriceType)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Batch ID: %s\n\n", batchID)
	}

	if !skipConfirm {
		return fmt.Errorf("order requires confirmation (use --yes to confirm)")
	}

	return submitBatch(cmd, opts, batchID, orders)
}

// submitBatch runs the orders through the execution coordinator and
// renders per-leg results. A partial failure is reported fully and then
// surfaced as a command error for the exit code.
func submitBatch(cmd *cobra.Command, opts clientOptions, batchID string, orders []api.OrderRequest) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := api.NewClient(opts.host, opts.apiKey)
	executor := batch.New(client)
	result := executor.Submit(ctx, orders)

	if opts.jsonMode {
		payload := map[string]any{
			"batch_id": batchID,
			"status":   result.Status,
			"results":  result.Results,
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return err
		}
	} else {
		formatter := output.New(cmd.OutOrStdout(), false)
		headers := []string{"#", "Symbol", "Qty", "Status", "Order ID / Error"}
		rows := make([][]string, 0, len(result.Results))
		for _, lr := range result.Results {
			detail := lr.OrderID
			if lr.Status != openalgo.StatusSuccess {
				detail = lr.Error
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", lr.OrderNum),
				lr.Symbol,
				fmt.Sprintf("%d", lr.Quantity),
				lr.Status,
				detail,
			})
		}
		if err := formatter.Table(headers, rows); err != nil {
			return err
		}
	}

	if failed := result.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d of %d orders failed", len(failed), len(result.Results))
	}
	return nil
}

func init() {
	var opts clientOptions

	orderCmd := newOrderCmd()

	for _, sub := range []*cobra.Command{
		newOrderPlaceCmd(&opts),
		newOrderSmartCmd(&opts),
		newOrderSplitCmd(&opts),
		newOrderBasketCmd(&opts),
	} {
		sub.PreRunE = func(cmd *cobra.Command, args []string) error {
			return resolveInto(&opts)
		}
		orderCmd.AddCommand(sub)
	}

	rootCmd.AddCommand(orderCmd)
}
