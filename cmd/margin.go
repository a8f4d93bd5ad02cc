package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tradeplumber/oa/internal/api"
	"github.com/tradeplumber/oa/internal/output"
	"github.com/tradeplumber/oa/pkg/openalgo"
)

// newMarginCmd creates the margin command with the given options.
func newMarginCmd(opts *clientOptions) *cobra.Command {
	var exchange, action, product, priceType string
	var quantity int
	var file string

	cmd := &cobra.Command{
		Use:   "margin [SYMBOL]",
		Short: "Estimate margin requirements",
		Long: `Estimate the margin required for a hypothetical position, or for a
basket of positions from a JSON file, without placing anything. Hedged
baskets are margined together, which is usually far cheaper than the sum
of the individual legs.

The basket file holds a JSON array of positions:
  [
    {"symbol": "NIFTY28NOV2424200CE", "exchange": "NFO", "action": "SELL", "quantity": 75},
    {"symbol": "NIFTY28NOV2424200PE", "exchange": "NFO", "action": "SELL", "quantity": 75}
  ]

Examples:
  oa margin NIFTY28NOV2424200CE --exchange NFO --action SELL --quantity 75
  oa margin --file straddle.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := ""
			if len(args) == 1 {
				symbol = args[0]
			}
			return runMargin(cmd, *opts, symbol, exchange, action, product, priceType, quantity, file)
		},
	}

	cmd.Flags().StringVarP(&exchange, "exchange", "e", "", "Exchange (default from config)")
	cmd.Flags().StringVarP(&action, "action", "a", "", "Order side: BUY or SELL")
	cmd.Flags().StringVar(&product, "product", "", "Product (default from config)")
	cmd.Flags().StringVar(&priceType, "price-type", "MARKET", "Price type")
	cmd.Flags().IntVarP(&quantity, "quantity", "q", 0, "Position quantity")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file with a basket of positions")
	cmd.SilenceUsage = true

	return cmd
}

// marginEntry is one position of a margin basket file.
type marginEntry struct {
	Symbol    string `json:"symbol"`
	Exchange  string `json:"exchange,omitempty"`
	Action    string `json:"action"`
	Product   string `json:"product,omitempty"`
	PriceType string `json:"pricetype,omitempty"`
	Quantity  int    `json:"quantity"`
}

func runMargin(cmd *cobra.Command, opts clientOptions, symbol, exchange, action, product, priceType string, quantity int, file string) error {
	var positions []api.MarginPosition

	switch {
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read positions file: %w", err)
		}
		var entries []marginEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("failed to parse positions file: %w", err)
		}
		if len(entries) == 0 {
			return fmt.Errorf("positions file contains no positions")
		}
		for i, e := range entries {
			if e.Symbol == "" || e.Quantity <= 0 {
				return fmt.Errorf("position %d: symbol and positive quantity are required", i+1)
			}
			if e.Exchange == "" {
				e.Exchange = opts.exchange
			}
			if e.Product == "" {
				e.Product = opts.optionsProduct
			}
			if e.PriceType == "" {
				e.PriceType = "MARKET"
			}
			positions = append(positions, api.MarginPosition{
				Symbol:    strings.ToUpper(e.Symbol),
				Exchange:  e.Exchange,
				Action:    strings.ToUpper(e.Action),
				Product:   e.Product,
				PriceType: strings.ToUpper(e.PriceType),
				Quantity:  fmt.Sprintf("%d", e.Quantity),
			})
		}

	case symbol != "":
		action = strings.ToUpper(action)
		if action != "BUY" && action != "SELL" {
			return fmt.Errorf("invalid action: %q (use BUY or SELL)", action)
		}
		if quantity <= 0 {
			return fmt.Errorf("quantity must be positive (use --quantity)")
		}
		if exchange == "" {
			exchange = opts.exchange
		}
		if product == "" {
			product = opts.product
		}
		positions = []api.MarginPosition{{
			Symbol:    strings.ToUpper(symbol),
			Exchange:  exchange,
			Action:    action,
			Product:   product,
			PriceType: strings.ToUpper(priceType),
			Quantity:  fmt.Sprintf("%d", quantity),
		}}

	default:
		return fmt.Errorf("a symbol or a positions file is required (use SYMBOL or --file)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := api.NewClient(opts.host, opts.apiKey)
	margin, err := client.MarginCalculator(ctx, positions)
	if err != nil {
		return fmt.Errorf("failed to calculate margin: %w", err)
	}

	fields := []output.Field{
		{Label: "Positions", Value: fmt.Sprintf("%d", len(positions))},
		{Label: "Total Margin", Value: openalgo.FormatPrice(margin.TotalMarginRequired)},
		{Label: "Span Margin", Value: openalgo.FormatPrice(margin.SpanMargin)},
		{Label: "Exposure Margin", Value: openalgo.FormatPrice(margin.ExposureMargin)},
	}

	// Compare against available cash when funds are readable; skip the
	// row rather than fail the command if they are not.
	if funds, err := client.Funds(ctx); err == nil {
		if cash, err := decimal.NewFromString(funds.AvailableCash); err == nil {
			required := decimal.NewFromFloat(margin.TotalMarginRequired)
			fields = append(fields, output.Field{Label: "Available Cash", Value: openalgo.FormatRupees(funds.AvailableCash)})
			if cash.GreaterThanOrEqual(required) {
				fields = append(fields, output.Field{Label: "Headroom", Value: openalgo.FormatPrice(cash.Sub(required).InexactFloat64())})
			} else {
				fields = append(fields, output.Field{Label: "Shortfall", Value: openalgo.FormatPrice(required.Sub(cash).InexactFloat64())})
			}
		}
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	return formatter.Section("Margin Estimate", fields)
}

func init() {
	var opts clientOptions

	marginCmd := newMarginCmd(&opts)
	marginCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return resolveInto(&opts)
	}

	rootCmd.AddCommand(marginCmd)
}
