package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tradeplumber/oa/internal/api"
	"github.com/tradeplumber/oa/internal/output"
	"github.com/tradeplumber/oa/pkg/openalgo"
)

// newQuoteCmd creates the quote command with the given options.
func newQuoteCmd(opts *clientOptions) *cobra.Command {
	var exchange string

	cmd := &cobra.Command{
		Use:   "quote SYMBOL",
		Short: "Get a market quote",
		Long: `Get the latest quote for a trading symbol.

Examples:
  oa quote RELIANCE                    # Quote using the config exchange
  oa quote NIFTY --exchange NSE_INDEX  # Index quote
  oa quote RELIANCE --json             # Output as JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuote(cmd, *opts, args[0], exchange)
		},
	}

	cmd.Flags().StringVarP(&exchange, "exchange", "e", "", "Exchange (default from config)")
	cmd.SilenceUsage = true

	return cmd
}

func runQuote(cmd *cobra.Command, opts clientOptions, symbol, exchange string) error {
	symbol = strings.ToUpper(symbol)
	if exchange == "" {
		exchange = opts.exchange
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := api.NewClient(opts.host, opts.apiKey)
	quote, err := client.Quotes(ctx, symbol, exchange)
	if err != nil {
		return fmt.Errorf("failed to fetch quote: %w", err)
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	return formatter.Section(fmt.Sprintf("%s (%s)", symbol, exchange), []output.Field{
		{Label: "LTP", Value: openalgo.FormatPrice(quote.LTP)},
		{Label: "Open", Value: openalgo.FormatPrice(quote.Open)},
		{Label: "High", Value: openalgo.FormatPrice(quote.High)},
		{Label: "Low", Value: openalgo.FormatPrice(quote.Low)},
		{Label: "Prev Close", Value: openalgo.FormatPrice(quote.Close)},
		{Label: "Bid", Value: openalgo.FormatPrice(quote.Bid)},
		{Label: "Ask", Value: openalgo.FormatPrice(quote.Ask)},
		{Label: "Volume", Value: openalgo.FormatVolume(quote.Volume)},
	})
}

// newQuoteDepthCmd creates the depth subcommand with the given options.
func newQuoteDepthCmd(opts *clientOptions) *cobra.Command {
	var exchange string

	cmd := &cobra.Command{
		Use:   "depth SYMBOL",
		Short: "Get order book depth",
		Long: `Get bid/ask order book depth for a trading symbol.

Examples:
  oa quote depth RELIANCE
  oa quote depth RELIANCE --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuoteDepth(cmd, *opts, args[0], exchange)
		},
	}

	cmd.Flags().StringVarP(&exchange, "exchange", "e", "", "Exchange (default from config)")
	cmd.SilenceUsage = true

	return cmd
}

func runQuoteDepth(cmd *cobra.Command, opts clientOptions, symbol, exchange string) error {
	symbol = strings.ToUpper(symbol)
	if exchange == "" {
		exchange = opts.exchange
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := api.NewClient(opts.host, opts.apiKey)
	depth, err := client.MarketDepth(ctx, symbol, exchange)
	if err != nil {
		return fmt.Errorf("failed to fetch depth: %w", err)
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	if opts.jsonMode {
		return formatter.Print(depth)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%s (%s)  LTP %s  Volume %s\n\n",
		symbol, exchange, openalgo.FormatPrice(depth.LTP), openalgo.FormatVolume(depth.Volume))

	levels := len(depth.Bids)
	if len(depth.Asks) > levels {
		levels = len(depth.Asks)
	}

	headers := []string{"Bid Qty", "Bid", "Ask", "Ask Qty"}
	rows := make([][]string, 0, levels)
	for i := 0; i < levels; i++ {
		row := []string{"-", "-", "-", "-"}
		if i < len(depth.Bids) {
			row[0] = openalgo.FormatVolume(depth.Bids[i].Quantity)
			row[1] = openalgo.FormatPrice(depth.Bids[i].Price)
		}
		if i < len(depth.Asks) {
			row[2] = openalgo.FormatPrice(depth.Asks[i].Price)
			row[3] = openalgo.FormatVolume(depth.Asks[i].Quantity)
		}
		rows = append(rows, row)
	}

	return formatter.Table(headers, rows)
}

func init() {
	var opts clientOptions

	quoteCmd := newQuoteCmd(&opts)
	quoteCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return resolveInto(&opts)
	}

	depthCmd := newQuoteDepthCmd(&opts)
	depthCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return resolveInto(&opts)
	}
	quoteCmd.AddCommand(depthCmd)

	rootCmd.AddCommand(quoteCmd)
}
