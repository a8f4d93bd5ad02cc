package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tradeplumber/oa/internal/api"
	"github.com/tradeplumber/oa/internal/config"
	"github.com/tradeplumber/oa/internal/output"
	"github.com/tradeplumber/oa/internal/strategy"
	"github.com/tradeplumber/oa/pkg/openalgo"
)

// optionsParams holds the flags shared by the options subcommands.
type optionsParams struct {
	expiry   string
	exchange string
	product  string
	quantity int
}

// newOptionsCmd creates the parent options command.
func newOptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Place option strategy orders",
		Long: `Place single-leg and multi-leg option orders by strike offset.

Strikes are selected relative to the live underlying price: ATM is the
nearest strike, ITM n and OTM n step n strikes in or out of the money.
The server resolves the offset and returns the concrete contract symbol.

Legs of a multi-leg strategy are independent: each fails or fills on its
own and every outcome is reported.

Examples:
  oa options order NIFTY --expiry 28-NOV-24 --offset OTM2 --type CE --action BUY --quantity 75 --yes
  oa options straddle NIFTY --expiry 28-NOV-24 --action SELL --quantity 75 --yes
  oa options strangle NIFTY --expiry 28-NOV-24 --action SELL --quantity 75 --offset 4 --yes
  oa options condor NIFTY --expiry 28-NOV-24 --quantity 75 --sell-offset 4 --buy-offset 6 --yes`,
	}

	return cmd
}

// addOptionsParamFlags registers the flags shared by every subcommand.
func addOptionsParamFlags(cmd *cobra.Command, params *optionsParams) {
	cmd.Flags().StringVar(&params.expiry, "expiry", "", "Contract expiry date, e.g. 28-NOV-24 (required)")
	cmd.Flags().StringVarP(&params.exchange, "exchange", "e", "", "Underlying exchange (default from config)")
	cmd.Flags().StringVar(&params.product, "product", "", "Product (default from config)")
	cmd.Flags().IntVarP(&params.quantity, "quantity", "q", 0, "Quantity per leg in units, a multiple of the lot size (required)")
}

// resolveOptionsParams applies config defaults and validates shared flags.
func resolveOptionsParams(opts clientOptions, params *optionsParams) error {
	if params.expiry == "" {
		return fmt.Errorf("expiry date is required (use --expiry)")
	}
	if params.quantity <= 0 {
		return fmt.Errorf("quantity must be positive (use --quantity)")
	}
	if params.exchange == "" {
		params.exchange = opts.indexExchange
	}
	if params.product == "" {
		params.product = opts.optionsProduct
	}
	return nil
}

// newOptionsOrderCmd creates the single-leg order subcommand.
func newOptionsOrderCmd(opts *clientOptions) *cobra.Command {
	var params optionsParams
	var offset, optType, action string
	var splitSize int
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "order UNDERLYING",
		Short: "Place a single option leg by strike offset",
		Long: `Place one option order with the strike chosen by offset from the live
underlying price.

Examples:
  oa options order NIFTY --expiry 28-NOV-24 --offset ATM --type CE --action BUY --quantity 75 --yes
  oa options order NIFTY --expiry 28-NOV-24 --offset OTM2 --type PE --action SELL --quantity 150 --split-size 75 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptionsOrder(cmd, *opts, args[0], params, offset, optType, action, splitSize, skipConfirm)
		},
	}

	addOptionsParamFlags(cmd, &params)
	cmd.Flags().StringVarP(&offset, "offset", "o", "ATM", "Strike offset: ATM, ITM1-10 or OTM1-10")
	cmd.Flags().StringVarP(&optType, "type", "t", "", "Option type: CE or PE (required)")
	cmd.Flags().StringVarP(&action, "action", "a", "", "Order side: BUY or SELL (required)")
	cmd.Flags().IntVar(&splitSize, "split-size", 0, "Split the order into chunks of this size at the venue")
	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cmd.SilenceUsage = true

	return cmd
}

func runOptionsOrder(cmd *cobra.Command, opts clientOptions, underlying string, params optionsParams, offset, optType, action string, splitSize int, skipConfirm bool) error {
	if !opts.tradingEnabled {
		return config.ErrTradingDisabled
	}
	if err := resolveOptionsParams(opts, &params); err != nil {
		return err
	}

	parsedOffset, err := strategy.ParseOffset(offset)
	if err != nil {
		return err
	}

	optType = strings.ToUpper(optType)
	if optType != "CE" && optType != "PE" {
		return fmt.Errorf("invalid option type: %q (use CE or PE)", optType)
	}
	action = strings.ToUpper(action)
	if action != "BUY" && action != "SELL" {
		return fmt.Errorf("invalid action: %q (use BUY or SELL)", action)
	}

	underlying = strings.ToUpper(underlying)

	if !opts.jsonMode {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nOption Order Preview:\n")
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Underlying: %s (%s), expiry %s\n", underlying, params.exchange, params.expiry)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Leg:        %s %s @ %s x%d\n", action, optType, parsedOffset, params.quantity)
		if splitSize > 0 {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Split:      chunks of %d\n", splitSize)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Product:    %s\n\n", params.product)
	}

	if !skipConfirm {
		return fmt.Errorf("order requires confirmation (use --yes to confirm)")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := api.NewClient(opts.host, opts.apiKey)
	resp, err := client.OptionsOrder(ctx, api.OptionsOrderRequest{
		Strategy:   opts.strategyTag,
		Underlying: underlying,
		Exchange:   params.exchange,
		ExpiryDate: params.expiry,
		Offset:     parsedOffset.String(),
		OptionType: optType,
		Action:     action,
		Quantity:   params.quantity,
		PriceType:  "MARKET",
		Product:    params.product,
		SplitSize:  splitSize,
	})
	if err != nil {
		return fmt.Errorf("failed to place option order: %w", err)
	}
	if resp.Status != openalgo.StatusSuccess {
		msg := resp.Message
		if msg == "" {
			msg = "order rejected"
		}
		return fmt.Errorf("order rejected: %s", msg)
	}

	if opts.jsonMode {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Option order placed successfully!\n")
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Order ID: %s\n", resp.OrderID)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Contract: %s (%s)\n", resp.Symbol, resp.Exchange)
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Underlying LTP: %s\n", resp.UnderlyingLTP)

	return nil
}

// newOptionsStraddleCmd creates the straddle subcommand.
func newOptionsStraddleCmd(opts *clientOptions) *cobra.Command {
	var params optionsParams
	var action string
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "straddle UNDERLYING",
		Short: "Place an ATM straddle",
		Long: `Place a straddle: CALL and PUT at the ATM strike, same side, same
quantity.

Examples:
  oa options straddle NIFTY --expiry 28-NOV-24 --action SELL --quantity 75 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			legs, err := strategy.StraddleLegs(strategy.Action(strings.ToUpper(action)), params.quantity)
			if err != nil {
				return err
			}
			return runOptionsStrategy(cmd, *opts, args[0], params, "straddle", legs, skipConfirm)
		},
	}

	addOptionsParamFlags(cmd, &params)
	cmd.Flags().StringVarP(&action, "action", "a", "", "Order side for both legs: BUY or SELL (required)")
	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cmd.SilenceUsage = true

	return cmd
}

// newOptionsStrangleCmd creates the strangle subcommand.
func newOptionsStrangleCmd(opts *clientOptions) *cobra.Command {
	var params optionsParams
	var action string
	var offset int
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "strangle UNDERLYING",
		Short: "Place an OTM strangle",
		Long: `Place a strangle: CALL and PUT at the OTM offset, same side, same
quantity.

Examples:
  oa options strangle NIFTY --expiry 28-NOV-24 --action SELL --quantity 75 --offset 4 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			legs, err := strategy.StrangleLegs(strategy.Action(strings.ToUpper(action)), params.quantity, offset)
			if err != nil {
				return err
			}
			return runOptionsStrategy(cmd, *opts, args[0], params, "strangle", legs, skipConfirm)
		},
	}

	addOptionsParamFlags(cmd, &params)
	cmd.Flags().StringVarP(&action, "action", "a", "", "Order side for both legs: BUY or SELL (required)")
	cmd.Flags().IntVarP(&offset, "offset", "o", 2, "OTM strike offset for both legs")
	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cmd.SilenceUsage = true

	return cmd
}

// newOptionsCondorCmd creates the condor subcommand.
func newOptionsCondorCmd(opts *clientOptions) *cobra.Command {
	var params optionsParams
	var sellOffset, buyOffset int
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "condor UNDERLYING",
		Short: "Place an iron condor",
		Long: `Place an iron condor: protective buys at the outer OTM offset, premium
sells at the inner one. The buy offset must be strictly greater than the
sell offset.

Examples:
  oa options condor NIFTY --expiry 28-NOV-24 --quantity 75 --sell-offset 4 --buy-offset 6 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			legs, err := strategy.IronCondorLegs(params.quantity, sellOffset, buyOffset)
			if err != nil {
				return err
			}
			return runOptionsStrategy(cmd, *opts, args[0], params, "iron condor", legs, skipConfirm)
		},
	}

	addOptionsParamFlags(cmd, &params)
	cmd.Flags().IntVar(&sellOffset, "sell-offset", 0, "OTM offset of the sold legs (required)")
	cmd.Flags().IntVar(&buyOffset, "buy-offset", 0, "OTM offset of the protective bought legs (required)")
	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	cmd.SilenceUsage = true

	return cmd
}

// runOptionsStrategy submits constructed legs as one multi-leg order and
// renders per-leg outcomes.
func runOptionsStrategy(cmd *cobra.Command, opts clientOptions, underlying string, params optionsParams, name string, legs []strategy.Leg, skipConfirm bool) error {
	if !opts.tradingEnabled {
		return config.ErrTradingDisabled
	}
	if err := resolveOptionsParams(opts, &params); err != nil {
		return err
	}

	underlying = strings.ToUpper(underlying)

	if !opts.jsonMode {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\nStrategy Preview (%s):\n", name)
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Underlying: %s (%s), expiry %s\n", underlying, params.exchange, params.expiry)
		for i, leg := range legs {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Leg %d:      %s\n", i+1, leg)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  Product:    %s\n\n", params.product)
	}

	if !skipConfirm {
		return fmt.Errorf("order requires confirmation (use --yes to confirm)")
	}

	wireLegs := make([]api.MultiLeg, len(legs))
	for i, leg := range legs {
		wireLegs[i] = api.MultiLeg{
			Offset:     leg.Offset.String(),
			OptionType: string(leg.OptionType),
			Action:     string(leg.Action),
			Quantity:   leg.Quantity,
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := api.NewClient(opts.host, opts.apiKey)
	resp, err := client.OptionsMultiOrder(ctx, api.MultiOrderRequest{
		Strategy:   opts.strategyTag,
		Underlying: underlying,
		Exchange:   params.exchange,
		ExpiryDate: params.expiry,
		Legs:       wireLegs,
		PriceType:  "MARKET",
		Product:    params.product,
	})
	if err != nil {
		return fmt.Errorf("failed to place %s: %w", name, err)
	}
	if len(resp.Results) == 0 && resp.Status != openalgo.StatusSuccess {
		msg := resp.Message
		if msg == "" {
			msg = "order rejected"
		}
		return fmt.Errorf("order rejected: %s", msg)
	}

	if opts.jsonMode {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Underlying LTP: %s\n\n", resp.UnderlyingLTP)

		formatter := output.New(cmd.OutOrStdout(), false)
		headers := []string{"Leg", "Action", "Symbol", "Status", "Order ID / Error"}
		rows := make([][]string, 0, len(resp.Results))
		for _, lr := range resp.Results {
			detail := lr.OrderID
			if lr.Status != openalgo.StatusSuccess {
				detail = lr.Message
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", lr.Leg),
				lr.Action,
				lr.Symbol,
				lr.Status,
				detail,
			})
		}
		if err := formatter.Table(headers, rows); err != nil {
			return err
		}
	}

	var failed int
	for _, lr := range resp.Results {
		if lr.Status != openalgo.StatusSuccess {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d legs failed", failed, len(resp.Results))
	}
	return nil
}

func init() {
	var opts clientOptions

	optionsCmd := newOptionsCmd()

	for _, sub := range []*cobra.Command{
		newOptionsOrderCmd(&opts),
		newOptionsStraddleCmd(&opts),
		newOptionsStrangleCmd(&opts),
		newOptionsCondorCmd(&opts),
	} {
		sub.PreRunE = func(cmd *cobra.Command, args []string) error {
			return resolveInto(&opts)
		}
		optionsCmd.AddCommand(sub)
	}

	rootCmd.AddCommand(optionsCmd)
}
