package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tradeplumber/oa/internal/api"
	"github.com/tradeplumber/oa/internal/output"
	"github.com/tradeplumber/oa/pkg/openalgo"
)

// newPortfolioCmd creates the parent portfolio command.
func newPortfolioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "View account state",
		Long: `View funds, open positions, holdings, and today's orders.

Examples:
  oa portfolio funds
  oa portfolio positions
  oa portfolio holdings
  oa portfolio orders --json`,
	}

	return cmd
}

// newPortfolioFundsCmd creates the funds subcommand with the given options.
func newPortfolioFundsCmd(opts *clientOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "funds",
		Short: "View cash balances and margin utilisation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPortfolioFunds(cmd, *opts)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func runPortfolioFunds(cmd *cobra.Command, opts clientOptions) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := api.NewClient(opts.host, opts.apiKey)
	funds, err := client.Funds(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch funds: %w", err)
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	return formatter.Section("Funds", []output.Field{
		{Label: "Available Cash", Value: openalgo.FormatRupees(funds.AvailableCash)},
		{Label: "Collateral", Value: openalgo.FormatRupees(funds.Collateral)},
		{Label: "Realized M2M", Value: openalgo.FormatPNL(funds.M2MRealized)},
		{Label: "Unrealized M2M", Value: openalgo.FormatPNL(funds.M2MUnrealized)},
		{Label: "Utilized Debits", Value: openalgo.FormatRupees(funds.UtilizedDebits)},
	})
}

// newPortfolioPositionsCmd creates the positions subcommand.
func newPortfolioPositionsCmd(opts *clientOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "View open positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPortfolioPositions(cmd, *opts)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func runPortfolioPositions(cmd *cobra.Command, opts clientOptions) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := api.NewClient(opts.host, opts.apiKey)
	positions, err := client.PositionBook(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch positions: %w", err)
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	if opts.jsonMode {
		return formatter.Print(positions)
	}

	if len(positions) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No open positions")
		return nil
	}

	headers := []string{"Symbol", "Exchange", "Product", "Qty", "Avg Price", "LTP", "P&L"}
	rows := make([][]string, 0, len(positions))
	for _, p := range positions {
		rows = append(rows, []string{
			p.Symbol,
			p.Exchange,
			p.Product,
			fmt.Sprintf("%d", p.Quantity),
			p.AvgPrice,
			p.LTP,
			openalgo.FormatPNL(p.PNL),
		})
	}

	return formatter.Table(headers, rows)
}

// newPortfolioHoldingsCmd creates the holdings subcommand.
func newPortfolioHoldingsCmd(opts *clientOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "holdings",
		Short: "View long-term holdings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPortfolioHoldings(cmd, *opts)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func runPortfolioHoldings(cmd *cobra.Command, opts clientOptions) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := api.NewClient(opts.host, opts.apiKey)
	holdings, err := client.Holdings(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch holdings: %w", err)
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	if opts.jsonMode {
		return formatter.Print(holdings)
	}

	if len(holdings) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No holdings")
		return nil
	}

	headers := []string{"Symbol", "Exchange", "Qty", "Avg Price", "LTP", "P&L", "P&L %"}
	rows := make([][]string, 0, len(holdings))
	for _, h := range holdings {
		rows = append(rows, []string{
			h.Symbol,
			h.Exchange,
			fmt.Sprintf("%d", h.Quantity),
			h.AvgPrice,
			h.LTP,
			openalgo.FormatPNL(h.PNL),
			h.PNLPct,
		})
	}

	return formatter.Table(headers, rows)
}

// newPortfolioOrdersCmd creates the orders subcommand.
func newPortfolioOrdersCmd(opts *clientOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "View today's orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPortfolioOrders(cmd, *opts)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func runPortfolioOrders(cmd *cobra.Command, opts clientOptions) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := api.NewClient(opts.host, opts.apiKey)
	orders, err := client.OrderBook(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch orders: %w", err)
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	if opts.jsonMode {
		return formatter.Print(orders)
	}

	if len(orders) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No orders today")
		return nil
	}

	headers := []string{"Order ID", "Symbol", "Action", "Qty", "Type", "Price", "Status", "Time"}
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			o.OrderID,
			o.Symbol,
			o.Action,
			fmt.Sprintf("%d", o.Quantity),
			o.PriceType,
			o.Price,
			o.Status,
			o.Timestamp,
		})
	}

	return formatter.Table(headers, rows)
}

func init() {
	var opts clientOptions

	portfolioCmd := newPortfolioCmd()

	for _, sub := range []*cobra.Command{
		newPortfolioFundsCmd(&opts),
		newPortfolioPositionsCmd(&opts),
		newPortfolioHoldingsCmd(&opts),
		newPortfolioOrdersCmd(&opts),
	} {
		sub.PreRunE = func(cmd *cobra.Command, args []string) error {
			return resolveInto(&opts)
		}
		portfolioCmd.AddCommand(sub)
	}

	rootCmd.AddCommand(portfolioCmd)
}
