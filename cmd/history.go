package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tradeplumber/oa/internal/api"
	"github.com/tradeplumber/oa/internal/output"
	"github.com/tradeplumber/oa/pkg/openalgo"
)

// newHistoryCmd creates the history command with the given options.
func newHistoryCmd(opts *clientOptions) *cobra.Command {
	var exchange, interval, startDate, endDate string

	cmd := &cobra.Command{
		Use:   "history SYMBOL",
		Short: "Get historical candles",
		Long: `Get historical OHLCV candles for a trading symbol.

Dates are YYYY-MM-DD. Run 'oa history intervals' to list the candle
intervals the connected broker supports.

Examples:
  oa history NIFTY --exchange NSE_INDEX --interval 5m --from 2024-11-01 --to 2024-11-28
  oa history RELIANCE --interval D --from 2024-01-01 --to 2024-11-28 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, *opts, args[0], exchange, interval, startDate, endDate)
		},
	}

	cmd.Flags().StringVarP(&exchange, "exchange", "e", "", "Exchange (default from config)")
	cmd.Flags().StringVarP(&interval, "interval", "i", "D", "Candle interval, e.g. 1m, 5m, 1h, D")
	cmd.Flags().StringVar(&startDate, "from", "", "Start date YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&endDate, "to", "", "End date YYYY-MM-DD (required)")
	cmd.SilenceUsage = true

	return cmd
}

func runHistory(cmd *cobra.Command, opts clientOptions, symbol, exchange, interval, startDate, endDate string) error {
	symbol = strings.ToUpper(symbol)
	if exchange == "" {
		exchange = opts.exchange
	}
	if startDate == "" || endDate == "" {
		return fmt.Errorf("date range is required (use --from and --to)")
	}
	for _, d := range []string{startDate, endDate} {
		if _, err := time.Parse("2006-01-02", d); err != nil {
			return fmt.Errorf("invalid date %q (use YYYY-MM-DD)", d)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := api.NewClient(opts.host, opts.apiKey)
	candles, err := client.History(ctx, symbol, exchange, interval, startDate, endDate)
	if err != nil {
		return fmt.Errorf("failed to fetch history: %w", err)
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	if opts.jsonMode {
		return formatter.Print(candles)
	}

	if len(candles) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No candles returned")
		return nil
	}

	headers := []string{"Time", "Open", "High", "Low", "Close", "Volume"}
	rows := make([][]string, 0, len(candles))
	for _, c := range candles {
		rows = append(rows, []string{
			time.Unix(c.Timestamp, 0).Format("2006-01-02 15:04"),
			openalgo.FormatPrice(c.Open),
			openalgo.FormatPrice(c.High),
			openalgo.FormatPrice(c.Low),
			openalgo.FormatPrice(c.Close),
			openalgo.FormatVolume(c.Volume),
		})
	}

	return formatter.Table(headers, rows)
}

// newHistoryIntervalsCmd creates the intervals subcommand.
func newHistoryIntervalsCmd(opts *clientOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intervals",
		Short: "List supported candle intervals",
		Long: `List the candle intervals the connected broker supports, grouped by
family.

Examples:
  oa history intervals
  oa history intervals --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryIntervals(cmd, *opts)
		},
	}

	cmd.SilenceUsage = true

	return cmd
}

func runHistoryIntervals(cmd *cobra.Command, opts clientOptions) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := api.NewClient(opts.host, opts.apiKey)
	intervals, err := client.Intervals(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch intervals: %w", err)
	}

	formatter := output.New(cmd.OutOrStdout(), opts.jsonMode)
	if opts.jsonMode {
		return formatter.Print(intervals)
	}

	families := make([]string, 0, len(intervals))
	for family := range intervals {
		families = append(families, family)
	}
	sort.Strings(families)

	fields := make([]output.Field, 0, len(families))
	for _, family := range families {
		fields = append(fields, output.Field{Label: family, Value: strings.Join(intervals[family], ", ")})
	}

	return formatter.Section("Supported intervals", fields)
}

func init() {
	var opts clientOptions

	historyCmd := newHistoryCmd(&opts)
	historyCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return resolveInto(&opts)
	}

	intervalsCmd := newHistoryIntervalsCmd(&opts)
	intervalsCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return resolveInto(&opts)
	}
	historyCmd.AddCommand(intervalsCmd)

	rootCmd.AddCommand(historyCmd)
}
