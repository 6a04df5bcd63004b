package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/bondpv/config"
	"github.com/rustyeddy/bondpv/journal"
	"github.com/rustyeddy/bondpv/report"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var (
		dbPath string
		limit  int
		day    string
	)

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Query recorded valuations",
		Long: `Query valuations recorded with --journal sqlite.

Subcommands:
  list  - List recent valuations, or those of one day
  show  - Show a single valuation by ID

Examples:
  bondpv history list --limit 5
  bondpv history list --day 2024-01-15
  bondpv history show <id>`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded valuations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.NewSQLite(dbPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer j.Close()

			var recs []journal.Valuation
			if day != "" {
				start, end, err := dayBounds(time.Local, day)
				if err != nil {
					return fmt.Errorf("date: %w", err)
				}
				recs, err = j.ListValuationsBetween(start, end)
				if err != nil {
					return fmt.Errorf("query valuations: %w", err)
				}
			} else {
				recs, err = j.ListValuations(limit)
				if err != nil {
					return fmt.Errorf("query valuations: %w", err)
				}
			}

			opts.log.Debug("history listed", zap.String("db", dbPath), zap.Int("count", len(recs)))
			return report.Valuations(cmd.OutOrStdout(), recs)
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single valuation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := journal.NewSQLite(dbPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer j.Close()

			v, err := j.GetValuation(args[0])
			if err != nil {
				return fmt.Errorf("get valuation: %w", err)
			}
			return report.Valuation(cmd.OutOrStdout(), v)
		},
	}

	historyCmd.AddCommand(listCmd)
	historyCmd.AddCommand(showCmd)

	historyCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", config.DefaultJournalPath(journal.TypeSQLite), "path to SQLite journal DB")
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of valuations (0 for all)")
	listCmd.Flags().StringVar(&day, "day", "", "only valuations made on this day (YYYY-MM-DD, local time)")

	return historyCmd
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}
