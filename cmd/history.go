package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/xolan/mood/internal/cli"
	"github.com/xolan/mood/internal/filter"
	"github.com/xolan/mood/internal/service"
	"github.com/xolan/mood/internal/timeutil"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List entries, newest first",
	Long: `List logged mood entries, newest first.

Examples:
  mood history                          List every entry
  mood history --limit 10               List the 10 most recent entries
  mood history --search work            Entries mentioning "work"
  mood history --days 7                 Entries from the last 7 days
  mood history --from 2026-03-01        Entries since March 1st
  mood history --max 4                  Entries rated 4 or lower
  mood history --pending                Entries still waiting for an insight

Dates are YYYY-MM-DD, DD/MM/YYYY, today or yesterday.
Use the ID column with 'mood show <id>' to read an entry's insight.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var opts historyOptions
		opts.limit, _ = cmd.Flags().GetInt("limit")
		opts.search, _ = cmd.Flags().GetString("search")
		opts.from, _ = cmd.Flags().GetString("from")
		opts.to, _ = cmd.Flags().GetString("to")
		opts.days, _ = cmd.Flags().GetInt("days")
		opts.min, _ = cmd.Flags().GetInt("min")
		opts.max, _ = cmd.Flags().GetInt("max")
		opts.pending, _ = cmd.Flags().GetBool("pending")
		listHistory(opts)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 0, "Show at most this many entries (0 shows all)")
	historyCmd.Flags().StringP("search", "s", "", "Only entries whose description or insight contains this text")
	historyCmd.Flags().String("from", "", "Only entries on or after this date")
	historyCmd.Flags().String("to", "", "Only entries on or before this date")
	historyCmd.Flags().IntP("days", "d", 0, "Only entries from the last N days, today included")
	historyCmd.Flags().Int("min", 0, "Only entries rated at least this")
	historyCmd.Flags().Int("max", 0, "Only entries rated at most this")
	historyCmd.Flags().Bool("pending", false, "Only entries without an insight")
}

// historyOptions holds the flags of the history command
type historyOptions struct {
	limit   int
	search  string
	from    string
	to      string
	days    int
	min     int
	max     int
	pending bool
}

// listHistory prints a table of the matching entries, newest first
func listHistory(opts historyOptions) {
	if opts.limit < 0 {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid limit %d\n", opts.limit)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use a positive number, or 0 to show every entry")
		deps.Exit(1)
		return
	}

	services, ok := loadServices()
	if !ok {
		return
	}

	f, ok := historyFilter(opts, services)
	if !ok {
		return
	}

	result, err := services.Entry.List(service.ListOptions{Limit: opts.limit, Filter: f})
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read entries from storage")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'mood validate' to check storage health")
		deps.Exit(1)
		return
	}
	warnCorruption(result.Corruption)

	if len(result.Entries) == 0 {
		if !f.IsEmpty() && result.Stored > 0 {
			_, _ = fmt.Fprintf(deps.Stdout, "No entries match the filter (%d stored)\n", result.Stored)
			return
		}
		_, _ = fmt.Fprintln(deps.Stdout, "No entries found")
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, cli.HistoryTable(result.Entries, cli.ShortIDs(result.IDs), location(services)))
	if len(result.Entries) < result.Total {
		_, _ = fmt.Fprintf(deps.Stdout, "\nShowing %d of %d entries\n", len(result.Entries), result.Total)
		return
	}
	if result.Total < result.Stored {
		_, _ = fmt.Fprintf(deps.Stdout, "\n%d of %d entries match\n", result.Total, result.Stored)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "\n%d %s\n", result.Total, cli.Pluralize("entry", result.Total))
}

// historyFilter builds the filter from the flags, reporting invalid ones to stderr
func historyFilter(opts historyOptions, services *service.Services) (filter.Filter, bool) {
	now := time.Now()
	if loc := location(services); loc != nil {
		now = now.In(loc)
	}

	r, err := timeutil.ParseRange(opts.from, opts.to, opts.days, now)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Invalid date range")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use --days N, or --from/--to with YYYY-MM-DD, DD/MM/YYYY, today or yesterday")
		deps.Exit(1)
		return filter.Filter{}, false
	}

	f := filter.Filter{
		Keyword:  opts.search,
		MinScale: opts.min,
		MaxScale: opts.max,
		Range:    r,
		Pending:  opts.pending,
	}
	if err := f.Validate(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Invalid scale filter")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return filter.Filter{}, false
	}
	return f, true
}
