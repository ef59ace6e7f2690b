package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/mood/internal/cli"
	"github.com/xolan/mood/internal/stats"
)

// trendCmd represents the trend command
var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Chart recent moods",
	Long: `Chart the most recent mood entries, oldest first, with a summary.

A chart needs at least two entries.

Examples:
  mood trend                Chart the last 7 entries
  mood trend --last 14      Chart the last 14 entries
  mood trend --daily        Chart the average mood of each day`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		last, _ := cmd.Flags().GetInt("last")
		daily, _ := cmd.Flags().GetBool("daily")
		showTrend(last, daily)
	},
}

func init() {
	rootCmd.AddCommand(trendCmd)

	trendCmd.Flags().IntP("last", "n", stats.ChartSize, "Number of recent entries to chart")
	trendCmd.Flags().Bool("daily", false, "Chart daily averages instead of single entries")
}

// showTrend prints the chart of the last n entries and their summary
func showTrend(last int, daily bool) {
	if last < 1 {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid number of entries %d\n", last)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use a positive number, e.g. --last 7")
		deps.Exit(1)
		return
	}

	services, ok := loadServices()
	if !ok {
		return
	}

	result, err := services.Trend.Trend(last)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to compute trend")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	warnCorruption(result.Corruption)

	if !result.ShowChart {
		_, _ = fmt.Fprintf(deps.Stdout, "Not enough entries for a trend (have %d, need %d)\n", len(result.Points), stats.MinChartEntries)
		return
	}

	n := len(result.Points)
	_, _ = fmt.Fprintf(deps.Stdout, "Mood trend, last %d %s: %s\n\n", n, cli.Pluralize("entry", n), cli.Sparkline(result.Points))
	if daily {
		_, _ = fmt.Fprintln(deps.Stdout, cli.DailyTable(result.Daily))
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, cli.TrendTable(result.Points, location(services)))
	}
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintln(deps.Stdout, cli.SummaryTable(result.Summary))
	if result.Overall.Count > result.Summary.Count {
		_, _ = fmt.Fprintf(deps.Stdout, "\nAll-time average: %.1f over %d entries\n", result.Overall.Average, result.Overall.Count)
	}
}
