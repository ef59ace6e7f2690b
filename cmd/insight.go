package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/mood/internal/cli"
)

// insightCmd represents the insight command
var insightCmd = &cobra.Command{
	Use:   "insight [id]",
	Short: "Attach insights to entries missing one",
	Long: `Request the AI insight for entries saved without one.

Entries logged with --defer, or in deferred mode, are saved first and
get their insight afterwards. If that request failed, retry it here.

Examples:
  mood insight 0190c2a4     Request the insight for one entry
  mood insight --pending    Request insights for every entry missing one`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pending, _ := cmd.Flags().GetBool("pending")
		attachInsights(cmd.Context(), args, pending)
	},
}

func init() {
	rootCmd.AddCommand(insightCmd)

	insightCmd.Flags().Bool("pending", false, "Request insights for every entry missing one")
}

// attachInsights requests insights for one entry or for every pending entry
func attachInsights(ctx context.Context, args []string, pending bool) {
	if pending == (len(args) == 1) {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Specify an entry id or --pending")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: mood insight <id> | mood insight --pending")
		deps.Exit(1)
		return
	}

	services, ok := loadServices()
	if !ok {
		return
	}

	if !pending {
		id := args[0]
		if _, err := services.Entry.Get(id); err != nil {
			reportLookupError(id, err)
			return
		}

		_, _ = fmt.Fprintln(deps.Stderr, "Requesting insight...")
		e, err := services.Entry.AttachInsight(ctx, id)
		if err != nil {
			_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to get AI insight")
			_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
			_, _ = fmt.Fprintln(deps.Stderr, "Hint: The entry is still saved. Try again later")
			deps.Exit(1)
			return
		}
		_, _ = fmt.Fprintf(deps.Stdout, "%s %s\n", cli.ColorMood(e.Scale), e.Description)
		_, _ = fmt.Fprintf(deps.Stdout, "Insight: %s\n", e.Insight)
		return
	}

	waiting := len(services.Entry.Pending())
	if waiting == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No entries are missing an insight")
		return
	}

	_, _ = fmt.Fprintf(deps.Stderr, "Requesting %d %s...\n", waiting, cli.Pluralize("insight", waiting))
	updated, err := services.Entry.AttachPending(ctx)
	short := cli.ShortIDs(cli.EntryIDs(services.Store.All()))
	for _, e := range updated {
		_, _ = fmt.Fprintf(deps.Stdout, "%s  %s %s\n", short[e.ID], cli.ColorMood(e.Scale), e.Description)
		_, _ = fmt.Fprintf(deps.Stdout, "  Insight: %s\n", e.Insight)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Attached %d of %d %s\n", len(updated), waiting, cli.Pluralize("insight", waiting))

	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %d %s could not be requested\n", waiting-len(updated), cli.Pluralize("insight", waiting-len(updated)))
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'mood insight --pending' again later")
		deps.Exit(1)
	}
}
