package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/mood/internal/cli"
	"github.com/xolan/mood/internal/service"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one entry in full",
	Long: `Show an entry with its full description and insight.

The id may be shortened to any prefix that matches a single entry,
e.g. the 8 characters shown by 'mood history'.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		showEntry(args[0])
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// showEntry prints the entry identified by id or id prefix
func showEntry(id string) {
	services, ok := loadServices()
	if !ok {
		return
	}

	e, err := services.Entry.Get(id)
	if err != nil {
		reportLookupError(id, err)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, cli.EntryTable(*e, location(services)))
}

// reportLookupError explains why id did not resolve to one entry
func reportLookupError(id string, err error) {
	switch {
	case errors.Is(err, service.ErrAmbiguousID):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Entry id '%s' is ambiguous\n", id)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use more characters of the id")
	case errors.Is(err, service.ErrEntryNotFound):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: No entry with id '%s'\n", id)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'mood history' to see entry ids")
	default:
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read entry")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
	deps.Exit(1)
}
