package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xolan/mood/internal/cli"
	"github.com/xolan/mood/internal/entry"
	"github.com/xolan/mood/internal/insight"
	"github.com/xolan/mood/internal/service"
	"github.com/xolan/mood/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "mood",
	Short: "A mood journal with AI insights",
	Long: `mood is a CLI tool for logging how you feel and getting a short AI insight about it.

Usage:
  mood <scale> <description>              Log a new entry (e.g., mood 8 productive day)
  mood                                    Show the latest entry
  mood history                            List entries, newest first
  mood trend                              Chart the last 7 entries
  mood show <id>                          Show one entry in full
  mood insight --pending                  Attach insights to entries missing one
  mood serve                              Run the insight proxy
  mood validate                           Check storage health
  mood restore [n]                        Restore from backup (default: most recent)

Scale format: a whole number from 1 to 10, optionally written as N/10
Examples: 8, 3/10`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if CheckTUIFlag(cmd) {
			return
		}
		if len(args) == 0 {
			showLatest()
			return
		}

		deferInsight, _ := cmd.Flags().GetBool("defer")
		createEntry(cmd.Context(), args, deferInsight)
	},
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check storage health",
	Long:  `Validate the stored entries and report on their health, including whether the payload is corrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		validateStorage()
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)

	rootCmd.Flags().Bool("defer", false, "Save the entry before the insight arrives")
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(
		"mood version {{.Version}}\n" +
			"commit: " + commit + "\n" +
			"built: " + date + "\n",
	)
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loadServices builds the services, reporting failures to stderr.
func loadServices() (*service.Services, bool) {
	services, err := deps.Services()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to initialize mood")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check your config file ('mood config --path') and that your config directory is writable")
		deps.Exit(1)
		return nil, false
	}
	return services, true
}

// location returns the configured timezone, or nil for the entries' own.
func location(services *service.Services) *time.Location {
	cfg := services.Config.Get()
	loc, err := cfg.Location()
	if err != nil {
		return nil
	}
	return loc
}

// createEntry parses arguments and creates a new mood entry
func createEntry(ctx context.Context, args []string, deferInsight bool) {
	if len(args) < 2 {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Invalid format. Missing description")
		_, _ = fmt.Fprintln(deps.Stderr, "Usage: mood <scale> <description>")
		_, _ = fmt.Fprintln(deps.Stderr, "Example: mood 8 productive day")
		deps.Exit(1)
		return
	}

	scale, err := entry.ParseScale(args[0])
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid scale '%s'\n", args[0])
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Use a whole number from 1 to 10, e.g. 8 or 8/10")
		deps.Exit(1)
		return
	}
	description := strings.Join(args[1:], " ")

	services, ok := loadServices()
	if !ok {
		return
	}

	_, _ = fmt.Fprintln(deps.Stderr, "Requesting insight...")

	var e *entry.MoodEntry
	if deferInsight || services.Entry.Deferred() {
		e, err = services.Entry.CreateDeferred(ctx, scale, description)
	} else {
		e, err = services.Entry.Create(ctx, scale, description)
	}

	switch {
	case err == nil:
	case errors.Is(err, service.ErrInsightPending) && e != nil:
		printLogged(*e)
		_, _ = fmt.Fprintln(deps.Stderr, "Warning: Entry saved without an insight")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'mood insight --pending' to retry")
		return
	case errors.Is(err, entry.ErrValidation):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Invalid entry")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: The description cannot be empty")
		deps.Exit(1)
		return
	case errors.Is(err, insight.ErrInsightRequest):
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", insight.MsgFailed)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Your entry was not saved. Try again, or use --defer to save it without waiting for the insight")
		deps.Exit(1)
		return
	case errors.Is(err, storage.ErrStorageWrite):
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to save entry to storage")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that the storage directory exists and is writable ('mood validate')")
		deps.Exit(1)
		return
	default:
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to log entry")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}

	printLogged(*e)
	_, _ = fmt.Fprintf(deps.Stdout, "Insight: %s\n", e.Insight)
}

// printLogged prints the confirmation line for a saved entry
func printLogged(e entry.MoodEntry) {
	_, _ = fmt.Fprintf(deps.Stdout, "Logged: %s %s\n", cli.ColorMood(e.Scale), e.Description)
}

// showLatest displays the most recent entry with its insight
func showLatest() {
	services, ok := loadServices()
	if !ok {
		return
	}

	result, err := services.Entry.List(service.ListOptions{Limit: 1})
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to read entries from storage")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Run 'mood validate' to check storage health")
		deps.Exit(1)
		return
	}
	warnCorruption(result.Corruption)

	if len(result.Entries) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No entries yet")
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: Log how you feel with 'mood <scale> <description>', e.g. mood 8 productive day")
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Latest of %d %s:\n", result.Total, cli.Pluralize("entry", result.Total))
	_, _ = fmt.Fprintln(deps.Stdout, cli.EntryTable(result.Entries[0], location(services)))
}

// warnCorruption reports a stored payload that was read as empty
func warnCorruption(c *storage.CorruptionError) {
	if c == nil {
		return
	}
	_, _ = fmt.Fprintln(deps.Stderr, "Warning: Stored entries are corrupted and were read as empty:")
	_, _ = fmt.Fprintln(deps.Stderr, cli.FormatCorruption(c))
	_, _ = fmt.Fprintln(deps.Stderr, "Hint: The payload is backed up before the next save. See 'mood restore --list'")
	_, _ = fmt.Fprintln(deps.Stderr)
}

// validateStorage checks the stored payload and reports its health
func validateStorage() {
	services, ok := loadServices()
	if !ok {
		return
	}

	health, err := services.Store.Health()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to validate storage: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, cli.HealthTable(health, services.StorageDir))
	if health.Corrupt {
		_, _ = fmt.Fprintln(deps.Stdout)
		_, _ = fmt.Fprintln(deps.Stdout, "Hint: The next save backs up the corrupted payload. Use 'mood restore' to bring back an earlier one")
	}
}
