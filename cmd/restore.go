package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/xolan/mood/internal/cli"
	"github.com/xolan/mood/internal/storage"
)

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [backup_number]",
	Short: "Restore entries from a backup",
	Long: `Restore the stored entries from a backup.

A backup is made whenever a corrupted payload is about to be overwritten,
and before a restore replaces the current payload.

By default, restores from the most recent backup (.bak.1).
Optionally specify a backup number to restore from (1-3).

Examples:
  mood restore          Restore from most recent backup
  mood restore 2        Restore from backup #2
  mood restore --list   List available backups`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		list, _ := cmd.Flags().GetBool("list")
		restoreFromBackup(args, list)
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)

	restoreCmd.Flags().BoolP("list", "l", false, "List available backups without restoring")
}

// restoreFromBackup handles the restore command logic
func restoreFromBackup(args []string, list bool) {
	backupNum := 1
	if len(args) > 0 {
		num, err := strconv.Atoi(args[0])
		if err != nil {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Invalid backup number '%s'\n", args[0])
			deps.Exit(1)
			return
		}
		if num < 1 || num > storage.MaxBackupCount {
			_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup number must be between 1 and %d (got %d)\n", storage.MaxBackupCount, num)
			deps.Exit(1)
			return
		}
		backupNum = num
	}

	services, ok := loadServices()
	if !ok {
		return
	}

	backups, err := services.Store.ListBackups()
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to list backups: %v\n", err)
		deps.Exit(1)
		return
	}

	if len(backups) == 0 {
		_, _ = fmt.Fprintln(deps.Stdout, "No backups available")
		if !list {
			deps.Exit(1)
		}
		return
	}

	_, _ = fmt.Fprintln(deps.Stdout, "Available backups:")
	_, _ = fmt.Fprintln(deps.Stdout, cli.BackupTable(backups))
	_, _ = fmt.Fprintln(deps.Stdout)
	if list {
		return
	}

	backupExists := false
	for _, backup := range backups {
		if backup.Number == backupNum {
			backupExists = true
			break
		}
	}

	if !backupExists {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Backup %d does not exist\n", backupNum)
		deps.Exit(1)
		return
	}

	if err := services.Store.RestoreBackup(backupNum); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to restore backup: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Successfully restored from backup %d\n", backupNum)
	if health, err := services.Store.Health(); err == nil && health.Corrupt {
		_, _ = fmt.Fprintln(deps.Stderr, "Warning: The restored payload is also corrupted")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Try an older backup with 'mood restore <n>'")
	}
}
