package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/mood/internal/cli"
	"github.com/xolan/mood/internal/entry"
	"github.com/xolan/mood/internal/service"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for mood.

The completion command allows you to generate shell completion scripts for
bash, zsh, fish, and powershell. This enables tab-completion for commands,
flags, and arguments in your shell, including entry ids for 'mood show'
and 'mood insight'.

Usage:
  mood completion bash       Generate bash completion script
  mood completion zsh        Generate zsh completion script
  mood completion fish       Generate fish completion script
  mood completion powershell Generate powershell completion script

Installation Instructions:

Bash:
  # Load completion temporarily (current session only):
  source <(mood completion bash)

  # Install completion permanently:
  # Linux:
  mood completion bash > ~/.local/share/bash-completion/completions/mood

  # macOS (requires bash-completion from Homebrew):
  mood completion bash > $(brew --prefix)/etc/bash_completion.d/mood

Zsh:
  # Load completion temporarily (current session only):
  source <(mood completion zsh)

  # Install completion permanently:
  # Add to ~/.zshrc:
  echo 'fpath=(~/.zsh/completion $fpath)' >> ~/.zshrc
  echo 'autoload -Uz compinit && compinit' >> ~/.zshrc

  # Generate completion file:
  mkdir -p ~/.zsh/completion
  mood completion zsh > ~/.zsh/completion/_mood

  # Then restart your shell

Fish:
  # Install completion permanently:
  mood completion fish > ~/.config/fish/completions/mood.fish

PowerShell:
  # Open your PowerShell profile:
  notepad $PROFILE

  # Add this line to your profile:
  mood completion powershell | Out-String | Invoke-Expression

  # Save and restart PowerShell`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.ExactValidArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)

	showCmd.ValidArgsFunction = completeEntryIDs(false)
	insightCmd.ValidArgsFunction = completeEntryIDs(true)
	restoreCmd.ValidArgs = []string{"1", "2", "3"}
}

// completeEntryIDs offers stored entry ids, newest first, described by mood and description.
// With pendingOnly only entries still missing an insight are offered.
func completeEntryIDs(pendingOnly bool) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		services, err := deps.Services()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		result, err := services.Entry.List(service.ListOptions{})
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		var ids []string
		for _, e := range result.Entries {
			if pendingOnly && e.HasInsight() {
				continue
			}
			if strings.HasPrefix(e.ID, toComplete) {
				ids = append(ids, completionItem(e))
			}
		}
		return ids, cobra.ShellCompDirectiveNoFileComp
	}
}

// completionItem formats an entry as "id<TAB>description" for shell completion
func completionItem(e entry.MoodEntry) string {
	return fmt.Sprintf("%s\t%s %s", e.ID, cli.FormatMood(e.Scale), cli.Truncate(e.Description, 40))
}

// generateCompletion generates the appropriate completion script based on shell type
func generateCompletion(shell string) {
	var err error

	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(deps.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(deps.Stdout)
	case "fish":
		err = rootCmd.GenFishCompletion(deps.Stdout, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(deps.Stdout)
	default:
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintln(deps.Stderr, "Supported shells: bash, zsh, fish, powershell")
		deps.Exit(1)
		return
	}

	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to generate %s completion: %v\n", shell, err)
		deps.Exit(1)
		return
	}
}
