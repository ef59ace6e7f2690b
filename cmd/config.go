package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xolan/mood/internal/config"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Display or manage configuration settings",
	Long: `Display the current effective configuration settings for mood.

Shows the configuration file location, whether it exists, and all current settings.
Configuration values are merged from the config file, a .env file in the working
directory and MOOD_* environment variables, with sensible defaults.

By default, mood works without any configuration file. It only needs an API key:
  - OPENAI_API_KEY (or MOOD_INSIGHT_API_KEY) for the default openai provider

Examples:
  mood config               Show all current settings
  mood config --init        Create a sample config file
  mood config --path        Print the config file location

Configuration file location:
  ~/.config/mood/config.toml          Linux
  ~/Library/Application Support/mood  macOS
  %APPDATA%\mood\config.toml          Windows`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		initFlag, _ := cmd.Flags().GetBool("init")
		pathFlag, _ := cmd.Flags().GetBool("path")
		switch {
		case initFlag:
			initConfig()
		case pathFlag:
			showConfigPath()
		default:
			showConfig()
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("init", false, "Create a sample config file")
	configCmd.Flags().Bool("path", false, "Print the config file location")
	configCmd.MarkFlagsMutuallyExclusive("init", "path")
}

// showConfigPath prints only the config file location
func showConfigPath() {
	services, ok := loadServices()
	if !ok {
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, services.Config.GetPath())
}

// initConfig writes a sample config file
func initConfig() {
	services, ok := loadServices()
	if !ok {
		return
	}

	if err := services.Config.Init(); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to create config file")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", services.Config.GetPath())
}

// maskKey hides all but the last four characters of an API key
func maskKey(key string) string {
	switch {
	case key == "":
		return "(not set)"
	case len(key) <= 4:
		return strings.Repeat("*", len(key))
	default:
		return strings.Repeat("*", 8) + key[len(key)-4:]
	}
}

// orDefault shows empty settings as "(default)"
func orDefault(v string) string {
	if v == "" {
		return "(default)"
	}
	return v
}

// showConfig displays the current effective configuration
func showConfig() {
	services, ok := loadServices()
	if !ok {
		return
	}
	cfg := services.Config.Get()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration for mood")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 60))
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintf(deps.Stdout, "Config file:     %s\n", services.Config.GetPath())
	if services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          File exists (using custom configuration)")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status:          No config file (using defaults)")
	}
	if services.StorageDir != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Storage:         %s\n", services.StorageDir)
	}
	_, _ = fmt.Fprintln(deps.Stdout)

	_, _ = fmt.Fprintln(deps.Stdout, "Current Settings:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 60))
	_, _ = fmt.Fprintf(deps.Stdout, "Timezone:        %s\n", cfg.Timezone)
	_, _ = fmt.Fprintf(deps.Stdout, "Theme:           %s\n", cfg.Theme)
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintf(deps.Stdout, "Insight mode:    %s\n", cfg.Insight.Mode)
	_, _ = fmt.Fprintf(deps.Stdout, "Provider:        %s\n", cfg.Insight.Provider)
	if cfg.Insight.Endpoint != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Endpoint:        %s\n", cfg.Insight.Endpoint)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "API key:         %s\n", maskKey(cfg.Insight.APIKey))
	_, _ = fmt.Fprintf(deps.Stdout, "Base URL:        %s\n", orDefault(cfg.Insight.BaseURL))
	_, _ = fmt.Fprintf(deps.Stdout, "Model:           %s\n", cfg.Insight.Model)
	_, _ = fmt.Fprintf(deps.Stdout, "Max tokens:      %d\n", cfg.Insight.MaxTokens)
	_, _ = fmt.Fprintf(deps.Stdout, "Temperature:     %.2g\n", cfg.Insight.Temperature)
	_, _ = fmt.Fprintln(deps.Stdout)
	_, _ = fmt.Fprintf(deps.Stdout, "Server address:  %s\n", cfg.Server.Addr)
	_, _ = fmt.Fprintf(deps.Stdout, "Allowed origins: %s\n", cfg.Server.AllowedOrigins)
	_, _ = fmt.Fprintf(deps.Stdout, "Log:             %s (%s)\n", cfg.Log.Level, cfg.Log.Format)
	_, _ = fmt.Fprintln(deps.Stdout)

	if !services.Config.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Tip: Run 'mood config --init' to create a config file with every option.")
		_, _ = fmt.Fprintln(deps.Stdout)
	}
	if cfg.Insight.APIKey == "" && cfg.Insight.Endpoint == "" {
		_, _ = fmt.Fprintf(deps.Stdout, "Tip: Set %s to enable insights, or point insight.endpoint at a 'mood serve' proxy.\n", apiKeyEnv(cfg.Insight.Provider))
	}
}

// apiKeyEnv names the conventional API key variable of provider
func apiKeyEnv(provider string) string {
	if provider == config.ProviderAnthropic {
		return "ANTHROPIC_API_KEY"
	}
	return "OPENAI_API_KEY"
}
