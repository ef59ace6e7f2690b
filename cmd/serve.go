package cmd

import (
	"context"
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/xolan/mood/internal/app"
	"github.com/xolan/mood/internal/insight"
	"github.com/xolan/mood/internal/server"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the insight proxy",
	Long: `Run the HTTP insight proxy so clients never need the provider API key.

Endpoints:
  POST /api/insight   {"scale": 8, "description": "..."} -> {"insight": "..."}
  GET  /healthz       {"status": "ok"}

The proxy always talks to the provider directly, even when insight.endpoint
is set. Point other mood clients at it with insight.endpoint or
MOOD_INSIGHT_ENDPOINT.

Examples:
  mood serve                Listen on the configured address (default :3000)
  mood serve --addr :8080   Listen on port 8080`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		serve(cmd.Context(), addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Address to listen on (overrides server.addr)")
}

// serve runs the insight proxy until ctx is done
func serve(ctx context.Context, addr string) {
	services, ok := loadServices()
	if !ok {
		return
	}

	cfg := services.Config.Get()
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if cfg.Insight.APIKey == "" {
		_, _ = fmt.Fprintln(deps.Stderr, "Warning: No insight API key configured, every request will fail")
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Set OPENAI_API_KEY (or insight.api_key in the config file)")
	}

	logger := app.NewLogger(cfg.Log, deps.Stderr)
	insights := insight.NewClient(app.NewCompleter(cfg.Insight), app.InsightOptions(cfg.Insight), logger)
	srv := server.New(cfg.Server, insights, logger, rootCmd.Version)

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: Failed to listen on %s\n", cfg.Server.Addr)
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Choose another address with --addr")
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Insight proxy listening on %s (POST %s)\n", ln.Addr(), insight.Path)
	if err := srv.Serve(ctx, ln); err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Insight proxy stopped")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		deps.Exit(1)
		return
	}
	_, _ = fmt.Fprintln(deps.Stdout, "Insight proxy stopped")
}
