package app

import (
	"log/slog"
	"net/http"

	"github.com/xolan/mood/internal/completion"
	"github.com/xolan/mood/internal/config"
	"github.com/xolan/mood/internal/insight"
)

// NewCompleter returns the completion provider named by cfg.Provider.
func NewCompleter(cfg config.InsightConfig) completion.Completer {
	client := &http.Client{Timeout: cfg.Timeout}
	if cfg.Provider == config.ProviderAnthropic {
		return completion.NewAnthropic(cfg.APIKey, cfg.BaseURL, client)
	}
	return completion.NewOpenAI(cfg.APIKey, cfg.BaseURL, client)
}

// NewInsighter returns a RemoteClient when an endpoint is configured,
// otherwise a Client talking to the provider directly.
func NewInsighter(cfg config.InsightConfig, logger *slog.Logger) insight.Insighter {
	if cfg.Endpoint != "" {
		return insight.NewRemoteClient(cfg.Endpoint, &http.Client{Timeout: cfg.Timeout})
	}
	return insight.NewClient(NewCompleter(cfg), InsightOptions(cfg), logger)
}

// InsightOptions maps the config section onto the insight request settings.
func InsightOptions(cfg config.InsightConfig) insight.Options {
	return insight.Options{
		Model:        cfg.Model,
		SystemPrompt: cfg.SystemPrompt,
		MaxTokens:    cfg.MaxTokens,
		Temperature:  cfg.Temperature,
	}
}
