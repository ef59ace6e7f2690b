package service

import (
	"log/slog"

	"github.com/xolan/mood/internal/app"
	"github.com/xolan/mood/internal/config"
	"github.com/xolan/mood/internal/insight"
	"github.com/xolan/mood/internal/kv"
	"github.com/xolan/mood/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	Entry   *EntryService
	Trend   *TrendService
	Config  *ConfigService
	Store   *storage.EntryStore
	Insight insight.Insighter
	// StorageDir is where the disk store writes; empty for stores built by NewServicesWith
	StorageDir string
}

// NewServices wires the services to the disk store and the configured insight provider.
func NewServices(configPath string, cfg config.Config, logger *slog.Logger) (*Services, error) {
	dir, err := storage.ResolveStorageDir(cfg.StorageDir)
	if err != nil {
		return nil, err
	}

	store := storage.NewEntryStore(kv.NewDiskStore(dir), logger)
	services := NewServicesWith(store, app.NewInsighter(cfg.Insight, logger), configPath, cfg, logger)
	services.StorageDir = dir
	return services, nil
}

// NewServicesWith creates a new Services instance from explicit parts (useful for testing)
func NewServicesWith(store *storage.EntryStore, insights insight.Insighter, configPath string, cfg config.Config, logger *slog.Logger, opts ...EntryOption) *Services {
	return &Services{
		Entry:   NewEntryService(store, insights, cfg, logger, opts...),
		Trend:   NewTrendService(store, cfg),
		Config:  NewConfigService(configPath, cfg),
		Store:   store,
		Insight: insights,
	}
}
