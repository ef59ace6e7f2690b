package cmd

import (
	"io"
	"os"

	"github.com/xolan/mood/internal/app"
	"github.com/xolan/mood/internal/config"
	"github.com/xolan/mood/internal/service"
	"github.com/xolan/mood/internal/tui"
)

// Deps holds external dependencies for CLI commands, enabling testability.
type Deps struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Stdin    io.Reader
	Exit     func(code int)
	Services func() (*service.Services, error)
	RunTUI   func(*service.Services) error
}

// DefaultDeps returns the default production dependencies.
func DefaultDeps() *Deps {
	return &Deps{
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		Stdin:    os.Stdin,
		Exit:     os.Exit,
		Services: defaultServices,
		RunTUI:   tui.Run,
	}
}

// defaultServices loads the config file and wires the services to disk storage.
func defaultServices() (*service.Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	return service.NewServices(configPath, cfg, app.NewLogger(cfg.Log, os.Stderr))
}

// deps is the global dependencies instance used by commands.
// In production, this is DefaultDeps(). Tests can replace it.
var deps = DefaultDeps()

// SetDeps sets the global dependencies (for testing).
func SetDeps(d *Deps) {
	deps = d
}

// ResetDeps resets dependencies to defaults (for testing cleanup).
func ResetDeps() {
	deps = DefaultDeps()
}
