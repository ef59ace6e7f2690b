package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/xolan/mood/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "mood"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// Insight modes
const (
	// ModeStrict requests the insight before saving; a failed request saves nothing
	ModeStrict = "strict"
	// ModeDeferred saves first and attaches the insight when it arrives
	ModeDeferred = "deferred"
)

// Completion providers
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config represents the application configuration
type Config struct {
	// Timezone defines the timezone used to group entries by day (IANA name or "Local")
	Timezone string `toml:"timezone" env:"MOOD_TIMEZONE" env-default:"Local"`
	// Theme is the TUI color theme
	Theme string `toml:"theme" env:"MOOD_THEME" env-default:"dracula"`
	// StorageDir overrides where entries are stored; "~" is expanded
	StorageDir string `toml:"storage_dir" env:"MOOD_STORAGE_DIR"`

	Insight InsightConfig `toml:"insight"`
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
}

// InsightConfig controls how insights are requested.
type InsightConfig struct {
	Mode         string        `toml:"mode"          env:"MOOD_INSIGHT_MODE"          env-default:"strict"`
	Provider     string        `toml:"provider"      env:"MOOD_INSIGHT_PROVIDER"      env-default:"openai"`
	Endpoint     string        `toml:"endpoint"      env:"MOOD_INSIGHT_ENDPOINT"`
	APIKey       string        `toml:"api_key"       env:"MOOD_INSIGHT_API_KEY,OPENAI_API_KEY,ANTHROPIC_API_KEY"`
	BaseURL      string        `toml:"base_url"      env:"MOOD_INSIGHT_BASE_URL"`
	Model        string        `toml:"model"         env:"MOOD_INSIGHT_MODEL"         env-default:"gpt-3.5-turbo"`
	SystemPrompt string        `toml:"system_prompt" env:"MOOD_INSIGHT_SYSTEM_PROMPT" env-default:"You are a helpful and empathetic mood assistant."`
	MaxTokens    int           `toml:"max_tokens"    env:"MOOD_INSIGHT_MAX_TOKENS"    env-default:"150"`
	Temperature  float64       `toml:"temperature"   env:"MOOD_INSIGHT_TEMPERATURE"   env-default:"0.7"`
	Timeout      time.Duration `toml:"timeout"       env:"MOOD_INSIGHT_TIMEOUT"`
}

// ServerConfig holds insight proxy settings.
type ServerConfig struct {
	Addr            string        `toml:"addr"             env:"MOOD_SERVER_ADDR"             env-default:":3000"`
	AllowedOrigins  string        `toml:"allowed_origins"  env:"MOOD_SERVER_ALLOWED_ORIGINS"  env-default:"*"`
	ReadTimeout     time.Duration `toml:"read_timeout"     env:"MOOD_SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `toml:"write_timeout"    env:"MOOD_SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `toml:"idle_timeout"     env:"MOOD_SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"MOOD_SERVER_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"  env:"MOOD_LOG_LEVEL"  env-default:"warn"`
	Format string `toml:"format" env:"MOOD_LOG_FORMAT" env-default:"text"`
}

// DefaultConfig returns a Config with the defaults used when no file exists.
func DefaultConfig() Config {
	return Config{
		Timezone: "Local",
		Theme:    "dracula",
		Insight: InsightConfig{
			Mode:         ModeStrict,
			Provider:     ProviderOpenAI,
			Model:        "gpt-3.5-turbo",
			SystemPrompt: "You are a helpful and empathetic mood assistant.",
			MaxTokens:    150,
			Temperature:  0.7,
		},
		Server: ServerConfig{
			Addr:            ":3000",
			AllowedOrigins:  "*",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// GetConfigPath returns the path to the config file.
// Uses os.UserConfigDir() for cross-platform XDG-compliant config directory.
// Creates the config directory if it doesn't exist.
func GetConfigPath() (string, error) {
	configDir, err := osutil.Provider.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)
	if err := osutil.Provider.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// Load reads the config file at path, applies environment overrides and validates the result.
func Load(path string) (Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault loads path if it exists, otherwise builds the config from defaults and environment.
// A .env file in the working directory is loaded into the environment first.
func LoadOrDefault(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	_, err := os.Stat(path)
	if err == nil {
		return Load(path)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to read environment: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Normalize lower-cases and trims enumerated values in place.
func (c *Config) Normalize() {
	c.Timezone = strings.TrimSpace(c.Timezone)
	c.Theme = strings.TrimSpace(c.Theme)
	c.StorageDir = strings.TrimSpace(c.StorageDir)
	c.Insight.Mode = strings.ToLower(strings.TrimSpace(c.Insight.Mode))
	c.Insight.Provider = strings.ToLower(strings.TrimSpace(c.Insight.Provider))
	c.Insight.Endpoint = strings.TrimSpace(c.Insight.Endpoint)
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

// Validate checks that the configuration values are valid.
// Call Normalize first; Validate does not modify the Config.
func (c *Config) Validate() error {
	switch c.Insight.Mode {
	case ModeStrict, ModeDeferred:
	default:
		return fmt.Errorf("invalid insight.mode %q: must be %q or %q", c.Insight.Mode, ModeStrict, ModeDeferred)
	}

	switch c.Insight.Provider {
	case ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("invalid insight.provider %q: must be %q or %q", c.Insight.Provider, ProviderOpenAI, ProviderAnthropic)
	}

	if c.Insight.MaxTokens < 1 {
		return fmt.Errorf("invalid insight.max_tokens %d: must be at least 1", c.Insight.MaxTokens)
	}
	if c.Insight.Temperature < 0 || c.Insight.Temperature > 2 {
		return fmt.Errorf("invalid insight.temperature %v: must be between 0 and 2", c.Insight.Temperature)
	}
	if c.Insight.Timeout < 0 {
		return fmt.Errorf("invalid insight.timeout %s: must not be negative", c.Insight.Timeout)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log.level %q: must be debug, info, warn or error", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q: must be text or json", c.Log.Format)
	}

	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the configured timezone. Empty and "Local" use the system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

// Write encodes cfg as TOML at path.
func Write(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(f, "# %s configuration file\n\n", AppName); err != nil {
		_ = f.Close()
		return err
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// GenerateSampleConfig returns a commented sample config listing every option with its default.
func GenerateSampleConfig() string {
	return `# mood configuration file
# Every value below is the default. Uncomment a line to change it.
# Each option can also be set through the environment variable shown next to it.

# Timezone used to group entries by day: IANA name (e.g., "America/New_York") or "Local"
# timezone = "Local"                   # MOOD_TIMEZONE

# TUI color theme
# theme = "dracula"                    # MOOD_THEME

# Directory holding stored entries; defaults to <config dir>/mood/store
# storage_dir = "~/mood"               # MOOD_STORAGE_DIR

[insight]
# "strict": no insight, no save. "deferred": save first, attach the insight later
# mode = "strict"                      # MOOD_INSIGHT_MODE
# "openai" or "anthropic"
# provider = "openai"                  # MOOD_INSIGHT_PROVIDER
# Ask a running "mood serve" proxy instead of the provider, e.g. "http://localhost:3000"
# endpoint = ""                        # MOOD_INSIGHT_ENDPOINT
# api_key = ""                         # MOOD_INSIGHT_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY
# base_url = "https://api.openai.com/v1"  # MOOD_INSIGHT_BASE_URL
# model = "gpt-3.5-turbo"              # MOOD_INSIGHT_MODEL
# system_prompt = "You are a helpful and empathetic mood assistant."
# max_tokens = 150                     # MOOD_INSIGHT_MAX_TOKENS
# temperature = 0.7                    # MOOD_INSIGHT_TEMPERATURE
# timeout = "0s"                       # MOOD_INSIGHT_TIMEOUT (0s: no client timeout)

[server]
# addr = ":3000"                       # MOOD_SERVER_ADDR
# allowed_origins = "*"                # MOOD_SERVER_ALLOWED_ORIGINS (comma separated)
# read_timeout = "10s"
# write_timeout = "30s"
# idle_timeout = "60s"
# shutdown_timeout = "5s"

[log]
# level = "warn"                       # MOOD_LOG_LEVEL: debug, info, warn, error
# format = "text"                      # MOOD_LOG_FORMAT: text, json
`
}
