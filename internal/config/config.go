// Package config loads, validates and saves the chatpulse TOML config.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/chatpulse/internal/panel"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variables that override config values.
const (
	EnvConfig = "CHATPULSE_CONFIG"
	EnvInput  = "CHATPULSE_INPUT"
	EnvTheme  = "CHATPULSE_THEME"
)

// Config holds all chatpulse configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Panel      PanelConfig      `toml:"panel"`
	Appearance AppearanceConfig `toml:"appearance"`
	Daemon     DaemonConfig     `toml:"daemon"`
	History    HistoryConfig    `toml:"history"`
}

// GeneralConfig holds input and refresh preferences.
type GeneralConfig struct {
	InputPath          string `toml:"input_path,omitempty"`
	RefreshIntervalSec int    `toml:"refresh_interval_sec" validate:"gte=0"`
	AutoRefresh        bool   `toml:"auto_refresh"`
}

// PanelConfig mirrors panel.Options.
type PanelConfig struct {
	Language     string `toml:"language" validate:"oneof=ru en"`
	NumberLocale string `toml:"number_locale" validate:"required,bcp47_language_tag"`
	Clamp        string `toml:"clamp" validate:"oneof=literal symmetric"`
	WindowDays   int    `toml:"window_days" validate:"gte=1,lte=366"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DaemonConfig holds background poller settings.
type DaemonConfig struct {
	Addr         string `toml:"addr" validate:"required,hostname_port"`
	IntervalSec  int    `toml:"interval_sec" validate:"gte=2"`
	EventsBuffer int    `toml:"events_buffer" validate:"gte=1"`
}

// HistoryConfig controls the SQLite snapshot history.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	DBPath  string `toml:"db_path,omitempty"`
	Keep    int    `toml:"keep" validate:"gte=0"` // 0 keeps everything
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	opts := panel.DefaultOptions()
	return Config{
		General: GeneralConfig{
			RefreshIntervalSec: 30,
		},
		Panel: PanelConfig{
			Language:     opts.Language,
			NumberLocale: opts.NumberLocale,
			Clamp:        string(opts.Clamp),
			WindowDays:   opts.WindowDays,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Daemon: DaemonConfig{
			Addr:         "127.0.0.1:8788",
			IntervalSec:  15,
			EventsBuffer: 200,
		},
		History: HistoryConfig{
			Enabled: true,
			Keep:    10_000,
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chatpulse")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "chatpulse")
}

// Path returns the config file path, honoring CHATPULSE_CONFIG.
func Path() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return filepath.Join(Dir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory for history and
// daemon state.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "chatpulse")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "chatpulse")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads and validates the config at path. A missing file yields
// the defaults.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	//nolint:gosec // config path is chosen by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Save writes the config to its default location.
func Save(cfg Config) error {
	return SaveTo(Path(), cfg)
}

// SaveTo validates cfg and writes it to path.
func SaveTo(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	//nolint:gosec // config path is chosen by the local user
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

var validate = validator.New()

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (got %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// LoadDotEnv loads environment overrides from a .env file in the working
// directory, if one exists. Already-set variables win.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// PanelOptions converts the panel section into build options.
func (c Config) PanelOptions() panel.Options {
	clamp, _ := panel.ParseClampMode(c.Panel.Clamp)
	return panel.Options{
		Language:     c.Panel.Language,
		NumberLocale: c.Panel.NumberLocale,
		Clamp:        clamp,
		WindowDays:   c.Panel.WindowDays,
	}
}

// InputPath returns the metrics input file from env var or config, in
// that order.
func InputPath(cfg Config) string {
	if p := os.Getenv(EnvInput); p != "" {
		return p
	}
	return cfg.General.InputPath
}

// ThemeName returns the theme from env var or config, in that order.
func ThemeName(cfg Config) string {
	if name := os.Getenv(EnvTheme); name != "" {
		return name
	}
	return cfg.Appearance.Theme
}

// HistoryPath returns the snapshot database path.
func HistoryPath(cfg Config) string {
	if cfg.History.DBPath != "" {
		return cfg.History.DBPath
	}
	return filepath.Join(DataDir(), "history.db")
}

// RefreshInterval returns the TUI refresh interval, at least 5s.
func RefreshInterval(cfg Config) time.Duration {
	d := time.Duration(cfg.General.RefreshIntervalSec) * time.Second
	if d < 5*time.Second {
		return 30 * time.Second
	}
	return d
}

// DaemonInterval returns the daemon poll interval.
func DaemonInterval(cfg Config) time.Duration {
	return time.Duration(cfg.Daemon.IntervalSec) * time.Second
}
