package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/chatpulse/internal/panel"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadFromMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Panel.WindowDays != panel.DefaultWindowDays {
		t.Errorf("WindowDays = %d, want %d", cfg.Panel.WindowDays, panel.DefaultWindowDays)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := DefaultConfig()
	cfg.General.InputPath = "/tmp/metrics.json"
	cfg.Panel.Language = "en"
	cfg.Panel.Clamp = "symmetric"
	cfg.Panel.WindowDays = 7
	cfg.Appearance.Theme = "terminal"

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}

	opts := got.PanelOptions()
	if opts.Clamp != panel.ClampSymmetric || opts.WindowDays != 7 || opts.Language != "en" {
		t.Errorf("PanelOptions = %+v", opts)
	}
}

func TestLoadFromRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"language": "[panel]\nlanguage = \"fr\"\n",
		"clamp":    "[panel]\nclamp = \"both\"\n",
		"window":   "[panel]\nwindow_days = 0\n",
		"interval": "[daemon]\ninterval_sec = 1\n",
		"syntax":   "[panel\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFrom(path); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestValidateNamesField(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Panel.Clamp = "both"
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "Clamp") {
		t.Fatalf("Validate error = %v, want mention of Clamp", err)
	}
}

func TestEnvOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.InputPath = "from-config.json"

	t.Setenv(EnvInput, "")
	if got := InputPath(cfg); got != "from-config.json" {
		t.Errorf("InputPath = %q, want config value", got)
	}
	t.Setenv(EnvInput, "from-env.json")
	if got := InputPath(cfg); got != "from-env.json" {
		t.Errorf("InputPath = %q, want env value", got)
	}
	t.Setenv(EnvTheme, "terminal")
	if got := ThemeName(cfg); got != "terminal" {
		t.Errorf("ThemeName = %q, want terminal", got)
	}
}

func TestPathHonorsEnv(t *testing.T) {
	t.Setenv(EnvConfig, "/etc/chatpulse.toml")
	if got := Path(); got != "/etc/chatpulse.toml" {
		t.Errorf("Path = %q", got)
	}
}

func TestRefreshIntervalFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.RefreshIntervalSec = 1
	if got := RefreshInterval(cfg); got != 30*time.Second {
		t.Errorf("RefreshInterval = %s, want 30s", got)
	}
	cfg.General.RefreshIntervalSec = 60
	if got := RefreshInterval(cfg); got != time.Minute {
		t.Errorf("RefreshInterval = %s, want 1m", got)
	}
}
