package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_DefaultPort(t *testing.T) {
	cfg := NewDefaultConfig()
	if cfg.Server.Port != 8090 {
		t.Errorf("Server.Port default = %d, want %d", cfg.Server.Port, 8090)
	}
}

func TestConfig_DefaultMounts(t *testing.T) {
	cfg := NewDefaultConfig()
	want := []string{"pieChart", "lineChart", "barChart"}
	if len(cfg.Charts.Mounts) != len(want) {
		t.Fatalf("Charts.Mounts = %v, want %v", cfg.Charts.Mounts, want)
	}
	for i := range want {
		if cfg.Charts.Mounts[i] != want[i] {
			t.Errorf("Charts.Mounts[%d] = %q, want %q", i, cfg.Charts.Mounts[i], want[i])
		}
	}
}

func TestConfig_PortEnvOverride(t *testing.T) {
	t.Setenv("VIRE_DASH_PORT", "9090")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d after env override, want %d", cfg.Server.Port, 9090)
	}
}

func TestConfig_UpstreamEnvOverride(t *testing.T) {
	t.Setenv("VIRE_DASH_UPSTREAM_URL", "http://stocks.internal:8080/")
	t.Setenv("VIRE_DASH_DISCARD_STALE", "true")

	cfg := NewDefaultConfig()
	applyEnvOverrides(cfg)

	if cfg.Upstream.BaseURL != "http://stocks.internal:8080" {
		t.Errorf("Upstream.BaseURL = %q", cfg.Upstream.BaseURL)
	}
	if !cfg.Refresh.DiscardStale {
		t.Error("Refresh.DiscardStale = false, want true")
	}
}

func TestConfig_GetTimeout(t *testing.T) {
	cases := map[string]time.Duration{
		"":      0,
		"15s":   15 * time.Second,
		"bogus": 0,
		"-5s":   0,
	}
	for in, want := range cases {
		c := UpstreamConfig{Timeout: in}
		if got := c.GetTimeout(); got != want {
			t.Errorf("GetTimeout(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestConfig_LoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vire-dash.toml")
	content := `
display_currency = "usd"

[upstream]
base_url = "http://portfolio:9000"
timeout = "20s"

[refresh]
discard_stale = true

[charts]
mounts = ["pieChart"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(filepath.Join(dir, "missing.toml"), path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Upstream.BaseURL != "http://portfolio:9000" {
		t.Errorf("Upstream.BaseURL = %q", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.SummaryPath != "/api/summary" {
		t.Errorf("Upstream.SummaryPath = %q, want default kept", cfg.Upstream.SummaryPath)
	}
	if cfg.Upstream.GetTimeout() != 20*time.Second {
		t.Errorf("timeout = %v", cfg.Upstream.GetTimeout())
	}
	if !cfg.Refresh.DiscardStale {
		t.Error("discard_stale not loaded")
	}
	if len(cfg.Charts.Mounts) != 1 || cfg.Charts.Mounts[0] != "pieChart" {
		t.Errorf("Charts.Mounts = %v", cfg.Charts.Mounts)
	}
	if cfg.DisplayCurrency != "USD" {
		t.Errorf("DisplayCurrency = %q, want USD", cfg.DisplayCurrency)
	}
}

func TestConfig_LoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[server\nport = "), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestConfig_UnknownCurrencyFallsBack(t *testing.T) {
	cfg := &Config{DisplayCurrency: "XYZQ"}
	validateDisplayCurrency(cfg)
	if cfg.DisplayCurrency != "INR" {
		t.Errorf("DisplayCurrency = %q, want INR", cfg.DisplayCurrency)
	}
}

func TestConfig_IsProduction(t *testing.T) {
	for env, want := range map[string]bool{"prod": true, " Production ": true, "development": false} {
		cfg := &Config{Environment: env}
		if got := cfg.IsProduction(); got != want {
			t.Errorf("IsProduction(%q) = %v, want %v", env, got, want)
		}
	}
}
