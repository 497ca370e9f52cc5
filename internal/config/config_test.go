package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"muxcli/internal/config"
)

func clearTokenEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MUX_TOKEN_ID", "")
	t.Setenv("MUX_TOKEN_SECRET", "")
	t.Setenv("MUX_BASE_URL", "")
	os.Unsetenv("MUX_TOKEN_ID")
	os.Unsetenv("MUX_TOKEN_SECRET")
	os.Unsetenv("MUX_BASE_URL")
}

func TestLoadDefaultConfigUsesEnvToken(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("MUX_TOKEN_ID", "env-id")
	t.Setenv("MUX_TOKEN_SECRET", "env-secret")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "mux", "config.toml"); resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.API.TokenID != "env-id" || cfg.API.TokenSecret != "env-secret" {
		t.Fatalf("expected token from env, got %q/%q", cfg.API.TokenID, cfg.API.TokenSecret)
	}
	if !cfg.HasCredentials() {
		t.Fatal("expected credentials to be reported present")
	}
	if cfg.API.BaseURL != "https://api.mux.com" {
		t.Fatalf("unexpected base url: %q", cfg.API.BaseURL)
	}
	if cfg.Polling.AssetIntervalSeconds != 5 || cfg.Polling.AssetTimeoutSeconds != 300 {
		t.Fatalf("unexpected asset polling defaults: %+v", cfg.Polling)
	}
	if cfg.Polling.RenditionIntervalSeconds != 2 || cfg.Polling.RenditionTimeoutSeconds != 600 {
		t.Fatalf("unexpected rendition polling defaults: %+v", cfg.Polling)
	}
	if cfg.Upload.CORSOrigin != "*" {
		t.Fatalf("unexpected cors origin: %q", cfg.Upload.CORSOrigin)
	}
}

func TestLoadWithoutCredentialsSucceeds(t *testing.T) {
	clearTokenEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HasCredentials() {
		t.Fatal("expected no credentials")
	}
	err = cfg.ValidateCredentials()
	if err == nil || !strings.Contains(err.Error(), "MUX_TOKEN_ID") {
		t.Fatalf("expected credential hint, got %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	clearTokenEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "mux.toml")

	type payload struct {
		API struct {
			BaseURL     string `toml:"base_url"`
			TokenID     string `toml:"token_id"`
			TokenSecret string `toml:"token_secret"`
		} `toml:"api"`
		Polling struct {
			AssetIntervalSeconds int `toml:"asset_interval_seconds"`
			AssetTimeoutSeconds  int `toml:"asset_timeout_seconds"`
		} `toml:"polling"`
	}
	custom := payload{}
	custom.API.BaseURL = "https://example.com/api/"
	custom.API.TokenID = "abc"
	custom.API.TokenSecret = "def"
	custom.Polling.AssetIntervalSeconds = 1
	custom.Polling.AssetTimeoutSeconds = 30

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom path to be used, got %q (exists=%v)", resolved, exists)
	}
	if cfg.API.BaseURL != "https://example.com/api" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.API.BaseURL)
	}
	if cfg.Polling.AssetIntervalSeconds != 1 || cfg.Polling.AssetTimeoutSeconds != 30 {
		t.Fatalf("unexpected polling values: %+v", cfg.Polling)
	}
	if cfg.Polling.RenditionIntervalSeconds != 2 {
		t.Fatalf("expected untouched defaults to survive, got %d", cfg.Polling.RenditionIntervalSeconds)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearTokenEnv(t)
	cases := map[string]string{
		"half token":       "[api]\ntoken_id = \"only-id\"\n",
		"bad scheme":       "[api]\nbase_url = \"ftp://example.com\"\n",
		"zero interval":    "[polling]\nasset_interval_seconds = 0\n",
		"timeout<interval": "[polling]\nrendition_interval_seconds = 30\nrendition_timeout_seconds = 10\n",
		"bad log format":   "[logging]\nformat = \"xml\"\n",
		"unknown key":      "[api]\nbogus = 1\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "mux.toml")
			if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	clearTokenEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample file to exist")
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected sample log level: %q", cfg.Logging.Level)
	}
}

func TestRedactedMasksSecret(t *testing.T) {
	cfg := config.Default()
	cfg.API.TokenSecret = "super-secret"
	redacted := cfg.Redacted()
	if redacted.API.TokenSecret == "super-secret" {
		t.Fatal("expected secret to be masked")
	}
	if cfg.API.TokenSecret != "super-secret" {
		t.Fatal("expected original config to be untouched")
	}
}
