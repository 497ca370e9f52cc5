package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"muxcli/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config with test credentials and the shortest polling
// cadence the validator accepts. It applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	cfgVal.API.TokenID = "test-token-id"
	cfgVal.API.TokenSecret = "test-token-secret"
	cfgVal.API.BaseURL = "http://127.0.0.1:0"
	cfgVal.Upload.ShowProgress = false
	cfgVal.Polling = config.Polling{
		AssetIntervalSeconds:     1,
		AssetTimeoutSeconds:      3,
		RenditionIntervalSeconds: 1,
		RenditionTimeoutSeconds:  3,
		UploadIntervalSeconds:    1,
		UploadTimeoutSeconds:     3,
	}

	builder := &configBuilder{t: t, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	return builder.cfg
}

// WithBaseURL points the config at a fake platform.
func WithBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.BaseURL = url
	}
}

// WithoutCredentials clears the token pair.
func WithoutCredentials() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.API.TokenID = ""
		b.cfg.API.TokenSecret = ""
	}
}

// WriteConfig encodes cfg as TOML into dir and returns the file path.
func WriteConfig(t testing.TB, dir string, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("encode config: %v", err)
	}
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
