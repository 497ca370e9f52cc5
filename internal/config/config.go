package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// API contains the remote platform endpoint and access token.
type API struct {
	BaseURL        string `toml:"base_url" json:"base_url"`
	TokenID        string `toml:"token_id" json:"token_id"`
	TokenSecret    string `toml:"token_secret" json:"token_secret"`
	TimeoutSeconds int    `toml:"timeout_seconds" json:"timeout_seconds"`
	UserAgent      string `toml:"user_agent" json:"user_agent"`
}

// Upload contains settings for direct uploads of local files.
type Upload struct {
	CORSOrigin             string `toml:"cors_origin" json:"cors_origin"`
	TransferTimeoutSeconds int    `toml:"transfer_timeout_seconds" json:"transfer_timeout_seconds"` // 0 disables the limit
	ShowProgress           bool   `toml:"show_progress" json:"show_progress"`
}

// Polling contains the readiness polling cadence per resource kind.
type Polling struct {
	AssetIntervalSeconds     int `toml:"asset_interval_seconds" json:"asset_interval_seconds"`
	AssetTimeoutSeconds      int `toml:"asset_timeout_seconds" json:"asset_timeout_seconds"`
	RenditionIntervalSeconds int `toml:"rendition_interval_seconds" json:"rendition_interval_seconds"`
	RenditionTimeoutSeconds  int `toml:"rendition_timeout_seconds" json:"rendition_timeout_seconds"`
	UploadIntervalSeconds    int `toml:"upload_interval_seconds" json:"upload_interval_seconds"`
	UploadTimeoutSeconds     int `toml:"upload_timeout_seconds" json:"upload_timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" json:"format"`
	Level  string `toml:"level" json:"level"`
}

// Config encapsulates all configuration values for the mux CLI.
//
// Configuration sections:
//   - API: platform base URL, access token, request timeout
//   - Upload: CORS origin for upload targets, transfer timeout, progress bars
//   - Polling: readiness intervals and deadlines for assets, renditions, uploads
//   - Logging: log format and level (logs are written to stderr)
type Config struct {
	API     API     `toml:"api" json:"api"`
	Upload  Upload  `toml:"upload" json:"upload"`
	Polling Polling `toml:"polling" json:"polling"`
	Logging Logging `toml:"logging" json:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error; defaults and environment fallbacks are used instead.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("mux.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// HasCredentials reports whether both halves of the access token are set.
func (c *Config) HasCredentials() bool {
	return c.API.TokenID != "" && c.API.TokenSecret != ""
}

// TransferTimeout returns the timeout for a single file transfer; zero means none.
func (c *Config) TransferTimeout() time.Duration {
	return time.Duration(c.Upload.TransferTimeoutSeconds) * time.Second
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	// The sample may hold a token later on, keep it private.
	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Redacted returns a copy with the token secret masked, suitable for display.
func (c *Config) Redacted() Config {
	clone := *c
	if clone.API.TokenSecret != "" {
		clone.API.TokenSecret = "********"
	}
	return clone
}
