package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateUpload(); err != nil {
		return err
	}
	if err := c.validatePolling(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

// ValidateCredentials reports a descriptive error when no access token is configured.
func (c *Config) ValidateCredentials() error {
	if c.HasCredentials() {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = defaultConfigPath
	}
	return fmt.Errorf("api.token_id and api.token_secret are required. Set MUX_TOKEN_ID/MUX_TOKEN_SECRET or edit %s (create with 'mux config init')", defaultPath)
}

func (c *Config) validateAPI() error {
	if c.API.TimeoutSeconds <= 0 {
		return errors.New("api.timeout_seconds must be positive")
	}
	if (c.API.TokenID == "") != (c.API.TokenSecret == "") {
		return errors.New("api.token_id and api.token_secret must be set together")
	}
	return nil
}

func (c *Config) validateUpload() error {
	if c.Upload.TransferTimeoutSeconds < 0 {
		return errors.New("upload.transfer_timeout_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validatePolling() error {
	p := c.Polling
	if err := ensurePositiveMap(map[string]int{
		"polling.asset_interval_seconds":     p.AssetIntervalSeconds,
		"polling.asset_timeout_seconds":      p.AssetTimeoutSeconds,
		"polling.rendition_interval_seconds": p.RenditionIntervalSeconds,
		"polling.rendition_timeout_seconds":  p.RenditionTimeoutSeconds,
		"polling.upload_interval_seconds":    p.UploadIntervalSeconds,
		"polling.upload_timeout_seconds":     p.UploadTimeoutSeconds,
	}); err != nil {
		return err
	}
	if p.AssetTimeoutSeconds < p.AssetIntervalSeconds {
		return errors.New("polling.asset_timeout_seconds must be >= polling.asset_interval_seconds")
	}
	if p.RenditionTimeoutSeconds < p.RenditionIntervalSeconds {
		return errors.New("polling.rendition_timeout_seconds must be >= polling.rendition_interval_seconds")
	}
	if p.UploadTimeoutSeconds < p.UploadIntervalSeconds {
		return errors.New("polling.upload_timeout_seconds must be >= polling.upload_interval_seconds")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
