package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeAPI(); err != nil {
		return err
	}
	c.normalizeUpload()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeAPI() error {
	c.API.TokenID = strings.TrimSpace(c.API.TokenID)
	c.API.TokenSecret = strings.TrimSpace(c.API.TokenSecret)
	if c.API.TokenID == "" {
		if value, ok := os.LookupEnv("MUX_TOKEN_ID"); ok {
			c.API.TokenID = strings.TrimSpace(value)
		}
	}
	if c.API.TokenSecret == "" {
		if value, ok := os.LookupEnv("MUX_TOKEN_SECRET"); ok {
			c.API.TokenSecret = strings.TrimSpace(value)
		}
	}
	if value, ok := os.LookupEnv("MUX_BASE_URL"); ok && strings.TrimSpace(value) != "" {
		c.API.BaseURL = value
	}

	c.API.BaseURL = strings.TrimRight(strings.TrimSpace(c.API.BaseURL), "/")
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultBaseURL
	}
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api.base_url: unsupported scheme %q", parsed.Scheme)
	}

	c.API.UserAgent = strings.TrimSpace(c.API.UserAgent)
	if c.API.UserAgent == "" {
		c.API.UserAgent = defaultUserAgent
	}
	return nil
}

func (c *Config) normalizeUpload() {
	c.Upload.CORSOrigin = strings.TrimSpace(c.Upload.CORSOrigin)
	if c.Upload.CORSOrigin == "" {
		c.Upload.CORSOrigin = defaultCORSOrigin
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
