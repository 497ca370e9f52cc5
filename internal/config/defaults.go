package config

const (
	defaultConfigPath               = "~/.config/mux/config.toml"
	defaultBaseURL                  = "https://api.mux.com"
	defaultAPITimeoutSeconds        = 30
	defaultUserAgent                = "mux-cli/dev"
	defaultCORSOrigin               = "*"
	defaultAssetIntervalSeconds     = 5
	defaultAssetTimeoutSeconds      = 300
	defaultRenditionIntervalSeconds = 2
	defaultRenditionTimeoutSeconds  = 600
	defaultUploadIntervalSeconds    = 2
	defaultUploadTimeoutSeconds     = 300
	defaultLogFormat                = "console"
	defaultLogLevel                 = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		API: API{
			BaseURL:        defaultBaseURL,
			TimeoutSeconds: defaultAPITimeoutSeconds,
			UserAgent:      defaultUserAgent,
		},
		Upload: Upload{
			CORSOrigin:   defaultCORSOrigin,
			ShowProgress: true,
		},
		Polling: Polling{
			AssetIntervalSeconds:     defaultAssetIntervalSeconds,
			AssetTimeoutSeconds:      defaultAssetTimeoutSeconds,
			RenditionIntervalSeconds: defaultRenditionIntervalSeconds,
			RenditionTimeoutSeconds:  defaultRenditionTimeoutSeconds,
			UploadIntervalSeconds:    defaultUploadIntervalSeconds,
			UploadTimeoutSeconds:     defaultUploadTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
