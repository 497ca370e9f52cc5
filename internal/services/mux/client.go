package mux

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"muxcli/internal/logging"
	"muxcli/internal/services"
)

const (
	defaultBaseURL     = "https://api.mux.com"
	defaultHTTPTimeout = 30 * time.Second
	maxErrorBodyBytes  = 64 * 1024
)

// HTTPDoer describes the HTTP client used by the platform client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config captures the runtime settings required to talk to the platform.
type Config struct {
	BaseURL        string
	TokenID        string
	TokenSecret    string
	UserAgent      string
	TimeoutSeconds int
}

// Client issues authenticated requests against the video API.
type Client struct {
	cfg        Config
	httpClient HTTPDoer
	logger     *slog.Logger
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "mux-api")
		}
	}
}

// NewClient constructs a platform client. Both halves of the access token are required.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	cfg.TokenID = strings.TrimSpace(cfg.TokenID)
	cfg.TokenSecret = strings.TrimSpace(cfg.TokenSecret)
	cfg.UserAgent = strings.TrimSpace(cfg.UserAgent)
	if cfg.TokenID == "" || cfg.TokenSecret == "" {
		return nil, services.Wrap(services.ErrConfiguration, "mux", "new client", "token id and secret required", nil)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// CreateAsset creates an asset from typed parameters (URL ingestion).
func (c *Client) CreateAsset(ctx context.Context, params AssetParams) (*Asset, error) {
	var asset Asset
	if err := c.doJSON(ctx, "create asset", http.MethodPost, "/video/v1/assets", params, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// CreateAssetFromManifest creates an asset from a raw JSON object. The body is
// forwarded as-is so manifest fields unknown to this client still reach the platform.
func (c *Client) CreateAssetFromManifest(ctx context.Context, manifest map[string]any) (*Asset, error) {
	var asset Asset
	if err := c.doJSON(ctx, "create asset", http.MethodPost, "/video/v1/assets", manifest, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// GetAsset fetches the current asset record.
func (c *Client) GetAsset(ctx context.Context, assetID string) (*Asset, error) {
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return nil, services.Wrap(services.ErrValidation, "mux", "get asset", "asset id required", nil)
	}
	var asset Asset
	if err := c.doJSON(ctx, "get asset", http.MethodGet, "/video/v1/assets/"+url.PathEscape(assetID), nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// CreateUpload requests a direct-upload target.
func (c *Client) CreateUpload(ctx context.Context, params UploadParams) (*Upload, error) {
	var upload Upload
	if err := c.doJSON(ctx, "create upload", http.MethodPost, "/video/v1/uploads", params, &upload); err != nil {
		return nil, err
	}
	if strings.TrimSpace(upload.URL) == "" {
		return nil, services.Wrap(services.ErrRemote, "mux", "create upload", "response missing signed url", nil)
	}
	return &upload, nil
}

// GetUpload fetches the current state of a direct upload.
func (c *Client) GetUpload(ctx context.Context, uploadID string) (*Upload, error) {
	uploadID = strings.TrimSpace(uploadID)
	if uploadID == "" {
		return nil, services.Wrap(services.ErrValidation, "mux", "get upload", "upload id required", nil)
	}
	var upload Upload
	if err := c.doJSON(ctx, "get upload", http.MethodGet, "/video/v1/uploads/"+url.PathEscape(uploadID), nil, &upload); err != nil {
		return nil, err
	}
	return &upload, nil
}

// CreateStaticRendition asks the platform to generate a static rendition for an asset.
func (c *Client) CreateStaticRendition(ctx context.Context, assetID, resolution string) (*StaticRendition, error) {
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return nil, services.Wrap(services.ErrValidation, "mux", "create static rendition", "asset id required", nil)
	}
	var rendition StaticRendition
	path := "/video/v1/assets/" + url.PathEscape(assetID) + "/static-renditions"
	body := StaticRenditionRequest{Resolution: resolution}
	if err := c.doJSON(ctx, "create static rendition", http.MethodPost, path, body, &rendition); err != nil {
		return nil, err
	}
	return &rendition, nil
}

func (c *Client) doJSON(ctx context.Context, op, method, path string, body any, out any) error {
	endpoint := c.cfg.BaseURL + path

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", op, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: new request: %w", op, err)
	}
	req.SetBasicAuth(c.cfg.TokenID, c.cfg.TokenSecret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		req.Header.Set("X-Request-Id", rid)
	}

	logger := logging.WithContext(ctx, c.logger)
	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s: %w", op, err)
		}
		return services.Wrap(services.ErrTransient, "mux", op, "http error", err)
	}
	defer resp.Body.Close()

	logger.Debug("platform request",
		logging.String("method", method),
		logging.String("path", path),
		logging.Int("status", resp.StatusCode),
		logging.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(op, resp)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return services.Wrap(services.ErrTransient, "mux", op, "read body", err)
	}
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return services.Wrap(services.ErrRemote, "mux", op, "decode response", err)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return services.Wrap(services.ErrRemote, "mux", op, "response missing data", nil)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return services.Wrap(services.ErrRemote, "mux", op, "decode data", err)
	}
	return nil
}

func decodeAPIError(op string, resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode, Operation: op}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		apiErr.Messages = []string{fmt.Sprintf("read error body: %v", err)}
		return apiErr
	}
	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != nil {
		apiErr.Type = strings.TrimSpace(envelope.Error.Type)
		apiErr.Messages = envelope.Error.Messages
		return apiErr
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		apiErr.Messages = []string{text}
	} else {
		apiErr.Messages = []string{http.StatusText(resp.StatusCode)}
	}
	return apiErr
}
