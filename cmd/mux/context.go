package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"muxcli/internal/config"
	"muxcli/internal/ingest"
	"muxcli/internal/logging"
	"muxcli/internal/readiness"
	"muxcli/internal/services"
	"muxcli/internal/services/mux"
)

type commandContext struct {
	configFlag  *string
	jsonFlag    *bool
	verboseFlag *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag *string, jsonFlag, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		jsonFlag:    jsonFlag,
		verboseFlag: verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, _, err := config.Load(path)
		if err != nil {
			c.configErr = fmt.Errorf("%w: %w", services.ErrConfiguration, err)
			return
		}
		c.config = cfg
		c.configPath = resolved
	})
	return c.config, c.configErr
}

func (c *commandContext) jsonOutput() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) verbose() bool {
	return c.verboseFlag != nil && *c.verboseFlag
}

func (c *commandContext) logger(stderr io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, stderr, c.verbose())
}

// requestContext tags ctx with a fresh correlation ID sent as X-Request-Id.
func requestContext(ctx context.Context) context.Context {
	return services.WithRequestID(ctx, uuid.NewString())
}

// apiClient builds an authenticated platform client. Credentials are checked
// here rather than at config load so local validation always runs first.
func (c *commandContext) apiClient(logger *slog.Logger) (*mux.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateCredentials(); err != nil {
		return nil, fmt.Errorf("%w: %w", services.ErrConfiguration, err)
	}
	return mux.NewClient(mux.Config{
		BaseURL:        cfg.API.BaseURL,
		TokenID:        cfg.API.TokenID,
		TokenSecret:    cfg.API.TokenSecret,
		UserAgent:      cfg.API.UserAgent,
		TimeoutSeconds: cfg.API.TimeoutSeconds,
	}, mux.WithLogger(logger))
}

func (c *commandContext) pipeline(cmd *cobra.Command) (*ingest.Pipeline, *slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	stderr := cmd.ErrOrStderr()
	logger, err := c.logger(stderr)
	if err != nil {
		return nil, nil, err
	}

	transferOpts := []ingest.TransferOption{ingest.WithTransferTimeout(cfg.TransferTimeout())}
	if cfg.Upload.ShowProgress && !c.jsonOutput() && shouldColorize(stderr) {
		transferOpts = append(transferOpts, ingest.WithProgress(stderr))
	}
	asset, rendition, upload := pollingSettings(cfg)

	connect := func(context.Context) (ingest.API, error) {
		client, err := c.apiClient(logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	opts := []ingest.PipelineOption{
		ingest.WithTransfer(ingest.NewTransferer(&http.Client{}, transferOpts...)),
		ingest.WithOutput(stderr),
		ingest.WithLogger(logger),
		ingest.WithCORSOrigin(cfg.Upload.CORSOrigin),
		ingest.WithPolling(asset, rendition, upload),
	}
	// Multi-file batches need --yes when stdin is not a terminal.
	if stdin := cmd.InOrStdin(); interactiveInput(stdin) {
		opts = append(opts, ingest.WithConfirmer(newPromptConfirmer(stdin, stderr)))
	}
	return ingest.NewPipeline(connect, opts...), logger, nil
}

var interactiveInput = func(in io.Reader) bool {
	file, ok := in.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func pollingSettings(cfg *config.Config) (asset, rendition, upload readiness.Settings) {
	p := cfg.Polling
	asset = readiness.AssetSettings(seconds(p.AssetIntervalSeconds), seconds(p.AssetTimeoutSeconds))
	rendition = readiness.RenditionSettings(seconds(p.RenditionIntervalSeconds), seconds(p.RenditionTimeoutSeconds))
	upload = readiness.UploadSettings(seconds(p.UploadIntervalSeconds), seconds(p.UploadTimeoutSeconds))
	return asset, rendition, upload
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
