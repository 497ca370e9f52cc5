package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"muxcli/internal/logging"
	"muxcli/internal/readiness"
	"muxcli/internal/services"
	"muxcli/internal/services/mux"
)

// API is the subset of the platform client the pipeline drives.
type API interface {
	UploadCreator
	CreateAsset(ctx context.Context, params mux.AssetParams) (*mux.Asset, error)
	CreateAssetFromManifest(ctx context.Context, manifest map[string]any) (*mux.Asset, error)
	GetAsset(ctx context.Context, assetID string) (*mux.Asset, error)
	GetUpload(ctx context.Context, uploadID string) (*mux.Upload, error)
	CreateStaticRendition(ctx context.Context, assetID, resolution string) (*mux.StaticRendition, error)
}

// ConnectFunc returns an authenticated API client. It is called only after
// all local validation has passed.
type ConnectFunc func(ctx context.Context) (API, error)

// Input is the raw request as given on the command line.
type Input struct {
	Sources   SourceFlags
	Overrides Overrides
	AssumeYes bool
	Wait      bool
}

// Request is a validated, mode-tagged ingestion request with its request body
// already built.
type Request struct {
	Source    Source
	Overrides Overrides
	AssumeYes bool
	Wait      bool

	assetParams    mux.AssetParams
	uploadParams   mux.UploadParams
	manifestParams map[string]any
}

// Mode reports the selected ingestion mode.
func (r *Request) Mode() Mode {
	return r.Source.Mode()
}

// Result is what a successful ingestion produced. Asset is set in URL and
// manifest modes; Uploads in upload mode. Poll is set when the caller waited.
type Result struct {
	Mode    Mode               `json:"mode"`
	Asset   *mux.Asset         `json:"asset,omitempty"`
	Uploads []UploadOutcome    `json:"uploads,omitempty"`
	Poll    *readiness.Outcome `json:"poll,omitempty"`
}

// Pipeline runs ingestion requests end to end.
type Pipeline struct {
	connect    ConnectFunc
	transfer   Transfer
	confirm    Confirmer
	out        io.Writer
	logger     *slog.Logger
	corsOrigin string
	clock      readiness.Clock

	assetPoll     readiness.Settings
	renditionPoll readiness.Settings
	uploadPoll    readiness.Settings
}

// PipelineOption customizes a Pipeline.
type PipelineOption func(*Pipeline)

// WithTransfer sets how file bodies reach signed upload URLs.
func WithTransfer(transfer Transfer) PipelineOption {
	return func(p *Pipeline) {
		if transfer != nil {
			p.transfer = transfer
		}
	}
}

// WithConfirmer sets the prompt used before multi-file uploads.
func WithConfirmer(confirm Confirmer) PipelineOption {
	return func(p *Pipeline) {
		p.confirm = confirm
	}
}

// WithOutput sets where human-facing progress lines go.
func WithOutput(out io.Writer) PipelineOption {
	return func(p *Pipeline) {
		if out != nil {
			p.out = out
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithCORSOrigin sets the origin browsers may upload from.
func WithCORSOrigin(origin string) PipelineOption {
	return func(p *Pipeline) {
		p.corsOrigin = origin
	}
}

// WithPolling overrides the readiness cadences.
func WithPolling(asset, rendition, upload readiness.Settings) PipelineOption {
	return func(p *Pipeline) {
		p.assetPoll = asset
		p.renditionPoll = rendition
		p.uploadPoll = upload
	}
}

// WithClock replaces the wall clock used by readiness polling.
func WithClock(clock readiness.Clock) PipelineOption {
	return func(p *Pipeline) {
		p.clock = clock
	}
}

// NewPipeline constructs a pipeline around connect.
func NewPipeline(connect ConnectFunc, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		connect:       connect,
		transfer:      NewTransferer(nil),
		out:           io.Discard,
		logger:        logging.NewNop(),
		corsOrigin:    "*",
		assetPoll:     readiness.DefaultAsset,
		renditionPoll: readiness.DefaultRendition,
		uploadPoll:    readiness.DefaultUpload,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Prepare validates the input and builds the request body. It touches only the
// local filesystem.
func (p *Pipeline) Prepare(in Input) (*Request, error) {
	source, err := SelectSource(in.Sources)
	if err != nil {
		return nil, err
	}
	overrides, err := in.Overrides.Normalize()
	if err != nil {
		return nil, err
	}

	req := &Request{Overrides: overrides, AssumeYes: in.AssumeYes, Wait: in.Wait}
	switch src := source.(type) {
	case URLSource:
		if req.assetParams, err = BuildAssetParams(src, overrides); err != nil {
			return nil, err
		}
		req.Source = src
	case UploadSource:
		if src.Files, err = ResolveFiles(src.Patterns); err != nil {
			return nil, err
		}
		if req.uploadParams, err = BuildUploadParams(overrides, p.corsOrigin); err != nil {
			return nil, err
		}
		req.Source = src
	case ManifestSource:
		if src.Manifest, err = LoadManifest(src.Path); err != nil {
			return nil, err
		}
		if req.manifestParams, err = BuildManifestParams(src.Manifest, overrides); err != nil {
			return nil, err
		}
		req.Source = src
	default:
		return nil, fmt.Errorf("unsupported source %T", source)
	}
	return req, nil
}

// Execute performs the remote side of a prepared request. When the request
// waits and the poll fails after creation succeeded, the partial result is
// returned alongside the error.
func (p *Pipeline) Execute(ctx context.Context, req *Request) (*Result, error) {
	if req == nil || req.Source == nil {
		return nil, errors.New("ingest: prepared request required")
	}
	logger := logging.WithContext(ctx, p.logger).With(logging.String("mode", string(req.Mode())))

	if src, ok := req.Source.(UploadSource); ok {
		// Ask before connecting so a declined batch never authenticates.
		orchestrator := NewOrchestrator(nil, p.transfer, p.confirm, p.out, p.logger)
		if err := orchestrator.Confirm(src.Files, req.AssumeYes); err != nil {
			return nil, err
		}
	}

	api, err := p.connect(ctx)
	if err != nil {
		return nil, err
	}

	result := &Result{Mode: req.Mode()}
	switch src := req.Source.(type) {
	case URLSource:
		asset, err := api.CreateAsset(services.WithStage(ctx, "create"), req.assetParams)
		if err != nil {
			return nil, err
		}
		logger.Info("asset created", logging.String(logging.FieldAssetID, asset.ID))
		result.Asset = asset
	case ManifestSource:
		asset, err := api.CreateAssetFromManifest(services.WithStage(ctx, "create"), req.manifestParams)
		if err != nil {
			return nil, err
		}
		logger.Info("asset created from manifest", logging.String(logging.FieldAssetID, asset.ID))
		result.Asset = asset
	case UploadSource:
		orchestrator := NewOrchestrator(api, p.transfer, p.confirm, p.out, p.logger)
		outcomes, err := orchestrator.Run(services.WithStage(ctx, "upload"), src.Files, req.uploadParams, true)
		if err != nil {
			return nil, err
		}
		result.Uploads = outcomes
	}

	if !req.Wait {
		return result, nil
	}
	return p.waitForResult(services.WithStage(ctx, "poll"), api, result)
}

// Run prepares and executes in one call.
func (p *Pipeline) Run(ctx context.Context, in Input) (*Result, error) {
	req, err := p.Prepare(in)
	if err != nil {
		return nil, err
	}
	return p.Execute(ctx, req)
}

func (p *Pipeline) waitForResult(ctx context.Context, api API, result *Result) (*Result, error) {
	if result.Asset != nil {
		asset, outcome, err := p.pollAsset(ctx, api, result.Asset.ID)
		if asset != nil {
			result.Asset = asset
		}
		result.Poll = &outcome
		return result, err
	}

	for i := range result.Uploads {
		upload := &result.Uploads[i]
		assetID, err := p.pollUpload(ctx, api, upload.UploadID)
		if err != nil {
			return result, err
		}
		upload.AssetID = assetID
		upload.Status = mux.UploadStatusAssetCreated

		asset, outcome, err := p.pollAsset(ctx, api, assetID)
		upload.AssetStatus = outcome.FinalStatus
		if asset != nil {
			upload.AssetStatus = asset.Status
		}
		if err != nil {
			return result, err
		}
	}
	return result, nil
}

// WaitForAsset polls an existing asset until it is ready or errored.
func (p *Pipeline) WaitForAsset(ctx context.Context, assetID string) (*mux.Asset, readiness.Outcome, error) {
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return nil, readiness.Outcome{}, fmt.Errorf("%w: asset id is required", ErrInvalidOverride)
	}
	api, err := p.connect(ctx)
	if err != nil {
		return nil, readiness.Outcome{}, err
	}
	return p.pollAsset(services.WithStage(ctx, "poll"), api, assetID)
}

func (p *Pipeline) pollAsset(ctx context.Context, api API, assetID string) (*mux.Asset, readiness.Outcome, error) {
	var latest *mux.Asset
	poller := p.poller(p.assetPoll)
	outcome, err := poller.Wait(ctx, assetID, func(ctx context.Context) (readiness.Snapshot, error) {
		asset, err := api.GetAsset(ctx, assetID)
		if err != nil {
			return readiness.Snapshot{}, err
		}
		latest = asset
		return readiness.Snapshot{Status: asset.Status, Messages: asset.ErrorMessages()}, nil
	})
	return latest, outcome, err
}

func (p *Pipeline) pollUpload(ctx context.Context, api API, uploadID string) (string, error) {
	var assetID string
	poller := p.poller(p.uploadPoll)
	_, err := poller.Wait(ctx, uploadID, func(ctx context.Context) (readiness.Snapshot, error) {
		upload, err := api.GetUpload(ctx, uploadID)
		if err != nil {
			return readiness.Snapshot{}, err
		}
		switch upload.Status {
		case mux.UploadStatusAssetCreated:
			if upload.AssetID == "" {
				return readiness.Snapshot{Status: readiness.StatusPreparing}, nil
			}
			assetID = upload.AssetID
			return readiness.Snapshot{Status: readiness.StatusReady}, nil
		case mux.UploadStatusErrored, mux.UploadStatusCancelled, mux.UploadStatusTimedOut:
			message := upload.Status
			if upload.Error != nil && upload.Error.Message != "" {
				message = upload.Error.Message
			}
			return readiness.Snapshot{Status: readiness.StatusErrored, Messages: []string{message}}, nil
		default:
			return readiness.Snapshot{Status: readiness.StatusPreparing}, nil
		}
	})
	return assetID, err
}

func (p *Pipeline) poller(settings readiness.Settings) *readiness.Poller {
	return readiness.New(settings, readiness.WithClock(p.clock), readiness.WithLogger(p.logger))
}
