package ingest

import (
	"context"
	"fmt"
	"strings"

	"muxcli/internal/logging"
	"muxcli/internal/readiness"
	"muxcli/internal/services"
	"muxcli/internal/services/mux"
)

// RenditionResult describes a requested static rendition and, when waited on,
// how polling ended.
type RenditionResult struct {
	AssetID   string              `json:"asset_id"`
	Rendition mux.StaticRendition `json:"rendition"`
	Poll      *readiness.Outcome  `json:"poll,omitempty"`
}

// CreateRendition asks the platform for a static rendition of an existing
// asset. With wait set it polls the parent asset until the rendition is ready,
// skipped, or errored.
func (p *Pipeline) CreateRendition(ctx context.Context, assetID, resolution string, wait bool) (*RenditionResult, error) {
	assetID = strings.TrimSpace(assetID)
	if assetID == "" {
		return nil, fmt.Errorf("%w: asset id is required", ErrInvalidOverride)
	}
	resolution, err := ValidateResolution(resolution)
	if err != nil {
		return nil, err
	}

	api, err := p.connect(ctx)
	if err != nil {
		return nil, err
	}
	rendition, err := api.CreateStaticRendition(services.WithStage(ctx, "create"), assetID, resolution)
	if err != nil {
		return nil, err
	}
	logging.WithContext(ctx, p.logger).Info("static rendition requested",
		logging.String(logging.FieldAssetID, assetID),
		logging.String("rendition_id", rendition.ID),
		logging.String("resolution", resolution),
	)

	result := &RenditionResult{AssetID: assetID, Rendition: *rendition}
	if !wait {
		return result, nil
	}

	pollCtx := services.WithStage(ctx, "poll")
	poller := p.poller(p.renditionPoll)
	outcome, err := poller.Wait(pollCtx, rendition.ID, func(ctx context.Context) (readiness.Snapshot, error) {
		asset, err := api.GetAsset(ctx, assetID)
		if err != nil {
			return readiness.Snapshot{}, err
		}
		current, ok := asset.Rendition(rendition.ID)
		if !ok {
			// Not listed on the asset yet.
			return readiness.Snapshot{Status: readiness.StatusPreparing}, nil
		}
		result.Rendition = current
		var messages []string
		if current.Status == mux.RenditionStatusErrored {
			messages = asset.ErrorMessages()
		}
		return readiness.Snapshot{Status: current.Status, Messages: messages}, nil
	})
	result.Poll = &outcome
	return result, err
}
