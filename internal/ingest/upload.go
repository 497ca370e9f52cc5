package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dustin/go-humanize"

	"muxcli/internal/logging"
	"muxcli/internal/services/mux"
)

// UploadCreator creates direct-upload targets.
type UploadCreator interface {
	CreateUpload(ctx context.Context, params mux.UploadParams) (*mux.Upload, error)
}

// Transfer moves one file to a signed upload URL.
type Transfer interface {
	Put(ctx context.Context, signedURL string, file FileCandidate) error
}

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(question string, defaultYes bool) (bool, error)
}

// UploadOutcome records one successfully transferred file. AssetID and
// AssetStatus are filled only when the caller waited for processing.
type UploadOutcome struct {
	File        string `json:"file"`
	UploadID    string `json:"upload_id"`
	Status      string `json:"status"`
	AssetID     string `json:"asset_id,omitempty"`
	AssetStatus string `json:"asset_status,omitempty"`
}

// Orchestrator uploads a resolved file set one file at a time.
type Orchestrator struct {
	api      UploadCreator
	transfer Transfer
	confirm  Confirmer
	out      io.Writer
	logger   *slog.Logger
}

// NewOrchestrator wires an orchestrator. out receives the human-facing batch
// listing and per-file progress lines.
func NewOrchestrator(api UploadCreator, transfer Transfer, confirm Confirmer, out io.Writer, logger *slog.Logger) *Orchestrator {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		api:      api,
		transfer: transfer,
		confirm:  confirm,
		out:      out,
		logger:   logging.NewComponentLogger(logger, "upload"),
	}
}

// Confirm prints the batch and asks for approval when more than one file is
// queued and assumeYes is false. Declining returns ErrUserCancelled.
func (o *Orchestrator) Confirm(files []FileCandidate, assumeYes bool) error {
	if len(files) <= 1 || assumeYes {
		return nil
	}

	fmt.Fprintf(o.out, "About to upload %d files (%s total):\n", len(files), humanize.IBytes(uint64(TotalSize(files))))
	for _, f := range files {
		fmt.Fprintf(o.out, "  %s (%s)\n", f.Path, humanize.IBytes(uint64(f.Size)))
	}

	if o.confirm == nil {
		return fmt.Errorf("%w: %d files queued; pass --yes to upload without prompting", ErrConfirmationNeeded, len(files))
	}
	ok, err := o.confirm.Confirm("Continue?", false)
	if err != nil {
		return fmt.Errorf("read confirmation: %w", err)
	}
	if !ok {
		return ErrUserCancelled
	}
	return nil
}

// Run confirms the batch, then for each file creates an upload target and
// transfers the body. The first failure aborts the batch and no outcomes are
// returned; targets created for earlier files are left on the platform.
func (o *Orchestrator) Run(ctx context.Context, files []FileCandidate, params mux.UploadParams, assumeYes bool) ([]UploadOutcome, error) {
	if len(files) == 0 {
		return nil, ErrNoFilesMatched
	}
	if err := o.Confirm(files, assumeYes); err != nil {
		return nil, err
	}

	logger := logging.WithContext(ctx, o.logger)
	outcomes := make([]UploadOutcome, 0, len(files))
	abandon := func(file FileCandidate, err error) ([]UploadOutcome, error) {
		if len(outcomes) > 0 {
			created := make([]string, 0, len(outcomes))
			for _, outcome := range outcomes {
				created = append(created, outcome.UploadID)
			}
			logger.Warn("upload batch aborted; earlier upload targets remain",
				logging.String(logging.FieldFile, file.Name),
				logging.Any("upload_ids", created),
				logging.Error(err),
			)
		}
		return nil, err
	}

	for i, file := range files {
		fmt.Fprintf(o.out, "Uploading %s (%d of %d, %s)\n", file.Name, i+1, len(files), humanize.IBytes(uint64(file.Size)))

		target, err := o.api.CreateUpload(ctx, params)
		if err != nil {
			return abandon(file, fmt.Errorf("create upload for %s: %w", file.Name, err))
		}
		logger.Debug("upload target created",
			logging.String(logging.FieldUploadID, target.ID),
			logging.String(logging.FieldFile, file.Path),
			logging.Int64("size_bytes", file.Size),
		)

		if err := o.transfer.Put(ctx, target.URL, file); err != nil {
			return abandon(file, err)
		}
		outcomes = append(outcomes, UploadOutcome{
			File:     file.Name,
			UploadID: target.ID,
			Status:   target.Status,
		})
	}
	return outcomes, nil
}
