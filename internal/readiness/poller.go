package readiness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"muxcli/internal/logging"
)

// Normalized statuses understood by the poller.
const (
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusErrored   = "errored"
	StatusSkipped   = "skipped"
)

// Snapshot is one observation of a remote resource.
type Snapshot struct {
	Status   string
	Messages []string
}

// FetchFunc retrieves the current state of the polled resource.
type FetchFunc func(ctx context.Context) (Snapshot, error)

// Settings configures one poller instance.
type Settings struct {
	Kind     string
	Interval time.Duration
	Timeout  time.Duration
	// Errored is the sentinel a TerminalError unwraps to.
	Errored error
}

// AssetSettings is the asset readiness configuration used by --wait on asset creation.
func AssetSettings(interval, timeout time.Duration) Settings {
	return Settings{Kind: "asset", Interval: interval, Timeout: timeout, Errored: ErrAssetErrored}
}

// RenditionSettings is the static rendition readiness configuration.
func RenditionSettings(interval, timeout time.Duration) Settings {
	return Settings{Kind: "rendition", Interval: interval, Timeout: timeout, Errored: ErrRenditionErrored}
}

// UploadSettings waits for a direct upload to turn into an asset.
func UploadSettings(interval, timeout time.Duration) Settings {
	return Settings{Kind: "upload", Interval: interval, Timeout: timeout, Errored: ErrUploadErrored}
}

// Default cadences.
var (
	DefaultAsset     = AssetSettings(5*time.Second, 5*time.Minute)
	DefaultRendition = RenditionSettings(2*time.Second, 10*time.Minute)
	DefaultUpload    = UploadSettings(2*time.Second, 5*time.Minute)
)

// Outcome summarizes a completed poll.
type Outcome struct {
	FinalStatus string        `json:"final_status"`
	Attempts    int           `json:"attempts"`
	Elapsed     time.Duration `json:"elapsed"`
}

// Poller waits for a resource to reach a terminal status.
type Poller struct {
	settings Settings
	clock    Clock
	logger   *slog.Logger
}

// Option customizes a poller.
type Option func(*Poller)

// WithClock overrides the wall clock (useful for tests).
func WithClock(clock Clock) Option {
	return func(p *Poller) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// WithLogger attaches a logger for per-attempt diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Poller) {
		if logger != nil {
			p.logger = logging.NewComponentLogger(logger, "readiness")
		}
	}
}

// New constructs a poller for the given settings.
func New(settings Settings, opts ...Option) *Poller {
	if settings.Interval <= 0 {
		settings.Interval = time.Second
	}
	if settings.Timeout < settings.Interval {
		settings.Timeout = settings.Interval
	}
	if settings.Kind == "" {
		settings.Kind = "resource"
	}
	p := &Poller{settings: settings, clock: realClock{}, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Wait polls until the resource is terminal. A ready or skipped resource
// returns a nil error; errored returns *TerminalError; running out of time
// returns ErrTimedOut. A fetch error aborts immediately.
func (p *Poller) Wait(ctx context.Context, id string, fetch FetchFunc) (Outcome, error) {
	if fetch == nil {
		return Outcome{}, errors.New("readiness: fetch function required")
	}
	logger := logging.WithContext(ctx, p.logger).With(
		logging.String("kind", p.settings.Kind),
		logging.String("id", id),
	)

	start := p.clock.Now()
	var outcome Outcome
	for {
		snapshot, err := fetch(ctx)
		outcome.Attempts++
		outcome.Elapsed = p.clock.Now().Sub(start)
		if err != nil {
			return outcome, fmt.Errorf("poll %s %s: %w", p.settings.Kind, id, err)
		}
		logger.Debug("readiness poll",
			logging.Int("attempt", outcome.Attempts),
			logging.String("status", snapshot.Status),
			logging.Duration("elapsed", outcome.Elapsed),
		)

		switch snapshot.Status {
		case StatusReady, StatusSkipped:
			outcome.FinalStatus = snapshot.Status
			return outcome, nil
		case StatusErrored:
			outcome.FinalStatus = snapshot.Status
			return outcome, &TerminalError{
				Kind:     p.settings.Kind,
				ID:       id,
				Messages: snapshot.Messages,
				marker:   p.settings.Errored,
			}
		}

		if outcome.Elapsed+p.settings.Interval >= p.settings.Timeout {
			outcome.FinalStatus = snapshot.Status
			logger.Info("readiness deadline reached", logging.Int("attempts", outcome.Attempts))
			return outcome, fmt.Errorf("%s %s not ready after %s: %w", p.settings.Kind, id, p.settings.Timeout, ErrTimedOut)
		}
		if err := p.clock.Sleep(ctx, p.settings.Interval); err != nil {
			return outcome, err
		}
	}
}
