package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/schollz/progressbar/v3"

	"muxcli/internal/fileutil"
	"muxcli/internal/services"
	"muxcli/internal/services/mux"
)

// Transferer streams file bodies to signed upload URLs. Signed URLs carry
// their own authorization, so no API credentials are attached.
type Transferer struct {
	client   mux.HTTPDoer
	progress io.Writer
	timeout  time.Duration
}

// TransferOption customizes a Transferer.
type TransferOption func(*Transferer)

// WithProgress renders a progress bar per file to w.
func WithProgress(w io.Writer) TransferOption {
	return func(t *Transferer) {
		t.progress = w
	}
}

// WithTransferTimeout bounds each individual PUT. Zero means no limit beyond the caller's context.
func WithTransferTimeout(timeout time.Duration) TransferOption {
	return func(t *Transferer) {
		if timeout > 0 {
			t.timeout = timeout
		}
	}
}

// NewTransferer constructs a Transferer. A nil client uses a fresh http.Client
// without a global timeout, since large files legitimately take a long time.
func NewTransferer(client mux.HTTPDoer, opts ...TransferOption) *Transferer {
	if client == nil {
		client = &http.Client{}
	}
	t := &Transferer{client: client}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Put sends the file as the raw body of a single PUT with an explicit
// Content-Length. Any 2xx response is success.
func (t *Transferer) Put(ctx context.Context, signedURL string, file FileCandidate) error {
	f, info, err := fileutil.OpenRegular(file.Path)
	if err != nil {
		return services.Wrap(ErrTransferFailed, "upload", "open", file.Name, err)
	}
	defer f.Close()

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	size := info.Size()
	var body io.Reader = f
	if t.progress != nil && size > 0 {
		bar := newTransferBar(t.progress, file.Name, size)
		defer bar.Finish()
		body = io.TeeReader(f, bar)
	}
	if size == 0 {
		body = http.NoBody
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, signedURL, body)
	if err != nil {
		return services.Wrap(ErrTransferFailed, "upload", "build request", file.Name, err)
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := t.client.Do(req)
	if err != nil {
		return services.Wrap(ErrTransferFailed, "upload", "put", file.Name, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return services.Wrap(ErrTransferFailed, "upload", "put", fmt.Sprintf("%s: status %d", file.Name, resp.StatusCode), nil)
	}
	return nil
}

func newTransferBar(w io.Writer, name string, size int64) *progressbar.ProgressBar {
	return progressbar.NewOptions64(size,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(name),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(100*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}
