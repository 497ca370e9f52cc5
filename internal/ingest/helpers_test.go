package ingest

import (
	"context"
	"errors"
	"sync"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
	return nil
}

type recordingTransfer struct {
	failAt int
	puts   []string
}

func (r *recordingTransfer) Put(_ context.Context, signedURL string, file FileCandidate) error {
	r.puts = append(r.puts, file.Name)
	if r.failAt > 0 && len(r.puts) == r.failAt {
		return errors.Join(ErrTransferFailed, errors.New("status 500"))
	}
	return nil
}

type scriptedConfirmer struct {
	answer bool
	asked  int
}

func (s *scriptedConfirmer) Confirm(string, bool) (bool, error) {
	s.asked++
	return s.answer, nil
}
