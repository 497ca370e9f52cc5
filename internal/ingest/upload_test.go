package ingest

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"muxcli/internal/services/mux"
	"muxcli/internal/testsupport"
)

func writeCandidates(t *testing.T, names ...string) []FileCandidate {
	t.Helper()
	dir := t.TempDir()
	files := make([]FileCandidate, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		testsupport.WriteFile(t, path, 2048)
		files = append(files, FileCandidate{Name: name, Path: path, Size: 2048})
	}
	return files
}

func TestOrchestratorAbortsBatchOnTransferFailure(t *testing.T) {
	fake := &testsupport.FakePlatform{}
	transfer := &recordingTransfer{failAt: 2}
	files := writeCandidates(t, "a.mp4", "b.mp4", "c.mp4")

	orchestrator := NewOrchestrator(fake, transfer, nil, nil, nil)
	outcomes, err := orchestrator.Run(context.Background(), files, mux.UploadParams{}, true)
	if !errors.Is(err, ErrTransferFailed) {
		t.Fatalf("expected ErrTransferFailed, got %v", err)
	}
	if outcomes != nil {
		t.Fatalf("no outcomes expected on abort, got %+v", outcomes)
	}
	if got := len(fake.UploadParams()); got != 2 {
		t.Fatalf("expected 2 create-upload calls, got %d", got)
	}
	if strings.Join(transfer.puts, ",") != "a.mp4,b.mp4" {
		t.Fatalf("third file must not be touched, transfers=%v", transfer.puts)
	}
}

func TestOrchestratorAbortsBatchOnCreateFailure(t *testing.T) {
	fake := &testsupport.FakePlatform{FailCreateUpload: 1}
	transfer := &recordingTransfer{}
	files := writeCandidates(t, "a.mp4", "b.mp4")

	_, err := NewOrchestrator(fake, transfer, nil, nil, nil).Run(context.Background(), files, mux.UploadParams{}, true)
	var apiErr *mux.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if len(transfer.puts) != 0 {
		t.Fatalf("no transfer expected, got %v", transfer.puts)
	}
}

func TestOrchestratorReturnsOrderedOutcomes(t *testing.T) {
	fake := &testsupport.FakePlatform{}
	transfer := &recordingTransfer{}
	confirm := &scriptedConfirmer{}
	files := writeCandidates(t, "first.mp4", "second.mp4")

	outcomes, err := NewOrchestrator(fake, transfer, confirm, nil, nil).Run(context.Background(), files, mux.UploadParams{}, true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if confirm.asked != 0 {
		t.Fatalf("--yes must skip the prompt")
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %+v", outcomes)
	}
	if outcomes[0].File != "first.mp4" || outcomes[1].File != "second.mp4" {
		t.Fatalf("outcomes out of order: %+v", outcomes)
	}
	if outcomes[0].UploadID == outcomes[1].UploadID || outcomes[0].UploadID == "" {
		t.Fatalf("each file needs its own upload target: %+v", outcomes)
	}
	if outcomes[0].Status != mux.UploadStatusWaiting {
		t.Fatalf("unexpected status %q", outcomes[0].Status)
	}
}

func TestOrchestratorDeclineMakesNoCalls(t *testing.T) {
	fake := &testsupport.FakePlatform{}
	confirm := &scriptedConfirmer{answer: false}
	var out bytes.Buffer
	files := writeCandidates(t, "a.mp4", "b.mp4")

	_, err := NewOrchestrator(fake, &recordingTransfer{}, confirm, &out, nil).Run(context.Background(), files, mux.UploadParams{}, false)
	if !errors.Is(err, ErrUserCancelled) {
		t.Fatalf("expected ErrUserCancelled, got %v", err)
	}
	if confirm.asked != 1 {
		t.Fatalf("expected one prompt, got %d", confirm.asked)
	}
	if fake.CallCount() != 0 {
		t.Fatalf("declined batch must not call the platform: %v", fake.Calls())
	}
	if !strings.Contains(out.String(), "About to upload 2 files (4.0 KiB total)") {
		t.Fatalf("expected batch summary, got %q", out.String())
	}
}

func TestOrchestratorSingleFileSkipsPrompt(t *testing.T) {
	confirm := &scriptedConfirmer{}
	files := writeCandidates(t, "only.mp4")

	outcomes, err := NewOrchestrator(&testsupport.FakePlatform{}, &recordingTransfer{}, confirm, nil, nil).Run(context.Background(), files, mux.UploadParams{}, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if confirm.asked != 0 || len(outcomes) != 1 {
		t.Fatalf("asked=%d outcomes=%+v", confirm.asked, outcomes)
	}
}

func TestOrchestratorWithoutPromptRequiresYes(t *testing.T) {
	files := writeCandidates(t, "a.mp4", "b.mp4")
	err := NewOrchestrator(nil, nil, nil, nil, nil).Confirm(files, false)
	if !errors.Is(err, ErrConfirmationNeeded) {
		t.Fatalf("expected ErrConfirmationNeeded, got %v", err)
	}
}
