package ingest

import (
	"errors"
	"strings"
	"testing"
)

func TestSelectSourcePicksSingleMode(t *testing.T) {
	src, err := SelectSource(SourceFlags{URL: " https://example.com/video.mp4 "})
	if err != nil {
		t.Fatalf("SelectSource: %v", err)
	}
	urlSrc, ok := src.(URLSource)
	if !ok {
		t.Fatalf("expected URLSource, got %T", src)
	}
	if urlSrc.URL != "https://example.com/video.mp4" {
		t.Fatalf("unexpected url %q", urlSrc.URL)
	}

	src, err = SelectSource(SourceFlags{Uploads: []string{"", "*.mp4"}})
	if err != nil {
		t.Fatalf("SelectSource uploads: %v", err)
	}
	if src.Mode() != ModeUpload {
		t.Fatalf("expected upload mode, got %s", src.Mode())
	}
	if got := src.(UploadSource).Patterns; len(got) != 1 || got[0] != "*.mp4" {
		t.Fatalf("unexpected patterns %v", got)
	}

	src, err = SelectSource(SourceFlags{ManifestPath: "asset.json", Uploads: []string{" "}})
	if err != nil {
		t.Fatalf("SelectSource manifest: %v", err)
	}
	if src.Mode() != ModeManifest {
		t.Fatalf("expected manifest mode, got %s", src.Mode())
	}
}

func TestSelectSourceConflictNamesSuppliedFlags(t *testing.T) {
	_, err := SelectSource(SourceFlags{URL: "https://example.com/a.mp4", ManifestPath: "asset.json"})
	if !errors.Is(err, ErrModeConflict) {
		t.Fatalf("expected ErrModeConflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "--url, --file") {
		t.Fatalf("expected supplied flags in message, got %q", err.Error())
	}
}

func TestSelectSourceRequiresOne(t *testing.T) {
	_, err := SelectSource(SourceFlags{Uploads: []string{""}})
	if !errors.Is(err, ErrModeConflict) {
		t.Fatalf("expected ErrModeConflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "none supplied") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}
