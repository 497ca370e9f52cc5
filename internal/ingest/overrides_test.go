package ingest

import (
	"errors"
	"strings"
	"testing"
)

func TestPassthroughLimit(t *testing.T) {
	if _, err := (Overrides{Passthrough: strings.Repeat("a", 255)}).Normalize(); err != nil {
		t.Fatalf("255 characters should pass: %v", err)
	}
	_, err := (Overrides{Passthrough: strings.Repeat("a", 256)}).Normalize()
	if !errors.Is(err, ErrPassthroughTooLong) {
		t.Fatalf("expected ErrPassthroughTooLong, got %v", err)
	}
}

func TestPassthroughCountsCharactersNotBytes(t *testing.T) {
	if _, err := (Overrides{Passthrough: strings.Repeat("é", 255)}).Normalize(); err != nil {
		t.Fatalf("255 two-byte characters should pass: %v", err)
	}
}

func TestNormalizeCleansEnums(t *testing.T) {
	got, err := (Overrides{
		PlaybackPolicies: []string{"Public", "signed", "public", ""},
		StaticRenditions: []string{" 1080P ", "audio-only"},
		VideoQuality:     "PLUS",
		Test:             true,
	}).Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if strings.Join(got.PlaybackPolicies, ",") != "public,signed" {
		t.Fatalf("unexpected policies %v", got.PlaybackPolicies)
	}
	if strings.Join(got.StaticRenditions, ",") != "1080p,audio-only" {
		t.Fatalf("unexpected renditions %v", got.StaticRenditions)
	}
	if got.VideoQuality != "plus" || !got.Test {
		t.Fatalf("unexpected overrides %+v", got)
	}
}

func TestNormalizeRejectsUnknownValues(t *testing.T) {
	cases := map[string]Overrides{
		"policy":     {PlaybackPolicies: []string{"private"}},
		"rendition":  {StaticRenditions: []string{"4k"}},
		"quality":    {VideoQuality: "ultra"},
		"resolution": {StaticRenditions: []string{"720"}},
	}
	for name, overrides := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := overrides.Normalize(); !errors.Is(err, ErrInvalidOverride) {
				t.Fatalf("expected ErrInvalidOverride, got %v", err)
			}
		})
	}
}

func TestValidateResolution(t *testing.T) {
	got, err := ValidateResolution("720P")
	if err != nil || got != "720p" {
		t.Fatalf("ValidateResolution = %q, %v", got, err)
	}
	if _, err := ValidateResolution(""); !errors.Is(err, ErrInvalidOverride) {
		t.Fatalf("expected ErrInvalidOverride for empty resolution, got %v", err)
	}
}
