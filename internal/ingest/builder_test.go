package ingest

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestBuildManifestParamsFlagsWinOverManifest(t *testing.T) {
	manifest := Manifest{
		"inputs":          []any{map[string]any{"url": "https://example.com/a.mp4"}},
		"encoding_tier":   "baseline",
		"playback_policy": []any{"signed"},
		"passthrough":     "from-manifest",
		"mp4_support":     "standard",
	}
	params, err := BuildManifestParams(manifest, Overrides{
		VideoQuality:     "plus",
		PlaybackPolicies: []string{"public"},
	})
	if err != nil {
		t.Fatalf("BuildManifestParams: %v", err)
	}
	if params["video_quality"] != "plus" {
		t.Fatalf("expected video_quality plus, got %v", params["video_quality"])
	}
	if _, ok := params["encoding_tier"]; ok {
		t.Fatalf("legacy encoding_tier should be dropped when the flag is set: %+v", params)
	}
	if _, ok := params["playback_policy"]; ok {
		t.Fatalf("legacy playback_policy should be dropped when the flag is set: %+v", params)
	}
	if params["passthrough"] != "from-manifest" || params["mp4_support"] != "standard" {
		t.Fatalf("manifest fields without a flag must pass through: %+v", params)
	}
	if manifest["encoding_tier"] != "baseline" {
		t.Fatalf("manifest must not be mutated")
	}
}

func TestBuildManifestParamsKeepsLegacyKeysWithoutFlags(t *testing.T) {
	params, err := BuildManifestParams(Manifest{"encoding_tier": "smart"}, Overrides{})
	if err != nil {
		t.Fatalf("BuildManifestParams: %v", err)
	}
	if params["encoding_tier"] != "smart" {
		t.Fatalf("expected encoding_tier untouched, got %+v", params)
	}
}

func TestBuildManifestParamsChecksMergedPassthrough(t *testing.T) {
	_, err := BuildManifestParams(Manifest{"passthrough": strings.Repeat("x", 256)}, Overrides{})
	if !errors.Is(err, ErrPassthroughTooLong) {
		t.Fatalf("expected ErrPassthroughTooLong, got %v", err)
	}
	if _, err := BuildManifestParams(Manifest{"passthrough": strings.Repeat("x", 256)}, Overrides{Passthrough: "short"}); err != nil {
		t.Fatalf("flag passthrough should replace the long manifest value: %v", err)
	}
}

func TestBuildManifestParamsForwardsNonStringPassthrough(t *testing.T) {
	raw := json.Number("42")
	params, err := BuildManifestParams(Manifest{"passthrough": raw}, Overrides{})
	if err != nil {
		t.Fatalf("BuildManifestParams: %v", err)
	}
	if params["passthrough"] != raw {
		t.Fatalf("expected passthrough forwarded unchanged, got %#v", params["passthrough"])
	}
}

func TestBuildAssetParams(t *testing.T) {
	params, err := BuildAssetParams(URLSource{URL: "https://example.com/a.mp4"}, Overrides{
		PlaybackPolicies: []string{"public"},
		StaticRenditions: []string{"highest"},
		Passthrough:      "abc",
		NormalizeAudio:   true,
	})
	if err != nil {
		t.Fatalf("BuildAssetParams: %v", err)
	}
	if len(params.Inputs) != 1 || params.Inputs[0].URL != "https://example.com/a.mp4" {
		t.Fatalf("unexpected inputs %+v", params.Inputs)
	}
	if len(params.StaticRenditions) != 1 || params.StaticRenditions[0].Resolution != "highest" {
		t.Fatalf("unexpected renditions %+v", params.StaticRenditions)
	}
	if !params.NormalizeAudio || params.Passthrough != "abc" {
		t.Fatalf("unexpected params %+v", params)
	}
}

func TestBuildUploadParams(t *testing.T) {
	params, err := BuildUploadParams(Overrides{VideoQuality: "basic", Test: true}, "https://app.example.com")
	if err != nil {
		t.Fatalf("BuildUploadParams: %v", err)
	}
	if params.CORSOrigin != "https://app.example.com" || !params.Test {
		t.Fatalf("unexpected upload params %+v", params)
	}
	if params.NewAssetSettings.VideoQuality != "basic" || !params.NewAssetSettings.Test {
		t.Fatalf("overrides must travel as new asset settings: %+v", params.NewAssetSettings)
	}
	if len(params.NewAssetSettings.Inputs) != 0 {
		t.Fatalf("upload settings must not carry inputs")
	}
}
