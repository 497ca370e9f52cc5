package ingest

import (
	"maps"

	"muxcli/internal/services/mux"
)

// Manifest keys replaced by their modern equivalents when the matching flag is given.
const (
	legacyEncodingTierKey   = "encoding_tier"
	legacyPlaybackPolicyKey = "playback_policy"
)

// BuildAssetParams builds the create-asset body for URL mode.
func BuildAssetParams(src URLSource, o Overrides) (mux.AssetParams, error) {
	if err := checkPassthrough(o.Passthrough); err != nil {
		return mux.AssetParams{}, err
	}
	params := assetSettings(o)
	params.Inputs = []mux.Input{{URL: src.URL}}
	return params, nil
}

// BuildUploadParams builds the create-upload body shared by every file of a
// batch. The overrides travel as the settings of the asset each upload becomes.
func BuildUploadParams(o Overrides, corsOrigin string) (mux.UploadParams, error) {
	if err := checkPassthrough(o.Passthrough); err != nil {
		return mux.UploadParams{}, err
	}
	return mux.UploadParams{
		NewAssetSettings: assetSettings(o),
		CORSOrigin:       corsOrigin,
		Test:             o.Test,
	}, nil
}

// BuildManifestParams patches the overrides over the manifest's top-level keys.
// The manifest itself is not modified.
func BuildManifestParams(m Manifest, o Overrides) (map[string]any, error) {
	params := make(map[string]any, len(m)+6)
	maps.Copy(params, m)

	if len(o.PlaybackPolicies) > 0 {
		params["playback_policies"] = stringsToAny(o.PlaybackPolicies)
		delete(params, legacyPlaybackPolicyKey)
	}
	if o.VideoQuality != "" {
		params["video_quality"] = o.VideoQuality
		delete(params, legacyEncodingTierKey)
	}
	if len(o.StaticRenditions) > 0 {
		renditions := make([]any, 0, len(o.StaticRenditions))
		for _, resolution := range o.StaticRenditions {
			renditions = append(renditions, map[string]any{"resolution": resolution})
		}
		params["static_renditions"] = renditions
	}
	if o.Passthrough != "" {
		params["passthrough"] = o.Passthrough
	}
	if o.Test {
		params["test"] = true
	}
	if o.NormalizeAudio {
		params["normalize_audio"] = true
	}

	// Other value types are left for the platform to reject.
	if value, ok := params["passthrough"].(string); ok {
		if err := checkPassthrough(value); err != nil {
			return nil, err
		}
	}
	return params, nil
}

func assetSettings(o Overrides) mux.AssetParams {
	params := mux.AssetParams{
		PlaybackPolicies: append([]string(nil), o.PlaybackPolicies...),
		VideoQuality:     o.VideoQuality,
		Passthrough:      o.Passthrough,
		NormalizeAudio:   o.NormalizeAudio,
		Test:             o.Test,
	}
	for _, resolution := range o.StaticRenditions {
		params.StaticRenditions = append(params.StaticRenditions, mux.StaticRenditionRequest{Resolution: resolution})
	}
	return params
}

func stringsToAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
