package ingest

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// MaxPassthroughLength is the platform's limit on passthrough metadata, in characters.
const MaxPassthroughLength = 255

var (
	// StaticRenditionResolutions lists the accepted --static-renditions values.
	StaticRenditionResolutions = []string{"highest", "audio-only", "2160p", "1440p", "1080p", "720p", "540p", "480p", "360p", "270p"}
	// VideoQualities lists the accepted --video-quality values.
	VideoQualities = []string{"basic", "plus", "premium"}
	// PlaybackPolicies lists the accepted --playback-policy values.
	PlaybackPolicies = []string{"public", "signed", "drm"}
)

// Overrides are the flag-derived asset settings. Empty values mean "not set";
// they apply identically in every ingestion mode and win over manifest fields.
type Overrides struct {
	PlaybackPolicies []string
	Passthrough      string
	StaticRenditions []string
	VideoQuality     string
	Test             bool
	NormalizeAudio   bool
}

// Normalize trims and lower-cases enum values, drops duplicates, and validates
// every field locally.
func (o Overrides) Normalize() (Overrides, error) {
	out := Overrides{
		Passthrough:    o.Passthrough,
		Test:           o.Test,
		NormalizeAudio: o.NormalizeAudio,
	}
	if err := checkPassthrough(out.Passthrough); err != nil {
		return Overrides{}, err
	}

	var err error
	if out.PlaybackPolicies, err = normalizeEnumList("--playback-policy", o.PlaybackPolicies, PlaybackPolicies); err != nil {
		return Overrides{}, err
	}
	if out.StaticRenditions, err = normalizeEnumList("--static-renditions", o.StaticRenditions, StaticRenditionResolutions); err != nil {
		return Overrides{}, err
	}
	if quality := strings.ToLower(strings.TrimSpace(o.VideoQuality)); quality != "" {
		if !slices.Contains(VideoQualities, quality) {
			return Overrides{}, fmt.Errorf("%w: --video-quality %q (allowed: %s)", ErrInvalidOverride, o.VideoQuality, strings.Join(VideoQualities, ", "))
		}
		out.VideoQuality = quality
	}
	return out, nil
}

// ValidateResolution checks a single static rendition resolution.
func ValidateResolution(resolution string) (string, error) {
	values, err := normalizeEnumList("--resolution", []string{resolution}, StaticRenditionResolutions)
	if err != nil {
		return "", err
	}
	if len(values) == 0 {
		return "", fmt.Errorf("%w: --resolution is required", ErrInvalidOverride)
	}
	return values[0], nil
}

func normalizeEnumList(flag string, values, allowed []string) ([]string, error) {
	var out []string
	for _, value := range values {
		normalized := strings.ToLower(strings.TrimSpace(value))
		if normalized == "" {
			continue
		}
		if !slices.Contains(allowed, normalized) {
			return nil, fmt.Errorf("%w: %s %q (allowed: %s)", ErrInvalidOverride, flag, value, strings.Join(allowed, ", "))
		}
		if !slices.Contains(out, normalized) {
			out = append(out, normalized)
		}
	}
	return out, nil
}

func checkPassthrough(value string) error {
	if n := utf8.RuneCountInString(value); n > MaxPassthroughLength {
		return fmt.Errorf("%w: %d characters (limit %d)", ErrPassthroughTooLong, n, MaxPassthroughLength)
	}
	return nil
}
