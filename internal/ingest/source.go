package ingest

import (
	"fmt"
	"strings"
)

// Mode names the ingestion source kind.
type Mode string

const (
	ModeURL      Mode = "url"
	ModeUpload   Mode = "upload"
	ModeManifest Mode = "manifest"
)

// Source is the mode-tagged payload of an ingestion request. Only the variant
// matching the selected mode exists, so inconsistent combinations cannot be
// represented.
type Source interface {
	Mode() Mode
	isSource()
}

// URLSource ingests a remote URL the platform fetches itself.
type URLSource struct {
	URL string
}

// UploadSource ingests local files. Files is filled in by ResolveFiles.
type UploadSource struct {
	Patterns []string
	Files    []FileCandidate
}

// ManifestSource ingests a JSON manifest describing the asset. Manifest is
// filled in by LoadManifest.
type ManifestSource struct {
	Path     string
	Manifest Manifest
}

func (URLSource) Mode() Mode      { return ModeURL }
func (UploadSource) Mode() Mode   { return ModeUpload }
func (ManifestSource) Mode() Mode { return ModeManifest }

func (URLSource) isSource()      {}
func (UploadSource) isSource()   {}
func (ManifestSource) isSource() {}

// SourceFlags holds the three mutually exclusive source inputs as given on the
// command line.
type SourceFlags struct {
	URL          string
	Uploads      []string
	ManifestPath string
}

// SelectSource returns the single supplied source or ErrModeConflict naming
// what was supplied. It performs no I/O.
func SelectSource(flags SourceFlags) (Source, error) {
	url := strings.TrimSpace(flags.URL)
	manifest := strings.TrimSpace(flags.ManifestPath)
	patterns := make([]string, 0, len(flags.Uploads))
	for _, pattern := range flags.Uploads {
		if trimmed := strings.TrimSpace(pattern); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}

	var supplied []string
	if url != "" {
		supplied = append(supplied, "--url")
	}
	if len(patterns) > 0 {
		supplied = append(supplied, "--upload")
	}
	if manifest != "" {
		supplied = append(supplied, "--file")
	}

	switch len(supplied) {
	case 0:
		return nil, fmt.Errorf("%w: none supplied; provide exactly one of --url, --upload, or --file", ErrModeConflict)
	case 1:
	default:
		return nil, fmt.Errorf("%w: %s supplied together; provide exactly one of --url, --upload, or --file", ErrModeConflict, strings.Join(supplied, ", "))
	}

	switch {
	case url != "":
		return URLSource{URL: url}, nil
	case len(patterns) > 0:
		return UploadSource{Patterns: patterns}, nil
	default:
		return ManifestSource{Path: manifest}, nil
	}
}
