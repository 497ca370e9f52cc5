package mux

// Asset statuses reported by the platform.
const (
	AssetStatusPreparing = "preparing"
	AssetStatusReady     = "ready"
	AssetStatusErrored   = "errored"
)

// Upload statuses reported by the platform.
const (
	UploadStatusWaiting      = "waiting"
	UploadStatusAssetCreated = "asset_created"
	UploadStatusErrored      = "errored"
	UploadStatusCancelled    = "cancelled"
	UploadStatusTimedOut     = "timed_out"
)

// Static rendition statuses reported by the platform.
const (
	RenditionStatusPreparing = "preparing"
	RenditionStatusReady     = "ready"
	RenditionStatusErrored   = "errored"
	RenditionStatusSkipped   = "skipped"
)

// Input describes one input of an asset created from a URL.
type Input struct {
	URL string `json:"url"`
}

// StaticRenditionRequest asks the platform to produce one fixed-resolution rendition.
type StaticRenditionRequest struct {
	Resolution string `json:"resolution"`
}

// AssetParams is the request body for creating an asset.
type AssetParams struct {
	Inputs           []Input                  `json:"inputs,omitempty"`
	PlaybackPolicies []string                 `json:"playback_policies,omitempty"`
	VideoQuality     string                   `json:"video_quality,omitempty"`
	StaticRenditions []StaticRenditionRequest `json:"static_renditions,omitempty"`
	Passthrough      string                   `json:"passthrough,omitempty"`
	NormalizeAudio   bool                     `json:"normalize_audio,omitempty"`
	Test             bool                     `json:"test,omitempty"`
}

// UploadParams is the request body for creating a direct-upload target.
type UploadParams struct {
	NewAssetSettings AssetParams `json:"new_asset_settings"`
	CORSOrigin       string      `json:"cors_origin,omitempty"`
	Test             bool        `json:"test,omitempty"`
}

// PlaybackID is a public or signed playback identifier attached to an asset.
type PlaybackID struct {
	ID     string `json:"id"`
	Policy string `json:"policy"`
}

// AssetErrors carries the platform's explanation for an errored asset.
type AssetErrors struct {
	Type     string   `json:"type"`
	Messages []string `json:"messages"`
}

// StaticRendition is one entry of an asset's static rendition list.
type StaticRendition struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Ext        string `json:"ext,omitempty"`
	Resolution string `json:"resolution,omitempty"`
	Status     string `json:"status"`
	Filesize   string `json:"filesize,omitempty"`
}

// StaticRenditions wraps the rendition list embedded in an asset.
type StaticRenditions struct {
	Files []StaticRendition `json:"files"`
}

// Asset is the platform's asset record.
type Asset struct {
	ID               string            `json:"id"`
	Status           string            `json:"status"`
	CreatedAt        string            `json:"created_at,omitempty"`
	Duration         float64           `json:"duration,omitempty"`
	AspectRatio      string            `json:"aspect_ratio,omitempty"`
	VideoQuality     string            `json:"video_quality,omitempty"`
	Passthrough      string            `json:"passthrough,omitempty"`
	Test             bool              `json:"test,omitempty"`
	PlaybackIDs      []PlaybackID      `json:"playback_ids,omitempty"`
	StaticRenditions *StaticRenditions `json:"static_renditions,omitempty"`
	Errors           *AssetErrors      `json:"errors,omitempty"`
	UploadID         string            `json:"upload_id,omitempty"`
}

// Rendition returns the static rendition with the given ID, if present.
func (a *Asset) Rendition(id string) (StaticRendition, bool) {
	if a == nil || a.StaticRenditions == nil {
		return StaticRendition{}, false
	}
	for _, file := range a.StaticRenditions.Files {
		if file.ID == id {
			return file, true
		}
	}
	return StaticRendition{}, false
}

// ErrorMessages returns the platform error messages for an errored asset.
func (a *Asset) ErrorMessages() []string {
	if a == nil || a.Errors == nil {
		return nil
	}
	return a.Errors.Messages
}

// UploadError carries the platform's explanation for a failed upload.
type UploadError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Upload is a direct-upload target. URL is the signed endpoint that accepts
// the raw file body.
type Upload struct {
	ID         string       `json:"id"`
	URL        string       `json:"url"`
	Status     string       `json:"status"`
	AssetID    string       `json:"asset_id,omitempty"`
	CORSOrigin string       `json:"cors_origin,omitempty"`
	Timeout    int          `json:"timeout,omitempty"`
	Test       bool         `json:"test,omitempty"`
	Error      *UploadError `json:"error,omitempty"`
}
