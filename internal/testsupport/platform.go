package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"muxcli/internal/services/mux"
)

// Transfer is one file body received on a signed upload URL.
type Transfer struct {
	UploadID      string
	ContentLength int64
	Bytes         int64
}

// FakePlatform is an in-memory stand-in for the remote media platform. It
// records every API call so tests can assert what was (or was not) sent.
// Exported fields script behaviour and must be set before use.
type FakePlatform struct {
	// AssetStatuses scripts successive GetAsset statuses; the last entry
	// repeats. Empty means every asset is immediately ready.
	AssetStatuses []string
	// AssetErrors are reported on assets whose status is errored.
	AssetErrors []string
	// RenditionStatuses scripts successive rendition statuses observed through GetAsset.
	RenditionStatuses []string
	// FailCreateUpload makes the nth CreateUpload (1-based) fail with HTTP 500.
	FailCreateUpload int
	// FailTransfer makes the nth signed-URL PUT (1-based) answer HTTP 500.
	FailTransfer int
	// UploadOutcome, when set, is the status GetUpload reports instead of
	// creating an asset (for example "errored" or "timed_out").
	UploadOutcome string
	// SignedURLBase prefixes signed upload URLs. NewPlatformServer sets it.
	SignedURLBase string

	mu              sync.Mutex
	nextID          int
	calls           []string
	requestIDs      []string
	assetBodies     []map[string]any
	uploadParams    []mux.UploadParams
	transfers       []Transfer
	assets          map[string]*mux.Asset
	uploads         map[string]*mux.Upload
	assetPolls      int
	renditionPolls  int
	createdUploads  int
	transferAttempt int
}

// Calls returns the API operations performed so far, in order.
func (f *FakePlatform) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount reports how many API operations were performed.
func (f *FakePlatform) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// AssetBodies returns the JSON bodies of every create-asset call.
func (f *FakePlatform) AssetBodies() []map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.assetBodies...)
}

// UploadParams returns the bodies of every create-upload call.
func (f *FakePlatform) UploadParams() []mux.UploadParams {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]mux.UploadParams(nil), f.uploadParams...)
}

// Transfers returns the successful signed-URL transfers.
func (f *FakePlatform) Transfers() []Transfer {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Transfer(nil), f.transfers...)
}

// RequestIDs returns the X-Request-Id headers seen by the HTTP server.
func (f *FakePlatform) RequestIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requestIDs...)
}

// CreateAsset records the typed body and returns a preparing asset.
func (f *FakePlatform) CreateAsset(_ context.Context, params mux.AssetParams) (*mux.Asset, error) {
	body, err := toObject(params)
	if err != nil {
		return nil, err
	}
	return f.createAsset(body), nil
}

// CreateAssetFromManifest records the raw body and returns a preparing asset.
func (f *FakePlatform) CreateAssetFromManifest(_ context.Context, manifest map[string]any) (*mux.Asset, error) {
	body, err := toObject(manifest)
	if err != nil {
		return nil, err
	}
	return f.createAsset(body), nil
}

// GetAsset returns the asset with its next scripted status.
func (f *FakePlatform) GetAsset(_ context.Context, assetID string) (*mux.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "get_asset")

	asset, ok := f.assets[assetID]
	if !ok {
		return nil, notFound("get asset", "asset "+assetID)
	}
	asset.Status = scripted(f.AssetStatuses, f.assetPolls, mux.AssetStatusReady)
	f.assetPolls++
	if asset.Status == mux.AssetStatusErrored {
		asset.Errors = &mux.AssetErrors{Type: "invalid_input", Messages: f.AssetErrors}
	}
	if asset.StaticRenditions != nil && len(asset.StaticRenditions.Files) > 0 {
		status := scripted(f.RenditionStatuses, f.renditionPolls, mux.RenditionStatusReady)
		f.renditionPolls++
		for i := range asset.StaticRenditions.Files {
			asset.StaticRenditions.Files[i].Status = status
		}
		if status == mux.RenditionStatusErrored && asset.Errors == nil {
			asset.Errors = &mux.AssetErrors{Type: "rendition_failed", Messages: f.AssetErrors}
		}
	}
	clone := cloneAsset(asset)
	return &clone, nil
}

// CreateUpload records the body and returns a waiting upload with a signed URL.
func (f *FakePlatform) CreateUpload(_ context.Context, params mux.UploadParams) (*mux.Upload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "create_upload")
	f.uploadParams = append(f.uploadParams, params)
	f.createdUploads++
	if f.FailCreateUpload > 0 && f.createdUploads == f.FailCreateUpload {
		return nil, &mux.APIError{StatusCode: http.StatusInternalServerError, Type: "server_error", Messages: []string{"upload target unavailable"}, Operation: "create upload"}
	}

	id := f.newID("upload")
	base := f.SignedURLBase
	if base == "" {
		base = "https://storage.invalid"
	}
	upload := &mux.Upload{
		ID:         id,
		URL:        base + "/upload/" + id,
		Status:     mux.UploadStatusWaiting,
		CORSOrigin: params.CORSOrigin,
		Test:       params.Test,
	}
	f.ensureMaps()
	f.uploads[id] = upload
	clone := *upload
	return &clone, nil
}

// GetUpload reports the upload as having produced an asset once its body arrived.
func (f *FakePlatform) GetUpload(_ context.Context, uploadID string) (*mux.Upload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "get_upload")

	upload, ok := f.uploads[uploadID]
	if !ok {
		return nil, notFound("get upload", "upload "+uploadID)
	}
	if f.UploadOutcome != "" {
		upload.Status = f.UploadOutcome
		if f.UploadOutcome == mux.UploadStatusErrored {
			upload.Error = &mux.UploadError{Type: "invalid_input", Message: "file could not be read"}
		}
	} else if upload.AssetID == "" {
		asset := &mux.Asset{ID: f.newID("asset"), Status: mux.AssetStatusPreparing, UploadID: uploadID}
		f.assets[asset.ID] = asset
		upload.AssetID = asset.ID
		upload.Status = mux.UploadStatusAssetCreated
	}
	clone := *upload
	return &clone, nil
}

// CreateStaticRendition attaches a preparing rendition to an existing asset.
func (f *FakePlatform) CreateStaticRendition(_ context.Context, assetID, resolution string) (*mux.StaticRendition, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "create_static_rendition")

	asset, ok := f.assets[assetID]
	if !ok {
		return nil, notFound("create static rendition", "asset "+assetID)
	}
	rendition := mux.StaticRendition{
		ID:         f.newID("rendition"),
		Name:       resolution + ".mp4",
		Ext:        "mp4",
		Resolution: resolution,
		Status:     mux.RenditionStatusPreparing,
	}
	if asset.StaticRenditions == nil {
		asset.StaticRenditions = &mux.StaticRenditions{}
	}
	asset.StaticRenditions.Files = append(asset.StaticRenditions.Files, rendition)
	return &rendition, nil
}

// AddAsset registers an existing asset, as if created earlier.
func (f *FakePlatform) AddAsset(asset mux.Asset) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ensureMaps()
	clone := cloneAsset(&asset)
	f.assets[asset.ID] = &clone
}

// ReceiveTransfer records a signed-URL body and returns the HTTP status to answer with.
func (f *FakePlatform) ReceiveTransfer(uploadID string, contentLength int64, body io.Reader) int {
	n, _ := io.Copy(io.Discard, body)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.transferAttempt++
	if f.FailTransfer > 0 && f.transferAttempt == f.FailTransfer {
		return http.StatusInternalServerError
	}
	if _, ok := f.uploads[uploadID]; !ok {
		return http.StatusNotFound
	}
	f.transfers = append(f.transfers, Transfer{UploadID: uploadID, ContentLength: contentLength, Bytes: n})
	return http.StatusOK
}

func (f *FakePlatform) createAsset(body map[string]any) *mux.Asset {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "create_asset")
	f.assetBodies = append(f.assetBodies, body)

	asset := &mux.Asset{ID: f.newID("asset"), Status: mux.AssetStatusPreparing}
	if quality, ok := body["video_quality"].(string); ok {
		asset.VideoQuality = quality
	}
	if passthrough, ok := body["passthrough"].(string); ok {
		asset.Passthrough = passthrough
	}
	f.ensureMaps()
	f.assets[asset.ID] = asset
	clone := cloneAsset(asset)
	return &clone
}

func (f *FakePlatform) ensureMaps() {
	if f.assets == nil {
		f.assets = make(map[string]*mux.Asset)
	}
	if f.uploads == nil {
		f.uploads = make(map[string]*mux.Upload)
	}
}

func (f *FakePlatform) newID(prefix string) string {
	f.nextID++
	f.ensureMaps()
	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *FakePlatform) recordRequestID(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requestIDs = append(f.requestIDs, id)
}

func scripted(statuses []string, index int, fallback string) string {
	if len(statuses) == 0 {
		return fallback
	}
	return statuses[min(index, len(statuses)-1)]
}

func cloneAsset(asset *mux.Asset) mux.Asset {
	clone := *asset
	if asset.StaticRenditions != nil {
		clone.StaticRenditions = &mux.StaticRenditions{
			Files: append([]mux.StaticRendition(nil), asset.StaticRenditions.Files...),
		}
	}
	return clone
}

func notFound(op, what string) error {
	return &mux.APIError{StatusCode: http.StatusNotFound, Type: "not_found", Messages: []string{what + " not found"}, Operation: op}
}

func toObject(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var out map[string]any
	if err := decoder.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// NewPlatformServer exposes fake over HTTP with the platform's URL layout,
// envelopes, and basic auth. Signed upload URLs point back at the server.
func NewPlatformServer(t testing.TB, fake *FakePlatform) *httptest.Server {
	t.Helper()

	router := http.NewServeMux()
	server := httptest.NewServer(authenticated(fake, router))
	t.Cleanup(server.Close)
	fake.SignedURLBase = server.URL

	router.HandleFunc("POST /video/v1/assets", func(w http.ResponseWriter, r *http.Request) {
		decoder := json.NewDecoder(r.Body)
		decoder.UseNumber()
		var body map[string]any
		if err := decoder.Decode(&body); err != nil {
			writeError(w, &apiFailure{status: http.StatusBadRequest, typ: "invalid_parameters", message: err.Error()})
			return
		}
		writeData(w, http.StatusCreated, fake.createAsset(body))
	})
	router.HandleFunc("GET /video/v1/assets/{id}", func(w http.ResponseWriter, r *http.Request) {
		asset, err := fake.GetAsset(r.Context(), r.PathValue("id"))
		respond(w, http.StatusOK, asset, err)
	})
	router.HandleFunc("POST /video/v1/assets/{id}/static-renditions", func(w http.ResponseWriter, r *http.Request) {
		var body mux.StaticRenditionRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, &apiFailure{status: http.StatusBadRequest, typ: "invalid_parameters", message: err.Error()})
			return
		}
		rendition, err := fake.CreateStaticRendition(r.Context(), r.PathValue("id"), body.Resolution)
		respond(w, http.StatusCreated, rendition, err)
	})
	router.HandleFunc("POST /video/v1/uploads", func(w http.ResponseWriter, r *http.Request) {
		var body mux.UploadParams
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, &apiFailure{status: http.StatusBadRequest, typ: "invalid_parameters", message: err.Error()})
			return
		}
		upload, err := fake.CreateUpload(r.Context(), body)
		respond(w, http.StatusCreated, upload, err)
	})
	router.HandleFunc("GET /video/v1/uploads/{id}", func(w http.ResponseWriter, r *http.Request) {
		upload, err := fake.GetUpload(r.Context(), r.PathValue("id"))
		respond(w, http.StatusOK, upload, err)
	})
	router.HandleFunc("PUT /upload/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(fake.ReceiveTransfer(r.PathValue("id"), r.ContentLength, r.Body))
	})

	return server
}

func authenticated(fake *FakePlatform, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			next.ServeHTTP(w, r)
			return
		}
		if id, secret, ok := r.BasicAuth(); !ok || id == "" || secret == "" {
			writeError(w, &apiFailure{status: http.StatusUnauthorized, typ: "unauthorized", message: "missing credentials"})
			return
		}
		fake.recordRequestID(r.Header.Get("X-Request-Id"))
		next.ServeHTTP(w, r)
	})
}

type apiFailure struct {
	status  int
	typ     string
	message string
}

func respond(w http.ResponseWriter, status int, data any, err error) {
	if err != nil {
		if apiErr, ok := err.(*mux.APIError); ok {
			writeError(w, &apiFailure{status: apiErr.StatusCode, typ: apiErr.Type, message: apiErr.Messages[0]})
			return
		}
		writeError(w, &apiFailure{status: http.StatusInternalServerError, typ: "server_error", message: err.Error()})
		return
	}
	writeData(w, status, data)
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func writeError(w http.ResponseWriter, failure *apiFailure) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(failure.status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"type": failure.typ, "messages": []string{failure.message}},
	})
}
