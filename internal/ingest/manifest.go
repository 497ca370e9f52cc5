package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"muxcli/internal/config"
)

// Manifest is a decoded asset manifest. Only JSON syntax is checked locally;
// field validation is left to the platform so new remote fields keep working.
type Manifest map[string]any

// LoadManifest reads and decodes the manifest at path. Numbers are kept as
// json.Number so they are forwarded without float rounding.
func LoadManifest(path string) (Manifest, error) {
	resolved, err := config.ExpandPath(strings.TrimSpace(path))
	if err != nil {
		return nil, fmt.Errorf("resolve manifest path: %w", err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, resolved)
		}
		return nil, fmt.Errorf("read manifest %s: %w", resolved, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var decoded any
	if err := decoder.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrManifestInvalidJSON, resolved, err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w %s: unexpected data after top-level value", ErrManifestInvalidJSON, resolved)
	}

	object, ok := decoded.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w %s: top-level value must be an object", ErrManifestInvalidJSON, resolved)
	}
	return Manifest(object), nil
}
