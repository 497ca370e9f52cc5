package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"muxcli/internal/config"
	"muxcli/internal/fileutil"
)

// FileCandidate is one local file queued for upload. Path is canonical and is
// the identity used for deduplication.
type FileCandidate struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size_bytes"`
}

// TotalSize sums the sizes of the candidates.
func TotalSize(files []FileCandidate) int64 {
	var total int64
	for _, f := range files {
		total += f.Size
	}
	return total
}

// ResolveFiles expands each pattern in order and returns the regular files it
// matches, deduplicated by canonical path with the first occurrence winning.
// A pattern matching nothing is tolerated as long as the overall result is
// non-empty; a pattern matching only directories is an error.
func ResolveFiles(patterns []string) ([]FileCandidate, error) {
	seen := make(map[string]struct{})
	var files []FileCandidate

	for _, pattern := range patterns {
		matches, err := expandPattern(pattern)
		if err != nil {
			return nil, err
		}

		var dirs, regular int
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				// Dangling symlinks match the glob but have nothing to upload.
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return nil, fmt.Errorf("inspect %s: %w", match, err)
			}
			if info.IsDir() {
				dirs++
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}
			regular++

			canonical, err := fileutil.CanonicalPath(match)
			if err != nil {
				return nil, err
			}
			if _, dup := seen[canonical]; dup {
				continue
			}
			seen[canonical] = struct{}{}
			files = append(files, FileCandidate{
				Name: filepath.Base(match),
				Path: canonical,
				Size: info.Size(),
			})
		}

		if dirs > 0 && regular == 0 {
			return nil, fmt.Errorf("%w: %s", ErrPatternIsDirectory, pattern)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFilesMatched, strings.Join(patterns, ", "))
	}
	return files, nil
}

func expandPattern(pattern string) ([]string, error) {
	expanded, err := config.ExpandPath(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, pattern, err)
	}
	// An existing path is taken literally even if its name contains glob metacharacters.
	if _, err := os.Lstat(expanded); err == nil {
		return []string{expanded}, nil
	}
	matches, err := filepath.Glob(expanded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, pattern, err)
	}
	return matches, nil
}
