package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"muxcli/internal/testsupport"
)

func TestResolveFilesExpandsInOrderAndDedupes(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "b.mp4"), 20)
	testsupport.WriteFile(t, filepath.Join(dir, "a.mp4"), 10)
	testsupport.WriteFile(t, filepath.Join(dir, "notes.txt"), 5)

	files, err := ResolveFiles([]string{
		filepath.Join(dir, "b.mp4"),
		filepath.Join(dir, "*.mp4"),
	})
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %+v", files)
	}
	if files[0].Name != "b.mp4" || files[1].Name != "a.mp4" {
		t.Fatalf("expected first-occurrence order b, a; got %s, %s", files[0].Name, files[1].Name)
	}
	if files[0].Size != 20 || files[1].Size != 10 {
		t.Fatalf("unexpected sizes %+v", files)
	}
	if TotalSize(files) != 30 {
		t.Fatalf("unexpected total %d", TotalSize(files))
	}
}

func TestResolveFilesDedupesSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "clip.mp4")
	testsupport.WriteFile(t, target, 8)
	link := filepath.Join(dir, "alias.mp4")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	files, err := ResolveFiles([]string{link, target})
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected symlink and target to collapse, got %+v", files)
	}
}

func TestResolveFilesEmptyPatternDoesNotShortCircuit(t *testing.T) {
	dir := t.TempDir()
	testsupport.WriteFile(t, filepath.Join(dir, "one.mov"), 4)

	files, err := ResolveFiles([]string{filepath.Join(dir, "*.mp4"), filepath.Join(dir, "*.mov")})
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}
	if len(files) != 1 || files[0].Name != "one.mov" {
		t.Fatalf("unexpected files %+v", files)
	}
}

func TestResolveFilesNoMatches(t *testing.T) {
	dir := t.TempDir()
	_, err := ResolveFiles([]string{filepath.Join(dir, "*.mp4")})
	if !errors.Is(err, ErrNoFilesMatched) {
		t.Fatalf("expected ErrNoFilesMatched, got %v", err)
	}
}

func TestResolveFilesDirectoryOnlyPattern(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "clips"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	_, err := ResolveFiles([]string{filepath.Join(dir, "clips")})
	if !errors.Is(err, ErrPatternIsDirectory) {
		t.Fatalf("expected ErrPatternIsDirectory, got %v", err)
	}
}

func TestResolveFilesMalformedPattern(t *testing.T) {
	_, err := ResolveFiles([]string{filepath.Join(t.TempDir(), "[.mp4")})
	if !errors.Is(err, ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestResolveFilesLiteralPathWithGlobCharacters(t *testing.T) {
	dir := t.TempDir()
	literal := filepath.Join(dir, "clip[1].mp4")
	testsupport.WriteFile(t, literal, 12)
	testsupport.WriteFile(t, filepath.Join(dir, "clip1.mp4"), 4)

	files, err := ResolveFiles([]string{literal})
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}
	if len(files) != 1 || files[0].Name != "clip[1].mp4" || files[0].Size != 12 {
		t.Fatalf("expected the literal file only, got %+v", files)
	}

	files, err = ResolveFiles([]string{filepath.Join(dir, "clip[0-9].mp4")})
	if err != nil {
		t.Fatalf("ResolveFiles: %v", err)
	}
	if len(files) != 1 || files[0].Name != "clip1.mp4" {
		t.Fatalf("a non-existent name should still glob, got %+v", files)
	}
}
