package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Asset", statusError, "Errored", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Asset:", "[ERROR] Errored")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Asset", statusOK, "Ready", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestStatusLabel(t *testing.T) {
	cases := map[string]string{
		"asset_created": "Asset Created",
		"ready":         "Ready",
		"timed_out":     "Timed Out",
		"":              "Unknown",
	}
	for in, want := range cases {
		if got := statusLabel(in); got != want {
			t.Fatalf("statusLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPlatformStatusKind(t *testing.T) {
	if platformStatusKind("ready") != statusOK || platformStatusKind("skipped") != statusWarn ||
		platformStatusKind("errored") != statusError || platformStatusKind("preparing") != statusInfo {
		t.Fatal("unexpected status mapping")
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers are never terminals")
	}
}

func TestPromptConfirmerDefaults(t *testing.T) {
	var out bytes.Buffer
	ok, err := newPromptConfirmer(strings.NewReader("\n"), &out).Confirm("Continue?", false)
	if err != nil || ok {
		t.Fatalf("empty answer should pick default no: ok=%v err=%v", ok, err)
	}
	ok, err = newPromptConfirmer(strings.NewReader("YES\n"), &out).Confirm("Continue?", false)
	if err != nil || !ok {
		t.Fatalf("expected yes: ok=%v err=%v", ok, err)
	}
	ok, err = newPromptConfirmer(strings.NewReader(""), &out).Confirm("Continue?", true)
	if err != nil || !ok {
		t.Fatalf("EOF should pick default yes: ok=%v err=%v", ok, err)
	}
}
