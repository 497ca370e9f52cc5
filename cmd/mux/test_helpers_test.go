package main

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"muxcli/internal/config"
	"muxcli/internal/testsupport"
)

type cliTestEnv struct {
	fake       *testsupport.FakePlatform
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", base)
	t.Setenv("MUX_TOKEN_ID", "")
	t.Setenv("MUX_TOKEN_SECRET", "")
	t.Setenv("MUX_BASE_URL", "")
	t.Chdir(base)

	fake := &testsupport.FakePlatform{}
	server := testsupport.NewPlatformServer(t, fake)
	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithBaseURL(server.URL)}, opts...)...)

	return &cliTestEnv{
		fake:       fake,
		cfg:        cfg,
		configPath: testsupport.WriteConfig(t, base, cfg),
		baseDir:    base,
	}
}

type cliResult struct {
	stdout string
	stderr string
	code   int
}

func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	flags := []string{"--config", env.configPath}
	code := run(append(flags, args...), strings.NewReader(stdin), &stdout, &stderr)
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func decodeJSON(t *testing.T, raw string, v any) {
	t.Helper()
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

// withInteractiveInput treats the test stdin as a terminal so prompts are shown.
func withInteractiveInput(t *testing.T) {
	t.Helper()
	previous := interactiveInput
	interactiveInput = func(io.Reader) bool { return true }
	t.Cleanup(func() { interactiveInput = previous })
}
