package fctest

import (
	"context"
	"testing"

	"github.com/sailfishos-mirror/fontconfig/errors"
	"github.com/sailfishos-mirror/fontconfig/settings"
)

// ForTest returns a harness configured from the environment and the
// fctest.toml files, removed when the test ends. The test is skipped when
// the build cannot be run on this host.
func ForTest(t testing.TB) *Harness {
	t.Helper()

	cfg, err := settings.Load()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	return ForTestWithConfig(t, cfg)
}

// ForTestWithConfig is ForTest with an explicit configuration.
func ForTestWithConfig(t testing.TB, cfg *settings.Config) *Harness {
	t.Helper()

	h, err := New(cfg)
	if errors.IsUnavailableError(err) {
		t.Skipf("harness unavailable: %v", err)
	}
	if err != nil {
		t.Fatalf("create harness: %v", err)
	}
	t.Cleanup(func() {
		if err := h.Close(); err != nil {
			t.Errorf("close harness: %v", err)
		}
	})
	return h
}

// RequireTool skips the test unless every tool was built.
func RequireTool(t testing.TB, h *Harness, tools ...Tool) {
	t.Helper()
	for _, tool := range tools {
		if !h.ToolAvailable(tool) {
			t.Skipf("%s not built in %s", tool, h.BuildDir())
		}
	}
}

// RequireSandbox skips the test when bwrap is missing or tools run through
// a Windows runner.
func RequireSandbox(t testing.TB, h *Harness) {
	t.Helper()
	if !h.HasSandbox() {
		t.Skip("no bwrap installed")
	}
	if h.ExeExt() != "" {
		t.Skip("sandbox not supported for Windows builds")
	}
}

// RequireVersion skips the test unless tool satisfies constraint.
func RequireVersion(t testing.TB, h *Harness, tool Tool, constraint string) {
	t.Helper()
	ok, v, err := h.SatisfiesVersion(context.Background(), tool, constraint)
	if errors.IsUnavailableError(err) {
		t.Skipf("version check: %v", err)
	}
	if err != nil {
		t.Fatalf("version check: %v", err)
	}
	if !ok {
		t.Skipf("%s %s does not satisfy %s", tool, v, constraint)
	}
}

// RequireTestFonts returns the bundled test fonts or skips the test.
func RequireTestFonts(t testing.TB, h *Harness) []string {
	t.Helper()
	fonts, err := TestFonts(h.SrcDir())
	if err != nil {
		t.Skipf("test fonts: %v", err)
	}
	return fonts
}

// RequireBrokenFonts returns the malformed test fonts or skips the test.
func RequireBrokenFonts(t testing.TB, h *Harness) []string {
	t.Helper()
	fonts, err := BrokenFonts(h.SrcDir())
	if err != nil {
		t.Skipf("broken fonts: %v", err)
	}
	return fonts
}

// RequireExternalFonts returns the downloaded test fonts or skips the test.
func RequireExternalFonts(t testing.TB, h *Harness) []string {
	t.Helper()
	fonts, err := ExternalFonts(h.BuildDir())
	if err != nil {
		t.Fatalf("external fonts: %v", err)
	}
	if len(fonts) == 0 {
		t.Skipf("no external test fonts under %s", h.BuildDir())
	}
	return fonts
}
