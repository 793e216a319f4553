package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/circlet/pkg/buildinfo"
	cerrors "github.com/matzehuels/circlet/pkg/errors"
	"github.com/matzehuels/circlet/pkg/grid"
	"github.com/matzehuels/circlet/pkg/location"
	"github.com/matzehuels/circlet/pkg/pattern"
	"github.com/matzehuels/circlet/pkg/render"
)

// testEnv points the config and cache at empty temp dirs and silences
// status output.
func testEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	old := statusOut
	statusOut = io.Discard
	t.Cleanup(func() { statusOut = old })
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

type document struct {
	Token      string             `json:"token"`
	URL        string             `json:"url"`
	Descriptor pattern.Descriptor `json:"descriptor"`
	Layout     json.RawMessage    `json:"layout"`
}

func parseDocument(t *testing.T, s string) document {
	t.Helper()
	var doc document
	if err := json.Unmarshal([]byte(s), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, s)
	}
	return doc
}

// =============================================================================
// generate
// =============================================================================

func TestGenerateSeededIsDeterministic(t *testing.T) {
	testEnv(t)

	first, err := execute(t, "", "generate", "--seed", "42")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := execute(t, "", "generate", "--seed", "42")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if first != second {
		t.Errorf("same seed produced different output:\n%s\n%s", first, second)
	}

	doc := parseDocument(t, first)
	if doc.Token == "" {
		t.Error("missing token")
	}
	if want := location.DefaultBaseURL + "?t=" + doc.Token; doc.URL != want {
		t.Errorf("url = %q, want %q", doc.URL, want)
	}
	if doc.Layout != nil {
		t.Error("layout should be omitted without --layout")
	}
	if err := doc.Descriptor.Validate(); err != nil {
		t.Errorf("generated descriptor invalid: %v", err)
	}
}

func TestGeneratePinnedFields(t *testing.T) {
	testEnv(t)

	out, err := execute(t, "", "generate", "--diameter", "120", "--circles", "3", "--lines", "0", "--inverse=false", "--layout")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	doc := parseDocument(t, out)
	d := doc.Descriptor
	if d.Diameter != 120 || d.NumCircles != 3 || d.NumLines != 0 || d.Inverse {
		t.Errorf("descriptor = %+v, want diameter 120, 3 circles, 0 lines, not inverse", d)
	}
	if doc.Layout == nil {
		t.Error("--layout should include the layout")
	}
}

func TestGenerateRejectsInvalidPin(t *testing.T) {
	testEnv(t)

	_, err := execute(t, "", "generate", "--diameter", "5")
	if !cerrors.Is(err, cerrors.ErrCodeInvalidPattern) {
		t.Errorf("err = %v, want INVALID_PATTERN", err)
	}
}

// =============================================================================
// encode / decode
// =============================================================================

func TestEncodeDecodeRoundTrip(t *testing.T) {
	testEnv(t)

	generated, err := execute(t, "", "generate", "--seed", "7")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	doc := parseDocument(t, generated)

	token, err := execute(t, generated, "encode")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got := strings.TrimSpace(token); got != doc.Token {
		t.Errorf("encode = %q, want %q", got, doc.Token)
	}

	for _, arg := range []string{doc.Token, doc.URL} {
		decoded, err := execute(t, "", "decode", arg)
		if err != nil {
			t.Fatalf("decode %q: %v", arg, err)
		}
		if got := parseDocument(t, decoded).Descriptor; !got.Equal(doc.Descriptor) {
			t.Errorf("decode %q = %+v, want %+v", arg, got, doc.Descriptor)
		}
	}
}

func TestEncodeBareDescriptorFromFile(t *testing.T) {
	testEnv(t)

	d := pattern.NewSeededGenerator(3).Generate(pattern.Overrides{})
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "pattern.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "encode", path, "--url")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if want := location.DefaultBaseURL + "?t=" + pattern.MustEncode(d); strings.TrimSpace(out) != want {
		t.Errorf("encode --url = %q, want %q", out, want)
	}
}

func TestEncodeErrors(t *testing.T) {
	testEnv(t)

	tests := []struct {
		name  string
		stdin string
		args  []string
		code  cerrors.Code
	}{
		{"not json", "nope", []string{"encode"}, cerrors.ErrCodeInvalidInput},
		{"invalid descriptor", `{"inverse":false,"diameter":5,"numCircles":0,"numLines":0,"rArrs":[]}`, []string{"encode"}, cerrors.ErrCodeInvalidPattern},
		{"missing file", "", []string{"encode", filepath.Join(t.TempDir(), "absent.json")}, cerrors.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.stdin, tt.args...)
			if !cerrors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDecodeInvalidToken(t *testing.T) {
	testEnv(t)

	_, err := execute(t, "", "decode", "bm90LWpzb24")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, pattern.ErrDecode) {
		t.Errorf("error should wrap a decode error: %v", err)
	}
	if !cerrors.Is(err, cerrors.ErrCodeInvalidToken) {
		t.Errorf("code = %s, want INVALID_TOKEN", cerrors.GetCode(err))
	}
}

func TestDecodeURLWithoutToken(t *testing.T) {
	testEnv(t)

	_, err := execute(t, "", "decode", "https://circlet.example/?x=1")
	if !cerrors.Is(err, cerrors.ErrCodeInvalidToken) {
		t.Errorf("err = %v, want INVALID_TOKEN", err)
	}
}

// =============================================================================
// render
// =============================================================================

func TestRenderTextToStdout(t *testing.T) {
	testEnv(t)

	out, err := execute(t, "", "render", "--seed", "3", "-f", "txt", "--columns", "8")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 8 {
			t.Errorf("line %d has %d cells, want 8", i, n)
		}
	}
}

func TestRenderWritesFiles(t *testing.T) {
	testEnv(t)
	dir := t.TempDir()

	token := pattern.MustEncode(pattern.NewSeededGenerator(9).Generate(pattern.Overrides{}))
	if _, err := execute(t, "", "render", token, "-f", "svg,json,png", "-o", filepath.Join(dir, "out")); err != nil {
		t.Fatalf("render: %v", err)
	}

	svg, err := os.ReadFile(filepath.Join(dir, "out.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("out.svg is not an SVG document")
	}

	data, err := os.ReadFile(filepath.Join(dir, "out.json"))
	if err != nil {
		t.Fatal(err)
	}
	if doc := parseDocument(t, string(data)); doc.Token != token {
		t.Errorf("json token = %q, want %q", doc.Token, token)
	}

	png, err := os.ReadFile(filepath.Join(dir, "out.png"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("out.png is not a PNG")
	}
}

func TestRenderSingleExplicitPath(t *testing.T) {
	testEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "tile.svg")

	if _, err := execute(t, "", "render", "--seed", "1", "-f", "svg", "-o", path); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected %s: %v", path, err)
	}
}

func TestRenderShareURLArgument(t *testing.T) {
	testEnv(t)

	d := pattern.NewSeededGenerator(5).Generate(pattern.Overrides{})
	url, err := location.ShareURL(location.DefaultBaseURL, d)
	if err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "", "render", url, "-f", "json", "-o", "-")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := parseDocument(t, out).Descriptor; !got.Equal(d) {
		t.Errorf("descriptor = %+v, want %+v", got, d)
	}
}

func TestRenderPDF(t *testing.T) {
	if !render.Available() {
		t.Skip("rsvg-convert not installed")
	}
	testEnv(t)

	out, err := execute(t, "", "render", "--seed", "2", "-f", "pdf", "-o", "-")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(out, "%PDF") {
		t.Error("output is not a PDF")
	}
}

func TestRenderFlagErrors(t *testing.T) {
	testEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"render", "-f", "gif"}},
		{"stdout with two formats", []string{"render", "-f", "svg,png", "-o", "-"}},
		{"path traversal", []string{"render", "-o", "../escape.svg"}},
		{"bad scale", []string{"render", "-f", "png", "--scale", "40"}},
		{"bad token", []string{"render", "bm90LWpzb24"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, "", tt.args...); err == nil {
				t.Errorf("%v: expected error", tt.args)
			}
		})
	}
}

// =============================================================================
// grid
// =============================================================================

func TestGridToStdout(t *testing.T) {
	testEnv(t)

	out, err := execute(t, "", "grid", "--width", "750", "--height", "500", "--seed", "1", "-o", "-")
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	if n := strings.Count(out, "data-index="); n != 6 {
		t.Errorf("got %d tiles, want 6 (2 rows × 3 columns)", n)
	}
}

func TestGridSeedIsDeterministic(t *testing.T) {
	testEnv(t)

	// SVG tile ids are random; PNG bytes are not.
	args := []string{"grid", "--width", "500", "--height", "250", "--seed", "4", "-f", "png", "-o", "-", "--scale", "0.5"}
	first, err := execute(t, "", args...)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	second, err := execute(t, "", args...)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	if first != second {
		t.Error("same seed produced different walls")
	}
}

func TestGridRejectsSingleTileFormats(t *testing.T) {
	testEnv(t)

	_, err := execute(t, "", "grid", "-f", "json")
	if !cerrors.Is(err, cerrors.ErrCodeUnsupported) {
		t.Errorf("err = %v, want UNSUPPORTED", err)
	}
}

func TestGridRejectsEmptyViewport(t *testing.T) {
	testEnv(t)

	_, err := execute(t, "", "grid", "--width", "0", "--height", "500")
	if !cerrors.Is(err, cerrors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestGridSmallViewportWarns(t *testing.T) {
	testEnv(t)
	var status bytes.Buffer
	statusOut = &status

	if _, err := execute(t, "", "grid", "--width", "100", "--height", "100", "--seed", "2", "-o", "-"); err != nil {
		t.Fatalf("grid: %v", err)
	}
	want := fmt.Sprintf("smaller than one %dpx cell", grid.CellSize)
	if !strings.Contains(status.String(), want) {
		t.Errorf("status %q missing %q", status.String(), want)
	}
}

func TestGridHelpNamesCellSize(t *testing.T) {
	long := New(io.Discard, LogInfo).gridCommand().Long
	want := fmt.Sprintf("one pattern per %dpx cell", grid.CellSize)
	if !strings.Contains(long, want) {
		t.Errorf("Long = %q, want it to contain %q", long, want)
	}
}

// =============================================================================
// config, cache, completion, version
// =============================================================================

func TestConfigFlag(t *testing.T) {
	testEnv(t)

	path := filepath.Join(t.TempDir(), "config.toml")
	conf := "[share]\nbase_url = \"https://example.org/p\"\n"
	if err := os.WriteFile(path, []byte(conf), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "", "--config", path, "generate", "--seed", "1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if url := parseDocument(t, out).URL; !strings.HasPrefix(url, "https://example.org/p?t=") {
		t.Errorf("url = %q, want configured base", url)
	}
}

func TestConfigFlagErrors(t *testing.T) {
	testEnv(t)

	_, err := execute(t, "", "--config", filepath.Join(t.TempDir(), "absent.toml"), "generate")
	if !cerrors.Is(err, cerrors.ErrCodeFileNotFound) {
		t.Errorf("missing config: err = %v, want FILE_NOT_FOUND", err)
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[palette]\nlight = \"blue\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = execute(t, "", "--config", path, "generate")
	if !cerrors.Is(err, cerrors.ErrCodeInvalidInput) {
		t.Errorf("bad colour: err = %v, want INVALID_INPUT", err)
	}
}

func TestCachePathAndClear(t *testing.T) {
	testEnv(t)
	want := filepath.Join(os.Getenv("XDG_CACHE_HOME"), appName)

	out, err := execute(t, "", "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(out); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}

	if _, err := execute(t, "", "cache", "clear"); err != nil {
		t.Fatalf("clear of absent cache: %v", err)
	}

	dir := t.TempDir()
	if _, err := execute(t, "", "render", "--seed", "8", "-f", "svg,json", "-o", filepath.Join(dir, "p")); err != nil {
		t.Fatalf("render: %v", err)
	}
	if n := countEntries(t, want); n != 2 {
		t.Fatalf("cache holds %d entries after render, want 2", n)
	}

	if _, err := execute(t, "", "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if n := countEntries(t, want); n != 0 {
		t.Errorf("cache holds %d entries after clear, want 0", n)
	}
}

func countEntries(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".json" {
			n++
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func TestCompletion(t *testing.T) {
	testEnv(t)

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := execute(t, "", "completion", shell)
		if err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, appName) {
			t.Errorf("completion %s does not mention %s", shell, appName)
		}
	}

	if _, err := execute(t, "", "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestVersion(t *testing.T) {
	testEnv(t)

	out, err := execute(t, "", "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, buildinfo.Version) {
		t.Errorf("version output %q missing %q", out, buildinfo.Version)
	}
}
