package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	kerrors "github.com/k1LoW/errors"
	"github.com/spf13/cobra"

	"headless/pkg/config"
	"headless/pkg/images"
	"headless/pkg/logger"
	"headless/pkg/pipeline"
	"headless/pkg/visualtest"
	"headless/version"
)

func TestMain(m *testing.M) {
	// Keep the user's config and state out of the tests.
	tmpDir, err := os.MkdirTemp("", "headless-cli")
	if err != nil {
		panic(err)
	}
	os.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	os.Setenv("XDG_STATE_HOME", filepath.Join(tmpDir, "state"))
	code := m.Run()
	os.RemoveAll(tmpDir)
	os.Exit(code)
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}
	cmd := newRootCmd(logger.NewRecent(10))
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "index.html")
	if err := os.WriteFile(path, []byte("<h1>hello</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRender_EndToEnd(t *testing.T) {
	tmpDir := t.TempDir()
	input := writeInput(t, tmpDir)
	output := filepath.Join(tmpDir, "out", "demo.png")

	stdout, _, err := runCLI(t, "-o", output, "-w", "320", "-h", "240", input)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if want := "Rendered demo: " + input + " -> " + output + "\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}

	reference := filepath.Join(tmpDir, "reference.png")
	if err := visualtest.RenderDemoToFile(reference, 320, 240); err != nil {
		t.Fatal(err)
	}
	opts := visualtest.DefaultOptions()
	opts.Tolerance = 0
	result, err := visualtest.CompareImages(output, reference, opts)
	if err != nil {
		t.Fatalf("comparison failed: %v", err)
	}
	if !result.Match {
		t.Errorf("output differs from reference in %d pixels", result.DifferentPixels)
	}
}

func TestRender_Verbose(t *testing.T) {
	tmpDir := t.TempDir()
	input := writeInput(t, tmpDir)
	output := filepath.Join(tmpDir, "demo.png")

	stdout, _, err := runCLI(t, "--verbose", "--output", output, "--width", "100", "--height", "80", input)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := strings.Join([]string{
		"Headless LibWeb Renderer Demo",
		"Input file: " + input,
		"Output file: " + output,
		"Viewport size: 100x80",
		"Rendering demo content...",
		"Successfully rendered demo to: " + output,
		"",
	}, "\n")
	if diff := cmp.Diff(want, stdout); diff != "" {
		t.Errorf("stdout mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_MissingInput(t *testing.T) {
	_, stderr, err := runCLI(t)
	if err != errReported {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.HasPrefix(stderr, "Error: Input file is required\n") {
		t.Errorf("stderr should start with the error, got %q", stderr)
	}
	if !strings.Contains(stderr, "Usage:") {
		t.Errorf("stderr should contain usage, got %q", stderr)
	}
}

func TestRender_MissingInputWithBrokenConfig(t *testing.T) {
	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "headless")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("width: [1, 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Remove(path) })

	_, stderr, err := runCLI(t)
	if err != errReported {
		t.Fatalf("err = %v, want errReported", err)
	}
	if !strings.HasPrefix(stderr, "Error: Input file is required\n") {
		t.Errorf("stderr should start with the missing input error, got %q", stderr)
	}

	// With an input the config is read and its error surfaces.
	input := writeInput(t, t.TempDir())
	if _, _, err := runCLI(t, input); err == nil || !strings.Contains(err.Error(), "config") {
		t.Errorf("err = %v, want a config error", err)
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := runCLI(t, "--version")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := "headless-renderer version " + version.Version + " (rev:" + version.Revision + ")\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRender_InputNamedCompletion(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	if err := os.WriteFile("completion", []byte("<p>hi</p>"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := runCLI(t, "-w", "64", "-h", "48", "completion")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if want := "Rendered demo: completion -> output/render.png\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "output", "render.png")); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRender_InputNamedLikeSubcommandWithPath(t *testing.T) {
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "compare")
	if err := os.WriteFile(input, []byte("<p>hi</p>"), 0o644); err != nil {
		t.Fatal(err)
	}
	output := filepath.Join(tmpDir, "out.png")
	if _, _, err := runCLI(t, "-o", output, "-w", "64", "-h", "48", input); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("output not written: %v", err)
	}
}

func TestRender_WithoutHome(t *testing.T) {
	t.Setenv("HOME", "")
	tmpDir := t.TempDir()
	output := filepath.Join(tmpDir, "demo.png")
	if _, _, err := runCLI(t, "-o", output, "-w", "64", "-h", "48", writeInput(t, tmpDir)); err != nil {
		t.Fatalf("Execute: %v", err)
	}
}

// Pixel values computed by hand from the gradient formula and source-over
// blending, independent of the renderer.
func TestRender_DefaultViewportPixels(t *testing.T) {
	tmpDir := t.TempDir()
	output := filepath.Join(tmpDir, "demo.png")
	if _, _, err := runCLI(t, "-o", output, writeInput(t, tmpDir)); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	img, err := images.LoadImage(output)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.Bounds().Size(); got != image.Pt(1024, 768) {
		t.Fatalf("size = %v, want 1024x768", got)
	}

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"gradient start", 0, 0, color.RGBA{102, 126, 234, 255}},
		{"gradient last row", 1023, 767, color.RGBA{117, 75, 162, 255}},
		{"header", 100, 60, color.RGBA{222, 226, 249, 255}},
		{"right of header", 980, 60, color.RGBA{103, 122, 228, 255}},
		{"box 1", 60, 210, color.RGBA{194, 196, 238, 255}},
		{"box 4", 300, 400, color.RGBA{195, 191, 231, 255}},
		{"between box columns", 260, 400, color.RGBA{110, 99, 196, 255}},
		{"right of box 4", 480, 450, color.RGBA{111, 96, 191, 255}},
	}
	for _, tt := range tests {
		got := color.RGBAModel.Convert(img.At(tt.x, tt.y)).(color.RGBA)
		d := func(a, b uint8) int { return max(int(a), int(b)) - min(int(a), int(b)) }
		if d(got.R, tt.want.R) > 1 || d(got.G, tt.want.G) > 1 || d(got.B, tt.want.B) > 1 || got.A != 255 {
			t.Errorf("%s (%d,%d) = %v, want %v (±1)", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestRender_OpenError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.html")
	_, _, err := runCLI(t, missing)
	if err == nil {
		t.Fatal("expected an error for a missing input")
	}
	if !strings.HasPrefix(err.Error(), "Could not open input file '"+missing+"'") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestRender_TooManyArgs(t *testing.T) {
	if _, _, err := runCLI(t, "a.html", "b.html"); err == nil {
		t.Error("expected an error for two inputs")
	}
}

func TestResolveOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		cfg  *config.Config
		want pipeline.Options
	}{
		{
			name: "defaults",
			args: []string{"in.html"},
			cfg:  &config.Config{},
			want: pipeline.Options{Input: "in.html", Output: "output/render.png", Width: 1024, Height: 768},
		},
		{
			name: "config overrides defaults",
			args: []string{"in.html"},
			cfg:  &config.Config{Width: 800, Height: 600, Output: "cfg.png"},
			want: pipeline.Options{Input: "in.html", Output: "cfg.png", Width: 800, Height: 600},
		},
		{
			name: "flags override config",
			args: []string{"-w", "300", "-o", "flag.png", "-v", "in.html"},
			cfg:  &config.Config{Width: 800, Height: 600, Output: "cfg.png"},
			want: pipeline.Options{Input: "in.html", Output: "flag.png", Width: 300, Height: 600, Verbose: true},
		},
		{
			name: "no input",
			args: []string{},
			cfg:  &config.Config{},
			want: pipeline.Options{Output: "output/render.png", Width: 1024, Height: 768},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &rootFlags{}
			cmd := &cobra.Command{Use: "test"}
			bindRootFlags(cmd, f)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			got := resolveOptions(cmd, f, tt.cfg, cmd.Flags().Args())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("resolveOptions mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDumpError(t *testing.T) {
	recent := logger.NewRecent(10)
	_, _ = recent.Write([]byte(`{"level":"INFO","msg":"loaded input"}` + "\n"))
	_, _ = recent.Write([]byte("not json\n"))

	dumpError(kerrors.WithStack(errors.New("boom")), recent)

	dir, err := config.StateHomePath()
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "error.json"))
	if err != nil {
		t.Fatalf("error.json not written: %v", err)
	}
	var got struct {
		LatestLogs  []any  `json:"latest_logs"`
		StackTraces any    `json:"stack_traces"`
		Version     string `json:"version"`
	}
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatal(err)
	}
	if len(got.LatestLogs) != 2 {
		t.Fatalf("latest_logs = %v, want 2 entries", got.LatestLogs)
	}
	if m, ok := got.LatestLogs[0].(map[string]any); !ok || m["msg"] != "loaded input" {
		t.Errorf("first log should be decoded JSON, got %#v", got.LatestLogs[0])
	}
	if got.LatestLogs[1] != "not json" {
		t.Errorf("second log = %#v, want raw line", got.LatestLogs[1])
	}
	if got.Version != version.Version {
		t.Errorf("version = %q, want %q", got.Version, version.Version)
	}
	if got.StackTraces == nil {
		t.Error("stack_traces should be set")
	}
}
