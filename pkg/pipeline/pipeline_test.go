package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/sysarch/pkg/errors"
	"github.com/matzehuels/sysarch/pkg/observability"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"png"}},
		{"svg", []string{"svg"}},
		{"png,svg", []string{"png", "svg"}},
		{" PNG , dot ,,png", []string{"png", "dot"}},
		{",", []string{"png"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseFormats(tt.in); !slices.Equal(got, tt.want) {
				t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"png", "svg", "pdf", "dot", "mermaid", "json"}); err != nil {
		t.Errorf("ValidateFormats() unexpected error: %v", err)
	}
	err := ValidateFormats([]string{"png", "gif"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormats() error = %v, want INVALID_FORMAT", err)
	}
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		FormatPNG:     "png",
		FormatSVG:     "svg",
		FormatPDF:     "pdf",
		FormatDOT:     "gv",
		FormatMermaid: "mmd",
		FormatJSON:    "json",
	}
	for format, want := range tests {
		if got := Extension(format); got != want {
			t.Errorf("Extension(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"defaults", Options{}, ""},
		{"direction", Options{Direction: "tb"}, ""},
		{"bad direction", Options{Direction: "up"}, errors.ErrCodeInvalidInput},
		{"bad format", Options{Formats: []string{"bmp"}}, errors.ErrCodeInvalidFormat},
		{"negative scale", Options{Scale: -1}, errors.ErrCodeInvalidInput},
		{"bad name", Options{Name: "../escape"}, errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Validate() code = %q (err %v), want %q", got, err, tt.code)
			}
		})
	}
}

func TestOptionsSetDefaults(t *testing.T) {
	var o Options
	o.SetDefaults()
	if !slices.Equal(o.Formats, []string{FormatPNG}) {
		t.Errorf("Formats = %v, want [png]", o.Formats)
	}
	if o.Scale != DefaultScale || o.OutputDir != DefaultOutputDir || o.Logger == nil {
		t.Errorf("SetDefaults() left fields unset: %+v", o)
	}
}

func TestNeedsConverter(t *testing.T) {
	tests := []struct {
		opts Options
		want bool
	}{
		{Options{Formats: []string{"png"}}, false},
		{Options{Formats: []string{"png"}, Scale: 1}, false},
		{Options{Formats: []string{"png"}, Scale: 2}, true},
		{Options{Formats: []string{"svg"}, Scale: 2}, false},
		{Options{Formats: []string{"pdf"}}, true},
	}
	for _, tt := range tests {
		if got := tt.opts.NeedsConverter(); got != tt.want {
			t.Errorf("NeedsConverter(%+v) = %v, want %v", tt.opts, got, tt.want)
		}
	}
}

func TestExecute_Default(t *testing.T) {
	r := NewRunner(nil)
	result, err := r.Execute(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.Stats.ClusterCount != 5 || result.Stats.EdgeCount != 5 {
		t.Errorf("Stats = %+v, want 5 clusters and 5 edges", result.Stats)
	}
	png, ok := result.Artifacts[FormatPNG]
	if !ok {
		t.Fatal("Execute() missing png artifact")
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("png artifact is not a PNG")
	}
	if !strings.Contains(result.DOT, "rankdir=LR") {
		t.Error("default diagram should be laid out left to right")
	}
}

func TestExecute_TextFormats(t *testing.T) {
	r := NewRunner(nil)
	result, err := r.Execute(context.Background(), Options{Formats: []string{FormatDOT, FormatMermaid, FormatJSON}, Direction: "TB"})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if got := string(result.Artifacts[FormatDOT]); got != result.DOT || !strings.Contains(got, "rankdir=TB") {
		t.Errorf("dot artifact does not match DOT source with TB direction")
	}
	if !strings.Contains(string(result.Artifacts[FormatMermaid]), "flowchart TB") {
		t.Error("mermaid artifact missing direction override")
	}
	if !strings.Contains(string(result.Artifacts[FormatJSON]), `"Recommendation Generator"`) {
		t.Error("json artifact missing nodes")
	}
}

func TestExecute_Definition(t *testing.T) {
	dir := t.TempDir()
	def := filepath.Join(dir, "mini.yaml")
	content := "name: Mini\nclusters:\n  - name: A\n    nodes:\n      - label: x\n      - label: y\nedges:\n  - {from: x, to: y, label: calls}\n"
	if err := os.WriteFile(def, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(nil)
	result, err := r.Execute(context.Background(), Options{Definition: def, Formats: []string{FormatDOT}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if result.Diagram.Name() != "Mini" || result.Stats.NodeCount != 2 {
		t.Errorf("loaded %q with %d nodes, want Mini with 2", result.Diagram.Name(), result.Stats.NodeCount)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"name": "x", "edges": [{"from": "a", "to": "b", "label": "l"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing file", filepath.Join(dir, "nope.toml"), errors.ErrCodeFileNotFound},
		{"unsupported extension", filepath.Join(dir, "x.xml"), errors.ErrCodeInvalidInput},
		{"dangling edge", bad, errors.ErrCodeInvalidDiagram},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(Options{Definition: tt.path})
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("Load() code = %q (err %v), want %q", got, err, tt.code)
			}
		})
	}
}

func TestExecute_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRunner(nil).Execute(ctx, Options{})
	if err == nil {
		t.Fatal("Execute() with cancelled context should fail")
	}
}

func TestWrite(t *testing.T) {
	r := NewRunner(nil)
	opts := Options{Formats: []string{FormatPNG, FormatDOT}, OutputDir: filepath.Join(t.TempDir(), "out")}
	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	paths, err := r.Write(result, opts)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	want := []string{
		filepath.Join(opts.OutputDir, "system_architecture.png"),
		filepath.Join(opts.OutputDir, "system_architecture.gv"),
	}
	if !slices.Equal(paths, want) {
		t.Errorf("Write() paths = %v, want %v", paths, want)
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("missing output %s: %v", p, err)
		}
	}

	entries, err := os.ReadDir(opts.OutputDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("output dir has %d entries, want 2 (temp files left behind?)", len(entries))
	}
}

func TestWrite_CustomName(t *testing.T) {
	r := NewRunner(nil)
	opts := Options{Formats: []string{FormatMermaid}, OutputDir: t.TempDir(), Name: "arch"}
	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	paths, err := r.Write(result, opts)
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if filepath.Base(paths[0]) != "arch.mmd" {
		t.Errorf("Write() path = %s, want arch.mmd", paths[0])
	}
}

func TestWrite_MissingArtifact(t *testing.T) {
	r := NewRunner(nil)
	result, err := r.Execute(context.Background(), Options{Formats: []string{FormatDOT}})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	_, err = r.Write(result, Options{Formats: []string{FormatJSON}, OutputDir: t.TempDir()})
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Write() error = %v, want INTERNAL_ERROR", err)
	}
}

type hookRecorder struct {
	observability.NoopPipelineHooks
	events []string
	nodes  int
	err    error
}

func (h *hookRecorder) OnLoadStart(_ context.Context, source string) {
	h.events = append(h.events, "load:"+source)
}

func (h *hookRecorder) OnLoadComplete(_ context.Context, _ string, nodes int, _ time.Duration, err error) {
	h.events = append(h.events, "loaded")
	h.nodes = nodes
	h.err = err
}

func (h *hookRecorder) OnRenderStart(_ context.Context, formats []string) {
	h.events = append(h.events, "render:"+strings.Join(formats, ","))
}

func (h *hookRecorder) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	h.events = append(h.events, "rendered")
	h.err = err
}

func TestExecute_Hooks(t *testing.T) {
	rec := &hookRecorder{}
	observability.SetPipelineHooks(rec)
	t.Cleanup(observability.Reset)

	_, err := NewRunner(nil).Execute(context.Background(), Options{Formats: []string{FormatDOT, FormatMermaid}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := []string{"load:builtin", "loaded", "render:dot,mermaid", "rendered"}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
	if rec.nodes != 31 {
		t.Errorf("load hook saw %d nodes, want 31", rec.nodes)
	}
	if rec.err != nil {
		t.Errorf("render hook saw error %v", rec.err)
	}
}

func TestExecute_HooksSeeLoadFailure(t *testing.T) {
	rec := &hookRecorder{}
	observability.SetPipelineHooks(rec)
	t.Cleanup(observability.Reset)

	missing := filepath.Join(t.TempDir(), "missing.toml")
	_, err := NewRunner(nil).Execute(context.Background(), Options{Definition: missing, Formats: []string{FormatDOT}})
	if err == nil {
		t.Fatal("Execute should fail for a missing definition")
	}
	want := []string{"load:" + missing, "loaded"}
	if !slices.Equal(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
	if rec.err == nil {
		t.Error("load hook should receive the error")
	}
}
