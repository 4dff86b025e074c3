package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sysarch/pkg/architecture"
	"github.com/matzehuels/sysarch/pkg/diagram"
	"github.com/matzehuels/sysarch/pkg/errors"
	"github.com/matzehuels/sysarch/pkg/observability"
	diagramio "github.com/matzehuels/sysarch/pkg/io"
	"github.com/matzehuels/sysarch/pkg/render"
	"github.com/matzehuels/sysarch/pkg/render/mermaid"
	"github.com/matzehuels/sysarch/pkg/render/nodelink"
)

// Runner executes the pipeline. It holds no state besides its logger.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. A nil logger falls back to log.Default().
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Execute loads the diagram and renders every requested format in memory.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	source := opts.Definition
	if source == "" {
		source = "builtin"
	}
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, source)

	loadStart := time.Now()
	d, err := Load(opts)
	loadTime := time.Since(loadStart)
	if err != nil {
		hooks.OnLoadComplete(ctx, source, 0, loadTime, err)
		return nil, err
	}
	hooks.OnLoadComplete(ctx, source, d.NodeCount(), loadTime, nil)
	r.Logger.Debug("loaded diagram",
		"name", d.Name(),
		"clusters", len(d.Clusters()),
		"nodes", d.NodeCount(),
		"edges", d.EdgeCount(),
		"duration", loadTime)

	result, err := r.Render(ctx, d, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.LoadTime = loadTime
	return result, nil
}

// Load returns the diagram selected by opts: the definition file when one
// is set, otherwise the built-in System Architecture.
func Load(opts Options) (*diagram.Diagram, error) {
	if opts.Definition == "" {
		dir := opts.direction()
		if dir == "" {
			dir = diagram.LeftToRight
		}
		d, err := architecture.Build(dir)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "declare %s", architecture.Title)
		}
		return d, nil
	}

	d, err := diagramio.ReadFile(opts.Definition)
	switch {
	case stderrors.Is(err, os.ErrNotExist):
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "definition file %s", opts.Definition)
	case stderrors.Is(err, diagramio.ErrUnsupportedFile):
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "definition file %s", opts.Definition)
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "definition file %s", opts.Definition)
	}
	return d, nil
}

// Render produces every format in opts.Formats for d.
// The first failure aborts the run and no artifacts are returned.
func (r *Runner) Render(ctx context.Context, d *diagram.Diagram, opts Options) (result *Result, err error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	dot := nodelink.ToDOT(d, nodelink.Options{Direction: opts.direction(), Transparent: opts.Transparent})
	result = &Result{
		Diagram:   d,
		DOT:       dot,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		Stats: Stats{
			ClusterCount: len(d.Clusters()),
			NodeCount:    d.NodeCount(),
			EdgeCount:    d.EdgeCount(),
		},
	}

	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		formatStart := time.Now()
		data, err := renderFormat(ctx, d, dot, format, opts)
		if err != nil {
			return nil, renderError(err, format)
		}
		result.Artifacts[format] = data
		r.Logger.Debug("rendered", "format", format, "bytes", len(data), "duration", time.Since(formatStart))
	}

	result.Stats.RenderTime = time.Since(start)
	return result, nil
}

func renderFormat(ctx context.Context, d *diagram.Diagram, dot, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatPNG:
		return nodelink.RenderPNG(ctx, dot, opts.Scale)
	case FormatSVG:
		return nodelink.RenderSVG(ctx, dot)
	case FormatPDF:
		return nodelink.RenderPDF(ctx, dot)
	case FormatDOT:
		return []byte(dot), nil
	case FormatMermaid:
		return []byte(mermaid.Generate(d, mermaid.Options{Direction: opts.direction()})), nil
	case FormatJSON:
		var buf bytes.Buffer
		if err := diagramio.WriteJSON(d, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return nil, ValidateFormat(format)
}

func renderError(err error, format string) error {
	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return err
	case errors.GetCode(err) != "":
		return err
	case stderrors.Is(err, nodelink.ErrBackendUnavailable), stderrors.Is(err, render.ErrConverterMissing):
		return errors.Wrap(errors.ErrCodeBackendUnavailable, err, "render %s", format)
	}
	return errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
}

// Write stores every artifact as "<name>.<ext>" in opts.OutputDir and
// returns the written paths in format order. Each file is written to a
// temporary name first and renamed into place.
func (r *Runner) Write(result *Result, opts Options) ([]string, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	name := opts.Name
	if name == "" {
		name = result.Diagram.Filename()
	}
	if err := errors.ValidateOutputName(name); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory %s", opts.OutputDir)
	}

	var paths []string
	for _, format := range opts.Formats {
		data, ok := result.Artifacts[format]
		if !ok {
			return paths, errors.New(errors.ErrCodeInternal, "no %s artifact to write", format)
		}
		path := filepath.Join(opts.OutputDir, name+"."+Extension(format))
		if err := writeFile(path, data); err != nil {
			return paths, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
		}
		r.Logger.Debug("wrote", "path", path, "bytes", len(data))
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
