// Package pipeline turns a diagram declaration into output files.
//
// The pipeline has two stages that always run in order, once:
//
//  1. Load: take the built-in System Architecture declaration, or decode a
//     definition file when [Options.Definition] is set
//  2. Render: produce every requested format in memory, then write them
//
// Nothing touches the filesystem until every format has rendered, so a
// failed run leaves no partial output behind.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	opts := pipeline.Options{Formats: []string{pipeline.FormatPNG}}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	paths, err := runner.Write(result, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sysarch/pkg/diagram"
	"github.com/matzehuels/sysarch/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultFormat is the format produced when none is requested.
	DefaultFormat = FormatPNG

	// DefaultScale is the PNG scale factor. At 1 no external converter is needed.
	DefaultScale = 1.0

	// DefaultOutputDir is the directory files are written to.
	DefaultOutputDir = "."
)

// Format constants for output formats.
const (
	FormatPNG     = "png"
	FormatSVG     = "svg"
	FormatPDF     = "pdf"
	FormatDOT     = "dot"
	FormatMermaid = "mermaid"
	FormatJSON    = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:     true,
	FormatSVG:     true,
	FormatPDF:     true,
	FormatDOT:     true,
	FormatMermaid: true,
	FormatJSON:    true,
}

// extensions maps formats to file extensions where they differ.
var extensions = map[string]string{
	FormatDOT:     "gv",
	FormatMermaid: "mmd",
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	if ext, ok := extensions[format]; ok {
		return ext
	}
	return format
}

// IsText reports whether a format is plain text suitable for stdout.
func IsText(format string) bool {
	return format == FormatDOT || format == FormatMermaid || format == FormatJSON
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Load options
	Definition string `json:"definition,omitempty"` // definition file; empty means the built-in diagram

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Direction   string   `json:"direction,omitempty"` // overrides the diagram's direction
	Scale       float64  `json:"scale,omitempty"`
	Transparent bool     `json:"transparent,omitempty"`

	// Write options
	OutputDir string `json:"output_dir,omitempty"`
	Name      string `json:"name,omitempty"` // base file name; defaults to the diagram's filename

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Diagram is the loaded declaration.
	Diagram *diagram.Diagram

	// DOT is the Graphviz source every image format was rendered from.
	DOT string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ClusterCount int
	NodeCount    int
	EdgeCount    int
	LoadTime     time.Duration
	RenderTime   time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: png, svg, pdf, dot, mermaid, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats parses a comma-separated format string into a slice.
// Blank entries and repeats are dropped; an empty string yields the default.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || slices.Contains(out, f) {
			continue
		}
		out = append(out, f)
	}
	if len(out) == 0 {
		return []string{DefaultFormat}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills unset fields. It is idempotent.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.OutputDir == "" {
		o.OutputDir = DefaultOutputDir
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks every field.
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Direction != "" {
		if _, err := diagram.ParseDirection(o.Direction); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "direction")
		}
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if o.Name != "" {
		if err := errors.ValidateOutputName(o.Name); err != nil {
			return err
		}
	}
	return nil
}

// direction returns the parsed override, or "" when none is set.
// Validate has already rejected bad values.
func (o *Options) direction() diagram.Direction {
	dir, _ := diagram.ParseDirection(o.Direction)
	return dir
}

// NeedsConverter reports whether any requested output needs rsvg-convert.
func (o *Options) NeedsConverter() bool {
	if slices.Contains(o.Formats, FormatPDF) {
		return true
	}
	return slices.Contains(o.Formats, FormatPNG) && o.Scale != 0 && o.Scale != DefaultScale
}
