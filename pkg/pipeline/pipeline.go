// Package pipeline runs the script → replay → layout → render pipeline.
//
// The CLI, the HTTP server and the live watcher all render through a
// [Runner], so caching, logging and format dispatch behave the same
// everywhere.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Parse: decode a YAML or JSON operation script
//  2. Replay: apply the script's steps to a fresh commit graph
//  3. Layout: compute deterministic geometry for the graph
//  4. Render: build render data and drive the requested sinks
//
// Rendered artifacts are cached by script content, resolved template and
// format. When every requested format hits the cache, replay and layout
// are skipped.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	s, err := pipeline.Parse(data)
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Execute(ctx, s, pipeline.Options{
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatText},
//	})
//	if err != nil {
//	    return err
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/commitgraph/pkg/cache"
	"github.com/matzehuels/commitgraph/pkg/errors"
	"github.com/matzehuels/commitgraph/pkg/history"
	"github.com/matzehuels/commitgraph/pkg/render"
	"github.com/matzehuels/commitgraph/pkg/template"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	// DefaultTTL is how long rendered artifacts stay cached.
	DefaultTTL = 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatJSON   = "json"
	FormatSVG    = "svg"
	FormatText   = "txt"
	FormatDOT    = "dot"
	FormatDOTSVG = "dot-svg"
	FormatPDF    = "pdf"
	FormatPNG    = "png"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:   true,
	FormatSVG:    true,
	FormatText:   true,
	FormatDOT:    true,
	FormatDOTSVG: true,
	FormatPDF:    true,
	FormatPNG:    true,
}

// Formats returns the supported formats in sorted order.
func Formats() []string {
	out := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a pipeline run. It supports JSON serialization for
// API requests.
type Options struct {
	// Template replaces the script's preset name when set.
	Template string `json:"template,omitempty"`
	// Overrides are merged over the script's own options.
	Overrides *template.Options `json:"overrides,omitempty"`

	Formats    []string `json:"formats,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
	Background string   `json:"background,omitempty"`
	Refresh    bool     `json:"refresh,omitempty"` // bypass cache reads

	// Runtime options (not serialized)
	BaseDir      string        `json:"-"` // import paths resolve against it
	NoFileImport bool          `json:"-"`
	Logger       *log.Logger   `json:"-"`
	TTL          time.Duration `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run. Graph, Layout and Data
// are nil when every artifact came from the cache.
type Result struct {
	Graph      *history.Graph
	Template   template.Template
	Data       *render.Data
	ScriptHash string
	Artifacts  map[string][]byte
	Stats      Stats
	CacheInfo  CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Commits    int
	Branches   int
	ReplayTime time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(Formats(), ", "))
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

// ValidateTemplate checks that a non-empty preset name exists.
func ValidateTemplate(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := template.Lookup(name); !ok {
		return errors.New(errors.ErrCodeInvalidTemplate,
			"unknown template %q (available: %s)", name, strings.Join(template.Names(), ", "))
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateTemplate(o.Template); err != nil {
		return err
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format, templateHash string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, TemplateHash: templateHash}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
		k.Background = o.Background
	case FormatSVG, FormatPDF:
		k.Background = o.Background
	}
	return k
}
