// Package pipeline turns a request for a pattern into rendered artifacts.
//
// This package implements the resolve → layout → render pipeline shared by
// every CLI command, so a pattern drawn by "render" looks exactly like the
// same token in "view" or "grid".
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: decode a token, or generate a pattern from a seed or system
//     randomness with optional overrides
//  2. Layout: derive drawing geometry from the descriptor
//  3. Render: write the layout in each requested format
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Token:   "eyJpbnZlcnNlIjp0cnVl...",
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Rendering is cached per token and render option, since a token always
// draws the same picture. Random patterns are cached under their token too,
// which only pays off when the same token is rendered again.
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/circlet/pkg/cache"
	cerrors "github.com/matzehuels/circlet/pkg/errors"
	"github.com/matzehuels/circlet/pkg/location"
	"github.com/matzehuels/circlet/pkg/pattern"
	"github.com/matzehuels/circlet/pkg/render/layout"
	"github.com/matzehuels/circlet/pkg/render/sink"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultColumns is the width of text output in terminal cells.
	DefaultColumns = sink.DefaultColumns
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatText = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatText: true,
}

// GridFormats is the subset of formats a whole wall can be rendered to.
var GridFormats = map[string]bool{
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// Resolution sources reported in [Result.Source].
const (
	SourceToken     = "token"
	SourceSeed      = "seed"
	SourceRandom    = "random"
	SourceOverrides = "overrides"
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Resolve options. Token, when set, wins over Seed and Overrides; it may
	// also be a share URL.
	Token     string            `json:"token,omitempty"`
	Seed      *uint64           `json:"seed,omitempty"`
	Overrides pattern.Overrides `json:"-"`

	// Render options
	Formats     []string        `json:"formats,omitempty"`
	Scale       float64         `json:"scale,omitempty"`
	Columns     int             `json:"columns,omitempty"`
	Palette     pattern.Palette `json:"palette"`
	BaseURL     string          `json:"base_url,omitempty"`
	Transparent bool            `json:"transparent,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Descriptor pattern.Descriptor
	Token      string
	URL        string
	Source     string
	Layout     layout.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ResolveTime time.Duration
	RenderTime  time.Duration
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
		return cerrors.New(cerrors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, txt)", format)
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

// ValidateGridFormats checks that all formats can render a wall.
func ValidateGridFormats(formats []string) error {
	for _, f := range formats {
		if !GridFormats[f] {
			return cerrors.New(cerrors.ErrCodeUnsupported, "format %q is not available for grids (use svg, png or pdf)", f)
		}
	}
	return nil
}

// ParseFormats splits a comma-separated list, trimming blanks.
func ParseFormats(s string) []string {
	var out []string
	for f := range strings.SplitSeq(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale <= 0 || o.Scale > sink.MaxScale {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "scale %.2f out of range (0, %d]", o.Scale, sink.MaxScale)
	}
	if o.Columns < 1 {
		return cerrors.New(cerrors.ErrCodeInvalidInput, "columns must be positive, got %d", o.Columns)
	}
	if err := cerrors.ValidateURL(o.BaseURL); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if o.Palette == (pattern.Palette{}) {
		o.Palette = pattern.DefaultPalette
	}
	if o.BaseURL == "" {
		o.BaseURL = location.DefaultBaseURL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// HasOverrides reports whether any descriptor field is pinned.
func (o *Options) HasOverrides() bool {
	v := o.Overrides
	return v.Inverse != nil || v.Diameter != nil || v.NumCircles != nil || v.NumLines != nil || v.RArrs != nil
}

// ArtifactKeyOpts returns cache key options for one format. Only options
// that change that format's bytes are included.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:  format,
		Palette: fmt.Sprintf("%s,%s,%s", o.Palette.Light, o.Palette.Lighter, o.Palette.Dark),
	}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
		k.Transparent = o.Transparent
	case FormatSVG, FormatPDF:
		k.BaseURL = o.BaseURL
		k.Transparent = o.Transparent
	case FormatJSON:
		k.BaseURL = o.BaseURL
	case FormatText:
		k.Columns = o.Columns
	}
	return k
}
