// Package pipeline provides the parse → layout → render pipeline for eml.
//
// The CLI and the HTTP server both run documents through this package so
// that defaults, validation and caching behave the same everywhere.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Decode the YAML source into a [diagram.Document]
//  2. Layout: Build the [diagram.Diagram] and place its nodes
//  3. Render: Generate output in various formats (SVG, PNG, PDF, JSON)
//
// Each stage can be run on its own or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, source, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	doc, err := pipeline.Parse(source)
//	d, err := pipeline.Layout(doc)
//	artifacts, err := pipeline.Render(ctx, d, opts)
package pipeline

import (
	"math"
	"slices"
	"time"

	"github.com/waiteperspectives/eml/pkg/buildinfo"
	"github.com/waiteperspectives/eml/pkg/cache"
	"github.com/waiteperspectives/eml/pkg/diagram"
	"github.com/waiteperspectives/eml/pkg/errors"
)

// Visualization types.
const (
	// VizTypeTimeline is the event-modeling timeline: rows per node type,
	// a swimlane and curved arrows.
	VizTypeTimeline = "timeline"

	// VizTypeNodelink is a Graphviz node-link view of the same diagram.
	VizTypeNodelink = "nodelink"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

const (
	// DefaultVizType is the default visualization type.
	DefaultVizType = VizTypeTimeline

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 1.0
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeTimeline: true,
	VizTypeNodelink: true,
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	Formats    []string `json:"formats,omitempty"`
	VizType    string   `json:"viz_type,omitempty"`
	Arrowheads bool     `json:"arrowheads,omitempty"`
	Detailed   bool     `json:"detailed,omitempty"` // nodelink labels with type, text and fields
	Scale      float64  `json:"scale,omitempty"`    // PNG only

	// NoCache skips both cache lookup and cache writes.
	NoCache bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the parsed source.
	Document diagram.Document

	// Diagram is the laid out diagram.
	Diagram *diagram.Diagram

	// SourceHash is the content hash of the source bytes.
	SourceHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which artifacts came from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	ArrowCount int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for the render stage.
type CacheInfo struct {
	Hits      []string // Formats served from the cache
	RenderHit bool     // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
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

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: timeline, nodelink)", vizType)
	}
	return nil
}

// SetDefaults fills in zero values. It is idempotent.
func (o *Options) SetDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// Validate sets defaults and checks every option.
func (o *Options) Validate() error {
	o.SetDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.IsNodelink() && slices.Contains(o.Formats, FormatJSON) {
		return errors.New(errors.ErrCodeInvalidFormat, "json output is only available for the %s view", VizTypeTimeline)
	}
	if o.Scale < 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid scale %v", o.Scale)
	}
	return nil
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// ArtifactKeyOpts returns cache key options for one rendered format.
// Options that do not affect that format are left out so they do not split
// the cache.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Version: buildinfo.Version,
		Format:  format,
		VizType: o.VizType,
	}
	if o.IsNodelink() {
		k.Detailed = o.Detailed
		return k
	}
	k.Arrowheads = o.Arrowheads && format != FormatJSON
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
