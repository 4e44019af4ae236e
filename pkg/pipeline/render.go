package pipeline

import (
	"context"
	"fmt"

	"github.com/waiteperspectives/eml/pkg/diagram"
	"github.com/waiteperspectives/eml/pkg/errors"
	"github.com/waiteperspectives/eml/pkg/render/nodelink"
	"github.com/waiteperspectives/eml/pkg/render/sink"
	"github.com/waiteperspectives/eml/pkg/scene"
)

// Render generates output artifacts for every format in opts.Formats.
// The diagram must be laid out.
func Render(ctx context.Context, d *diagram.Diagram, opts Options) (map[string][]byte, error) {
	return RenderFormats(ctx, d, opts, opts.Formats)
}

// RenderFormats is like [Render] but renders only formats.
func RenderFormats(ctx context.Context, d *diagram.Diagram, opts Options, formats []string) (map[string][]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if opts.IsNodelink() {
		return renderNodelink(ctx, d, opts, formats)
	}
	return renderTimeline(d, opts, formats)
}

// renderTimeline renders the scene of d with the sink emitters.
func renderTimeline(d *diagram.Diagram, opts Options, formats []string) (map[string][]byte, error) {
	s, err := d.Render()
	if err != nil {
		return nil, err
	}

	svgOpts := buildSVGOptions(opts)
	artifacts := make(map[string][]byte, len(formats))

	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(s, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(s, buildPNGOptions(opts)...)
		case FormatPDF:
			data, err = sink.RenderPDF(s, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = renderJSON(s)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported timeline format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderNodelink renders d through Graphviz.
func renderNodelink(ctx context.Context, d *diagram.Diagram, opts Options, formats []string) (map[string][]byte, error) {
	dot, err := DOT(d, opts)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(formats))

	for _, format := range formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

func renderJSON(s scene.Scene) ([]byte, error) {
	data, err := sink.RenderJSON(s, sink.WithJSONPathData())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode scene")
	}
	return data, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(opts Options) []sink.SVGOption {
	var svgOpts []sink.SVGOption
	if opts.Arrowheads {
		svgOpts = append(svgOpts, sink.WithArrowheads())
	}
	return svgOpts
}

// buildPNGOptions builds PNG rendering options.
func buildPNGOptions(opts Options) []sink.PNGOption {
	pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale)}
	if opts.Arrowheads {
		pngOpts = append(pngOpts, sink.WithPNGArrowheads())
	}
	return pngOpts
}
