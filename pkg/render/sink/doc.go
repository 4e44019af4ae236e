// Package sink serialises a [scene.Scene] into output formats.
//
//   - SVG: [RenderSVG], written with svgo. The default output holds exactly
//     the scene's primitives; [WithArrowheads] adds a marker definition.
//   - JSON: [RenderJSON], the canvas and primitives in paint order
//   - PNG: [RenderPNG], rasterised in-process with gg
//   - PDF: [RenderPDF], SVG converted by rsvg-convert
//
// Basic usage:
//
//	s, err := d.Render()
//	svg := sink.RenderSVG(s, sink.WithArrowheads())
//
// Every renderer is a pure function of its scene and options and is safe
// to call concurrently.
//
// [scene.Scene]: github.com/waiteperspectives/eml/pkg/scene#Scene
package sink
