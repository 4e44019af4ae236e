// Package render turns laid out diagrams into output files.
//
// # Overview
//
// The work is split across subpackages:
//
//   - [sink]: serialises a [scene.Scene] to SVG, JSON, PNG or PDF
//   - [nodelink]: draws the diagram as a plain directed graph via Graphviz
//
// This package holds the PDF conversion shared by both. [ToPDF] shells out
// to rsvg-convert (from librsvg):
//
//	svg := sink.RenderSVG(s)
//	pdf, err := render.ToPDF(svg)
//
// [sink]: github.com/waiteperspectives/eml/pkg/render/sink
// [nodelink]: github.com/waiteperspectives/eml/pkg/render/nodelink
// [scene.Scene]: github.com/waiteperspectives/eml/pkg/scene#Scene
package render
