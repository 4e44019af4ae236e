// Package pkg provides the libraries behind eml, which draws event models
// as timeline diagrams.
//
// # Overview
//
// An event model is a sequence of nodes (jobs, forms, commands, events and
// views) joined by arrows. eml gives every node type its own row and every
// node its own column, in document order, and routes each arrow as a
// quadratic curve between fixed anchor points.
//
// # Architecture
//
// The data flow through eml:
//
//	YAML document
//	     ↓
//	[io] package (ordered entries)
//	     ↓
//	[diagram] package (nodes, arrows, swimlane, layout)
//	     ↓
//	[scene] package (canvas + primitives)
//	     ↓
//	[render/sink] package → SVG/JSON/PNG/PDF
//
// [pipeline] runs these stages with caching ([cache]) and hooks
// ([observability]). [render/nodelink] draws the same diagram as a plain
// Graphviz graph.
//
// # Quick Start
//
//	doc, _ := io.ReadYAML(strings.NewReader(src))
//	d, _ := diagram.FromDocument(doc)
//	s, _ := d.Render()
//	svg := sink.RenderSVG(s)
//
// # Main Packages
//
// [geometry] - Integer points and the line intersection used for arrow
// control points.
//
// [diagram] - The document model and layout: node types, anchors, arrow
// routes, the swimlane and the canvas size.
//
// [scene] - Renderer-neutral primitives (rect, text, line, path).
//
// [errors] - Coded errors shared by every package.
//
// [config] - TOML configuration for the CLI and server.
//
// [buildinfo] - Version information injected at build time.
//
// [io]: github.com/waiteperspectives/eml/pkg/io
// [diagram]: github.com/waiteperspectives/eml/pkg/diagram
// [scene]: github.com/waiteperspectives/eml/pkg/scene
// [render/sink]: github.com/waiteperspectives/eml/pkg/render/sink
// [render/nodelink]: github.com/waiteperspectives/eml/pkg/render/nodelink
// [pipeline]: github.com/waiteperspectives/eml/pkg/pipeline
// [cache]: github.com/waiteperspectives/eml/pkg/cache
// [observability]: github.com/waiteperspectives/eml/pkg/observability
// [geometry]: github.com/waiteperspectives/eml/pkg/geometry
// [errors]: github.com/waiteperspectives/eml/pkg/errors
// [config]: github.com/waiteperspectives/eml/pkg/config
// [buildinfo]: github.com/waiteperspectives/eml/pkg/buildinfo
package pkg
