// Package nodelink renders event models as plain node-link diagrams.
//
// # Overview
//
// The timeline view in render/sink places nodes on fixed rows. This package
// is the alternative: it hands the same nodes and arrows to Graphviz, which
// lays them out as a directed graph with boxes and arrows. Node fills match
// the timeline colors.
//
// # Usage
//
//	dot, err := nodelink.ToDOT(d, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// PNG comes straight from Graphviz; PDF goes through rsvg-convert:
//
//	png, err := nodelink.RenderPNG(ctx, dot)
//	pdf, err := nodelink.RenderPDF(ctx, dot)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process
// rendering. PDF conversion requires librsvg (rsvg-convert).
package nodelink
