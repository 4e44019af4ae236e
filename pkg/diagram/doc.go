// Package diagram implements the event-modeling layout engine.
//
// A [Diagram] owns an ordered list of typed nodes (job, form, command,
// event, view) and the arrows between them. [Diagram.Layout] places every
// node in a single left-to-right sequence of equal width columns, choosing
// the row from the node type, and derives the swimlane band from the
// canvas height. [Diagram.Render] reduces the laid out diagram to a
// [scene.Scene] that the emitters in render/sink serialise.
//
// # Grammar
//
// Arrows follow the fixed event-modeling grammar: jobs and forms trigger
// commands, commands emit events, events update views, and views trigger
// jobs or forms. Any other pair is rejected when the arrow is added.
//
// # Documents
//
// [FromDocument] builds and lays out a diagram from a parsed [Document],
// an ordered list of entries in the order they were written:
//
//	doc := diagram.Document{
//	    {Key: "job", ID: "J1"},
//	    {Key: "command", ID: "C1"},
//	    {Key: "arrow", BeginAt: "J1", EndAt: "C1"},
//	}
//	d, err := diagram.FromDocument(doc)
//
// A Diagram is not safe for concurrent use; build, lay out and render it
// from one goroutine.
package diagram
