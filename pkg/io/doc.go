// Package io reads and writes event model documents as YAML.
//
// # Format
//
// A document is a YAML sequence. Every item is a mapping with exactly one
// key naming what it declares:
//
//	- form:
//	    id: CustomerForm
//	    text: sign up
//	    fields:
//	      name: Bob
//	      email: bob@example.com
//	- command: {id: AddCustomer}
//	- event: {id: CustomerAdded}
//	- arrow: {begin_at: CustomerForm, end_at: AddCustomer}
//	- flow: [AddCustomer, CustomerAdded]
//
// Node keys are job, form, command, event and view. Arrows use arrow or
// its shorthand =>. A flow is a chain of arrows between consecutive ids.
// Keys are case-insensitive. Order matters: an arrow may only name nodes
// declared above it.
//
// Fields keep their written order. Decoding goes through [yaml.Node]
// rather than Go maps for that reason, and so that errors can report the
// offending line.
//
// # Import
//
// Use [ImportYAML] to read a file, or [ReadYAML] to read from any
// io.Reader. Both return a [diagram.Document]; pass it to
// [diagram.FromDocument] to build and lay out the diagram.
//
// # Export
//
// [WriteYAML] and [ExportYAML] write a document back out. [Demo] is a
// ready-made document used by the demo command and server route.
//
// [yaml.Node]: https://pkg.go.dev/gopkg.in/yaml.v3#Node
// [diagram.Document]: github.com/waiteperspectives/eml/pkg/diagram#Document
// [diagram.FromDocument]: github.com/waiteperspectives/eml/pkg/diagram#FromDocument
package io
