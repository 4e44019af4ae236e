package pipeline

import (
	"github.com/waiteperspectives/eml/pkg/diagram"
	"github.com/waiteperspectives/eml/pkg/render/nodelink"
)

// Layout builds a diagram from doc and places its nodes on the timeline.
// The nodelink view is drawn from the same diagram, so both visualization
// types share this stage.
func Layout(doc diagram.Document) (*diagram.Diagram, error) {
	return diagram.FromDocument(doc)
}

// DOT returns the Graphviz source used for the nodelink view of d.
func DOT(d *diagram.Diagram, opts Options) (string, error) {
	return nodelink.ToDOT(d, nodelink.Options{Detailed: opts.Detailed})
}
