package pipeline

import (
	"bytes"

	"github.com/waiteperspectives/eml/pkg/diagram"
	emlio "github.com/waiteperspectives/eml/pkg/io"
)

// Parse decodes YAML source into a document. Node types and references are
// not checked here; that happens in [Layout].
func Parse(source []byte) (diagram.Document, error) {
	return emlio.ReadYAML(bytes.NewReader(source))
}
