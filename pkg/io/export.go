package io

import (
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/waiteperspectives/eml/pkg/diagram"
	emlerrors "github.com/waiteperspectives/eml/pkg/errors"
)

// WriteYAML encodes doc as YAML and writes it to w. Entry order and field
// order are preserved, so the output reads back with [ReadYAML] to an
// equal document (apart from source lines).
func WriteYAML(doc diagram.Document, w io.Writer) error {
	root := &yaml.Node{Kind: yaml.SequenceNode}
	for _, e := range doc {
		root.Content = append(root.Content, entryNode(e))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return emlerrors.Wrap(emlerrors.ErrCodeInternal, err, "encode yaml")
	}
	if err := enc.Close(); err != nil {
		return emlerrors.Wrap(emlerrors.ErrCodeInternal, err, "encode yaml")
	}
	return nil
}

// ExportYAML writes doc to a YAML file at path.
// This is a convenience wrapper around [WriteYAML] for file-based output.
func ExportYAML(doc diagram.Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return emlerrors.Wrap(emlerrors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer f.Close()
	return WriteYAML(doc, f)
}

func entryNode(e diagram.Entry) *yaml.Node {
	var payload *yaml.Node
	switch strings.ToLower(e.Key) {
	case diagram.KeyArrow, diagram.KeyArrowShort:
		payload = mapping(yaml.FlowStyle,
			str(keyBeginAt), str(e.BeginAt),
			str(keyEndAt), str(e.EndAt))
	case diagram.KeyFlow:
		payload = &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, id := range e.Flow {
			payload.Content = append(payload.Content, str(id))
		}
	default:
		payload = nodePayload(e)
	}
	return mapping(0, str(e.Key), payload)
}

func nodePayload(e diagram.Entry) *yaml.Node {
	if e.Text == "" && len(e.Fields) == 0 {
		return mapping(yaml.FlowStyle, str(keyID), str(e.ID))
	}

	m := mapping(0, str(keyID), str(e.ID))
	if e.Text != "" {
		text := str(e.Text)
		if strings.Contains(e.Text, "\n") {
			text.Style = yaml.LiteralStyle
		}
		m.Content = append(m.Content, str(keyText), text)
	}
	if len(e.Fields) > 0 {
		fields := mapping(0)
		for _, f := range e.Fields {
			fields.Content = append(fields.Content, str(f.Name), str(f.Value))
		}
		m.Content = append(m.Content, str(keyFields), fields)
	}
	return m
}

func mapping(style yaml.Style, content ...*yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Style: style, Content: content}
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
