package io

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/waiteperspectives/eml/pkg/diagram"
	emlerrors "github.com/waiteperspectives/eml/pkg/errors"
)

// Payload keys.
const (
	keyID      = "id"
	keyText    = "text"
	keyFields  = "fields"
	keyBeginAt = "begin_at"
	keyEndAt   = "end_at"
)

// ReadYAML decodes a YAML document from r.
//
// The input must be a sequence of single-key mappings:
//
//	- job:
//	    id: J1
//	    text: nightly import
//	- command: {id: C1}
//	- arrow: {begin_at: J1, end_at: C1}
//	- flow: [J1, C1]
//
// Node payloads take id, text and an ordered fields mapping. Arrow payloads
// take begin_at and end_at. A flow takes a list of ids. Keys are passed
// through as written. A key that is not a node type fails with
// ErrCodeInvalidNodeType before its payload is read.
//
// Empty input is an empty document. ReadYAML does not close r.
func ReadYAML(r io.Reader) (diagram.Document, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return diagram.Document{}, nil
		}
		return nil, emlerrors.Wrap(emlerrors.ErrCodeInvalidDocument, err, "decode yaml")
	}

	seq := &root
	if seq.Kind == yaml.DocumentNode {
		if len(seq.Content) == 0 {
			return diagram.Document{}, nil
		}
		seq = seq.Content[0]
	}
	if isNull(seq) {
		return diagram.Document{}, nil
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, invalid(seq, "document must be a sequence of entries")
	}

	doc := make(diagram.Document, 0, len(seq.Content))
	for _, item := range seq.Content {
		e, err := readEntry(item)
		if err != nil {
			return nil, err
		}
		doc = append(doc, e)
	}
	return doc, nil
}

// ImportYAML reads the YAML document at path.
func ImportYAML(path string) (diagram.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, emlerrors.Wrap(emlerrors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadYAML(f)
}

func readEntry(item *yaml.Node) (diagram.Entry, error) {
	if item.Kind != yaml.MappingNode || len(item.Content) != 2 {
		return diagram.Entry{}, invalid(item, "entry must be a mapping with exactly one key")
	}
	keyNode, payload := item.Content[0], item.Content[1]
	if keyNode.Kind != yaml.ScalarNode {
		return diagram.Entry{}, invalid(keyNode, "entry key must be a string")
	}

	e := diagram.Entry{Key: keyNode.Value, Line: item.Line}
	switch strings.ToLower(keyNode.Value) {
	case diagram.KeyArrow, diagram.KeyArrowShort:
		return e, readArrow(&e, payload)
	case diagram.KeyFlow:
		return e, readFlow(&e, payload)
	default:
		return e, readNode(&e, payload)
	}
}

func readNode(e *diagram.Entry, payload *yaml.Node) error {
	if _, err := diagram.ParseNodeType(e.Key); err != nil {
		return fmt.Errorf("line %d: %w", e.Line, err)
	}
	if isNull(payload) {
		return nil
	}
	if payload.Kind != yaml.MappingNode {
		return invalid(payload, "%s payload must be a mapping", e.Key)
	}
	return eachPair(payload, func(k string, v *yaml.Node) error {
		switch k {
		case keyID:
			return scalar(v, &e.ID)
		case keyText:
			return scalar(v, &e.Text)
		case keyFields:
			fields, err := readFields(v)
			e.Fields = fields
			return err
		}
		return invalid(v, "unknown %s field %q", e.Key, k)
	})
}

func readFields(v *yaml.Node) ([]diagram.Field, error) {
	if isNull(v) {
		return nil, nil
	}
	if v.Kind != yaml.MappingNode {
		return nil, invalid(v, "fields must be a mapping")
	}
	var fields []diagram.Field
	err := eachPair(v, func(k string, val *yaml.Node) error {
		f := diagram.Field{Name: k}
		if err := scalar(val, &f.Value); err != nil {
			return err
		}
		fields = append(fields, f)
		return nil
	})
	return fields, err
}

func readArrow(e *diagram.Entry, payload *yaml.Node) error {
	if payload.Kind != yaml.MappingNode {
		return invalid(payload, "%s payload must be a mapping", e.Key)
	}
	return eachPair(payload, func(k string, v *yaml.Node) error {
		switch k {
		case keyBeginAt:
			return scalar(v, &e.BeginAt)
		case keyEndAt:
			return scalar(v, &e.EndAt)
		}
		return invalid(v, "unknown arrow field %q", k)
	})
}

func readFlow(e *diagram.Entry, payload *yaml.Node) error {
	if payload.Kind != yaml.SequenceNode {
		return invalid(payload, "flow must be a list of ids")
	}
	e.Flow = make([]string, len(payload.Content))
	for i, v := range payload.Content {
		if err := scalar(v, &e.Flow[i]); err != nil {
			return err
		}
	}
	return nil
}

func eachPair(m *yaml.Node, fn func(key string, v *yaml.Node) error) error {
	for i := 0; i+1 < len(m.Content); i += 2 {
		k := m.Content[i]
		if k.Kind != yaml.ScalarNode {
			return invalid(k, "mapping key must be a string")
		}
		if err := fn(k.Value, m.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func scalar(v *yaml.Node, dst *string) error {
	if isNull(v) {
		*dst = ""
		return nil
	}
	if v.Kind != yaml.ScalarNode {
		return invalid(v, "expected a string")
	}
	*dst = v.Value
	return nil
}

func isNull(v *yaml.Node) bool {
	return v.Kind == yaml.ScalarNode && v.Tag == "!!null"
}

func invalid(n *yaml.Node, format string, args ...any) error {
	return emlerrors.New(emlerrors.ErrCodeInvalidDocument, "line %d: %s", n.Line, fmt.Sprintf(format, args...))
}
