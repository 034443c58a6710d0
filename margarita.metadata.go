package margarita

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Metadata is the ordered key/value mapping extracted from a template's
// front matter. Values are strings or flat string lists; nesting is
// rejected at parse time. Key order follows the source document.
type Metadata struct {
	keys   []string
	values map[string]any
}

// newMetadata creates an empty metadata mapping.
func newMetadata() *Metadata {
	return &Metadata{values: make(map[string]any)}
}

// Keys returns the metadata keys in document order.
func (m *Metadata) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get retrieves a value (string or []string) by key.
func (m *Metadata) Get(key string) (any, bool) {
	val, ok := m.values[key]
	return val, ok
}

// GetString retrieves a scalar value by key.
// Returns empty string when the key is absent or holds a list.
func (m *Metadata) GetString(key string) string {
	val, ok := m.values[key]
	if !ok {
		return ""
	}
	s, _ := val.(string)
	return s
}

// GetList retrieves a list value by key. A scalar is returned as a
// one-element list; an absent key yields nil.
func (m *Metadata) GetList(key string) []string {
	val, ok := m.values[key]
	if !ok {
		return nil
	}
	switch v := val.(type) {
	case []string:
		return v
	case string:
		return []string{v}
	default:
		return nil
	}
}

// Has reports whether the key is present.
func (m *Metadata) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Len returns the number of keys.
func (m *Metadata) Len() int {
	return len(m.keys)
}

func (m *Metadata) set(key string, value any) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// parseMetadata decodes a raw front-matter body into an ordered mapping.
// Decoding goes through yaml.Node so key order survives and value shapes
// can be restricted to scalars and flat sequences.
func parseMetadata(raw string) (*Metadata, error) {
	meta := newMetadata()
	if strings.TrimSpace(raw) == "" {
		return meta, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, NewMetadataError(ErrMsgMetaInvalid, Position{Line: 1, Column: 1}, err)
	}
	if len(doc.Content) == 0 {
		return meta, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, NewMetadataError(ErrMsgMetaNotMapping, nodePosition(root), nil)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := root.Content[i]
		valNode := root.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return nil, NewMetadataError(ErrMsgMetaNotMapping, nodePosition(keyNode), nil)
		}
		value, err := metadataValue(valNode)
		if err != nil {
			return nil, err
		}
		meta.set(keyNode.Value, value)
	}

	return meta, nil
}

// metadataValue converts a value node to a string or flat string list.
func metadataValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value, nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, NewMetadataError(ErrMsgMetaNested, nodePosition(item), nil)
			}
			items = append(items, item.Value)
		}
		return items, nil
	default:
		return nil, NewMetadataError(ErrMsgMetaNested, nodePosition(node), nil)
	}
}

// nodePosition maps a yaml node location to a template position. Line
// numbers are relative to the front-matter body, which starts on line 2
// of the template.
func nodePosition(node *yaml.Node) Position {
	return Position{Line: node.Line + 1, Column: node.Column}
}
