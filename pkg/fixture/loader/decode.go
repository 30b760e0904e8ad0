package loader

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/BurntSushi/toml"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"
)

const (
	keyData     = "data"
	keyMetadata = "metadata"
)

// document is a parsed fixture file.
type document struct {
	data     *orderedmap.OrderedMap[string, any]
	metadata *orderedmap.OrderedMap[string, any]
	extra    []string
}

func newDocument() *document {
	return &document{
		data:     orderedmap.New[string, any](),
		metadata: orderedmap.New[string, any](),
	}
}

// section returns the mapping a top-level key fills, or nil for unknown keys.
func (d *document) section(key string) *orderedmap.OrderedMap[string, any] {
	switch key {
	case keyData:
		return d.data
	case keyMetadata:
		return d.metadata
	}
	return nil
}

func decodeYAML(data []byte) (*document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	doc := newDocument()
	if root.Kind == 0 || len(root.Content) == 0 {
		return doc, nil
	}

	top := root.Content[0]
	if isYAMLNull(top) {
		return doc, nil
	}
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level is not a mapping", ErrInvalidDocument)
	}

	for i := 0; i+1 < len(top.Content); i += 2 {
		key, val := top.Content[i].Value, top.Content[i+1]
		dst := doc.section(key)
		if dst == nil {
			doc.extra = append(doc.extra, key)
			continue
		}
		if isYAMLNull(val) {
			continue
		}
		if val.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: %q is not a mapping", ErrInvalidDocument, key)
		}
		for j := 0; j+1 < len(val.Content); j += 2 {
			var v any
			if err := val.Content[j+1].Decode(&v); err != nil {
				return nil, fmt.Errorf("%s.%s: %w", key, val.Content[j].Value, err)
			}
			dst.Set(val.Content[j].Value, v)
		}
	}
	return doc, nil
}

func isYAMLNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func decodeJSON(data []byte) (*document, error) {
	doc := newDocument()
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || isJSONNull(trimmed) {
		return doc, nil
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidDocument)
	}

	top := orderedmap.New[string, json.RawMessage]()
	if err := top.UnmarshalJSON(trimmed); err != nil {
		return nil, err
	}
	for pair := top.Oldest(); pair != nil; pair = pair.Next() {
		dst := doc.section(pair.Key)
		if dst == nil {
			doc.extra = append(doc.extra, pair.Key)
			continue
		}
		raw := bytes.TrimSpace(pair.Value)
		if isJSONNull(raw) {
			continue
		}
		if len(raw) == 0 || raw[0] != '{' {
			return nil, fmt.Errorf("%w: %q is not an object", ErrInvalidDocument, pair.Key)
		}
		if err := dst.UnmarshalJSON(raw); err != nil {
			return nil, fmt.Errorf("%s: %w", pair.Key, err)
		}
	}
	return doc, nil
}

func isJSONNull(b []byte) bool {
	return bytes.Equal(b, []byte("null"))
}

func decodeTOML(data []byte) (*document, error) {
	var m map[string]any
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, err
	}

	doc := newDocument()
	for _, key := range md.Keys() {
		switch len(key) {
		case 1:
			if doc.section(key[0]) == nil {
				doc.extra = append(doc.extra, key[0])
				continue
			}
			if _, ok := m[key[0]].(map[string]any); !ok {
				return nil, fmt.Errorf("%w: %q is not a table", ErrInvalidDocument, key[0])
			}
		case 2:
			dst := doc.section(key[0])
			if dst == nil {
				continue
			}
			table, _ := m[key[0]].(map[string]any)
			dst.Set(key[1], table[key[1]])
		}
	}
	return doc, nil
}
