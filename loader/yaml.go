package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/reoring/formkit/internal/value"
)

// decodeYAML reads a single YAML document as a node tree. Mapping order is
// taken from the yaml.Node content, which keeps source order.
func decodeYAML(data []byte) (*node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("yaml: empty document")
		}
		return nil, err
	}
	var extra yaml.Node
	switch err := dec.Decode(&extra); {
	case err == nil:
		return nil, errors.New("yaml: more than one document")
	case !errors.Is(err, io.EOF):
		return nil, err
	}
	return fromYAML(&doc, 0)
}

// maxAliasDepth bounds alias expansion.
const maxAliasDepth = 64

func fromYAML(y *yaml.Node, depth int) (*node, error) {
	if depth > maxAliasDepth {
		return nil, errors.New("yaml: nesting too deep")
	}
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return &node{}, nil
		}
		return fromYAML(y.Content[0], depth+1)
	case yaml.AliasNode:
		return fromYAML(y.Alias, depth+1)
	case yaml.MappingNode:
		n := &node{kind: nodeObject}
		for i := 0; i+1 < len(y.Content); i += 2 {
			k, v := y.Content[i], y.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("yaml: line %d: mapping keys must be scalars", k.Line)
			}
			if _, dup := n.get(k.Value); dup {
				return nil, fmt.Errorf("yaml: line %d: duplicate key %q", k.Line, k.Value)
			}
			child, err := fromYAML(v, depth+1)
			if err != nil {
				return nil, err
			}
			n.members = append(n.members, pair{key: k.Value, val: child})
		}
		return n, nil
	case yaml.SequenceNode:
		n := &node{kind: nodeArray}
		for _, it := range y.Content {
			child, err := fromYAML(it, depth+1)
			if err != nil {
				return nil, err
			}
			n.items = append(n.items, child)
		}
		return n, nil
	case yaml.ScalarNode:
		var v any
		if err := y.Decode(&v); err != nil {
			return nil, fmt.Errorf("yaml: line %d: %w", y.Line, err)
		}
		// Numbers are normalized to float64 to match the JSON path; timestamps
		// stay as written since date fields hold strings.
		if f, ok := value.ToFloat64(v); ok {
			v = f
		} else if _, ok := v.(time.Time); ok {
			v = y.Value
		}
		return &node{scalar: v}, nil
	default:
		return nil, fmt.Errorf("yaml: line %d: unsupported node kind %d", y.Line, y.Kind)
	}
}
