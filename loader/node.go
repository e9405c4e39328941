package loader

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/reoring/formkit"
	"github.com/reoring/formkit/internal/value"
)

// node is a decoded document that keeps object member order, which neither
// map[string]any nor the plain decoders preserve.
type node struct {
	kind    nodeKind
	members []pair  // nodeObject
	items   []*node // nodeArray
	scalar  any     // nodeScalar: string, bool, float64, nil
}

type nodeKind int

const (
	nodeScalar nodeKind = iota
	nodeObject
	nodeArray
)

type pair struct {
	key string
	val *node
}

func (n *node) get(key string) (*node, bool) {
	for _, p := range n.members {
		if p.key == key {
			return p.val, true
		}
	}
	return nil, false
}

// plain converts n into JSON-like Go data: map[string]any, []any, float64,
// string, bool, nil.
func (n *node) plain() any {
	switch n.kind {
	case nodeObject:
		out := make(map[string]any, len(n.members))
		for _, p := range n.members {
			out[p.key] = p.val.plain()
		}
		return out
	case nodeArray:
		out := make([]any, len(n.items))
		for i, it := range n.items {
			out[i] = it.plain()
		}
		return out
	default:
		return n.scalar
	}
}

func (n *node) describe() string {
	switch n.kind {
	case nodeObject:
		return "object"
	case nodeArray:
		return "array"
	}
	switch n.scalar.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	}
	return fmt.Sprintf("%T", n.scalar)
}

// Descriptor document keys.
const (
	keyType         = "type"
	keyRequired     = "required"
	keyMin          = "min"
	keyMinError     = "minError"
	keyMax          = "max"
	keyMaxError     = "maxError"
	keyEmailError   = "emailError"
	keyURLError     = "urlError"
	keyDateError    = "dateError"
	keyValues       = "values"
	keyInitialValue = "initialValue"
	keySchema       = "schema"
)

var knownKeys = map[string]struct{}{
	keyType: {}, keyRequired: {}, keyMin: {}, keyMinError: {}, keyMax: {},
	keyMaxError: {}, keyEmailError: {}, keyURLError: {}, keyDateError: {},
	keyValues: {}, keyInitialValue: {}, keySchema: {},
}

// fieldsFrom reads a name -> descriptor mapping.
func fieldsFrom(n *node, path string) (formkit.Fields, error) {
	if n.kind != nodeObject {
		return nil, fmt.Errorf("%s: expected a mapping of field names to descriptors, got %s", orRoot(path), n.describe())
	}
	out := make(formkit.Fields, 0, len(n.members))
	for _, p := range n.members {
		d, err := descriptorFrom(p.val, join(path, p.key))
		if err != nil {
			return nil, err
		}
		out = append(out, formkit.Field{Name: p.key, Descriptor: d})
	}
	return out, nil
}

func descriptorFrom(n *node, path string) (formkit.Descriptor, error) {
	var d formkit.Descriptor
	if n.kind != nodeObject {
		return d, fmt.Errorf("%s: descriptor must be an object, got %s", path, n.describe())
	}
	var unknown []string
	for _, p := range n.members {
		if _, ok := knownKeys[p.key]; !ok {
			unknown = append(unknown, p.key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return d, fmt.Errorf("%s: unknown descriptor keys: %s", path, strings.Join(unknown, ", "))
	}

	if t, ok := n.get(keyType); ok {
		name, err := str(t, join(path, keyType))
		if err != nil {
			return d, err
		}
		d.Kind = formkit.ParseKind(name)
		d.KindName = name
	}
	for key, dst := range map[string]*string{
		keyRequired:   &d.RequiredMessage,
		keyMinError:   &d.MinMessage,
		keyMaxError:   &d.MaxMessage,
		keyEmailError: &d.EmailMessage,
		keyURLError:   &d.URLMessage,
		keyDateError:  &d.DateMessage,
	} {
		v, ok := n.get(key)
		if !ok {
			continue
		}
		s, err := str(v, join(path, key))
		if err != nil {
			return d, err
		}
		*dst = s
	}
	if v, ok := n.get(keyMin); ok {
		i, err := integer(v, join(path, keyMin))
		if err != nil {
			return d, err
		}
		d.Min = &i
	}
	if v, ok := n.get(keyMax); ok {
		i, err := integer(v, join(path, keyMax))
		if err != nil {
			return d, err
		}
		d.Max = &i
	}
	if v, ok := n.get(keyValues); ok {
		if v.kind != nodeArray {
			return d, fmt.Errorf("%s: expected a list of strings, got %s", join(path, keyValues), v.describe())
		}
		d.Values = make([]string, 0, len(v.items))
		for i, it := range v.items {
			s, err := str(it, fmt.Sprintf("%s[%d]", join(path, keyValues), i))
			if err != nil {
				return d, err
			}
			d.Values = append(d.Values, s)
		}
	}
	if v, ok := n.get(keyInitialValue); ok {
		d.HasInitial = true
		d.InitialValue = v.plain()
	}
	if v, ok := n.get(keySchema); ok {
		if isDescriptor(v) {
			item, err := descriptorFrom(v, join(path, keySchema))
			if err != nil {
				return d, err
			}
			d.Item = &item
		} else {
			fs, err := fieldsFrom(v, join(path, keySchema))
			if err != nil {
				return d, err
			}
			d.Fields = fs
		}
	}
	return d, nil
}

// isDescriptor tells a single nested descriptor from a name -> descriptor
// mapping: a descriptor has a string-valued "type" member.
func isDescriptor(n *node) bool {
	if n.kind != nodeObject {
		return false
	}
	t, ok := n.get(keyType)
	if !ok || t.kind != nodeScalar {
		return false
	}
	_, isStr := t.scalar.(string)
	return isStr
}

func str(n *node, path string) (string, error) {
	if n.kind == nodeScalar {
		if s, ok := n.scalar.(string); ok {
			return s, nil
		}
	}
	return "", fmt.Errorf("%s: expected string, got %s", path, n.describe())
}

func integer(n *node, path string) (int, error) {
	if n.kind == nodeScalar {
		if f, ok := value.ToFloat64(n.scalar); ok && f == math.Trunc(f) && f >= 0 && f <= math.MaxInt32 {
			return int(f), nil
		}
	}
	return 0, fmt.Errorf("%s: expected a non-negative integer, got %s", path, n.describe())
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func orRoot(path string) string {
	if path == "" {
		return "document"
	}
	return path
}
