package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	j "github.com/goccy/go-json"
)

// decodeJSON reads one JSON document through the go-json token stream so that
// object member order survives. The token stream does not enforce ':' and
// ',' so the document is checked with j.Valid first.
func decodeJSON(data []byte) (*node, error) {
	if !j.Valid(data) {
		return nil, errors.New("json: invalid document")
	}
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	n, err := readJSON(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("json: trailing data after document")
	}
	return n, nil
}

func readJSON(dec *j.Decoder) (*node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			n := &node{kind: nodeObject}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := kt.(string)
				if !ok {
					return nil, fmt.Errorf("json: expected object key, got %v", kt)
				}
				if _, dup := n.get(key); dup {
					return nil, fmt.Errorf("json: duplicate key %q", key)
				}
				child, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				n.members = append(n.members, pair{key: key, val: child})
			}
			if _, err := dec.Token(); err != nil { // '}'
				return nil, err
			}
			return n, nil
		case '[':
			n := &node{kind: nodeArray}
			for dec.More() {
				child, err := readJSON(dec)
				if err != nil {
					return nil, err
				}
				n.items = append(n.items, child)
			}
			if _, err := dec.Token(); err != nil { // ']'
				return nil, err
			}
			return n, nil
		default:
			return nil, fmt.Errorf("json: unexpected delimiter %q", rune(v))
		}
	case j.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("json: number %s: %w", v, err)
		}
		return &node{scalar: f}, nil
	case string, bool, nil:
		return &node{scalar: v}, nil
	case float64:
		return &node{scalar: v}, nil
	default:
		return nil, fmt.Errorf("json: unexpected token %T", tok)
	}
}
