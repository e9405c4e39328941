// Package loader reads field descriptors and candidate records from JSON and
// YAML documents.
//
// A descriptor document maps field names to descriptors, in the order the
// fields should appear:
//
//	name:
//	  type: string
//	  required: Name is required
//	  min: 2
//	  minError: Name too short
//	tags:
//	  type: array
//	  schema: { type: string }
//	address:
//	  type: object
//	  schema:
//	    street: { type: string }
//	    zip: { type: string, min: 5, max: 5 }
//
// "schema" holds a single descriptor (an object whose "type" is a string) for
// arrays, and a name -> descriptor mapping for objects.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reoring/formkit"
)

// Format selects the document syntax.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFor picks a format from a file extension. Anything other than .yaml
// or .yml is treated as JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// JSON decodes a JSON descriptor document.
func JSON(data []byte) (formkit.Fields, error) { return Descriptors(data, FormatJSON) }

// YAML decodes a YAML descriptor document.
func YAML(data []byte) (formkit.Fields, error) { return Descriptors(data, FormatYAML) }

// Descriptors decodes a descriptor document in the given format. Unknown
// descriptor keys are rejected; unknown kinds are not, so that compiling the
// result reports them as formkit.ErrUnsupportedKind.
func Descriptors(data []byte, f Format) (formkit.Fields, error) {
	n, err := decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	fs, err := fieldsFrom(n, "")
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	return fs, nil
}

// File reads a descriptor document, choosing the format by extension.
func File(path string) (formkit.Fields, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	fs, err := Descriptors(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fs, nil
}

// Schema reads a descriptor document and builds it.
func Schema(path string) (*formkit.Schema, error) {
	fs, err := File(path)
	if err != nil {
		return nil, err
	}
	s, err := formkit.Build(fs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Record decodes a candidate record: a single object whose members become
// field values. Numbers decode as float64, objects as map[string]any, arrays
// as []any.
func Record(data []byte, f Format) (map[string]any, error) {
	n, err := decode(data, f)
	if err != nil {
		return nil, fmt.Errorf("loader: record: %w", err)
	}
	if n.kind != nodeObject {
		return nil, fmt.Errorf("loader: record: expected an object, got %s", n.describe())
	}
	return n.plain().(map[string]any), nil
}

// RecordFile reads a candidate record, choosing the format by extension.
func RecordFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	rec, err := Record(data, FormatFor(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

func decode(data []byte, f Format) (*node, error) {
	if f == FormatYAML {
		return decodeYAML(data)
	}
	return decodeJSON(data)
}
