package jsonschema

// Draft is the $schema URI emitted on root documents.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
// Keep this struct small and extend incrementally.
type Schema struct {
	// Core
	SchemaURI string `json:"$schema,omitempty"`
	Type      string `json:"type,omitempty"`
	Format    string `json:"format,omitempty"`
	Default   any    `json:"default,omitempty"`
	Enum      []any  `json:"enum,omitempty"`

	// String
	MinLength *int `json:"minLength,omitempty"`
	MaxLength *int `json:"maxLength,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`

	// Keywords outside the vocabulary: x-messages carries the descriptor's
	// custom error texts keyed by issue code.
	Messages map[string]string `json:"x-messages,omitempty"`
}

// SetProperty adds an object member, keeping Required in declaration order.
func (s *Schema) SetProperty(name string, p *Schema, required bool) {
	if s.Properties == nil {
		s.Properties = map[string]*Schema{}
	}
	s.Properties[name] = p
	if required {
		s.Required = append(s.Required, name)
	}
}
