package formkit

import (
	"context"
	"fmt"

	"github.com/reoring/formkit/internal/value"
	js "github.com/reoring/formkit/jsonschema"
)

// Schema is the compiled form of a field set: one validator and one initial
// value per field, both keyed by the same names in declaration order. A Schema
// is immutable and safe for concurrent use.
type Schema struct {
	members []member
	index   map[string]int
	initial map[string]any
}

// FieldErrors maps failing field names to their first message, in field order.
type FieldErrors struct {
	names []string
	msgs  map[string]string
}

// Build compiles every descriptor in fields, in order. The first build-time
// failure aborts the build; the returned error names the offending field and
// wraps ErrUnsupportedKind or ErrInvalidDescriptor.
func Build(fields Fields) (*Schema, error) {
	members, err := compileMembers(fields)
	if err != nil {
		return nil, fmt.Errorf("build schema: %w", err)
	}
	s := &Schema{
		members: members,
		index:   make(map[string]int, len(members)),
		initial: make(map[string]any, len(members)),
	}
	for i, f := range fields {
		s.index[f.Name] = i
		// Supported kinds always yield a value; compile rejected the rest.
		s.initial[f.Name], _ = InitialValue(f.Descriptor)
	}
	return s, nil
}

// MustBuild is like Build but panics on failure. It suits package-level
// schema literals whose descriptors are fixed at compile time.
func MustBuild(fields Fields) *Schema {
	s, err := Build(fields)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of fields.
func (s *Schema) Len() int { return len(s.members) }

// Names returns field names in declaration order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.members))
	for i, m := range s.members {
		out[i] = m.name
	}
	return out
}

// Field returns the validator compiled for name.
func (s *Schema) Field(name string) (Validator, bool) {
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.members[i].v, true
}

// InitialValues returns a deep copy of the initial-values record.
func (s *Schema) InitialValues() map[string]any {
	out := make(map[string]any, len(s.initial))
	for k, v := range s.initial {
		out[k] = value.Clone(v)
	}
	return out
}

// Validate checks a full candidate record. Missing fields are validated as nil.
// Each field is checked independently; the returned Issues carry paths rooted
// at the field name (for example /user/email).
func (s *Schema) Validate(ctx context.Context, record map[string]any) error {
	return validateMembers(ctx, s.members, record)
}

// Check runs the compound validation and reduces it to the first message of
// every failing field. An empty result means the record passed.
func (s *Schema) Check(ctx context.Context, record map[string]any) FieldErrors {
	fe := FieldErrors{msgs: map[string]string{}}
	for _, m := range s.members {
		r := SafeCheck(ctx, m.v, record[m.name])
		if r.OK {
			continue
		}
		fe.names = append(fe.names, m.name)
		fe.msgs[m.name] = r.Message
		if IsFailFast(ctx) {
			break
		}
	}
	return fe
}

// JSONSchema projects the schema into a root JSON Schema object document.
func (s *Schema) JSONSchema() (*js.Schema, error) {
	out, err := membersSchema(s.members)
	if err != nil {
		return nil, err
	}
	out.SchemaURI = js.Draft
	return out, nil
}

// OK reports whether no field failed.
func (fe FieldErrors) OK() bool { return len(fe.names) == 0 }

// Len returns the number of failing fields.
func (fe FieldErrors) Len() int { return len(fe.names) }

// Names returns failing field names in field order.
func (fe FieldErrors) Names() []string { return append([]string(nil), fe.names...) }

// Get returns the message for a failing field.
func (fe FieldErrors) Get(name string) (string, bool) {
	msg, ok := fe.msgs[name]
	return msg, ok
}

// Map returns the failures as a plain map.
func (fe FieldErrors) Map() map[string]string {
	out := make(map[string]string, len(fe.msgs))
	for k, v := range fe.msgs {
		out[k] = v
	}
	return out
}
