package formkit

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/reoring/formkit/i18n"
	"github.com/reoring/formkit/internal/value"
	js "github.com/reoring/formkit/jsonschema"
)

// formats checks email and URL syntax. validator.Validate caches struct
// metadata and is safe for concurrent use.
var formats = validator.New()

// base carries what every kind shares: the kind itself, the type-failure
// message, and the explicit initial value exported as a JSON Schema default.
type base struct {
	kind     Kind
	required string
	def      any
}

func newBase(d Descriptor) base {
	b := base{kind: d.Kind, required: d.RequiredMessage}
	if d.HasInitial {
		b.def = value.Clone(d.InitialValue)
	}
	return b
}

func (b base) Kind() Kind { return b.kind }

// typeIssue reports a value of the wrong shape. A custom required message
// wins; otherwise nil reads as "Required" and anything else as a type mismatch.
func (b base) typeIssue(expected string, v any) Issues {
	if v == nil {
		return Issues{Root().Issue(CodeRequired, orDefault(b.required, CodeRequired, nil), "expected", expected)}
	}
	if b.required != "" {
		return Issues{Root().Issue(CodeInvalidType, b.required, "expected", expected)}
	}
	got := typeName(v)
	msg := i18n.T(CodeInvalidType, map[string]string{"expected": expected, "received": got})
	return Issues{Root().Issue(CodeInvalidType, msg, "expected", expected, "received", got)}
}

func (b base) schema(s *js.Schema) *js.Schema {
	if b.def != nil {
		s.Default = value.Clone(b.def)
	}
	if b.required != "" {
		setMessage(s, CodeInvalidType, b.required)
	}
	return s
}

func setMessage(s *js.Schema, code, msg string) {
	if msg == "" {
		return
	}
	if s.Messages == nil {
		s.Messages = map[string]string{}
	}
	s.Messages[code] = msg
}

// orDefault returns custom, or the translated message for code.
func orDefault(custom, code string, data map[string]string) string {
	if custom != "" {
		return custom
	}
	return i18n.T(code, data)
}

// ---- string ----

type stringValidator struct {
	base
	min, max       *int
	minMsg, maxMsg string
}

func (s stringValidator) Validate(_ context.Context, v any) error {
	str, ok := v.(string)
	if !ok {
		return s.typeIssue("string", v)
	}
	n := utf8.RuneCountInString(str)
	if s.min != nil && n < *s.min {
		msg := orDefault(s.minMsg, CodeTooShort, map[string]string{"min": strconv.Itoa(*s.min)})
		return Issues{Root().Issue(CodeTooShort, msg, "min", *s.min, "got", n)}
	}
	if s.max != nil && n > *s.max {
		msg := orDefault(s.maxMsg, CodeTooLong, map[string]string{"max": strconv.Itoa(*s.max)})
		return Issues{Root().Issue(CodeTooLong, msg, "max", *s.max, "got", n)}
	}
	return nil
}

func (s stringValidator) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "string"}
	if s.min != nil {
		n := *s.min
		out.MinLength = &n
		setMessage(out, CodeTooShort, s.minMsg)
	}
	if s.max != nil {
		n := *s.max
		out.MaxLength = &n
		setMessage(out, CodeTooLong, s.maxMsg)
	}
	return s.schema(out), nil
}

// ---- email / url ----

type emailValidator struct {
	base
	formatMsg string
}

func (e emailValidator) Validate(_ context.Context, v any) error {
	str, ok := v.(string)
	if !ok {
		return e.typeIssue("string", v)
	}
	if formats.Var(str, "email") != nil {
		msg := orDefault(e.formatMsg, CodeInvalidFormat, map[string]string{"format": "email"})
		return Issues{Root().Issue(CodeInvalidFormat, msg, "format", "email")}
	}
	return nil
}

func (e emailValidator) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "string", Format: "email"}
	setMessage(out, CodeInvalidFormat, e.formatMsg)
	return e.schema(out), nil
}

type urlValidator struct {
	base
	formatMsg string
}

func (u urlValidator) Validate(_ context.Context, v any) error {
	str, ok := v.(string)
	if !ok {
		return u.typeIssue("string", v)
	}
	if formats.Var(str, "url") != nil {
		msg := orDefault(u.formatMsg, CodeInvalidFormat, map[string]string{"format": "url"})
		return Issues{Root().Issue(CodeInvalidFormat, msg, "format", "url")}
	}
	return nil
}

func (u urlValidator) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "string", Format: "uri"}
	setMessage(out, CodeInvalidFormat, u.formatMsg)
	return u.schema(out), nil
}

// ---- number / boolean ----

type numberValidator struct{ base }

func (n numberValidator) Validate(_ context.Context, v any) error {
	if value.IsNumber(v) {
		return nil
	}
	msg := orDefault(n.required, "invalid_number", nil)
	return Issues{Root().Issue(CodeInvalidType, msg, "expected", "number", "received", typeName(v))}
}

func (n numberValidator) JSONSchema() (*js.Schema, error) {
	return n.schema(&js.Schema{Type: "number"}), nil
}

type boolValidator struct{ base }

func (b boolValidator) Validate(_ context.Context, v any) error {
	if _, ok := v.(bool); ok {
		return nil
	}
	return b.typeIssue("boolean", v)
}

func (b boolValidator) JSONSchema() (*js.Schema, error) {
	return b.schema(&js.Schema{Type: "boolean"}), nil
}

// ---- date ----

// dateLayouts are tried in order; the first successful parse wins.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
	"2006-01",
	"2006",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"01/02/2006",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC850,
	time.ANSIC,
	"Mon Jan 02 2006",
	"Mon Jan 2 2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// parseDate reports whether s is a calendar date in one of dateLayouts.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type dateValidator struct {
	base
	formatMsg string
}

func (d dateValidator) Validate(_ context.Context, v any) error {
	str, ok := v.(string)
	if !ok || str == "" {
		msg := orDefault(d.required, CodeInvalidDate, nil)
		if !ok {
			return Issues{Root().Issue(CodeInvalidType, msg, "expected", "string", "received", typeName(v))}
		}
		return Issues{Root().Issue(CodeTooShort, msg, "min", 1, "got", 0)}
	}
	if _, ok := parseDate(str); !ok {
		msg := orDefault(d.formatMsg, CodeInvalidDate, nil)
		return Issues{Root().Issue(CodeInvalidDate, msg, "format", "date")}
	}
	return nil
}

func (d dateValidator) JSONSchema() (*js.Schema, error) {
	one := 1
	out := &js.Schema{Type: "string", Format: "date", MinLength: &one}
	setMessage(out, CodeInvalidDate, d.formatMsg)
	return d.schema(out), nil
}

// ---- enum ----

type enumValidator struct {
	base
	values []string
	set    map[string]struct{}
}

func (e enumValidator) expected() string {
	quoted := make([]string, len(e.values))
	for i, s := range e.values {
		quoted[i] = "'" + s + "'"
	}
	return strings.Join(quoted, " | ")
}

func (e enumValidator) Validate(_ context.Context, v any) error {
	str, ok := v.(string)
	if !ok {
		return e.typeIssue(e.expected(), v)
	}
	if _, ok := e.set[str]; ok {
		return nil
	}
	msg := orDefault(e.required, CodeInvalidEnum, map[string]string{"expected": e.expected(), "received": str})
	return Issues{Root().Issue(CodeInvalidEnum, msg, "options", append([]string(nil), e.values...), "received", str)}
}

func (e enumValidator) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "string", Enum: make([]any, len(e.values))}
	for i, s := range e.values {
		out.Enum[i] = s
	}
	return e.schema(out), nil
}

// ---- array ----

type arrayValidator struct {
	base
	item Validator // nil accepts any element
}

func (a arrayValidator) Validate(ctx context.Context, v any) error {
	if !value.IsSequence(v) {
		return a.typeIssue("array", v)
	}
	if a.item == nil {
		return nil
	}
	for i, el := range value.Elements(v) {
		err := a.item.Validate(ctx, el)
		if err == nil {
			continue
		}
		iss, ok := AsIssues(err)
		if !ok || len(iss) == 0 {
			iss = Issues{Root().Issue(CodeCustom, i18n.T(i18n.CodeValidationFailed, nil))}
		}
		return Root().Index(i).Under(iss)
	}
	return nil
}

func (a arrayValidator) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "array"}
	if a.item != nil {
		items, err := a.item.JSONSchema()
		if err != nil {
			return nil, err
		}
		out.Items = items
	}
	return a.schema(out), nil
}

// ---- object ----

type member struct {
	name string
	v    Validator
}

type objectValidator struct {
	base
	members []member
	shaped  bool // members declared; otherwise any record is accepted
}

func (o objectValidator) Validate(ctx context.Context, v any) error {
	rec, ok := value.Record(v)
	if !ok {
		return o.typeIssue("object", v)
	}
	return validateMembers(ctx, o.members, rec)
}

// validateMembers checks every member of rec against its validator. A missing
// member is validated as nil. Issues are re-rooted under the member name and
// reported in declaration order.
func validateMembers(ctx context.Context, members []member, rec map[string]any) error {
	var out Issues
	for _, m := range members {
		err := m.v.Validate(ctx, rec[m.name])
		if err == nil {
			continue
		}
		iss, ok := AsIssues(err)
		if !ok || len(iss) == 0 {
			iss = Issues{Root().Issue(CodeCustom, i18n.T(i18n.CodeValidationFailed, nil))}
		}
		out = append(out, Root().Field(m.name).Under(iss)...)
		if IsFailFast(ctx) {
			break
		}
	}
	if len(out) > 0 {
		return out
	}
	return nil
}

func membersSchema(members []member) (*js.Schema, error) {
	out := &js.Schema{Type: "object"}
	for _, m := range members {
		p, err := m.v.JSONSchema()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", m.name, err)
		}
		out.SetProperty(m.name, p, true)
	}
	return out, nil
}

func (o objectValidator) JSONSchema() (*js.Schema, error) {
	if !o.shaped {
		return o.schema(&js.Schema{Type: "object"}), nil
	}
	out, err := membersSchema(o.members)
	if err != nil {
		return nil, err
	}
	return o.schema(out), nil
}

// typeName names v's shape in descriptor terms.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	}
	switch {
	case value.IsNumber(v):
		return "number"
	case value.IsSequence(v):
		return "array"
	}
	if _, ok := value.Record(v); ok {
		return "object"
	}
	if _, ok := value.ToFloat64(v); ok {
		return "nan"
	}
	return fmt.Sprintf("%T", v)
}
