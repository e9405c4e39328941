// Package form keeps the live state of a form built from a formkit.Schema:
// per-field value, error, and touched flag, plus a form-level error and a
// submitting flag.
//
// A Controller is meant for a single owner. It does no locking; callers that
// share one across goroutines must serialize access themselves.
package form

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/reoring/formkit"
	"github.com/reoring/formkit/i18n"
	"github.com/reoring/formkit/internal/value"
)

// FormErrorKey is the reserved Errors key for the form-level error. Field
// names never collide with it in practice; a field literally named "_form"
// would be shadowed in Errors output.
const FormErrorKey = "_form"

// Field is the observable state of one field.
type Field struct {
	Value   any
	Error   string // empty means no error
	Touched bool
}

// NamedField pairs a field's name with its state.
type NamedField struct {
	Name string
	Field
}

type entry struct {
	name    string
	state   Field
	initial any // construction-time value; never handed out without cloning
}

func (e *entry) snapshot() Field {
	f := e.state
	f.Value = value.Clone(f.Value)
	return f
}

// Controller owns the field states of one form.
type Controller struct {
	schema     *formkit.Schema
	entries    []*entry
	index      map[string]*entry
	formError  string
	submitting bool

	log       zerolog.Logger
	listeners []func(Event)
}

// New creates a Controller over s. initial supplies the starting values; nil
// means s.InitialValues(). A schema field missing from initial starts as "".
// The starting values are deep-copied and become the snapshot Reset and
// HasChanges compare against.
func New(s *formkit.Schema, initial map[string]any, opts ...Option) *Controller {
	if initial == nil {
		initial = s.InitialValues()
	}
	c := &Controller{
		schema: s,
		index:  make(map[string]*entry, s.Len()),
		log:    zerolog.Nop(),
	}
	for _, name := range s.Names() {
		start, ok := initial[name]
		if !ok {
			start = ""
		}
		e := &entry{name: name, initial: value.Clone(start)}
		e.state.Value = value.Clone(start)
		c.entries = append(c.entries, e)
		c.index[name] = e
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Schema returns the schema the controller validates against.
func (c *Controller) Schema() *formkit.Schema { return c.schema }

// Names returns field names in schema order.
func (c *Controller) Names() []string { return c.schema.Names() }

// Field returns a copy of one field's state.
func (c *Controller) Field(name string) (Field, bool) {
	e, ok := c.index[name]
	if !ok {
		return Field{}, false
	}
	return e.snapshot(), true
}

// Fields returns a copy of every field's state in schema order.
func (c *Controller) Fields() []NamedField {
	out := make([]NamedField, len(c.entries))
	for i, e := range c.entries {
		out[i] = NamedField{Name: e.name, Field: e.snapshot()}
	}
	return out
}

// FormError returns the form-level error.
func (c *Controller) FormError() string { return c.formError }

// SetFormError sets the form-level error, e.g. after a failed submission.
func (c *Controller) SetFormError(msg string) {
	c.formError = msg
	c.notify(OpSetFormError, "")
}

// Submitting reports the submitting flag.
func (c *Controller) Submitting() bool { return c.submitting }

// SetSubmitting sets the submitting flag. The controller never changes it on
// its own.
func (c *Controller) SetSubmitting(v bool) {
	c.submitting = v
	c.notify(OpSetSubmitting, "")
}

// SetValue stores v, marks the field touched and clears its error. It does
// not validate. Unknown names are ignored.
func (c *Controller) SetValue(name string, v any) {
	e, ok := c.index[name]
	if !ok {
		return
	}
	e.state.Value = v
	e.state.Touched = true
	e.state.Error = ""
	c.notify(OpSetValue, name)
}

// SetError sets a field's error directly, e.g. from a server-side check.
// Unknown names are ignored.
func (c *Controller) SetError(name, msg string) {
	e, ok := c.index[name]
	if !ok {
		return
	}
	e.state.Error = msg
	c.notify(OpSetError, name)
}

// Input records that the user is editing a field whose value was already
// updated elsewhere: it marks the field touched and hides any stale error
// until the next check. Unknown names are ignored.
func (c *Controller) Input(name string) {
	e, ok := c.index[name]
	if !ok {
		return
	}
	e.state.Touched = true
	e.state.Error = ""
	c.notify(OpInput, name)
}

// Blur marks a field touched and validates it; this is where field errors
// become visible. Unknown names are ignored.
func (c *Controller) Blur(name string) {
	e, ok := c.index[name]
	if !ok {
		return
	}
	e.state.Touched = true
	c.validateField(e)
	c.notify(OpBlur, name)
}

// ValidateField checks one field's current value and records the first
// message on failure, or clears the error on success. It returns false for
// unknown fields without changing anything.
func (c *Controller) ValidateField(name string) bool {
	e, ok := c.index[name]
	if !ok {
		return false
	}
	if _, ok := c.schema.Field(name); !ok {
		return false
	}
	okay := c.validateField(e)
	c.notify(OpValidateField, name)
	return okay
}

func (c *Controller) validateField(e *entry) bool {
	v, ok := c.schema.Field(e.name)
	if !ok {
		return false
	}
	r := formkit.SafeCheck(context.Background(), v, e.state.Value)
	if !r.OK {
		e.state.Error = r.Message
		c.log.Debug().Str("field", e.name).Str("error", r.Message).Msg("field invalid")
		return false
	}
	e.state.Error = ""
	return true
}

// ValidateForm clears the form-level error, marks every field touched and
// validates the whole record. Failing fields get their first message.
//
// Fields that pass keep whatever error they already held: a field that failed
// earlier and now passes is not cleared here. Use ValidateField or Blur to
// clear a single field.
func (c *Controller) ValidateForm() bool {
	c.formError = ""
	for _, e := range c.entries {
		e.state.Touched = true
	}
	fe := c.schema.Check(context.Background(), c.Data())
	for _, name := range fe.Names() {
		msg, _ := fe.Get(name)
		if msg == "" {
			msg = i18n.T(i18n.CodeValidationFailed, nil)
		}
		c.index[name].state.Error = msg
	}
	c.log.Debug().Int("failed", fe.Len()).Strs("fields", fe.Names()).Msg("form validated")
	c.notify(OpValidateForm, "")
	return fe.OK()
}

// HasChanges reports whether any field is touched or differs from its
// construction-time value. It is recomputed on every call.
func (c *Controller) HasChanges() bool {
	for _, e := range c.entries {
		if e.state.Touched || !value.Equal(e.state.Value, e.initial) {
			return true
		}
	}
	return false
}

// HasExplicitErrors reports whether any field currently shows an error. It
// does not validate.
func (c *Controller) HasExplicitErrors() bool {
	for _, e := range c.entries {
		if e.state.Error != "" {
			return true
		}
	}
	return false
}

// HasErrors reports whether any field shows an error or the current values
// would fail validation. The trial validation leaves field errors untouched.
func (c *Controller) HasErrors() bool {
	if c.HasExplicitErrors() {
		return true
	}
	return c.schema.Validate(context.Background(), c.Data()) != nil
}

// Data returns a copy of every field's current value keyed by name. It does
// not validate.
func (c *Controller) Data() map[string]any {
	out := make(map[string]any, len(c.entries))
	for _, e := range c.entries {
		out[e.name] = value.Clone(e.state.Value)
	}
	return out
}

// Errors returns every non-empty field error, plus the form-level error under
// FormErrorKey when set. It does not validate.
func (c *Controller) Errors() map[string]string {
	out := map[string]string{}
	for _, e := range c.entries {
		if e.state.Error != "" {
			out[e.name] = e.state.Error
		}
	}
	if c.formError != "" {
		out[FormErrorKey] = c.formError
	}
	return out
}

// ValidateErrors runs ValidateForm and returns Errors.
func (c *Controller) ValidateErrors() map[string]string {
	c.ValidateForm()
	return c.Errors()
}

// Reset restores every field to its construction-time value with no error and
// not touched, and clears the form-level error.
func (c *Controller) Reset() {
	for _, e := range c.entries {
		e.state = Field{Value: value.Clone(e.initial)}
	}
	c.formError = ""
	c.notify(OpReset, "")
}

func (c *Controller) notify(op Op, field string) {
	for _, fn := range c.listeners {
		fn(Event{Op: op, Field: field})
	}
}
