package form

import "github.com/rs/zerolog"

// Op names the controller operation that produced an Event.
type Op string

const (
	OpSetValue      Op = "set_value"
	OpSetError      Op = "set_error"
	OpInput         Op = "input"
	OpBlur          Op = "blur"
	OpValidateField Op = "validate_field"
	OpValidateForm  Op = "validate_form"
	OpSetFormError  Op = "set_form_error"
	OpSetSubmitting Op = "set_submitting"
	OpReset         Op = "reset"
)

// Event is delivered to change listeners after a mutating operation
// completes. Field is empty for form-wide operations.
type Event struct {
	Op    Op
	Field string
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger routes debug logs about validation outcomes to l. The default
// logger discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithOnChange registers fn to be called synchronously after every mutating
// operation, so a consumer can re-render without caching derived state.
// Multiple listeners run in registration order.
func WithOnChange(fn func(Event)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.listeners = append(c.listeners, fn)
		}
	}
}
