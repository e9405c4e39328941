package formkit

import (
	"context"

	"github.com/reoring/formkit/i18n"
	js "github.com/reoring/formkit/jsonschema"
)

// Validator is a compiled field rule. Validators are immutable and safe for
// concurrent use.
type Validator interface {
	// Validate returns nil when v satisfies the rule, otherwise Issues. It
	// never returns any other error type.
	Validate(ctx context.Context, v any) error

	// Kind reports the descriptor kind the validator was compiled from.
	Kind() Kind

	// JSONSchema projects the rule into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// Result is the outcome of SafeCheck.
type Result struct {
	OK bool
	// Message is the first reported message; empty when OK.
	Message string
	Issues  Issues
}

// SafeCheck runs v through val and reports {OK} or {!OK, Message}. A failing
// validator that reports no message yields the generic "Validation failed".
func SafeCheck(ctx context.Context, val Validator, v any) Result {
	err := val.Validate(ctx, v)
	if err == nil {
		return Result{OK: true}
	}
	iss, _ := AsIssues(err)
	msg := iss.First()
	if msg == "" {
		msg = i18n.T(i18n.CodeValidationFailed, nil)
	}
	return Result{Message: msg, Issues: iss}
}

// Is returns true if v conforms to val.
func Is(ctx context.Context, val Validator, v any) bool {
	return val.Validate(ctx, v) == nil
}

// ---- Validation-time context options ----

type contextKey int

const (
	_ctxKeyFailFast contextKey = iota
)

// WithFailFast returns a child context asking composite validators (objects,
// schemas) to stop at the first failing member.
func WithFailFast(ctx context.Context, enabled bool) context.Context {
	return context.WithValue(ctx, _ctxKeyFailFast, enabled)
}

// IsFailFast reports whether validation should stop on the first issue.
func IsFailFast(ctx context.Context) bool {
	v := ctx.Value(_ctxKeyFailFast)
	b, _ := v.(bool)
	return b
}
