package formkit

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
	CodeInvalidDate   = "invalid_date"
	CodeCustom        = "custom"
)

// Build-time failures. Compile and Build wrap these in a *DescriptorError, so
// callers match them with errors.Is.
var (
	ErrUnsupportedKind   = errors.New("formkit: unsupported field kind")
	ErrInvalidDescriptor = errors.New("formkit: invalid descriptor")
)

// DescriptorError reports a descriptor that cannot be compiled. Path is a dotted
// location such as "user.email" or "tags[]"; it is empty for a top-level
// descriptor compiled on its own.
type DescriptorError struct {
	Path string
	Kind string
	Err  error
}

func (e *DescriptorError) Error() string {
	b := &strings.Builder{}
	b.WriteString(e.Err.Error())
	if e.Kind != "" {
		fmt.Fprintf(b, " %q", e.Kind)
	}
	if e.Path != "" {
		fmt.Fprintf(b, " at %s", e.Path)
	}
	return b.String()
}

func (e *DescriptorError) Unwrap() error { return e.Err }

// prefixed returns a copy of err with seg prepended to its path.
func prefixed(seg string, err error) error {
	var de *DescriptorError
	if !errors.As(err, &de) {
		return err
	}
	cp := *de
	switch {
	case cp.Path == "":
		cp.Path = seg
	case strings.HasPrefix(cp.Path, "[]"):
		cp.Path = seg + cp.Path
	default:
		cp.Path = seg + "." + cp.Path
	}
	return &cp
}

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer relative to the validated value (for example: /tags/2).
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"min":2, "got":1}) for i18n.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// First returns the first issue's message, or "" when there is none.
func (iss Issues) First() string {
	if len(iss) == 0 {
		return ""
	}
	return iss[0].Message
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Under re-roots issues produced for a child value beneath p.
func (p PathRef) Under(iss Issues) Issues {
	out := make(Issues, len(iss))
	for i, it := range iss {
		it.Path = p.Join(it.Path)
		out[i] = it
	}
	return out
}
