package formkit

import (
	"fmt"
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
type PathRef struct {
	parts []string
}

// Root returns the pointer to the validated value itself.
func Root() PathRef { return PathRef{} }

// Field appends an object member segment.
func (p PathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	return PathRef{parts: append(append([]string{}, p.parts...), escapeToken(name))}
}

// Index appends an array index segment.
func (p PathRef) Index(i int) PathRef {
	return PathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

// Pointer renders the path, "/" for the root.
func (p PathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// Join appends a pointer relative to p, such as a child's issue path.
func (p PathRef) Join(ptr string) string {
	if ptr == "" || ptr == "/" {
		return p.Pointer()
	}
	if len(p.parts) == 0 {
		return ptr
	}
	return p.Pointer() + ptr
}

// Issue creates an Issue at p. kv are alternating param keys and values.
func (p PathRef) Issue(code, msg string, kv ...any) Issue {
	var m map[string]any
	if len(kv) > 1 {
		m = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			m[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: m}
}

// escape '~' -> '~0', '/' -> '~1' per RFC6901
func escapeToken(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}
