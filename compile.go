package formkit

// Compile turns a descriptor into its validator and initial value. Nested
// descriptors (array items, object members) are compiled recursively.
//
// Failures are build-time errors: an unrecognized kind wraps
// ErrUnsupportedKind, an enum without values (or an otherwise malformed
// descriptor) wraps ErrInvalidDescriptor.
func Compile(d Descriptor) (Validator, any, error) {
	v, err := compile(d)
	if err != nil {
		return nil, nil, err
	}
	initial, _ := InitialValue(d)
	return v, initial, nil
}

func compile(d Descriptor) (Validator, error) {
	b := newBase(d)
	switch d.Kind {
	case KindString:
		if d.Min != nil && d.Max != nil && *d.Min > *d.Max {
			return nil, invalid(d, "min greater than max")
		}
		return stringValidator{base: b, min: d.Min, max: d.Max, minMsg: d.MinMessage, maxMsg: d.MaxMessage}, nil
	case KindEmail:
		return emailValidator{base: b, formatMsg: d.EmailMessage}, nil
	case KindNumber:
		return numberValidator{base: b}, nil
	case KindBoolean:
		return boolValidator{base: b}, nil
	case KindArray:
		if d.Fields != nil {
			return nil, invalid(d, "array takes a single item descriptor, not a field set")
		}
		av := arrayValidator{base: b}
		if d.Item != nil {
			item, err := compile(*d.Item)
			if err != nil {
				return nil, prefixed("[]", err)
			}
			av.item = item
		}
		return av, nil
	case KindObject:
		if d.Item != nil {
			return nil, invalid(d, "object takes a field set, not a single descriptor")
		}
		ov := objectValidator{base: b}
		if d.Fields != nil {
			members, err := compileMembers(d.Fields)
			if err != nil {
				return nil, err
			}
			ov.members = members
			ov.shaped = true
		}
		return ov, nil
	case KindDate:
		return dateValidator{base: b, formatMsg: d.DateMessage}, nil
	case KindURL:
		return urlValidator{base: b, formatMsg: d.URLMessage}, nil
	case KindEnum:
		if len(d.Values) == 0 {
			return nil, invalid(d, "enum requires at least one value")
		}
		set := make(map[string]struct{}, len(d.Values))
		for _, s := range d.Values {
			set[s] = struct{}{}
		}
		return enumValidator{base: b, values: append([]string(nil), d.Values...), set: set}, nil
	default:
		name := d.KindName
		if name == "" && d.Kind != KindInvalid {
			name = d.Kind.String()
		}
		return nil, &DescriptorError{Kind: name, Err: ErrUnsupportedKind}
	}
}

// compileMembers compiles an ordered set of named descriptors. Errors are
// prefixed with the member name.
func compileMembers(fs Fields) ([]member, error) {
	out := make([]member, 0, len(fs))
	seen := make(map[string]struct{}, len(fs))
	for _, f := range fs {
		if _, dup := seen[f.Name]; dup {
			return nil, &DescriptorError{Path: f.Name, Err: wrapDetail(ErrInvalidDescriptor, "duplicate field name")}
		}
		seen[f.Name] = struct{}{}
		v, err := compile(f.Descriptor)
		if err != nil {
			return nil, prefixed(f.Name, err)
		}
		out = append(out, member{name: f.Name, v: v})
	}
	return out, nil
}

func invalid(d Descriptor, detail string) error {
	return &DescriptorError{Kind: d.Kind.String(), Err: wrapDetail(ErrInvalidDescriptor, detail)}
}

// detailError attaches a human-readable reason to a sentinel.
type detailError struct {
	sentinel error
	detail   string
}

func wrapDetail(sentinel error, detail string) error {
	return &detailError{sentinel: sentinel, detail: detail}
}

func (e *detailError) Error() string { return e.sentinel.Error() + ": " + e.detail }
func (e *detailError) Unwrap() error { return e.sentinel }
