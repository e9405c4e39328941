package formkit

// Kind selects the validation rule family of a field.
type Kind int

const (
	KindInvalid Kind = iota // Unrecognized kind name; compiling it fails with ErrUnsupportedKind.
	KindString
	KindEmail
	KindNumber
	KindBoolean
	KindArray
	KindObject
	KindDate
	KindURL
	KindEnum
)

var kindNames = [...]string{
	KindInvalid: "",
	KindString:  "string",
	KindEmail:   "email",
	KindNumber:  "number",
	KindBoolean: "boolean",
	KindArray:   "array",
	KindObject:  "object",
	KindDate:    "date",
	KindURL:     "url",
	KindEnum:    "enum",
}

// ParseKind maps a descriptor-language name to a Kind. Unknown names yield
// KindInvalid so the failure surfaces at compile time.
func ParseKind(name string) Kind {
	for k, n := range kindNames {
		if k != int(KindInvalid) && n == name {
			return Kind(k)
		}
	}
	return KindInvalid
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) || k == KindInvalid {
		return "invalid"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the nine supported kinds.
func (k Kind) Valid() bool { return k > KindInvalid && int(k) < len(kindNames) }

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler. It never fails; unknown
// names become KindInvalid.
func (k *Kind) UnmarshalText(b []byte) error {
	*k = ParseKind(string(b))
	return nil
}
