package formkit

// Descriptor declares one field: its kind plus the constraints and messages
// that apply to it. Only the attributes relevant to Kind are consulted.
type Descriptor struct {
	Kind Kind
	// KindName is the raw kind name as written in the descriptor source. It is
	// only used to report unsupported kinds.
	KindName string

	// RequiredMessage is reported when the value is missing or of the wrong type.
	RequiredMessage string

	// Min and Max bound string length in runes. nil means unbounded.
	Min        *int
	Max        *int
	MinMessage string
	MaxMessage string

	EmailMessage string
	URLMessage   string
	DateMessage  string

	// Values lists the accepted enum members.
	Values []string

	// HasInitial distinguishes an explicit initial value (which may be nil)
	// from an absent one.
	HasInitial   bool
	InitialValue any

	// Item validates every element of an array.
	Item *Descriptor
	// Fields validates the members of an object.
	Fields Fields
}

// Field is a named descriptor.
type Field struct {
	Name       string
	Descriptor Descriptor
}

// Fields is an ordered set of named descriptors. Order is significant: it is
// the order fields are compiled, constructed, and reported in.
type Fields []Field

// Get returns the descriptor registered under name.
func (fs Fields) Get(name string) (Descriptor, bool) {
	for _, f := range fs {
		if f.Name == name {
			return f.Descriptor, true
		}
	}
	return Descriptor{}, false
}

// Names returns field names in declaration order.
func (fs Fields) Names() []string {
	out := make([]string, len(fs))
	for i, f := range fs {
		out[i] = f.Name
	}
	return out
}

// ---- Constructors ----
//
// These mirror the descriptor language for literal declarations in Go code:
//
//	fields := formkit.Fields{
//		{Name: "name", Descriptor: formkit.String().MinLen(2, "Name too short")},
//		{Name: "email", Descriptor: formkit.Email().Required("Email is required")},
//		{Name: "age", Descriptor: formkit.Number().Initial(18)},
//	}

func String() Descriptor  { return Descriptor{Kind: KindString} }
func Email() Descriptor   { return Descriptor{Kind: KindEmail} }
func Number() Descriptor  { return Descriptor{Kind: KindNumber} }
func Boolean() Descriptor { return Descriptor{Kind: KindBoolean} }
func Date() Descriptor    { return Descriptor{Kind: KindDate} }
func URL() Descriptor     { return Descriptor{Kind: KindURL} }

// Enum declares a field accepting one of values.
func Enum(values ...string) Descriptor { return Descriptor{Kind: KindEnum, Values: values} }

// Array declares a sequence field; item may be nil to accept any element.
func Array(item *Descriptor) Descriptor { return Descriptor{Kind: KindArray, Item: item} }

// ArrayOf declares a sequence whose elements must satisfy item.
func ArrayOf(item Descriptor) Descriptor { return Array(&item) }

// Object declares a record field; fields may be nil to accept any shape.
func Object(fields Fields) Descriptor { return Descriptor{Kind: KindObject, Fields: fields} }

// Required sets the missing/invalid-type message.
func (d Descriptor) Required(msg string) Descriptor {
	d.RequiredMessage = msg
	return d
}

// MinLen sets a minimum string length with an optional message.
func (d Descriptor) MinLen(n int, msg string) Descriptor {
	d.Min = &n
	d.MinMessage = msg
	return d
}

// MaxLen sets a maximum string length with an optional message.
func (d Descriptor) MaxLen(n int, msg string) Descriptor {
	d.Max = &n
	d.MaxMessage = msg
	return d
}

// FormatMessage sets the email, url, or date format failure message,
// depending on Kind.
func (d Descriptor) FormatMessage(msg string) Descriptor {
	switch d.Kind {
	case KindEmail:
		d.EmailMessage = msg
	case KindURL:
		d.URLMessage = msg
	case KindDate:
		d.DateMessage = msg
	}
	return d
}

// Initial sets an explicit initial value. nil is a valid explicit value.
func (d Descriptor) Initial(v any) Descriptor {
	d.HasInitial = true
	d.InitialValue = v
	return d
}
