// Package formkit compiles declarative field descriptors into validators and
// initial values.
//
//   - Descriptor declares one field: a Kind (string, email, number, boolean,
//     array, object, date, url, enum) plus bounds, messages, enum values, an
//     optional explicit initial value, and nested descriptors for arrays and
//     objects.
//   - Compile turns one Descriptor into a Validator and its initial value.
//   - Build turns an ordered Fields set into a Schema: a compound validator
//     and an initial-values record sharing the same keys.
//   - Validation failures are Issues (JSON Pointer path, code, message), never
//     panics. Malformed descriptors fail at build time with errors wrapping
//     ErrUnsupportedKind or ErrInvalidDescriptor.
//
// The form subpackage keeps per-field state (value, error, touched) on top of
// a Schema; the loader subpackage reads descriptor documents from JSON or YAML.
//
// Typical usage:
//
//	s, err := formkit.Build(formkit.Fields{
//		{Name: "name", Descriptor: formkit.String().MinLen(2, "Name too short")},
//		{Name: "email", Descriptor: formkit.Email().Required("Email is required")},
//		{Name: "age", Descriptor: formkit.Number().Initial(18)},
//	})
//	f := form.New(s, nil)
//	f.SetValue("name", "J")
//	f.Blur("name") // f.Field("name").Error == "Name too short"
package formkit
