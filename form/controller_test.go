package form_test

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"

	"github.com/reoring/formkit"
	"github.com/reoring/formkit/form"
)

func newSignup(t *testing.T) *form.Controller {
	t.Helper()
	s, err := formkit.Build(formkit.Fields{
		{Name: "name", Descriptor: formkit.String().MinLen(2, "")},
		{Name: "email", Descriptor: formkit.Email()},
		{Name: "age", Descriptor: formkit.Number().Initial(18)},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return form.New(s, s.InitialValues())
}

func field(t *testing.T, c *form.Controller, name string) form.Field {
	t.Helper()
	f, ok := c.Field(name)
	if !ok {
		t.Fatalf("field %q not found", name)
	}
	return f
}

func TestNew_InitialState(t *testing.T) {
	c := newSignup(t)
	if diff := cmp.Diff(map[string]any{"name": "", "email": "", "age": 18}, c.Data()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if c.HasChanges() {
		t.Fatalf("fresh form must not report changes")
	}
	if c.HasExplicitErrors() {
		t.Fatalf("fresh form must not show errors")
	}
	for _, nf := range c.Fields() {
		if nf.Touched || nf.Error != "" {
			t.Fatalf("field %s starts dirty: %+v", nf.Name, nf.Field)
		}
	}
	if diff := cmp.Diff([]string{"name", "email", "age"}, c.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestBlur_ShowsAndClearsError(t *testing.T) {
	c := newSignup(t)

	c.SetValue("name", "J")
	if f := field(t, c, "name"); !f.Touched || f.Error != "" {
		t.Fatalf("SetValue must touch without validating: %+v", f)
	}
	c.Blur("name")
	if f := field(t, c, "name"); f.Error == "" {
		t.Fatalf("expected a below-minimum error after blur")
	}

	c.SetValue("name", "John")
	if f := field(t, c, "name"); f.Error != "" {
		t.Fatalf("SetValue must clear the error, got %q", f.Error)
	}
	c.Blur("name")
	if f := field(t, c, "name"); f.Error != "" {
		t.Fatalf("expected no error, got %q", f.Error)
	}
}

func TestUnknownFieldsAreIgnored(t *testing.T) {
	c := newSignup(t)
	before := c.Fields()

	c.SetValue("nickname", "x")
	c.SetError("nickname", "x")
	c.Input("nickname")
	c.Blur("nickname")
	if c.ValidateField("nickname") {
		t.Fatalf("unknown field must not validate")
	}
	if _, ok := c.Field("nickname"); ok {
		t.Fatalf("unknown field must not appear")
	}
	if diff := cmp.Diff(before, c.Fields()); diff != "" {
		t.Fatalf("state changed (-before +after):\n%s", diff)
	}
	if c.HasChanges() {
		t.Fatalf("ignored calls must not count as changes")
	}
}

func TestInput_TouchesAndClearsError(t *testing.T) {
	c := newSignup(t)
	c.Blur("email")
	if field(t, c, "email").Error == "" {
		t.Fatalf("empty email should fail on blur")
	}
	c.Input("email")
	f := field(t, c, "email")
	if f.Error != "" || !f.Touched || f.Value != "" {
		t.Fatalf("Input must touch, clear error, and leave the value: %+v", f)
	}
}

func TestValidateField(t *testing.T) {
	c := newSignup(t)
	if c.ValidateField("email") {
		t.Fatalf("empty email must fail")
	}
	if f := field(t, c, "email"); f.Error != "Invalid email" || f.Touched {
		t.Fatalf("ValidateField sets the error without touching: %+v", f)
	}
	c.SetValue("email", "a@b.co")
	if !c.ValidateField("email") {
		t.Fatalf("valid email must pass")
	}
	if field(t, c, "email").Error != "" {
		t.Fatalf("passing validation clears the error")
	}
}

func TestValidateForm(t *testing.T) {
	c := newSignup(t)
	c.SetFormError("server unreachable")

	if c.ValidateForm() {
		t.Fatalf("empty name and email must fail")
	}
	if c.FormError() != "" {
		t.Fatalf("ValidateForm clears the form-level error")
	}
	for _, nf := range c.Fields() {
		if !nf.Touched {
			t.Fatalf("%s must be touched after ValidateForm", nf.Name)
		}
	}
	if field(t, c, "name").Error == "" || field(t, c, "email").Error == "" {
		t.Fatalf("failing fields must carry errors")
	}
	if field(t, c, "age").Error != "" {
		t.Fatalf("age passes and must stay clean")
	}

	c.SetValue("name", "John")
	c.SetValue("email", "john@example.com")
	if !c.ValidateForm() {
		t.Fatalf("expected pass, errors: %v", c.Errors())
	}
	for _, nf := range c.Fields() {
		if !nf.Touched {
			t.Fatalf("%s must be touched", nf.Name)
		}
	}
}

// A field that failed earlier keeps its error through a passing ValidateForm
// unless something else clears it.
func TestValidateForm_KeepsStaleErrorsOfPassingFields(t *testing.T) {
	c := newSignup(t)
	c.SetValue("name", "John")
	c.SetValue("email", "john@example.com")
	c.SetError("name", "taken")

	if !c.ValidateForm() {
		t.Fatalf("values are valid")
	}
	if got := field(t, c, "name").Error; got != "taken" {
		t.Fatalf("expected stale error to survive, got %q", got)
	}
	if !c.HasErrors() || !c.HasExplicitErrors() {
		t.Fatalf("a shown error counts as an error")
	}
}

func TestHasErrors_TrialValidationDoesNotMutate(t *testing.T) {
	c := newSignup(t)
	if c.HasExplicitErrors() {
		t.Fatalf("no errors shown yet")
	}
	if !c.HasErrors() {
		t.Fatalf("empty name/email would fail validation")
	}
	for _, nf := range c.Fields() {
		if nf.Error != "" || nf.Touched {
			t.Fatalf("HasErrors must not mutate %s: %+v", nf.Name, nf.Field)
		}
	}

	c.SetValue("name", "John")
	c.SetValue("email", "john@example.com")
	if c.HasErrors() {
		t.Fatalf("valid values, no shown errors")
	}
}

func TestHasChanges(t *testing.T) {
	s := formkit.MustBuild(formkit.Fields{
		{Name: "age", Descriptor: formkit.Number().Initial(18)},
		{Name: "tags", Descriptor: formkit.Array(nil)},
	})
	c := form.New(s, nil)
	if c.HasChanges() {
		t.Fatalf("fresh form has no changes")
	}

	c.Input("age")
	if !c.HasChanges() {
		t.Fatalf("touched counts as a change")
	}
	c.Reset()
	if c.HasChanges() {
		t.Fatalf("reset clears changes")
	}

	// SetValue back to an equal value is still a change because it touches.
	c.SetValue("tags", []any{})
	if !c.HasChanges() {
		t.Fatalf("SetValue touches")
	}
}

func TestErrors(t *testing.T) {
	c := newSignup(t)
	if diff := cmp.Diff(map[string]string{}, c.Errors()); diff != "" {
		t.Fatalf("expected no errors (-want +got):\n%s", diff)
	}
	c.SetError("name", "Name too short")
	c.SetFormError("Submission failed")
	want := map[string]string{"name": "Name too short", form.FormErrorKey: "Submission failed"}
	if diff := cmp.Diff(want, c.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateErrors(t *testing.T) {
	c := newSignup(t)
	c.SetValue("name", "J")
	c.SetValue("email", "invalid-email")
	got := c.ValidateErrors()
	want := map[string]string{
		"name":  "String must contain at least 2 character(s)",
		"email": "Invalid email",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestReset(t *testing.T) {
	c := newSignup(t)
	c.SetValue("name", "John")
	c.SetValue("age", 30)
	c.Blur("email")
	c.SetFormError("boom")
	c.SetSubmitting(true)

	c.Reset()
	if diff := cmp.Diff(map[string]any{"name": "", "email": "", "age": 18}, c.Data()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if c.HasChanges() || c.HasExplicitErrors() || c.FormError() != "" {
		t.Fatalf("reset must restore a clean form")
	}
	if !c.Submitting() {
		t.Fatalf("reset leaves the submitting flag to the caller")
	}
}

func TestNew_MissingAndNilInitialValues(t *testing.T) {
	s := formkit.MustBuild(formkit.Fields{
		{Name: "a", Descriptor: formkit.String()},
		{Name: "b", Descriptor: formkit.String().Initial(nil)},
		{Name: "c", Descriptor: formkit.Number()},
	})
	c := form.New(s, map[string]any{"b": nil})
	want := map[string]any{"a": "", "b": nil, "c": ""}
	if diff := cmp.Diff(want, c.Data()); diff != "" {
		t.Fatalf("data mismatch (-want +got):\n%s", diff)
	}
	if c.HasChanges() {
		t.Fatalf("construction values are the baseline")
	}
	c.SetValue("a", "x")
	c.SetValue("c", 3)
	c.Reset()
	if diff := cmp.Diff(want, c.Data()); diff != "" {
		t.Fatalf("reset mismatch (-want +got):\n%s", diff)
	}
}

func TestData_IsASnapshot(t *testing.T) {
	s := formkit.MustBuild(formkit.Fields{
		{Name: "profile", Descriptor: formkit.Object(nil)},
	})
	c := form.New(s, nil)
	d := c.Data()
	d["profile"].(map[string]any)["nick"] = "x"
	if c.HasChanges() {
		t.Fatalf("mutating a snapshot must not change the form")
	}
}

func TestAccessorsReturnCopiesOfTypedSlices(t *testing.T) {
	s := formkit.MustBuild(formkit.Fields{
		{Name: "tags", Descriptor: formkit.Array(nil).Initial([]string{"a"})},
	})
	c := form.New(s, nil)

	f, _ := c.Field("tags")
	f.Value.([]string)[0] = "mutated"
	c.Data()["tags"].([]string)[0] = "mutated"
	s.InitialValues()["tags"].([]string)[0] = "mutated"

	c.SetValue("tags", []string{"b"})
	c.Reset()
	want := map[string]any{"tags": []string{"a"}}
	if diff := cmp.Diff(want, c.Data()); diff != "" {
		t.Fatalf("reset mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, s.InitialValues()); diff != "" {
		t.Fatalf("schema initial values changed (-want +got):\n%s", diff)
	}
	if c.HasChanges() {
		t.Fatalf("reset form must not report changes")
	}
}

func TestWithOnChange(t *testing.T) {
	var events []form.Event
	s := formkit.MustBuild(formkit.Fields{{Name: "name", Descriptor: formkit.String()}})
	c := form.New(s, nil, form.WithOnChange(func(e form.Event) { events = append(events, e) }))

	c.SetValue("name", "x")
	c.SetValue("ghost", "x")
	c.Input("name")
	c.Blur("name")
	c.ValidateField("name")
	c.ValidateForm()
	c.Reset()

	want := []form.Event{
		{Op: form.OpSetValue, Field: "name"},
		{Op: form.OpInput, Field: "name"},
		{Op: form.OpBlur, Field: "name"},
		{Op: form.OpValidateField, Field: "name"},
		{Op: form.OpValidateForm},
		{Op: form.OpReset},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	c := form.New(formkit.MustBuild(formkit.Fields{{Name: "name", Descriptor: formkit.String().MinLen(2, "")}}),
		nil, form.WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
	c.Blur("name")
	if !bytes.Contains(buf.Bytes(), []byte(`"field":"name"`)) {
		t.Fatalf("expected a debug line for the failing field, got %s", buf.String())
	}
}
