package value_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/formkit/internal/value"
)

func TestClone_TypedContainers(t *testing.T) {
	src := map[string]any{
		"tags":   []string{"a", "b"},
		"labels": map[string]string{"k": "v"},
		"nested": []any{map[string]any{"ids": []int{1, 2}}},
		"pair":   [2]string{"x", "y"},
	}
	got := value.Clone(src).(map[string]any)

	got["tags"].([]string)[0] = "mutated"
	got["labels"].(map[string]string)["k"] = "mutated"
	got["nested"].([]any)[0].(map[string]any)["ids"].([]int)[0] = 99

	want := map[string]any{
		"tags":   []string{"a", "b"},
		"labels": map[string]string{"k": "v"},
		"nested": []any{map[string]any{"ids": []int{1, 2}}},
		"pair":   [2]string{"x", "y"},
	}
	if diff := cmp.Diff(want, src); diff != "" {
		t.Fatalf("source changed through the clone (-want +got):\n%s", diff)
	}
}

func TestClone_KeepsNilAndScalars(t *testing.T) {
	if got := value.Clone([]string(nil)); got.([]string) != nil {
		t.Fatalf("nil slice must stay nil, got %#v", got)
	}
	if got := value.Clone(map[string]any(nil)); got.(map[string]any) != nil {
		t.Fatalf("nil map must stay nil, got %#v", got)
	}
	if got := value.Clone([]any{nil, "x"}); !cmp.Equal([]any{nil, "x"}, got) {
		t.Fatalf("nil elements must survive, got %#v", got)
	}
	for _, v := range []any{nil, "s", 18, 1.5, true} {
		if got := value.Clone(v); got != v {
			t.Fatalf("Clone(%#v) = %#v", v, got)
		}
	}
}

func TestRecord_NilMaps(t *testing.T) {
	if _, ok := value.Record(map[string]any(nil)); ok {
		t.Fatalf("nil map[string]any is not a record")
	}
	if _, ok := value.Record(map[string]string(nil)); ok {
		t.Fatalf("nil map[string]string is not a record")
	}
	rec, ok := value.Record(map[string]string{"a": "b"})
	if !ok || rec["a"] != "b" {
		t.Fatalf("typed map must convert, got %v %v", rec, ok)
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		a, b any
		want bool
	}{
		{18, float64(18), true},
		{[]string{"a"}, []any{"a"}, true},
		{map[string]any{"n": 1}, map[string]int{"n": 1}, true},
		{"", nil, false},
		{[]any{}, []any{"x"}, false},
	}
	for _, tc := range cases {
		if got := value.Equal(tc.a, tc.b); got != tc.want {
			t.Errorf("Equal(%#v, %#v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
