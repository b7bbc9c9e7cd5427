package value

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromAny(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "null"},
		{"bool", true, "true"},
		{"int", 42, "42"},
		{"uint8", uint8(7), "7"},
		{"float32", float32(1.5), "1.5"},
		{"json number", json.Number("2.25"), "2.25"},
		{"string", "x", `"x"`},
		{"array", []any{1, "a", nil}, `[1,"a",null]`},
		{"object", map[string]any{"b": 2, "a": 1}, `{"a":1,"b":2}`},
		{"yaml keys", map[any]any{1: "one", true: "t"}, `{"1":"one","true":"t"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := FromAny(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, v.GoString()); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromAnyRejects(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"chan", make(chan int)},
		{"struct", struct{}{}},
		{"nan", math.NaN()},
		{"inf", math.Inf(1)},
		{"nested", []any{map[string]any{"a": func() {}}}},
		{"key", map[any]any{[2]int{}: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromAny(tt.in)
			if !errors.Is(err, ErrUnsupported) {
				t.Errorf("expected ErrUnsupported, got %v", err)
			}
		})
	}
}

func TestFromAnyDuplicateKey(t *testing.T) {
	_, err := FromAny(map[any]any{1: "a", "1": "b"})
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestToAny(t *testing.T) {
	in := map[string]any{"a": []any{1.0, "x", nil, true}, "b": map[string]any{}}
	v, err := FromAny(in)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, ToAny(v)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
