package value

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestJSON(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{`null`, `null`},
		{` true `, `true`},
		{`1.5`, `1.5`},
		{`"a<b"`, `"a<b"`},
		{`[1, [], {}]`, `[1,[],{}]`},
		{`{"z": 1, "a": {"y": [true], "b": null}}`, `{"a":{"b":null,"y":[true]},"z":1}`},
		{`{"k": 1, "k": 2}`, `{"k":2}`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := FromJSON([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			d, err := v.MarshalJSON()
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.out, string(d)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestJSONInvalid(t *testing.T) {
	v := &Value{}
	if err := v.UnmarshalJSON([]byte(`{"a":`)); !errors.Is(err, ErrJSON) {
		t.Errorf("expected ErrJSON, got %v", err)
	}
	for _, in := range []string{`1e999`, `[1, -1e999]`, `{"a": {"b": 1e400}}`} {
		if _, err := FromJSON([]byte(in)); !errors.Is(err, ErrUnsupported) {
			t.Errorf("FromJSON(%s): expected ErrUnsupported, got %v", in, err)
		}
	}
}
