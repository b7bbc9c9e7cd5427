package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/vtree/tree"
	"github.com/signadot/vtree/value"
)

func load(t *testing.T, doc string) *tree.Node {
	t.Helper()
	v, err := value.FromJSON([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	return tree.Load(v)
}

func TestSelect(t *testing.T) {
	root := load(t, `{"a":[1,5,{"b":"x"}],"c":true}`)
	tests := []struct {
		src  string
		want []string
	}{
		{`Kind == "number" && Value > 2`, []string{"a[1]"}},
		{`Key == "b"`, []string{"a[2].b"}},
		{`Depth == 1`, []string{"a", "c"}},
		{`IsRoot`, []string{""}},
		{`Has("b")`, []string{"a[2]"}},
		{`Get("b") == "x"`, []string{"a[2]"}},
		{`Kind == "array" && Children == 3`, []string{"a"}},
		{`Row == 2`, []string{"a[2]"}},
		{`Path startsWith "a["`, []string{"a[0]", "a[1]", "a[2]", "a[2].b"}},
		{`Value == false`, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			q, err := Compile(tt.src)
			if err != nil {
				t.Fatal(err)
			}
			nodes, err := Select(root, q)
			if err != nil {
				t.Fatal(err)
			}
			got := []string{}
			for _, n := range nodes {
				got = append(got, n.KPath())
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{`Key +`, `1`, `Nope == 1`} {
		if _, err := Compile(src); err == nil {
			t.Errorf("Compile(%q) succeeded", src)
		}
	}
}
