package model

import (
	"errors"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/vtree/debug"
	"github.com/signadot/vtree/tree"
	"github.com/signadot/vtree/typeset"
	"github.com/signadot/vtree/value"
)

func TestMain(m *testing.M) {
	debug.SetCheck(true)
	os.Exit(m.Run())
}

// recorder checks that notifications nest properly and that the tree is
// consistent whenever an observer runs.
type recorder struct {
	t       *testing.T
	m       *Model
	pending []string
	changes []string
}

func (r *recorder) WillChange(c Change) {
	r.check(c)
	r.pending = append(r.pending, c.String())
}

func (r *recorder) DidChange(c Change) {
	r.check(c)
	s := c.String()
	if len(r.pending) == 0 || r.pending[len(r.pending)-1] != s {
		r.t.Fatalf("did %s without matching will, pending %v", s, r.pending)
	}
	r.pending = r.pending[:len(r.pending)-1]
	r.changes = append(r.changes, s)
}

func (r *recorder) check(c Change) {
	r.t.Helper()
	if err := r.m.Root().Check(); err != nil {
		r.t.Fatalf("%s: %v", c, err)
	}
}

func (r *recorder) take() []string {
	res := r.changes
	r.changes = nil
	return res
}

func mustJSON(t *testing.T, s string) *value.Value {
	t.Helper()
	v, err := value.FromJSON([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func newModel(t *testing.T, doc string, opts ...Option) (*Model, *recorder) {
	t.Helper()
	r := &recorder{t: t}
	m := New(append(opts, WithObserver(r))...)
	r.m = m
	m.Load(mustJSON(t, doc))
	r.take()
	return m, r
}

func jsonOf(t *testing.T, m *Model) string {
	t.Helper()
	d, err := m.Value().MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}

func resolve(t *testing.T, m *Model, p string) *tree.Node {
	t.Helper()
	n, err := m.Resolve(p)
	if err != nil {
		t.Fatal(err)
	}
	return n
}

func expectChanges(t *testing.T, r *recorder, want ...string) {
	t.Helper()
	if want == nil {
		want = []string{}
	}
	got := r.take()
	if got == nil {
		got = []string{}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("changes (-want +got):\n%s", diff)
	}
}

func expectJSON(t *testing.T, m *Model, want string) {
	t.Helper()
	if got := jsonOf(t, m); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestLoad(t *testing.T) {
	m, r := newModel(t, `{"a":[1]}`)
	old := m.Root()
	a := resolve(t, m, "a")
	m.Load(mustJSON(t, `[true]`))
	expectChanges(t, r, "reset")
	if old.Valid() || a.Valid() {
		t.Error("old tree still valid")
	}
	if m.RowCount(nil) != 1 || m.ColumnCount() != 3 {
		t.Errorf("rows %d columns %d", m.RowCount(nil), m.ColumnCount())
	}
	if err := m.LoadAny(map[string]any{"b": []any{1, "x"}}); err != nil {
		t.Fatal(err)
	}
	expectJSON(t, m, `{"b":[1,"x"]}`)
	if err := m.LoadAny(struct{}{}); !errors.Is(err, value.ErrUnsupported) {
		t.Errorf("LoadAny(struct): %v", err)
	}
	m.Reset()
	expectJSON(t, m, `null`)
	expectChanges(t, r, "reset", "reset")
}

func TestObserveCancel(t *testing.T) {
	m, r := newModel(t, `[]`)
	var n int
	cancel := m.Observe(ObserverFuncs{Did: func(Change) { n++ }})
	if err := m.Insert(nil, 0, 2, nil); err != nil {
		t.Fatal(err)
	}
	cancel()
	if err := m.Insert(nil, 0, 1, nil); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("cancelled observer saw %d changes", n)
	}
	if got := len(r.take()); got != 3 {
		t.Errorf("recorder saw %d changes", got)
	}
}

func TestIndex(t *testing.T) {
	m, _ := newModel(t, `{"a":[1,2]}`)
	a, err := m.Index(nil, 0)
	if err != nil || a.Key() != "a" {
		t.Fatalf("Index(nil, 0) = %v, %v", a, err)
	}
	if _, err := m.Index(a, 2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Index(a, 2): %v", err)
	}
	other := New()
	if _, err := other.Index(a, 0); !errors.Is(err, ErrDetached) {
		t.Errorf("foreign node: %v", err)
	}
	if m.RowCount(a) != 2 || other.RowCount(a) != 0 {
		t.Error("RowCount")
	}
}

func TestInsertArray(t *testing.T) {
	m, r := newModel(t, `[1,2]`)
	if err := m.Insert(nil, 1, 2, value.FromString("x")); err != nil {
		t.Fatal(err)
	}
	expectJSON(t, m, `[1,"x","x",2]`)
	expectChanges(t, r, "insert <root>[1:1]", "insert <root>[2:2]")
	if m.Value().Values[1] == m.Value().Values[2] {
		t.Error("inserted rows share a value")
	}
	if err := m.Insert(nil, 4, 1, nil); err != nil {
		t.Fatal(err)
	}
	expectJSON(t, m, `[1,"x","x",2,null]`)
	if err := m.Insert(nil, 6, 1, nil); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("insert past end: %v", err)
	}
	one := resolve(t, m, "[0]")
	if err := m.Insert(one, 0, 1, nil); !errors.Is(err, ErrKind) {
		t.Errorf("insert under scalar: %v", err)
	}
}

func TestInsertObjectKeys(t *testing.T) {
	m, r := newModel(t, `{"a1":1}`)
	if err := m.Insert(nil, 1, 2, nil); err != nil {
		t.Fatal(err)
	}
	expectJSON(t, m, `{"a0":null,"a1":1,"a2":null}`)
	expectChanges(t, r, "insert <root>[0:0]", "insert <root>[2:2]")

	m, r = newModel(t, `{"1":true}`)
	if err := m.Insert(nil, 0, 2, value.FromInt(7)); err != nil {
		t.Fatal(err)
	}
	expectJSON(t, m, `{"0":7,"1":true,"2":7}`)
	expectChanges(t, r, "insert <root>[0:0]", "insert <root>[2:2]")
}

func TestRemove(t *testing.T) {
	m, r := newModel(t, `[1,2,3,4]`)
	three := resolve(t, m, "[2]")
	if err := m.Remove(nil, 1, 2); err != nil {
		t.Fatal(err)
	}
	expectJSON(t, m, `[1,4]`)
	expectChanges(t, r, "remove <root>[1:1]", "remove <root>[1:1]")
	if three.Valid() {
		t.Error("removed node still valid")
	}
	if err := m.Remove(nil, 1, 2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("remove past end: %v", err)
	}
	if err := m.Remove(nil, 0, -1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("negative count: %v", err)
	}
	m, _ = newModel(t, `{"a":1,"b":2,"c":3}`)
	if err := m.Remove(nil, 0, 2); err != nil {
		t.Fatal(err)
	}
	expectJSON(t, m, `{"c":3}`)
}

func TestMoveWithinArray(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		src, count int
		dst        int
		want       string
		changes    []string
	}{
		{
			name: "first to end", doc: `[10,20,30]`, src: 0, count: 1, dst: 3,
			want:    `[20,30,10]`,
			changes: []string{"move <root>[0:0] -> <root>[3]"},
		},
		{
			name: "forward block", doc: `["a","b","c","d","e"]`, src: 0, count: 2, dst: 4,
			want:    `["c","d","a","b","e"]`,
			changes: []string{"move <root>[0:0] -> <root>[4]", "move <root>[0:0] -> <root>[4]"},
		},
		{
			name: "backward block", doc: `["a","b","c","d","e"]`, src: 3, count: 2, dst: 1,
			want:    `["a","d","e","b","c"]`,
			changes: []string{"move <root>[3:3] -> <root>[1]", "move <root>[4:4] -> <root>[2]"},
		},
		{
			name: "onto itself", doc: `[1,2,3]`, src: 1, count: 1, dst: 2,
			want: `[1,2,3]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, r := newModel(t, tt.doc)
			moved := m.Root().Child(tt.src)
			val := moved.Value()
			if err := m.Move(nil, tt.src, tt.count, nil, tt.dst); err != nil {
				t.Fatal(err)
			}
			expectJSON(t, m, tt.want)
			expectChanges(t, r, tt.changes...)
			if !moved.Valid() || moved.Value() != val {
				t.Error("moved node lost its value")
			}
		})
	}
}

func TestMoveArrayToObject(t *testing.T) {
	m, r := newModel(t, `{"arr":[1,2],"obj":{}}`)
	arr, obj := resolve(t, m, "arr"), resolve(t, m, "obj")
	for range 2 {
		if err := m.Move(arr, 0, 1, obj, 0); err != nil {
			t.Fatal(err)
		}
	}
	expectJSON(t, m, `{"arr":[],"obj":{"0":1,"1":2}}`)
	expectChanges(t, r, "move arr[0:0] -> obj[0]", "move arr[0:0] -> obj[1]")
}

func TestMoveBetweenObjects(t *testing.T) {
	m, r := newModel(t, `{"a":{"x":2,"x1":1},"b":{"x":0}}`)
	a, b := resolve(t, m, "a"), resolve(t, m, "b")
	if err := m.Move(a, 0, 2, b, 0); err != nil {
		t.Fatal(err)
	}
	expectJSON(t, m, `{"a":{},"b":{"x":0,"x1":2,"x2":1}}`)
	expectChanges(t, r, "move a[0:0] -> b[1]", "move a[0:0] -> b[2]")

	if err := m.Move(b, 0, 1, b, 2); err != nil {
		t.Fatal(err)
	}
	expectChanges(t, r)
}

func TestMoveObjectToArray(t *testing.T) {
	m, r := newModel(t, `{"a":[0],"o":{"k":1,"l":2}}`)
	a, o := resolve(t, m, "a"), resolve(t, m, "o")
	if err := m.Move(o, 0, 2, a, 1); err != nil {
		t.Fatal(err)
	}
	expectJSON(t, m, `{"a":[0,1,2],"o":{}}`)
	expectChanges(t, r, "move o[0:0] -> a[1]", "move o[0:0] -> a[2]")
}

func TestMoveErrors(t *testing.T) {
	m, r := newModel(t, `{"a":{"b":[]},"c":1}`)
	b := resolve(t, m, "a.b")
	if err := m.Move(nil, 0, 1, b, 0); !errors.Is(err, ErrCycle) {
		t.Errorf("move into own subtree: %v", err)
	}
	if err := m.Move(nil, 1, 1, resolve(t, m, "c"), 0); !errors.Is(err, ErrKind) {
		t.Errorf("move into scalar: %v", err)
	}
	if err := m.Move(nil, 1, 2, b, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("count past end: %v", err)
	}
	if err := m.Move(nil, 1, 1, b, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("destination past end: %v", err)
	}
	expectChanges(t, r)
}

func TestMoveToKey(t *testing.T) {
	m, r := newModel(t, `{"a":[1,2],"o":{"x":0}}`)
	a, o := resolve(t, m, "a"), resolve(t, m, "o")
	ok, err := m.MoveToKey(a, 0, o, "x")
	if err != nil || ok {
		t.Fatalf("conflicting move: %t, %v", ok, err)
	}
	ok, err = m.MoveToKey(a, 1, o, "w")
	if err != nil || !ok {
		t.Fatalf("move: %t, %v", ok, err)
	}
	expectJSON(t, m, `{"a":[1],"o":{"w":2,"x":0}}`)
	expectChanges(t, r, "move a[1:1] -> o[0]")
	if _, err := m.MoveToKey(o, 0, a, "k"); !errors.Is(err, ErrKind) {
		t.Errorf("move to key in array: %v", err)
	}
	ok, err = m.MoveToKey(o, 0, o, "y")
	if err != nil || !ok {
		t.Fatalf("same parent: %t, %v", ok, err)
	}
	expectJSON(t, m, `{"a":[1],"o":{"x":0,"y":2}}`)
	expectChanges(t, r, "move o[0:0] -> o[2]")
}

func TestRename(t *testing.T) {
	m, r := newModel(t, `{"a":1,"b":2,"c":3}`)
	for _, step := range []struct {
		row  int
		key  string
		ok   bool
		want string
	}{
		{0, "d", true, `{"b":2,"c":3,"d":1}`},
		{0, "a", true, `{"a":2,"c":3,"d":1}`},
		{0, "c", false, `{"a":2,"c":3,"d":1}`},
		{1, "c", true, `{"a":2,"c":3,"d":1}`},
	} {
		ok, err := m.Rename(nil, step.row, step.key)
		if err != nil {
			t.Fatal(err)
		}
		if ok != step.ok {
			t.Errorf("Rename(%d, %q) = %t", step.row, step.key, ok)
		}
		expectJSON(t, m, step.want)
	}
	expectChanges(t, r, "move <root>[0:0] -> <root>[3]", "data <root>[0:0] [key]")

	m, _ = newModel(t, `{"l":[]}`)
	l := resolve(t, m, "l")
	if _, err := m.Rename(l, 0, "x"); !errors.Is(err, ErrKind) {
		t.Errorf("rename in array: %v", err)
	}
	if _, err := m.Rename(nil, 1, "x"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("rename past end: %v", err)
	}
}

func TestRetype(t *testing.T) {
	m, r := newModel(t, `{"l":[1,2],"n":"12"}`)

	ok, err := m.Retype(nil, 1, "number", false)
	if err != nil || !ok {
		t.Fatalf("string to number: %t, %v", ok, err)
	}
	expectJSON(t, m, `{"l":[1,2],"n":12}`)
	expectChanges(t, r, "data <root>[1:1] [value type]")

	l := resolve(t, m, "l")
	kids := l.Children()
	if _, err := m.Retype(nil, 0, "object", false); err != nil {
		t.Fatal(err)
	}
	expectJSON(t, m, `{"l":{"Item0":1,"Item1":2},"n":12}`)
	expectChanges(t, r, "data l[0:1] [key]", "data <root>[0:0] [type]")
	if diff := cmp.Diff(kids, l.Children(), cmp.Comparer(func(a, b *tree.Node) bool { return a == b })); diff != "" {
		t.Error("retype replaced children")
	}

	if _, err := m.Retype(nil, 1, "array", false); !errors.Is(err, value.ErrLossy) {
		t.Errorf("unforced lossy retype: %v", err)
	}
	expectChanges(t, r)

	if _, err := m.Retype(nil, 0, "string", true); err != nil {
		t.Fatal(err)
	}
	expectJSON(t, m, `{"l":"","n":12}`)
	expectChanges(t, r, "remove l[0:1]", "data <root>[0:0] [value type]")

	ok, err = m.Retype(nil, 0, "string", false)
	if err != nil || ok {
		t.Errorf("same type retype: %t, %v", ok, err)
	}
	if _, err := m.Retype(nil, 0, "date", false); !errors.Is(err, typeset.ErrUnknownType) {
		t.Errorf("unknown type: %v", err)
	}
	expectChanges(t, r)
}

func TestRetypeWidths(t *testing.T) {
	m, _ := newModel(t, `[3.5,-1]`, WithTypes(typeset.YAML))
	if _, err := m.Retype(nil, 0, "int", false); !errors.Is(err, value.ErrLossy) {
		t.Errorf("fraction to int: %v", err)
	}
	if _, err := m.Retype(nil, 0, "[int]", true); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Retype(nil, 1, "uint", true); err != nil {
		t.Fatal(err)
	}
	expectJSON(t, m, `[3,0]`)
}

func TestSetValue(t *testing.T) {
	m, r := newModel(t, `{"a":1}`)
	a := resolve(t, m, "a")
	if err := m.SetValue(a, mustJSON(t, `[1,2]`)); err != nil {
		t.Fatal(err)
	}
	expectJSON(t, m, `{"a":[1,2]}`)
	expectChanges(t, r, "data <root>[0:0] [value type]", "insert a[0:1]")
	if err := m.SetValue(a, value.FromInt(5)); err != nil {
		t.Fatal(err)
	}
	expectJSON(t, m, `{"a":5}`)
	expectChanges(t, r, "remove a[0:1]", "data <root>[0:0] [value type]")
	m.Load(mustJSON(t, `{"a":[1,{"b":2}]}`))
	r.take()
	a = resolve(t, m, "a")
	if err := m.SetValue(a, a.Value()); err != nil {
		t.Fatal(err)
	}
	if err := m.SetValue(nil, m.Value()); err != nil {
		t.Fatal(err)
	}
	expectJSON(t, m, `{"a":[1,{"b":2}]}`)
	expectChanges(t, r)
	if got := m.RowCount(a); got != 2 {
		t.Errorf("a has %d rows, want 2", got)
	}
	if err := m.SetValue(nil, value.FromBool(true)); err != nil {
		t.Fatal(err)
	}
	expectJSON(t, m, `true`)
	expectChanges(t, r, "reset")
}

func TestInsertKey(t *testing.T) {
	m, r := newModel(t, `{"a":1,"c":2}`)
	ok, err := m.InsertKey(nil, "b", value.FromString("x"))
	if err != nil || !ok {
		t.Fatalf("insert b: %t, %v", ok, err)
	}
	expectJSON(t, m, `{"a":1,"b":"x","c":2}`)
	expectChanges(t, r, "insert <root>[1:1]")
	ok, err = m.InsertKey(nil, "a", nil)
	if err != nil || ok {
		t.Errorf("duplicate insert: %t, %v", ok, err)
	}
	expectJSON(t, m, `{"a":1,"b":"x","c":2}`)
	expectChanges(t, r)
	m, _ = newModel(t, `[]`)
	if _, err := m.InsertKey(nil, "a", nil); !errors.Is(err, ErrKind) {
		t.Errorf("insert key in array: %v", err)
	}
}
