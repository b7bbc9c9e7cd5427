package model

import (
	"errors"
	"testing"

	"github.com/signadot/vtree/typeset"
)

func TestFlags(t *testing.T) {
	m, _ := newModel(t, `{"a":[true],"o":{"k":null}}`)
	tests := []struct {
		path string
		col  Column
		edit bool
	}{
		{"a", KeyColumn, true},
		{"a", ValueColumn, false},
		{"a", TypeColumn, true},
		{"a[0]", KeyColumn, false},
		{"a[0]", ValueColumn, true},
		{"o.k", KeyColumn, true},
		{"o.k", ValueColumn, true},
	}
	for _, tt := range tests {
		f := m.Flags(resolve(t, m, tt.path), tt.col)
		if !f.Has(Enabled | Selectable) {
			t.Errorf("%s %s: flags %b", tt.path, tt.col, f)
		}
		if f.Has(Editable) != tt.edit {
			t.Errorf("%s %s: editable %t", tt.path, tt.col, f.Has(Editable))
		}
	}
	if f := m.Flags(m.Root(), TypeColumn); f != 0 {
		t.Errorf("root flags %b", f)
	}
}

func TestData(t *testing.T) {
	m, _ := newModel(t, `{"a":[true],"o":{"k":null}}`)
	tests := []struct {
		path string
		col  Column
		role Role
		want any
	}{
		{"a", KeyColumn, DisplayRole, "a"},
		{"a", KeyColumn, EditRole, "a"},
		{"a", ValueColumn, DisplayRole, nil},
		{"a", TypeColumn, DisplayRole, "[array]"},
		{"a", TypeColumn, EditRole, "array"},
		{"a[0]", KeyColumn, DisplayRole, ArrayItemKey},
		{"a[0]", KeyColumn, EditRole, nil},
		{"a[0]", ValueColumn, EditRole, true},
		{"a[0]", TypeColumn, DisplayRole, "[bool]"},
		{"o.k", ValueColumn, DisplayRole, nil},
		{"o.k", TypeColumn, DisplayRole, "[null]"},
	}
	for _, tt := range tests {
		got := m.Data(resolve(t, m, tt.path), tt.col, tt.role)
		if got != tt.want {
			t.Errorf("Data(%s, %s, %d) = %v, want %v", tt.path, tt.col, tt.role, got, tt.want)
		}
	}
	if got := m.Data(m.Root(), KeyColumn, DisplayRole); got != nil {
		t.Errorf("root data %v", got)
	}

	jm, _ := newModel(t, `{"k":null,"n":1}`, WithTypes(typeset.JSON))
	if got := jm.Data(resolve(t, jm, "k"), TypeColumn, DisplayRole); got != "[undefined]" {
		t.Errorf("json null type %v", got)
	}
	if got := jm.Data(resolve(t, jm, "n"), TypeColumn, DisplayRole); got != "[double]" {
		t.Errorf("json number type %v", got)
	}
}

func TestHeader(t *testing.T) {
	m := New()
	var got []string
	for c := range Column(m.ColumnCount()) {
		got = append(got, m.Header(c))
	}
	if len(got) != 3 || got[0] != "key" || got[1] != "value" || got[2] != "type" {
		t.Errorf("headers %v", got)
	}
}

func TestSetData(t *testing.T) {
	m, r := newModel(t, `{"a":[true],"o":{"k":null}}`)
	a0 := resolve(t, m, "a[0]")
	ok, err := m.SetData(a0, ValueColumn, "x")
	if err != nil || !ok {
		t.Fatalf("set value: %t, %v", ok, err)
	}
	expectJSON(t, m, `{"a":["x"],"o":{"k":null}}`)
	expectChanges(t, r, "data a[0:0] [value type]")

	if _, err := m.SetData(a0, KeyColumn, "k"); !errors.Is(err, ErrNotEditable) {
		t.Errorf("array key edit: %v", err)
	}
	if _, err := m.SetData(a0, ValueColumn, []any{1}); !errors.Is(err, ErrKind) {
		t.Errorf("container value edit: %v", err)
	}
	if _, err := m.SetData(m.Root(), TypeColumn, "array"); !errors.Is(err, ErrNotEditable) {
		t.Errorf("root edit: %v", err)
	}

	ok, err = m.SetData(resolve(t, m, "o.k"), KeyColumn, "j")
	if err != nil || !ok {
		t.Fatalf("rename: %t, %v", ok, err)
	}
	expectJSON(t, m, `{"a":["x"],"o":{"j":null}}`)
	expectChanges(t, r, "data o[0:0] [key]")

	ok, err = m.SetData(resolve(t, m, "a"), TypeColumn, "object")
	if err != nil || !ok {
		t.Fatalf("retype: %t, %v", ok, err)
	}
	expectJSON(t, m, `{"a":{"Item0":"x"},"o":{"j":null}}`)
	if _, err := m.SetData(resolve(t, m, "o"), TypeColumn, 3); !errors.Is(err, ErrKind) {
		t.Errorf("bad type data: %v", err)
	}
}
