package model

import (
	"fmt"

	"github.com/signadot/vtree/tree"
	"github.com/signadot/vtree/typeset"
	"github.com/signadot/vtree/value"
)

type Column int

const (
	KeyColumn Column = iota
	ValueColumn
	TypeColumn
)

var columnNames = [...]string{"key", "value", "type"}

func (c Column) String() string {
	if c < 0 || int(c) >= len(columnNames) {
		return fmt.Sprintf("column(%d)", int(c))
	}
	return columnNames[c]
}

// ArrayItemKey is what the key column shows for array elements.
const ArrayItemKey = "[array item]"

type Role int

const (
	// DisplayRole is text meant for showing.
	DisplayRole Role = iota
	// EditRole is the data an editor starts from and SetData accepts.
	EditRole
)

type Flags uint8

const (
	Enabled Flags = 1 << iota
	Selectable
	Editable
)

func (f Flags) Has(g Flags) bool {
	return f&g == g
}

func (m *Model) ColumnCount() int {
	return len(columnNames)
}

// Header returns the title of column c.
func (m *Model) Header(c Column) string {
	return c.String()
}

// Flags returns what can be done with column c of n. The root has no
// flags. Keys are editable under objects, values for plain nodes, and the
// type always.
func (m *Model) Flags(n *tree.Node, c Column) Flags {
	if n == nil || n.IsRoot() || !n.Valid() {
		return 0
	}
	f := Enabled | Selectable
	switch c {
	case KeyColumn:
		if n.Parent().IsObject() {
			f |= Editable
		}
	case ValueColumn:
		if n.IsPlain() {
			f |= Editable
		}
	case TypeColumn:
		f |= Editable
	}
	return f
}

// Data returns what column c of n holds for role. It returns nil where a
// cell is empty: any column of the root, the value of containers, and the
// key of array elements under EditRole.
func (m *Model) Data(n *tree.Node, c Column, role Role) any {
	if n == nil || n.IsRoot() || !n.Valid() {
		return nil
	}
	switch c {
	case KeyColumn:
		if n.Parent().IsObject() {
			return n.Key()
		}
		if role == DisplayRole {
			return ArrayItemKey
		}
	case ValueColumn:
		if n.IsPlain() {
			return value.ToAny(n.Value())
		}
	case TypeColumn:
		name := m.TypeName(n)
		if role == DisplayRole {
			return typeset.Display(name)
		}
		return name
	}
	return nil
}

// TypeName names the type of n in the model's type set.
func (m *Model) TypeName(n *tree.Node) string {
	return m.types.Name(n.Type())
}

// SetData edits column c of n: the key column renames, the value column
// replaces a plain value with another scalar, and the type column retypes
// forcibly given a type name. It reports false when a rename hits an
// existing key.
func (m *Model) SetData(n *tree.Node, c Column, x any) (bool, error) {
	n, err := m.node(n)
	if err != nil {
		return false, err
	}
	if !m.Flags(n, c).Has(Editable) {
		return false, fmt.Errorf("%w: %s of %s", ErrNotEditable, c, n)
	}
	parent, row := n.Parent(), n.Row()
	switch c {
	case KeyColumn:
		key, ok := x.(string)
		if !ok {
			return false, fmt.Errorf("%w: key of type %T", ErrKind, x)
		}
		return m.Rename(parent, row, key)
	case ValueColumn:
		v, err := value.FromAny(x)
		if err != nil {
			return false, err
		}
		if !v.IsLeaf() {
			return false, fmt.Errorf("%w: %s value for a plain node", ErrKind, v.Type)
		}
		if err := m.SetValue(n, v); err != nil {
			return false, err
		}
		return true, nil
	case TypeColumn:
		switch t := x.(type) {
		case string:
			return m.Retype(parent, row, t, true)
		case value.Type:
			return m.RetypeTo(parent, row, value.To(t), true)
		case value.Target:
			return m.RetypeTo(parent, row, t, true)
		}
		return false, fmt.Errorf("%w: type of type %T", ErrKind, x)
	}
	return false, fmt.Errorf("%w: %s", ErrNotEditable, c)
}
