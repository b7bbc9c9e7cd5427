// Package edit applies edit scripts to a model.
//
// A script is a JSON array of operations shaped like JSON Patch (RFC 6902):
//
//	[
//	  {"op": "add", "path": "/items/-", "value": {"name": "x"}},
//	  {"op": "move", "from": "/items/0", "path": "/done/first"},
//	  {"op": "rename", "path": "/done/first", "value": "second"},
//	  {"op": "retype", "path": "/count", "value": "int", "force": true}
//	]
//
// Operations go through the model one by one so its observers see each
// change. Unlike JSON Patch, adding or moving onto an existing object key
// fails with ErrConflict rather than replacing the entry.
package edit

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/vtree/debug"
	"github.com/signadot/vtree/model"
	"github.com/signadot/vtree/tree"
	"github.com/signadot/vtree/value"
)

type Kind string

const (
	Add     Kind = "add"
	Remove  Kind = "remove"
	Replace Kind = "replace"
	Move    Kind = "move"
	Copy    Kind = "copy"
	Test    Kind = "test"
	Rename  Kind = "rename"
	Retype  Kind = "retype"
)

type Op struct {
	Kind  Kind
	Path  Pointer
	From  Pointer
	Value *value.Value
	// Force allows lossy retypes.
	Force bool
}

func (o *Op) String() string {
	if o.From != nil {
		return fmt.Sprintf("%s %s -> %s", o.Kind, o.From, o.Path)
	}
	return fmt.Sprintf("%s %s", o.Kind, o.Path)
}

type Script struct {
	Ops []Op
}

// Parse decodes a script.
func Parse(d []byte) (*Script, error) {
	patch, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScript, err)
	}
	res := &Script{Ops: make([]Op, 0, len(patch))}
	for i, raw := range patch {
		op, err := parseOp(raw)
		if err != nil {
			return nil, fmt.Errorf("op %d: %w", i, err)
		}
		res.Ops = append(res.Ops, *op)
	}
	return res, nil
}

func parseOp(raw map[string]*json.RawMessage) (*Op, error) {
	var kind string
	if err := field(raw, "op", &kind, true); err != nil {
		return nil, err
	}
	op := &Op{Kind: Kind(kind)}
	var path string
	if err := field(raw, "path", &path, true); err != nil {
		return nil, err
	}
	p, err := ParsePointer(path)
	if err != nil {
		return nil, err
	}
	op.Path = p
	switch op.Kind {
	case Move, Copy:
		var from string
		if err := field(raw, "from", &from, true); err != nil {
			return nil, err
		}
		if op.From, err = ParsePointer(from); err != nil {
			return nil, err
		}
	case Add, Replace, Test, Rename, Retype:
		v, ok := raw["value"]
		if !ok || v == nil {
			return nil, fmt.Errorf("%w: %s without value", ErrScript, op.Kind)
		}
		if op.Value, err = value.FromJSON(*v); err != nil {
			return nil, fmt.Errorf("%w: value: %w", ErrScript, err)
		}
		if (op.Kind == Rename || op.Kind == Retype) && op.Value.Type != value.StringType {
			return nil, fmt.Errorf("%w: %s value must be a string", ErrScript, op.Kind)
		}
	case Remove:
	default:
		return nil, fmt.Errorf("%w: unknown op %q", ErrScript, kind)
	}
	if err := field(raw, "force", &op.Force, false); err != nil {
		return nil, err
	}
	return op, nil
}

func field(raw map[string]*json.RawMessage, name string, dst any, required bool) error {
	v, ok := raw[name]
	if !ok || v == nil {
		if required {
			return fmt.Errorf("%w: missing %q", ErrScript, name)
		}
		return nil
	}
	if err := json.Unmarshal(*v, dst); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrScript, name, err)
	}
	return nil
}

// Apply runs the script against m, stopping at the first failing op.
// Earlier ops stay applied.
func (s *Script) Apply(m *model.Model) error {
	for i := range s.Ops {
		op := &s.Ops[i]
		if debug.Edit() {
			debug.Logf("edit op %d: %s", i, op)
		}
		if err := op.Apply(m); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op, err)
		}
	}
	return nil
}

// Apply parses d and applies it to m.
func Apply(m *model.Model, d []byte) error {
	s, err := Parse(d)
	if err != nil {
		return err
	}
	return s.Apply(m)
}

func (o *Op) Apply(m *model.Model) error {
	switch o.Kind {
	case Add:
		return add(m, o.Path, o.Value.Clone())
	case Remove:
		n, err := o.node(m, o.Path)
		if err != nil {
			return err
		}
		return m.Remove(n.Parent(), n.Row(), 1)
	case Replace:
		n, err := o.Path.Resolve(m)
		if err != nil {
			return err
		}
		return m.SetValue(n, o.Value.Clone())
	case Move:
		return move(m, o.From, o.Path)
	case Copy:
		n, err := o.From.Resolve(m)
		if err != nil {
			return err
		}
		return add(m, o.Path, n.Value().Clone())
	case Test:
		n, err := o.Path.Resolve(m)
		if err != nil {
			return err
		}
		if n.Value().Hash() != o.Value.Hash() || !value.Equal(n.Value(), o.Value) {
			return fmt.Errorf("%w: %s is %s, not %s", ErrTest, o.Path, n.Value().GoString(), o.Value.GoString())
		}
		return nil
	case Rename:
		n, err := o.node(m, o.Path)
		if err != nil {
			return err
		}
		ok, err := m.Rename(n.Parent(), n.Row(), o.Value.String)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %q", ErrConflict, o.Value.String)
		}
		return nil
	case Retype:
		n, err := o.node(m, o.Path)
		if err != nil {
			return err
		}
		_, err = m.Retype(n.Parent(), n.Row(), o.Value.String, o.Force)
		return err
	}
	return fmt.Errorf("%w: unknown op %q", ErrScript, o.Kind)
}

// node resolves a non-root path.
func (o *Op) node(m *model.Model, p Pointer) (*tree.Node, error) {
	if p.IsRoot() {
		return nil, fmt.Errorf("%w: %s needs a path below the root", ErrPath, o.Kind)
	}
	return p.Resolve(m)
}

// target resolves where an add to p lands: the container and, for arrays,
// the row ("-" appends) or, for objects, the key.
func target(m *model.Model, p Pointer) (*tree.Node, int, string, error) {
	parent, err := p.Parent().Resolve(m)
	if err != nil {
		return nil, 0, "", err
	}
	tok := p.Last()
	switch {
	case parent.IsObject():
		return parent, -1, tok, nil
	case parent.IsArray():
		if tok == "-" {
			return parent, parent.ChildCount(), "", nil
		}
		row, err := index(tok)
		if err != nil {
			return nil, 0, "", err
		}
		if row > parent.ChildCount() {
			return nil, 0, "", fmt.Errorf("%w: %s past end of array", ErrPath, p)
		}
		return parent, row, "", nil
	}
	return nil, 0, "", fmt.Errorf("%w: %s is inside a %s", ErrPath, p, parent.Type())
}

func add(m *model.Model, p Pointer, v *value.Value) error {
	if p.IsRoot() {
		return m.SetValue(nil, v)
	}
	parent, row, key, err := target(m, p)
	if err != nil {
		return err
	}
	if parent.IsArray() {
		return m.Insert(parent, row, 1, v)
	}
	ok, err := m.InsertKey(parent, key, v)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrConflict, p)
	}
	return nil
}

func move(m *model.Model, from, to Pointer) error {
	if from.IsRoot() {
		return fmt.Errorf("%w: cannot move the root", ErrPath)
	}
	src, err := from.Resolve(m)
	if err != nil {
		return err
	}
	if to.IsRoot() {
		return m.SetValue(nil, src.Value().Clone())
	}
	srcParent, srcRow := src.Parent(), src.Row()
	parent, row, key, err := target(m, to)
	if err != nil {
		return err
	}
	if parent.IsObject() {
		ok, err := m.MoveToKey(srcParent, srcRow, parent, key)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrConflict, to)
		}
		return nil
	}
	if parent == srcParent {
		// the destination index counts rows after the source is taken out
		if to.Last() == "-" {
			row = parent.ChildCount() - 1
		}
		if row >= parent.ChildCount() {
			return fmt.Errorf("%w: %s past end of array", ErrPath, to)
		}
		if row >= srcRow {
			row++
		}
	}
	return m.Move(srcParent, srcRow, 1, parent, row)
}
