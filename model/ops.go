package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/vtree/tree"
	"github.com/signadot/vtree/value"
)

// Insert inserts count copies of v (null if nil) into parent starting at
// row. Each row is inserted and notified on its own.
//
// Under an object the new entries get generated keys: the key of the entry
// before row with its trailing digits removed, followed by the first
// unused numbers counting from 0. At row 0 the keys are plain numbers.
func (m *Model) Insert(parent *tree.Node, row, count int, v *value.Value) error {
	p, err := m.container(parent)
	if err != nil {
		return err
	}
	if count < 0 || row < 0 || row > p.ChildCount() {
		return fmt.Errorf("%w: insert %d at %d in %s with %d rows", ErrOutOfRange, count, row, p, p.ChildCount())
	}
	if v == nil {
		v = value.Null()
	}
	m.log.Debug("insert", "parent", pathOf(p), "row", row, "count", count)
	if p.IsArray() {
		for i := range count {
			c := Change{Op: OpInsert, Parent: p, First: row + i, Last: row + i}
			m.will(c)
			p.InsertArrayChild(row+i, v.Clone())
			m.did(c)
		}
		return nil
	}
	base := ""
	if row > 0 {
		base = trimDigits(p.ChildKey(row - 1))
	}
	for attempt := 0; count > 0; attempt++ {
		if attempt >= MaxKeyProbes {
			return fmt.Errorf("%w: %s<n> in %s", ErrKeySpace, base, p)
		}
		prop, err := p.ProposeInsert(base+strconv.Itoa(attempt), v.Clone())
		if errors.Is(err, tree.ErrKeyConflict) {
			continue
		}
		if err != nil {
			return err
		}
		c := Change{Op: OpInsert, Parent: p, First: prop.Row, Last: prop.Row}
		if err := m.commit(c, prop); err != nil {
			return err
		}
		count--
	}
	return nil
}

// InsertKey inserts v (null if nil) under key into the object parent. It
// reports false, changing nothing, if key is taken.
func (m *Model) InsertKey(parent *tree.Node, key string, v *value.Value) (bool, error) {
	p, err := m.container(parent)
	if err != nil {
		return false, err
	}
	if !p.IsObject() {
		return false, fmt.Errorf("%w: insert key in %s", ErrKind, p)
	}
	if v == nil {
		v = value.Null()
	}
	prop, err := p.ProposeInsert(key, v)
	if errors.Is(err, tree.ErrKeyConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	m.log.Debug("insert key", "parent", pathOf(p), "key", key)
	c := Change{Op: OpInsert, Parent: p, First: prop.Row, Last: prop.Row}
	if err := m.commit(c, prop); err != nil {
		return false, err
	}
	return true, nil
}

// Remove removes count rows of parent starting at row.
func (m *Model) Remove(parent *tree.Node, row, count int) error {
	p, err := m.container(parent)
	if err != nil {
		return err
	}
	n := p.ChildCount()
	if count < 0 || row < 0 || row >= n || row+count > n {
		return fmt.Errorf("%w: remove %d at %d in %s with %d rows", ErrOutOfRange, count, row, p, n)
	}
	m.log.Debug("remove", "parent", pathOf(p), "row", row, "count", count)
	for range count {
		c := Change{Op: OpRemove, Parent: p, First: row, Last: row}
		m.will(c)
		p.RemoveChild(row)
		m.did(c)
	}
	return nil
}

// Move moves count rows of srcParent starting at srcRow so that they land
// before row dstRow of dstParent, dstRow counting the moved rows when both
// parents are the same. Each row moves and is notified on its own.
//
// Rows moved into an array lose their keys. Rows moved from an array into
// an object get the first unused decimal keys counting from dstRow; rows
// moved between objects keep their key with trailing digits removed,
// followed by the first number which makes it unused. Moving rows within
// one object changes nothing since objects order entries by key.
func (m *Model) Move(srcParent *tree.Node, srcRow, count int, dstParent *tree.Node, dstRow int) error {
	src, err := m.container(srcParent)
	if err != nil {
		return err
	}
	dst, err := m.container(dstParent)
	if err != nil {
		return err
	}
	n := src.ChildCount()
	if count < 0 || srcRow < 0 || srcRow >= n || srcRow+count > n {
		return fmt.Errorf("%w: move %d at %d in %s with %d rows", ErrOutOfRange, count, srcRow, src, n)
	}
	if dstRow < 0 || dstRow > dst.ChildCount() {
		return fmt.Errorf("%w: move to %d in %s with %d rows", ErrOutOfRange, dstRow, dst, dst.ChildCount())
	}
	for i := range count {
		c := src.Child(srcRow + i)
		if c == dst || c.IsAncestorOf(dst) {
			return fmt.Errorf("%w: %s into %s", ErrCycle, c, dst)
		}
	}
	m.log.Debug("move", "src", pathOf(src), "row", srcRow, "count", count, "dst", pathOf(dst), "dstRow", dstRow)
	switch {
	case dst.IsArray():
		m.moveToArray(src, srcRow, count, dst, dstRow)
		return nil
	case src.IsArray():
		return m.moveArrayToObject(src, srcRow, count, dst, dstRow)
	case src == dst:
		return nil
	}
	return m.moveObjectToObject(src, srcRow, count, dst)
}

func (m *Model) moveToArray(src *tree.Node, srcRow, count int, dst *tree.Node, dstRow int) {
	if src != dst {
		for i := range count {
			c := Change{Op: OpMove, Parent: src, First: srcRow, Last: srcRow, DstParent: dst, DstRow: dstRow + i}
			m.will(c)
			src.MoveChildToArray(srcRow, dst, dstRow+i)
			m.did(c)
		}
		return
	}
	if dstRow >= srcRow && dstRow <= srcRow+count {
		return
	}
	for i := range count {
		// forward moves keep taking the first row and landing before dstRow
		from, to := srcRow, dstRow
		if dstRow < srcRow {
			from, to = srcRow+i, dstRow+i
		}
		c := Change{Op: OpMove, Parent: src, First: from, Last: from, DstParent: dst, DstRow: to}
		m.will(c)
		if to > from {
			to--
		}
		src.MoveChild(from, to)
		m.did(c)
	}
}

func (m *Model) moveArrayToObject(src *tree.Node, srcRow, count int, dst *tree.Node, dstRow int) error {
	key := dstRow
	for attempt := 0; count > 0; attempt++ {
		if attempt >= MaxKeyProbes {
			return fmt.Errorf("%w: numeric keys from %d in %s", ErrKeySpace, dstRow, dst)
		}
		prop, err := src.ProposeMoveToObject(srcRow, dst, strconv.Itoa(key))
		key++
		if errors.Is(err, tree.ErrKeyConflict) {
			continue
		}
		if err != nil {
			return err
		}
		if err := m.commitMove(src, srcRow, prop); err != nil {
			return err
		}
		count--
	}
	return nil
}

func (m *Model) moveObjectToObject(src *tree.Node, srcRow, count int, dst *tree.Node) error {
	for range count {
		base := trimDigits(src.ChildKey(srcRow))
		prop, err := probe(base, func(key string) (*tree.Proposal, error) {
			return src.ProposeMoveToObject(srcRow, dst, key)
		})
		if err != nil {
			return fmt.Errorf("%s in %s: %w", base, dst, err)
		}
		if err := m.commitMove(src, srcRow, prop); err != nil {
			return err
		}
	}
	return nil
}

// probe tries base, base1, base2 and so on until propose accepts a key.
func probe(base string, propose func(key string) (*tree.Proposal, error)) (*tree.Proposal, error) {
	for attempt := range MaxKeyProbes {
		key := base
		if attempt > 0 {
			key += strconv.Itoa(attempt)
		}
		prop, err := propose(key)
		if errors.Is(err, tree.ErrKeyConflict) {
			continue
		}
		return prop, err
	}
	return nil, ErrKeySpace
}

// MoveToKey moves row srcRow of srcParent into the object dstParent under
// key. It reports false, changing nothing, if key is taken.
func (m *Model) MoveToKey(srcParent *tree.Node, srcRow int, dstParent *tree.Node, key string) (bool, error) {
	src, err := m.container(srcParent)
	if err != nil {
		return false, err
	}
	dst, err := m.container(dstParent)
	if err != nil {
		return false, err
	}
	if !dst.IsObject() {
		return false, fmt.Errorf("%w: %s is not an object", ErrKind, dst)
	}
	c := src.Child(srcRow)
	if c == nil {
		return false, fmt.Errorf("%w: row %d of %s", ErrOutOfRange, srcRow, src)
	}
	if c == dst || c.IsAncestorOf(dst) {
		return false, fmt.Errorf("%w: %s into %s", ErrCycle, c, dst)
	}
	if src == dst {
		return m.Rename(src, srcRow, key)
	}
	prop, err := src.ProposeMoveToObject(srcRow, dst, key)
	if errors.Is(err, tree.ErrKeyConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	m.log.Debug("move to key", "src", pathOf(src), "row", srcRow, "dst", pathOf(dst), "key", key)
	if err := m.commitMove(src, srcRow, prop); err != nil {
		return false, err
	}
	return true, nil
}

// Rename changes the key of row in the object parent. It reports false,
// changing nothing, if key is taken by another entry. A rename which
// reorders the entry is notified as a move, otherwise as a key change.
func (m *Model) Rename(parent *tree.Node, row int, key string) (bool, error) {
	p, err := m.container(parent)
	if err != nil {
		return false, err
	}
	if !p.IsObject() {
		return false, fmt.Errorf("%w: rename in %s", ErrKind, p)
	}
	if row < 0 || row >= p.ChildCount() {
		return false, fmt.Errorf("%w: rename row %d of %s", ErrOutOfRange, row, p)
	}
	prop, err := p.ProposeRename(row, key)
	if errors.Is(err, tree.ErrKeyConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if prop.Noop() {
		return true, nil
	}
	m.log.Debug("rename", "parent", pathOf(p), "row", row, "key", key)
	if prop.FinalRow() == row {
		c := Change{Op: OpData, Parent: p, First: row, Last: row, Columns: []Column{KeyColumn}}
		return true, m.commit(c, prop)
	}
	return true, m.commitMove(p, row, prop)
}

func (m *Model) commitMove(src *tree.Node, srcRow int, prop *tree.Proposal) error {
	c := Change{Op: OpMove, Parent: src, First: srcRow, Last: srcRow, DstParent: prop.Parent(), DstRow: prop.Row}
	return m.commit(c, prop)
}

func (m *Model) commit(c Change, prop *tree.Proposal) error {
	m.will(c)
	if _, err := prop.Commit(); err != nil {
		return fmt.Errorf("observer changed the model: %w", err)
	}
	m.did(c)
	return nil
}

// Retype converts row of parent to the type the model's type set calls
// name. See RetypeTo.
func (m *Model) Retype(parent *tree.Node, row int, name string, force bool) (bool, error) {
	target, err := m.types.Lookup(name)
	if err != nil {
		return false, err
	}
	return m.RetypeTo(parent, row, target, force)
}

// RetypeTo converts row of parent to target and reports whether anything
// changed. Without force, conversions losing information fail with
// value.ErrLossy.
//
// Switching between array and object keeps the children and is notified as
// a type change of the node plus a key change of its children. A container
// turning into anything else first has its children removed.
func (m *Model) RetypeTo(parent *tree.Node, row int, target value.Target, force bool) (bool, error) {
	p, err := m.container(parent)
	if err != nil {
		return false, err
	}
	n := p.Child(row)
	if n == nil {
		return false, fmt.Errorf("%w: retype row %d of %s", ErrOutOfRange, row, p)
	}
	_, outcome, err := value.Convert(n.Value(), target, force)
	if err != nil {
		return false, err
	}
	m.log.Debug("retype", "node", pathOf(n), "from", n.Type().String(), "to", target.String(), "outcome", outcome.String())
	dc := Change{Op: OpData, Parent: p, First: row, Last: row, Columns: []Column{ValueColumn, TypeColumn}}
	switch outcome {
	case value.NoChange:
		return false, nil
	case value.Container:
		dc.Columns = []Column{TypeColumn}
		kids := n.ChildCount()
		kc := Change{Op: OpData, Parent: n, First: 0, Last: kids - 1, Columns: []Column{KeyColumn}}
		m.will(dc)
		if kids > 0 {
			m.will(kc)
		}
		if _, err := n.ConvertTo(target, force); err != nil {
			return false, err
		}
		if kids > 0 {
			m.did(kc)
		}
		m.did(dc)
		return true, nil
	}
	m.clearChildren(n)
	m.will(dc)
	if _, err := n.ConvertTo(target, force); err != nil {
		return false, err
	}
	m.did(dc)
	return true, nil
}

// clearChildren empties a container node, notifying the removal.
func (m *Model) clearChildren(n *tree.Node) {
	kids := n.ChildCount()
	if kids == 0 {
		return
	}
	c := Change{Op: OpRemove, Parent: n, First: 0, Last: kids - 1}
	m.will(c)
	if n.IsArray() {
		n.ClearArray()
	} else {
		n.ClearObject()
	}
	m.did(c)
}

// SetValue replaces the value of n with v, which the model adopts.
// Setting the root reloads the model. Setting a node to its own value
// changes nothing.
func (m *Model) SetValue(n *tree.Node, v *value.Value) error {
	n, err := m.node(n)
	if err != nil {
		return err
	}
	if v == n.Value() {
		return nil
	}
	if n.IsRoot() {
		m.Load(v)
		return nil
	}
	m.log.Debug("set value", "node", pathOf(n), "type", v.Type.String())
	m.clearChildren(n)
	dc := Change{Op: OpData, Parent: n.Parent(), First: n.Row(), Last: n.Row(), Columns: []Column{ValueColumn, TypeColumn}}
	vals := v.Len()
	if vals == 0 {
		m.will(dc)
		n.SetValue(v)
		m.did(dc)
		return nil
	}
	shell := &value.Value{}
	shell.Reset(v.Type)
	m.will(dc)
	n.SetValue(shell)
	m.did(dc)
	ic := Change{Op: OpInsert, Parent: n, First: 0, Last: vals - 1}
	m.will(ic)
	n.SetValue(v)
	m.did(ic)
	return nil
}

func trimDigits(key string) string {
	return strings.TrimRightFunc(key, func(r rune) bool {
		return r >= '0' && r <= '9'
	})
}
