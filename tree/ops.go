package tree

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/signadot/vtree/value"
)

// InsertArrayChild inserts v into an array node at pos and returns the new
// child. v is adopted by the tree.
func (n *Node) InsertArrayChild(pos int, v *value.Value) *Node {
	n.mustArray("InsertArrayChild")
	n.mustPosition(pos, "InsertArrayChild")
	n.val.InsertElem(pos, v)
	c := newNode("", v, n)
	n.children = slices.Insert(n.children, pos, c)
	n.touch()
	return c
}

// RemoveChild removes the element or entry at row and releases its node.
func (n *Node) RemoveChild(row int) {
	n.mustContainer("RemoveChild")
	n.mustRow(row, "RemoveChild")
	n.detach(row).release()
}

// MoveChild reorders an array so the element at from ends up at to. to is
// an index into the array after from was taken out.
func (n *Node) MoveChild(from, to int) {
	n.mustArray("MoveChild")
	n.mustRow(from, "MoveChild")
	n.mustRow(to, "MoveChild")
	if from == to {
		return
	}
	n.val.MoveElem(from, to)
	c := n.children[from]
	n.children = slices.Delete(n.children, from, from+1)
	n.children = slices.Insert(n.children, to, c)
	n.touch()
}

// MoveChildToArray moves the child at row into the array dst at dstPos,
// dropping its key. When dst is n itself, this is MoveChild(row, dstPos).
func (n *Node) MoveChildToArray(row int, dst *Node, dstPos int) *Node {
	n.mustContainer("MoveChildToArray")
	n.mustRow(row, "MoveChildToArray")
	dst.mustArray("MoveChildToArray")
	if dst == n {
		c := n.children[row]
		n.MoveChild(row, dstPos)
		return c
	}
	c := n.children[row]
	mustNotContain(c, dst, "MoveChildToArray")
	dst.mustPosition(dstPos, "MoveChildToArray")
	n.detach(row)
	dst.val.InsertElem(dstPos, c.val)
	c.key = ""
	dst.adopt(dstPos, c)
	return c
}

// ArrayToObject turns an array node into an object in place. Element i gets
// the key "Item<i>", zero padded so that key order is element order. Child
// nodes and their subtrees are kept.
func (n *Node) ArrayToObject() {
	n.mustArray("ArrayToObject")
	keys := itemKeys(len(n.children))
	n.val.Type = value.ObjectType
	n.val.Fields = keys
	for i, c := range n.children {
		c.key = keys[i]
	}
	n.touch()
}

func itemKeys(count int) []string {
	width := len(strconv.Itoa(max(count-1, 0)))
	res := make([]string, count)
	for i := range res {
		res[i] = fmt.Sprintf("Item%0*d", width, i)
	}
	return res
}

// ObjectToArray turns an object node into an array of its values in key
// order. Child nodes and their subtrees are kept.
func (n *Node) ObjectToArray() {
	n.mustObject("ObjectToArray")
	n.val.Type = value.ArrayType
	n.val.Fields = nil
	for _, c := range n.children {
		c.key = ""
	}
	n.touch()
}

// Clear releases all children and resets the value to null.
func (n *Node) Clear() {
	n.destroyChildren()
	n.val.Reset(value.NullType)
}

// ClearArray empties an array node.
func (n *Node) ClearArray() {
	n.mustArray("ClearArray")
	n.destroyChildren()
	n.val.Reset(value.ArrayType)
}

// ClearObject empties an object node.
func (n *Node) ClearObject() {
	n.mustObject("ClearObject")
	n.destroyChildren()
	n.val.Reset(value.ObjectType)
}

// SetValue replaces the node's value with v in place and rebuilds the
// children. v is adopted and must not be used afterwards.
func (n *Node) SetValue(v *value.Value) {
	if v == n.val {
		return
	}
	n.destroyChildren()
	n.val.Assign(v)
	n.initChildren()
	n.touch()
}

// ConvertTo changes the node's value to target. It reports whether the
// node changed. Conversions which would lose information fail with
// value.ErrLossy unless force is set, leaving the node untouched.
// Array/object conversions restructure the container in place.
func (n *Node) ConvertTo(target value.Target, force bool) (bool, error) {
	res, outcome, err := value.Convert(n.val, target, force)
	if err != nil {
		return false, err
	}
	switch outcome {
	case value.NoChange:
		return false, nil
	case value.Container:
		if n.IsArray() {
			n.ArrayToObject()
		} else {
			n.ObjectToArray()
		}
		return true, nil
	}
	n.SetValue(res)
	return true, nil
}

// detach takes the child at row out of n without releasing it.
func (n *Node) detach(row int) *Node {
	c := n.children[row]
	n.val.Detach(row)
	n.children = slices.Delete(n.children, row, row+1)
	c.parent = nil
	n.touch()
	return c
}

// adopt links c as child pos of n; the value slot must already be in
// place.
func (n *Node) adopt(pos int, c *Node) {
	c.parent = n
	n.children = slices.Insert(n.children, pos, c)
	n.touch()
}

// renameAt rekeys the child at row. pos is the insertion position of key
// computed while the old key was still present.
func (n *Node) renameAt(row, pos int, key string) *Node {
	c := n.children[row]
	v := n.val.DeleteField(row)
	n.children = slices.Delete(n.children, row, row+1)
	if pos > row {
		pos--
	}
	n.val.InsertField(pos, key, v)
	c.key = key
	n.children = slices.Insert(n.children, pos, c)
	n.touch()
	return c
}
