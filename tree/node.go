package tree

import (
	"fmt"
	"slices"

	"github.com/signadot/vtree/value"
)

// Node is a navigation node aliasing one slot of a value tree.
//
// A node caches the key of its slot when the parent is an object, owns one
// child node per element or entry of an array or object value, and points
// back to its parent. Nodes are never shared or copied: exactly one node
// aliases each live value.
type Node struct {
	key      string
	val      *value.Value
	parent   *Node
	children []*Node

	// epoch changes whenever children are added, removed or reordered.
	epoch uint64
}

// Load builds a shadow tree over v. v stays owned by the caller but must
// only be changed through the returned tree from now on.
func Load(v *value.Value) *Node {
	if v == nil {
		panic("tree: Load of nil value")
	}
	return newNode("", v, nil)
}

func newNode(key string, v *value.Value, parent *Node) *Node {
	n := &Node{key: key, val: v, parent: parent}
	n.initChildren()
	return n
}

func (n *Node) initChildren() {
	switch n.val.Type {
	case value.ArrayType:
		n.children = make([]*Node, len(n.val.Values))
		for i, v := range n.val.Values {
			n.children[i] = newNode("", v, n)
		}
	case value.ObjectType:
		n.children = make([]*Node, len(n.val.Values))
		for i, v := range n.val.Values {
			n.children[i] = newNode(n.val.Fields[i], v, n)
		}
	default:
		n.children = nil
	}
}

// destroyChildren releases every child subtree.
func (n *Node) destroyChildren() {
	for _, c := range n.children {
		c.release()
	}
	n.children = nil
	n.touch()
}

// release invalidates n and its descendants, deepest first.
func (n *Node) release() {
	for _, c := range n.children {
		c.release()
	}
	n.children = nil
	n.parent = nil
	n.val = nil
	n.epoch++
}

// Release tears down the tree rooted at n. Every node of the tree becomes
// invalid; the values are left as they are.
func (n *Node) Release() {
	if n.parent != nil {
		panic(fmt.Sprintf("tree: Release of non-root %s", n))
	}
	n.release()
}

func (n *Node) touch() {
	n.epoch++
}

// Valid reports whether n is still part of a tree. Nodes become invalid when
// their slot is removed or their tree is torn down.
func (n *Node) Valid() bool {
	return n != nil && n.val != nil
}

func (n *Node) Key() string {
	return n.key
}

// Value returns the aliased value. Callers must not modify it.
func (n *Node) Value() *value.Value {
	return n.val
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Child returns the child at row, or nil if row is out of range.
func (n *Node) Child(row int) *Node {
	if row < 0 || row >= len(n.children) {
		return nil
	}
	return n.children[row]
}

func (n *Node) ChildKey(row int) string {
	n.mustObject("ChildKey")
	n.mustRow(row, "ChildKey")
	return n.children[row].key
}

func (n *Node) ChildCount() int {
	return len(n.children)
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Row returns the index of n among its parent's children, or -1 for a
// root.
func (n *Node) Row() int {
	if n.parent == nil {
		return -1
	}
	return slices.Index(n.parent.children, n)
}

func (n *Node) Type() value.Type {
	return n.val.Type
}

// TypeName returns the human readable name of the node's value type.
func (n *Node) TypeName() string {
	return n.val.Type.String()
}

func (n *Node) IsRoot() bool   { return n.parent == nil }
func (n *Node) IsArray() bool  { return n.val.Type == value.ArrayType }
func (n *Node) IsObject() bool { return n.val.Type == value.ObjectType }

// IsPlain reports whether n holds a scalar and so has no children.
func (n *Node) IsPlain() bool {
	return n.val.Type.IsLeaf()
}

func (n *Node) Root() *Node {
	res := n
	for res.parent != nil {
		res = res.parent
	}
	return res
}

func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// IsAncestorOf reports whether n is a proper ancestor of o.
func (n *Node) IsAncestorOf(o *Node) bool {
	for p := o.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

func (n *Node) Visit(f func(n *Node, isPost bool) (bool, error)) error {
	dive, err := f(n, false)
	if err != nil {
		return err
	}
	if dive {
		for _, c := range slices.Clone(n.children) {
			if err := c.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(n, true); err != nil {
		return err
	}
	return nil
}

func (n *Node) String() string {
	if !n.Valid() {
		return "<released node>"
	}
	p := n.KPath()
	if p == "" {
		p = "<root>"
	}
	return fmt.Sprintf("%s (%s)", p, n.val.Type)
}

func (n *Node) mustContainer(op string) {
	if n.val.Type.IsLeaf() {
		panic(fmt.Sprintf("tree: %s on plain %s node", op, n.val.Type))
	}
}

func (n *Node) mustArray(op string) {
	if n.val.Type != value.ArrayType {
		panic(fmt.Sprintf("tree: %s on %s node, want array", op, n.val.Type))
	}
}

func (n *Node) mustObject(op string) {
	if n.val.Type != value.ObjectType {
		panic(fmt.Sprintf("tree: %s on %s node, want object", op, n.val.Type))
	}
}

func (n *Node) mustRow(row int, op string) {
	if row < 0 || row >= len(n.children) {
		panic(fmt.Sprintf("tree: %s row %d out of range [0,%d)", op, row, len(n.children)))
	}
}

func (n *Node) mustPosition(pos int, op string) {
	if pos < 0 || pos > len(n.children) {
		panic(fmt.Sprintf("tree: %s position %d out of range [0,%d]", op, pos, len(n.children)))
	}
}

// mustNotContain panics when moving child under dst would create a cycle.
func mustNotContain(child, dst *Node, op string) {
	if child == dst || child.IsAncestorOf(dst) {
		panic(fmt.Sprintf("tree: %s moves %s into itself", op, child))
	}
}
