package tree

import (
	"errors"
	"fmt"

	"github.com/signadot/vtree/value"
)

// ErrInvariant is wrapped by every error Check returns.
var ErrInvariant = errors.New("shadow tree out of sync")

// Check verifies that the subtree at n mirrors its value: one child per
// element or entry, object keys ascending and cached by the children,
// children aliasing their slots and linked back to n, and no children
// under scalars.
func (n *Node) Check() error {
	return n.Visit(func(x *Node, isPost bool) (bool, error) {
		if isPost {
			return false, nil
		}
		return true, x.checkLocal()
	})
}

func (n *Node) checkLocal() error {
	if n.val == nil {
		return fmt.Errorf("%w: released node in tree", ErrInvariant)
	}
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrInvariant, n, fmt.Sprintf(format, args...))
	}
	if n.val.Type.IsLeaf() {
		if len(n.children) != 0 {
			return fail("plain node has %d children", len(n.children))
		}
		return nil
	}
	if len(n.children) != len(n.val.Values) {
		return fail("%d children for %d values", len(n.children), len(n.val.Values))
	}
	if n.val.Type == value.ObjectType {
		if len(n.val.Fields) != len(n.val.Values) {
			return fail("%d fields for %d values", len(n.val.Fields), len(n.val.Values))
		}
		for i := 1; i < len(n.val.Fields); i++ {
			if n.val.Fields[i-1] >= n.val.Fields[i] {
				return fail("keys %q and %q out of order", n.val.Fields[i-1], n.val.Fields[i])
			}
		}
	}
	for i, c := range n.children {
		if c.parent != n {
			return fail("child %d has another parent", i)
		}
		if c.val != n.val.Values[i] {
			return fail("child %d aliases the wrong slot", i)
		}
		switch n.val.Type {
		case value.ObjectType:
			if c.key != n.val.Fields[i] {
				return fail("child %d key %q, want %q", i, c.key, n.val.Fields[i])
			}
		case value.ArrayType:
			if c.key != "" {
				return fail("array child %d has key %q", i, c.key)
			}
		}
	}
	return nil
}
