package tree

import (
	"fmt"

	"github.com/signadot/vtree/kpath"
)

// Path returns the kinded path from the root to n, nil for the root.
func (n *Node) Path() *kpath.KPath {
	var res *kpath.KPath
	for x := n; x.parent != nil; x = x.parent {
		var seg *kpath.KPath
		if x.parent.IsObject() {
			seg = kpath.Field(x.key)
		} else {
			seg = kpath.Index(x.Row())
		}
		seg.Next = res
		res = seg
	}
	return res
}

// KPath returns the kinded path string of n, "" for the root.
func (n *Node) KPath() string {
	return n.Path().String()
}

// Resolve finds the node at the kinded path p below n.
func (n *Node) Resolve(p string) (*Node, error) {
	kp, err := kpath.Parse(p)
	if err != nil {
		return nil, err
	}
	return n.ResolvePath(kp)
}

func (n *Node) ResolvePath(kp *kpath.KPath) (*Node, error) {
	if kp.HasWildcard() {
		return nil, fmt.Errorf("%w: %s", ErrWildcard, kp)
	}
	x := n
	for seg := kp; seg != nil; seg = seg.Next {
		next := x.step(seg)
		if next == nil {
			return nil, fmt.Errorf("%w: %s at %s", ErrNotFound, seg.SegmentString(), x)
		}
		x = next
	}
	return x, nil
}

func (n *Node) step(seg *kpath.KPath) *Node {
	switch {
	case seg.Field != nil:
		if !n.IsObject() {
			return nil
		}
		pos, found := n.val.FieldPos(*seg.Field)
		if !found {
			return nil
		}
		return n.children[pos]
	case seg.Index != nil:
		if !n.IsArray() {
			return nil
		}
		return n.Child(*seg.Index)
	}
	return nil
}

// Select returns the nodes below n matching p, which may contain
// wildcards, in tree order.
func (n *Node) Select(p string) ([]*Node, error) {
	kp, err := kpath.Parse(p)
	if err != nil {
		return nil, err
	}
	return n.selectPath(kp, nil), nil
}

func (n *Node) selectPath(kp *kpath.KPath, res []*Node) []*Node {
	if kp == nil {
		return append(res, n)
	}
	switch {
	case kp.FieldAll:
		if n.IsObject() {
			for _, c := range n.children {
				res = c.selectPath(kp.Next, res)
			}
		}
	case kp.IndexAll:
		if n.IsArray() {
			for _, c := range n.children {
				res = c.selectPath(kp.Next, res)
			}
		}
	default:
		if c := n.step(kp); c != nil {
			res = c.selectPath(kp.Next, res)
		}
	}
	return res
}
