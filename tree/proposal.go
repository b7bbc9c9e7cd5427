package tree

import (
	"fmt"

	"github.com/signadot/vtree/value"
)

type proposalOp int

const (
	opInsert proposalOp = iota
	opRename
	opMove
)

func (o proposalOp) String() string {
	switch o {
	case opInsert:
		return "insert"
	case opRename:
		return "rename"
	case opMove:
		return "move"
	}
	return "<unknown>"
}

// Proposal is a keyed structural change whose destination has been checked
// for conflicts but not yet applied.
//
// Row is the destination row in the destination object as it is before the
// change. For a rename, or a move within one object, the source entry is
// still counted; FinalRow gives the row the entry ends up at.
type Proposal struct {
	Row int

	op     proposalOp
	dst    *Node
	src    *Node
	srcRow int
	child  *Node
	key    string
	val    *value.Value

	dstEpoch uint64
	srcEpoch uint64
	noop     bool
	done     bool
}

// Noop reports whether committing the proposal changes nothing, as for a
// rename to the current key.
func (p *Proposal) Noop() bool {
	return p.noop
}

// Parent returns the object the entry lands in.
func (p *Proposal) Parent() *Node {
	return p.dst
}

func (p *Proposal) Key() string {
	return p.key
}

// FinalRow returns the row of the affected entry after Commit.
func (p *Proposal) FinalRow() int {
	if p.noop {
		return p.Row
	}
	if p.src == p.dst && p.Row > p.srcRow {
		return p.Row - 1
	}
	return p.Row
}

func (p *Proposal) String() string {
	return fmt.Sprintf("%s %q at row %d", p.op, p.key, p.Row)
}

// ProposeInsert checks whether key can be inserted into the object n. On
// conflict it returns ErrKeyConflict.
func (n *Node) ProposeInsert(key string, v *value.Value) (*Proposal, error) {
	n.mustObject("ProposeInsert")
	pos, found := n.val.FieldPos(key)
	if found {
		return nil, fmt.Errorf("%w: %q", ErrKeyConflict, key)
	}
	return &Proposal{
		Row:      pos,
		op:       opInsert,
		dst:      n,
		key:      key,
		val:      v,
		dstEpoch: n.epoch,
	}, nil
}

// ProposeRename checks whether the entry at row of the object n can be
// renamed to key. Renaming to the current key gives a no-op proposal at
// row.
func (n *Node) ProposeRename(row int, key string) (*Proposal, error) {
	n.mustObject("ProposeRename")
	n.mustRow(row, "ProposeRename")
	c := n.children[row]
	p := &Proposal{
		Row:      row,
		op:       opRename,
		dst:      n,
		src:      n,
		srcRow:   row,
		child:    c,
		key:      key,
		dstEpoch: n.epoch,
		srcEpoch: n.epoch,
	}
	if c.key == key {
		p.noop = true
		return p, nil
	}
	pos, found := n.val.FieldPos(key)
	if found {
		return nil, fmt.Errorf("%w: %q", ErrKeyConflict, key)
	}
	p.Row = pos
	return p, nil
}

// ProposeMoveToObject checks whether the child at row can move into the
// object dst under key. When dst is n this is ProposeRename.
func (n *Node) ProposeMoveToObject(row int, dst *Node, key string) (*Proposal, error) {
	n.mustContainer("ProposeMoveToObject")
	n.mustRow(row, "ProposeMoveToObject")
	dst.mustObject("ProposeMoveToObject")
	if dst == n {
		return n.ProposeRename(row, key)
	}
	c := n.children[row]
	mustNotContain(c, dst, "ProposeMoveToObject")
	pos, found := dst.val.FieldPos(key)
	if found {
		return nil, fmt.Errorf("%w: %q", ErrKeyConflict, key)
	}
	return &Proposal{
		Row:      pos,
		op:       opMove,
		dst:      dst,
		src:      n,
		srcRow:   row,
		child:    c,
		key:      key,
		dstEpoch: dst.epoch,
		srcEpoch: n.epoch,
	}, nil
}

func (p *Proposal) stale() bool {
	if p.done || !p.dst.Valid() || p.dst.epoch != p.dstEpoch {
		return true
	}
	if p.src == nil {
		return false
	}
	return !p.src.Valid() || p.src.epoch != p.srcEpoch || p.src.children[p.srcRow] != p.child
}

// Commit applies the proposal and returns the affected node. It fails with
// ErrStaleProposal if either container changed since the proposal was
// made or the proposal was already committed.
func (p *Proposal) Commit() (*Node, error) {
	if p.stale() {
		return nil, fmt.Errorf("%w: %s", ErrStaleProposal, p)
	}
	p.done = true
	if p.noop {
		return p.child, nil
	}
	switch p.op {
	case opInsert:
		p.dst.val.InsertField(p.Row, p.key, p.val)
		c := newNode(p.key, p.val, nil)
		p.dst.adopt(p.Row, c)
		return c, nil
	case opRename:
		return p.dst.renameAt(p.srcRow, p.Row, p.key), nil
	case opMove:
		c := p.src.detach(p.srcRow)
		p.dst.val.InsertField(p.Row, p.key, c.val)
		c.key = p.key
		p.dst.adopt(p.Row, c)
		return c, nil
	}
	panic("impossible production")
}

// CommitFunc gates a keyed change. It is called with the proposed
// destination row, or -1 when the key conflicts, and the change happens
// only if it returns true. It must not modify the tree.
type CommitFunc func(row int) bool

// InsertObjectChild inserts v under key into the object n if commit
// accepts the position. It returns the new child, or nil if nothing was
// inserted.
func (n *Node) InsertObjectChild(key string, v *value.Value, commit CommitFunc) *Node {
	p, err := n.ProposeInsert(key, v)
	return gate(p, err, commit)
}

// SetChildKey renames the entry at row of the object n to key if commit
// accepts the position. Renaming to the current key calls commit with row
// and changes nothing.
func (n *Node) SetChildKey(row int, key string, commit CommitFunc) bool {
	p, err := n.ProposeRename(row, key)
	return gate(p, err, commit) != nil
}

// MoveChildToObject moves the child at row into the object dst under key if
// commit accepts the position.
func (n *Node) MoveChildToObject(row int, dst *Node, key string, commit CommitFunc) bool {
	p, err := n.ProposeMoveToObject(row, dst, key)
	return gate(p, err, commit) != nil
}

// RemoveObjectChild removes the entry under key from the object n if
// commit accepts its row. commit gets -1 when there is no such key.
func (n *Node) RemoveObjectChild(key string, commit CommitFunc) bool {
	n.mustObject("RemoveObjectChild")
	pos, found := n.val.FieldPos(key)
	if !found {
		if commit != nil {
			commit(-1)
		}
		return false
	}
	epoch := n.epoch
	if commit != nil && !commit(pos) {
		return false
	}
	if n.epoch != epoch {
		panic(fmt.Sprintf("tree: commit callback modified %s", n))
	}
	n.RemoveChild(pos)
	return true
}

func gate(p *Proposal, err error, commit CommitFunc) *Node {
	if err != nil {
		if commit != nil {
			commit(-1)
		}
		return nil
	}
	if commit != nil && !commit(p.Row) {
		return nil
	}
	c, err := p.Commit()
	if err != nil {
		panic(fmt.Sprintf("tree: commit callback modified the tree: %v", err))
	}
	return c
}
