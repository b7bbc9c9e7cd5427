package model

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/signadot/vtree/tree"
)

type Op int

const (
	OpReset Op = iota
	OpInsert
	OpRemove
	OpMove
	OpData
)

func (o Op) String() string {
	switch o {
	case OpReset:
		return "reset"
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpMove:
		return "move"
	case OpData:
		return "data"
	}
	return "<unknown op>"
}

// Change describes one structural or data change.
//
// Rows First through Last of Parent are affected; Parent is the root node
// for top level rows. For OpInsert the rows are where the new children
// land. For OpMove, DstRow is the destination in DstParent counted before
// the moved rows are taken out. For OpData, Columns lists the changed
// columns. OpReset carries no rows.
type Change struct {
	Op        Op
	Parent    *tree.Node
	First     int
	Last      int
	DstParent *tree.Node
	DstRow    int
	Columns   []Column
}

func (c Change) String() string {
	b := &strings.Builder{}
	b.WriteString(c.Op.String())
	if c.Op == OpReset {
		return b.String()
	}
	fmt.Fprintf(b, " %s[%d:%d]", pathOf(c.Parent), c.First, c.Last)
	switch c.Op {
	case OpMove:
		fmt.Fprintf(b, " -> %s[%d]", pathOf(c.DstParent), c.DstRow)
	case OpData:
		fmt.Fprintf(b, " %v", c.Columns)
	}
	return b.String()
}

func pathOf(n *tree.Node) string {
	if n == nil || n.IsRoot() {
		return "<root>"
	}
	return n.KPath()
}

// Observer is told about every change to a model. WillChange is called
// before the tree is modified and DidChange right after; both see a
// consistent tree. Observers must not modify the model.
type Observer interface {
	WillChange(c Change)
	DidChange(c Change)
}

// ObserverFuncs adapts a pair of funcs to Observer. Either may be nil.
type ObserverFuncs struct {
	Will func(Change)
	Did  func(Change)
}

func (o ObserverFuncs) WillChange(c Change) {
	if o.Will != nil {
		o.Will(c)
	}
}

func (o ObserverFuncs) DidChange(c Change) {
	if o.Did != nil {
		o.Did(c)
	}
}

// LogObserver logs each completed change at debug level.
type LogObserver struct {
	Logger *slog.Logger
}

func (o LogObserver) WillChange(Change) {}

func (o LogObserver) DidChange(c Change) {
	args := []any{"op", c.Op.String()}
	if c.Op != OpReset {
		args = append(args, "parent", pathOf(c.Parent), "first", c.First, "last", c.Last)
	}
	switch c.Op {
	case OpMove:
		args = append(args, "dst", pathOf(c.DstParent), "dstRow", c.DstRow)
	case OpData:
		args = append(args, "columns", fmt.Sprint(c.Columns))
	}
	o.Logger.Debug("change", args...)
}
