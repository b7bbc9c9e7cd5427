// Package query selects shadow tree nodes with expr-lang predicates.
//
// A predicate is evaluated once per node against an Env, for example
//
//	Kind == "number" && Value > 10
//	Depth == 1 && Has("name")
//	Get("meta.kind") == "service"
package query

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/vtree/tree"
	"github.com/signadot/vtree/value"
)

// Env is what a predicate sees of a node.
type Env struct {
	// Key is the node's key under an object, "" otherwise.
	Key string
	// Kind is the value type name: null, bool, number, string, array or
	// object.
	Kind string
	// Value is the node's value as plain Go data.
	Value    any
	Path     string
	Row      int
	Depth    int
	Children int
	IsRoot   bool

	node *tree.Node
}

// Has reports whether the node is an object with the given key.
func (e Env) Has(key string) bool {
	if !e.node.IsObject() {
		return false
	}
	_, found := e.node.Value().FieldPos(key)
	return found
}

// Get returns the value at kinded path p below the node, or nil.
func (e Env) Get(p string) any {
	n, err := e.node.Resolve(p)
	if err != nil {
		return nil
	}
	return value.ToAny(n.Value())
}

func EnvOf(n *tree.Node) Env {
	return Env{
		Key:      n.Key(),
		Kind:     n.TypeName(),
		Value:    value.ToAny(n.Value()),
		Path:     n.KPath(),
		Row:      n.Row(),
		Depth:    n.Depth(),
		Children: n.ChildCount(),
		IsRoot:   n.IsRoot(),
		node:     n,
	}
}

type Query struct {
	src  string
	prog *vm.Program
}

// Compile compiles a boolean predicate.
func Compile(src string) (*Query, error) {
	prog, err := expr.Compile(src, expr.Env(Env{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", src, err)
	}
	return &Query{src: src, prog: prog}, nil
}

func (q *Query) String() string {
	return q.src
}

func (q *Query) Match(n *tree.Node) (bool, error) {
	out, err := vm.Run(q.prog, EnvOf(n))
	if err != nil {
		return false, fmt.Errorf("query %q at %s: %w", q.src, n, err)
	}
	return out.(bool), nil
}

// Select returns the nodes of the subtree at root matching q, parents
// before children.
func Select(root *tree.Node, q *Query) ([]*tree.Node, error) {
	var res []*tree.Node
	err := root.Visit(func(n *tree.Node, isPost bool) (bool, error) {
		if isPost {
			return false, nil
		}
		ok, err := q.Match(n)
		if err != nil {
			return false, err
		}
		if ok {
			res = append(res, n)
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
