package model

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/signadot/vtree/debug"
	"github.com/signadot/vtree/kpath"
	"github.com/signadot/vtree/tree"
	"github.com/signadot/vtree/typeset"
	"github.com/signadot/vtree/value"
)

// MaxKeyProbes bounds the number of candidate keys tried when an insert or
// move into an object needs a key which is not in use.
const MaxKeyProbes = 1 << 16

// Model exposes a value tree as rows and columns and performs positional
// structural edits on it, notifying observers around each change.
//
// Operations take a parent node and a row; a nil parent is the root. A
// Model is not safe for concurrent use.
type Model struct {
	root      *tree.Node
	types     *typeset.Set
	log       *slog.Logger
	observers []*observerEntry
}

type observerEntry struct {
	o Observer
}

type Option func(*Model)

// WithTypes sets the type names used for the type column and for Retype.
// The default is typeset.Kinds.
func WithTypes(s *typeset.Set) Option {
	return func(m *Model) { m.types = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.log = l }
}

func WithObserver(o Observer) Option {
	return func(m *Model) { m.Observe(o) }
}

// New returns a model holding null.
func New(opts ...Option) *Model {
	m := &Model{
		root:  tree.Load(value.Null()),
		types: typeset.Kinds,
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Observe registers o and returns a func which unregisters it.
func (m *Model) Observe(o Observer) (cancel func()) {
	e := &observerEntry{o: o}
	m.observers = append(m.observers, e)
	return func() {
		m.observers = slices.DeleteFunc(m.observers, func(x *observerEntry) bool {
			return x == e
		})
	}
}

func (m *Model) Types() *typeset.Set {
	return m.types
}

// Load replaces the whole tree with v, which the model adopts.
func (m *Model) Load(v *value.Value) {
	c := Change{Op: OpReset}
	m.will(c)
	m.root.Release()
	m.root = tree.Load(v)
	m.did(c)
	m.log.Debug("load", "type", v.Type.String(), "rows", m.root.ChildCount())
}

// LoadAny validates and loads decoded Go data, see value.FromAny.
func (m *Model) LoadAny(x any) error {
	v, err := value.FromAny(x)
	if err != nil {
		return err
	}
	m.Load(v)
	return nil
}

// Reset empties the model back to null.
func (m *Model) Reset() {
	m.Load(value.Null())
}

func (m *Model) Root() *tree.Node {
	return m.root
}

// Value returns the current value tree. It must not be modified.
func (m *Model) Value() *value.Value {
	return m.root.Value()
}

func (m *Model) Resolve(p string) (*tree.Node, error) {
	return m.root.Resolve(p)
}

func (m *Model) ResolvePath(kp *kpath.KPath) (*tree.Node, error) {
	return m.root.ResolvePath(kp)
}

// RowCount returns the number of children of parent.
func (m *Model) RowCount(parent *tree.Node) int {
	p, err := m.node(parent)
	if err != nil {
		return 0
	}
	return p.ChildCount()
}

// Index returns the child at row of parent.
func (m *Model) Index(parent *tree.Node, row int) (*tree.Node, error) {
	p, err := m.node(parent)
	if err != nil {
		return nil, err
	}
	c := p.Child(row)
	if c == nil {
		return nil, fmt.Errorf("%w: row %d of %d", ErrOutOfRange, row, p.ChildCount())
	}
	return c, nil
}

// node maps nil to the root and checks that n belongs to m.
func (m *Model) node(n *tree.Node) (*tree.Node, error) {
	if n == nil {
		return m.root, nil
	}
	if !n.Valid() || n.Root() != m.root {
		return nil, ErrDetached
	}
	return n, nil
}

func (m *Model) container(n *tree.Node) (*tree.Node, error) {
	p, err := m.node(n)
	if err != nil {
		return nil, err
	}
	if p.IsPlain() {
		return nil, fmt.Errorf("%w: %s is not a container", ErrKind, p)
	}
	return p, nil
}

func (m *Model) will(c Change) {
	if debug.Notify() {
		debug.Logf("will %s", c)
	}
	for _, e := range slices.Clone(m.observers) {
		e.o.WillChange(c)
	}
}

func (m *Model) did(c Change) {
	m.selfCheck(c)
	if debug.Notify() {
		debug.Logf("did %s", c)
	}
	for _, e := range slices.Clone(m.observers) {
		e.o.DidChange(c)
	}
}

func (m *Model) selfCheck(c Change) {
	if !debug.Check() {
		return
	}
	if err := m.root.Check(); err != nil {
		panic(fmt.Sprintf("model: after %s: %v", c, err))
	}
}
