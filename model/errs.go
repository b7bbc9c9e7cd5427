package model

import "errors"

var (
	ErrOutOfRange  = errors.New("row out of range")
	ErrKind        = errors.New("wrong node kind")
	ErrCycle       = errors.New("move into own subtree")
	ErrNotEditable = errors.New("not editable")
	ErrKeySpace    = errors.New("no free key")
	// ErrDetached reports a node which is not part of the model's current
	// tree.
	ErrDetached = errors.New("node not in model")
)
