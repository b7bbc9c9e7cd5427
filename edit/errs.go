package edit

import "errors"

var (
	ErrScript = errors.New("malformed edit script")
	ErrPath   = errors.New("bad path")
	// ErrConflict reports an add, move or rename onto a key which is
	// already present. Existing entries are never replaced implicitly.
	ErrConflict = errors.New("key conflict")
	ErrTest     = errors.New("test failed")
)
