package tree

import "errors"

var (
	// ErrKeyConflict reports that an object already holds the requested key.
	// No mutation happened.
	ErrKeyConflict = errors.New("key conflict")
	// ErrStaleProposal reports a proposal whose containers changed after it
	// was made, or which was already committed.
	ErrStaleProposal = errors.New("stale proposal")

	ErrNotFound = errors.New("not found")
	ErrWildcard = errors.New("wildcard in node path")
)
