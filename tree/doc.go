// Package tree keeps a shadow tree of navigation nodes in sync with a
// [value.Value] tree that it edits in place.
//
// Every node aliases exactly one value and owns one child node per element
// or entry of that value. All structural edits go through nodes, which
// update the value and the node graph together so that neither is ever
// observed out of step.
//
// Keyed edits (inserting into, renaming within, or moving into an object)
// are two-phase: a Propose method checks the destination key and returns a
// [Proposal] holding the destination row, and [Proposal.Commit] applies
// it. The CommitFunc variants run the same protocol through a callback.
//
// Misuse such as an out of range row or an array operation on an object
// panics; key conflicts and lossy conversions are reported as errors.
package tree
