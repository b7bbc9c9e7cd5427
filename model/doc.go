// Package model presents a value tree as rows of key, value and type
// columns and applies positional structural edits to it.
//
// Every edit is bracketed by Observer.WillChange and Observer.DidChange so
// that a view caching rows can follow along. Bulk edits are performed and
// notified one row at a time. Key conflicts are not errors: they make
// Rename and MoveToKey report false, and make Insert and Move probe for an
// unused key.
package model
