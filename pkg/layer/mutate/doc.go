// Package mutate implements the structural edit operations of the page
// tree: move, duplicate, delete, copy and paste.
//
// Every operation is a pure transform from one tree value to the next.
// The input tree is never modified; on success a freshly built tree is
// returned, on rejection the input is handed back unchanged together
// with a structured error from pkg/errors. Rejection is an expected,
// frequent interactive outcome, so operations never panic.
//
// Operating on an ID that does not exist in the tree degrades to a
// no-op (the tree comes back unchanged with a nil error), except for
// paste, whose callers need the explicit "target not found" signal.
package mutate
