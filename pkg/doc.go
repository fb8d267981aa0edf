// Package pkg provides the core libraries for the pagecraft page
// builder.
//
// # Overview
//
// A page is a tree of layers that can be bound to reusable components
// and styles. The pkg directory is organized around that model:
//
//  1. [layer] - The tree itself: traversal, cloning, projections
//  2. [layer/mutate] - Structural edits (move, duplicate, delete, paste)
//  3. [component] / [style] - Shared definition instancing and overrides
//  4. [drop] - Pointer-to-structure resolution for drag and drop
//  5. [document] - The persisted page shape and whole-document edits
//  6. [store], [session], [cache] - Infrastructure behind the API server
//
// # Architecture
//
// The typical data flow through an edit:
//
//	store (load document)
//	         ↓
//	    [drop] package (validate the gesture, if it was a drag)
//	         ↓
//	    [layer/mutate] / [document] (pure tree → tree transform)
//	         ↓
//	    store (persist the new value)
//
// The tree packages perform no I/O and hold no global state; every
// operation is a pure function from one tree value to the next.
package pkg
