// Package layer defines the document tree of a pagecraft page and the
// read-only utilities every other package builds on.
//
// # Data Model
//
// A page is an ordered forest of [Layer] nodes. Each layer owns its
// Children exclusively; there are no parent back-pointers, so the
// structure is a strict single-owner tree and all traversals are
// top-down. Layers can additionally reference shared definitions:
//
//   - ComponentID links the layer to a reusable component master tree.
//     A bound layer renders the component's layers, not its own
//     children, so its local Children are not authoritative.
//   - StyleID links the layer to a shared style, with per-field
//     divergence tracked in StyleOverrides.
//
// Both are references, never ownership.
//
// # Purity
//
// Every exported operation in this package and its subpackages treats
// the input tree as immutable: results are freshly built trees and the
// original is left untouched. Callers swap the returned value into
// their own state; no locking is needed because no value is shared.
//
// # Identity
//
// Layer IDs are process-generated UUIDs (see [NewID]). Operations that
// introduce layers (duplicate, paste, component detach-and-replace)
// regenerate every ID inside the introduced subtree through a single
// old-to-new map, so cross-layer references internal to that subtree
// keep pointing at the right copies.
package layer
