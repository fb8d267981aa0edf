// Package component implements reusable component instancing for page
// trees: binding layers to a shared master tree, detaching them again,
// and guarding edits against circular component references.
package component

import (
	"github.com/pagecraft/pagecraft/pkg/layer"
)

// Component is a reusable named master tree. Layers reference a
// component by ID; the component owns its Layers, the referencing
// layers do not.
type Component struct {
	ID     string         `json:"id" bson:"id"`
	Name   string         `json:"name" bson:"name"`
	Layers []*layer.Layer `json:"layers" bson:"layers"`
}

// NewID returns a fresh component ID.
func NewID() string { return layer.NewID() }

// ApplyToLayer returns a copy of l bound to the component. Override
// fields are cleared; from this point the layer renders the component's
// layers, and its own children are no longer authoritative.
func ApplyToLayer(l *layer.Layer, c *Component) *layer.Layer {
	bound := layer.CloneLayer(l)
	bound.ComponentID = c.ID
	bound.ComponentOverrides = nil
	return bound
}

// DetachFromLayer returns a copy of l with the component link and
// overrides stripped. The component's content is not reintroduced; the
// single-layer variant severs the link only. Detaching an already
// detached layer is a no-op.
func DetachFromLayer(l *layer.Layer) *layer.Layer {
	detached := layer.CloneLayer(l)
	detached.ComponentID = ""
	detached.ComponentOverrides = nil
	return detached
}

// DetachAndReplaceInTree splices the component's master layers, deep-
// cloned with full ID regeneration, in place of every layer bound to
// componentID: one layer in, N layers out. Sibling order around each
// replacement is preserved.
//
// When the component record is unavailable (nil), the bound layers keep
// their place with the link stripped instead, so no content is lost
// silently. The result leaves no layer referencing componentID.
func DetachAndReplaceInTree(tree []*layer.Layer, componentID string, c *Component) []*layer.Layer {
	out := make([]*layer.Layer, 0, len(tree))
	for _, l := range tree {
		if l.ComponentID == componentID {
			if c == nil {
				out = append(out, DetachFromLayer(l))
				continue
			}
			expanded, _ := layer.RegenerateTree(c.Layers)
			out = append(out, expanded...)
			continue
		}
		kept := layer.CloneLayer(l)
		kept.Children = DetachAndReplaceInTree(l.Children, componentID, c)
		out = append(out, kept)
	}
	return out
}

// CountUsages returns how many layers in the tree are bound to the
// component. Used for impact warnings before deletion.
func CountUsages(tree []*layer.Layer, componentID string) int {
	return len(ListUsageIDs(tree, componentID))
}

// ListUsageIDs returns the IDs of every layer bound to the component,
// in pre-order.
func ListUsageIDs(tree []*layer.Layer, componentID string) []string {
	var ids []string
	layer.Walk(tree, func(l, _ *layer.Layer, _ int) bool {
		if l.ComponentID == componentID {
			ids = append(ids, l.ID)
		}
		return true
	})
	return ids
}

// CollectComponentIDs returns the set of component IDs referenced
// anywhere in the tree, in pre-order of first occurrence.
func CollectComponentIDs(tree []*layer.Layer) []string {
	seen := make(map[string]bool)
	var ids []string
	layer.Walk(tree, func(l, _ *layer.Layer, _ int) bool {
		if l.ComponentID != "" && !seen[l.ComponentID] {
			seen[l.ComponentID] = true
			ids = append(ids, l.ComponentID)
		}
		return true
	})
	return ids
}
