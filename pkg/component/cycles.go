package component

import (
	"github.com/pagecraft/pagecraft/pkg/layer"
)

// Components may embed other components, so an unchecked edit could
// make a master's render expansion infinite. Before layers are added to
// a component master, the would-be reference edges are checked against
// the dependency graph of all known components.

// CycleCheck is the result of a circular-reference check.
type CycleCheck struct {
	WouldCycle bool
	// CyclePath lists the component IDs along the offending reference
	// chain, starting and ending at the target component. Empty when
	// WouldCycle is false.
	CyclePath []string
}

// WouldCreateCircularReference reports whether adding layersBeingAdded
// to the master tree of targetComponentID would create a reference
// cycle among the given components.
//
// A direct self-reference is rejected immediately. Otherwise each
// component referenced by the added layers is searched depth-first for
// a path back to the target. The search keeps a per-invocation visited
// set, so it terminates even if the dependency graph already contains a
// cycle from an earlier, unchecked edit.
func WouldCreateCircularReference(targetComponentID string, layersBeingAdded []*layer.Layer, all []*Component) CycleCheck {
	refs := CollectComponentIDs(layersBeingAdded)

	for _, ref := range refs {
		if ref == targetComponentID {
			return CycleCheck{WouldCycle: true, CyclePath: []string{targetComponentID, targetComponentID}}
		}
	}

	deps := dependencyGraph(all)

	for _, ref := range refs {
		visited := make(map[string]bool)
		if path := findPath(deps, ref, targetComponentID, visited); path != nil {
			cycle := append([]string{targetComponentID}, path...)
			return CycleCheck{WouldCycle: true, CyclePath: cycle}
		}
	}

	return CycleCheck{}
}

// dependencyGraph maps each component ID to the component IDs
// referenced anywhere in its master layers.
func dependencyGraph(all []*Component) map[string][]string {
	deps := make(map[string][]string, len(all))
	for _, c := range all {
		deps[c.ID] = CollectComponentIDs(c.Layers)
	}
	return deps
}

// findPath returns the node sequence from `from` to `to` along
// dependency edges, or nil if no path exists. Diagnostic only; the
// first path found is reported.
func findPath(deps map[string][]string, from, to string, visited map[string]bool) []string {
	if from == to {
		return []string{from}
	}
	if visited[from] {
		return nil
	}
	visited[from] = true

	for _, next := range deps[from] {
		if path := findPath(deps, next, to, visited); path != nil {
			return append([]string{from}, path...)
		}
	}
	return nil
}
