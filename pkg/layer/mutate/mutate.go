package mutate

import (
	"github.com/pagecraft/pagecraft/pkg/errors"
	"github.com/pagecraft/pagecraft/pkg/layer"
)

// Move detaches the identified layer and splices it into the target
// parent's children at targetIndex (clamped to range). All other
// relative ordering is preserved.
//
// An empty targetParentID means root level. The move is rejected with
// ErrCodeInvalidTarget when the target parent is the layer itself or
// one of its descendants (a containment cycle), or when the target
// parent cannot take children. A missing layer or target parent is a
// no-op: the tree comes back unchanged with a nil error.
func Move(tree []*layer.Layer, id, targetParentID string, targetIndex int) ([]*layer.Layer, error) {
	if targetParentID == id {
		return tree, errors.New(errors.ErrCodeInvalidTarget, "cannot move layer %s into itself", id)
	}
	if targetParentID != "" && layer.IsDescendant(tree, id, targetParentID) {
		return tree, errors.New(errors.ErrCodeInvalidTarget, "cannot move layer %s into its own descendant %s", id, targetParentID)
	}

	if targetParentID != "" {
		parent := layer.FindByID(tree, targetParentID)
		if parent == nil {
			return tree, nil
		}
		if !parent.CanHaveChildren() {
			return tree, errors.New(errors.ErrCodeInvalidTarget, "layer %s cannot contain children", targetParentID)
		}
	}

	t := layer.CloneTree(tree)
	t, node := detachByID(t, id)
	if node == nil {
		return tree, nil
	}

	if targetParentID == "" {
		t = insertAt(t, targetIndex, node)
		return t, nil
	}

	parent := layer.FindByID(t, targetParentID)
	parent.Children = insertAt(parent.Children, targetIndex, node)
	return t, nil
}

// Duplicate deep-clones the identified subtree with every ID
// regenerated and inserts the clone immediately after the original
// among its siblings. A missing ID is a no-op.
func Duplicate(tree []*layer.Layer, id string) ([]*layer.Layer, error) {
	return DuplicateMany(tree, []string{id})
}

// DuplicateMany duplicates each selected subtree. IDs that are
// descendants of other selected IDs are dropped first: duplicating an
// ancestor already duplicates its descendants.
func DuplicateMany(tree []*layer.Layer, ids []string) ([]*layer.Layer, error) {
	t := layer.CloneTree(tree)
	changed := false

	for _, id := range pruneSelection(tree, ids) {
		loc, ok := layer.FindWithParent(t, id)
		if !ok {
			continue
		}
		clone, _ := layer.Regenerate(loc.Layer)
		if loc.Parent == nil {
			t = insertAt(t, loc.Index+1, clone)
		} else {
			loc.Parent.Children = insertAt(loc.Parent.Children, loc.Index+1, clone)
		}
		changed = true
	}

	if !changed {
		return tree, nil
	}
	return t, nil
}

// Delete removes the identified layer and its descendants. A locked
// layer is never removed, even when explicitly targeted; the call
// silently skips it.
func Delete(tree []*layer.Layer, id string) []*layer.Layer {
	return DeleteMany(tree, []string{id})
}

// DeleteMany removes each selected subtree, de-duplicating IDs that are
// descendants of other selected IDs first. Locked layers are skipped,
// which is not an error for the rest of the batch.
func DeleteMany(tree []*layer.Layer, ids []string) []*layer.Layer {
	t := layer.CloneTree(tree)
	changed := false

	for _, id := range pruneSelection(tree, ids) {
		target := layer.FindByID(t, id)
		if target == nil || target.Locked {
			continue
		}
		t = layer.RemoveByID(t, id)
		changed = true
	}

	if !changed {
		return tree
	}
	return t
}

// Copy returns an independent deep clone of the identified subtree with
// IDs unchanged, as a staging value for cross-context reuse. The source
// tree is not touched. Returns nil if the ID is absent.
func Copy(tree []*layer.Layer, id string) *layer.Layer {
	found := layer.FindByID(tree, id)
	if found == nil {
		return nil
	}
	return layer.CloneLayer(found)
}

// CopyMany is [Copy] over a selection, skipping missing IDs. Selection
// order is preserved.
func CopyMany(tree []*layer.Layer, ids []string) []*layer.Layer {
	var out []*layer.Layer
	for _, id := range ids {
		if c := Copy(tree, id); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// PasteAfter clones subtree with freshly regenerated IDs at every level
// and inserts it as the next sibling of the target layer. Unlike the
// other operations, a missing target is reported explicitly.
func PasteAfter(tree []*layer.Layer, targetID string, subtree *layer.Layer) ([]*layer.Layer, error) {
	t := layer.CloneTree(tree)
	loc, ok := layer.FindWithParent(t, targetID)
	if !ok {
		return tree, errors.New(errors.ErrCodeLayerNotFound, "paste target %s not found", targetID)
	}

	clone, _ := layer.Regenerate(subtree)
	if loc.Parent == nil {
		t = insertAt(t, loc.Index+1, clone)
	} else {
		loc.Parent.Children = insertAt(loc.Parent.Children, loc.Index+1, clone)
	}
	return t, nil
}

// PasteInside clones subtree with freshly regenerated IDs and appends
// it as the last child of the target layer. The target's capability to
// take children is not checked here; interactive callers validate the
// drop first, and programmatic callers may intentionally stage children
// under a not-yet-rebindable layer.
func PasteInside(tree []*layer.Layer, targetID string, subtree *layer.Layer) ([]*layer.Layer, error) {
	t := layer.CloneTree(tree)
	target := layer.FindByID(t, targetID)
	if target == nil {
		return tree, errors.New(errors.ErrCodeLayerNotFound, "paste target %s not found", targetID)
	}

	clone, _ := layer.Regenerate(subtree)
	target.Children = append(target.Children, clone)
	return t, nil
}

// pruneSelection drops IDs that are descendants of other selected IDs
// and de-duplicates, preserving first-seen order.
func pruneSelection(tree []*layer.Layer, ids []string) []string {
	seen := make(map[string]bool, len(ids))
	var out []string
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		covered := false
		for _, other := range ids {
			if other != id && layer.IsDescendant(tree, other, id) {
				covered = true
				break
			}
		}
		if !covered {
			out = append(out, id)
		}
	}
	return out
}

// detachByID removes the identified layer from the tree in place and
// returns the updated forest along with the detached node, or nil if
// the ID is absent.
func detachByID(siblings []*layer.Layer, id string) ([]*layer.Layer, *layer.Layer) {
	for i, l := range siblings {
		if l.ID == id {
			out := append(siblings[:i:i], siblings[i+1:]...)
			return out, l
		}
		if kids, node := detachByID(l.Children, id); node != nil {
			l.Children = kids
			return siblings, node
		}
	}
	return siblings, nil
}

// insertAt splices l into siblings at index i, clamped to range.
func insertAt(siblings []*layer.Layer, i int, l *layer.Layer) []*layer.Layer {
	if i < 0 {
		i = 0
	}
	if i > len(siblings) {
		i = len(siblings)
	}
	out := make([]*layer.Layer, 0, len(siblings)+1)
	out = append(out, siblings[:i]...)
	out = append(out, l)
	out = append(out, siblings[i:]...)
	return out
}
