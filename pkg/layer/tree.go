package layer

// Location describes where a layer sits within a tree.
type Location struct {
	Layer  *Layer
	Parent *Layer // nil for root-level layers
	Index  int    // position among its siblings
}

// FindByID returns the first layer with the given ID in pre-order, or
// nil if no such layer exists. It never panics on a missing ID.
func FindByID(tree []*Layer, id string) *Layer {
	for _, l := range tree {
		if l.ID == id {
			return l
		}
		if found := FindByID(l.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// FindWithParent locates a layer together with its parent and sibling
// index. The parent is nil for root-level layers. The boolean result is
// false if the ID does not exist in the tree.
func FindWithParent(tree []*Layer, id string) (Location, bool) {
	return findWithParent(tree, nil, id)
}

func findWithParent(siblings []*Layer, parent *Layer, id string) (Location, bool) {
	for i, l := range siblings {
		if l.ID == id {
			return Location{Layer: l, Parent: parent, Index: i}, true
		}
		if loc, ok := findWithParent(l.Children, l, id); ok {
			return loc, true
		}
	}
	return Location{}, false
}

// RemoveByID returns a new tree with the identified layer and its whole
// subtree excised, at whatever depth it occurs. Siblings and untouched
// subtrees keep their relative order. If the ID is absent the result is
// an unchanged copy.
func RemoveByID(tree []*Layer, id string) []*Layer {
	out := make([]*Layer, 0, len(tree))
	for _, l := range tree {
		if l.ID == id {
			continue
		}
		c := CloneLayer(l)
		c.Children = RemoveByID(l.Children, id)
		out = append(out, c)
	}
	return out
}

// Walk visits every layer in pre-order, calling fn with the layer, its
// parent (nil at root level) and its depth. Returning false from fn
// stops the walk.
func Walk(tree []*Layer, fn func(l, parent *Layer, depth int) bool) {
	walk(tree, nil, 0, fn)
}

func walk(siblings []*Layer, parent *Layer, depth int, fn func(l, parent *Layer, depth int) bool) bool {
	for _, l := range siblings {
		if !fn(l, parent, depth) {
			return false
		}
		if !walk(l.Children, l, depth+1, fn) {
			return false
		}
	}
	return true
}

// CollectIDs returns the set of every layer ID in the tree.
func CollectIDs(tree []*Layer) map[string]bool {
	ids := make(map[string]bool)
	Walk(tree, func(l, _ *Layer, _ int) bool {
		ids[l.ID] = true
		return true
	})
	return ids
}

// IsDescendant reports whether descendantID occurs anywhere inside the
// subtree rooted at the layer with ancestorID. A layer is not its own
// descendant.
func IsDescendant(tree []*Layer, ancestorID, descendantID string) bool {
	root := FindByID(tree, ancestorID)
	if root == nil || ancestorID == descendantID {
		return false
	}
	return FindByID(root.Children, descendantID) != nil
}

// Count returns the total number of layers in the tree.
func Count(tree []*Layer) int {
	n := 0
	Walk(tree, func(*Layer, *Layer, int) bool {
		n++
		return true
	})
	return n
}
