package layer

// CloneLayer returns a deep copy of l with all IDs preserved. Every
// field, including content and settings the tree engine never
// interprets, survives the copy unchanged. The clone shares no memory
// with the original.
func CloneLayer(l *Layer) *Layer {
	if l == nil {
		return nil
	}
	c := *l
	c.Children = CloneTree(l.Children)
	c.Classes = cloneStrings(l.Classes)
	c.Design = cloneAnyMap(l.Design)
	c.ComponentOverrides = cloneAnyMap(l.ComponentOverrides)
	c.Settings = cloneAnyMap(l.Settings)
	if l.StyleOverrides != nil {
		c.StyleOverrides = &StyleOverrides{
			Classes: cloneStrings(l.StyleOverrides.Classes),
			Design:  cloneAnyMap(l.StyleOverrides.Design),
		}
	}
	if l.Interactions != nil {
		c.Interactions = make([]Interaction, len(l.Interactions))
		copy(c.Interactions, l.Interactions)
	}
	return &c
}

// CloneTree deep-copies a forest of layers with IDs preserved.
func CloneTree(tree []*Layer) []*Layer {
	if tree == nil {
		return nil
	}
	out := make([]*Layer, len(tree))
	for i, l := range tree {
		out[i] = CloneLayer(l)
	}
	return out
}

// Regenerate deep-copies the subtree rooted at l, assigning a fresh ID
// to the root and every descendant. The returned map records old to new
// IDs for the whole walk.
//
// Interaction targets that point at layers inside the cloned subtree
// are rewritten through the map so the copies reference each other.
// Targets outside the subtree are left as they are; the renderer treats
// unresolved targets as inert.
func Regenerate(l *Layer) (*Layer, map[string]string) {
	idMap := make(map[string]string)
	c := regenerate(l, idMap)
	remapInteractions([]*Layer{c}, idMap)
	return c, idMap
}

// RegenerateTree is [Regenerate] over a forest, sharing one ID map so
// interaction references across the forest's subtrees stay intact.
func RegenerateTree(tree []*Layer) ([]*Layer, map[string]string) {
	idMap := make(map[string]string)
	out := make([]*Layer, len(tree))
	for i, l := range tree {
		out[i] = regenerate(l, idMap)
	}
	remapInteractions(out, idMap)
	return out, idMap
}

func regenerate(l *Layer, idMap map[string]string) *Layer {
	c := CloneLayer(l)
	var walk func(n *Layer)
	walk = func(n *Layer) {
		fresh := NewID()
		idMap[n.ID] = fresh
		n.ID = fresh
		for _, child := range n.Children {
			walk(child)
		}
	}
	walk(c)
	return c
}

func remapInteractions(tree []*Layer, idMap map[string]string) {
	Walk(tree, func(l, _ *Layer, _ int) bool {
		for i := range l.Interactions {
			if mapped, ok := idMap[l.Interactions[i].TargetLayerID]; ok {
				l.Interactions[i].TargetLayerID = mapped
			}
		}
		return true
	})
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// cloneAnyMap deep-copies a freeform attribute object. Nested maps and
// slices are copied recursively; scalar values are shared, which is
// safe because they are immutable.
func cloneAnyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneAny(v)
	}
	return out
}

func cloneAny(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneAnyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = cloneAny(e)
		}
		return out
	default:
		return v
	}
}
