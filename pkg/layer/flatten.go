package layer

// FlattenedItem is one row of the linear projection used by list-based
// views of the tree. It is derived data: recomputed on demand from the
// tree plus the collapsed set, and never persisted.
type FlattenedItem struct {
	ID        string
	Layer     *Layer
	Depth     int
	ParentID  string // empty for root-level layers
	Index     int    // position among siblings
	Collapsed bool
}

// Flatten produces the pre-order linear projection of the tree.
// Subtrees rooted at a collapsed ID are omitted entirely: the collapsed
// layer itself appears (marked Collapsed), its descendants do not.
func Flatten(tree []*Layer, collapsed map[string]bool) []FlattenedItem {
	var items []FlattenedItem
	flatten(tree, "", 0, collapsed, &items)
	return items
}

func flatten(siblings []*Layer, parentID string, depth int, collapsed map[string]bool, items *[]FlattenedItem) {
	for i, l := range siblings {
		isCollapsed := collapsed[l.ID]
		*items = append(*items, FlattenedItem{
			ID:        l.ID,
			Layer:     l,
			Depth:     depth,
			ParentID:  parentID,
			Index:     i,
			Collapsed: isCollapsed,
		})
		if !isCollapsed {
			flatten(l.Children, l.ID, depth+1, collapsed, items)
		}
	}
}
