package layer

import (
	"testing"
)

func TestFlatten_PreOrder(t *testing.T) {
	items := Flatten(testTree(), nil)

	want := []string{"body", "hero", "title", "cta", "footer"}
	if len(items) != len(want) {
		t.Fatalf("len(items) = %d, want %d", len(items), len(want))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, id)
		}
	}
}

func TestFlatten_DepthAndParent(t *testing.T) {
	items := Flatten(testTree(), nil)

	byID := make(map[string]FlattenedItem)
	for _, it := range items {
		byID[it.ID] = it
	}

	tests := []struct {
		id       string
		depth    int
		parentID string
		index    int
	}{
		{"body", 0, "", 0},
		{"hero", 1, "body", 0},
		{"title", 2, "hero", 0},
		{"cta", 2, "hero", 1},
		{"footer", 1, "body", 1},
	}
	for _, tt := range tests {
		it := byID[tt.id]
		if it.Depth != tt.depth || it.ParentID != tt.parentID || it.Index != tt.index {
			t.Errorf("%s: depth=%d parent=%q index=%d, want %d/%q/%d",
				tt.id, it.Depth, it.ParentID, it.Index, tt.depth, tt.parentID, tt.index)
		}
	}
}

func TestFlatten_CollapsedHidesDescendants(t *testing.T) {
	items := Flatten(testTree(), map[string]bool{"hero": true})

	want := []string{"body", "hero", "footer"}
	if len(items) != len(want) {
		t.Fatalf("len(items) = %d, want %d", len(items), len(want))
	}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("items[%d].ID = %q, want %q", i, items[i].ID, id)
		}
	}
	if !items[1].Collapsed {
		t.Error("hero not marked collapsed")
	}
}

func TestFlatten_Empty(t *testing.T) {
	if items := Flatten(nil, nil); len(items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(items))
	}
}
