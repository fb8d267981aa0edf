package layer

import (
	"testing"
)

func TestCloneLayer_DeepCopy(t *testing.T) {
	orig := &Layer{
		ID:      "a",
		Kind:    KindBlock,
		Classes: []string{"card"},
		Design:  map[string]any{"padding": "8px", "colors": map[string]any{"bg": "white"}},
		StyleOverrides: &StyleOverrides{
			Classes: []string{"wide"},
		},
		Settings:     map[string]any{"anchor": "top"},
		Interactions: []Interaction{{Trigger: "click", Action: "scroll", TargetLayerID: "b"}},
		Children: []*Layer{
			{ID: "a1", Kind: KindHeading, Text: "Hi"},
		},
	}

	c := CloneLayer(orig)

	// Same values
	if c.ID != "a" || c.Children[0].ID != "a1" {
		t.Error("clone changed IDs")
	}
	if c.Children[0].Text != "Hi" {
		t.Errorf("Text = %q, want %q", c.Children[0].Text, "Hi")
	}

	// No shared memory
	c.Classes[0] = "changed"
	c.Design["padding"] = "0"
	c.Design["colors"].(map[string]any)["bg"] = "black"
	c.StyleOverrides.Classes[0] = "changed"
	c.Settings["anchor"] = "bottom"
	c.Interactions[0].TargetLayerID = "changed"
	c.Children[0].Text = "Bye"

	if orig.Classes[0] != "card" {
		t.Error("Classes shared with clone")
	}
	if orig.Design["padding"] != "8px" {
		t.Error("Design shared with clone")
	}
	if orig.Design["colors"].(map[string]any)["bg"] != "white" {
		t.Error("nested Design map shared with clone")
	}
	if orig.StyleOverrides.Classes[0] != "wide" {
		t.Error("StyleOverrides shared with clone")
	}
	if orig.Settings["anchor"] != "top" {
		t.Error("Settings shared with clone")
	}
	if orig.Interactions[0].TargetLayerID != "b" {
		t.Error("Interactions shared with clone")
	}
	if orig.Children[0].Text != "Hi" {
		t.Error("Children shared with clone")
	}
}

func TestCloneLayer_Nil(t *testing.T) {
	if c := CloneLayer(nil); c != nil {
		t.Errorf("CloneLayer(nil) = %v, want nil", c)
	}
}

func TestCloneLayer_NilFieldsStayNil(t *testing.T) {
	c := CloneLayer(&Layer{ID: "a", Kind: KindBlock})
	if c.Classes != nil || c.Design != nil || c.StyleOverrides != nil || c.Interactions != nil {
		t.Error("nil fields materialized during clone")
	}
}

func TestCloneTree(t *testing.T) {
	tree := testTree()
	c := CloneTree(tree)

	if Count(c) != Count(tree) {
		t.Fatalf("Count = %d, want %d", Count(c), Count(tree))
	}
	c[0].Children[0].Name = "changed"
	if tree[0].Children[0].Name == "changed" {
		t.Error("CloneTree shares layers with input")
	}
}

func TestRegenerate_FreshIDs(t *testing.T) {
	orig := testTree()[0]
	before := CollectIDs([]*Layer{orig})

	c, idMap := Regenerate(orig)

	after := CollectIDs([]*Layer{c})
	if len(after) != len(before) {
		t.Fatalf("clone has %d IDs, want %d", len(after), len(before))
	}
	for id := range after {
		if before[id] {
			t.Errorf("ID %q survived regeneration", id)
		}
	}
	for old, fresh := range idMap {
		if !before[old] {
			t.Errorf("idMap old key %q not in source", old)
		}
		if !after[fresh] {
			t.Errorf("idMap value %q not in clone", fresh)
		}
	}
	// Source untouched
	if orig.ID != "body" {
		t.Errorf("source ID = %q, want body", orig.ID)
	}
}

func TestRegenerate_RemapsInternalInteractions(t *testing.T) {
	root := &Layer{
		ID:   "root",
		Kind: KindBlock,
		Children: []*Layer{
			{ID: "trigger", Kind: KindButton, Interactions: []Interaction{
				{Trigger: "click", Action: "scroll-to", TargetLayerID: "target"},
			}},
			{ID: "target", Kind: KindHeading},
		},
	}

	c, idMap := Regenerate(root)

	got := c.Children[0].Interactions[0].TargetLayerID
	if got != idMap["target"] {
		t.Errorf("remapped target = %q, want %q", got, idMap["target"])
	}
	if got == "target" {
		t.Error("internal interaction target not remapped")
	}
}

func TestRegenerate_ExternalInteractionUntouched(t *testing.T) {
	root := &Layer{
		ID:   "root",
		Kind: KindBlock,
		Interactions: []Interaction{
			{Trigger: "click", Action: "scroll-to", TargetLayerID: "elsewhere"},
		},
	}

	c, _ := Regenerate(root)

	if got := c.Interactions[0].TargetLayerID; got != "elsewhere" {
		t.Errorf("external target = %q, want elsewhere", got)
	}
}

func TestRegenerateTree_SharedIDMap(t *testing.T) {
	// An interaction in one subtree pointing into a sibling subtree must
	// be remapped when both are regenerated together.
	forest := []*Layer{
		{ID: "a", Kind: KindBlock, Interactions: []Interaction{
			{Trigger: "click", Action: "scroll-to", TargetLayerID: "b"},
		}},
		{ID: "b", Kind: KindBlock},
	}

	out, idMap := RegenerateTree(forest)

	if got := out[0].Interactions[0].TargetLayerID; got != idMap["b"] {
		t.Errorf("cross-subtree target = %q, want %q", got, idMap["b"])
	}
}
