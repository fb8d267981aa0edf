package mutate

import (
	"testing"

	"github.com/pagecraft/pagecraft/pkg/errors"
	"github.com/pagecraft/pagecraft/pkg/layer"
)

// page builds the tree used across the tests:
//
//	body
//	├── hero (section)
//	│   ├── title (heading)
//	│   └── cta (button)
//	└── footer (section)
//	    └── legal (paragraph)
func page() []*layer.Layer {
	return []*layer.Layer{
		{
			ID:   "body",
			Kind: layer.KindBody,
			Children: []*layer.Layer{
				{
					ID:   "hero",
					Kind: layer.KindSection,
					Children: []*layer.Layer{
						{ID: "title", Kind: layer.KindHeading, Text: "Welcome"},
						{ID: "cta", Kind: layer.KindButton, Text: "Start"},
					},
				},
				{
					ID:   "footer",
					Kind: layer.KindSection,
					Children: []*layer.Layer{
						{ID: "legal", Kind: layer.KindParagraph},
					},
				},
			},
		},
	}
}

func childIDs(l *layer.Layer) []string {
	out := make([]string, len(l.Children))
	for i, c := range l.Children {
		out[i] = c.ID
	}
	return out
}

func TestMove_BetweenParents(t *testing.T) {
	out, err := Move(page(), "cta", "footer", 0)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}

	footer := layer.FindByID(out, "footer")
	if got := childIDs(footer); len(got) != 2 || got[0] != "cta" || got[1] != "legal" {
		t.Errorf("footer children = %v, want [cta legal]", got)
	}
	hero := layer.FindByID(out, "hero")
	if got := childIDs(hero); len(got) != 1 || got[0] != "title" {
		t.Errorf("hero children = %v, want [title]", got)
	}
}

func TestMove_ReorderWithinParent(t *testing.T) {
	out, err := Move(page(), "cta", "hero", 0)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}

	hero := layer.FindByID(out, "hero")
	if got := childIDs(hero); got[0] != "cta" || got[1] != "title" {
		t.Errorf("hero children = %v, want [cta title]", got)
	}
}

func TestMove_IndexClamped(t *testing.T) {
	out, err := Move(page(), "title", "footer", 99)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	footer := layer.FindByID(out, "footer")
	if got := childIDs(footer); got[len(got)-1] != "title" {
		t.Errorf("footer children = %v, want title last", got)
	}

	out, err = Move(page(), "title", "footer", -5)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	footer = layer.FindByID(out, "footer")
	if got := childIDs(footer); got[0] != "title" {
		t.Errorf("footer children = %v, want title first", got)
	}
}

func TestMove_IntoSelf(t *testing.T) {
	_, err := Move(page(), "hero", "hero", 0)
	if errors.GetCode(err) != errors.ErrCodeInvalidTarget {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidTarget)
	}
}

func TestMove_IntoOwnDescendant(t *testing.T) {
	_, err := Move(page(), "hero", "title", 0)
	if errors.GetCode(err) != errors.ErrCodeInvalidTarget {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidTarget)
	}
}

func TestMove_IntoVoidLayer(t *testing.T) {
	_, err := Move(page(), "cta", "title", 0)
	if errors.GetCode(err) != errors.ErrCodeInvalidTarget {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidTarget)
	}
}

func TestMove_IntoComponentBoundLayer(t *testing.T) {
	tree := page()
	layer.FindByID(tree, "footer").ComponentID = "comp-1"

	_, err := Move(tree, "cta", "footer", 0)
	if errors.GetCode(err) != errors.ErrCodeInvalidTarget {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidTarget)
	}
}

func TestMove_MissingLayerIsNoop(t *testing.T) {
	tree := page()
	out, err := Move(tree, "ghost", "footer", 0)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if layer.Count(out) != layer.Count(tree) {
		t.Error("tree changed for missing layer")
	}
}

func TestMove_MissingParentIsNoop(t *testing.T) {
	out, err := Move(page(), "cta", "ghost", 0)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	hero := layer.FindByID(out, "hero")
	if got := childIDs(hero); len(got) != 2 {
		t.Errorf("hero children = %v, want unchanged", got)
	}
}

func TestMove_PreservesIDSet(t *testing.T) {
	tree := page()
	before := layer.CollectIDs(tree)

	out, err := Move(tree, "cta", "footer", 1)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}

	after := layer.CollectIDs(out)
	if len(after) != len(before) {
		t.Fatalf("ID count = %d, want %d", len(after), len(before))
	}
	for id := range before {
		if !after[id] {
			t.Errorf("ID %q lost during move", id)
		}
	}
}

func TestMove_DoesNotMutateInput(t *testing.T) {
	tree := page()
	if _, err := Move(tree, "cta", "footer", 0); err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	hero := layer.FindByID(tree, "hero")
	if got := childIDs(hero); len(got) != 2 {
		t.Errorf("input hero children = %v, want unchanged", got)
	}
}

func TestDuplicate_InsertsAfterOriginal(t *testing.T) {
	out, err := Duplicate(page(), "hero")
	if err != nil {
		t.Fatalf("Duplicate() error = %v", err)
	}

	body := layer.FindByID(out, "body")
	if len(body.Children) != 3 {
		t.Fatalf("body has %d children, want 3", len(body.Children))
	}
	if body.Children[0].ID != "hero" {
		t.Errorf("children[0] = %q, want hero", body.Children[0].ID)
	}
	dup := body.Children[1]
	if dup.ID == "hero" {
		t.Error("duplicate kept the original ID")
	}
	if dup.Kind != layer.KindSection || len(dup.Children) != 2 {
		t.Errorf("duplicate shape = %q/%d children, want section/2", dup.Kind, len(dup.Children))
	}
	if body.Children[2].ID != "footer" {
		t.Errorf("children[2] = %q, want footer", body.Children[2].ID)
	}
}

func TestDuplicate_FreshIDsEverywhere(t *testing.T) {
	tree := page()
	before := layer.CollectIDs(tree)

	out, err := Duplicate(tree, "hero")
	if err != nil {
		t.Fatalf("Duplicate() error = %v", err)
	}

	body := layer.FindByID(out, "body")
	dup := body.Children[1]
	layer.Walk([]*layer.Layer{dup}, func(l, _ *layer.Layer, _ int) bool {
		if before[l.ID] {
			t.Errorf("duplicate reuses ID %q", l.ID)
		}
		return true
	})
}

func TestDuplicate_MissingIsNoop(t *testing.T) {
	tree := page()
	out, err := Duplicate(tree, "ghost")
	if err != nil {
		t.Fatalf("Duplicate() error = %v", err)
	}
	if layer.Count(out) != layer.Count(tree) {
		t.Error("tree changed for missing layer")
	}
}

func TestDuplicateMany_PrunesNestedSelection(t *testing.T) {
	// Selecting a subtree and a layer inside it duplicates only the
	// subtree; the inner selection is already covered.
	out, err := DuplicateMany(page(), []string{"hero", "cta"})
	if err != nil {
		t.Fatalf("DuplicateMany() error = %v", err)
	}

	body := layer.FindByID(out, "body")
	if len(body.Children) != 3 {
		t.Errorf("body has %d children, want 3", len(body.Children))
	}
	hero := layer.FindByID(out, "hero")
	if len(hero.Children) != 2 {
		t.Errorf("hero has %d children, want 2 (cta not doubled)", len(hero.Children))
	}
}

func TestDuplicateMany_IndependentSiblings(t *testing.T) {
	out, err := DuplicateMany(page(), []string{"title", "cta"})
	if err != nil {
		t.Fatalf("DuplicateMany() error = %v", err)
	}
	hero := layer.FindByID(out, "hero")
	if len(hero.Children) != 4 {
		t.Errorf("hero has %d children, want 4", len(hero.Children))
	}
}

func TestDelete_RemovesSubtree(t *testing.T) {
	out := Delete(page(), "hero")

	if layer.FindByID(out, "hero") != nil {
		t.Error("hero still present")
	}
	if layer.FindByID(out, "title") != nil {
		t.Error("descendant title still present")
	}
	if layer.FindByID(out, "footer") == nil {
		t.Error("footer lost")
	}
}

func TestDelete_LockedLayerSurvives(t *testing.T) {
	tree := page()
	layer.FindByID(tree, "hero").Locked = true

	out := Delete(tree, "hero")
	if layer.FindByID(out, "hero") == nil {
		t.Error("locked hero was deleted")
	}
}

func TestDeleteMany_SkipsLockedContinuesRest(t *testing.T) {
	tree := page()
	layer.FindByID(tree, "hero").Locked = true

	out := DeleteMany(tree, []string{"hero", "footer"})
	if layer.FindByID(out, "hero") == nil {
		t.Error("locked hero was deleted")
	}
	if layer.FindByID(out, "footer") != nil {
		t.Error("footer survived batch delete")
	}
}

func TestDelete_MissingIsNoop(t *testing.T) {
	tree := page()
	out := Delete(tree, "ghost")
	if layer.Count(out) != layer.Count(tree) {
		t.Error("tree changed for missing layer")
	}
}

func TestCopy_IndependentWithSameIDs(t *testing.T) {
	tree := page()
	c := Copy(tree, "hero")
	if c == nil {
		t.Fatal("Copy() = nil")
	}
	if c.ID != "hero" || c.Children[0].ID != "title" {
		t.Error("copy changed IDs")
	}

	c.Children[0].Text = "changed"
	if layer.FindByID(tree, "title").Text == "changed" {
		t.Error("copy shares memory with source")
	}
}

func TestCopy_Missing(t *testing.T) {
	if c := Copy(page(), "ghost"); c != nil {
		t.Errorf("Copy(ghost) = %v, want nil", c)
	}
}

func TestCopyMany_SkipsMissing(t *testing.T) {
	out := CopyMany(page(), []string{"title", "ghost", "footer"})
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].ID != "title" || out[1].ID != "footer" {
		t.Errorf("copies = [%s %s], want [title footer]", out[0].ID, out[1].ID)
	}
}

func TestPasteAfter_InsertsSibling(t *testing.T) {
	staged := Copy(page(), "cta")

	out, err := PasteAfter(page(), "footer", staged)
	if err != nil {
		t.Fatalf("PasteAfter() error = %v", err)
	}

	body := layer.FindByID(out, "body")
	if len(body.Children) != 3 {
		t.Fatalf("body has %d children, want 3", len(body.Children))
	}
	pasted := body.Children[2]
	if pasted.Kind != layer.KindButton {
		t.Errorf("pasted kind = %q, want button", pasted.Kind)
	}
	if pasted.ID == "cta" {
		t.Error("pasted layer kept the staged ID")
	}
}

func TestPasteAfter_MissingTarget(t *testing.T) {
	staged := Copy(page(), "cta")
	_, err := PasteAfter(page(), "ghost", staged)
	if errors.GetCode(err) != errors.ErrCodeLayerNotFound {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeLayerNotFound)
	}
}

func TestPasteInside_AppendsAsLastChild(t *testing.T) {
	staged := Copy(page(), "cta")

	out, err := PasteInside(page(), "footer", staged)
	if err != nil {
		t.Fatalf("PasteInside() error = %v", err)
	}

	footer := layer.FindByID(out, "footer")
	if len(footer.Children) != 2 {
		t.Fatalf("footer has %d children, want 2", len(footer.Children))
	}
	if footer.Children[1].Kind != layer.KindButton {
		t.Errorf("last child kind = %q, want button", footer.Children[1].Kind)
	}
}

func TestPasteInside_MissingTarget(t *testing.T) {
	staged := Copy(page(), "cta")
	_, err := PasteInside(page(), "ghost", staged)
	if errors.GetCode(err) != errors.ErrCodeLayerNotFound {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeLayerNotFound)
	}
}

func TestPaste_RepeatedPastesAreDisjoint(t *testing.T) {
	staged := Copy(page(), "hero")

	out, err := PasteInside(page(), "footer", staged)
	if err != nil {
		t.Fatalf("first paste error = %v", err)
	}
	out, err = PasteInside(out, "footer", staged)
	if err != nil {
		t.Fatalf("second paste error = %v", err)
	}

	// Every ID in the tree must be unique across both pasted copies.
	seen := make(map[string]bool)
	layer.Walk(out, func(l, _ *layer.Layer, _ int) bool {
		if seen[l.ID] {
			t.Errorf("duplicate ID %q after repeated paste", l.ID)
		}
		seen[l.ID] = true
		return true
	})
}
