package component

import (
	"testing"

	"github.com/pagecraft/pagecraft/pkg/layer"
)

// comp builds a component whose master references the given component IDs.
func comp(id string, refs ...string) *Component {
	c := &Component{ID: id, Name: id}
	for _, ref := range refs {
		c.Layers = append(c.Layers, &layer.Layer{
			ID: layer.NewID(), Kind: layer.KindBlock, ComponentID: ref,
		})
	}
	return c
}

// instanceOf is a layer bound to the given component.
func instanceOf(componentID string) *layer.Layer {
	return &layer.Layer{ID: layer.NewID(), Kind: layer.KindBlock, ComponentID: componentID}
}

func TestWouldCreateCircularReference_DirectSelfReference(t *testing.T) {
	check := WouldCreateCircularReference("a", []*layer.Layer{instanceOf("a")}, nil)

	if !check.WouldCycle {
		t.Fatal("self-reference not detected")
	}
	want := []string{"a", "a"}
	if len(check.CyclePath) != 2 || check.CyclePath[0] != "a" || check.CyclePath[1] != "a" {
		t.Errorf("CyclePath = %v, want %v", check.CyclePath, want)
	}
}

func TestWouldCreateCircularReference_TwoStepCycle(t *testing.T) {
	// b already references a; adding an instance of b to a closes a → b → a.
	all := []*Component{comp("a"), comp("b", "a")}

	check := WouldCreateCircularReference("a", []*layer.Layer{instanceOf("b")}, all)

	if !check.WouldCycle {
		t.Fatal("two-step cycle not detected")
	}
	want := []string{"a", "b", "a"}
	if len(check.CyclePath) != len(want) {
		t.Fatalf("CyclePath = %v, want %v", check.CyclePath, want)
	}
	for i := range want {
		if check.CyclePath[i] != want[i] {
			t.Errorf("CyclePath[%d] = %q, want %q", i, check.CyclePath[i], want[i])
		}
	}
}

func TestWouldCreateCircularReference_TransitiveCycle(t *testing.T) {
	// c → b → a exists; adding c to a closes a → c → b → a.
	all := []*Component{comp("a"), comp("b", "a"), comp("c", "b")}

	check := WouldCreateCircularReference("a", []*layer.Layer{instanceOf("c")}, all)

	if !check.WouldCycle {
		t.Fatal("transitive cycle not detected")
	}
	if len(check.CyclePath) != 4 || check.CyclePath[0] != "a" || check.CyclePath[3] != "a" {
		t.Errorf("CyclePath = %v, want a c b a", check.CyclePath)
	}
}

func TestWouldCreateCircularReference_CleanChain(t *testing.T) {
	// a → b → c is a plain chain, no path back.
	all := []*Component{comp("a"), comp("b", "c"), comp("c")}

	check := WouldCreateCircularReference("a", []*layer.Layer{instanceOf("b")}, all)

	if check.WouldCycle {
		t.Errorf("clean chain flagged as cycle, path %v", check.CyclePath)
	}
	if check.CyclePath != nil {
		t.Errorf("CyclePath = %v, want nil", check.CyclePath)
	}
}

func TestWouldCreateCircularReference_SharedDependencyIsNotACycle(t *testing.T) {
	// Both b and c reference d. Adding both to a is a diamond, not a cycle.
	all := []*Component{comp("a"), comp("b", "d"), comp("c", "d"), comp("d")}

	check := WouldCreateCircularReference("a", []*layer.Layer{instanceOf("b"), instanceOf("c")}, all)

	if check.WouldCycle {
		t.Errorf("diamond flagged as cycle, path %v", check.CyclePath)
	}
}

func TestWouldCreateCircularReference_NoComponentRefsInAddition(t *testing.T) {
	added := []*layer.Layer{{ID: "plain", Kind: layer.KindHeading}}
	check := WouldCreateCircularReference("a", added, []*Component{comp("a")})
	if check.WouldCycle {
		t.Error("plain layers flagged as cycle")
	}
}

func TestWouldCreateCircularReference_PreexistingCycleTerminates(t *testing.T) {
	// b ↔ c already cycle with each other. Checking an unrelated edit on
	// a must terminate and come back clean.
	all := []*Component{comp("a"), comp("b", "c"), comp("c", "b"), comp("d")}

	check := WouldCreateCircularReference("a", []*layer.Layer{instanceOf("d")}, all)

	if check.WouldCycle {
		t.Errorf("unrelated edit flagged, path %v", check.CyclePath)
	}
}

func TestWouldCreateCircularReference_DeepReference(t *testing.T) {
	// The added layers reference b from deep inside a subtree.
	added := []*layer.Layer{
		{
			ID: "wrap", Kind: layer.KindSection,
			Children: []*layer.Layer{
				{ID: "deep", Kind: layer.KindBlock, ComponentID: "b"},
			},
		},
	}
	all := []*Component{comp("a"), comp("b", "a")}

	check := WouldCreateCircularReference("a", added, all)
	if !check.WouldCycle {
		t.Error("cycle through nested reference not detected")
	}
}
