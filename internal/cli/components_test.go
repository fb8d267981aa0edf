package cli

import (
	"strings"
	"testing"

	"github.com/pagecraft/pagecraft/pkg/component"
	"github.com/pagecraft/pagecraft/pkg/document"
	"github.com/pagecraft/pagecraft/pkg/layer"
)

func graphDoc() *document.Document {
	cardRef := layer.New(layer.KindBlock, "Card slot")
	cardRef.ComponentID = "comp-card"

	return &document.Document{
		ID:   "doc-1",
		Name: "Landing",
		Layers: []*layer.Layer{
			layer.New(layer.KindBody, "Body"),
		},
		Components: []*component.Component{
			{
				ID:     "comp-hero",
				Name:   "Hero",
				Layers: []*layer.Layer{cardRef},
			},
			{
				ID:     "comp-card",
				Name:   "Card",
				Layers: []*layer.Layer{layer.New(layer.KindBlock, "Card root")},
			},
		},
	}
}

func TestComponentsToDOT(t *testing.T) {
	dot := componentsToDOT(graphDoc())

	if !strings.HasPrefix(dot, "digraph components {") {
		t.Errorf("output should start with digraph header, got %q", dot[:40])
	}
	for _, want := range []string{
		`"comp-hero" [label="Hero"];`,
		`"comp-card" [label="Card"];`,
		`"comp-hero" -> "comp-card";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("output missing %q:\n%s", want, dot)
		}
	}
	if !strings.HasSuffix(dot, "}\n") {
		t.Error("output should end with closing brace")
	}
}

func TestComponentsToDOT_DanglingReference(t *testing.T) {
	d := graphDoc()
	d.Components = d.Components[:1] // drop comp-card, leaving a dangling edge

	dot := componentsToDOT(d)
	if !strings.Contains(dot, `"comp-card" [label="comp-card", style="rounded,dashed"];`) {
		t.Errorf("dangling reference should render dashed:\n%s", dot)
	}
	if !strings.Contains(dot, `"comp-hero" -> "comp-card";`) {
		t.Errorf("edge to dangling reference missing:\n%s", dot)
	}
}

func TestComponentsToDOT_NoComponents(t *testing.T) {
	d := &document.Document{ID: "doc-1", Name: "Empty", Layers: []*layer.Layer{layer.New(layer.KindBody, "Body")}}
	dot := componentsToDOT(d)
	if strings.Contains(dot, "->") {
		t.Errorf("empty document should produce no edges:\n%s", dot)
	}
}
