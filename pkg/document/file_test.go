package document

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pagecraft/pagecraft/pkg/errors"
	"github.com/pagecraft/pagecraft/pkg/layer"
)

func TestReadWriteJSON_RoundTrip(t *testing.T) {
	d := sample()
	// Content fields the tree engine never interprets must survive.
	title := layer.FindByID(d.Layers, "title")
	title.Text = "Welcome"
	title.Settings = map[string]any{"anchor": "top"}
	title.Interactions = []layer.Interaction{
		{Trigger: "click", Action: "scroll-to", TargetLayerID: "hero"},
	}

	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if back.ID != d.ID || back.Name != d.Name {
		t.Errorf("identity changed: %s/%s", back.ID, back.Name)
	}
	gotTitle := layer.FindByID(back.Layers, "title")
	if gotTitle.Text != "Welcome" {
		t.Errorf("Text = %q, want Welcome", gotTitle.Text)
	}
	if gotTitle.Settings["anchor"] != "top" {
		t.Errorf("Settings = %v", gotTitle.Settings)
	}
	if len(gotTitle.Interactions) != 1 || gotTitle.Interactions[0].TargetLayerID != "hero" {
		t.Errorf("Interactions = %v", gotTitle.Interactions)
	}
	if back.Component("comp-card") == nil || back.Style("style-h") == nil {
		t.Error("definitions lost in round trip")
	}
}

func TestReadJSON_Malformed(t *testing.T) {
	_, err := ReadJSON(strings.NewReader("{not json"))
	if err == nil {
		t.Fatal("ReadJSON accepted malformed input")
	}
}

func TestReadJSON_RejectsInvalidDocument(t *testing.T) {
	d := sample()
	d.Styles = nil // dangling style reference

	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	_, err := ReadJSON(&buf)
	if errors.GetCode(err) != errors.ErrCodeStyleNotFound {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeStyleNotFound)
	}
}

func TestImportExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.json")

	d := sample()
	if err := ExportJSON(d, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if layer.Count(back.Layers) != layer.Count(d.Layers) {
		t.Errorf("layer count = %d, want %d", layer.Count(back.Layers), layer.Count(d.Layers))
	}
}

func TestImportJSON_MissingFile(t *testing.T) {
	_, err := ImportJSON(filepath.Join(t.TempDir(), "ghost.json"))
	if err == nil {
		t.Fatal("ImportJSON of missing file succeeded")
	}
}
