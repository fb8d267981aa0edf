// Package document defines the persisted shape of a pagecraft page:
// the layer tree together with the components and styles it references.
//
// The format is the wire shape for the API, storage and the CLI alike.
// It is designed for round-trip fidelity: read, edit, write and re-read
// produce identical structures, including content fields the tree
// engine never interprets.
package document

import (
	"github.com/pagecraft/pagecraft/pkg/component"
	"github.com/pagecraft/pagecraft/pkg/errors"
	"github.com/pagecraft/pagecraft/pkg/layer"
	"github.com/pagecraft/pagecraft/pkg/style"
)

// Document is one editable page plus its shared definitions.
type Document struct {
	ID         string                 `json:"id" bson:"id"`
	Name       string                 `json:"name" bson:"name"`
	Layers     []*layer.Layer         `json:"layers" bson:"layers"`
	Components []*component.Component `json:"components,omitempty" bson:"components,omitempty"`
	Styles     []*style.Style         `json:"styles,omitempty" bson:"styles,omitempty"`
}

// New creates an empty document with a body root and a fresh ID.
func New(name string) *Document {
	return &Document{
		ID:     layer.NewID(),
		Name:   name,
		Layers: []*layer.Layer{layer.New(layer.KindBody, "Body")},
	}
}

// Clone returns a deep copy of the document with all IDs preserved.
func (d *Document) Clone() *Document {
	out := &Document{
		ID:     d.ID,
		Name:   d.Name,
		Layers: layer.CloneTree(d.Layers),
	}
	for _, c := range d.Components {
		out.Components = append(out.Components, &component.Component{
			ID:     c.ID,
			Name:   c.Name,
			Layers: layer.CloneTree(c.Layers),
		})
	}
	for _, s := range d.Styles {
		cp := *s
		cp.Classes = append([]string(nil), s.Classes...)
		cp.Design = copyDesign(s.Design)
		out.Styles = append(out.Styles, &cp)
	}
	return out
}

// Component returns the component with the given ID, or nil.
func (d *Document) Component(id string) *component.Component {
	for _, c := range d.Components {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// Style returns the style with the given ID, or nil.
func (d *Document) Style(id string) *style.Style {
	for _, s := range d.Styles {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Validate checks the document's structural integrity:
//
//  1. Layer IDs are unique across the page tree and all master trees
//  2. Component and style references resolve to existing definitions
//  3. The component dependency graph is acyclic
//
// Returns a structured error with an INVALID_DOCUMENT, *_NOT_FOUND or
// CIRCULAR_REFERENCE code describing the first violation found.
func (d *Document) Validate() error {
	seen := make(map[string]bool)
	trees := [][]*layer.Layer{d.Layers}
	for _, c := range d.Components {
		trees = append(trees, c.Layers)
	}

	for _, tree := range trees {
		var dup string
		layer.Walk(tree, func(l, _ *layer.Layer, _ int) bool {
			if seen[l.ID] {
				dup = l.ID
				return false
			}
			seen[l.ID] = true
			return true
		})
		if dup != "" {
			return errors.New(errors.ErrCodeInvalidDocument, "duplicate layer id %s", dup)
		}
	}

	for _, tree := range trees {
		var refErr error
		layer.Walk(tree, func(l, _ *layer.Layer, _ int) bool {
			if l.ComponentID != "" && d.Component(l.ComponentID) == nil {
				refErr = errors.New(errors.ErrCodeComponentNotFound, "layer %s references unknown component %s", l.ID, l.ComponentID)
				return false
			}
			if l.StyleID != "" && d.Style(l.StyleID) == nil {
				refErr = errors.New(errors.ErrCodeStyleNotFound, "layer %s references unknown style %s", l.ID, l.StyleID)
				return false
			}
			return true
		})
		if refErr != nil {
			return refErr
		}
	}

	for _, c := range d.Components {
		check := component.WouldCreateCircularReference(c.ID, c.Layers, d.Components)
		if check.WouldCycle {
			return errors.New(errors.ErrCodeCircularReference, "component %s participates in a reference cycle %v", c.ID, check.CyclePath)
		}
	}

	return nil
}
