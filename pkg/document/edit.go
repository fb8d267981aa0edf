package document

import (
	"github.com/pagecraft/pagecraft/pkg/component"
	"github.com/pagecraft/pagecraft/pkg/errors"
	"github.com/pagecraft/pagecraft/pkg/layer"
	"github.com/pagecraft/pagecraft/pkg/style"
)

// The operations in this file rewrite whole documents when a shared
// definition changes. Like the tree operations they are pure: the input
// document is never modified, the result is a fresh value.

// PromoteToComponent turns the identified layer's subtree into a new
// component and rebinds the layer to it. The master tree is a clone
// with regenerated IDs, so master and instance never share layer IDs.
func PromoteToComponent(d *Document, layerID, name string) (*Document, *component.Component, error) {
	if err := errors.ValidateName(name); err != nil {
		return d, nil, err
	}
	src := layer.FindByID(d.Layers, layerID)
	if src == nil {
		return d, nil, errors.New(errors.ErrCodeLayerNotFound, "layer %s not found", layerID)
	}

	master, _ := layer.Regenerate(src)
	c := &component.Component{
		ID:     component.NewID(),
		Name:   name,
		Layers: []*layer.Layer{master},
	}

	out := d.Clone()
	out.Components = append(out.Components, c)
	loc, _ := layer.FindWithParent(out.Layers, layerID)
	bound := component.ApplyToLayer(loc.Layer, c)
	if loc.Parent == nil {
		out.Layers[loc.Index] = bound
	} else {
		loc.Parent.Children[loc.Index] = bound
	}
	return out, c, nil
}

// UpdateComponentMaster replaces a component's master tree. The edit is
// refused with a CIRCULAR_REFERENCE error when the new layers would
// make the component's render expansion infinite; a confirmed cycle is
// never silently allowed. Instances pick the change up implicitly,
// since bound layers render the master.
func UpdateComponentMaster(d *Document, componentID string, layers []*layer.Layer) (*Document, error) {
	if d.Component(componentID) == nil {
		return d, errors.New(errors.ErrCodeComponentNotFound, "component %s not found", componentID)
	}

	check := component.WouldCreateCircularReference(componentID, layers, d.Components)
	if check.WouldCycle {
		return d, errors.New(errors.ErrCodeCircularReference, "update would create a component cycle %v", check.CyclePath)
	}

	out := d.Clone()
	out.Component(componentID).Layers = layer.CloneTree(layers)
	return out, nil
}

// DeleteComponent removes a component definition after detaching every
// usage: bound layers in the page tree and in other component masters
// are replaced by the master content, so no dangling reference remains.
func DeleteComponent(d *Document, componentID string) (*Document, error) {
	c := d.Component(componentID)
	if c == nil {
		return d, errors.New(errors.ErrCodeComponentNotFound, "component %s not found", componentID)
	}

	out := d.Clone()
	out.Layers = component.DetachAndReplaceInTree(out.Layers, componentID, c)

	kept := out.Components[:0]
	for _, other := range out.Components {
		if other.ID == componentID {
			continue
		}
		other.Layers = component.DetachAndReplaceInTree(other.Layers, componentID, c)
		kept = append(kept, other)
	}
	out.Components = kept
	return out, nil
}

// PromoteToStyle captures the identified layer's visual attributes as a
// new style and binds the layer to it.
func PromoteToStyle(d *Document, layerID, name string) (*Document, *style.Style, error) {
	if err := errors.ValidateName(name); err != nil {
		return d, nil, err
	}
	src := layer.FindByID(d.Layers, layerID)
	if src == nil {
		return d, nil, errors.New(errors.ErrCodeLayerNotFound, "layer %s not found", layerID)
	}

	s := &style.Style{
		ID:      style.NewID(),
		Name:    name,
		Classes: append([]string(nil), src.Classes...),
		Design:  copyDesign(src.Design),
	}

	out := d.Clone()
	out.Styles = append(out.Styles, s)
	loc, _ := layer.FindWithParent(out.Layers, layerID)
	bound := style.ApplyToLayer(loc.Layer, s)
	if loc.Parent == nil {
		out.Layers[loc.Index] = bound
	} else {
		loc.Parent.Children[loc.Index] = bound
	}
	return out, s, nil
}

// UpdateStyle changes a style definition and propagates the new
// attributes to every compliant instance - layers bound to the style
// without overrides - across the page tree and all component masters.
// Overridden layers keep their local customization.
func UpdateStyle(d *Document, styleID string, classes []string, design map[string]any) (*Document, error) {
	if d.Style(styleID) == nil {
		return d, errors.New(errors.ErrCodeStyleNotFound, "style %s not found", styleID)
	}

	out := d.Clone()
	s := out.Style(styleID)
	s.Classes = append([]string(nil), classes...)
	s.Design = copyDesign(design)

	out.Layers = style.PropagateToTree(out.Layers, styleID, classes, design)
	for _, c := range out.Components {
		c.Layers = style.PropagateToTree(c.Layers, styleID, classes, design)
	}
	return out, nil
}

// DeleteStyle removes a style definition after severing the link on
// every bound layer. Layers keep their effective attributes, so
// deleting a style never changes how the page looks.
func DeleteStyle(d *Document, styleID string) (*Document, error) {
	if d.Style(styleID) == nil {
		return d, errors.New(errors.ErrCodeStyleNotFound, "style %s not found", styleID)
	}

	out := d.Clone()
	out.Layers = style.DetachFromTree(out.Layers, styleID)
	for _, c := range out.Components {
		c.Layers = style.DetachFromTree(c.Layers, styleID)
	}

	kept := out.Styles[:0]
	for _, s := range out.Styles {
		if s.ID != styleID {
			kept = append(kept, s)
		}
	}
	out.Styles = kept
	return out, nil
}

// copyDesign deep-copies a design object. Nested maps and slices are
// copied recursively; scalars are shared.
func copyDesign(design map[string]any) map[string]any {
	if design == nil {
		return nil
	}
	out := make(map[string]any, len(design))
	for k, v := range design {
		out[k] = copyDesignValue(v)
	}
	return out
}

func copyDesignValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = copyDesignValue(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = copyDesignValue(e)
		}
		return out
	default:
		return v
	}
}
