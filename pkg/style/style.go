// Package style implements shared style instancing: binding layers to
// a named bundle of visual attributes, tracking per-layer overrides at
// field granularity, and propagating style edits to compliant
// instances.
package style

import (
	"sort"

	"github.com/pagecraft/pagecraft/pkg/layer"
)

// Style is a reusable named bundle of visual attributes. Any number of
// layers may reference it; none of them own it.
type Style struct {
	ID      string         `json:"id" bson:"id"`
	Name    string         `json:"name" bson:"name"`
	Classes []string       `json:"classes,omitempty" bson:"classes,omitempty"`
	Design  map[string]any `json:"design,omitempty" bson:"design,omitempty"`
}

// NewID returns a fresh style ID.
func NewID() string { return layer.NewID() }

// Update is a partial edit to a layer's visual attributes. A nil field
// is untouched; a non-nil field replaces the layer's current value.
type Update struct {
	Classes []string
	Design  map[string]any
}

// ApplyToLayer returns a copy of l bound to the style: classes and
// design are copied from the style, the link is set, and any previous
// overrides are cleared.
func ApplyToLayer(l *layer.Layer, s *Style) *layer.Layer {
	bound := layer.CloneLayer(l)
	bound.StyleID = s.ID
	bound.StyleOverrides = nil
	bound.Classes = copyClasses(s.Classes)
	bound.Design = copyDesign(s.Design)
	return bound
}

// ApplyUpdate returns a copy of l with the partial update applied.
//
// Without a style link the layer is updated directly and nothing is
// tracked. With a link, each changed field is additionally recorded
// into the layer's overrides; unspecified fields keep whatever override
// value existed before.
func ApplyUpdate(l *layer.Layer, u Update) *layer.Layer {
	next := layer.CloneLayer(l)
	if u.Classes != nil {
		next.Classes = copyClasses(u.Classes)
	}
	if u.Design != nil {
		next.Design = copyDesign(u.Design)
	}

	if l.StyleID == "" {
		return next
	}

	ov := &layer.StyleOverrides{}
	if next.StyleOverrides != nil {
		ov.Classes = next.StyleOverrides.Classes
		ov.Design = next.StyleOverrides.Design
	}
	if u.Classes != nil {
		ov.Classes = copyClasses(u.Classes)
	}
	if u.Design != nil {
		ov.Design = copyDesign(u.Design)
	}
	next.StyleOverrides = ov
	return next
}

// HasOverrides reports whether the layer has diverged from its bound
// style. With a nil style it only checks the override marker. With the
// style supplied it additionally confirms the layer's current classes
// and design actually differ from the style's own, so a stale marker
// with no real divergence reports false. Comparison is order-
// independent for classes and deep for design values.
func HasOverrides(l *layer.Layer, s *Style) bool {
	if l.StyleID == "" || l.StyleOverrides.IsEmpty() {
		return false
	}
	if s == nil {
		return true
	}
	return !classesEqual(l.Classes, s.Classes) || !designEqual(l.Design, s.Design)
}

// PropagateToTree pushes new style attributes to every layer bound to
// styleID that carries no overrides. Overridden layers are left
// untouched; local customization wins.
func PropagateToTree(tree []*layer.Layer, styleID string, newClasses []string, newDesign map[string]any) []*layer.Layer {
	out := layer.CloneTree(tree)
	layer.Walk(out, func(l, _ *layer.Layer, _ int) bool {
		if l.StyleID == styleID && l.StyleOverrides.IsEmpty() {
			l.Classes = copyClasses(newClasses)
			l.Design = copyDesign(newDesign)
		}
		return true
	})
	return out
}

// DetachFromLayer returns a copy of l with the style link and overrides
// removed. The layer keeps its current classes and design - already the
// effective merged value - so detaching causes no visual change.
// Detaching an already detached layer is a no-op.
func DetachFromLayer(l *layer.Layer) *layer.Layer {
	detached := layer.CloneLayer(l)
	detached.StyleID = ""
	detached.StyleOverrides = nil
	return detached
}

// DetachFromTree severs the style link on every layer bound to styleID,
// leaving no dangling references. Visual attributes are preserved.
func DetachFromTree(tree []*layer.Layer, styleID string) []*layer.Layer {
	out := layer.CloneTree(tree)
	layer.Walk(out, func(l, _ *layer.Layer, _ int) bool {
		if l.StyleID == styleID {
			l.StyleID = ""
			l.StyleOverrides = nil
		}
		return true
	})
	return out
}

// ResetToStyle discards the layer's local divergence: classes and
// design are restored from the style and overrides are cleared. A
// layer not bound to this exact style comes back unchanged.
func ResetToStyle(l *layer.Layer, s *Style) *layer.Layer {
	if l.StyleID != s.ID {
		return l
	}
	reset := layer.CloneLayer(l)
	reset.Classes = copyClasses(s.Classes)
	reset.Design = copyDesign(s.Design)
	reset.StyleOverrides = nil
	return reset
}

func copyClasses(classes []string) []string {
	if classes == nil {
		return nil
	}
	out := make([]string, len(classes))
	copy(out, classes)
	return out
}

func copyDesign(design map[string]any) map[string]any {
	if design == nil {
		return nil
	}
	out := make(map[string]any, len(design))
	for k, v := range design {
		out[k] = deepCopy(v)
	}
	return out
}

func deepCopy(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = deepCopy(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = deepCopy(e)
		}
		return out
	default:
		return v
	}
}

// classesEqual compares two class sets ignoring order.
func classesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// designEqual deep-compares two design objects. Map iteration order is
// irrelevant by construction; nested maps and slices are compared
// structurally.
func designEqual(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !valueEqual(av, bv) {
			return false
		}
	}
	return true
}

func valueEqual(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		return ok && designEqual(av, bv)
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
