package layer

import (
	"github.com/google/uuid"
)

// Layer is a single node in the page tree.
//
// The zero value is not usable - ID and Kind must be set. Use [New] to
// create a layer with a fresh ID.
type Layer struct {
	ID   string `json:"id" bson:"id"`
	Kind Kind   `json:"kind" bson:"kind"`
	Name string `json:"name,omitempty" bson:"name,omitempty"`

	// Children is the ordered list of child layers, exclusively owned
	// by this layer. Order is document order and must be preserved by
	// every operation that is not explicitly reordering.
	Children []*Layer `json:"children,omitempty" bson:"children,omitempty"`

	// Classes and Design carry the layer's visual attributes. Classes
	// is an unordered set of class names; Design is a freeform
	// attribute object.
	Classes []string       `json:"classes,omitempty" bson:"classes,omitempty"`
	Design  map[string]any `json:"design,omitempty" bson:"design,omitempty"`

	// ComponentID references a component master tree. While set, the
	// layer renders the component's layers and its own Children are
	// not authoritative. ComponentOverrides is reserved for per-
	// instance divergence and is currently always cleared on bind.
	ComponentID        string         `json:"component_id,omitempty" bson:"component_id,omitempty"`
	ComponentOverrides map[string]any `json:"component_overrides,omitempty" bson:"component_overrides,omitempty"`

	// StyleID references a shared style. StyleOverrides records the
	// fields on which this layer has diverged from the style.
	StyleID        string          `json:"style_id,omitempty" bson:"style_id,omitempty"`
	StyleOverrides *StyleOverrides `json:"style_overrides,omitempty" bson:"style_overrides,omitempty"`

	// Locked layers are protected from deletion, even when explicitly
	// targeted.
	Locked bool `json:"locked,omitempty" bson:"locked,omitempty"`

	// Content and binding fields. The tree engine never interprets
	// these; they must survive every clone unchanged.
	Text     string         `json:"text,omitempty" bson:"text,omitempty"`
	URL      string         `json:"url,omitempty" bson:"url,omitempty"`
	Settings map[string]any `json:"settings,omitempty" bson:"settings,omitempty"`

	// Interactions are behavior bindings attached to the layer. Target
	// layer references are remapped when the surrounding subtree is
	// cloned with fresh IDs.
	Interactions []Interaction `json:"interactions,omitempty" bson:"interactions,omitempty"`
}

// StyleOverrides is a partial diff against a bound style. A nil slice
// or map means the field is not overridden; an empty one is a real
// override to the empty value.
type StyleOverrides struct {
	Classes []string       `json:"classes,omitempty" bson:"classes,omitempty"`
	Design  map[string]any `json:"design,omitempty" bson:"design,omitempty"`
}

// IsEmpty reports whether no field is overridden.
func (o *StyleOverrides) IsEmpty() bool {
	return o == nil || (o.Classes == nil && o.Design == nil)
}

// Interaction is a behavior binding, e.g. "on click, scroll to layer X".
// TargetLayerID may reference any layer in the document, including ones
// outside the subtree that carries the interaction.
type Interaction struct {
	Trigger       string `json:"trigger" bson:"trigger"`
	Action        string `json:"action" bson:"action"`
	TargetLayerID string `json:"target_layer_id,omitempty" bson:"target_layer_id,omitempty"`
}

// NewID returns a fresh process-generated layer ID.
func NewID() string { return uuid.NewString() }

// New creates a layer of the given kind with a fresh ID.
func New(kind Kind, name string) *Layer {
	return &Layer{ID: NewID(), Kind: kind, Name: name}
}

// CanHaveChildren reports whether layers may be placed inside l.
// A layer bound to a component cannot take children (its content is the
// component's), and void kinds never can.
func (l *Layer) CanHaveChildren() bool {
	if l.ComponentID != "" {
		return false
	}
	return l.Kind.AcceptsChildren()
}

// HasVisibleChildren reports whether l has children that a list view
// would currently show, given the set of collapsed layer IDs.
func (l *Layer) HasVisibleChildren(collapsed map[string]bool) bool {
	return len(l.Children) > 0 && !collapsed[l.ID]
}
