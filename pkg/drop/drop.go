// Package drop translates pointer positions into structural intent for
// drag-and-drop: where a dragged layer would land relative to the
// hovered layer, and whether that landing spot is legal.
//
// The same resolution is shared by both drag surfaces (canvas and
// layer list), so a gesture validates identically no matter where it
// was performed. All failures are structured results with a reason
// string - an invalid drop is an expected interactive outcome, never a
// panic.
package drop

import (
	"fmt"

	"github.com/pagecraft/pagecraft/pkg/layer"
)

// Position is where a dragged layer would land relative to the hovered
// layer.
type Position string

const (
	PositionAbove  Position = "above"
	PositionBelow  Position = "below"
	PositionInside Position = "inside"
)

// Edge band sizes for position calculation, as fractions of the
// hovered layer's height.
const (
	// edgeBand applies when the target shows children: the middle is
	// generous because "inside" is the common intent.
	edgeBand = 0.15
	// emptyEdgeBand applies when the target is empty or collapsed,
	// widening the inside band further.
	emptyEdgeBand = 0.10
)

// CalculatePosition maps a pointer offset within the hovered layer
// (relativeY in [0,1], 0 = top edge) to a drop position.
//
// Sections may only sit directly under the document body, so a dragged
// section hovering anything but the body never resolves to inside.
// Targets that cannot take children split 50/50 between above and
// below; inside is never returned for them.
func CalculatePosition(relativeY float64, targetCanHaveChildren, targetHasVisibleChildren, isDraggingSection, isTargetBody bool) Position {
	insideAllowed := targetCanHaveChildren
	if isDraggingSection && !isTargetBody {
		insideAllowed = false
	}

	if !insideAllowed {
		if relativeY < 0.5 {
			return PositionAbove
		}
		return PositionBelow
	}

	band := emptyEdgeBand
	if targetHasVisibleChildren {
		band = edgeBand
	}

	switch {
	case relativeY < band:
		return PositionAbove
	case relativeY > 1-band:
		return PositionBelow
	default:
		return PositionInside
	}
}

// ResolveTargetParent resolves the parent a drop at the given position
// would insert under: the hovered layer itself for inside, its parent
// for above/below. The parent ID is empty when the hovered layer sits
// at root level. The boolean result is false if the target does not
// exist.
func ResolveTargetParent(tree []*layer.Layer, targetID string, position Position) (string, bool) {
	loc, ok := layer.FindWithParent(tree, targetID)
	if !ok {
		return "", false
	}
	if position == PositionInside {
		return targetID, true
	}
	if loc.Parent == nil {
		return "", true
	}
	return loc.Parent.ID, true
}

// Result is the outcome of validating a hover. Reason is set only when
// the drop is invalid.
type Result struct {
	Valid    bool   `json:"valid"`
	ParentID string `json:"parent_id,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func invalid(format string, args ...any) Result {
	return Result{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks whether dropping at the given position on the hovered
// layer is structurally legal. draggedID identifies an existing layer
// being reordered and may be empty when the dragged item comes from
// outside the tree (palette inserts, cross-document paste).
func Validate(tree []*layer.Layer, targetID string, position Position, draggedKind layer.Kind, draggedID string) Result {
	parentID, ok := ResolveTargetParent(tree, targetID, position)
	if !ok {
		return invalid("target layer %s not found", targetID)
	}

	// Nothing may land as a root-level sibling outside the document
	// body.
	if parentID == "" {
		return invalid("cannot drop beside a root-level layer")
	}

	parent := layer.FindByID(tree, parentID)
	if parent == nil {
		return invalid("resolved parent %s not found", parentID)
	}

	if draggedKind.IsSection() && !parent.Kind.IsBody() {
		return invalid("sections can only be placed directly under the body")
	}

	if position == PositionInside {
		target := layer.FindByID(tree, targetID)
		if !target.CanHaveChildren() {
			return invalid("layer %s cannot contain children", targetID)
		}
	}

	if draggedID != "" {
		if parentID == draggedID {
			return invalid("cannot drop a layer into itself")
		}
		if layer.IsDescendant(tree, draggedID, parentID) {
			return invalid("cannot drop a layer into its own descendant")
		}
	}

	return Result{Valid: true, ParentID: parentID}
}
