package drop

import (
	"github.com/pagecraft/pagecraft/pkg/layer"
	"github.com/pagecraft/pagecraft/pkg/layer/mutate"
)

// State is the phase of a drag gesture.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateHovering
)

// Session is the full state of one drag gesture, modeled as a value:
// callers thread it through hover and drop calls, and discarding the
// value cancels the drag with zero mutation. No state survives outside
// the session, and every hover recomputes validation from the current
// tree, so a stale hover can never authorize a drop.
type Session struct {
	State       State
	DraggedID   string
	DraggedKind layer.Kind

	// Last hover, meaningful only in StateHovering.
	TargetID string
	Position Position
	Last     Result
}

// Start begins a drag of an existing layer. Returns an idle session if
// the layer does not exist or is locked.
func Start(tree []*layer.Layer, draggedID string) Session {
	l := layer.FindByID(tree, draggedID)
	if l == nil || l.Locked {
		return Session{}
	}
	return Session{State: StateDragging, DraggedID: draggedID, DraggedKind: l.Kind}
}

// Hover records the pointer moving over a layer and recomputes the drop
// position and its validation. relativeY is the pointer offset within
// the hovered layer, 0 at the top edge, 1 at the bottom. The collapsed
// set determines whether the target's children are currently visible.
func (s Session) Hover(tree []*layer.Layer, targetID string, relativeY float64, collapsed map[string]bool) Session {
	if s.State == StateIdle {
		return s
	}

	target := layer.FindByID(tree, targetID)
	if target == nil {
		s.State = StateDragging
		s.TargetID = ""
		s.Last = Result{}
		return s
	}

	pos := CalculatePosition(
		relativeY,
		target.CanHaveChildren(),
		target.HasVisibleChildren(collapsed),
		s.DraggedKind.IsSection(),
		target.Kind.IsBody(),
	)

	s.State = StateHovering
	s.TargetID = targetID
	s.Position = pos
	s.Last = Validate(tree, targetID, pos, s.DraggedKind, s.DraggedID)
	return s
}

// Drop finishes the gesture. If the last computed validation was valid,
// the corresponding move is performed and the new tree is returned with
// ok true. Otherwise - including a drag that never hovered anything -
// the tree comes back unchanged with ok false. Either way the gesture
// is over; the zero session is ready for the next one.
func (s Session) Drop(tree []*layer.Layer) (next []*layer.Layer, done Session, ok bool) {
	if s.State != StateHovering || !s.Last.Valid {
		return tree, Session{}, false
	}

	index, ok := s.targetIndex(tree)
	if !ok {
		return tree, Session{}, false
	}

	moved, err := mutate.Move(tree, s.DraggedID, s.Last.ParentID, index)
	if err != nil {
		return tree, Session{}, false
	}
	return moved, Session{}, true
}

// targetIndex converts the hover position into a child index under the
// resolved parent. The index is for the tree after the dragged layer is
// detached: when the dragged layer precedes the target under the same
// parent, detaching shifts the target one slot left.
func (s Session) targetIndex(tree []*layer.Layer) (int, bool) {
	loc, found := layer.FindWithParent(tree, s.TargetID)
	if !found {
		return 0, false
	}
	if s.Position == PositionInside {
		return len(loc.Layer.Children), true
	}

	index := loc.Index
	if s.Position != PositionAbove {
		index++
	}
	if dragged, ok := layer.FindWithParent(tree, s.DraggedID); ok {
		if dragged.Parent == loc.Parent && dragged.Index < loc.Index {
			index--
		}
	}
	return index, true
}
