package registry

import (
	"errors"
	"fmt"

	"geomeasure/internal/geodesy"
)

var ErrUnknownEvent = errors.New("unknown event kind")

// Kind is the type of a geometry change reported by the drawing layer.
type Kind int

const (
	Added Kind = iota + 1
	Finalize
	Modified
	SegmentDeleted
	Discarded
	Cleared
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Finalize:
		return "finalized"
	case Modified:
		return "modified"
	case SegmentDeleted:
		return "segment-deleted"
	case Discarded:
		return "discarded"
	case Cleared:
		return "cleared"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is a geometry change. Only the payload field matching Kind is read:
// Point for Added, Vertices for Modified, Segment for SegmentDeleted.
type Event struct {
	Line     LineID
	Kind     Kind
	Point    geodesy.GeoPoint
	Vertices []geodesy.GeoPoint
	Segment  int
}

// Apply routes an event to the matching registry operation. It returns the
// id of the line the event touched, which for Added on a new line is the
// freshly assigned one. Ignored segment deletions are not errors.
func (r *Registry) Apply(ev Event) (LineID, error) {
	switch ev.Kind {
	case Added:
		return r.AddVertex(ev.Line, ev.Point)
	case Finalize:
		return ev.Line, r.FinalizeLine(ev.Line)
	case Modified:
		return ev.Line, r.ReplaceVertices(ev.Line, ev.Vertices)
	case SegmentDeleted:
		r.DeleteSegment(ev.Line, ev.Segment)
		return ev.Line, nil
	case Discarded:
		r.DiscardLine(ev.Line)
		return ev.Line, nil
	case Cleared:
		r.ClearAll()
		return NewLine, nil
	}
	return ev.Line, fmt.Errorf("apply %s: %w", ev.Kind, ErrUnknownEvent)
}
