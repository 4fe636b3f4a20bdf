// Package registry owns the drawn polylines and their measurement tables.
//
// Every mutation recomputes the affected line's table from its full vertex
// sequence, then the totals over all lines, then notifies subscribers. A
// Registry is not safe for concurrent use: it expects to be driven from a
// single event loop.
package registry

import (
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"geomeasure/internal/geodesy"
	"geomeasure/internal/measure"
)

var (
	ErrLineNotFound = errors.New("line not found")
	ErrInvalidState = errors.New("operation not allowed in line state")
)

// LineID identifies a line for its whole life. IDs are handed out in
// increasing order and never reused.
type LineID uint64

// NewLine asks AddVertex to start a fresh line.
const NewLine LineID = 0

type line struct {
	id       LineID
	state    State
	vertices []geodesy.GeoPoint
	table    measure.Table
}

func (l *line) recompute() {
	l.table = measure.Recompute(l.vertices)
}

type Registry struct {
	log zerolog.Logger

	lines  map[LineID]*line
	order  []LineID
	nextID LineID
	totals measure.Totals

	subs    map[int]func(Snapshot)
	nextSub int
}

func New(log zerolog.Logger) *Registry {
	return &Registry{
		log:    log,
		lines:  map[LineID]*line{},
		nextID: 1,
		subs:   map[int]func(Snapshot){},
	}
}

// AddVertex appends p to a line that is being drawn. An unknown id, or
// NewLine, starts a new line in the Drawing state; the id of the line that
// received the vertex is returned.
func (r *Registry) AddVertex(id LineID, p geodesy.GeoPoint) (LineID, error) {
	l, ok := r.lines[id]
	if !ok {
		l = r.create(Drawing, nil)
	} else if l.state != Drawing {
		return id, fmt.Errorf("add vertex to line %d (%s): %w", id, l.state, ErrInvalidState)
	}
	l.vertices = append(l.vertices, p)
	r.changed(l)
	return l.id, nil
}

// FinalizeLine ends drawing. A line with fewer than two vertices is dropped.
func (r *Registry) FinalizeLine(id LineID) error {
	l, err := r.lookup(id)
	if err != nil {
		return fmt.Errorf("finalize: %w", err)
	}
	if l.state != Drawing {
		return fmt.Errorf("finalize line %d (%s): %w", id, l.state, ErrInvalidState)
	}
	if len(l.vertices) < 2 {
		r.remove(id, "finalized with fewer than two vertices")
		r.notify()
		return nil
	}
	l.state = Finalized
	r.log.Debug().Uint64("line", uint64(id)).Int("vertices", len(l.vertices)).Msg("line finalized")
	r.notify()
	return nil
}

// BeginEdit marks a finalized line as being reshaped.
func (r *Registry) BeginEdit(id LineID) error {
	return r.transition(id, Finalized, Editing)
}

// EndEdit returns an edited line to Finalized.
func (r *Registry) EndEdit(id LineID) error {
	return r.transition(id, Editing, Finalized)
}

func (r *Registry) transition(id LineID, from, to State) error {
	l, err := r.lookup(id)
	if err != nil {
		return err
	}
	if l.state == to {
		return nil
	}
	if l.state != from {
		return fmt.Errorf("line %d %s -> %s: %w", id, l.state, to, ErrInvalidState)
	}
	l.state = to
	r.notify()
	return nil
}

// ReplaceVertices swaps the whole vertex sequence of a finalized or edited
// line, as produced by a modify interaction. The sequence is copied. A line
// left with fewer than two vertices is removed.
func (r *Registry) ReplaceVertices(id LineID, vertices []geodesy.GeoPoint) error {
	l, err := r.lookup(id)
	if err != nil {
		return fmt.Errorf("replace vertices: %w", err)
	}
	if !l.state.editable() {
		return fmt.Errorf("replace vertices of line %d (%s): %w", id, l.state, ErrInvalidState)
	}
	if len(vertices) < 2 {
		r.remove(id, "replaced with fewer than two vertices")
		r.notify()
		return nil
	}
	l.vertices = slices.Clone(vertices)
	r.changed(l)
	return nil
}

// DeleteSegment removes segment k of a line by dropping its far vertex
// (index k+1), joining its neighbours. Requests for unknown lines, lines
// not yet finalized, or k outside [0, vertices-1) are ignored and report
// false. A line left with fewer than two vertices is removed.
func (r *Registry) DeleteSegment(id LineID, k int) bool {
	l, ok := r.lines[id]
	if !ok || !l.state.editable() {
		return false
	}
	if k < 0 || k >= len(l.vertices)-1 {
		r.log.Debug().Uint64("line", uint64(id)).Int("segment", k).Msg("segment index out of range")
		return false
	}
	l.vertices = slices.Delete(slices.Clone(l.vertices), k+1, k+2)
	if len(l.vertices) < 2 {
		r.remove(id, "last segment deleted")
		r.notify()
		return true
	}
	r.changed(l)
	return true
}

// DiscardLine cancels a line that is still being drawn.
func (r *Registry) DiscardLine(id LineID) bool {
	l, ok := r.lines[id]
	if !ok || l.state != Drawing {
		return false
	}
	r.remove(id, "drawing discarded")
	r.notify()
	return true
}

// RemoveLine drops a line regardless of its state.
func (r *Registry) RemoveLine(id LineID) bool {
	if _, ok := r.lines[id]; !ok {
		return false
	}
	r.remove(id, "removed")
	r.notify()
	return true
}

// ImportLine adds a finished line from external geometry such as a file.
// Sequences with fewer than two vertices are not imported.
func (r *Registry) ImportLine(vertices []geodesy.GeoPoint) (LineID, bool) {
	if len(vertices) < 2 {
		return 0, false
	}
	l := r.create(Finalized, slices.Clone(vertices))
	r.changed(l)
	return l.id, true
}

// ClearAll drops every line.
func (r *Registry) ClearAll() {
	n := len(r.lines)
	r.lines = map[LineID]*line{}
	r.order = nil
	r.totals = measure.Totals{}
	r.log.Info().Int("lines", n).Msg("registry cleared")
	r.notify()
}

func (r *Registry) create(state State, vertices []geodesy.GeoPoint) *line {
	l := &line{id: r.nextID, state: state, vertices: vertices}
	r.nextID++
	r.lines[l.id] = l
	r.order = append(r.order, l.id)
	return l
}

func (r *Registry) lookup(id LineID) (*line, error) {
	l, ok := r.lines[id]
	if !ok {
		return nil, fmt.Errorf("line %d: %w", id, ErrLineNotFound)
	}
	return l, nil
}

// changed recomputes one line's table and the totals, then notifies.
func (r *Registry) changed(l *line) {
	l.recompute()
	r.aggregate()
	r.log.Debug().Uint64("line", uint64(l.id)).Int("vertices", len(l.vertices)).Msg("line recomputed")
	r.notify()
}

func (r *Registry) remove(id LineID, reason string) {
	delete(r.lines, id)
	r.order = slices.DeleteFunc(r.order, func(o LineID) bool { return o == id })
	r.aggregate()
	r.log.Info().Uint64("line", uint64(id)).Str("reason", reason).Msg("line removed")
}

func (r *Registry) aggregate() {
	tables := make([]measure.Table, 0, len(r.order))
	for _, id := range r.order {
		tables = append(tables, r.lines[id].table)
	}
	r.totals = measure.Aggregate(tables...)
}

// Table returns the measurement table of a live line.
func (r *Registry) Table(id LineID) (measure.Table, bool) {
	l, ok := r.lines[id]
	if !ok {
		return nil, false
	}
	return l.table.Clone(), true
}

// Vertices returns a copy of a live line's vertex sequence.
func (r *Registry) Vertices(id LineID) ([]geodesy.GeoPoint, bool) {
	l, ok := r.lines[id]
	if !ok {
		return nil, false
	}
	return slices.Clone(l.vertices), true
}

// VertexAt returns the far vertex of segment k, the one DeleteSegment
// would remove.
func (r *Registry) VertexAt(id LineID, k int) (geodesy.GeoPoint, bool) {
	l, ok := r.lines[id]
	if !ok || k < 0 || k >= len(l.vertices)-1 {
		return geodesy.GeoPoint{}, false
	}
	return l.vertices[k+1], true
}

// State returns a line's lifecycle state; Removed for unknown ids.
func (r *Registry) State(id LineID) State {
	if l, ok := r.lines[id]; ok {
		return l.state
	}
	return Removed
}

// Lines returns the live line ids in creation order.
func (r *Registry) Lines() []LineID { return slices.Clone(r.order) }

func (r *Registry) Len() int { return len(r.order) }

func (r *Registry) Totals() measure.Totals { return r.totals }
