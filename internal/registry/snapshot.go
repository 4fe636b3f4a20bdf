package registry

import (
	"slices"

	"geomeasure/internal/geodesy"
	"geomeasure/internal/measure"
)

// LineSnapshot is a read-only copy of one line.
type LineSnapshot struct {
	ID       LineID
	State    State
	Vertices []geodesy.GeoPoint
	Table    measure.Table
}

// Snapshot is a read-only copy of the whole registry, in line creation order.
type Snapshot struct {
	Lines  []LineSnapshot
	Totals measure.Totals
}

// Line finds a line in the snapshot.
func (s Snapshot) Line(id LineID) (LineSnapshot, bool) {
	for _, l := range s.Lines {
		if l.ID == id {
			return l, true
		}
	}
	return LineSnapshot{}, false
}

// Segments counts the segments across every line.
func (s Snapshot) Segments() int {
	n := 0
	for _, l := range s.Lines {
		n += len(l.Table)
	}
	return n
}

func (r *Registry) Snapshot() Snapshot {
	s := Snapshot{Lines: make([]LineSnapshot, 0, len(r.order)), Totals: r.totals}
	for _, id := range r.order {
		l := r.lines[id]
		s.Lines = append(s.Lines, LineSnapshot{
			ID:       l.id,
			State:    l.state,
			Vertices: slices.Clone(l.vertices),
			Table:    l.table.Clone(),
		})
	}
	return s
}

// Subscribe registers fn to receive a snapshot after every mutation.
// Listeners run synchronously, in no particular order. The returned func
// unsubscribes.
func (r *Registry) Subscribe(fn func(Snapshot)) (cancel func()) {
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	return func() { delete(r.subs, id) }
}

func (r *Registry) notify() {
	if len(r.subs) == 0 {
		return
	}
	s := r.Snapshot()
	for _, fn := range r.subs {
		fn(s)
	}
}
