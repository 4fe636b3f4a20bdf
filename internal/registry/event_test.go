package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_Lifecycle(t *testing.T) {
	r := newRegistry()

	id, err := r.Apply(Event{Kind: Added, Point: brno[0]})
	require.NoError(t, err)
	for _, p := range brno[1:] {
		_, err = r.Apply(Event{Line: id, Kind: Added, Point: p})
		require.NoError(t, err)
	}
	_, err = r.Apply(Event{Line: id, Kind: Finalize})
	require.NoError(t, err)
	assert.Equal(t, Finalized, r.State(id))

	_, err = r.Apply(Event{Line: id, Kind: Modified, Vertices: brno[:3]})
	require.NoError(t, err)
	v, _ := r.Vertices(id)
	assert.Len(t, v, 3)

	_, err = r.Apply(Event{Line: id, Kind: SegmentDeleted, Segment: 7})
	require.NoError(t, err, "out of range deletes are silent")
	_, err = r.Apply(Event{Line: id, Kind: SegmentDeleted, Segment: 0})
	require.NoError(t, err)
	v, _ = r.Vertices(id)
	assert.Len(t, v, 2)

	_, err = r.Apply(Event{Kind: Cleared})
	require.NoError(t, err)
	assert.Equal(t, 0, r.Len())
}

func TestApply_Discarded(t *testing.T) {
	r := newRegistry()
	id, err := r.Apply(Event{Kind: Added, Point: brno[0]})
	require.NoError(t, err)
	_, err = r.Apply(Event{Line: id, Kind: Discarded})
	require.NoError(t, err)
	assert.Equal(t, Removed, r.State(id))
}

func TestApply_Errors(t *testing.T) {
	r := newRegistry()
	_, err := r.Apply(Event{Kind: Kind(99)})
	assert.ErrorIs(t, err, ErrUnknownEvent)

	_, err = r.Apply(Event{Line: 4, Kind: Modified, Vertices: brno})
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "segment-deleted", SegmentDeleted.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}
