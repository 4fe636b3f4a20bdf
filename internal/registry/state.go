package registry

// State is where a line is in its lifecycle.
// Drawing -> Finalized <-> Editing; a line whose vertex count drops below
// two is removed from the registry.
type State int

const (
	Drawing State = iota
	Finalized
	Editing
	Removed
)

func (s State) String() string {
	switch s {
	case Drawing:
		return "drawing"
	case Finalized:
		return "finalized"
	case Editing:
		return "editing"
	default:
		return "removed"
	}
}

// editable reports whether geometry edits (replace, delete segment) apply.
func (s State) editable() bool {
	return s == Finalized || s == Editing
}
