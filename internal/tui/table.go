package tui

import (
	"fmt"

	table "github.com/charmbracelet/bubbles/table"

	"geomeasure/internal/units"
)

func tableColumns() []table.Column {
	return []table.Column{
		{Title: "line", Width: 4},
		{Title: "#", Width: 3},
		{Title: "azimuth", Width: 12},
		{Title: "distance", Width: 12},
		{Title: "turn", Width: 16},
	}
}

// tableWidth is the panel width including borders and column padding.
func tableWidth() int {
	w := 0
	for _, c := range tableColumns() {
		w += c.Width + 2
	}
	return w + 4
}

// refreshTable rebuilds the results rows from the latest snapshot, keeping
// the cursor where it was when possible.
func (m *Model) refreshTable() {
	m.live.dirty = false
	snap := m.snapshot()
	n := snap.Segments() + len(snap.Lines)
	rows := make([]table.Row, 0, n)
	refs := make([]segRef, 0, n)
	for _, l := range snap.Lines {
		for i, s := range l.Table {
			turn := "N/A"
			if s.Turn != nil {
				turn = units.FormatAngle(s.Turn.Degrees, m.au) + " " + s.Turn.Direction.String()
			}
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", l.ID),
				fmt.Sprintf("%d", i+1),
				s.Azimuth.String(),
				units.FormatDistance(s.DistanceKm, m.du),
				turn,
			})
			refs = append(refs, segRef{line: l.ID, seg: i})
		}
		if len(l.Table) > 0 {
			rows = append(rows, table.Row{
				fmt.Sprintf("%d", l.ID),
				"Σ",
				"line total",
				units.FormatDistance(l.Table.TotalKm(), m.du),
				"",
			})
			refs = append(refs, segRef{line: l.ID, seg: subtotalRow})
		}
	}
	cur := m.tbl.Cursor()
	m.rows = refs
	m.tbl.SetRows(rows)
	if cur >= len(rows) {
		cur = len(rows) - 1
	}
	m.tbl.SetCursor(max(0, cur))
}

// subtotalRow marks the per-line total that closes each line's rows.
const subtotalRow = -1

// selectedSegment is the segment under the table cursor. Subtotal rows are
// not segments.
func (m Model) selectedSegment() (segRef, bool) {
	i := m.tbl.Cursor()
	if i < 0 || i >= len(m.rows) || m.rows[i].seg == subtotalRow {
		return segRef{}, false
	}
	return m.rows[i], true
}

// deleteSelected removes the segment under the table cursor.
func (m *Model) deleteSelected() {
	ref, ok := m.selectedSegment()
	if !ok {
		m.status = "no segment selected"
		return
	}
	// a picked vertex index would point at a different vertex afterwards
	if m.picked != nil && m.picked.line == ref.line {
		m.cancelPick()
	}
	if !m.reg.DeleteSegment(ref.line, ref.seg) {
		m.status = fmt.Sprintf("segment %d of line %d cannot be deleted", ref.seg+1, ref.line)
		return
	}
	m.status = fmt.Sprintf("deleted segment %d of line %d", ref.seg+1, ref.line)
}
