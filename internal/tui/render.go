package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"

	"geomeasure/internal/geodesy"
	"geomeasure/internal/measure"
)

// viewAround is the mercator extent of a span-degree window centred on
// lon/lat.
func viewAround(lon, lat, span float64) orb.Bound {
	if span <= 0 {
		span = 0.1
	}
	h := span / 2
	return fitView(orb.Bound{Min: orb.Point{lon - h, lat - h}, Max: orb.Point{lon + h, lat + h}})
}

// fitView projects a lon/lat bound to mercator and pads it so the data does
// not touch the map edge. Degenerate bounds get a minimum extent.
func fitView(ll orb.Bound) orb.Bound {
	b := orb.Bound{
		Min: project.Point(ll.Min, project.WGS84.ToMercator),
		Max: project.Point(ll.Max, project.WGS84.ToMercator),
	}
	const minExtent = 50.0 // metres
	if b.Right()-b.Left() < minExtent {
		c := (b.Left() + b.Right()) / 2
		b.Min[0], b.Max[0] = c-minExtent/2, c+minExtent/2
	}
	if b.Top()-b.Bottom() < minExtent {
		c := (b.Bottom() + b.Top()) / 2
		b.Min[1], b.Max[1] = c-minExtent/2, c+minExtent/2
	}
	return b.Pad(0.05 * max(b.Right()-b.Left(), b.Top()-b.Bottom()))
}

// cellToPoint converts a map cell back to a vertex using view, zoom and pan.
func (m Model) cellToPoint(cx, cy, w, h int) (geodesy.GeoPoint, bool) {
	if w <= 1 || h <= 1 || m.view.IsEmpty() {
		return geodesy.GeoPoint{}, false
	}
	zx := float64(cx-m.offsetX) / float64(w-1)
	zy := 1.0 - float64(cy-m.offsetY)/float64(h-1)
	nx := 0.5 + (zx-0.5)/m.zoom
	ny := 0.5 + (zy-0.5)/m.zoom
	x := m.view.Left() + nx*(m.view.Right()-m.view.Left())
	y := m.view.Bottom() + ny*(m.view.Top()-m.view.Bottom())
	return geodesy.FromMercator(x, y), true
}

// screenXYMicro maps a vertex into a 2x4 microgrid per cell for braille rendering.
func (m Model) screenXYMicro(p geodesy.GeoPoint, w, h int) (int, int, bool) {
	if m.view.IsEmpty() {
		return 0, 0, false
	}
	xy := p.XY()
	nx := (xy.X() - m.view.Left()) / (m.view.Right() - m.view.Left())
	ny := (xy.Y() - m.view.Bottom()) / (m.view.Top() - m.view.Bottom())
	zx := 0.5 + (nx-0.5)*m.zoom
	zy := 0.5 + (ny-0.5)*m.zoom
	wMic := w * 2
	hMic := h * 4
	sx := int(zx*float64(wMic-1)) + m.offsetX*2
	sy := int((1.0-zy)*float64(hMic-1)) + m.offsetY*4
	return sx, sy, true
}

// nearestVertex finds the vertex closest to a microgrid position, within
// radius micro-pixels.
func (m Model) nearestVertex(mx, my, radius, w, h int) (vertexRef, int, int, bool) {
	best := radius*radius + 1
	var ref vertexRef
	var bx, by int
	for _, l := range m.snapshot().Lines {
		for i, v := range l.Vertices {
			sx, sy, ok := m.screenXYMicro(v, w, h)
			if !ok {
				continue
			}
			dx := sx - mx
			dy := sy - my
			if d := dx*dx + dy*dy; d < best {
				best = d
				ref = vertexRef{line: l.ID, idx: i}
				bx, by = sx, sy
			}
		}
	}
	return ref, bx, by, best <= radius*radius
}

// marker is a styled glyph drawn over one map cell.
type marker struct {
	x, y  int
	glyph string
}

var (
	hoverMarker  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("◯")
	pickedMarker = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Render("◉")
	segMarker    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22D3EE")).Render("●")
)

func (m Model) renderMap(w, h int) string {
	br := newBrailleBuf(w, h)
	snap := m.snapshot()

	for _, l := range snap.Lines {
		var prev *[2]int
		for _, v := range l.Vertices {
			mx, my, ok := m.screenXYMicro(v, w, h)
			if !ok {
				continue
			}
			if prev != nil {
				br.drawLineMicro(prev[0], prev[1], mx, my)
			}
			prev = &[2]int{mx, my}
		}
	}

	// dotted rubber band from the last placed vertex to the cursor
	if m.mode == modeDraw && m.hoverOK {
		if ls, ok := snap.Line(m.drawing); ok && len(ls.Vertices) > 0 {
			ax, ay, ok1 := m.screenXYMicro(ls.Vertices[len(ls.Vertices)-1], w, h)
			bx, by, ok2 := m.screenXYMicro(m.hover, w, h)
			if ok1 && ok2 {
				br.drawDottedMicro(ax, ay, bx, by, 3)
			}
		}
	}

	var marks []marker
	if m.showTable {
		if ref, ok := m.selectedSegment(); ok {
			// a segment is shown by its far vertex
			if v, ok := m.reg.VertexAt(ref.line, ref.seg); ok {
				if mx, my, ok := m.screenXYMicro(v, w, h); ok {
					marks = append(marks, marker{mx / 2, my / 4, segMarker})
				}
			}
		}
	}
	if m.picked != nil {
		if ls, ok := snap.Line(m.picked.line); ok && m.picked.idx < len(ls.Vertices) {
			if mx, my, ok := m.screenXYMicro(ls.Vertices[m.picked.idx], w, h); ok {
				marks = append(marks, marker{mx / 2, my / 4, pickedMarker})
			}
		}
	}
	if m.hovering && m.mode == modeEdit {
		marks = append(marks, marker{m.hoverMicX / 2, m.hoverMicY / 4, hoverMarker})
	}
	return compose(br.toLines(), marks)
}

// compose overlays markers onto braille rows. Markers carry ANSI sequences,
// so each row is rebuilt cell by cell.
func compose(rows []string, marks []marker) string {
	at := map[[2]int]string{}
	for _, mk := range marks {
		at[[2]int{mk.x, mk.y}] = mk.glyph
	}
	out := make([]string, len(rows))
	for y, row := range rows {
		if len(at) == 0 {
			out[y] = row
			continue
		}
		var b strings.Builder
		for x, r := range []rune(row) {
			if g, ok := at[[2]int{x, y}]; ok {
				b.WriteString(g)
				continue
			}
			b.WriteRune(r)
		}
		out[y] = b.String()
	}
	return strings.Join(out, "\n")
}

// preview describes the segment from the last placed vertex to the cursor.
func (m Model) preview() (measure.Segment, bool) {
	if m.mode != modeDraw || !m.hoverOK {
		return measure.Segment{}, false
	}
	ls, ok := m.snapshot().Line(m.drawing)
	if !ok {
		return measure.Segment{}, false
	}
	return measure.Preview(ls.Vertices, m.hover)
}
