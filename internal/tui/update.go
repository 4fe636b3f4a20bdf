package tui

import (
	"errors"
	"fmt"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"geomeasure/internal/geodesy"
	"geomeasure/internal/geom"
	"geomeasure/internal/registry"
)

// pickRadius is how close, in braille dots, a click must land to pick a vertex.
const pickRadius = 6

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.update(msg)
	if m.live.dirty {
		m.refreshTable()
	}
	return m, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.showSidebar {
			m.l.SetSize(sidebarWidth-2, m.layout().mapH-2)
		}
	case tea.KeyMsg:
		// If list is visible and filtering, send keys to list and ignore global commands
		if m.showSidebar && m.l.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.l, cmd = m.l.Update(msg)
			return m, cmd
		}
		if m.pasteMode {
			return m.updatePaste(msg)
		}
		if m.showTable {
			switch msg.String() {
			case "up", "down", "k", "j", "pgup", "pgdown", "home", "end":
				var cmd tea.Cmd
				m.tbl, cmd = m.tbl.Update(msg)
				return m, cmd
			case "x", "delete":
				m.deleteSelected()
				return m, nil
			}
		}
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg), nil
	}
	// Pass messages to list when visible
	if m.showSidebar {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updatePaste(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	case "enter":
		d, err := geom.ParseText(m.ta.Value())
		if err != nil {
			m.status = "paste error: " + err.Error()
			return m, nil
		}
		n := m.importData(d)
		m.status = fmt.Sprintf("imported %d pasted lines", n)
		m.pasteMode = false
		m.ta.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.ta, cmd = m.ta.Update(msg)
	return m, cmd
}

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "d":
		if m.mode == modeDraw {
			m.finishDrawing()
			m.mode = modeView
			break
		}
		m.cancelPick()
		m.mode = modeDraw
		m.status = "draw: click to add vertices, enter to finish, esc to discard"
	case "e":
		if m.mode == modeEdit {
			m.cancelPick()
			m.mode = modeView
			m.status = "view mode"
			break
		}
		m.finishDrawing()
		m.mode = modeEdit
		m.status = "edit: click a vertex, then click its new position"
	case "enter":
		if m.mode == modeDraw {
			m.finishDrawing()
			break
		}
		if m.showSidebar {
			if it, ok := m.l.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	case "esc":
		switch {
		case m.mode == modeDraw && m.drawing != registry.NewLine:
			m.reg.DiscardLine(m.drawing)
			m.drawing = registry.NewLine
			m.status = "line discarded"
		case m.picked != nil:
			m.cancelPick()
			m.status = "edit cancelled"
		default:
			m.mode = modeView
			m.status = "view mode"
		}
	case "t":
		m.showTable = !m.showTable
		if m.showTable {
			m.refreshTable()
		}
	case "u":
		m.du = m.du.Toggle()
		m.refreshTable()
		m.status = "distance unit: " + m.du.String()
	case "r":
		m.au = m.au.Toggle()
		m.refreshTable()
		m.status = "angle unit: " + m.au.String()
	case "c":
		m.reg.ClearAll()
		m.drawing = registry.NewLine
		m.picked = nil
		m.status = "cleared"
	case "s":
		m.exportKML()
	case "y":
		m.copyPolyline()
	case "+", "=":
		if m.zoom < 64 {
			m.zoom *= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "-", "_":
		if m.zoom > 0.05 {
			m.zoom /= 1.2
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
			m.l.SetSize(sidebarWidth-2, m.layout().mapH-2)
		}
	case "p":
		m.pasteMode = true
		m.ta.SetValue("")
		m.status = "paste mode"
		m.ta.Focus()
	case "h":
		m.helpVisible = !m.helpVisible
	case "up":
		m.offsetY -= 1
	case "down":
		m.offsetY += 1
	case "left":
		m.offsetX -= 2
	case "right":
		m.offsetX += 2
	}
	return m, nil
}

func (m Model) updateMouse(msg tea.MouseMsg) Model {
	lay := m.layout()
	cx, cy := msg.X-lay.mapX, msg.Y-lay.mapY
	if cx < 0 || cx >= lay.mapW || cy < 0 || cy >= lay.mapH {
		m.hovering = false
		m.hoverOK = false
		return m
	}
	m.hovering = true
	m.hoverCellX, m.hoverCellY = cx, cy
	m.hover, m.hoverOK = m.cellToPoint(cx, cy, lay.mapW, lay.mapH)
	if _, bx, by, ok := m.nearestVertex(cx*2, cy*4, pickRadius, lay.mapW, lay.mapH); ok {
		m.hoverMicX, m.hoverMicY = bx, by
	} else {
		m.hoverMicX, m.hoverMicY = cx*2, cy*4
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft || !m.hoverOK {
		return m
	}
	switch m.mode {
	case modeDraw:
		id, err := m.reg.AddVertex(m.drawing, m.hover)
		if err != nil {
			m.status = "draw error: " + err.Error()
			return m
		}
		m.drawing = id
		n := 0
		if ls, ok := m.snapshot().Line(id); ok {
			n = len(ls.Vertices)
		}
		m.status = fmt.Sprintf("line %d: %d vertices", id, n)
	case modeEdit:
		if m.picked == nil {
			m.pick(cx, cy, lay)
			return m
		}
		m.moveVertex(m.hover)
	}
	return m
}

// finishDrawing finalizes the line being drawn, if any.
func (m *Model) finishDrawing() {
	if m.drawing == registry.NewLine {
		return
	}
	id := m.drawing
	m.drawing = registry.NewLine
	if err := m.reg.FinalizeLine(id); err != nil {
		m.status = "finalize error: " + err.Error()
		return
	}
	if m.reg.State(id) == registry.Removed {
		m.status = "line dropped: fewer than two vertices"
		return
	}
	m.status = fmt.Sprintf("line %d finished", id)
}

func (m *Model) pick(cx, cy int, lay layout) {
	ref, _, _, ok := m.nearestVertex(cx*2, cy*4, pickRadius, lay.mapW, lay.mapH)
	if !ok {
		m.status = "no vertex nearby"
		return
	}
	if err := m.reg.BeginEdit(ref.line); err != nil {
		m.status = "edit error: " + err.Error()
		return
	}
	m.picked = &ref
	m.status = fmt.Sprintf("line %d vertex %d picked", ref.line, ref.idx+1)
}

// moveVertex replaces the picked vertex with p and ends the edit.
func (m *Model) moveVertex(p geodesy.GeoPoint) {
	ref := *m.picked
	m.picked = nil
	v, ok := m.reg.Vertices(ref.line)
	if !ok || ref.idx >= len(v) {
		m.status = "edit error: vertex is gone"
		return
	}
	v[ref.idx] = p
	if err := m.reg.ReplaceVertices(ref.line, v); err != nil {
		m.status = "edit error: " + err.Error()
		return
	}
	if err := m.reg.EndEdit(ref.line); err != nil && !errors.Is(err, registry.ErrLineNotFound) {
		m.status = "edit error: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("line %d vertex %d moved", ref.line, ref.idx+1)
}

func (m *Model) cancelPick() {
	if m.picked == nil {
		return
	}
	_ = m.reg.EndEdit(m.picked.line)
	m.picked = nil
}
