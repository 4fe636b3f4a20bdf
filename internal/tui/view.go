package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"geomeasure/internal/units"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
)

// layout is the map area in screen cells. View and mouse handling must agree
// on it.
type layout struct {
	mapX, mapY int
	mapW, mapH int
	tableW     int
}

func (m Model) layout() layout {
	contentHeight := max(4, m.height-headerHeight-footerHeight)
	contentWidth := max(10, m.width)
	lay := layout{mapY: headerHeight, mapH: contentHeight}
	mapWidth := contentWidth - 1
	if m.showSidebar {
		lay.mapX = sidebarWidth + 1
		mapWidth -= sidebarWidth + 1
	}
	if m.showTable {
		lay.tableW = min(tableWidth(), mapWidth/2)
		mapWidth -= lay.tableW
	}
	lay.mapW = max(10, mapWidth)
	return lay
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()
	contentWidth := max(10, m.width)

	header := titleStyle.Render(" geomeasure ─ " + m.mode.String() + " ")
	header = lipgloss.NewStyle().Width(contentWidth).Padding(0).Render(header)

	var mapView string
	if m.pasteMode {
		m.ta.SetWidth(lay.mapW)
		m.ta.SetHeight(min(lay.mapH, 12))
		mapView = m.ta.View()
	} else {
		mapView = m.renderMap(lay.mapW, lay.mapH)
	}
	mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(mapView)

	cols := []string{}
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.mapH-2)
		cols = append(cols, lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View()), " ")
	}
	cols = append(cols, mapView)
	if m.showTable {
		m.tbl.SetWidth(lay.tableW - 4)
		m.tbl.SetHeight(max(1, lay.mapH-4))
		cols = append(cols, boxStyle.Width(lay.tableW-2).Render(m.tbl.View()))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	status := dimStyle.Render(" " + m.status + " ")
	coords := ""
	if m.hoverOK {
		coords = dimStyle.Render(fmt.Sprintf("  lon=%.5f lat=%.5f  ", m.hover.Lon(), m.hover.Lat()))
	}
	spacerW := max(0, contentWidth-lipgloss.Width(status)-lipgloss.Width(coords))
	line1 := status + strings.Repeat(" ", spacerW) + coords

	line2 := totalsStyle.Render(" " + m.totalsLine() + " ")
	if p := m.previewLine(); p != "" {
		line2 += previewStyle.Render(" " + p + " ")
	} else {
		line2 += m.renderHelp()
	}
	footer := lipgloss.NewStyle().Width(contentWidth).Render(lipgloss.JoinVertical(lipgloss.Left, line1, line2))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(contentWidth).Height(m.height).Render(ui)
}

func (m Model) totalsLine() string {
	snap := m.snapshot()
	return fmt.Sprintf("lines %d  segments %d  total %s",
		len(snap.Lines), snap.Segments(), units.FormatDistance(snap.Totals.Km, m.du))
}

// previewLine describes the rubber band segment while drawing.
func (m Model) previewLine() string {
	s, ok := m.preview()
	if !ok {
		return ""
	}
	out := fmt.Sprintf("→ %s  %s", s.Azimuth, units.FormatDistance(s.DistanceKm, m.du))
	if s.Turn != nil {
		out += "  turn " + units.FormatAngle(s.Turn.Degrees, m.au) + " " + s.Turn.Direction.String()
	}
	return out
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"d draw",
		"e edit",
		"t table",
		"x del seg",
		"u km/mi",
		"r deg/rad",
		"c clear",
		"s kml",
		"y polyline",
		"p paste",
		"Tab files",
		"↑↓←→ pan",
		"+/- zoom",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
