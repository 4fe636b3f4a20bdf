package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/atotto/clipboard"
	list "github.com/charmbracelet/bubbles/list"

	"geomeasure/internal/geodesy"
	"geomeasure/internal/geom"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		items = append(items, fileItem{title: name, desc: filepath.Ext(name), path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath imports every line in a file as a finalized line.
func (m *Model) loadPath(p string) {
	m.selPath = p
	d, err := geom.LoadLines(p)
	if err != nil {
		m.log.Warn().Err(err).Str("path", p).Msg("load failed")
		m.status = "load error: " + err.Error()
		return
	}
	n := m.importData(d)
	m.status = fmt.Sprintf("loaded: %s  lines=%d", filepath.Base(p), n)
}

// importData adds the lines to the registry and frames them.
func (m *Model) importData(d geom.Data) int {
	n := 0
	for _, ls := range d.Lines {
		if _, ok := m.reg.ImportLine(geodesy.FromLineString(ls)); ok {
			n++
		}
	}
	if n > 0 {
		m.view = fitView(d.Bound)
		m.zoom = 1.0
		m.offsetX, m.offsetY = 0, 0
	}
	m.log.Info().Int("lines", n).Msg("lines imported")
	return n
}

// exportKML writes every line with its measurements next to the working
// directory's files.
func (m *Model) exportKML() {
	snap := m.snapshot()
	if len(snap.Lines) == 0 {
		m.status = "export: nothing to export"
		return
	}
	lines := make([]geom.ExportLine, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		lines = append(lines, geom.ExportLine{
			Name:     fmt.Sprintf("Line %d", l.ID),
			Vertices: l.Vertices,
			Table:    l.Table,
		})
	}
	p := filepath.Join(m.cwd, "geomeasure.kml")
	f, err := os.Create(p)
	if err != nil {
		m.status = "export error: " + err.Error()
		return
	}
	err = geom.WriteKML(f, lines, m.du, m.au)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		m.log.Error().Err(err).Str("path", p).Msg("export failed")
		m.status = "export error: " + err.Error()
		return
	}
	m.log.Info().Str("path", p).Int("lines", len(lines)).Msg("kml exported")
	m.status = fmt.Sprintf("exported %d lines to %s", len(lines), filepath.Base(p))
	m.refreshDir()
}

// copyPolyline puts a line as a Google encoded polyline on the clipboard
// and in the status line: the line under the table cursor, else the newest.
func (m *Model) copyPolyline() {
	snap := m.snapshot()
	if len(snap.Lines) == 0 {
		m.status = "copy: no lines"
		return
	}
	ls := snap.Lines[len(snap.Lines)-1]
	if i := m.tbl.Cursor(); m.showTable && i >= 0 && i < len(m.rows) {
		if sel, ok := snap.Line(m.rows[i].line); ok {
			ls = sel
		}
	}
	enc := geom.EncodePolyline(geodesy.LonLats(ls.Vertices))
	if err := clipboard.WriteAll(enc); err != nil {
		m.log.Debug().Err(err).Msg("clipboard unavailable")
	}
	m.status = fmt.Sprintf("line %d polyline: %s", ls.ID, enc)
}
