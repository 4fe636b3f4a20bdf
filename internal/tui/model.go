package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/paulmach/orb"
	"github.com/rs/zerolog"

	"geomeasure/internal/config"
	"geomeasure/internal/geodesy"
	"geomeasure/internal/registry"
	"geomeasure/internal/units"
)

type mode int

const (
	modeView mode = iota
	modeDraw
	modeEdit
)

func (md mode) String() string {
	switch md {
	case modeDraw:
		return "draw"
	case modeEdit:
		return "edit"
	default:
		return "view"
	}
}

// live receives registry snapshots. Model is copied by value on every
// Update, so the subscription writes through a pointer.
type live struct {
	snap  registry.Snapshot
	dirty bool
}

// segRef points a results table row at a segment.
type segRef struct {
	line registry.LineID
	seg  int
}

// vertexRef is a vertex picked for editing.
type vertexRef struct {
	line registry.LineID
	idx  int
}

type Model struct {
	width  int
	height int

	log  zerolog.Logger
	reg  *registry.Registry
	live *live

	showSidebar bool
	helpVisible bool

	// viewport in web mercator metres
	view    orb.Bound
	zoom    float64
	offsetX int
	offsetY int

	status string

	mode    mode
	drawing registry.LineID
	picked  *vertexRef

	du units.DistanceUnit
	au units.AngleUnit

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// hover state
	hovering   bool
	hoverCellX int
	hoverCellY int
	hoverMicX  int
	hoverMicY  int
	hover      geodesy.GeoPoint
	hoverOK    bool

	// results table
	showTable bool
	tbl       table.Model
	rows      []segRef
}

// New builds the UI over reg. The initial viewport and units come from cfg.
func New(cfg *config.Config, reg *registry.Registry, log zerolog.Logger) Model {
	lv := &live{snap: reg.Snapshot()}
	reg.Subscribe(func(s registry.Snapshot) {
		lv.snap = s
		lv.dirty = true
	})
	m := Model{
		log:         log,
		reg:         reg,
		live:        lv,
		helpVisible: true,
		zoom:        1.0,
		status:      "geomeasure ready",
		du:          cfg.Units.DistanceUnit(),
		au:          cfg.Units.AngleUnit(),
	}
	m.view = viewAround(cfg.Map.CenterLon, cfg.Map.CenterLat, cfg.Map.SpanDeg)
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT or encoded polylines. Press Enter to import; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithColumns(tableColumns()), table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath imports a file's lines at launch.
func NewWithPath(cfg *config.Config, reg *registry.Registry, log zerolog.Logger, path string) Model {
	m := New(cfg, reg, log)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// snapshot is the latest registry state seen by the UI.
func (m Model) snapshot() registry.Snapshot { return m.live.snap }
