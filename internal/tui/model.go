package tui

import (
	"log/slog"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	table "github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"antipode/internal/geom"
	"antipode/internal/locate"
	"antipode/internal/logger"
	"antipode/internal/state"
)

// Options configures New. Zero values fall back to sensible defaults.
type Options struct {
	DataPath      string
	FrameInterval time.Duration
	LocateTimeout time.Duration
	Strict        bool
	Locator       locate.Locator
	Logger        *slog.Logger
}

type Model struct {
	opts Options
	log  *slog.Logger

	width  int
	height int

	helpVisible bool
	status      string

	// dataset
	loading bool
	loadErr error
	sp      spinner.Model
	idx     *geom.Index

	// interaction
	sm      *state.Machine
	snap    state.Snapshot
	markers []marker
	co      coalescer

	// view
	globe  globe
	raster *raster

	// geolocation
	locating bool

	// country list
	showList bool
	l        list.Model

	// attributes table
	showAttrs bool
	tbl       table.Model

	// goto prompt
	gotoMode bool
	ti       textinput.Model
}

func New(opts Options) Model {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = time.Second / 60
	}
	if opts.LocateTimeout <= 0 {
		opts.LocateTimeout = 8 * time.Second
	}
	if opts.Locator == nil {
		opts.Locator = locate.Unavailable{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	m := Model{
		opts:        opts,
		log:         opts.Logger,
		helpVisible: true,
		loading:     true,
		status:      "Loading globe data…",
		globe:       newGlobe(),
		co:          coalescer{interval: opts.FrameInterval},
	}

	m.sp = spinner.New()
	m.sp.Spinner = spinner.Globe

	// list setup
	d := list.NewDefaultDelegate()
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Countries"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)

	m.ti = textinput.New()
	m.ti.Prompt = "go to › "
	m.ti.Placeholder = "lat, lon  or  POINT(lon lat)"
	m.ti.CharLimit = 64

	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.sp.Tick, loadCountries(m.opts.DataPath))
}

// Snapshot exposes the interaction state, mostly for tests and logging.
func (m Model) Snapshot() state.Snapshot { return m.snap }

func (m *Model) datasetLoaded(msg countriesMsg) {
	m.loading = false
	if msg.err != nil {
		m.loadErr = msg.err
		m.log.Error("loading countries", "path", m.opts.DataPath, "error", msg.err)
		return
	}
	m.idx = msg.idx
	m.sm = state.New(msg.idx, state.WithLogger(m.log), state.WithStrict(m.opts.Strict))
	m.snap = m.sm.Snapshot()
	m.refreshCountries()
	m.status = "Hover to explore · Click to lock · Esc to unlock"
	m.log.Info("loaded countries", "path", m.opts.DataPath, "count", msg.idx.Len())
}

// apply records the outcome of a state transition and refreshes whatever
// depends on the flags it reports.
func (m *Model) apply(op string, ch state.Change, err error) {
	if err != nil {
		m.log.Warn("transition rejected", "op", op, "error", err)
		m.status = err.Error()
	}
	m.snap = m.sm.Snapshot()
	if ch == 0 {
		return
	}
	m.log.Debug("transition", "op", op, "phase", m.snap.Phase(), "change", ch)
	if ch.Has(state.ChangeAntipode) {
		m.markers = buildMarkers(m.snap)
	}
	if m.showAttrs && ch.Has(state.ChangeFeature|state.ChangeAntipode) {
		m.refreshAttrs()
	}
}

// ensureRaster rebuilds the hit raster when the view or canvas changed.
func (m *Model) ensureRaster() {
	if m.idx == nil || m.width == 0 || m.height == 0 {
		return
	}
	l := m.layout()
	if m.raster.matches(m.idx, m.globe, l.mapW, l.mapH) {
		return
	}
	m.raster = buildRaster(m.idx, m.globe, l.mapW, l.mapH)
}
