package tui

import (
	"context"
	"time"

	"github.com/tinytelemetry/subwatch/internal/model"
	"github.com/tinytelemetry/subwatch/internal/monitor"

	tea "github.com/charmbracelet/bubbletea"
)

// Options configures a MonitorModel.
type Options struct {
	// TimeFormat is the Go layout for the Last Updated line.
	TimeFormat string
	// Location for the Last Updated line. Nil means local time.
	Location *time.Location
	// SourceLabel names the backend in the status line (usually its base URL).
	SourceLabel string
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// MonitorModel is the submission monitor screen. It owns one monitor.State and
// mutates it only from Update, when a request starts or its result arrives.
type MonitorModel struct {
	state  monitor.State
	source model.SnapshotSource
	keys   KeyMap

	timeFormat  string
	location    *time.Location
	sourceLabel string
	now         func() time.Time

	showHelp      bool
	spinnerActive bool
	width         int
	height        int

	// ctx is canceled by Close so in-flight requests are abandoned.
	ctx    context.Context
	cancel context.CancelFunc
	closed bool
}

// snapshotLoadedMsg carries the result of GET /api/count back to Update.
type snapshotLoadedMsg struct {
	snap *model.Snapshot
	err  error
}

// refreshDoneMsg carries the result of POST /api/refresh back to Update.
type refreshDoneMsg struct {
	resp *model.RefreshResponse
	err  error
}

// RefreshRequestMsg asks the monitor to refresh, as if the refresh key was pressed.
type RefreshRequestMsg struct{}

// NewMonitorModel creates the monitor screen for src.
func NewMonitorModel(src model.SnapshotSource, opts Options) *MonitorModel {
	ctx, cancel := context.WithCancel(context.Background())
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &MonitorModel{
		state:       monitor.NewState(),
		source:      src,
		keys:        DefaultKeyMap(),
		timeFormat:  opts.TimeFormat,
		location:    opts.Location,
		sourceLabel: opts.SourceLabel,
		now:         now,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// State returns a copy of the current view state.
func (m *MonitorModel) State() monitor.State {
	return m.state
}

// RenderModel derives what the view draws from the current state.
func (m *MonitorModel) RenderModel() monitor.RenderModel {
	return monitor.Derive(m.state, monitor.DeriveOptions{
		TimeFormat: m.timeFormat,
		Location:   m.location,
		Now:        m.now(),
	})
}

// Close cancels in-flight requests. Results that arrive afterwards are dropped.
func (m *MonitorModel) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.cancel()
}

// Init starts the initial fetch.
func (m *MonitorModel) Init() tea.Cmd {
	m.state.BeginFetch()
	return tea.Batch(m.fetchInitialCmd(), m.startSpinnerIfNeeded())
}

// refresh starts a manual refresh. It returns nil, issuing no request, while
// a fetch or refresh is in flight.
func (m *MonitorModel) refresh() tea.Cmd {
	if m.closed || !m.state.BeginRefresh() {
		return nil
	}
	return tea.Batch(m.refreshCmd(), m.startSpinnerIfNeeded())
}

func (m *MonitorModel) fetchInitialCmd() tea.Cmd {
	ctx, src := m.ctx, m.source
	return func() tea.Msg {
		snap, err := src.FetchCount(ctx)
		return snapshotLoadedMsg{snap: snap, err: err}
	}
}

func (m *MonitorModel) refreshCmd() tea.Cmd {
	ctx, src := m.ctx, m.source
	return func() tea.Msg {
		resp, err := src.Refresh(ctx)
		return refreshDoneMsg{resp: resp, err: err}
	}
}

// MonitorPage adapts MonitorModel to the Page interface.
type MonitorPage struct {
	Model *MonitorModel
}

// NewMonitorPage wraps a MonitorModel as a Page.
func NewMonitorPage(m *MonitorModel) *MonitorPage {
	return &MonitorPage{Model: m}
}

func (p *MonitorPage) ID() string { return "monitor" }

func (p *MonitorPage) Init() tea.Cmd {
	return p.Model.Init()
}

func (p *MonitorPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	_, cmd := p.Model.Update(msg)
	return cmd, nil
}

func (p *MonitorPage) View(width, height int) string {
	p.Model.width = width
	p.Model.height = height
	return p.Model.View()
}

// Close releases the model's in-flight requests.
func (p *MonitorPage) Close() {
	p.Model.Close()
}
