package monitor

import (
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tinytelemetry/subwatch/internal/model"
)

// Static copy shown by the monitor.
const (
	Title            = "Submission Monitor"
	LoadingText      = "Loading data..."
	NotAvailable     = "N/A"
	WarningHeading   = "Monitoring Issue"
	BlockedBadge     = "Blocked"
	BlockedNote      = "The monitored website may be blocking automated requests. This is temporary and the system will keep trying."
	AutoRefreshNote  = "Auto-refreshes every hour"
	BlockedSuffix    = " (currently blocked)"
	CountCaption     = "Current Submissions"
	RefreshLabel     = "Refresh Now"
	RefreshingLabel  = "Refreshing..."
	FooterText       = "Data refreshes automatically every hour"
	defaultLayoutFmt = model.DefaultTimeFormat
)

// DeriveOptions controls presentation details that are not part of State.
type DeriveOptions struct {
	// TimeFormat is the layout for Last Updated. Empty uses the default.
	TimeFormat string
	// Location for Last Updated. Nil means time.Local.
	Location *time.Location
	// Now anchors the relative "ago" text. Zero disables it.
	Now time.Time
}

// Warning is the soft-error panel for an upstream-reported problem.
type Warning struct {
	Heading     string
	Message     string
	BlockedNote string // empty unless the snapshot is blocked
}

// RenderModel is everything the view draws, derived from State.
type RenderModel struct {
	Title  string
	Banner string // transport-level error, rendered above everything

	ShowLoading bool
	LoadingText string

	Warning         *Warning
	Count           string
	CountCaption    string
	BlockedBadge    bool
	ProblemID       string
	LastUpdated     string
	LastUpdatedAgo  string
	AutoRefreshNote string

	RefreshDisabled   bool
	RefreshInProgress bool
	RefreshLabel      string

	Footer string
}

// ShowData reports whether the data section is drawn.
func (r RenderModel) ShowData() bool {
	return !r.ShowLoading
}

// Derive computes the render model for s. It has no side effects.
func Derive(s State, opts DeriveOptions) RenderModel {
	r := RenderModel{
		Title:             Title,
		Banner:            s.Error,
		ShowLoading:       s.Loading,
		RefreshDisabled:   s.Refreshing || s.Loading,
		RefreshInProgress: s.Refreshing,
		RefreshLabel:      RefreshLabel,
		Footer:            FooterText,
	}
	if s.Refreshing {
		r.RefreshLabel = RefreshingLabel
	}
	if s.Loading {
		r.LoadingText = LoadingText
		return r
	}

	d := s.Data
	blocked := d.Blocked()

	if d != nil && d.Error != "" {
		w := &Warning{Heading: WarningHeading, Message: d.Error}
		if blocked {
			w.BlockedNote = BlockedNote
		}
		r.Warning = w
	}

	r.Count = NotAvailable
	if d != nil && d.Count != nil {
		r.Count = strconv.FormatInt(*d.Count, 10)
	}
	r.CountCaption = CountCaption
	r.BlockedBadge = blocked

	r.ProblemID = NotAvailable
	if d != nil && d.ProblemID != nil && *d.ProblemID != "" {
		r.ProblemID = *d.ProblemID
	}

	r.LastUpdated, r.LastUpdatedAgo = formatLastRefresh(d, opts)

	r.AutoRefreshNote = AutoRefreshNote
	if blocked {
		r.AutoRefreshNote += BlockedSuffix
	}
	return r
}

func formatLastRefresh(d *model.Snapshot, opts DeriveOptions) (string, string) {
	if d == nil || d.LastRefresh == nil || *d.LastRefresh == "" {
		return NotAvailable, ""
	}
	t, ok := d.LastRefreshTime()
	if !ok {
		return *d.LastRefresh, ""
	}

	layout := opts.TimeFormat
	if layout == "" {
		layout = defaultLayoutFmt
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	var ago string
	if !opts.Now.IsZero() {
		ago = humanize.RelTime(t, opts.Now, "ago", "from now")
	}
	return t.In(loc).Format(layout), ago
}
