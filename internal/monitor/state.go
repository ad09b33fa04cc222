package monitor

import (
	"context"
	"log"

	"github.com/tinytelemetry/subwatch/internal/model"
)

// User-facing messages for failed operations.
const (
	MsgLoadFailed           = "Failed to load data. Please try again later."
	MsgRefreshRejected      = "Failed to refresh data. Please try again."
	MsgRefreshTransportFail = "Failed to refresh data. Please try again later."
)

// State is the monitor's view state.
type State struct {
	Data       *model.Snapshot
	Loading    bool
	Refreshing bool
	Error      string
}

// NewState returns the state at mount: loading, no data, no error.
func NewState() State {
	return State{Loading: true}
}

// CanRefresh reports whether a manual refresh may start.
func (s State) CanRefresh() bool {
	return !s.Loading && !s.Refreshing
}

// BeginFetch marks the initial fetch as in flight.
func (s *State) BeginFetch() {
	s.Loading = true
	s.Error = ""
}

// ResolveFetch applies the outcome of GET /api/count. Loading is cleared on
// every path.
func (s *State) ResolveFetch(snap *model.Snapshot, err error) {
	s.Loading = false
	if err != nil {
		log.Printf("monitor: initial fetch failed: %v", err)
		s.Error = MsgLoadFailed
		return
	}
	s.Data = snap
	s.Error = ""
}

// BeginRefresh marks a refresh as in flight. It returns false, leaving the
// state untouched, when a fetch or refresh is already running.
func (s *State) BeginRefresh() bool {
	if !s.CanRefresh() {
		return false
	}
	s.Refreshing = true
	s.Error = ""
	return true
}

// ResolveRefresh applies the outcome of POST /api/refresh. Refreshing is
// cleared on every path and Data only changes on success.
func (s *State) ResolveRefresh(resp *model.RefreshResponse, err error) {
	s.Refreshing = false
	switch {
	case err != nil:
		log.Printf("monitor: refresh failed: %v", err)
		s.Error = MsgRefreshTransportFail
	case resp == nil || !resp.Success:
		if resp != nil && resp.Message != "" {
			log.Printf("monitor: refresh rejected: %s", resp.Message)
		}
		s.Error = MsgRefreshRejected
	default:
		s.Data = resp.Data
	}
}

// FetchInitial runs the initial fetch synchronously against src.
func (s *State) FetchInitial(ctx context.Context, src model.SnapshotSource) {
	s.BeginFetch()
	snap, err := src.FetchCount(ctx)
	s.ResolveFetch(snap, err)
}

// Refresh runs a manual refresh synchronously against src. It reports false
// without issuing a request when a refresh is not allowed.
func (s *State) Refresh(ctx context.Context, src model.SnapshotSource) bool {
	if !s.BeginRefresh() {
		return false
	}
	resp, err := src.Refresh(ctx)
	s.ResolveRefresh(resp, err)
	return true
}
