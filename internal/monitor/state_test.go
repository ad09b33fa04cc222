package monitor

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/tinytelemetry/subwatch/internal/model"
)

type fakeSource struct {
	snap       *model.Snapshot
	fetchErr   error
	resp       *model.RefreshResponse
	refreshErr error

	fetchCalls   int
	refreshCalls int
}

func (f *fakeSource) FetchCount(_ context.Context) (*model.Snapshot, error) {
	f.fetchCalls++
	return f.snap, f.fetchErr
}

func (f *fakeSource) Refresh(_ context.Context) (*model.RefreshResponse, error) {
	f.refreshCalls++
	return f.resp, f.refreshErr
}

func sampleSnapshot(count int64) *model.Snapshot {
	return &model.Snapshot{
		Count:       model.Int64(count),
		ProblemID:   model.String("P7"),
		LastRefresh: model.String("2024-01-01T00:00:00Z"),
	}
}

func TestNewState(t *testing.T) {
	t.Parallel()

	s := NewState()
	want := State{Loading: true}
	if !reflect.DeepEqual(s, want) {
		t.Fatalf("NewState() = %+v, want %+v", s, want)
	}
	if s.CanRefresh() {
		t.Error("CanRefresh() = true while loading")
	}
}

func TestFetchInitial_Success(t *testing.T) {
	t.Parallel()

	snap := sampleSnapshot(42)
	src := &fakeSource{snap: snap}
	s := NewState()
	s.Error = "stale"

	s.FetchInitial(context.Background(), src)

	if s.Loading {
		t.Error("Loading = true after fetch resolved")
	}
	if s.Data != snap {
		t.Errorf("Data = %+v, want %+v", s.Data, snap)
	}
	if s.Error != "" {
		t.Errorf("Error = %q, want empty", s.Error)
	}
	if src.fetchCalls != 1 {
		t.Errorf("fetch calls = %d, want 1", src.fetchCalls)
	}
}

func TestFetchInitial_TransportFailure(t *testing.T) {
	t.Parallel()

	src := &fakeSource{fetchErr: errors.New("connection refused")}
	s := NewState()

	s.FetchInitial(context.Background(), src)

	if s.Loading {
		t.Error("Loading = true after fetch failed")
	}
	if s.Data != nil {
		t.Errorf("Data = %+v, want nil", s.Data)
	}
	if s.Error != MsgLoadFailed {
		t.Errorf("Error = %q, want %q", s.Error, MsgLoadFailed)
	}
}

func TestRefresh_GatedWhileBusy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		state State
	}{
		{name: "loading", state: State{Loading: true}},
		{name: "refreshing", state: State{Refreshing: true, Data: sampleSnapshot(1)}},
		{name: "both", state: State{Loading: true, Refreshing: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{resp: &model.RefreshResponse{Success: true, Data: sampleSnapshot(9)}}
			s := tt.state
			before := s

			if s.Refresh(context.Background(), src) {
				t.Error("Refresh() = true, want false")
			}
			if src.refreshCalls != 0 {
				t.Errorf("refresh calls = %d, want 0", src.refreshCalls)
			}
			if !reflect.DeepEqual(s, before) {
				t.Errorf("state changed: got %+v, want %+v", s, before)
			}
		})
	}
}

func TestRefresh_Success(t *testing.T) {
	t.Parallel()

	next := sampleSnapshot(43)
	src := &fakeSource{resp: &model.RefreshResponse{Success: true, Data: next}}
	s := State{Data: sampleSnapshot(42), Error: MsgLoadFailed}

	if !s.Refresh(context.Background(), src) {
		t.Fatal("Refresh() = false, want true")
	}
	if s.Data != next {
		t.Errorf("Data = %+v, want %+v", s.Data, next)
	}
	if s.Error != "" {
		t.Errorf("Error = %q, want empty", s.Error)
	}
	if s.Refreshing {
		t.Error("Refreshing = true after refresh resolved")
	}
}

func TestRefresh_Rejected(t *testing.T) {
	t.Parallel()

	prev := sampleSnapshot(42)
	src := &fakeSource{resp: &model.RefreshResponse{Success: false, Message: "Failed to refresh count"}}
	s := State{Data: prev}

	s.Refresh(context.Background(), src)

	if s.Data != prev {
		t.Errorf("Data = %+v, want unchanged %+v", s.Data, prev)
	}
	if s.Error != MsgRefreshRejected {
		t.Errorf("Error = %q, want %q", s.Error, MsgRefreshRejected)
	}
	if s.Refreshing {
		t.Error("Refreshing = true after refresh resolved")
	}
}

func TestRefresh_TransportFailure(t *testing.T) {
	t.Parallel()

	prev := sampleSnapshot(42)
	src := &fakeSource{refreshErr: errors.New("network down")}
	s := State{Data: prev}

	s.Refresh(context.Background(), src)

	if s.Data != prev {
		t.Errorf("Data = %+v, want unchanged %+v", s.Data, prev)
	}
	if s.Error != MsgRefreshTransportFail {
		t.Errorf("Error = %q, want %q", s.Error, MsgRefreshTransportFail)
	}
	if s.Refreshing {
		t.Error("Refreshing = true after refresh failed")
	}
}

func TestRefresh_Idempotent(t *testing.T) {
	t.Parallel()

	resp := &model.RefreshResponse{Success: true, Data: sampleSnapshot(50)}

	once := State{Data: sampleSnapshot(1)}
	once.Refresh(context.Background(), &fakeSource{resp: resp})

	twice := State{Data: sampleSnapshot(1)}
	src := &fakeSource{resp: resp}
	twice.Refresh(context.Background(), src)
	twice.Refresh(context.Background(), src)

	if src.refreshCalls != 2 {
		t.Fatalf("refresh calls = %d, want 2", src.refreshCalls)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("state after two refreshes = %+v, want %+v", twice, once)
	}
}

func TestRefresh_AfterFailedInitialFetch(t *testing.T) {
	t.Parallel()

	src := &fakeSource{
		fetchErr: errors.New("boom"),
		resp:     &model.RefreshResponse{Success: true, Data: sampleSnapshot(3)},
	}
	s := NewState()
	s.FetchInitial(context.Background(), src)

	if !s.CanRefresh() {
		t.Fatal("CanRefresh() = false after initial fetch failed")
	}
	s.Refresh(context.Background(), src)
	if s.Error != "" || s.Data == nil || *s.Data.Count != 3 {
		t.Errorf("state after retry = %+v", s)
	}
}
