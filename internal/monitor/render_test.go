package monitor

import (
	"strings"
	"testing"
	"time"

	"github.com/tinytelemetry/subwatch/internal/model"
)

func TestDerive_Loading(t *testing.T) {
	t.Parallel()

	r := Derive(NewState(), DeriveOptions{})

	if !r.ShowLoading || r.ShowData() {
		t.Fatalf("ShowLoading = %v, ShowData = %v; want loading only", r.ShowLoading, r.ShowData())
	}
	if r.LoadingText != LoadingText {
		t.Errorf("LoadingText = %q, want %q", r.LoadingText, LoadingText)
	}
	if r.Count != "" || r.Warning != nil || r.BlockedBadge || r.ProblemID != "" {
		t.Errorf("data fields set while loading: %+v", r)
	}
	if !r.RefreshDisabled {
		t.Error("RefreshDisabled = false while loading")
	}
	if r.RefreshLabel != RefreshLabel {
		t.Errorf("RefreshLabel = %q, want %q", r.RefreshLabel, RefreshLabel)
	}
}

func TestDerive_Data(t *testing.T) {
	t.Parallel()

	s := State{Data: sampleSnapshot(42)}
	now := time.Date(2024, 1, 1, 0, 5, 0, 0, time.UTC)
	r := Derive(s, DeriveOptions{Location: time.UTC, Now: now})

	if r.ShowLoading {
		t.Fatal("ShowLoading = true")
	}
	if r.Count != "42" {
		t.Errorf("Count = %q, want 42", r.Count)
	}
	if r.ProblemID != "P7" {
		t.Errorf("ProblemID = %q, want P7", r.ProblemID)
	}
	if r.LastUpdated != "2024-01-01 00:00:00" {
		t.Errorf("LastUpdated = %q, want 2024-01-01 00:00:00", r.LastUpdated)
	}
	if r.LastUpdatedAgo != "5 minutes ago" {
		t.Errorf("LastUpdatedAgo = %q, want 5 minutes ago", r.LastUpdatedAgo)
	}
	if r.BlockedBadge {
		t.Error("BlockedBadge = true")
	}
	if r.Warning != nil {
		t.Errorf("Warning = %+v, want nil", r.Warning)
	}
	if r.Banner != "" {
		t.Errorf("Banner = %q, want empty", r.Banner)
	}
	if r.AutoRefreshNote != AutoRefreshNote {
		t.Errorf("AutoRefreshNote = %q, want %q", r.AutoRefreshNote, AutoRefreshNote)
	}
	if r.RefreshDisabled {
		t.Error("RefreshDisabled = true when idle")
	}
}

func TestDerive_Blocked(t *testing.T) {
	t.Parallel()

	s := State{Data: &model.Snapshot{Error: "site blocked", Status: model.StatusBlocked}}
	r := Derive(s, DeriveOptions{})

	if r.Count != NotAvailable {
		t.Errorf("Count = %q, want %q", r.Count, NotAvailable)
	}
	if r.Warning == nil {
		t.Fatal("Warning = nil, want panel")
	}
	if r.Warning.Message != "site blocked" {
		t.Errorf("Warning.Message = %q, want site blocked", r.Warning.Message)
	}
	if r.Warning.BlockedNote != BlockedNote {
		t.Errorf("Warning.BlockedNote = %q, want blocked note", r.Warning.BlockedNote)
	}
	if !r.BlockedBadge {
		t.Error("BlockedBadge = false")
	}
	if !strings.HasSuffix(r.AutoRefreshNote, BlockedSuffix) {
		t.Errorf("AutoRefreshNote = %q, want blocked suffix", r.AutoRefreshNote)
	}
	if r.ProblemID != NotAvailable || r.LastUpdated != NotAvailable {
		t.Errorf("ProblemID/LastUpdated = %q/%q, want N/A", r.ProblemID, r.LastUpdated)
	}
}

func TestDerive_SoftErrorNotBlocked(t *testing.T) {
	t.Parallel()

	s := State{Data: &model.Snapshot{Count: model.Int64(0), Error: "parse failed"}}
	r := Derive(s, DeriveOptions{})

	if r.Count != "0" {
		t.Errorf("Count = %q, want 0", r.Count)
	}
	if r.Warning == nil || r.Warning.BlockedNote != "" {
		t.Errorf("Warning = %+v, want panel without blocked note", r.Warning)
	}
	if r.BlockedBadge {
		t.Error("BlockedBadge = true without blocked status")
	}
}

func TestDerive_BannerAndWarningIndependent(t *testing.T) {
	t.Parallel()

	s := State{
		Data:  &model.Snapshot{Error: "upstream 403", Status: model.StatusBlocked},
		Error: MsgRefreshTransportFail,
	}
	r := Derive(s, DeriveOptions{})

	if r.Banner != MsgRefreshTransportFail {
		t.Errorf("Banner = %q, want %q", r.Banner, MsgRefreshTransportFail)
	}
	if r.Warning == nil || r.Warning.Message != "upstream 403" {
		t.Errorf("Warning = %+v, want upstream 403", r.Warning)
	}
}

func TestDerive_NoDataAfterFailedFetch(t *testing.T) {
	t.Parallel()

	s := State{Error: MsgLoadFailed}
	r := Derive(s, DeriveOptions{})

	if r.ShowLoading {
		t.Fatal("ShowLoading = true")
	}
	if r.Banner != MsgLoadFailed {
		t.Errorf("Banner = %q, want %q", r.Banner, MsgLoadFailed)
	}
	if r.Count != NotAvailable || r.ProblemID != NotAvailable || r.LastUpdated != NotAvailable {
		t.Errorf("fields = %q/%q/%q, want N/A", r.Count, r.ProblemID, r.LastUpdated)
	}
	if r.Warning != nil || r.BlockedBadge {
		t.Errorf("Warning/BlockedBadge set without data: %+v", r)
	}
	if r.RefreshDisabled {
		t.Error("RefreshDisabled = true after failed initial fetch")
	}
}

func TestDerive_Refreshing(t *testing.T) {
	t.Parallel()

	s := State{Data: sampleSnapshot(42), Refreshing: true}
	r := Derive(s, DeriveOptions{})

	if !r.RefreshDisabled || !r.RefreshInProgress {
		t.Errorf("RefreshDisabled/InProgress = %v/%v, want true/true", r.RefreshDisabled, r.RefreshInProgress)
	}
	if r.RefreshLabel != RefreshingLabel {
		t.Errorf("RefreshLabel = %q, want %q", r.RefreshLabel, RefreshingLabel)
	}
	if r.Count != "42" {
		t.Errorf("Count = %q, want previous data while refreshing", r.Count)
	}
}

func TestDerive_UnparseableTimestampShownVerbatim(t *testing.T) {
	t.Parallel()

	s := State{Data: &model.Snapshot{LastRefresh: model.String("sometime")}}
	r := Derive(s, DeriveOptions{Now: time.Now()})

	if r.LastUpdated != "sometime" {
		t.Errorf("LastUpdated = %q, want verbatim", r.LastUpdated)
	}
	if r.LastUpdatedAgo != "" {
		t.Errorf("LastUpdatedAgo = %q, want empty", r.LastUpdatedAgo)
	}
}

func TestDerive_DoesNotMutateState(t *testing.T) {
	t.Parallel()

	s := State{Data: sampleSnapshot(5), Error: "x"}
	snapBefore := *s.Data.Clone()
	_ = Derive(s, DeriveOptions{Now: time.Now()})

	if *s.Data.Count != *snapBefore.Count || s.Error != "x" {
		t.Errorf("state mutated: %+v", s)
	}
}
