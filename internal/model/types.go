package model

import (
	"strings"
	"time"
)

// Snapshot is the payload served by GET /api/count and embedded in refresh
// responses. Every field is optional on the wire.
type Snapshot struct {
	Count       *int64  `json:"count" yaml:"count"`
	ProblemID   *string `json:"problem_id" yaml:"problem_id"`
	LastRefresh *string `json:"last_refresh" yaml:"last_refresh"`
	Status      string  `json:"status,omitempty" yaml:"status,omitempty"`
	Error       string  `json:"error,omitempty" yaml:"error,omitempty"`
}

// RefreshResponse is the body of POST /api/refresh.
type RefreshResponse struct {
	Success bool      `json:"success"`
	Data    *Snapshot `json:"data"`
	Message string    `json:"message,omitempty"`
}

// Health is the body of GET /health.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	ProblemID string `json:"problem_id"`
}

// Blocked reports whether the upstream site is refusing requests.
func (s *Snapshot) Blocked() bool {
	return s != nil && s.Status == StatusBlocked
}

// Layouts accepted for last_refresh, tried in order. Zone-less layouts are
// interpreted in local time.
var lastRefreshLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// LastRefreshTime parses last_refresh. ok is false when the field is absent or
// matches none of the known layouts.
func (s *Snapshot) LastRefreshTime() (t time.Time, ok bool) {
	if s == nil || s.LastRefresh == nil {
		return time.Time{}, false
	}
	raw := strings.TrimSpace(*s.LastRefresh)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range lastRefreshLayouts {
		if layout == time.RFC3339Nano {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, true
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	c := *s
	if s.Count != nil {
		v := *s.Count
		c.Count = &v
	}
	if s.ProblemID != nil {
		v := *s.ProblemID
		c.ProblemID = &v
	}
	if s.LastRefresh != nil {
		v := *s.LastRefresh
		c.LastRefresh = &v
	}
	return &c
}

// Int64 returns a pointer to v.
func Int64(v int64) *int64 { return &v }

// String returns a pointer to v.
func String(v string) *string { return &v }
