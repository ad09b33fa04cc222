package model

import "time"

// Shared defaults used by both the client and devserver binaries.
const (
	DefaultBaseURL        = "http://localhost:5000"
	DefaultRequestTimeout = 10 * time.Second
	DefaultTimeFormat     = "2006-01-02 15:04:05"
	DefaultSkin           = "default"
	DefaultDevServerAddr  = "127.0.0.1:5000"
)

// StatusBlocked is the Snapshot.Status value reported when the upstream site
// refuses automated requests.
const StatusBlocked = "blocked"

// Backend routes.
const (
	PathCount   = "/api/count"
	PathRefresh = "/api/refresh"
	PathHealth  = "/health"
)
