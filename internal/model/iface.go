package model

import "context"

// SnapshotSource provides the two backend operations the monitor depends on.
type SnapshotSource interface {
	FetchCount(ctx context.Context) (*Snapshot, error)
	Refresh(ctx context.Context) (*RefreshResponse, error)
}

// HealthChecker probes backend liveness.
type HealthChecker interface {
	Health(ctx context.Context) (*Health, error)
}
