package main

import (
	"context"
	"fmt"
	"io"

	"github.com/tinytelemetry/subwatch/internal/apiclient"
	"github.com/tinytelemetry/subwatch/internal/model"
	"github.com/tinytelemetry/subwatch/internal/monitor"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

// runOnce performs the initial fetch (and optionally one refresh), prints the
// result and reports whether it finished without a banner.
func runOnce(ctx context.Context, src model.SnapshotSource, opts monitor.DeriveOptions, refresh bool, w io.Writer) bool {
	state := monitor.NewState()
	state.FetchInitial(ctx, src)
	if refresh {
		state.Refresh(ctx, src)
	}

	r := monitor.Derive(state, opts)
	fmt.Fprint(w, r.PlainText())
	return r.Banner == ""
}

// runCheck probes /health and /api/count concurrently.
func runCheck(ctx context.Context, client *apiclient.Client, w io.Writer) error {
	var (
		health *model.Health
		snap   *model.Snapshot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		h, err := client.Health(gctx)
		if err != nil {
			return fmt.Errorf("health check: %w", err)
		}
		health = h
		return nil
	})
	g.Go(func() error {
		s, err := client.FetchCount(gctx)
		if err != nil {
			return fmt.Errorf("count check: %w", err)
		}
		snap = s
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(w, "backend:   %s\n", client.BaseURL())
	fmt.Fprintf(w, "health:    %s\n", health.Status)
	if health.ProblemID != "" {
		fmt.Fprintf(w, "problem:   %s\n", health.ProblemID)
	}
	count := monitor.NotAvailable
	if snap.Count != nil {
		count = humanize.Comma(*snap.Count)
	}
	fmt.Fprintf(w, "count:     %s\n", count)
	if snap.Blocked() {
		fmt.Fprintf(w, "status:    %s\n", model.StatusBlocked)
	}
	return nil
}
