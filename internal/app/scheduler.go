package app

import (
	"context"
	"time"
)

// Start runs a cycle immediately and then one per interval until ctx is
// done. Each cycle runs on its own goroutine, so a slow cycle never delays
// the next tick. Start blocks.
func (r *Refresher) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info().Dur("interval", r.interval).Msg("Refresh scheduler: started")
	r.spawn(ctx)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("Refresh scheduler: stopped")
			return
		case <-ticker.C:
			r.spawn(ctx)
		case <-r.trigger:
			r.logger.Debug().Msg("Refresh scheduler: triggered")
			r.spawn(ctx)
		}
	}
}

// Trigger requests an extra cycle from a running scheduler. Requests made
// while one is already pending are coalesced.
func (r *Refresher) Trigger() {
	select {
	case r.trigger <- struct{}{}:
	default:
	}
}

// Wait blocks until every spawned cycle has returned.
func (r *Refresher) Wait() {
	r.inflight.Wait()
}

func (r *Refresher) spawn(ctx context.Context) {
	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		r.RunCycle(ctx)
	}()
}
