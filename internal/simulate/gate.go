// Package simulate runs stand-in operations that model remote latency: a
// single in-flight call at a time, delayed by a timer that the caller's
// context can cancel.
package simulate

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/ecovate/internal/common"
)

// Gate admits at most one operation at a time.
type Gate struct {
	busy atomic.Bool
}

// Busy reports whether an operation is in flight.
func (g *Gate) Busy() bool {
	return g.busy.Load()
}

// Run waits for delay and then calls fn. A second Run while one is in
// flight fails with common.ErrBusy. If ctx ends first, fn is not called
// and ctx.Err() is returned.
func (g *Gate) Run(ctx context.Context, delay time.Duration, fn func() error) error {
	if !g.busy.CompareAndSwap(false, true) {
		return common.ErrBusy
	}
	defer g.busy.Store(false)

	if err := Sleep(ctx, delay); err != nil {
		return err
	}
	return fn()
}

// Sleep blocks for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
