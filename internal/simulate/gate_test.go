package simulate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dmitrijs2005/ecovate/internal/common"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestGate_RunCallsFn(t *testing.T) {
	var g Gate
	called := false
	err := g.Run(context.Background(), time.Millisecond, func() error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, called)
	assert.False(t, g.Busy())
}

func TestGate_PropagatesFnError(t *testing.T) {
	var g Gate
	boom := errors.New("boom")
	err := g.Run(context.Background(), 0, func() error { return boom })
	assert.ErrorIs(t, err, boom)
}

func TestGate_RejectsOverlap(t *testing.T) {
	var g Gate
	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		done <- g.Run(context.Background(), 0, func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	err := g.Run(context.Background(), 0, func() error { return nil })
	assert.ErrorIs(t, err, common.ErrBusy)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, g.Busy())
}

func TestGate_CancelledBeforeDelay(t *testing.T) {
	var g Gate
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := g.Run(ctx, time.Hour, func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
	assert.False(t, g.Busy())
}

func TestSleep_Deadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := Sleep(ctx, time.Hour)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Minute)
}
