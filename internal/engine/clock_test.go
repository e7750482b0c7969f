package engine

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/petcrossing/server/internal/platform/logger"
)

func TestClockStartsPaused(t *testing.T) {
	var steps atomic.Int64
	c := NewClock(time.Millisecond, func() { steps.Add(1) }, logger.NewLogger())
	defer c.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Start(ctx)

	time.Sleep(20 * time.Millisecond)
	assert.False(t, c.Running())
	assert.Equal(t, int64(0), steps.Load())
}

func TestClockResumeAndPause(t *testing.T) {
	var steps atomic.Int64
	c := NewClock(time.Millisecond, func() { steps.Add(1) }, logger.NewLogger())
	defer c.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Start(ctx)

	c.Resume()
	c.Resume() // idempotent
	assert.Eventually(t, func() bool { return steps.Load() > 0 }, time.Second, time.Millisecond)
	assert.True(t, c.Running())

	c.Pause()
	c.Pause() // idempotent
	paused := steps.Load()
	time.Sleep(20 * time.Millisecond)
	// At most one in-flight tick lands after the pause.
	assert.LessOrEqual(t, steps.Load(), paused+1)
	assert.Equal(t, steps.Load(), c.TickCount())
}

func TestClockStopIsIdempotent(t *testing.T) {
	c := NewClock(time.Millisecond, func() {}, logger.NewLogger())
	done := make(chan struct{})
	go func() {
		c.Start(context.Background())
		close(done)
	}()

	c.Stop()
	c.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("clock did not stop")
	}
}

func TestClockDefaultsInterval(t *testing.T) {
	c := NewClock(0, func() {}, logger.NewLogger())
	assert.Equal(t, DefaultTickInterval, c.interval)
}
