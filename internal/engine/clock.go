package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/petcrossing/server/internal/platform/logger"
	"github.com/petcrossing/server/internal/platform/metrics"
)

// DefaultTickInterval is the reference cadence: 60 simulation updates per
// second. It is a tunable, not a hard requirement.
const DefaultTickInterval = time.Second / 60

// Clock drives the fixed-rate simulation loop. It knows nothing about
// pets, only time progression: while running, it invokes the step callback
// once per interval. Pause and Resume are idempotent; a paused clock keeps
// its goroutine alive and simply skips ticks, so no in-flight work ever
// needs cancelling.
type Clock struct {
	interval time.Duration
	step     func()
	logger   *logger.Logger

	running   atomic.Bool
	tickCount atomic.Int64

	stopOnce sync.Once
	stopChan chan struct{}
}

// NewClock creates a clock. The step callback must be fast, non-blocking,
// and safe to call from the clock goroutine (the coordinator locks inside).
func NewClock(interval time.Duration, step func(), log *logger.Logger) *Clock {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Clock{
		interval: interval,
		step:     step,
		logger:   log,
		stopChan: make(chan struct{}),
	}
}

// Start begins the loop, paused. Call in a goroutine.
func (c *Clock) Start(ctx context.Context) {
	c.logger.Info("Simulation clock started")

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Simulation clock stopped by context")
			return
		case <-c.stopChan:
			c.logger.Info("Simulation clock stopped")
			return
		case <-ticker.C:
			if !c.running.Load() {
				continue
			}
			started := time.Now()
			c.step()
			c.tickCount.Add(1)
			metrics.Get().RecordTick(time.Since(started))
		}
	}
}

// Resume lets ticks through. Safe to call repeatedly.
func (c *Clock) Resume() { c.running.Store(true) }

// Pause suspends ticks without destroying the loop. Safe to call repeatedly.
func (c *Clock) Pause() { c.running.Store(false) }

// Running reports whether ticks are currently being delivered.
func (c *Clock) Running() bool { return c.running.Load() }

// TickCount returns the number of ticks delivered so far.
func (c *Clock) TickCount() int64 { return c.tickCount.Load() }

// Stop shuts the loop down for good. Idempotent.
func (c *Clock) Stop() {
	c.stopOnce.Do(func() { close(c.stopChan) })
}
