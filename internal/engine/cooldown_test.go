package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets the tests step the gate's notion of time by hand.
type fakeClock struct {
	current time.Time
}

func (f *fakeClock) now() time.Time { return f.current }

func (f *fakeClock) advance(d time.Duration) { f.current = f.current.Add(d) }

func newFakeGate(f *fakeClock) *Gate {
	g := NewGate()
	g.now = f.now
	return g
}

func TestGateStartsReady(t *testing.T) {
	g := NewGate()
	assert.False(t, g.OnCooldown(ActionVet))
	assert.False(t, g.OnCooldown(ActionWalk))
	assert.False(t, g.OnCooldown(ActionPlay))
	assert.True(t, g.Allowed(ActionVet))
	assert.True(t, g.Allowed(ActionWalk))
	assert.True(t, g.Allowed(ActionPlay))
}

func TestCooldownExpiresLazily(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	g := newFakeGate(clock)

	g.Start(ActionWalk)
	assert.True(t, g.OnCooldown(ActionWalk))
	// Other actions are independent.
	assert.False(t, g.OnCooldown(ActionVet))

	clock.advance(DefaultWalkCooldown - time.Millisecond)
	assert.True(t, g.OnCooldown(ActionWalk))

	clock.advance(time.Millisecond)
	assert.False(t, g.OnCooldown(ActionWalk))
}

func TestAllowFlagRefreshesPerTick(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	g := newFakeGate(clock)

	// The flag drops the instant the cooldown starts.
	g.Start(ActionPlay)
	assert.False(t, g.Allowed(ActionPlay))

	// Expiry alone does not raise the flag; the next refresh does.
	clock.advance(DefaultPlayCooldown)
	assert.False(t, g.Allowed(ActionPlay))
	g.Refresh()
	assert.True(t, g.Allowed(ActionPlay))
}

func TestConfiguredDurations(t *testing.T) {
	clock := &fakeClock{current: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	g := NewGateWithDurations(time.Minute, 30*time.Second, time.Second)
	g.now = clock.now

	g.Start(ActionVet)
	g.Start(ActionPlay)

	clock.advance(2 * time.Second)
	assert.True(t, g.OnCooldown(ActionVet))
	assert.False(t, g.OnCooldown(ActionPlay))
}
