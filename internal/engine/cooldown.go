package engine

import "time"

// Gated action names.
const (
	ActionVet  = "vet"
	ActionWalk = "walk"
	ActionPlay = "play"
)

// Default cooldown durations. The vet is the long one, walking medium,
// playing short.
const (
	DefaultVetCooldown  = 15 * time.Second
	DefaultWalkCooldown = 10 * time.Second
	DefaultPlayCooldown = 8 * time.Second
)

// Gate answers "is action X permitted right now" via per-action ready-at
// timestamps. Expiry is computed lazily on query; nothing is scheduled.
//
// The gate also carries per-action allow flags, refreshed once per tick,
// which the UI collaborator polls for button affordance: a flag goes false
// the instant a cooldown starts and true on the first refresh after it
// expires.
type Gate struct {
	now       func() time.Time
	durations map[string]time.Duration
	readyAt   map[string]time.Time
	allow     map[string]bool
}

// NewGate creates a gate with the default durations. Every action starts
// ready; cooldown state never persists across sessions.
func NewGate() *Gate {
	return NewGateWithDurations(DefaultVetCooldown, DefaultWalkCooldown, DefaultPlayCooldown)
}

// NewGateWithDurations creates a gate with configured durations.
func NewGateWithDurations(vet, walk, play time.Duration) *Gate {
	g := &Gate{
		now: time.Now,
		durations: map[string]time.Duration{
			ActionVet:  vet,
			ActionWalk: walk,
			ActionPlay: play,
		},
		readyAt: make(map[string]time.Time),
		allow:   make(map[string]bool),
	}
	for action := range g.durations {
		g.readyAt[action] = time.Time{} // ready now
		g.allow[action] = true
	}
	return g
}

// OnCooldown reports whether the action is still throttled.
func (g *Gate) OnCooldown(action string) bool {
	return g.now().Before(g.readyAt[action])
}

// Start marks the action as just used: ready-at moves to now plus the
// configured duration and the allow flag drops immediately.
func (g *Gate) Start(action string) {
	g.readyAt[action] = g.now().Add(g.durations[action])
	g.allow[action] = false
}

// Refresh re-derives the allow flags from the clock. Called once per tick.
func (g *Gate) Refresh() {
	now := g.now()
	for action, ready := range g.readyAt {
		if !now.Before(ready) {
			g.allow[action] = true
		}
	}
}

// Allowed reports the current allow flag for the action.
func (g *Gate) Allowed(action string) bool {
	return g.allow[action]
}
