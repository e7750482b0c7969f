// Package session owns the live game: which save slot is active, when the
// simulation clock runs, and when state hits the save store.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/petcrossing/server/internal/domain/item"
	"github.com/petcrossing/server/internal/domain/pet"
	"github.com/petcrossing/server/internal/engine"
	"github.com/petcrossing/server/internal/events"
	"github.com/petcrossing/server/internal/platform/logger"
	"github.com/petcrossing/server/internal/platform/metrics"
)

// SlotCount is the number of independent save slots.
const SlotCount = 3

// SaveStore is the persistence collaborator. Load returns (nil, nil) for
// an empty or unreadable slot; the coordinator treats that as "no save",
// never as an error.
type SaveStore interface {
	Load(slot int) (*Record, error)
	Save(slot int, rec *Record) error
}

// Options carries the tunables the coordinator hands to each new game.
type Options struct {
	TickInterval time.Duration
	VetCooldown  time.Duration
	WalkCooldown time.Duration
	PlayCooldown time.Duration
}

// DefaultOptions returns the reference cadence and cooldowns.
func DefaultOptions() Options {
	return Options{
		TickInterval: engine.DefaultTickInterval,
		VetCooldown:  engine.DefaultVetCooldown,
		WalkCooldown: engine.DefaultWalkCooldown,
		PlayCooldown: engine.DefaultPlayCooldown,
	}
}

// Coordinator owns exactly one live game at a time. Every mutation of the
// pet/inventory/score triple, clock ticks and action events alike, is
// serialized behind its mutex, which is the process-wide stand-in for
// "marshal onto the UI thread". The dispatcher itself stays synchronous
// and is only ever invoked with the lock held.
type Coordinator struct {
	mu         sync.Mutex
	dispatcher *events.Dispatcher
	journal    *events.Journal
	store      SaveStore
	logger     *logger.Logger
	opts       Options

	clock *engine.Clock
	game  *engine.Game

	listener engine.StatusListener
	onQuit   func()
}

// NewCoordinator wires the coordinator into the dispatcher and creates
// the simulation clock (paused until a session goes live).
func NewCoordinator(d *events.Dispatcher, j *events.Journal, store SaveStore, log *logger.Logger, opts Options) *Coordinator {
	c := &Coordinator{
		dispatcher: d,
		journal:    j,
		store:      store,
		logger:     log,
		opts:       opts,
	}
	c.clock = engine.NewClock(opts.TickInterval, c.tick, log)

	for _, kind := range []events.Kind{
		events.KindMenu,
		events.KindInGame,
		events.KindMinigame,
		events.KindQuit,
		events.KindFatalError,
	} {
		d.Subscribe(kind, c)
	}
	return c
}

// SetListener wires the rendering collaborator attached to every game
// this coordinator creates.
func (c *Coordinator) SetListener(l engine.StatusListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listener = l
	if c.game != nil {
		c.game.SetListener(l)
	}
}

// SetOnQuit installs the process-exit hook invoked on QUIT and fatal
// signals, after any saving has (or deliberately has not) happened.
func (c *Coordinator) SetOnQuit(f func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onQuit = f
}

// Run starts the clock loop. Call in a goroutine or let it block.
func (c *Coordinator) Run(ctx context.Context) {
	c.clock.Start(ctx)
}

// Clock exposes the simulation clock, mainly for tests and metrics.
func (c *Coordinator) Clock() *engine.Clock { return c.clock }

// tick is the clock callback: one serialized simulation step.
func (c *Coordinator) tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.game == nil {
		return
	}
	c.game.Tick()
}

// Publish is the serialized entry point for events originating on other
// goroutines (websocket readers, the parental checker). It journals the
// event and dispatches it while holding the session lock. Subscribers
// needing to publish further events must use the dispatcher directly;
// calling back into Publish from a handler would self-deadlock.
func (c *Coordinator) Publish(kind events.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.publishLocked(kind)
}

func (c *Coordinator) publishLocked(kind events.Kind) {
	entry := events.Entry{
		ID:        events.NewEntryID(),
		Timestamp: time.Now(),
		Kind:      kind,
	}
	if c.game != nil {
		entry.Slot = c.game.Slot()
		entry.Detail = c.game.Pet().Name()
	}
	c.journal.Append(entry)
	c.dispatcher.Publish(kind)
}

// HandleEvent reacts to navigation events. The clock runs only while the
// player is in the active-play view; menu and minigame pause it without
// destroying it, and entering the menu also persists the session.
func (c *Coordinator) HandleEvent(kind events.Kind) {
	switch kind {
	case events.KindInGame:
		c.clock.Resume()
	case events.KindMinigame:
		c.clock.Pause()
	case events.KindMenu:
		c.clock.Pause()
		c.saveLocked()
	case events.KindQuit:
		c.clock.Pause()
		c.saveLocked()
		c.logger.Info("Session ended, shutting down")
		if c.onQuit != nil {
			c.onQuit()
		}
	case events.KindFatalError:
		// A collaborator reported an unrecoverable failure; the session
		// data may be inconsistent, so terminate without saving.
		c.clock.Pause()
		c.logger.Error("Fatal error signalled, terminating without save")
		if c.onQuit != nil {
			c.onQuit()
		}
	}
}

// Fatal lets a collaborator signal "cannot continue" outside the event
// bus, e.g. when required assets are missing at startup.
func (c *Coordinator) Fatal(reason string) {
	c.logger.Error("Fatal: " + reason)
	c.Publish(events.KindFatalError)
}

func (c *Coordinator) newGate() *engine.Gate {
	return engine.NewGateWithDurations(c.opts.VetCooldown, c.opts.WalkCooldown, c.opts.PlayCooldown)
}

// install replaces the live game, moving the action subscriptions from
// the old instance to the new one.
func (c *Coordinator) install(g *engine.Game) {
	if c.game != nil {
		for _, kind := range engine.ActionKinds {
			c.dispatcher.Unsubscribe(kind, c.game)
		}
	}
	c.game = g
	g.SetListener(c.listener)
	for _, kind := range engine.ActionKinds {
		c.dispatcher.Subscribe(kind, g)
	}
}

// NewSession starts a fresh game in the slot, overriding whatever the
// slot held before. The new pet starts with full vitals, an empty
// inventory, and zero score, and is saved immediately.
func (c *Coordinator) NewSession(slot int, species pet.Species, name string) (*engine.Game, error) {
	if slot < 1 || slot > SlotCount {
		return nil, fmt.Errorf("save slot %d out of range [1,%d]", slot, SlotCount)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := pet.New(name, species, 100, 100, 100, 100)
	g := engine.NewGame(p, item.NewInventory(), slot, 0, c.newGate())
	c.install(g)
	c.saveLocked()
	c.logger.Event("NEW_GAME", name, fmt.Sprintf("New %s in slot %d", species, slot))
	c.publishLocked(events.KindInGame)
	return g, nil
}

// LoadSlot resumes play from a saved record. An empty slot is not an
// error: it reports loaded=false and leaves the current session alone.
func (c *Coordinator) LoadSlot(slot int) (loaded bool, err error) {
	return c.loadSlot(slot, false)
}

// ReviveSlot loads a slot and, if its pet is dead, resets all vitals to
// full and the state to NORMAL before going in-game. On a living pet it
// behaves exactly like LoadSlot.
func (c *Coordinator) ReviveSlot(slot int) (loaded bool, err error) {
	return c.loadSlot(slot, true)
}

func (c *Coordinator) loadSlot(slot int, revive bool) (bool, error) {
	if slot < 1 || slot > SlotCount {
		return false, fmt.Errorf("save slot %d out of range [1,%d]", slot, SlotCount)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rec, err := c.store.Load(slot)
	if err != nil {
		return false, fmt.Errorf("failed to load slot %d: %w", slot, err)
	}
	if rec == nil {
		c.logger.Infof("No save in slot %d", slot)
		return false, nil
	}

	g := FromRecord(rec, slot, c.newGate())
	c.install(g)
	if revive && g.Pet().State() == pet.StateDead {
		g.Revive()
		c.saveLocked()
		c.logger.Event("REVIVE", g.Pet().Name(), fmt.Sprintf("Revived in slot %d", slot))
	}
	c.logger.Event("LOAD_GAME", g.Pet().Name(), fmt.Sprintf("Loaded slot %d", slot))
	c.publishLocked(events.KindInGame)
	return true, nil
}

// Save persists the live session immediately (explicit save).
func (c *Coordinator) Save() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saveLocked()
}

func (c *Coordinator) saveLocked() {
	if c.game == nil {
		return
	}
	err := c.store.Save(c.game.Slot(), ToRecord(c.game))
	metrics.Get().RecordSave(err)
	if err != nil {
		c.logger.Error("Failed to save slot: " + err.Error())
		return
	}
	c.logger.Infof("Saved slot %d", c.game.Slot())
}

// Snapshot returns the live game's UI view, if a session is active.
func (c *Coordinator) Snapshot() (engine.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.game == nil {
		return engine.Snapshot{}, false
	}
	return c.game.Snapshot(), true
}
