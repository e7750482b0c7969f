package engine

import (
	"github.com/petcrossing/server/internal/domain/item"
	"github.com/petcrossing/server/internal/domain/pet"
	"github.com/petcrossing/server/internal/events"
)

// Per-tick penalty constants.
const (
	// Sleep exhaustion: a one-shot health hit when sleep bottoms out.
	sleepExhaustionThreshold = 0.5
	sleepExhaustionPenalty   = 20

	// Starvation: a continuous drain while hunger sits at zero.
	starvationDrain = 0.05

	// An angry pet stays angry until happiness climbs back above this.
	angerRecoveryThreshold = 50
)

// Snapshot is the read-only view of a game instance handed to the UI
// collaborator after each tick.
type Snapshot struct {
	Name      string  `json:"name"`
	Species   string  `json:"species"`
	State     string  `json:"state"`
	Health    float64 `json:"health"`
	Hunger    float64 `json:"hunger"`
	Happiness float64 `json:"happiness"`
	Sleep     float64 `json:"sleep"`
	Score     int     `json:"score"`
	Slot      int     `json:"slot"`
	AllowVet  bool    `json:"allow_vet"`
	AllowWalk bool    `json:"allow_walk"`
	AllowPlay bool    `json:"allow_play"`
}

// StatusListener is the boundary to the rendering collaborator. OnVitals
// fires every tick; OnStateChange fires only on discrete transitions, for
// sprite/animation swaps.
type StatusListener interface {
	OnVitals(s Snapshot)
	OnStateChange(from, to pet.State)
}

// Game is one live simulation instance: a pet, its inventory, the score,
// the cooldown gate, and the two hysteresis latches the state machine
// needs. It is not safe for concurrent use; the session coordinator
// serializes ticks and actions onto it.
type Game struct {
	pet       *pet.Pet
	inventory *item.Inventory
	slot      int
	score     int
	gate      *Gate

	previousState       pet.State
	sleepPenaltyApplied bool
	angerPenalty        bool

	listener StatusListener
}

// NewGame creates a game instance around an existing pet and inventory,
// as loaded from a save slot or freshly created.
func NewGame(p *pet.Pet, inv *item.Inventory, slot, score int, gate *Gate) *Game {
	if gate == nil {
		gate = NewGate()
	}
	return &Game{
		pet:           p,
		inventory:     inv,
		slot:          slot,
		score:         score,
		gate:          gate,
		previousState: p.State(),
	}
}

func (g *Game) Pet() *pet.Pet              { return g.pet }
func (g *Game) Inventory() *item.Inventory { return g.inventory }
func (g *Game) Score() int                 { return g.score }
func (g *Game) Slot() int                  { return g.slot }
func (g *Game) Gate() *Gate                { return g.gate }

// SetListener wires the rendering collaborator. A nil listener is fine;
// the simulation runs headless in tests.
func (g *Game) SetListener(l StatusListener) { g.listener = l }

// Snapshot builds the current UI view.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Name:      g.pet.Name(),
		Species:   string(g.pet.Species()),
		State:     string(g.pet.State()),
		Health:    g.pet.Health(),
		Hunger:    g.pet.Hunger(),
		Happiness: g.pet.Happiness(),
		Sleep:     g.pet.Sleep(),
		Score:     g.score,
		Slot:      g.slot,
		AllowVet:  g.gate.Allowed(ActionVet),
		AllowWalk: g.gate.Allowed(ActionWalk),
		AllowPlay: g.gate.Allowed(ActionPlay),
	}
}

// Tick advances the simulation by one step. The order is load-bearing:
// later steps read the mutations of earlier ones.
//
//  1. Hunger and happiness decay at the species rates.
//  2. Sleep drains while awake, recovers at half rate while asleep.
//  3. One-shot health penalty when sleep bottoms out (edge-triggered; the
//     applied flag resets as soon as sleep is above zero again, so the
//     penalty can refire while sleep oscillates near the floor).
//  4. Starvation drain and score bleed while hunger is zero (level-triggered).
//  5. Cooldown allow flags refresh.
//  6. Anger hysteresis, then the generic state derivation.
//  7. Listener notification, with a transition callback on state change.
func (g *Game) Tick() (stateChanged, vitalsChanged bool) {
	p := g.pet
	before := [4]float64{p.Health(), p.Hunger(), p.Happiness(), p.Sleep()}
	rates := p.Rates()

	p.SetHunger(p.Hunger() - rates.Hunger)
	p.SetHappiness(p.Happiness() - rates.Happiness)

	if p.State() != pet.StateSleeping {
		p.SetSleep(p.Sleep() - rates.Sleep)
	} else {
		p.SetSleep(p.Sleep() + rates.Sleep/2)
	}

	if p.Sleep() <= sleepExhaustionThreshold && !g.sleepPenaltyApplied {
		p.SetHealth(p.Health() - sleepExhaustionPenalty)
		g.sleepPenaltyApplied = true
	} else if p.Sleep() > 0 {
		g.sleepPenaltyApplied = false
	}

	if p.Hunger() <= 0 {
		p.SetHealth(p.Health() - starvationDrain)
		if g.score > 0 {
			g.score--
		}
	}

	g.gate.Refresh()

	switch {
	case g.angerPenalty && p.Happiness() <= angerRecoveryThreshold:
		p.SetState(pet.StateAngry)
	case p.State() == pet.StateAngry && !g.angerPenalty:
		g.angerPenalty = true
	default:
		p.UpdateState()
	}

	after := [4]float64{p.Health(), p.Hunger(), p.Happiness(), p.Sleep()}
	vitalsChanged = before != after
	stateChanged = p.State() != g.previousState

	if g.listener != nil {
		g.listener.OnVitals(g.Snapshot())
		if stateChanged {
			g.listener.OnStateChange(g.previousState, p.State())
		}
	}
	if stateChanged {
		g.previousState = p.State()
	}
	return stateChanged, vitalsChanged
}

// actionItems maps consumable action kinds to the item they spend.
var actionItems = map[events.Kind]item.Kind{
	events.KindFeedApple:  item.KindApple,
	events.KindFeedBanana: item.KindBanana,
	events.KindGiftPurple: item.KindPurpleGift,
	events.KindGiftGreen:  item.KindGreenGift,
}

// Apply executes a pet action. Failed preconditions (empty inventory,
// active cooldown, insufficient score) are silent no-ops with no partial
// mutation; the UI simply sees nothing happen.
func (g *Game) Apply(kind events.Kind) {
	if k, ok := actionItems[kind]; ok {
		g.useItem(k)
		return
	}

	p := g.pet
	switch kind {
	case events.KindPlay:
		if g.gate.OnCooldown(ActionPlay) {
			return
		}
		p.SetHappiness(p.Happiness() + 10)
		g.gate.Start(ActionPlay)
		g.score += 10
	case events.KindWalk:
		if g.gate.OnCooldown(ActionWalk) {
			return
		}
		p.SetHappiness(p.Happiness() + 5)
		g.gate.Start(ActionWalk)
		g.score += 5
	case events.KindVet:
		// The vet visit costs score, so it is double-gated.
		if g.gate.OnCooldown(ActionVet) || g.score < 5 {
			return
		}
		g.score -= 5
		g.gate.Start(ActionVet)
	case events.KindSleep:
		p.SetState(pet.StateSleeping)
	case events.KindHeal:
		p.SetHealth(p.Health() + 10)
		g.score += 10
	case events.KindLeaveMinigame:
		// Minigame reward: one of each item kind.
		for _, k := range item.Kinds {
			g.inventory.Add(k)
		}
	}
}

func (g *Game) useItem(k item.Kind) {
	if g.inventory.Count(k) == 0 {
		return
	}
	def, ok := item.Get(k)
	if !ok {
		return
	}
	g.pet.SetHunger(g.pet.Hunger() + def.Hunger)
	g.pet.SetHappiness(g.pet.Happiness() + def.Happiness)
	g.inventory.Remove(k)
	g.score += def.Score
}

// HandleEvent lets the game subscribe directly to action events.
func (g *Game) HandleEvent(kind events.Kind) { g.Apply(kind) }

// ActionKinds lists the event kinds a game instance subscribes to.
var ActionKinds = []events.Kind{
	events.KindFeedApple,
	events.KindFeedBanana,
	events.KindGiftPurple,
	events.KindGiftGreen,
	events.KindPlay,
	events.KindWalk,
	events.KindVet,
	events.KindHeal,
	events.KindSleep,
	events.KindLeaveMinigame,
}

// Revive resets a dead pet to full vitals and NORMAL state. It is a
// privileged operation invoked only through the dedicated revive flow;
// on a living pet it does nothing.
func (g *Game) Revive() {
	if g.pet.State() != pet.StateDead {
		return
	}
	g.pet.SetHealth(100)
	g.pet.SetHunger(100)
	g.pet.SetHappiness(100)
	g.pet.SetSleep(100)
	g.pet.SetState(pet.StateNormal)
	g.previousState = pet.StateNormal
	g.sleepPenaltyApplied = false
	g.angerPenalty = false
}
