// Package pet defines the core domain entity for the virtual pet.
// This package is PURE and must NOT import any infrastructure packages (network, events, platform).
package pet

import "strings"

// Species identifies the kind of pet. Unrecognized species fall back to
// default decay rates rather than failing.
type Species string

const (
	SpeciesChopper Species = "Chopper"
	SpeciesDugong  Species = "Dugong"
	SpeciesLaboon  Species = "Laboon"
)

// State is the discrete mood/condition of a pet, derived from its vitals.
type State string

const (
	StateNormal   State = "NORMAL"
	StateHungry   State = "HUNGRY"
	StateAngry    State = "ANGRY"
	StateSleeping State = "SLEEPING"
	StateDead     State = "DEAD"
)

// ParseState reads a state name case-insensitively. Unknown names map to
// NORMAL so a corrupted save never blocks a load.
func ParseState(s string) State {
	st := State(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StateNormal, StateHungry, StateAngry, StateSleeping, StateDead:
		return st
	default:
		return StateNormal
	}
}

// Rates are the per-tick depreciation constants for a species.
type Rates struct {
	Happiness float64
	Hunger    float64
	Sleep     float64
}

var defaultRates = Rates{Happiness: 0.05, Hunger: 0.05, Sleep: 0.1}

// speciesRates maps each known species to its depreciation constants.
// Choppers get sad faster, dugongs tire faster, laboons get hungry faster.
var speciesRates = map[string]Rates{
	"chopper": {Happiness: 0.1, Hunger: 0.05, Sleep: 0.1},
	"dugong":  {Happiness: 0.05, Hunger: 0.05, Sleep: 0.15},
	"laboon":  {Happiness: 0.05, Hunger: 0.1, Sleep: 0.1},
}

// RatesFor returns the decay rates for a species, falling back to the
// defaults for anything unrecognized.
func RatesFor(species Species) Rates {
	if r, ok := speciesRates[strings.ToLower(string(species))]; ok {
		return r
	}
	return defaultRates
}

// Pet holds the four bounded vitals and the derived discrete state.
// Vitals live in [0,100]; every setter saturates out-of-range input
// instead of erroring. The state is a function of the vitals plus the
// sleep latch (see UpdateState).
type Pet struct {
	name    string
	species Species
	state   State

	health    float64
	hunger    float64
	happiness float64
	sleep     float64

	rates Rates
}

// New creates a pet with the given vitals. The decay rates are fixed at
// creation from the species lookup table and never change afterwards.
func New(name string, species Species, health, hunger, happiness, sleep float64) *Pet {
	p := &Pet{
		name:    name,
		species: species,
		state:   StateNormal,
		rates:   RatesFor(species),
	}
	p.SetHealth(health)
	p.SetHunger(hunger)
	p.SetHappiness(happiness)
	p.SetSleep(sleep)
	return p
}

func (p *Pet) Name() string     { return p.name }
func (p *Pet) Species() Species { return p.species }
func (p *Pet) State() State     { return p.state }
func (p *Pet) Rates() Rates     { return p.rates }

func (p *Pet) Health() float64    { return p.health }
func (p *Pet) Hunger() float64    { return p.hunger }
func (p *Pet) Happiness() float64 { return p.happiness }
func (p *Pet) Sleep() float64     { return p.sleep }

// The setters clamp to [0,100]. Saturating on out-of-range input is
// intentional: callers apply deltas without pre-checking bounds.

func (p *Pet) SetHealth(v float64)    { p.health = clamp(v) }
func (p *Pet) SetHunger(v float64)    { p.hunger = clamp(v) }
func (p *Pet) SetHappiness(v float64) { p.happiness = clamp(v) }
func (p *Pet) SetSleep(v float64)     { p.sleep = clamp(v) }

// SetState overrides the derived state. Only the SLEEP action and the
// revive path may use this; everything else goes through UpdateState.
func (p *Pet) SetState(s State) { p.state = s }

// UpdateState recomputes the discrete state from the vitals, in priority
// order DEAD > SLEEPING > HUNGRY > ANGRY > NORMAL.
//
// One latch applies: a sleeping pet stays asleep until its sleep vital is
// fully restored (or it dies), so the result depends on the previous state
// and not on the instantaneous vitals alone.
func (p *Pet) UpdateState() {
	if p.state == StateSleeping && p.sleep < 100 && p.health > 0 {
		return
	}

	switch {
	case p.health <= 0:
		p.state = StateDead
	case p.sleep <= 0.5:
		p.state = StateSleeping
	case p.hunger <= 0:
		p.state = StateHungry
	case p.happiness <= 0:
		p.state = StateAngry
	default:
		p.state = StateNormal
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
