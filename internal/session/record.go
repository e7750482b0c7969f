package session

import (
	"strings"

	"github.com/petcrossing/server/internal/domain/item"
	"github.com/petcrossing/server/internal/domain/pet"
	"github.com/petcrossing/server/internal/engine"
)

// Record is the persisted shape of one save slot. The engine owns this
// shape; the storage collaborator only moves it in and out of disk.
// State is written lowercase and read case-insensitively; an unknown
// state loads as NORMAL.
type Record struct {
	Name        string  `json:"name"`
	Species     string  `json:"species"`
	Health      float64 `json:"health"`
	Hunger      float64 `json:"hunger"`
	Happiness   float64 `json:"happiness"`
	Sleep       float64 `json:"sleep"`
	State       string  `json:"state"`
	Apples      int     `json:"apples"`
	Bananas     int     `json:"bananas"`
	PurpleGifts int     `json:"purplegifts"`
	GreenGifts  int     `json:"greengifts"`
	Score       int     `json:"score"`
}

// ToRecord serializes a live game into its persisted shape.
func ToRecord(g *engine.Game) *Record {
	p := g.Pet()
	inv := g.Inventory()
	return &Record{
		Name:        p.Name(),
		Species:     string(p.Species()),
		Health:      p.Health(),
		Hunger:      p.Hunger(),
		Happiness:   p.Happiness(),
		Sleep:       p.Sleep(),
		State:       strings.ToLower(string(p.State())),
		Apples:      inv.Count(item.KindApple),
		Bananas:     inv.Count(item.KindBanana),
		PurpleGifts: inv.Count(item.KindPurpleGift),
		GreenGifts:  inv.Count(item.KindGreenGift),
		Score:       g.Score(),
	}
}

// FromRecord reconstructs a game from a persisted record. Vitals are
// clamped by the pet's setters, so a tampered record cannot break the
// [0,100] invariant. A negative score loads as zero.
func FromRecord(rec *Record, slot int, gate *engine.Gate) *engine.Game {
	p := pet.New(rec.Name, pet.Species(rec.Species), rec.Health, rec.Hunger, rec.Happiness, rec.Sleep)
	p.SetState(pet.ParseState(rec.State))
	inv := item.NewInventoryWithCounts(rec.Apples, rec.Bananas, rec.PurpleGifts, rec.GreenGifts)
	score := rec.Score
	if score < 0 {
		score = 0
	}
	return engine.NewGame(p, inv, slot, score, gate)
}
