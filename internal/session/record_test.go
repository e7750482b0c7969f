package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petcrossing/server/internal/domain/item"
	"github.com/petcrossing/server/internal/domain/pet"
	"github.com/petcrossing/server/internal/engine"
)

func TestToRecordWritesLowercaseState(t *testing.T) {
	p := pet.New("Momoo", pet.SpeciesLaboon, 80, 70, 60, 50)
	p.SetState(pet.StateHungry)
	inv := item.NewInventoryWithCounts(1, 2, 0, 4)
	g := engine.NewGame(p, inv, 3, 25, nil)

	rec := ToRecord(g)
	assert.Equal(t, "hungry", rec.State)
	assert.Equal(t, "Laboon", rec.Species)
	assert.Equal(t, 1, rec.Apples)
	assert.Equal(t, 2, rec.Bananas)
	assert.Equal(t, 0, rec.PurpleGifts)
	assert.Equal(t, 4, rec.GreenGifts)
	assert.Equal(t, 25, rec.Score)
}

func TestFromRecordClampsTamperedVitals(t *testing.T) {
	rec := &Record{
		Name: "Hax", Species: "Chopper",
		Health: 900, Hunger: -5, Happiness: 50, Sleep: 50,
		State: "ANGRY", Score: -1,
	}
	g := FromRecord(rec, 1, nil)

	assert.Equal(t, 100.0, g.Pet().Health())
	assert.Equal(t, 0.0, g.Pet().Hunger())
	assert.Equal(t, pet.StateAngry, g.Pet().State())
	assert.Equal(t, 0, g.Score())
}

func TestRecordRoundTrip(t *testing.T) {
	p := pet.New("Des", pet.SpeciesDugong, 70, 60, 50, 40)
	p.SetState(pet.StateSleeping)
	g := engine.NewGame(p, item.NewInventoryWithCounts(0, 0, 3, 0), 2, 15, nil)

	g2 := FromRecord(ToRecord(g), 2, nil)
	assert.Equal(t, "Des", g2.Pet().Name())
	assert.Equal(t, pet.StateSleeping, g2.Pet().State())
	assert.Equal(t, 70.0, g2.Pet().Health())
	assert.Equal(t, 3, g2.Inventory().Count(item.KindPurpleGift))
	assert.Equal(t, 15, g2.Score())
}
