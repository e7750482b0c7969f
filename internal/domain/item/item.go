// Package item defines the core domain entities for in-game items and inventory.
// This package is PURE and must NOT import any infrastructure packages.
package item

// Kind represents one of the fixed item kinds a player can hold.
type Kind string

const (
	KindApple      Kind = "APPLE"      // Basic food
	KindBanana     Kind = "BANANA"     // Better food
	KindPurpleGift Kind = "PURPLEGIFT" // Small happiness boost
	KindGreenGift  Kind = "GREENGIFT"  // Large happiness boost
)

// Kinds is the closed set of item kinds, in display order.
var Kinds = []Kind{KindApple, KindBanana, KindPurpleGift, KindGreenGift}

// Definition provides metadata about an item kind: what it restores when
// used on the pet, and the score awarded for using it.
type Definition struct {
	Name      string
	IsFood    bool
	Hunger    float64 // Hunger restoration
	Happiness float64 // Happiness restoration
	Score     int     // Score awarded on use
}

// Registry contains all known items and their properties.
var Registry = map[Kind]Definition{
	KindApple: {
		Name:   "Apple",
		IsFood: true,
		Hunger: 10,
		Score:  10,
	},
	KindBanana: {
		Name:   "Banana",
		IsFood: true,
		Hunger: 20,
		Score:  20,
	},
	KindPurpleGift: {
		Name:      "Purple Gift",
		Happiness: 5,
		Score:     5,
	},
	KindGreenGift: {
		Name:      "Green Gift",
		Happiness: 15,
		Score:     15,
	},
}

// Get returns the definition for an item kind.
func Get(k Kind) (Definition, bool) {
	def, ok := Registry[k]
	return def, ok
}
