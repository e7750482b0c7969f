package item

// Inventory tracks how many of each item kind the player holds.
// Counts are never negative, and an entry whose count reaches zero is
// dropped; "never had" and "had but used up" are observably identical.
type Inventory struct {
	counts map[Kind]int
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{counts: make(map[Kind]int)}
}

// NewInventoryWithCounts creates an inventory pre-seeded with the given
// counts, as reconstructed from a save record.
func NewInventoryWithCounts(apples, bananas, purpleGifts, greenGifts int) *Inventory {
	inv := NewInventory()
	inv.set(KindApple, apples)
	inv.set(KindBanana, bananas)
	inv.set(KindPurpleGift, purpleGifts)
	inv.set(KindGreenGift, greenGifts)
	return inv
}

func (inv *Inventory) set(k Kind, n int) {
	if n > 0 {
		inv.counts[k] = n
	}
}

// Add puts one more of the given kind into the inventory.
func (inv *Inventory) Add(k Kind) {
	inv.counts[k]++
}

// Remove takes one of the given kind out of the inventory. Removing a kind
// with a zero count is a no-op.
func (inv *Inventory) Remove(k Kind) {
	n, ok := inv.counts[k]
	if !ok {
		return
	}
	if n > 1 {
		inv.counts[k] = n - 1
	} else {
		delete(inv.counts, k)
	}
}

// Count reports how many of the given kind the inventory holds.
func (inv *Inventory) Count(k Kind) int {
	return inv.counts[k]
}
