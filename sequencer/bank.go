package sequencer

// Bank is the fixed set of patch slots plus the occupancy bits. It is
// populated once at startup from the store and mutated only by explicit
// store/clear operations.
type Bank struct {
	Slots    [NumSlots]Patch
	Occupied uint16
}

// NewBank returns a bank of empty slots.
func NewBank() *Bank {
	b := &Bank{}
	for i := range b.Slots {
		b.Slots[i] = EmptyPatch()
	}
	return b
}

// Store copies a patch into a slot and marks it occupied.
func (b *Bank) Store(i int, p Patch) {
	if i < 0 || i >= NumSlots {
		return
	}
	b.Slots[i] = p
	b.Occupied |= 1 << i
}

// Clear marks a slot unoccupied and overwrites it with the empty patch.
func (b *Bank) Clear(i int) {
	if i < 0 || i >= NumSlots {
		return
	}
	b.Slots[i] = EmptyPatch()
	b.Occupied &^= 1 << i
}

// Recall returns the patch stored in a slot. Unoccupied slots read back
// as the empty patch.
func (b *Bank) Recall(i int) Patch {
	if i < 0 || i >= NumSlots || !b.IsOccupied(i) {
		return EmptyPatch()
	}
	return b.Slots[i]
}

// IsOccupied reports whether a slot holds a stored patch.
func (b *Bank) IsOccupied(i int) bool {
	if i < 0 || i >= NumSlots {
		return false
	}
	return b.Occupied&(1<<i) != 0
}
