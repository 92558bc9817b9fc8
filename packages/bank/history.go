package bank

import (
	"sort"
)

// region Ancestors ////////////////////////////////////////////////////////////////////////////////////////////////////

// Ancestors is the set of slots that are ancestors of a bank.
type Ancestors map[Slot]struct{}

// NewAncestors creates Ancestors from the given slots.
func NewAncestors(slots ...Slot) (ancestors Ancestors) {
	ancestors = make(Ancestors, len(slots))
	for _, slot := range slots {
		ancestors[slot] = struct{}{}
	}

	return ancestors
}

// Contains returns true if the given slot is an ancestor.
func (a Ancestors) Contains(slot Slot) (contains bool) {
	_, contains = a[slot]
	return contains
}

// Slots returns the ancestor slots in ascending order.
func (a Ancestors) Slots() (slots []Slot) {
	slots = make([]Slot, 0, len(a))
	for slot := range a {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })

	return slots
}

// Clone returns a copy of the Ancestors.
func (a Ancestors) Clone() Ancestors {
	return NewAncestors(a.Slots()...)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region HardForks ////////////////////////////////////////////////////////////////////////////////////////////////////

// HardFork is a slot at which the ledger was forked, together with the number of times it was forked there.
type HardFork struct {
	Slot  Slot
	Count uint64
}

// HardForks is the ordered list of hard forks. The position of an entry is meaningful.
type HardForks []HardFork

// Register records a hard fork at the given slot. A known slot has its count increased, an unknown slot is inserted
// behind all entries with a lower or equal slot.
func (h HardForks) Register(slot Slot) HardForks {
	for i := range h {
		if h[i].Slot == slot {
			h[i].Count++
			return h
		}
	}

	index := sort.Search(len(h), func(i int) bool { return h[i].Slot > slot })
	h = append(h, HardFork{})
	copy(h[index+1:], h[index:])
	h[index] = HardFork{Slot: slot, Count: 1}

	return h
}

// Clone returns a copy of the HardForks.
func (h HardForks) Clone() HardForks {
	if h == nil {
		return nil
	}

	return append(make(HardForks, 0, len(h)), h...)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
