// Package stack models item stacks and slot-based inventories.
package stack

import (
	"fmt"

	"gridkit.dev/ident"
	"gridkit.dev/tag"
)

const DefaultMaxCount = 64

// Stack is a quantity of one item kind plus optional attached tags. The zero
// value is the empty stack.
type Stack struct {
	Item  ident.Identifier `json:"item"`
	Count int              `json:"count"`
	Tags  tag.Compound     `json:"tags,omitempty"`
}

func (s Stack) IsEmpty() bool { return s.Count <= 0 || s.Item.IsZero() }

// CanMerge reports whether o can stack onto s. Empty stacks merge with
// anything.
func (s Stack) CanMerge(o Stack) bool {
	if s.IsEmpty() || o.IsEmpty() {
		return true
	}
	return s.Item == o.Item && tag.Equal(s.Tags, o.Tags)
}

// Merge moves as much of o onto s as limit allows and returns the grown
// stack plus the remainder.
func (s Stack) Merge(o Stack, limit int) (Stack, Stack) {
	if limit <= 0 {
		limit = DefaultMaxCount
	}
	if !s.CanMerge(o) {
		return s, o
	}
	if s.IsEmpty() {
		s = Stack{Item: o.Item, Tags: o.Tags}
	}
	room := limit - s.Count
	if room <= 0 {
		return s, o
	}
	moved := o.Count
	if moved > room {
		moved = room
	}
	s.Count += moved
	o.Count -= moved
	if o.IsEmpty() {
		o = Stack{}
	}
	return s, o
}

// Split takes up to n items off s. Tags are copied onto the taken stack so
// the halves do not share mutable state.
func (s Stack) Split(n int) (Stack, Stack) {
	if n <= 0 || s.IsEmpty() {
		return Stack{}, s
	}
	if n >= s.Count {
		return s, Stack{}
	}
	taken := Stack{Item: s.Item, Count: n, Tags: s.Tags.Copy()}
	s.Count -= n
	return taken, s
}

type Inventory struct {
	Slots []Stack
}

func NewInventory(size int) *Inventory {
	if size < 0 {
		size = 0
	}
	return &Inventory{Slots: make([]Stack, size)}
}

func (inv *Inventory) Count(item ident.Identifier) int {
	if inv == nil {
		return 0
	}
	n := 0
	for _, s := range inv.Slots {
		if !s.IsEmpty() && s.Item == item {
			n += s.Count
		}
	}
	return n
}

// Add places s into the inventory: existing mergeable stacks are topped up
// first, then empty slots. The remainder that did not fit is returned.
func (inv *Inventory) Add(s Stack, limit int) Stack {
	if inv == nil || s.IsEmpty() {
		return s
	}
	for i := range inv.Slots {
		if s.IsEmpty() {
			break
		}
		if inv.Slots[i].IsEmpty() || !inv.Slots[i].CanMerge(s) {
			continue
		}
		inv.Slots[i], s = inv.Slots[i].Merge(s, limit)
	}
	for i := range inv.Slots {
		if s.IsEmpty() {
			break
		}
		if !inv.Slots[i].IsEmpty() {
			continue
		}
		inv.Slots[i], s = inv.Slots[i].Merge(s, limit)
	}
	return s
}

// Remove takes up to n items out of the inventory, front slots first, and
// returns how many were actually removed.
func (inv *Inventory) Remove(item ident.Identifier, n int) int {
	if inv == nil || n <= 0 {
		return 0
	}
	removed := 0
	for i := range inv.Slots {
		if removed >= n {
			break
		}
		s := inv.Slots[i]
		if s.IsEmpty() || s.Item != item {
			continue
		}
		take := n - removed
		if take > s.Count {
			take = s.Count
		}
		s.Count -= take
		removed += take
		if s.IsEmpty() {
			s = Stack{}
		}
		inv.Slots[i] = s
	}
	return removed
}

// Transfer moves up to n items of the given kind from inv to dst and returns
// the count actually moved. Items that fit nowhere in dst stay in inv.
func (inv *Inventory) Transfer(dst *Inventory, item ident.Identifier, n int, limit int) (int, error) {
	if dst == nil {
		return 0, fmt.Errorf("transfer %s: nil destination", item)
	}
	if inv == dst {
		return 0, fmt.Errorf("transfer %s: source and destination are the same inventory", item)
	}
	if n <= 0 {
		return 0, nil
	}

	avail := inv.Count(item)
	if avail < n {
		n = avail
	}
	moved := 0
	for i := range inv.Slots {
		if moved >= n {
			break
		}
		s := inv.Slots[i]
		if s.IsEmpty() || s.Item != item {
			continue
		}
		take := n - moved
		if take > s.Count {
			take = s.Count
		}
		part, rest := s.Split(take)
		left := dst.Add(part, limit)
		moved += take - left.Count
		if !left.IsEmpty() {
			// Put what did not fit back on the source slot.
			rest, _ = rest.Merge(left, limit)
		}
		inv.Slots[i] = rest
	}
	return moved, nil
}
