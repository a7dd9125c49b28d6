package oam

import (
	"errors"
	"fmt"

	"github.com/retroenv/gbaword/internal/mmio"
)

// ErrTableFull is returned when more sprites are allocated in one frame than
// the sprite table holds. It wraps mmio.ErrOutOfRange.
var ErrTableFull = fmt.Errorf("sprite table full: %w", mmio.ErrOutOfRange)

// ClearPolicy controls what happens to slots that were used in the previous
// frame but not in the current one.
type ClearPolicy int

const (
	// ClearOnTransition keeps stale slots visible until Clear is called,
	// which callers do at screen transitions.
	ClearOnTransition ClearPolicy = iota
	// ClearStale zeroes stale slots at the end of every frame.
	ClearStale
)

// Allocator hands out sprite table slots in call order within a frame.
// Slots are never freed, a slot keeps its descriptor until overwritten.
type Allocator struct {
	table  mmio.Region[Attr]
	policy ClearPolicy

	next int // slot of the next allocation in the current frame
	used int // slots used in the previous frame
}

// NewAllocator returns an allocator over the given sprite table.
func NewAllocator(table mmio.Region[Attr], policy ClearPolicy) *Allocator {
	return &Allocator{
		table:  table,
		policy: policy,
	}
}

// Policy returns the clear policy.
func (a *Allocator) Policy() ClearPolicy {
	return a.policy
}

// Cap returns the number of slots of the sprite table.
func (a *Allocator) Cap() int {
	return a.table.Len()
}

// Len returns the number of slots allocated in the current frame.
func (a *Allocator) Len() int {
	return a.next
}

// BeginFrame restarts allocation at slot 0.
func (a *Allocator) BeginFrame() {
	a.used = max(a.used, a.next)
	a.next = 0
}

// AllocateAndWrite stores the descriptor in the next free slot with a
// single store and returns the slot.
func (a *Allocator) AllocateAndWrite(attr Attr) (int, error) {
	reg, err := a.table.Index(a.next)
	if err != nil {
		if errors.Is(err, mmio.ErrOutOfRange) {
			return 0, fmt.Errorf("%w: allocating slot %d", ErrTableFull, a.next)
		}
		return 0, fmt.Errorf("allocating slot %d: %w", a.next, err)
	}

	reg.Write(attr)
	slot := a.next
	a.next++
	return slot, nil
}

// MustAllocateAndWrite is like AllocateAndWrite but panics if the table is
// full. Device code uses it where the sprite count per frame is bounded.
func (a *Allocator) MustAllocateAndWrite(attr Attr) int {
	slot, err := a.AllocateAndWrite(attr)
	if err != nil {
		panic(err)
	}
	return slot
}

// EndFrame finishes the current frame. With ClearStale, slots that were
// used in the previous frame but not in this one are zeroed.
func (a *Allocator) EndFrame() {
	if a.policy == ClearStale {
		for i := a.next; i < a.used; i++ {
			a.table.MustIndex(i).Write(Attr{})
		}
		a.used = a.next
		return
	}
	a.used = max(a.used, a.next)
}

// Clear writes the zero descriptor to every slot and restarts allocation.
func (a *Allocator) Clear() {
	for i := range a.table.Len() {
		a.table.MustIndex(i).Write(Attr{})
	}
	a.next = 0
	a.used = 0
}
