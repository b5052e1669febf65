package sim

import (
	"fmt"

	"github.com/pagesim/pagesim/sim/trace"
)

// FrameTable is the mutable state of one simulation run: a fixed number of
// slots, each holding a page or trace.Empty. It is owned by a single run and
// never shared, so independent runs can proceed in parallel.
//
// pointer is the FIFO insertion pointer or the Clock sweep hand; refBits is
// only allocated for Clock.
type FrameTable struct {
	slots   []int
	used    int
	pointer int
	refBits []bool
}

// NewFrameTable creates a table with frameCount empty slots.
// Panics if frameCount < 1: callers must validate capacity first.
func NewFrameTable(frameCount int) *FrameTable {
	if frameCount < 1 {
		panic(fmt.Sprintf("FrameTable: frameCount must be >= 1, got %d", frameCount))
	}
	slots := make([]int, frameCount)
	for i := range slots {
		slots[i] = trace.Empty
	}
	return &FrameTable{slots: slots}
}

// Capacity returns the number of slots.
func (ft *FrameTable) Capacity() int {
	return len(ft.slots)
}

// Full reports whether every slot holds a page.
func (ft *FrameTable) Full() bool {
	return ft.used == len(ft.slots)
}

// Lookup returns the slot holding page, or -1 if the page is not resident.
func (ft *FrameTable) Lookup(page int) int {
	for i, p := range ft.slots {
		if p == page {
			return i
		}
	}
	return -1
}

// Resident returns the page in slot i.
func (ft *FrameTable) Resident(i int) int {
	return ft.slots[i]
}

// firstEmpty returns the lowest-indexed free slot, or -1 when the table is full.
func (ft *FrameTable) firstEmpty() int {
	if ft.Full() {
		return -1
	}
	for i, p := range ft.slots {
		if p == trace.Empty {
			return i
		}
	}
	return -1
}

// place stores page in slot i and returns the page it replaced (trace.Empty for a free slot).
func (ft *FrameTable) place(i, page int) int {
	evicted := ft.slots[i]
	ft.slots[i] = page
	if evicted == trace.Empty {
		ft.used++
	}
	return evicted
}

// Snapshot returns a copy of the slots, safe to keep after the table changes.
func (ft *FrameTable) Snapshot() []int {
	out := make([]int, len(ft.slots))
	copy(out, ft.slots)
	return out
}

// advance moves the rotating pointer one slot forward, wrapping around.
func (ft *FrameTable) advance() {
	ft.pointer = (ft.pointer + 1) % len(ft.slots)
}
