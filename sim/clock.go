package sim

import "github.com/pagesim/pagesim/sim/trace"

// SimulateClock replays pages with second-chance (clock) replacement.
//
// A hit sets the slot's reference bit without moving the hand. Filling a free
// slot sets its bit and does not consume a sweep step. On a full table the
// hand clears set bits until it finds a clear one, replaces that slot, sets
// its bit and moves past it. At most 2*frameCount slots are inspected, since
// one full revolution clears every bit.
func SimulateClock(pages []int, frameCount int) *trace.Trace {
	ft := newClockTable(frameCount)
	tr := trace.New(len(pages))
	for _, page := range pages {
		tr.RecordStep(clockReference(ft, page))
	}
	return tr
}

func newClockTable(frameCount int) *FrameTable {
	ft := NewFrameTable(frameCount)
	ft.refBits = make([]bool, frameCount)
	return ft
}

// clockReference applies one reference to a clock table and returns its step.
func clockReference(ft *FrameTable, page int) trace.Step {
	mustBeReferenceable(page)
	if slot := ft.Lookup(page); slot >= 0 {
		ft.refBits[slot] = true
		return hitStep(ft, page)
	}

	evicted := trace.Empty
	if slot := ft.firstEmpty(); slot >= 0 {
		ft.place(slot, page)
		ft.refBits[slot] = true
	} else {
		victim := clockSweep(ft)
		evicted = ft.place(victim, page)
		ft.refBits[victim] = true
		ft.advance()
		logEviction(Clock, page, evicted)
	}
	return faultStep(ft, page, evicted)
}

// clockSweep advances the hand past referenced slots, clearing their bits,
// and returns the first slot whose bit is already clear. The hand is left on
// the returned slot.
func clockSweep(ft *FrameTable) int {
	for inspected := 0; inspected < 2*ft.Capacity(); inspected++ {
		if !ft.refBits[ft.pointer] {
			return ft.pointer
		}
		ft.refBits[ft.pointer] = false
		ft.advance()
	}
	panic("clock sweep found no victim after two revolutions")
}
