package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pagesim/pagesim/sim/trace"
)

func evictions(tr *trace.Trace) []int {
	var out []int
	for _, s := range tr.Steps {
		if s.Evicted != trace.Empty {
			out = append(out, s.Evicted)
		}
	}
	return out
}

func TestFIFO_HitsDoNotChangeEvictionOrder(t *testing.T) {
	// GIVEN page 1 is hit right before the table overflows
	got := SimulateFIFO([]int{1, 2, 3, 1, 4, 5}, 3)

	// THEN victims still follow load order: 1 then 2
	assert.Equal(t, []int{1, 2}, evictions(got))
	assert.Equal(t, []int{4, 5, 3}, got.FinalFrames())
}

func TestFIFO_EvictionsRotateThroughSlots(t *testing.T) {
	// GIVEN a table that overflows twice over
	got := SimulateFIFO([]int{1, 2, 3, 4, 5, 6, 7, 8}, 3)

	// THEN slots are overwritten 0, 1, 2, 0, 1
	assert.Equal(t, []int{1, 2, 3, 4, 5}, evictions(got))
	assert.Equal(t, []int{7, 8, 6}, got.FinalFrames())
}

func TestLRU_RecentHitProtectsPage(t *testing.T) {
	// GIVEN page 1 is referenced again just before the overflow
	got := SimulateLRU([]int{1, 2, 3, 1, 4}, 3)

	// THEN page 2, not 1, is the victim
	assert.Equal(t, []int{2}, evictions(got))
	assert.Equal(t, []int{1, 4, 3}, got.FinalFrames())
}

func TestLRUVictim_TieAtNever_FirstSlotWins(t *testing.T) {
	// GIVEN resident pages none of which appear before index 2
	ft := NewFrameTable(3)
	ft.place(0, 5)
	ft.place(1, 6)
	ft.place(2, 7)
	pages := []int{9, 9, 8}

	// WHEN the victim is chosen
	victim := lruVictim(ft, pages, 2)

	// THEN the lowest slot is picked
	assert.Equal(t, 0, victim)
}

func TestLRUVictim_ReturnsSlotOfOldestPage(t *testing.T) {
	// GIVEN the least recently used page sits in the last slot
	ft := NewFrameTable(3)
	ft.place(0, 1)
	ft.place(1, 2)
	ft.place(2, 3)
	pages := []int{3, 1, 2, 4}

	assert.Equal(t, 2, lruVictim(ft, pages, 3))
}

func TestOptimal_EvictsPageUsedFurthestAhead(t *testing.T) {
	// GIVEN next uses 1→6, 2→5, 3→4 at the overflow
	got := SimulateOptimal([]int{1, 2, 3, 4, 3, 2, 1}, 3)

	// THEN page 1 is replaced first, so the final reference to 1 faults again
	assert.Equal(t, []int{1, 4}, evictions(got))
	assert.Equal(t, 5, got.Faults)
	assert.Equal(t, trace.StatusHit, got.Steps[4].Status)
	assert.Equal(t, trace.StatusHit, got.Steps[5].Status)
}

func TestOptimalVictim_TieAtInfinity_FirstSlotWins(t *testing.T) {
	ft := NewFrameTable(3)
	ft.place(0, 4)
	ft.place(1, 5)
	ft.place(2, 6)
	pages := []int{4, 5, 6, 7, 5}

	// 4 and 6 never recur; 4 sits in the lower slot
	assert.Equal(t, 0, optimalVictim(ft, pages, 3))
}

func TestOptimal_NeverBeatenByOtherPolicies(t *testing.T) {
	inputs := [][]int{
		{7, 0, 1, 2, 0, 3, 0, 4, 2, 3, 0, 3, 2, 1, 2, 0, 1, 7, 0, 1},
		{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5},
		{0, 1, 2, 3, 0, 1, 2, 3, 0, 1, 2, 3},
	}
	for _, pages := range inputs {
		for frames := 1; frames <= 4; frames++ {
			best := SimulateOptimal(pages, frames).Faults
			for _, p := range []Policy{FIFO, LRU, Clock} {
				assert.LessOrEqual(t, best, Simulate(p, pages, frames).Faults,
					"%s beat optimal with %d frames on %v", p, frames, pages)
			}
		}
	}
}

func TestClock_HitGrantsSecondChance(t *testing.T) {
	// GIVEN after loading 4 the hand rests on slot 1 (page 2) with bits [1 0 0]
	// WHEN page 2 is hit and then 5 faults
	got := SimulateClock([]int{1, 2, 3, 4, 2, 5}, 3)

	// THEN 2 survives and 3 is replaced
	assert.Equal(t, []int{1, 3}, evictions(got))
	assert.Equal(t, []int{4, 2, 5}, got.FinalFrames())
}

func TestClockSweep_AllBitsSet_WrapsToFirstSlot(t *testing.T) {
	// GIVEN the table has just been filled
	ft := newClockTable(3)
	for slot, page := range []int{1, 2, 3} {
		ft.place(slot, page)
		ft.refBits[slot] = true
	}

	// WHEN the sweep runs with every bit set
	victim := clockSweep(ft)

	// THEN it wraps around to slot 0 and all bits are cleared
	assert.Equal(t, 0, victim)
	assert.Equal(t, 0, ft.pointer)
	assert.Equal(t, []bool{false, false, false}, ft.refBits)
}

func TestClock_FillingDoesNotMoveHand(t *testing.T) {
	// GIVEN an empty clock table
	ft := newClockTable(3)

	// WHEN free slots are filled and one of them is hit
	for _, page := range []int{1, 2, 3, 2} {
		clockReference(ft, page)

		// THEN the hand stays on slot 0
		assert.Equal(t, 0, ft.pointer, "after page %d", page)
	}
	assert.Equal(t, []bool{true, true, true}, ft.refBits)

	// WHEN the first eviction happens
	step := clockReference(ft, 4)

	// THEN the sweep wraps to slot 0, replaces it and moves past it
	assert.Equal(t, 1, step.Evicted)
	assert.Equal(t, []int{4, 2, 3}, step.Frames)
	assert.Equal(t, 1, ft.pointer)
	assert.Equal(t, []bool{true, false, false}, ft.refBits)
}

func TestClockSweep_StopsAtFirstClearBit(t *testing.T) {
	ft := NewFrameTable(4)
	ft.refBits = []bool{true, true, false, true}
	ft.pointer = 1

	victim := clockSweep(ft)

	assert.Equal(t, 2, victim)
	assert.Equal(t, []bool{true, false, false, true}, ft.refBits)
}

func TestFrameTable_PlaceTracksOccupancy(t *testing.T) {
	ft := NewFrameTable(2)
	assert.Equal(t, 0, ft.firstEmpty())

	assert.Equal(t, trace.Empty, ft.place(0, 10))
	assert.False(t, ft.Full())
	assert.Equal(t, 1, ft.firstEmpty())

	ft.place(1, 11)
	assert.True(t, ft.Full())
	assert.Equal(t, -1, ft.firstEmpty())

	assert.Equal(t, 10, ft.place(0, 12))
	assert.True(t, ft.Full())
	assert.Equal(t, 0, ft.Lookup(12))
	assert.Equal(t, -1, ft.Lookup(10))
}

func TestNewFrameTable_ZeroFrames_Panics(t *testing.T) {
	assert.PanicsWithValue(t,
		"FrameTable: frameCount must be >= 1, got 0",
		func() {
			NewFrameTable(0)
		})
}
