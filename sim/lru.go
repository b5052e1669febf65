package sim

import "github.com/pagesim/pagesim/sim/trace"

// SimulateLRU replays pages with least-recently-used replacement.
// Recency is recomputed from the reference string on every eviction, so the
// frame table carries no auxiliary state.
func SimulateLRU(pages []int, frameCount int) *trace.Trace {
	ft := NewFrameTable(frameCount)
	tr := trace.New(len(pages))

	for i, page := range pages {
		mustBeReferenceable(page)
		if ft.Lookup(page) >= 0 {
			tr.RecordStep(hitStep(ft, page))
			continue
		}

		evicted := trace.Empty
		if slot := ft.firstEmpty(); slot >= 0 {
			ft.place(slot, page)
		} else {
			evicted = ft.place(lruVictim(ft, pages, i), page)
			logEviction(LRU, page, evicted)
		}
		tr.RecordStep(faultStep(ft, page, evicted))
	}
	return tr
}

// lruVictim returns the slot whose page was referenced least recently before
// position i. A page never referenced before i ranks as -1. Ties keep the
// first candidate in slot order.
func lruVictim(ft *FrameTable, pages []int, i int) int {
	victim, oldest := -1, 0
	for slot := 0; slot < ft.Capacity(); slot++ {
		lastUse := lastUseBefore(pages, ft.Resident(slot), i)
		if victim < 0 || lastUse < oldest {
			victim, oldest = slot, lastUse
		}
	}
	return victim
}

// lastUseBefore scans backwards from i-1 for page; -1 if it never occurred.
func lastUseBefore(pages []int, page, i int) int {
	for j := i - 1; j >= 0; j-- {
		if pages[j] == page {
			return j
		}
	}
	return -1
}
