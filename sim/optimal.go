package sim

import (
	"math"

	"github.com/pagesim/pagesim/sim/trace"
)

// never is the next-use distance of a page that is not referenced again.
const never = math.MaxInt

// SimulateOptimal replays pages with Belady's clairvoyant replacement: the
// victim is the resident page whose next reference lies furthest in the
// future. Pages never referenced again are preferred; ties keep the first
// candidate in slot order.
func SimulateOptimal(pages []int, frameCount int) *trace.Trace {
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
			evicted = ft.place(optimalVictim(ft, pages, i), page)
			logEviction(Optimal, page, evicted)
		}
		tr.RecordStep(faultStep(ft, page, evicted))
	}
	return tr
}

func optimalVictim(ft *FrameTable, pages []int, i int) int {
	victim, furthest := -1, 0
	for slot := 0; slot < ft.Capacity(); slot++ {
		nextUse := nextUseAfter(pages, ft.Resident(slot), i)
		if victim < 0 || nextUse > furthest {
			victim, furthest = slot, nextUse
		}
	}
	return victim
}

// nextUseAfter scans forward from i+1 for page; never if it does not recur.
func nextUseAfter(pages []int, page, i int) int {
	for j := i + 1; j < len(pages); j++ {
		if pages[j] == page {
			return j
		}
	}
	return never
}
