// Runs a reference string through one replacement policy and records the trace.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pagesim/pagesim/sim/trace"
)

// Simulate replays pages against frameCount frames under policy and returns
// one step per reference plus the fault count.
//
// The result depends only on the arguments and no state outlives the call, so
// concurrent calls need no coordination. With n = len(pages)
// and f = frameCount, FIFO and Clock cost O(n*f) (the hit lookup). LRU and
// Optimal add an O(n*f) scan of the reference string per eviction, O(n*n*f)
// in the worst case. Callers that accept untrusted input should bound n and f.
//
// Panics if frameCount < 1, if policy is not one of the four known values, or
// if pages contains trace.Empty. These are caller bugs; request validation
// rejects them before the engine runs.
func Simulate(policy Policy, pages []int, frameCount int) *trace.Trace {
	if frameCount < 1 {
		panic(fmt.Sprintf("Simulate: frameCount must be >= 1, got %d", frameCount))
	}
	switch policy {
	case FIFO:
		return SimulateFIFO(pages, frameCount)
	case LRU:
		return SimulateLRU(pages, frameCount)
	case Optimal:
		return SimulateOptimal(pages, frameCount)
	case Clock:
		return SimulateClock(pages, frameCount)
	default:
		panic(fmt.Sprintf("Simulate: unknown policy %d", int(policy)))
	}
}

func hitStep(ft *FrameTable, page int) trace.Step {
	return trace.Step{Page: page, Frames: ft.Snapshot(), Status: trace.StatusHit, Evicted: trace.Empty}
}

func faultStep(ft *FrameTable, page, evicted int) trace.Step {
	return trace.Step{Page: page, Frames: ft.Snapshot(), Status: trace.StatusFault, Evicted: evicted}
}

// mustBeReferenceable rejects the Empty sentinel as a page id; storing it
// would make a resident page indistinguishable from a free slot.
func mustBeReferenceable(page int) {
	if page == trace.Empty {
		panic(fmt.Sprintf("Simulate: page id %d is reserved for empty frames", trace.Empty))
	}
}

func logEviction(policy Policy, page, evicted int) {
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		logrus.Tracef("[%s] page %d replaced %d", policy, page, evicted)
	}
}
