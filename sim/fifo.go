package sim

import "github.com/pagesim/pagesim/sim/trace"

// SimulateFIFO replays pages against frameCount frames with first-in-first-out
// replacement. Once the table is full, victims are taken round-robin in the
// order the slots were first filled; hits do not affect that order.
func SimulateFIFO(pages []int, frameCount int) *trace.Trace {
	ft := NewFrameTable(frameCount)
	tr := trace.New(len(pages))

	for _, page := range pages {
		mustBeReferenceable(page)
		if ft.Lookup(page) >= 0 {
			tr.RecordStep(hitStep(ft, page))
			continue
		}

		evicted := trace.Empty
		if slot := ft.firstEmpty(); slot >= 0 {
			// the pointer stays put while the table is filling
			ft.place(slot, page)
		} else {
			evicted = ft.place(ft.pointer, page)
			ft.advance()
			logEviction(FIFO, page, evicted)
		}
		tr.RecordStep(faultStep(ft, page, evicted))
	}
	return tr
}
