package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare_ResultsFollowRequestedOrder(t *testing.T) {
	pages := []int{1, 2, 3, 4, 1, 2, 5}
	policies := []Policy{Clock, Optimal, FIFO}

	results := Compare(policies, pages, 3)

	if assert.Len(t, results, 3) {
		for i, p := range policies {
			assert.Equal(t, p, results[i].Policy)
			assert.Equal(t, Simulate(p, pages, 3), results[i].Trace)
			assert.Equal(t, results[i].Trace.Faults, results[i].Summary.Faults)
		}
	}
	assert.Equal(t, 7, results[0].Summary.Faults)
	assert.Equal(t, 5, results[1].Summary.Faults)
}

func TestCompare_NoPolicies_EmptyResult(t *testing.T) {
	assert.Empty(t, Compare(nil, []int{1}, 1))
}

func TestFaultCurve_FIFOExhibitsBeladyAnomaly(t *testing.T) {
	// GIVEN the classic anomaly reference string
	pages := []int{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}

	// WHEN faults are computed for 1..5 frames
	curve := FaultCurve(FIFO, pages, 5)

	// THEN 4 frames fault more than 3
	assert.Equal(t, []int{12, 12, 9, 10, 5}, curve)
	assert.Equal(t, []int{4}, BeladyAnomalies(curve))
}

func TestFaultCurve_LRUIsMonotone(t *testing.T) {
	pages := []int{1, 2, 3, 4, 1, 2, 5, 1, 2, 3, 4, 5}
	assert.Empty(t, BeladyAnomalies(FaultCurve(LRU, pages, 6)))
}

func TestFaultCurve_ZeroFrames_Panics(t *testing.T) {
	assert.Panics(t, func() { FaultCurve(LRU, []int{1}, 0) })
}
