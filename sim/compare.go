package sim

import (
	"fmt"
	"sync"

	"github.com/pagesim/pagesim/sim/trace"
)

// Comparison is the outcome of one policy in a multi-policy run.
type Comparison struct {
	Policy  Policy
	Trace   *trace.Trace
	Summary *trace.TraceSummary
}

// Compare runs every policy over the same reference string. The runs share no
// state and execute concurrently; results come back in the order of policies.
func Compare(policies []Policy, pages []int, frameCount int) []Comparison {
	results := make([]Comparison, len(policies))
	var wg sync.WaitGroup
	for i, p := range policies {
		wg.Add(1)
		go func(i int, p Policy) {
			defer wg.Done()
			tr := Simulate(p, pages, frameCount)
			results[i] = Comparison{Policy: p, Trace: tr, Summary: trace.Summarize(tr)}
		}(i, p)
	}
	wg.Wait()
	return results
}

// FaultCurve returns the fault count of policy for every capacity from 1 to
// maxFrames; element k-1 holds the faults with k frames.
// Panics if maxFrames < 1.
func FaultCurve(policy Policy, pages []int, maxFrames int) []int {
	if maxFrames < 1 {
		panic(fmt.Sprintf("FaultCurve: maxFrames must be >= 1, got %d", maxFrames))
	}
	curve := make([]int, maxFrames)
	for k := 1; k <= maxFrames; k++ {
		curve[k-1] = Simulate(policy, pages, k).Faults
	}
	return curve
}

// BeladyAnomalies lists the capacities k (k >= 2) at which adding a frame
// increased the fault count, i.e. curve[k-1] > curve[k-2].
func BeladyAnomalies(curve []int) []int {
	var frames []int
	for k := 2; k <= len(curve); k++ {
		if curve[k-1] > curve[k-2] {
			frames = append(frames, k)
		}
	}
	return frames
}
