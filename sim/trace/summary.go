package trace

// TraceSummary aggregates statistics from a Trace.
type TraceSummary struct {
	References int
	Hits       int
	Faults     int
	Evictions  int         // faults that replaced a resident page
	HitRate    float64     // hits / references, 0 for an empty trace
	FaultRate  float64     // faults / references, 0 for an empty trace
	Evicted    map[int]int // page → number of times it was chosen as victim
}

// Summarize computes aggregate statistics from a Trace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(t *Trace) *TraceSummary {
	summary := &TraceSummary{
		Evicted: make(map[int]int),
	}
	if t == nil {
		return summary
	}

	summary.References = len(t.Steps)
	for _, s := range t.Steps {
		if !s.IsFault() {
			summary.Hits++
			continue
		}
		summary.Faults++
		if s.Evicted != Empty {
			summary.Evictions++
			summary.Evicted[s.Evicted]++
		}
	}

	if summary.References > 0 {
		summary.HitRate = float64(summary.Hits) / float64(summary.References)
		summary.FaultRate = float64(summary.Faults) / float64(summary.References)
	}
	return summary
}
