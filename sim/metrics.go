// Renders simulation results for terminal output: per-step tables and
// per-policy fault/hit summaries.

package sim

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pagesim/pagesim/sim/trace"
)

// PrintTrace writes one row per reference: index, page, frame contents, status.
func PrintTrace(w io.Writer, doc *trace.Document) {
	fmt.Fprintf(w, "=== %s, %d frames ===\n", strings.ToUpper(doc.Algo), doc.Frames)
	fmt.Fprintf(w, "%-5s %-6s %-*s %s\n", "#", "Page", frameColumnWidth(doc.Frames), "Frames", "Status")
	for i, s := range doc.Result.Steps {
		fmt.Fprintf(w, "%-5d %-6d %-*s %s", i, s.Page, frameColumnWidth(doc.Frames), formatFrames(s.Frames), s.Status)
		if s.Evicted != trace.Empty {
			fmt.Fprintf(w, " (evicted %d)", s.Evicted)
		}
		fmt.Fprintln(w)
	}
	summary := trace.Summarize(doc.Result)
	fmt.Fprintf(w, "Faults: %d | Hits: %d | Hit Rate: %.1f%%\n", summary.Faults, summary.Hits, 100*summary.HitRate)
}

// PrintComparison writes a fault/hit summary line per policy.
func PrintComparison(w io.Writer, frameCount int, results []Comparison) {
	fmt.Fprintf(w, "=== Policy Comparison (%d frames) ===\n", frameCount)
	fmt.Fprintf(w, "%-8s %7s %7s %9s %10s\n", "Policy", "Faults", "Hits", "Hit Rate", "Evictions")
	for _, r := range results {
		fmt.Fprintf(w, "%-8s %7d %7d %8.1f%% %10d\n",
			r.Policy, r.Summary.Faults, r.Summary.Hits, 100*r.Summary.HitRate, r.Summary.Evictions)
	}
}

// PrintFaultCurve writes faults per frame count and flags Belady anomalies.
func PrintFaultCurve(w io.Writer, policy Policy, curve []int) {
	anomalies := make(map[int]bool)
	for _, k := range BeladyAnomalies(curve) {
		anomalies[k] = true
	}
	fmt.Fprintf(w, "=== %s fault curve ===\n", strings.ToUpper(policy.String()))
	for k, faults := range curve {
		fmt.Fprintf(w, "%3d frames: %d faults", k+1, faults)
		if anomalies[k+1] {
			fmt.Fprint(w, "  <- Belady's anomaly")
		}
		fmt.Fprintln(w)
	}
}

// formatFrames renders a snapshot as "[1 2 -]", with "-" for empty slots.
func formatFrames(frames []int) string {
	cells := make([]string, len(frames))
	for i, f := range frames {
		if f == trace.Empty {
			cells[i] = "-"
		} else {
			cells[i] = strconv.Itoa(f)
		}
	}
	return "[" + strings.Join(cells, " ") + "]"
}

func frameColumnWidth(frameCount int) int {
	return max(len("Frames"), 4*frameCount+2)
}
