// Package testutil provides shared test infrastructure for the page-replacement
// simulator. It consolidates golden dataset types and trace assertion helpers
// used across sim/ and cmd/ test packages.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/pagesim/pagesim/sim/trace"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one reference string run through one policy.
type GoldenTestCase struct {
	Name     string         `json:"name"`
	Algo     string         `json:"algo"`
	Frames   int            `json:"frames"`
	Pages    []int          `json:"pages"`
	Expected GoldenExpected `json:"expected"`
}

// GoldenExpected is the exact trace expected for a test case.
type GoldenExpected struct {
	Faults int          `json:"faults"`
	Steps  []GoldenStep `json:"steps"`
}

// GoldenStep mirrors the wire form of trace.Step without the derived Evicted field.
type GoldenStep struct {
	Page   int          `json:"page"`
	Frames []int        `json:"frames"`
	Status trace.Status `json:"status"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	if len(dataset.Tests) == 0 {
		t.Fatal("Golden dataset has no test cases")
	}
	return &dataset
}

// AssertGoldenTrace compares every step of got against the golden expectation.
func AssertGoldenTrace(t *testing.T, want GoldenExpected, got *trace.Trace) {
	t.Helper()
	if got.Faults != want.Faults {
		t.Errorf("faults: got %d, want %d", got.Faults, want.Faults)
	}
	if len(got.Steps) != len(want.Steps) {
		t.Fatalf("steps: got %d, want %d", len(got.Steps), len(want.Steps))
	}
	for i, w := range want.Steps {
		g := got.Steps[i]
		if g.Page != w.Page || g.Status != w.Status || !slices.Equal(g.Frames, w.Frames) {
			t.Errorf("step %d: got {page %d frames %v %s}, want {page %d frames %v %s}",
				i, g.Page, g.Frames, g.Status, w.Page, w.Frames, w.Status)
		}
	}
}

// AssertTraceInvariants checks the properties every trace must satisfy,
// whatever the policy:
//   - one step per reference, each snapshot exactly frameCount long
//   - resident pages in a snapshot are pairwise distinct
//   - Faults equals the number of fault steps
//   - a hit changes no slot and the referenced page is resident before it
//   - a fault changes exactly one slot, which now holds the referenced page
func AssertTraceInvariants(t *testing.T, pages []int, frameCount int, got *trace.Trace) {
	t.Helper()
	if len(got.Steps) != len(pages) {
		t.Fatalf("expected %d steps, got %d", len(pages), len(got.Steps))
	}

	prev := make([]int, frameCount)
	for i := range prev {
		prev[i] = trace.Empty
	}
	faults := 0
	for i, s := range got.Steps {
		if s.Page != pages[i] {
			t.Errorf("step %d: page %d, reference string has %d", i, s.Page, pages[i])
		}
		if len(s.Frames) != frameCount {
			t.Fatalf("step %d: snapshot length %d, want %d", i, len(s.Frames), frameCount)
		}
		seen := make(map[int]bool)
		for _, f := range s.Frames {
			if f == trace.Empty {
				continue
			}
			if seen[f] {
				t.Errorf("step %d: page %d resident twice in %v", i, f, s.Frames)
			}
			seen[f] = true
		}

		changed := 0
		for j := range s.Frames {
			if s.Frames[j] != prev[j] {
				changed++
			}
		}
		switch s.Status {
		case trace.StatusHit:
			if changed != 0 {
				t.Errorf("step %d: hit changed %d slots (%v → %v)", i, changed, prev, s.Frames)
			}
			if !slices.Contains(prev, s.Page) {
				t.Errorf("step %d: hit on page %d not resident in %v", i, s.Page, prev)
			}
		case trace.StatusFault:
			faults++
			if changed != 1 {
				t.Errorf("step %d: fault changed %d slots (%v → %v)", i, changed, prev, s.Frames)
			}
			if slices.Contains(prev, s.Page) {
				t.Errorf("step %d: fault on page %d already resident in %v", i, s.Page, prev)
			}
			if !slices.Contains(s.Frames, s.Page) {
				t.Errorf("step %d: faulted page %d not loaded: %v", i, s.Page, s.Frames)
			}
		default:
			t.Errorf("step %d: unknown status %q", i, s.Status)
		}
		prev = s.Frames
	}
	if faults != got.Faults {
		t.Errorf("Faults = %d but %d fault steps recorded", got.Faults, faults)
	}
}
