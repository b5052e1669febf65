// Package trace provides the step-by-step record of a page-replacement simulation.
// This package has no dependencies on sim/ and stores pure data types.
package trace

// Empty marks a frame slot that does not hold a page yet.
const Empty = -1

// Status classifies a single reference.
type Status string

const (
	// StatusHit means the referenced page was already resident.
	StatusHit Status = "Hit"
	// StatusFault means the referenced page had to be loaded into a frame.
	StatusFault Status = "Fault"
)

// Step captures the frame table right after one reference was served.
type Step struct {
	Page    int    `json:"page"`
	Frames  []int  `json:"frames"` // exactly frameCount entries, Empty for unused slots
	Status  Status `json:"status"`
	Evicted int    `json:"evicted"` // victim page, Empty on hits and on fills of a free slot
}

// IsFault reports whether the step loaded a page.
func (s Step) IsFault() bool {
	return s.Status == StatusFault
}

// Trace is the ordered list of steps of one simulation plus its fault count.
type Trace struct {
	Steps  []Step `json:"steps"`
	Faults int    `json:"faults"`
}

// New creates a Trace ready for recording; capacity is a hint for the number of references.
func New(capacity int) *Trace {
	return &Trace{Steps: make([]Step, 0, capacity)}
}

// RecordStep appends a step and keeps Faults in sync with it.
func (t *Trace) RecordStep(step Step) {
	t.Steps = append(t.Steps, step)
	if step.IsFault() {
		t.Faults++
	}
}

// Hits returns the number of references served without a fault.
func (t *Trace) Hits() int {
	return len(t.Steps) - t.Faults
}

// FinalFrames returns the frame snapshot after the last reference, or nil for an empty trace.
func (t *Trace) FinalFrames() []int {
	if len(t.Steps) == 0 {
		return nil
	}
	return t.Steps[len(t.Steps)-1].Frames
}

// Document is the serialized form of one simulation: its inputs and the resulting trace.
// It is the response body of the HTTP API and the content of exported trace files.
type Document struct {
	Algo   string `json:"algo"`
	Frames int    `json:"frames"`
	Pages  []int  `json:"pages"`
	Result *Trace `json:"result"`
}
