package sim

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pagesim/pagesim/sim/trace"
)

// Defaults applied when a request omits a field.
const (
	DefaultFrames = 3
	DefaultAlgo   = "fifo"
)

// Validation failures. They are returned (possibly wrapped) before the engine
// runs and never accompany a partial trace.
var (
	ErrMissingBody       = errors.New("missing json body")
	ErrPagesNotIntegers  = errors.New("pages must be a list of integers")
	ErrReservedPage      = fmt.Errorf("pages must not contain %d (reserved for empty frames)", trace.Empty)
	ErrFramesNotPositive = errors.New("frames must be positive integer")
	ErrUnknownAlgorithm  = errors.New("unknown algorithm")
	ErrTooManyPages      = errors.New("too many pages")
	ErrTooManyFrames     = errors.New("too many frames")
)

// SimulationRequest is the logical input of one simulation.
// A nil Frames or empty Algo means "use the default".
type SimulationRequest struct {
	Pages  []int  `json:"pages"`
	Frames *int   `json:"frames,omitempty"`
	Algo   string `json:"algo,omitempty"`
}

// Limits caps the work a single request may ask for. Zero means unlimited.
type Limits struct {
	MaxPages  int
	MaxFrames int
}

// CompareRequest is the logical input of a multi-policy comparison.
// An empty Algos list means every policy.
type CompareRequest struct {
	Pages  []int    `json:"pages"`
	Frames *int     `json:"frames,omitempty"`
	Algos  []string `json:"algos,omitempty"`
}

// DecodeSimulationRequest parses a JSON request body field by field so that
// each malformed field maps to its own validation error.
func DecodeSimulationRequest(body []byte) (*SimulationRequest, error) {
	fields, err := decodeFields(body)
	if err != nil {
		return nil, err
	}
	req := &SimulationRequest{}
	if req.Pages, req.Frames, err = decodePagesAndFrames(fields); err != nil {
		return nil, err
	}
	if raw, ok := fields["algo"]; ok && !isJSONNull(raw) {
		if err := json.Unmarshal(raw, &req.Algo); err != nil {
			return nil, ErrUnknownAlgorithm
		}
	}
	return req, nil
}

// DecodeCompareRequest is DecodeSimulationRequest for comparisons: pages and
// frames follow the same rules, algos must be a list of strings.
func DecodeCompareRequest(body []byte) (*CompareRequest, error) {
	fields, err := decodeFields(body)
	if err != nil {
		return nil, err
	}
	req := &CompareRequest{}
	if req.Pages, req.Frames, err = decodePagesAndFrames(fields); err != nil {
		return nil, err
	}
	if raw, ok := fields["algos"]; ok && !isJSONNull(raw) {
		if err := json.Unmarshal(raw, &req.Algos); err != nil {
			return nil, ErrUnknownAlgorithm
		}
	}
	return req, nil
}

// SimulationRequest returns the single-policy request sharing pages and frames.
func (r *CompareRequest) SimulationRequest() *SimulationRequest {
	return &SimulationRequest{Pages: r.Pages, Frames: r.Frames}
}

// decodeFields splits a body into its top-level fields. An empty body, a
// non-object and an empty object all count as a missing body.
func decodeFields(body []byte) (map[string]json.RawMessage, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrMissingBody
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return nil, ErrMissingBody
	}
	return fields, nil
}

func decodePagesAndFrames(fields map[string]json.RawMessage) ([]int, *int, error) {
	raw, ok := fields["pages"]
	if !ok || isJSONNull(raw) {
		return nil, nil, ErrPagesNotIntegers
	}
	var pages []int
	if err := json.Unmarshal(raw, &pages); err != nil || pages == nil {
		return nil, nil, ErrPagesNotIntegers
	}

	raw, ok = fields["frames"]
	if !ok || isJSONNull(raw) {
		return pages, nil, nil
	}
	var frames int
	if err := json.Unmarshal(raw, &frames); err != nil {
		return nil, nil, ErrFramesNotPositive
	}
	return pages, &frames, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// FrameCount returns the requested capacity or DefaultFrames.
func (r *SimulationRequest) FrameCount() int {
	if r.Frames == nil {
		return DefaultFrames
	}
	return *r.Frames
}

// AlgoName returns the normalized policy name or DefaultAlgo.
func (r *SimulationRequest) AlgoName() string {
	name := strings.ToLower(strings.TrimSpace(r.Algo))
	if name == "" {
		return DefaultAlgo
	}
	return name
}

// Validate checks the request against the engine's preconditions and limits
// and returns the selected policy.
func (r *SimulationRequest) Validate(limits Limits) (Policy, error) {
	if r.Pages == nil {
		return 0, ErrPagesNotIntegers
	}
	for _, p := range r.Pages {
		if p == trace.Empty {
			return 0, ErrReservedPage
		}
	}
	frames := r.FrameCount()
	if frames <= 0 {
		return 0, ErrFramesNotPositive
	}
	if limits.MaxPages > 0 && len(r.Pages) > limits.MaxPages {
		return 0, fmt.Errorf("%w: %d references, limit is %d", ErrTooManyPages, len(r.Pages), limits.MaxPages)
	}
	if limits.MaxFrames > 0 && frames > limits.MaxFrames {
		return 0, fmt.Errorf("%w: %d frames, limit is %d", ErrTooManyFrames, frames, limits.MaxFrames)
	}
	if !ValidPolicies[r.AlgoName()] {
		return 0, ErrUnknownAlgorithm
	}
	return ParsePolicy(r.AlgoName())
}

// Execute validates the request, runs the engine and wraps the result in a
// trace.Document ready to be serialized.
func (r *SimulationRequest) Execute(limits Limits) (*trace.Document, error) {
	policy, err := r.Validate(limits)
	if err != nil {
		return nil, err
	}
	return NewDocument(policy, r.Pages, r.FrameCount()), nil
}

// NewDocument runs one simulation and packages it with its inputs.
func NewDocument(policy Policy, pages []int, frameCount int) *trace.Document {
	return &trace.Document{
		Algo:   policy.String(),
		Frames: frameCount,
		Pages:  pages,
		Result: Simulate(policy, pages, frameCount),
	}
}

// IsValidationError reports whether err is one of the request validation failures.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrMissingBody, ErrPagesNotIntegers, ErrReservedPage, ErrFramesNotPositive,
		ErrUnknownAlgorithm, ErrTooManyPages, ErrTooManyFrames,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
