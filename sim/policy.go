package sim

import (
	"fmt"
	"strings"
)

// Policy selects a page-replacement algorithm. The set is closed: every
// switch over Policy handles all four values and panics on anything else.
type Policy int

const (
	// FIFO evicts pages in round-robin order of their original load.
	FIFO Policy = iota
	// LRU evicts the resident page whose last reference is oldest.
	LRU
	// Optimal evicts the resident page whose next reference is furthest away.
	Optimal
	// Clock gives every resident page a second chance via a reference bit.
	Clock
)

var policyNames = [...]string{
	FIFO:    "fifo",
	LRU:     "lru",
	Optimal: "optimal",
	Clock:   "clock",
}

// ValidPolicies is the set of recognized policy names.
// Shared by ParsePolicy() and the request/bundle validators.
var ValidPolicies = map[string]bool{"fifo": true, "lru": true, "optimal": true, "clock": true}

// AllPolicies returns every policy in declaration order.
func AllPolicies() []Policy {
	return []Policy{FIFO, LRU, Optimal, Clock}
}

// String returns the lower-case wire name of the policy.
func (p Policy) String() string {
	if p < 0 || int(p) >= len(policyNames) {
		return fmt.Sprintf("Policy(%d)", int(p))
	}
	return policyNames[p]
}

// ParsePolicy maps a policy name (case-insensitive, surrounding spaces ignored) to a Policy.
func ParsePolicy(name string) (Policy, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for p, n := range policyNames {
		if n == normalized {
			return Policy(p), nil
		}
	}
	return 0, fmt.Errorf("unknown policy %q; valid: fifo, lru, optimal, clock", name)
}

// ParsePolicies parses a list of names, rejecting unknowns and duplicates.
// An empty list yields AllPolicies().
func ParsePolicies(names []string) ([]Policy, error) {
	if len(names) == 0 {
		return AllPolicies(), nil
	}
	seen := make(map[Policy]bool, len(names))
	policies := make([]Policy, 0, len(names))
	for _, name := range names {
		p, err := ParsePolicy(name)
		if err != nil {
			return nil, err
		}
		if seen[p] {
			return nil, fmt.Errorf("policy %q listed more than once", p)
		}
		seen[p] = true
		policies = append(policies, p)
	}
	return policies, nil
}

// MarshalText lets policies appear by name in YAML and JSON documents.
func (p Policy) MarshalText() ([]byte, error) {
	if p < 0 || int(p) >= len(policyNames) {
		return nil, fmt.Errorf("unknown policy %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
