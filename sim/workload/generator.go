// Package workload produces reference strings: parsing them from text and
// generating them from seeded synthetic models.
package workload

import (
	"fmt"
)

// Kind names a reference-string model.
type Kind string

const (
	// KindUniform draws every reference independently from [0, PageRange).
	KindUniform Kind = "uniform"
	// KindLocality concentrates references on a small working set that moves
	// every ShiftEvery references.
	KindLocality Kind = "locality"
	// KindLoop cycles through 0..LoopLength-1, the classic LRU worst case.
	KindLoop Kind = "loop"
)

// validKinds maps accepted generator kinds.
var validKinds = map[Kind]bool{KindUniform: true, KindLocality: true, KindLoop: true}

// GeneratorConfig parameterizes Generate. Fields that a Kind does not use are ignored.
type GeneratorConfig struct {
	Kind       Kind    `yaml:"kind"`
	Length     int     `yaml:"length"`
	PageRange  int     `yaml:"page_range"`
	Seed       int64   `yaml:"seed"`
	WorkingSet int     `yaml:"working_set,omitempty"` // locality: pages per phase
	Locality   float64 `yaml:"locality,omitempty"`    // locality: probability of staying in the working set
	ShiftEvery int     `yaml:"shift_every,omitempty"` // locality: references per phase, 0 = never shift
	LoopLength int     `yaml:"loop_length,omitempty"` // loop: cycle length, defaults to PageRange
}

// Validate checks the config for the selected kind.
func (c *GeneratorConfig) Validate() error {
	if !validKinds[c.Kind] {
		return fmt.Errorf("unknown generator kind %q; valid: uniform, locality, loop", c.Kind)
	}
	if c.Length < 0 {
		return fmt.Errorf("length must be non-negative, got %d", c.Length)
	}
	if c.PageRange <= 0 {
		return fmt.Errorf("page_range must be positive, got %d", c.PageRange)
	}
	switch c.Kind {
	case KindLocality:
		if c.WorkingSet <= 0 || c.WorkingSet > c.PageRange {
			return fmt.Errorf("working_set must be in [1, %d], got %d", c.PageRange, c.WorkingSet)
		}
		if c.Locality < 0 || c.Locality > 1 {
			return fmt.Errorf("locality must be in [0, 1], got %f", c.Locality)
		}
		if c.ShiftEvery < 0 {
			return fmt.Errorf("shift_every must be non-negative, got %d", c.ShiftEvery)
		}
	case KindLoop:
		if c.LoopLength < 0 || c.LoopLength > c.PageRange {
			return fmt.Errorf("loop_length must be in [0, %d], got %d", c.PageRange, c.LoopLength)
		}
	}
	return nil
}

// Generate creates a reference string from cfg.
// Deterministic given the same config, including the seed.
func Generate(cfg GeneratorConfig) ([]int, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator config: %w", err)
	}
	rng := NewPartitionedRNG(cfg.Seed)
	pages := make([]int, 0, cfg.Length)

	switch cfg.Kind {
	case KindUniform:
		draw := rng.ForSubsystem(SubsystemPages)
		for len(pages) < cfg.Length {
			pages = append(pages, draw.Intn(cfg.PageRange))
		}
	case KindLocality:
		draw := rng.ForSubsystem(SubsystemPages)
		stay := rng.ForSubsystem(SubsystemLocality)
		phase := rng.ForSubsystem(SubsystemPhase)
		workingSet := phase.Perm(cfg.PageRange)[:cfg.WorkingSet]
		for i := 0; len(pages) < cfg.Length; i++ {
			if cfg.ShiftEvery > 0 && i > 0 && i%cfg.ShiftEvery == 0 {
				workingSet = phase.Perm(cfg.PageRange)[:cfg.WorkingSet]
			}
			if stay.Float64() < cfg.Locality {
				pages = append(pages, workingSet[draw.Intn(len(workingSet))])
			} else {
				pages = append(pages, draw.Intn(cfg.PageRange))
			}
		}
	case KindLoop:
		n := cfg.LoopLength
		if n == 0 {
			n = cfg.PageRange
		}
		for i := 0; len(pages) < cfg.Length; i++ {
			pages = append(pages, i%n)
		}
	}
	return pages, nil
}
