package workload

import (
	"hash/fnv"
	"math/rand"
)

// Subsystem names for PartitionedRNG streams.
const (
	// SubsystemPages draws page ids. Uses the master seed directly so a
	// uniform string for seed S is the plain math/rand sequence for S.
	SubsystemPages = "pages"
	// SubsystemLocality decides whether a reference stays in the working set.
	SubsystemLocality = "locality"
	// SubsystemPhase draws the working set used after each phase shift.
	SubsystemPhase = "phase"
)

// PartitionedRNG provides deterministic, isolated RNG streams per subsystem,
// so that tuning one aspect of a generator does not perturb the others.
//
// Derivation formula:
//   - For SubsystemPages: uses the seed directly
//   - For all other subsystems: seed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	seed       int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:       seed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	derived := p.seed
	if name != SubsystemPages {
		derived ^= fnv1a64(name)
	}
	rng := rand.New(rand.NewSource(derived))
	p.subsystems[name] = rng
	return rng
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
