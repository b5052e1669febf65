// Package sim provides the page-replacement simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - policy.go: the closed set of replacement policies and their names
//   - frames.go: FrameTable, the per-run mutable frame state
//   - simulator.go: Simulate, the single entry point dispatching on Policy
//   - fifo.go, lru.go, optimal.go, clock.go: one file per policy
//
// # Architecture
//
// Every policy classifies a reference as a hit when the page is already
// resident. On a fault the page takes the lowest-indexed free slot; once the
// table is full the policy picks a victim slot. One trace.Step is recorded per
// reference, with a snapshot of all slots (trace.Empty for unused ones).
//
// Runs are pure: identical inputs give identical traces, and no state outlives
// a call. Sub-packages:
//   - sim/trace/: Step, Trace and Document data types, summaries, file export
//   - sim/workload/: reference-string parsing and seeded generators
//
// Around the engine, request.go validates the logical request used by the
// HTTP API, bundle.go loads YAML scenario files, and compare.go runs several
// policies side by side.
package sim
