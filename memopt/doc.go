// Package memopt implements the Memory Optimizer: it advises, once per
// solve call, how the distance matrix should be represented so that
// solver state fits the caller's resource ceiling.
//
// Policies, from fastest to most frugal:
//
//   - PolicyDense    — full float64 matrix in memory, 8n² bytes.
//   - PolicyFloat32  — reduced precision, 4n² bytes, ~1.2e−7 relative
//     error. Never advised when the caller's solution-quality threshold
//     is tight enough that the quantization could matter.
//   - PolicyOnTheFly — no materialized matrix; distances recomputed from
//     coordinates per lookup, O(n) memory. Requires coordinate input.
//   - PolicySpill    — matrix streamed from a caller-approved temporary
//     file with a one-row cache. Requires an explicit SpillDir: with no
//     spill directory the advisor never chooses it, keeping the core
//     free of file I/O by default.
//
// If no policy fits the ceiling, Advise fails with ErrResourceExceeded.
// The chosen policy is applied by instance.ApplyPolicy and is transparent
// to every downstream Dist(i,j) lookup.
//
// The package also provides ResourceSnapshot, the read-only memory/CPU
// view threaded into the selector. Snapshots are taken by the caller
// between solve calls (TakeSnapshot reads runtime.MemStats) or
// substituted synthetically in tests; no strategy ever mutates one.
package memopt
