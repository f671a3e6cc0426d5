// Package batch solves a partition set concurrently and merges the
// per-partition tours back into one tour over the source instance.
//
// Process fans the partitions out over a bounded worker pool, giving
// each partition a deadline share proportional to its node count. A
// failed partition never cancels its siblings: the batch completes what
// it can and reports the rest through a BatchError carrying every
// finished partial, so callers can salvage or retry selectively.
//
// Solving is delegated through a SolveFunc rather than a concrete
// strategy, which keeps this package ignorant of selection policy (and
// lets the selector recurse through itself for each piece).
//
// Merge chains partitions by nearest centroid and splices each
// partition's cyclic tour at its cheapest entry point relative to the
// tail of the merged tour. The result is a valid tour over all source
// nodes; its cost is bounded by the partition tours plus the splice
// edges, not globally optimal.
package batch
