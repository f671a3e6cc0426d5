// Package partition splits a large TSP instance into balanced
// sub-instances that downstream workers solve independently.
//
// The split pipeline is layered by cost and quality:
//
//  1. k-means on node coordinates (or on a 2-D multidimensional-scaling
//     embedding when only a distance matrix exists) — fast, usually
//     balanced.
//  2. Spectral clustering on the distance graph — retried when k-means
//     produces partitions whose largest member exceeds the configured
//     imbalance ratio.
//  3. Geometric fallback — recursive axis bisection over coordinates, or
//     contiguous index chunks without them. Always succeeds, always
//     balanced, used when clustering runs past its budget.
//
// The tunable invariant is the target partition SIZE, not the count:
// count = ceil(n / TargetPartitionSize) clamped to [1, MaxPartitions].
// Every Split result covers each node exactly once; Set.Validate checks
// that property explicitly.
//
// All randomness flows from Options.Seed, so splits are reproducible.
package partition
