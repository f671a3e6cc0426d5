// Package tspframework is the solving core of the TSP Optimization
// Framework: interchangeable tour-construction strategies, an adaptive
// algorithm selector, and a partition/batch pipeline that keeps the same
// core tractable on instances of tens of thousands of nodes — all under
// cooperative wall-clock and memory budgets.
//
// Everything is organized under seven subpackages:
//
//	config/    — immutable configuration snapshot consumed by the core
//	instance/  — Distance Model: validated matrices or coordinates behind
//	             a uniform Dist(i,j) lookup
//	memopt/    — Memory Optimizer: representation policies (dense /
//	             float32 / on-the-fly / spilled) against a memory ceiling
//	solver/    — the strategies: Greedy multi-start nearest neighbor,
//	             Held–Karp exact DP, Beam Search with look-ahead,
//	             Simulated Annealing; plus Budget, Solution and tour
//	             utilities shared by all of them
//	selector/  — picks a strategy and an ordered fallback chain from
//	             problem size, remaining budget and resource headroom,
//	             and drives direct and partitioned solves end to end
//	partition/ — splits large instances into coherent node groups
//	             (k-means, spectral, geometric bisection)
//	batch/     — solves partitions on a bounded worker pool, caches
//	             sub-tours, merges them into one global tour
//
// Design guarantees:
//
//   - Deterministic: all randomness is seed-driven; same seed ⇒ same tour.
//   - Cooperative budgets: deadlines are checked at algorithm-defined
//     checkpoints, never via preemption; heuristics return their
//     best-found-so-far tour when time runs out.
//   - Strict sentinels: every failure mode is a package-level sentinel
//     matched with errors.Is; no panics on user input, no logging.
//   - No I/O: the core performs no file, network, or config loading on
//     its own (the opt-in memopt spill file is the single, caller-enabled
//     exception).
package tspframework
