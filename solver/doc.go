// Package solver provides the four interchangeable tour-construction
// strategies and the model they share (Budget, Solution, tour and cost
// utilities, deterministic RNG helpers).
//
// Strategies (closed enumeration, see ID):
//
//   - Greedy     — multi-start nearest neighbor with k-nearest candidate
//     lists and an exhaustive fallback scan.
//     Complexity: O(s·n·k) per run after an O(n² log n) index build.
//   - HeldKarp   — exact dynamic programming over (visited-set, last-node)
//     bitmask states. Complexity: O(n²·2ⁿ) time, O(n·2ⁿ) memory.
//     Provably optimal when it completes; all-or-nothing on budget expiry.
//   - BeamSearch — bounded-width best-first construction with a
//     cheapest-incident-edge look-ahead bound and budget-adaptive width.
//   - Annealing  — simulated annealing over segment reversals with a
//     geometric cooling schedule; returns its best-seen tour and is never
//     worse than the tour it started from.
//
// Shared contract: Solve(instance, budget, options) is deterministic for
// a fixed seed, checks the budget cooperatively at algorithm-defined
// checkpoints, and — for the heuristics — returns a valid best-found-
// so-far tour when the deadline hits mid-search. Held–Karp is the single
// all-or-nothing strategy: its partial states are not usable tours, so it
// fails with ErrBudgetExceeded instead.
//
// Failure semantics shared by all strategies: n < 2 fails with a sentinel
// wrapping instance.ErrInvalidInput before any work; a deadline already
// past at call time fails with ErrBudgetExceeded immediately.
//
// Tours are open permutations of 0..n−1, implicitly cyclic (the last node
// connects back to the first), canonicalized to start at node 0 with the
// lexicographically smaller orientation so that equal cyclic tours
// compare equal.
//
// Design: strict sentinels only, no logging, no panics on user input, no
// hidden allocations in hot loops, costs stabilized to 1e−9.
package solver
