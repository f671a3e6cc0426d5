// Package selector routes an instance to the right solving pipeline.
//
// Selection is rule-driven and explainable: Select returns a Decision
// naming the primary strategy, the ordered fallback chain, and the
// reason, without doing any solving. Solve executes the decision:
//
//   - n above the direct-solve threshold goes to the partition
//     pipeline (partition.Split, batch.Process, batch.Merge), solving
//     each piece through the selector's own direct chain.
//   - small n with enough time and memory for the Held-Karp table runs
//     exact; otherwise Beam Search when n and the budget allow it;
//     Greedy is the unconditional floor.
//   - leftover budget after the primary strategy funds a Simulated
//     Annealing refinement pass, kept only when it improves the tour.
//
// Fallbacks trigger on budget and resource failures only; invalid-input
// errors abort immediately since no strategy can repair a bad instance.
// Before any solving, the memory optimizer picks a matrix representation
// that fits the budget's ceiling and rewires the instance to it.
package selector
