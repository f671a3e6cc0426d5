package batch

import (
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carlosrod723/TSP-Optimization-Framework/partition"
	"github.com/carlosrod723/TSP-Optimization-Framework/solver"
)

// Process solves every partition in set under the overall budget and
// returns solutions keyed by partition handle.
//
// Budget split: each partition receives a deadline share proportional
// to its node count, scaled up by the effective parallelism (workers
// run concurrently, so wall-clock shares overlap), and clamped to the
// overall deadline. An unlimited budget stays unlimited per partition.
//
// Failure semantics: workers never cancel each other. If any partition
// fails, Process returns the completed map TOGETHER with a *BatchError
// (matching ErrIncompleteBatch) listing the missing handles and causes.
//
// Single-node partitions are answered inline with the trivial tour.
func Process(set *partition.Set, b solver.Budget, solve SolveFunc, opts Options) (map[int]solver.Solution, error) {
	if set == nil || solve == nil {
		return nil, ErrBadOptions
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	var (
		parts   = set.Parts
		total   = set.Source.N()
		workers = opts.Workers
	)
	if workers > len(parts) {
		workers = len(parts)
	}

	var (
		mu        sync.Mutex
		completed = make(map[int]solver.Solution, len(parts))
		causes    = make(map[int]error)
		g         errgroup.Group
	)
	g.SetLimit(workers)

	for pi := range parts {
		part := &parts[pi]

		// Inline answers (singletons, cache hits) land on the caller
		// goroutine while workers for earlier partitions may already be
		// writing `completed`; the same mutex covers both sides.
		if len(part.Nodes) == 1 {
			mu.Lock()
			completed[part.Handle] = solver.Solution{
				Tour:     []int{0},
				Cost:     0,
				Strategy: solver.PartitionMerge,
			}
			mu.Unlock()

			continue
		}

		key := nodesKey(part.Nodes)
		if opts.Cache != nil {
			if sol, ok := opts.Cache.get(key); ok {
				mu.Lock()
				completed[part.Handle] = sol
				mu.Unlock()

				continue
			}
		}

		sub := partBudget(b, len(part.Nodes), total, workers)
		g.Go(func() error {
			sol, solveErr := solve(part.Sub, sub)

			mu.Lock()
			defer mu.Unlock()
			if solveErr != nil {
				causes[part.Handle] = solveErr

				return nil // siblings keep running
			}
			completed[part.Handle] = sol
			if opts.Cache != nil {
				opts.Cache.put(key, sol)
			}

			return nil
		})
	}
	_ = g.Wait()

	if len(completed) < len(parts) {
		missing := make([]int, 0, len(parts)-len(completed))
		for pi := range parts {
			if _, ok := completed[parts[pi].Handle]; !ok {
				missing = append(missing, parts[pi].Handle)
			}
		}

		return completed, &BatchError{Completed: completed, Missing: missing, Causes: causes}
	}

	return completed, nil
}

// partBudget derives one partition's budget from the batch budget:
// share = remaining · (size/total) · parallelism, clamped to the
// overall deadline. The memory ceiling passes through untouched since
// partitions holding dense sub-matrices coexist in one process.
func partBudget(b solver.Budget, size, total, workers int) solver.Budget {
	if b.Unlimited() {
		return b
	}

	share := time.Duration(float64(b.Remaining()) * float64(size) / float64(total) * float64(workers))
	deadline := time.Now().Add(share)
	if deadline.After(b.Deadline) {
		deadline = b.Deadline
	}

	return solver.Budget{
		Deadline:      deadline,
		MemoryCeiling: b.MemoryCeiling,
		CPUCeiling:    b.CPUCeiling,
	}
}
