package selector

import (
	"errors"
	"fmt"

	"github.com/carlosrod723/TSP-Optimization-Framework/batch"
	"github.com/carlosrod723/TSP-Optimization-Framework/instance"
	"github.com/carlosrod723/TSP-Optimization-Framework/memopt"
	"github.com/carlosrod723/TSP-Optimization-Framework/partition"
	"github.com/carlosrod723/TSP-Optimization-Framework/solver"
)

// Solve plans and executes: memory policy, Select, the fallback chain
// (or the partition pipeline), then optional annealing refinement.
//
// Fallback semantics: budget and resource failures advance down the
// chain; instance.ErrInvalidInput aborts immediately. An exhausted
// chain returns the last failure wrapped in ErrNoStrategy.
//
// Errors: instance sentinels, solver.ErrBudgetExceeded,
// memopt.ErrResourceExceeded, batch.ErrIncompleteBatch (partition path),
// ErrNoStrategy.
func (s *Selector) Solve(in *instance.Instance, b solver.Budget) (solver.Solution, error) {
	if in == nil || in.N() < 2 {
		return solver.Solution{}, instance.ErrTooFewNodes
	}
	if b.Expired() {
		return solver.Solution{}, solver.ErrBudgetExceeded
	}

	// Fit the matrix representation to the memory ceiling before any
	// strategy allocates against it.
	if err := s.applyMemoryPolicy(in, b); err != nil {
		return solver.Solution{}, err
	}

	dec, err := s.Select(in, b)
	if err != nil {
		return solver.Solution{}, err
	}

	var sol solver.Solution
	if dec.Partition {
		sol, err = s.solvePartitioned(in, b)
	} else {
		sol, err = s.solveChain(in, b, dec)
	}
	if err != nil {
		return solver.Solution{}, err
	}

	if dec.Refine && b.Remaining() >= s.opts.RefineMin {
		sol = s.refine(in, b, sol)
	}

	return sol, nil
}

// applyMemoryPolicy asks the memory optimizer for a representation that
// fits the ceiling and rewires the instance to it.
func (s *Selector) applyMemoryPolicy(in *instance.Instance, b solver.Budget) error {
	_, hasCoords := in.Coords()
	policy, err := memopt.Advise(in.N(), hasCoords, b.MemoryCeiling, memopt.Options{
		QualityThreshold: s.cfg.Performance.SolutionQualityThreshold,
		SpillDir:         s.opts.SpillDir,
	})
	if err != nil {
		return err
	}

	return in.ApplyPolicy(policy, s.opts.SpillDir)
}

// solveChain walks [Primary, Fallbacks...] until a strategy succeeds.
func (s *Selector) solveChain(in *instance.Instance, b solver.Budget, dec Decision) (solver.Solution, error) {
	chain := append([]solver.ID{dec.Primary}, dec.Fallbacks...)

	var lastErr error
	for _, id := range chain {
		st, err := solver.ByID(id)
		if err != nil {
			return solver.Solution{}, err
		}

		sol, err := st.Solve(in, b, s.opts.Solver)
		if err == nil {
			return sol, nil
		}
		if errors.Is(err, instance.ErrInvalidInput) {
			return solver.Solution{}, err // no strategy can repair bad input
		}
		lastErr = err
	}

	return solver.Solution{}, fmt.Errorf("%w: %w", ErrNoStrategy, lastErr)
}

// solvePartitioned runs split -> batch -> merge. Each partition is
// solved through the direct rule ladder (never recursively through the
// partition path, which guarantees termination even when MaxPartitions
// clamping leaves partitions above the threshold).
func (s *Selector) solvePartitioned(in *instance.Instance, b solver.Budget) (solver.Solution, error) {
	set, err := partition.Split(in, s.cfg.Partitioning, s.opts.Partition)
	if err != nil {
		return solver.Solution{}, err
	}

	solveOne := func(sub *instance.Instance, sb solver.Budget) (solver.Solution, error) {
		return s.solveChain(sub, sb, s.selectDirect(sub.N(), sb))
	}

	results, err := batch.Process(set, b, solveOne, s.opts.Batch)
	if err != nil {
		return solver.Solution{}, err
	}

	return batch.Merge(set, results)
}

// refineStream separates the refinement pass's random stream from the
// primary solve's; both still derive from the one configured seed.
const refineStream = 1

// refine spends the residual budget on an annealing pass seeded with
// the current tour, keeping the result only when it improves.
func (s *Selector) refine(in *instance.Instance, b solver.Budget, sol solver.Solution) solver.Solution {
	an, err := solver.ByID(solver.Annealing)
	if err != nil {
		return sol
	}

	opts := s.opts.Solver
	opts.Seed = solver.DeriveSeed(opts.Seed, refineStream)
	opts.InitialTour = sol.Tour
	refined, err := an.Solve(in, b, opts)
	if err != nil || refined.Cost >= sol.Cost {
		return sol
	}

	return refined
}
