package selector

import (
	"time"

	"github.com/carlosrod723/TSP-Optimization-Framework/instance"
	"github.com/carlosrod723/TSP-Optimization-Framework/solver"
)

// Select builds the solving plan for in under b without solving
// anything. The rules, in priority order:
//
//  1. n > DirectSolveThreshold           -> partition pipeline
//  2. n <= ExactCutoff, table fits the memory ceiling, and the DP time
//     estimate fits the discounted budget -> Held-Karp, falling back to
//     Beam Search (when eligible) then Greedy
//  3. n <= BeamSizeLimit and the beam estimate fits -> Beam Search,
//     falling back to Greedy
//  4. otherwise                           -> Greedy alone
//
// Refine is set when the residual budget after the primary estimate
// clears RefineMin (and refinement is not disabled).
//
// Errors: instance.ErrTooFewNodes for nil or sub-2 instances.
func (s *Selector) Select(in *instance.Instance, b solver.Budget) (Decision, error) {
	if in == nil || in.N() < 2 {
		return Decision{}, instance.ErrTooFewNodes
	}

	n := in.N()
	if n > s.cfg.Partitioning.DirectSolveThreshold {
		return Decision{
			Partition: true,
			Refine:    s.refinable(b, 0),
			Reason:    "above direct-solve threshold",
		}, nil
	}

	return s.selectDirect(n, b), nil
}

// selectDirect is the non-partition rule ladder, shared by Select and
// the per-partition solves.
func (s *Selector) selectDirect(n int, b solver.Budget) Decision {
	var (
		usable = s.usableBudget(b)
		opts   = s.opts
	)

	if n <= opts.ExactCutoff && s.tableFits(n, b) && solver.HeldKarpTime(n) <= usable {
		d := Decision{
			Primary: solver.HeldKarp,
			Reason:  "exact table fits time and memory budget",
		}
		if n <= opts.BeamSizeLimit {
			d.Fallbacks = []solver.ID{solver.BeamSearch, solver.Greedy}
		} else {
			d.Fallbacks = []solver.ID{solver.Greedy}
		}
		d.Refine = s.refinable(b, solver.HeldKarpTime(n))

		return d
	}

	if beamEst := time.Duration(n) * opts.BeamTimePerNode; n <= opts.BeamSizeLimit && beamEst <= usable {
		return Decision{
			Primary:   solver.BeamSearch,
			Fallbacks: []solver.ID{solver.Greedy},
			Refine:    s.refinable(b, beamEst),
			Reason:    "beam search fits the budget",
		}
	}

	return Decision{
		Primary: solver.Greedy,
		Refine:  s.refinable(b, time.Duration(n)*opts.GreedyTimePerNode),
		Reason:  "greedy floor",
	}
}

// usableBudget is the remaining budget discounted by the safety factor.
func (s *Selector) usableBudget(b solver.Budget) time.Duration {
	if b.Unlimited() {
		return time.Duration(1<<62 - 1)
	}

	return time.Duration(float64(b.Remaining()) * s.opts.BudgetSafety)
}

// tableFits reports whether the Held-Karp table fits the memory ceiling
// (no ceiling = always fits).
func (s *Selector) tableFits(n int, b solver.Budget) bool {
	if b.MemoryCeiling <= 0 {
		return true
	}

	return solver.HeldKarpBytes(n) <= b.MemoryCeiling
}

// refinable reports whether the budget left after spending est still
// clears the refinement floor.
func (s *Selector) refinable(b solver.Budget, est time.Duration) bool {
	if s.opts.DisableRefine {
		return false
	}
	if b.Unlimited() {
		return true
	}
	rem := b.Remaining()
	if rem <= est {
		return false
	}

	return rem-est >= s.opts.RefineMin
}
