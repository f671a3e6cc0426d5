package selector

import (
	"errors"
	"time"

	"github.com/carlosrod723/TSP-Optimization-Framework/batch"
	"github.com/carlosrod723/TSP-Optimization-Framework/config"
	"github.com/carlosrod723/TSP-Optimization-Framework/partition"
	"github.com/carlosrod723/TSP-Optimization-Framework/solver"
)

// Sentinel errors.
var (
	// ErrBadOptions indicates inconsistent selector options.
	ErrBadOptions = errors.New("selector: invalid options")

	// ErrNoStrategy indicates an exhausted fallback chain; it always
	// arrives wrapped around the last strategy failure.
	ErrNoStrategy = errors.New("selector: all strategies failed")
)

// Decision is a solving plan: what to run first, what to retry on
// budget or resource failure, and why. Produced by Select, executed by
// Solve, loggable as-is.
type Decision struct {
	// Primary is the first strategy to run; meaningless when Partition
	// is set.
	Primary solver.ID

	// Fallbacks run in order after a retryable Primary failure.
	Fallbacks []solver.ID

	// Partition routes the instance through split/batch/merge instead
	// of a single direct solve.
	Partition bool

	// Refine schedules an annealing pass over the residual budget.
	Refine bool

	// Reason is a short human-readable justification.
	Reason string
}

// Options tunes selection thresholds and passes through the options of
// the downstream packages. Zero values select the defaults.
type Options struct {
	// Solver, Partition, Batch are forwarded to the respective packages.
	Solver    solver.Options
	Partition partition.Options
	Batch     batch.Options

	// ExactCutoff is the largest n considered for Held-Karp.
	ExactCutoff int

	// BeamSizeLimit is the largest n considered for Beam Search.
	BeamSizeLimit int

	// BudgetSafety discounts the remaining budget when comparing against
	// run-time estimates, absorbing estimate error. In (0, 1].
	BudgetSafety float64

	// GreedyTimePerNode and BeamTimePerNode are the per-node wall-time
	// estimates behind the budget checks.
	GreedyTimePerNode time.Duration
	BeamTimePerNode   time.Duration

	// RefineMin is the smallest residual budget worth spending on an
	// annealing pass.
	RefineMin time.Duration

	// DisableRefine switches the annealing pass off entirely.
	DisableRefine bool

	// SpillDir, when set, lets the memory optimizer spill the distance
	// matrix to a temp file under this directory as a last resort.
	SpillDir string
}

// DefaultOptions returns the calibrated defaults: exact solving up to
// n=15, beam up to n=50, a 0.8 budget safety factor, and a 100 ms
// refinement floor.
func DefaultOptions() Options {
	return Options{
		ExactCutoff:       15,
		BeamSizeLimit:     50,
		BudgetSafety:      0.8,
		GreedyTimePerNode: time.Millisecond,
		BeamTimePerNode:   50 * time.Millisecond,
		RefineMin:         100 * time.Millisecond,
	}
}

func (o Options) withDefaults() (Options, error) {
	d := DefaultOptions()
	if o.ExactCutoff == 0 {
		o.ExactCutoff = d.ExactCutoff
	}
	if o.BeamSizeLimit == 0 {
		o.BeamSizeLimit = d.BeamSizeLimit
	}
	if o.BudgetSafety == 0 {
		o.BudgetSafety = d.BudgetSafety
	}
	if o.GreedyTimePerNode == 0 {
		o.GreedyTimePerNode = d.GreedyTimePerNode
	}
	if o.BeamTimePerNode == 0 {
		o.BeamTimePerNode = d.BeamTimePerNode
	}
	if o.RefineMin == 0 {
		o.RefineMin = d.RefineMin
	}

	if o.ExactCutoff < 2 || o.BeamSizeLimit < 2 {
		return o, ErrBadOptions
	}
	if o.BudgetSafety <= 0 || o.BudgetSafety > 1 {
		return o, ErrBadOptions
	}
	if o.GreedyTimePerNode < 0 || o.BeamTimePerNode < 0 || o.RefineMin < 0 {
		return o, ErrBadOptions
	}

	return o, nil
}

// Selector binds a configuration snapshot to the selection rules.
type Selector struct {
	cfg  config.Config
	opts Options
}

// New validates cfg and opts and returns a ready Selector.
func New(cfg config.Config, opts Options) (*Selector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	return &Selector{cfg: cfg, opts: opts}, nil
}

// BudgetFor derives a budget from the configuration's size-tiered time
// limits and memory ceiling; the conventional way to call Solve when
// the caller has no budget of its own.
func (s *Selector) BudgetFor(n int) solver.Budget {
	return solver.NewBudget(s.cfg.TimeLimitFor(n), s.cfg.Resources.MaxMemoryBytes)
}
