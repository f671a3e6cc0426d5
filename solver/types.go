package solver

import (
	"errors"
	"time"

	"github.com/carlosrod723/TSP-Optimization-Framework/instance"
)

// Sentinel errors.
var (
	// ErrBudgetExceeded indicates a deadline already past at call time, or
	// Held–Karp abandoned mid-search. The selector's fallback chain
	// retries the next-ranked strategy on this error.
	ErrBudgetExceeded = errors.New("solver: budget exceeded")

	// ErrUnknownStrategy indicates an ID outside the closed enumeration.
	ErrUnknownStrategy = errors.New("solver: unknown strategy")

	// ErrBadOptions indicates internally inconsistent Options (negative
	// epsilon, non-positive cooling rate, beam widths out of order, …).
	ErrBadOptions = errors.New("solver: invalid options")

	// ErrInvalidTour indicates a tour that is not a permutation of the
	// instance's nodes (caller-supplied initial tours, merge inputs).
	ErrInvalidTour = errors.New("solver: tour is not a valid permutation")
)

// ID identifies a strategy. The enumeration is closed: the selector
// produces ordered lists of these values rather than reflecting over
// implementations.
type ID int

const (
	// Greedy is multi-start nearest-neighbor construction.
	Greedy ID = iota

	// HeldKarp is the exact bitmask dynamic program.
	HeldKarp

	// BeamSearch is bounded-width look-ahead construction.
	BeamSearch

	// Annealing is simulated annealing refinement.
	Annealing

	// PartitionMerge marks a Solution assembled by the partition/batch
	// pipeline rather than by a single strategy.
	PartitionMerge
)

// String implements fmt.Stringer for diagnostics and test output.
func (id ID) String() string {
	switch id {
	case Greedy:
		return "greedy"
	case HeldKarp:
		return "held-karp"
	case BeamSearch:
		return "beam-search"
	case Annealing:
		return "annealing"
	case PartitionMerge:
		return "partition-merge"
	default:
		return "unknown"
	}
}

// Budget is a deadline plus resource ceiling attached to one solve
// invocation. A zero Deadline means unlimited time. Strategies honor the
// budget cooperatively: they check it at algorithm-defined checkpoints,
// never via preemption, so observed timeouts are approximate within
// checkpoint granularity.
type Budget struct {
	Deadline      time.Time // absolute; zero = unlimited
	MemoryCeiling int64     // bytes; <= 0 = unlimited
	CPUCeiling    float64   // advisory percent; 0 = unlimited
}

// NewBudget builds a Budget whose deadline is limit from now.
// limit <= 0 yields an unlimited deadline.
func NewBudget(limit time.Duration, memCeiling int64) Budget {
	var d time.Time
	if limit > 0 {
		d = time.Now().Add(limit)
	}

	return Budget{Deadline: d, MemoryCeiling: memCeiling}
}

// Unlimited reports whether the budget carries no deadline.
func (b Budget) Unlimited() bool { return b.Deadline.IsZero() }

// Expired reports whether the deadline has passed.
func (b Budget) Expired() bool {
	return !b.Deadline.IsZero() && !time.Now().Before(b.Deadline)
}

// Remaining returns the time left until the deadline; a very large
// duration when unlimited, zero when already expired.
func (b Budget) Remaining() time.Duration {
	if b.Deadline.IsZero() {
		return time.Duration(1<<62 - 1)
	}
	r := time.Until(b.Deadline)
	if r < 0 {
		return 0
	}

	return r
}

// Solution is the outcome of one solve: a tour, its total cyclic
// distance, the strategy that produced it, and the elapsed compute time.
// Immutable once returned; the caller owns it.
type Solution struct {
	Tour     []int
	Cost     float64
	Strategy ID
	Elapsed  time.Duration
}

// Strategy is the capability contract every solver variant implements.
type Strategy interface {
	// ID returns the variant's identifier.
	ID() ID

	// Solve produces a Solution for in under the budget. Deterministic
	// for a fixed opts.Seed.
	Solve(in *instance.Instance, b Budget, opts Options) (Solution, error)
}

// ByID maps an ID to its (stateless) implementation.
// PartitionMerge has no direct strategy and yields ErrUnknownStrategy.
func ByID(id ID) (Strategy, error) {
	switch id {
	case Greedy:
		return greedy{}, nil
	case HeldKarp:
		return heldKarp{}, nil
	case BeamSearch:
		return beam{}, nil
	case Annealing:
		return anneal{}, nil
	default:
		return nil, ErrUnknownStrategy
	}
}

// DefaultEps is the strict improvement tolerance: a move is accepted when
// its delta is below −DefaultEps.
const DefaultEps = 1e-12

// Options configures the strategies. Zero values mean "use the default";
// DefaultOptions spells the defaults out.
type Options struct {
	// Seed drives every random stream; 0 selects a fixed default stream,
	// keeping all runs reproducible by default.
	Seed int64

	// Eps is the improvement tolerance (Δ < −Eps accepts). Negative is
	// rejected with ErrBadOptions.
	Eps float64

	// NumStarts caps Greedy's multi-start count. The effective count is
	// min(NumStarts, ceil(sqrt(n))), so it scales with n.
	NumStarts int

	// NeighborK is the k-nearest candidate list length for Greedy's
	// pruned scans; clamped to [4, n−1].
	NeighborK int

	// MinBeamWidth / MaxBeamWidth bound BeamSearch's adaptive width.
	MinBeamWidth int
	MaxBeamWidth int

	// InitialTemp, CoolingRate, MinTemp parameterize Annealing's
	// geometric cooling schedule T ← T·CoolingRate.
	InitialTemp float64
	CoolingRate float64
	MinTemp     float64

	// MaxIterations caps Annealing's proposal count.
	MaxIterations int

	// MaxNoImprove is the consecutive non-improving proposal streak that,
	// combined with T < MinTemp, terminates Annealing early.
	MaxNoImprove int

	// InitialTour seeds Annealing; nil falls back to a nearest-neighbor
	// tour from node 0. Must be a permutation of 0..n−1 when set.
	InitialTour []int
}

// DefaultOptions returns the calibrated defaults: 15 starts, k=12
// neighbor lists, beam widths 3..10, T₀=1000 cooled by 0.995 down to
// 1e−8 over at most 10000 iterations with a 300-proposal stall window.
func DefaultOptions() Options {
	return Options{
		Seed:          0,
		Eps:           DefaultEps,
		NumStarts:     15,
		NeighborK:     12,
		MinBeamWidth:  3,
		MaxBeamWidth:  10,
		InitialTemp:   1000,
		CoolingRate:   0.995,
		MinTemp:       1e-8,
		MaxIterations: 10000,
		MaxNoImprove:  300,
	}
}

// withDefaults fills zero fields and validates signs/orderings.
func (o Options) withDefaults() (Options, error) {
	d := DefaultOptions()
	if o.Eps == 0 {
		o.Eps = d.Eps
	}
	if o.NumStarts == 0 {
		o.NumStarts = d.NumStarts
	}
	if o.NeighborK == 0 {
		o.NeighborK = d.NeighborK
	}
	if o.MinBeamWidth == 0 {
		o.MinBeamWidth = d.MinBeamWidth
	}
	if o.MaxBeamWidth == 0 {
		o.MaxBeamWidth = d.MaxBeamWidth
	}
	if o.InitialTemp == 0 {
		o.InitialTemp = d.InitialTemp
	}
	if o.CoolingRate == 0 {
		o.CoolingRate = d.CoolingRate
	}
	if o.MinTemp == 0 {
		o.MinTemp = d.MinTemp
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = d.MaxIterations
	}
	if o.MaxNoImprove == 0 {
		o.MaxNoImprove = d.MaxNoImprove
	}

	if o.Eps < 0 || o.NumStarts < 1 || o.NeighborK < 1 {
		return o, ErrBadOptions
	}
	if o.MinBeamWidth < 1 || o.MaxBeamWidth < o.MinBeamWidth {
		return o, ErrBadOptions
	}
	if o.InitialTemp <= 0 || o.CoolingRate <= 0 || o.CoolingRate >= 1 || o.MinTemp <= 0 {
		return o, ErrBadOptions
	}
	if o.MaxIterations < 1 || o.MaxNoImprove < 1 {
		return o, ErrBadOptions
	}

	return o, nil
}

// guardInterval throttles deadline checks in hot loops: the wall clock is
// read once per this many steps, keeping checkpoint overhead negligible.
const guardInterval = 2048

// deadlineGuard implements the cooperative budget checkpoints shared by
// every strategy.
type deadlineGuard struct {
	deadline time.Time
	active   bool
	step     int
}

func newGuard(b Budget) deadlineGuard {
	return deadlineGuard{deadline: b.Deadline, active: !b.Deadline.IsZero()}
}

// hit reports deadline expiry, consulting the clock every guardInterval
// calls.
func (g *deadlineGuard) hit() bool {
	if !g.active {
		return false
	}
	g.step++
	if g.step&(guardInterval-1) != 0 {
		return false
	}

	return !time.Now().Before(g.deadline)
}

// hitNow reports deadline expiry without throttling; used at coarse
// checkpoints (per restart, per DP tier, per beam expansion).
func (g *deadlineGuard) hitNow() bool {
	return g.active && !time.Now().Before(g.deadline)
}

// guardCommon maps the shared n<2 precondition to the instance sentinel
// so every strategy fails identically before any work.
func guardCommon(in *instance.Instance, b Budget) error {
	if in == nil || in.N() < 2 {
		return instance.ErrTooFewNodes
	}
	if b.Expired() {
		return ErrBudgetExceeded
	}

	return nil
}
