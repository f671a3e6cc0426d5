package solver

// Held–Karp exact dynamic program over vertex subsets.
//
// dp[mask][v] is the cheapest cost of a path that starts at node 0,
// visits exactly the nodes in mask, and ends at v. Masks are processed
// in increasing popcount order; the answer closes the cycle with the
// v→0 edge. The strategy is all-or-nothing: it either returns the
// provably optimal tour or fails with ErrBudgetExceeded /
// ErrResourceExceeded, never a partial result.
//
// Complexity: O(n²·2ⁿ) time, O(n·2ⁿ) space. Practical ceiling is around
// n = 25 at 4 GiB; the selector keeps it on much smaller instances.

import (
	"math"
	"math/bits"
	"time"

	"github.com/carlosrod723/TSP-Optimization-Framework/instance"
	"github.com/carlosrod723/TSP-Optimization-Framework/memopt"
)

type heldKarp struct{}

func (heldKarp) ID() ID { return HeldKarp }

// heldKarpHardCap is the dimension beyond which the 2ⁿ table cannot be
// addressed sensibly on any realistic machine.
const heldKarpHardCap = 31

// HeldKarpBytes estimates the table footprint for an n-node instance:
// 2ⁿ·n float64 costs plus 2ⁿ·n int32 parent links.
func HeldKarpBytes(n int) int64 {
	if n <= 1 || n > heldKarpHardCap {
		return math.MaxInt64
	}

	return int64(1<<uint(n)) * int64(n) * 12
}

// HeldKarpTime is a coarse wall-time estimate for the DP, used by the
// selector to refuse runs that cannot finish inside the budget. The
// per-transition constant is calibrated for commodity hardware.
func HeldKarpTime(n int) time.Duration {
	if n <= 1 || n > heldKarpHardCap {
		return time.Duration(1<<62 - 1)
	}
	transitions := float64(int64(1)<<uint(n)) * float64(n) * float64(n)

	return time.Duration(transitions * 2.5) // ~2.5ns per transition
}

func (heldKarp) Solve(in *instance.Instance, b Budget, opts Options) (Solution, error) {
	started := time.Now()
	if err := guardCommon(in, b); err != nil {
		return Solution{}, err
	}
	if _, err := opts.withDefaults(); err != nil {
		return Solution{}, err
	}

	n := in.N()
	if n > heldKarpHardCap {
		return Solution{}, memopt.ErrResourceExceeded
	}
	if b.MemoryCeiling > 0 && HeldKarpBytes(n) > b.MemoryCeiling {
		return Solution{}, memopt.ErrResourceExceeded
	}
	if n == 2 {
		return Solution{
			Tour:     []int{0, 1},
			Cost:     round1e9(2 * in.Dist(0, 1)),
			Strategy: HeldKarp,
			Elapsed:  time.Since(started),
		}, nil
	}

	var (
		size   = 1 << uint(n)
		dp     = make([]float64, size*n) // dp[mask*n+v]
		parent = make([]int32, size*n)
		w      = prefetchWeights(in)
		guard  = newGuard(b)
	)
	var i int
	for i = range dp {
		dp[i] = math.Inf(1)
		parent[i] = -1
	}
	dp[1*n+0] = 0 // path {0} ending at 0

	// Masks grouped by popcount so every transition reads finished states.
	groups := masksByPopcount(n)

	var (
		pc, gi      int
		mask        int
		last, next  int
		base, nbase int
		cand        float64
	)
	for pc = 2; pc <= n; pc++ {
		// Coarse checkpoint per tier; the DP cannot resume once abandoned.
		if guard.hitNow() {
			return Solution{}, ErrBudgetExceeded
		}
		for gi = 0; gi < len(groups[pc]); gi++ {
			mask = groups[pc][gi]
			if mask&1 == 0 {
				continue // every path starts at node 0
			}
			if guard.hit() {
				return Solution{}, ErrBudgetExceeded
			}
			base = mask * n
			for last = 1; last < n; last++ {
				if mask&(1<<uint(last)) == 0 {
					continue
				}
				nbase = (mask ^ (1 << uint(last))) * n
				best := math.Inf(1)
				var bestPrev int32 = -1
				for next = 0; next < n; next++ {
					if (mask^(1<<uint(last)))&(1<<uint(next)) == 0 {
						continue
					}
					if math.IsInf(dp[nbase+next], 0) {
						continue
					}
					cand = dp[nbase+next] + w[next*n+last]
					if cand < best {
						best = cand
						bestPrev = int32(next)
					}
				}
				dp[base+last] = best
				parent[base+last] = bestPrev
			}
		}
	}

	// Close the cycle: full mask, best v→0 edge.
	var (
		full  = size - 1
		fbase = full * n
		bestC = math.Inf(1)
		bestV = -1
		v     int
	)
	for v = 1; v < n; v++ {
		if math.IsInf(dp[fbase+v], 0) {
			continue
		}
		cand = dp[fbase+v] + w[v*n+0]
		if cand < bestC {
			bestC = cand
			bestV = v
		}
	}
	if bestV < 0 {
		return Solution{}, ErrInvalidTour
	}

	tour := reconstructPath(parent, n, full, bestV)
	_ = Canonicalize(tour)

	return Solution{
		Tour:     tour,
		Cost:     round1e9(bestC),
		Strategy: HeldKarp,
		Elapsed:  time.Since(started),
	}, nil
}

// prefetchWeights copies the full matrix into a flat buffer so the inner
// DP loop never pays provider-call overhead (on-the-fly or spill-backed
// instances in particular).
func prefetchWeights(in *instance.Instance) []float64 {
	n := in.N()
	w := make([]float64, n*n)

	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			w[i*n+j] = in.Dist(i, j)
		}
	}

	return w
}

// masksByPopcount buckets all 2ⁿ masks by their set-bit count so the DP
// can iterate tiers in order.
func masksByPopcount(n int) [][]int {
	groups := make([][]int, n+1)

	var mask int
	for mask = 0; mask < 1<<uint(n); mask++ {
		pc := bits.OnesCount(uint(mask))
		if pc <= n {
			groups[pc] = append(groups[pc], mask)
		}
	}

	return groups
}

// reconstructPath walks parent links back from (full, last) to node 0 and
// returns the forward tour.
func reconstructPath(parent []int32, n, mask, last int) []int {
	tour := make([]int, 0, n)

	for last != -1 {
		tour = append(tour, last)
		p := parent[mask*n+last]
		mask ^= 1 << uint(last)
		last = int(p)
	}
	// Walked end→start; flip to forward order.
	for i, j := 0, len(tour)-1; i < j; i, j = i+1, j-1 {
		tour[i], tour[j] = tour[j], tour[i]
	}

	return tour
}
