package solver

// Multi-start nearest-neighbor construction (the Greedy strategy).
//
// Each restart grows a tour from a distinct starting node, always moving
// to the closest unvisited node; the shortest of the resulting tours
// wins. Scans are pruned with k-nearest candidate lists and fall back to
// an exhaustive scan when every listed neighbor is already visited, so
// correctness never depends on the index. Ties break toward the smallest
// node index, making the whole strategy deterministic without any RNG.
//
// Budget checkpoints: between restarts (coarse) and every guardInterval
// steps inside a restart (fine). The first restart always runs to
// completion so a valid best-found-so-far tour exists even under a
// near-zero budget.
//
// Complexity: O(n² log n) for the candidate index, then O(n·k) per
// restart with s = min(NumStarts, ⌈√n⌉) restarts.

import (
	"math"
	"sort"
	"time"

	"github.com/carlosrod723/TSP-Optimization-Framework/instance"
)

type greedy struct{}

func (greedy) ID() ID { return Greedy }

func (greedy) Solve(in *instance.Instance, b Budget, opts Options) (Solution, error) {
	started := time.Now()
	if err := guardCommon(in, b); err != nil {
		return Solution{}, err
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return Solution{}, err
	}

	n := in.N()
	if n == 2 {
		return Solution{
			Tour:     []int{0, 1},
			Cost:     round1e9(2 * in.Dist(0, 1)),
			Strategy: Greedy,
			Elapsed:  time.Since(started),
		}, nil
	}

	var (
		lists = neighborLists(in, clampNeighborK(opts.NeighborK, n))
		guard = newGuard(b)
		best  []int
		bestC = math.Inf(1)
	)

	starts := startNodes(n, opts.NumStarts)

	var (
		si   int
		tour []int
		cost float64
	)
	for si = 0; si < len(starts); si++ {
		// The first restart is unconditional; later ones are skipped once
		// the deadline passes (best-found-so-far semantics).
		if si > 0 && guard.hitNow() {
			break
		}
		tour, cost = nearestNeighborFrom(in, starts[si], lists, &guard, si > 0)
		if tour == nil {
			break // aborted mid-restart by the fine-grained checkpoint
		}
		if cost < bestC-opts.Eps {
			bestC = cost
			best = tour
		}
	}

	_ = Canonicalize(best)

	return Solution{
		Tour:     best,
		Cost:     round1e9(bestC),
		Strategy: Greedy,
		Elapsed:  time.Since(started),
	}, nil
}

// clampNeighborK bounds the candidate list length to [4, n−1].
func clampNeighborK(k, n int) int {
	if k < 4 {
		k = 4
	}
	if k > n-1 {
		k = n - 1
	}

	return k
}

// startNodes returns min(cap, ⌈√n⌉) distinct starting nodes spread evenly
// over 0..n−1, so restarts cover the instance rather than cluster.
func startNodes(n, cap int) []int {
	s := int(math.Ceil(math.Sqrt(float64(n))))
	if s > cap {
		s = cap
	}
	if s < 1 {
		s = 1
	}
	if s > n {
		s = n
	}
	out := make([]int, s)

	var i int
	for i = 0; i < s; i++ {
		out[i] = i * n / s
	}

	return out
}

// neighborLists builds, for every node, its k nearest neighbors sorted by
// (distance, index). The index prunes nearest-neighbor scans from O(n)
// to O(k) while the fallback in nearestNeighborFrom keeps correctness.
//
// Complexity: O(n² log n) time, O(n·k) space.
func neighborLists(in *instance.Instance, k int) [][]int32 {
	n := in.N()
	lists := make([][]int32, n)

	var (
		i, j int
		cand []int32
	)
	for i = 0; i < n; i++ {
		cand = make([]int32, 0, n-1)
		for j = 0; j < n; j++ {
			if j != i {
				cand = append(cand, int32(j))
			}
		}
		src := i
		sort.Slice(cand, func(a, b int) bool {
			da := in.Dist(src, int(cand[a]))
			db := in.Dist(src, int(cand[b]))
			if da != db {
				return da < db
			}

			return cand[a] < cand[b] // smallest index on equal distance
		})
		if len(cand) > k {
			cand = cand[:k]
		}
		lists[i] = cand
	}

	return lists
}

// nearestNeighborFrom grows one tour from start. abortable restarts
// return (nil, 0) when the fine-grained checkpoint fires; the caller
// treats that as "deadline hit, keep the best so far".
//
// Complexity: O(n·k) typical, O(n²) worst case via the fallback scan.
func nearestNeighborFrom(in *instance.Instance, start int, lists [][]int32, guard *deadlineGuard, abortable bool) ([]int, float64) {
	var (
		n       = in.N()
		visited = make([]bool, n)
		tour    = make([]int, 1, n)
		cost    float64
		cur     = start
	)
	tour[0] = start
	visited[start] = true

	var (
		step int
		next int
		cand int32
		ci   int
	)
	for step = 1; step < n; step++ {
		if abortable && guard.hit() {
			return nil, 0
		}

		// Pruned scan: first unvisited entry of the candidate list
		// (lists are sorted by distance, then index).
		next = -1
		for ci = 0; ci < len(lists[cur]); ci++ {
			cand = lists[cur][ci]
			if !visited[cand] {
				next = int(cand)
				break
			}
		}
		if next == -1 {
			// Exhaustive fallback: every listed neighbor is visited.
			bestD := math.Inf(1)
			var j int
			for j = 0; j < n; j++ {
				if !visited[j] && in.Dist(cur, j) < bestD {
					bestD = in.Dist(cur, j)
					next = j
				}
			}
		}

		visited[next] = true
		cost += in.Dist(cur, next)
		tour = append(tour, next)
		cur = next
	}
	cost += in.Dist(cur, start) // close the cycle

	return tour, cost
}

// nnTourFrom is the single-restart, index-free nearest-neighbor helper
// used to seed Annealing when no initial tour is supplied.
//
// Complexity: O(n²).
func nnTourFrom(in *instance.Instance, start int) []int {
	var (
		n       = in.N()
		visited = make([]bool, n)
		tour    = make([]int, 1, n)
		cur     = start
	)
	tour[0] = start
	visited[start] = true

	var (
		step int
		next int
		j    int
	)
	for step = 1; step < n; step++ {
		next = -1
		bestD := math.Inf(1)
		for j = 0; j < n; j++ {
			if !visited[j] && in.Dist(cur, j) < bestD {
				bestD = in.Dist(cur, j)
				next = j
			}
		}
		visited[next] = true
		tour = append(tour, next)
		cur = next
	}

	return tour
}
