package batch

import (
	"math"
	"time"

	"github.com/carlosrod723/TSP-Optimization-Framework/instance"
	"github.com/carlosrod723/TSP-Optimization-Framework/partition"
	"github.com/carlosrod723/TSP-Optimization-Framework/solver"
)

// Merge assembles one tour over the source instance from per-partition
// solutions.
//
// Ordering: partitions are visited starting from the largest, then
// repeatedly hopping to the nearest unvisited partition by centroid
// distance (first-node distance when centroids are unavailable).
//
// Splicing: each partition's tour is cyclic, so it can be entered at
// any node and walked in either direction. The splice picks the entry
// node and direction minimizing the edge from the merged tour's current
// tail, then appends the partition's full cycle from there.
//
// Errors: ErrMissingResult (wrapped handle missing from results),
// solver.ErrInvalidTour when a partition solution does not cover its
// sub-instance.
//
// Complexity: O(p²) ordering over p partitions plus O(n) splicing.
func Merge(set *partition.Set, results map[int]solver.Solution) (solver.Solution, error) {
	started := time.Now()
	if set == nil || set.Validate() != nil {
		return solver.Solution{}, partition.ErrBadCover
	}

	// Pre-validate and globalize every partition tour.
	global := make(map[int][]int, len(set.Parts))
	for pi := range set.Parts {
		part := &set.Parts[pi]
		sol, ok := results[part.Handle]
		if !ok {
			return solver.Solution{}, ErrMissingResult
		}
		if err := solver.ValidatePermutation(sol.Tour, len(part.Nodes)); err != nil {
			return solver.Solution{}, err
		}
		g := make([]int, len(sol.Tour))
		for i, local := range sol.Tour {
			g[i] = part.Nodes[local]
		}
		global[part.Handle] = g
	}

	order := visitOrder(set)

	tour := make([]int, 0, set.Source.N())
	for _, h := range order {
		tour = spliceCycle(set.Source, tour, global[h])
	}

	if err := solver.ValidatePermutation(tour, set.Source.N()); err != nil {
		return solver.Solution{}, err
	}
	cost, err := solver.TourCost(set.Source, tour)
	if err != nil {
		return solver.Solution{}, err
	}

	return solver.Solution{
		Tour:     tour,
		Cost:     cost,
		Strategy: solver.PartitionMerge,
		Elapsed:  time.Since(started),
	}, nil
}

// visitOrder chains partition handles greedily by proximity, starting
// from the largest partition.
func visitOrder(set *partition.Set) []int {
	p := len(set.Parts)
	order := make([]int, 0, p)
	used := make([]bool, p)

	cur := 0
	for i := 1; i < p; i++ {
		if len(set.Parts[i].Nodes) > len(set.Parts[cur].Nodes) {
			cur = i
		}
	}
	order = append(order, set.Parts[cur].Handle)
	used[cur] = true

	for len(order) < p {
		next, bestD := -1, math.Inf(1)
		for i := 0; i < p; i++ {
			if used[i] {
				continue
			}
			d := partDistance(set, cur, i)
			if d < bestD {
				bestD = d
				next = i
			}
		}
		order = append(order, set.Parts[next].Handle)
		used[next] = true
		cur = next
	}

	return order
}

// partDistance is centroid distance when both sides carry centroids,
// else the source-instance distance between the partitions' first nodes.
func partDistance(set *partition.Set, a, b int) float64 {
	pa, pb := &set.Parts[a], &set.Parts[b]
	if pa.HasCentroid && pb.HasCentroid {
		dx := pa.Centroid[0] - pb.Centroid[0]
		dy := pa.Centroid[1] - pb.Centroid[1]

		return math.Sqrt(dx*dx + dy*dy)
	}

	return set.Source.Dist(pa.Nodes[0], pb.Nodes[0])
}

// spliceCycle appends the cyclic tour next onto tour, entering next at
// the node (and direction) closest to tour's tail. An empty tour takes
// next verbatim.
func spliceCycle(src *instance.Instance, tour, next []int) []int {
	if len(tour) == 0 {
		return append(tour, next...)
	}

	var (
		tail  = tour[len(tour)-1]
		n     = len(next)
		entry = 0
		fwd   = true
		bestD = math.Inf(1)
	)
	for i := 0; i < n; i++ {
		if d := src.Dist(tail, next[i]); d < bestD {
			bestD = d
			entry = i
		}
	}
	// Direction choice: compare the second edge of each walk so the
	// cycle unrolls along its cheaper side.
	if n > 1 {
		fwdNext := next[(entry+1)%n]
		revNext := next[(entry-1+n)%n]
		fwd = src.Dist(next[entry], fwdNext) <= src.Dist(next[entry], revNext)
	}

	for k := 0; k < n; k++ {
		var idx int
		if fwd {
			idx = (entry + k) % n
		} else {
			idx = (entry - k + n) % n
		}
		tour = append(tour, next[idx])
	}

	return tour
}
