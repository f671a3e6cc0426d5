package partition

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/carlosrod723/TSP-Optimization-Framework/config"
	"github.com/carlosrod723/TSP-Optimization-Framework/instance"
)

// Dense n×n scratch matrices back both MDS and spectral clustering;
// above this node count they are skipped in favor of the geometric path.
const denseClusterCap = 2000

// Split partitions in into ceil(n/TargetPartitionSize) pieces (clamped
// to [1, MaxPartitions]) using the configured clustering strategy, with
// the imbalance-triggered retry and geometric fallback described in the
// package comment.
//
// Errors: ErrBadOptions, plus instance errors from sub-instance
// construction.
//
// Complexity: clustering-dependent; the geometric floor is O(n log n).
func Split(in *instance.Instance, p config.Partitioning, opts Options) (*Set, error) {
	if in == nil || in.N() < 1 {
		return nil, instance.ErrTooFewNodes
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	n := in.N()
	count := PartitionCount(n, p.TargetPartitionSize, p.MaxPartitions)
	if count == 1 {
		return buildSet(in, [][]int{identityNodes(n)})
	}

	var (
		started    = time.Now()
		rng        = rngFor(opts.Seed)
		overBudget = func() bool { return time.Since(started) > opts.ClusterBudget }
	)

	// Coordinates: native, or an MDS embedding for matrix-only sources.
	coords, hasCoords := in.Coords()
	if !hasCoords && n <= denseClusterCap && p.Strategy != config.ClusterGeometric && !overBudget() {
		coords = mdsEmbed(in, opts.PowerIterations, rng)
		hasCoords = true
	}

	groups := clusterGroups(in, p, opts, coords, hasCoords, count, rng, overBudget)

	return buildSet(in, groups)
}

// clusterGroups runs the strategy ladder and returns a disjoint cover of
// the node set with at most count groups.
func clusterGroups(
	in *instance.Instance,
	p config.Partitioning,
	opts Options,
	coords [][2]float64,
	hasCoords bool,
	count int,
	rng *rand.Rand,
	overBudget func() bool,
) [][]int {
	n := in.N()

	geometric := func() [][]int {
		if hasCoords {
			return axisBisect(coords, count)
		}

		return contiguousChunks(n, count)
	}

	tryKMeans := func() ([][]int, bool) {
		if !hasCoords || overBudget() {
			return nil, false
		}
		points := make([][]float64, n)
		for i := 0; i < n; i++ {
			points[i] = []float64{coords[i][0], coords[i][1]}
		}
		g := labelsToGroups(kMeans(points, count, opts.KMeansIterations, rng), count)

		return g, !imbalanced(g, n, count, p.ImbalanceRatio)
	}

	trySpectral := func() ([][]int, bool) {
		if n > denseClusterCap || overBudget() {
			return nil, false
		}
		g := labelsToGroups(spectralLabels(in, count, opts.PowerIterations, opts.KMeansIterations, rng), count)

		return g, !imbalanced(g, n, count, p.ImbalanceRatio)
	}

	var first, second func() ([][]int, bool)
	switch p.Strategy {
	case config.ClusterSpectral:
		first, second = trySpectral, tryKMeans
	case config.ClusterGeometric:
		return geometric()
	default: // config.ClusterKMeans
		first, second = tryKMeans, trySpectral
	}

	if g, ok := first(); ok {
		return g
	}
	if g, ok := second(); ok {
		return g
	}

	return geometric()
}

// imbalanced reports whether the largest group exceeds ratio times the
// ideal even share, or whether any group vanished entirely.
func imbalanced(groups [][]int, n, count int, ratio float64) bool {
	if len(groups) < count {
		return true
	}
	if ratio <= 0 {
		ratio = 1
	}
	ideal := float64(n) / float64(count)

	for _, g := range groups {
		if len(g) == 0 {
			return true
		}
		if float64(len(g)) > ratio*math.Max(ideal, 1) {
			return true
		}
	}

	return false
}

// labelsToGroups inverts a label vector into per-cluster node lists,
// dropping empty clusters.
func labelsToGroups(labels []int, k int) [][]int {
	groups := make([][]int, k)
	for v, c := range labels {
		if c >= 0 && c < k {
			groups[c] = append(groups[c], v)
		}
	}

	out := groups[:0]
	for _, g := range groups {
		if len(g) > 0 {
			out = append(out, g)
		}
	}

	return out
}

// buildSet materializes the partitions: ascending node lists,
// sub-instances via Instance.Sub, centroids when the source has
// coordinates. Validates the cover before returning.
func buildSet(in *instance.Instance, groups [][]int) (*Set, error) {
	coords, hasCoords := in.Coords()
	set := &Set{Source: in, Parts: make([]Partition, 0, len(groups))}

	for _, nodes := range groups {
		if len(nodes) == 0 {
			continue
		}
		sort.Ints(nodes)
		sub, err := in.Sub(nodes)
		if err != nil {
			return nil, err
		}

		part := Partition{
			Handle: len(set.Parts),
			Nodes:  nodes,
			Sub:    sub,
		}
		if hasCoords {
			var cx, cy float64
			for _, v := range nodes {
				cx += coords[v][0]
				cy += coords[v][1]
			}
			part.Centroid = [2]float64{cx / float64(len(nodes)), cy / float64(len(nodes))}
			part.HasCentroid = true
		}
		set.Parts = append(set.Parts, part)
	}

	if err := set.Validate(); err != nil {
		return nil, err
	}

	return set, nil
}

func identityNodes(n int) []int {
	nodes := make([]int, n)
	for i := range nodes {
		nodes[i] = i
	}

	return nodes
}

// rngFor mirrors the solver package's seed policy: 0 selects a fixed
// stream so splits are reproducible by default.
func rngFor(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}

	return rand.New(rand.NewSource(seed))
}
