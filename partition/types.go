package partition

import (
	"errors"
	"time"

	"github.com/carlosrod723/TSP-Optimization-Framework/instance"
)

// Sentinel errors.
var (
	// ErrBadOptions indicates inconsistent split options.
	ErrBadOptions = errors.New("partition: invalid options")

	// ErrBadCover indicates a partition set that does not cover the
	// source nodes exactly once; surfaced by Set.Validate.
	ErrBadCover = errors.New("partition: node cover broken")
)

// Partition is one solvable piece of a larger instance. Nodes maps the
// sub-instance's local indices back to the source: local node i of Sub is
// global node Nodes[i].
type Partition struct {
	// Handle identifies the partition inside its Set.
	Handle int

	// Nodes are the source-instance node ids, ascending.
	Nodes []int

	// Sub is the re-indexed sub-instance over Nodes.
	Sub *instance.Instance

	// Centroid is the mean coordinate of Nodes when the source carries
	// coordinates; HasCentroid reports whether it is meaningful.
	Centroid    [2]float64
	HasCentroid bool
}

// Set is the result of one Split: a disjoint cover of the source
// instance's nodes.
type Set struct {
	// Source is the instance the set was split from.
	Source *instance.Instance

	// Parts holds the partitions, Handle == index.
	Parts []Partition
}

// Validate checks the disjoint-cover invariant: every source node
// appears in exactly one partition.
//
// Errors: ErrBadCover.
//
// Complexity: O(n).
func (s *Set) Validate() error {
	if s == nil || s.Source == nil {
		return ErrBadCover
	}
	n := s.Source.N()
	seen := make([]bool, n)

	var total int
	for pi := range s.Parts {
		for _, v := range s.Parts[pi].Nodes {
			if v < 0 || v >= n || seen[v] {
				return ErrBadCover
			}
			seen[v] = true
			total++
		}
	}
	if total != n {
		return ErrBadCover
	}

	return nil
}

// Options tunes the split pipeline. Zero values select the defaults.
type Options struct {
	// Seed drives clustering initialization; 0 selects a fixed stream.
	Seed int64

	// ClusterBudget soft-caps the time spent on k-means and spectral
	// attempts before the geometric fallback takes over. 0 = default.
	ClusterBudget time.Duration

	// KMeansIterations caps Lloyd iterations per k-means run.
	KMeansIterations int

	// PowerIterations caps the per-eigenpair power-iteration count used
	// by the MDS embedding and spectral clustering.
	PowerIterations int
}

// DefaultOptions returns the calibrated defaults.
func DefaultOptions() Options {
	return Options{
		Seed:             0,
		ClusterBudget:    2 * time.Second,
		KMeansIterations: 50,
		PowerIterations:  100,
	}
}

func (o Options) withDefaults() (Options, error) {
	d := DefaultOptions()
	if o.ClusterBudget == 0 {
		o.ClusterBudget = d.ClusterBudget
	}
	if o.KMeansIterations == 0 {
		o.KMeansIterations = d.KMeansIterations
	}
	if o.PowerIterations == 0 {
		o.PowerIterations = d.PowerIterations
	}

	if o.ClusterBudget < 0 || o.KMeansIterations < 1 || o.PowerIterations < 1 {
		return o, ErrBadOptions
	}

	return o, nil
}

// PartitionCount applies the target-size invariant: ceil(n/target)
// clamped to [1, min(maxParts, n)].
func PartitionCount(n, target, maxParts int) int {
	if target < 1 {
		target = 1
	}
	count := (n + target - 1) / target
	if count < 1 {
		count = 1
	}
	if maxParts >= 1 && count > maxParts {
		count = maxParts
	}
	if count > n {
		count = n
	}

	return count
}
