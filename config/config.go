package config

import (
	"errors"
	"time"
)

// Sentinel errors returned by Validate.
var (
	// ErrBadTimeLimit indicates a non-positive per-category time limit.
	ErrBadTimeLimit = errors.New("config: time limits must be positive")

	// ErrBadResourceLimit indicates a non-positive memory ceiling or a CPU
	// ceiling outside (0,100].
	ErrBadResourceLimit = errors.New("config: resource limits out of range")

	// ErrBadQualityThreshold indicates a quality threshold below 1.0
	// (a ratio over optimal can never be smaller than one).
	ErrBadQualityThreshold = errors.New("config: solution quality threshold must be >= 1")

	// ErrBadSizeBoundaries indicates size categories that are not strictly
	// increasing (small < medium < large).
	ErrBadSizeBoundaries = errors.New("config: size boundaries must be strictly increasing")

	// ErrBadPartitioning indicates inconsistent partitioning parameters.
	ErrBadPartitioning = errors.New("config: invalid partitioning parameters")
)

// TimeLimits holds per-size-category wall-clock limits.
type TimeLimits struct {
	SmallInstance  time.Duration // limit for n <= Sizes.Small
	MediumInstance time.Duration // limit for Sizes.Small < n <= Sizes.Medium
	LargeInstance  time.Duration // limit for n > Sizes.Medium
}

// Resources holds process-level ceilings enforced cooperatively.
type Resources struct {
	MaxMemoryBytes int64   // hard memory ceiling for solver state
	MaxCPUPercent  float64 // advisory CPU ceiling, (0,100]
}

// Performance holds quality/monitoring thresholds.
//
// MinSuccessRate and MaxConsecutiveFailures are consumed by the external
// monitoring collaborator; the core carries them in the snapshot but never
// reads them.
type Performance struct {
	SolutionQualityThreshold float64 // max acceptable cost ratio over optimal, >= 1
	MinSuccessRate           float64 // monitoring only
	MaxConsecutiveFailures   int     // monitoring only
}

// Sizes holds the node-count boundaries between instance categories.
type Sizes struct {
	Small  int // n <= Small  => small instance
	Medium int // n <= Medium => medium instance
	Large  int // informational upper bound for the large category
}

// ClusterStrategy selects the preferred partitioning method for large
// instances. The partition handler may still fall back (spectral on
// imbalance, geometric on cluster-time overrun) regardless of preference.
type ClusterStrategy int

const (
	// ClusterKMeans prefers k-means on coordinates (or an MDS embedding).
	ClusterKMeans ClusterStrategy = iota

	// ClusterSpectral prefers spectral clustering on the distance graph.
	ClusterSpectral

	// ClusterGeometric prefers recursive axis bisection.
	ClusterGeometric
)

// Partitioning holds large-instance parameters.
//
// TargetPartitionSize — not the partition count — is the tunable
// invariant: count = ceil(n/TargetPartitionSize), clamped to
// [1, MaxPartitions], so larger instances get proportionally more
// partitions of roughly constant size. TargetPartitionSize must not
// exceed DirectSolveThreshold: partitions are solved directly, so
// they have to come out at directly solvable sizes.
type Partitioning struct {
	DirectSolveThreshold int             // n above this goes down the partition path
	TargetPartitionSize  int             // desired nodes per partition, <= DirectSolveThreshold
	MaxPartitions        int             // upper clamp on partition count
	Strategy             ClusterStrategy // preferred clustering method
	ImbalanceRatio       float64         // k-means max/ideal size ratio that triggers spectral retry
}

// Config is the immutable configuration snapshot passed into the core.
type Config struct {
	TimeLimits   TimeLimits
	Resources    Resources
	Performance  Performance
	Sizes        Sizes
	Partitioning Partitioning
}

// Default returns the snapshot used when the caller supplies nothing.
// Values mirror the framework's deployment defaults: 1s/5s/30s category
// limits, a 4 GiB memory ceiling, and partitions of ~250 nodes.
func Default() Config {
	return Config{
		TimeLimits: TimeLimits{
			SmallInstance:  1 * time.Second,
			MediumInstance: 5 * time.Second,
			LargeInstance:  30 * time.Second,
		},
		Resources: Resources{
			MaxMemoryBytes: 4 << 30, // 4 GiB
			MaxCPUPercent:  80,
		},
		Performance: Performance{
			SolutionQualityThreshold: 1.3,
			MinSuccessRate:           0.95,
			MaxConsecutiveFailures:   3,
		},
		Sizes: Sizes{
			Small:  20,
			Medium: 100,
			Large:  1000,
		},
		Partitioning: Partitioning{
			DirectSolveThreshold: 250,
			TargetPartitionSize:  250,
			MaxPartitions:        64,
			Strategy:             ClusterKMeans,
			ImbalanceRatio:       2.5,
		},
	}
}

// Validate reports the first inconsistency found in the snapshot.
//
// Complexity: O(1).
func (c Config) Validate() error {
	if c.TimeLimits.SmallInstance <= 0 || c.TimeLimits.MediumInstance <= 0 || c.TimeLimits.LargeInstance <= 0 {
		return ErrBadTimeLimit
	}
	if c.Resources.MaxMemoryBytes <= 0 {
		return ErrBadResourceLimit
	}
	if c.Resources.MaxCPUPercent <= 0 || c.Resources.MaxCPUPercent > 100 {
		return ErrBadResourceLimit
	}
	if c.Performance.SolutionQualityThreshold < 1 {
		return ErrBadQualityThreshold
	}
	if c.Sizes.Small <= 1 || c.Sizes.Medium <= c.Sizes.Small || c.Sizes.Large <= c.Sizes.Medium {
		return ErrBadSizeBoundaries
	}
	if c.Partitioning.DirectSolveThreshold < 2 {
		return ErrBadPartitioning
	}
	if c.Partitioning.TargetPartitionSize < 2 {
		return ErrBadPartitioning
	}
	if c.Partitioning.TargetPartitionSize > c.Partitioning.DirectSolveThreshold {
		return ErrBadPartitioning
	}
	if c.Partitioning.MaxPartitions < 1 {
		return ErrBadPartitioning
	}
	if c.Partitioning.ImbalanceRatio < 1 {
		return ErrBadPartitioning
	}

	return nil
}

// TimeLimitFor maps a node count to its category time limit.
//
// Complexity: O(1).
func (c Config) TimeLimitFor(n int) time.Duration {
	if n <= c.Sizes.Small {
		return c.TimeLimits.SmallInstance
	}
	if n <= c.Sizes.Medium {
		return c.TimeLimits.MediumInstance
	}

	return c.TimeLimits.LargeInstance
}
