package instance

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is the umbrella sentinel for every malformed-input
// failure in this package. The granular sentinels below wrap it, so
// errors.Is(err, ErrInvalidInput) matches all of them.
var ErrInvalidInput = errors.New("instance: invalid input")

// Granular validation sentinels. Each wraps ErrInvalidInput.
var (
	// ErrNonSquare indicates a distance matrix whose row lengths do not
	// all equal the number of rows.
	ErrNonSquare = fmt.Errorf("instance: non-square distance matrix: %w", ErrInvalidInput)

	// ErrTooFewNodes indicates n < 2; a tour needs at least two nodes.
	ErrTooFewNodes = fmt.Errorf("instance: need at least 2 nodes: %w", ErrInvalidInput)

	// ErrNonFinite indicates a NaN or ±Inf entry in the matrix or in a
	// coordinate pair.
	ErrNonFinite = fmt.Errorf("instance: NaN or infinite entry: %w", ErrInvalidInput)

	// ErrNegativeDistance indicates a negative off-diagonal entry.
	ErrNegativeDistance = fmt.Errorf("instance: negative distance: %w", ErrInvalidInput)

	// ErrNonZeroDiagonal indicates |d(i,i)| above tolerance.
	ErrNonZeroDiagonal = fmt.Errorf("instance: non-zero diagonal: %w", ErrInvalidInput)

	// ErrAsymmetric indicates |d(i,j) − d(j,i)| above tolerance.
	ErrAsymmetric = fmt.Errorf("instance: asymmetric distance matrix: %w", ErrInvalidInput)

	// ErrBadNodeSet indicates an out-of-range or duplicated node index in
	// a Sub request.
	ErrBadNodeSet = fmt.Errorf("instance: invalid node subset: %w", ErrInvalidInput)
)

// ErrNoCoordinates is returned when a representation policy requires
// coordinates (on-the-fly computation) but the instance was built from a
// bare matrix.
var ErrNoCoordinates = errors.New("instance: coordinates not available")

// ErrNoSpillDir is returned when the spill policy is applied without a
// spill directory.
var ErrNoSpillDir = errors.New("instance: spill directory not configured")

// symTol is the structural tolerance for symmetry/diagonal checks.
// It is independent from any solver-level improvement epsilon.
const symTol = 1e-12

// denseDefaultCutoff is the node count up to which FromCoordinates
// materializes the dense matrix eagerly. Above it the instance starts on
// the on-the-fly provider and the memory optimizer decides the final
// representation.
const denseDefaultCutoff = 1024

// Metric computes the distance between two 2D points. It must be
// symmetric and non-negative with metric(p, p) == 0.
type Metric func(a, b [2]float64) float64

// Euclidean is the default Metric.
func Euclidean(a, b [2]float64) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

// Option is a functional option for FromCoordinates.
type Option func(*buildOptions)

type buildOptions struct {
	metric Metric
}

// WithMetric overrides the Euclidean default for coordinate-built
// instances.
func WithMetric(m Metric) Option {
	return func(o *buildOptions) {
		if m != nil {
			o.metric = m
		}
	}
}
