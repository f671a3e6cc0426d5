package memopt

import (
	"errors"
	"runtime"
)

// Sentinel errors.
var (
	// ErrResourceExceeded indicates that no representation policy fits the
	// memory ceiling. It is surfaced to the caller and never retried
	// within the core.
	ErrResourceExceeded = errors.New("memopt: no representation fits the memory ceiling")

	// ErrUnknownPolicy indicates a Policy value outside the enumeration.
	ErrUnknownPolicy = errors.New("memopt: unknown representation policy")

	// ErrBadSize indicates n < 2.
	ErrBadSize = errors.New("memopt: instance size must be at least 2")
)

// Policy selects how the distance matrix is represented.
type Policy int

const (
	// PolicyDense keeps the full float64 matrix in memory.
	PolicyDense Policy = iota

	// PolicyFloat32 keeps the matrix at reduced (float32) precision.
	PolicyFloat32

	// PolicyOnTheFly computes distances from coordinates per lookup.
	PolicyOnTheFly

	// PolicySpill streams the matrix from a temporary file.
	PolicySpill
)

// String implements fmt.Stringer for diagnostics.
func (p Policy) String() string {
	switch p {
	case PolicyDense:
		return "dense"
	case PolicyFloat32:
		return "float32"
	case PolicyOnTheFly:
		return "on-the-fly"
	case PolicySpill:
		return "spill"
	default:
		return "unknown"
	}
}

// float32Slack is the minimum headroom (QualityThreshold − 1) required
// before reduced precision may be advised. Float32 quantization carries
// ~1.2e−7 relative error; 1e−6 keeps an order of magnitude of margin.
const float32Slack = 1e-6

// Options tunes the advisor.
//
// Fields:
//   - QualityThreshold — the caller's max acceptable cost ratio over
//     optimal (≥ 1). Zero means "no threshold communicated"; reduced
//     precision is then permitted.
//   - SpillDir — directory for the spill file. Empty (the default)
//     disables PolicySpill entirely.
type Options struct {
	QualityThreshold float64
	SpillDir         string
}

// DefaultOptions returns the zero-threshold, no-spill configuration.
func DefaultOptions() Options { return Options{} }

// EstimateBytes returns the memory footprint of representing an n-node
// matrix under policy p. For PolicySpill the estimate covers the resident
// row cache, not the file.
//
// Complexity: O(1).
func EstimateBytes(p Policy, n int) int64 {
	nn := int64(n) * int64(n)
	switch p {
	case PolicyDense:
		return 8 * nn
	case PolicyFloat32:
		return 4 * nn
	case PolicyOnTheFly:
		// Coordinates (2×8 bytes) plus provider bookkeeping.
		return 32 * int64(n)
	case PolicySpill:
		// One float32 row plus one raw-byte row.
		return 8 * int64(n)
	default:
		return 0
	}
}

// Advise picks the fastest representation policy whose footprint fits the
// ceiling. A ceiling ≤ 0 means unlimited and always yields PolicyDense.
//
// Candidate order: dense → float32 (unless the quality threshold forbids
// quantization) → on-the-fly (coordinate input only) → spill (explicit
// SpillDir only). Fails with ErrResourceExceeded when nothing fits.
//
// Complexity: O(1).
func Advise(n int, hasCoords bool, ceiling int64, opts Options) (Policy, error) {
	if n < 2 {
		return 0, ErrBadSize
	}
	if ceiling <= 0 {
		return PolicyDense, nil
	}

	if EstimateBytes(PolicyDense, n) <= ceiling {
		return PolicyDense, nil
	}

	// Reduced precision is allowed only when the communicated quality
	// threshold leaves room above the float32 quantization error.
	allowReduced := opts.QualityThreshold == 0 || opts.QualityThreshold-1 >= float32Slack
	if allowReduced && EstimateBytes(PolicyFloat32, n) <= ceiling {
		return PolicyFloat32, nil
	}

	if hasCoords && EstimateBytes(PolicyOnTheFly, n) <= ceiling {
		return PolicyOnTheFly, nil
	}

	if opts.SpillDir != "" && EstimateBytes(PolicySpill, n) <= ceiling {
		return PolicySpill, nil
	}

	return 0, ErrResourceExceeded
}

// ResourceSnapshot is the read-only resource view threaded into the
// selector. It is refreshed by the caller between solve calls; strategies
// never mutate it, which keeps the core testable with fixed synthetic
// snapshots.
type ResourceSnapshot struct {
	AllocBytes int64   // heap bytes currently in use
	CPUPercent float64 // advisory CPU load, [0,100]; 0 when unknown
}

// Headroom returns the bytes left under ceiling, never negative.
// A ceiling ≤ 0 means unlimited.
//
// Complexity: O(1).
func (s ResourceSnapshot) Headroom(ceiling int64) int64 {
	if ceiling <= 0 {
		return 1 << 62
	}
	h := ceiling - s.AllocBytes
	if h < 0 {
		return 0
	}

	return h
}

// TakeSnapshot reads the live heap usage from the Go runtime. CPU load is
// left at zero: the core has no OS-level monitor by design, and the
// external collaborator may fill the field before passing the snapshot in.
func TakeSnapshot() ResourceSnapshot {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return ResourceSnapshot{AllocBytes: int64(ms.Alloc)}
}
