// Package instance implements the Distance Model: an immutable TSP
// instance built either from a dense symmetric distance matrix or from a
// list of 2D coordinates.
//
// Construction validates shape and values strictly (square, n ≥ 2, zero
// diagonal, no NaN/±Inf/negative entries, symmetry within tolerance) and
// fails with sentinels that all wrap ErrInvalidInput, so callers can match
// the coarse kind with errors.Is(err, instance.ErrInvalidInput) or the
// precise one (ErrNonSquare, ErrAsymmetric, …).
//
// Downstream components only ever require Dist(i, j) lookups. The lookup
// is backed by a swappable representation provider so that the memory
// optimizer's policy choice (dense float64, reduced-precision float32,
// on-the-fly computation from coordinates, or a spilled matrix file) stays
// transparent to every solver strategy; see ApplyPolicy.
//
// No triangle-inequality requirement is imposed: any symmetric
// non-negative matrix is accepted.
package instance
