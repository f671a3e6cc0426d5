package instance

import "math"

// Instance is an immutable TSP instance: a node count plus a distance
// lookup. After construction the only mutation point is ApplyPolicy,
// which swaps the internal representation (not the distances) and is
// invoked once per solve call before any strategy runs.
//
// Instances are passed by read-only reference into strategies and
// partitions; sub-instances created by Sub are independent copies with
// their own lifetime, since their indices are renumbered.
type Instance struct {
	n      int
	prov   provider
	coords [][2]float64 // nil when built from a bare matrix
	metric Metric       // set iff coords != nil
}

// FromMatrix validates a dense symmetric distance matrix and wraps it.
//
// Contracts:
//   - matrix must be square with n ≥ 2 rows,
//   - every entry finite, off-diagonal entries non-negative,
//   - |d(i,i)| ≤ 1e−12 and |d(i,j) − d(j,i)| ≤ 1e−12.
//
// Errors: sentinels wrapping ErrInvalidInput (ErrNonSquare,
// ErrTooFewNodes, ErrNonFinite, ErrNegativeDistance, ErrNonZeroDiagonal,
// ErrAsymmetric).
//
// Complexity: O(n²) time and space (the matrix is copied into a
// linearized buffer; the caller's slices are never retained).
func FromMatrix(matrix [][]float64) (*Instance, error) {
	n := len(matrix)
	if n < 2 {
		return nil, ErrTooFewNodes
	}

	// Stage 1: shape.
	var i, j int
	for i = 0; i < n; i++ {
		if len(matrix[i]) != n {
			return nil, ErrNonSquare
		}
	}

	// Stage 2: values, copied into the linearized dense buffer as we scan.
	var (
		w   = make([]float64, n*n)
		v   float64
		abs float64
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v = matrix[i][j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, ErrNonFinite
			}
			if i == j {
				abs = v
				if abs < 0 {
					abs = -abs
				}
				if abs > symTol {
					return nil, ErrNonZeroDiagonal
				}
			} else if v < 0 {
				return nil, ErrNegativeDistance
			}
			w[i*n+j] = v
		}
	}

	// Stage 3: symmetry on the upper triangle.
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			abs = w[i*n+j] - w[j*n+i]
			if abs < 0 {
				abs = -abs
			}
			if abs > symTol {
				return nil, ErrAsymmetric
			}
		}
	}

	return &Instance{n: n, prov: &denseProvider{n: n, w: w}}, nil
}

// FromCoordinates builds an instance from 2D points under the given
// metric (Euclidean by default).
//
// Representation: for n ≤ 1024 the dense matrix is materialized eagerly;
// above that the instance starts on the on-the-fly provider and the
// memory optimizer picks the final representation via ApplyPolicy.
//
// Errors: ErrTooFewNodes, ErrNonFinite (non-finite coordinate).
//
// Complexity: O(n²) when materialized, O(n) otherwise.
func FromCoordinates(coords [][2]float64, opts ...Option) (*Instance, error) {
	n := len(coords)
	if n < 2 {
		return nil, ErrTooFewNodes
	}

	bo := buildOptions{metric: Euclidean}
	for _, o := range opts {
		o(&bo)
	}

	// Validate and copy the points (the caller's slice is not retained).
	cp := make([][2]float64, n)
	var i int
	for i = 0; i < n; i++ {
		if math.IsNaN(coords[i][0]) || math.IsNaN(coords[i][1]) ||
			math.IsInf(coords[i][0], 0) || math.IsInf(coords[i][1], 0) {
			return nil, ErrNonFinite
		}
		cp[i] = coords[i]
	}

	in := &Instance{n: n, coords: cp, metric: bo.metric}
	if n <= denseDefaultCutoff {
		in.prov = materializeDense(cp, bo.metric)
	} else {
		in.prov = &coordProvider{coords: cp, metric: bo.metric}
	}

	return in, nil
}

// N returns the node count.
func (in *Instance) N() int { return in.n }

// Dist returns the distance between nodes i and j. Indices are the
// caller's responsibility; they are bounds-checked only by the underlying
// provider's storage. Symmetry holds by construction.
func (in *Instance) Dist(i, j int) float64 { return in.prov.at(i, j) }

// Coords returns the coordinate list and true when the instance was built
// from coordinates; (nil, false) otherwise. The returned slice must be
// treated as read-only.
func (in *Instance) Coords() ([][2]float64, bool) {
	if in.coords == nil {
		return nil, false
	}

	return in.coords, true
}

// Sub builds an independent re-indexed sub-instance over the given node
// subset: sub node k corresponds to global node nodes[k]. The subset must
// contain distinct in-range indices.
//
// Single-node subsets are permitted so that partition arenas can carry
// singleton groups; solver strategies still reject n < 2 themselves.
//
// Complexity: O(m²) time and space for m = len(nodes).
func (in *Instance) Sub(nodes []int) (*Instance, error) {
	m := len(nodes)
	if m < 1 {
		return nil, ErrBadNodeSet
	}

	seen := make([]bool, in.n)

	var i, j, v int
	for i = 0; i < m; i++ {
		v = nodes[i]
		if v < 0 || v >= in.n || seen[v] {
			return nil, ErrBadNodeSet
		}
		seen[v] = true
	}

	// Always dense: sub-instances are sized for direct solving.
	w := make([]float64, m*m)
	for i = 0; i < m; i++ {
		for j = i + 1; j < m; j++ {
			d := in.Dist(nodes[i], nodes[j])
			w[i*m+j] = d
			w[j*m+i] = d
		}
	}

	sub := &Instance{n: m, prov: &denseProvider{n: m, w: w}}
	if in.coords != nil {
		sub.coords = make([][2]float64, m)
		for i = 0; i < m; i++ {
			sub.coords[i] = in.coords[nodes[i]]
		}
		sub.metric = in.metric
	}

	return sub, nil
}

// materializeDense fills a linearized symmetric matrix from points.
func materializeDense(coords [][2]float64, metric Metric) *denseProvider {
	n := len(coords)
	w := make([]float64, n*n)

	var (
		i, j int
		d    float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = metric(coords[i], coords[j])
			w[i*n+j] = d
			w[j*n+i] = d
		}
	}

	return &denseProvider{n: n, w: w}
}
