package partition

// Power iteration with deflation for the few leading eigenpairs of a
// symmetric matrix. Clustering needs only 2 components (MDS embedding)
// or k components (spectral), so a full decomposition would be wasted
// work; repeated power iteration with Gram–Schmidt deflation gets the
// leading subspace in O(k·iters·n²).

import (
	"math"
	"math/rand"
)

// topEigen returns the k leading (largest-eigenvalue) eigenpairs of the
// symmetric n×n row-major matrix m. Vectors come back unit-length and
// mutually orthogonal; eigenvalues in descending order. The caller must
// ensure m's leading eigenvalues are the ones of interest (shift the
// matrix first when the smallest are wanted).
//
// Complexity: O(k·iters·n²) time, O(k·n) space.
func topEigen(m []float64, n, k, iters int, rng *rand.Rand) ([]float64, [][]float64) {
	if k > n {
		k = n
	}
	var (
		vals = make([]float64, 0, k)
		vecs = make([][]float64, 0, k)
		v    = make([]float64, n)
		next = make([]float64, n)
	)

	var comp, it, i int
	for comp = 0; comp < k; comp++ {
		for i = 0; i < n; i++ {
			v[i] = rng.Float64() - 0.5
		}
		orthogonalize(v, vecs)
		if normalize(v) == 0 {
			break // subspace exhausted
		}

		for it = 0; it < iters; it++ {
			matVec(m, n, v, next)
			orthogonalize(next, vecs)
			if normalize(next) == 0 {
				break
			}
			v, next = next, v
		}

		matVec(m, n, v, next)
		vals = append(vals, dot(v, next))
		vecs = append(vecs, append([]float64(nil), v...))
	}

	return vals, vecs
}

// matVec computes dst = m·v for row-major symmetric m.
func matVec(m []float64, n int, v, dst []float64) {
	var i, j int
	for i = 0; i < n; i++ {
		var sum float64
		row := m[i*n : (i+1)*n]
		for j = 0; j < n; j++ {
			sum += row[j] * v[j]
		}
		dst[i] = sum
	}
}

// orthogonalize removes from v its projections onto each basis vector.
func orthogonalize(v []float64, basis [][]float64) {
	for _, u := range basis {
		p := dot(v, u)
		for i := range v {
			v[i] -= p * u[i]
		}
	}
}

// normalize scales v to unit length and returns the pre-scaling norm;
// a zero return means v vanished (numerically dependent on the basis).
func normalize(v []float64) float64 {
	n := math.Sqrt(dot(v, v))
	if n < 1e-12 {
		return 0
	}
	for i := range v {
		v[i] /= n
	}

	return n
}

func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}

	return s
}
