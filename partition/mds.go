package partition

// Classical multidimensional scaling: recover 2-D coordinates from a
// distance matrix so coordinate-based clustering works on matrix-only
// instances. The embedding only needs to preserve neighborhood
// structure well enough for k-means, not metric fidelity.

import (
	"math"
	"math/rand"

	"github.com/carlosrod723/TSP-Optimization-Framework/instance"
)

// mdsEmbed computes a 2-D embedding of in via classical MDS: double-center
// the squared distances into the Gram matrix B = −½·J·D²·J, then project
// onto B's two leading eigenvectors scaled by √λ. Non-positive leading
// eigenvalues (strongly non-Euclidean inputs) collapse that axis to zero,
// which still yields a usable 1-D or degenerate layout for clustering.
//
// Complexity: O(n²) space, O(iters·n²) time.
func mdsEmbed(in *instance.Instance, iters int, rng *rand.Rand) [][2]float64 {
	n := in.N()

	// B = −½ (d²ᵢⱼ − rowMeanᵢ − colMeanⱼ + grandMean); symmetric, so row
	// and column means coincide.
	var (
		b     = make([]float64, n*n)
		mean  = make([]float64, n)
		grand float64
	)

	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			d := in.Dist(i, j)
			sq := d * d
			b[i*n+j] = sq
			mean[i] += sq
			grand += sq
		}
	}
	for i = 0; i < n; i++ {
		mean[i] /= float64(n)
	}
	grand /= float64(n * n)

	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			b[i*n+j] = -0.5 * (b[i*n+j] - mean[i] - mean[j] + grand)
		}
	}

	vals, vecs := topEigen(b, n, 2, iters, rng)

	coords := make([][2]float64, n)
	var axis int
	for axis = 0; axis < len(vals); axis++ {
		if vals[axis] <= 0 {
			continue
		}
		scale := math.Sqrt(vals[axis])
		for i = 0; i < n; i++ {
			coords[i][axis] = vecs[axis][i] * scale
		}
	}

	return coords
}
