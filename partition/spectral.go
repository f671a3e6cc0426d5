package partition

// Spectral clustering on the distance graph. Used as the retry path
// when k-means produces badly imbalanced partitions: the graph view
// tends to find natural cuts that coordinate-space centroids miss.
//
// Pipeline (Ng–Jordan–Weiss form):
//
//	A  = exp(−d²/(2σ²))            Gaussian affinity, σ = median distance
//	Lₙ = I − D^(−1/2)·A·D^(−1/2)   normalized Laplacian
//	U  = k eigenvectors of Lₙ with the SMALLEST eigenvalues
//	rows of U, unit-normalized, clustered with k-means
//
// Power iteration finds LARGEST eigenvalues, so we feed it the shifted
// matrix S = 2I − Lₙ: Lₙ's spectrum lies in [0,2], making S's leading
// eigenvectors exactly Lₙ's trailing ones.

import (
	"math"
	"math/rand"
	"sort"

	"github.com/carlosrod723/TSP-Optimization-Framework/instance"
)

// spectralLabels clusters in's nodes into k groups via normalized
// spectral clustering.
//
// Complexity: O(n²) space, O(k·iters·n²) time.
func spectralLabels(in *instance.Instance, k, powerIters, kmeansIters int, rng *rand.Rand) []int {
	n := in.N()
	sigma := medianDistance(in)
	if sigma <= 0 {
		sigma = 1 // all-zero distances degenerate to uniform affinity
	}

	// S = I + D^(−1/2)·A·D^(−1/2) (the 2I−Lₙ shift, assembled directly).
	var (
		a   = make([]float64, n*n)
		deg = make([]float64, n)
	)

	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				continue
			}
			d := in.Dist(i, j)
			w := math.Exp(-(d * d) / (2 * sigma * sigma))
			a[i*n+j] = w
			deg[i] += w
		}
	}
	for i = 0; i < n; i++ {
		if deg[i] <= 0 {
			deg[i] = 1
		}
	}
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j {
				a[i*n+j] = 1 // the +I shift
			} else {
				a[i*n+j] /= math.Sqrt(deg[i]) * math.Sqrt(deg[j])
			}
		}
	}

	_, vecs := topEigen(a, n, k, powerIters, rng)

	// Embed each node as its row across the k eigenvectors, unit-normalized.
	rows := make([][]float64, n)
	for i = 0; i < n; i++ {
		row := make([]float64, len(vecs))
		for j = 0; j < len(vecs); j++ {
			row[j] = vecs[j][i]
		}
		if norm := math.Sqrt(dot(row, row)); norm > 1e-12 {
			for j = range row {
				row[j] /= norm
			}
		}
		rows[i] = row
	}

	return kMeans(rows, k, kmeansIters, rng)
}

// medianDistance samples the upper triangle (capped for large n) and
// returns the median pairwise distance, the usual Gaussian-kernel
// bandwidth heuristic.
func medianDistance(in *instance.Instance) float64 {
	n := in.N()
	// Full upper triangle up to ~10⁶ entries, strided sampling beyond.
	stride := 1
	for (n*(n-1)/2)/stride > 1_000_000 {
		stride++
	}

	var (
		ds   = make([]float64, 0, 1024)
		i, j int
		c    int
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if c%stride == 0 {
				ds = append(ds, in.Dist(i, j))
			}
			c++
		}
	}
	if len(ds) == 0 {
		return 0
	}
	sort.Float64s(ds)

	return ds[len(ds)/2]
}
