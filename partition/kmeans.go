package partition

// Lloyd's k-means with k-means++ seeding. Works in arbitrary dimension
// so the same routine clusters raw 2-D coordinates, MDS embeddings, and
// the k-dimensional spectral rows.

import (
	"math"
	"math/rand"
)

// kMeans assigns each point to one of k clusters and returns the label
// slice. Initialization is k-means++ driven by rng; empty clusters are
// repaired by reseeding their center at the point farthest from its
// current center, so all k labels stay populated.
//
// Contract: len(points) >= k >= 1, all points share one dimension.
//
// Complexity: O(maxIter·n·k·d).
func kMeans(points [][]float64, k, maxIter int, rng *rand.Rand) []int {
	n := len(points)
	labels := make([]int, n)
	if k <= 1 || n <= k {
		// Degenerate shapes: everything in one cluster, or one point per
		// cluster.
		if n <= k {
			for i := range labels {
				labels[i] = i
			}
		}

		return labels
	}

	d := len(points[0])
	centers := seedPlusPlus(points, k, rng)

	var (
		it, i, c, ax int
		moved        bool
	)
	for it = 0; it < maxIter; it++ {
		moved = false

		// Assignment step.
		for i = 0; i < n; i++ {
			best, bestD := 0, math.Inf(1)
			for c = 0; c < k; c++ {
				dd := sqDist(points[i], centers[c])
				if dd < bestD {
					bestD = dd
					best = c
				}
			}
			if labels[i] != best {
				labels[i] = best
				moved = true
			}
		}

		// Update step.
		counts := make([]int, k)
		sums := make([][]float64, k)
		for c = 0; c < k; c++ {
			sums[c] = make([]float64, d)
		}
		for i = 0; i < n; i++ {
			counts[labels[i]]++
			for ax = 0; ax < d; ax++ {
				sums[labels[i]][ax] += points[i][ax]
			}
		}
		for c = 0; c < k; c++ {
			if counts[c] == 0 {
				centers[c] = append([]float64(nil), points[farthestPoint(points, centers, labels)]...)
				moved = true

				continue
			}
			for ax = 0; ax < d; ax++ {
				centers[c][ax] = sums[c][ax] / float64(counts[c])
			}
		}

		if !moved {
			break
		}
	}

	return labels
}

// seedPlusPlus picks k initial centers with the k-means++ D² weighting.
func seedPlusPlus(points [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(points)
	centers := make([][]float64, 0, k)
	centers = append(centers, append([]float64(nil), points[rng.Intn(n)]...))

	dist2 := make([]float64, n)
	for len(centers) < k {
		var total float64
		for i := 0; i < n; i++ {
			dd := math.Inf(1)
			for _, c := range centers {
				if s := sqDist(points[i], c); s < dd {
					dd = s
				}
			}
			dist2[i] = dd
			total += dd
		}

		var pick int
		if total <= 0 {
			pick = rng.Intn(n) // all points coincide with a center
		} else {
			r := rng.Float64() * total
			for pick = 0; pick < n-1; pick++ {
				r -= dist2[pick]
				if r <= 0 {
					break
				}
			}
		}
		centers = append(centers, append([]float64(nil), points[pick]...))
	}

	return centers
}

// farthestPoint returns the index of the point farthest from its own
// center; used to re-seed emptied clusters.
func farthestPoint(points, centers [][]float64, labels []int) int {
	best, bestD := 0, -1.0
	for i := range points {
		if dd := sqDist(points[i], centers[labels[i]]); dd > bestD {
			bestD = dd
			best = i
		}
	}

	return best
}

func sqDist(a, b []float64) float64 {
	var s float64
	for i := range a {
		d := a[i] - b[i]
		s += d * d
	}

	return s
}
