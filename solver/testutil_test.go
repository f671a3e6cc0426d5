package solver_test

// Shared fixtures for the strategy tests: deterministic Euclidean
// instance generators and a factorial brute-force oracle for small n.

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carlosrod723/TSP-Optimization-Framework/instance"
)

// euclidInstance returns an n-node Euclidean instance with coordinates
// drawn uniformly from [0,100)² under a fixed seed.
func euclidInstance(t *testing.T, n int, seed int64) *instance.Instance {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	coords := make([][2]float64, n)
	for i := range coords {
		coords[i] = [2]float64{rng.Float64() * 100, rng.Float64() * 100}
	}
	in, err := instance.FromCoordinates(coords)
	require.NoError(t, err)

	return in
}

// matrixInstance wraps a raw matrix, failing the test on invalid input.
func matrixInstance(t *testing.T, m [][]float64) *instance.Instance {
	t.Helper()
	in, err := instance.FromMatrix(m)
	require.NoError(t, err)

	return in
}

// square4 is a unit square: optimal cycle cost 4 (perimeter), diagonal
// shortcuts cost √2 each.
func square4(t *testing.T) *instance.Instance {
	t.Helper()

	return matrixInstance(t, [][]float64{
		{0, 1, math.Sqrt2, 1},
		{1, 0, 1, math.Sqrt2},
		{math.Sqrt2, 1, 0, 1},
		{1, math.Sqrt2, 1, 0},
	})
}

// relabeled returns an instance with the same geometry under a node
// renaming: node a of the result is node perm[a] of in.
func relabeled(t *testing.T, in *instance.Instance, perm []int) *instance.Instance {
	t.Helper()
	n := in.N()
	require.Len(t, perm, n)

	m := make([][]float64, n)
	for a := 0; a < n; a++ {
		m[a] = make([]float64, n)
		for b := 0; b < n; b++ {
			m[a][b] = in.Dist(perm[a], perm[b])
		}
	}

	return matrixInstance(t, m)
}

// bruteForceCost enumerates all (n−1)! tours with node 0 pinned first
// and returns the optimal cyclic cost. Usable up to n ≈ 10.
func bruteForceCost(t *testing.T, in *instance.Instance) float64 {
	t.Helper()
	n := in.N()
	require.LessOrEqual(t, n, 10, "brute force oracle capped at n=10")

	rest := make([]int, 0, n-1)
	for v := 1; v < n; v++ {
		rest = append(rest, v)
	}
	best := math.Inf(1)

	var permute func(k int)
	permute = func(k int) {
		if k == len(rest) {
			cost := in.Dist(0, rest[0])
			for i := 0; i < len(rest)-1; i++ {
				cost += in.Dist(rest[i], rest[i+1])
			}
			cost += in.Dist(rest[len(rest)-1], 0)
			if cost < best {
				best = cost
			}

			return
		}
		for i := k; i < len(rest); i++ {
			rest[k], rest[i] = rest[i], rest[k]
			permute(k + 1)
			rest[k], rest[i] = rest[i], rest[k]
		}
	}
	permute(0)

	return best
}
