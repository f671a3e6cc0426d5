package partition_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosrod723/TSP-Optimization-Framework/config"
	"github.com/carlosrod723/TSP-Optimization-Framework/instance"
	"github.com/carlosrod723/TSP-Optimization-Framework/partition"
)

// clusteredCoords lays out `clusters` well-separated square blobs of
// `per` points each, deterministic under seed.
func clusteredCoords(t *testing.T, clusters, per int, seed int64) *instance.Instance {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	coords := make([][2]float64, 0, clusters*per)

	for c := 0; c < clusters; c++ {
		// Blob centers 1000 apart; blob radius ~10.
		cx, cy := float64(c)*1000, float64(c%2)*1000
		for i := 0; i < per; i++ {
			coords = append(coords, [2]float64{
				cx + rng.Float64()*10,
				cy + rng.Float64()*10,
			})
		}
	}
	in, err := instance.FromCoordinates(coords)
	require.NoError(t, err)

	return in
}

func uniformCoords(t *testing.T, n int, seed int64) *instance.Instance {
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

func TestPartitionCount(t *testing.T) {
	cases := []struct {
		n, target, max, want int
	}{
		{1000, 250, 64, 4},
		{1001, 250, 64, 5},
		{100, 250, 64, 1},
		{100000, 250, 64, 64}, // max clamp
		{10, 250, 64, 1},
		{10, 1, 64, 10},
		{5, 1, 3, 3},
		{5, 0, 64, 5}, // target floor, then n clamp
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, partition.PartitionCount(tc.n, tc.target, tc.max), "n=%d target=%d", tc.n, tc.target)
	}
}

// The cover invariant holds for every count from 1 to n across the
// strategy ladder.
func TestSplit_DisjointCoverAllCounts(t *testing.T) {
	in := uniformCoords(t, 24, 3)
	p := config.Default().Partitioning

	for target := 1; target <= in.N(); target++ {
		p.TargetPartitionSize = target
		p.MaxPartitions = in.N()
		set, err := partition.Split(in, p, partition.DefaultOptions())
		require.NoError(t, err, "target=%d", target)
		require.NoError(t, set.Validate(), "target=%d", target)
	}
}

// Well-separated blobs must come back as exactly their natural clusters.
func TestSplit_RecoversSeparatedClusters(t *testing.T) {
	const clusters, per = 4, 25
	in := clusteredCoords(t, clusters, per, 7)

	p := config.Default().Partitioning
	p.TargetPartitionSize = per
	p.MaxPartitions = clusters

	set, err := partition.Split(in, p, partition.DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, set.Validate())
	require.Len(t, set.Parts, clusters)

	// Every partition is one whole blob: node ids i belong to blob i/per.
	for _, part := range set.Parts {
		blob := part.Nodes[0] / per
		for _, v := range part.Nodes {
			assert.Equal(t, blob, v/per, "partition %d mixes blobs", part.Handle)
		}
		assert.Len(t, part.Nodes, per)
	}
}

func TestSplit_SingleWhenBelowTarget(t *testing.T) {
	in := uniformCoords(t, 30, 5)
	p := config.Default().Partitioning // target 250 >> 30

	set, err := partition.Split(in, p, partition.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, set.Parts, 1)
	assert.Len(t, set.Parts[0].Nodes, 30)
	assert.Equal(t, 30, set.Parts[0].Sub.N())
}

// Matrix-only sources go through the MDS embedding and still produce a
// valid cover.
func TestSplit_MatrixOnlySource(t *testing.T) {
	coordsIn := clusteredCoords(t, 2, 20, 11)
	n := coordsIn.N()

	// Rebuild as a bare matrix so Split sees no coordinates.
	m := make([][]float64, n)
	for i := 0; i < n; i++ {
		m[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			m[i][j] = coordsIn.Dist(i, j)
		}
	}
	in, err := instance.FromMatrix(m)
	require.NoError(t, err)

	p := config.Default().Partitioning
	p.TargetPartitionSize = 20
	p.MaxPartitions = 2

	set, err := partition.Split(in, p, partition.DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, set.Validate())
	assert.Len(t, set.Parts, 2)
}

func TestSplit_GeometricStrategy(t *testing.T) {
	in := uniformCoords(t, 40, 13)
	p := config.Default().Partitioning
	p.Strategy = config.ClusterGeometric
	p.TargetPartitionSize = 10
	p.MaxPartitions = 8

	set, err := partition.Split(in, p, partition.DefaultOptions())
	require.NoError(t, err)
	require.NoError(t, set.Validate())
	require.Len(t, set.Parts, 4)

	// Axis bisection balances to within one node per cut.
	for _, part := range set.Parts {
		assert.InDelta(t, 10, len(part.Nodes), 2)
	}
}

// An exhausted cluster budget must still yield a valid (geometric) split
// rather than an error.
func TestSplit_ZeroishBudgetFallsBack(t *testing.T) {
	in := uniformCoords(t, 50, 17)
	p := config.Default().Partitioning
	p.TargetPartitionSize = 10
	p.MaxPartitions = 8

	opts := partition.DefaultOptions()
	opts.ClusterBudget = time.Nanosecond

	set, err := partition.Split(in, p, opts)
	require.NoError(t, err)
	require.NoError(t, set.Validate())
	assert.Len(t, set.Parts, 5)
}

func TestSplit_Deterministic(t *testing.T) {
	in := uniformCoords(t, 60, 19)
	p := config.Default().Partitioning
	p.TargetPartitionSize = 15
	p.MaxPartitions = 8

	opts := partition.DefaultOptions()
	opts.Seed = 42

	a, err := partition.Split(in, p, opts)
	require.NoError(t, err)
	b, err := partition.Split(in, p, opts)
	require.NoError(t, err)

	require.Len(t, b.Parts, len(a.Parts))
	for i := range a.Parts {
		assert.Equal(t, a.Parts[i].Nodes, b.Parts[i].Nodes, "partition %d", i)
	}
}

func TestSplit_CentroidsPresentWithCoords(t *testing.T) {
	in := clusteredCoords(t, 2, 10, 23)
	p := config.Default().Partitioning
	p.TargetPartitionSize = 10
	p.MaxPartitions = 2

	set, err := partition.Split(in, p, partition.DefaultOptions())
	require.NoError(t, err)

	for _, part := range set.Parts {
		assert.True(t, part.HasCentroid, "partition %d", part.Handle)
	}
}

func TestSetValidate_DetectsBrokenCovers(t *testing.T) {
	in := uniformCoords(t, 6, 29)

	sub, err := in.Sub([]int{0, 1, 2})
	require.NoError(t, err)

	// Missing nodes 3..5 entirely.
	s := &partition.Set{
		Source: in,
		Parts:  []partition.Partition{{Handle: 0, Nodes: []int{0, 1, 2}, Sub: sub}},
	}
	assert.ErrorIs(t, s.Validate(), partition.ErrBadCover)

	// Duplicate coverage of node 0.
	s.Parts = append(s.Parts, partition.Partition{Handle: 1, Nodes: []int{0, 3, 4, 5}, Sub: sub})
	assert.ErrorIs(t, s.Validate(), partition.ErrBadCover)
}

func TestSplit_BadOptions(t *testing.T) {
	in := uniformCoords(t, 10, 31)
	opts := partition.DefaultOptions()
	opts.KMeansIterations = -1

	_, err := partition.Split(in, config.Default().Partitioning, opts)
	assert.ErrorIs(t, err, partition.ErrBadOptions)
}
