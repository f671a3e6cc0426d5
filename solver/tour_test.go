package solver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosrod723/TSP-Optimization-Framework/solver"
)

func TestValidatePermutation(t *testing.T) {
	cases := []struct {
		name string
		tour []int
		n    int
		ok   bool
	}{
		{"identity", []int{0, 1, 2, 3}, 4, true},
		{"shuffled", []int{2, 0, 3, 1}, 4, true},
		{"single", []int{0}, 1, true},
		{"short", []int{0, 1}, 3, false},
		{"long", []int{0, 1, 2, 3}, 3, false},
		{"duplicate", []int{0, 1, 1, 3}, 4, false},
		{"out of range", []int{0, 1, 2, 4}, 4, false},
		{"negative", []int{0, -1, 2, 3}, 4, false},
		{"empty", nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := solver.ValidatePermutation(tc.tour, tc.n)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, solver.ErrInvalidTour)
			}
		})
	}
}

// All rotations and both orientations of one cycle canonicalize to the
// same representative.
func TestCanonicalize_CyclicEquivalence(t *testing.T) {
	base := []int{0, 2, 4, 1, 3}
	want := solver.CopyTour(base)
	require.NoError(t, solver.Canonicalize(want))

	variants := [][]int{
		{2, 4, 1, 3, 0},       // rotation
		{4, 1, 3, 0, 2},       // rotation
		{3, 1, 4, 2, 0},       // reversal
		{0, 3, 1, 4, 2},       // reversed, rotated to 0
	}
	for _, v := range variants {
		got := solver.CopyTour(v)
		require.NoError(t, solver.Canonicalize(got))
		assert.Equal(t, want, got, "variant %v", v)
	}
}

func TestCanonicalize_StartsAtZeroOriented(t *testing.T) {
	tour := []int{3, 2, 0, 4, 1}
	require.NoError(t, solver.Canonicalize(tour))

	assert.Equal(t, 0, tour[0])
	assert.LessOrEqual(t, tour[1], tour[len(tour)-1])
}

func TestCanonicalize_RejectsNonPermutation(t *testing.T) {
	assert.ErrorIs(t, solver.Canonicalize([]int{1, 1, 2}), solver.ErrInvalidTour)
}

func TestTourCost_IncludesClosingEdge(t *testing.T) {
	in := matrixInstance(t, [][]float64{
		{0, 1, 2},
		{1, 0, 3},
		{2, 3, 0},
	})

	cost, err := solver.TourCost(in, []int{0, 1, 2})
	require.NoError(t, err)
	assert.InDelta(t, 1+3+2, cost, 1e-12)
}

func TestTourCost_RotationInvariant(t *testing.T) {
	in := euclidInstance(t, 7, 3)

	a, err := solver.TourCost(in, []int{0, 1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	b, err := solver.TourCost(in, []int{3, 4, 5, 6, 0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTourCost_InvalidInputs(t *testing.T) {
	in := euclidInstance(t, 4, 9)

	_, err := solver.TourCost(in, []int{0, 1, 2})
	assert.ErrorIs(t, err, solver.ErrInvalidTour)

	_, err = solver.TourCost(nil, []int{0, 1})
	assert.ErrorIs(t, err, solver.ErrInvalidTour)
}
