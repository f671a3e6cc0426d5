package solver

import (
	"math"

	"github.com/carlosrod723/TSP-Optimization-Framework/instance"
)

// roundScale controls final cost stabilization precision (1e−9): it
// removes cross-platform floating-point drift without affecting
// optimality.
const roundScale = 1e9

// round1e9 returns x rounded to 1e−9 absolute precision.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}

// TourCost validates tour against in and returns its total cyclic
// distance (including the closing edge tour[n−1]→tour[0]), stabilized to
// 1e−9.
//
// Errors: ErrInvalidTour when tour is not a permutation of in's nodes.
//
// Complexity: O(n).
func TourCost(in *instance.Instance, tour []int) (float64, error) {
	if in == nil {
		return 0, ErrInvalidTour
	}
	if err := ValidatePermutation(tour, in.N()); err != nil {
		return 0, err
	}

	return round1e9(cycleCost(in, tour)), nil
}

// cycleCost sums the cyclic edge weights without validation or rounding;
// the hot-path companion of TourCost.
//
// Complexity: O(n).
func cycleCost(in *instance.Instance, tour []int) float64 {
	var (
		n   = len(tour)
		sum float64
		i   int
	)
	for i = 0; i < n-1; i++ {
		sum += in.Dist(tour[i], tour[i+1])
	}
	sum += in.Dist(tour[n-1], tour[0])

	return sum
}
