package solver

// Tour utilities shared by every strategy. A tour here is an open
// permutation of 0..n−1, implicitly cyclic: the edge tour[n−1]→tour[0]
// closes the cycle and is included in every cost.
//
// Design: only sentinel errors, O(n) helpers, in-place mutation where the
// caller owns the slice.

// ValidatePermutation checks that tour is a permutation of {0..n−1}.
//
// Complexity: O(n) time, O(n) space.
func ValidatePermutation(tour []int, n int) error {
	if n < 1 || len(tour) != n {
		return ErrInvalidTour
	}
	seen := make([]bool, n)

	var (
		i int
		v int
	)
	for i = 0; i < n; i++ {
		v = tour[i]
		if v < 0 || v >= n {
			return ErrInvalidTour
		}
		if seen[v] {
			return ErrInvalidTour
		}
		seen[v] = true
	}

	return nil
}

// Canonicalize rewrites tour in place into the canonical form of its
// cyclic equivalence class: rotated so tour[0] == 0, oriented so the
// successor of 0 is not larger than its predecessor. Two tours describe
// the same cycle iff their canonical forms are equal, which is what makes
// deterministic comparisons and cache keys possible.
//
// Contract: tour must be a permutation of 0..n−1 (ErrInvalidTour
// otherwise).
//
// Complexity: O(n) time, O(n) scratch space for the rotation.
func Canonicalize(tour []int) error {
	n := len(tour)
	if err := ValidatePermutation(tour, n); err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	// Rotate so node 0 leads.
	var pivot int
	for pivot = 0; pivot < n; pivot++ {
		if tour[pivot] == 0 {
			break
		}
	}
	if pivot != 0 {
		rotated := make([]int, n)
		var i int
		for i = 0; i < n; i++ {
			rotated[i] = tour[(pivot+i)%n]
		}
		copy(tour, rotated)
	}

	// Fix orientation: successor of 0 must not exceed predecessor of 0.
	if n > 2 && tour[1] > tour[n-1] {
		reverseSegment(tour, 1, n-1)
	}

	return nil
}

// reverseSegment reverses tour[i..k] inclusive in place.
// This is the primitive behind 2-opt style moves.
//
// Complexity: O(k−i) time, O(1) space.
func reverseSegment(tour []int, i, k int) {
	for i < k {
		tour[i], tour[k] = tour[k], tour[i]
		i++
		k--
	}
}

// CopyTour returns an independent copy of the tour slice.
func CopyTour(tour []int) []int {
	if tour == nil {
		return nil
	}
	out := make([]int, len(tour))
	copy(out, tour)

	return out
}

// identityTour returns [0, 1, …, n−1].
func identityTour(n int) []int {
	t := make([]int, n)
	var i int
	for i = 0; i < n; i++ {
		t[i] = i
	}

	return t
}
