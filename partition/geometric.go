package partition

// Deterministic geometric fallbacks. Never fail, always balanced to
// within one node, used when clustering overruns its budget or both
// clustering attempts come back imbalanced.

import "sort"

// axisBisect splits the index set into count groups by recursively
// halving the currently largest group along its widest coordinate axis
// at the median. Balanced by construction: each cut splits a group into
// halves differing by at most one node.
//
// Complexity: O(n log n · log count).
func axisBisect(coords [][2]float64, count int) [][]int {
	all := make([]int, len(coords))
	for i := range all {
		all[i] = i
	}
	groups := [][]int{all}

	for len(groups) < count {
		// Cut the largest group next.
		gi := 0
		for i := 1; i < len(groups); i++ {
			if len(groups[i]) > len(groups[gi]) {
				gi = i
			}
		}
		if len(groups[gi]) < 2 {
			break // nothing left to cut
		}
		lo, hi := bisectOnce(coords, groups[gi])
		groups[gi] = lo
		groups = append(groups, hi)
	}

	return groups
}

// bisectOnce splits one group at the median of its widest axis.
func bisectOnce(coords [][2]float64, group []int) (lo, hi []int) {
	var minX, maxX, minY, maxY float64
	minX, maxX = coords[group[0]][0], coords[group[0]][0]
	minY, maxY = coords[group[0]][1], coords[group[0]][1]
	for _, v := range group[1:] {
		if coords[v][0] < minX {
			minX = coords[v][0]
		}
		if coords[v][0] > maxX {
			maxX = coords[v][0]
		}
		if coords[v][1] < minY {
			minY = coords[v][1]
		}
		if coords[v][1] > maxY {
			maxY = coords[v][1]
		}
	}
	axis := 0
	if maxY-minY > maxX-minX {
		axis = 1
	}

	sorted := append([]int(nil), group...)
	sort.Slice(sorted, func(a, b int) bool {
		ca, cb := coords[sorted[a]][axis], coords[sorted[b]][axis]
		if ca != cb {
			return ca < cb
		}

		return sorted[a] < sorted[b] // stable on ties
	})
	mid := len(sorted) / 2

	return sorted[:mid], sorted[mid:]
}

// contiguousChunks is the coordinate-free fallback: node ids in index
// order, sliced into count near-equal runs.
func contiguousChunks(n, count int) [][]int {
	groups := make([][]int, 0, count)

	var start int
	for g := 0; g < count; g++ {
		end := (g + 1) * n / count
		chunk := make([]int, 0, end-start)
		for v := start; v < end; v++ {
			chunk = append(chunk, v)
		}
		if len(chunk) > 0 {
			groups = append(groups, chunk)
		}
		start = end
	}

	return groups
}
