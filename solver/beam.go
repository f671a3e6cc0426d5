package solver

// Bounded-width best-first construction (Beam Search).
//
// The beam holds at most `width` partial paths, all of equal depth. Each
// step expands every partial by every unvisited node, scores children by
// g + lb where lb is an admissible look-ahead (sum of cheapest incident
// edges of the remaining nodes plus the cheapest edge out of the current
// endpoint), and keeps the best `width` children. Width adapts to the
// remaining budget between steps; on deadline expiry the best partial is
// completed greedily so a valid tour always comes back.
//
// Determinism: children sort by (score, endpoint index) with a stable
// sort, so equal scores resolve identically on every run.
//
// Complexity: O(n²·width) time, O(n·width) space.

import (
	"math"
	"sort"
	"time"

	"github.com/carlosrod723/TSP-Optimization-Framework/instance"
)

type beam struct{}

func (beam) ID() ID { return BeamSearch }

// beamState is one partial path in the beam. visited is a bitset over
// node indices (BeamSearch is kept to n ≤ 64 territory by the selector;
// larger n still works because words grows with n).
type beamState struct {
	path    []int
	visited []uint64
	g       float64 // accumulated path cost
	lb      float64 // admissible remaining-cost bound
}

func (s *beamState) score() float64 { return s.g + s.lb }

func (s *beamState) has(v int) bool {
	return s.visited[v>>6]&(1<<uint(v&63)) != 0
}

func (beam) Solve(in *instance.Instance, b Budget, opts Options) (Solution, error) {
	started := time.Now()
	if err := guardCommon(in, b); err != nil {
		return Solution{}, err
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return Solution{}, err
	}

	n := in.N()
	if n == 2 {
		return Solution{
			Tour:     []int{0, 1},
			Cost:     round1e9(2 * in.Dist(0, 1)),
			Strategy: BeamSearch,
			Elapsed:  time.Since(started),
		}, nil
	}

	var (
		words  = (n + 63) / 64
		minInc = minIncident(in)
		width  = initialWidth(n, opts)
		guard  = newGuard(b)
	)

	// Root: path {0}. lb counts every other node's cheapest incident edge
	// plus the cheapest edge out of node 0.
	root := &beamState{
		path:    []int{0},
		visited: make([]uint64, words),
	}
	root.visited[0] = 1
	var v int
	for v = 1; v < n; v++ {
		root.lb += minInc[v]
	}
	root.lb += minInc[0]

	front := []*beamState{root}

	var (
		depth     int
		si        int
		children  []*beamState
		cur       *beamState
		last, cnd int
		stepStart time.Time
	)
	for depth = 1; depth < n; depth++ {
		if guard.hitNow() {
			break
		}
		stepStart = time.Now()

		children = children[:0]
		for si = 0; si < len(front); si++ {
			cur = front[si]
			last = cur.path[len(cur.path)-1]
			for cnd = 1; cnd < n; cnd++ {
				if cur.has(cnd) {
					continue
				}
				child := &beamState{
					path:    append(CopyTour(cur.path), cnd),
					visited: append([]uint64(nil), cur.visited...),
					g:       cur.g + in.Dist(last, cnd),
				}
				child.visited[cnd>>6] |= 1 << uint(cnd&63)
				// Incremental bound update: cnd leaves the unvisited set
				// (−minInc[cnd]) and becomes the endpoint (+minInc[cnd]),
				// while last stops being the endpoint (−minInc[last]).
				child.lb = cur.lb - minInc[last]
				children = append(children, child)
			}
		}
		if len(children) == 0 {
			break
		}

		sort.SliceStable(children, func(a, b int) bool {
			sa, sb := children[a].score(), children[b].score()
			if sa != sb {
				return sa < sb
			}

			return children[a].path[len(children[a].path)-1] < children[b].path[len(children[b].path)-1]
		})

		width = adaptWidth(width, opts, b, time.Since(stepStart), n-depth)
		if len(children) > width {
			children = children[:width]
		}
		front, children = children, front
	}

	if len(front) == 0 {
		return Solution{}, ErrInvalidTour
	}
	best := front[0]
	var i int
	for i = 1; i < len(front); i++ {
		if front[i].score() < best.score() {
			best = front[i]
		}
	}

	tour := best.path
	if len(tour) < n {
		// Deadline cut the search short: finish the best partial greedily
		// so the caller still receives a full tour.
		tour = completeGreedily(in, best, n)
	}
	_ = Canonicalize(tour)
	cost := round1e9(cycleCost(in, tour))

	return Solution{
		Tour:     tour,
		Cost:     cost,
		Strategy: BeamSearch,
		Elapsed:  time.Since(started),
	}, nil
}

// minIncident returns, per node, the weight of its cheapest incident
// edge. Summing these over unvisited nodes never overestimates the cost
// of completing the cycle, which keeps the beam's ranking admissible.
func minIncident(in *instance.Instance) []float64 {
	n := in.N()
	out := make([]float64, n)

	var i, j int
	for i = 0; i < n; i++ {
		m := math.Inf(1)
		for j = 0; j < n; j++ {
			if j != i && in.Dist(i, j) < m {
				m = in.Dist(i, j)
			}
		}
		out[i] = m
	}

	return out
}

// initialWidth picks the starting beam width from the instance size:
// small instances afford near-exhaustive beams, mid-size ones a width
// proportional to n, everything else the configured maximum.
func initialWidth(n int, opts Options) int {
	switch {
	case n <= 20:
		w := n
		if w < opts.MinBeamWidth {
			w = opts.MinBeamWidth
		}
		if w > opts.MaxBeamWidth {
			w = opts.MaxBeamWidth
		}

		return w
	case n <= 50:
		w := n / 3
		if w < opts.MinBeamWidth {
			w = opts.MinBeamWidth
		}
		if w > opts.MaxBeamWidth {
			w = opts.MaxBeamWidth
		}

		return w
	default:
		return opts.MaxBeamWidth
	}
}

// adaptWidth shrinks the beam when the projected cost of the remaining
// steps at the current width exceeds the remaining budget, and re-grows
// it (up to MaxBeamWidth) when there is slack. Unlimited budgets keep
// the width untouched.
func adaptWidth(width int, opts Options, b Budget, lastStep time.Duration, stepsLeft int) int {
	if b.Unlimited() || stepsLeft <= 0 || lastStep <= 0 {
		return width
	}
	projected := time.Duration(stepsLeft) * lastStep
	remaining := b.Remaining()

	switch {
	case projected > remaining && width > opts.MinBeamWidth:
		width--
	case projected*2 < remaining && width < opts.MaxBeamWidth:
		width++
	}

	return width
}

// completeGreedily extends a partial beam state to a full tour by
// repeated nearest-unvisited hops; used only when the deadline expires
// mid-search.
func completeGreedily(in *instance.Instance, s *beamState, n int) []int {
	tour := CopyTour(s.path)
	visited := make([]bool, n)

	var i int
	for i = 0; i < len(tour); i++ {
		visited[tour[i]] = true
	}
	cur := tour[len(tour)-1]
	for len(tour) < n {
		next := -1
		bestD := math.Inf(1)
		var j int
		for j = 0; j < n; j++ {
			if !visited[j] && in.Dist(cur, j) < bestD {
				bestD = in.Dist(cur, j)
				next = j
			}
		}
		visited[next] = true
		tour = append(tour, next)
		cur = next
	}

	return tour
}
