package batch

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/carlosrod723/TSP-Optimization-Framework/instance"
	"github.com/carlosrod723/TSP-Optimization-Framework/solver"
)

// Sentinel errors.
var (
	// ErrIncompleteBatch indicates one or more partitions failed to
	// solve; the concrete BatchError wrapping it carries the partials.
	ErrIncompleteBatch = errors.New("batch: incomplete batch")

	// ErrBadOptions indicates inconsistent batch options.
	ErrBadOptions = errors.New("batch: invalid options")

	// ErrMissingResult indicates a Merge input lacking a solution for
	// some partition handle.
	ErrMissingResult = errors.New("batch: missing partition result")
)

// SolveFunc solves one sub-instance under a budget. Injected by the
// caller so batch stays agnostic of strategy selection.
type SolveFunc func(in *instance.Instance, b solver.Budget) (solver.Solution, error)

// Options tunes batch execution. Zero values select the defaults.
type Options struct {
	// Workers bounds concurrent partition solves. 0 = default (4).
	Workers int

	// Cache, when non-nil, short-circuits partitions whose node sets
	// were already solved (identical sets recur across retries).
	Cache *Cache
}

// DefaultOptions returns the calibrated defaults.
func DefaultOptions() Options {
	return Options{Workers: 4}
}

func (o Options) withDefaults() (Options, error) {
	if o.Workers == 0 {
		o.Workers = DefaultOptions().Workers
	}
	if o.Workers < 1 {
		return o, ErrBadOptions
	}

	return o, nil
}

// BatchError reports a partially failed batch: which handles finished
// (with their solutions), which did not, and the underlying failures.
// errors.Is(err, ErrIncompleteBatch) matches it.
type BatchError struct {
	// Completed maps partition handle to its solution.
	Completed map[int]solver.Solution

	// Missing lists the handles that produced no solution, ascending.
	Missing []int

	// Causes maps each missing handle to its failure.
	Causes map[int]error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch: incomplete batch: %d/%d partitions solved, missing %v",
		len(e.Completed), len(e.Completed)+len(e.Missing), e.Missing)
}

func (e *BatchError) Unwrap() error { return ErrIncompleteBatch }

// Cache memoizes partition solutions by node-set identity. Safe for
// concurrent use.
type Cache struct {
	mu sync.RWMutex
	m  map[uint64]solver.Solution
}

// NewCache returns an empty solution cache.
func NewCache() *Cache {
	return &Cache{m: make(map[uint64]solver.Solution)}
}

// Len reports the number of cached solutions.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.m)
}

func (c *Cache) get(key uint64) (solver.Solution, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.m[key]

	return s, ok
}

func (c *Cache) put(key uint64, s solver.Solution) {
	c.mu.Lock()
	c.m[key] = s
	c.mu.Unlock()
}

// nodesKey hashes a partition's global node ids (order-insensitively,
// via an ascending copy) into a 64-bit FNV-1a cache key.
func nodesKey(nodes []int) uint64 {
	sorted := append([]int(nil), nodes...)
	sort.Ints(sorted)

	h := fnv.New64a()
	var buf [8]byte
	for _, v := range sorted {
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		_, _ = h.Write(buf[:])
	}

	return h.Sum64()
}
