package instance

import (
	"encoding/binary"
	"math"
	"os"
	"sync"
)

// spillProvider streams the matrix from a caller-approved temporary file
// instead of holding it in memory: float32 entries, row-major, little
// endian. A single-row cache keeps sequential access patterns (nearest
// neighbor scans, cost sums) at one file read per row.
//
// The provider serializes access with a mutex; strategies are
// single-threaded per instance, and partitions never share an instance,
// so contention is limited to the merge phase.
type spillProvider struct {
	mu     sync.Mutex
	n      int
	f      *os.File
	path   string
	row    []float32 // cached row
	rowIdx int       // index of the cached row, -1 when cold
	buf    []byte    // scratch for one row of raw bytes
}

// newSpillProvider writes the full matrix of in to a fresh file under
// dir and returns a provider reading from it.
//
// Complexity: O(n²) writes once; lookups are O(1) amortized per row.
func newSpillProvider(in *Instance, dir string) (*spillProvider, error) {
	f, err := os.CreateTemp(dir, "tsp-matrix-*.f32")
	if err != nil {
		return nil, err
	}

	var (
		n   = in.n
		buf = make([]byte, 4*n)
		i   int
		j   int
	)
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			binary.LittleEndian.PutUint32(buf[4*j:], math.Float32bits(float32(in.prov.at(i, j))))
		}
		if _, err = f.Write(buf); err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())

			return nil, err
		}
	}

	return &spillProvider{
		n:      n,
		f:      f,
		path:   f.Name(),
		row:    make([]float32, n),
		rowIdx: -1,
		buf:    buf,
	}, nil
}

func (p *spillProvider) at(i, j int) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if i != p.rowIdx {
		// Cache miss: read row i in one call.
		if _, err := p.f.ReadAt(p.buf, int64(i)*int64(4*p.n)); err != nil {
			// Spill files are written by us and sized exactly; a read
			// failure means the file vanished underneath the process.
			// Surface it as +Inf so the tour cost becomes visibly wrong
			// rather than silently zero.
			return math.Inf(1)
		}
		for k := 0; k < p.n; k++ {
			p.row[k] = math.Float32frombits(binary.LittleEndian.Uint32(p.buf[4*k:]))
		}
		p.rowIdx = i
	}

	return float64(p.row[j])
}

// close releases and removes the spill file.
func (p *spillProvider) close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.f.Close()
	if rmErr := os.Remove(p.path); err == nil {
		err = rmErr
	}

	return err
}
