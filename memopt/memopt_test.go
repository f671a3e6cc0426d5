package memopt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carlosrod723/TSP-Optimization-Framework/memopt"
)

func TestEstimateBytes(t *testing.T) {
	assert.Equal(t, int64(8*100*100), memopt.EstimateBytes(memopt.PolicyDense, 100))
	assert.Equal(t, int64(4*100*100), memopt.EstimateBytes(memopt.PolicyFloat32, 100))
	assert.Equal(t, int64(32*100), memopt.EstimateBytes(memopt.PolicyOnTheFly, 100))
	assert.Equal(t, int64(8*100), memopt.EstimateBytes(memopt.PolicySpill, 100))
}

func TestAdvise_UnlimitedIsDense(t *testing.T) {
	p, err := memopt.Advise(100000, false, 0, memopt.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, memopt.PolicyDense, p)
}

func TestAdvise_Ladder(t *testing.T) {
	const n = 1000 // dense 8 MB, float32 4 MB, on-the-fly 32 KB, spill 8 KB
	opts := memopt.Options{SpillDir: "/tmp"}

	cases := []struct {
		name      string
		ceiling   int64
		hasCoords bool
		want      memopt.Policy
	}{
		{"dense fits", 10 << 20, false, memopt.PolicyDense},
		{"float32 fits", 5 << 20, false, memopt.PolicyFloat32},
		{"on-the-fly fits", 64 << 10, true, memopt.PolicyOnTheFly},
		{"spill last resort", 16 << 10, false, memopt.PolicySpill},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := memopt.Advise(n, tc.hasCoords, tc.ceiling, opts)
			require.NoError(t, err)
			assert.Equal(t, tc.want, p)
		})
	}
}

func TestAdvise_NothingFits(t *testing.T) {
	// No coords, no spill dir, ceiling below float32.
	_, err := memopt.Advise(1000, false, 1<<20, memopt.DefaultOptions())
	assert.ErrorIs(t, err, memopt.ErrResourceExceeded)
}

func TestAdvise_SpillRequiresOptIn(t *testing.T) {
	// Same ceiling as the spill case above, but no SpillDir configured.
	_, err := memopt.Advise(1000, false, 16<<10, memopt.DefaultOptions())
	assert.ErrorIs(t, err, memopt.ErrResourceExceeded)
}

func TestAdvise_TightQualityForbidsFloat32(t *testing.T) {
	// Threshold within 1e-6 of exact: quantization would eat the margin.
	opts := memopt.Options{QualityThreshold: 1 + 1e-9}
	_, err := memopt.Advise(1000, false, 5<<20, opts)
	assert.ErrorIs(t, err, memopt.ErrResourceExceeded)

	// With coordinates the advisor skips to on-the-fly instead.
	p, err := memopt.Advise(1000, true, 5<<20, opts)
	require.NoError(t, err)
	assert.Equal(t, memopt.PolicyOnTheFly, p)

	// A loose threshold re-enables reduced precision.
	p, err = memopt.Advise(1000, false, 5<<20, memopt.Options{QualityThreshold: 1.3})
	require.NoError(t, err)
	assert.Equal(t, memopt.PolicyFloat32, p)
}

func TestAdvise_BadSize(t *testing.T) {
	_, err := memopt.Advise(1, false, 0, memopt.DefaultOptions())
	assert.ErrorIs(t, err, memopt.ErrBadSize)
}

func TestPolicyString(t *testing.T) {
	assert.Equal(t, "dense", memopt.PolicyDense.String())
	assert.Equal(t, "spill", memopt.PolicySpill.String())
	assert.Equal(t, "unknown", memopt.Policy(42).String())
}

func TestHeadroom(t *testing.T) {
	s := memopt.ResourceSnapshot{AllocBytes: 100}

	assert.Equal(t, int64(50), s.Headroom(150))
	assert.Equal(t, int64(0), s.Headroom(80))
	assert.Greater(t, s.Headroom(0), int64(1<<40)) // unlimited
}

func TestTakeSnapshot_ReportsLiveHeap(t *testing.T) {
	s := memopt.TakeSnapshot()
	assert.Greater(t, s.AllocBytes, int64(0))
	assert.Zero(t, s.CPUPercent)
}
