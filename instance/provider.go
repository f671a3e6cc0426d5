package instance

import (
	"github.com/carlosrod723/TSP-Optimization-Framework/memopt"
)

// provider is the internal representation behind Dist lookups. Swapping
// the provider changes memory footprint, never the distances (beyond the
// documented float32 quantization of the reduced-precision policy).
type provider interface {
	at(i, j int) float64
}

// denseProvider stores the full matrix linearized as w[i*n+j].
// This is the fastest representation and the default for small instances.
type denseProvider struct {
	n int
	w []float64
}

func (p *denseProvider) at(i, j int) float64 { return p.w[i*p.n+j] }

// float32Provider halves the dense footprint at ~1e-7 relative error.
// The memory optimizer refuses to advise it when the caller's quality
// threshold is tighter than that bound.
type float32Provider struct {
	n int
	w []float32
}

func (p *float32Provider) at(i, j int) float64 { return float64(p.w[i*p.n+j]) }

// coordProvider computes distances on demand from coordinates, using
// O(n) memory. Lookups cost one metric evaluation.
type coordProvider struct {
	coords [][2]float64
	metric Metric
}

func (p *coordProvider) at(i, j int) float64 {
	if i == j {
		return 0
	}

	return p.metric(p.coords[i], p.coords[j])
}

// ApplyPolicy swaps the representation behind Dist according to the
// memory optimizer's advice. It is invoked at most once per solve call,
// before any strategy runs, and is transparent to all downstream lookups.
//
// Contracts:
//   - memopt.PolicyOnTheFly requires the instance to carry coordinates
//     (ErrNoCoordinates otherwise).
//   - memopt.PolicySpill requires a non-empty spillDir (ErrNoSpillDir);
//     the spill file is owned by the instance and removed on Close.
//
// Complexity: O(n²) for conversions that materialize or stream the
// matrix, O(1) for a policy the instance already satisfies.
func (in *Instance) ApplyPolicy(policy memopt.Policy, spillDir string) error {
	switch policy {
	case memopt.PolicyDense:
		if _, ok := in.prov.(*denseProvider); ok {
			return nil
		}
		in.prov = in.rebuildDense()

		return nil

	case memopt.PolicyFloat32:
		if _, ok := in.prov.(*float32Provider); ok {
			return nil
		}
		in.prov = in.quantizeFloat32()

		return nil

	case memopt.PolicyOnTheFly:
		if in.coords == nil {
			return ErrNoCoordinates
		}
		in.prov = &coordProvider{coords: in.coords, metric: in.metric}

		return nil

	case memopt.PolicySpill:
		if spillDir == "" {
			return ErrNoSpillDir
		}
		sp, err := newSpillProvider(in, spillDir)
		if err != nil {
			return err
		}
		in.prov = sp

		return nil

	default:
		return memopt.ErrUnknownPolicy
	}
}

// Close releases provider-owned resources (the spill file, when present).
// It is safe to call on instances that never spilled.
func (in *Instance) Close() error {
	if sp, ok := in.prov.(*spillProvider); ok {
		return sp.close()
	}

	return nil
}

// rebuildDense materializes the dense float64 buffer from the current
// provider.
func (in *Instance) rebuildDense() *denseProvider {
	n := in.n
	w := make([]float64, n*n)

	var (
		i, j int
		d    float64
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = in.prov.at(i, j)
			w[i*n+j] = d
			w[j*n+i] = d
		}
	}

	return &denseProvider{n: n, w: w}
}

// quantizeFloat32 converts the current representation to float32 storage.
func (in *Instance) quantizeFloat32() *float32Provider {
	n := in.n
	w := make([]float32, n*n)

	var (
		i, j int
		d    float32
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d = float32(in.prov.at(i, j))
			w[i*n+j] = d
			w[j*n+i] = d
		}
	}

	return &float32Provider{n: n, w: w}
}
