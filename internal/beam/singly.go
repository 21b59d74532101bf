package beam

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/rcmn/internal/aci"
	"gonum.org/v1/gonum/floats"
)

// tensionGroup summarizes the tension layers of a section
type tensionGroup struct {
	areas  []float64
	depths []float64
	as     float64 // total area
	d      float64 // centroid depth
	dt     float64 // extreme layer depth
}

func newTensionGroup(layers []Layer) (tensionGroup, error) {
	g := tensionGroup{
		areas:  make([]float64, len(layers)),
		depths: make([]float64, len(layers)),
	}
	for i, l := range layers {
		g.areas[i], g.depths[i] = l.Area, l.Depth
	}
	g.as = floats.Sum(g.areas)
	if g.as <= 0 {
		return g, fmt.Errorf("%w: no tension reinforcement (As=%.4g)", ErrInvalidSection, g.as)
	}
	g.d = floats.Dot(g.areas, g.depths) / g.as
	g.dt = floats.Max(g.depths)
	return g, nil
}

// solveSingly computes the capacity of a section without compression steel.
// All tension steel is assumed to yield, so equilibrium has a closed form:
//
//	T = ΣAs·fy = 0.85·f'c·b·a
//	Mn = Σ As_i·fy·(d_i - a/2)
func solveSingly(in Input) (*Result, error) {
	fc, fy, b := in.Materials.Fc, in.Materials.Fy, in.Geometry.Width

	g, err := newTensionGroup(in.Tension)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Config:    in.Config,
		Beta1:     aci.Beta1Ksi(fc),
		D:         g.d,
		Dt:        g.dt,
		Converged: true,
	}

	// T = C → As*fy = 0.85*f'c*b*a
	result.T = g.as * fy
	result.A = result.T / (aci.StressBlockFactor * fc * b)
	result.C = result.A / result.Beta1
	if result.C <= 0 || !finite(result.C) {
		return nil, fmt.Errorf("%w: neutral axis depth c=%.4g", ErrInvalidSection, result.C)
	}
	result.Cc = aci.StressBlockFactor * fc * b * result.A

	result.EpsilonT = aci.EpsilonCU * (g.dt - result.C) / result.C

	es := in.Materials.ModulusOrDefault()
	for _, l := range in.Tension {
		strain := aci.EpsilonCU * (result.C - l.Depth) / result.C
		result.Layers = append(result.Layers, LayerResult{
			Kind:    TensionLayer,
			Area:    l.Area,
			Depth:   l.Depth,
			Strain:  strain,
			Stress:  fy,
			Force:   l.Area * fy,
			Yielded: math.Abs(strain)*es >= fy,
		})
		// Each layer acts at its own depth about the shared compression block
		result.Mn += l.Area * fy * (l.Depth - result.A/2)
	}

	result.Phi = aci.Phi(result.EpsilonT)
	result.PhiMn = result.Phi * result.Mn

	return result, nil
}
