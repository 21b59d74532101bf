package beam

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/rcmn/internal/aci"
)

const (
	// Tolerance on the force balance |T - (Cc + Cs)| (kip)
	Tolerance = 0.001

	// MaxIterations bounds the neutral axis iteration
	MaxIterations = 100
)

// trial is the section state for one assumed neutral axis depth
type trial struct {
	c, a   float64
	cc, cs float64
	comp   []LayerResult
}

// evaluate computes the compression resultants for a trial neutral axis
// depth c. Compression steel stress follows strain compatibility and is
// limited to ±fy; the displaced concrete 0.85·f'c is subtracted from it.
// The lower bound departs from the plain fs = min(fy, Es·εs) rule, which
// lets a layer below the neutral axis exceed yield in tension.
func evaluate(in Input, beta1, c float64) trial {
	fc, fy, b := in.Materials.Fc, in.Materials.Fy, in.Geometry.Width
	es := in.Materials.ModulusOrDefault()

	t := trial{c: c, a: beta1 * c}
	t.cc = aci.StressBlockFactor * fc * b * t.a

	t.comp = make([]LayerResult, len(in.Compression))
	for i, l := range in.Compression {
		strain := aci.EpsilonCU * (c - l.Depth) / c
		fs := math.Max(-fy, math.Min(fy, es*strain))
		net := fs - aci.StressBlockFactor*fc
		t.comp[i] = LayerResult{
			Kind:    CompressionLayer,
			Area:    l.Area,
			Depth:   l.Depth,
			Strain:  strain,
			Stress:  net,
			Force:   l.Area * net,
			Yielded: math.Abs(strain)*es >= fy,
		}
		t.cs += t.comp[i].Force
	}
	return t
}

// solveDoubly finds the neutral axis of a section with compression steel.
//
// The compression steel stress depends on c, so c is found by iteration:
//
//	c₀    = d_t / 4
//	cₖ₊₁  = cₖ · T / (Cc(cₖ) + Cs(cₖ))
//
// until |T - (Cc + Cs)| < Tolerance. Tension steel is assumed to yield.
// When MaxIterations is exhausted the last evaluated state is returned with
// Converged unset.
func solveDoubly(in Input) (*Result, error) {
	fy := in.Materials.Fy

	g, err := newTensionGroup(in.Tension)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Config: in.Config,
		Beta1:  aci.Beta1Ksi(in.Materials.Fc),
		D:      g.d,
		Dt:     g.dt,
		T:      g.as * fy,
	}

	// Initial guess, below the likely neutral axis
	c := g.dt / 4

	var st trial
	for result.Iterations < MaxIterations {
		if c <= 0 || !finite(c) {
			return nil, fmt.Errorf("%w: neutral axis depth c=%.4g", ErrInvalidSection, c)
		}
		st = evaluate(in, result.Beta1, c)
		result.Iterations++

		resist := st.cc + st.cs
		if math.Abs(result.T-resist) < Tolerance {
			result.Converged = true
			break
		}
		if c, err = nextTrial(c, result.T, resist); err != nil {
			return nil, fmt.Errorf("iteration %d: %w", result.Iterations, err)
		}
	}

	result.C, result.A = st.c, st.a
	result.Cc, result.Cs = st.cc, st.cs
	result.EpsilonT = aci.EpsilonCU * (g.dt - st.c) / st.c

	es := in.Materials.ModulusOrDefault()
	for _, l := range in.Tension {
		strain := aci.EpsilonCU * (st.c - l.Depth) / st.c
		result.Layers = append(result.Layers, LayerResult{
			Kind:    TensionLayer,
			Area:    l.Area,
			Depth:   l.Depth,
			Strain:  strain,
			Stress:  fy,
			Force:   l.Area * fy,
			Yielded: math.Abs(strain)*es >= fy,
		})
	}
	result.Layers = append(result.Layers, st.comp...)

	// Mn = Cc*(d - a/2) + ΣCs*(d - d')
	result.Mn = st.cc * (g.d - st.a/2)
	for _, l := range st.comp {
		result.Mn += l.Force * (g.d - l.Depth)
	}

	result.Phi = aci.Phi(result.EpsilonT)
	result.PhiMn = result.Phi * result.Mn

	return result, nil
}

// nextTrial scales c toward force balance. The combined resultant must be
// checked before it is used as a divisor.
func nextTrial(c, t, resist float64) (float64, error) {
	if resist == 0 {
		return 0, fmt.Errorf("%w: Cc + Cs = 0 at c=%.4g", ErrDegenerateEquilibrium, c)
	}
	next := c * t / resist
	if next <= 0 || !finite(next) {
		return 0, fmt.Errorf("%w: neutral axis depth c=%.4g", ErrInvalidSection, next)
	}
	return next, nil
}
