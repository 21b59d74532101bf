package beam

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/alexiusacademia/rcmn/internal/aci"
	"github.com/cpmech/gosl/chk"
)

func singlyExample() Input {
	return NewInput(SinglyOneLayer, 12, 24, 4, 60).WithTension(1.5)
}

func doublyExample() Input {
	return NewInput(DoublyOneLayer, 12, 24, 4, 60).WithTension(3).WithCompression(1)
}

func TestSinglyOneLayer(tst *testing.T) {

	chk.PrintTitle("singly reinforced, one layer")

	res, err := Solve(singlyExample())
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}

	chk.Float64(tst, "a", 1e-4, res.A, 2.2059)
	chk.Float64(tst, "c", 1e-3, res.C, 2.595)
	chk.Float64(tst, "d", 1e-15, res.D, 21.5)
	chk.Float64(tst, "dt", 1e-15, res.Dt, 21.5)
	chk.Float64(tst, "β1", 1e-15, res.Beta1, 0.85)
	chk.Float64(tst, "εt", 1e-5, res.EpsilonT, 0.02185)
	chk.Float64(tst, "φ", 1e-15, res.Phi, 0.90)
	chk.Float64(tst, "Mn (kip-ft)", 0.05, res.Mn/12, 153.0)
	chk.Float64(tst, "φMn (kip-ft)", 0.05, res.PhiMn/12, 137.7)
	chk.Float64(tst, "T = Cc", 1e-12, res.T, res.Cc)
	chk.Int(tst, "iterations", res.Iterations, 0)
	chk.Int(tst, "layers", len(res.Layers), 1)

	if !res.Converged {
		tst.Errorf("closed form must report converged")
	}
	if err := res.Check(); err != nil {
		tst.Errorf("Check: %v", err)
	}
	if res.Control() != aci.TensionControlled {
		tst.Errorf("expected tension-controlled, got %v", res.Control())
	}
}

func TestSinglyTwoLayers(tst *testing.T) {

	chk.PrintTitle("singly reinforced, two layers")

	// combined area split evenly at h-2.5 and h-4.5
	split, err := Solve(NewInput(SinglyTwoLayer, 12, 24, 4, 60).WithTension(3))
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	explicit, err := Solve(NewInput(SinglyTwoLayer, 12, 24, 4, 60).
		WithTensionLayers(Layer{Area: 1.5, Depth: 21.5}, Layer{Area: 1.5, Depth: 19.5}))
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	if !reflect.DeepEqual(split, explicit) {
		tst.Errorf("even split differs from explicit layers:\n%+v\n%+v", split, explicit)
	}

	a := 3 * 60 / (0.85 * 4 * 12)
	c := a / 0.85
	chk.Float64(tst, "a", 1e-12, split.A, a)
	chk.Float64(tst, "c", 1e-12, split.C, c)
	chk.Float64(tst, "d centroid", 1e-12, split.D, 20.5)
	chk.Float64(tst, "dt extreme", 1e-15, split.Dt, 21.5)
	chk.Float64(tst, "εt at extreme layer", 1e-12, split.EpsilonT, 0.003*(21.5-c)/c)

	// per-layer moments about the shared block equal the centroid form
	chk.Float64(tst, "Mn", 1e-9, split.Mn, 1.5*60*(21.5-a/2)+1.5*60*(19.5-a/2))
	chk.Float64(tst, "Mn centroid", 1e-9, split.Mn, 3*60*(20.5-a/2))
}

func TestSinglyUnequalLayers(tst *testing.T) {

	chk.PrintTitle("singly reinforced, unequal layers")

	in := NewInput(SinglyTwoLayer, 14, 28, 5, 60).
		WithTensionLayers(Layer{Area: 2.0, Depth: 25.5}, Layer{Area: 1.0, Depth: 22.5})
	res, err := Solve(in)
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}

	beta1 := aci.Beta1Ksi(5)
	a := 3 * 60 / (0.85 * 5 * 14)
	chk.Float64(tst, "β1", 1e-15, res.Beta1, 0.80)
	chk.Float64(tst, "a", 1e-12, res.A, a)
	chk.Float64(tst, "c", 1e-12, res.C, a/beta1)
	chk.Float64(tst, "d", 1e-12, res.D, (2*25.5+22.5)/3)
	chk.Float64(tst, "dt", 1e-15, res.Dt, 25.5)
	chk.Float64(tst, "Mn", 1e-9, res.Mn, 2*60*(25.5-a/2)+1*60*(22.5-a/2))
}

func TestDoublyOneLayer(tst *testing.T) {

	chk.PrintTitle("doubly reinforced, one layer each")

	res, err := Solve(doublyExample())
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	if !res.Converged {
		tst.Fatalf("expected convergence, got %d iterations, imbalance %g", res.Iterations, res.Imbalance())
	}
	if res.Iterations > MaxIterations {
		tst.Errorf("iterations %d exceed the bound", res.Iterations)
	}
	if math.Abs(res.Imbalance()) >= Tolerance {
		tst.Errorf("|T-(Cc+Cs)| = %g", math.Abs(res.Imbalance()))
	}

	chk.Float64(tst, "T", 1e-12, res.T, 180)
	chk.Float64(tst, "c", 1e-4, res.C, 4.25399)
	chk.Float64(tst, "a", 1e-12, res.A, 0.85*res.C)
	chk.Float64(tst, "Cc", 1e-12, res.Cc, 0.85*4*12*res.A)
	chk.Float64(tst, "εt", 1e-5, res.EpsilonT, 0.012162)
	chk.Float64(tst, "φ", 1e-15, res.Phi, 0.90)
	chk.Float64(tst, "Mn (kip-ft)", 0.01, res.Mn/12, 293.508)
	chk.Float64(tst, "φMn", 1e-12, res.PhiMn, 0.9*res.Mn)

	// compression steel is elastic at this depth
	comp := res.Layers[1]
	if comp.Kind != CompressionLayer {
		tst.Fatalf("second layer should be compression, got %v", comp.Kind)
	}
	if comp.Yielded {
		tst.Errorf("compression steel should not yield")
	}
	fs := aci.Es * 0.003 * (res.C - 2.5) / res.C
	chk.Float64(tst, "f's net", 1e-9, comp.Stress, fs-0.85*4)
	chk.Float64(tst, "Cs", 1e-9, res.Cs, comp.Force)
	chk.Float64(tst, "Mn statics", 1e-9, res.Mn, res.Cc*(21.5-res.A/2)+res.Cs*(21.5-2.5))
}

func TestDoublyTwoTensionOneCompression(tst *testing.T) {

	chk.PrintTitle("doubly reinforced, two tension layers, one compression")

	res, err := Solve(NewInput(DoublyTwoTensionOneCompression, 12, 24, 4, 60).WithTension(3).WithCompression(3))
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	if !res.Converged {
		tst.Fatalf("expected convergence, imbalance %g", res.Imbalance())
	}
	chk.Float64(tst, "d", 1e-12, res.D, 20.5)
	chk.Float64(tst, "dt", 1e-15, res.Dt, 21.5)
	chk.Float64(tst, "c", 1e-3, res.C, 3.43533)
	chk.Float64(tst, "εt", 1e-12, res.EpsilonT, 0.003*(21.5-res.C)/res.C)
	chk.Float64(tst, "Mn (kip-ft)", 0.05, res.Mn/12, 280.324)
	chk.Int(tst, "layers", len(res.Layers), 3)
}

func TestDoublyTwoTensionTwoCompression(tst *testing.T) {

	chk.PrintTitle("doubly reinforced, two layers each")

	res, err := Solve(NewInput(DoublyTwoTensionTwoCompression, 12, 24, 4, 60).WithTension(3).WithCompression(1))
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	if !res.Converged {
		tst.Fatalf("expected convergence, imbalance %g", res.Imbalance())
	}
	chk.Int(tst, "iterations", res.Iterations, 9)
	chk.Int(tst, "layers", len(res.Layers), 4)
	chk.Float64(tst, "d", 1e-12, res.D, 20.5)
	chk.Float64(tst, "c", 1e-4, res.C, 4.66277)
	chk.Float64(tst, "Mn (kip-ft)", 0.01, res.Mn/12, 277.016)

	// each compression layer uses its own strain
	var cs, mn float64
	for _, l := range res.Layers[2:] {
		if l.Kind != CompressionLayer {
			tst.Fatalf("expected a compression layer, got %v", l.Kind)
		}
		strain := 0.003 * (res.C - l.Depth) / res.C
		fs := math.Max(-60, math.Min(60, aci.Es*strain))
		chk.Float64(tst, "εs'", 1e-15, l.Strain, strain)
		chk.Float64(tst, "Cs layer", 1e-9, l.Force, l.Area*(fs-0.85*4))
		cs += l.Area * (fs - 0.85*4)
		mn += l.Force * (res.D - l.Depth)
	}
	chk.Float64(tst, "Cs", 1e-9, res.Cs, cs)
	chk.Float64(tst, "Mn statics", 1e-9, res.Mn, res.Cc*(res.D-res.A/2)+mn)

	// the deeper layer sits close to the neutral axis and nets a small tension
	if res.Layers[3].Force >= 0 {
		tst.Errorf("d'=4.5 layer force %g should be negative", res.Layers[3].Force)
	}
}

func TestDoublyNonConvergence(tst *testing.T) {

	chk.PrintTitle("doubly reinforced, iteration budget exhausted")

	// the multiplicative update oscillates slowly for heavy, split compression steel
	in := NewInput(DoublyTwoTensionTwoCompression, 12, 24, 4, 60).WithTension(3).WithCompression(3)
	res, err := Solve(in)
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	if res.Converged {
		tst.Fatalf("expected an unconverged result")
	}
	chk.Int(tst, "iterations", res.Iterations, MaxIterations)
	if math.Abs(res.Imbalance()) < 1 {
		tst.Errorf("imbalance unexpectedly small: %g", res.Imbalance())
	}
	if res.C <= 0 || res.Mn <= 0 || math.IsNaN(res.PhiMn) {
		tst.Errorf("last trial state should be usable: %+v", res)
	}
	if err := res.Check(); !errors.Is(err, ErrNonConvergence) {
		tst.Errorf("Check = %v, want ErrNonConvergence", err)
	}
	chk.Int(tst, "layers", len(res.Layers), 4)
}

func TestDoublyWithoutCompressionSteel(tst *testing.T) {

	chk.PrintTitle("doubly reinforced with As' = 0 reduces to singly")

	singly, err := Solve(singlyExample())
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	doubly, err := Solve(NewInput(DoublyOneLayer, 12, 24, 4, 60).WithTension(1.5).WithCompression(0))
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	if !doubly.Converged {
		tst.Fatalf("expected convergence")
	}
	chk.Float64(tst, "Cs", 1e-15, doubly.Cs, 0)
	chk.Float64(tst, "a", 1e-4, doubly.A, singly.A)
	chk.Float64(tst, "c", 1e-4, doubly.C, singly.C)
	chk.Float64(tst, "εt", 1e-5, doubly.EpsilonT, singly.EpsilonT)
	chk.Float64(tst, "Mn", 0.03, doubly.Mn, singly.Mn)
	chk.Float64(tst, "φMn", 0.03, doubly.PhiMn, singly.PhiMn)
}

func TestIdempotent(tst *testing.T) {

	chk.PrintTitle("repeated solves are identical")

	inputs := []Input{
		singlyExample(),
		NewInput(SinglyTwoLayer, 12, 24, 4, 60).WithTension(3),
		doublyExample(),
		NewInput(DoublyTwoTensionOneCompression, 12, 24, 4, 60).WithTension(3).WithCompression(3),
		NewInput(DoublyTwoTensionTwoCompression, 12, 24, 4, 60).WithTension(3).WithCompression(3),
	}
	for _, in := range inputs {
		first, err1 := Solve(in)
		second, err2 := Solve(in)
		if err1 != nil || err2 != nil {
			tst.Fatalf("%v: %v / %v", in.Config, err1, err2)
		}
		if !reflect.DeepEqual(first, second) {
			tst.Errorf("%v: results differ", in.Config)
		}
	}
}

func TestDegenerateInputs(tst *testing.T) {

	chk.PrintTitle("degenerate inputs fail explicitly")

	cases := []struct {
		name string
		in   Input
		want error
	}{
		{"singly As=0", NewInput(SinglyOneLayer, 12, 24, 4, 60).WithTension(0), ErrInvalidSection},
		{"singly two layers As=0", NewInput(SinglyTwoLayer, 12, 24, 4, 60).WithTension(0, 0), ErrInvalidSection},
		{"doubly As=As'=0", NewInput(DoublyOneLayer, 12, 24, 4, 60).WithTension(0).WithCompression(0), ErrInvalidSection},
		{"negative area", NewInput(SinglyOneLayer, 12, 24, 4, 60).WithTension(-1), ErrInvalidInput},
		{"zero width", NewInput(SinglyOneLayer, 0, 24, 4, 60).WithTension(1.5), ErrInvalidInput},
		{"negative height", NewInput(SinglyOneLayer, 12, -24, 4, 60).WithTensionLayers(Layer{1.5, 21.5}), ErrInvalidInput},
		{"zero fc", NewInput(SinglyOneLayer, 12, 24, 0, 60).WithTension(1.5), ErrInvalidInput},
		{"NaN fy", NewInput(SinglyOneLayer, 12, 24, 4, math.NaN()).WithTension(1.5), ErrInvalidInput},
		{"missing compression", NewInput(DoublyOneLayer, 12, 24, 4, 60).WithTension(3), ErrInvalidInput},
		{"too many tension layers", NewInput(SinglyOneLayer, 12, 24, 4, 60).WithTension(1, 1), ErrInvalidInput},
		{"depth beyond h", NewInput(SinglyOneLayer, 12, 24, 4, 60).WithTensionLayers(Layer{1.5, 25}), ErrInvalidInput},
		{"unknown config", Input{Config: Config(42)}, ErrInvalidInput},
		// compression steel below the trial neutral axis drives Cc+Cs negative
		{"negative resultant", NewInput(DoublyOneLayer, 12, 24, 4, 60).
			WithTension(3).WithCompressionLayers(Layer{Area: 10, Depth: 20}), ErrInvalidSection},
	}
	for _, c := range cases {
		res, err := Solve(c.in)
		if !errors.Is(err, c.want) {
			tst.Errorf("%s: err = %v, want %v", c.name, err, c.want)
		}
		if res != nil {
			tst.Errorf("%s: expected nil result, got %+v", c.name, res)
		}
	}
}

func TestNextTrial(tst *testing.T) {

	chk.PrintTitle("iteration update guards")

	c, err := nextTrial(4, 180, 90)
	if err != nil {
		tst.Fatalf("nextTrial: %v", err)
	}
	chk.Float64(tst, "scaled c", 1e-15, c, 8)

	if _, err := nextTrial(4, 180, 0); !errors.Is(err, ErrDegenerateEquilibrium) {
		tst.Errorf("zero resultant: %v", err)
	}
	if _, err := nextTrial(4, 180, -10); !errors.Is(err, ErrInvalidSection) {
		tst.Errorf("negative resultant: %v", err)
	}
}

func TestMonotonicInTensionArea(tst *testing.T) {

	chk.PrintTitle("capacity trends with tension area")

	var prev *Result
	for as := 0.5; as <= 8.0; as += 0.25 {
		res, err := Solve(NewInput(SinglyOneLayer, 12, 24, 4, 60).WithTension(as))
		if err != nil {
			tst.Fatalf("As=%g: %v", as, err)
		}
		if prev != nil {
			if res.A <= prev.A || res.C <= prev.C {
				tst.Errorf("As=%g: a or c did not increase", as)
			}
			if res.EpsilonT >= prev.EpsilonT {
				tst.Errorf("As=%g: εt did not decrease", as)
			}
			if res.Phi > prev.Phi {
				tst.Errorf("As=%g: φ increased %g > %g", as, res.Phi, prev.Phi)
			}
			if res.Mn <= prev.Mn {
				tst.Errorf("As=%g: Mn did not increase", as)
			}
		}
		prev = res
	}
	// the range reaches past the tension-controlled limit
	if prev.Control() == aci.TensionControlled {
		tst.Errorf("largest area should leave the tension-controlled region, εt=%g", prev.EpsilonT)
	}
}

func TestHighStrengthConcrete(tst *testing.T) {

	chk.PrintTitle("β1 follows f'c in ksi")

	res, err := Solve(NewInput(SinglyOneLayer, 12, 24, 6, 60).WithTension(1.5))
	if err != nil {
		tst.Fatalf("Solve failed: %v", err)
	}
	chk.Float64(tst, "β1", 1e-15, res.Beta1, 0.75)
	chk.Float64(tst, "c", 1e-12, res.C, res.A/0.75)
}
