package units

import (
	"testing"

	"github.com/alexiusacademia/rcmn/internal/beam"
	"github.com/cpmech/gosl/chk"
)

func TestParseSystem(tst *testing.T) {

	chk.PrintTitle("parse unit systems")

	for in, want := range map[string]System{"us": US, "": US, "SI": SI, " metric ": SI} {
		got, err := ParseSystem(in)
		if err != nil {
			tst.Fatalf("ParseSystem(%q): %v", in, err)
		}
		if got != want {
			tst.Errorf("ParseSystem(%q) = %v", in, got)
		}
	}
	if _, err := ParseSystem("cgs"); err == nil {
		tst.Errorf("expected an error for an unknown system")
	}
}

func TestMomentConversion(tst *testing.T) {

	chk.PrintTitle("moment conversion")

	chk.Float64(tst, "kip-ft", 1e-6, US.Moment(1835.735294), 152.977941)
	// 1 kip-ft = 1.3558179 kN-m
	chk.Float64(tst, "kN-m", 1e-6, SI.Moment(12), 1.3558179483)
	chk.String(tst, SI.MomentUnit(), "kN-m")
	chk.String(tst, US.ConcreteStressUnit(), "psi")
}

func TestToCoreUS(tst *testing.T) {

	chk.PrintTitle("US entry units to core")

	in := beam.NewInput(beam.SinglyOneLayer, 12, 24, 4000, 60).WithTension(1.5)
	core := US.ToCore(in)
	chk.Float64(tst, "f'c ksi", 1e-15, core.Materials.Fc, 4)
	chk.Float64(tst, "fy", 1e-15, core.Materials.Fy, 60)
	chk.Float64(tst, "b", 1e-15, core.Geometry.Width, 12)
	chk.Float64(tst, "As", 1e-15, core.Tension[0].Area, 1.5)

	res, err := beam.Solve(core)
	if err != nil {
		tst.Fatalf("Solve: %v", err)
	}
	chk.Float64(tst, "Mn kip-ft", 0.05, US.Convert(res).Mn, 153.0)
}

func TestToCoreSI(tst *testing.T) {

	chk.PrintTitle("SI entry units to core")

	// 300 x 600 mm, f'c 28 MPa, fy 420 MPa, As 1500 mm² at 535 mm
	in := beam.Input{
		Config:    beam.SinglyOneLayer,
		Geometry:  beam.Geometry{Width: 300, Height: 600},
		Materials: beam.Materials{Fc: 28, Fy: 420},
		Tension:   []beam.Layer{{Area: 1500, Depth: 535}},
	}
	core := SI.ToCore(in)
	chk.Float64(tst, "b in", 1e-12, core.Geometry.Width, 300/25.4)
	chk.Float64(tst, "f'c ksi", 1e-12, core.Materials.Fc, 28/MPaPerKsi)
	chk.Float64(tst, "Es default", 1e-15, core.Materials.Es, 0)
	chk.Float64(tst, "As in²", 1e-12, core.Tension[0].Area, 1500/(25.4*25.4))

	res, err := beam.Solve(core)
	if err != nil {
		tst.Fatalf("Solve: %v", err)
	}
	out := SI.Convert(res)

	// hand calculation in SI: a = As·fy/(0.85·f'c·b), Mn = As·fy·(d - a/2)
	a := 1500 * 420 / (0.85 * 28 * 300)
	mn := 1500 * 420 * (535 - a/2) / 1e6
	chk.Float64(tst, "a mm", 1e-9, out.A, a)
	chk.Float64(tst, "Mn kN-m", 1e-6, out.Mn, mn)
	chk.Float64(tst, "T kN", 1e-6, out.T, 1500*420/1e3)
	chk.String(tst, out.Units.String(), "si")
	chk.Int(tst, "layers", len(out.Layers), 1)
}
