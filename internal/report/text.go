// Package report renders capacity results as a console report or a PDF.
package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/rcmn/internal/aci"
	"github.com/alexiusacademia/rcmn/internal/beam"
	"github.com/alexiusacademia/rcmn/internal/diagram"
	"github.com/alexiusacademia/rcmn/internal/units"
)

const (
	banner = "═══════════════════════════════════════════════════════════════"
	rule   = "───────────────────────────────────────────────────────────────"
)

// Text writes the console report for a solved section. in and res are in
// the solver's units; values are printed in sys.
func Text(w io.Writer, in beam.Input, res *beam.Result, sys units.System) error {
	out := sys.Convert(res)
	lu, su, fu, mu := sys.LengthUnit(), sys.StressUnit(), sys.ForceUnit(), sys.MomentUnit()

	fmt.Fprintln(w)
	fmt.Fprintln(w, banner)
	fmt.Fprintf(w, "     %s\n", strings.ToUpper(in.Config.Title()))
	fmt.Fprintln(w, banner)
	fmt.Fprintln(w)

	section(w, "INPUT DATA:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Beam Width (b):\t%.2f %s\n", sys.Length(in.Geometry.Width), lu)
	fmt.Fprintf(tw, "  Beam Depth (h):\t%.2f %s\n", sys.Length(in.Geometry.Height), lu)
	fmt.Fprintf(tw, "  f'c:\t%.1f %s\n", sys.ConcreteStress(in.Materials.Fc), sys.ConcreteStressUnit())
	fmt.Fprintf(tw, "  fy:\t%.1f %s\n", sys.Stress(in.Materials.Fy), su)
	fmt.Fprintf(tw, "  Es:\t%.0f %s\n", sys.Stress(in.Materials.ModulusOrDefault()), su)
	for i, l := range in.Tension {
		fmt.Fprintf(tw, "  Tension Steel %d (As):\t%.2f %s at d = %.2f %s\n", i+1, sys.Area(l.Area), sys.AreaUnit(), sys.Length(l.Depth), lu)
	}
	for i, l := range in.Compression {
		fmt.Fprintf(tw, "  Compression Steel %d (A's):\t%.2f %s at d' = %.2f %s\n", i+1, sys.Area(l.Area), sys.AreaUnit(), sys.Length(l.Depth), lu)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	section(w, "SECTION PROPERTIES:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  β₁:\t%.4f\n", out.Beta1)
	fmt.Fprintf(tw, "  Effective depth (d):\t%.2f %s\n", out.D, lu)
	fmt.Fprintf(tw, "  Extreme layer depth (dt):\t%.2f %s\n", out.Dt, lu)
	fmt.Fprintf(tw, "  Neutral axis depth (c):\t%.3f %s\n", out.C, lu)
	fmt.Fprintf(tw, "  Compression block depth (a):\t%.3f %s\n", out.A, lu)
	if in.Config.IsDoubly() {
		fmt.Fprintf(tw, "  Iterations:\t%d\n", out.Iterations)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	section(w, "STRAIN ANALYSIS:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  εcu (concrete):\t%.6f\n", aci.EpsilonCU)
	fmt.Fprintf(tw, "  εy (steel yield):\t%.6f\n", in.Materials.Fy/in.Materials.ModulusOrDefault())
	fmt.Fprintf(tw, "  εt (extreme tension):\t%.6f\n", out.EpsilonT)
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	section(w, "REINFORCEMENT LAYERS:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Layer\tArea (%s)\tDepth (%s)\tStrain\tStress (%s)\tForce (%s)\t\n", sys.AreaUnit(), lu, su, fu)
	for _, l := range out.Layers {
		yield := ""
		if l.Yielded {
			yield = " → YIELDS"
		}
		fmt.Fprintf(tw, "  %s\t%.2f\t%.2f\t%.6f\t%.2f\t%.2f\t%s\n", l.Kind, l.Area, l.Depth, l.Strain, l.Stress, l.Force, yield)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	section(w, "INTERNAL FORCES:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Cc (concrete compression):\t%.2f %s\n", out.Cc, fu)
	if in.Config.IsDoubly() {
		fmt.Fprintf(tw, "  Cs (compression steel):\t%.2f %s\n", out.Cs, fu)
	}
	fmt.Fprintf(tw, "  T (tension steel):\t%.2f %s\n", out.T, fu)
	equilibrium := "✓"
	if !out.Converged {
		equilibrium = "⚠"
	}
	fmt.Fprintf(tw, "  Force equilibrium:\t%s\n", equilibrium)
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	section(w, "MOMENT CAPACITY:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Nominal Moment (Mn):\t%.2f %s\n", out.Mn, mu)
	fmt.Fprintf(tw, "  Strength reduction factor (φ):\t%.3f\n", out.Phi)
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)

	fmt.Fprint(w, diagram.DrawSummaryBox("DESIGN CAPACITY", []string{
		fmt.Sprintf("Mn  = %.2f %s", out.Mn, mu),
		fmt.Sprintf("φMn = %.2f %s", out.PhiMn, mu),
	}))
	fmt.Fprintln(w)

	section(w, "STATUS:")
	fmt.Fprintf(w, "  Section: %s (φ = %.3f)\n", Status(res), out.Phi)
	if !res.Converged {
		fmt.Fprintf(w, "  ⚠ Not converged after %d iterations: |T-(Cc+Cs)| = %.4g %s\n",
			res.Iterations, sys.Force(absf(res.Imbalance())), fu)
	}
	_, err := fmt.Fprintln(w)
	return err
}

// Status is the ductility classification as printed in reports.
func Status(res *beam.Result) string {
	switch res.Control() {
	case aci.TensionControlled:
		return "Tension-controlled"
	case aci.CompressionControlled:
		return "Compression-controlled"
	}
	return "Transition zone"
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
