package report

import (
	"fmt"
	"io"
	"time"

	"github.com/alexiusacademia/rcmn/internal/beam"
	"github.com/alexiusacademia/rcmn/internal/units"
	"github.com/phpdave11/gofpdf"
)

// PDF writes a one page calculation sheet. The core fonts are cp1252, so
// Greek symbols are spelled out.
func PDF(w io.Writer, in beam.Input, res *beam.Result, sys units.System, title string) error {
	if title == "" {
		title = "Flexural Capacity of RC Beam"
	}
	out := sys.Convert(res)
	lu, su, fu, mu := sys.LengthUnit(), sys.StressUnit(), sys.ForceUnit(), sys.MomentUnit()

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(in.Config.Title()))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(10)

	rows := func(heading string, pairs [][2]string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, heading)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, p := range pairs {
			pdf.CellFormat(80, 6, tr(p[0]), "1", 0, "L", false, 0, "")
			pdf.CellFormat(70, 6, tr(p[1]), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(4)
	}

	inputs := [][2]string{
		{"Beam width b", fmt.Sprintf("%.2f %s", sys.Length(in.Geometry.Width), lu)},
		{"Beam depth h", fmt.Sprintf("%.2f %s", sys.Length(in.Geometry.Height), lu)},
		{"f'c", fmt.Sprintf("%.1f %s", sys.ConcreteStress(in.Materials.Fc), sys.ConcreteStressUnit())},
		{"fy", fmt.Sprintf("%.1f %s", sys.Stress(in.Materials.Fy), su)},
	}
	for i, l := range in.Tension {
		inputs = append(inputs, [2]string{
			fmt.Sprintf("Tension steel %d (As, d)", i+1),
			fmt.Sprintf("%.2f %s @ %.2f %s", sys.Area(l.Area), sys.AreaUnit(), sys.Length(l.Depth), lu),
		})
	}
	for i, l := range in.Compression {
		inputs = append(inputs, [2]string{
			fmt.Sprintf("Compression steel %d (A's, d')", i+1),
			fmt.Sprintf("%.2f %s @ %.2f %s", sys.Area(l.Area), sys.AreaUnit(), sys.Length(l.Depth), lu),
		})
	}
	rows("Input", inputs)

	results := [][2]string{
		{"beta1", fmt.Sprintf("%.4f", out.Beta1)},
		{"Neutral axis depth c", fmt.Sprintf("%.3f %s", out.C, lu)},
		{"Stress block depth a", fmt.Sprintf("%.3f %s", out.A, lu)},
		{"Net tensile strain eps_t", fmt.Sprintf("%.6f", out.EpsilonT)},
		{"Concrete force Cc", fmt.Sprintf("%.2f %s", out.Cc, fu)},
		{"Steel compression Cs", fmt.Sprintf("%.2f %s", out.Cs, fu)},
		{"Tension T", fmt.Sprintf("%.2f %s", out.T, fu)},
		{"Nominal moment Mn", fmt.Sprintf("%.2f %s", out.Mn, mu)},
		{"Strength reduction phi", fmt.Sprintf("%.3f", out.Phi)},
		{"Design moment phi*Mn", fmt.Sprintf("%.2f %s", out.PhiMn, mu)},
		{"Section", Status(res)},
	}
	if in.Config.IsDoubly() {
		results = append(results, [2]string{"Iterations", fmt.Sprintf("%d", out.Iterations)})
	}
	rows("Results", results)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Reinforcement layers")
	pdf.Ln(8)
	widths := []float64{30, 25, 25, 30, 30, 30}
	head := []string{
		"Layer",
		"Area (" + sys.AreaUnit() + ")",
		"Depth (" + lu + ")",
		"Strain",
		"Stress (" + su + ")",
		"Force (" + fu + ")",
	}
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range head {
		pdf.CellFormat(widths[i], 6, tr(h), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 9)
	for _, l := range out.Layers {
		cells := []string{
			l.Kind,
			fmt.Sprintf("%.2f", l.Area),
			fmt.Sprintf("%.2f", l.Depth),
			fmt.Sprintf("%.6f", l.Strain),
			fmt.Sprintf("%.2f", l.Stress),
			fmt.Sprintf("%.2f", l.Force),
		}
		for i, c := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	if !res.Converged {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, fmt.Sprintf(
			"The neutral axis iteration did not converge after %d iterations; the values above are from the last trial.",
			res.Iterations), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
