package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexiusacademia/rcmn/internal/aci"
	"github.com/alexiusacademia/rcmn/internal/beam"
	"github.com/alexiusacademia/rcmn/internal/diagram"
	"github.com/alexiusacademia/rcmn/internal/report"
	"github.com/alexiusacademia/rcmn/internal/units"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	capConfig string

	// Geometry and materials, in the selected unit system
	capWidth  float64
	capHeight float64
	capFc     float64
	capFy     float64
	capEs     float64

	// Reinforcement
	capAs   float64
	capAs1  float64
	capAs2  float64
	capD1   float64
	capD2   float64
	capAsc  float64
	capAsc1 float64
	capAsc2 float64
	capDp1  float64
	capDp2  float64

	// Output
	capStrict      bool
	capDiagram     bool
	capPlotFile    string
	capStrainFile  string
	capForcesFile  string
	capPDFFile     string
	capReportTitle string
)

var capacityCmd = &cobra.Command{
	Use:   "capacity",
	Short: "Compute the moment capacity of a rectangular RC beam",
	Long: `Calculate the nominal (Mn) and design (φMn) moment capacity of a
rectangular reinforced concrete beam using the Whitney stress block.

Configurations:
  singly-1      single layer tension                        (--as)
  singly-2      two layers tension                          (--as or --as1/--as2)
  doubly-1      single layer tension and compression        (--as, --asc)
  doubly-2t1c   two layers tension, one layer compression   (--as or --as1/--as2, --asc)
  doubly-2t2c   two layers tension and compression          (--as or --as1/--as2, --asc or --asc1/--asc2)

A total area on a two-layer configuration is split evenly between the layers.
Unset depths follow the standard cover: 2.5 in to the extreme layer and
2.0 in between layers.

Units (--units): us enters f'c in psi, fy in ksi, lengths in in and reports
kip-ft; si enters MPa and mm and reports kN-m.

Examples:
  # Singly reinforced 12x24 in beam with As = 1.5 in²
  rcmn capacity --config singly-1 -b 12 --height 24 --fc 4000 --fy 60 --as 1.5

  # Doubly reinforced, two tension layers, with diagrams and a PDF sheet
  rcmn capacity --config doubly-2t1c --as 3 --asc 1 --plot section.png --pdf beam.pdf

  # SI units
  rcmn capacity --units si --config singly-1 -b 300 --height 600 --fc 28 --fy 420 --as 1500`,
	RunE: runCapacity,
}

func init() {
	rootCmd.AddCommand(capacityCmd)

	f := capacityCmd.Flags()
	f.StringVarP(&capConfig, "config", "t", beam.SinglyOneLayer.String(), "Reinforcement configuration")

	// Geometry flags
	f.Float64VarP(&capWidth, "width", "b", 0, "Beam width (in | mm) [default 12 in]")
	f.Float64Var(&capHeight, "height", 0, "Beam total depth (in | mm) [default 24 in]")

	// Material flags
	f.Float64Var(&capFc, "fc", 0, "Concrete compressive strength f'c (psi | MPa) [default 4000 psi]")
	f.Float64Var(&capFy, "fy", 0, "Steel yield strength fy (ksi | MPa) [default 60 ksi]")
	f.Float64Var(&capEs, "es", 0, "Steel modulus Es (ksi | MPa) [default 29000 ksi]")

	// Reinforcement flags
	f.Float64Var(&capAs, "as", 0, "Total tension reinforcement As (in² | mm²)")
	f.Float64Var(&capAs1, "as1", 0, "Tension reinforcement, extreme layer")
	f.Float64Var(&capAs2, "as2", 0, "Tension reinforcement, inner layer")
	f.Float64Var(&capD1, "d1", 0, "Depth of the extreme tension layer (in | mm)")
	f.Float64Var(&capD2, "d2", 0, "Depth of the inner tension layer (in | mm)")
	f.Float64Var(&capAsc, "asc", 0, "Total compression reinforcement A's (in² | mm²)")
	f.Float64Var(&capAsc1, "asc1", 0, "Compression reinforcement, outer layer")
	f.Float64Var(&capAsc2, "asc2", 0, "Compression reinforcement, inner layer")
	f.Float64Var(&capDp1, "dp1", 0, "Depth d' of the outer compression layer (in | mm)")
	f.Float64Var(&capDp2, "dp2", 0, "Depth d' of the inner compression layer (in | mm)")

	// Output flags
	f.BoolVar(&capStrict, "strict", false, "Fail when the neutral axis iteration does not converge")
	f.BoolVar(&capDiagram, "diagram", false, "Show ASCII section diagram and strain graph")
	f.StringVar(&capPlotFile, "plot", "", "Export section diagram to file (png, svg, pdf)")
	f.StringVar(&capStrainFile, "strain", "", "Export strain diagram to file (png, svg, pdf)")
	f.StringVar(&capForcesFile, "forces", "", "Export internal force diagram to file (png, svg, pdf)")
	f.StringVar(&capPDFFile, "pdf", "", "Write a PDF calculation sheet")
	f.StringVar(&capReportTitle, "title", "", "Title of the PDF calculation sheet")
}

func runCapacity(cmd *cobra.Command, args []string) error {
	config, err := beam.ParseConfig(capConfig)
	if err != nil {
		return err
	}
	sys := cfg.Units
	f := cmd.Flags()

	in := capacityInput(f, config, sys)
	core := sys.ToCore(in).WithDefaultDepths()

	slog.Debug("solving", "config", config.String(), "units", sys.String())
	res, err := beam.Solve(core)
	if err != nil {
		return err
	}

	if err := report.Text(os.Stdout, core, res, sys); err != nil {
		return err
	}

	data := diagram.NewSectionDiagramData(core, res, sys)
	fmt.Println(diagram.DrawStrainDiagram(data))
	if capDiagram {
		fmt.Println(diagram.DrawASCIISectionDiagram(data))
		fmt.Println(diagram.StrainGraph(data, 60))
		fmt.Println()
	}

	exports := []struct {
		file string
		what string
		fn   func(diagram.SectionDiagramData, string) error
	}{
		{capPlotFile, "Section diagram", diagram.ExportSectionDiagram},
		{capStrainFile, "Strain diagram", diagram.ExportStrainDiagram},
		{capForcesFile, "Force diagram", diagram.ExportForceDiagram},
	}
	for _, e := range exports {
		if e.file == "" {
			continue
		}
		if err := e.fn(data, e.file); err != nil {
			return fmt.Errorf("export %s: %w", e.file, err)
		}
		fmt.Printf("%s exported to: %s\n", e.what, e.file)
	}

	if capPDFFile != "" {
		if err := writePDF(capPDFFile, core, res, sys); err != nil {
			return err
		}
		fmt.Printf("Calculation sheet written to: %s\n", capPDFFile)
	}

	strict := cfg.Strict
	if f.Changed("strict") {
		strict = capStrict
	}
	if strict {
		return res.Check()
	}
	return nil
}

// capacityInput collects the flags into an input in the entry units of sys.
// Unset geometry and materials take the defaults converted to sys.
func capacityInput(f *pflag.FlagSet, config beam.Config, sys units.System) beam.Input {
	value := func(name string, v, def float64) float64 {
		if f.Changed(name) {
			return v
		}
		return def
	}

	defAs, defAsc := config.DefaultAreas()
	in := beam.Input{
		Config: config,
		Geometry: beam.Geometry{
			Width:  value("width", capWidth, sys.Length(12)),
			Height: value("height", capHeight, sys.Length(24)),
		},
		Materials: beam.Materials{
			Fc: value("fc", capFc, sys.ConcreteStress(4)),
			Fy: value("fy", capFy, sys.Stress(60)),
			Es: value("es", capEs, sys.Stress(aci.Es)),
		},
	}

	in.Tension = flagLayers(config.TensionLayers(),
		value("as", capAs, sys.Area(defAs)),
		f.Changed("as1") || f.Changed("as2"),
		[2]float64{capAs1, capD1}, [2]float64{capAs2, capD2})
	in.Compression = flagLayers(config.CompressionLayers(),
		value("asc", capAsc, sys.Area(defAsc)),
		f.Changed("asc1") || f.Changed("asc2"),
		[2]float64{capAsc1, capDp1}, [2]float64{capAsc2, capDp2})
	return in
}

// flagLayers builds n layers either from the explicit per-layer areas or by
// splitting total. Zero depths are filled later from the standard cover.
func flagLayers(n int, total float64, explicit bool, first, second [2]float64) []beam.Layer {
	switch n {
	case 0:
		return nil
	case 1:
		if explicit {
			return []beam.Layer{{Area: first[0], Depth: first[1]}}
		}
		return []beam.Layer{{Area: total, Depth: first[1]}}
	}
	if explicit {
		return []beam.Layer{{Area: first[0], Depth: first[1]}, {Area: second[0], Depth: second[1]}}
	}
	return beam.SplitEvenly(total, first[1], second[1])
}

func writePDF(path string, in beam.Input, res *beam.Result, sys units.System) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.PDF(file, in, res, sys, capReportTitle); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
