package diagram

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var (
	steelColor    = color.RGBA{R: 139, G: 69, B: 19, A: 255}
	blockFill     = color.RGBA{R: 100, G: 149, B: 237, A: 150}
	blockEdge     = color.RGBA{R: 0, G: 0, B: 139, A: 255}
	axisColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	yieldColor    = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	strainColor   = color.RGBA{R: 0, G: 100, B: 0, A: 255}
	tensionColor  = color.RGBA{R: 178, G: 34, B: 34, A: 255}
	compressColor = color.RGBA{R: 25, G: 25, B: 112, A: 255}
)

// ExportSectionDiagram exports a beam section diagram to an image file.
// The format follows the extension (.png, .svg, .pdf); anything else gets .png.
func ExportSectionDiagram(data SectionDiagramData, filename string) error {
	p := plot.New()
	p.Title.Text = "Beam Section Analysis"
	p.X.Label.Text = fmt.Sprintf("Width (%s)", data.LengthUnit)
	p.Y.Label.Text = fmt.Sprintf("Height (%s)", data.LengthUnit)

	beamLine, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: 0},
		{X: data.Width, Y: 0},
		{X: data.Width, Y: data.Height},
		{X: 0, Y: data.Height},
		{X: 0, Y: 0},
	})
	if err != nil {
		return err
	}
	beamLine.LineStyle.Width = vg.Points(2)
	beamLine.LineStyle.Color = color.Black
	p.Add(beamLine)

	if data.StressBlockDepth > 0 {
		top := data.Height
		bottom := data.Height - min(data.StressBlockDepth, data.Height)
		stressBlock, err := plotter.NewPolygon(plotter.XYs{
			{X: 0, Y: top},
			{X: data.Width, Y: top},
			{X: data.Width, Y: bottom},
			{X: 0, Y: bottom},
		})
		if err != nil {
			return err
		}
		stressBlock.Color = blockFill
		stressBlock.LineStyle.Color = blockEdge
		p.Add(stressBlock)
	}

	overhang := 0.1 * data.Width
	naY := data.Height - data.NeutralAxisDepth
	naLine, err := plotter.NewLine(plotter.XYs{
		{X: -overhang, Y: naY},
		{X: data.Width + overhang, Y: naY},
	})
	if err != nil {
		return err
	}
	naLine.LineStyle.Width = vg.Points(1.5)
	naLine.LineStyle.Color = axisColor
	naLine.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
	p.Add(naLine)

	// Three bars per tension layer, two per compression layer
	center := data.Width / 2
	var bars plotter.XYs
	var barLabels plotter.XYLabels
	for _, l := range data.Layers {
		y := data.Height - l.Depth
		spread := []float64{-0.3, 0, 0.3}
		name := "As"
		if l.Compression {
			spread = []float64{-0.25, 0.25}
			name = "A's"
		}
		for _, s := range spread {
			bars = append(bars, plotter.XY{X: center + s*data.Width, Y: y})
		}
		barLabels.XYs = append(barLabels.XYs, plotter.XY{X: data.Width + overhang, Y: y})
		barLabels.Labels = append(barLabels.Labels, fmt.Sprintf("%s=%.2f%s", name, l.Area, data.AreaUnit))
	}
	if len(bars) > 0 {
		steel, err := plotter.NewScatter(bars)
		if err != nil {
			return err
		}
		steel.GlyphStyle.Color = steelColor
		steel.GlyphStyle.Radius = vg.Points(5)
		steel.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(steel)
	}

	barLabels.XYs = append(barLabels.XYs,
		plotter.XY{X: data.Width + overhang, Y: naY},
		plotter.XY{X: -overhang, Y: data.Height - data.StressBlockDepth/2},
	)
	barLabels.Labels = append(barLabels.Labels,
		fmt.Sprintf("N.A. c=%.2f%s", data.NeutralAxisDepth, data.LengthUnit),
		fmt.Sprintf("a=%.2f%s", data.StressBlockDepth, data.LengthUnit),
	)
	labels, err := plotter.NewLabels(barLabels)
	if err != nil {
		return err
	}
	p.Add(labels)

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// ExportStrainDiagram exports the linear strain profile with each layer
// marked. Compression strain is plotted positive.
func ExportStrainDiagram(data SectionDiagramData, filename string) error {
	p := plot.New()
	p.Title.Text = "Strain Distribution"
	p.X.Label.Text = "Strain (compression +)"
	p.Y.Label.Text = fmt.Sprintf("Elevation from bottom (%s)", data.LengthUnit)

	strainLine, err := plotter.NewLine(plotter.XYs{
		{X: data.EpsilonCU, Y: data.Height},
		{X: data.strainAt(data.Height), Y: 0},
	})
	if err != nil {
		return err
	}
	strainLine.LineStyle.Width = vg.Points(2)
	strainLine.LineStyle.Color = strainColor
	p.Add(strainLine)

	zeroLine, err := plotter.NewLine(plotter.XYs{
		{X: 0, Y: 0},
		{X: 0, Y: data.Height},
	})
	if err != nil {
		return err
	}
	zeroLine.LineStyle.Width = vg.Points(1)
	zeroLine.LineStyle.Color = color.Gray{Y: 128}
	zeroLine.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(zeroLine)

	for _, x := range []float64{data.EpsilonY, -data.EpsilonY} {
		yieldLine, err := plotter.NewLine(plotter.XYs{
			{X: x, Y: 0},
			{X: x, Y: data.Height},
		})
		if err != nil {
			return err
		}
		yieldLine.LineStyle.Color = yieldColor
		yieldLine.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		p.Add(yieldLine)
	}

	keys := plotter.XYs{
		{X: data.EpsilonCU, Y: data.Height},
		{X: 0, Y: data.Height - data.NeutralAxisDepth},
	}
	for _, l := range data.Layers {
		keys = append(keys, plotter.XY{X: l.Strain, Y: data.Height - l.Depth})
	}
	keyPoints, err := plotter.NewScatter(keys)
	if err != nil {
		return err
	}
	keyPoints.GlyphStyle.Color = axisColor
	keyPoints.GlyphStyle.Radius = vg.Points(4)
	p.Add(keyPoints)

	return save(p, 6*vg.Inch, 8*vg.Inch, filename)
}

// ExportForceDiagram draws the internal force couple: the concrete resultant
// at a/2, compression steel forces at d' and tension steel forces at d,
// each as a horizontal arrow (compression to the right).
func ExportForceDiagram(data SectionDiagramData, filename string) error {
	p := plot.New()
	p.Title.Text = "Internal Forces"
	p.X.Label.Text = fmt.Sprintf("Force (%s, compression +)", data.ForceUnit)
	p.Y.Label.Text = fmt.Sprintf("Elevation from bottom (%s)", data.LengthUnit)

	type arrow struct {
		y, f  float64
		label string
		col   color.Color
	}
	arrows := []arrow{{
		y:     data.Height - data.StressBlockDepth/2,
		f:     data.Cc,
		label: fmt.Sprintf("Cc=%.1f", data.Cc),
		col:   blockEdge,
	}}
	for _, l := range data.Layers {
		a := arrow{y: data.Height - l.Depth, f: l.Force, col: compressColor}
		a.label = fmt.Sprintf("Cs=%.1f", l.Force)
		if !l.Compression {
			a.f = -l.Force
			a.label = fmt.Sprintf("T=%.1f", l.Force)
			a.col = tensionColor
		}
		arrows = append(arrows, a)
	}

	var tips plotter.XYs
	var tipLabels plotter.XYLabels
	for _, a := range arrows {
		line, err := plotter.NewLine(plotter.XYs{{X: 0, Y: a.y}, {X: a.f, Y: a.y}})
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(3)
		line.LineStyle.Color = a.col
		p.Add(line)

		tips = append(tips, plotter.XY{X: a.f, Y: a.y})
		tipLabels.XYs = append(tipLabels.XYs, plotter.XY{X: a.f, Y: a.y})
		tipLabels.Labels = append(tipLabels.Labels, a.label)
	}

	heads, err := plotter.NewScatter(tips)
	if err != nil {
		return err
	}
	heads.GlyphStyle.Shape = draw.TriangleGlyph{}
	heads.GlyphStyle.Radius = vg.Points(4)
	p.Add(heads)

	labels, err := plotter.NewLabels(tipLabels)
	if err != nil {
		return err
	}
	p.Add(labels)

	section, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: 0, Y: data.Height}})
	if err != nil {
		return err
	}
	section.LineStyle.Width = vg.Points(1)
	section.LineStyle.Color = color.Black
	p.Add(section)

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

func save(p *plot.Plot, width, height vg.Length, filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	return p.Save(width, height, filename)
}
