package diagram

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
)

// rowOf maps a depth from the top to a drawing row
func rowOf(depth, height float64, rows int) int {
	if height <= 0 {
		return 0
	}
	r := int(math.Round(depth / height * float64(rows)))
	return max(0, min(rows, r))
}

// DrawASCIISectionDiagram creates an ASCII representation of beam section with stress block
func DrawASCIISectionDiagram(data SectionDiagramData) string {
	var sb strings.Builder

	widthChars := 30
	heightChars := 20

	naLine := rowOf(data.NeutralAxisDepth, data.Height, heightChars)
	aLine := rowOf(data.StressBlockDepth, data.Height, heightChars)

	layerAt := make(map[int]SteelMark)
	for _, l := range data.Layers {
		layerAt[rowOf(l.Depth, data.Height, heightChars)] = l
	}

	sb.WriteString("\n")
	sb.WriteString("  BEAM SECTION                    STRAIN              STRESS\n")
	sb.WriteString("  ────────────                    ──────              ──────\n")

	for i := 0; i <= heightChars; i++ {
		layer, hasLayer := layerAt[i]

		// Section column
		switch i {
		case 0:
			sb.WriteString(fmt.Sprintf("  ┌%s┐", strings.Repeat("─", widthChars)))
		case heightChars:
			sb.WriteString(fmt.Sprintf("  └%s┘", strings.Repeat("─", widthChars)))
		default:
			fill := []rune(strings.Repeat(" ", widthChars))
			if i <= aLine {
				fill = []rune(strings.Repeat("░", widthChars))
			}
			if hasLayer {
				mid := widthChars / 2
				bar := []rune("●────●")
				if layer.Compression {
					bar = []rune("●──●")
				}
				copy(fill[mid-len(bar)/2:], bar)
			}
			sb.WriteString(fmt.Sprintf("  │%s│", string(fill)))
			if i == naLine {
				sb.WriteString(" ◄─ N.A.")
			}
		}

		// Strain column
		sb.WriteString("    ")
		switch {
		case i == 0:
			sb.WriteString(fmt.Sprintf("  ├── εcu = %.4f", data.EpsilonCU))
		case i == naLine:
			sb.WriteString("  ├── ε = 0")
		case hasLayer:
			yieldMark := ""
			if layer.Yielded {
				yieldMark = " (yields)"
			}
			label := "εs"
			if layer.Compression {
				label = "ε's"
			}
			sb.WriteString(fmt.Sprintf("  ├── %s = %.4f%s", label, math.Abs(layer.Strain), yieldMark))
		case i < heightChars:
			sb.WriteString("  │")
		}

		// Stress column
		switch {
		case i == 0:
			sb.WriteString(fmt.Sprintf("      ┌── 0.85f'c = %.1f %s", data.Fc, data.StressUnit))
		case i == aLine && aLine > 0:
			sb.WriteString("      └── (stress block)")
		case hasLayer && layer.Compression:
			sb.WriteString(fmt.Sprintf("      ── f's = %.1f %s", layer.Stress, data.StressUnit))
		case hasLayer:
			sb.WriteString(fmt.Sprintf("      ── fs = %.1f %s", layer.Stress, data.StressUnit))
		}

		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString("  Legend:\n")
	sb.WriteString("  ░░░ = Compression zone (stress block)\n")
	sb.WriteString("  ●●● = Reinforcement\n")
	sb.WriteString(fmt.Sprintf("  N.A. = Neutral Axis at c = %.2f %s from top\n", data.NeutralAxisDepth, data.LengthUnit))
	sb.WriteString(fmt.Sprintf("  Stress block depth a = %.2f %s\n", data.StressBlockDepth, data.LengthUnit))

	return sb.String()
}

// DrawStrainDiagram creates an ASCII strain distribution diagram
func DrawStrainDiagram(data SectionDiagramData) string {
	var sb strings.Builder

	height := 15
	width := 40

	maxStrain := max(data.EpsilonCU, math.Abs(data.strainAt(data.Height)))
	scale := float64(width-10) / maxStrain

	sb.WriteString("\n")
	sb.WriteString("  STRAIN DISTRIBUTION DIAGRAM\n")
	sb.WriteString("  ───────────────────────────\n\n")

	naLine := rowOf(data.NeutralAxisDepth, data.Height, height)
	layerAt := make(map[int]SteelMark)
	for _, l := range data.Layers {
		layerAt[rowOf(l.Depth, data.Height, height)] = l
	}

	for i := 0; i <= height; i++ {
		depth := float64(i) / float64(height) * data.Height
		strain := data.strainAt(depth)
		bar := strings.Repeat("█", max(0, int(math.Abs(strain)*scale)))

		layer, hasLayer := layerAt[i]
		switch {
		case i == 0:
			sb.WriteString(fmt.Sprintf("  Top    │%s▶ εcu=%.4f\n", bar, data.EpsilonCU))
		case i == naLine:
			sb.WriteString(fmt.Sprintf("  N.A.   ├%s (ε=0)\n", strings.Repeat("─", 5)))
		case hasLayer:
			mark := ""
			if layer.Yielded {
				mark = " ✓yields"
			}
			name := "Steel"
			if layer.Compression {
				name = "Comp."
			}
			sb.WriteString(fmt.Sprintf("  %-7s│%s▶ ε=%.4f%s\n", name, bar, layer.Strain, mark))
		case i == height:
			sb.WriteString(fmt.Sprintf("  Bottom │%s\n", bar))
		default:
			sb.WriteString(fmt.Sprintf("         │%s\n", bar))
		}
	}

	yieldBar := int(data.EpsilonY * scale)
	sb.WriteString(fmt.Sprintf("\n  εy = %.4f %s (yield strain)\n", data.EpsilonY, strings.Repeat("─", yieldBar)+"┤"))
	sb.WriteString(fmt.Sprintf("  εt = %.5f at the extreme tension layer\n", data.EpsilonT))

	return sb.String()
}

// StrainGraph plots the strain profile from the top face (left) to the
// bottom face (right) in units of 10⁻³, compression positive.
func StrainGraph(data SectionDiagramData, samples int) string {
	if samples < 2 {
		samples = 2
	}
	series := make([]float64, samples)
	for i := range series {
		depth := float64(i) / float64(samples-1) * data.Height
		series[i] = data.strainAt(depth) * 1e3
	}
	return asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Precision(2),
		asciigraph.Caption(fmt.Sprintf("strain ×10⁻³ over depth, top → bottom (h = %.1f %s)", data.Height, data.LengthUnit)),
	)
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(title, maxLen-4)))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s  ║\n", pad(line, maxLen-4)))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}

// pad right-pads by rune count; %-*s counts bytes
func pad(s string, width int) string {
	if n := len([]rune(s)); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
