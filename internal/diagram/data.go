package diagram

import (
	"github.com/alexiusacademia/rcmn/internal/aci"
	"github.com/alexiusacademia/rcmn/internal/beam"
	"github.com/alexiusacademia/rcmn/internal/units"
)

// SteelMark is one reinforcement layer as drawn
type SteelMark struct {
	Depth       float64 // from top
	Area        float64
	Strain      float64 // positive in compression
	Stress      float64
	Force       float64
	Compression bool
	Yielded     bool
}

// SectionDiagramData holds data for drawing a beam section diagram.
// Lengths, stresses and forces are in the display unit system.
type SectionDiagramData struct {
	// Beam dimensions
	Width  float64
	Height float64

	// Analysis results
	NeutralAxisDepth float64 // c - from top
	StressBlockDepth float64 // a - from top

	Layers []SteelMark

	// Strains
	EpsilonCU float64 // Concrete ultimate strain
	EpsilonT  float64 // Net tensile strain at the extreme layer
	EpsilonY  float64 // Yield strain

	// Concrete stress block
	Fc float64 // 0.85 f'c
	Cc float64 // Concrete compression force

	LengthUnit string
	AreaUnit   string
	StressUnit string
	ForceUnit  string
}

// NewSectionDiagramData collects what the diagrams need from a solved section.
func NewSectionDiagramData(in beam.Input, res *beam.Result, sys units.System) SectionDiagramData {
	data := SectionDiagramData{
		Width:            sys.Length(in.Geometry.Width),
		Height:           sys.Length(in.Geometry.Height),
		NeutralAxisDepth: sys.Length(res.C),
		StressBlockDepth: sys.Length(res.A),
		EpsilonCU:        aci.EpsilonCU,
		EpsilonT:         res.EpsilonT,
		EpsilonY:         in.Materials.Fy / in.Materials.ModulusOrDefault(),
		Fc:               sys.Stress(aci.StressBlockFactor * in.Materials.Fc),
		Cc:               sys.Force(res.Cc),
		LengthUnit:       sys.LengthUnit(),
		AreaUnit:         sys.AreaUnit(),
		StressUnit:       sys.StressUnit(),
		ForceUnit:        sys.ForceUnit(),
	}
	for _, l := range res.Layers {
		data.Layers = append(data.Layers, SteelMark{
			Depth:       sys.Length(l.Depth),
			Area:        sys.Area(l.Area),
			Strain:      l.Strain,
			Stress:      sys.Stress(l.Stress),
			Force:       sys.Force(l.Force),
			Compression: l.Kind == beam.CompressionLayer,
			Yielded:     l.Yielded,
		})
	}
	return data
}

// IsDoubly reports whether compression steel is drawn
func (d SectionDiagramData) IsDoubly() bool {
	for _, l := range d.Layers {
		if l.Compression {
			return true
		}
	}
	return false
}

// strainAt is the strain at a depth from the top, positive in compression
func (d SectionDiagramData) strainAt(depth float64) float64 {
	if d.NeutralAxisDepth <= 0 {
		return 0
	}
	return d.EpsilonCU * (d.NeutralAxisDepth - depth) / d.NeutralAxisDepth
}
