package beam

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/rcmn/internal/aci"
)

// NewInput creates an input for the given configuration with no reinforcement
// yet. fc and fy are in ksi, width and height in inches.
func NewInput(config Config, width, height, fc, fy float64) Input {
	return Input{
		Config:    config,
		Geometry:  Geometry{Width: width, Height: height},
		Materials: Materials{Fc: fc, Fy: fy, Es: aci.Es},
	}
}

// WithTension places the given areas at the default tension depths.
// A single area on a two-layer configuration is split evenly between the layers.
func (in Input) WithTension(areas ...float64) Input {
	n := in.Config.TensionLayers()
	depths := DefaultTensionDepths(in.Geometry.Height, n)
	if len(areas) == 1 && n == 2 {
		in.Tension = SplitEvenly(areas[0], depths...)
		return in
	}
	in.Tension = zipLayers(areas, depths)
	return in
}

// WithCompression places the given areas at the default compression depths.
// A single area on a two-layer configuration is split evenly between the layers.
func (in Input) WithCompression(areas ...float64) Input {
	n := in.Config.CompressionLayers()
	depths := DefaultCompressionDepths(n)
	if len(areas) == 1 && n == 2 {
		in.Compression = SplitEvenly(areas[0], depths...)
		return in
	}
	in.Compression = zipLayers(areas, depths)
	return in
}

// WithTensionLayers sets explicit tension layers.
func (in Input) WithTensionLayers(layers ...Layer) Input {
	in.Tension = append([]Layer(nil), layers...)
	return in
}

// WithCompressionLayers sets explicit compression layers.
func (in Input) WithCompressionLayers(layers ...Layer) Input {
	in.Compression = append([]Layer(nil), layers...)
	return in
}

// WithDefaultDepths fills layers whose depth is unset (zero) from the
// standard cover. Lengths must already be in inches.
func (in Input) WithDefaultDepths() Input {
	fill := func(layers []Layer, depths []float64) []Layer {
		if layers == nil {
			return nil
		}
		out := append([]Layer(nil), layers...)
		for i := range out {
			if out[i].Depth == 0 && i < len(depths) {
				out[i].Depth = depths[i]
			}
		}
		return out
	}
	in.Tension = fill(in.Tension, DefaultTensionDepths(in.Geometry.Height, len(in.Tension)))
	in.Compression = fill(in.Compression, DefaultCompressionDepths(len(in.Compression)))
	return in
}

// SplitEvenly apportions a combined area equally over layers at the given depths.
func SplitEvenly(total float64, depths ...float64) []Layer {
	layers := make([]Layer, len(depths))
	for i, d := range depths {
		layers[i] = Layer{Area: total / float64(len(depths)), Depth: d}
	}
	return layers
}

// DefaultTensionDepths returns the depths of n tension layers, measured from
// the compression face, under the standard cover.
//
//	one layer:  h - 2.5
//	two layers: h - 2.5, h - 4.5   (centroid at h - 3.5)
func DefaultTensionDepths(height float64, n int) []float64 {
	depths := make([]float64, n)
	for i := range depths {
		depths[i] = height - aci.ExtremeCover - float64(i)*aci.LayerSpacing
	}
	return depths
}

// DefaultCompressionDepths returns d' of n compression layers.
//
//	one layer:  2.5
//	two layers: 2.5, 4.5   (centroid at 3.5)
func DefaultCompressionDepths(n int) []float64 {
	depths := make([]float64, n)
	for i := range depths {
		depths[i] = aci.ExtremeCover + float64(i)*aci.LayerSpacing
	}
	return depths
}

func zipLayers(areas, depths []float64) []Layer {
	layers := make([]Layer, len(areas))
	for i, as := range areas {
		layers[i].Area = as
		if i < len(depths) {
			layers[i].Depth = depths[i]
		}
	}
	return layers
}

// Validate checks the input before any solve begins
func (in Input) Validate() error {
	if _, ok := configNames[in.Config]; !ok {
		return &InputError{Field: "config", Reason: fmt.Sprintf("unknown configuration %d", int(in.Config))}
	}

	checks := []struct {
		field string
		value float64
	}{
		{"width", in.Geometry.Width},
		{"height", in.Geometry.Height},
		{"f'c", in.Materials.Fc},
		{"fy", in.Materials.Fy},
	}
	for _, c := range checks {
		if !finite(c.value) || c.value <= 0 {
			return &InputError{Field: c.field, Value: c.value}
		}
	}
	if es := in.Materials.Es; !finite(es) || es < 0 {
		return &InputError{Field: "Es", Value: es}
	}

	if len(in.Tension) != in.Config.TensionLayers() {
		return &InputError{
			Field:  "tension layers",
			Reason: fmt.Sprintf("%s needs %d, got %d", in.Config, in.Config.TensionLayers(), len(in.Tension)),
		}
	}
	if len(in.Compression) != in.Config.CompressionLayers() {
		return &InputError{
			Field:  "compression layers",
			Reason: fmt.Sprintf("%s needs %d, got %d", in.Config, in.Config.CompressionLayers(), len(in.Compression)),
		}
	}

	h := in.Geometry.Height
	for i, l := range in.Tension {
		if err := l.validate(fmt.Sprintf("tension layer %d", i+1), h); err != nil {
			return err
		}
	}
	for i, l := range in.Compression {
		if err := l.validate(fmt.Sprintf("compression layer %d", i+1), h); err != nil {
			return err
		}
	}
	return nil
}

func (l Layer) validate(name string, height float64) error {
	if !finite(l.Area) || l.Area < 0 {
		return &InputError{Field: name + " area", Value: l.Area}
	}
	if !finite(l.Depth) || l.Depth <= 0 || l.Depth > height {
		return &InputError{
			Field:  name + " depth",
			Value:  l.Depth,
			Reason: fmt.Sprintf("%.4g is outside (0, h=%.4g]", l.Depth, height),
		}
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
