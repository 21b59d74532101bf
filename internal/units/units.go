// Package units converts between the solver's fixed US customary units
// (kip, in, ksi) and the units a caller enters or displays.
package units

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/rcmn/internal/beam"
)

// System is a display/input unit system
type System int

const (
	US System = iota // in, in², psi (f'c), ksi (fy), kip, kip-ft
	SI               // mm, mm², MPa, kN, kN-m
)

const (
	MMPerIn   = 25.4
	MPaPerKsi = 6.894757293168361
	KNPerKip  = 4.4482216152605
	PsiPerKsi = 1000.0
	InPerFt   = 12.0
)

// ParseSystem resolves "us" or "si".
func ParseSystem(s string) (System, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "us", "imperial", "":
		return US, nil
	case "si", "metric":
		return SI, nil
	}
	return US, fmt.Errorf("unknown unit system %q (want us or si)", s)
}

func (s System) String() string {
	if s == SI {
		return "si"
	}
	return "us"
}

// MarshalText implements encoding.TextMarshaler.
func (s System) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *System) UnmarshalText(text []byte) error {
	parsed, err := ParseSystem(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Unit labels
func (s System) LengthUnit() string {
	if s == SI {
		return "mm"
	}
	return "in"
}

func (s System) AreaUnit() string {
	if s == SI {
		return "mm²"
	}
	return "in²"
}

func (s System) StressUnit() string {
	if s == SI {
		return "MPa"
	}
	return "ksi"
}

// ConcreteStressUnit is the unit f'c is entered in
func (s System) ConcreteStressUnit() string {
	if s == SI {
		return "MPa"
	}
	return "psi"
}

func (s System) ForceUnit() string {
	if s == SI {
		return "kN"
	}
	return "kip"
}

func (s System) MomentUnit() string {
	if s == SI {
		return "kN-m"
	}
	return "kip-ft"
}

// Length converts inches to the system's length unit.
func (s System) Length(in float64) float64 {
	if s == SI {
		return in * MMPerIn
	}
	return in
}

// Area converts in² to the system's area unit.
func (s System) Area(in2 float64) float64 {
	if s == SI {
		return in2 * MMPerIn * MMPerIn
	}
	return in2
}

// Stress converts ksi to the system's stress unit.
func (s System) Stress(ksi float64) float64 {
	if s == SI {
		return ksi * MPaPerKsi
	}
	return ksi
}

// ConcreteStress converts f'c in ksi to psi (US) or MPa (SI).
func (s System) ConcreteStress(ksi float64) float64 {
	if s == SI {
		return ksi * MPaPerKsi
	}
	return ksi * PsiPerKsi
}

// Force converts kip to the system's force unit.
func (s System) Force(kip float64) float64 {
	if s == SI {
		return kip * KNPerKip
	}
	return kip
}

// Moment converts kip-in to kip-ft (US) or kN-m (SI).
func (s System) Moment(kipIn float64) float64 {
	if s == SI {
		return kipIn * KNPerKip * MMPerIn / 1e3
	}
	return kipIn / InPerFt
}

// Entered values in the system's input units back to the solver's units

func (s System) LengthToCore(v float64) float64 {
	if s == SI {
		return v / MMPerIn
	}
	return v
}

func (s System) AreaToCore(v float64) float64 {
	if s == SI {
		return v / (MMPerIn * MMPerIn)
	}
	return v
}

func (s System) StressToCore(v float64) float64 {
	if s == SI {
		return v / MPaPerKsi
	}
	return v
}

// ConcreteStressToCore converts f'c entered in psi (US) or MPa (SI) to ksi.
func (s System) ConcreteStressToCore(v float64) float64 {
	if s == SI {
		return v / MPaPerKsi
	}
	return v / PsiPerKsi
}

// ToCore converts an input whose values are in the system's entry units
// (f'c in psi or MPa, fy in ksi or MPa, lengths in in or mm, areas in in² or
// mm²) to the solver's units. Es is left at its default when zero.
func (s System) ToCore(in beam.Input) beam.Input {
	out := in
	out.Geometry.Width = s.LengthToCore(in.Geometry.Width)
	out.Geometry.Height = s.LengthToCore(in.Geometry.Height)
	out.Materials.Fc = s.ConcreteStressToCore(in.Materials.Fc)
	out.Materials.Fy = s.StressToCore(in.Materials.Fy)
	out.Materials.Es = s.StressToCore(in.Materials.Es)
	out.Tension = s.layersToCore(in.Tension)
	out.Compression = s.layersToCore(in.Compression)
	return out
}

func (s System) layersToCore(layers []beam.Layer) []beam.Layer {
	if layers == nil {
		return nil
	}
	out := make([]beam.Layer, len(layers))
	for i, l := range layers {
		out[i] = beam.Layer{Area: s.AreaToCore(l.Area), Depth: s.LengthToCore(l.Depth)}
	}
	return out
}

// Result is a capacity result expressed in a display unit system
type Result struct {
	Units      System        `json:"units"`
	Config     string        `json:"config"`
	A          float64       `json:"a"`
	C          float64       `json:"c"`
	D          float64       `json:"d"`
	Dt         float64       `json:"dt"`
	Beta1      float64       `json:"beta1"`
	EpsilonT   float64       `json:"epsilon_t"`
	Phi        float64       `json:"phi"`
	Control    string        `json:"control"`
	Cc         float64       `json:"cc"`
	Cs         float64       `json:"cs"`
	T          float64       `json:"t"`
	Mn         float64       `json:"mn"`
	PhiMn      float64       `json:"phi_mn"`
	Layers     []LayerResult `json:"layers"`
	Iterations int           `json:"iterations"`
	Converged  bool          `json:"converged"`
}

// LayerResult is a layer state in display units
type LayerResult struct {
	Kind    string  `json:"kind"`
	Area    float64 `json:"area"`
	Depth   float64 `json:"depth"`
	Strain  float64 `json:"strain"`
	Stress  float64 `json:"stress"`
	Force   float64 `json:"force"`
	Yielded bool    `json:"yielded"`
}

// Convert expresses a solver result in the system's display units.
func (s System) Convert(r *beam.Result) Result {
	out := Result{
		Units:      s,
		Config:     r.Config.String(),
		A:          s.Length(r.A),
		C:          s.Length(r.C),
		D:          s.Length(r.D),
		Dt:         s.Length(r.Dt),
		Beta1:      r.Beta1,
		EpsilonT:   r.EpsilonT,
		Phi:        r.Phi,
		Control:    r.Control().String(),
		Cc:         s.Force(r.Cc),
		Cs:         s.Force(r.Cs),
		T:          s.Force(r.T),
		Mn:         s.Moment(r.Mn),
		PhiMn:      s.Moment(r.PhiMn),
		Iterations: r.Iterations,
		Converged:  r.Converged,
	}
	for _, l := range r.Layers {
		out.Layers = append(out.Layers, LayerResult{
			Kind:    string(l.Kind),
			Area:    s.Area(l.Area),
			Depth:   s.Length(l.Depth),
			Strain:  l.Strain,
			Stress:  s.Stress(l.Stress),
			Force:   s.Force(l.Force),
			Yielded: l.Yielded,
		})
	}
	return out
}
