package beam

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/rcmn/internal/aci"
)

// Config selects one of the supported reinforcement layouts
type Config int

const (
	SinglyOneLayer Config = iota
	SinglyTwoLayer
	DoublyOneLayer
	DoublyTwoTensionOneCompression
	DoublyTwoTensionTwoCompression
)

// Configs lists every supported configuration in display order.
var Configs = []Config{
	SinglyOneLayer,
	SinglyTwoLayer,
	DoublyOneLayer,
	DoublyTwoTensionOneCompression,
	DoublyTwoTensionTwoCompression,
}

var configNames = map[Config]string{
	SinglyOneLayer:                 "singly-1",
	SinglyTwoLayer:                 "singly-2",
	DoublyOneLayer:                 "doubly-1",
	DoublyTwoTensionOneCompression: "doubly-2t1c",
	DoublyTwoTensionTwoCompression: "doubly-2t2c",
}

var configTitles = map[Config]string{
	SinglyOneLayer:                 "Singly - Single Layer Tension",
	SinglyTwoLayer:                 "Singly - Double Layer Tension",
	DoublyOneLayer:                 "Doubly - Single Layer Tension & Compression",
	DoublyTwoTensionOneCompression: "Doubly - Double Layer Tension & Single Layer Compression",
	DoublyTwoTensionTwoCompression: "Doubly - Double Layer Tension & Compression",
}

func (c Config) String() string {
	if name, ok := configNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Config(%d)", int(c))
}

// Title is the long, human readable name of the configuration
func (c Config) Title() string {
	return configTitles[c]
}

// ParseConfig resolves a configuration from its short name.
func ParseConfig(s string) (Config, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for c, name := range configNames {
		if name == s {
			return c, nil
		}
	}
	return 0, &InputError{Field: "config", Reason: fmt.Sprintf("unknown configuration %q", s)}
}

// MarshalText implements encoding.TextMarshaler.
func (c Config) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Config) UnmarshalText(text []byte) error {
	parsed, err := ParseConfig(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// TensionLayers is the number of tension layers the configuration carries.
func (c Config) TensionLayers() int {
	switch c {
	case SinglyOneLayer, DoublyOneLayer:
		return 1
	}
	return 2
}

// CompressionLayers is the number of compression layers the configuration carries.
func (c Config) CompressionLayers() int {
	switch c {
	case SinglyOneLayer, SinglyTwoLayer:
		return 0
	case DoublyTwoTensionTwoCompression:
		return 2
	}
	return 1
}

// IsDoubly reports whether the section carries compression reinforcement.
func (c Config) IsDoubly() bool {
	return c.CompressionLayers() > 0
}

// DefaultAreas are the starting total tension and compression areas (in²)
// offered for the configuration.
func (c Config) DefaultAreas() (tension, compression float64) {
	switch c {
	case SinglyOneLayer:
		return 1.5, 0
	case SinglyTwoLayer:
		return 3, 0
	case DoublyOneLayer:
		return 3, 1
	}
	return 3, 3
}

// Geometry of a rectangular section (in)
type Geometry struct {
	Width  float64 `json:"width"`  // b
	Height float64 `json:"height"` // h - total depth
}

// Materials (ksi)
type Materials struct {
	Fc float64 `json:"fc"`           // f'c - concrete compressive strength
	Fy float64 `json:"fy"`           // fy - steel yield strength
	Es float64 `json:"es,omitempty"` // steel modulus, aci.Es when zero
}

// ModulusOrDefault returns Es, falling back to aci.Es.
func (m Materials) ModulusOrDefault() float64 {
	if m.Es == 0 {
		return aci.Es
	}
	return m.Es
}

// Layer is one row of reinforcement
type Layer struct {
	Area  float64 `json:"area"`  // in²
	Depth float64 `json:"depth"` // from the compression face (in)
}

// Input is a fully populated capacity problem
type Input struct {
	Config      Config    `json:"config"`
	Geometry    Geometry  `json:"geometry"`
	Materials   Materials `json:"materials"`
	Tension     []Layer   `json:"tension"`
	Compression []Layer   `json:"compression,omitempty"`
}

// LayerKind tells tension from compression reinforcement
type LayerKind string

const (
	TensionLayer     LayerKind = "tension"
	CompressionLayer LayerKind = "compression"
)

// LayerResult holds the state of one reinforcement layer at capacity
type LayerResult struct {
	Kind    LayerKind `json:"kind"`
	Area    float64   `json:"area"`    // in²
	Depth   float64   `json:"depth"`   // in
	Strain  float64   `json:"strain"`  // positive in compression
	Stress  float64   `json:"stress"`  // ksi, net of displaced concrete for compression layers
	Force   float64   `json:"force"`   // kip
	Yielded bool      `json:"yielded"` // |εs| ≥ fy/Es
}

// Result holds the capacity of a section
type Result struct {
	Config Config `json:"config"`

	// Section properties
	A        float64 `json:"a"`         // Depth of compression block (in)
	C        float64 `json:"c"`         // Neutral axis depth (in)
	Beta1    float64 `json:"beta1"`     // Stress block factor
	D        float64 `json:"d"`         // Centroid of tension steel (in)
	Dt       float64 `json:"dt"`        // Extreme tension layer depth (in)
	EpsilonT float64 `json:"epsilon_t"` // Net tensile strain
	Phi      float64 `json:"phi"`       // Strength reduction factor

	// Forces (kip)
	Cc float64 `json:"cc"` // Concrete compression force
	Cs float64 `json:"cs"` // Compression steel force, net of displaced concrete
	T  float64 `json:"t"`  // Tension steel force

	// Capacity (kip-in)
	Mn    float64 `json:"mn"`
	PhiMn float64 `json:"phi_mn"`

	Layers []LayerResult `json:"layers"`

	// Solver status
	Iterations int  `json:"iterations"`
	Converged  bool `json:"converged"`
}

// Control returns the ductility classification of the section.
func (r *Result) Control() aci.Control {
	return aci.Classify(r.EpsilonT)
}

// Imbalance is T - (Cc + Cs)
func (r *Result) Imbalance() float64 {
	return r.T - (r.Cc + r.Cs)
}

// Check returns ErrNonConvergence when the iterative solve ran out of
// iterations before meeting the force tolerance.
func (r *Result) Check() error {
	if r.Converged {
		return nil
	}
	return fmt.Errorf("%w: |T-(Cc+Cs)|=%.6g after %d iterations", ErrNonConvergence, math.Abs(r.Imbalance()), r.Iterations)
}
