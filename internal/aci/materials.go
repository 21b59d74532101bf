package aci

// ACI strength design constants, US customary units (kip, in, ksi)

const (
	// Beta1 factors for equivalent rectangular stress block
	Beta1Max = 0.85 // for f'c <= 4000 psi
	Beta1Min = 0.65 // for f'c >= 8000 psi

	// f'c breakpoints for β1 (psi)
	Beta1LowerFc = 4000.0
	Beta1UpperFc = 8000.0

	PsiPerKsi = 1000.0

	// Strain limits
	EpsilonCU                   = 0.003 // Ultimate concrete strain
	TensionControlledStrain     = 0.005 // εt at and beyond which φ = 0.90
	CompressionControlledStrain = 0.002 // εt at and below which φ = 0.65

	// Strength reduction factors
	PhiTension     = 0.90 // Tension-controlled sections
	PhiCompression = 0.65 // Compression-controlled (tied)

	// Modulus of elasticity for steel
	Es = 29000.0 // ksi

	// Stress block intensity factor (0.85 f'c)
	StressBlockFactor = 0.85

	// Cover to the centroid of reinforcement (in)
	ExtremeCover = 2.5 // single layer, also the extreme layer of a double layer
	LayerSpacing = 2.0 // centroid-to-centroid spacing of two layers
)

// Beta1 calculates the factor for equivalent rectangular stress block.
// fc is in psi.
func Beta1(fc float64) float64 {
	switch {
	case fc <= Beta1LowerFc:
		return Beta1Max
	case fc >= Beta1UpperFc:
		return Beta1Min
	}
	// β1 = 0.85 - 0.05(f'c - 4000)/1000
	return Beta1Max - 0.05*(fc-Beta1LowerFc)/1000
}

// Beta1Ksi is Beta1 for a concrete strength given in ksi.
func Beta1Ksi(fc float64) float64 {
	return Beta1(fc * PsiPerKsi)
}

// Phi calculates the strength reduction factor from the net tensile strain
// at the extreme tension layer.
func Phi(epsilonT float64) float64 {
	if epsilonT >= TensionControlledStrain {
		return PhiTension
	} else if epsilonT <= CompressionControlledStrain {
		return PhiCompression
	}
	// Transition zone
	return PhiCompression + (PhiTension-PhiCompression)*
		(epsilonT-CompressionControlledStrain)/(TensionControlledStrain-CompressionControlledStrain)
}

// Cover returns the cover to the centroid of a group of reinforcement
// placed in the given number of layers.
func Cover(layers int) float64 {
	if layers == 2 {
		return ExtremeCover + LayerSpacing/2
	}
	return ExtremeCover
}

// Control is the ductility classification of a section
type Control int

const (
	TensionControlled Control = iota
	Transition
	CompressionControlled
)

// Classify returns the ductility classification for a net tensile strain.
func Classify(epsilonT float64) Control {
	switch {
	case epsilonT >= TensionControlledStrain:
		return TensionControlled
	case epsilonT <= CompressionControlledStrain:
		return CompressionControlled
	}
	return Transition
}

func (c Control) String() string {
	switch c {
	case TensionControlled:
		return "tension-controlled"
	case Transition:
		return "transition"
	case CompressionControlled:
		return "compression-controlled"
	}
	return "unknown"
}
