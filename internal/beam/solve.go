// Package beam computes the flexural capacity of rectangular reinforced
// concrete sections with the equivalent rectangular stress block.
//
// Units are fixed: kip, inch, ksi. Moments are returned in kip-in.
package beam

// Solve validates the input and computes the capacity of the section for its
// configuration. Solve is a pure function and safe for concurrent use.
func Solve(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if in.Config.IsDoubly() {
		return solveDoubly(in)
	}
	return solveSingly(in)
}
