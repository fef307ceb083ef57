// Package analysis characterises the flow particles follow.
//
//   - [LyapunovExponent]: largest Lyapunov exponent via trajectory separation
//   - [BifurcationDiagram]: parameter sweep recording local maxima of one axis
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic dynamics:
//
//	lambda := analysis.LyapunovExponent(stepper, x0, dt, 1000, 50000, 1e-8)
//	if lambda > 0 {
//	    // trails spread apart exponentially
//	}
package analysis
