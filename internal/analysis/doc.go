// Package analysis provides dynamics analysis tools for pendulum runs
// and basin grids.
//
//   - [DivergenceExponent]: sensitivity estimate from trajectory separation
//   - [PowerSpectrum]: frequency content of a sampled signal
//   - [CaptureSweep]: final magnet as a function of magnet strength
//   - [Shares], [BoundaryFraction]: basin composition statistics
//
// A strongly positive divergence exponent near a basin boundary is the
// signature of the fractal structure the renderer draws:
//
//	lambda, err := analysis.DivergenceExponent(cfg, magnets, start, 1e-6, 10)
package analysis
