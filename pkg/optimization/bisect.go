// Package optimization provides a monotone bisection search shared by the
// goal solvers.
package optimization

import "math"

// Summary captures the result of a single search.
type Summary struct {
	Value      float64  `json:"value"`
	Lower      float64  `json:"lower"`
	Upper      float64  `json:"upper"`
	Iterations int      `json:"iterations"`
	Converged  bool     `json:"converged"`
	Notes      []string `json:"notes,omitempty"`
}

// Bisect finds the smallest value in [lower, upper] for which feasible
// reports true, assuming feasibility is monotone in the value. It stops
// after maxIterations or once the bracket is narrower than tolerance.
// When even upper is infeasible, Value is upper and Converged is false.
func Bisect(lower, upper, tolerance float64, maxIterations int, feasible func(float64) bool) Summary {
	summary := Summary{Lower: lower, Upper: upper}
	if upper < lower {
		lower, upper = upper, lower
		summary.Lower, summary.Upper = lower, upper
	}

	if feasible(lower) {
		summary.Value = lower
		summary.Converged = true
		return summary
	}
	if !feasible(upper) {
		summary.Value = upper
		summary.Notes = append(summary.Notes, "upper bound is not feasible")
		return summary
	}

	lo, hi := lower, upper
	for summary.Iterations < maxIterations && math.Abs(hi-lo) > tolerance {
		summary.Iterations++
		mid := lo + (hi-lo)/2
		if feasible(mid) {
			hi = mid
		} else {
			lo = mid
		}
	}

	summary.Value = hi
	summary.Converged = math.Abs(hi-lo) <= tolerance
	return summary
}
