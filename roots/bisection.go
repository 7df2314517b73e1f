// Package roots provides scalar root finding. Bisection is the single
// routine: it is what every pricer uses to invert a market price into an
// implied volatility.
package roots

import (
	"math"

	"github.com/quantforge/qfin/qerr"
)

// Func is a scalar function of one variable.
type Func func(x float64) float64

// Default tolerances for Bisection when non-positive values are supplied.
const (
	DefaultAtol = 1e-6
	DefaultRtol = 1e-6
)

// maxIterations caps the search in case the tolerances are never met; 200
// halvings exhaust float64 resolution on any finite bracket.
const maxIterations = 200

// Bisection finds a root of f on [start, end]. The bracket must satisfy
// start < end and f(start) < f(end); the routine assumes f is monotone
// increasing over the bracket and does not auto-correct orientation. The
// search stops once successive midpoint values agree within both the
// absolute tolerance atol and the relative tolerance rtol, or immediately
// when a midpoint evaluates to exactly zero.
func Bisection(f Func, start, end, atol, rtol float64) (float64, error) {
	if start >= end {
		return 0, qerr.Domainf("roots: start point must be smaller than the end point (%g >= %g)", start, end)
	}
	fStart := f(start)
	if fStart >= f(end) {
		return 0, qerr.Domainf("roots: function value at the start point must be smaller than at the end point")
	}
	if atol <= 0 {
		atol = DefaultAtol
	}
	if rtol <= 0 {
		rtol = DefaultRtol
	}

	mid := (start + end) / 2
	last := f(mid)

	for i := 0; i < maxIterations; i++ {
		if last == 0 {
			return mid, nil
		}

		if last*fStart < 0 {
			end = mid
		} else {
			start = mid
			fStart = last
		}

		mid = (start + end) / 2
		fm := f(mid)

		if math.Abs(fm-last) <= atol || math.Abs((fm-last)/fm) <= rtol {
			return mid, nil
		}
		last = fm
	}

	return mid, nil
}
