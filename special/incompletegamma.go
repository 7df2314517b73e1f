package special

import (
	"math"

	"github.com/quantforge/qfin/qerr"
	"github.com/quantforge/qfin/quad"
)

// DefaultGammaPoints is the quadrature resolution used when a caller passes a
// non-positive point count to the incomplete gamma functions.
const DefaultGammaPoints = 1000

// LowerIncompleteGamma integrates t^(s-1) e^-t from 0 to x with Simpson's
// rule over n points. Accuracy is bounded by the quadrature resolution, not
// exact; raise n for higher precision. Requires s >= 1 so the integrand stays
// finite at the origin.
func LowerIncompleteGamma(s, x float64, n int) (float64, error) {
	if s < 1 {
		return 0, qerr.Domainf("special: lower incomplete gamma requires shape >= 1 (got %g)", s)
	}
	if n <= 0 {
		n = DefaultGammaPoints
	}
	if x <= 0 {
		return 0, nil
	}

	return quad.Simpson(func(t float64) float64 {
		if t == 0 {
			if s == 1 {
				return 1
			}
			return 0
		}
		return math.Exp((s-1)*math.Log(t) - t)
	}, 0, x, n)
}

// UpperIncompleteGamma is Γ(s) minus the lower incomplete gamma, subject to
// the same preconditions and resolution trade-off.
func UpperIncompleteGamma(s, x float64, n int) (float64, error) {
	lower, err := LowerIncompleteGamma(s, x, n)
	if err != nil {
		return 0, err
	}
	return math.Gamma(s) - lower, nil
}
