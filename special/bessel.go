package special

import "math"

// BesselI approximates the modified Bessel function of the first kind I_nu(x)
// by its ascending power series. The noncentral chi-squared density can be
// written either through I_nu or through the hypergeometric limit function;
// both forms are kept so one can cross-check the other:
//
//	I_nu(x) = (x/2)^nu / Γ(nu+1) · 0F1(;nu+1; x²/4)
func BesselI(nu, x float64) float64 {
	const maxIterations = 1000
	const epsilon = 1e-15

	sum := 0.0
	term := math.Pow(x/2, nu) / math.Gamma(nu+1)

	for k := 0; k < maxIterations; k++ {
		sum += term
		term *= 0.25 * x * x / (float64(k+1) * (nu + float64(k+1)))
		if math.Abs(term) < epsilon*math.Abs(sum) {
			break
		}
	}

	return sum
}
