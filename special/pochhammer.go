package special

import "math"

// Pochhammer returns the rising factorial (z)_a = Γ(z+a)/Γ(z), generalizing
// z(z+1)...(z+a-1) to non-integer a. By convention (z)_0 = 1.
func Pochhammer(z, a float64) float64 {
	if a == 0 {
		return 1
	}

	num, numSign := math.Lgamma(z + a)
	den, denSign := math.Lgamma(z)
	return float64(numSign*denSign) * math.Exp(num-den)
}

// Binomial returns the coefficient C(n, k). The incremental product runs over
// min(k, n-k) terms to bound intermediate growth. Out-of-range k yields 0.
func Binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}

	out := 1.0
	for i := 0; i < k; i++ {
		out *= float64(n-i) / float64(i+1)
	}
	return out
}
