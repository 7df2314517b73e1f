// Package special implements the scalar special functions underlying the
// distribution and pricing layers: factorials, Pochhammer symbols, binomial
// coefficients, the confluent hypergeometric limit function, the incomplete
// gamma functions, and modified Bessel functions.
package special

import (
	"github.com/quantforge/qfin/qerr"
)

// Factorial returns n! as a float64. Arguments are small in practice so the
// product is recomputed on every call.
func Factorial(n int) (float64, error) {
	if n < 0 {
		return 0, qerr.Domainf("special: factorial of a negative number (%d)", n)
	}

	out := 1.0
	for i := 2; i <= n; i++ {
		out *= float64(i)
	}
	return out, nil
}

// DoubleFactorial returns n!! = n(n-2)(n-4)... with 0!! = (-1)!! = 1.
func DoubleFactorial(n int) (float64, error) {
	if n < 0 {
		return 0, qerr.Domainf("special: double factorial of a negative number (%d)", n)
	}

	out := 1.0
	for i := n; i > 1; i -= 2 {
		out *= float64(i)
	}
	return out, nil
}
