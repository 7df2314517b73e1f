// Package diff computes finite-difference approximations of derivatives of
// scalar functions: forward, backward, and central stencils of first, second,
// and arbitrary order.
//
// The step size is a tunable parameter. The default is tuned for price-like
// magnitudes; ill-scaled inputs are the caller's responsibility to rescale.
package diff

import (
	"math"

	"github.com/quantforge/qfin/qerr"
	"github.com/quantforge/qfin/special"
)

// Func is a scalar function of one variable.
type Func func(x float64) float64

// DefaultStep is used whenever a non-positive step size is supplied.
const DefaultStep = 1e-6

func step(h float64) float64 {
	if h <= 0 {
		return DefaultStep
	}
	return h
}

// Forward approximates f'(x) by (f(x+h) - f(x))/h, with O(h) truncation
// error.
func Forward(f Func, x, h float64) float64 {
	h = step(h)
	return (f(x+h) - f(x)) / h
}

// Backward approximates f'(x) by (f(x) - f(x-h))/h, with O(h) truncation
// error.
func Backward(f Func, x, h float64) float64 {
	h = step(h)
	return (f(x) - f(x-h)) / h
}

// Central approximates f'(x) by (f(x+h/2) - f(x-h/2))/h, with O(h²)
// truncation error. Prefer it over the one-sided stencils whenever f can be
// evaluated on both sides of x.
func Central(f Func, x, h float64) float64 {
	h = step(h)
	return (f(x+h/2) - f(x-h/2)) / h
}

// Forward2 approximates f''(x) by the second-order forward stencil
// (f(x+2h) - 2f(x+h) + f(x))/h².
func Forward2(f Func, x, h float64) float64 {
	h = step(h)
	return (f(x+2*h) - 2*f(x+h) + f(x)) / (h * h)
}

// Backward2 approximates f''(x) by the second-order backward stencil
// (f(x) - 2f(x-h) + f(x-2h))/h².
func Backward2(f Func, x, h float64) float64 {
	h = step(h)
	return (f(x) - 2*f(x-h) + f(x-2*h)) / (h * h)
}

// Central2 approximates f''(x) by the symmetric stencil
// (f(x+h) - 2f(x) + f(x-h))/h².
func Central2(f Func, x, h float64) float64 {
	h = step(h)
	return (f(x+h) - 2*f(x) + f(x-h)) / (h * h)
}

// ForwardN approximates the nth derivative of f at x by the alternating-sign
// binomial-weighted sum over the n+1 points x, x+h, ..., x+nh.
func ForwardN(f Func, x, h float64, n int) (float64, error) {
	h = step(h)
	return nth(f, h, n, func(i int) float64 {
		return x + float64(i)*h
	})
}

// BackwardN approximates the nth derivative of f at x over the points
// x, x-h, ..., x-nh.
func BackwardN(f Func, x, h float64, n int) (float64, error) {
	h = step(h)
	return nth(f, h, n, func(i int) float64 {
		return x - float64(n-i)*h
	})
}

// CentralN approximates the nth derivative of f at x over the symmetric
// points x + (i - n/2)h.
func CentralN(f Func, x, h float64, n int) (float64, error) {
	h = step(h)
	return nth(f, h, n, func(i int) float64 {
		return x + (float64(i)-float64(n)/2)*h
	})
}

// nth sums (-1)^(n-i) C(n,i) f(point(i)) over i = 0..n and divides by h^n.
// The sign pattern makes the stencil exact on polynomials of degree n.
func nth(f Func, h float64, n int, point func(i int) float64) (float64, error) {
	if n < 1 {
		return 0, qerr.Domainf("diff: derivative order must be positive (%d < 1)", n)
	}

	sum := 0.0
	for i := 0; i <= n; i++ {
		sign := 1.0
		if (n-i)%2 != 0 {
			sign = -1
		}
		sum += sign * special.Binomial(n, i) * f(point(i))
	}
	return sum / math.Pow(h, float64(n)), nil
}
