// Package quad provides composite quadrature rules for approximating
// definite integrals of scalar functions.
//
// Both rules partition the interior-point loop across workers; each worker
// accumulates a private partial sum and the caller combines the partials in
// a single deterministic reduction. Summation order inside a worker depends
// on the worker count, so results agree across worker counts only to within
// floating-point rounding.
package quad

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/quantforge/qfin/qerr"
)

// Func is a scalar integrand.
type Func func(x float64) float64

// Trapezoidal approximates the integral of f over [a, b] with the composite
// trapezoidal rule using n subdivisions. Endpoints carry weight 1/2 and all
// interior points weight 1, scaled by the step h = (b-a)/n.
//
// The rule has truncation error of order O(n^-2) for smooth integrands.
func Trapezoidal(f Func, a, b float64, n int) (float64, error) {
	if a >= b {
		return 0, qerr.Domainf("quad: start point must be smaller than the end point (%g >= %g)", a, b)
	}
	if n < 1 {
		return 0, qerr.Domainf("quad: the number of interior points must be positive (%d < 1)", n)
	}

	h := (b - a) / float64(n)
	sum := 0.5*f(a) + 0.5*f(b)
	sum += interiorSum(f, a, h, n, func(int) float64 { return 1 })

	return h * sum, nil
}

// Simpson approximates the integral of f over [a, b] with the composite
// Simpson rule using n subdivisions. Interior points alternate weights 4/3
// and 2/3 while the endpoints carry weight 1/3.
//
// The rule has truncation error of order O(n^-4) for smooth integrands.
func Simpson(f Func, a, b float64, n int) (float64, error) {
	if a >= b {
		return 0, qerr.Domainf("quad: start point must be smaller than the end point (%g >= %g)", a, b)
	}
	if n < 1 {
		return 0, qerr.Domainf("quad: the number of interior points must be positive (%d < 1)", n)
	}

	h := (b - a) / float64(n)
	third := 1.0 / 3.0
	sum := third * (f(a) + f(b))
	sum += interiorSum(f, a, h, n, func(i int) float64 {
		if i%2 == 0 {
			return 2 * third
		}
		return 4 * third
	})

	return h * sum, nil
}

// interiorSum evaluates the weighted interior points 1..n-1 across workers.
// Each worker owns one slot of the partials slice; the slots are combined
// with a single floats.Sum once every worker has finished.
func interiorSum(f Func, a, h float64, n int, weight func(i int) float64) float64 {
	workers := runtime.GOMAXPROCS(0)
	if workers > n-1 {
		workers = 1
	}

	partials := make([]float64, workers)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			local := 0.0
			for i := 1 + w; i <= n-1; i += workers {
				local += weight(i) * f(a+float64(i)*h)
			}
			partials[w] = local
		}(w)
	}

	wg.Wait()
	return floats.Sum(partials)
}
