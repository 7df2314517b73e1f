// Package process implements term-structure-driven path simulation for the
// Monte-Carlo pricers. A process exposes time-dependent drift, dividend, and
// volatility curves and produces one discretized path per Sample call.
package process

import (
	"math"

	"github.com/quantforge/qfin/dist"
	"github.com/quantforge/qfin/qerr"
)

// TermStructure maps a time to maturity to a scalar coefficient. Constant
// coefficients are the special case of a flat curve.
type TermStructure func(tau float64) float64

// Flat returns the constant term structure v.
func Flat(v float64) TermStructure {
	return func(float64) float64 { return v }
}

// Process generates discretized sample paths of a stochastic process. Sample
// returns n+1 values starting at v0, covering [0, tau] in n equal steps.
type Process interface {
	Sample(v0, tau float64, n int) ([]float64, error)
}

// GBM is geometric Brownian motion under risk-neutral lognormal dynamics
// with time-varying rate, dividend yield, and volatility curves.
type GBM struct {
	Rate     TermStructure
	Dividend TermStructure
	Vol      TermStructure
}

// NewGBM builds a geometric Brownian motion with constant coefficients.
func NewGBM(rate, dividend, vol float64) *GBM {
	return &GBM{
		Rate:     Flat(rate),
		Dividend: Flat(dividend),
		Vol:      Flat(vol),
	}
}

// Sample draws one path of n+1 values over [0, tau]. Each step evaluates the
// term structures at the remaining time to maturity tau_i = tau - i·dt and
// applies the exact lognormal update
//
//	S_i = S_{i-1} · exp((r - q - vol²/2)·dt + vol·Z_i·√dt)
func (g *GBM) Sample(v0, tau float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, qerr.Domainf("process: the number of steps must be positive (%d < 1)", n)
	}

	normals, err := dist.Normal{Mu: 0, Sigma: 1}.Sample(n)
	if err != nil {
		return nil, err
	}

	dt := tau / float64(n)
	sqrtDt := math.Sqrt(dt)

	path := make([]float64, n+1)
	path[0] = v0
	for i := 1; i <= n; i++ {
		t := tau - float64(i)*dt
		r := g.Rate(t)
		q := g.Dividend(t)
		vol := g.Vol(t)

		path[i] = path[i-1] * math.Exp((r-q-0.5*vol*vol)*dt+vol*normals[i-1]*sqrtDt)
	}

	return path, nil
}
