// Package pricers implements the option and bond pricing models. Every
// option pricer supplies a single Price method; the five sensitivities and
// the implied-volatility inversion are derived generically from Price via
// finite differences and bisection, so a new model gains consistent Greeks
// by implementing Price alone.
package pricers

import (
	"github.com/quantforge/qfin/diff"
	"github.com/quantforge/qfin/roots"
)

// Defaults for the derived Greeks and the implied-volatility search.
const (
	DefaultGreekStep = 1e-4
	DefaultVolLo     = 1e-6
	DefaultVolHi     = 10
)

// Overrides lets a caller price off-model without mutating the stored
// parameters. A nil field falls back to the pricer's stored value.
type Overrides struct {
	Rate *float64
	Vol  *float64
}

func (o Overrides) rate(fallback float64) float64 {
	if o.Rate != nil {
		return *o.Rate
	}
	return fallback
}

func (o Overrides) vol(fallback float64) float64 {
	if o.Vol != nil {
		return *o.Vol
	}
	return fallback
}

// Option holds the parameters shared by every option pricer. Embedding it
// provides the Terms accessor required by the OptionPricer interface.
type Option struct {
	Rate   float64
	Strike float64
	Vol    float64
	Call   bool
}

// Terms returns the stored pricing parameters.
func (o Option) Terms() Option { return o }

// OptionPricer prices a European option from the underlying price and the
// time to maturity in years. Price must be free of side effects: the derived
// Greeks evaluate it repeatedly at perturbed arguments.
type OptionPricer interface {
	Price(underlying, tau float64, ov Overrides) float64
	Terms() Option
}

func greekStep(h float64) float64 {
	if h <= 0 {
		return DefaultGreekStep
	}
	return h
}

// Delta is the first central difference of Price in the underlying.
func Delta(p OptionPricer, underlying, tau, h float64) float64 {
	return diff.Central(func(s float64) float64 {
		return p.Price(s, tau, Overrides{})
	}, underlying, greekStep(h))
}

// Gamma is the second central difference of Price in the underlying.
func Gamma(p OptionPricer, underlying, tau, h float64) float64 {
	return diff.Central2(func(s float64) float64 {
		return p.Price(s, tau, Overrides{})
	}, underlying, greekStep(h))
}

// Vega perturbs the stored volatility through an override.
func Vega(p OptionPricer, underlying, tau, h float64) float64 {
	return diff.Central(func(v float64) float64 {
		return p.Price(underlying, tau, Overrides{Vol: &v})
	}, p.Terms().Vol, greekStep(h))
}

// Rho perturbs the stored risk-free rate through an override.
func Rho(p OptionPricer, underlying, tau, h float64) float64 {
	return diff.Central(func(r float64) float64 {
		return p.Price(underlying, tau, Overrides{Rate: &r})
	}, p.Terms().Rate, greekStep(h))
}

// Theta is the first central difference of Price in the time to maturity,
// so it carries the dV/dtau sign: positive when more time raises the price.
func Theta(p OptionPricer, underlying, tau, h float64) float64 {
	return diff.Central(func(t float64) float64 {
		return p.Price(underlying, t, Overrides{})
	}, tau, greekStep(h))
}

// ImpliedVol inverts a market price into the volatility that reproduces it
// under the pricer's model, bisecting price(vol) - marketPrice over
// [lo, hi]. Price is increasing in volatility, which gives bisection the
// orientation it requires. The stored volatility is not mutated. A
// non-positive or inverted bracket falls back to [DefaultVolLo,
// DefaultVolHi].
func ImpliedVol(p OptionPricer, marketPrice, underlying, tau, lo, hi float64) (float64, error) {
	if hi <= lo || lo <= 0 {
		lo, hi = DefaultVolLo, DefaultVolHi
	}

	return roots.Bisection(func(vol float64) float64 {
		return p.Price(underlying, tau, Overrides{Vol: &vol}) - marketPrice
	}, lo, hi, 0, 0)
}
