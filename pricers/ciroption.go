package pricers

import (
	"math"

	"github.com/quantforge/qfin/dist"
)

// CIROption prices a European option on a zero-coupon bond under the
// Cox-Ingersoll-Ross short-rate model. The exercise probabilities come from
// the noncentral chi-squared distribution of the short rate at expiry, which
// requires 4·theta·mu/sigma² >= 2 (the Feller region where the incomplete
// gamma series is defined).
type CIROption struct {
	Bond
	Strike float64
	Call   bool
}

// NewCIROption builds a bond-option pricer from the model parameters and the
// strike on the bond price.
func NewCIROption(theta, mu, sigma, strike float64, call bool) *CIROption {
	return &CIROption{
		Bond:   Bond{Theta: theta, Mu: mu, Sigma: sigma},
		Strike: strike,
		Call:   call,
	}
}

// Price returns the bond-option price at the prevailing short rate, honoring
// a volatility override.
func (p *CIROption) Price(rate, tau float64, vol *float64) (float64, error) {
	sigma := p.Sigma
	if vol != nil {
		sigma = *vol
	}

	gamma := cirH(p.Theta, sigma)
	phi := 2 * gamma / (sigma * sigma * (math.Exp(gamma*tau) - 1))
	psi := (p.Theta + gamma) / (sigma * sigma)
	b := cirB(tau, p.Theta, sigma)
	a := cirA(tau, p.Theta, p.Mu, sigma)

	// The critical rate below which the bond finishes above the strike.
	rStar := math.Log(a/p.Strike) / b

	bond := a * math.Exp(-b*rate)
	df := 4 * p.Theta * p.Mu / (sigma * sigma)
	scale := 2 * phi * phi * rate * math.Exp(gamma*tau)

	inMoney := dist.NoncentralChiSquared{K: df, Lambda: scale / (phi + psi + b)}
	exercised := dist.NoncentralChiSquared{K: df, Lambda: scale / (phi + psi)}

	p1, err := inMoney.CDF(2*rStar*(phi+psi+b), 0)
	if err != nil {
		return 0, err
	}
	p2, err := exercised.CDF(2*rStar*(phi+psi), 0)
	if err != nil {
		return 0, err
	}

	call := bond*p1 - p.Strike*bond*p2
	if p.Call {
		return call, nil
	}
	// Parity against the internal discounting: put = call - P + K·P.
	return call - bond + p.Strike*bond, nil
}
