package pricers

import (
	"math"

	"github.com/quantforge/qfin/dist"
)

var stdNormal = dist.Normal{Mu: 0, Sigma: 1}

func dPlus(underlying, tau, rate, strike, vol float64) float64 {
	return (math.Log(underlying/strike) + (rate+vol*vol/2)*tau) / (vol * math.Sqrt(tau))
}

func dMinus(underlying, tau, rate, strike, vol float64) float64 {
	return dPlus(underlying, tau, rate, strike, vol) - vol*math.Sqrt(tau)
}

// BSPrice is the Black-Scholes price of a European option.
func BSPrice(underlying, tau, rate, strike, vol float64, call bool) float64 {
	d1 := dPlus(underlying, tau, rate, strike, vol)
	d2 := dMinus(underlying, tau, rate, strike, vol)
	disc := strike * math.Exp(-rate*tau)

	if call {
		return stdNormal.CDF(d1)*underlying - stdNormal.CDF(d2)*disc
	}
	return stdNormal.CDF(-d2)*disc - stdNormal.CDF(-d1)*underlying
}

// BSDelta is the analytic Black-Scholes delta.
func BSDelta(underlying, tau, rate, strike, vol float64, call bool) float64 {
	nd1 := stdNormal.CDF(dPlus(underlying, tau, rate, strike, vol))
	if call {
		return nd1
	}
	return nd1 - 1
}

// BSGamma is the analytic Black-Scholes gamma; it does not depend on the
// option type.
func BSGamma(underlying, tau, rate, strike, vol float64) float64 {
	return stdNormal.PDF(dPlus(underlying, tau, rate, strike, vol)) / (underlying * vol * math.Sqrt(tau))
}

// BSVega is the analytic Black-Scholes vega; it does not depend on the
// option type.
func BSVega(underlying, tau, rate, strike, vol float64) float64 {
	return stdNormal.PDF(dPlus(underlying, tau, rate, strike, vol)) * underlying * math.Sqrt(tau)
}

// BSRho is the analytic Black-Scholes rho.
func BSRho(underlying, tau, rate, strike, vol float64, call bool) float64 {
	d2 := dMinus(underlying, tau, rate, strike, vol)
	disc := strike * tau * math.Exp(-rate*tau)
	if call {
		return stdNormal.CDF(d2) * disc
	}
	return -stdNormal.CDF(-d2) * disc
}

// BSTheta is the analytic sensitivity to the time to maturity, dV/dtau. It
// carries the opposite sign of the calendar-decay convention dV/dt.
func BSTheta(underlying, tau, rate, strike, vol float64, call bool) float64 {
	d1 := dPlus(underlying, tau, rate, strike, vol)
	d2 := dMinus(underlying, tau, rate, strike, vol)
	core := underlying * vol * stdNormal.PDF(d1) / (2 * math.Sqrt(tau))

	if call {
		return core + rate*strike*math.Exp(-rate*tau)*stdNormal.CDF(d2)
	}
	return core - rate*strike*math.Exp(-rate*tau)*stdNormal.CDF(-d2)
}

// BlackScholes prices European options with the Black-Scholes closed form.
type BlackScholes struct {
	Option
}

// NewBlackScholes builds a pricer from direct parameters.
func NewBlackScholes(rate, strike, vol float64, call bool) *BlackScholes {
	return &BlackScholes{Option{Rate: rate, Strike: strike, Vol: vol, Call: call}}
}

// NewBlackScholesFromPrice infers the volatility from an observed market
// price and stores it.
func NewBlackScholesFromPrice(marketPrice, underlying, tau, rate, strike float64, call bool) (*BlackScholes, error) {
	p := NewBlackScholes(rate, strike, 0, call)
	vol, err := ImpliedVol(p, marketPrice, underlying, tau, DefaultVolLo, DefaultVolHi)
	if err != nil {
		return nil, err
	}
	p.Vol = vol
	return p, nil
}

// Price returns the option price, honoring any rate or volatility override.
func (p *BlackScholes) Price(underlying, tau float64, ov Overrides) float64 {
	return BSPrice(underlying, tau, ov.rate(p.Rate), p.Strike, ov.vol(p.Vol), p.Call)
}
