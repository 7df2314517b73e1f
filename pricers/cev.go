package pricers

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/quantforge/qfin/dist"
)

// AbsoluteCEV prices European options under the constant-elasticity-of-
// variance process dS = r S dt + vol dW, the elasticity-zero member of the
// CEV family, using the Cox closed form.
type AbsoluteCEV struct {
	Option
}

// NewAbsoluteCEV builds a pricer from direct parameters.
func NewAbsoluteCEV(rate, strike, vol float64, call bool) *AbsoluteCEV {
	return &AbsoluteCEV{Option{Rate: rate, Strike: strike, Vol: vol, Call: call}}
}

// NewAbsoluteCEVFromPrice infers the volatility from an observed market
// price and stores it.
func NewAbsoluteCEVFromPrice(marketPrice, underlying, tau, rate, strike float64, call bool) (*AbsoluteCEV, error) {
	p := NewAbsoluteCEV(rate, strike, 0, call)
	vol, err := ImpliedVol(p, marketPrice, underlying, tau, DefaultVolLo, DefaultVolHi)
	if err != nil {
		return nil, err
	}
	p.Vol = vol
	return p, nil
}

// Price returns the option price, honoring any rate or volatility override.
func (p *AbsoluteCEV) Price(underlying, tau float64, ov Overrides) float64 {
	r := ov.rate(p.Rate)
	vol := ov.vol(p.Vol)

	// Standard deviation of the terminal price; the r -> 0 limit is vol·√tau.
	var v float64
	if r == 0 {
		v = vol * math.Sqrt(tau)
	} else {
		v = vol * math.Sqrt((1-math.Exp(-2*r*tau))/(2*r))
	}

	disc := p.Strike * math.Exp(-r*tau)
	y1 := (underlying - disc) / v
	y2 := (-underlying - disc) / v

	call := (underlying-disc)*stdNormal.CDF(y1) +
		(underlying+disc)*stdNormal.CDF(y2) +
		v*(stdNormal.PDF(y1)-stdNormal.PDF(y2))

	if p.Call {
		return call
	}
	return call - underlying + disc
}

// DefaultCEVTerms is the series budget used by GeneralCEV when none is
// given. Beckers (1980) reports the series converging well inside this
// bound for practical parameterizations.
const DefaultCEVTerms = 10000

// GeneralCEV prices European options under dS = r S dt + vol S^(alpha/2) dW
// for elasticity alpha < 2 with the Beckers series representation. The
// truncated series is a fixed-budget approximation: accuracy is bounded by
// SeriesTerms, and the budget required grows as alpha approaches 2.
type GeneralCEV struct {
	Option
	Alpha float64
	SeriesTerms int
}

// NewGeneralCEV builds a pricer from direct parameters. A non-positive term
// budget selects DefaultCEVTerms.
func NewGeneralCEV(rate, strike, vol, alpha float64, call bool, terms int) *GeneralCEV {
	if terms < 1 {
		terms = DefaultCEVTerms
	}
	return &GeneralCEV{
		Option: Option{Rate: rate, Strike: strike, Vol: vol, Call: call},
		Alpha:  alpha,
		SeriesTerms: terms,
	}
}

// NewGeneralCEVFromPrice infers the volatility from an observed market price
// and stores it.
func NewGeneralCEVFromPrice(marketPrice, underlying, tau, rate, strike, alpha float64, call bool, terms int) (*GeneralCEV, error) {
	p := NewGeneralCEV(rate, strike, 0, alpha, call, terms)
	vol, err := ImpliedVol(p, marketPrice, underlying, tau, DefaultVolLo, DefaultVolHi)
	if err != nil {
		return nil, err
	}
	p.Vol = vol
	return p, nil
}

// complementaryGammaDist is 1 - F(x) for a rate-1 gamma distribution, the
// function Beckers calls the complementary gamma distribution.
func complementaryGammaDist(shape, x float64) float64 {
	cdf, err := dist.Gamma{Shape: shape, Rate: 1}.CDF(x, 0)
	if err != nil {
		return math.NaN()
	}
	return 1 - cdf
}

// Price evaluates the Beckers series, honoring any rate or volatility
// override. The series terms are partitioned across workers with private
// partial sums combined in one reduction.
func (p *GeneralCEV) Price(underlying, tau float64, ov Overrides) float64 {
	r := ov.rate(p.Rate)
	vol := ov.vol(p.Vol)

	twoMinusAlpha := 2 - p.Alpha
	k := 2 * r / (vol * vol * twoMinusAlpha * (math.Exp(r*twoMinusAlpha*tau) - 1))
	x := k * math.Pow(underlying, twoMinusAlpha) * math.Exp(r*twoMinusAlpha*tau)
	kStrike := k * math.Pow(p.Strike, twoMinusAlpha)

	workers := runtime.GOMAXPROCS(0)
	if workers > p.SeriesTerms {
		workers = 1
	}
	firstPartials := make([]float64, workers)
	secondPartials := make([]float64, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			var first, second float64
			for i := w; i < p.SeriesTerms; i += workers {
				shape := float64(i + 1)
				shifted := shape + 1/twoMinusAlpha

				// Rate 1 throughout, following Beckers' normalization.
				first += dist.Gamma{Shape: shape, Rate: 1}.PDF(x) * complementaryGammaDist(shifted, kStrike)
				second += dist.Gamma{Shape: shifted, Rate: 1}.PDF(x) * complementaryGammaDist(shape, kStrike)
			}
			firstPartials[w] = first
			secondPartials[w] = second
		}(w)
	}
	wg.Wait()

	call := underlying*floats.Sum(firstPartials) - p.Strike*math.Exp(-r*tau)*floats.Sum(secondPartials)

	if p.Call {
		return call
	}
	return call - underlying + p.Strike*math.Exp(-r*tau)
}
