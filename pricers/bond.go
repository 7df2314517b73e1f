package pricers

import (
	"math"

	"github.com/quantforge/qfin/diff"
)

// Bond holds the short-rate model parameters shared by the zero-coupon bond
// pricers: mean-reversion speed Theta, long-term mean Mu, and volatility
// Sigma.
type Bond struct {
	Theta float64
	Mu    float64
	Sigma float64
}

// BondTerms returns the stored model parameters.
func (b Bond) BondTerms() Bond { return b }

// BondPricer prices a zero-coupon bond with unit face value from the
// prevailing short rate and the time to maturity. A nil vol falls back to
// the stored volatility.
type BondPricer interface {
	Price(rate, tau float64, vol *float64) float64
	BondTerms() Bond
}

// BondDelta is the first central difference of the bond price in the short
// rate. For affine models it equals -B(tau)·P analytically.
func BondDelta(p BondPricer, rate, tau, h float64) float64 {
	return diff.Central(func(r float64) float64 {
		return p.Price(r, tau, nil)
	}, rate, greekStep(h))
}

// BondGamma is the second central difference of the bond price in the short
// rate, B(tau)²·P for affine models.
func BondGamma(p BondPricer, rate, tau, h float64) float64 {
	return diff.Central2(func(r float64) float64 {
		return p.Price(r, tau, nil)
	}, rate, greekStep(h))
}

// BondVega perturbs the stored model volatility.
func BondVega(p BondPricer, rate, tau, h float64) float64 {
	return diff.Central(func(v float64) float64 {
		return p.Price(rate, tau, &v)
	}, p.BondTerms().Sigma, greekStep(h))
}

// BondTheta is the first central difference of the bond price in the time to
// maturity.
func BondTheta(p BondPricer, rate, tau, h float64) float64 {
	return diff.Central(func(t float64) float64 {
		return p.Price(rate, t, nil)
	}, tau, greekStep(h))
}

// Vasicek prices zero-coupon bonds under the Ornstein-Uhlenbeck short-rate
// dynamics dr = theta(mu - r)dt + sigma dW with the Vasicek closed form.
type Vasicek struct {
	Bond
}

// NewVasicek builds a pricer from the model parameters.
func NewVasicek(theta, mu, sigma float64) *Vasicek {
	return &Vasicek{Bond{Theta: theta, Mu: mu, Sigma: sigma}}
}

func vasicekB(tau, theta float64) float64 {
	return (1 - math.Exp(-theta*tau)) / theta
}

func vasicekA(tau, theta, mu, sigma float64) float64 {
	b := vasicekB(tau, theta)
	return math.Exp((mu-sigma*sigma/(2*theta*theta))*(b-tau) - sigma*sigma/(4*theta)*b*b)
}

// Price returns A(tau)·e^(-B(tau)·rate), honoring a volatility override.
func (p *Vasicek) Price(rate, tau float64, vol *float64) float64 {
	sigma := p.Sigma
	if vol != nil {
		sigma = *vol
	}
	return vasicekA(tau, p.Theta, p.Mu, sigma) * math.Exp(-vasicekB(tau, p.Theta)*rate)
}

// CIR prices zero-coupon bonds under the Feller square-root short-rate
// dynamics dr = theta(mu - r)dt + sigma·√r dW with the Cox-Ingersoll-Ross
// closed form.
type CIR struct {
	Bond
}

// NewCIR builds a pricer from the model parameters.
func NewCIR(theta, mu, sigma float64) *CIR {
	return &CIR{Bond{Theta: theta, Mu: mu, Sigma: sigma}}
}

func cirH(theta, sigma float64) float64 {
	return math.Sqrt(theta*theta + 2*sigma*sigma)
}

func cirA(tau, theta, mu, sigma float64) float64 {
	h := cirH(theta, sigma)
	base := 2 * h * math.Exp((theta+h)*tau/2) / (2*h + (theta+h)*(math.Exp(h*tau)-1))
	return math.Pow(base, 2*theta*mu/(sigma*sigma))
}

func cirB(tau, theta, sigma float64) float64 {
	h := cirH(theta, sigma)
	return 2 * (math.Exp(h*tau) - 1) / (2*h + (theta+h)*(math.Exp(h*tau)-1))
}

// Price returns A(tau)·e^(-B(tau)·rate), honoring a volatility override.
func (p *CIR) Price(rate, tau float64, vol *float64) float64 {
	sigma := p.Sigma
	if vol != nil {
		sigma = *vol
	}
	return cirA(tau, p.Theta, p.Mu, sigma) * math.Exp(-cirB(tau, p.Theta, sigma)*rate)
}
