package dist

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/quantforge/qfin/qerr"
	"github.com/quantforge/qfin/special"
)

// Normal is the normal distribution with mean Mu and standard deviation
// Sigma.
type Normal struct {
	Mu    float64
	Sigma float64
}

// PDF returns the probability density at x.
func (d Normal) PDF(x float64) float64 {
	v := d.Sigma * d.Sigma
	z := x - d.Mu
	return 1 / math.Sqrt(2*math.Pi*v) * math.Exp(-z*z/(2*v))
}

// CDF returns the cumulative probability at x via the error function.
func (d Normal) CDF(x float64) float64 {
	return 0.5 * (1 + math.Erf((x-d.Mu)/(d.Sigma*math.Sqrt2)))
}

// Moment returns the central moment E[(X-mu)^p]: sigma^p (p-1)!! for even p
// and 0 for odd p.
func (d Normal) Moment(p int) (float64, error) {
	if p < 0 {
		return 0, qerr.Domainf("dist: moment order can not be negative (%d < 0)", p)
	}
	if p%2 != 0 {
		return 0, nil
	}
	if p == 0 {
		return 1, nil
	}

	df, err := special.DoubleFactorial(p - 1)
	if err != nil {
		return 0, err
	}
	return math.Pow(d.Sigma, float64(p)) * df, nil
}

// Sample draws n independent variates.
func (d Normal) Sample(n int) ([]float64, error) {
	if n < 0 {
		return nil, qerr.Domainf("dist: sample count can not be negative (%d < 0)", n)
	}

	rng := rngPool.Get().(*rand.Rand)
	defer rngPool.Put(rng)

	src := distuv.Normal{Mu: d.Mu, Sigma: d.Sigma, Src: rng}
	out := make([]float64, n)
	for i := range out {
		out[i] = src.Rand()
	}
	return out, nil
}
