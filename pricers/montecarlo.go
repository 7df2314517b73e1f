package pricers

import (
	"math"
	"runtime"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/quantforge/qfin/process"
	"github.com/quantforge/qfin/qerr"
)

// MonteCarlo prices European options by simulating terminal values of a
// stochastic process and discounting the average payoff. European payoffs
// are path independent, so one step per path suffices; more steps only
// matter when the process carries time-varying coefficients.
type MonteCarlo struct {
	Option
	Process process.Process
	Trials  int
	Steps   int
}

// NewMonteCarlo builds a simulation pricer. The rate discounts the average
// payoff; the process supplies its own drift and volatility, so volatility
// overrides are ignored by Price.
func NewMonteCarlo(proc process.Process, rate, strike float64, trials, steps int, call bool) (*MonteCarlo, error) {
	if trials < 1 {
		return nil, qerr.Domainf("pricers: the number of trials must be positive (%d < 1)", trials)
	}
	if steps < 1 {
		return nil, qerr.Domainf("pricers: the number of steps must be positive (%d < 1)", steps)
	}
	return &MonteCarlo{
		Option:  Option{Rate: rate, Strike: strike, Call: call},
		Process: proc,
		Trials:  trials,
		Steps:   steps,
	}, nil
}

// payoffs simulates the discounted payoff of every trial. Trials are
// independent, so they fan out across workers with per-worker slices of the
// shared result array.
func (p *MonteCarlo) payoffs(underlying, tau, rate float64) []float64 {
	out := make([]float64, p.Trials)
	discount := math.Exp(-rate * tau)

	workers := runtime.GOMAXPROCS(0)
	if workers > p.Trials {
		workers = 1
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < p.Trials; i += workers {
				path, err := p.Process.Sample(underlying, tau, p.Steps)
				if err != nil {
					out[i] = math.NaN()
					continue
				}
				terminal := path[len(path)-1]

				if p.Call {
					out[i] = discount * math.Max(terminal-p.Strike, 0)
				} else {
					out[i] = discount * math.Max(p.Strike-terminal, 0)
				}
			}
		}(w)
	}
	wg.Wait()

	return out
}

// Price returns the discounted average payoff. The rate override adjusts
// discounting only; volatility overrides have no effect because the process
// owns its volatility.
func (p *MonteCarlo) Price(underlying, tau float64, ov Overrides) float64 {
	return stat.Mean(p.payoffs(underlying, tau, ov.rate(p.Rate)), nil)
}

// Estimate returns the price together with the standard error of the Monte
// Carlo estimator, which shrinks as 1/√trials.
func (p *MonteCarlo) Estimate(underlying, tau float64) (price, stderr float64) {
	samples := p.payoffs(underlying, tau, p.Rate)
	mean, std := stat.MeanStdDev(samples, nil)
	return mean, std / math.Sqrt(float64(len(samples)))
}
