// Package batch prices a portfolio of option positions concurrently. Items
// fan out to a worker pool; a failed item records its error and never takes
// the run down with it.
package batch

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/shirou/gopsutil/cpu"
	mpb "github.com/vbauerster/mpb/v7"
	"github.com/vbauerster/mpb/v7/decor"

	"github.com/quantforge/qfin/pricers"
	"github.com/quantforge/qfin/process"
)

// Item is one position to price. Model selects the pricer: "blackscholes",
// "absolutecev", "generalcev", or "montecarlo". Alpha and Terms apply to
// generalcev; Trials, Steps, and Dividend to montecarlo. A non-nil
// MarketPrice additionally requests the implied volatility.
type Item struct {
	ID          string   `json:"id"`
	Model       string   `json:"model"`
	Underlying  float64  `json:"underlying"`
	Tau         float64  `json:"tau"`
	Rate        float64  `json:"rate"`
	Strike      float64  `json:"strike"`
	Vol         float64  `json:"vol"`
	Call        bool     `json:"call"`
	Alpha       float64  `json:"alpha"`
	Terms       int      `json:"terms"`
	Trials      int      `json:"trials"`
	Steps       int      `json:"steps"`
	Dividend    float64  `json:"dividend"`
	MarketPrice *float64 `json:"market_price,omitempty"`
}

// Result carries the price and the derived sensitivities of one item, or the
// error that stopped it.
type Result struct {
	ID         string   `json:"id"`
	Model      string   `json:"model"`
	Price      float64  `json:"price"`
	Delta      float64  `json:"delta"`
	Gamma      float64  `json:"gamma"`
	Vega       float64  `json:"vega"`
	Rho        float64  `json:"rho"`
	Theta      float64  `json:"theta"`
	ImpliedVol *float64 `json:"implied_vol,omitempty"`
	Err        string   `json:"error,omitempty"`
}

type job struct {
	index int
	item  Item
}

type indexedResult struct {
	index  int
	result Result
}

// Workers returns the worker count for a run: the logical CPU count, with a
// plain GOMAXPROCS fallback when the probe fails.
func Workers() int {
	n, err := cpu.Counts(true)
	if err != nil || n < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// Run prices every item across numWorkers workers and returns results in
// input order. A non-positive worker count sizes the pool from Workers.
func Run(items []Item, numWorkers int) []Result {
	if numWorkers < 1 {
		numWorkers = Workers()
	}

	p := mpb.New(mpb.WithWidth(64))
	bar := p.AddBar(int64(len(items)),
		mpb.PrependDecorators(
			decor.Name("Pricing"),
			decor.Percentage(decor.WCSyncSpace),
		),
		mpb.AppendDecorators(
			decor.CountersNoUnit("(%d / %d)", decor.WCSyncSpace),
		),
	)

	jobChan := make(chan job, len(items))
	resultChan := make(chan indexedResult, len(items))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go worker(jobChan, resultChan, &wg, bar)
	}

	go func() {
		for i, it := range items {
			jobChan <- job{index: i, item: it}
		}
		close(jobChan)
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]Result, len(items))
	for r := range resultChan {
		results[r.index] = r.result
	}
	p.Wait()

	return results
}

func worker(jobs <-chan job, results chan<- indexedResult, wg *sync.WaitGroup, bar *mpb.Bar) {
	defer wg.Done()
	for j := range jobs {
		results <- indexedResult{index: j.index, result: priceItem(j.item)}
		bar.Increment()
	}
}

func buildPricer(it Item) (pricers.OptionPricer, error) {
	switch strings.ToLower(it.Model) {
	case "blackscholes":
		return pricers.NewBlackScholes(it.Rate, it.Strike, it.Vol, it.Call), nil
	case "absolutecev":
		return pricers.NewAbsoluteCEV(it.Rate, it.Strike, it.Vol, it.Call), nil
	case "generalcev":
		return pricers.NewGeneralCEV(it.Rate, it.Strike, it.Vol, it.Alpha, it.Call, it.Terms), nil
	case "montecarlo":
		gbm := process.NewGBM(it.Rate, it.Dividend, it.Vol)
		return pricers.NewMonteCarlo(gbm, it.Rate, it.Strike, it.Trials, it.Steps, it.Call)
	default:
		return nil, fmt.Errorf("unknown pricing model %q", it.Model)
	}
}

func priceItem(it Item) Result {
	out := Result{ID: it.ID, Model: it.Model}

	p, err := buildPricer(it)
	if err != nil {
		out.Err = err.Error()
		return out
	}

	out.Price = p.Price(it.Underlying, it.Tau, pricers.Overrides{})
	out.Delta = pricers.Delta(p, it.Underlying, it.Tau, 0)
	out.Gamma = pricers.Gamma(p, it.Underlying, it.Tau, 0)
	out.Vega = pricers.Vega(p, it.Underlying, it.Tau, 0)
	out.Rho = pricers.Rho(p, it.Underlying, it.Tau, 0)
	out.Theta = pricers.Theta(p, it.Underlying, it.Tau, 0)

	if it.MarketPrice != nil {
		iv, err := pricers.ImpliedVol(p, *it.MarketPrice, it.Underlying, it.Tau, 0, 0)
		if err != nil {
			out.Err = err.Error()
			return out
		}
		out.ImpliedVol = &iv
	}

	return out
}
