package batch

import (
	"math"
	"testing"
)

func TestRunPricesPortfolio(t *testing.T) {
	iv := 8.3268554
	items := []Item{
		{ID: "bs-call", Model: "blackscholes", Underlying: 105, Tau: 1.5, Rate: 0.04, Strike: 120, Vol: 0.2, Call: true},
		{ID: "cev-call", Model: "absolutecev", Underlying: 1, Tau: 0.5, Rate: 0.05, Strike: 1, Vol: 0.25, Call: true},
		{ID: "bs-iv", Model: "blackscholes", Underlying: 104, Tau: 1.5, Rate: 0.06, Strike: 120, Vol: 0.5, Call: true, MarketPrice: &iv},
	}

	results := Run(items, 2)
	if len(results) != len(items) {
		t.Fatalf("Run returned %d results, expected %d", len(results), len(items))
	}

	for i, r := range results {
		if r.ID != items[i].ID {
			t.Fatalf("result %d has id %q, expected %q (input order not preserved)", i, r.ID, items[i].ID)
		}
		if r.Err != "" {
			t.Fatalf("item %s failed: %s", r.ID, r.Err)
		}
	}

	if math.Abs(results[0].Price-7.0922230) > 1e-6 {
		t.Errorf("blackscholes price = %.7f, expected 7.0922230", results[0].Price)
	}
	if math.Abs(results[1].Price-0.0826916280) > 1e-9 {
		t.Errorf("absolutecev price = %.10f, expected 0.0826916280", results[1].Price)
	}
	if results[0].Delta <= 0 || results[0].Delta >= 1 {
		t.Errorf("call delta = %f, expected a value in (0, 1)", results[0].Delta)
	}

	if results[2].ImpliedVol == nil {
		t.Fatal("item with market price returned no implied vol")
	}
	if math.Abs(*results[2].ImpliedVol-0.21) > 1e-3 {
		t.Errorf("implied vol = %f, expected 0.21", *results[2].ImpliedVol)
	}
	if results[0].ImpliedVol != nil {
		t.Error("item without market price returned an implied vol")
	}
}

func TestRunIsolatesItemFailures(t *testing.T) {
	items := []Item{
		{ID: "bad-model", Model: "heston", Underlying: 100, Tau: 1, Rate: 0.05, Strike: 100, Vol: 0.2},
		{ID: "bad-trials", Model: "montecarlo", Underlying: 100, Tau: 1, Rate: 0.05, Strike: 100, Vol: 0.2, Trials: 0, Steps: 10, Call: true},
		{ID: "good", Model: "blackscholes", Underlying: 105, Tau: 1.5, Rate: 0.04, Strike: 120, Vol: 0.2, Call: true},
	}

	results := Run(items, 0)

	if results[0].Err == "" {
		t.Error("unknown model did not record an error")
	}
	if results[1].Err == "" {
		t.Error("invalid trial count did not record an error")
	}
	if results[2].Err != "" {
		t.Errorf("healthy item failed alongside bad ones: %s", results[2].Err)
	}
	if math.Abs(results[2].Price-7.0922230) > 1e-6 {
		t.Errorf("healthy item price = %.7f, expected 7.0922230", results[2].Price)
	}
}
