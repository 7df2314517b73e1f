package pricers

import (
	"math"
	"testing"

	"github.com/quantforge/qfin/qerr"
)

const (
	bondTheta, bondMu            = 0.5, 0.05
	vasicekSigma                 = 0.02
	cirSigma                     = 0.1
	bondRate, bondTau    float64 = 0.03, 2
)

func TestVasicekPrice(t *testing.T) {
	p := NewVasicek(bondTheta, bondMu, vasicekSigma)
	if got := p.Price(bondRate, bondTau, nil); math.Abs(got-0.9282573836) > 1e-9 {
		t.Errorf("Vasicek price = %.10f, want 0.9282573836", got)
	}

	// The bond converges to its face value as maturity vanishes.
	if got := p.Price(bondRate, 1e-9, nil); math.Abs(got-1) > 1e-6 {
		t.Errorf("Vasicek price near tau=0 = %.8f, want ~1", got)
	}
}

func TestCIRPrice(t *testing.T) {
	p := NewCIR(bondTheta, bondMu, cirSigma)
	if got := p.Price(bondRate, bondTau, nil); math.Abs(got-0.9282230448) > 1e-9 {
		t.Errorf("CIR price = %.10f, want 0.9282230448", got)
	}
}

func TestAffineBondGreeksIdentity(t *testing.T) {
	// For affine models dP/dr = -B·P and d²P/dr² = B²·P; the derived Greeks
	// must reproduce both.
	cases := []struct {
		name string
		p    BondPricer
		b    float64
	}{
		{"vasicek", NewVasicek(bondTheta, bondMu, vasicekSigma), vasicekB(bondTau, bondTheta)},
		{"cir", NewCIR(bondTheta, bondMu, cirSigma), cirB(bondTau, bondTheta, cirSigma)},
	}
	for _, c := range cases {
		price := c.p.Price(bondRate, bondTau, nil)

		delta := BondDelta(c.p, bondRate, bondTau, 0)
		if math.Abs(delta-(-c.b*price)) > 1e-6 {
			t.Errorf("%s: derived delta = %.8f, want -B·P = %.8f", c.name, delta, -c.b*price)
		}

		gamma := BondGamma(c.p, bondRate, bondTau, 1e-3)
		if math.Abs(gamma-c.b*c.b*price) > 1e-4 {
			t.Errorf("%s: derived gamma = %.8f, want B²·P = %.8f", c.name, gamma, c.b*c.b*price)
		}
	}
}

func TestBondVegaAndTheta(t *testing.T) {
	p := NewVasicek(bondTheta, bondMu, vasicekSigma)

	// Longer maturity discounts more heavily at positive rates.
	if theta := BondTheta(p, bondRate, bondTau, 0); theta >= 0 {
		t.Errorf("bond theta = %.8f, want negative", theta)
	}

	vega := BondVega(p, bondRate, bondTau, 0)
	if vega == 0 || math.IsNaN(vega) {
		t.Errorf("bond vega = %.8f, want a finite nonzero sensitivity", vega)
	}

	// The override must not touch stored parameters.
	v := 0.08
	p.Price(bondRate, bondTau, &v)
	if p.Sigma != vasicekSigma {
		t.Errorf("volatility override mutated the stored value")
	}
}

func TestCIROptionPrice(t *testing.T) {
	p := NewCIROption(bondTheta, bondMu, cirSigma, 0.9, true)

	got, err := p.Price(bondRate, bondTau, nil)
	if err != nil {
		t.Fatalf("Price: %v", err)
	}
	if math.Abs(got-0.0785904465) > 1e-4 {
		t.Errorf("CIR bond option call = %.8f, want 0.0785904465", got)
	}

	bond := NewCIR(bondTheta, bondMu, cirSigma).Price(bondRate, bondTau, nil)
	if got <= 0 || got >= bond {
		t.Errorf("call price %.6f must lie strictly between 0 and the bond price %.6f", got, bond)
	}
}

func TestCIROptionMonotoneInRate(t *testing.T) {
	// Rising short rates depress the bond and with it the call on it.
	p := NewCIROption(bondTheta, bondMu, cirSigma, 0.9, true)
	prev := math.Inf(1)
	for _, rt := range []float64{0.02, 0.03, 0.05} {
		got, err := p.Price(rt, bondTau, nil)
		if err != nil {
			t.Fatalf("Price(%g): %v", rt, err)
		}
		if got >= prev {
			t.Errorf("call at rt=%g is %.6f, not below %.6f", rt, got, prev)
		}
		prev = got
	}
}

func TestCIROptionParity(t *testing.T) {
	call := NewCIROption(bondTheta, bondMu, cirSigma, 0.9, true)
	put := NewCIROption(bondTheta, bondMu, cirSigma, 0.9, false)

	c, err := call.Price(bondRate, bondTau, nil)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	p, err := put.Price(bondRate, bondTau, nil)
	if err != nil {
		t.Fatalf("put: %v", err)
	}

	bond := NewCIR(bondTheta, bondMu, cirSigma).Price(bondRate, bondTau, nil)
	if math.Abs(c-p-bond*(1-0.9)) > 1e-10 {
		t.Errorf("call - put = %.10f, want P·(1-K) = %.10f", c-p, bond*0.1)
	}
}

func TestCIROptionFellerValidation(t *testing.T) {
	// 4·theta·mu/sigma² < 2 puts the rate distribution outside the region
	// the incomplete-gamma series supports.
	p := NewCIROption(0.1, 0.02, 0.3, 0.9, true)
	if _, err := p.Price(bondRate, bondTau, nil); !qerr.IsDomain(err) {
		t.Errorf("sub-Feller parameters: got %v, want domain error", err)
	}
}
