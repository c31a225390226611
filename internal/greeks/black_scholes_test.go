package greeks

import (
	"math"
	"strings"
	"testing"

	"github.com/newthinker/optval/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestBlackScholes_ImplementsInterfaces(t *testing.T) {
	var _ Calculator = NewBlackScholes()
	var _ Pricer = NewBlackScholes()
	var _ Calculator = &BlackScholes{}
}

func TestBlackScholes_ReferenceCase(t *testing.T) {
	// S=100, K=100, r=5%, σ=20%, T=1y
	bs := NewBlackScholes()
	call := bs.Calculate(core.SideCall, 100, 100, 1, 0.05, 0.2)

	assert.InDelta(t, 0.636831, call.Delta, 1e-6)
	assert.InDelta(t, 0.018762, call.Gamma, 1e-6)
	assert.InDelta(t, -6.414028/365, call.Theta, 1e-6)
	assert.InDelta(t, 0.375240, call.Vega, 1e-6)
	assert.InDelta(t, 0.532325, call.Rho, 1e-6)

	put := bs.Calculate(core.SidePut, 100, 100, 1, 0.05, 0.2)
	assert.InDelta(t, -0.363169, put.Delta, 1e-6)
	assert.InDelta(t, call.Gamma, put.Gamma, 1e-15)
	assert.InDelta(t, call.Vega, put.Vega, 1e-15)
	assert.InDelta(t, -1.657880/365, put.Theta, 1e-6)
	assert.InDelta(t, -0.418905, put.Rho, 1e-6)
}

func TestBlackScholes_ATMDriftFreeDelta(t *testing.T) {
	bs := NewBlackScholes()
	call := bs.Calculate(core.SideCall, 100, 100, 1, 0, 0.3)
	put := bs.Calculate(core.SidePut, 100, 100, 1, 0, 0.3)

	assert.Greater(t, call.Delta, 0.5)
	assert.Less(t, call.Delta, 1.0)
	assert.InDelta(t, call.Delta-1, put.Delta, 1e-12)
}

func TestBlackScholes_PutCallDeltaParity(t *testing.T) {
	bs := NewBlackScholes()
	cases := []struct{ spot, strike, years, rate, vol float64 }{
		{100, 90, 0.5, 0.03, 0.25},
		{9000, 8500, 15.0 / 365, 0.2, 0.3},
		{30000, 32000, 3.0 / 365, 0.05, 0.8},
	}
	for _, c := range cases {
		call := bs.Calculate(core.SideCall, c.spot, c.strike, c.years, c.rate, c.vol)
		put := bs.Calculate(core.SidePut, c.spot, c.strike, c.years, c.rate, c.vol)
		assert.InDelta(t, call.Delta-1, put.Delta, 1e-12)
	}
}

func TestBlackScholes_NormalizationUnits(t *testing.T) {
	bs := NewBlackScholes()
	spot, strike, years, rate, vol := 120.0, 100.0, 0.75, 0.04, 0.35
	g := bs.Calculate(core.SideCall, spot, strike, years, rate, vol)

	d1 := (math.Log(spot/strike) + (rate+0.5*vol*vol)*years) / (vol * math.Sqrt(years))
	phi := math.Exp(-d1*d1/2) / math.Sqrt(2*math.Pi)

	assert.InDelta(t, spot*phi*math.Sqrt(years)/100, g.Vega, 1e-12)
	assert.InDelta(t, phi/(spot*vol*math.Sqrt(years)), g.Gamma, 1e-12)
}

func TestBlackScholes_Price(t *testing.T) {
	bs := NewBlackScholes()
	call := bs.Price(core.SideCall, 100, 100, 1, 0.05, 0.2)
	put := bs.Price(core.SidePut, 100, 100, 1, 0.05, 0.2)

	assert.InDelta(t, 10.450583572185565, call, 1e-9)
	assert.InDelta(t, 5.573526022256971, put, 1e-9)
	// put-call parity: C - P = S - K e^{-rT}
	assert.InDelta(t, 100-100*math.Exp(-0.05), call-put, 1e-9)
}

func TestBlackScholes_InvalidDomainIsNotGuarded(t *testing.T) {
	g := NewBlackScholes().Calculate(core.SideCall, 100, 100, 0, 0.05, 0.2)
	assert.True(t, math.IsNaN(g.Delta) || math.IsInf(g.Gamma, 0) || math.IsNaN(g.Gamma))
}

func TestGreeks_String(t *testing.T) {
	g := Greeks{Delta: 0.5, Gamma: 0.01, Theta: -0.02, Vega: 0.3, Rho: 0.4}
	s := g.String()

	for _, want := range []string{"Δ: 0.5000", "Γ: 0.0100", "Θ: -0.0200", "ν: 0.3000", "ρ: 0.4000"} {
		assert.True(t, strings.Contains(s, want), "missing %q in %q", want, s)
	}
}
