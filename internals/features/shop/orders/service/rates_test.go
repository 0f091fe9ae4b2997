package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlatRatePolicyShipping(t *testing.T) {
	p := DefaultRatePolicy()

	tests := []struct {
		name     string
		method   string
		subtotal float64
		want     float64
	}{
		{"standard", "standard", 1500, 200},
		{"express", "express", 1500, 450},
		{"overnight", "overnight", 1500, 900},
		{"unknown method falls back to standard", "pigeon", 1500, 200},
		{"free at the threshold", "express", 5000, 0},
		{"free above the threshold", "standard", 7200, 0},
		{"not free just below", "standard", 4999.99, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, p.ShippingFor(tt.method, tt.subtotal), 1e-9)
		})
	}
}

func TestFlatRatePolicyTax(t *testing.T) {
	p := DefaultRatePolicy()

	// 16% VAT, rounded to cents
	assert.InDelta(t, 160.00, p.TaxFor(1000), 1e-9)
	assert.InDelta(t, 207.84, p.TaxFor(1299), 1e-9)
	assert.InDelta(t, 0, p.TaxFor(0), 1e-9)
}

func TestRound2(t *testing.T) {
	assert.InDelta(t, 66.6, round2(66.60000000000001), 1e-9)
	assert.InDelta(t, 1.01, round2(1.005000001), 1e-9)
	assert.InDelta(t, -2.35, round2(-2.345000001), 1e-9)
}
