package service

import "math"

// RatePolicy computes shipping and tax server-side. Client-supplied
// amounts are never trusted.
type RatePolicy interface {
	ShippingFor(shippingMethod string, subtotal float64) float64
	TaxFor(subtotal float64) float64
}

// FlatRatePolicy: flat shipping per method, free above a threshold,
// flat VAT on the subtotal.
type FlatRatePolicy struct {
	StandardRate      float64
	ExpressRate       float64
	OvernightRate     float64
	FreeShippingAbove float64
	TaxRate           float64
}

// DefaultRatePolicy: KES flat rates + 16% VAT.
func DefaultRatePolicy() FlatRatePolicy {
	return FlatRatePolicy{
		StandardRate:      200,
		ExpressRate:       450,
		OvernightRate:     900,
		FreeShippingAbove: 5000,
		TaxRate:           0.16,
	}
}

func (p FlatRatePolicy) ShippingFor(shippingMethod string, subtotal float64) float64 {
	if p.FreeShippingAbove > 0 && subtotal >= p.FreeShippingAbove {
		return 0
	}
	switch shippingMethod {
	case "express":
		return p.ExpressRate
	case "overnight":
		return p.OvernightRate
	default:
		return p.StandardRate
	}
}

func (p FlatRatePolicy) TaxFor(subtotal float64) float64 {
	return round2(subtotal * p.TaxRate)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
