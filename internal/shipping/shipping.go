// Package shipping maps a cart's total desi (volumetric weight) to a
// shipping fee and owns the free-shipping threshold.
package shipping

import "math"

// FreeShippingThresholdCents is the subtotal at or above which shipping is
// waived. Every free-shipping decision must reference this constant.
const FreeShippingThresholdCents int64 = 150000

const (
	// first desi band
	baseCostCents int64 = 4990
	// each additional started desi
	perDesiCents int64 = 1250
)

// Cost returns the shipping fee in cents for the given total desi.
// Zero or negative desi ships for free (an empty or desi-less cart);
// otherwise the fee grows by a flat increment per started desi, so the
// function is monotonically non-decreasing.
func Cost(totalDesi float64) int64 {
	if math.IsNaN(totalDesi) || totalDesi <= 0 {
		return 0
	}
	bands := int64(math.Ceil(totalDesi))
	if bands < 1 {
		bands = 1
	}
	return baseCostCents + perDesiCents*(bands-1)
}

// RemainingForFreeShipping returns how much more the subtotal needs before
// shipping is waived. It is exactly zero once the threshold is reached.
func RemainingForFreeShipping(totalAmountCents int64) int64 {
	if totalAmountCents >= FreeShippingThresholdCents {
		return 0
	}
	return FreeShippingThresholdCents - totalAmountCents
}
