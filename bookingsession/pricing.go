package bookingsession

import (
	"math"
	"time"
)

// Pricing carries a location's per-head rates in whole rupees.
type Pricing struct {
	PricePerAdult     int64 `json:"pricePerAdult"`
	PricePerKid       int64 `json:"pricePerKid"`
	ExtraPersonCharge int64 `json:"extraPersonCharge"`
}

// TokenAmounts is the fixed menu of advance amounts a guest can pay to hold
// a booking. The token is non-refundable; that is surfaced as a warning in
// the UI, not computed here.
var TokenAmounts = []int64{1000, 3000, 5000}

// ValidTokenAmount reports whether v is one of the offered token amounts.
func ValidTokenAmount(v int64) bool {
	for _, t := range TokenAmounts {
		if v == t {
			return true
		}
	}
	return false
}

// FoodChargePerGuest is the per-person per-day food figure shown in the
// booking form copy. It no longer feeds the total; food is bundled in the
// current rate card. Kept for the informational line only.
const FoodChargePerGuest int64 = 500

// Nights computes the billable night count. Day-only locations always bill
// a single notional night; night-stay locations bill the ceiling of the
// check-in/check-out span, never less than one.
func Nights(checkIn, checkOut time.Time, nightStay bool) int {
	if !nightStay {
		return 1
	}
	n := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if n < 1 {
		n = 1
	}
	return n
}

// Total prices a stay: adults and kids each pay their per-head rate for
// every night.
func (p Pricing) Total(adults, kids, nights int) int64 {
	return int64(adults)*p.PricePerAdult*int64(nights) +
		int64(kids)*p.PricePerKid*int64(nights)
}

// Remaining is the balance due after the token, floored at zero.
func Remaining(total, token int64) int64 {
	if token >= total {
		return 0
	}
	return total - token
}
