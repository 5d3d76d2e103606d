package bookingsession

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNights(t *testing.T) {
	t.Run("NightStayCountsSpan", func(t *testing.T) {
		n := Nights(date(2025, time.November, 6), date(2025, time.November, 9), true)
		assert.Equal(t, 3, n)
	})

	t.Run("SingleNight", func(t *testing.T) {
		n := Nights(date(2025, time.November, 6), date(2025, time.November, 7), true)
		assert.Equal(t, 1, n)
	})

	t.Run("DayOnlyAlwaysOne", func(t *testing.T) {
		n := Nights(date(2025, time.November, 6), date(2025, time.November, 20), false)
		assert.Equal(t, 1, n)
	})

	t.Run("NeverBelowOne", func(t *testing.T) {
		same := date(2025, time.November, 6)
		assert.Equal(t, 1, Nights(same, same, true))
	})
}

func TestPricingTotal(t *testing.T) {
	p := Pricing{PricePerAdult: 1000, PricePerKid: 500}

	t.Run("Formula", func(t *testing.T) {
		// adults*pricePerAdult*nights + kids*pricePerKid*nights
		assert.Equal(t, int64(7500), p.Total(2, 1, 3))
	})

	t.Run("DayVisitScenario", func(t *testing.T) {
		// 2 adults, 1 kid, day-only location -> 2*1000*1 + 1*500*1
		total := p.Total(2, 1, Nights(date(2025, time.November, 6), date(2025, time.November, 7), false))
		assert.Equal(t, int64(2500), total)

		assert.Equal(t, int64(1500), Remaining(total, 1000))
	})

	t.Run("ZeroGuestsZeroTotal", func(t *testing.T) {
		assert.Equal(t, int64(0), p.Total(0, 0, 3))
	})

	t.Run("NoFoodSurchargeInTotal", func(t *testing.T) {
		// The ₹500 food figure is display copy only; totals are identical
		// with and without food.
		withFood := p.Total(2, 2, 2)
		assert.Equal(t, int64(6000), withFood)
	})
}

func TestRemaining(t *testing.T) {
	assert.Equal(t, int64(2000), Remaining(5000, 3000))
	assert.Equal(t, int64(0), Remaining(1000, 3000), "never negative")
	assert.Equal(t, int64(0), Remaining(1000, 1000))
}

func TestValidTokenAmount(t *testing.T) {
	for _, v := range []int64{1000, 3000, 5000} {
		assert.True(t, ValidTokenAmount(v))
	}
	for _, v := range []int64{0, 500, 2000, 10000, -1000} {
		assert.False(t, ValidTokenAmount(v))
	}
}
