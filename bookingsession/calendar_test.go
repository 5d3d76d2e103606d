package bookingsession

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestGenerateMonths(t *testing.T) {
	now := date(2025, time.November, 15)
	months := GenerateMonths(6, now)
	require.Len(t, months, 6)

	assert.Equal(t, "November 2025", months[0].Name)
	assert.Equal(t, 2025, months[0].Year)
	assert.Equal(t, 30, months[0].Days)
	// 1 Nov 2025 is a Saturday
	assert.Equal(t, 6, months[0].StartDay)

	assert.Equal(t, "December 2025", months[1].Name)
	assert.Equal(t, 31, months[1].Days)

	// Year rollover
	assert.Equal(t, "January 2026", months[2].Name)
	assert.Equal(t, 2026, months[2].Year)

	// February of a non-leap year
	assert.Equal(t, 28, months[3].Days)
}

func TestCalendarDayState(t *testing.T) {
	today := date(2025, time.November, 5)
	months := GenerateMonths(2, today)

	booked := []BookedDate{
		{Date: date(2025, time.November, 7), Status: StatusPaid},
		{Date: date(2025, time.November, 12), Status: StatusPending},
	}
	cal := NewCalendar(months, booked, today)

	t.Run("PastDatesDisabled", func(t *testing.T) {
		assert.Equal(t, DayPast, cal.DayState(date(2025, time.November, 4)))
		assert.True(t, cal.IsDisabled(date(2025, time.November, 4)))
	})

	t.Run("TodayIsSelectable", func(t *testing.T) {
		assert.Equal(t, DaySelectable, cal.DayState(today))
	})

	t.Run("PaidBookingDisables", func(t *testing.T) {
		assert.Equal(t, DayBooked, cal.DayState(date(2025, time.November, 7)))
		assert.True(t, cal.IsDisabled(date(2025, time.November, 7)))
	})

	t.Run("PendingBookingDoesNotDisable", func(t *testing.T) {
		assert.Equal(t, DaySelectable, cal.DayState(date(2025, time.November, 12)))
	})

	t.Run("PastWinsOverBooked", func(t *testing.T) {
		c := NewCalendar(months, []BookedDate{
			{Date: date(2025, time.November, 3), Status: StatusPaid},
		}, today)
		assert.Equal(t, DayPast, c.DayState(date(2025, time.November, 3)))
	})

	t.Run("FailedFetchFailsOpen", func(t *testing.T) {
		open := NewCalendar(months, nil, today)
		assert.Equal(t, DaySelectable, open.DayState(date(2025, time.November, 7)))
	})
}

func TestCalendarSetBookedDates(t *testing.T) {
	today := date(2025, time.November, 5)
	cal := NewCalendar(GenerateMonths(2, today), nil, today)
	assert.False(t, cal.IsDisabled(date(2025, time.November, 20)))

	// Refetch after a confirmed payment makes the new reservation show up.
	cal.SetBookedDates([]BookedDate{{Date: date(2025, time.November, 20), Status: StatusPaid}})
	assert.True(t, cal.IsDisabled(date(2025, time.November, 20)))
}

func TestBookedDateJSON(t *testing.T) {
	t.Run("PlainDate", func(t *testing.T) {
		var b BookedDate
		require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-11-07","status":"paid"}`), &b))
		assert.Equal(t, StatusPaid, b.Status)
		assert.True(t, sameDay(b.Date, date(2025, time.November, 7)))
	})

	t.Run("ISOTimestamp", func(t *testing.T) {
		var b BookedDate
		require.NoError(t, json.Unmarshal([]byte(`{"date":"2025-11-07T10:30:00Z","status":"pending"}`), &b))
		assert.True(t, sameDay(b.Date, date(2025, time.November, 7)))
	})

	t.Run("RoundTrip", func(t *testing.T) {
		b := BookedDate{Date: date(2025, time.November, 7), Status: StatusPaid}
		out, err := json.Marshal(b)
		require.NoError(t, err)
		assert.JSONEq(t, `{"date":"2025-11-07","status":"paid"}`, string(out))
	})
}

func TestMonthPager(t *testing.T) {
	p := NewMonthPager(6)

	t.Run("CannotPageBeforeZero", func(t *testing.T) {
		p.Prev()
		assert.Equal(t, 0, p.Current())
	})

	t.Run("VisiblePair", func(t *testing.T) {
		a, b := p.Visible()
		assert.Equal(t, 0, a)
		assert.Equal(t, 1, b)
	})

	t.Run("CannotPagePastLastPair", func(t *testing.T) {
		for i := 0; i < 10; i++ {
			p.Next()
		}
		assert.Equal(t, 4, p.Current())
		a, b := p.Visible()
		assert.Equal(t, 4, a)
		assert.Equal(t, 5, b)
	})
}

func TestCalendarDayOf(t *testing.T) {
	today := date(2025, time.November, 5)
	cal := NewCalendar(GenerateMonths(2, today), nil, today)

	d, ok := cal.DayOf(1, 25)
	require.True(t, ok)
	assert.True(t, sameDay(d, date(2025, time.December, 25)))

	_, ok = cal.DayOf(5, 1)
	assert.False(t, ok)
	_, ok = cal.DayOf(0, 31) // November has 30 days
	assert.False(t, ok)
}

func TestTodaySelectableWithNegativeOffsetClock(t *testing.T) {
	// A server west of UTC reads the wall clock in its local zone, but DayOf
	// resolves grid cells to UTC dates. Normalizing the clock to UTC before
	// building the calendar keeps the current day selectable.
	zone := time.FixedZone("UTC-7", -7*3600)
	wallClock := time.Date(2025, time.November, 15, 1, 0, 0, 0, zone)

	now := wallClock.UTC()
	months := GenerateMonths(3, now)
	cal := NewCalendar(months, nil, now)

	today, ok := cal.DayOf(0, now.Day())
	require.True(t, ok)
	assert.Equal(t, DaySelectable, cal.DayState(today))

	yesterday, ok := cal.DayOf(0, now.Day()-1)
	require.True(t, ok)
	assert.Equal(t, DayPast, cal.DayState(yesterday))
}
