package bookingsession

import (
	"encoding/json"
	"fmt"
	"time"
)

// Booked date statuses as reported by the bookings API.
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
)

// Month describes one renderable calendar month.
type Month struct {
	Name     string     `json:"name"`
	Year     int        `json:"year"`
	Month    time.Month `json:"month"`
	Days     int        `json:"days"`
	StartDay int        `json:"startDay"` // weekday of the 1st, Sunday = 0
}

// GenerateMonths builds n consecutive months starting from the month of now.
func GenerateMonths(n int, now time.Time) []Month {
	months := make([]Month, 0, n)
	for i := 0; i < n; i++ {
		first := time.Date(now.Year(), now.Month()+time.Month(i), 1, 0, 0, 0, 0, now.Location())
		daysInMonth := first.AddDate(0, 1, -1).Day()
		months = append(months, Month{
			Name:     first.Format("January 2006"),
			Year:     first.Year(),
			Month:    first.Month(),
			Days:     daysInMonth,
			StartDay: int(first.Weekday()),
		})
	}
	return months
}

// BookedDate is a server-reported unavailable day for a location.
type BookedDate struct {
	Date   time.Time `json:"date"`
	Status string    `json:"status"`
}

// bookedDateWire mirrors the API payload, where the date travels as a
// string. Older backend revisions sent full ISO timestamps, the current one
// sends plain calendar days; both are accepted.
type bookedDateWire struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

func (b *BookedDate) UnmarshalJSON(data []byte) error {
	var w bookedDateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t, err := parseAPIDate(w.Date)
	if err != nil {
		return err
	}
	b.Date = t
	b.Status = w.Status
	return nil
}

func (b BookedDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(bookedDateWire{
		Date:   b.Date.Format("2006-01-02"),
		Status: b.Status,
	})
}

func parseAPIDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return atMidnight(t), nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// atMidnight truncates a time to its calendar day.
func atMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// DayState classifies one rendered day.
type DayState int

const (
	DaySelectable DayState = iota
	DayPast
	DayBooked
)

func (s DayState) String() string {
	switch s {
	case DayPast:
		return "past"
	case DayBooked:
		return "booked"
	default:
		return "selectable"
	}
}

// Calendar marks days as selectable, past or booked for one location.
// Only paid bookings disable a day; pending ones are informational.
type Calendar struct {
	Months []Month
	today  time.Time
	booked map[string]string // day key -> status
}

// NewCalendar builds a calendar over the given months. booked may be nil or
// empty, which leaves every future day selectable (a failed booked-dates
// fetch fails open).
func NewCalendar(months []Month, booked []BookedDate, today time.Time) *Calendar {
	c := &Calendar{
		Months: months,
		today:  atMidnight(today),
	}
	c.SetBookedDates(booked)
	return c
}

// SetBookedDates replaces the booked set, e.g. after the post-payment
// refetch.
func (c *Calendar) SetBookedDates(booked []BookedDate) {
	c.booked = make(map[string]string, len(booked))
	for _, b := range booked {
		c.booked[dateKey(atMidnight(b.Date))] = b.Status
	}
}

// DayState evaluates the day-state rules in precedence order: past first,
// then paid bookings, otherwise selectable.
func (c *Calendar) DayState(day time.Time) DayState {
	d := atMidnight(day)
	if d.Before(c.today) {
		return DayPast
	}
	if c.booked[dateKey(d)] == StatusPaid {
		return DayBooked
	}
	return DaySelectable
}

// IsDisabled reports whether a day cannot be clicked.
func (c *Calendar) IsDisabled(day time.Time) bool {
	return c.DayState(day) != DaySelectable
}

// DayOf resolves a (monthIndex, dayNumber) cell to a concrete date.
func (c *Calendar) DayOf(monthIndex, day int) (time.Time, bool) {
	if monthIndex < 0 || monthIndex >= len(c.Months) {
		return time.Time{}, false
	}
	m := c.Months[monthIndex]
	if day < 1 || day > m.Days {
		return time.Time{}, false
	}
	return time.Date(m.Year, m.Month, day, 0, 0, 0, 0, time.UTC), true
}

// MonthPager tracks the 2-month visible window of the calendar.
type MonthPager struct {
	total   int
	current int
}

func NewMonthPager(totalMonths int) *MonthPager {
	return &MonthPager{total: totalMonths}
}

// Current returns the index of the left visible month.
func (p *MonthPager) Current() int { return p.current }

// Prev pages back one month, stopping at month 0.
func (p *MonthPager) Prev() {
	if p.current > 0 {
		p.current--
	}
}

// Next pages forward one month, keeping two months visible.
func (p *MonthPager) Next() {
	if p.current < p.total-2 {
		p.current++
	}
}

// Visible returns the indexes of the currently shown month pair.
func (p *MonthPager) Visible() (int, int) {
	second := p.current + 1
	if second > p.total-1 {
		second = p.total - 1
	}
	return p.current, second
}
