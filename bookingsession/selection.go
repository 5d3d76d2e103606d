package bookingsession

import "time"

// Selection is the ephemeral state of an in-progress date choice.
type Selection struct {
	CheckInDate   *time.Time
	CheckOutDate  *time.Time
	SelectedDates []time.Time
}

// Clear resets the selection.
func (s *Selection) Clear() {
	s.CheckInDate = nil
	s.CheckOutDate = nil
	s.SelectedDates = nil
}

// Complete reports whether both ends of the range are set.
func (s *Selection) Complete() bool {
	return s.CheckInDate != nil && s.CheckOutDate != nil
}

// SelectionStrategy turns a day click into a selection change. The variant
// is chosen once per location from propertyDetails.nightStay instead of
// branching on the flag at every click site.
type SelectionStrategy interface {
	HandleDateClick(sel *Selection, day time.Time)
}

// NightStaySelection implements the two-click range flow: the first click
// seeds check-in, a later click completes the range, and any click at or
// before the current check-in restarts from the clicked day.
type NightStaySelection struct{}

func (NightStaySelection) HandleDateClick(sel *Selection, day time.Time) {
	d := atMidnight(day)

	if sel.CheckInDate != nil && sel.CheckOutDate == nil && d.After(*sel.CheckInDate) {
		sel.CheckOutDate = &d
		sel.SelectedDates = spanDates(*sel.CheckInDate, d)
		return
	}

	// First click, a restart after a completed range, or a click that is
	// not later than the current check-in.
	sel.CheckInDate = &d
	sel.CheckOutDate = nil
	sel.SelectedDates = []time.Time{d}
}

// DayOnlySelection models a single-day visit: every click selects that day
// and sets check-out to the next calendar day so pricing still sees a
// 1-night span.
type DayOnlySelection struct{}

func (DayOnlySelection) HandleDateClick(sel *Selection, day time.Time) {
	d := atMidnight(day)
	next := d.AddDate(0, 0, 1)
	sel.CheckInDate = &d
	sel.CheckOutDate = &next
	sel.SelectedDates = []time.Time{d}
}

// StrategyFor picks the selection variant for a location.
func StrategyFor(nightStay bool) SelectionStrategy {
	if nightStay {
		return NightStaySelection{}
	}
	return DayOnlySelection{}
}

// spanDates returns every day from 'from' through 'to' inclusive.
func spanDates(from, to time.Time) []time.Time {
	var dates []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
