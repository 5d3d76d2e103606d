package bookingsession

import "time"

// LocationInfo is the slice of a location the booking flow needs. The full
// catalog record lives server-side; a session only cares about identity,
// capacity, the night-stay flag and the rate card.
type LocationInfo struct {
	ID          string  `json:"id"`
	NightStay   bool    `json:"nightStay"`
	MaxCapacity int     `json:"maxCapacity"`
	Pricing     Pricing `json:"pricing"`
}

// BookingSession is the state of one in-progress booking on a location
// detail page: calendar, selection, guests, food flag and token choice.
// It is created when the page mounts and discarded when it unmounts or the
// booking completes.
type BookingSession struct {
	Location LocationInfo
	Calendar *Calendar
	Pager    *MonthPager
	Guests   Guests

	Selection    Selection
	FoodIncluded bool
	TokenAmount  int64

	strategy SelectionStrategy
}

// NewBookingSession builds a session for a location. The selection variant
// is fixed here, once, from the night-stay flag. booked may be nil when the
// fetch failed; every day then appears available.
func NewBookingSession(loc LocationInfo, months []Month, booked []BookedDate, today time.Time) *BookingSession {
	return &BookingSession{
		Location: loc,
		Calendar: NewCalendar(months, booked, today),
		Pager:    NewMonthPager(len(months)),
		Guests:   NewGuests(loc.MaxCapacity),
		strategy: StrategyFor(loc.NightStay),
	}
}

// ClickDate applies a calendar click. Clicks on past or booked days are
// no-ops and never mutate the selection.
func (s *BookingSession) ClickDate(day time.Time) {
	if s.Calendar.IsDisabled(day) {
		return
	}
	s.strategy.HandleDateClick(&s.Selection, day)
}

// ClickCell applies a click addressed as (monthIndex, dayNumber), the way
// the rendered grid reports it.
func (s *BookingSession) ClickCell(monthIndex, day int) {
	d, ok := s.Calendar.DayOf(monthIndex, day)
	if !ok {
		return
	}
	s.ClickDate(d)
}

// RefreshBookedDates replaces the calendar's booked set, e.g. after payment
// confirmation. A nil slice is the fail-open result of a failed fetch.
func (s *BookingSession) RefreshBookedDates(booked []BookedDate) {
	s.Calendar.SetBookedDates(booked)
}

// Nights is the billable night count for the current selection.
func (s *BookingSession) Nights() int {
	if !s.Selection.Complete() {
		return 0
	}
	return Nights(*s.Selection.CheckInDate, *s.Selection.CheckOutDate, s.Location.NightStay)
}

// Quote computes the total and the post-token balance for the current
// selection and guest counts.
func (s *BookingSession) Quote() (total, remaining int64) {
	total = s.Location.Pricing.Total(s.Guests.Adults, s.Guests.Kids, s.Nights())
	remaining = Remaining(total, s.TokenAmount)
	return total, remaining
}

// CanReserve gates the reserve action: a complete date range and a guest
// count within capacity.
func (s *BookingSession) CanReserve() bool {
	return s.Selection.Complete() && !s.Guests.OverCapacity()
}

// Request assembles the submission payload from the session state.
func (s *BookingSession) Request(name, phone, address string) BookingRequest {
	total, _ := s.Quote()
	return BookingRequest{
		LocationID:   s.Location.ID,
		CheckInDate:  derefTime(s.Selection.CheckInDate),
		CheckOutDate: derefTime(s.Selection.CheckOutDate),
		Name:         name,
		Phone:        phone,
		Address:      address,
		Adults:       s.Guests.Adults,
		Kids:         s.Guests.Kids,
		WithFood:     s.FoodIncluded,
		TotalPrice:   total,
		TokenAmount:  s.TokenAmount,
	}
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
