package location_controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/greenvale/resort-booking/bookingsession"
	"github.com/greenvale/resort-booking/logger"
	"github.com/greenvale/resort-booking/models/booking_models"
	"github.com/greenvale/resort-booking/models/location_models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LocationController holds dependencies for catalog operations.
type LocationController struct {
	DB *pgxpool.Pool
}

// NewLocationController creates a new instance of LocationController.
func NewLocationController(db *pgxpool.Pool) *LocationController {
	return &LocationController{DB: db}
}

// GetLocations lists every property.
func (lc *LocationController) GetLocations(c *gin.Context) {
	locations, err := location_models.GetLocations(c.Request.Context(), lc.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch locations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "locations": locations})
}

// GetLocationByID returns one property with its full gallery.
func (lc *LocationController) GetLocationByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid location id"})
		return
	}

	location, err := location_models.GetLocationByID(c.Request.Context(), lc.DB, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "location not found"})
		return
	}
	// bookingInfo is the slice the booking widget seeds its session with.
	c.JSON(http.StatusOK, gin.H{"success": true, "location": location, "bookingInfo": location.Info()})
}

type calendarDay struct {
	Day   int    `json:"day"`
	State string `json:"state"`
}

type calendarMonth struct {
	Name     string        `json:"name"`
	Year     int           `json:"year"`
	Month    int           `json:"month"`
	StartDay int           `json:"startDay"`
	Days     []calendarDay `json:"days"`
}

// GetLocationCalendar renders the availability grid the booking widget
// shows: consecutive months with each day classified as past, booked or
// selectable. Pending bookings never disable a day.
func (lc *LocationController) GetLocationCalendar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid location id"})
		return
	}

	monthCount := 3
	if q := c.Query("months"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n < 1 || n > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "months must be between 1 and 12"})
			return
		}
		monthCount = n
	}

	ctx := c.Request.Context()
	if _, err := location_models.GetLocationByID(ctx, lc.DB, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "location not found"})
		return
	}

	var booked []bookingsession.BookedDate
	raw, err := booking_models.GetBookedDates(ctx, lc.DB, id)
	if err != nil {
		// Availability fails open: an empty booked set beats an unusable calendar.
		logger.WarnLogger.Warnf("Booked dates unavailable for calendar of %s: %v", id, err)
	} else {
		for _, d := range raw {
			booked = append(booked, bookingsession.BookedDate{Date: d, Status: bookingsession.StatusPaid})
		}
	}

	// DayOf resolves cells to UTC dates, so today must be UTC too or the
	// current day would read as past in UTC-negative server zones.
	now := time.Now().UTC()
	months := bookingsession.GenerateMonths(monthCount, now)
	calendar := bookingsession.NewCalendar(months, booked, now)

	out := make([]calendarMonth, 0, len(months))
	for i, m := range months {
		cm := calendarMonth{
			Name:     m.Name,
			Year:     m.Year,
			Month:    int(m.Month),
			StartDay: m.StartDay,
			Days:     make([]calendarDay, 0, m.Days),
		}
		for day := 1; day <= m.Days; day++ {
			date, _ := calendar.DayOf(i, day)
			cm.Days = append(cm.Days, calendarDay{
				Day:   day,
				State: calendar.DayState(date).String(),
			})
		}
		out = append(out, cm)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "months": out})
}
