package booking_controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/greenvale/resort-booking/bookingsession"
	redisclient "github.com/greenvale/resort-booking/config/redis"
	"github.com/greenvale/resort-booking/logger"
	"github.com/greenvale/resort-booking/models/booking_models"
	"github.com/greenvale/resort-booking/models/location_models"
	"github.com/greenvale/resort-booking/utils/pdf"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookedDatesCacheTTL = 5 * time.Minute

var phoneRx = regexp.MustCompile(`^[0-9]{10}$`)

// BookingController holds dependencies for booking operations.
type BookingController struct {
	DB *pgxpool.Pool
}

// NewBookingController creates a new instance of BookingController.
func NewBookingController(db *pgxpool.Pool) *BookingController {
	return &BookingController{DB: db}
}

type createBookingRequest struct {
	LocationID   string `json:"locationId" binding:"required"`
	CheckInDate  string `json:"checkInDate" binding:"required"`
	CheckOutDate string `json:"checkOutDate" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Address      string `json:"address" binding:"required"`
	Adults       int    `json:"adults" binding:"required,min=1"`
	Kids         int    `json:"kids" binding:"min=0"`
	WithFood     bool   `json:"withFood"`
	Pricing      struct {
		TotalPrice int64 `json:"totalPrice"`
	} `json:"pricing"`
	TokenAmount int64 `json:"tokenAmount" binding:"required"`
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
}

// CreateBooking validates the request, reprices it server-side and inserts a
// pending booking. The client-supplied total is advisory only; the price the
// booking is stored with always comes from the location's own rates.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	logger.InfoLogger.Info("CreateBooking called")

	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorLogger.Error("Invalid request body for CreateBooking: " + err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	if !phoneRx.MatchString(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "phone must be a 10 digit number"})
		return
	}
	if !bookingsession.ValidTokenAmount(req.TokenAmount) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid token amount"})
		return
	}

	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid location id"})
		return
	}

	checkIn, err := parseDate(req.CheckInDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid check-in date"})
		return
	}
	checkOut, err := parseDate(req.CheckOutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid check-out date"})
		return
	}
	if checkOut.Before(checkIn) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "check-out must not be before check-in"})
		return
	}

	ctx := c.Request.Context()
	location, err := location_models.GetLocationByID(ctx, bc.DB, locationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "location not found"})
		return
	}

	if req.Adults+req.Kids > location.CapacityOfPersons {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "guest count exceeds location capacity"})
		return
	}

	nights := bookingsession.Nights(checkIn, checkOut, location.PropertyDetails.NightStay)
	total := location.Pricing.Total(req.Adults, req.Kids, nights)
	if req.Pricing.TotalPrice != 0 && req.Pricing.TotalPrice != total {
		logger.WarnLogger.Warnf("Client total %d differs from server total %d for location %s",
			req.Pricing.TotalPrice, total, locationID)
	}

	booking := &booking_models.Booking{
		LocationID:   locationID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Name:         req.Name,
		Phone:        req.Phone,
		Address:      req.Address,
		Adults:       req.Adults,
		Kids:         req.Kids,
		WithFood:     req.WithFood,
		TotalPrice:   total,
		TokenAmount:  req.TokenAmount,
	}

	created, err := booking_models.CreateBooking(ctx, bc.DB, booking)
	if err != nil {
		if errors.Is(err, booking_models.ErrDatesUnavailable) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create booking"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "booking": created})
}

// GetBookedDates returns the days a location is unavailable. Results are
// cached in Redis and invalidated when a payment verifies.
func (bc *BookingController) GetBookedDates(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("locationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid location id"})
		return
	}

	ctx := c.Request.Context()
	cacheKey := CacheKeyBookedDates(locationID.String())

	if rdb, err := redisclient.GetRedisClient(ctx); err == nil {
		if cached, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var dates []bookingsession.BookedDate
			if json.Unmarshal([]byte(cached), &dates) == nil {
				c.JSON(http.StatusOK, gin.H{"success": true, "bookedDates": dates})
				return
			}
		}
	}

	raw, err := booking_models.GetBookedDates(ctx, bc.DB, locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch booked dates"})
		return
	}

	dates := make([]bookingsession.BookedDate, 0, len(raw))
	for _, d := range raw {
		dates = append(dates, bookingsession.BookedDate{Date: d, Status: bookingsession.StatusPaid})
	}

	if rdb, err := redisclient.GetRedisClient(ctx); err == nil {
		if encoded, err := json.Marshal(dates); err == nil {
			if err := rdb.Set(ctx, cacheKey, encoded, bookedDatesCacheTTL).Err(); err != nil {
				logger.WarnLogger.Warnf("Failed to cache booked dates for %s: %v", locationID, err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bookedDates": dates})
}

// CacheKeyBookedDates is the Redis key for a location's booked-dates cache.
func CacheKeyBookedDates(locationID string) string {
	return "booked_dates:" + locationID
}

// DownloadBookingPDF streams the receipt for a paid booking.
func (bc *BookingController) DownloadBookingPDF(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid booking id"})
		return
	}

	ctx := c.Request.Context()
	booking, err := booking_models.GetBookingByID(ctx, bc.DB, bookingID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "booking not found"})
		return
	}
	if booking.Status != booking_models.StatusPaid {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "receipt is available only for paid bookings"})
		return
	}

	locationName := "Greenvale Resorts"
	if location, err := location_models.GetLocationByID(ctx, bc.DB, booking.LocationID); err == nil {
		locationName = location.Name
	}

	data, err := pdf.GenerateBookingReceipt(booking, locationName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to generate receipt"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="booking-`+booking.ID.String()+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
