package payment_controller

import (
	"context"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/greenvale/resort-booking/bookingsession"
	"github.com/greenvale/resort-booking/clients"
	redisclient "github.com/greenvale/resort-booking/config/redis"
	"github.com/greenvale/resort-booking/controllers/booking_controller"
	"github.com/greenvale/resort-booking/logger"
	"github.com/greenvale/resort-booking/models/booking_models"
	"github.com/greenvale/resort-booking/models/location_models"
	"github.com/greenvale/resort-booking/models/payment_transaction_models"
	"github.com/greenvale/resort-booking/utils/mail"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PaymentController holds dependencies for the gateway handshake.
type PaymentController struct {
	DB      *pgxpool.Pool
	Gateway clients.PaymentGateway
}

// NewPaymentController creates a new instance of PaymentController.
func NewPaymentController(db *pgxpool.Pool, gateway clients.PaymentGateway) *PaymentController {
	return &PaymentController{DB: db, Gateway: gateway}
}

type createOrderRequest struct {
	BookingID   string `json:"bookingId" binding:"required"`
	TokenAmount int64  `json:"tokenAmount" binding:"required"`
}

// CreateOrder opens a Razorpay order for the booking's token amount. The
// gateway deals in paise, so the rupee amount is multiplied by 100 on the
// way out.
func (pc *PaymentController) CreateOrder(c *gin.Context) {
	logger.InfoLogger.Info("CreateOrder called")

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorLogger.Error("Invalid request body for CreateOrder: " + err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	if !bookingsession.ValidTokenAmount(req.TokenAmount) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid token amount"})
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid booking id"})
		return
	}

	ctx := c.Request.Context()
	booking, err := booking_models.GetBookingByID(ctx, pc.DB, bookingID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "booking not found"})
		return
	}
	if booking.Status != booking_models.StatusPending {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "booking is not awaiting payment"})
		return
	}
	if booking.TokenAmount != req.TokenAmount {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "token amount does not match booking"})
		return
	}

	amountPaise := req.TokenAmount * 100
	orderData := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  booking.ID.String(),
	}

	order, err := pc.Gateway.CreateOrder(orderData)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to create gateway order for booking %s: %v", booking.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "failed to create payment order"})
		return
	}

	orderID, _ := order["id"].(string)
	if orderID == "" {
		logger.ErrorLogger.Errorf("Gateway order for booking %s has no id", booking.ID)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "invalid response from payment gateway"})
		return
	}

	if _, err := payment_transaction_models.CreateTransaction(ctx, pc.DB, booking.ID, orderID, amountPaise, "INR"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to record payment order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order": gin.H{
			"id":       orderID,
			"amount":   amountPaise,
			"currency": "INR",
		},
		"key": os.Getenv("RAZORPAY_KEY_ID"),
	})
}

type verifyPaymentRequest struct {
	BookingID         string `json:"bookingId" binding:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// VerifyPayment checks the widget callback signature and, when it holds,
// marks the booking paid, drops the location's booked-dates cache and fires
// the confirmation email in the background.
func (pc *PaymentController) VerifyPayment(c *gin.Context) {
	logger.InfoLogger.Info("VerifyPayment called")

	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorLogger.Error("Invalid request body for VerifyPayment: " + err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid booking id"})
		return
	}

	ctx := c.Request.Context()
	tx, err := payment_transaction_models.GetTransactionByOrderID(ctx, pc.DB, req.RazorpayOrderID)
	if err != nil || tx.BookingID != bookingID {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "payment order not found for booking"})
		return
	}

	if !pc.Gateway.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		logger.WarnLogger.Warnf("Signature verification failed for order %s (booking %s)", req.RazorpayOrderID, bookingID)
		if err := payment_transaction_models.MarkFailed(ctx, pc.DB, req.RazorpayOrderID); err != nil {
			logger.ErrorLogger.Errorf("Failed to record failed verification for order %s: %v", req.RazorpayOrderID, err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "payment verification failed"})
		return
	}

	if err := payment_transaction_models.MarkVerified(ctx, pc.DB, req.RazorpayOrderID, req.RazorpayPaymentID); err != nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "payment already processed"})
		return
	}

	booking, err := booking_models.MarkBookingPaid(ctx, pc.DB, bookingID)
	if err != nil {
		logger.ErrorLogger.Errorf("Payment verified but booking %s could not be marked paid: %v", bookingID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to confirm booking"})
		return
	}

	if rdb, err := redisclient.GetRedisClient(ctx); err == nil {
		cacheKey := booking_controller.CacheKeyBookedDates(booking.LocationID.String())
		if err := rdb.Del(ctx, cacheKey).Err(); err != nil {
			logger.WarnLogger.Warnf("Failed to invalidate booked-dates cache for %s: %v", booking.LocationID, err)
		}
	}

	go func(b *booking_models.Booking) {
		bg := context.Background()
		locationName := "Greenvale Resorts"
		if location, err := location_models.GetLocationByID(bg, pc.DB, b.LocationID); err == nil {
			locationName = location.Name
		}
		if notify := os.Getenv("NOTIFY_EMAIL"); notify != "" {
			if err := mail.SendBookingConfirmation(b, locationName, notify); err != nil {
				logger.ErrorLogger.Errorf("Failed to send confirmation email for booking %s: %v", b.ID, err)
			}
		}
	}(booking)

	c.JSON(http.StatusOK, gin.H{"success": true, "booking": booking})
}
