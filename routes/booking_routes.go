package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/greenvale/resort-booking/config/db"
	"github.com/greenvale/resort-booking/controllers/booking_controller"
	middleware "github.com/greenvale/resort-booking/middlewares"
)

func RegisterBookingRoutes(router *gin.Engine) {
	bookingController := booking_controller.NewBookingController(db.DB)

	api := router.Group("/bookings")
	{
		// Submissions are throttled harder than reads.
		api.POST("", middleware.CombinedRateLimiter("bookings_create", "5-1m", "20-1h"), bookingController.CreateBooking)
		api.GET("/dates/:locationId", middleware.NewRateLimiter("60-1m", "bookings_dates"), bookingController.GetBookedDates)
		api.GET("/:id/download-pdf", middleware.NewRateLimiter("10-1m", "bookings_pdf"), bookingController.DownloadBookingPDF)
	}
}
