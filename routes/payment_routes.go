package routes

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/greenvale/resort-booking/clients"
	"github.com/greenvale/resort-booking/config/db"
	"github.com/greenvale/resort-booking/controllers/payment_controller"
	middleware "github.com/greenvale/resort-booking/middlewares"
)

func RegisterPaymentRoutes(router *gin.Engine) {
	gateway := clients.NewRazorpayClient(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"))
	paymentController := payment_controller.NewPaymentController(db.DB, gateway)

	api := router.Group("/payments")
	{
		api.POST("/create-order", middleware.CombinedRateLimiter("payments_create_order", "5-1m", "30-1h"), paymentController.CreateOrder)
		api.POST("/verify", middleware.CombinedRateLimiter("payments_verify", "10-1m", "60-1h"), paymentController.VerifyPayment)
	}
}
