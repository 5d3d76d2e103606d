package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/greenvale/resort-booking/config/db"
	"github.com/greenvale/resort-booking/controllers/admin_controller"
	"github.com/greenvale/resort-booking/controllers/hero_controller"
	middleware "github.com/greenvale/resort-booking/middlewares"
	"github.com/greenvale/resort-booking/middlewares/auth"
)

func RegisterAdminRoutes(router *gin.Engine) {
	adminController := admin_controller.NewAdminController(db.DB)
	heroController := hero_controller.NewHeroController(db.DB)

	api := router.Group("/admin")
	{
		api.POST("/login", middleware.CombinedRateLimiter("admin_login", "5-1m", "20-1h"), adminController.Login)
	}

	protected := router.Group("/admin")
	protected.Use(auth.AuthMiddleware())
	{
		protected.GET("/bookings", adminController.ListBookings)
		protected.POST("/locations", adminController.CreateLocation)
		protected.PATCH("/locations/:id", adminController.UpdateLocation)
		protected.POST("/homepage-hero", heroController.CreateHeroImage)
		protected.DELETE("/homepage-hero/:id", heroController.DeleteHeroImage)
	}
}
