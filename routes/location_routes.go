package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/greenvale/resort-booking/config/db"
	"github.com/greenvale/resort-booking/controllers/location_controller"
	middleware "github.com/greenvale/resort-booking/middlewares"
)

func RegisterLocationRoutes(router *gin.Engine) {
	locationController := location_controller.NewLocationController(db.DB)

	api := router.Group("/locations")
	{
		api.GET("", middleware.NewRateLimiter("60-1m", "locations_list"), locationController.GetLocations)
		api.GET("/:id", middleware.NewRateLimiter("60-1m", "locations_get"), locationController.GetLocationByID)
		api.GET("/:id/calendar", middleware.NewRateLimiter("60-1m", "locations_calendar"), locationController.GetLocationCalendar)
	}
}
