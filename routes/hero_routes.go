package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/greenvale/resort-booking/config/db"
	"github.com/greenvale/resort-booking/controllers/hero_controller"
	middleware "github.com/greenvale/resort-booking/middlewares"
)

func RegisterHeroRoutes(router *gin.Engine) {
	heroController := hero_controller.NewHeroController(db.DB)

	api := router.Group("/homepage-hero")
	{
		api.GET("/active", middleware.NewRateLimiter("60-1m", "hero_active"), heroController.GetActiveHeroImages)
	}
}
