package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/greenvale/resort-booking/config/db"
	"github.com/greenvale/resort-booking/controllers/review_controller"
	middleware "github.com/greenvale/resort-booking/middlewares"
)

func RegisterReviewRoutes(router *gin.Engine) {
	reviewController := review_controller.NewReviewController(db.DB)

	api := router.Group("/reviews")
	{
		api.GET("/location/:id", middleware.NewRateLimiter("60-1m", "reviews_list"), reviewController.GetLocationReviews)
		api.POST("", middleware.CombinedRateLimiter("reviews_create", "3-1m", "10-1h"), reviewController.CreateReview)
	}
}
