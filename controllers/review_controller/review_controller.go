package review_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/greenvale/resort-booking/logger"
	"github.com/greenvale/resort-booking/models/review_models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReviewController holds dependencies for review operations.
type ReviewController struct {
	DB *pgxpool.Pool
}

// NewReviewController creates a new instance of ReviewController.
func NewReviewController(db *pgxpool.Pool) *ReviewController {
	return &ReviewController{DB: db}
}

type createReviewRequest struct {
	LocationID string `json:"locationId" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Rating     int    `json:"rating" binding:"required,min=1,max=5"`
	Comment    string `json:"comment" binding:"required"`
	Recommend  bool   `json:"recommend"`
}

// CreateReview stores a guest review against a location.
func (rc *ReviewController) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorLogger.Error("Invalid request body for CreateReview: " + err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid location id"})
		return
	}

	review := &review_models.Review{
		LocationID: locationID,
		Name:       req.Name,
		Rating:     req.Rating,
		Comment:    req.Comment,
		Recommend:  req.Recommend,
	}

	created, err := review_models.CreateReview(c.Request.Context(), rc.DB, review)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create review"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "review": created})
}

// GetLocationReviews returns a location's latest reviews along with the
// aggregate stats strip.
func (rc *ReviewController) GetLocationReviews(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid location id"})
		return
	}

	limit := 20
	if q := c.Query("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil {
			limit = n
		}
	}

	ctx := c.Request.Context()
	reviews, err := review_models.GetReviewsByLocation(ctx, rc.DB, locationID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch reviews"})
		return
	}

	summary, err := review_models.GetSummaryByLocation(ctx, rc.DB, locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch review summary"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "reviews": reviews, "summary": summary})
}
