package hero_controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/greenvale/resort-booking/logger"
	"github.com/greenvale/resort-booking/models/hero_models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HeroController holds dependencies for the landing-page carousel.
type HeroController struct {
	DB *pgxpool.Pool
}

// NewHeroController creates a new instance of HeroController.
func NewHeroController(db *pgxpool.Pool) *HeroController {
	return &HeroController{DB: db}
}

// GetActiveHeroImages returns the live carousel slides in display order.
func (hc *HeroController) GetActiveHeroImages(c *gin.Context) {
	images, err := hero_models.GetActiveHeroImages(c.Request.Context(), hc.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch hero images"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "heroImages": images})
}

type createHeroImageRequest struct {
	URL      string `json:"url" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Subtitle string `json:"subtitle"`
	Position int    `json:"position"`
	IsActive *bool  `json:"isActive"`
}

// CreateHeroImage adds a slide (admin only).
func (hc *HeroController) CreateHeroImage(c *gin.Context) {
	var req createHeroImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.ErrorLogger.Error("Invalid request body for CreateHeroImage: " + err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	img := &hero_models.HeroImage{
		URL:      req.URL,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Position: req.Position,
		IsActive: active,
	}

	created, err := hero_models.CreateHeroImage(c.Request.Context(), hc.DB, img)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create hero image"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "heroImage": created})
}

// DeleteHeroImage removes a slide (admin only).
func (hc *HeroController) DeleteHeroImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid hero image id"})
		return
	}

	if err := hero_models.DeleteHeroImage(c.Request.Context(), hc.DB, id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "hero image not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
