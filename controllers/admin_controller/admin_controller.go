package admin_controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/greenvale/resort-booking/logger"
	"github.com/greenvale/resort-booking/middlewares/auth"
	"github.com/greenvale/resort-booking/models/admin_models"
	"github.com/greenvale/resort-booking/models/booking_models"
	"github.com/greenvale/resort-booking/models/location_models"
	"github.com/greenvale/resort-booking/utils"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminController holds dependencies for the back-office surface.
type AdminController struct {
	DB *pgxpool.Pool
}

// NewAdminController creates a new instance of AdminController.
func NewAdminController(db *pgxpool.Pool) *AdminController {
	return &AdminController{DB: db}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues an admin JWT.
func (ac *AdminController) Login(c *gin.Context) {
	logger.InfoLogger.Info("Admin login called")

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	admin, err := admin_models.GetAdminByEmail(c.Request.Context(), ac.DB, req.Email)
	if err != nil || !utils.VerifyPassword(req.Password, admin.PasswordHash) {
		logger.WarnLogger.Warnf("Failed admin login attempt for %s", req.Email)
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid email or password"})
		return
	}

	token, err := auth.GenerateAdminToken(admin.ID.String())
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to generate admin token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to generate token"})
		return
	}

	logger.InfoLogger.Infof("Admin %s logged in", admin.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// ListBookings returns a page of bookings, newest first. Accepts ?status=,
// ?limit= and ?offset=.
func (ac *AdminController) ListBookings(c *gin.Context) {
	status := c.Query("status")
	if status != "" && status != booking_models.StatusPending && status != booking_models.StatusPaid {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown status filter"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	bookings, total, err := booking_models.GetAllBookings(c.Request.Context(), ac.DB, status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "bookings": bookings, "total": total})
}

// CreateLocation adds a property to the catalog.
func (ac *AdminController) CreateLocation(c *gin.Context) {
	var loc location_models.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		logger.ErrorLogger.Error("Invalid request body for CreateLocation: " + err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	if loc.Name == "" || loc.CapacityOfPersons < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "name and capacity are required"})
		return
	}

	created, err := location_models.CreateLocation(c.Request.Context(), ac.DB, &loc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create location"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "location": created})
}

// UpdateLocation rewrites a property's details. When the payload carries an
// images array the gallery is replaced with it (an empty array clears it);
// an absent images field leaves the gallery untouched.
func (ac *AdminController) UpdateLocation(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid location id"})
		return
	}

	var loc location_models.Location
	if err := c.ShouldBindJSON(&loc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	loc.ID = id

	ctx := c.Request.Context()
	if err := location_models.UpdateLocation(ctx, ac.DB, &loc); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "location not found"})
		return
	}

	if loc.Images != nil {
		if err := location_models.ReplaceLocationImages(ctx, ac.DB, id, loc.Images); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update location images"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "location": loc})
}
