package review_models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/greenvale/resort-booking/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Review is one guest review shown on a location page.
type Review struct {
	ID         uuid.UUID `json:"id"`
	LocationID uuid.UUID `json:"locationId"`
	Name       string    `json:"name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Recommend  bool      `json:"recommend"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Summary aggregates a location's reviews for the stats strip.
type Summary struct {
	AverageRating         float64 `json:"averageRating"`
	TotalReviews          int     `json:"totalReviews"`
	RecommendedPercentage float64 `json:"recommendedPercentage"`
}

// CreateReview stores a guest review.
func CreateReview(ctx context.Context, db *pgxpool.Pool, r *Review) (*Review, error) {
	logger.InfoLogger.Infof("Creating review from %q (rating %d)", r.Name, r.Rating)

	if r.Rating < 1 || r.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate review ID: %w", err)
	}
	r.ID = id
	r.CreatedAt = time.Now()

	_, err = db.Exec(ctx,
		`INSERT INTO reviews (id, location_id, name, rating, comment, recommend, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, r.LocationID, r.Name, r.Rating, r.Comment, r.Recommend, r.CreatedAt)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert review: %v", err)
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return r, nil
}

// GetReviewsByLocation returns a location's most recent reviews.
func GetReviewsByLocation(ctx context.Context, db *pgxpool.Pool, locationID uuid.UUID, limit int) ([]Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := db.Query(ctx,
		`SELECT id, location_id, name, rating, comment, recommend, created_at
		 FROM reviews WHERE location_id = $1 ORDER BY created_at DESC LIMIT $2`,
		locationID, limit)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch reviews for location %s: %v", locationID, err)
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.LocationID, &r.Name, &r.Rating, &r.Comment, &r.Recommend, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, nil
}

// GetSummaryByLocation computes a location's aggregate stats in SQL.
func GetSummaryByLocation(ctx context.Context, db *pgxpool.Pool, locationID uuid.UUID) (*Summary, error) {
	s := &Summary{}
	err := db.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0),
		        COUNT(*),
		        COALESCE(100.0 * COUNT(*) FILTER (WHERE recommend) / NULLIF(COUNT(*), 0), 0)
		 FROM reviews WHERE location_id = $1`, locationID).
		Scan(&s.AverageRating, &s.TotalReviews, &s.RecommendedPercentage)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to compute review summary for location %s: %v", locationID, err)
		return nil, fmt.Errorf("failed to compute review summary: %w", err)
	}
	return s, nil
}
