package hero_models

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/greenvale/resort-booking/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HeroImage is one slide in the landing-page carousel. Inactive slides stay
// in the table for the admin surface but are not served to the homepage.
type HeroImage struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Position  int       `json:"position"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetActiveHeroImages returns the live carousel slides in display order.
func GetActiveHeroImages(ctx context.Context, db *pgxpool.Pool) ([]HeroImage, error) {
	rows, err := db.Query(ctx,
		`SELECT id, url, title, subtitle, position, is_active, created_at
		 FROM hero_images WHERE is_active ORDER BY position`)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch hero images: %v", err)
		return nil, fmt.Errorf("failed to fetch hero images: %w", err)
	}
	defer rows.Close()

	var images []HeroImage
	for rows.Next() {
		var img HeroImage
		if err := rows.Scan(&img.ID, &img.URL, &img.Title, &img.Subtitle, &img.Position, &img.IsActive, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan hero image: %w", err)
		}
		images = append(images, img)
	}
	return images, nil
}

// CreateHeroImage adds a slide (admin surface).
func CreateHeroImage(ctx context.Context, db *pgxpool.Pool, img *HeroImage) (*HeroImage, error) {
	logger.InfoLogger.Infof("Creating hero image %q", img.Title)

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate hero image ID: %w", err)
	}
	img.ID = id
	img.CreatedAt = time.Now()

	_, err = db.Exec(ctx,
		`INSERT INTO hero_images (id, url, title, subtitle, position, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		img.ID, img.URL, img.Title, img.Subtitle, img.Position, img.IsActive, img.CreatedAt)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert hero image: %v", err)
		return nil, fmt.Errorf("failed to create hero image: %w", err)
	}
	return img, nil
}

// DeleteHeroImage removes a slide.
func DeleteHeroImage(ctx context.Context, db *pgxpool.Pool, id uuid.UUID) error {
	cmdTag, err := db.Exec(ctx, `DELETE FROM hero_images WHERE id = $1`, id)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to delete hero image %s: %v", id, err)
		return fmt.Errorf("failed to delete hero image: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("hero image not found")
	}
	return nil
}
