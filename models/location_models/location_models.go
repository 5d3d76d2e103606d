package location_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/greenvale/resort-booking/bookingsession"
	"github.com/greenvale/resort-booking/logger"
	"github.com/greenvale/resort-booking/utils"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Address of a property.
type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// Coordinates for the map widget.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PropertyDetails describes the stay shape of a property. NightStay drives
// which selection variant the booking flow uses.
type PropertyDetails struct {
	NightStay bool `json:"nightStay"`
	Bedrooms  int  `json:"bedrooms"`
	Bathrooms int  `json:"bathrooms"`
}

// Image is one catalog photo; exactly one should be the main image.
type Image struct {
	URL         string `json:"url"`
	IsMainImage bool   `json:"isMainImage"`
	Title       string `json:"title"`
}

// Location is a bookable property. It is managed through the admin surface
// and read by the public site.
type Location struct {
	ID                uuid.UUID              `json:"id"`
	Name              string                 `json:"name"`
	Description       string                 `json:"description"`
	Address           Address                `json:"address"`
	Coordinates       Coordinates            `json:"coordinates"`
	CapacityOfPersons int                    `json:"capacityOfPersons"`
	PropertyDetails   PropertyDetails        `json:"propertyDetails"`
	Pricing           bookingsession.Pricing `json:"pricing"`
	Images            []Image                `json:"images"`
	Amenities         []string               `json:"amenities"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

// Info converts the catalog record into the slice the booking flow needs.
func (l *Location) Info() bookingsession.LocationInfo {
	return bookingsession.LocationInfo{
		ID:          l.ID.String(),
		NightStay:   l.PropertyDetails.NightStay,
		MaxCapacity: l.CapacityOfPersons,
		Pricing:     l.Pricing,
	}
}

const locationColumns = `
	id, name, description,
	address_line1, address_line2, city, state, pincode,
	lat, lng, capacity_of_persons,
	night_stay, bedrooms, bathrooms,
	price_per_adult, price_per_kid, extra_person_charge,
	amenities, created_at, updated_at`

func scanLocation(row pgx.Row) (*Location, error) {
	loc := &Location{}
	err := row.Scan(
		&loc.ID, &loc.Name, &loc.Description,
		&loc.Address.Line1, &loc.Address.Line2, &loc.Address.City, &loc.Address.State, &loc.Address.Pincode,
		&loc.Coordinates.Lat, &loc.Coordinates.Lng, &loc.CapacityOfPersons,
		&loc.PropertyDetails.NightStay, &loc.PropertyDetails.Bedrooms, &loc.PropertyDetails.Bathrooms,
		&loc.Pricing.PricePerAdult, &loc.Pricing.PricePerKid, &loc.Pricing.ExtraPersonCharge,
		&loc.Amenities, &loc.CreatedAt, &loc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return loc, nil
}

// GetLocations returns every property as a summary (images limited to the
// main image for list views).
func GetLocations(ctx context.Context, db *pgxpool.Pool) ([]Location, error) {
	logger.InfoLogger.Info("Fetching all locations")

	rows, err := db.Query(ctx, `SELECT`+locationColumns+` FROM locations ORDER BY name`)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch locations: %v", err)
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}
	defer rows.Close()

	var locations []Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to scan location row: %v", err)
			return nil, fmt.Errorf("failed to scan location: %w", err)
		}
		locations = append(locations, *loc)
	}

	for i := range locations {
		img, err := getMainImage(ctx, db, locations[i].ID)
		if err != nil {
			continue
		}
		locations[i].Images = []Image{*img}
	}

	logger.InfoLogger.Infof("Fetched %d locations", len(locations))
	return locations, nil
}

// GetLocationByID fetches a full location including its ordered images.
func GetLocationByID(ctx context.Context, db *pgxpool.Pool, id uuid.UUID) (*Location, error) {
	logger.InfoLogger.Infof("Fetching location %s", id)

	loc, err := scanLocation(db.QueryRow(ctx, `SELECT`+locationColumns+` FROM locations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnLogger.Warnf("Location %s not found", id)
			return nil, utils.ErrLocationNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch location %s: %v", id, err)
		return nil, fmt.Errorf("database error fetching location: %w", err)
	}

	rows, err := db.Query(ctx,
		`SELECT url, is_main_image, title FROM location_images WHERE location_id = $1 ORDER BY position`, id)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch images for location %s: %v", id, err)
		return nil, fmt.Errorf("failed to fetch location images: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.URL, &img.IsMainImage, &img.Title); err != nil {
			return nil, fmt.Errorf("failed to scan location image: %w", err)
		}
		loc.Images = append(loc.Images, img)
	}

	return loc, nil
}

func getMainImage(ctx context.Context, db *pgxpool.Pool, locationID uuid.UUID) (*Image, error) {
	img := &Image{}
	err := db.QueryRow(ctx,
		`SELECT url, is_main_image, title FROM location_images
		 WHERE location_id = $1 ORDER BY is_main_image DESC, position LIMIT 1`, locationID).
		Scan(&img.URL, &img.IsMainImage, &img.Title)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// CreateLocation inserts a new property (admin surface).
func CreateLocation(ctx context.Context, db *pgxpool.Pool, loc *Location) (*Location, error) {
	logger.InfoLogger.Infof("Creating location %q", loc.Name)

	if loc.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate UUID for location: %w", err)
		}
		loc.ID = id
	}
	now := time.Now()
	loc.CreatedAt = now
	loc.UpdatedAt = now

	query := `
		INSERT INTO locations (
			id, name, description,
			address_line1, address_line2, city, state, pincode,
			lat, lng, capacity_of_persons,
			night_stay, bedrooms, bathrooms,
			price_per_adult, price_per_kid, extra_person_charge,
			amenities, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20
		) RETURNING id`

	var insertedID uuid.UUID
	err := db.QueryRow(ctx, query,
		loc.ID, loc.Name, loc.Description,
		loc.Address.Line1, loc.Address.Line2, loc.Address.City, loc.Address.State, loc.Address.Pincode,
		loc.Coordinates.Lat, loc.Coordinates.Lng, loc.CapacityOfPersons,
		loc.PropertyDetails.NightStay, loc.PropertyDetails.Bedrooms, loc.PropertyDetails.Bathrooms,
		loc.Pricing.PricePerAdult, loc.Pricing.PricePerKid, loc.Pricing.ExtraPersonCharge,
		loc.Amenities, loc.CreatedAt, loc.UpdatedAt,
	).Scan(&insertedID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert location %q: %v", loc.Name, err)
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	for i, img := range loc.Images {
		if err := AddLocationImage(ctx, db, loc.ID, img, i); err != nil {
			return nil, err
		}
	}

	logger.InfoLogger.Infof("Location %s created", loc.ID)
	return loc, nil
}

// UpdateLocation rewrites the mutable fields of a property.
func UpdateLocation(ctx context.Context, db *pgxpool.Pool, loc *Location) error {
	logger.InfoLogger.Infof("Updating location %s", loc.ID)

	query := `
		UPDATE locations SET
			name = $2, description = $3,
			address_line1 = $4, address_line2 = $5, city = $6, state = $7, pincode = $8,
			lat = $9, lng = $10, capacity_of_persons = $11,
			night_stay = $12, bedrooms = $13, bathrooms = $14,
			price_per_adult = $15, price_per_kid = $16, extra_person_charge = $17,
			amenities = $18, updated_at = $19
		WHERE id = $1`

	cmdTag, err := db.Exec(ctx, query,
		loc.ID, loc.Name, loc.Description,
		loc.Address.Line1, loc.Address.Line2, loc.Address.City, loc.Address.State, loc.Address.Pincode,
		loc.Coordinates.Lat, loc.Coordinates.Lng, loc.CapacityOfPersons,
		loc.PropertyDetails.NightStay, loc.PropertyDetails.Bedrooms, loc.PropertyDetails.Bathrooms,
		loc.Pricing.PricePerAdult, loc.Pricing.PricePerKid, loc.Pricing.ExtraPersonCharge,
		loc.Amenities, time.Now(),
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update location %s: %v", loc.ID, err)
		return fmt.Errorf("failed to update location: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("location with ID %s not found for update", loc.ID)
	}
	return nil
}

// ReplaceLocationImages rewrites a property's gallery in one transaction.
// An empty slice clears the gallery.
func ReplaceLocationImages(ctx context.Context, db *pgxpool.Pool, locationID uuid.UUID, images []Image) error {
	logger.InfoLogger.Infof("Replacing gallery of location %s with %d images", locationID, len(images))

	tx, err := db.Begin(ctx)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to begin gallery transaction: %v", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM location_images WHERE location_id = $1`, locationID); err != nil {
		logger.ErrorLogger.Errorf("Failed to clear gallery of location %s: %v", locationID, err)
		return fmt.Errorf("failed to clear location images: %w", err)
	}

	for i, img := range images {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate UUID for image: %w", err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO location_images (id, location_id, url, is_main_image, title, position)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			id, locationID, img.URL, img.IsMainImage, img.Title, i)
		if err != nil {
			logger.ErrorLogger.Errorf("Failed to insert image for location %s: %v", locationID, err)
			return fmt.Errorf("failed to add location image: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		logger.ErrorLogger.Errorf("Failed to commit gallery transaction: %v", err)
		return fmt.Errorf("failed to commit gallery: %w", err)
	}
	return nil
}

// AddLocationImage appends one image to a property's gallery.
func AddLocationImage(ctx context.Context, db *pgxpool.Pool, locationID uuid.UUID, img Image, position int) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate UUID for image: %w", err)
	}
	_, err = db.Exec(ctx,
		`INSERT INTO location_images (id, location_id, url, is_main_image, title, position)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		id, locationID, img.URL, img.IsMainImage, img.Title, position)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert image for location %s: %v", locationID, err)
		return fmt.Errorf("failed to add location image: %w", err)
	}
	return nil
}
