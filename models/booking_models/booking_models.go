package booking_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/greenvale/resort-booking/logger"
	"github.com/greenvale/resort-booking/utils"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Booking statuses. A booking is created pending and becomes paid only
// after the payment signature verifies.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// Booking is one reservation against a location. Amounts are whole rupees.
type Booking struct {
	ID              uuid.UUID  `json:"id"`
	LocationID      uuid.UUID  `json:"locationId"`
	CheckInDate     time.Time  `json:"checkInDate"`
	CheckOutDate    time.Time  `json:"checkOutDate"`
	Name            string     `json:"name"`
	Phone           string     `json:"phone"`
	Address         string     `json:"address"`
	Adults          int        `json:"adults"`
	Kids            int        `json:"kids"`
	WithFood        bool       `json:"withFood"`
	TotalPrice      int64      `json:"totalPrice"`
	TokenAmount     int64      `json:"tokenAmount"`
	AmountPaid      int64      `json:"amountPaid"`
	RemainingAmount int64      `json:"remainingAmount"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	PaidAt          *time.Time `json:"paidAt,omitempty"`
}

const bookingColumns = `
	id, location_id, check_in_date, check_out_date,
	name, phone, address, adults, kids, with_food,
	total_price, token_amount, amount_paid, remaining_amount,
	status, created_at, paid_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	b := &Booking{}
	err := row.Scan(
		&b.ID, &b.LocationID, &b.CheckInDate, &b.CheckOutDate,
		&b.Name, &b.Phone, &b.Address, &b.Adults, &b.Kids, &b.WithFood,
		&b.TotalPrice, &b.TokenAmount, &b.AmountPaid, &b.RemainingAmount,
		&b.Status, &b.CreatedAt, &b.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CreateBooking inserts a pending booking after checking the requested range
// against paid bookings for the same location. The overlap check and insert
// run in one transaction so two guests cannot take the same dates.
func CreateBooking(ctx context.Context, db *pgxpool.Pool, b *Booking) (*Booking, error) {
	logger.InfoLogger.Infof("Creating booking for location %s (%s to %s)",
		b.LocationID, b.CheckInDate.Format("2006-01-02"), b.CheckOutDate.Format("2006-01-02"))

	id, err := uuid.NewV7()
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to generate booking UUID: %v", err)
		return nil, fmt.Errorf("failed to generate booking ID: %w", err)
	}
	b.ID = id
	b.Status = StatusPending
	b.CreatedAt = time.Now()
	b.RemainingAmount = b.TotalPrice - b.TokenAmount
	if b.RemainingAmount < 0 {
		b.RemainingAmount = 0
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to begin booking transaction: %v", err)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var conflicts int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM bookings
		 WHERE location_id = $1 AND status = $2
		   AND check_in_date <= $4 AND check_out_date >= $3`,
		b.LocationID, StatusPaid, b.CheckInDate, b.CheckOutDate).Scan(&conflicts)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to check booking conflicts: %v", err)
		return nil, fmt.Errorf("failed to check availability: %w", err)
	}
	if conflicts > 0 {
		logger.WarnLogger.Warnf("Booking conflict for location %s: %d overlapping paid bookings", b.LocationID, conflicts)
		return nil, ErrDatesUnavailable
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO bookings (
			id, location_id, check_in_date, check_out_date,
			name, phone, address, adults, kids, with_food,
			total_price, token_amount, amount_paid, remaining_amount,
			status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		b.ID, b.LocationID, b.CheckInDate, b.CheckOutDate,
		b.Name, b.Phone, b.Address, b.Adults, b.Kids, b.WithFood,
		b.TotalPrice, b.TokenAmount, b.AmountPaid, b.RemainingAmount,
		b.Status, b.CreatedAt)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert booking: %v", err)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		logger.ErrorLogger.Errorf("Failed to commit booking transaction: %v", err)
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	logger.InfoLogger.Infof("Booking %s created (pending)", b.ID)
	return b, nil
}

// ErrDatesUnavailable is returned when the requested range overlaps a paid booking.
var ErrDatesUnavailable = errors.New("selected dates are no longer available")

// GetBookingByID fetches one booking.
func GetBookingByID(ctx context.Context, db *pgxpool.Pool, id uuid.UUID) (*Booking, error) {
	b, err := scanBooking(db.QueryRow(ctx, `SELECT`+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.ErrBookingNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch booking %s: %v", id, err)
		return nil, fmt.Errorf("database error fetching booking: %w", err)
	}
	return b, nil
}

// GetBookedDates expands every paid booking for a location into the list of
// individual days it covers, check-in through check-out inclusive. Pending
// bookings are deliberately excluded so an unpaid attempt never blocks the
// calendar for other guests.
func GetBookedDates(ctx context.Context, db *pgxpool.Pool, locationID uuid.UUID) ([]time.Time, error) {
	rows, err := db.Query(ctx,
		`SELECT check_in_date, check_out_date FROM bookings
		 WHERE location_id = $1 AND status = $2`,
		locationID, StatusPaid)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch booked dates for location %s: %v", locationID, err)
		return nil, fmt.Errorf("failed to fetch booked dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var checkIn, checkOut time.Time
		if err := rows.Scan(&checkIn, &checkOut); err != nil {
			return nil, fmt.Errorf("failed to scan booking dates: %w", err)
		}
		for d := checkIn; !d.After(checkOut); d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}
	}
	return dates, nil
}

// MarkBookingPaid flips a pending booking to paid and records the token as
// the amount paid. Returns the updated booking.
func MarkBookingPaid(ctx context.Context, db *pgxpool.Pool, id uuid.UUID) (*Booking, error) {
	logger.InfoLogger.Infof("Marking booking %s as paid", id)

	now := time.Now()
	cmdTag, err := db.Exec(ctx,
		`UPDATE bookings
		 SET status = $2, amount_paid = token_amount,
		     remaining_amount = GREATEST(total_price - token_amount, 0),
		     paid_at = $3
		 WHERE id = $1 AND status = $4`,
		id, StatusPaid, now, StatusPending)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to mark booking %s paid: %v", id, err)
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		logger.WarnLogger.Warnf("Booking %s not pending, refusing to mark paid", id)
		return nil, fmt.Errorf("booking is not pending")
	}

	return GetBookingByID(ctx, db, id)
}

// GetAllBookings returns a page of bookings for the admin list, newest
// first, optionally filtered by status.
func GetAllBookings(ctx context.Context, db *pgxpool.Pool, status string, limit, offset int) ([]Booking, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	where := ""
	args := []interface{}{}
	if status != "" {
		where = " WHERE status = $1"
		args = append(args, status)
	}

	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`+where, args...).Scan(&total); err != nil {
		logger.ErrorLogger.Errorf("Failed to count bookings: %v", err)
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	query := `SELECT` + bookingColumns + ` FROM bookings` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch bookings: %v", err)
		return nil, 0, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, total, nil
}
