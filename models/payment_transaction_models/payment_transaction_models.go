package payment_transaction_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/greenvale/resort-booking/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Transaction statuses mirrored from the gateway handshake.
const (
	StatusCreated  = "created"
	StatusVerified = "verified"
	StatusFailed   = "failed"
)

// PaymentTransaction ties one Razorpay order to a booking. Amount is in
// paise, the unit the gateway deals in.
type PaymentTransaction struct {
	ID                uuid.UUID  `json:"id"`
	BookingID         uuid.UUID  `json:"bookingId"`
	RazorpayOrderID   string     `json:"razorpayOrderId"`
	RazorpayPaymentID *string    `json:"razorpayPaymentId,omitempty"`
	Amount            int64      `json:"amount"`
	Currency          string     `json:"currency"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"createdAt"`
	VerifiedAt        *time.Time `json:"verifiedAt,omitempty"`
}

// CreateTransaction records a freshly created gateway order against a booking.
func CreateTransaction(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID, orderID string, amount int64, currency string) (*PaymentTransaction, error) {
	logger.InfoLogger.Infof("Recording payment order %s for booking %s", orderID, bookingID)

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate transaction ID: %w", err)
	}

	tx := &PaymentTransaction{
		ID:              id,
		BookingID:       bookingID,
		RazorpayOrderID: orderID,
		Amount:          amount,
		Currency:        currency,
		Status:          StatusCreated,
		CreatedAt:       time.Now(),
	}

	_, err = db.Exec(ctx,
		`INSERT INTO payment_transactions (id, booking_id, razorpay_order_id, amount, currency, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		tx.ID, tx.BookingID, tx.RazorpayOrderID, tx.Amount, tx.Currency, tx.Status, tx.CreatedAt)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert payment transaction: %v", err)
		return nil, fmt.Errorf("failed to record payment order: %w", err)
	}
	return tx, nil
}

// GetTransactionByOrderID looks a transaction up by the gateway order id.
func GetTransactionByOrderID(ctx context.Context, db *pgxpool.Pool, orderID string) (*PaymentTransaction, error) {
	tx := &PaymentTransaction{}
	err := db.QueryRow(ctx,
		`SELECT id, booking_id, razorpay_order_id, razorpay_payment_id, amount, currency, status, created_at, verified_at
		 FROM payment_transactions WHERE razorpay_order_id = $1`, orderID).
		Scan(&tx.ID, &tx.BookingID, &tx.RazorpayOrderID, &tx.RazorpayPaymentID,
			&tx.Amount, &tx.Currency, &tx.Status, &tx.CreatedAt, &tx.VerifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("payment transaction not found")
		}
		logger.ErrorLogger.Errorf("Failed to fetch transaction for order %s: %v", orderID, err)
		return nil, fmt.Errorf("database error fetching transaction: %w", err)
	}
	return tx, nil
}

// MarkVerified records the payment id after the signature checks out.
func MarkVerified(ctx context.Context, db *pgxpool.Pool, orderID, paymentID string) error {
	logger.InfoLogger.Infof("Marking payment order %s verified (payment %s)", orderID, paymentID)

	cmdTag, err := db.Exec(ctx,
		`UPDATE payment_transactions
		 SET status = $2, razorpay_payment_id = $3, verified_at = $4
		 WHERE razorpay_order_id = $1 AND status = $5`,
		orderID, StatusVerified, paymentID, time.Now(), StatusCreated)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to mark transaction %s verified: %v", orderID, err)
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction not in created state")
	}
	return nil
}

// MarkFailed records a failed verification attempt.
func MarkFailed(ctx context.Context, db *pgxpool.Pool, orderID string) error {
	logger.WarnLogger.Warnf("Marking payment order %s failed", orderID)

	_, err := db.Exec(ctx,
		`UPDATE payment_transactions SET status = $2 WHERE razorpay_order_id = $1`,
		orderID, StatusFailed)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to mark transaction %s failed: %v", orderID, err)
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}
