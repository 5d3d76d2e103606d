package admin_models

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

// Admin is a back-office account. PasswordHash is the argon2id encoding
// produced by utils.HashPassword.
type Admin struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GetAdminByEmail fetches an admin account for login.
func GetAdminByEmail(ctx context.Context, db *pgxpool.Pool, email string) (*Admin, error) {
	a := &Admin{}
	err := db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at FROM admins WHERE email = $1`, email).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("admin not found")
		}
		logger.ErrorLogger.Errorf("Failed to fetch admin %s: %v", email, err)
		return nil, fmt.Errorf("database error fetching admin: %w", err)
	}
	return a, nil
}

// CreateAdmin inserts a new back-office account.
func CreateAdmin(ctx context.Context, db *pgxpool.Pool, email, passwordHash string) (*Admin, error) {
	logger.InfoLogger.Infof("Creating admin account %s", email)

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate admin ID: %w", err)
	}
	a := &Admin{ID: id, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}

	_, err = db.Exec(ctx,
		`INSERT INTO admins (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.Email, a.PasswordHash, a.CreatedAt)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert admin: %v", err)
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return a, nil
}
