// utils/errors.go
package utils

import "errors"

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrLocationNotFound = errors.New("location not found")
)
