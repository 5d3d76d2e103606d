package bookingsession

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Checkout states. The flow is linear: closed -> booking -> payment ->
// confirmed. Going back from payment to booking is allowed; confirmed is
// terminal until Close resets everything.
type CheckoutState string

const (
	StateClosed    CheckoutState = "closed"
	StateBooking   CheckoutState = "booking"
	StatePayment   CheckoutState = "payment"
	StateConfirmed CheckoutState = "confirmed"
)

// Exactly 10 digits, no country code.
var phoneRx = regexp.MustCompile(`^[0-9]{10}$`)

var (
	ErrInvalidState   = errors.New("action not allowed in current checkout state")
	ErrSubmitInFlight = errors.New("a submission is already in progress")
	ErrMissingName    = errors.New("name is required")
	ErrInvalidPhone   = errors.New("phone must be exactly 10 digits")
	ErrMissingAddress = errors.New("address is required")
	ErrMissingDates   = errors.New("check-in and check-out dates are required")
	ErrInvalidToken   = errors.New("token amount must be 1000, 3000 or 5000")
)

// BookingRequest is the provisional booking as submitted.
type BookingRequest struct {
	LocationID   string    `json:"locationId"`
	CheckInDate  time.Time `json:"checkInDate"`
	CheckOutDate time.Time `json:"checkOutDate"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	Adults       int       `json:"adults"`
	Kids         int       `json:"kids"`
	WithFood     bool      `json:"withFood"`
	TotalPrice   int64     `json:"totalPrice"`
	TokenAmount  int64     `json:"tokenAmount"`
}

// Order is the payment order handed to the checkout widget; it is not kept
// beyond the session.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentProof carries the identifiers the widget's success callback
// returns for server-side verification.
type PaymentProof struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}

// CheckoutBackend is the port the state machine drives. The HTTP client in
// this package is the production implementation; tests supply fakes.
type CheckoutBackend interface {
	SubmitBooking(ctx context.Context, req BookingRequest) (bookingID string, err error)
	CreatePaymentOrder(ctx context.Context, bookingID string, amount int64) (Order, error)
	VerifyPayment(ctx context.Context, bookingID string, proof PaymentProof) error
	DownloadPDF(ctx context.Context, bookingID string) ([]byte, error)
}

// Checkout walks one booking through submission, payment and confirmation.
// All failures are reported to the caller and leave the machine in a state
// the user can retry from; nothing propagates past this boundary.
type Checkout struct {
	backend CheckoutBackend

	state        CheckoutState
	isSubmitting bool
	bookingID    string
	order        Order

	// onConfirmed fires after successful verification so the calendar can
	// refetch booked dates.
	onConfirmed func()
}

func NewCheckout(backend CheckoutBackend, onConfirmed func()) *Checkout {
	return &Checkout{
		backend:     backend,
		state:       StateClosed,
		onConfirmed: onConfirmed,
	}
}

func (c *Checkout) State() CheckoutState { return c.state }
func (c *Checkout) BookingID() string    { return c.bookingID }
func (c *Checkout) Order() Order         { return c.order }

// Open moves from closed to the booking form.
func (c *Checkout) Open() error {
	if c.state != StateClosed {
		return ErrInvalidState
	}
	c.state = StateBooking
	return nil
}

// validate runs the client-side checks that must block submission before
// any network call is made.
func validate(req BookingRequest) error {
	if req.Name == "" {
		return ErrMissingName
	}
	if !phoneRx.MatchString(req.Phone) {
		return ErrInvalidPhone
	}
	if req.Address == "" {
		return ErrMissingAddress
	}
	if req.CheckInDate.IsZero() || req.CheckOutDate.IsZero() {
		return ErrMissingDates
	}
	if !ValidTokenAmount(req.TokenAmount) {
		return ErrInvalidToken
	}
	return nil
}

// Submit posts the provisional booking and immediately requests a payment
// order. On success the machine is in the payment state; on any failure it
// stays in booking and the user may re-submit.
func (c *Checkout) Submit(ctx context.Context, req BookingRequest) error {
	if c.state != StateBooking {
		return ErrInvalidState
	}
	if c.isSubmitting {
		return ErrSubmitInFlight
	}
	if err := validate(req); err != nil {
		return err
	}

	c.isSubmitting = true
	defer func() { c.isSubmitting = false }()

	bookingID, err := c.backend.SubmitBooking(ctx, req)
	if err != nil {
		return fmt.Errorf("booking submission failed: %w", err)
	}
	c.bookingID = bookingID

	order, err := c.backend.CreatePaymentOrder(ctx, bookingID, req.TokenAmount)
	if err != nil {
		return fmt.Errorf("payment order creation failed: %w", err)
	}
	c.order = order
	c.state = StatePayment
	return nil
}

// Back returns from the payment step to the form. Not available once paid.
func (c *Checkout) Back() error {
	if c.state != StatePayment {
		return ErrInvalidState
	}
	c.state = StateBooking
	return nil
}

// Dismiss is the widget being closed without paying: a soft cancel that
// keeps the user on the payment step.
func (c *Checkout) Dismiss() {}

// ConfirmPayment verifies the widget callback. Success confirms the booking
// and signals the booked-dates refetch; failure leaves the user on the
// payment step to retry.
func (c *Checkout) ConfirmPayment(ctx context.Context, proof PaymentProof) error {
	if c.state != StatePayment {
		return ErrInvalidState
	}
	if err := c.backend.VerifyPayment(ctx, c.bookingID, proof); err != nil {
		return fmt.Errorf("payment verification failed: %w", err)
	}
	c.state = StateConfirmed
	if c.onConfirmed != nil {
		c.onConfirmed()
	}
	return nil
}

// DownloadReceipt fetches the booking PDF; only the confirmed view offers
// it.
func (c *Checkout) DownloadReceipt(ctx context.Context) ([]byte, error) {
	if c.state != StateConfirmed {
		return nil, ErrInvalidState
	}
	return c.backend.DownloadPDF(ctx, c.bookingID)
}

// Close fully resets the checkout from any state.
func (c *Checkout) Close() {
	c.state = StateClosed
	c.isSubmitting = false
	c.bookingID = ""
	c.order = Order{}
}
