package bookingsession

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend counts calls and can be told to fail each step.
type fakeBackend struct {
	submitCalls int
	orderCalls  int
	verifyCalls int
	pdfCalls    int

	submitErr error
	orderErr  error
	verifyErr error
}

func (f *fakeBackend) SubmitBooking(_ context.Context, _ BookingRequest) (string, error) {
	f.submitCalls++
	if f.submitErr != nil {
		return "", f.submitErr
	}
	return "bk-123", nil
}

func (f *fakeBackend) CreatePaymentOrder(_ context.Context, bookingID string, amount int64) (Order, error) {
	f.orderCalls++
	if f.orderErr != nil {
		return Order{}, f.orderErr
	}
	return Order{ID: "order_abc", Amount: amount * 100, Currency: "INR"}, nil
}

func (f *fakeBackend) VerifyPayment(_ context.Context, _ string, _ PaymentProof) error {
	f.verifyCalls++
	return f.verifyErr
}

func (f *fakeBackend) DownloadPDF(_ context.Context, _ string) ([]byte, error) {
	f.pdfCalls++
	return []byte("%PDF-1.4"), nil
}

func validRequest() BookingRequest {
	return BookingRequest{
		LocationID:   "loc-1",
		CheckInDate:  date(2025, time.November, 6),
		CheckOutDate: date(2025, time.November, 9),
		Name:         "Asha Patil",
		Phone:        "9876543210",
		Address:      "12 Hill Road, Pune",
		Adults:       2,
		Kids:         1,
		TotalPrice:   7500,
		TokenAmount:  1000,
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	backend := &fakeBackend{}
	refetched := false
	c := NewCheckout(backend, func() { refetched = true })

	require.Equal(t, StateClosed, c.State())
	require.NoError(t, c.Open())
	require.Equal(t, StateBooking, c.State())

	require.NoError(t, c.Submit(context.Background(), validRequest()))
	assert.Equal(t, StatePayment, c.State())
	assert.Equal(t, "bk-123", c.BookingID())
	assert.Equal(t, "order_abc", c.Order().ID)
	assert.Equal(t, int64(100000), c.Order().Amount)

	require.NoError(t, c.ConfirmPayment(context.Background(), PaymentProof{
		OrderID:   "order_abc",
		PaymentID: "pay_xyz",
		Signature: "sig",
	}))
	assert.Equal(t, StateConfirmed, c.State())
	assert.True(t, refetched, "confirmation must trigger a booked-dates refetch")

	pdf, err := c.DownloadReceipt(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	c.Close()
	assert.Equal(t, StateClosed, c.State())
	assert.Empty(t, c.BookingID())
}

func TestCheckoutValidation(t *testing.T) {
	t.Run("ShortPhoneBlocksWithoutNetworkCall", func(t *testing.T) {
		backend := &fakeBackend{}
		c := NewCheckout(backend, nil)
		require.NoError(t, c.Open())

		req := validRequest()
		req.Phone = "12345"
		err := c.Submit(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidPhone)
		assert.Zero(t, backend.submitCalls, "validation failure must not reach the network")
		assert.Equal(t, StateBooking, c.State())
	})

	t.Run("PhoneWithCountryCodeRejected", func(t *testing.T) {
		c := NewCheckout(&fakeBackend{}, nil)
		require.NoError(t, c.Open())

		req := validRequest()
		req.Phone = "+919876543210"
		assert.ErrorIs(t, c.Submit(context.Background(), req), ErrInvalidPhone)
	})

	t.Run("MissingFields", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*BookingRequest)
			want   error
		}{
			{"NoName", func(r *BookingRequest) { r.Name = "" }, ErrMissingName},
			{"NoAddress", func(r *BookingRequest) { r.Address = "" }, ErrMissingAddress},
			{"NoDates", func(r *BookingRequest) { r.CheckOutDate = time.Time{} }, ErrMissingDates},
			{"BadToken", func(r *BookingRequest) { r.TokenAmount = 1234 }, ErrInvalidToken},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				backend := &fakeBackend{}
				c := NewCheckout(backend, nil)
				require.NoError(t, c.Open())

				req := validRequest()
				tc.mutate(&req)
				assert.ErrorIs(t, c.Submit(context.Background(), req), tc.want)
				assert.Zero(t, backend.submitCalls)
			})
		}
	})
}

func TestCheckoutFailureSemantics(t *testing.T) {
	t.Run("SubmitFailureStaysInBooking", func(t *testing.T) {
		backend := &fakeBackend{submitErr: errors.New("dates no longer available")}
		c := NewCheckout(backend, nil)
		require.NoError(t, c.Open())

		err := c.Submit(context.Background(), validRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "dates no longer available")
		assert.Equal(t, StateBooking, c.State())

		// The user can retry after the server recovers.
		backend.submitErr = nil
		require.NoError(t, c.Submit(context.Background(), validRequest()))
		assert.Equal(t, StatePayment, c.State())
	})

	t.Run("OrderFailureStaysInBooking", func(t *testing.T) {
		backend := &fakeBackend{orderErr: errors.New("gateway down")}
		c := NewCheckout(backend, nil)
		require.NoError(t, c.Open())

		require.Error(t, c.Submit(context.Background(), validRequest()))
		assert.Equal(t, StateBooking, c.State())
	})

	t.Run("VerifyFailureStaysInPayment", func(t *testing.T) {
		backend := &fakeBackend{verifyErr: errors.New("signature mismatch")}
		refetched := false
		c := NewCheckout(backend, func() { refetched = true })
		require.NoError(t, c.Open())
		require.NoError(t, c.Submit(context.Background(), validRequest()))

		require.Error(t, c.ConfirmPayment(context.Background(), PaymentProof{}))
		assert.Equal(t, StatePayment, c.State())
		assert.False(t, refetched)
	})

	t.Run("DismissKeepsPaymentState", func(t *testing.T) {
		backend := &fakeBackend{}
		c := NewCheckout(backend, nil)
		require.NoError(t, c.Open())
		require.NoError(t, c.Submit(context.Background(), validRequest()))

		c.Dismiss()
		assert.Equal(t, StatePayment, c.State())

		// Retry still works after the widget was dismissed.
		require.NoError(t, c.ConfirmPayment(context.Background(), PaymentProof{}))
		assert.Equal(t, StateConfirmed, c.State())
	})
}

func TestCheckoutStateTransitions(t *testing.T) {
	t.Run("ConfirmedUnreachableWithoutVerification", func(t *testing.T) {
		backend := &fakeBackend{}
		c := NewCheckout(backend, nil)
		require.NoError(t, c.Open())

		// Directly from booking the verification call is rejected and the
		// backend is never touched.
		assert.ErrorIs(t, c.ConfirmPayment(context.Background(), PaymentProof{}), ErrInvalidState)
		assert.Zero(t, backend.verifyCalls)
		assert.NotEqual(t, StateConfirmed, c.State())
	})

	t.Run("BackFromPayment", func(t *testing.T) {
		c := NewCheckout(&fakeBackend{}, nil)
		require.NoError(t, c.Open())
		require.NoError(t, c.Submit(context.Background(), validRequest()))

		require.NoError(t, c.Back())
		assert.Equal(t, StateBooking, c.State())
	})

	t.Run("NoBackwardFromConfirmed", func(t *testing.T) {
		c := NewCheckout(&fakeBackend{}, nil)
		require.NoError(t, c.Open())
		require.NoError(t, c.Submit(context.Background(), validRequest()))
		require.NoError(t, c.ConfirmPayment(context.Background(), PaymentProof{}))

		assert.ErrorIs(t, c.Back(), ErrInvalidState)
		assert.ErrorIs(t, c.Submit(context.Background(), validRequest()), ErrInvalidState)
		assert.Equal(t, StateConfirmed, c.State())
	})

	t.Run("SubmitRequiresOpen", func(t *testing.T) {
		c := NewCheckout(&fakeBackend{}, nil)
		assert.ErrorIs(t, c.Submit(context.Background(), validRequest()), ErrInvalidState)
	})

	t.Run("ReceiptOnlyWhenConfirmed", func(t *testing.T) {
		c := NewCheckout(&fakeBackend{}, nil)
		require.NoError(t, c.Open())
		_, err := c.DownloadReceipt(context.Background())
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}
