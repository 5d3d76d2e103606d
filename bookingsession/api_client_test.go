package bookingsession

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a minimal in-memory stand-in for the booking service.
func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /bookings/dates/loc-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"bookedDates": []map[string]string{
				{"date": "2025-11-07", "status": "paid"},
			},
		})
	})

	mux.HandleFunc("POST /bookings", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["phone"] == "0000000000" {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"error":   "selected dates are no longer available",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"booking": map[string]interface{}{"id": "bk-9"},
		})
	})

	mux.HandleFunc("POST /payments/create-order", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"order":   map[string]interface{}{"id": "order_77", "amount": 100000, "currency": "INR"},
		})
	})

	mux.HandleFunc("POST /payments/verify", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["razorpay_signature"] != "good" {
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"error":   "invalid payment signature",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	})

	mux.HandleFunc("GET /bookings/bk-9/download-pdf", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestAPIClientFetchBookedDates(t *testing.T) {
	srv := fakeAPI(t)
	client := NewAPIClient(srv.URL)

	dates, err := client.FetchBookedDates(context.Background(), "loc-1")
	require.NoError(t, err)
	require.Len(t, dates, 1)
	assert.Equal(t, StatusPaid, dates[0].Status)
	assert.True(t, sameDay(dates[0].Date, date(2025, time.November, 7)))
}

func TestAPIClientFetchBookedDatesFailure(t *testing.T) {
	client := NewAPIClient("http://127.0.0.1:0")
	client.HTTPClient.Timeout = 200 * time.Millisecond

	dates, err := client.FetchBookedDates(context.Background(), "loc-1")
	require.Error(t, err)
	assert.Nil(t, dates)

	// The session treats the failed fetch as an empty set: fail open.
	s := NewBookingSession(testLocation(true), GenerateMonths(2, date(2025, time.November, 1)), dates, date(2025, time.November, 1))
	assert.False(t, s.Calendar.IsDisabled(date(2025, time.November, 7)))
}

func TestCheckoutOverHTTP(t *testing.T) {
	srv := fakeAPI(t)
	client := NewAPIClient(srv.URL)

	refetched := false
	c := NewCheckout(client, func() { refetched = true })
	require.NoError(t, c.Open())

	require.NoError(t, c.Submit(context.Background(), validRequest()))
	assert.Equal(t, StatePayment, c.State())
	assert.Equal(t, "bk-9", c.BookingID())
	assert.Equal(t, "order_77", c.Order().ID)

	t.Run("BadSignatureKeepsPayment", func(t *testing.T) {
		err := c.ConfirmPayment(context.Background(), PaymentProof{Signature: "bad"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid payment signature")
		assert.Equal(t, StatePayment, c.State())
	})

	t.Run("GoodSignatureConfirms", func(t *testing.T) {
		require.NoError(t, c.ConfirmPayment(context.Background(), PaymentProof{
			OrderID: "order_77", PaymentID: "pay_1", Signature: "good",
		}))
		assert.Equal(t, StateConfirmed, c.State())
		assert.True(t, refetched)
	})

	t.Run("ReceiptDownload", func(t *testing.T) {
		pdf, err := c.DownloadReceipt(context.Background())
		require.NoError(t, err)
		assert.Contains(t, string(pdf), "%PDF")
	})
}

func TestCheckoutOverHTTPServerError(t *testing.T) {
	srv := fakeAPI(t)
	client := NewAPIClient(srv.URL)
	c := NewCheckout(client, nil)
	require.NoError(t, c.Open())

	req := validRequest()
	req.Phone = "0000000000" // the fake rejects this booking
	err := c.Submit(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selected dates are no longer available")
	assert.Equal(t, StateBooking, c.State())
}
