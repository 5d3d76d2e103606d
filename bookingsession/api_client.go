package bookingsession

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient talks to the booking service's JSON API. It is the production
// CheckoutBackend and also serves the read endpoints the detail page needs.
type APIClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Booking json.RawMessage `json:"booking"`
	Order   *Order          `json:"order"`
}

func (c *APIClient) postJSON(ctx context.Context, path string, payload interface{}) (*apiEnvelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("invalid response from %s: %w", path, err)
	}
	if !env.Success {
		if env.Error != "" {
			return nil, fmt.Errorf("%s", env.Error)
		}
		return nil, fmt.Errorf("request to %s failed with status %d", path, resp.StatusCode)
	}
	return &env, nil
}

func (c *APIClient) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s failed with status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchBookedDates loads the unavailable days for a location. Callers treat
// an error as an empty set: availability fails open rather than blocking
// the calendar.
func (c *APIClient) FetchBookedDates(ctx context.Context, locationID string) ([]BookedDate, error) {
	var out struct {
		Success     bool         `json:"success"`
		BookedDates []BookedDate `json:"bookedDates"`
	}
	if err := c.getJSON(ctx, "/bookings/dates/"+locationID, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("booked dates request was not successful")
	}
	return out.BookedDates, nil
}

type submittedBooking struct {
	ID string `json:"id"`
}

// SubmitBooking posts the provisional booking and returns its server-
// assigned id.
func (c *APIClient) SubmitBooking(ctx context.Context, req BookingRequest) (string, error) {
	payload := map[string]interface{}{
		"locationId":   req.LocationID,
		"checkInDate":  req.CheckInDate.Format("2006-01-02"),
		"checkOutDate": req.CheckOutDate.Format("2006-01-02"),
		"name":         req.Name,
		"phone":        req.Phone,
		"address":      req.Address,
		"adults":       req.Adults,
		"kids":         req.Kids,
		"withFood":     req.WithFood,
		"pricing": map[string]interface{}{
			"totalPrice": req.TotalPrice,
		},
		"tokenAmount": req.TokenAmount,
	}

	env, err := c.postJSON(ctx, "/bookings", payload)
	if err != nil {
		return "", err
	}

	var booking submittedBooking
	if err := json.Unmarshal(env.Booking, &booking); err != nil || booking.ID == "" {
		return "", fmt.Errorf("booking response missing id")
	}
	return booking.ID, nil
}

// CreatePaymentOrder requests a gateway order for the token amount.
func (c *APIClient) CreatePaymentOrder(ctx context.Context, bookingID string, amount int64) (Order, error) {
	payload := map[string]interface{}{
		"bookingId":   bookingID,
		"tokenAmount": amount,
	}
	env, err := c.postJSON(ctx, "/payments/create-order", payload)
	if err != nil {
		return Order{}, err
	}
	if env.Order == nil || env.Order.ID == "" {
		return Order{}, fmt.Errorf("order response missing id")
	}
	return *env.Order, nil
}

// VerifyPayment posts the widget callback identifiers for verification.
func (c *APIClient) VerifyPayment(ctx context.Context, bookingID string, proof PaymentProof) error {
	payload := map[string]interface{}{
		"bookingId":           bookingID,
		"razorpay_order_id":   proof.OrderID,
		"razorpay_payment_id": proof.PaymentID,
		"razorpay_signature":  proof.Signature,
	}
	_, err := c.postJSON(ctx, "/payments/verify", payload)
	return err
}

// DownloadPDF fetches the booking receipt as raw bytes.
func (c *APIClient) DownloadPDF(ctx context.Context, bookingID string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/bookings/"+bookingID+"/download-pdf", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pdf download failed with status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
