package payment_controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubGateway struct{}

func (stubGateway) CreateOrder(map[string]interface{}) (map[string]interface{}, error) {
	return map[string]interface{}{"id": "order_test"}, nil
}

func (stubGateway) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return signature == "good"
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()

	r := gin.New()
	r.POST(path, handler)

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateOrderRejectsInvalidTokenAmount(t *testing.T) {
	pc := NewPaymentController(nil, stubGateway{})

	for _, token := range []int64{250, 2000, 4999} {
		w := postJSON(t, pc.CreateOrder, "/payments/create-order", map[string]interface{}{
			"bookingId":   "0190a3a1-7b9d-7c3e-a111-223344556677",
			"tokenAmount": token,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code, "token %d should be rejected", token)
	}
}

func TestCreateOrderRejectsBadBookingID(t *testing.T) {
	pc := NewPaymentController(nil, stubGateway{})

	w := postJSON(t, pc.CreateOrder, "/payments/create-order", map[string]interface{}{
		"bookingId":   "not-a-uuid",
		"tokenAmount": 3000,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyPaymentRequiresAllIdentifiers(t *testing.T) {
	pc := NewPaymentController(nil, stubGateway{})

	w := postJSON(t, pc.VerifyPayment, "/payments/verify", map[string]interface{}{
		"bookingId":         "0190a3a1-7b9d-7c3e-a111-223344556677",
		"razorpay_order_id": "order_test",
		// payment id and signature missing
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
