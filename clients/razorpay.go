package clients

import (
	"github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

// PaymentGateway is the port the checkout flow depends on. The handlers and
// the bookingsession state machine only ever see this interface, so tests
// run without the real widget or SDK.
type PaymentGateway interface {
	CreateOrder(data map[string]interface{}) (map[string]interface{}, error)
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

// RazorpayClient implements PaymentGateway using the Razorpay SDK.
type RazorpayClient struct {
	Client    *razorpay.Client
	keySecret string
}

// NewRazorpayClient initializes the underlying SDK client with the provided
// key ID and secret.
func NewRazorpayClient(keyID, keySecret string) *RazorpayClient {
	return &RazorpayClient{
		Client:    razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
	}
}

// CreateOrder creates a new order in Razorpay. The data map carries amount
// (in paise), currency and receipt. The nil second argument is for optional
// headers, not needed for basic order creation.
func (r *RazorpayClient) CreateOrder(data map[string]interface{}) (map[string]interface{}, error) {
	return r.Client.Order.Create(data, nil)
}

// VerifyPaymentSignature checks the checkout callback signature, which is
// HMAC-SHA256 over "order_id|payment_id" keyed with the API secret.
func (r *RazorpayClient) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return utils.VerifyPaymentSignature(params, signature, r.keySecret)
}
