package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Order is the provider-side order opened before the client is charged.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway abstracts the payment provider so services receive an injected
// client instead of reaching for package-global SDK state.
type Gateway interface {
	// CreateOrder opens an order for the given amount in minor units.
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (*Order, error)
}

// RazorpayClient talks to the Razorpay Orders REST API.
type RazorpayClient struct {
	keyID     string
	keySecret string
	http      *resty.Client
}

func NewRazorpayClient(baseURL, keyID, keySecret string) (*RazorpayClient, error) {
	if keyID == "" || keySecret == "" {
		return nil, errors.New("razorpay credentials are not configured")
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(keyID, keySecret).
		SetTimeout(15 * time.Second)

	return &RazorpayClient{
		keyID:     keyID,
		keySecret: keySecret,
		http:      client,
	}, nil
}

type razorpayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

func (c *RazorpayClient) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string, notes map[string]string) (*Order, error) {
	body := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		body["notes"] = notes
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post("/v1/orders")
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != 200 {
		var apiErr razorpayError
		if err := json.Unmarshal(resp.Body(), &apiErr); err == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("razorpay order creation failed: %s", apiErr.Error.Description)
		}
		return nil, fmt.Errorf("razorpay order creation failed with status %d", resp.StatusCode())
	}

	var order Order
	if err := json.Unmarshal(resp.Body(), &order); err != nil {
		return nil, fmt.Errorf("invalid razorpay order response: %w", err)
	}
	if order.ID == "" {
		return nil, errors.New("razorpay order response missing order id")
	}

	return &order, nil
}

// VerifySignature recomputes HMAC-SHA256 over "orderID|paymentID" with the
// shared secret and compares it against the provider-supplied signature in
// constant time. This is the integrity boundary of the payment flow.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
