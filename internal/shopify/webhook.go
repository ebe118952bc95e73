// Package shopify handles the inbound order-webhook boundary: HMAC
// signature verification over the raw request body and decoding into the
// normalized purchase event.
package shopify

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"shop-sweeps/internal/core/domain"
)

// Header names set by the webhook provider on each delivery.
const (
	HeaderHmac       = "X-Shopify-Hmac-Sha256"
	HeaderShopDomain = "X-Shopify-Shop-Domain"
)

// VerifySignature checks the base64-encoded HMAC-SHA256 signature of the
// raw request body against the shared secret. Comparison is
// constant-time. An empty signature never verifies.
func VerifySignature(secret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign returns the base64 HMAC-SHA256 signature the provider would attach
// to body. Exposed for tests and outbound callback signing.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// DecodeOrder parses a verified order payload into the normalized
// purchase event and validates the fields the accrual engine requires.
func DecodeOrder(body []byte) (*domain.PurchaseEvent, error) {
	var ev domain.PurchaseEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("decode order payload: %w", err)
	}
	if ev.OrderID == 0 {
		return nil, fmt.Errorf("order payload has no id")
	}
	if ev.TotalPrice.IsNegative() {
		return nil, fmt.Errorf("order payload has negative total_price")
	}
	return &ev, nil
}
