package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "rzp_test_secret"

func sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	orderID := "order_MhZGlLEoVfEHv9"
	paymentID := "pay_MhZHC9ZdpGuzBN"
	signature := sign(orderID, paymentID)

	assert.True(t, VerifySignature(orderID, paymentID, signature, testSecret))
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	orderID := "order_MhZGlLEoVfEHv9"
	paymentID := "pay_MhZHC9ZdpGuzBN"
	signature := sign(orderID, paymentID)

	assert.False(t, VerifySignature(orderID, paymentID, signature, "another_secret"))
}

// Flipping a single bit anywhere in the inputs must break verification.
func TestVerifySignatureBitFlips(t *testing.T) {
	orderID := "order_MhZGlLEoVfEHv9"
	paymentID := "pay_MhZHC9ZdpGuzBN"
	signature := sign(orderID, paymentID)
	require.True(t, VerifySignature(orderID, paymentID, signature, testSecret))

	flip := func(s string, i int) string {
		b := []byte(s)
		b[i] ^= 1
		return string(b)
	}

	for i := range orderID {
		assert.False(t, VerifySignature(flip(orderID, i), paymentID, signature, testSecret),
			"mutated orderID byte %d must fail", i)
	}
	for i := range paymentID {
		assert.False(t, VerifySignature(orderID, flip(paymentID, i), signature, testSecret),
			"mutated paymentID byte %d must fail", i)
	}
	for i := range signature {
		assert.False(t, VerifySignature(orderID, paymentID, flip(signature, i), testSecret),
			"mutated signature byte %d must fail", i)
	}
}

func TestVerifySignatureRejectsEmpty(t *testing.T) {
	assert.False(t, VerifySignature("order_x", "pay_x", "", testSecret))
	assert.False(t, VerifySignature("", "", "", testSecret))
}
