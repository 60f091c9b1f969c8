package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Sign computes the gateway checkout signature: hex HMAC-SHA256 over
// "orderId|paymentId".
func Sign(secret, orderID, paymentID string) string {
	return hmacHex(secret, []byte(orderID+"|"+paymentID))
}

func VerifySignature(secret, orderID, paymentID, signature string) bool {
	if secret == "" || signature == "" {
		return false
	}
	expected := Sign(secret, orderID, paymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// SignWebhook computes the signature header the gateway sends with a
// webhook body.
func SignWebhook(secret string, body []byte) string {
	return hmacHex(secret, body)
}

func VerifyWebhook(secret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	return hmac.Equal([]byte(SignWebhook(secret, body)), []byte(signature))
}

func hmacHex(secret string, msg []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(msg)
	return hex.EncodeToString(mac.Sum(nil))
}
