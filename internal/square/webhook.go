package square

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// VerifyWebhookSignature checks Square's x-square-hmacsha256-signature
// header: base64(HMAC-SHA256(key, notificationURL + rawBody)).
func VerifyWebhookSignature(signatureKey, notificationURL string, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(signatureKey))
	mac.Write([]byte(notificationURL))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
