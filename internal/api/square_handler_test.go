package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const webhookURL = "https://terra-shimanami.com/api/square/webhook"

func signWebhook(key, url, body string) string {
	mac := hmac.New(sha256.New, []byte(key))
	mac.Write([]byte(url))
	mac.Write([]byte(body))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func postWebhook(h *SquareWebhookHandler, body, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/square/webhook", strings.NewReader(body))
	if signature != "" {
		req.Header.Set("x-square-hmacsha256-signature", signature)
	}
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, req)
	return rec
}

const completedPayment = `{"type":"payment.updated","data":{"object":{"payment":{"id":"pay-1","status":"COMPLETED","order_id":"ord-1","amount_money":{"amount":60000}}}}}`

func TestWebhookAcceptsSignedCompletedPayment(t *testing.T) {
	h := NewSquareWebhookHandler("key", webhookURL, nil)
	rec := postWebhook(h, completedPayment, signWebhook("key", webhookURL, completedPayment))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	h := NewSquareWebhookHandler("key", webhookURL, nil)
	rec := postWebhook(h, completedPayment, "forged")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWebhookSkipsVerificationWithoutKey(t *testing.T) {
	h := NewSquareWebhookHandler("", webhookURL, nil)
	rec := postWebhook(h, completedPayment, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	body := `{"type":"order.updated","data":{"object":{}}}`
	h := NewSquareWebhookHandler("", webhookURL, nil)
	rec := postWebhook(h, body, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWebhookRejectsMalformedBody(t *testing.T) {
	h := NewSquareWebhookHandler("", webhookURL, nil)
	rec := postWebhook(h, `{"type":`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
