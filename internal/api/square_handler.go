package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"terra/internal/service"
	"terra/internal/square"
)

const paymentCompleted = "COMPLETED"

// SquareWebhookHandler receives payment events from Square. It verifies
// the HMAC signature, logs completed payments and notifies the owner.
// It does not mutate the calendar: confirming a hold stays manual.
type SquareWebhookHandler struct {
	SignatureKey    string
	NotificationURL string
	Notify          *service.NotifyService
}

func NewSquareWebhookHandler(signatureKey, notificationURL string, notify *service.NotifyService) *SquareWebhookHandler {
	return &SquareWebhookHandler{
		SignatureKey:    signatureKey,
		NotificationURL: notificationURL,
		Notify:          notify,
	}
}

func (h *SquareWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const maxBodyBytes = int64(65536)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Webhook: error reading body: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	if h.SignatureKey != "" {
		signature := r.Header.Get("x-square-hmacsha256-signature")
		if !square.VerifyWebhookSignature(h.SignatureKey, h.NotificationURL, payload, signature) {
			log.Printf("Webhook: signature verification failed")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}

	var event struct {
		Type string `json:"type"`
		Data struct {
			Object struct {
				Payment struct {
					ID          string `json:"id"`
					Status      string `json:"status"`
					OrderID     string `json:"order_id"`
					AmountMoney struct {
						Amount int `json:"amount"`
					} `json:"amount_money"`
				} `json:"payment"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		log.Printf("Webhook: error parsing event: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Type {
	case "payment.updated":
		payment := event.Data.Object.Payment
		if payment.Status == paymentCompleted {
			log.Printf("Webhook: payment completed: %s (order %s)", payment.ID, payment.OrderID)
			if h.Notify != nil {
				h.Notify.NotifyPaymentCompleted(payment.ID, payment.OrderID, payment.AmountMoney.Amount)
			}
		}
	default:
		log.Printf("Webhook: unhandled event type: %s", event.Type)
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
