package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"terra/internal/entities"
	appErrors "terra/internal/errors"
	"terra/internal/monitoring"
)

const dateLayout = "2006-01-02"

type ReservationService interface {
	Reserve(ctx context.Context, req *entities.BookingRequest) (*entities.PaymentArtifact, error)
}

type ReservationHandler struct {
	Service ReservationService
}

func NewReservationHandler(svc ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "入力内容に不備があります。")
		monitoring.ReservationAttempt("rejected")
		return
	}

	booking, err := toBookingRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "入力内容に不備があります。")
		monitoring.ReservationAttempt("rejected")
		return
	}

	artifact, err := h.Service.Reserve(r.Context(), booking)
	if err != nil {
		code := http.StatusInternalServerError
		message := err.Error()
		var httpErr *appErrors.HTTPError
		if errors.As(err, &httpErr) {
			code = httpErr.Code
			message = httpErr.Message
		}
		monitoring.ReservationAttempt(outcomeLabel(code))
		if code == http.StatusInternalServerError {
			log.Printf("CreateReservation: %v", err)
		}
		writeError(w, code, message)
		return
	}

	monitoring.ReservationAttempt("success")
	resp := CreateReservationResponse{}
	switch artifact.Kind {
	case entities.ArtifactInvoice:
		resp.InvoiceID = artifact.Reference
		resp.Message = "請求書をお送りしました。メールをご確認ください。"
	default:
		resp.PaymentURL = artifact.Reference
	}
	writeJSON(w, http.StatusOK, resp)
}

func toBookingRequest(req CreateReservationRequest) (*entities.BookingRequest, error) {
	var booking entities.BookingRequest
	if req.Checkin != "" {
		checkin, err := time.ParseInLocation(dateLayout, req.Checkin, time.UTC)
		if err != nil {
			return nil, err
		}
		booking.CheckIn = checkin
	}
	if req.Checkout != "" {
		checkout, err := time.ParseInLocation(dateLayout, req.Checkout, time.UTC)
		if err != nil {
			return nil, err
		}
		booking.CheckOut = checkout
	}
	booking.Guests = req.Guests
	booking.Name = req.Name
	booking.Email = req.Email
	booking.Message = req.Message
	return &booking, nil
}

func outcomeLabel(code int) string {
	switch code {
	case http.StatusBadRequest:
		return "rejected"
	case http.StatusConflict:
		return "conflict"
	default:
		return "failure"
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, ErrorResponse{Message: message})
}
