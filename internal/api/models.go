package api

// Reservation
type CreateReservationRequest struct {
	Checkin  string `json:"checkin"`
	Checkout string `json:"checkout"`
	Guests   int    `json:"guests"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Message  string `json:"message,omitempty"`
}

type CreateReservationResponse struct {
	PaymentURL string `json:"paymentUrl,omitempty"`
	InvoiceID  string `json:"invoiceId,omitempty"`
	Message    string `json:"message,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

// Assistant
type AssistantRequest struct {
	Prompt string `json:"prompt"`
}

type AssistantResponse struct {
	Reply string `json:"reply"`
}
