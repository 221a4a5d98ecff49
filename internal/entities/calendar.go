package entities

import "time"

// BusyInterval is one occupied span reported by a freebusy query.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CalendarEvent mirrors the slice of the calendar event resource we use.
// Start/End are all-day dates in YYYY-MM-DD form; End is exclusive per the
// calendar provider's all-day convention.
type CalendarEvent struct {
	ID          string
	Summary     string
	Description string
	StartDate   string
	EndDate     string
	ColorID     string
}

const (
	HoldStatusPendingPaymentLink = "PENDING_PAYMENT_LINK"
	HoldStatusPendingInvoice     = "PENDING_INVOICE"
)

// Hold is a provisional, time-boxed claim on the direct-booking calendar.
// The calendar event is its only persistence: expiry and guest details live
// in the event description, nowhere else.
type Hold struct {
	EventID   string
	CheckIn   time.Time
	CheckOut  time.Time
	GuestName string
	CreatedAt time.Time
	ExpiresAt time.Time
	Status    string
}
