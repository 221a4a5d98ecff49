package service

import (
	"context"
	"time"

	"terra/internal/entities"
)

// CalendarSession is one authenticated pass against the calendar gateway.
// Sessions are short-lived: each reservation attempt and each sweep run
// gets its own from a CalendarConnector.
type CalendarSession interface {
	FreeBusy(ctx context.Context, timeMin, timeMax time.Time, calendarIDs []string) (map[string][]entities.BusyInterval, error)
	InsertEvent(ctx context.Context, calendarID string, ev entities.CalendarEvent) (entities.CalendarEvent, error)
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, query string) ([]entities.CalendarEvent, error)
	PatchEventDescription(ctx context.Context, calendarID, eventID, description string) error
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

type CalendarConnector interface {
	Connect(ctx context.Context) (CalendarSession, error)
}

// ConnectorFunc adapts a plain connect function to CalendarConnector.
type ConnectorFunc func(ctx context.Context) (CalendarSession, error)

func (f ConnectorFunc) Connect(ctx context.Context) (CalendarSession, error) {
	return f(ctx)
}

// PaymentGateway is the payment provider surface. All creating calls take a
// caller-supplied idempotency key.
type PaymentGateway interface {
	CreatePaymentLink(ctx context.Context, idempotencyKey string, p entities.PaymentLinkParams) (*entities.PaymentLink, error)
	CreateCustomer(ctx context.Context, idempotencyKey, name, email string) (string, error)
	CreateOrder(ctx context.Context, idempotencyKey string, p entities.OrderParams) (string, error)
	CreateInvoice(ctx context.Context, idempotencyKey string, p entities.InvoiceParams) (*entities.Invoice, error)
	PublishInvoice(ctx context.Context, idempotencyKey, invoiceID string, version int) (*entities.Invoice, error)
}
