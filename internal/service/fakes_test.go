package service

import (
	"context"
	"fmt"
	"time"

	"terra/internal/entities"
)

// fakeSession is an in-memory stand-in for a calendar session. When
// reflectBusy is set, FreeBusy reports the direct calendar busy whenever a
// stored event overlaps the queried window, so a hold created by one
// attempt is visible to the next.
type fakeSession struct {
	directID string

	busy        map[string][]entities.BusyInterval
	freeBusyErr error
	reflectBusy bool

	events    []entities.CalendarEvent
	nextID    int
	insertErr error

	listErr   error
	patchErr  error
	patched   map[string]string
	deleteErr map[string]error
	deleted   []string
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		directID:  "direct",
		busy:      map[string][]entities.BusyInterval{},
		patched:   map[string]string{},
		deleteErr: map[string]error{},
	}
}

func (f *fakeSession) FreeBusy(_ context.Context, timeMin, timeMax time.Time, calendarIDs []string) (map[string][]entities.BusyInterval, error) {
	if f.freeBusyErr != nil {
		return nil, f.freeBusyErr
	}
	out := map[string][]entities.BusyInterval{}
	for _, id := range calendarIDs {
		out[id] = f.busy[id]
	}
	if f.reflectBusy {
		for _, ev := range f.events {
			start, _ := time.Parse("2006-01-02", ev.StartDate)
			end, _ := time.Parse("2006-01-02", ev.EndDate)
			if start.Before(timeMax) && end.After(timeMin) {
				out[f.directID] = append(out[f.directID], entities.BusyInterval{Start: start, End: end})
			}
		}
	}
	return out, nil
}

func (f *fakeSession) InsertEvent(_ context.Context, _ string, ev entities.CalendarEvent) (entities.CalendarEvent, error) {
	if f.insertErr != nil {
		return entities.CalendarEvent{}, f.insertErr
	}
	f.nextID++
	ev.ID = fmt.Sprintf("ev-%d", f.nextID)
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeSession) ListEvents(_ context.Context, _ string, _, _ time.Time, _ string) ([]entities.CalendarEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entities.CalendarEvent(nil), f.events...), nil
}

func (f *fakeSession) PatchEventDescription(_ context.Context, _, eventID, description string) error {
	if f.patchErr != nil {
		return f.patchErr
	}
	f.patched[eventID] = description
	return nil
}

func (f *fakeSession) DeleteEvent(_ context.Context, _ string, eventID string) error {
	if err := f.deleteErr[eventID]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, eventID)
	for i, ev := range f.events {
		if ev.ID == eventID {
			f.events = append(f.events[:i], f.events[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeSession) connector() CalendarConnector {
	return ConnectorFunc(func(context.Context) (CalendarSession, error) {
		return f, nil
	})
}

// fakePayments records idempotency keys and dedupes on them, the way the
// real provider guarantees at-most-one effect per key.
type fakePayments struct {
	keys []string

	linksByKey     map[string]*entities.PaymentLink
	linkCount      int
	paymentLinkErr error

	customerCount int
	orderCount    int

	invoiceVersion int
	publishErr     error
	publishedWith  []int
}

func newFakePayments() *fakePayments {
	return &fakePayments{linksByKey: map[string]*entities.PaymentLink{}, invoiceVersion: 7}
}

func (f *fakePayments) CreatePaymentLink(_ context.Context, idempotencyKey string, _ entities.PaymentLinkParams) (*entities.PaymentLink, error) {
	f.keys = append(f.keys, idempotencyKey)
	if f.paymentLinkErr != nil {
		return nil, f.paymentLinkErr
	}
	if link, ok := f.linksByKey[idempotencyKey]; ok {
		return link, nil
	}
	f.linkCount++
	link := &entities.PaymentLink{
		ID:      fmt.Sprintf("pl-%d", f.linkCount),
		URL:     fmt.Sprintf("https://square.link/u/%d", f.linkCount),
		OrderID: fmt.Sprintf("ord-%d", f.linkCount),
	}
	f.linksByKey[idempotencyKey] = link
	return link, nil
}

func (f *fakePayments) CreateCustomer(_ context.Context, idempotencyKey, _, _ string) (string, error) {
	f.keys = append(f.keys, idempotencyKey)
	f.customerCount++
	return fmt.Sprintf("cus-%d", f.customerCount), nil
}

func (f *fakePayments) CreateOrder(_ context.Context, idempotencyKey string, _ entities.OrderParams) (string, error) {
	f.keys = append(f.keys, idempotencyKey)
	f.orderCount++
	return fmt.Sprintf("ord-%d", f.orderCount), nil
}

func (f *fakePayments) CreateInvoice(_ context.Context, idempotencyKey string, _ entities.InvoiceParams) (*entities.Invoice, error) {
	f.keys = append(f.keys, idempotencyKey)
	return &entities.Invoice{ID: "inv-1", Version: f.invoiceVersion, Status: "DRAFT"}, nil
}

func (f *fakePayments) PublishInvoice(_ context.Context, idempotencyKey, invoiceID string, version int) (*entities.Invoice, error) {
	f.keys = append(f.keys, idempotencyKey)
	f.publishedWith = append(f.publishedWith, version)
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	if version != f.invoiceVersion {
		return nil, fmt.Errorf("version mismatch: got %d, want %d", version, f.invoiceVersion)
	}
	return &entities.Invoice{ID: invoiceID, Version: version + 1, Status: "UNPAID"}, nil
}
