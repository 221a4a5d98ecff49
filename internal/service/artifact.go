package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"terra/internal/entities"
	"terra/internal/holdnote"
)

const dateLayout = "2006-01-02"

// ArtifactCreator is one completion policy for a reservation: how the
// payment side gets created once a hold exists. Selected by configuration,
// never inferred from the request.
type ArtifactCreator interface {
	HoldTTL() time.Duration
	HoldStatus() string
	CreateArtifact(ctx context.Context, req *entities.BookingRequest, quote *entities.Quote, hold *entities.Hold) (*entities.PaymentArtifact, error)
}

func stayLineItem(req *entities.BookingRequest, quote *entities.Quote) entities.LineItem {
	return entities.LineItem{
		Name:     fmt.Sprintf("Terra宿泊費 (%s〜 %d泊 %d名)", req.CheckIn.Format(dateLayout), quote.Nights, req.Guests),
		Quantity: "1",
		Amount:   quote.Total,
		Currency: "JPY",
	}
}

// CheckoutLinkCreator completes a reservation with a one-shot hosted
// checkout link. Short hold TTL: the guest is expected to pay immediately.
type CheckoutLinkCreator struct {
	Payments    PaymentGateway
	LocationID  string
	RedirectURL string
	TTL         time.Duration
}

func (c *CheckoutLinkCreator) HoldTTL() time.Duration { return c.TTL }

func (c *CheckoutLinkCreator) HoldStatus() string { return entities.HoldStatusPendingPaymentLink }

func (c *CheckoutLinkCreator) CreateArtifact(ctx context.Context, req *entities.BookingRequest, quote *entities.Quote, hold *entities.Hold) (*entities.PaymentArtifact, error) {
	link, err := c.Payments.CreatePaymentLink(ctx, uuid.NewString(), entities.PaymentLinkParams{
		LocationID: c.LocationID,
		LineItems:  []entities.LineItem{stayLineItem(req, quote)},
		Metadata: map[string]string{
			"eventId":    hold.EventID,
			"checkin":    req.CheckIn.Format(dateLayout),
			"checkout":   req.CheckOut.Format(dateLayout),
			"guestName":  req.Name,
			"guestEmail": req.Email,
		},
		RedirectURL: c.RedirectURL,
		BuyerEmail:  req.Email,
		PaymentNote: "予約ID: " + hold.EventID,
	})
	if err != nil {
		return nil, fmt.Errorf("create payment link: %w", err)
	}
	return &entities.PaymentArtifact{
		Kind:      entities.ArtifactCheckoutLink,
		Reference: link.URL,
		OrderID:   link.OrderID,
	}, nil
}

// InvoiceCreator completes a reservation with an emailed invoice:
// customer, then order, then a draft invoice, then an explicit publish that
// echoes the invoice's version. Longer hold TTL to cover bank-transfer
// style payment latency.
type InvoiceCreator struct {
	Payments     PaymentGateway
	LocationID   string
	TTL          time.Duration
	DueInDays    int
	ReminderDays []int
}

func (c *InvoiceCreator) HoldTTL() time.Duration { return c.TTL }

func (c *InvoiceCreator) HoldStatus() string { return entities.HoldStatusPendingInvoice }

func (c *InvoiceCreator) CreateArtifact(ctx context.Context, req *entities.BookingRequest, quote *entities.Quote, hold *entities.Hold) (*entities.PaymentArtifact, error) {
	customerID, err := c.Payments.CreateCustomer(ctx, uuid.NewString(), req.Name, req.Email)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	orderID, err := c.Payments.CreateOrder(ctx, uuid.NewString(), entities.OrderParams{
		LocationID: c.LocationID,
		CustomerID: customerID,
		LineItems:  []entities.LineItem{stayLineItem(req, quote)},
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	invoice, err := c.Payments.CreateInvoice(ctx, uuid.NewString(), entities.InvoiceParams{
		OrderID:    orderID,
		CustomerID: customerID,
		Title:      "Terra ご宿泊料金",
		Description: fmt.Sprintf("%s〜%s %d泊 %d名 合計 ¥%s",
			req.CheckIn.Format(dateLayout), req.CheckOut.Format(dateLayout),
			quote.Nights, req.Guests, holdnote.FormatYen(quote.Total)),
		DueDate:        hold.CreatedAt.AddDate(0, 0, c.DueInDays).Format(dateLayout),
		ReminderDays:   c.ReminderDays,
		DeliveryMethod: "EMAIL",
		AcceptCard:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}

	published, err := c.Payments.PublishInvoice(ctx, uuid.NewString(), invoice.ID, invoice.Version)
	if err != nil {
		return nil, fmt.Errorf("publish invoice: %w", err)
	}

	return &entities.PaymentArtifact{
		Kind:      entities.ArtifactInvoice,
		Reference: published.ID,
		OrderID:   orderID,
	}, nil
}
