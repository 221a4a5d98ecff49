// Package square is a hand-rolled client for the slice of the Square API
// the booking flow consumes: payment links, customers, orders, invoices.
// Every creating call takes a caller-supplied idempotency key; retrying
// with the same key is guaranteed by Square to have at most one effect.
package square

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"terra/internal/entities"
)

const apiVersion = "2024-06-04"

type Config struct {
	AccessToken string
	BaseURL     string // override for tests; defaults to production
}

type Client struct {
	accessToken string
	baseURL     string
	hc          *http.Client
}

func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://connect.squareup.com"
	}
	return &Client{
		accessToken: cfg.AccessToken,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		hc:          &http.Client{Timeout: 15 * time.Second},
	}
}

type money struct {
	Amount   int    `json:"amount"`
	Currency string `json:"currency"`
}

type lineItem struct {
	Name           string `json:"name"`
	Quantity       string `json:"quantity"`
	BasePriceMoney money  `json:"base_price_money"`
}

func toLineItems(items []entities.LineItem) []lineItem {
	out := make([]lineItem, 0, len(items))
	for _, it := range items {
		qty := it.Quantity
		if qty == "" {
			qty = "1"
		}
		out = append(out, lineItem{
			Name:           it.Name,
			Quantity:       qty,
			BasePriceMoney: money{Amount: it.Amount, Currency: it.Currency},
		})
	}
	return out
}

// CreatePaymentLink builds a one-shot checkout link for the given order.
func (c *Client) CreatePaymentLink(ctx context.Context, idempotencyKey string, p entities.PaymentLinkParams) (*entities.PaymentLink, error) {
	body := map[string]any{
		"idempotency_key": idempotencyKey,
		"order": map[string]any{
			"location_id": p.LocationID,
			"line_items":  toLineItems(p.LineItems),
			"metadata":    p.Metadata,
		},
		"checkout_options": map[string]any{
			"redirect_url":             p.RedirectURL,
			"ask_for_shipping_address": false,
		},
		"pre_populated_data": map[string]any{
			"buyer_email": p.BuyerEmail,
		},
		"payment_note": p.PaymentNote,
	}

	var reply struct {
		PaymentLink struct {
			ID      string `json:"id"`
			URL     string `json:"url"`
			OrderID string `json:"order_id"`
		} `json:"payment_link"`
	}
	if err := c.do(ctx, http.MethodPost, "/v2/online-checkout/payment-links", body, &reply); err != nil {
		return nil, err
	}
	return &entities.PaymentLink{
		ID:      reply.PaymentLink.ID,
		URL:     reply.PaymentLink.URL,
		OrderID: reply.PaymentLink.OrderID,
	}, nil
}

// CreateCustomer registers the guest and returns the customer id.
func (c *Client) CreateCustomer(ctx context.Context, idempotencyKey, name, email string) (string, error) {
	body := map[string]any{
		"idempotency_key": idempotencyKey,
		"given_name":      name,
		"email_address":   email,
	}
	var reply struct {
		Customer struct {
			ID string `json:"id"`
		} `json:"customer"`
	}
	if err := c.do(ctx, http.MethodPost, "/v2/customers", body, &reply); err != nil {
		return "", err
	}
	return reply.Customer.ID, nil
}

// CreateOrder creates an order for the stay and returns the order id.
func (c *Client) CreateOrder(ctx context.Context, idempotencyKey string, p entities.OrderParams) (string, error) {
	body := map[string]any{
		"idempotency_key": idempotencyKey,
		"order": map[string]any{
			"location_id": p.LocationID,
			"customer_id": p.CustomerID,
			"line_items":  toLineItems(p.LineItems),
		},
	}
	var reply struct {
		Order struct {
			ID string `json:"id"`
		} `json:"order"`
	}
	if err := c.do(ctx, http.MethodPost, "/v2/orders", body, &reply); err != nil {
		return "", err
	}
	return reply.Order.ID, nil
}

// CreateInvoice drafts an invoice against an order. The returned version is
// the optimistic-concurrency token PublishInvoice must echo back.
func (c *Client) CreateInvoice(ctx context.Context, idempotencyKey string, p entities.InvoiceParams) (*entities.Invoice, error) {
	reminders := make([]map[string]any, 0, len(p.ReminderDays))
	for _, offset := range p.ReminderDays {
		reminders = append(reminders, map[string]any{"relative_scheduled_days": offset})
	}
	deliveryMethod := p.DeliveryMethod
	if deliveryMethod == "" {
		deliveryMethod = "EMAIL"
	}
	body := map[string]any{
		"idempotency_key": idempotencyKey,
		"invoice": map[string]any{
			"order_id": p.OrderID,
			"primary_recipient": map[string]any{
				"customer_id": p.CustomerID,
			},
			"payment_requests": []map[string]any{{
				"request_type": "BALANCE",
				"due_date":     p.DueDate,
				"reminders":    reminders,
			}},
			"delivery_method": deliveryMethod,
			"title":           p.Title,
			"description":     p.Description,
			"accepted_payment_methods": map[string]bool{
				"card":         p.AcceptCard,
				"bank_account": p.AcceptBankAccount,
			},
		},
	}
	var reply struct {
		Invoice invoiceResource `json:"invoice"`
	}
	if err := c.do(ctx, http.MethodPost, "/v2/invoices", body, &reply); err != nil {
		return nil, err
	}
	return reply.Invoice.toEntity(), nil
}

// PublishInvoice sends the invoice to the recipient. Version must match the
// invoice's current version or Square rejects the call; never guess it.
func (c *Client) PublishInvoice(ctx context.Context, idempotencyKey, invoiceID string, version int) (*entities.Invoice, error) {
	body := map[string]any{
		"idempotency_key": idempotencyKey,
		"version":         version,
	}
	var reply struct {
		Invoice invoiceResource `json:"invoice"`
	}
	path := fmt.Sprintf("/v2/invoices/%s/publish", invoiceID)
	if err := c.do(ctx, http.MethodPost, path, body, &reply); err != nil {
		return nil, err
	}
	return reply.Invoice.toEntity(), nil
}

type invoiceResource struct {
	ID        string `json:"id"`
	Version   int    `json:"version"`
	Status    string `json:"status"`
	PublicURL string `json:"public_url"`
}

func (r invoiceResource) toEntity() *entities.Invoice {
	return &entities.Invoice{ID: r.ID, Version: r.Version, Status: r.Status, PublicURL: r.PublicURL}
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("square: marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("square: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Square-Version", apiVersion)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("square: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("square: %s %s: status %d: %s", method, path, resp.StatusCode, snippet)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("square: decode response: %w", err)
	}
	return nil
}
