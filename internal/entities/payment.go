package entities

// Payment artifact kinds.
const (
	ArtifactCheckoutLink = "checkout_link"
	ArtifactInvoice      = "invoice"
)

// PaymentArtifact is the outcome of a completed reservation attempt:
// either a checkout URL the guest pays immediately, or an invoice that was
// published to the guest's email.
type PaymentArtifact struct {
	Kind      string
	Reference string // checkout URL or invoice ID
	OrderID   string
}

type LineItem struct {
	Name     string
	Quantity string
	Amount   int // minor units; JPY has none, so this is whole yen
	Currency string
}

type PaymentLinkParams struct {
	LocationID  string
	LineItems   []LineItem
	Metadata    map[string]string
	RedirectURL string
	BuyerEmail  string
	PaymentNote string
}

type PaymentLink struct {
	ID      string
	URL     string
	OrderID string
}

type OrderParams struct {
	LocationID string
	CustomerID string
	LineItems  []LineItem
}

type InvoiceParams struct {
	OrderID           string
	CustomerID        string
	Title             string
	Description       string
	DueDate           string // YYYY-MM-DD
	ReminderDays      []int  // offsets relative to the due date
	DeliveryMethod    string
	AcceptCard        bool
	AcceptBankAccount bool
}

// Invoice carries the provider-assigned version used as the optimistic
// concurrency token on publish.
type Invoice struct {
	ID        string
	Version   int
	Status    string
	PublicURL string
}
