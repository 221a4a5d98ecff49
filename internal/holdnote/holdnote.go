// Package holdnote encodes and decodes the hold metadata embedded in a
// calendar event's description. The calendar is the only store for holds,
// so this text block is the persistence format; keep orchestration code
// out of here so the format can change in one place.
package holdnote

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TitlePrefix marks a calendar event as a provisional hold. The sweeper
// filters event listings on this string.
const TitlePrefix = "HOLD"

const (
	headerLine    = "【仮予約】"
	guestMarker   = "ゲスト: "
	guestsMarker  = "人数: "
	totalMarker   = "合計: "
	expiresMarker = "有効期限: "
	paymentMarker = "決済URL: "
	invoiceMarker = "請求書ID: "
)

var ErrNoExpiry = errors.New("holdnote: no parseable expiry in description")

// Note is the metadata block written into a hold event's description.
type Note struct {
	GuestName  string
	GuestEmail string
	Guests     int
	Total      int
	ExpiresAt  time.Time
}

// Title builds the hold event summary for a guest.
func Title(guestName string) string {
	return fmt.Sprintf("%s - %s様 (決済待ち)", TitlePrefix, guestName)
}

// IsHoldTitle reports whether an event summary marks a provisional hold.
func IsHoldTitle(summary string) bool {
	return strings.HasPrefix(summary, TitlePrefix)
}

func (n Note) Encode() string {
	return fmt.Sprintf("%s\n%s%s (%s)\n%s%d名\n%s¥%s\n%s%s",
		headerLine,
		guestMarker, n.GuestName, n.GuestEmail,
		guestsMarker, n.Guests,
		totalMarker, FormatYen(n.Total),
		expiresMarker, n.ExpiresAt.UTC().Format(time.RFC3339),
	)
}

// ParseExpiry extracts the embedded expiry timestamp from a description.
// Returns ErrNoExpiry when the marker is missing or the timestamp does not
// parse; callers must treat that as "do not touch this event".
func ParseExpiry(description string) (time.Time, error) {
	for _, line := range strings.Split(description, "\n") {
		rest, ok := strings.CutPrefix(strings.TrimSpace(line), expiresMarker)
		if !ok {
			continue
		}
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(rest))
		if err != nil {
			return time.Time{}, ErrNoExpiry
		}
		return t, nil
	}
	return time.Time{}, ErrNoExpiry
}

// AppendPaymentURL adds the checkout URL to an encoded description so the
// calendar entry can be correlated with the payment side by hand.
func AppendPaymentURL(description, url string) string {
	return description + "\n\n" + paymentMarker + url
}

// AppendInvoiceID adds the published invoice's identifier.
func AppendInvoiceID(description, invoiceID string) string {
	return description + "\n\n" + invoiceMarker + invoiceID
}

// FormatYen renders an amount with thousands separators, e.g. 30000 → "30,000".
func FormatYen(amount int) string {
	s := fmt.Sprintf("%d", amount)
	if amount < 0 {
		return "-" + FormatYen(-amount)
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
