package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"terra/internal/entities"
	"terra/internal/holdnote"
)

func holdEvent(id string, expiresAt time.Time) entities.CalendarEvent {
	note := holdnote.Note{GuestName: "山田", GuestEmail: "g@example.com", Guests: 2, Total: 30000, ExpiresAt: expiresAt}
	return entities.CalendarEvent{
		ID:          id,
		Summary:     holdnote.Title("山田"),
		Description: note.Encode(),
		StartDate:   "2024-06-07",
		EndDate:     "2024-06-08",
	}
}

func TestSweepRemovesOnlyExpiredHolds(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	session := newFakeSession()
	session.events = []entities.CalendarEvent{
		holdEvent("expired", now.Add(-time.Minute)),
		holdEvent("live", now.Add(time.Hour)),
		holdEvent("boundary", now), // expiry == now is not strictly before
	}

	sweeper := NewSweeperService("direct", 14*24*time.Hour, 370*24*time.Hour)
	removed := sweeper.Sweep(context.Background(), session, now)

	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"expired"}, session.deleted)
}

func TestSweepNeverDeletesOnAmbiguousData(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	session := newFakeSession()
	session.events = []entities.CalendarEvent{
		{ID: "manual", Summary: "HOLD - 手動ブロック", Description: "owner created, no expiry"},
		{ID: "other", Summary: "Airbnb (Not available)", Description: ""},
		holdEvent("expired", now.Add(-time.Hour)),
	}

	sweeper := NewSweeperService("direct", 14*24*time.Hour, 370*24*time.Hour)
	removed := sweeper.Sweep(context.Background(), session, now)

	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"expired"}, session.deleted)
}

func TestSweepContinuesPastSingleEventFailures(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	session := newFakeSession()
	session.events = []entities.CalendarEvent{
		holdEvent("stuck", now.Add(-time.Hour)),
		holdEvent("expired-2", now.Add(-time.Minute)),
	}
	session.deleteErr["stuck"] = errors.New("gcal: status 500")

	sweeper := NewSweeperService("direct", 14*24*time.Hour, 370*24*time.Hour)
	removed := sweeper.Sweep(context.Background(), session, now)

	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"expired-2"}, session.deleted)
}

func TestSweepListFailureReturnsZero(t *testing.T) {
	session := newFakeSession()
	session.listErr = errors.New("gcal: status 503")

	sweeper := NewSweeperService("direct", 14*24*time.Hour, 370*24*time.Hour)
	removed := sweeper.Sweep(context.Background(), session, time.Now())

	assert.Zero(t, removed)
}
