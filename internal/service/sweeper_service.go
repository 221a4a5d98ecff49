package service

import (
	"context"
	"log"
	"time"

	"terra/internal/holdnote"
	"terra/internal/monitoring"
)

// SweeperService reclaims expired provisional holds from the direct-booking
// calendar. Sweeps are best-effort: a failure on one event never aborts the
// rest, and a sweep never returns an error to its caller.
type SweeperService struct {
	CalendarID string
	// LookBack must be at least as long as the longest hold TTL in use so
	// every expirable hold is listed at least once before it can vanish
	// from the window.
	LookBack time.Duration
	Horizon  time.Duration
}

func NewSweeperService(calendarID string, lookBack, horizon time.Duration) *SweeperService {
	return &SweeperService{CalendarID: calendarID, LookBack: lookBack, Horizon: horizon}
}

// Sweep lists hold-marked events around now and deletes those whose
// embedded expiry is strictly before now. Events whose description cannot
// be parsed are skipped: never delete on ambiguous data. Returns the
// best-effort count of removed holds.
func (s *SweeperService) Sweep(ctx context.Context, session CalendarSession, now time.Time) int {
	events, err := session.ListEvents(ctx, s.CalendarID, now.Add(-s.LookBack), now.Add(s.Horizon), holdnote.TitlePrefix)
	if err != nil {
		log.Printf("Sweep: listing hold events failed: %v", err)
		return 0
	}

	removed := 0
	for _, ev := range events {
		if !holdnote.IsHoldTitle(ev.Summary) {
			continue
		}
		expiry, err := holdnote.ParseExpiry(ev.Description)
		if err != nil {
			log.Printf("Sweep: skipping event %s (unparseable expiry): %v", ev.ID, err)
			continue
		}
		if !expiry.Before(now) {
			continue
		}
		if err := session.DeleteEvent(ctx, s.CalendarID, ev.ID); err != nil {
			log.Printf("Sweep: failed to delete expired hold %s: %v", ev.ID, err)
			continue
		}
		removed++
	}

	if removed > 0 {
		log.Printf("Sweep: removed %d expired hold(s)", removed)
		monitoring.HoldsSwept(removed)
	}
	return removed
}

// Run is the scheduled entry point: it opens its own calendar session and
// sweeps against the current time.
func (s *SweeperService) Run(ctx context.Context, calendars CalendarConnector) int {
	session, err := calendars.Connect(ctx)
	if err != nil {
		log.Printf("Sweep: calendar auth failed: %v", err)
		return 0
	}
	return s.Sweep(ctx, session, time.Now())
}
