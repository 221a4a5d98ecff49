package service

import (
	"context"
	"fmt"
	"time"
)

// CheckAvailable queries busy intervals for every listed calendar over
// [checkIn, checkOut). The range is available only when every calendar
// reports an empty busy list; a conflict on any one of them blocks the
// whole range. A failed read propagates — it is never treated as free.
func CheckAvailable(ctx context.Context, session CalendarSession, checkIn, checkOut time.Time, calendarIDs []string) (bool, error) {
	busy, err := session.FreeBusy(ctx, checkIn, checkOut, calendarIDs)
	if err != nil {
		return false, fmt.Errorf("availability check: %w", err)
	}
	for _, id := range calendarIDs {
		if len(busy[id]) > 0 {
			return false, nil
		}
	}
	return true, nil
}
