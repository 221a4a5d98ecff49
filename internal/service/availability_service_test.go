package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terra/internal/entities"
)

func TestCheckAvailableAllCalendarsClear(t *testing.T) {
	session := newFakeSession()
	available, err := CheckAvailable(context.Background(), session,
		day(2024, 6, 7), day(2024, 6, 9), []string{"direct", "block"})
	require.NoError(t, err)
	assert.True(t, available)
}

func TestCheckAvailableConflictOnAnyCalendarBlocks(t *testing.T) {
	interval := entities.BusyInterval{Start: day(2024, 6, 7), End: day(2024, 6, 8)}
	for _, busyCalendar := range []string{"direct", "block"} {
		t.Run(busyCalendar, func(t *testing.T) {
			session := newFakeSession()
			session.busy[busyCalendar] = []entities.BusyInterval{interval}
			available, err := CheckAvailable(context.Background(), session,
				day(2024, 6, 7), day(2024, 6, 9), []string{"direct", "block"})
			require.NoError(t, err)
			assert.False(t, available)
		})
	}
}

func TestCheckAvailableFailedReadPropagates(t *testing.T) {
	session := newFakeSession()
	session.freeBusyErr = errors.New("freebusy: status 500")
	_, err := CheckAvailable(context.Background(), session,
		time.Now(), time.Now().Add(24*time.Hour), []string{"direct"})
	assert.Error(t, err)
}
