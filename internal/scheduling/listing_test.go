package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunamochi/meeting-scheduler-backend/internal/availability"
)

func TestGetAvailableSlots(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	blockedDate := monday
	rules := []*availability.Rule{
		recurringRule("r1", "host-1", 1, "09:00", "11:00"),
		{
			ID:        "b1",
			HostID:    "host-1",
			Kind:      availability.KindDateSpecific,
			Date:      &blockedDate,
			StartTime: "10:00",
			EndTime:   "10:30",
			IsBlocked: true,
		},
	}
	busy := []BusyInterval{{
		BookingID: "bk-1",
		Status:    "confirmed",
		Start:     time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		End:       time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}}
	e := newTestEngine(rules, busy, map[string]string{"host-1": "UTC"}, now)

	listing, err := e.GetAvailableSlots(ctx, "host-1", monday, 30, "")
	require.NoError(t, err)

	assert.Equal(t, "2026-03-02", listing.Date)
	assert.Equal(t, "UTC", listing.Zone)

	// 15-minute steps over 09:00-11:00 with the 09:30-10:00 booking and the
	// 10:00-10:30 block leave exactly 09:00 and 10:30 free.
	require.Len(t, listing.AvailableSlots, 2)
	assert.True(t, listing.AvailableSlots[0].Start.Equal(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)))
	assert.True(t, listing.AvailableSlots[1].Start.Equal(time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC)))

	booked, blocked := 0, 0
	for _, s := range listing.UnavailableSlots {
		assert.False(t, s.Available)
		switch s.Reason {
		case SlotReasonBooked:
			booked++
		case SlotReasonBlocked:
			blocked++
		default:
			t.Fatalf("unexpected reason %q", s.Reason)
		}
	}
	assert.Equal(t, 3, booked)
	assert.Equal(t, 2, blocked)
	assert.Empty(t, listing.Suggestions, "suggestions only when nothing is free")
}

func TestGetAvailableSlotsDisplayZone(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
	rules := []*availability.Rule{
		recurringRule("r1", "host-1", 1, "09:00", "10:00"),
	}
	e := newTestEngine(rules, nil, map[string]string{"host-1": "UTC"}, now)

	listing, err := e.GetAvailableSlots(ctx, "host-1", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 30, "Asia/Tokyo")
	require.NoError(t, err)

	assert.Equal(t, "Asia/Tokyo", listing.Zone)
	require.NotEmpty(t, listing.AvailableSlots)
	// 09:00 UTC renders as 18:00 in Tokyo.
	assert.Equal(t, "2026-03-02 18:00 - 18:30", listing.AvailableSlots[0].Label)
}

func TestGetAvailableSlotsEmptyDayGetsSuggestions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
	rules := []*availability.Rule{
		recurringRule("r1", "host-1", 2, "09:00", "17:00"), // Tuesdays only
	}
	e := newTestEngine(rules, nil, map[string]string{"host-1": "UTC"}, now)

	listing, err := e.GetAvailableSlots(ctx, "host-1", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 30, "")
	require.NoError(t, err)

	assert.Empty(t, listing.AvailableSlots)
	require.NotEmpty(t, listing.Suggestions)
	for _, s := range listing.Suggestions {
		assert.Equal(t, time.Tuesday, s.Start.Weekday())
	}
}

func TestGetAvailableSlotsBadInput(t *testing.T) {
	ctx := context.Background()
	e := newTestEngine(nil, nil, map[string]string{"host-1": "UTC"}, time.Now().UTC())
	date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	_, err := e.GetAvailableSlots(ctx, "host-1", date, 0, "")
	assert.True(t, errors.Is(err, ErrInvalidDuration))

	_, err = e.GetAvailableSlots(ctx, "host-1", date, 30, "Pluto/Somewhere")
	assert.True(t, errors.Is(err, ErrInvalidTimezone))
}
