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

func TestResolveWindows(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	// 2026-03-02 is a Monday.
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	t.Run("recurring rule converted to UTC in host zone", func(t *testing.T) {
		rules := []*availability.Rule{
			recurringRule("r1", "host-1", 1, "09:00", "17:00"),
		}
		e := newTestEngine(rules, nil, map[string]string{"host-1": "America/New_York"}, now)

		windows, err := e.ResolveWindows(ctx, "host-1", monday, "America/New_York")
		require.NoError(t, err)
		require.Len(t, windows.Available, 1)
		assert.Empty(t, windows.Blocked)
		assert.True(t, windows.ConfiguredAnywhere)

		// EST on 2026-03-02 (DST starts March 8): 09:00 local = 14:00 UTC.
		w := windows.Available[0]
		assert.True(t, w.Start.Equal(time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)))
		assert.True(t, w.End.Equal(time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)))
		assert.Equal(t, "09:00", w.LocalStart)
		assert.Equal(t, "17:00", w.LocalEnd)
	})

	t.Run("date specific and blocked rules stay separate", func(t *testing.T) {
		date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		rules := []*availability.Rule{
			recurringRule("r1", "host-1", 1, "09:00", "17:00"),
			{
				ID:          "b1",
				HostID:      "host-1",
				Kind:        availability.KindDateSpecific,
				Date:        &date,
				StartTime:   "12:00",
				EndTime:     "13:00",
				IsBlocked:   true,
				BlockReason: strPtr("lunch"),
			},
		}
		e := newTestEngine(rules, nil, map[string]string{"host-1": "UTC"}, now)

		windows, err := e.ResolveWindows(ctx, "host-1", monday, "UTC")
		require.NoError(t, err)
		require.Len(t, windows.Available, 1)
		require.Len(t, windows.Blocked, 1)
		assert.Equal(t, "lunch", windows.Blocked[0].Reason)
		assert.True(t, windows.Blocked[0].Start.Equal(time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)))
	})

	t.Run("rule for another weekday does not apply", func(t *testing.T) {
		rules := []*availability.Rule{
			recurringRule("r1", "host-1", 2, "09:00", "17:00"), // Tuesdays only
		}
		e := newTestEngine(rules, nil, map[string]string{"host-1": "UTC"}, now)

		windows, err := e.ResolveWindows(ctx, "host-1", monday, "UTC")
		require.NoError(t, err)
		assert.Empty(t, windows.Available)
		// Rules exist elsewhere, so the host is configured.
		assert.True(t, windows.ConfiguredAnywhere)
	})

	t.Run("no rules at all", func(t *testing.T) {
		e := newTestEngine(nil, nil, map[string]string{"host-1": "UTC"}, now)

		windows, err := e.ResolveWindows(ctx, "host-1", monday, "UTC")
		require.NoError(t, err)
		assert.Empty(t, windows.Available)
		assert.False(t, windows.ConfiguredAnywhere)
	})

	t.Run("invalid zone", func(t *testing.T) {
		e := newTestEngine(nil, nil, map[string]string{"host-1": "UTC"}, now)

		_, err := e.ResolveWindows(ctx, "host-1", monday, "Not/A_Zone")
		assert.True(t, errors.Is(err, ErrInvalidTimezone))
	})

	t.Run("store failure surfaces as dependency error", func(t *testing.T) {
		e := NewEngine(
			&fakeRuleStore{err: errors.New("connection refused")},
			&fakeBookingStore{},
			&fakeHostDirectory{zones: map[string]string{"host-1": "UTC"}},
			"UTC",
		)

		_, err := e.ResolveWindows(ctx, "host-1", monday, "UTC")
		assert.True(t, errors.Is(err, ErrDependencyUnavailable))
	})
}
