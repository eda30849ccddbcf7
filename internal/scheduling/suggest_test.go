package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunamochi/meeting-scheduler-backend/internal/availability"
)

func TestSuggestAlternativesSameDayFirst(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
	rules := []*availability.Rule{
		recurringRule("r1", "host-1", 1, "09:00", "17:00"), // Mondays
		recurringRule("r2", "host-1", 2, "09:00", "17:00"), // Tuesdays
	}
	// The whole requested hour is booked.
	busy := []BusyInterval{{
		BookingID: "bk-1",
		Status:    "confirmed",
		Start:     time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		End:       time.Date(2026, 3, 2, 11, 0, 0, 0, time.UTC),
	}}
	e := newTestEngine(rules, busy, map[string]string{"host-1": "UTC"}, now)

	suggestions, err := e.SuggestAlternatives(ctx, "host-1",
		time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
		"UTC", 5)
	require.NoError(t, err)
	require.Len(t, suggestions, 5)

	sameDay := 0
	for _, s := range suggestions {
		assert.Equal(t, 30*time.Minute, s.End.Sub(s.Start), "suggestions keep the requested duration")
		assert.False(t, IntervalsOverlap(s.Start, s.End, busy[0].Start, busy[0].End, 0), "never suggest a booked slot")
		assert.GreaterOrEqual(t, s.Confidence, 0.0)
		assert.LessOrEqual(t, s.Confidence, 1.0)
		assert.NotEmpty(t, s.Reason)
		if s.Start.Day() == 2 {
			sameDay++
		}
	}
	assert.Equal(t, 3, sameDay, "up to three alternatives from the requested day")
}

func TestSuggestAlternativesSkipsToConfiguredDay(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
	// Only Wednesdays are configured.
	rules := []*availability.Rule{
		recurringRule("r1", "host-1", 3, "09:00", "17:00"),
	}
	e := newTestEngine(rules, nil, map[string]string{"host-1": "UTC"}, now)

	// Request on Monday 2026-03-02; Wednesday is 2026-03-04.
	suggestions, err := e.SuggestAlternatives(ctx, "host-1",
		time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
		"UTC", 5)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)

	for _, s := range suggestions {
		assert.Equal(t, 4, s.Start.Day(), "alternatives come from the next configured day")
	}
}

func TestSuggestAlternativesRankedByConfidence(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
	// Saturday early-morning window plus a Tuesday business-hours window:
	// the Tuesday slots must rank above the weekend ones.
	rules := []*availability.Rule{
		recurringRule("r1", "host-1", 6, "06:00", "08:00"), // Saturdays, before hours
		recurringRule("r2", "host-1", 2, "10:00", "12:00"), // Tuesdays
	}
	e := newTestEngine(rules, nil, map[string]string{"host-1": "UTC"}, now)

	// Request on Saturday 2026-03-07.
	suggestions, err := e.SuggestAlternatives(ctx, "host-1",
		time.Date(2026, 3, 7, 6, 30, 0, 0, time.UTC),
		time.Date(2026, 3, 7, 7, 0, 0, 0, time.UTC),
		"UTC", 5)
	require.NoError(t, err)
	require.NotEmpty(t, suggestions)

	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].Confidence, suggestions[i].Confidence, "sorted descending")
	}
	best := suggestions[0]
	assert.Equal(t, time.Tuesday, best.Start.Weekday(), "midweek business hours beat weekend early mornings")
}

func TestScoreSlotNoticePenalties(t *testing.T) {
	// Off-hours slots are used so the [0,1] clamp never hides a penalty.
	now := time.Date(2026, 3, 2, 5, 0, 0, 0, time.UTC) // Monday 05:00
	loc := time.UTC
	score := func(start time.Time) float64 {
		s, _ := scoreSlot(start, start.Add(30*time.Minute), loc, now)
		return s
	}

	soon := score(time.Date(2026, 3, 2, 6, 30, 0, 0, time.UTC))     // 1.5h out
	today := score(time.Date(2026, 3, 2, 19, 30, 0, 0, time.UTC))   // same day
	tueNear := score(time.Date(2026, 3, 3, 6, 30, 0, 0, time.UTC))  // next day
	tueFar := score(time.Date(2026, 3, 10, 6, 30, 0, 0, time.UTC))  // 8 days out

	assert.Less(t, soon, today, "slots within two hours score lowest")
	assert.Less(t, today, tueNear, "same-day slots carry a short-notice penalty")
	assert.Less(t, tueFar, tueNear, "slots beyond a week are discounted")
}

func TestScoreSlotBusinessHourTiers(t *testing.T) {
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
	loc := time.UTC
	score := func(hour, minute int) float64 {
		start := time.Date(2026, 3, 3, hour, minute, 0, 0, time.UTC) // a Tuesday
		s, _ := scoreSlot(start, start.Add(30*time.Minute), loc, now)
		return s
	}

	core := score(10, 0)     // 09:00-17:00 tier
	extended := score(8, 0)  // 08:00-18:00 tier
	edge := score(7, 0)      // 07:00-19:00 tier
	offHours := score(6, 0)  // no tier

	assert.Greater(t, core, extended)
	assert.Greater(t, extended, edge)
	assert.Greater(t, edge, offHours)
}

func TestSuggestAlternativesRespectsMax(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
	var rules []*availability.Rule
	for dow := 0; dow < 7; dow++ {
		rules = append(rules, recurringRule("r", "host-1", dow, "09:00", "17:00"))
	}
	e := newTestEngine(rules, nil, map[string]string{"host-1": "UTC"}, now)

	suggestions, err := e.SuggestAlternatives(ctx, "host-1",
		time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
		"UTC", 3)
	require.NoError(t, err)
	assert.Len(t, suggestions, 3)
}
