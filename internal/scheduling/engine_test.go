package scheduling

import (
	"context"
	"time"

	"github.com/lunamochi/meeting-scheduler-backend/internal/availability"
)

// In-memory store fakes shared by the engine tests.

type fakeRuleStore struct {
	rules []*availability.Rule
	err   error
}

func (f *fakeRuleStore) ListForDay(_ context.Context, hostID string, dayOfWeek time.Weekday, date time.Time) ([]*availability.Rule, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*availability.Rule
	for _, r := range f.rules {
		if r.HostID == hostID && r.AppliesTo(dayOfWeek, date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRuleStore) HasAnyAvailable(_ context.Context, hostID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, r := range f.rules {
		if r.HostID == hostID && !r.IsBlocked {
			return true, nil
		}
	}
	return false, nil
}

type fakeBookingStore struct {
	busy []BusyInterval
	err  error
}

func (f *fakeBookingStore) ListBusy(_ context.Context, _ string, from, to time.Time, excludeBookingID string) ([]BusyInterval, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []BusyInterval
	for _, b := range f.busy {
		if b.BookingID == excludeBookingID && excludeBookingID != "" {
			continue
		}
		if b.Start.Before(to) && from.Before(b.End) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingStore) CountActiveInRange(_ context.Context, _ string, from, to time.Time, excludeBookingID string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	count := 0
	for _, b := range f.busy {
		if b.BookingID == excludeBookingID && excludeBookingID != "" {
			continue
		}
		if !b.Start.Before(from) && b.Start.Before(to) {
			count++
		}
	}
	return count, nil
}

type fakeHostDirectory struct {
	zones map[string]string
	err   error
}

func (f *fakeHostDirectory) HostTimezone(_ context.Context, hostID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.zones[hostID], nil
}

// newTestEngine wires an engine with in-memory fakes and a frozen clock.
func newTestEngine(rules []*availability.Rule, busy []BusyInterval, zones map[string]string, now time.Time) *Engine {
	e := NewEngine(
		&fakeRuleStore{rules: rules},
		&fakeBookingStore{busy: busy},
		&fakeHostDirectory{zones: zones},
		"UTC",
	)
	e.now = func() time.Time { return now }
	return e
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// recurringRule builds a non-blocked weekly rule for tests.
func recurringRule(id, hostID string, dayOfWeek int, start, end string) *availability.Rule {
	return &availability.Rule{
		ID:        id,
		HostID:    hostID,
		Kind:      availability.KindRecurring,
		DayOfWeek: intPtr(dayOfWeek),
		StartTime: start,
		EndTime:   end,
	}
}
