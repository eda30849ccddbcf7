package availability

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	rules  map[string]*Rule
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rules: make(map[string]*Rule)}
}

func (f *fakeRepo) Create(_ context.Context, rule *Rule) error {
	f.nextID++
	rule.ID = fmt.Sprintf("rule-%d", f.nextID)
	rule.CreatedAt = time.Now().UTC()
	rule.UpdatedAt = rule.CreatedAt
	cp := *rule
	f.rules[rule.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*Rule, error) {
	r, ok := f.rules[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, filter Filter) ([]*Rule, int, error) {
	var out []*Rule
	for _, r := range f.rules {
		if filter.HostID != "" && r.HostID != filter.HostID {
			continue
		}
		out = append(out, r)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, rule *Rule) error {
	if _, ok := f.rules[rule.ID]; !ok {
		return ErrNotFound
	}
	cp := *rule
	f.rules[rule.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.rules[id]; !ok {
		return ErrNotFound
	}
	delete(f.rules, id)
	return nil
}

func (f *fakeRepo) ListForDay(_ context.Context, hostID string, dayOfWeek time.Weekday, date time.Time) ([]*Rule, error) {
	var out []*Rule
	for _, r := range f.rules {
		if r.HostID == hostID && r.AppliesTo(dayOfWeek, date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) HasAnyAvailable(_ context.Context, hostID string) (bool, error) {
	for _, r := range f.rules {
		if r.HostID == hostID && !r.IsBlocked {
			return true, nil
		}
	}
	return false, nil
}

func intPtr(i int) *int { return &i }

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	t.Run("recurring rule", func(t *testing.T) {
		rule, err := svc.Create(ctx, "host-1", CreateRequest{
			Kind:      KindRecurring,
			DayOfWeek: intPtr(1),
			StartTime: "09:00",
			EndTime:   "17:00",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, rule.ID)
		assert.Equal(t, "host-1", rule.HostID)
	})

	t.Run("date specific block", func(t *testing.T) {
		date := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
		reason := "dentist"
		rule, err := svc.Create(ctx, "host-1", CreateRequest{
			Kind:        KindDateSpecific,
			Date:        &date,
			StartTime:   "13:00",
			EndTime:     "14:00",
			IsBlocked:   true,
			BlockReason: &reason,
		})
		require.NoError(t, err)
		assert.True(t, rule.IsBlocked)
	})

	t.Run("validation failures", func(t *testing.T) {
		cases := []struct {
			name string
			req  CreateRequest
			want error
		}{
			{"recurring without weekday", CreateRequest{Kind: KindRecurring, StartTime: "09:00", EndTime: "10:00"}, ErrMissingDay},
			{"weekday out of range", CreateRequest{Kind: KindRecurring, DayOfWeek: intPtr(7), StartTime: "09:00", EndTime: "10:00"}, ErrInvalidDayOfWeek},
			{"date specific without date", CreateRequest{Kind: KindDateSpecific, StartTime: "09:00", EndTime: "10:00"}, ErrMissingDay},
			{"unknown kind", CreateRequest{Kind: "weekly", DayOfWeek: intPtr(1), StartTime: "09:00", EndTime: "10:00"}, ErrInvalidKind},
			{"garbage clock", CreateRequest{Kind: KindRecurring, DayOfWeek: intPtr(1), StartTime: "9am", EndTime: "10:00"}, ErrInvalidClock},
			{"start after end", CreateRequest{Kind: KindRecurring, DayOfWeek: intPtr(1), StartTime: "17:00", EndTime: "09:00"}, ErrInvalidTimeRange},
			{"zero length", CreateRequest{Kind: KindRecurring, DayOfWeek: intPtr(1), StartTime: "09:00", EndTime: "09:00"}, ErrInvalidTimeRange},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Create(ctx, "host-1", tc.req)
				assert.True(t, errors.Is(err, tc.want), "got %v, want %v", err, tc.want)
			})
		}
	})
}

func TestServiceUpdateOwnership(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	rule, err := svc.Create(ctx, "host-1", CreateRequest{
		Kind:      KindRecurring,
		DayOfWeek: intPtr(1),
		StartTime: "09:00",
		EndTime:   "17:00",
	})
	require.NoError(t, err)

	t.Run("another host cannot touch the rule", func(t *testing.T) {
		end := "18:00"
		_, err := svc.Update(ctx, "host-2", rule.ID, UpdateRequest{EndTime: &end})
		assert.True(t, errors.Is(err, ErrPermissionDenied))

		err = svc.Delete(ctx, "host-2", rule.ID)
		assert.True(t, errors.Is(err, ErrPermissionDenied))
	})

	t.Run("owner updates and the result is revalidated", func(t *testing.T) {
		end := "08:00" // before the 09:00 start
		_, err := svc.Update(ctx, "host-1", rule.ID, UpdateRequest{EndTime: &end})
		assert.True(t, errors.Is(err, ErrInvalidTimeRange))

		end = "18:00"
		updated, err := svc.Update(ctx, "host-1", rule.ID, UpdateRequest{EndTime: &end})
		require.NoError(t, err)
		assert.Equal(t, "18:00", updated.EndTime)
	})

	t.Run("owner deletes", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, "host-1", rule.ID))
		_, err := svc.GetByID(ctx, rule.ID)
		assert.True(t, errors.Is(err, ErrNotFound))
	})
}

func TestRuleBoundsAndAppliesTo(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	rule := &Rule{
		Kind:      KindRecurring,
		DayOfWeek: intPtr(1),
		StartTime: "09:00",
		EndTime:   "17:00",
	}

	// 2026-03-02 is a Monday on Eastern Standard Time (UTC-5).
	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	start, end, err := rule.Bounds(monday, ny)
	require.NoError(t, err)
	assert.True(t, start.Equal(time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)))
	assert.True(t, end.Equal(time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC)))

	assert.True(t, rule.AppliesTo(time.Monday, monday))
	assert.False(t, rule.AppliesTo(time.Tuesday, monday.AddDate(0, 0, 1)))
}
