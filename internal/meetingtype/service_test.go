package meetingtype

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
	types  map[string]*MeetingType
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{types: make(map[string]*MeetingType)}
}

func (f *fakeRepo) Create(_ context.Context, mt *MeetingType) error {
	f.nextID++
	mt.ID = fmt.Sprintf("mt-%d", f.nextID)
	mt.CreatedAt = time.Now().UTC()
	mt.UpdatedAt = mt.CreatedAt
	cp := *mt
	f.types[mt.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*MeetingType, error) {
	mt, ok := f.types[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *mt
	return &cp, nil
}

func (f *fakeRepo) List(_ context.Context, filter Filter) ([]*MeetingType, int, error) {
	var out []*MeetingType
	for _, mt := range f.types {
		if filter.HostID != "" && mt.HostID != filter.HostID {
			continue
		}
		if filter.IsActive != nil && mt.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, mt)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Update(_ context.Context, mt *MeetingType) error {
	if _, ok := f.types[mt.ID]; !ok {
		return ErrNotFound
	}
	cp := *mt
	f.types[mt.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	mt, ok := f.types[id]
	if !ok {
		return ErrNotFound
	}
	mt.IsActive = false
	return nil
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	t.Run("happy path defaults to active", func(t *testing.T) {
		mt, err := svc.Create(ctx, "host-1", CreateRequest{
			Name:            "  Intro Call  ",
			DurationMinutes: 30,
		})
		require.NoError(t, err)
		assert.Equal(t, "Intro Call", mt.Name)
		assert.True(t, mt.IsActive)
		assert.Equal(t, "host-1", mt.HostID)
	})

	t.Run("rejections", func(t *testing.T) {
		cases := []struct {
			name string
			req  CreateRequest
			want error
		}{
			{"blank name", CreateRequest{Name: "   ", DurationMinutes: 30}, ErrEmptyName},
			{"zero duration", CreateRequest{Name: "x", DurationMinutes: 0}, ErrInvalidDuration},
			{"negative buffer", CreateRequest{Name: "x", DurationMinutes: 30, BufferBeforeMinutes: -5}, ErrInvalidBuffer},
			{"negative cap", CreateRequest{Name: "x", DurationMinutes: 30, MaxAttendees: -1}, ErrInvalidLimit},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := svc.Create(ctx, "host-1", tc.req)
				assert.True(t, errors.Is(err, tc.want), "got %v, want %v", err, tc.want)
			})
		}
	})
}

func TestServiceOwnerOnlyMutation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	mt, err := svc.Create(ctx, "host-1", CreateRequest{Name: "Demo", DurationMinutes: 45})
	require.NoError(t, err)

	name := "Renamed"
	_, err = svc.Update(ctx, "host-2", mt.ID, UpdateRequest{Name: &name})
	assert.True(t, errors.Is(err, ErrPermissionDenied))

	err = svc.Delete(ctx, "host-2", mt.ID)
	assert.True(t, errors.Is(err, ErrPermissionDenied))

	updated, err := svc.Update(ctx, "host-1", mt.ID, UpdateRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	bad := 0
	_, err = svc.Update(ctx, "host-1", mt.ID, UpdateRequest{DurationMinutes: &bad})
	assert.True(t, errors.Is(err, ErrInvalidDuration))

	require.NoError(t, svc.Delete(ctx, "host-1", mt.ID))
}

func TestRulesProjection(t *testing.T) {
	mt := &MeetingType{
		DurationMinutes:       30,
		BufferBeforeMinutes:   10,
		BufferAfterMinutes:    5,
		MaxBookingsPerDay:     8,
		RequiredNoticeMinutes: 120,
		MaxAttendees:          3,
	}

	rules := mt.Rules()
	assert.Equal(t, 30, rules.DurationMinutes)
	assert.Equal(t, 10, rules.BufferBeforeMinutes)
	assert.Equal(t, 5, rules.BufferAfterMinutes)
	assert.Equal(t, 8, rules.MaxBookingsPerDay)
	assert.Equal(t, 120, rules.RequiredNoticeMinutes)
	assert.Equal(t, 3, rules.MaxAttendees)
}
