package http

import (
	"github.com/lunamochi/meeting-scheduler-backend/internal/scheduling"
)

// SlotsRequest drives the day listing. Either a meeting type (whose duration
// wins) or an explicit duration must be given.
type SlotsRequest struct {
	Date            string `form:"date" binding:"required,datetime=2006-01-02"`
	MeetingTypeID   string `form:"meeting_type_id" binding:"omitempty,uuid"`
	DurationMinutes int    `form:"duration_minutes" binding:"omitempty,min=1"`
	Timezone        string `form:"tz"`
}

func (r *SlotsRequest) Validate() error {
	return nil
}

// SlotsResponse is the engine's day listing, returned as-is.
type SlotsResponse = scheduling.SlotListing
