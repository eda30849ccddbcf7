package http

import (
	"time"

	"github.com/lunamochi/meeting-scheduler-backend/internal/meetingtype"
	"github.com/lunamochi/meeting-scheduler-backend/internal/pkg/request"
)

type MeetingTypeResponse struct {
	ID                    string    `json:"id"`
	HostID                string    `json:"host_id"`
	Name                  string    `json:"name"`
	Description           *string   `json:"description"`
	DurationMinutes       int       `json:"duration_minutes"`
	BufferBeforeMinutes   int       `json:"buffer_before_minutes"`
	BufferAfterMinutes    int       `json:"buffer_after_minutes"`
	MaxBookingsPerDay     int       `json:"max_bookings_per_day"`
	RequiredNoticeMinutes int       `json:"required_notice_minutes"`
	MaxAttendees          int       `json:"max_attendees"`
	IsActive              bool      `json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func NewResponse(mt *meetingtype.MeetingType) MeetingTypeResponse {
	return MeetingTypeResponse{
		ID:                    mt.ID,
		HostID:                mt.HostID,
		Name:                  mt.Name,
		Description:           mt.Description,
		DurationMinutes:       mt.DurationMinutes,
		BufferBeforeMinutes:   mt.BufferBeforeMinutes,
		BufferAfterMinutes:    mt.BufferAfterMinutes,
		MaxBookingsPerDay:     mt.MaxBookingsPerDay,
		RequiredNoticeMinutes: mt.RequiredNoticeMinutes,
		MaxAttendees:          mt.MaxAttendees,
		IsActive:              mt.IsActive,
		CreatedAt:             mt.CreatedAt,
		UpdatedAt:             mt.UpdatedAt,
	}
}

type ListMeetingTypesRequest struct {
	request.ListParams
	HostID   string `form:"host_id" binding:"omitempty,uuid"`
	IsActive *bool  `form:"is_active"`
}

func (r *ListMeetingTypesRequest) Validate() error {
	return nil
}

type CreateRequest struct {
	Name                  string  `json:"name" binding:"required"`
	Description           *string `json:"description"`
	DurationMinutes       int     `json:"duration_minutes" binding:"required,min=1"`
	BufferBeforeMinutes   int     `json:"buffer_before_minutes" binding:"omitempty,min=0"`
	BufferAfterMinutes    int     `json:"buffer_after_minutes" binding:"omitempty,min=0"`
	MaxBookingsPerDay     int     `json:"max_bookings_per_day" binding:"omitempty,min=0"`
	RequiredNoticeMinutes int     `json:"required_notice_minutes" binding:"omitempty,min=0"`
	MaxAttendees          int     `json:"max_attendees" binding:"omitempty,min=0"`
}

func (r *CreateRequest) Validate() error {
	return nil
}

type UpdateRequest struct {
	Name                  *string `json:"name" binding:"omitempty"`
	Description           *string `json:"description"`
	DurationMinutes       *int    `json:"duration_minutes" binding:"omitempty,min=1"`
	BufferBeforeMinutes   *int    `json:"buffer_before_minutes" binding:"omitempty,min=0"`
	BufferAfterMinutes    *int    `json:"buffer_after_minutes" binding:"omitempty,min=0"`
	MaxBookingsPerDay     *int    `json:"max_bookings_per_day" binding:"omitempty,min=0"`
	RequiredNoticeMinutes *int    `json:"required_notice_minutes" binding:"omitempty,min=0"`
	MaxAttendees          *int    `json:"max_attendees" binding:"omitempty,min=0"`
	IsActive              *bool   `json:"is_active"`
}

func (r *UpdateRequest) Validate() error {
	return nil
}
