package http

import (
	"time"

	"github.com/lunamochi/meeting-scheduler-backend/internal/booking"
	"github.com/lunamochi/meeting-scheduler-backend/internal/pkg/request"
	"github.com/lunamochi/meeting-scheduler-backend/internal/scheduling"
)

type BookingResponse struct {
	ID              string                `json:"id"`
	MeetingTypeID   string                `json:"meeting_type_id"`
	MeetingTypeName string                `json:"meeting_type_name,omitempty"`
	HostID          string                `json:"host_id"`
	ClientID        string                `json:"client_id"`
	ClientName      *string               `json:"client_name,omitempty"`
	Title           *string               `json:"title,omitempty"`
	Notes           *string               `json:"notes,omitempty"`
	Attendees       []scheduling.Attendee `json:"attendees"`
	StartTime       time.Time             `json:"start_time"`
	EndTime         time.Time             `json:"end_time"`
	Status          string                `json:"status"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func NewResponse(b *booking.Booking) BookingResponse {
	attendees := b.Attendees
	if attendees == nil {
		attendees = []scheduling.Attendee{}
	}

	return BookingResponse{
		ID:              b.ID,
		MeetingTypeID:   b.MeetingTypeID,
		MeetingTypeName: b.MeetingTypeName,
		HostID:          b.HostID,
		ClientID:        b.ClientID,
		ClientName:      b.ClientName,
		Title:           b.Title,
		Notes:           b.Notes,
		Attendees:       attendees,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Status:          string(b.Status),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// CreatedResponse pairs the new booking with the validation outcome so
// clients see warnings (buffer crowding, duplicate attendees) even on
// success.
type CreatedResponse struct {
	Booking  BookingResponse              `json:"booking"`
	Warnings []scheduling.ValidationIssue `json:"warnings"`
}

type ListBookingsRequest struct {
	request.ListParams
	Role          string `form:"role" binding:"omitempty,oneof=host client"`
	MeetingTypeID string `form:"meeting_type_id" binding:"omitempty,uuid"`
	Status        string `form:"status" binding:"omitempty,oneof=pending confirmed cancelled rescheduled completed no_show"`
	From          string `form:"from" binding:"omitempty"`
	To            string `form:"to" binding:"omitempty"`
}

func (r *ListBookingsRequest) Validate() error {
	return nil
}

type CreateBookingRequest struct {
	MeetingTypeID string                `json:"meeting_type_id" binding:"required,uuid"`
	Title         *string               `json:"title"`
	Notes         *string               `json:"notes"`
	Start         string                `json:"start" binding:"required"`
	End           string                `json:"end" binding:"required"`
	Attendees     []scheduling.Attendee `json:"attendees"`
}

func (r *CreateBookingRequest) Validate() error {
	return nil
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled rescheduled completed no_show"`
}

func (r *UpdateStatusRequest) Validate() error {
	return nil
}

type RescheduleRequest struct {
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

func (r *RescheduleRequest) Validate() error {
	return nil
}
