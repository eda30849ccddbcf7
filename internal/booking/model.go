package booking

import (
	"net/http"
	"time"

	"github.com/lunamochi/meeting-scheduler-backend/internal/pkg/apperror"
	"github.com/lunamochi/meeting-scheduler-backend/internal/scheduling"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict     = apperror.New(http.StatusConflict, "time slot already booked")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrBookingFinalized = apperror.New(http.StatusConflict, "booking is finalized and can no longer be modified")
	ErrInactiveType     = apperror.New(http.StatusConflict, "meeting type is no longer bookable")
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusConfirmed   Status = "confirmed"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
	StatusCompleted   Status = "completed"
	StatusNoShow      Status = "no_show"
)

// activeStatuses are the statuses that occupy the host's calendar.
var activeStatuses = []string{
	string(StatusPending),
	string(StatusConfirmed),
	string(StatusRescheduled),
}

// IsValidStatus reports whether s names a known booking status.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled,
		StatusRescheduled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// IsFinal reports whether the status ends the booking's lifecycle. Finalized
// bookings are immutable.
func (s Status) IsFinal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

// Booking is a scheduled meeting between a client and a host, pinned to an
// absolute UTC interval. Host and meeting type names are joined in on reads.
type Booking struct {
	ID              string
	MeetingTypeID   string
	MeetingTypeName string
	HostID          string
	ClientID        string
	ClientName      *string
	Title           *string
	Notes           *string
	Attendees       []scheduling.Attendee
	StartTime       time.Time
	EndTime         time.Time
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Filter struct {
	HostID        string
	ClientID      string
	MeetingTypeID string
	Status        string
	StartTime     *time.Time // bookings ending after this time
	EndTime       *time.Time // bookings starting before this time
	Page          int
	PageSize      int
}
