package meetingtype

import (
	"net/http"
	"time"

	"github.com/lunamochi/meeting-scheduler-backend/internal/pkg/apperror"
	"github.com/lunamochi/meeting-scheduler-backend/internal/scheduling"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "meeting type not found")
	ErrEmptyName        = apperror.New(http.StatusBadRequest, "name cannot be empty")
	ErrInvalidDuration  = apperror.New(http.StatusBadRequest, "duration must be a positive number of minutes")
	ErrInvalidBuffer    = apperror.New(http.StatusBadRequest, "buffers must be zero or more minutes")
	ErrInvalidLimit     = apperror.New(http.StatusBadRequest, "limits must be zero or more")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "meeting type belongs to another host")
	ErrInactiveType     = apperror.New(http.StatusConflict, "meeting type is inactive")
)

// MeetingType is a bookable offering published by a host (e.g. "30-minute
// intro call"). Its rule fields drive booking validation: buffers pad the
// meeting on both sides, notice is the minimum lead time and the two caps
// bound attendees per booking and bookings per day. Zero means "no limit".
type MeetingType struct {
	ID                    string
	HostID                string
	Name                  string
	Description           *string
	DurationMinutes       int
	BufferBeforeMinutes   int
	BufferAfterMinutes    int
	MaxBookingsPerDay     int
	RequiredNoticeMinutes int
	MaxAttendees          int
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Rules projects the meeting type onto the validation rule set the
// scheduling engine consumes.
func (mt *MeetingType) Rules() scheduling.MeetingRules {
	return scheduling.MeetingRules{
		DurationMinutes:       mt.DurationMinutes,
		BufferBeforeMinutes:   mt.BufferBeforeMinutes,
		BufferAfterMinutes:    mt.BufferAfterMinutes,
		MaxBookingsPerDay:     mt.MaxBookingsPerDay,
		RequiredNoticeMinutes: mt.RequiredNoticeMinutes,
		MaxAttendees:          mt.MaxAttendees,
	}
}

// Filter defines parameters for listing meeting types.
type Filter struct {
	HostID   string
	IsActive *bool
	Page     int
	PageSize int
}
