package scheduling

import (
	"net/http"
	"time"

	"github.com/lunamochi/meeting-scheduler-backend/internal/availability"
	"github.com/lunamochi/meeting-scheduler-backend/internal/pkg/apperror"
)

var (
	ErrInvalidTimezone   = apperror.New(http.StatusBadRequest, "unknown IANA timezone")
	ErrInvalidTimeFormat = apperror.New(http.StatusBadRequest, "invalid date-time, expected yyyy-MM-dd HH:mm[:ss]")
	ErrInvalidDuration   = apperror.New(http.StatusBadRequest, "duration must be positive")
	ErrInvalidTimeRange  = apperror.New(http.StatusBadRequest, "start time must be before end time")

	// ErrDependencyUnavailable wraps failures from the injected stores.
	// The engine never retries; callers decide whether to retry or fail.
	ErrDependencyUnavailable = apperror.New(http.StatusServiceUnavailable, "scheduling data source unavailable")
)

// Interval is a half-open UTC time range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Window is an availability or blocked interval resolved from a rule,
// keeping the originating rule's local bounds for user-facing messages.
type Window struct {
	Interval
	RuleID     string            `json:"rule_id"`
	Kind       availability.Kind `json:"kind"`
	LocalStart string            `json:"local_start"` // HH:mm as configured by the host
	LocalEnd   string            `json:"local_end"`
	Reason     string            `json:"reason,omitempty"` // block reason, blocked windows only
}

// DayWindows is the result of resolving a host's rules for one calendar date.
// Available and Blocked are kept separate (not subtracted) so conflict
// detection can report which rule caused a rejection.
type DayWindows struct {
	Date      time.Time `json:"date"` // midnight of the date in Zone
	Zone      string    `json:"zone"`
	Available []Window  `json:"available"`
	Blocked   []Window  `json:"blocked"`

	// ConfiguredAnywhere is true if the host has at least one available rule
	// on any day. Distinguishes "never set up availability" from "not
	// available on this particular day".
	ConfiguredAnywhere bool `json:"configured_anywhere"`
}

type ConflictType string

const (
	ConflictBooking      ConflictType = "booking"
	ConflictAvailability ConflictType = "availability"
	ConflictBlockedTime  ConflictType = "blocked_time"
)

// Availability conflict reason codes.
const (
	ReasonNoAvailabilityConfigured = "NO_AVAILABILITY_CONFIGURED"
	ReasonNoAvailabilityForDay     = "NO_AVAILABILITY_FOR_DAY"
	ReasonOutsideAvailabilityHours = "OUTSIDE_AVAILABILITY_HOURS"
)

// Conflict is one typed reason a requested interval cannot be booked.
type Conflict struct {
	Type    ConflictType `json:"type"`
	Start   time.Time    `json:"start"`
	End     time.Time    `json:"end"`
	Message string       `json:"message"`

	// Booking conflicts.
	BookingID     string `json:"booking_id,omitempty"`
	BookingTitle  string `json:"booking_title,omitempty"`
	BookingStatus string `json:"booking_status,omitempty"`

	// Availability conflicts: a reason code; blocked-time conflicts: the
	// host's block reason.
	Reason string `json:"reason,omitempty"`

	// For OUTSIDE_AVAILABILITY_HOURS, the windows that do exist on the day
	// so the caller can render "available 09:00-12:00 but not 14:00".
	Windows []Window `json:"windows,omitempty"`
}

// ConflictResult aggregates every conflict found for a requested interval.
// Checks accumulate rather than short-circuit so the caller sees all
// reasons at once.
type ConflictResult struct {
	HasConflicts bool            `json:"has_conflicts"`
	Conflicts    []Conflict      `json:"conflicts"`
	Suggestions  []CandidateSlot `json:"suggestions,omitempty"`
}

// CandidateSlot is an ephemeral proposed time slot. Confidence and Reason
// are only set on suggestion results.
type CandidateSlot struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence,omitempty"`
	Reason     string    `json:"reason,omitempty"`
}

// BusyInterval is the engine's view of an existing active booking.
type BusyInterval struct {
	BookingID string
	Title     string
	Status    string
	Start     time.Time
	End       time.Time
}

// MeetingRules are the per-meeting-type business rules the validator
// enforces. Zero values mean "no limit".
type MeetingRules struct {
	DurationMinutes       int
	BufferBeforeMinutes   int
	BufferAfterMinutes    int
	MaxBookingsPerDay     int
	RequiredNoticeMinutes int
	MaxAttendees          int
}

// Attendee is a participant on a booking request.
type Attendee struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ValidationIssue is a single validation error or warning.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Validation issue codes.
const (
	IssuePastStart          = "PAST_START"
	IssueInvalidEmail       = "INVALID_ATTENDEE_EMAIL"
	IssueInvalidName        = "INVALID_ATTENDEE_NAME"
	IssueDuplicateAttendee  = "DUPLICATE_ATTENDEE"
	IssueTooManyAttendees   = "TOO_MANY_ATTENDEES"
	IssueInsufficientNotice = "INSUFFICIENT_NOTICE"
	IssueDailyLimitReached  = "DAILY_LIMIT_REACHED"
	IssueBufferConflict     = "BUFFER_CONFLICT"
	IssueScheduleConflict   = "SCHEDULE_CONFLICT"
)

// SuggestedChange records a silent correction the validator applied to the
// request (currently only duration snapping).
type SuggestedChange struct {
	Field   string    `json:"field"`
	Message string    `json:"message"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
}

// ValidationRequest is the input to Engine.ValidateBookingRequest.
// Start and End accept either RFC 3339 strings or zone-less local
// "yyyy-MM-dd HH:mm[:ss]" strings, which are interpreted in the host's
// stored timezone.
type ValidationRequest struct {
	HostID           string
	Rules            MeetingRules
	Start            string
	End              string
	Attendees        []Attendee
	ExcludeBookingID string
}

// ValidationResult aggregates all findings. Warnings never block booking
// creation; errors always do.
type ValidationResult struct {
	IsValid          bool              `json:"is_valid"`
	Errors           []ValidationIssue `json:"errors"`
	Warnings         []ValidationIssue `json:"warnings"`
	Start            time.Time         `json:"start"` // normalized UTC
	End              time.Time         `json:"end"`
	SuggestedChanges []SuggestedChange `json:"suggested_changes,omitempty"`
	Conflicts        *ConflictResult   `json:"conflicts,omitempty"`
}

// SlotView is one candidate slot in a day listing, available or not.
type SlotView struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Label     string    `json:"label"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"` // BOOKED or BLOCKED when unavailable
}

// Unavailable slot reasons.
const (
	SlotReasonBooked  = "BOOKED"
	SlotReasonBlocked = "BLOCKED"
)

// SlotListing is the result of Engine.GetAvailableSlots.
type SlotListing struct {
	Date             string          `json:"date"`
	Zone             string          `json:"zone"`
	AvailableSlots   []SlotView      `json:"available_slots"`
	UnavailableSlots []SlotView      `json:"unavailable_slots"`
	Suggestions      []CandidateSlot `json:"suggestions,omitempty"`
}
