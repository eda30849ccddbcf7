package availability

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lunamochi/meeting-scheduler-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "availability rule not found")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidClock     = apperror.New(http.StatusBadRequest, "time must be in HH:mm format")
	ErrInvalidDayOfWeek = apperror.New(http.StatusBadRequest, "day of week must be between 0 (Sunday) and 6 (Saturday)")
	ErrMissingDay       = apperror.New(http.StatusBadRequest, "recurring rules need a day of week, date-specific rules need a date")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrInvalidKind      = apperror.New(http.StatusBadRequest, "invalid rule kind")
)

type Kind string

const (
	KindRecurring    Kind = "recurring"
	KindDateSpecific Kind = "date_specific"
)

// Rule is one host-defined availability window. Recurring rules repeat on a
// weekday; date-specific rules apply to a single calendar date and take
// precedence in user-facing listings. Blocked rules carve time out of
// otherwise available windows.
type Rule struct {
	ID          string
	HostID      string
	Kind        Kind
	DayOfWeek   *int       // 0=Sunday .. 6=Saturday, recurring only
	Date        *time.Time // date-specific only, date component is authoritative
	StartTime   string     // HH:mm, local to the host's timezone
	EndTime     string
	IsBlocked   bool
	BlockReason *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter defines parameters for listing a host's rules.
type Filter struct {
	HostID    string
	Kind      string
	IsBlocked *bool
	Page      int
	PageSize  int
}

// ParseClock parses a zero-padded "HH:mm" string.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return hour, minute, nil
}

// Bounds anchors the rule's local HH:mm range to the given calendar date in
// loc and returns the absolute UTC interval. Only the year, month and day
// of date are used.
func (r *Rule) Bounds(date time.Time, loc *time.Location) (start, end time.Time, err error) {
	sh, sm, err := ParseClock(r.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	eh, em, err := ParseClock(r.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	y, m, d := date.Date()
	start = time.Date(y, m, d, sh, sm, 0, 0, loc).UTC()
	end = time.Date(y, m, d, eh, em, 0, 0, loc).UTC()
	return start, end, nil
}

// AppliesTo reports whether the rule is in effect on the given weekday and
// calendar date.
func (r *Rule) AppliesTo(dayOfWeek time.Weekday, date time.Time) bool {
	switch r.Kind {
	case KindRecurring:
		return r.DayOfWeek != nil && time.Weekday(*r.DayOfWeek) == dayOfWeek
	case KindDateSpecific:
		if r.Date == nil {
			return false
		}
		ry, rm, rd := r.Date.Date()
		y, m, d := date.Date()
		return ry == y && rm == m && rd == d
	}
	return false
}
