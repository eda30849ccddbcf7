package scheduling

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Duration differences within this tolerance absorb client-side rounding
// and are not corrected.
const durationTolerance = time.Minute

// Simple local@domain.tld check; full RFC 5322 validation is not the goal.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateBookingRequest runs every business-rule check against a booking
// request and aggregates the findings. Only unparsable input (bad zone, bad
// date-time, inverted range) fails fast with an error; everything else is
// reported through the result so the caller can show all problems at once.
func (e *Engine) ValidateBookingRequest(ctx context.Context, req ValidationRequest) (*ValidationResult, error) {
	zone, err := e.hostZone(ctx, req.HostID)
	if err != nil {
		return nil, err
	}
	loc, err := LoadZone(zone)
	if err != nil {
		return nil, err
	}

	// 1. Normalize: zone-less strings are read in the host's timezone,
	// everything else as already zoned.
	start, err := parseFlexible(req.Start, zone)
	if err != nil {
		return nil, err
	}
	end, err := parseFlexible(req.End, zone)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, ErrInvalidTimeRange
	}

	result := &ValidationResult{
		Errors:   []ValidationIssue{},
		Warnings: []ValidationIssue{},
	}

	// 2. Duration correction: silently snap the end to the meeting type's
	// duration when the request is off by more than the tolerance.
	if req.Rules.DurationMinutes > 0 {
		expected := time.Duration(req.Rules.DurationMinutes) * time.Minute
		drift := end.Sub(start) - expected
		if drift < 0 {
			drift = -drift
		}
		if drift > durationTolerance {
			end = start.Add(expected)
			result.SuggestedChanges = append(result.SuggestedChanges, SuggestedChange{
				Field:   "end",
				Message: fmt.Sprintf("end time adjusted to match the %d-minute meeting duration", req.Rules.DurationMinutes),
				Start:   start,
				End:     end,
			})
		}
	}

	now := e.now()

	// 3. Past-date rejection.
	if start.Before(now) {
		result.Errors = append(result.Errors, ValidationIssue{
			Code:    IssuePastStart,
			Message: "cannot book a time in the past",
		})
	}

	// 4. Attendee validation. Duplicate emails only warn.
	seen := make(map[string]bool)
	for _, a := range req.Attendees {
		if len(strings.TrimSpace(a.Name)) < 2 {
			result.Errors = append(result.Errors, ValidationIssue{
				Code:    IssueInvalidName,
				Message: fmt.Sprintf("attendee name %q must be at least 2 characters", a.Name),
			})
		}
		if !emailPattern.MatchString(a.Email) {
			result.Errors = append(result.Errors, ValidationIssue{
				Code:    IssueInvalidEmail,
				Message: fmt.Sprintf("attendee email %q is not valid", a.Email),
			})
			continue
		}
		key := strings.ToLower(a.Email)
		if seen[key] {
			result.Warnings = append(result.Warnings, ValidationIssue{
				Code:    IssueDuplicateAttendee,
				Message: fmt.Sprintf("attendee email %q appears more than once", a.Email),
			})
		}
		seen[key] = true
	}
	if req.Rules.MaxAttendees > 0 && len(req.Attendees) > req.Rules.MaxAttendees {
		result.Errors = append(result.Errors, ValidationIssue{
			Code:    IssueTooManyAttendees,
			Message: fmt.Sprintf("at most %d attendees are allowed", req.Rules.MaxAttendees),
		})
	}

	// 5. Advance notice, phrased in hours (rounded up).
	if req.Rules.RequiredNoticeMinutes > 0 {
		notice := time.Duration(req.Rules.RequiredNoticeMinutes) * time.Minute
		if start.Sub(now) < notice {
			hours := (req.Rules.RequiredNoticeMinutes + 59) / 60
			result.Errors = append(result.Errors, ValidationIssue{
				Code:    IssueInsufficientNotice,
				Message: fmt.Sprintf("this meeting type requires at least %d hours advance notice", hours),
			})
		}
	}

	// 6. Daily cap, counted on the host-local calendar date of the start.
	if req.Rules.MaxBookingsPerDay > 0 {
		dayStart, dayEnd := dayBoundsInZone(start.In(loc), loc)
		count, err := e.bookings.CountActiveInRange(ctx, req.HostID, dayStart, dayEnd, req.ExcludeBookingID)
		if err != nil {
			return nil, dependencyErr("bookings", err)
		}
		if count >= req.Rules.MaxBookingsPerDay {
			result.Errors = append(result.Errors, ValidationIssue{
				Code:    IssueDailyLimitReached,
				Message: fmt.Sprintf("the host already has %d bookings on this day (limit %d)", count, req.Rules.MaxBookingsPerDay),
			})
		}
	}

	// 7. Buffer-time check. Buffer violations are advisory, never hard
	// errors: the meeting itself fits, it just crowds a neighbor.
	before := time.Duration(req.Rules.BufferBeforeMinutes) * time.Minute
	after := time.Duration(req.Rules.BufferAfterMinutes) * time.Minute
	if before > 0 || after > 0 {
		busy, err := e.bookings.ListBusy(ctx, req.HostID, start.Add(-before), end.Add(after), req.ExcludeBookingID)
		if err != nil {
			return nil, dependencyErr("bookings", err)
		}
		for _, b := range busy {
			// Only flag neighbors inside the buffer zone, not full overlaps;
			// those surface as hard conflicts below.
			if IntervalsOverlap(start, end, b.Start, b.End, 0) {
				continue
			}
			if start.Add(-before).Before(b.End) && b.Start.Before(end.Add(after)) {
				result.Warnings = append(result.Warnings, ValidationIssue{
					Code:    IssueBufferConflict,
					Message: fmt.Sprintf("booking is within the buffer time of an adjacent booking (%d min before / %d min after)", req.Rules.BufferBeforeMinutes, req.Rules.BufferAfterMinutes),
				})
			}
		}
	}

	// 8. Structured conflict detection; any hit is a hard error.
	conflicts, err := e.CheckConflicts(ctx, req.HostID, start, end, req.ExcludeBookingID)
	if err != nil {
		return nil, err
	}
	if conflicts.HasConflicts {
		result.Conflicts = conflicts
		for _, c := range conflicts.Conflicts {
			result.Errors = append(result.Errors, ValidationIssue{
				Code:    IssueScheduleConflict,
				Message: c.Message,
			})
		}
	}

	result.Start = start
	result.End = end
	result.IsValid = len(result.Errors) == 0
	return result, nil
}

// parseFlexible accepts RFC 3339 strings as-is and zone-less local strings
// in the given IANA zone.
func parseFlexible(value, ianaZone string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return ParseLocalTime(value, ianaZone)
}
