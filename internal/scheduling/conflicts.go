package scheduling

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultMaxSuggestions caps alternative slots attached to conflict results.
const DefaultMaxSuggestions = 5

// CheckConflicts evaluates a candidate interval against existing bookings,
// resolved availability and blocked time. Every check runs and its findings
// accumulate; nothing short-circuits, so the caller sees all reasons at
// once. When any conflict is found, alternative slots are attached.
func (e *Engine) CheckConflicts(ctx context.Context, hostID string, startUTC, endUTC time.Time, excludeBookingID string) (*ConflictResult, error) {
	if !endUTC.After(startUTC) {
		return nil, ErrInvalidTimeRange
	}

	zone, err := e.hostZone(ctx, hostID)
	if err != nil {
		return nil, err
	}
	loc, err := LoadZone(zone)
	if err != nil {
		return nil, err
	}

	result := &ConflictResult{}

	// 1. Overlaps with active (pending or confirmed) bookings.
	busy, err := e.bookings.ListBusy(ctx, hostID, startUTC, endUTC, excludeBookingID)
	if err != nil {
		return nil, dependencyErr("bookings", err)
	}
	for _, b := range busy {
		if !IntervalsOverlap(startUTC, endUTC, b.Start, b.End, 0) {
			continue
		}
		from, _ := FormatInZone(b.Start, zone, false)
		to, _ := FormatInZone(b.End, zone, false)
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:          ConflictBooking,
			Start:         b.Start,
			End:           b.End,
			BookingID:     b.BookingID,
			BookingTitle:  b.Title,
			BookingStatus: b.Status,
			Message:       fmt.Sprintf("overlaps existing booking from %s to %s", from, to),
		})
	}

	// 2. Availability coverage for the local calendar date of the start.
	localStart := startUTC.In(loc)
	windows, err := e.ResolveWindows(ctx, hostID, localStart, zone)
	if err != nil {
		return nil, err
	}

	if len(windows.Available) == 0 {
		reason := ReasonNoAvailabilityForDay
		message := fmt.Sprintf("no availability on %s", localStart.Weekday())
		if !windows.ConfiguredAnywhere {
			reason = ReasonNoAvailabilityConfigured
			message = "host has not configured any availability"
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:    ConflictAvailability,
			Start:   startUTC,
			End:     endUTC,
			Reason:  reason,
			Message: message,
		})
	} else if !coveredByAny(windows.Available, startUTC, endUTC) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:    ConflictAvailability,
			Start:   startUTC,
			End:     endUTC,
			Reason:  ReasonOutsideAvailabilityHours,
			Message: fmt.Sprintf("requested time is outside availability hours (available %s)", describeWindows(windows.Available)),
			Windows: windows.Available,
		})
	}

	// 3. Blocked windows intersecting the request.
	for _, w := range windows.Blocked {
		if !IntervalsOverlap(startUTC, endUTC, w.Start, w.End, 0) {
			continue
		}
		message := fmt.Sprintf("time is blocked between %s and %s", w.LocalStart, w.LocalEnd)
		if w.Reason != "" {
			message += ": " + w.Reason
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:    ConflictBlockedTime,
			Start:   w.Start,
			End:     w.End,
			Reason:  w.Reason,
			Message: message,
		})
	}

	result.HasConflicts = len(result.Conflicts) > 0

	if result.HasConflicts {
		suggestions, err := e.SuggestAlternatives(ctx, hostID, startUTC, endUTC, zone, DefaultMaxSuggestions)
		if err != nil {
			return nil, err
		}
		result.Suggestions = suggestions
	}

	return result, nil
}

// coveredByAny reports whether a single available window fully contains
// [start, end).
func coveredByAny(windows []Window, start, end time.Time) bool {
	for _, w := range windows {
		if !start.Before(w.Start) && !end.After(w.End) {
			return true
		}
	}
	return false
}

// describeWindows renders the hosts' local window bounds for messages,
// e.g. "09:00-12:00, 14:00-17:00".
func describeWindows(windows []Window) string {
	parts := make([]string, len(windows))
	for i, w := range windows {
		parts[i] = w.LocalStart + "-" + w.LocalEnd
	}
	return strings.Join(parts, ", ")
}
