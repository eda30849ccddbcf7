package scheduling

import (
	"context"
	"time"
)

// ResolveWindows computes a host's effective availability for one calendar
// date. Recurring rules matching the date's weekday and date-specific rules
// matching the date itself are both converted to absolute UTC intervals
// anchored to the date in ianaZone. Blocked windows are returned alongside
// the available ones rather than subtracted, so conflict messages can name
// the rule that caused a rejection.
func (e *Engine) ResolveWindows(ctx context.Context, hostID string, date time.Time, ianaZone string) (*DayWindows, error) {
	loc, err := LoadZone(ianaZone)
	if err != nil {
		return nil, err
	}

	y, m, d := date.Date()
	localMidnight := time.Date(y, m, d, 0, 0, 0, 0, loc)
	dayOfWeek := localMidnight.Weekday()

	rules, err := e.rules.ListForDay(ctx, hostID, dayOfWeek, date)
	if err != nil {
		return nil, dependencyErr("availability rules", err)
	}

	configured, err := e.rules.HasAnyAvailable(ctx, hostID)
	if err != nil {
		return nil, dependencyErr("availability rules", err)
	}

	windows := &DayWindows{
		Date:               localMidnight,
		Zone:               ianaZone,
		ConfiguredAnywhere: configured,
	}

	for _, rule := range rules {
		if !rule.AppliesTo(dayOfWeek, date) {
			continue
		}
		start, end, err := rule.Bounds(date, loc)
		if err != nil {
			return nil, err
		}
		if !end.After(start) {
			// Malformed rule; the CRUD layer rejects these, skip just in case.
			continue
		}
		w := Window{
			Interval:   Interval{Start: start, End: end},
			RuleID:     rule.ID,
			Kind:       rule.Kind,
			LocalStart: rule.StartTime,
			LocalEnd:   rule.EndTime,
		}
		if rule.IsBlocked {
			if rule.BlockReason != nil {
				w.Reason = *rule.BlockReason
			}
			windows.Blocked = append(windows.Blocked, w)
		} else {
			windows.Available = append(windows.Available, w)
		}
	}

	return windows, nil
}
