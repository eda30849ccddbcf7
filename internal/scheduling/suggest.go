package scheduling

import (
	"context"
	"sort"
	"strings"
	"time"
)

// Per-day suggestion caps: the requested day gets more candidates than the
// following days so same-day alternatives are preferred.
const (
	sameDaySuggestionCap  = 3
	laterDaySuggestionCap = 2
	suggestionSearchDays  = 7
)

// SuggestAlternatives searches forward in time for bookable slots matching
// the originally requested duration: the same calendar day first, then each
// of the next seven days, with an explicit day cursor (no recursion).
// Results are scored by a confidence heuristic and returned in descending
// confidence order.
func (e *Engine) SuggestAlternatives(ctx context.Context, hostID string, originalStart, originalEnd time.Time, ianaZone string, maxSuggestions int) ([]CandidateSlot, error) {
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}
	duration := originalEnd.Sub(originalStart)
	if duration <= 0 {
		return nil, ErrInvalidTimeRange
	}
	loc, err := LoadZone(ianaZone)
	if err != nil {
		return nil, err
	}

	now := e.now()
	firstDay := originalStart.In(loc)

	var candidates []CandidateSlot
	for offset := 0; offset <= suggestionSearchDays && len(candidates) < maxSuggestions; offset++ {
		date := firstDay.AddDate(0, 0, offset)

		dayCap := laterDaySuggestionCap
		if offset == 0 {
			dayCap = sameDaySuggestionCap
		}

		windows, err := e.ResolveWindows(ctx, hostID, date, ianaZone)
		if err != nil {
			return nil, err
		}
		if len(windows.Available) == 0 {
			continue
		}

		dayStart, dayEnd := dayBoundsInZone(date, loc)
		busy, err := e.bookings.ListBusy(ctx, hostID, dayStart, dayEnd, "")
		if err != nil {
			return nil, dependencyErr("bookings", err)
		}

		taken := 0
		for _, w := range windows.Available {
			if taken >= dayCap {
				break
			}
			windowStart := w.Start
			if boundary := NextStepBoundary(now, DefaultStep); windowStart.Before(boundary) {
				windowStart = boundary
			}
			for _, slot := range GenerateSlots(windowStart, w.End, duration, DefaultStep) {
				if taken >= dayCap {
					break
				}
				if overlapsBusy(slot, busy) || overlapsWindows(slot, windows.Blocked) {
					continue
				}
				// Skip the slot the caller already tried.
				if slot.Start.Equal(originalStart) {
					continue
				}
				label, _ := FormatInZone(slot.Start, ianaZone, false)
				confidence, reason := scoreSlot(slot.Start, slot.End, loc, now)
				candidates = append(candidates, CandidateSlot{
					Start:      slot.Start,
					End:        slot.End,
					Label:      label,
					Confidence: confidence,
					Reason:     reason,
				})
				taken++
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}
	return candidates, nil
}

func overlapsBusy(slot Interval, busy []BusyInterval) bool {
	for _, b := range busy {
		if IntervalsOverlap(slot.Start, slot.End, b.Start, b.End, 0) {
			return true
		}
	}
	return false
}

func overlapsWindows(slot Interval, windows []Window) bool {
	for _, w := range windows {
		if IntervalsOverlap(slot.Start, slot.End, w.Start, w.End, 0) {
			return true
		}
	}
	return false
}

// scoreSlot computes the confidence heuristic for a candidate: base 0.5,
// bonuses for business hours and weekdays, penalties for short notice and
// far-future slots, clamped to [0, 1].
func scoreSlot(start, end time.Time, loc *time.Location, now time.Time) (float64, string) {
	score := 0.5
	var reasons []string

	switch {
	case slotWithinLocalHours(start, end, loc, 9, 17):
		score += 0.3
		reasons = append(reasons, "within core business hours")
	case slotWithinLocalHours(start, end, loc, 8, 18):
		score += 0.2
		reasons = append(reasons, "within extended business hours")
	case slotWithinLocalHours(start, end, loc, 7, 19):
		score += 0.1
		reasons = append(reasons, "at the edge of business hours")
	}

	day := start.In(loc).Weekday()
	if day >= time.Monday && day <= time.Friday {
		score += 0.2
		reasons = append(reasons, "on a weekday")
	}
	if day >= time.Tuesday && day <= time.Thursday {
		score += 0.1
	}

	until := start.Sub(now)
	switch {
	case until <= 2*time.Hour:
		score -= 0.3
		reasons = append(reasons, "very short notice")
	case until <= 24*time.Hour:
		score -= 0.1
		reasons = append(reasons, "less than a day away")
	}
	if until > 7*24*time.Hour {
		score -= 0.1
		reasons = append(reasons, "more than a week out")
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "next open slot")
	}
	return score, strings.Join(reasons, ", ")
}

// slotWithinLocalHours reports whether [start, end) falls entirely between
// fromHour and toHour on the slot's local day.
func slotWithinLocalHours(start, end time.Time, loc *time.Location, fromHour, toHour int) bool {
	ls := start.In(loc)
	le := end.In(loc)
	if ls.YearDay() != le.YearDay() && !(le.Hour() == 0 && le.Minute() == 0) {
		return false
	}
	startMinutes := ls.Hour()*60 + ls.Minute()
	endMinutes := le.Hour()*60 + le.Minute()
	if endMinutes == 0 {
		endMinutes = 24 * 60
	}
	return startMinutes >= fromHour*60 && endMinutes <= toHour*60
}
