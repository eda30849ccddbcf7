package scheduling

import (
	"context"
	"time"
)

// GetAvailableSlots produces the bookable and non-bookable candidate slots
// for a host on one calendar date. Unavailable slots are returned too,
// tagged with why, so a booking UI can grey them out instead of hiding
// them. When the day has nothing free, alternatives from following days are
// attached.
func (e *Engine) GetAvailableSlots(ctx context.Context, hostID string, date time.Time, durationMinutes int, displayZone string) (*SlotListing, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	duration := time.Duration(durationMinutes) * time.Minute

	zone, err := e.hostZone(ctx, hostID)
	if err != nil {
		return nil, err
	}
	loc, err := LoadZone(zone)
	if err != nil {
		return nil, err
	}
	if displayZone == "" {
		displayZone = zone
	}
	displayLoc, err := LoadZone(displayZone)
	if err != nil {
		return nil, err
	}

	windows, err := e.ResolveWindows(ctx, hostID, date, zone)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := dayBoundsInZone(date, loc)
	busy, err := e.bookings.ListBusy(ctx, hostID, dayStart, dayEnd, "")
	if err != nil {
		return nil, dependencyErr("bookings", err)
	}

	listing := &SlotListing{
		Date:             date.Format("2006-01-02"),
		Zone:             displayZone,
		AvailableSlots:   []SlotView{},
		UnavailableSlots: []SlotView{},
	}

	boundary := NextStepBoundary(e.now(), DefaultStep)
	for _, w := range windows.Available {
		windowStart := w.Start
		if windowStart.Before(boundary) {
			windowStart = boundary
		}
		for _, slot := range GenerateSlots(windowStart, w.End, duration, DefaultStep) {
			view := SlotView{
				Start: slot.Start,
				End:   slot.End,
				Label: slotLabel(slot, displayLoc),
			}
			switch {
			case overlapsBusy(slot, busy):
				view.Reason = SlotReasonBooked
				listing.UnavailableSlots = append(listing.UnavailableSlots, view)
			case overlapsWindows(slot, windows.Blocked):
				view.Reason = SlotReasonBlocked
				listing.UnavailableSlots = append(listing.UnavailableSlots, view)
			default:
				view.Available = true
				listing.AvailableSlots = append(listing.AvailableSlots, view)
			}
		}
	}

	if len(listing.AvailableSlots) == 0 {
		// Anchor the search at a mid-morning slot on the requested date.
		y, m, d := date.Date()
		anchor := time.Date(y, m, d, 9, 0, 0, 0, loc).UTC()
		suggestions, err := e.SuggestAlternatives(ctx, hostID, anchor, anchor.Add(duration), zone, DefaultMaxSuggestions)
		if err != nil {
			return nil, err
		}
		listing.Suggestions = suggestions
	}

	return listing, nil
}

// slotLabel renders "2026-02-09 10:00 - 10:30" in the display zone.
func slotLabel(slot Interval, loc *time.Location) string {
	return slot.Start.In(loc).Format("2006-01-02 15:04") + " - " + slot.End.In(loc).Format("15:04")
}
