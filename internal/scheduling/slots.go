package scheduling

import "time"

// DefaultStep is the candidate-slot step used when callers pass zero.
const DefaultStep = 15 * time.Minute

// GenerateSlots produces fixed-duration candidate intervals starting at
// windowStart and advancing by step, stopping once a slot would end past
// windowEnd. A step smaller than the duration yields overlapping
// candidates. Pure function of its inputs: finite, restartable, no side
// effects.
func GenerateSlots(windowStart, windowEnd time.Time, slotDuration, step time.Duration) []Interval {
	if slotDuration <= 0 {
		return nil
	}
	if step <= 0 {
		step = DefaultStep
	}
	if windowStart.Add(slotDuration).After(windowEnd) {
		return nil
	}

	var slots []Interval
	for t := windowStart; !t.Add(slotDuration).After(windowEnd); t = t.Add(step) {
		slots = append(slots, Interval{Start: t, End: t.Add(slotDuration)})
	}
	return slots
}

// NextStepBoundary rounds t up to the next multiple of step. Used when
// generating slots for the current day so no candidate starts in the past.
func NextStepBoundary(t time.Time, step time.Duration) time.Time {
	if step <= 0 {
		step = DefaultStep
	}
	rounded := t.Truncate(step)
	if rounded.Before(t) {
		rounded = rounded.Add(step)
	}
	return rounded
}
