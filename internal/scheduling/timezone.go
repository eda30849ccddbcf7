package scheduling

import (
	"fmt"
	"time"
)

// Wall-clock layouts accepted by ParseLocalTime. Seconds are optional; the
// "T" separator is tolerated because several clients send it.
var localLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// LoadZone resolves an IANA zone name, mapping unknown names to
// ErrInvalidTimezone.
func LoadZone(ianaZone string) (*time.Location, error) {
	if ianaZone == "" {
		return nil, fmt.Errorf("%w: empty zone name", ErrInvalidTimezone)
	}
	loc, err := time.LoadLocation(ianaZone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, ianaZone)
	}
	return loc, nil
}

// ParseLocalTime interprets a zone-less wall-clock string as local time in
// the given IANA zone and returns the absolute UTC instant.
//
// During a DST spring-forward gap the Go runtime resolves the nonexistent
// wall time to a valid instant, so the result is always forward
// round-trippable.
func ParseLocalTime(localDateTime, ianaZone string) (time.Time, error) {
	loc, err := LoadZone(ianaZone)
	if err != nil {
		return time.Time{}, err
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, localDateTime, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, localDateTime)
}

// FormatInZone renders a UTC instant as a zero-padded local wall-clock
// string ("yyyy-MM-dd HH:mm" or with ":ss") in the given zone.
func FormatInZone(t time.Time, ianaZone string, includeSeconds bool) (string, error) {
	loc, err := LoadZone(ianaZone)
	if err != nil {
		return "", err
	}
	layout := "2006-01-02 15:04"
	if includeSeconds {
		layout = "2006-01-02 15:04:05"
	}
	return t.In(loc).Format(layout), nil
}

// ZoneOffsetMinutes returns the zone's signed UTC offset in minutes at the
// given instant. The offset is evaluated at the instant itself, never from
// a fixed rule, so DST transitions are handled correctly.
func ZoneOffsetMinutes(ianaZone string, at time.Time) (int, error) {
	loc, err := LoadZone(ianaZone)
	if err != nil {
		return 0, err
	}
	_, offsetSeconds := at.In(loc).Zone()
	return offsetSeconds / 60, nil
}

// IntervalsOverlap reports whether [startA-buffer, endA+buffer) intersects
// [startB, endB). Half-open semantics: touching endpoints do not overlap at
// zero buffer. With a buffer the comparison turns inclusive, so intervals
// separated by a gap no larger than the buffer do overlap.
func IntervalsOverlap(startA, endA, startB, endB time.Time, buffer time.Duration) bool {
	a0 := startA.Add(-buffer)
	a1 := endA.Add(buffer)
	if buffer > 0 {
		return !a0.After(endB) && !startB.After(a1)
	}
	return a0.Before(endB) && startB.Before(a1)
}

// dayBoundsInZone returns the UTC instants of local midnight on the given
// calendar date and on the following day. Only the year, month and day
// components of date are used; its own location is ignored.
func dayBoundsInZone(date time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := date.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}
