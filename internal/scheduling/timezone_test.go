package scheduling

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		zone    string
		want    time.Time
		wantErr error
	}{
		{
			name:  "UTC with seconds",
			input: "2026-02-09 10:30:00",
			zone:  "UTC",
			want:  time.Date(2026, 2, 9, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "UTC without seconds",
			input: "2026-02-09 10:30",
			zone:  "UTC",
			want:  time.Date(2026, 2, 9, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "New York standard time",
			input: "2026-02-09 10:00",
			zone:  "America/New_York",
			want:  time.Date(2026, 2, 9, 15, 0, 0, 0, time.UTC), // EST = UTC-5
		},
		{
			name:  "New York daylight time",
			input: "2026-07-06 10:00",
			zone:  "America/New_York",
			want:  time.Date(2026, 7, 6, 14, 0, 0, 0, time.UTC), // EDT = UTC-4
		},
		{
			name:  "T separator accepted",
			input: "2026-02-09T10:30",
			zone:  "UTC",
			want:  time.Date(2026, 2, 9, 10, 30, 0, 0, time.UTC),
		},
		{
			name:    "unknown zone",
			input:   "2026-02-09 10:00",
			zone:    "Mars/Olympus_Mons",
			wantErr: ErrInvalidTimezone,
		},
		{
			name:    "garbage input",
			input:   "next tuesday at noon",
			zone:    "UTC",
			wantErr: ErrInvalidTimeFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocalTime(tt.input, tt.zone)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "expected %v, got %v", tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "expected %v, got %v", tt.want, got)
		})
	}
}

func TestFormatInZoneRoundTrip(t *testing.T) {
	zones := []string{"UTC", "America/New_York", "Europe/Berlin", "Asia/Tokyo", "Pacific/Auckland"}
	instants := []time.Time{
		time.Date(2026, 2, 9, 15, 4, 5, 0, time.UTC),
		time.Date(2026, 6, 30, 23, 59, 59, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	for _, zone := range zones {
		for _, instant := range instants {
			formatted, err := FormatInZone(instant, zone, true)
			require.NoError(t, err)

			back, err := ParseLocalTime(formatted, zone)
			require.NoError(t, err)
			assert.True(t, back.Equal(instant), "round trip in %s: %v -> %s -> %v", zone, instant, formatted, back)
		}
	}
}

func TestFormatInZoneTruncatesSeconds(t *testing.T) {
	instant := time.Date(2026, 2, 9, 15, 4, 5, 0, time.UTC)

	got, err := FormatInZone(instant, "UTC", false)
	require.NoError(t, err)
	assert.Equal(t, "2026-02-09 15:04", got)

	// Round trip without seconds loses the seconds component only.
	back, err := ParseLocalTime(got, "UTC")
	require.NoError(t, err)
	assert.True(t, back.Equal(instant.Truncate(time.Minute)))
}

func TestZoneOffsetMinutes(t *testing.T) {
	winter := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	summer := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		zone string
		at   time.Time
		want int
	}{
		{"UTC", winter, 0},
		{"America/New_York", winter, -300}, // EST
		{"America/New_York", summer, -240}, // EDT
		{"Asia/Kolkata", winter, 330},
		{"Asia/Tokyo", summer, 540},
	}

	for _, tt := range tests {
		got, err := ZoneOffsetMinutes(tt.zone, tt.at)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s at %v", tt.zone, tt.at)
	}
}

func TestDSTSpringForward(t *testing.T) {
	// 2025-03-09 02:30 does not exist in America/New_York; clocks jump from
	// 02:00 EST to 03:00 EDT. Parsing must not fail and the result must be
	// forward round-trippable.
	got, err := ParseLocalTime("2025-03-09 02:30", "America/New_York")
	require.NoError(t, err)

	formatted, err := FormatInZone(got, "America/New_York", false)
	require.NoError(t, err)

	back, err := ParseLocalTime(formatted, "America/New_York")
	require.NoError(t, err)
	assert.True(t, back.Equal(got), "forward round trip across the DST gap: %v -> %s -> %v", got, formatted, back)

	// Either side of the gap has the expected offset.
	before, err := ZoneOffsetMinutes("America/New_York", time.Date(2025, 3, 9, 6, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	after, err := ZoneOffsetMinutes("America/New_York", time.Date(2025, 3, 9, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, -300, before)
	assert.Equal(t, -240, after)
}

func TestIntervalsOverlap(t *testing.T) {
	base := time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)
	at := func(minutes int) time.Time { return base.Add(time.Duration(minutes) * time.Minute) }

	tests := []struct {
		name   string
		a0, a1 time.Time
		b0, b1 time.Time
		buffer time.Duration
		want   bool
	}{
		{"full overlap", at(0), at(60), at(15), at(45), 0, true},
		{"partial overlap", at(0), at(30), at(15), at(45), 0, true},
		{"identical", at(0), at(30), at(0), at(30), 0, true},
		{"disjoint", at(0), at(30), at(60), at(90), 0, false},
		{"touching endpoints do not overlap", at(0), at(30), at(30), at(60), 0, false},
		{"touching with buffer overlaps", at(0), at(30), at(30), at(60), time.Minute, true},
		{"gap equal to buffer", at(0), at(30), at(45), at(60), 15 * time.Minute, true},
		{"gap larger than buffer", at(0), at(30), at(45), at(60), 10 * time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IntervalsOverlap(tt.a0, tt.a1, tt.b0, tt.b1, tt.buffer))
			if tt.buffer == 0 {
				// Zero-buffer overlap is symmetric.
				assert.Equal(t, tt.want, IntervalsOverlap(tt.b0, tt.b1, tt.a0, tt.a1, 0))
			}
		})
	}
}
