package scheduling

import (
	"context"
	"fmt"
	"time"

	"github.com/lunamochi/meeting-scheduler-backend/internal/availability"
)

// RuleStore supplies availability rules. Implemented by the availability
// repository.
type RuleStore interface {
	// ListForDay returns the host's recurring rules for the weekday plus
	// date-specific rules for the date, blocked and non-blocked alike.
	ListForDay(ctx context.Context, hostID string, dayOfWeek time.Weekday, date time.Time) ([]*availability.Rule, error)

	// HasAnyAvailable reports whether the host has at least one non-blocked
	// rule on any day.
	HasAnyAvailable(ctx context.Context, hostID string) (bool, error)
}

// BookingStore supplies existing bookings. Implemented by the booking
// repository. Only calendar-occupying bookings are returned; cancelled and
// otherwise finalized ones are not.
type BookingStore interface {
	ListBusy(ctx context.Context, hostID string, from, to time.Time, excludeBookingID string) ([]BusyInterval, error)
	CountActiveInRange(ctx context.Context, hostID string, from, to time.Time, excludeBookingID string) (int, error)
}

// HostDirectory resolves a host's IANA timezone. Implemented by the user
// service. An empty return value means the host has no zone configured.
type HostDirectory interface {
	HostTimezone(ctx context.Context, hostID string) (string, error)
}

// Engine is the availability and conflict resolution core. It owns no
// durable state and performs no writes, so a single instance is safe for
// concurrent use. The conflict check is a user-facing fast path only: the
// booking table's exclusion constraint is the authoritative guard against
// two requests racing past the same read (see internal/booking).
type Engine struct {
	rules    RuleStore
	bookings BookingStore
	hosts    HostDirectory

	// defaultZone is used when a host has no timezone configured.
	defaultZone string

	now func() time.Time
}

// NewEngine creates a scheduling engine. defaultZone must be a valid IANA
// zone name; pass "UTC" unless configured otherwise.
func NewEngine(rules RuleStore, bookings BookingStore, hosts HostDirectory, defaultZone string) *Engine {
	if defaultZone == "" {
		defaultZone = "UTC"
	}
	return &Engine{
		rules:       rules,
		bookings:    bookings,
		hosts:       hosts,
		defaultZone: defaultZone,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// hostZone returns the host's IANA timezone, falling back to the configured
// default when unset.
func (e *Engine) hostZone(ctx context.Context, hostID string) (string, error) {
	zone, err := e.hosts.HostTimezone(ctx, hostID)
	if err != nil {
		return "", dependencyErr("host directory", err)
	}
	if zone == "" {
		zone = e.defaultZone
	}
	return zone, nil
}

// dependencyErr tags a store failure so callers can tell infrastructure
// problems apart from input and business errors.
func dependencyErr(source string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrDependencyUnavailable, source, err)
}
