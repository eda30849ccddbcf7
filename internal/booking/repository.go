package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lunamochi/meeting-scheduler-backend/internal/scheduling"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, b *Booking) error

	// Scheduling engine lookups
	ListBusy(ctx context.Context, hostID string, from, to time.Time, excludeBookingID string) ([]scheduling.BusyInterval, error)
	CountActiveInRange(ctx context.Context, hostID string, from, to time.Time, excludeBookingID string) (int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// isExclusionViolation detects hits on the bookings table's exclusion
// constraint (EXCLUDE USING gist on host_id and the tstzrange of the slot,
// filtered to active statuses). The constraint is the authoritative guard
// against two requests racing past the same conflict check.
func isExclusionViolation(err error) bool {
	var e *pgconn.PgError
	return errors.As(err, &e) && e.Code == pgerrcode.ExclusionViolation
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	attendees, err := json.Marshal(b.Attendees)
	if err != nil {
		return fmt.Errorf("marshal attendees failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("meeting_type_id", "host_id", "client_id", "title", "notes", "attendees", "start_time", "end_time", "status").
		Values(b.MeetingTypeID, b.HostID, b.ClientID, b.Title, b.Notes, attendees, b.StartTime, b.EndTime, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if isExclusionViolation(err) {
			return ErrTimeConflict
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"b.id", "b.meeting_type_id", "mt.name", "b.host_id", "b.client_id", "u.display_name",
		"b.title", "b.notes", "b.attendees",
		"b.start_time", "b.end_time", "b.status", "b.created_at", "b.updated_at",
	).
		From("public.bookings b").
		Join("public.meeting_types mt ON b.meeting_type_id = mt.id").
		Join("public.users u ON b.client_id = u.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var attendeesJSON []byte

	if err := row.Scan(
		&b.ID, &b.MeetingTypeID, &b.MeetingTypeName, &b.HostID, &b.ClientID, &b.ClientName,
		&b.Title, &b.Notes, &attendeesJSON,
		&b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if len(attendeesJSON) > 0 {
		if err := json.Unmarshal(attendeesJSON, &b.Attendees); err != nil {
			log.Printf("warning: failed to unmarshal attendees for booking %s: %v", b.ID, err)
		}
	}

	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.meeting_type_id", "mt.name", "b.host_id", "b.client_id", "u.display_name",
		"b.title", "b.notes", "b.attendees",
		"b.start_time", "b.end_time", "b.status", "b.created_at", "b.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.meeting_types mt ON b.meeting_type_id = mt.id").
		Join("public.users u ON b.client_id = u.id")

	if filter.HostID != "" {
		query = query.Where(squirrel.Eq{"b.host_id": filter.HostID})
	}
	if filter.ClientID != "" {
		query = query.Where(squirrel.Eq{"b.client_id": filter.ClientID})
	}
	if filter.MeetingTypeID != "" {
		query = query.Where(squirrel.Eq{"b.meeting_type_id": filter.MeetingTypeID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Date range filtering (intersection logic)
	if filter.StartTime != nil {
		query = query.Where(squirrel.GtOrEq{"b.end_time": filter.StartTime})
	}
	if filter.EndTime != nil {
		query = query.Where(squirrel.LtOrEq{"b.start_time": filter.EndTime})
	}

	query = query.OrderBy("b.start_time DESC")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var b Booking
		var attendeesJSON []byte
		if err := rows.Scan(
			&b.ID, &b.MeetingTypeID, &b.MeetingTypeName, &b.HostID, &b.ClientID, &b.ClientName,
			&b.Title, &b.Notes, &attendeesJSON,
			&b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		if len(attendeesJSON) > 0 {
			if err := json.Unmarshal(attendeesJSON, &b.Attendees); err != nil {
				log.Printf("warning: failed to unmarshal attendees for booking %s: %v", b.ID, err)
			}
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, b *Booking) error {
	attendees, err := json.Marshal(b.Attendees)
	if err != nil {
		return fmt.Errorf("marshal attendees failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("title", b.Title).
		Set("notes", b.Notes).
		Set("attendees", attendees).
		Set("start_time", b.StartTime).
		Set("end_time", b.EndTime).
		Set("status", b.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return ErrTimeConflict
		}
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListBusy(ctx context.Context, hostID string, from, to time.Time, excludeBookingID string) ([]scheduling.BusyInterval, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "COALESCE(b.title, mt.name)", "b.status", "b.start_time", "b.end_time",
	).
		From("public.bookings b").
		Join("public.meeting_types mt ON b.meeting_type_id = mt.id").
		Where(squirrel.Eq{"b.host_id": hostID}).
		Where(squirrel.Eq{"b.status": activeStatuses}).
		Where(squirrel.Lt{"b.start_time": to}).
		Where(squirrel.Gt{"b.end_time": from}).
		OrderBy("b.start_time")

	if excludeBookingID != "" {
		query = query.Where(squirrel.NotEq{"b.id": excludeBookingID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list busy query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list busy failed: %w", err)
	}
	defer rows.Close()

	var busy []scheduling.BusyInterval
	for rows.Next() {
		var bi scheduling.BusyInterval
		if err := rows.Scan(&bi.BookingID, &bi.Title, &bi.Status, &bi.Start, &bi.End); err != nil {
			return nil, fmt.Errorf("scan busy interval failed: %w", err)
		}
		busy = append(busy, bi)
	}

	return busy, nil
}

func (r *pgxRepository) CountActiveInRange(ctx context.Context, hostID string, from, to time.Time, excludeBookingID string) (int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select("count(*)").
		From("public.bookings").
		Where(squirrel.Eq{"host_id": hostID}).
		Where(squirrel.Eq{"status": activeStatuses}).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.Lt{"start_time": to})

	if excludeBookingID != "" {
		query = query.Where(squirrel.NotEq{"id": excludeBookingID})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count active query failed: %w", err)
	}

	var count int
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active bookings failed: %w", err)
	}
	return count, nil
}
