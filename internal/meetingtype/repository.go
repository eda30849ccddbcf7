package meetingtype

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, mt *MeetingType) error
	GetByID(ctx context.Context, id string) (*MeetingType, error)
	List(ctx context.Context, filter Filter) ([]*MeetingType, int, error)
	Update(ctx context.Context, mt *MeetingType) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const meetingTypeColumns = `
	id, host_id, name, description,
	duration_minutes, buffer_before_minutes, buffer_after_minutes,
	max_bookings_per_day, required_notice_minutes, max_attendees,
	is_active, created_at, updated_at
`

func scanMeetingType(row pgx.Row) (*MeetingType, error) {
	var mt MeetingType
	if err := row.Scan(
		&mt.ID, &mt.HostID, &mt.Name, &mt.Description,
		&mt.DurationMinutes, &mt.BufferBeforeMinutes, &mt.BufferAfterMinutes,
		&mt.MaxBookingsPerDay, &mt.RequiredNoticeMinutes, &mt.MaxAttendees,
		&mt.IsActive, &mt.CreatedAt, &mt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &mt, nil
}

func (r *pgxRepository) Create(ctx context.Context, mt *MeetingType) error {
	const query = `
		INSERT INTO public.meeting_types (
			host_id, name, description,
			duration_minutes, buffer_before_minutes, buffer_after_minutes,
			max_bookings_per_day, required_notice_minutes, max_attendees,
			is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		mt.HostID, mt.Name, mt.Description,
		mt.DurationMinutes, mt.BufferBeforeMinutes, mt.BufferAfterMinutes,
		mt.MaxBookingsPerDay, mt.RequiredNoticeMinutes, mt.MaxAttendees,
		mt.IsActive,
	).Scan(&mt.ID, &mt.CreatedAt, &mt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create meeting type failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*MeetingType, error) {
	const query = `
		SELECT ` + meetingTypeColumns + `
		FROM public.meeting_types
		WHERE id = $1
	`
	mt, err := scanMeetingType(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get meeting type failed: %w", err)
	}
	return mt, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*MeetingType, int, error) {
	var args []any
	queryBase := `
		SELECT ` + meetingTypeColumns + `, count(*) OVER() as total_count
		FROM public.meeting_types
		WHERE 1=1
	`
	paramIndex := 1

	if filter.HostID != "" {
		queryBase += fmt.Sprintf(" AND host_id = $%d", paramIndex)
		args = append(args, filter.HostID)
		paramIndex++
	}
	if filter.IsActive != nil {
		queryBase += fmt.Sprintf(" AND is_active = $%d", paramIndex)
		args = append(args, *filter.IsActive)
		paramIndex++
	}

	queryBase += " ORDER BY created_at DESC"

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	queryBase += fmt.Sprintf(" LIMIT $%d OFFSET $%d", paramIndex, paramIndex+1)
	args = append(args, filter.PageSize, offset)

	rows, err := r.pool.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list meeting types failed: %w", err)
	}
	defer rows.Close()

	var result []*MeetingType
	var total int

	for rows.Next() {
		var mt MeetingType
		if err := rows.Scan(
			&mt.ID, &mt.HostID, &mt.Name, &mt.Description,
			&mt.DurationMinutes, &mt.BufferBeforeMinutes, &mt.BufferAfterMinutes,
			&mt.MaxBookingsPerDay, &mt.RequiredNoticeMinutes, &mt.MaxAttendees,
			&mt.IsActive, &mt.CreatedAt, &mt.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan meeting type failed: %w", err)
		}
		result = append(result, &mt)
	}

	return result, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, mt *MeetingType) error {
	const query = `
		UPDATE public.meeting_types
		SET name = $1, description = $2,
			duration_minutes = $3, buffer_before_minutes = $4, buffer_after_minutes = $5,
			max_bookings_per_day = $6, required_notice_minutes = $7, max_attendees = $8,
			is_active = $9, updated_at = now()
		WHERE id = $10
		RETURNING updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		mt.Name, mt.Description,
		mt.DurationMinutes, mt.BufferBeforeMinutes, mt.BufferAfterMinutes,
		mt.MaxBookingsPerDay, mt.RequiredNoticeMinutes, mt.MaxAttendees,
		mt.IsActive, mt.ID,
	).Scan(&mt.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update meeting type failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	// Soft delete so historical bookings keep their reference.
	const query = `
		UPDATE public.meeting_types
		SET is_active = false, updated_at = now()
		WHERE id = $1
	`
	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete meeting type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
