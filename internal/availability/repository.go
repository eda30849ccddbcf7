package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines data access methods for availability rules. It also
// backs the scheduling engine's rule lookups.
type Repository interface {
	Create(ctx context.Context, rule *Rule) error
	GetByID(ctx context.Context, id string) (*Rule, error)
	List(ctx context.Context, filter Filter) ([]*Rule, int, error)
	Update(ctx context.Context, rule *Rule) error
	Delete(ctx context.Context, id string) error

	// Scheduling engine lookups
	ListForDay(ctx context.Context, hostID string, dayOfWeek time.Weekday, date time.Time) ([]*Rule, error)
	HasAnyAvailable(ctx context.Context, hostID string) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// ruleColumns formats the TIME columns back to HH:mm so they scan straight
// into the model's clock strings.
var ruleColumns = []string{
	"id", "host_id", "kind", "day_of_week", "date",
	"to_char(start_time, 'HH24:MI')", "to_char(end_time, 'HH24:MI')",
	"is_blocked", "block_reason", "created_at", "updated_at",
}

func scanRule(row pgx.Row) (*Rule, error) {
	var rule Rule
	if err := row.Scan(
		&rule.ID, &rule.HostID, &rule.Kind, &rule.DayOfWeek, &rule.Date,
		&rule.StartTime, &rule.EndTime,
		&rule.IsBlocked, &rule.BlockReason, &rule.CreatedAt, &rule.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *pgxRepository) Create(ctx context.Context, rule *Rule) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.availability_rules").
		Columns("host_id", "kind", "day_of_week", "date", "start_time", "end_time", "is_blocked", "block_reason").
		Values(rule.HostID, rule.Kind, rule.DayOfWeek, rule.Date, rule.StartTime, rule.EndTime, rule.IsBlocked, rule.BlockReason).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create rule query failed: %w", err)
	}

	// Postgres casts the "HH:MM" strings to TIME on insert.
	err = r.pool.QueryRow(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create rule failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Rule, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(ruleColumns...).
		From("public.availability_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get rule query failed: %w", err)
	}

	rule, err := scanRule(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get rule failed: %w", err)
	}
	return rule, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Rule, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(append(append([]string{}, ruleColumns...), "count(*) OVER() as total_count")...).
		From("public.availability_rules")

	if filter.HostID != "" {
		query = query.Where(squirrel.Eq{"host_id": filter.HostID})
	}
	if filter.Kind != "" {
		query = query.Where(squirrel.Eq{"kind": filter.Kind})
	}
	if filter.IsBlocked != nil {
		query = query.Where(squirrel.Eq{"is_blocked": *filter.IsBlocked})
	}

	// Recurring rules sort by weekday and clock, date-specific ones by date.
	query = query.OrderBy("kind", "day_of_week NULLS LAST", "date NULLS LAST", "start_time")

	// Pagination
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 50
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list rules query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rules failed: %w", err)
	}
	defer rows.Close()

	var rules []*Rule
	var total int

	for rows.Next() {
		var rule Rule
		if err := rows.Scan(
			&rule.ID, &rule.HostID, &rule.Kind, &rule.DayOfWeek, &rule.Date,
			&rule.StartTime, &rule.EndTime,
			&rule.IsBlocked, &rule.BlockReason, &rule.CreatedAt, &rule.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan rule failed: %w", err)
		}
		rules = append(rules, &rule)
	}

	return rules, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, rule *Rule) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.availability_rules").
		Set("day_of_week", rule.DayOfWeek).
		Set("date", rule.Date).
		Set("start_time", rule.StartTime).
		Set("end_time", rule.EndTime).
		Set("is_blocked", rule.IsBlocked).
		Set("block_reason", rule.BlockReason).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rule.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update rule query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.availability_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete rule query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListForDay(ctx context.Context, hostID string, dayOfWeek time.Weekday, date time.Time) ([]*Rule, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(ruleColumns...).
		From("public.availability_rules").
		Where(squirrel.Eq{"host_id": hostID}).
		Where(squirrel.Or{
			squirrel.And{
				squirrel.Eq{"kind": KindRecurring},
				squirrel.Eq{"day_of_week": int(dayOfWeek)},
			},
			squirrel.And{
				squirrel.Eq{"kind": KindDateSpecific},
				squirrel.Eq{"date": date.Format("2006-01-02")},
			},
		}).
		OrderBy("start_time").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list rules for day query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list rules for day failed: %w", err)
	}
	defer rows.Close()

	var rules []*Rule
	for rows.Next() {
		var rule Rule
		if err := rows.Scan(
			&rule.ID, &rule.HostID, &rule.Kind, &rule.DayOfWeek, &rule.Date,
			&rule.StartTime, &rule.EndTime,
			&rule.IsBlocked, &rule.BlockReason, &rule.CreatedAt, &rule.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan rule failed: %w", err)
		}
		rules = append(rules, &rule)
	}

	return rules, nil
}

func (r *pgxRepository) HasAnyAvailable(ctx context.Context, hostID string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("1").
		From("public.availability_rules").
		Where(squirrel.Eq{"host_id": hostID}).
		Where(squirrel.Eq{"is_blocked": false}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build has any available query failed: %w", err)
	}

	var one int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("has any available failed: %w", err)
	}
	return true, nil
}
