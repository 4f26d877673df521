package turf

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playon/turf-booking-backend/internal/slots"
)

type Repository interface {
	Create(ctx context.Context, t *Turf) error
	GetByID(ctx context.Context, id string) (*Turf, error)
	List(ctx context.Context, filter Filter) ([]*Turf, int, error)
	Update(ctx context.Context, t *Turf) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)

	// ReplaceWindows swaps the turf's explicit availability list in one
	// transaction. The caller validates the windows first; a partial write
	// must never be observable.
	ReplaceWindows(ctx context.Context, turfID string, windows []slots.Interval) error
	GetWindows(ctx context.Context, turfID string) ([]slots.Interval, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, t *Turf) error {
	const query = `
		INSERT INTO public.turfs (name, location, description, price_per_hour, owner_id, image_url, policy_kind, window_start_hour, window_end_hour)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		t.Name, t.Location, t.Description, t.PricePerHour, t.OwnerID, t.ImageURL,
		t.Policy.Kind, t.Policy.StartHour, t.Policy.EndHour,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create turf failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Turf, error) {
	const query = `
		SELECT t.id, t.name, t.location, t.description, t.price_per_hour,
		       t.owner_id, u.display_name, t.image_url,
		       t.policy_kind, t.window_start_hour, t.window_end_hour,
		       t.created_at, t.updated_at
		FROM public.turfs t
		JOIN public.users u ON t.owner_id = u.id
		WHERE t.id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var t Turf
	var ownerName *string
	if err := row.Scan(
		&t.ID, &t.Name, &t.Location, &t.Description, &t.PricePerHour,
		&t.OwnerID, &ownerName, &t.ImageURL,
		&t.Policy.Kind, &t.Policy.StartHour, &t.Policy.EndHour,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get turf failed: %w", err)
	}
	if ownerName != nil {
		t.OwnerName = *ownerName
	}

	if t.Policy.Kind == PolicyExplicitWindows {
		windows, err := r.GetWindows(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		t.Policy.Windows = windows
	}
	return &t, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Turf, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"t.id", "t.name", "t.location", "t.description", "t.price_per_hour",
		"t.owner_id", "u.display_name", "t.image_url",
		"t.policy_kind", "t.window_start_hour", "t.window_end_hour",
		"t.created_at", "t.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.turfs t").
		Join("public.users u ON t.owner_id = u.id")

	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"t.owner_id": filter.OwnerID})
	}
	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"t.name": pattern},
			squirrel.ILike{"t.location": pattern},
		})
	}

	query = query.OrderBy("t.created_at DESC")

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
		return nil, 0, fmt.Errorf("build list turfs query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list turfs failed: %w", err)
	}
	defer rows.Close()

	var turfs []*Turf
	var total int

	for rows.Next() {
		var t Turf
		var ownerName *string
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Location, &t.Description, &t.PricePerHour,
			&t.OwnerID, &ownerName, &t.ImageURL,
			&t.Policy.Kind, &t.Policy.StartHour, &t.Policy.EndHour,
			&t.CreatedAt, &t.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan turf failed: %w", err)
		}
		if ownerName != nil {
			t.OwnerName = *ownerName
		}
		turfs = append(turfs, &t)
	}

	return turfs, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, t *Turf) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.turfs").
		Set("name", t.Name).
		Set("location", t.Location).
		Set("description", t.Description).
		Set("price_per_hour", t.PricePerHour).
		Set("image_url", t.ImageURL).
		Set("policy_kind", t.Policy.Kind).
		Set("window_start_hour", t.Policy.StartHour).
		Set("window_end_hour", t.Policy.EndHour).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update turf query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update turf failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, "DELETE FROM public.turfs WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete turf failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM public.turfs").Scan(&count); err != nil {
		return 0, fmt.Errorf("count turfs failed: %w", err)
	}
	return count, nil
}

func (r *pgxRepository) ReplaceWindows(ctx context.Context, turfID string, windows []slots.Interval) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace windows failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM public.turf_availability_windows WHERE turf_id = $1", turfID); err != nil {
		return fmt.Errorf("clear windows failed: %w", err)
	}

	for _, w := range windows {
		_, err := tx.Exec(ctx,
			"INSERT INTO public.turf_availability_windows (turf_id, start_time, end_time) VALUES ($1, $2, $3)",
			turfID, w.Start, w.End,
		)
		if err != nil {
			return fmt.Errorf("insert window failed: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace windows failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetWindows(ctx context.Context, turfID string) ([]slots.Interval, error) {
	const query = `
		SELECT start_time, end_time
		FROM public.turf_availability_windows
		WHERE turf_id = $1
		ORDER BY start_time
	`
	rows, err := r.pool.Query(ctx, query, turfID)
	if err != nil {
		return nil, fmt.Errorf("get windows failed: %w", err)
	}
	defer rows.Close()

	var windows []slots.Interval
	for rows.Next() {
		var w slots.Interval
		if err := rows.Scan(&w.Start, &w.End); err != nil {
			return nil, fmt.Errorf("scan window failed: %w", err)
		}
		windows = append(windows, w)
	}
	return windows, nil
}
