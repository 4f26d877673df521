package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	// Create inserts the booking. The bookings table carries an exclusion
	// constraint over (turf_id, [start_time, end_time)) for confirmed rows,
	// so a racing insert for an overlapping range fails here with
	// ErrSlotConflict even if the application-level check passed.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error

	// ListConfirmedOverlapping returns confirmed bookings for the turf whose
	// [start_time, end_time) intersects [from, to). Querying by interval
	// overlap rather than date equality keeps midnight-spanning bookings
	// visible.
	ListConfirmedOverlapping(ctx context.Context, turfID string, from, to time.Time) ([]*Booking, error)

	// HasOverlap checks if any confirmed booking for the turf conflicts with
	// the given half-open time range.
	HasOverlap(ctx context.Context, turfID string, start, end time.Time) (bool, error)

	// ConfirmedRevenue sums hours x price_per_hour over confirmed bookings.
	ConfirmedRevenue(ctx context.Context) (float64, error)
	Count(ctx context.Context) (int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("user_id", "turf_id", "date", "start_time", "end_time", "status").
		Values(b.UserID, b.TurfID, b.Date, b.StartTime, b.EndTime, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			return ErrSlotConflict
		}
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

const bookingColumns = `
	b.id, b.user_id, u.display_name, b.turf_id, t.name,
	b.date, b.start_time, b.end_time, b.status, b.created_at, b.updated_at`

func scanBooking(row pgx.Row, b *Booking, extra ...any) error {
	var userName *string
	dest := []any{
		&b.ID, &b.UserID, &userName, &b.TurfID, &b.TurfName,
		&b.Date, &b.StartTime, &b.EndTime, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return err
	}
	if userName != nil {
		b.UserName = *userName
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `
		SELECT` + bookingColumns + `
		FROM public.bookings b
		JOIN public.users u ON b.user_id = u.id
		JOIN public.turfs t ON b.turf_id = t.id
		WHERE b.id = $1
	`
	var b Booking
	if err := scanBooking(r.pool.QueryRow(ctx, query, id), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.user_id", "u.display_name", "b.turf_id", "t.name",
		"b.date", "b.start_time", "b.end_time", "b.status", "b.created_at", "b.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.users u ON b.user_id = u.id").
		Join("public.turfs t ON b.turf_id = t.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.TurfID != "" {
		query = query.Where(squirrel.Eq{"b.turf_id": filter.TurfID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Interval intersection with the requested range
	if filter.From != nil {
		query = query.Where(squirrel.Gt{"b.end_time": filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.Lt{"b.start_time": filter.To})
	}

	query = query.OrderBy("b.start_time DESC")

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
		if err := scanBooking(rows, &b, &total); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListConfirmedOverlapping(ctx context.Context, turfID string, from, to time.Time) ([]*Booking, error) {
	query := `
		SELECT` + bookingColumns + `
		FROM public.bookings b
		JOIN public.users u ON b.user_id = u.id
		JOIN public.turfs t ON b.turf_id = t.id
		WHERE b.turf_id = $1
		  AND b.status = $2
		  AND b.start_time < $3
		  AND b.end_time > $4
		ORDER BY b.start_time
	`
	rows, err := r.pool.Query(ctx, query, turfID, StatusConfirmed, to, from)
	if err != nil {
		return nil, fmt.Errorf("list overlapping bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, turfID string, start, end time.Time) (bool, error) {
	// Half-open semantics: (new start < existing end) AND (existing start < new end).
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"turf_id": turfID}).
		Where(squirrel.Eq{"status": StatusConfirmed}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start})

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	query := "SELECT EXISTS (" + sql + ")"

	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) ConfirmedRevenue(ctx context.Context) (float64, error) {
	const query = `
		SELECT coalesce(sum(extract(epoch FROM (b.end_time - b.start_time)) / 3600 * t.price_per_hour), 0)
		FROM public.bookings b
		JOIN public.turfs t ON b.turf_id = t.id
		WHERE b.status = $1
	`
	var revenue float64
	if err := r.pool.QueryRow(ctx, query, StatusConfirmed).Scan(&revenue); err != nil {
		return 0, fmt.Errorf("confirmed revenue failed: %w", err)
	}
	return revenue, nil
}

func (r *pgxRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT count(*) FROM public.bookings").Scan(&count); err != nil {
		return 0, fmt.Errorf("count bookings failed: %w", err)
	}
	return count, nil
}
