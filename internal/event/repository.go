package event

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
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter Filter) ([]*Event, int, error)
	Delete(ctx context.Context, id string) error

	AddParticipant(ctx context.Context, eventID, userID string) error
	RemoveParticipant(ctx context.Context, eventID, userID string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, e *Event) error {
	const query = `
		INSERT INTO public.events (name, date, location, description, organizer_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query, e.Name, e.Date, e.Location, e.Description, e.OrganizerID).
		Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create event failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Event, error) {
	const query = `
		SELECT e.id, e.name, e.date, e.location, e.description,
		       e.organizer_id, u.display_name,
		       (SELECT count(*) FROM public.event_participants p WHERE p.event_id = e.id),
		       e.created_at, e.updated_at
		FROM public.events e
		JOIN public.users u ON e.organizer_id = u.id
		WHERE e.id = $1
	`
	var e Event
	var organizerName *string
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.Name, &e.Date, &e.Location, &e.Description,
		&e.OrganizerID, &organizerName, &e.Participants,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event failed: %w", err)
	}
	if organizerName != nil {
		e.OrganizerName = *organizerName
	}
	return &e, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Event, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"e.id", "e.name", "e.date", "e.location", "e.description",
		"e.organizer_id", "u.display_name",
		"(SELECT count(*) FROM public.event_participants p WHERE p.event_id = e.id)",
		"e.created_at", "e.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.events e").
		Join("public.users u ON e.organizer_id = u.id")

	if filter.Upcoming {
		query = query.Where(squirrel.GtOrEq{"e.date": time.Now()})
	}

	query = query.OrderBy("e.date ASC")

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
		return nil, 0, fmt.Errorf("build list events query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list events failed: %w", err)
	}
	defer rows.Close()

	var events []*Event
	var total int

	for rows.Next() {
		var e Event
		var organizerName *string
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Date, &e.Location, &e.Description,
			&e.OrganizerID, &organizerName, &e.Participants,
			&e.CreatedAt, &e.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan event failed: %w", err)
		}
		if organizerName != nil {
			e.OrganizerName = *organizerName
		}
		events = append(events, &e)
	}

	return events, total, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, "DELETE FROM public.events WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete event failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AddParticipant(ctx context.Context, eventID, userID string) error {
	_, err := r.pool.Exec(ctx,
		"INSERT INTO public.event_participants (event_id, user_id) VALUES ($1, $2)",
		eventID, userID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return ErrAlreadyJoined
			case pgerrcode.ForeignKeyViolation:
				return ErrNotFound
			}
		}
		return fmt.Errorf("add participant failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	ct, err := r.pool.Exec(ctx,
		"DELETE FROM public.event_participants WHERE event_id = $1 AND user_id = $2",
		eventID, userID,
	)
	if err != nil {
		return fmt.Errorf("remove participant failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotJoined
	}
	return nil
}
