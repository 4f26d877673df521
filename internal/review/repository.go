package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, rev *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	ListByTurf(ctx context.Context, turfID string) ([]*Review, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rev *Review) error {
	const query = `
		INSERT INTO public.reviews (user_id, turf_id, comment)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, rev.UserID, rev.TurfID, rev.Comment).
		Scan(&rev.ID, &rev.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrTurfNotFound
		}
		return fmt.Errorf("create review failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Review, error) {
	const query = `
		SELECT r.id, r.user_id, u.display_name, r.turf_id, r.comment, r.created_at
		FROM public.reviews r
		JOIN public.users u ON r.user_id = u.id
		WHERE r.id = $1
	`
	var rev Review
	var userName *string
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&rev.ID, &rev.UserID, &userName, &rev.TurfID, &rev.Comment, &rev.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review failed: %w", err)
	}
	if userName != nil {
		rev.UserName = *userName
	}
	return &rev, nil
}

func (r *pgxRepository) ListByTurf(ctx context.Context, turfID string) ([]*Review, error) {
	const query = `
		SELECT r.id, r.user_id, u.display_name, r.turf_id, r.comment, r.created_at
		FROM public.reviews r
		JOIN public.users u ON r.user_id = u.id
		WHERE r.turf_id = $1
		ORDER BY r.created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, turfID)
	if err != nil {
		return nil, fmt.Errorf("list reviews failed: %w", err)
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		var rev Review
		var userName *string
		if err := rows.Scan(&rev.ID, &rev.UserID, &userName, &rev.TurfID, &rev.Comment, &rev.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review failed: %w", err)
		}
		if userName != nil {
			rev.UserName = *userName
		}
		reviews = append(reviews, &rev)
	}
	return reviews, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, "DELETE FROM public.reviews WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete review failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
