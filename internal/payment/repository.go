package payment

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
	Create(ctx context.Context, p *Payment) error
	GetByBookingID(ctx context.Context, bookingID string) (*Payment, error)
	ListByUser(ctx context.Context, userID string) ([]*Payment, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, p *Payment) error {
	const query = `
		INSERT INTO public.payments (user_id, booking_id, amount, status, transaction_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query, p.UserID, p.BookingID, p.Amount, p.Status, p.TransactionID).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return ErrAlreadyPaid
			case pgerrcode.ForeignKeyViolation:
				return ErrBookingNotFound
			}
		}
		return fmt.Errorf("create payment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByBookingID(ctx context.Context, bookingID string) (*Payment, error) {
	const query = `
		SELECT id, user_id, booking_id, amount, status, transaction_id, created_at
		FROM public.payments
		WHERE booking_id = $1
	`
	var p Payment
	err := r.pool.QueryRow(ctx, query, bookingID).
		Scan(&p.ID, &p.UserID, &p.BookingID, &p.Amount, &p.Status, &p.TransactionID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get payment failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string) ([]*Payment, error) {
	const query = `
		SELECT id, user_id, booking_id, amount, status, transaction_id, created_at
		FROM public.payments
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list payments failed: %w", err)
	}
	defer rows.Close()

	var payments []*Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.BookingID, &p.Amount, &p.Status, &p.TransactionID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payment failed: %w", err)
		}
		payments = append(payments, &p)
	}
	return payments, nil
}
