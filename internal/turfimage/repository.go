package turfimage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, img *Image) error
	GetByID(ctx context.Context, id string) (*Image, error)
	ListByTurf(ctx context.Context, turfID string) ([]*Image, error)
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var imageColumns = []string{
	"id", "turf_id", "uploader_id", "filename",
	"storage_path", "thumbnail_path", "content_type", "size", "created_at",
}

func (r *pgxRepository) Create(ctx context.Context, img *Image) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Insert("public.turf_images").
		Columns("id", "turf_id", "uploader_id", "filename", "storage_path", "thumbnail_path", "content_type", "size").
		Values(img.ID, img.TurfID, img.UploaderID, img.Filename, img.StoragePath, img.ThumbnailPath, img.ContentType, img.Size).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert image query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&img.CreatedAt); err != nil {
		return fmt.Errorf("create image record failed: %w", err)
	}
	return nil
}

func scanImage(row pgx.Row) (*Image, error) {
	var img Image
	err := row.Scan(
		&img.ID, &img.TurfID, &img.UploaderID, &img.Filename,
		&img.StoragePath, &img.ThumbnailPath, &img.ContentType, &img.Size, &img.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Image, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(imageColumns...).
		From("public.turf_images").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get image query failed: %w", err)
	}

	img, err := scanImage(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get image failed: %w", err)
	}
	return img, nil
}

func (r *pgxRepository) ListByTurf(ctx context.Context, turfID string) ([]*Image, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(imageColumns...).
		From("public.turf_images").
		Where(squirrel.Eq{"turf_id": turfID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list images query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list images failed: %w", err)
	}
	defer rows.Close()

	var images []*Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan image failed: %w", err)
		}
		images = append(images, img)
	}
	return images, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	ct, err := r.pool.Exec(ctx, "DELETE FROM public.turf_images WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete image record failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
