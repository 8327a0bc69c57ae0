package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, rev *Review) error
	GetByID(ctx context.Context, id string) (*Review, error)
	List(ctx context.Context, filter Filter) ([]*Review, int, error)
	Update(ctx context.Context, rev *Review) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rev *Review) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.reviews").
		Columns("trip_id", "user_id", "rating", "comment").
		Values(rev.TripID, rev.UserID, rev.Rating, rev.Comment).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create review query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&rev.ID, &rev.CreatedAt, &rev.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			// One review per (trip, user); dangling trip reference means the trip is gone.
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return ErrAlreadyReviewed
			case pgerrcode.ForeignKeyViolation:
				return ErrTripNotFound
			}
		}
		return fmt.Errorf("create review failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Review, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"rv.id", "rv.trip_id", "rv.user_id", "COALESCE(u.display_name, u.email)",
		"rv.rating", "rv.comment", "rv.created_at", "rv.updated_at",
	).
		From("public.reviews rv").
		Join("public.users u ON rv.user_id = u.id").
		Where(squirrel.Eq{"rv.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get review query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var rev Review
	if err := row.Scan(
		&rev.ID, &rev.TripID, &rev.UserID, &rev.UserName,
		&rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get review failed: %w", err)
	}
	return &rev, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Review, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"rv.id", "rv.trip_id", "rv.user_id", "COALESCE(u.display_name, u.email)",
		"rv.rating", "rv.comment", "rv.created_at", "rv.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.reviews rv").
		Join("public.users u ON rv.user_id = u.id")

	if filter.TripID != "" {
		query = query.Where(squirrel.Eq{"rv.trip_id": filter.TripID})
	}
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"rv.user_id": filter.UserID})
	}

	query = query.OrderBy("rv.created_at DESC")

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
		return nil, 0, fmt.Errorf("build list reviews query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list reviews failed: %w", err)
	}
	defer rows.Close()

	var reviews []*Review
	var total int

	for rows.Next() {
		var rev Review
		if err := rows.Scan(
			&rev.ID, &rev.TripID, &rev.UserID, &rev.UserName,
			&rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan review failed: %w", err)
		}
		reviews = append(reviews, &rev)
	}

	return reviews, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, rev *Review) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.reviews").
		Set("rating", rev.Rating).
		Set("comment", rev.Comment).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rev.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update review query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update review failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.reviews").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete review query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete review failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
