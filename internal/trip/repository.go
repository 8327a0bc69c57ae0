package trip

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, t *Trip) error
	GetByID(ctx context.Context, id string) (*Trip, error)
	List(ctx context.Context, filter Filter) ([]*Trip, int, error)
	Update(ctx context.Context, t *Trip) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, t *Trip) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.trips").
		Columns("guide_id", "title", "description", "city", "duration_hours", "price_cents").
		Values(t.GuideID, t.Title, t.Description, t.City, t.DurationHours, t.PriceCents).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create trip query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Trip, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"t.id", "t.guide_id", "COALESCE(u.display_name, u.email)",
		"t.title", "t.description", "t.city", "t.duration_hours", "t.price_cents",
		"t.created_at", "t.updated_at",
	).
		From("public.trips t").
		Join("public.guides g ON t.guide_id = g.id").
		Join("public.users u ON g.user_id = u.id").
		Where(squirrel.Eq{"t.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get trip query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var t Trip
	if err := row.Scan(
		&t.ID, &t.GuideID, &t.GuideName,
		&t.Title, &t.Description, &t.City, &t.DurationHours, &t.PriceCents,
		&t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get trip failed: %w", err)
	}
	return &t, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Trip, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"t.id", "t.guide_id", "COALESCE(u.display_name, u.email)",
		"t.title", "t.description", "t.city", "t.duration_hours", "t.price_cents",
		"t.created_at", "t.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.trips t").
		Join("public.guides g ON t.guide_id = g.id").
		Join("public.users u ON g.user_id = u.id")

	if filter.GuideID != "" {
		query = query.Where(squirrel.Eq{"t.guide_id": filter.GuideID})
	}
	if filter.City != "" {
		query = query.Where(squirrel.ILike{"t.city": "%" + filter.City + "%"})
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
		return nil, 0, fmt.Errorf("build list trips query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list trips failed: %w", err)
	}
	defer rows.Close()

	var trips []*Trip
	var total int

	for rows.Next() {
		var t Trip
		if err := rows.Scan(
			&t.ID, &t.GuideID, &t.GuideName,
			&t.Title, &t.Description, &t.City, &t.DurationHours, &t.PriceCents,
			&t.CreatedAt, &t.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan trip failed: %w", err)
		}
		trips = append(trips, &t)
	}

	return trips, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, t *Trip) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.trips").
		Set("title", t.Title).
		Set("description", t.Description).
		Set("city", t.City).
		Set("duration_hours", t.DurationHours).
		Set("price_cents", t.PriceCents).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update trip query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update trip failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.trips").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete trip query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete trip failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
