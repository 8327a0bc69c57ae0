package guide

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
	Create(ctx context.Context, g *Guide) error
	GetByID(ctx context.Context, id string) (*Guide, error)
	GetByUserID(ctx context.Context, userID string) (*Guide, error)
	List(ctx context.Context, filter Filter) ([]*Guide, int, error)
	Update(ctx context.Context, g *Guide) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, g *Guide) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.guides").
		Columns("user_id", "bio", "city", "hourly_rate_cents", "is_approved").
		Values(g.UserID, g.Bio, g.City, g.HourlyRateCents, g.IsApproved).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create guide query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create guide failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Guide, error) {
	return r.getByColumn(ctx, "g.id", id)
}

func (r *pgxRepository) GetByUserID(ctx context.Context, userID string) (*Guide, error) {
	return r.getByColumn(ctx, "g.user_id", userID)
}

func (r *pgxRepository) getByColumn(ctx context.Context, column, value string) (*Guide, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"g.id", "g.user_id", "COALESCE(u.display_name, u.email)",
		"g.bio", "g.city", "g.hourly_rate_cents", "g.is_approved",
		"g.created_at", "g.updated_at",
	).
		From("public.guides g").
		Join("public.users u ON g.user_id = u.id").
		Where(squirrel.Eq{column: value}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get guide query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var g Guide
	if err := row.Scan(
		&g.ID, &g.UserID, &g.DisplayName,
		&g.Bio, &g.City, &g.HourlyRateCents, &g.IsApproved,
		&g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get guide failed: %w", err)
	}
	return &g, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Guide, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"g.id", "g.user_id", "COALESCE(u.display_name, u.email)",
		"g.bio", "g.city", "g.hourly_rate_cents", "g.is_approved",
		"g.created_at", "g.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.guides g").
		Join("public.users u ON g.user_id = u.id")

	if filter.City != "" {
		query = query.Where(squirrel.ILike{"g.city": "%" + filter.City + "%"})
	}
	if filter.IsApproved != nil {
		query = query.Where(squirrel.Eq{"g.is_approved": *filter.IsApproved})
	}

	query = query.OrderBy("g.created_at DESC")

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
		return nil, 0, fmt.Errorf("build list guides query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list guides failed: %w", err)
	}
	defer rows.Close()

	var guides []*Guide
	var total int

	for rows.Next() {
		var g Guide
		if err := rows.Scan(
			&g.ID, &g.UserID, &g.DisplayName,
			&g.Bio, &g.City, &g.HourlyRateCents, &g.IsApproved,
			&g.CreatedAt, &g.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan guide failed: %w", err)
		}
		guides = append(guides, &g)
	}

	return guides, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, g *Guide) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.guides").
		Set("bio", g.Bio).
		Set("city", g.City).
		Set("hourly_rate_cents", g.HourlyRateCents).
		Set("is_approved", g.IsApproved).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": g.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update guide query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update guide failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.guides").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete guide query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete guide failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
