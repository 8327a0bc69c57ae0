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
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// ListActiveForGuideDate returns the guide's non-cancelled bookings on the
	// given calendar date.
	ListActiveForGuideDate(ctx context.Context, guideID string, date time.Time) ([]*Booking, error)

	// CreateIfFree inserts the booking only if no active booking overlaps its
	// window, re-checking the conflict inside the same transaction. Returns
	// ErrSlotUnavailable when the window is taken.
	CreateIfFree(ctx context.Context, b *Booking) error

	// UpdateStatus performs a compare-and-set from one status to another,
	// writing notes in the same statement when non-nil. Returns false if the
	// row exists but its status no longer matches from.
	UpdateStatus(ctx context.Context, id string, from, to Status, notes *string) (bool, error)

	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const bookingColumns = "b.id, b.user_id, COALESCE(u.display_name, u.email), b.guide_id, COALESCE(gu.display_name, gu.email), " +
	"b.booking_date, b.start_minute, b.end_minute, b.total_price_cents, b.status, b.notes, b.created_at, b.updated_at"

func scanBooking(row pgx.Row, b *Booking, extra ...any) error {
	dest := []any{
		&b.ID, &b.UserID, &b.UserName, &b.GuideID, &b.GuideName,
		&b.BookingDate, &b.Window.Start, &b.Window.End, &b.TotalPriceCents,
		&b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns).
		From("public.bookings b").
		Join("public.users u ON b.user_id = u.id").
		Join("public.guides g ON b.guide_id = g.id").
		Join("public.users gu ON g.user_id = gu.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := scanBooking(r.pool.QueryRow(ctx, query, args...), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumns, "count(*) OVER() as total_count").
		From("public.bookings b").
		Join("public.users u ON b.user_id = u.id").
		Join("public.guides g ON b.guide_id = g.id").
		Join("public.users gu ON g.user_id = gu.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.GuideID != "" {
		query = query.Where(squirrel.Eq{"b.guide_id": filter.GuideID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Inclusive date range on the booking date.
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"b.booking_date": filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"b.booking_date": filter.DateTo})
	}

	query = query.OrderBy("b.booking_date DESC", "b.start_minute DESC")

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

func (r *pgxRepository) ListActiveForGuideDate(ctx context.Context, guideID string, date time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sql, args, err := psql.Select(bookingColumns).
		From("public.bookings b").
		Join("public.users u ON b.user_id = u.id").
		Join("public.guides g ON b.guide_id = g.id").
		Join("public.users gu ON g.user_id = gu.id").
		Where(squirrel.Eq{"b.guide_id": guideID}).
		Where(squirrel.Eq{"b.booking_date": date}).
		Where(squirrel.NotEq{"b.status": StatusCancelled}).
		OrderBy("b.start_minute ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list guide day bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list guide day bookings failed: %w", err)
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

// isSerializationFailure reports whether err is Postgres aborting a
// serializable transaction (SQLSTATE 40001). It can surface on any statement
// in the transaction, not just the commit.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.SerializationFailure
}

func (r *pgxRepository) CreateIfFree(ctx context.Context, b *Booking) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		// Not being able to open a transaction means the database is gone,
		// not that the statement failed.
		return ErrStorageUnavailable
	}
	defer tx.Rollback(ctx)

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	// Overlap check: (NewStart < ExistingEnd) AND (NewEnd > ExistingStart).
	checkSQL, checkArgs, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"guide_id": b.GuideID}).
		Where(squirrel.Eq{"booking_date": b.BookingDate}).
		Where(squirrel.NotEq{"status": StatusCancelled}).
		Where(squirrel.Lt{"start_minute": b.Window.End}).
		Where(squirrel.Gt{"end_minute": b.Window.Start}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build check overlap query failed: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS ("+checkSQL+")", checkArgs...).Scan(&exists); err != nil {
		if isSerializationFailure(err) {
			return ErrSlotUnavailable
		}
		return fmt.Errorf("check overlap failed: %w", err)
	}
	if exists {
		return ErrSlotUnavailable
	}

	insertSQL, insertArgs, err := psql.Insert("public.bookings").
		Columns("user_id", "guide_id", "booking_date", "start_minute", "end_minute", "total_price_cents", "status", "notes").
		Values(b.UserID, b.GuideID, b.BookingDate, b.Window.Start, b.Window.End, b.TotalPriceCents, b.Status, b.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, insertSQL, insertArgs...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if isSerializationFailure(err) {
			return ErrSlotUnavailable
		}
		return fmt.Errorf("create booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return ErrSlotUnavailable
		}
		return fmt.Errorf("commit create booking tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, from, to Status, notes *string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	builder := psql.Update("public.bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("now()"))
	if notes != nil {
		builder = builder.Set("notes", *notes)
	}
	query, args, err := builder.
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update booking status failed: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
