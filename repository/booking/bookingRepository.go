package bookingrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ilya-noize/RentHub-sub001/model"
)

type Repo interface {
	Create(ctx context.Context, tx *sql.Tx, b *model.Booking) error
	GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id int64, status model.BookingStatus) error
	GetView(ctx context.Context, id int64) (*model.BookingView, error)

	ListByBooker(ctx context.Context, bookerID int64, f model.BookingFilter, now time.Time, limit, offset int) ([]model.BookingView, error)
	ListByOwner(ctx context.Context, ownerID int64, f model.BookingFilter, now time.Time, limit, offset int) ([]model.BookingView, error)

	LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingSummary, error)
	NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingSummary, error)
	HasFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `
		INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return tx.QueryRowContext(ctx, q,
		b.Start, b.End, b.ItemID, b.BookerID, b.Status,
	).Scan(&b.ID)
}

func (r *repo) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Booking, error) {
	const q = `
		SELECT id, start_date, end_date, item_id, booker_id, status
		FROM bookings
		WHERE id = $1
		FOR UPDATE`
	b := &model.Booking{}
	err := tx.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.Start, &b.End, &b.ItemID, &b.BookerID, &b.Status)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) UpdateStatus(ctx context.Context, tx *sql.Tx, id int64, status model.BookingStatus) error {
	const q = `
		UPDATE bookings
		SET status = $2
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id, status)
	return err
}

const viewSelect = `
		SELECT b.id, b.start_date, b.end_date, b.item_id, b.booker_id, b.status,
		       i.name, u.name
		FROM bookings b
		JOIN items i ON i.id = b.item_id
		JOIN users u ON u.id = b.booker_id`

func (r *repo) GetView(ctx context.Context, id int64) (*model.BookingView, error) {
	q := viewSelect + `
		WHERE b.id = $1`
	v := &model.BookingView{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&v.ID, &v.Start, &v.End, &v.ItemID, &v.BookerID, &v.Status,
		&v.Item.Name, &v.Booker.Name,
	)
	if err != nil {
		return nil, err
	}
	v.Item.ID = v.ItemID
	v.Booker.ID = v.BookerID
	return v, nil
}

func (r *repo) ListByBooker(ctx context.Context, bookerID int64, f model.BookingFilter, now time.Time, limit, offset int) ([]model.BookingView, error) {
	return r.list(ctx, "b.booker_id = $1", bookerID, f, now, limit, offset)
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64, f model.BookingFilter, now time.Time, limit, offset int) ([]model.BookingView, error) {
	return r.list(ctx, "i.owner_id = $1", ownerID, f, now, limit, offset)
}

// list builds one query per access pattern: a fixed base predicate on the
// acting user plus the filter predicate, always newest reservation first.
func (r *repo) list(ctx context.Context, who string, id int64, f model.BookingFilter, now time.Time, limit, offset int) ([]model.BookingView, error) {
	args := []any{id}
	var cond string
	switch f {
	case model.FilterAll:
		cond = ""
	case model.FilterCurrent:
		cond = " AND b.start_date <= $2 AND b.end_date >= $2"
		args = append(args, now)
	case model.FilterPast:
		cond = " AND b.end_date < $2"
		args = append(args, now)
	case model.FilterFuture:
		cond = " AND b.start_date > $2"
		args = append(args, now)
	case model.FilterWaiting, model.FilterRejected:
		cond = " AND b.status = $2"
		args = append(args, model.BookingStatus(f))
	default:
		return nil, fmt.Errorf("unsupported filter %q", f)
	}

	q := fmt.Sprintf("%s\n\t\tWHERE %s%s\n\t\tORDER BY b.start_date DESC\n\t\tLIMIT $%d OFFSET $%d",
		viewSelect, who, cond, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.BookingView
	for rows.Next() {
		var v model.BookingView
		if err := rows.Scan(
			&v.ID, &v.Start, &v.End, &v.ItemID, &v.BookerID, &v.Status,
			&v.Item.Name, &v.Booker.Name,
		); err != nil {
			return nil, err
		}
		v.Item.ID = v.ItemID
		v.Booker.ID = v.BookerID
		out = append(out, v)
	}
	return out, rows.Err()
}

// LastForItem returns the most recent approved booking started by now.
func (r *repo) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingSummary, error) {
	const q = `
		SELECT id, booker_id, start_date, end_date
		FROM bookings
		WHERE item_id = $1
		AND status = 'APPROVED'
		AND start_date <= $2
		ORDER BY start_date DESC
		LIMIT 1`
	return r.summary(ctx, q, itemID, now)
}

// NextForItem returns the nearest approved booking starting after now.
func (r *repo) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingSummary, error) {
	const q = `
		SELECT id, booker_id, start_date, end_date
		FROM bookings
		WHERE item_id = $1
		AND status = 'APPROVED'
		AND start_date > $2
		ORDER BY start_date ASC
		LIMIT 1`
	return r.summary(ctx, q, itemID, now)
}

func (r *repo) summary(ctx context.Context, q string, itemID int64, now time.Time) (*model.BookingSummary, error) {
	s := &model.BookingSummary{}
	err := r.db.QueryRowContext(ctx, q, itemID, now).Scan(&s.ID, &s.BookerID, &s.Start, &s.End)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// HasFinished reports whether the booker completed an approved rental of
// the item, i.e. one whose end is already in the past.
func (r *repo) HasFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE booker_id = $1
			AND item_id = $2
			AND status = 'APPROVED'
			AND end_date < $3
		)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, bookerID, itemID, now).Scan(&ok)
	return ok, err
}
