package itemrepo

import (
	"context"
	"database/sql"

	"github.com/ilya-noize/RentHub-sub001/model"
)

type Repo interface {
	Create(ctx context.Context, it *model.Item) error
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Item, error)
	Update(ctx context.Context, tx *sql.Tx, it *model.Item) error
	ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.Item, error)
	Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error)
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, it *model.Item) error {
	const q = `
		INSERT INTO items (name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		it.Name, it.Description, it.Available, it.OwnerID, it.RequestID,
	).Scan(&it.ID)
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	const q = `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE id = $1`
	return scanItem(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Item, error) {
	const q = `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE id = $1
		FOR UPDATE`
	return scanItem(tx.QueryRowContext(ctx, q, id))
}

func (r *repo) Update(ctx context.Context, tx *sql.Tx, it *model.Item) error {
	const q = `
		UPDATE items
		SET name = $2,
			description = $3,
			available = $4
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, it.ID, it.Name, it.Description, it.Available)
	return err
}

func (r *repo) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.Item, error) {
	const q = `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE owner_id = $1
		ORDER BY id
		LIMIT $2 OFFSET $3`
	return r.queryItems(ctx, q, ownerID, limit, offset)
}

// Search matches available items by case-insensitive substring over name
// or description. Blank text is rejected earlier in the service.
func (r *repo) Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error) {
	const q = `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE available = TRUE
		AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
		ORDER BY id
		LIMIT $2 OFFSET $3`
	return r.queryItems(ctx, q, text, limit, offset)
}

func (r *repo) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error) {
	const q = `
		SELECT id, name, description, available, owner_id, request_id
		FROM items
		WHERE request_id = ANY($1)
		ORDER BY id`
	return r.queryItems(ctx, q, requestIDs)
}

func (r *repo) queryItems(ctx context.Context, q string, args ...any) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func scanItem(row *sql.Row) (*model.Item, error) {
	it := &model.Item{}
	if err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &it.RequestID); err != nil {
		return nil, err
	}
	return it, nil
}
