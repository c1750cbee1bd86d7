package requestrepo

import (
	"context"
	"database/sql"

	"github.com/ilya-noize/RentHub-sub001/model"
)

type Repo interface {
	Create(ctx context.Context, req *model.ItemRequest) error
	GetByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error)
	ListOthers(ctx context.Context, requesterID int64, limit, offset int) ([]model.ItemRequest, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, req *model.ItemRequest) error {
	const q = `
		INSERT INTO requests (description, requester_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q, req.Description, req.RequesterID, req.CreatedAt).Scan(&req.ID)
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	const q = `
		SELECT id, description, requester_id, created_at
		FROM requests
		WHERE id = $1`
	req := &model.ItemRequest{}
	err := r.db.QueryRowContext(ctx, q, id).Scan(&req.ID, &req.Description, &req.RequesterID, &req.CreatedAt)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *repo) ListByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
	const q = `
		SELECT id, description, requester_id, created_at
		FROM requests
		WHERE requester_id = $1
		ORDER BY created_at DESC`
	return r.queryRequests(ctx, q, requesterID)
}

// ListOthers returns requests from everyone except the acting user.
func (r *repo) ListOthers(ctx context.Context, requesterID int64, limit, offset int) ([]model.ItemRequest, error) {
	const q = `
		SELECT id, description, requester_id, created_at
		FROM requests
		WHERE requester_id <> $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	return r.queryRequests(ctx, q, requesterID, limit, offset)
}

func (r *repo) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `
		SELECT EXISTS (SELECT 1 FROM requests WHERE id = $1)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, id).Scan(&ok)
	return ok, err
}

func (r *repo) queryRequests(ctx context.Context, q string, args ...any) ([]model.ItemRequest, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ItemRequest
	for rows.Next() {
		var req model.ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequesterID, &req.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
