package userrepo

import (
	"context"
	"database/sql"

	"github.com/ilya-noize/RentHub-sub001/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error)
	Update(ctx context.Context, tx *sql.Tx, u *model.User) error
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	const q = `
		INSERT INTO users (email, name)
		VALUES ($1, $2)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q, u.Email, u.Name).Scan(&u.ID)
}

func (r *repo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `
		SELECT id, email, name
		FROM users
		WHERE id = $1`
	u := &model.User{}
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Email, &u.Name); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error) {
	const q = `
		SELECT id, email, name
		FROM users
		WHERE id = $1
		FOR UPDATE`
	u := &model.User{}
	if err := tx.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Email, &u.Name); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) Update(ctx context.Context, tx *sql.Tx, u *model.User) error {
	const q = `
		UPDATE users
		SET email = $2,
			name = $3
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, u.ID, u.Email, u.Name)
	return err
}

func (r *repo) List(ctx context.Context) ([]model.User, error) {
	const q = `
		SELECT id, email, name
		FROM users
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	const q = `
		DELETE FROM users
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Exists(ctx context.Context, id int64) (bool, error) {
	const q = `
		SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`
	var ok bool
	err := r.db.QueryRowContext(ctx, q, id).Scan(&ok)
	return ok, err
}
