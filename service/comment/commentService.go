package commentsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ilya-noize/RentHub-sub001/apperr"
	"github.com/ilya-noize/RentHub-sub001/model"
	bookingrepo "github.com/ilya-noize/RentHub-sub001/repository/booking"
	commentrepo "github.com/ilya-noize/RentHub-sub001/repository/comment"
	itemrepo "github.com/ilya-noize/RentHub-sub001/repository/item"
	userrepo "github.com/ilya-noize/RentHub-sub001/repository/user"
)

type Service interface {
	// Create records feedback on an item; the author must have completed
	// an approved rental of it first.
	Create(ctx context.Context, authorID, itemID int64, req model.CreateCommentReq) (*model.Comment, error)
}

type service struct {
	db  *sql.DB
	cr  commentrepo.Repo
	br  bookingrepo.Repo
	ir  itemrepo.Repo
	ur  userrepo.Repo
	now func() time.Time
}

func New(db *sql.DB, cr commentrepo.Repo, br bookingrepo.Repo, ir itemrepo.Repo,
	ur userrepo.Repo, now func() time.Time) Service {
	return &service{db: db, cr: cr, br: br, ir: ir, ur: ur, now: now}
}

func (s *service) Create(ctx context.Context, authorID, itemID int64, req model.CreateCommentReq) (_ *model.Comment, err error) {
	author, err := s.ur.GetByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.NotFound, "user %d not found", authorID)
		}
		return nil, err
	}
	if _, err := s.ir.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.NotFound, "item %d not found", itemID)
		}
		return nil, err
	}

	now := s.now()
	done, err := s.br.HasFinished(ctx, authorID, itemID, now)
	if err != nil {
		return nil, err
	}
	if !done {
		return nil, apperr.Newf(apperr.Validation, "user %d has no finished booking of item %d", authorID, itemID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	c := &model.Comment{
		Text:       req.Text,
		ItemID:     itemID,
		AuthorID:   authorID,
		AuthorName: author.Name,
		CreatedAt:  now,
	}
	if err = s.cr.Create(ctx, tx, c); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}
