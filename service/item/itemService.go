package itemsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/ilya-noize/RentHub-sub001/apperr"
	"github.com/ilya-noize/RentHub-sub001/model"
	bookingrepo "github.com/ilya-noize/RentHub-sub001/repository/booking"
	commentrepo "github.com/ilya-noize/RentHub-sub001/repository/comment"
	itemrepo "github.com/ilya-noize/RentHub-sub001/repository/item"
	requestrepo "github.com/ilya-noize/RentHub-sub001/repository/request"
	userrepo "github.com/ilya-noize/RentHub-sub001/repository/user"
	"github.com/ilya-noize/RentHub-sub001/util/paging"
)

type Service interface {
	Create(ctx context.Context, ownerID int64, req model.CreateItemReq) (*model.Item, error)
	Update(ctx context.Context, ownerID, itemID int64, req model.UpdateItemReq) (*model.Item, error)
	Get(ctx context.Context, requesterID, itemID int64) (*model.ItemDetail, error)
	ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.ItemDetail, error)
	Search(ctx context.Context, text string, from, size int) ([]model.Item, error)
}

type service struct {
	db  *sql.DB
	ir  itemrepo.Repo
	ur  userrepo.Repo
	rr  requestrepo.Repo
	br  bookingrepo.Repo
	cr  commentrepo.Repo
	now func() time.Time
}

func New(db *sql.DB, ir itemrepo.Repo, ur userrepo.Repo, rr requestrepo.Repo,
	br bookingrepo.Repo, cr commentrepo.Repo, now func() time.Time) Service {
	return &service{db: db, ir: ir, ur: ur, rr: rr, br: br, cr: cr, now: now}
}

func (s *service) Create(ctx context.Context, ownerID int64, req model.CreateItemReq) (*model.Item, error) {
	ok, err := s.ur.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Newf(apperr.NotFound, "user %d not found", ownerID)
	}
	if req.RequestID != nil {
		ok, err := s.rr.Exists(ctx, *req.RequestID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperr.Newf(apperr.NotFound, "request %d not found", *req.RequestID)
		}
	}

	it := &model.Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		OwnerID:     ownerID,
		RequestID:   req.RequestID,
	}
	if err := s.ir.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// Update applies a partial patch; only the owner may touch the item.
func (s *service) Update(ctx context.Context, ownerID, itemID int64, req model.UpdateItemReq) (_ *model.Item, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	it, err := s.ir.GetByIDForUpdate(ctx, tx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.NotFound, "item %d not found", itemID)
		}
		return nil, err
	}
	if it.OwnerID != ownerID {
		return nil, apperr.Newf(apperr.Forbidden, "user %d does not own item %d", ownerID, itemID)
	}

	if req.Name != nil {
		it.Name = *req.Name
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Available != nil {
		it.Available = *req.Available
	}

	if err = s.ir.Update(ctx, tx, it); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Get(ctx context.Context, requesterID, itemID int64) (*model.ItemDetail, error) {
	it, err := s.ir.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.NotFound, "item %d not found", itemID)
		}
		return nil, err
	}
	return s.detail(ctx, it, requesterID == it.OwnerID)
}

func (s *service) ListByOwner(ctx context.Context, ownerID int64, from, size int) ([]model.ItemDetail, error) {
	if err := paging.Check(from, size); err != nil {
		return nil, err
	}
	ok, err := s.ur.Exists(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Newf(apperr.NotFound, "user %d not found", ownerID)
	}

	items, err := s.ir.ListByOwner(ctx, ownerID, size, from)
	if err != nil {
		return nil, err
	}
	out := make([]model.ItemDetail, 0, len(items))
	for i := range items {
		d, err := s.detail(ctx, &items[i], true)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

// Search matches available items; blank text is an empty result, not a
// full scan.
func (s *service) Search(ctx context.Context, text string, from, size int) ([]model.Item, error) {
	if err := paging.Check(from, size); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	items, err := s.ir.Search(ctx, text, size, from)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (s *service) detail(ctx context.Context, it *model.Item, asOwner bool) (*model.ItemDetail, error) {
	comments, err := s.cr.ListByItem(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []model.Comment{}
	}
	d := &model.ItemDetail{Item: *it, Comments: comments}
	if !asOwner {
		return d, nil
	}

	now := s.now()
	if d.LastBooking, err = s.br.LastForItem(ctx, it.ID, now); err != nil {
		return nil, err
	}
	if d.NextBooking, err = s.br.NextForItem(ctx, it.ID, now); err != nil {
		return nil, err
	}
	return d, nil
}
