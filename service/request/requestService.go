package requestsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ilya-noize/RentHub-sub001/apperr"
	"github.com/ilya-noize/RentHub-sub001/model"
	itemrepo "github.com/ilya-noize/RentHub-sub001/repository/item"
	requestrepo "github.com/ilya-noize/RentHub-sub001/repository/request"
	userrepo "github.com/ilya-noize/RentHub-sub001/repository/user"
	"github.com/ilya-noize/RentHub-sub001/util/paging"
)

type Service interface {
	Create(ctx context.Context, requesterID int64, req model.CreateRequestReq) (*model.ItemRequest, error)

	// GetOwn lists the acting user's requests, newest first, unpaginated.
	GetOwn(ctx context.Context, requesterID int64) ([]model.ItemRequestView, error)

	// GetAll lists other users' requests, newest first, paginated.
	GetAll(ctx context.Context, requesterID int64, from, size int) ([]model.ItemRequestView, error)

	GetByID(ctx context.Context, requesterID, requestID int64) (*model.ItemRequestView, error)
}

type service struct {
	rr  requestrepo.Repo
	ir  itemrepo.Repo
	ur  userrepo.Repo
	now func() time.Time
}

func New(rr requestrepo.Repo, ir itemrepo.Repo, ur userrepo.Repo, now func() time.Time) Service {
	return &service{rr: rr, ir: ir, ur: ur, now: now}
}

func (s *service) Create(ctx context.Context, requesterID int64, req model.CreateRequestReq) (*model.ItemRequest, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}
	r := &model.ItemRequest{
		Description: req.Description,
		RequesterID: requesterID,
		CreatedAt:   s.now(),
	}
	if err := s.rr.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) GetOwn(ctx context.Context, requesterID int64) ([]model.ItemRequestView, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}
	reqs, err := s.rr.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, reqs)
}

func (s *service) GetAll(ctx context.Context, requesterID int64, from, size int) ([]model.ItemRequestView, error) {
	if err := paging.Check(from, size); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}
	reqs, err := s.rr.ListOthers(ctx, requesterID, size, from)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, reqs)
}

func (s *service) GetByID(ctx context.Context, requesterID, requestID int64) (*model.ItemRequestView, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}
	r, err := s.rr.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.NotFound, "request %d not found", requestID)
		}
		return nil, err
	}
	views, err := s.annotate(ctx, []model.ItemRequest{*r})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *service) requireUser(ctx context.Context, id int64) error {
	ok, err := s.ur.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Newf(apperr.NotFound, "user %d not found", id)
	}
	return nil
}

// annotate attaches the items listed in answer to each request.
func (s *service) annotate(ctx context.Context, reqs []model.ItemRequest) ([]model.ItemRequestView, error) {
	views := make([]model.ItemRequestView, 0, len(reqs))
	if len(reqs) == 0 {
		return views, nil
	}

	ids := make([]int64, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ID)
	}
	items, err := s.ir.ListByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[int64][]model.Item, len(reqs))
	for _, it := range items {
		if it.RequestID != nil {
			byRequest[*it.RequestID] = append(byRequest[*it.RequestID], it)
		}
	}

	for _, r := range reqs {
		answered := byRequest[r.ID]
		if answered == nil {
			answered = []model.Item{}
		}
		views = append(views, model.ItemRequestView{ItemRequest: r, Items: answered})
	}
	return views, nil
}
