package bookingsvc

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/ilya-noize/RentHub-sub001/apperr"
	"github.com/ilya-noize/RentHub-sub001/model"
	bookingrepo "github.com/ilya-noize/RentHub-sub001/repository/booking"
	itemrepo "github.com/ilya-noize/RentHub-sub001/repository/item"
	userrepo "github.com/ilya-noize/RentHub-sub001/repository/user"
	"github.com/ilya-noize/RentHub-sub001/util/paging"
)

type Service interface {
	// Create reserves an item over [start, end); the new booking is WAITING.
	Create(ctx context.Context, bookerID int64, req model.CreateBookingReq) (*model.BookingView, error)

	// Decide resolves a WAITING booking: the owner approves or rejects,
	// the booker may withdraw with approved=false (CANCELED).
	Decide(ctx context.Context, actorID, bookingID int64, approved bool) (*model.BookingView, error)

	// Get is visible to the booking's booker and the item's owner only.
	Get(ctx context.Context, requesterID, bookingID int64) (*model.BookingView, error)

	ListForBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]model.BookingView, error)
	ListForOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]model.BookingView, error)
}

type service struct {
	db  *sql.DB
	br  bookingrepo.Repo
	ir  itemrepo.Repo
	ur  userrepo.Repo
	now func() time.Time
}

func New(db *sql.DB, br bookingrepo.Repo, ir itemrepo.Repo, ur userrepo.Repo, now func() time.Time) Service {
	return &service{db: db, br: br, ir: ir, ur: ur, now: now}
}

func (s *service) Create(ctx context.Context, bookerID int64, req model.CreateBookingReq) (_ *model.BookingView, err error) {
	ok, err := s.ur.Exists(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Newf(apperr.NotFound, "user %d not found", bookerID)
	}

	now := s.now()
	if !req.Start.Before(req.End) {
		return nil, apperr.New(apperr.Validation, "booking start must be before its end")
	}
	if req.Start.Before(now) || req.End.Before(now) {
		return nil, apperr.New(apperr.Validation, "booking period must not be in the past")
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

	item, err := s.ir.GetByIDForUpdate(ctx, tx, req.ItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.NotFound, "item %d not found", req.ItemID)
		}
		return nil, err
	}
	if item.OwnerID == bookerID {
		return nil, apperr.New(apperr.Forbidden, "owner cannot book own item")
	}
	if !item.Available {
		return nil, apperr.Newf(apperr.Validation, "item %d is not available", item.ID)
	}

	b := &model.Booking{
		Start:    req.Start,
		End:      req.End,
		ItemID:   req.ItemID,
		BookerID: bookerID,
		Status:   model.BookingWaiting,
	}
	if err = s.br.Create(ctx, tx, b); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return s.br.GetView(ctx, b.ID)
}

func (s *service) Decide(ctx context.Context, actorID, bookingID int64, approved bool) (_ *model.BookingView, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	b, err := s.br.GetByIDForUpdate(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.NotFound, "booking %d not found", bookingID)
		}
		return nil, err
	}
	item, err := s.ir.GetByID(ctx, b.ItemID)
	if err != nil {
		return nil, err
	}

	var target model.BookingStatus
	switch {
	case actorID == item.OwnerID && approved:
		target = model.BookingApproved
	case actorID == item.OwnerID:
		target = model.BookingRejected
	case actorID == b.BookerID && !approved:
		target = model.BookingCanceled
	default:
		return nil, apperr.Newf(apperr.Forbidden, "user %d may not decide booking %d", actorID, bookingID)
	}

	if b.Status.Terminal() {
		return nil, apperr.Newf(apperr.InvalidTransition, "booking %d is already %s", bookingID, b.Status)
	}

	if err = s.br.UpdateStatus(ctx, tx, bookingID, target); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return s.br.GetView(ctx, bookingID)
}

func (s *service) Get(ctx context.Context, requesterID, bookingID int64) (*model.BookingView, error) {
	v, err := s.br.GetView(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.Newf(apperr.NotFound, "booking %d not found", bookingID)
		}
		return nil, err
	}
	item, err := s.ir.GetByID(ctx, v.ItemID)
	if err != nil {
		return nil, err
	}
	if requesterID != v.BookerID && requesterID != item.OwnerID {
		return nil, apperr.Newf(apperr.Forbidden, "user %d may not view booking %d", requesterID, bookingID)
	}
	return v, nil
}

func (s *service) ListForBooker(ctx context.Context, bookerID int64, state string, from, size int) ([]model.BookingView, error) {
	f, err := s.listGuards(ctx, bookerID, state, from, size)
	if err != nil {
		return nil, err
	}
	return s.br.ListByBooker(ctx, bookerID, f, s.now(), size, from)
}

func (s *service) ListForOwner(ctx context.Context, ownerID int64, state string, from, size int) ([]model.BookingView, error) {
	f, err := s.listGuards(ctx, ownerID, state, from, size)
	if err != nil {
		return nil, err
	}
	return s.br.ListByOwner(ctx, ownerID, f, s.now(), size, from)
}

func (s *service) listGuards(ctx context.Context, userID int64, state string, from, size int) (model.BookingFilter, error) {
	f, ok := model.ParseBookingFilter(state)
	if !ok {
		return "", apperr.Newf(apperr.Validation, "Unknown state: %s", state)
	}
	if err := paging.Check(from, size); err != nil {
		return "", err
	}
	exists, err := s.ur.Exists(ctx, userID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", apperr.Newf(apperr.NotFound, "user %d not found", userID)
	}
	return f, nil
}
