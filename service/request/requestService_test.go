package requestsvc_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilya-noize/RentHub-sub001/apperr"
	"github.com/ilya-noize/RentHub-sub001/model"
	requestsvc "github.com/ilya-noize/RentHub-sub001/service/request"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type requestRepoMock struct {
	createFn        func(ctx context.Context, req *model.ItemRequest) error
	getByID         func(ctx context.Context, id int64) (*model.ItemRequest, error)
	listByRequester func(ctx context.Context, requesterID int64) ([]model.ItemRequest, error)
	listOthers      func(ctx context.Context, requesterID int64, limit, offset int) ([]model.ItemRequest, error)
}

func (m *requestRepoMock) Create(ctx context.Context, req *model.ItemRequest) error {
	return m.createFn(ctx, req)
}
func (m *requestRepoMock) GetByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	return m.getByID(ctx, id)
}
func (m *requestRepoMock) ListByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
	return m.listByRequester(ctx, requesterID)
}
func (m *requestRepoMock) ListOthers(ctx context.Context, requesterID int64, limit, offset int) ([]model.ItemRequest, error) {
	return m.listOthers(ctx, requesterID, limit, offset)
}
func (m *requestRepoMock) Exists(ctx context.Context, id int64) (bool, error) {
	panic("unexpected")
}

type itemRepoMock struct {
	listByRequestIDs func(ctx context.Context, requestIDs []int64) ([]model.Item, error)
}

func (m *itemRepoMock) Create(ctx context.Context, it *model.Item) error { panic("unexpected") }
func (m *itemRepoMock) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	panic("unexpected")
}
func (m *itemRepoMock) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Item, error) {
	panic("unexpected")
}
func (m *itemRepoMock) Update(ctx context.Context, tx *sql.Tx, it *model.Item) error {
	panic("unexpected")
}
func (m *itemRepoMock) ListByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]model.Item, error) {
	panic("unexpected")
}
func (m *itemRepoMock) Search(ctx context.Context, text string, limit, offset int) ([]model.Item, error) {
	panic("unexpected")
}
func (m *itemRepoMock) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error) {
	return m.listByRequestIDs(ctx, requestIDs)
}

type userRepoMock struct {
	existsFn func(ctx context.Context, id int64) (bool, error)
}

func (m *userRepoMock) Create(ctx context.Context, u *model.User) error { panic("unexpected") }
func (m *userRepoMock) GetByID(ctx context.Context, id int64) (*model.User, error) {
	panic("unexpected")
}
func (m *userRepoMock) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error) {
	panic("unexpected")
}
func (m *userRepoMock) Update(ctx context.Context, tx *sql.Tx, u *model.User) error {
	panic("unexpected")
}
func (m *userRepoMock) List(ctx context.Context) ([]model.User, error) { panic("unexpected") }
func (m *userRepoMock) Delete(ctx context.Context, id int64) error     { panic("unexpected") }
func (m *userRepoMock) Exists(ctx context.Context, id int64) (bool, error) {
	return m.existsFn(ctx, id)
}

func userExists(ok bool) *userRepoMock {
	return &userRepoMock{existsFn: func(ctx context.Context, id int64) (bool, error) { return ok, nil }}
}

func reqID(id int64) *int64 { return &id }

func TestCreate_StampsClock(t *testing.T) {
	rr := &requestRepoMock{
		createFn: func(ctx context.Context, req *model.ItemRequest) error {
			req.ID = 3
			return nil
		},
	}
	s := requestsvc.New(rr, &itemRepoMock{}, userExists(true), clock)

	r, err := s.Create(context.Background(), 2, model.CreateRequestReq{Description: "need a drill"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, r.ID)
	assert.Equal(t, fixedNow, r.CreatedAt)
}

func TestCreate_UnknownRequester(t *testing.T) {
	s := requestsvc.New(&requestRepoMock{}, &itemRepoMock{}, userExists(false), clock)

	_, err := s.Create(context.Background(), 99, model.CreateRequestReq{Description: "need a drill"})
	assert.Equal(t, apperr.NotFound, apperr.CodeOf(err))
}

func TestGetOwn_AnnotatesItems(t *testing.T) {
	rr := &requestRepoMock{
		listByRequester: func(ctx context.Context, requesterID int64) ([]model.ItemRequest, error) {
			return []model.ItemRequest{
				{ID: 1, Description: "drill", RequesterID: requesterID},
				{ID: 2, Description: "ladder", RequesterID: requesterID},
			}, nil
		},
	}
	ir := &itemRepoMock{
		listByRequestIDs: func(ctx context.Context, requestIDs []int64) ([]model.Item, error) {
			assert.ElementsMatch(t, []int64{1, 2}, requestIDs)
			return []model.Item{
				{ID: 10, Name: "cordless drill", RequestID: reqID(1)},
			}, nil
		},
	}
	s := requestsvc.New(rr, ir, userExists(true), clock)

	views, err := s.GetOwn(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, views, 2)
	require.Len(t, views[0].Items, 1)
	assert.Equal(t, "cordless drill", views[0].Items[0].Name)
	assert.Empty(t, views[1].Items)
	assert.NotNil(t, views[1].Items)
}

func TestGetAll_BadPaging(t *testing.T) {
	s := requestsvc.New(&requestRepoMock{}, &itemRepoMock{}, userExists(true), clock)

	_, err := s.GetAll(context.Background(), 2, -1, 10)
	assert.Equal(t, apperr.Validation, apperr.CodeOf(err))

	_, err = s.GetAll(context.Background(), 2, 0, 0)
	assert.Equal(t, apperr.Validation, apperr.CodeOf(err))
}

func TestGetAll_ForwardsWindow(t *testing.T) {
	rr := &requestRepoMock{
		listOthers: func(ctx context.Context, requesterID int64, limit, offset int) ([]model.ItemRequest, error) {
			assert.EqualValues(t, 2, requesterID)
			assert.Equal(t, 10, limit)
			assert.Equal(t, 5, offset)
			return nil, nil
		},
	}
	s := requestsvc.New(rr, &itemRepoMock{}, userExists(true), clock)

	views, err := s.GetAll(context.Background(), 2, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestGetByID_NotFound(t *testing.T) {
	rr := &requestRepoMock{
		getByID: func(ctx context.Context, id int64) (*model.ItemRequest, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := requestsvc.New(rr, &itemRepoMock{}, userExists(true), clock)

	_, err := s.GetByID(context.Background(), 2, 404)
	assert.Equal(t, apperr.NotFound, apperr.CodeOf(err))
}
