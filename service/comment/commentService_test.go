package commentsvc_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilya-noize/RentHub-sub001/apperr"
	"github.com/ilya-noize/RentHub-sub001/model"
	commentsvc "github.com/ilya-noize/RentHub-sub001/service/comment"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type commentRepoMock struct {
	createFn func(ctx context.Context, tx *sql.Tx, c *model.Comment) error
}

func (m *commentRepoMock) Create(ctx context.Context, tx *sql.Tx, c *model.Comment) error {
	return m.createFn(ctx, tx, c)
}
func (m *commentRepoMock) ListByItem(ctx context.Context, itemID int64) ([]model.Comment, error) {
	panic("unexpected")
}

type bookingRepoMock struct {
	hasFinishedFn func(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

func (m *bookingRepoMock) Create(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	panic("unexpected")
}
func (m *bookingRepoMock) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Booking, error) {
	panic("unexpected")
}
func (m *bookingRepoMock) UpdateStatus(ctx context.Context, tx *sql.Tx, id int64, status model.BookingStatus) error {
	panic("unexpected")
}
func (m *bookingRepoMock) GetView(ctx context.Context, id int64) (*model.BookingView, error) {
	panic("unexpected")
}
func (m *bookingRepoMock) ListByBooker(ctx context.Context, bookerID int64, f model.BookingFilter, now time.Time, limit, offset int) ([]model.BookingView, error) {
	panic("unexpected")
}
func (m *bookingRepoMock) ListByOwner(ctx context.Context, ownerID int64, f model.BookingFilter, now time.Time, limit, offset int) ([]model.BookingView, error) {
	panic("unexpected")
}
func (m *bookingRepoMock) LastForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingSummary, error) {
	panic("unexpected")
}
func (m *bookingRepoMock) NextForItem(ctx context.Context, itemID int64, now time.Time) (*model.BookingSummary, error) {
	panic("unexpected")
}
func (m *bookingRepoMock) HasFinished(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	return m.hasFinishedFn(ctx, bookerID, itemID, now)
}

type itemRepoMock struct {
	getByID func(ctx context.Context, id int64) (*model.Item, error)
}

func (m *itemRepoMock) Create(ctx context.Context, it *model.Item) error { panic("unexpected") }
func (m *itemRepoMock) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	return m.getByID(ctx, id)
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
	panic("unexpected")
}

type userRepoMock struct {
	getByID func(ctx context.Context, id int64) (*model.User, error)
}

func (m *userRepoMock) Create(ctx context.Context, u *model.User) error { panic("unexpected") }
func (m *userRepoMock) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return m.getByID(ctx, id)
}
func (m *userRepoMock) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error) {
	panic("unexpected")
}
func (m *userRepoMock) Update(ctx context.Context, tx *sql.Tx, u *model.User) error {
	panic("unexpected")
}
func (m *userRepoMock) List(ctx context.Context) ([]model.User, error)     { panic("unexpected") }
func (m *userRepoMock) Delete(ctx context.Context, id int64) error         { panic("unexpected") }
func (m *userRepoMock) Exists(ctx context.Context, id int64) (bool, error) { panic("unexpected") }

func fixture(finished bool) (*commentRepoMock, *bookingRepoMock, *itemRepoMock, *userRepoMock) {
	cr := &commentRepoMock{
		createFn: func(ctx context.Context, tx *sql.Tx, c *model.Comment) error {
			c.ID = 7
			return nil
		},
	}
	br := &bookingRepoMock{
		hasFinishedFn: func(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
			return finished, nil
		},
	}
	ir := &itemRepoMock{
		getByID: func(ctx context.Context, id int64) (*model.Item, error) {
			return &model.Item{ID: id, OwnerID: 1}, nil
		},
	}
	ur := &userRepoMock{
		getByID: func(ctx context.Context, id int64) (*model.User, error) {
			return &model.User{ID: id, Name: "Bob"}, nil
		},
	}
	return cr, br, ir, ur
}

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestCreate_BeforeRentalEnds(t *testing.T) {
	db, _ := newDB(t)
	cr, br, ir, ur := fixture(false)
	s := commentsvc.New(db, cr, br, ir, ur, clock)

	_, err := s.Create(context.Background(), 2, 10, model.CreateCommentReq{Text: "great drill"})
	assert.Equal(t, apperr.Validation, apperr.CodeOf(err))
}

func TestCreate_AfterRentalEnds(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	cr, br, ir, ur := fixture(true)
	s := commentsvc.New(db, cr, br, ir, ur, clock)

	c, err := s.Create(context.Background(), 2, 10, model.CreateCommentReq{Text: "great drill"})
	require.NoError(t, err)
	assert.EqualValues(t, 7, c.ID)
	assert.Equal(t, "Bob", c.AuthorName)
	assert.Equal(t, fixedNow, c.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UnknownAuthor(t *testing.T) {
	db, _ := newDB(t)
	cr, br, ir, _ := fixture(true)
	ur := &userRepoMock{
		getByID: func(ctx context.Context, id int64) (*model.User, error) { return nil, sql.ErrNoRows },
	}
	s := commentsvc.New(db, cr, br, ir, ur, clock)

	_, err := s.Create(context.Background(), 99, 10, model.CreateCommentReq{Text: "hi"})
	assert.Equal(t, apperr.NotFound, apperr.CodeOf(err))
}

func TestCreate_UnknownItem(t *testing.T) {
	db, _ := newDB(t)
	cr, br, _, ur := fixture(true)
	ir := &itemRepoMock{
		getByID: func(ctx context.Context, id int64) (*model.Item, error) { return nil, sql.ErrNoRows },
	}
	s := commentsvc.New(db, cr, br, ir, ur, clock)

	_, err := s.Create(context.Background(), 2, 404, model.CreateCommentReq{Text: "hi"})
	assert.Equal(t, apperr.NotFound, apperr.CodeOf(err))
}
