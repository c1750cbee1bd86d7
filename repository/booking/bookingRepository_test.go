package bookingrepo_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilya-noize/RentHub-sub001/model"
	bookingrepo "github.com/ilya-noize/RentHub-sub001/repository/booking"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newDB(t *testing.T) (bookingrepo.Repo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return bookingrepo.New(db), mock
}

func viewColumns() []string {
	return []string{"id", "start_date", "end_date", "item_id", "booker_id", "status", "name", "name"}
}

func TestGetView(t *testing.T) {
	r, mock := newDB(t)
	rows := sqlmock.NewRows(viewColumns()).
		AddRow(5, now, now.Add(24*time.Hour), 10, 2, "WAITING", "drill", "Bob")
	mock.ExpectQuery(regexp.QuoteMeta("JOIN items i ON i.id = b.item_id")).
		WithArgs(int64(5)).
		WillReturnRows(rows)

	v, err := r.GetView(context.Background(), 5)
	require.NoError(t, err)
	assert.EqualValues(t, 10, v.Item.ID)
	assert.Equal(t, "drill", v.Item.Name)
	assert.EqualValues(t, 2, v.Booker.ID)
	assert.Equal(t, "Bob", v.Booker.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByBooker_All(t *testing.T) {
	r, mock := newDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE b.booker_id = $1 ORDER BY b.start_date DESC LIMIT $2 OFFSET $3")).
		WithArgs(int64(2), 10, 0).
		WillReturnRows(sqlmock.NewRows(viewColumns()))

	out, err := r.ListByBooker(context.Background(), 2, model.FilterAll, now, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByOwner_Current(t *testing.T) {
	r, mock := newDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE i.owner_id = $1 AND b.start_date <= $2 AND b.end_date >= $2 ORDER BY b.start_date DESC LIMIT $3 OFFSET $4")).
		WithArgs(int64(1), now, 10, 0).
		WillReturnRows(sqlmock.NewRows(viewColumns()))

	_, err := r.ListByOwner(context.Background(), 1, model.FilterCurrent, now, 10, 0)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByBooker_Waiting(t *testing.T) {
	r, mock := newDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE b.booker_id = $1 AND b.status = $2 ORDER BY b.start_date DESC LIMIT $3 OFFSET $4")).
		WithArgs(int64(2), "WAITING", 10, 0).
		WillReturnRows(sqlmock.NewRows(viewColumns()))

	_, err := r.ListByBooker(context.Background(), 2, model.FilterWaiting, now, 10, 0)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLastForItem_None(t *testing.T) {
	r, mock := newDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("AND start_date <= $2")).
		WithArgs(int64(10), now).
		WillReturnRows(sqlmock.NewRows([]string{"id", "booker_id", "start_date", "end_date"}))

	s, err := r.LastForItem(context.Background(), 10, now)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestNextForItem(t *testing.T) {
	r, mock := newDB(t)
	start := now.Add(48 * time.Hour)
	rows := sqlmock.NewRows([]string{"id", "booker_id", "start_date", "end_date"}).
		AddRow(3, 2, start, start.Add(24*time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("AND start_date > $2")).
		WithArgs(int64(10), now).
		WillReturnRows(rows)

	s, err := r.NextForItem(context.Background(), 10, now)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.EqualValues(t, 3, s.ID)
	assert.Equal(t, start, s.Start)
}

func TestHasFinished(t *testing.T) {
	r, mock := newDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
		WithArgs(int64(2), int64(10), now).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := r.HasFinished(context.Background(), 2, 10, now)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	r := bookingrepo.New(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $2 WHERE id = $1")).
		WithArgs(int64(9), "APPROVED").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, r.UpdateStatus(context.Background(), tx, 9, model.BookingApproved))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
