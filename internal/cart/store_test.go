package cart

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookhive-app/bookhive-golang/internal/models"
)

func newMockStore(t *testing.T) (*SQLStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLStore(db), mock
}

func TestAddInsertsNewRowWithQuantityOne(t *testing.T) {
	store, mock := newMockStore(t)

	snap := models.BookSnapshot{
		Title:    "The Alchemist",
		Author:   "Paulo Coelho",
		ImageURL: "https://example.com/alchemist.jpg",
		Price:    decimal.NewFromInt(399),
		Rent:     decimal.NewFromInt(150),
		Genre:    "Fiction",
	}

	mock.ExpectExec("INSERT INTO cart_items").
		WithArgs(sqlmock.AnyArg(), int64(7), snap.Title, snap.Author, snap.ImageURL,
			snap.Price, snap.Rent, models.ModeBuy, snap.Genre, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := store.Add(context.Background(), 7, snap, models.ModeBuy)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddRejectsUnknownMode(t *testing.T) {
	store, _ := newMockStore(t)

	_, err := store.Add(context.Background(), 7, models.BookSnapshot{}, models.Mode("borrow"))
	assert.Error(t, err)
}

func TestAddThenListReturnsTheNewRow(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now()

	mock.ExpectExec("INSERT INTO cart_items").
		WillReturnResult(sqlmock.NewResult(0, 1))

	snap := models.BookSnapshot{
		Title:    "Wings of Fire",
		Author:   "A.P.J. Abdul Kalam",
		ImageURL: "https://example.com/wings.jpg",
		Price:    decimal.NewFromInt(199),
		Rent:     decimal.NewFromInt(80),
		Genre:    "Biography",
	}
	id, err := store.Add(context.Background(), 3, snap, models.ModeRent)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT (.+) FROM cart_items").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "title", "author", "image_url", "price", "rent",
			"mode", "genre", "quantity", "created_at", "updated_at",
		}).AddRow(id, 3, snap.Title, snap.Author, snap.ImageURL, "199", "80", "rent", snap.Genre, 1, now, now))

	items, err := store.List(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, id, items[0].ID)
	assert.Equal(t, snap.Title, items[0].Title)
	assert.Equal(t, models.ModeRent, items[0].Mode)
	assert.Equal(t, 1, items[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListFailureIsStoreUnavailable(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM cart_items").
		WillReturnError(errors.New("connection refused"))

	_, err := store.List(context.Background(), 1)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestUpdateQuantityAppliesDelta(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT quantity FROM cart_items").
		WithArgs("row-1", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(2))
	mock.ExpectExec("UPDATE cart_items SET quantity").
		WithArgs(3, sqlmock.AnyArg(), "row-1", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.UpdateQuantity(context.Background(), 5, "row-1", 1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateQuantityFloorsAtOne(t *testing.T) {
	store, mock := newMockStore(t)

	// Quantity 1 with a -1 delta: the store commits without writing.
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT quantity FROM cart_items").
		WithArgs("row-1", int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(1))
	mock.ExpectCommit()

	err := store.UpdateQuantity(context.Background(), 5, "row-1", -1)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateQuantityMissingRow(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT quantity FROM cart_items").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	err := store.UpdateQuantity(context.Background(), 5, "gone", 1)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestRemoveIsIdempotent(t *testing.T) {
	store, mock := newMockStore(t)

	// First delete hits a row, the second hits nothing; both succeed.
	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs("row-1", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM cart_items").
		WithArgs("row-1", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Remove(context.Background(), 5, "row-1"))
	require.NoError(t, store.Remove(context.Background(), 5, "row-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
