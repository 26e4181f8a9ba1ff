package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookhive-app/bookhive-golang/internal/models"
)

// Store is the request/response contract around the 'cart_items' collection.
// Every call fetches or mutates the authoritative store; there is no local
// caching at this layer.
type Store interface {
	// List returns the user's full cart snapshot, newest rows last.
	List(ctx context.Context, userID int64) ([]models.CartItem, error)

	// Add inserts a new row from a book snapshot and returns its id. It
	// always inserts: adding the same book twice yields two rows.
	Add(ctx context.Context, userID int64, snap models.BookSnapshot, mode models.Mode) (string, error)

	// UpdateQuantity applies a delta to a row's quantity. A delta that would
	// take the quantity below 1 is a silent no-op. A missing row is
	// ErrItemNotFound.
	UpdateQuantity(ctx context.Context, userID int64, id string, delta int) error

	// Remove deletes a row. Removing an id that no longer exists succeeds,
	// so concurrent removal from two views never surfaces an error.
	Remove(ctx context.Context, userID int64, id string) error
}

// SQLStore implements Store against MySQL.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) List(ctx context.Context, userID int64) ([]models.CartItem, error) {
	query := `
		SELECT id, user_id, title, author, image_url, price, rent, mode, genre, quantity, created_at, updated_at
		FROM cart_items
		WHERE user_id = ?
		ORDER BY created_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, unavailable("listing cart items", err)
	}
	defer rows.Close()

	var items []models.CartItem
	for rows.Next() {
		var item models.CartItem
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Title,
			&item.Author,
			&item.ImageURL,
			&item.Price,
			&item.Rent,
			&item.Mode,
			&item.Genre,
			&item.Quantity,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, unavailable("scanning cart item", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterating cart items", err)
	}

	return items, nil
}

func (s *SQLStore) Add(ctx context.Context, userID int64, snap models.BookSnapshot, mode models.Mode) (string, error) {
	if !mode.Valid() {
		return "", fmt.Errorf("invalid cart mode %q", mode)
	}

	id := uuid.NewString()
	now := time.Now()

	query := `
		INSERT INTO cart_items
		(id, user_id, title, author, image_url, price, rent, mode, genre, quantity, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		id, userID, snap.Title, snap.Author, snap.ImageURL, snap.Price, snap.Rent, mode, snap.Genre, now, now)
	if err != nil {
		return "", unavailable("adding cart item", err)
	}

	return id, nil
}

func (s *SQLStore) UpdateQuantity(ctx context.Context, userID int64, id string, delta int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return unavailable("starting quantity update", err)
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRowContext(ctx,
		"SELECT quantity FROM cart_items WHERE id = ? AND user_id = ? FOR UPDATE",
		id, userID).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrItemNotFound
		}
		return unavailable("reading cart quantity", err)
	}

	next, changed := nextQuantity(current, delta)
	if changed {
		_, err = tx.ExecContext(ctx,
			"UPDATE cart_items SET quantity = ?, updated_at = ? WHERE id = ? AND user_id = ?",
			next, time.Now(), id, userID)
		if err != nil {
			return unavailable("updating cart quantity", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return unavailable("committing quantity update", err)
	}
	return nil
}

func (s *SQLStore) Remove(ctx context.Context, userID int64, id string) error {
	// Deliberately ignores RowsAffected: deleting an already-deleted row is
	// a success, not an error.
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM cart_items WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return unavailable("removing cart item", err)
	}
	return nil
}

// nextQuantity applies a delta with the floor-at-1 invariant. The second
// return reports whether a write is needed.
func nextQuantity(current, delta int) (int, bool) {
	next := current + delta
	if next < 1 {
		return current, false
	}
	return next, next != current
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}
