package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bookhive-app/bookhive-golang/internal/models"
)

// ErrNoLocation means the user has not saved a delivery location yet.
var ErrNoLocation = errors.New("no saved location")

// LocationStore reads and writes the per-user delivery location.
type LocationStore struct {
	db *sql.DB
}

func NewLocationStore(db *sql.DB) *LocationStore {
	return &LocationStore{db: db}
}

func (s *LocationStore) Get(ctx context.Context, userID int64) (*models.Location, error) {
	var loc models.Location
	err := s.db.QueryRowContext(ctx,
		"SELECT user_id, city, state, pincode, updated_at FROM locations WHERE user_id = ?",
		userID).Scan(&loc.UserID, &loc.City, &loc.State, &loc.Pincode, &loc.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoLocation
		}
		return nil, err
	}
	return &loc, nil
}

// Save upserts the user's location; each user keeps exactly one.
func (s *LocationStore) Save(ctx context.Context, userID int64, city, state, pincode string) error {
	query := `
		INSERT INTO locations (user_id, city, state, pincode, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			city = VALUES(city),
			state = VALUES(state),
			pincode = VALUES(pincode),
			updated_at = VALUES(updated_at)`

	_, err := s.db.ExecContext(ctx, query, userID, city, state, pincode, time.Now())
	return err
}

// LocationLine formats the saved location the way the checkout screens show
// it. It satisfies the checkout flow's Locator contract.
func (s *LocationStore) LocationLine(ctx context.Context, userID int64) (string, error) {
	loc, err := s.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s, %s - %s", loc.City, loc.State, loc.Pincode), nil
}
