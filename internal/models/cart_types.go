package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Mode is the intent under which a cart row was added.
type Mode string

const (
	ModeBuy  Mode = "buy"
	ModeRent Mode = "rent"
)

// Valid reports whether m is one of the two known intents.
func (m Mode) Valid() bool {
	return m == ModeBuy || m == ModeRent
}

// CartItem defines the struct for the 'cart_items' table.
// One row represents a quantity of one book under one buy/rent intent.
// The descriptive fields are snapshots taken at add time, not live links to
// the books table. Quantity never drops below 1.
type CartItem struct {
	ID        string          `json:"id" db:"id"`
	UserID    int64           `json:"-" db:"user_id"`
	Title     string          `json:"title" db:"title"`
	Author    string          `json:"author" db:"author"`
	ImageURL  string          `json:"imageUrl" db:"image_url"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Rent      decimal.Decimal `json:"rent" db:"rent"`
	Mode      Mode            `json:"mode" db:"mode"`
	Genre     string          `json:"genre" db:"genre"`
	Quantity  int             `json:"quantity" db:"quantity"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}
