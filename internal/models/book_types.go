package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Book is the model for the 'books' table.
// Descriptive pricing fields use decimal so rupee amounts survive aggregation
// without float drift.
type Book struct {
	ID          string          `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Author      string          `json:"author" db:"author"`
	ImageURL    string          `json:"imageUrl" db:"image_url"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Rent        decimal.Decimal `json:"rent" db:"rent"`
	Deposit     decimal.Decimal `json:"deposit" db:"deposit"`
	TotalRent   decimal.Decimal `json:"totalRent" db:"total_rent"`
	Rating      float64         `json:"rating" db:"rating"`
	Genre       string          `json:"genre" db:"genre"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}

// BookSnapshot carries the descriptive fields copied onto a cart row at add
// time. A later edit to the book record does not touch existing cart rows.
type BookSnapshot struct {
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	ImageURL string          `json:"imageUrl"`
	Price    decimal.Decimal `json:"price"`
	Rent     decimal.Decimal `json:"rent"`
	Genre    string          `json:"genre"`
}

// Snapshot returns the add-to-cart copy of the book's descriptive fields.
func (b *Book) Snapshot() BookSnapshot {
	return BookSnapshot{
		Title:    b.Title,
		Author:   b.Author,
		ImageURL: b.ImageURL,
		Price:    b.Price,
		Rent:     b.Rent,
		Genre:    b.Genre,
	}
}
