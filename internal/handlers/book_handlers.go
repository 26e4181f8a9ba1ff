package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bookhive-app/bookhive-golang/internal/models"
)

var errBookNotFound = errors.New("book not found")

const bookColumns = "id, title, author, image_url, description, price, rent, deposit, total_rent, rating, genre, created_at"

func scanBook(row interface{ Scan(...any) error }) (models.Book, error) {
	var b models.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.ImageURL, &b.Description,
		&b.Price, &b.Rent, &b.Deposit, &b.TotalRent, &b.Rating, &b.Genre, &b.CreatedAt,
	)
	return b, err
}

func (h *Handlers) getBookByID(ctx context.Context, id string) (models.Book, error) {
	row := h.DB.QueryRowContext(ctx, "SELECT "+bookColumns+" FROM books WHERE id = ?", id)
	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Book{}, errBookNotFound
	}
	return book, err
}

// GetBooks is the handler for GET /v1/books
// An optional ?genre= query narrows the shelf to one genre (simple equality
// filter, like the dashboard's genre chips).
func (h *Handlers) GetBooks(c *gin.Context) {
	query := "SELECT " + bookColumns + " FROM books"
	args := []any{}

	if genre := c.Query("genre"); genre != "" {
		query += " WHERE genre = ?"
		args = append(args, genre)
	}
	query += " ORDER BY created_at DESC"

	rows, err := h.DB.QueryContext(c.Request.Context(), query, args...)
	if err != nil {
		h.Log.Error().Err(err).Msg("book listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch books"})
		return
	}
	defer rows.Close()

	var books []models.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to scan book"})
			return
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error iterating books"})
		return
	}

	if books == nil {
		books = []models.Book{}
	}
	c.JSON(http.StatusOK, gin.H{"books": books})
}

// GetBook is the handler for GET /v1/books/:id
func (h *Handlers) GetBook(c *gin.Context) {
	book, err := h.getBookByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, errBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch book"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"book": book})
}

// BookInput defines the JSON for creating or updating a book.
type BookInput struct {
	Title       string          `json:"title" binding:"required"`
	Author      string          `json:"author" binding:"required"`
	ImageURL    string          `json:"imageUrl" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Rent        decimal.Decimal `json:"rent"`
	Deposit     decimal.Decimal `json:"deposit"`
	Rating      float64         `json:"rating"`
	Genre       string          `json:"genre"`
}

func (in *BookInput) applyDefaults() {
	if in.Description == "" {
		in.Description = "No description available."
	}
	if in.Genre == "" {
		in.Genre = "Unknown"
	}
	if in.Rating == 0 {
		in.Rating = 4.0
	}
	if in.Deposit.IsZero() {
		in.Deposit = decimal.NewFromInt(100)
	}
}

// CreateBook is the handler for POST /v1/admin/books
func (h *Handlers) CreateBook(c *gin.Context) {
	var input BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.applyDefaults()

	id := uuid.NewString()
	totalRent := input.Rent.Add(input.Deposit)

	query := `
		INSERT INTO books
		(id, title, author, image_url, description, price, rent, deposit, total_rent, rating, genre, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := h.DB.ExecContext(c.Request.Context(), query,
		id, input.Title, input.Author, input.ImageURL, input.Description,
		input.Price, input.Rent, input.Deposit, totalRent, input.Rating, input.Genre, time.Now())
	if err != nil {
		h.Log.Error().Err(err).Str("title", input.Title).Msg("book create failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create book"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Book uploaded successfully",
		"bookId":  id,
	})
}

// UpdateBook is the handler for PUT /v1/admin/books/:id
// Existing cart rows keep their add-time snapshot; only the book record
// changes.
func (h *Handlers) UpdateBook(c *gin.Context) {
	bookID := c.Param("id")

	var input BookInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input.applyDefaults()

	query := `
		UPDATE books
		SET title = ?, author = ?, image_url = ?, description = ?,
			price = ?, rent = ?, deposit = ?, total_rent = ?, rating = ?, genre = ?
		WHERE id = ?`

	result, err := h.DB.ExecContext(c.Request.Context(), query,
		input.Title, input.Author, input.ImageURL, input.Description,
		input.Price, input.Rent, input.Deposit, input.Rent.Add(input.Deposit),
		input.Rating, input.Genre, bookID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update book"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Book updated"})
}

// DeleteBook is the handler for DELETE /v1/admin/books/:id
func (h *Handlers) DeleteBook(c *gin.Context) {
	result, err := h.DB.ExecContext(c.Request.Context(),
		"DELETE FROM books WHERE id = ?", c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete book"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Book deleted"})
}
