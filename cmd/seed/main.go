// Command seed loads catalog and notification fixtures from JSON files into
// the database, for bootstrapping a fresh install or a demo environment.
//
//	seed -books books.json
//	seed -notifications notifications.json
//	seed -wipe-books -books books.json
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/bookhive-app/bookhive-golang/internal/config"
	"github.com/bookhive-app/bookhive-golang/internal/database"
	"github.com/bookhive-app/bookhive-golang/internal/logger"
)

type bookFixture struct {
	Title       string           `json:"title"`
	Author      string           `json:"author"`
	Image       string           `json:"image"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	Rent        decimal.Decimal  `json:"rent"`
	Deposit     *decimal.Decimal `json:"deposit"`
	Rating      *float64         `json:"rating"`
	Genre       string           `json:"genre"`
}

type notificationFixture struct {
	Message      string  `json:"message"`
	Type         string  `json:"type"`
	AttachedBook *string `json:"attachedBook"`
}

func main() {
	booksPath := flag.String("books", "", "path to a JSON array of books to insert")
	notificationsPath := flag.String("notifications", "", "path to a JSON array of notifications to insert")
	wipeBooks := flag.Bool("wipe-books", false, "delete all existing books before inserting")
	flag.Parse()

	_ = godotenv.Load()
	log := logger.New("bookhive-seed", "info")

	if *booksPath == "" && *notificationsPath == "" && !*wipeBooks {
		flag.Usage()
		os.Exit(2)
	}

	dbCfg, err := config.LoadDB()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	db, err := database.Open(dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()

	if *wipeBooks {
		res, err := db.ExecContext(ctx, "DELETE FROM books")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to wipe books")
		}
		deleted, _ := res.RowsAffected()
		log.Info().Int64("deleted", deleted).Msg("wiped books table")
	}

	if *booksPath != "" {
		count, err := seedBooks(ctx, db, *booksPath)
		if err != nil {
			log.Fatal().Err(err).Str("file", *booksPath).Msg("failed to seed books")
		}
		log.Info().Int("inserted", count).Msg("seeded books")
	}

	if *notificationsPath != "" {
		count, err := seedNotifications(ctx, db, *notificationsPath)
		if err != nil {
			log.Fatal().Err(err).Str("file", *notificationsPath).Msg("failed to seed notifications")
		}
		log.Info().Int("inserted", count).Msg("seeded notifications")
	}
}

func readFixtures[T any](path string) ([]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fixtures []T
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return fixtures, nil
}

func seedBooks(ctx context.Context, db *sql.DB, path string) (int, error) {
	fixtures, err := readFixtures[bookFixture](path)
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO books
		(id, title, author, image_url, description, price, rent, deposit, total_rent, rating, genre, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	now := time.Now()
	for i, b := range fixtures {
		if b.Title == "" || b.Author == "" {
			return 0, fmt.Errorf("book %d: title and author are required", i)
		}
		if b.Description == "" {
			b.Description = "No description available."
		}
		if b.Genre == "" {
			b.Genre = "Unknown"
		}
		deposit := decimal.NewFromInt(100)
		if b.Deposit != nil {
			deposit = *b.Deposit
		}
		rating := 4.0
		if b.Rating != nil {
			rating = *b.Rating
		}
		totalRent := b.Rent.Add(deposit)

		_, err := stmt.ExecContext(ctx,
			uuid.NewString(), b.Title, b.Author, b.Image, b.Description,
			b.Price, b.Rent, deposit, totalRent, rating, b.Genre, now)
		if err != nil {
			return 0, fmt.Errorf("inserting %q: %w", b.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(fixtures), nil
}

func seedNotifications(ctx context.Context, db *sql.DB, path string) (int, error) {
	fixtures, err := readFixtures[notificationFixture](path)
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	now := time.Now()
	for i, n := range fixtures {
		if n.Message == "" {
			return 0, fmt.Errorf("notification %d: message is required", i)
		}
		if n.Type == "" {
			n.Type = "general"
		}
		var attached sql.NullString
		if n.AttachedBook != nil {
			attached = sql.NullString{String: *n.AttachedBook, Valid: true}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO notifications (message, type, attached_book, created_at)
			VALUES (?, ?, ?, ?)`,
			n.Message, n.Type, attached, now)
		if err != nil {
			return 0, fmt.Errorf("inserting notification %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(fixtures), nil
}
