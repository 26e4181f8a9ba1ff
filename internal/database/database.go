package database

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/bookhive-app/bookhive-golang/internal/config"
)

// Open initializes and returns the application's connection pool.
func Open(cfg config.DBConfig) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Ping the database to verify the connection before handing it out.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
