package postgres

import (
	"database/sql"
	"fmt"
	"time"

	// Register the pgx driver under database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open connects to PostgreSQL with a bounded connection pool. Pool
// exhaustion surfaces to callers as a storage error after the acquisition
// timeout, never as an unbounded wait.
func Open(databaseURL string, maxConns int) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns / 2)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
