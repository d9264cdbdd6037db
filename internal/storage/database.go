package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// ErrStoreUnavailable is returned by every operation on a store that failed
// to initialize. Callers treat it as "no rows" rather than crashing.
var ErrStoreUnavailable = errors.New("store unavailable")

// DB wraps the SQL database connection. All access is serialized through the
// mutex so there is a single writer at any moment; each repository method
// holds the lock for its full statement, including scans.
type DB struct {
	mu   sync.Mutex
	conn *sql.DB
}

// Open creates a new database connection and ensures the schema exists.
// Applying the schema is idempotent: every table is create-if-absent.
func Open(dsn string) (*DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps all statements on one database handle. With
	// more, an in-memory DSN would give each pooled connection its own
	// empty database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: db}, nil
}

// Unavailable returns an inert store. Every operation on it reports
// ErrStoreUnavailable; reads additionally return empty results. Used as the
// fallback when Open fails so the rest of the application keeps running.
func Unavailable() *DB {
	return &DB{}
}

// Available reports whether the store initialized successfully.
func (db *DB) Available() bool {
	return db.conn != nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	return db.conn.Close()
}
