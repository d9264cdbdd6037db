package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/conorfennell/studydash/internal/domain"
)

// CreateCompetition inserts a new competition and returns its id.
func (db *DB) CreateCompetition(in domain.CompetitionInput) (int64, error) {
	if db.conn == nil {
		return 0, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	start, end := sql.NullTime{}, sql.NullTime{}
	if in.StartDate != nil {
		start = sql.NullTime{Time: *in.StartDate, Valid: true}
	}
	if in.EndDate != nil {
		end = sql.NullTime{Time: *in.EndDate, Valid: true}
	}
	res, err := db.conn.Exec(`
		INSERT INTO competitions (name, description, start_date, end_date, location, category, url, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, in.Name, in.Description, start, end, in.Location, in.Category, in.URL, in.Notes, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to insert competition %q: %w", in.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for competition %q: %w", in.Name, err)
	}
	return id, nil
}

// GetCompetitions returns competitions ordered by start date ascending with
// undated events last. category is an optional equality filter.
func (db *DB) GetCompetitions(category string) ([]domain.Competition, error) {
	if db.conn == nil {
		return nil, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	query := `
		SELECT id, name, description, start_date, end_date, location, category, url, notes, created_at
		FROM competitions`
	var args []any
	if category != "" {
		query += ` WHERE category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY start_date IS NULL, start_date`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get competitions: %w", err)
	}
	defer rows.Close()

	var comps []domain.Competition
	for rows.Next() {
		var c domain.Competition
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.StartDate, &c.EndDate,
			&c.Location, &c.Category, &c.URL, &c.Notes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan competition row: %w", err)
		}
		comps = append(comps, c)
	}
	return comps, rows.Err()
}

// GetCompetition retrieves a competition by id. A missing row is (nil, nil).
func (db *DB) GetCompetition(id int64) (*domain.Competition, error) {
	if db.conn == nil {
		return nil, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	var c domain.Competition
	err := db.conn.QueryRow(`
		SELECT id, name, description, start_date, end_date, location, category, url, notes, created_at
		FROM competitions WHERE id = ?
	`, id).Scan(&c.ID, &c.Name, &c.Description, &c.StartDate, &c.EndDate,
		&c.Location, &c.Category, &c.URL, &c.Notes, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find competition %d: %w", id, err)
	}
	return &c, nil
}

// UpdateCompetition replaces the editable fields of a competition.
func (db *DB) UpdateCompetition(id int64, in domain.CompetitionInput) error {
	if db.conn == nil {
		return ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	start, end := sql.NullTime{}, sql.NullTime{}
	if in.StartDate != nil {
		start = sql.NullTime{Time: *in.StartDate, Valid: true}
	}
	if in.EndDate != nil {
		end = sql.NullTime{Time: *in.EndDate, Valid: true}
	}
	_, err := db.conn.Exec(`
		UPDATE competitions
		SET name = ?, description = ?, start_date = ?, end_date = ?, location = ?, category = ?, url = ?, notes = ?
		WHERE id = ?
	`, in.Name, in.Description, start, end, in.Location, in.Category, in.URL, in.Notes, id)
	if err != nil {
		return fmt.Errorf("failed to update competition %d: %w", id, err)
	}
	return nil
}

// DeleteCompetition removes a competition.
func (db *DB) DeleteCompetition(id int64) error {
	if db.conn == nil {
		return ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`DELETE FROM competitions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete competition %d: %w", id, err)
	}
	return nil
}
