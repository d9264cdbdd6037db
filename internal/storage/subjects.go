package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/conorfennell/studydash/internal/domain"
)

const defaultSubjectColor = "#4F46E5"

// CreateSubject inserts a new subject and returns its id. An empty color
// takes the default indigo used across the UI.
func (db *DB) CreateSubject(in domain.SubjectInput) (int64, error) {
	if db.conn == nil {
		return 0, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	color := in.Color
	if color == "" {
		color = defaultSubjectColor
	}
	res, err := db.conn.Exec(`
		INSERT INTO subjects (name, description, color, created_at)
		VALUES (?, ?, ?, ?)
	`, in.Name, in.Description, color, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to insert subject %q: %w", in.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for subject %q: %w", in.Name, err)
	}
	return id, nil
}

// GetSubjects returns all subjects ordered by name.
func (db *DB) GetSubjects() ([]domain.Subject, error) {
	if db.conn == nil {
		return nil, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	rows, err := db.conn.Query(`
		SELECT id, name, description, color, created_at
		FROM subjects ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get subjects: %w", err)
	}
	defer rows.Close()

	var subjects []domain.Subject
	for rows.Next() {
		var s domain.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Color, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan subject row: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// GetSubject retrieves a subject by id. A missing row is (nil, nil).
func (db *DB) GetSubject(id int64) (*domain.Subject, error) {
	if db.conn == nil {
		return nil, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	var s domain.Subject
	err := db.conn.QueryRow(`
		SELECT id, name, description, color, created_at
		FROM subjects WHERE id = ?
	`, id).Scan(&s.ID, &s.Name, &s.Description, &s.Color, &s.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find subject %d: %w", id, err)
	}
	return &s, nil
}

// UpdateSubject replaces the editable fields of a subject.
func (db *DB) UpdateSubject(id int64, in domain.SubjectInput) error {
	if db.conn == nil {
		return ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		UPDATE subjects SET name = ?, description = ?, color = ? WHERE id = ?
	`, in.Name, in.Description, in.Color, id)
	if err != nil {
		return fmt.Errorf("failed to update subject %d: %w", id, err)
	}
	return nil
}

// DeleteSubject removes the subject row only. Notes, flashcards and files
// keep their soft reference; use DeleteSubjectCascade to remove them too.
func (db *DB) DeleteSubject(id int64) error {
	if db.conn == nil {
		return ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`DELETE FROM subjects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subject %d: %w", id, err)
	}
	return nil
}

// DeleteSubjectCascade removes a subject together with its notes, flashcards
// and file records, in one transaction so a failure leaves everything intact.
func (db *DB) DeleteSubjectCascade(id int64) error {
	if db.conn == nil {
		return ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin cascade delete for subject %d: %w", id, err)
	}
	for _, stmt := range []string{
		`DELETE FROM notes WHERE subject_id = ?`,
		`DELETE FROM flashcards WHERE subject_id = ?`,
		`DELETE FROM files WHERE subject_id = ?`,
		`DELETE FROM subjects WHERE id = ?`,
	} {
		if _, err := tx.Exec(stmt, id); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed cascade delete for subject %d: %w", id, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cascade delete for subject %d: %w", id, err)
	}
	return nil
}
