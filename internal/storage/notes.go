package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/conorfennell/studydash/internal/domain"
)

// CreateNote inserts a new note and returns its id. created_at and
// updated_at start equal.
func (db *DB) CreateNote(in domain.NoteInput) (int64, error) {
	if db.conn == nil {
		return 0, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	now := time.Now()
	res, err := db.conn.Exec(`
		INSERT INTO notes (subject_id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, in.SubjectID, in.Title, in.Content, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to insert note %q: %w", in.Title, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for note %q: %w", in.Title, err)
	}
	return id, nil
}

// GetNotes returns notes newest first. With subjectID > 0 only that
// subject's notes are returned; otherwise the subject display name is
// joined onto every row.
func (db *DB) GetNotes(subjectID int64) ([]domain.Note, error) {
	if db.conn == nil {
		return nil, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	var rows *sql.Rows
	var err error
	if subjectID > 0 {
		rows, err = db.conn.Query(`
			SELECT id, subject_id, title, content, created_at, updated_at, ''
			FROM notes WHERE subject_id = ?
			ORDER BY created_at DESC
		`, subjectID)
	} else {
		rows, err = db.conn.Query(`
			SELECT notes.id, notes.subject_id, notes.title, notes.content,
			       notes.created_at, notes.updated_at, subjects.name
			FROM notes JOIN subjects ON notes.subject_id = subjects.id
			ORDER BY notes.created_at DESC
		`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.SubjectID, &n.Title, &n.Content,
			&n.CreatedAt, &n.UpdatedAt, &n.SubjectName); err != nil {
			return nil, fmt.Errorf("failed to scan note row: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// GetNote retrieves a note by id. A missing row is (nil, nil).
func (db *DB) GetNote(id int64) (*domain.Note, error) {
	if db.conn == nil {
		return nil, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	var n domain.Note
	err := db.conn.QueryRow(`
		SELECT id, subject_id, title, content, created_at, updated_at
		FROM notes WHERE id = ?
	`, id).Scan(&n.ID, &n.SubjectID, &n.Title, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find note %d: %w", id, err)
	}
	return &n, nil
}

// UpdateNote replaces title and content and stamps updated_at.
func (db *DB) UpdateNote(id int64, title, content string) error {
	if db.conn == nil {
		return ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ?
	`, title, content, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update note %d: %w", id, err)
	}
	return nil
}

// DeleteNote removes a note.
func (db *DB) DeleteNote(id int64) error {
	if db.conn == nil {
		return ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note %d: %w", id, err)
	}
	return nil
}
