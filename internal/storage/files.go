package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/conorfennell/studydash/internal/domain"
)

// CreateFile inserts a new file metadata record and returns its id. The
// subject reference is optional.
func (db *DB) CreateFile(in domain.FileInput) (int64, error) {
	if db.conn == nil {
		return 0, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	subjectID := sql.NullInt64{}
	if in.SubjectID != nil {
		subjectID = sql.NullInt64{Int64: *in.SubjectID, Valid: true}
	}
	res, err := db.conn.Exec(`
		INSERT INTO files (name, path, type, size, subject_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, in.Name, in.Path, in.Type, in.Size, subjectID, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to insert file %q: %w", in.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for file %q: %w", in.Name, err)
	}
	return id, nil
}

// GetFiles returns file records newest first. With subjectID > 0 only that
// subject's files are returned; otherwise the subject display name is
// joined onto every row (empty for unattached files).
func (db *DB) GetFiles(subjectID int64) ([]domain.File, error) {
	if db.conn == nil {
		return nil, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	var rows *sql.Rows
	var err error
	if subjectID > 0 {
		rows, err = db.conn.Query(`
			SELECT id, name, path, type, size, subject_id, created_at, ''
			FROM files WHERE subject_id = ?
			ORDER BY created_at DESC
		`, subjectID)
	} else {
		rows, err = db.conn.Query(`
			SELECT files.id, files.name, files.path, files.type, files.size,
			       files.subject_id, files.created_at, COALESCE(subjects.name, '')
			FROM files LEFT JOIN subjects ON files.subject_id = subjects.id
			ORDER BY files.created_at DESC
		`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get files: %w", err)
	}
	defer rows.Close()

	var files []domain.File
	for rows.Next() {
		var f domain.File
		if err := rows.Scan(&f.ID, &f.Name, &f.Path, &f.Type, &f.Size,
			&f.SubjectID, &f.CreatedAt, &f.SubjectName); err != nil {
			return nil, fmt.Errorf("failed to scan file row: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// GetFile retrieves a file record by id. A missing row is (nil, nil).
func (db *DB) GetFile(id int64) (*domain.File, error) {
	if db.conn == nil {
		return nil, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	var f domain.File
	err := db.conn.QueryRow(`
		SELECT id, name, path, type, size, subject_id, created_at
		FROM files WHERE id = ?
	`, id).Scan(&f.ID, &f.Name, &f.Path, &f.Type, &f.Size, &f.SubjectID, &f.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find file %d: %w", id, err)
	}
	return &f, nil
}

// UpdateFile replaces name, path and subject reference. Type and size are
// facts about the file on disk and are not editable.
func (db *DB) UpdateFile(id int64, name, path string, subjectID *int64) error {
	if db.conn == nil {
		return ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	sid := sql.NullInt64{}
	if subjectID != nil {
		sid = sql.NullInt64{Int64: *subjectID, Valid: true}
	}
	_, err := db.conn.Exec(`
		UPDATE files SET name = ?, path = ?, subject_id = ? WHERE id = ?
	`, name, path, sid, id)
	if err != nil {
		return fmt.Errorf("failed to update file %d: %w", id, err)
	}
	return nil
}

// DeleteFile removes a file record. The file on disk is untouched.
func (db *DB) DeleteFile(id int64) error {
	if db.conn == nil {
		return ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`DELETE FROM files WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete file %d: %w", id, err)
	}
	return nil
}
