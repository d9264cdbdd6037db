package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/conorfennell/studydash/internal/domain"
)

// CreateFlashcard inserts a new flashcard and returns its id. last_reviewed
// starts null; only MarkFlashcardReviewed ever sets it.
func (db *DB) CreateFlashcard(in domain.FlashcardInput) (int64, error) {
	if db.conn == nil {
		return 0, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	res, err := db.conn.Exec(`
		INSERT INTO flashcards (subject_id, question, answer, created_at)
		VALUES (?, ?, ?, ?)
	`, in.SubjectID, in.Question, in.Answer, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to insert flashcard: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for flashcard: %w", err)
	}
	return id, nil
}

// GetFlashcards returns flashcards in insertion order. With subjectID > 0
// only that subject's cards are returned; otherwise the subject display name
// is joined onto every row.
func (db *DB) GetFlashcards(subjectID int64) ([]domain.Flashcard, error) {
	if db.conn == nil {
		return nil, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	var rows *sql.Rows
	var err error
	if subjectID > 0 {
		rows, err = db.conn.Query(`
			SELECT id, subject_id, question, answer, created_at, last_reviewed, ''
			FROM flashcards WHERE subject_id = ?
			ORDER BY id
		`, subjectID)
	} else {
		rows, err = db.conn.Query(`
			SELECT flashcards.id, flashcards.subject_id, flashcards.question,
			       flashcards.answer, flashcards.created_at, flashcards.last_reviewed,
			       subjects.name
			FROM flashcards JOIN subjects ON flashcards.subject_id = subjects.id
			ORDER BY flashcards.id
		`)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get flashcards: %w", err)
	}
	defer rows.Close()

	var cards []domain.Flashcard
	for rows.Next() {
		var c domain.Flashcard
		if err := rows.Scan(&c.ID, &c.SubjectID, &c.Question, &c.Answer,
			&c.CreatedAt, &c.LastReviewed, &c.SubjectName); err != nil {
			return nil, fmt.Errorf("failed to scan flashcard row: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// GetFlashcard retrieves a flashcard by id. A missing row is (nil, nil).
func (db *DB) GetFlashcard(id int64) (*domain.Flashcard, error) {
	if db.conn == nil {
		return nil, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	var c domain.Flashcard
	err := db.conn.QueryRow(`
		SELECT id, subject_id, question, answer, created_at, last_reviewed
		FROM flashcards WHERE id = ?
	`, id).Scan(&c.ID, &c.SubjectID, &c.Question, &c.Answer, &c.CreatedAt, &c.LastReviewed)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find flashcard %d: %w", id, err)
	}
	return &c, nil
}

// UpdateFlashcard replaces question and answer. It never touches
// last_reviewed.
func (db *DB) UpdateFlashcard(id int64, question, answer string) error {
	if db.conn == nil {
		return ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		UPDATE flashcards SET question = ?, answer = ? WHERE id = ?
	`, question, answer, id)
	if err != nil {
		return fmt.Errorf("failed to update flashcard %d: %w", id, err)
	}
	return nil
}

// MarkFlashcardReviewed stamps last_reviewed with the current time. Used
// only by the study flow.
func (db *DB) MarkFlashcardReviewed(id int64) error {
	if db.conn == nil {
		return ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		UPDATE flashcards SET last_reviewed = ? WHERE id = ?
	`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to mark flashcard %d reviewed: %w", id, err)
	}
	return nil
}

// DeleteFlashcard removes a flashcard.
func (db *DB) DeleteFlashcard(id int64) error {
	if db.conn == nil {
		return ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`DELETE FROM flashcards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete flashcard %d: %w", id, err)
	}
	return nil
}
