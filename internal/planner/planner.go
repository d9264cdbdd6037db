// Package planner persists study sessions outside the relational store, as
// a single JSON file holding the whole session list. Every mutation reads
// the entire list, modifies it in memory and writes the entire file back,
// so the file is always a complete, consistent snapshot.
package planner

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/conorfennell/studydash/internal/domain"
)

// Store is the session list repository. The mutex serializes the
// read-modify-write cycle so two mutations never interleave.
type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewStore creates a store backed by the JSON file at path. The file does
// not have to exist yet; a missing file reads as an empty list.
func NewStore(path string) *Store {
	return &Store{path: path, now: time.Now}
}

func (s *Store) load() ([]domain.StudySession, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file %s: %w", s.path, err)
	}
	var sessions []domain.StudySession
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", s.path, err)
	}
	return sessions, nil
}

func (s *Store) save(sessions []domain.StudySession) error {
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sessions: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session file %s: %w", s.path, err)
	}
	return nil
}

// List returns every stored session.
func (s *Store) List() ([]domain.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Add appends a session and rewrites the whole list. IDs are wall-clock
// milliseconds, bumped past the current maximum when the clock collides so
// they stay strictly increasing.
func (s *Store) Add(in domain.SessionInput) (domain.StudySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load()
	if err != nil {
		return domain.StudySession{}, err
	}

	id := s.now().UnixMilli()
	for _, existing := range sessions {
		if existing.ID >= id {
			id = existing.ID + 1
		}
	}

	session := domain.StudySession{
		ID:        id,
		SubjectID: in.SubjectID,
		Subject:   in.Subject,
		Date:      in.Date,
		Duration:  in.Duration,
		Notes:     in.Notes,
	}
	if err := s.save(append(sessions, session)); err != nil {
		return domain.StudySession{}, err
	}
	return session, nil
}

// Remove deletes the session with the given id and rewrites the whole list.
// An unknown id leaves the list untouched.
func (s *Store) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.load()
	if err != nil {
		return err
	}
	kept := sessions[:0]
	for _, session := range sessions {
		if session.ID != id {
			kept = append(kept, session)
		}
	}
	return s.save(kept)
}

// SessionsOn filters sessions to those on the given calendar day.
func SessionsOn(sessions []domain.StudySession, day time.Time) []domain.StudySession {
	var out []domain.StudySession
	for _, session := range sessions {
		if session.Date.Year() == day.Year() &&
			session.Date.Month() == day.Month() &&
			session.Date.Day() == day.Day() {
			out = append(out, session)
		}
	}
	return out
}

// FormatDuration renders minutes as "2h 15m" for the session list.
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
