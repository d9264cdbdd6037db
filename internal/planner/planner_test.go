package planner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/conorfennell/studydash/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "sessions.json"))
}

func TestMissingFileReadsAsEmpty(t *testing.T) {
	s := newTestStore(t)
	sessions, err := s.List()
	if err != nil {
		t.Fatalf("list on missing file: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("expected empty list, got %v", sessions)
	}
}

func TestAddAndRemoveRoundTrip(t *testing.T) {
	s := newTestStore(t)
	day := time.Date(2024, time.January, 5, 14, 0, 0, 0, time.UTC)

	added, err := s.Add(domain.SessionInput{
		SubjectID: 1, Subject: "Maths", Date: day, Duration: 90, Notes: "integrals",
	})
	if err != nil {
		t.Fatalf("add session: %v", err)
	}
	if added.ID == 0 {
		t.Error("expected a non-zero session id")
	}

	second, err := s.Add(domain.SessionInput{SubjectID: 2, Subject: "Physics", Date: day, Duration: 30})
	if err != nil {
		t.Fatalf("add second session: %v", err)
	}
	if second.ID <= added.ID {
		t.Errorf("ids must be strictly increasing: %d then %d", added.ID, second.ID)
	}

	sessions, _ := s.List()
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].Subject != "Maths" || sessions[0].Duration != 90 || sessions[0].Notes != "integrals" {
		t.Errorf("unexpected first session %+v", sessions[0])
	}

	if err := s.Remove(added.ID); err != nil {
		t.Fatalf("remove session: %v", err)
	}
	sessions, _ = s.List()
	if len(sessions) != 1 || sessions[0].ID != second.ID {
		t.Errorf("expected only the second session to remain, got %+v", sessions)
	}
}

func TestRemoveUnknownIDKeepsList(t *testing.T) {
	s := newTestStore(t)
	s.Add(domain.SessionInput{SubjectID: 1, Subject: "Maths", Date: time.Now(), Duration: 10})

	if err := s.Remove(999999); err != nil {
		t.Fatalf("remove unknown id: %v", err)
	}
	sessions, _ := s.List()
	if len(sessions) != 1 {
		t.Errorf("expected list unchanged, got %+v", sessions)
	}
}

func TestFileIsAlwaysACompleteSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sessions.json")
	s := NewStore(path)

	s.Add(domain.SessionInput{SubjectID: 1, Subject: "a", Date: time.Now(), Duration: 5})
	s.Add(domain.SessionInput{SubjectID: 2, Subject: "b", Date: time.Now(), Duration: 5})

	// The on-disk file must parse on its own as the full list.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read session file: %v", err)
	}
	var onDisk []domain.StudySession
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("session file is not valid JSON: %v", err)
	}
	if len(onDisk) != 2 {
		t.Errorf("expected the whole list on disk, got %+v", onDisk)
	}
}

func TestIDCollisionBumpsPastMax(t *testing.T) {
	s := newTestStore(t)
	fixed := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	first, _ := s.Add(domain.SessionInput{SubjectID: 1, Subject: "a", Date: fixed, Duration: 1})
	second, _ := s.Add(domain.SessionInput{SubjectID: 1, Subject: "b", Date: fixed, Duration: 1})
	if second.ID != first.ID+1 {
		t.Errorf("expected collision to bump id by one, got %d then %d", first.ID, second.ID)
	}
}

func TestSessionsOn(t *testing.T) {
	jan5 := time.Date(2024, time.January, 5, 9, 0, 0, 0, time.UTC)
	sessions := []domain.StudySession{
		{ID: 1, Date: time.Date(2024, time.January, 5, 20, 30, 0, 0, time.UTC)},
		{ID: 2, Date: time.Date(2024, time.January, 6, 9, 0, 0, 0, time.UTC)},
	}
	got := SessionsOn(sessions, jan5)
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected only the Jan 5 session, got %+v", got)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(135); got != "2h 15m" {
		t.Errorf("expected 2h 15m, got %s", got)
	}
	if got := FormatDuration(45); got != "0h 45m" {
		t.Errorf("expected 0h 45m, got %s", got)
	}
}
