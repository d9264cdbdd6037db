package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/conorfennell/studydash/internal/config"
	"github.com/conorfennell/studydash/internal/domain"
	"github.com/conorfennell/studydash/internal/planner"
	"github.com/conorfennell/studydash/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.DB) {
	t.Helper()
	db, err := storage.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sessions := planner.NewStore(filepath.Join(t.TempDir(), "sessions.json"))
	cfg := &config.Config{
		Listen:             ":0",
		DBPath:             ":memory:",
		SessionsPath:       "sessions.json",
		ReposDir:           t.TempDir(),
		UpcomingWindowDays: 7,
	}
	return NewServer(db, sessions, cfg), db
}

func postForm(t *testing.T, s *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func TestPagesRender(t *testing.T) {
	s, _ := newTestServer(t)
	for _, path := range []string{
		"/", "/subjects", "/notes", "/flashcards", "/review",
		"/tasks", "/competitions", "/countdown", "/calendar",
		"/files", "/planner",
	} {
		t.Run(path, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
			if w.Code != http.StatusOK {
				t.Errorf("GET %s returned %d", path, w.Code)
			}
		})
	}
}

func TestSubjectLifecycle(t *testing.T) {
	s, db := newTestServer(t)

	w := postForm(t, s, "/subjects", url.Values{"name": {"Chemistry"}})
	if w.Code != http.StatusOK {
		t.Fatalf("create subject returned %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Chemistry") {
		t.Error("expected re-rendered list to contain the new subject")
	}

	subjects, err := db.GetSubjects()
	if err != nil || len(subjects) != 1 {
		t.Fatalf("expected 1 subject in the store, got %d (err %v)", len(subjects), err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/subjects/1", nil)
	w = httptest.NewRecorder()
	s.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete subject returned %d", w.Code)
	}
	subjects, _ = db.GetSubjects()
	if len(subjects) != 0 {
		t.Errorf("expected empty store after delete, got %d subjects", len(subjects))
	}
}

func TestInvalidSubjectFlashes(t *testing.T) {
	s, db := newTestServer(t)

	w := postForm(t, s, "/subjects", url.Values{"description": {"no name"}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for a nameless subject, got %d", w.Code)
	}
	subjects, _ := db.GetSubjects()
	if len(subjects) != 0 {
		t.Error("invalid input must not reach the store")
	}
}

func TestTaskStatusFlow(t *testing.T) {
	s, db := newTestServer(t)

	if w := postForm(t, s, "/tasks", url.Values{"title": {"Revise"}}); w.Code != http.StatusOK {
		t.Fatalf("create task returned %d", w.Code)
	}
	if w := postForm(t, s, "/tasks/status/1", url.Values{"status": {"completed"}}); w.Code != http.StatusOK {
		t.Fatalf("complete task returned %d", w.Code)
	}

	task, err := db.GetTask(1)
	if err != nil || task == nil {
		t.Fatalf("expected task 1, got %v (err %v)", task, err)
	}
	if task.Status != domain.StatusCompleted || !task.CompletedAt.Valid {
		t.Errorf("expected completed task with timestamp, got status=%s valid=%v",
			task.Status, task.CompletedAt.Valid)
	}

	if w := postForm(t, s, "/tasks/status/1", url.Values{"status": {"sideways"}}); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for an unknown status, got %d", w.Code)
	}
}

func TestReviewMarksCard(t *testing.T) {
	s, db := newTestServer(t)

	sid, err := db.CreateSubject(domain.SubjectInput{Name: "Biology"})
	if err != nil {
		t.Fatalf("create subject: %v", err)
	}
	cid, err := db.CreateFlashcard(domain.FlashcardInput{
		SubjectID: sid, Question: "Powerhouse of the cell?", Answer: "Mitochondria",
	})
	if err != nil {
		t.Fatalf("create flashcard: %v", err)
	}

	if w := postForm(t, s, "/review/1", nil); w.Code != http.StatusOK {
		t.Fatalf("review returned %d", w.Code)
	}
	card, _ := db.GetFlashcard(cid)
	if card == nil || !card.LastReviewed.Valid {
		t.Error("expected review to stamp last_reviewed")
	}
}

func TestDegradedStoreStillServes(t *testing.T) {
	sessions := planner.NewStore(filepath.Join(t.TempDir(), "sessions.json"))
	cfg := &config.Config{UpcomingWindowDays: 7}
	s := NewServer(storage.Unavailable(), sessions, cfg)

	w := httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/subjects", nil))
	if w.Code != http.StatusOK {
		t.Errorf("degraded store should still render pages, got %d", w.Code)
	}

	if w := postForm(t, s, "/subjects", url.Values{"name": {"Doomed"}}); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 writing to a degraded store, got %d", w.Code)
	}
}
