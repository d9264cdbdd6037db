package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/conorfennell/studydash/internal/domain"
	"github.com/conorfennell/studydash/internal/importer"
	"github.com/conorfennell/studydash/internal/views"
)

// handleDashboard renders the landing page: entity counts plus the upcoming
// task and competition windows.
func (s *Server) handleDashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		tasks := s.tasks.Rows()
		comps := s.competitions.Rows()
		now := time.Now()

		active := 0
		for _, t := range tasks {
			if t.Status != domain.StatusCompleted {
				active++
			}
		}
		upcoming, _ := views.PartitionCompetitions(comps, now)

		s.render(w, "dashboard", map[string]any{
			"SubjectCount":         len(s.subjects.Rows()),
			"NoteCount":            len(s.notes.Rows()),
			"ActiveTasks":          active,
			"UpcomingCount":        len(upcoming),
			"UpcomingTasks":        views.UpcomingTasks(tasks, now, s.cfg.UpcomingWindowDays),
			"UpcomingCompetitions": views.UpcomingCompetitions(comps, now),
		})
	}
}

// handleSubjects handles both GET and POST for the subjects page.
func (s *Server) handleSubjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.render(w, "subjects", map[string]any{
				"Subjects": s.subjects.Rows(),
				"Loading":  s.subjects.Loading(),
			})
		case http.MethodPost:
			in := domain.SubjectInput{
				Name:        r.PostFormValue("name"),
				Description: r.PostFormValue("description"),
				Color:       r.PostFormValue("color"),
			}
			if err := s.validate.Struct(in); err != nil {
				s.flash(w, "Subject name is required")
				return
			}
			if _, err := s.db.CreateSubject(in); err != nil {
				slog.Error("failed to create subject", "error", err)
				s.flash(w, "Failed to add subject")
				return
			}
			s.subjects.Invalidate()
			s.render(w, "subject_list", map[string]any{"Subjects": s.subjects.Rows()})
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleDeleteSubject removes a subject and everything attached to it. The
// confirmation dialog promises the notes, flashcards and files go too, so
// this is the cascade operation.
func (s *Server) handleDeleteSubject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := pathID(r, "/subjects/")
		if !ok {
			http.Error(w, "Invalid subject ID", http.StatusBadRequest)
			return
		}
		if err := s.db.DeleteSubjectCascade(id); err != nil {
			slog.Error("failed to delete subject", "id", id, "error", err)
			s.flash(w, "Failed to delete subject")
			return
		}
		s.subjects.Invalidate()
		s.notes.Invalidate()
		s.flashcards.Invalidate()
		s.files.Invalidate()
		s.render(w, "subject_list", map[string]any{"Subjects": s.subjects.Rows()})
	}
}

// handleNotes handles the notes page; GET accepts a ?subject= filter.
func (s *Server) handleNotes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.notes.SetParams(queryInt64(r, "subject"))
			s.render(w, "notes", map[string]any{
				"Notes":    s.notes.Rows(),
				"Subjects": s.subjects.Rows(),
				"Loading":  s.notes.Loading(),
			})
		case http.MethodPost:
			in := domain.NoteInput{
				SubjectID: formInt64(r, "subject_id"),
				Title:     r.PostFormValue("title"),
				Content:   r.PostFormValue("content"),
			}
			if err := s.validate.Struct(in); err != nil {
				s.flash(w, "A subject and a title are required")
				return
			}
			if _, err := s.db.CreateNote(in); err != nil {
				slog.Error("failed to create note", "error", err)
				s.flash(w, "Failed to add note")
				return
			}
			s.notes.Invalidate()
			s.render(w, "note_list", map[string]any{"Notes": s.notes.Rows()})
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleDeleteNote deletes a note and re-renders the note list.
func (s *Server) handleDeleteNote() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := pathID(r, "/notes/")
		if !ok {
			http.Error(w, "Invalid note ID", http.StatusBadRequest)
			return
		}
		if err := s.db.DeleteNote(id); err != nil {
			slog.Error("failed to delete note", "id", id, "error", err)
			s.flash(w, "Failed to delete note")
			return
		}
		s.notes.Invalidate()
		s.render(w, "note_list", map[string]any{"Notes": s.notes.Rows()})
	}
}

// handleFlashcards handles the flashcards page; GET accepts a ?subject=
// filter.
func (s *Server) handleFlashcards() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.flashcards.SetParams(queryInt64(r, "subject"))
			s.render(w, "flashcards", map[string]any{
				"Flashcards": s.flashcards.Rows(),
				"Subjects":   s.subjects.Rows(),
				"Loading":    s.flashcards.Loading(),
			})
		case http.MethodPost:
			in := domain.FlashcardInput{
				SubjectID: formInt64(r, "subject_id"),
				Question:  r.PostFormValue("question"),
				Answer:    r.PostFormValue("answer"),
			}
			if err := s.validate.Struct(in); err != nil {
				s.flash(w, "A subject, question and answer are required")
				return
			}
			if _, err := s.db.CreateFlashcard(in); err != nil {
				slog.Error("failed to create flashcard", "error", err)
				s.flash(w, "Failed to add flashcard")
				return
			}
			s.flashcards.Invalidate()
			s.render(w, "flashcard_list", map[string]any{"Flashcards": s.flashcards.Rows()})
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleDeleteFlashcard deletes a flashcard and re-renders the card list.
func (s *Server) handleDeleteFlashcard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := pathID(r, "/flashcards/")
		if !ok {
			http.Error(w, "Invalid flashcard ID", http.StatusBadRequest)
			return
		}
		if err := s.db.DeleteFlashcard(id); err != nil {
			slog.Error("failed to delete flashcard", "id", id, "error", err)
			s.flash(w, "Failed to delete flashcard")
			return
		}
		s.flashcards.Invalidate()
		s.render(w, "flashcard_list", map[string]any{"Flashcards": s.flashcards.Rows()})
	}
}

// handleReview renders the next card to study: least recently reviewed
// first, never-reviewed cards before all others.
func (s *Server) handleReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.flashcards.SetParams(queryInt64(r, "subject"))
		cards := s.flashcards.Rows()
		if len(cards) == 0 {
			s.render(w, "review_empty", nil)
			return
		}
		next := cards[0]
		for _, c := range cards[1:] {
			switch {
			case !next.LastReviewed.Valid:
				// keep next
			case !c.LastReviewed.Valid:
				next = c
			case c.LastReviewed.Time.Before(next.LastReviewed.Time):
				next = c
			}
		}
		s.render(w, "review_card", next)
	}
}

// handlePostReview records a review and shows the next card.
func (s *Server) handlePostReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := pathID(r, "/review/")
		if !ok {
			http.Error(w, "Invalid flashcard ID", http.StatusBadRequest)
			return
		}
		card, err := s.db.GetFlashcard(id)
		if err != nil || card == nil {
			http.NotFound(w, r)
			return
		}
		if err := s.db.MarkFlashcardReviewed(id); err != nil {
			slog.Error("failed to record review", "id", id, "error", err)
			s.flash(w, "Failed to record review")
			return
		}
		s.flashcards.Invalidate()
		s.handleReview()(w, r)
	}
}

// handleImport bulk-loads flashcards into a subject from a markdown
// directory or a git repository.
func (s *Server) handleImport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		subjectID := formInt64(r, "subject_id")
		if subjectID <= 0 {
			s.flash(w, "Pick a subject to import into")
			return
		}

		var res importer.Result
		var err error
		if repoURL := r.PostFormValue("url"); repoURL != "" {
			res, err = importer.ImportGit(s.db, subjectID, repoURL, s.cfg.ReposDir)
		} else if dir := r.PostFormValue("dir"); dir != "" {
			res, err = importer.ImportDir(s.db, subjectID, dir)
		} else {
			s.flash(w, "Provide a directory or a repository URL")
			return
		}
		if err != nil {
			slog.Error("import failed", "error", err)
			s.flash(w, "Import failed")
			return
		}

		s.flashcards.Invalidate()
		s.render(w, "import_result", res)
	}
}
