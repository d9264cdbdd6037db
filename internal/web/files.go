package web

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/conorfennell/studydash/internal/domain"
)

// handleFiles handles the files page; GET accepts a ?subject= filter.
// Records point at files already on disk; when the file exists its type and
// size are read from disk rather than trusted from the form.
func (s *Server) handleFiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.files.SetParams(queryInt64(r, "subject"))
			s.render(w, "files", map[string]any{
				"Files":    s.files.Rows(),
				"Subjects": s.subjects.Rows(),
				"Loading":  s.files.Loading(),
			})
		case http.MethodPost:
			in := domain.FileInput{
				Name: r.PostFormValue("name"),
				Path: r.PostFormValue("path"),
				Type: r.PostFormValue("type"),
			}
			if sid := formInt64(r, "subject_id"); sid > 0 {
				in.SubjectID = &sid
			}
			if info, err := os.Stat(in.Path); err == nil && !info.IsDir() {
				in.Size = info.Size()
				if mt, err := mimetype.DetectFile(in.Path); err == nil {
					in.Type = mt.String()
				}
			}
			if err := s.validate.Struct(in); err != nil {
				s.flash(w, "A file needs a name and a path")
				return
			}
			if _, err := s.db.CreateFile(in); err != nil {
				slog.Error("failed to create file record", "error", err)
				s.flash(w, "Failed to add file")
				return
			}
			s.files.Invalidate()
			s.render(w, "file_list", map[string]any{"Files": s.files.Rows()})
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleDeleteFile removes a file record. The file on disk stays put.
func (s *Server) handleDeleteFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := pathID(r, "/files/")
		if !ok {
			http.Error(w, "Invalid file ID", http.StatusBadRequest)
			return
		}
		if err := s.db.DeleteFile(id); err != nil {
			slog.Error("failed to delete file record", "id", id, "error", err)
			s.flash(w, "Failed to delete file")
			return
		}
		s.files.Invalidate()
		s.render(w, "file_list", map[string]any{"Files": s.files.Rows()})
	}
}

// handlePlanner handles the study planner page. Sessions live in the JSON
// session store, not the relational one.
func (s *Server) handlePlanner() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sessions, err := s.sessions.List()
			if err != nil {
				slog.Error("failed to load sessions", "error", err)
			}
			s.render(w, "planner", map[string]any{
				"Sessions": sessions,
				"Subjects": s.subjects.Rows(),
			})
		case http.MethodPost:
			subjectID := formInt64(r, "subject_id")
			subjectName := ""
			if subject, err := s.db.GetSubject(subjectID); err == nil && subject != nil {
				subjectName = subject.Name
			}
			date := time.Now()
			if d := formDate(r, "date"); d != nil {
				date = *d
			}
			in := domain.SessionInput{
				SubjectID: subjectID,
				Subject:   subjectName,
				Date:      date,
				Duration:  int(formInt64(r, "duration")),
				Notes:     r.PostFormValue("notes"),
			}
			if err := s.validate.Struct(in); err != nil {
				s.flash(w, "A session needs a subject and a positive duration")
				return
			}
			if _, err := s.sessions.Add(in); err != nil {
				slog.Error("failed to add session", "error", err)
				s.flash(w, "Failed to add session")
				return
			}
			sessions, _ := s.sessions.List()
			s.render(w, "session_list", map[string]any{"Sessions": sessions})
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleDeleteSession removes one session from the planner.
func (s *Server) handleDeleteSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := pathID(r, "/planner/")
		if !ok {
			http.Error(w, "Invalid session ID", http.StatusBadRequest)
			return
		}
		if err := s.sessions.Remove(id); err != nil {
			slog.Error("failed to remove session", "id", id, "error", err)
			s.flash(w, "Failed to remove session")
			return
		}
		sessions, _ := s.sessions.List()
		s.render(w, "session_list", map[string]any{"Sessions": sessions})
	}
}
