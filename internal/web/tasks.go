package web

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/conorfennell/studydash/internal/domain"
)

// handleTasks handles the tasks page; GET accepts ?tag= and ?status=
// filters.
func (s *Server) handleTasks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.tasks.SetParams(TaskFilter{
				Tag:    r.URL.Query().Get("tag"),
				Status: r.URL.Query().Get("status"),
			})
			s.render(w, "tasks", map[string]any{
				"Tasks":   s.tasks.Rows(),
				"Filter":  s.tasks.Params(),
				"Loading": s.tasks.Loading(),
			})
		case http.MethodPost:
			in := domain.TaskInput{
				Title:       r.PostFormValue("title"),
				Description: r.PostFormValue("description"),
				DueDate:     formDate(r, "due_date"),
				Priority:    r.PostFormValue("priority"),
				Tag:         r.PostFormValue("tag"),
			}
			if err := s.validate.Struct(in); err != nil {
				s.flash(w, "A task needs a title and a valid priority")
				return
			}
			if _, err := s.db.CreateTask(in); err != nil {
				slog.Error("failed to create task", "error", err)
				s.flash(w, "Failed to add task")
				return
			}
			s.tasks.Invalidate()
			s.render(w, "task_list", map[string]any{"Tasks": s.tasks.Rows()})
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleDeleteTask deletes a task and re-renders the task list.
func (s *Server) handleDeleteTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := pathID(r, "/tasks/")
		if !ok {
			http.Error(w, "Invalid task ID", http.StatusBadRequest)
			return
		}
		if err := s.db.DeleteTask(id); err != nil {
			slog.Error("failed to delete task", "id", id, "error", err)
			s.flash(w, "Failed to delete task")
			return
		}
		s.tasks.Invalidate()
		s.render(w, "task_list", map[string]any{"Tasks": s.tasks.Rows()})
	}
}

// handleTaskStatus transitions a task to the status named in the form.
// Completing stamps the completion time; leaving completed clears it.
func (s *Server) handleTaskStatus() http.HandlerFunc {
	valid := map[string]bool{
		domain.StatusPending:   true,
		domain.StatusCompleted: true,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/tasks/status/"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid task ID", http.StatusBadRequest)
			return
		}
		status := r.PostFormValue("status")
		if !valid[status] {
			s.flash(w, "Unknown task status")
			return
		}
		if err := s.db.UpdateTaskStatus(id, status); err != nil {
			slog.Error("failed to update task status", "id", id, "status", status, "error", err)
			s.flash(w, "Failed to update task")
			return
		}
		s.tasks.Invalidate()
		s.render(w, "task_list", map[string]any{"Tasks": s.tasks.Rows()})
	}
}
