package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/conorfennell/studydash/internal/domain"
	"github.com/conorfennell/studydash/internal/views"
)

// handleCompetitions handles the competitions page; GET accepts a
// ?category= filter.
func (s *Server) handleCompetitions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			s.competitions.SetParams(r.URL.Query().Get("category"))
			comps := s.competitions.Rows()
			upcoming, past := views.PartitionCompetitions(comps, time.Now())
			s.render(w, "competitions", map[string]any{
				"Competitions": comps,
				"Upcoming":     upcoming,
				"Past":         past,
				"Category":     s.competitions.Params(),
				"Loading":      s.competitions.Loading(),
			})
		case http.MethodPost:
			in := domain.CompetitionInput{
				Name:        r.PostFormValue("name"),
				Description: r.PostFormValue("description"),
				StartDate:   formDate(r, "start_date"),
				EndDate:     formDate(r, "end_date"),
				Location:    r.PostFormValue("location"),
				Category:    r.PostFormValue("category"),
				URL:         r.PostFormValue("url"),
				Notes:       r.PostFormValue("notes"),
			}
			if err := s.validate.Struct(in); err != nil {
				s.flash(w, "A competition needs a name, and the URL must be valid")
				return
			}
			if _, err := s.db.CreateCompetition(in); err != nil {
				slog.Error("failed to create competition", "error", err)
				s.flash(w, "Failed to add competition")
				return
			}
			s.competitions.Invalidate()
			s.render(w, "competition_list", map[string]any{"Competitions": s.competitions.Rows()})
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// handleDeleteCompetition deletes a competition and re-renders the list.
func (s *Server) handleDeleteCompetition() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		id, ok := pathID(r, "/competitions/")
		if !ok {
			http.Error(w, "Invalid competition ID", http.StatusBadRequest)
			return
		}
		if err := s.db.DeleteCompetition(id); err != nil {
			slog.Error("failed to delete competition", "id", id, "error", err)
			s.flash(w, "Failed to delete competition")
			return
		}
		s.competitions.Invalidate()
		s.render(w, "competition_list", map[string]any{"Competitions": s.competitions.Rows()})
	}
}

// handleCountdown renders the live countdown to the next dated competition,
// or to a specific one via ?id=. The page refreshes the digits client-side;
// each request recomputes the remaining time server-side.
func (s *Server) handleCountdown() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		comps := s.competitions.Rows()
		now := time.Now()

		var target *domain.Competition
		if id := queryInt64(r, "id"); id > 0 {
			for i := range comps {
				if comps[i].ID == id {
					target = &comps[i]
					break
				}
			}
		} else {
			if upcoming := views.UpcomingCompetitions(comps, now); len(upcoming) > 0 {
				target = &upcoming[0]
			}
		}
		if target == nil || !target.StartDate.Valid {
			s.render(w, "countdown_empty", nil)
			return
		}

		s.render(w, "countdown", map[string]any{
			"Competition": target,
			"Countdown":   views.Remaining(target.StartDate.Time, now),
		})
	}
}

// handleCalendar renders dated tasks and competitions as one agenda,
// grouped by calendar day.
func (s *Server) handleCalendar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events := views.MergeEvents(s.tasks.Rows(), s.competitions.Rows())
		s.render(w, "calendar", map[string]any{
			"Events": events,
			"Days":   views.GroupByDay(events),
		})
	}
}
