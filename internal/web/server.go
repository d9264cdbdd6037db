package web

import (
	"embed"
	"html/template"
	"io/fs"
	"log"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/conorfennell/studydash/internal/binding"
	"github.com/conorfennell/studydash/internal/config"
	"github.com/conorfennell/studydash/internal/domain"
	"github.com/conorfennell/studydash/internal/planner"
	"github.com/conorfennell/studydash/internal/storage"
)

//go:embed all:static
var staticFiles embed.FS

//go:embed all:templates
var templateFiles embed.FS

// TaskFilter is the tasks binding's filter parameters.
type TaskFilter struct {
	Tag    string
	Status string
}

// Server holds the dependencies for the HTTP server. Each entity's list
// query lives behind a read binding; write handlers invalidate the owning
// binding instead of forcing a full reload.
type Server struct {
	db       *storage.DB
	sessions *planner.Store
	cfg      *config.Config
	router   *http.ServeMux
	tmpl     *template.Template
	validate *validator.Validate

	subjects     *binding.Binding[struct{}, domain.Subject]
	notes        *binding.Binding[int64, domain.Note]
	flashcards   *binding.Binding[int64, domain.Flashcard]
	tasks        *binding.Binding[TaskFilter, domain.Task]
	competitions *binding.Binding[string, domain.Competition]
	files        *binding.Binding[int64, domain.File]
}

// NewServer creates and configures a new server.
func NewServer(db *storage.DB, sessions *planner.Store, cfg *config.Config) *Server {
	funcs := template.FuncMap{
		"duration": planner.FormatDuration,
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	s := &Server{
		db:       db,
		sessions: sessions,
		cfg:      cfg,
		router:   http.NewServeMux(),
		tmpl:     tmpl,
		validate: validator.New(),

		subjects: binding.New("subjects", func(struct{}) ([]domain.Subject, error) {
			return db.GetSubjects()
		}),
		notes: binding.New("notes", func(subjectID int64) ([]domain.Note, error) {
			return db.GetNotes(subjectID)
		}),
		flashcards: binding.New("flashcards", func(subjectID int64) ([]domain.Flashcard, error) {
			return db.GetFlashcards(subjectID)
		}),
		tasks: binding.New("tasks", func(f TaskFilter) ([]domain.Task, error) {
			return db.GetTasks(f.Tag, f.Status)
		}),
		competitions: binding.New("competitions", func(category string) ([]domain.Competition, error) {
			return db.GetCompetitions(category)
		}),
		files: binding.New("files", func(subjectID int64) ([]domain.File, error) {
			return db.GetFiles(subjectID)
		}),
	}
	s.routes()
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// routes sets up the routing for the server.
func (s *Server) routes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		log.Fatalf("Failed to create sub-filesystem for static assets: %v", err)
	}
	s.router.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.HandleFunc("/", s.handleDashboard())

	s.router.HandleFunc("/subjects", s.handleSubjects())
	s.router.HandleFunc("/subjects/", s.handleDeleteSubject())

	s.router.HandleFunc("/notes", s.handleNotes())
	s.router.HandleFunc("/notes/", s.handleDeleteNote())

	s.router.HandleFunc("/flashcards", s.handleFlashcards())
	s.router.HandleFunc("/flashcards/", s.handleDeleteFlashcard())
	s.router.HandleFunc("/review", s.handleReview())
	s.router.HandleFunc("/review/", s.handlePostReview())
	s.router.HandleFunc("/import", s.handleImport())

	s.router.HandleFunc("/tasks", s.handleTasks())
	s.router.HandleFunc("/tasks/", s.handleDeleteTask())
	s.router.HandleFunc("/tasks/status/", s.handleTaskStatus())

	s.router.HandleFunc("/competitions", s.handleCompetitions())
	s.router.HandleFunc("/competitions/", s.handleDeleteCompetition())
	s.router.HandleFunc("/countdown", s.handleCountdown())
	s.router.HandleFunc("/calendar", s.handleCalendar())

	s.router.HandleFunc("/files", s.handleFiles())
	s.router.HandleFunc("/files/", s.handleDeleteFile())

	s.router.HandleFunc("/planner", s.handlePlanner())
	s.router.HandleFunc("/planner/", s.handleDeleteSession())
}

// render executes a template and logs failures; by the time rendering
// breaks, headers are gone, so there is nothing better to do.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
	}
}

// flash renders a transient notification describing a failed action.
func (s *Server) flash(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusUnprocessableEntity)
	s.render(w, "flash", map[string]any{"Message": message})
}
