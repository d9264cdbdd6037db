package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"github.com/conorfennell/studydash/internal/config"
	"github.com/conorfennell/studydash/internal/planner"
	"github.com/conorfennell/studydash/internal/storage"
	"github.com/conorfennell/studydash/internal/web"
)

func main() {
	flags := pflag.NewFlagSet("studydash", pflag.ExitOnError)
	configPath := flags.String("config", "", "Path to a YAML config file")
	flags.String("listen", ":8080", "Address to listen on")
	flags.String("db_path", "studydash.db", "Path to the SQLite database file")
	flags.String("sessions_path", "sessions.json", "Path to the study session file")
	flags.String("repos_dir", "repos", "Directory for cloned flashcard repositories")
	flags.Int("upcoming_window_days", 7, "How many days ahead the dashboard looks for due tasks")
	if err := flags.Parse(os.Args[1:]); err != nil {
		slog.Error("failed to parse flags", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath, flags)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// A broken database keeps the server up in a degraded mode: pages render
	// empty and writes fail, rather than the whole app dying.
	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database, continuing without persistence", "path", cfg.DBPath, "error", err)
		db = storage.Unavailable()
	} else {
		defer db.Close()
		slog.Info("database opened", "path", cfg.DBPath)
	}

	sessions := planner.NewStore(cfg.SessionsPath)
	server := web.NewServer(db, sessions, cfg)

	slog.Info("listening", "addr", cfg.Listen)
	if err := http.ListenAndServe(cfg.Listen, server); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
