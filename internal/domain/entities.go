package domain

import (
	"database/sql"
	"time"
)

// Task status values. The store defaults new tasks to StatusPending.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Task priority values. The store defaults new tasks to PriorityMedium.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Subject groups notes, flashcards and files under one topic.
type Subject struct {
	ID          int64
	Name        string
	Description string
	Color       string
	CreatedAt   time.Time
}

// Note is a markdown note attached to a subject.
// SubjectName is only populated by list queries that join the subject.
type Note struct {
	ID          int64
	SubjectID   int64
	Title       string
	Content     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	SubjectName string
}

// Flashcard is a question/answer pair attached to a subject.
// LastReviewed is set only by the review flow, never by create or edit.
type Flashcard struct {
	ID           int64
	SubjectID    int64
	Question     string
	Answer       string
	CreatedAt    time.Time
	LastReviewed sql.NullTime
	SubjectName  string
}

// Task is a standalone to-do item. CompletedAt tracks the status invariant:
// set when the task transitions to completed, cleared otherwise.
type Task struct {
	ID          int64
	Title       string
	Description string
	DueDate     sql.NullTime
	Status      string
	Priority    string
	Tag         string
	CreatedAt   time.Time
	CompletedAt sql.NullTime
}

// Competition is an event. StartDate drives all upcoming/past and
// countdown logic.
type Competition struct {
	ID          int64
	Name        string
	Description string
	StartDate   sql.NullTime
	EndDate     sql.NullTime
	Location    string
	Category    string
	URL         string
	Notes       string
	CreatedAt   time.Time
}

// File is metadata about a file on disk; no binary content is stored.
type File struct {
	ID          int64
	Name        string
	Path        string
	Type        string
	Size        int64
	SubjectID   sql.NullInt64
	CreatedAt   time.Time
	SubjectName string
}

// StudySession is one planner entry, persisted outside the relational
// store as part of a whole-overwrite JSON list.
type StudySession struct {
	ID        int64     `json:"id"`
	SubjectID int64     `json:"subject_id"`
	Subject   string    `json:"subject"`
	Date      time.Time `json:"date"`
	Duration  int       `json:"duration"`
	Notes     string    `json:"notes"`
}
