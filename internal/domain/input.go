package domain

import "time"

// Input types carry user-supplied fields into the repositories. Validation
// happens at the form boundary (see internal/web); the repositories assume
// the input has already been checked.

// SubjectInput holds the editable fields of a subject.
type SubjectInput struct {
	Name        string `validate:"required"`
	Description string
	Color       string
}

// NoteInput holds the editable fields of a note.
type NoteInput struct {
	SubjectID int64  `validate:"required,gt=0"`
	Title     string `validate:"required"`
	Content   string
}

// FlashcardInput holds the editable fields of a flashcard.
type FlashcardInput struct {
	SubjectID int64  `validate:"required,gt=0"`
	Question  string `validate:"required"`
	Answer    string `validate:"required"`
}

// TaskInput holds the editable fields of a task. Status is not part of the
// input: status changes go through the dedicated status transition.
type TaskInput struct {
	Title       string `validate:"required"`
	Description string
	DueDate     *time.Time
	Priority    string `validate:"omitempty,oneof=high medium low"`
	Tag         string
}

// CompetitionInput holds the editable fields of a competition.
type CompetitionInput struct {
	Name        string `validate:"required"`
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	Location    string
	Category    string
	URL         string `validate:"omitempty,url"`
	Notes       string
}

// FileInput holds the editable fields of a file record.
type FileInput struct {
	Name      string `validate:"required"`
	Path      string `validate:"required"`
	Type      string
	Size      int64 `validate:"gte=0"`
	SubjectID *int64
}

// SessionInput holds the fields of a new study session.
type SessionInput struct {
	SubjectID int64  `validate:"required,gt=0"`
	Subject   string `validate:"required"`
	Date      time.Time
	Duration  int `validate:"gt=0"`
	Notes     string
}
