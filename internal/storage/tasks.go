package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/conorfennell/studydash/internal/domain"
)

// CreateTask inserts a new task and returns its id. Status defaults to
// pending and priority to medium when not supplied.
func (db *DB) CreateTask(in domain.TaskInput) (int64, error) {
	if db.conn == nil {
		return 0, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	priority := in.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	due := sql.NullTime{}
	if in.DueDate != nil {
		due = sql.NullTime{Time: *in.DueDate, Valid: true}
	}
	res, err := db.conn.Exec(`
		INSERT INTO tasks (title, description, due_date, status, priority, tag, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, in.Title, in.Description, due, domain.StatusPending, priority, in.Tag, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to insert task %q: %w", in.Title, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for task %q: %w", in.Title, err)
	}
	return id, nil
}

// GetTasks returns tasks ordered by due date ascending with undated tasks
// last. tag and status are optional equality filters; both, either or
// neither may be set.
func (db *DB) GetTasks(tag, status string) ([]domain.Task, error) {
	if db.conn == nil {
		return nil, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	query := `
		SELECT id, title, description, due_date, status, priority, tag, created_at, completed_at
		FROM tasks`
	var args []any
	switch {
	case tag != "" && status != "":
		query += ` WHERE tag = ? AND status = ?`
		args = append(args, tag, status)
	case tag != "":
		query += ` WHERE tag = ?`
		args = append(args, tag)
	case status != "":
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY due_date IS NULL, due_date`

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get tasks: %w", err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate,
			&t.Status, &t.Priority, &t.Tag, &t.CreatedAt, &t.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask retrieves a task by id. A missing row is (nil, nil).
func (db *DB) GetTask(id int64) (*domain.Task, error) {
	if db.conn == nil {
		return nil, ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	var t domain.Task
	err := db.conn.QueryRow(`
		SELECT id, title, description, due_date, status, priority, tag, created_at, completed_at
		FROM tasks WHERE id = ?
	`, id).Scan(&t.ID, &t.Title, &t.Description, &t.DueDate,
		&t.Status, &t.Priority, &t.Tag, &t.CreatedAt, &t.CompletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find task %d: %w", id, err)
	}
	return &t, nil
}

// UpdateTask replaces the editable fields of a task. Status transitions go
// through UpdateTaskStatus so the completed_at invariant holds.
func (db *DB) UpdateTask(id int64, in domain.TaskInput) error {
	if db.conn == nil {
		return ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	due := sql.NullTime{}
	if in.DueDate != nil {
		due = sql.NullTime{Time: *in.DueDate, Valid: true}
	}
	_, err := db.conn.Exec(`
		UPDATE tasks SET title = ?, description = ?, due_date = ?, priority = ?, tag = ?
		WHERE id = ?
	`, in.Title, in.Description, due, in.Priority, in.Tag, id)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", id, err)
	}
	return nil
}

// UpdateTaskStatus transitions a task's status. Moving to completed stamps
// completed_at; any other status clears it.
func (db *DB) UpdateTaskStatus(id int64, status string) error {
	if db.conn == nil {
		return ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	completedAt := sql.NullTime{}
	if status == domain.StatusCompleted {
		completedAt = sql.NullTime{Time: time.Now(), Valid: true}
	}
	_, err := db.conn.Exec(`
		UPDATE tasks SET status = ?, completed_at = ? WHERE id = ?
	`, status, completedAt, id)
	if err != nil {
		return fmt.Errorf("failed to update status for task %d: %w", id, err)
	}
	return nil
}

// DeleteTask removes a task.
func (db *DB) DeleteTask(id int64) error {
	if db.conn == nil {
		return ErrStoreUnavailable
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return nil
}
