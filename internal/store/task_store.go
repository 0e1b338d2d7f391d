package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hvaldez/dayplan/internal/model"
)

// CreateTask inserts a new task after resolving its parent todo list.
func (s *SQLiteStore) CreateTask(ctx context.Context, t *model.Task) error {
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("task description must not be empty")
	}
	if err := s.listExists(ctx, t.ListID); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (id, list_id, description, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.ListID, t.Description, boolToInt(t.Completed), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}
	return nil
}

// GetTaskByID retrieves a single task with its reminder, if any.
func (s *SQLiteStore) GetTaskByID(ctx context.Context, id string) (*model.Task, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT id, list_id, description, completed, created_at, updated_at FROM tasks WHERE id = ?", id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("task", id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}

	r, err := s.reminderForTask(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Reminder = r
	return t, nil
}

// GetTasksByList retrieves all tasks in a todo list, ordered by
// creation time, with reminders loaded.
func (s *SQLiteStore) GetTasksByList(ctx context.Context, listID string) ([]model.Task, error) {
	if err := s.listExists(ctx, listID); err != nil {
		return nil, err
	}
	return s.tasksByList(ctx, listID)
}

// tasksByList loads a list's tasks without re-validating the list;
// callers have already resolved it.
func (s *SQLiteStore) tasksByList(ctx context.Context, listID string) ([]model.Task, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, list_id, description, completed, created_at, updated_at FROM tasks WHERE list_id = ? ORDER BY created_at",
		listID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks for list %s: %w", listID, err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range tasks {
		r, err := s.reminderForTask(ctx, tasks[i].ID)
		if err != nil {
			return nil, err
		}
		tasks[i].Reminder = r
	}
	return tasks, nil
}

// UpdateTask applies the non-nil patch fields to an existing task and
// returns the merged record.
func (s *SQLiteStore) UpdateTask(ctx context.Context, id string, patch TaskPatch) (*model.Task, error) {
	t, err := s.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Description != nil {
		if strings.TrimSpace(*patch.Description) == "" {
			return nil, fmt.Errorf("task description must not be empty")
		}
		t.Description = *patch.Description
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
	t.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		"UPDATE tasks SET description = ?, completed = ?, updated_at = ? WHERE id = ?",
		t.Description, boolToInt(t.Completed), t.UpdatedAt, t.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating task %s: %w", id, err)
	}
	return t, nil
}

// DeleteTask removes a task. Its reminder, if any, is cascade-deleted
// by the schema.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return notFound("task", id)
	}
	return nil
}

// ToggleTaskComplete flips the completed flag of a task and returns the
// updated record.
func (s *SQLiteStore) ToggleTaskComplete(ctx context.Context, id string) (*model.Task, error) {
	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET
			completed = CASE WHEN completed = 0 THEN 1 ELSE 0 END,
			updated_at = ?
		WHERE id = ?`,
		time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("toggling task %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, notFound("task", id)
	}
	return s.GetTaskByID(ctx, id)
}

// taskExists verifies a task id resolves to a stored task.
func (s *SQLiteStore) taskExists(ctx context.Context, id string) error {
	var count int
	if err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM tasks WHERE id = ?", id); err != nil {
		return fmt.Errorf("checking task %s: %w", id, err)
	}
	if count == 0 {
		return notFound("task", id)
	}
	return nil
}

// scanTask scans a task row.
func scanTask(row interface{ Scan(dest ...interface{}) error }) (*model.Task, error) {
	var (
		t            model.Task
		completedInt int
	)
	err := row.Scan(
		&t.ID, &t.ListID, &t.Description, &completedInt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Completed = completedInt != 0
	return &t, nil
}
