package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Ownership resolution walks the graph back to the owning user so the
// boundary layer can verify the authenticated caller before touching
// anything below the element level.

// ElementOwnerID returns the id of the user owning an element.
func (s *SQLiteStore) ElementOwnerID(ctx context.Context, elementID string) (string, error) {
	var userID string
	err := s.db.GetContext(ctx, &userID,
		"SELECT user_id FROM elements WHERE id = ?", elementID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", notFound("element", elementID)
	}
	if err != nil {
		return "", fmt.Errorf("resolving owner of element %s: %w", elementID, err)
	}
	return userID, nil
}

// TodoListOwnerID returns the id of the user owning a todo list's element.
func (s *SQLiteStore) TodoListOwnerID(ctx context.Context, listID string) (string, error) {
	var userID string
	err := s.db.GetContext(ctx, &userID, `
		SELECT e.user_id FROM elements e
		INNER JOIN todo_lists l ON l.element_id = e.id
		WHERE l.id = ?`, listID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", notFound("todo list", listID)
	}
	if err != nil {
		return "", fmt.Errorf("resolving owner of todo list %s: %w", listID, err)
	}
	return userID, nil
}

// TaskOwnerID returns the id of the user owning a task's element.
func (s *SQLiteStore) TaskOwnerID(ctx context.Context, taskID string) (string, error) {
	var userID string
	err := s.db.GetContext(ctx, &userID, `
		SELECT e.user_id FROM elements e
		INNER JOIN todo_lists l ON l.element_id = e.id
		INNER JOIN tasks t ON t.list_id = l.id
		WHERE t.id = ?`, taskID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", notFound("task", taskID)
	}
	if err != nil {
		return "", fmt.Errorf("resolving owner of task %s: %w", taskID, err)
	}
	return userID, nil
}

// ReminderOwnerID returns the id of the user owning a reminder's element.
func (s *SQLiteStore) ReminderOwnerID(ctx context.Context, reminderID string) (string, error) {
	var userID string
	err := s.db.GetContext(ctx, &userID, `
		SELECT e.user_id FROM elements e
		INNER JOIN todo_lists l ON l.element_id = e.id
		INNER JOIN tasks t ON t.list_id = l.id
		INNER JOIN reminders r ON r.task_id = t.id
		WHERE r.id = ?`, reminderID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", notFound("reminder", reminderID)
	}
	if err != nil {
		return "", fmt.Errorf("resolving owner of reminder %s: %w", reminderID, err)
	}
	return userID, nil
}
