package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hvaldez/dayplan/internal/model"
)

// CreateTodoList inserts a new todo list after resolving its parent
// element. A zero sort order defaults to the end of the element's lists.
func (s *SQLiteStore) CreateTodoList(ctx context.Context, l *model.TodoList) error {
	if err := s.elementExists(ctx, l.ElementID); err != nil {
		return err
	}
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	if l.Kind == "" {
		l.Kind = model.TodoListKindList
	}
	if l.SortOrder == 0 {
		var maxOrder int
		err := s.db.GetContext(ctx, &maxOrder,
			"SELECT COALESCE(MAX(sort_order), 0) FROM todo_lists WHERE element_id = ?",
			l.ElementID)
		if err != nil {
			return fmt.Errorf("getting max sort_order: %w", err)
		}
		l.SortOrder = maxOrder + 1
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO todo_lists (id, element_id, sort_order, kind, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.ElementID, l.SortOrder, l.Kind, l.Content, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating todo list: %w", err)
	}
	return nil
}

// GetTodoListByID retrieves a single todo list with its tasks (and
// their reminders) loaded.
func (s *SQLiteStore) GetTodoListByID(ctx context.Context, id string) (*model.TodoList, error) {
	row := s.db.QueryRowxContext(ctx, `
		SELECT id, element_id, sort_order, kind, content, created_at, updated_at
		FROM todo_lists WHERE id = ?`, id)

	l, err := scanTodoList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("todo list", id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting todo list %s: %w", id, err)
	}

	tasks, err := s.tasksByList(ctx, id)
	if err != nil {
		return nil, err
	}
	l.Tasks = tasks
	return l, nil
}

// GetTodoListsByElement retrieves all todo lists under an element,
// ordered by sort order, with tasks loaded.
func (s *SQLiteStore) GetTodoListsByElement(ctx context.Context, elementID string) ([]model.TodoList, error) {
	if err := s.elementExists(ctx, elementID); err != nil {
		return nil, err
	}
	return s.todoListsByElement(ctx, elementID)
}

// todoListsByElement loads an element's lists without re-validating the
// element; callers have already resolved it.
func (s *SQLiteStore) todoListsByElement(ctx context.Context, elementID string) ([]model.TodoList, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT id, element_id, sort_order, kind, content, created_at, updated_at
		FROM todo_lists WHERE element_id = ? ORDER BY sort_order`, elementID)
	if err != nil {
		return nil, fmt.Errorf("querying todo lists for element %s: %w", elementID, err)
	}
	defer rows.Close()

	var lists []model.TodoList
	for rows.Next() {
		l, err := scanTodoList(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning todo list row: %w", err)
		}
		lists = append(lists, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range lists {
		tasks, err := s.tasksByList(ctx, lists[i].ID)
		if err != nil {
			return nil, err
		}
		lists[i].Tasks = tasks
	}
	return lists, nil
}

// UpdateTodoList applies the non-nil patch fields to an existing todo
// list and returns the merged record.
func (s *SQLiteStore) UpdateTodoList(ctx context.Context, id string, patch TodoListPatch) (*model.TodoList, error) {
	l, err := s.GetTodoListByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.SortOrder != nil {
		l.SortOrder = *patch.SortOrder
	}
	if patch.Kind != nil {
		l.Kind = *patch.Kind
	}
	if patch.Content != nil {
		l.Content = *patch.Content
	}
	l.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		"UPDATE todo_lists SET sort_order = ?, kind = ?, content = ?, updated_at = ? WHERE id = ?",
		l.SortOrder, l.Kind, l.Content, l.UpdatedAt, l.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating todo list %s: %w", id, err)
	}
	return l, nil
}

// DeleteTodoList removes a todo list. Its tasks and their reminders are
// cascade-deleted by the schema.
func (s *SQLiteStore) DeleteTodoList(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM todo_lists WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting todo list %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return notFound("todo list", id)
	}
	return nil
}

// listExists verifies a todo list id resolves to a stored list.
func (s *SQLiteStore) listExists(ctx context.Context, id string) error {
	var count int
	if err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM todo_lists WHERE id = ?", id); err != nil {
		return fmt.Errorf("checking todo list %s: %w", id, err)
	}
	if count == 0 {
		return notFound("todo list", id)
	}
	return nil
}

// scanTodoList scans a todo list row.
func scanTodoList(row interface{ Scan(dest ...interface{}) error }) (*model.TodoList, error) {
	var l model.TodoList
	err := row.Scan(
		&l.ID, &l.ElementID, &l.SortOrder, &l.Kind, &l.Content,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
