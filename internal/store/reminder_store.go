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

// CreateReminder inserts a new reminder after resolving its task. A
// task carries at most one reminder; the task_id unique constraint
// rejects a second.
func (s *SQLiteStore) CreateReminder(ctx context.Context, r *model.Reminder) error {
	if r.Date == "" {
		return fmt.Errorf("reminder date must not be empty")
	}
	if _, err := time.Parse(model.ReminderDateLayout, r.Date); err != nil {
		return fmt.Errorf("parsing reminder date %q: %w", r.Date, err)
	}
	if err := s.taskExists(ctx, r.TaskID); err != nil {
		return err
	}
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	r.CreatedAt = now
	r.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reminders (id, task_id, date, notified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.TaskID, r.Date, boolToInt(r.Notified), r.CreatedAt, r.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating reminder: %w", err)
	}
	return nil
}

// GetReminderByID retrieves a single reminder by ID.
func (s *SQLiteStore) GetReminderByID(ctx context.Context, id string) (*model.Reminder, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT id, task_id, date, notified, created_at, updated_at FROM reminders WHERE id = ?", id)

	r, err := scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("reminder", id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting reminder %s: %w", id, err)
	}
	return r, nil
}

// GetRemindersByTask retrieves the reminders attached to a task. The
// schema allows at most one, so the slice has zero or one entry.
func (s *SQLiteStore) GetRemindersByTask(ctx context.Context, taskID string) ([]model.Reminder, error) {
	if err := s.taskExists(ctx, taskID); err != nil {
		return nil, err
	}

	r, err := s.reminderForTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, nil
	}
	return []model.Reminder{*r}, nil
}

// reminderForTask loads a task's reminder, or nil when it has none.
func (s *SQLiteStore) reminderForTask(ctx context.Context, taskID string) (*model.Reminder, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT id, task_id, date, notified, created_at, updated_at FROM reminders WHERE task_id = ?",
		taskID)

	r, err := scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting reminder for task %s: %w", taskID, err)
	}
	return r, nil
}

// UpdateReminder applies the non-nil patch fields to an existing
// reminder and returns the merged record.
func (s *SQLiteStore) UpdateReminder(ctx context.Context, id string, patch ReminderPatch) (*model.Reminder, error) {
	r, err := s.GetReminderByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Date != nil {
		r.Date = model.FormatReminderDate(*patch.Date)
	}
	if patch.Notified != nil {
		r.Notified = *patch.Notified
	}
	r.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		"UPDATE reminders SET date = ?, notified = ?, updated_at = ? WHERE id = ?",
		r.Date, boolToInt(r.Notified), r.UpdatedAt, r.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating reminder %s: %w", id, err)
	}
	return r, nil
}

// DeleteReminder removes a reminder by ID.
func (s *SQLiteStore) DeleteReminder(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reminders WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting reminder %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return notFound("reminder", id)
	}
	return nil
}

// RemindersDueInRange returns a user's un-notified reminders due
// between start and end, both inclusive, ascending by due date. The
// join walks reminder -> task -> todo list -> element to scope by the
// owning user. Already-notified reminders never appear; callers mark a
// reminder notified after acting on it.
func (s *SQLiteStore) RemindersDueInRange(ctx context.Context, userID string, start, end time.Time) ([]model.Reminder, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryxContext(ctx, `
		SELECT r.id, r.task_id, r.date, r.notified, r.created_at, r.updated_at
		FROM reminders r
		INNER JOIN tasks t ON t.id = r.task_id
		INNER JOIN todo_lists l ON l.id = t.list_id
		INNER JOIN elements e ON e.id = l.element_id
		WHERE e.user_id = ?
		AND r.date >= ? AND r.date <= ?
		AND r.notified = 0
		ORDER BY r.date ASC`,
		userID, model.FormatReminderDate(start), model.FormatReminderDate(end))
	if err != nil {
		return nil, fmt.Errorf("querying due reminders for user %s: %w", userID, err)
	}
	defer rows.Close()

	var reminders []model.Reminder
	for rows.Next() {
		r, err := scanReminder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning reminder row: %w", err)
		}
		reminders = append(reminders, *r)
	}
	return reminders, rows.Err()
}

// MarkReminderNotified flags a reminder as delivered so due-date scans
// stop returning it.
func (s *SQLiteStore) MarkReminderNotified(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE reminders SET notified = 1, updated_at = ? WHERE id = ?",
		time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("marking reminder %s notified: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return notFound("reminder", id)
	}
	return nil
}

// scanReminder scans a reminder row.
func scanReminder(row interface{ Scan(dest ...interface{}) error }) (*model.Reminder, error) {
	var (
		r           model.Reminder
		notifiedInt int
	)
	err := row.Scan(
		&r.ID, &r.TaskID, &r.Date, &notifiedInt,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Notified = notifiedInt != 0
	return &r, nil
}
