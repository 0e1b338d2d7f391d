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

// elementColumns is the canonical column order for element scans.
var elementColumns = []string{
	"id", "user_id", "project_id", "title", "assigned_date",
	"status", "created_at", "updated_at",
}

// CreateElement inserts a new element. The owning user is resolved
// first; a project reference, when present, must also resolve. The
// assigned date is normalized to noon UTC so day-granularity queries
// are stable regardless of the submitted time-of-day.
func (s *SQLiteStore) CreateElement(ctx context.Context, e *model.Element) error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("element title must not be empty")
	}
	if err := s.userExists(ctx, e.UserID); err != nil {
		return err
	}
	if e.ProjectID != nil {
		if err := s.projectExists(ctx, *e.ProjectID); err != nil {
			return err
		}
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Status == "" {
		e.Status = model.ElementStatusActive
	}
	if e.AssignedDate.IsZero() {
		e.AssignedDate = time.Now()
	}
	e.AssignedDate = model.NormalizeAssignedDate(e.AssignedDate)
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO elements (id, user_id, project_id, title, assigned_date, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.ProjectID, e.Title, e.AssignedDate,
		e.Status, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating element: %w", err)
	}
	return nil
}

// GetElementByID retrieves a single element with its tags, notes, and
// todo lists (including tasks and reminders) loaded.
func (s *SQLiteStore) GetElementByID(ctx context.Context, id string) (*model.Element, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT "+strings.Join(elementColumns, ", ")+" FROM elements WHERE id = ?", id)

	e, err := scanElement(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("element", id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting element %s: %w", id, err)
	}
	if err := s.loadElementGraph(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// GetElementsByUser retrieves all elements owned by a user, with
// relation graphs loaded.
func (s *SQLiteStore) GetElementsByUser(ctx context.Context, userID string) ([]model.Element, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}
	return s.queryElements(ctx,
		"SELECT "+strings.Join(elementColumns, ", ")+" FROM elements WHERE user_id = ? ORDER BY assigned_date",
		userID)
}

// GetElementsByProject retrieves all elements in a project, with
// relation graphs loaded.
func (s *SQLiteStore) GetElementsByProject(ctx context.Context, projectID string) ([]model.Element, error) {
	if err := s.projectExists(ctx, projectID); err != nil {
		return nil, err
	}
	return s.queryElements(ctx,
		"SELECT "+strings.Join(elementColumns, ", ")+" FROM elements WHERE project_id = ? ORDER BY assigned_date",
		projectID)
}

// UpdateElement applies the non-nil patch fields to an existing element
// and returns the merged record with its relation graph. A project id
// in the patch is re-resolved and must exist; ClearProject detaches the
// element instead.
func (s *SQLiteStore) UpdateElement(ctx context.Context, id string, patch ElementPatch) (*model.Element, error) {
	e, err := s.GetElementByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.ProjectID != nil {
		if err := s.projectExists(ctx, *patch.ProjectID); err != nil {
			return nil, err
		}
		e.ProjectID = patch.ProjectID
	} else if patch.ClearProject {
		e.ProjectID = nil
	}
	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			return nil, fmt.Errorf("element title must not be empty")
		}
		e.Title = *patch.Title
	}
	if patch.AssignedDate != nil {
		e.AssignedDate = model.NormalizeAssignedDate(*patch.AssignedDate)
	}
	if patch.Status != nil {
		e.Status = *patch.Status
	}
	e.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE elements SET
			project_id = ?, title = ?, assigned_date = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		e.ProjectID, e.Title, e.AssignedDate, e.Status, e.UpdatedAt, e.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating element %s: %w", id, err)
	}
	return e, nil
}

// DeleteElement removes an element. Notes, todo lists, tasks, reminders,
// and tag associations below it are cascade-deleted by the schema.
func (s *SQLiteStore) DeleteElement(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM elements WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting element %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return notFound("element", id)
	}
	return nil
}

// FindElements returns the user's elements for the calendar day of at
// (defaulting to now when nil), optionally scoped to a project. The
// comparison is a half-open day range in SQL, so any stored
// time-of-day lands in the same bucket.
func (s *SQLiteStore) FindElements(ctx context.Context, userID string, at *time.Time, projectID *string) ([]model.Element, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	day := time.Now()
	if at != nil {
		day = *at
	}
	start, end := model.DayRange(day)

	query := "SELECT " + strings.Join(elementColumns, ", ") +
		" FROM elements WHERE user_id = ? AND assigned_date >= ? AND assigned_date < ?"
	args := []interface{}{userID, start, end}

	if projectID != nil {
		if err := s.projectExists(ctx, *projectID); err != nil {
			return nil, err
		}
		query += " AND project_id = ?"
		args = append(args, *projectID)
	}
	query += " ORDER BY created_at"

	return s.queryElements(ctx, query, args...)
}

// SearchElements performs a case-insensitive substring search of query
// against element titles, tag names, and todo-list content, scoped to
// the user's elements.
func (s *SQLiteStore) SearchElements(ctx context.Context, userID, query string) ([]model.Element, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	pattern := "%" + query + "%"
	return s.queryElements(ctx, `
		SELECT DISTINCT e.`+strings.Join(elementColumns, ", e.")+`
		FROM elements e
		LEFT JOIN element_tags et ON et.element_id = e.id
		LEFT JOIN tags t ON t.id = et.tag_id
		LEFT JOIN todo_lists l ON l.element_id = e.id
		WHERE e.user_id = ?
		AND (e.title LIKE ? OR t.name LIKE ? OR l.content LIKE ?)
		ORDER BY e.assigned_date`,
		userID, pattern, pattern, pattern)
}

// ElementsByYear returns a reduced {id, title, assigned_date} projection
// of the user's elements whose assigned date falls within the given
// calendar year, optionally scoped to a project. The range predicate is
// evaluated by the database, not in memory.
func (s *SQLiteStore) ElementsByYear(ctx context.Context, userID string, year int, projectID *string) ([]model.ElementSummary, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	start, end := model.YearRange(year)
	query := `SELECT id, title, assigned_date FROM elements
		WHERE user_id = ? AND assigned_date >= ? AND assigned_date < ?`
	args := []interface{}{userID, start, end}

	if projectID != nil {
		if err := s.projectExists(ctx, *projectID); err != nil {
			return nil, err
		}
		query += " AND project_id = ?"
		args = append(args, *projectID)
	}
	query += " ORDER BY assigned_date"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying elements for year %d: %w", year, err)
	}
	defer rows.Close()

	var summaries []model.ElementSummary
	for rows.Next() {
		var es model.ElementSummary
		if err := rows.Scan(&es.ID, &es.Title, &es.AssignedDate); err != nil {
			return nil, fmt.Errorf("scanning element summary row: %w", err)
		}
		summaries = append(summaries, es)
	}
	return summaries, rows.Err()
}

// AddElementTags attaches tags to an element. Every requested tag must
// exist; ids already attached are no-ops, so the operation is
// idempotent. Returns the element with its refreshed tag set.
func (s *SQLiteStore) AddElementTags(ctx context.Context, elementID string, tagIDs []string) (*model.Element, error) {
	if err := s.elementExists(ctx, elementID); err != nil {
		return nil, err
	}
	for _, tagID := range tagIDs {
		if err := s.tagExists(ctx, tagID); err != nil {
			return nil, err
		}
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO element_tags (element_id, tag_id) VALUES (?, ?)",
			elementID, tagID); err != nil {
			return nil, fmt.Errorf("attaching tag %s to element %s: %w", tagID, elementID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing tag attach: %w", err)
	}

	return s.GetElementByID(ctx, elementID)
}

// RemoveElementTags detaches tags from an element as a set difference.
// Ids not currently attached (or not existing at all) are silently
// ignored. Returns the element with its refreshed tag set.
func (s *SQLiteStore) RemoveElementTags(ctx context.Context, elementID string, tagIDs []string) (*model.Element, error) {
	if err := s.elementExists(ctx, elementID); err != nil {
		return nil, err
	}

	if len(tagIDs) > 0 {
		placeholders := make([]string, len(tagIDs))
		args := make([]interface{}, 0, len(tagIDs)+1)
		args = append(args, elementID)
		for i, id := range tagIDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		_, err := s.db.ExecContext(ctx,
			"DELETE FROM element_tags WHERE element_id = ? AND tag_id IN ("+strings.Join(placeholders, ", ")+")",
			args...)
		if err != nil {
			return nil, fmt.Errorf("detaching tags from element %s: %w", elementID, err)
		}
	}

	return s.GetElementByID(ctx, elementID)
}

// elementExists verifies an element id resolves to a stored element.
func (s *SQLiteStore) elementExists(ctx context.Context, id string) error {
	var count int
	if err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM elements WHERE id = ?", id); err != nil {
		return fmt.Errorf("checking element %s: %w", id, err)
	}
	if count == 0 {
		return notFound("element", id)
	}
	return nil
}

// queryElements runs an element query and loads each result's relation
// graph.
func (s *SQLiteStore) queryElements(ctx context.Context, query string, args ...interface{}) ([]model.Element, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying elements: %w", err)
	}
	defer rows.Close()

	elements, err := collectElements(rows)
	if err != nil {
		return nil, err
	}
	if err := s.loadElementGraphs(ctx, elements); err != nil {
		return nil, err
	}
	return elements, nil
}

// loadElementGraph populates an element's tags, notes, and todo lists
// (with their tasks and reminders).
func (s *SQLiteStore) loadElementGraph(ctx context.Context, e *model.Element) error {
	tags, err := s.GetTagsForElement(ctx, e.ID)
	if err != nil {
		return err
	}
	e.Tags = tags

	notes, err := s.notesByElement(ctx, e.ID)
	if err != nil {
		return err
	}
	e.Notes = notes

	lists, err := s.todoListsByElement(ctx, e.ID)
	if err != nil {
		return err
	}
	e.Lists = lists

	return nil
}

// loadElementGraphs populates relation graphs for a batch of elements.
func (s *SQLiteStore) loadElementGraphs(ctx context.Context, elements []model.Element) error {
	for i := range elements {
		if err := s.loadElementGraph(ctx, &elements[i]); err != nil {
			return fmt.Errorf("loading relations for element %s: %w", elements[i].ID, err)
		}
	}
	return nil
}

// scanElement scans an element row.
func scanElement(row interface{ Scan(dest ...interface{}) error }) (*model.Element, error) {
	var e model.Element
	err := row.Scan(
		&e.ID, &e.UserID, &e.ProjectID, &e.Title, &e.AssignedDate,
		&e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.AssignedDate = e.AssignedDate.UTC()
	return &e, nil
}

// collectElements drains an element result set.
func collectElements(rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}) ([]model.Element, error) {
	var elements []model.Element
	for rows.Next() {
		e, err := scanElement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning element row: %w", err)
		}
		elements = append(elements, *e)
	}
	return elements, rows.Err()
}
