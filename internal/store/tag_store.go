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

// CreateTag inserts a new tag after resolving its owning user.
func (s *SQLiteStore) CreateTag(ctx context.Context, t *model.Tag) error {
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("tag name must not be empty")
	}
	if err := s.userExists(ctx, t.UserID); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO tags (id, user_id, name, color, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		t.ID, t.UserID, t.Name, t.Color, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating tag: %w", err)
	}
	return nil
}

// GetTagByID retrieves a single tag by ID.
func (s *SQLiteStore) GetTagByID(ctx context.Context, id string) (*model.Tag, error) {
	var t model.Tag
	err := s.db.QueryRowxContext(ctx,
		"SELECT id, user_id, name, color, created_at, updated_at FROM tags WHERE id = ?",
		id,
	).Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("tag", id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting tag %s: %w", id, err)
	}
	return &t, nil
}

// GetTagsByUser retrieves all tags owned by a user, ordered by name.
func (s *SQLiteStore) GetTagsByUser(ctx context.Context, userID string) ([]model.Tag, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, user_id, name, color, created_at, updated_at FROM tags WHERE user_id = ? ORDER BY name",
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying tags for user %s: %w", userID, err)
	}
	defer rows.Close()

	return collectTags(rows)
}

// UpdateTag applies the non-nil patch fields to an existing tag and
// returns the merged record.
func (s *SQLiteStore) UpdateTag(ctx context.Context, id string, patch TagPatch) (*model.Tag, error) {
	t, err := s.GetTagByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("tag name must not be empty")
		}
		t.Name = *patch.Name
	}
	if patch.Color != nil {
		t.Color = *patch.Color
	}
	t.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		"UPDATE tags SET name = ?, color = ?, updated_at = ? WHERE id = ?",
		t.Name, t.Color, t.UpdatedAt, t.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating tag %s: %w", id, err)
	}
	return t, nil
}

// DeleteTag removes a tag. CASCADE on element_tags removes associations;
// elements themselves are untouched.
func (s *SQLiteStore) DeleteTag(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting tag %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return notFound("tag", id)
	}
	return nil
}

// GetElementsByTag retrieves all elements carrying the given tag, with
// their relation graphs loaded.
func (s *SQLiteStore) GetElementsByTag(ctx context.Context, tagID string) ([]model.Element, error) {
	if err := s.tagExists(ctx, tagID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryxContext(ctx, `
		SELECT e.`+strings.Join(elementColumns, ", e.")+`
		FROM elements e
		INNER JOIN element_tags et ON et.element_id = e.id
		WHERE et.tag_id = ?
		ORDER BY e.assigned_date`, tagID)
	if err != nil {
		return nil, fmt.Errorf("querying elements for tag %s: %w", tagID, err)
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

// GetTagsForElement retrieves all tags attached to an element, ordered
// by name.
func (s *SQLiteStore) GetTagsForElement(ctx context.Context, elementID string) ([]model.Tag, error) {
	rows, err := s.db.QueryxContext(ctx, `
		SELECT t.id, t.user_id, t.name, t.color, t.created_at, t.updated_at
		FROM tags t
		INNER JOIN element_tags et ON t.id = et.tag_id
		WHERE et.element_id = ?
		ORDER BY t.name`, elementID)
	if err != nil {
		return nil, fmt.Errorf("querying tags for element %s: %w", elementID, err)
	}
	defer rows.Close()

	return collectTags(rows)
}

// tagExists verifies a tag id resolves to a stored tag.
func (s *SQLiteStore) tagExists(ctx context.Context, id string) error {
	var count int
	if err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM tags WHERE id = ?", id); err != nil {
		return fmt.Errorf("checking tag %s: %w", id, err)
	}
	if count == 0 {
		return notFound("tag", id)
	}
	return nil
}

// collectTags drains a tag result set.
func collectTags(rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}) ([]model.Tag, error) {
	var tags []model.Tag
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Color, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning tag row: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
