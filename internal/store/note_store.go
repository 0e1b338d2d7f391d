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

// CreateNote inserts a new note after resolving its parent element.
func (s *SQLiteStore) CreateNote(ctx context.Context, n *model.Note) error {
	if err := s.elementExists(ctx, n.ElementID); err != nil {
		return err
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, element_id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		n.ID, n.ElementID, n.Content, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating note: %w", err)
	}
	return nil
}

// GetNoteByID retrieves a single note by ID.
func (s *SQLiteStore) GetNoteByID(ctx context.Context, id string) (*model.Note, error) {
	var n model.Note
	err := s.db.QueryRowxContext(ctx,
		"SELECT id, element_id, content, created_at, updated_at FROM notes WHERE id = ?",
		id,
	).Scan(&n.ID, &n.ElementID, &n.Content, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("note", id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting note %s: %w", id, err)
	}
	return &n, nil
}

// GetNotesByElement retrieves all notes under an element, ordered by
// creation time.
func (s *SQLiteStore) GetNotesByElement(ctx context.Context, elementID string) ([]model.Note, error) {
	if err := s.elementExists(ctx, elementID); err != nil {
		return nil, err
	}
	return s.notesByElement(ctx, elementID)
}

// notesByElement loads an element's notes without re-validating the
// element; callers have already resolved it.
func (s *SQLiteStore) notesByElement(ctx context.Context, elementID string) ([]model.Note, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, element_id, content, created_at, updated_at FROM notes WHERE element_id = ? ORDER BY created_at",
		elementID)
	if err != nil {
		return nil, fmt.Errorf("querying notes for element %s: %w", elementID, err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.ElementID, &n.Content, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning note row: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// UpdateNote applies the non-nil patch fields to an existing note and
// returns the merged record.
func (s *SQLiteStore) UpdateNote(ctx context.Context, id string, patch NotePatch) (*model.Note, error) {
	n, err := s.GetNoteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Content != nil {
		n.Content = *patch.Content
	}
	n.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		"UPDATE notes SET content = ?, updated_at = ? WHERE id = ?",
		n.Content, n.UpdatedAt, n.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating note %s: %w", id, err)
	}
	return n, nil
}

// DeleteNote removes a note by ID.
func (s *SQLiteStore) DeleteNote(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return notFound("note", id)
	}
	return nil
}
