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

// CreateProject inserts a new project after resolving its owning user.
func (s *SQLiteStore) CreateProject(ctx context.Context, p *model.Project) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name must not be empty")
	}
	if err := s.userExists(ctx, p.UserID); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO projects (id, user_id, name, color, icon, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.UserID, p.Name, p.Color, p.Icon, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating project: %w", err)
	}
	return nil
}

// GetProjectByID retrieves a single project by ID.
func (s *SQLiteStore) GetProjectByID(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	err := s.db.QueryRowxContext(ctx,
		"SELECT id, user_id, name, color, icon, created_at, updated_at FROM projects WHERE id = ?",
		id,
	).Scan(&p.ID, &p.UserID, &p.Name, &p.Color, &p.Icon, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("project", id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	return &p, nil
}

// GetProjectsByUser retrieves all projects owned by a user, ordered by name.
func (s *SQLiteStore) GetProjectsByUser(ctx context.Context, userID string) ([]model.Project, error) {
	if err := s.userExists(ctx, userID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, user_id, name, color, icon, created_at, updated_at FROM projects WHERE user_id = ? ORDER BY name",
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying projects for user %s: %w", userID, err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Color, &p.Icon, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProject applies the non-nil patch fields to an existing project
// and returns the merged record.
func (s *SQLiteStore) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*model.Project, error) {
	p, err := s.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("project name must not be empty")
		}
		p.Name = *patch.Name
	}
	if patch.Color != nil {
		p.Color = *patch.Color
	}
	if patch.Icon != nil {
		p.Icon = *patch.Icon
	}
	p.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx,
		"UPDATE projects SET name = ?, color = ?, icon = ?, updated_at = ? WHERE id = ?",
		p.Name, p.Color, p.Icon, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating project %s: %w", id, err)
	}
	return p, nil
}

// DeleteProject removes a project. Elements referencing it get
// project_id set to NULL; they are not deleted.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return notFound("project", id)
	}
	return nil
}

// projectExists verifies a project id resolves to a stored project.
func (s *SQLiteStore) projectExists(ctx context.Context, id string) error {
	var count int
	if err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM projects WHERE id = ?", id); err != nil {
		return fmt.Errorf("checking project %s: %w", id, err)
	}
	if count == 0 {
		return notFound("project", id)
	}
	return nil
}
