package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/hvaldez/dayplan/internal/model"
)

const userColumns = `id, email, password_hash, name, last_name, phone_number, profile_image_url, status, created_at, updated_at`

// CreateUser inserts a new user, hashing the supplied plaintext password.
// Generates a UUID if ID is empty.
func (s *SQLiteStore) CreateUser(ctx context.Context, u *model.User, password string) error {
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("user email must not be empty")
	}
	if password == "" {
		return fmt.Errorf("user password must not be empty")
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Status == "" {
		u.Status = model.UserStatusActive
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	u.PasswordHash = string(hash)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.LastName,
		u.PhoneNumber, u.ProfileImageURL, u.Status,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a single user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user %s: %w", id, err)
	}
	return u, nil
}

// GetUserByEmail retrieves a single user by email address.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.db.QueryRowxContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("user", email)
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email %s: %w", email, err)
	}
	return u, nil
}

// GetUsers retrieves all users ordered by creation time.
func (s *SQLiteStore) GetUsers(ctx context.Context) ([]model.User, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at")
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// UpdateUser applies the non-nil patch fields to an existing user and
// returns the merged record. A supplied password is re-hashed.
func (s *SQLiteStore) UpdateUser(ctx context.Context, id string, patch UserPatch) (*model.User, error) {
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Password != nil && *patch.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.LastName != nil {
		u.LastName = *patch.LastName
	}
	if patch.PhoneNumber != nil {
		u.PhoneNumber = nullableString(*patch.PhoneNumber)
	}
	if patch.ProfileImageURL != nil {
		u.ProfileImageURL = nullableString(*patch.ProfileImageURL)
	}
	if patch.Status != nil {
		u.Status = *patch.Status
	}
	u.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE users SET
			email = ?, password_hash = ?, name = ?, last_name = ?,
			phone_number = ?, profile_image_url = ?, status = ?, updated_at = ?
		WHERE id = ?`,
		u.Email, u.PasswordHash, u.Name, u.LastName,
		u.PhoneNumber, u.ProfileImageURL, u.Status, u.UpdatedAt,
		u.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("updating user %s: %w", id, err)
	}
	return u, nil
}

// DeleteUser removes a user. Projects, tags, and elements owned by the
// user are cascade-deleted by the schema.
func (s *SQLiteStore) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting user %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return notFound("user", id)
	}
	return nil
}

// CheckPassword compares a plaintext password against the stored hash.
func CheckPassword(u *model.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// userExists verifies a user id resolves to a stored user.
func (s *SQLiteStore) userExists(ctx context.Context, id string) error {
	var count int
	if err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM users WHERE id = ?", id); err != nil {
		return fmt.Errorf("checking user %s: %w", id, err)
	}
	if count == 0 {
		return notFound("user", id)
	}
	return nil
}

// scanUser scans a user row from either a sqlx.Row or sqlx.Rows.
func scanUser(row sqlx.ColScanner) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.LastName,
		&u.PhoneNumber, &u.ProfileImageURL, &u.Status,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// nullableString maps the empty string to nil, clearing the column.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
