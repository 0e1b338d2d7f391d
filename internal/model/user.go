package model

import "time"

// User status constants.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusDeleted  = "deleted"
)

// User is the ownership root: every project, tag, and element belongs
// to exactly one user.
type User struct {
	ID              string    `json:"id" db:"id"`
	Email           string    `json:"email" db:"email"`
	PasswordHash    string    `json:"-" db:"password_hash"`
	Name            string    `json:"name" db:"name"`
	LastName        string    `json:"last_name" db:"last_name"`
	PhoneNumber     *string   `json:"phone_number,omitempty" db:"phone_number"`
	ProfileImageURL *string   `json:"profile_image_url,omitempty" db:"profile_image_url"`
	Status          string    `json:"status" db:"status"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
