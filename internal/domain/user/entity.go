// Package user contains the identity domain model. Users are created at
// registration and never updated or deleted.
package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campus-hub/student-records/internal/domain/shared"
)

// User represents a registered account. The password hash is opaque to the
// domain; hashing and comparison live in the application layer.
type User struct {
	ID           string
	Username     string // unique, case-sensitive as stored
	Email        string // unique, case-insensitive
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New builds a User with a fresh id and timestamps. Username is kept as
// given (case-sensitive uniqueness); email is trimmed and lowercased.
func New(username, email, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(username),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate checks structural invariants of the entity.
func (u *User) Validate() error {
	if u.Username == "" {
		return shared.NewDomainError("user", "Validate", shared.ErrValidation, "Username is required")
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return shared.NewDomainError("user", "Validate", shared.ErrValidation, "A valid email is required")
	}
	if u.PasswordHash == "" {
		return shared.NewDomainError("user", "Validate", shared.ErrValidation, "Password is required")
	}
	return nil
}
