// Package command contains write operations (CQRS - Commands).
// Each command is a self-contained use case: a command struct with
// validation plus a handler that executes it against the domain
// repositories.
package command

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/campus-hub/student-records/internal/domain/shared"
	"github.com/campus-hub/student-records/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// REGISTER USER COMMAND
// Creates a new account. Registration does not log the user in; the caller
// redirects to the login page with a one-shot success message.
// ══════════════════════════════════════════════════════════════════════════════

// MinPasswordLength is the registration password policy.
const MinPasswordLength = 6

// BcryptCost is the bcrypt work factor used for password hashing.
const BcryptCost = 10

// RegisterUserCommand contains the raw registration form fields.
type RegisterUserCommand struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate checks the registration input policy.
func (c RegisterUserCommand) Validate() error {
	if strings.TrimSpace(c.Username) == "" || strings.TrimSpace(c.Email) == "" ||
		c.Password == "" || c.ConfirmPassword == "" {
		return shared.NewDomainError("user", "Register", shared.ErrValidation, "All fields are required")
	}
	if c.Password != c.ConfirmPassword {
		return shared.NewDomainError("user", "Register", shared.ErrValidation, "Passwords do not match")
	}
	if len(c.Password) < MinPasswordLength {
		return shared.NewDomainError("user", "Register", shared.ErrValidation,
			"Password must be at least 6 characters long")
	}
	return nil
}

// RegisterUserHandler executes RegisterUserCommand.
type RegisterUserHandler struct {
	users user.Repository
}

// NewRegisterUserHandler creates the handler.
func NewRegisterUserHandler(users user.Repository) *RegisterUserHandler {
	return &RegisterUserHandler{users: users}
}

// Execute validates the command, rejects duplicate username/email, hashes
// the password and persists the user. A store-level unique violation that
// wins a pre-check race surfaces as the same conflict error.
func (h *RegisterUserHandler) Execute(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	exists, err := h.users.ExistsByUsernameOrEmail(ctx, strings.TrimSpace(cmd.Username), strings.TrimSpace(cmd.Email))
	if err != nil {
		return nil, shared.WrapError("user", "Register", nil, "failed to check existing users", err)
	}
	if exists {
		return nil, shared.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), BcryptCost)
	if err != nil {
		return nil, shared.WrapError("user", "Register", nil, "failed to hash password", err)
	}

	u := user.New(cmd.Username, cmd.Email, string(hash))
	if err := u.Validate(); err != nil {
		return nil, err
	}
	if err := h.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
