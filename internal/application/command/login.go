package command

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/campus-hub/student-records/internal/domain/session"
	"github.com/campus-hub/student-records/internal/domain/shared"
	"github.com/campus-hub/student-records/internal/domain/user"
)

// ══════════════════════════════════════════════════════════════════════════════
// LOGIN COMMAND
// Verifies credentials and establishes the authenticated session. A missing
// user and a wrong password produce the identical error so the response
// never leaks which check failed.
// ══════════════════════════════════════════════════════════════════════════════

// LoginCommand contains the login form fields.
type LoginCommand struct {
	Username string
	Password string
}

// Validate checks that both fields are present.
func (c LoginCommand) Validate() error {
	if c.Username == "" || c.Password == "" {
		return shared.NewDomainError("user", "Login", shared.ErrValidation, "Username and password are required")
	}
	return nil
}

// LoginHandler executes LoginCommand.
type LoginHandler struct {
	users    user.Repository
	sessions session.Store
}

// NewLoginHandler creates the handler.
func NewLoginHandler(users user.Repository, sessions session.Store) *LoginHandler {
	return &LoginHandler{users: users, sessions: sessions}
}

// Execute verifies the credentials and, on success, rotates the given
// session's id, stamps the user identity into it and persists it. The old
// session record is destroyed so the pre-login id cannot be replayed.
func (h *LoginHandler) Execute(ctx context.Context, cmd LoginCommand, sess *session.Session) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	u, err := h.users.GetByUsername(ctx, cmd.Username)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.ErrLoginFailed
		}
		return nil, shared.WrapError("user", "Login", nil, "failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(cmd.Password)); err != nil {
		return nil, shared.ErrLoginFailed
	}

	oldID := sess.Authenticate(u.ID, u.Username)
	if err := h.sessions.Delete(ctx, oldID); err != nil {
		return nil, shared.WrapError("session", "Rotate", nil, "failed to drop pre-login session", err)
	}
	if err := h.sessions.Save(ctx, sess); err != nil {
		return nil, shared.WrapError("session", "Save", nil, "failed to persist session", err)
	}
	return u, nil
}
