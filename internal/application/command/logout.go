package command

import (
	"context"

	"github.com/campus-hub/student-records/internal/domain/session"
)

// ══════════════════════════════════════════════════════════════════════════════
// LOGOUT COMMAND
// Destroys the current session unconditionally. Logging out with no session
// is not an error.
// ══════════════════════════════════════════════════════════════════════════════

// LogoutHandler destroys sessions.
type LogoutHandler struct {
	sessions session.Store
}

// NewLogoutHandler creates the handler.
func NewLogoutHandler(sessions session.Store) *LogoutHandler {
	return &LogoutHandler{sessions: sessions}
}

// Execute removes the session from the store. Idempotent.
func (h *LogoutHandler) Execute(ctx context.Context, sess *session.Session) error {
	if sess == nil || sess.ID == "" {
		return nil
	}
	return h.sessions.Delete(ctx, sess.ID)
}
