// Package session models the server-side browser session: an opaque id
// delivered via cookie, the authenticated identity, and one-shot flash
// messages used for post-redirect display.
package session

import (
	"time"

	"github.com/google/uuid"
)

// TTL is the sliding expiry window for a session. Stores refresh it on
// every read.
const TTL = 24 * time.Hour

// Session is the explicit per-browser state. It is passed and returned by
// value holders rather than mutated ambiently; callers persist changes via
// Store.Save.
type Session struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`

	// One-shot flash fields, cleared on every read via PopFlash.
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// New returns an anonymous session with a fresh opaque id.
func New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}

// IsAuthenticated reports whether the session carries a user id.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != ""
}

// Authenticate stamps the user identity and rotates the session id so that
// a pre-login id never survives into an authenticated session.
func (s *Session) Authenticate(userID, username string) (oldID string) {
	oldID = s.ID
	s.ID = uuid.NewString()
	s.UserID = userID
	s.Username = username
	return oldID
}

// Flash holds the one-shot values popped from a session.
type Flash struct {
	Error   string
	Message string
}

// PopFlash returns the flash values and clears them. The caller must Save
// the session afterwards so a refresh does not replay the message.
func (s *Session) PopFlash() Flash {
	f := Flash{Error: s.Error, Message: s.Message}
	s.Error = ""
	s.Message = ""
	return f
}

// HasFlash reports whether any one-shot value is pending.
func (s *Session) HasFlash() bool {
	return s.Error != "" || s.Message != ""
}
