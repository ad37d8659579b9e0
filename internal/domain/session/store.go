package session

import "context"

// Store defines the persistence contract for sessions. The store owns
// expiry: Get refreshes the sliding TTL, and expired sessions simply stop
// being found.
type Store interface {
	// Get returns the session with the given id and refreshes its TTL.
	// Returns shared.ErrSessionNotFound if the id is unknown or expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Save persists the session under its current id with the full TTL.
	Save(ctx context.Context, s *Session) error

	// Delete removes the session. Deleting an unknown id is not an error;
	// logout is idempotent.
	Delete(ctx context.Context, id string) error
}
