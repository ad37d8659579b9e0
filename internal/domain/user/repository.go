package user

import "context"

// Repository defines the persistence contract for users. Implementations
// live in infrastructure/persistence.
type Repository interface {
	// Create persists a new user. Returns shared.ErrUserExists if the
	// username or email is already taken (the store's unique constraints are
	// the last line of defense against pre-check races).
	Create(ctx context.Context, u *User) error

	// GetByUsername returns the user with the given username.
	// Returns shared.ErrUserNotFound if no user matches.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// ExistsByUsernameOrEmail reports whether any user already holds the
	// given username (case-sensitive) or email (case-insensitive).
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}
