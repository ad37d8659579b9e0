package student

import "context"

// MajorAll is the sentinel major filter value meaning "no filter".
const MajorAll = "all"

// Filter restricts a listing. Both conditions compose with logical AND when
// both are present.
type Filter struct {
	// Search is a free-text term matched case-insensitively against first
	// name, last name, and major. Empty means no text search.
	Search string

	// Major is a case-insensitive substring match on the major. Empty or
	// MajorAll means no filter.
	Major string
}

// HasSearch reports whether a text search is active.
func (f Filter) HasSearch() bool {
	return f.Search != ""
}

// HasMajor reports whether a major filter is active.
func (f Filter) HasMajor() bool {
	return f.Major != "" && f.Major != MajorAll
}

// ListOptions carries a filter plus a pagination window.
type ListOptions struct {
	Filter Filter
	Limit  int
	Offset int
}

// Repository defines the persistence contract for students. Implementations
// live in infrastructure/persistence.
type Repository interface {
	// Create persists a new student. Returns shared.ErrDuplicateStudent if
	// the student number or email is already taken.
	Create(ctx context.Context, s *Student) error

	// GetByID returns the student with the given internal id.
	// Returns shared.ErrStudentNotFound if no student matches.
	GetByID(ctx context.Context, id string) (*Student, error)

	// Update overwrites the stored record. Returns shared.ErrStudentNotFound
	// if no student matches, shared.ErrDuplicateStudent on a uniqueness
	// violation.
	Update(ctx context.Context, s *Student) error

	// Delete removes the record. Returns shared.ErrStudentNotFound if no
	// student matches. No soft-delete, no cascade.
	Delete(ctx context.Context, id string) error

	// List returns the page of students matching opts, ordered by creation
	// time descending. An empty page is not an error.
	List(ctx context.Context, opts ListOptions) ([]*Student, error)

	// Count returns the total number of students matching the filter.
	Count(ctx context.Context, f Filter) (int, error)

	// DistinctMajors returns the set of major values currently in use,
	// independent of any filter.
	DistinctMajors(ctx context.Context) ([]string, error)

	// ExistsOther reports whether a student other than excludeID already
	// holds the given student number or email. Pass excludeID == "" for
	// create-time checks.
	ExistsOther(ctx context.Context, excludeID, studentNumber, email string) (bool, error)
}
