// Package query contains read operations following the CQRS pattern.
// Queries never modify state - they only read and return data. Each query
// is a self-contained use case with its own request/response types.
package query

import (
	"context"
	"strings"

	"github.com/campus-hub/student-records/internal/domain/shared"
	"github.com/campus-hub/student-records/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST STUDENTS QUERY
// Filtered, paginated listing ordered by creation time descending. The text
// search and the major filter compose with logical AND. Ordering stays
// strictly newest-first even when a text search is active; relevance only
// gates membership.
// ══════════════════════════════════════════════════════════════════════════════

// Listing defaults and bounds.
const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListStudentsQuery contains the listing parameters as they arrive from the
// request; normalization happens in Validate.
type ListStudentsQuery struct {
	// Search is an optional free-text term matched against first name, last
	// name, and major.
	Search string

	// Major is an optional filter; empty or "all" means no filter.
	Major string

	// Page is 1-based and defaults to 1.
	Page int

	// Limit is the page size, defaulting to 10.
	Limit int
}

// Validate normalizes the paging window and trims the search term.
func (q *ListStudentsQuery) Validate() error {
	q.Search = strings.TrimSpace(q.Search)
	q.Major = strings.TrimSpace(q.Major)
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return nil
}

// ListStudentsResult contains one page of students plus the pagination
// metadata and the filter-menu data the listing view needs.
type ListStudentsResult struct {
	Students    []*student.Student
	TotalCount  int
	TotalPages  int
	CurrentPage int
	Limit       int
	HasNextPage bool
	HasPrevPage bool

	// Majors is the distinct set of majors currently in use, independent of
	// the active filters.
	Majors []string

	// Echoes of the active filters, for form state.
	Search string
	Major  string
}

// ListStudentsHandler executes ListStudentsQuery.
type ListStudentsHandler struct {
	students student.Repository
}

// NewListStudentsHandler creates the handler.
func NewListStudentsHandler(students student.Repository) *ListStudentsHandler {
	return &ListStudentsHandler{students: students}
}

// Execute returns the requested page. A page beyond the last and a filter
// with no matches both return an empty page, not an error.
func (h *ListStudentsHandler) Execute(ctx context.Context, q ListStudentsQuery) (*ListStudentsResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	filter := student.Filter{Search: q.Search, Major: q.Major}
	opts := student.ListOptions{
		Filter: filter,
		Limit:  q.Limit,
		Offset: (q.Page - 1) * q.Limit,
	}

	students, err := h.students.List(ctx, opts)
	if err != nil {
		return nil, shared.WrapError("student", "List", nil, "failed to list students", err)
	}
	count, err := h.students.Count(ctx, filter)
	if err != nil {
		return nil, shared.WrapError("student", "List", nil, "failed to count students", err)
	}
	majors, err := h.students.DistinctMajors(ctx)
	if err != nil {
		return nil, shared.WrapError("student", "List", nil, "failed to load majors", err)
	}

	totalPages := (count + q.Limit - 1) / q.Limit

	major := q.Major
	if major == "" {
		major = student.MajorAll
	}

	return &ListStudentsResult{
		Students:    students,
		TotalCount:  count,
		TotalPages:  totalPages,
		CurrentPage: q.Page,
		Limit:       q.Limit,
		HasNextPage: q.Page < totalPages,
		HasPrevPage: q.Page > 1,
		Majors:      majors,
		Search:      q.Search,
		Major:       major,
	}, nil
}
