package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/campus-hub/student-records/internal/domain/shared"
	"github.com/campus-hub/student-records/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// StudentRepository implements student.Repository for PostgreSQL.
type StudentRepository struct {
	conn *Connection
}

// NewStudentRepository creates a new StudentRepository.
func NewStudentRepository(conn *Connection) *StudentRepository {
	return &StudentRepository{conn: conn}
}

const studentColumns = `
	id, first_name, last_name, email, student_number, age, major, gpa,
	enrollment_date, is_active, created_at, updated_at
`

// Create creates a new student record.
func (r *StudentRepository) Create(ctx context.Context, s *student.Student) error {
	query := `
		INSERT INTO students (
			id, first_name, last_name, email, student_number, age, major, gpa,
			enrollment_date, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.conn.Pool().Exec(ctx, query,
		s.ID, s.FirstName, s.LastName, s.Email, s.StudentNumber, s.Age, s.Major,
		s.GPA, s.EnrollmentDate, s.IsActive, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrDuplicateStudent
		}
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

// GetByID returns the student with the given internal id.
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*student.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = $1`

	var s student.Student
	err := r.conn.Pool().QueryRow(ctx, query, id).Scan(
		&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.StudentNumber, &s.Age,
		&s.Major, &s.GPA, &s.EnrollmentDate, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student: %w", err)
	}
	return &s, nil
}

// Update overwrites the stored record.
func (r *StudentRepository) Update(ctx context.Context, s *student.Student) error {
	query := `
		UPDATE students SET
			first_name = $2, last_name = $3, email = $4, student_number = $5,
			age = $6, major = $7, gpa = $8, enrollment_date = $9, is_active = $10,
			updated_at = $11
		WHERE id = $1
	`
	tag, err := r.conn.Pool().Exec(ctx, query,
		s.ID, s.FirstName, s.LastName, s.Email, s.StudentNumber, s.Age, s.Major,
		s.GPA, s.EnrollmentDate, s.IsActive, s.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrDuplicateStudent
		}
		return fmt.Errorf("failed to update student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrStudentNotFound
	}
	return nil
}

// Delete removes the record. No soft-delete, no cascade.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.conn.Pool().Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrStudentNotFound
	}
	return nil
}

// filterClause builds the WHERE clause for a filter. The text search and the
// major filter compose with AND. Placeholders start at $1; the returned args
// line up with the clause.
func filterClause(f student.Filter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.HasSearch() {
		args = append(args, f.Search)
		conds = append(conds, fmt.Sprintf("search_vector @@ plainto_tsquery('simple', $%d)", len(args)))
	}
	if f.HasMajor() {
		args = append(args, "%"+f.Major+"%")
		conds = append(conds, fmt.Sprintf("major ILIKE $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns the page of students matching opts, newest-first. Ordering is
// strictly by creation time even when a text search is active.
func (r *StudentRepository) List(ctx context.Context, opts student.ListOptions) ([]*student.Student, error) {
	where, args := filterClause(opts.Filter)

	query := `SELECT ` + studentColumns + ` FROM students` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, opts.Limit, opts.Offset)

	rows, err := r.conn.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	defer rows.Close()

	students := make([]*student.Student, 0, opts.Limit)
	for rows.Next() {
		var s student.Student
		if err := rows.Scan(
			&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.StudentNumber, &s.Age,
			&s.Major, &s.GPA, &s.EnrollmentDate, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan student: %w", err)
		}
		students = append(students, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read students: %w", err)
	}
	return students, nil
}

// Count returns the number of students matching the filter.
func (r *StudentRepository) Count(ctx context.Context, f student.Filter) (int, error) {
	where, args := filterClause(f)

	var count int
	err := r.conn.Pool().QueryRow(ctx, `SELECT COUNT(*) FROM students`+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}

// DistinctMajors returns the majors currently in use, sorted.
func (r *StudentRepository) DistinctMajors(ctx context.Context) ([]string, error) {
	rows, err := r.conn.Pool().Query(ctx, `SELECT DISTINCT major FROM students ORDER BY major`)
	if err != nil {
		return nil, fmt.Errorf("failed to load majors: %w", err)
	}
	defer rows.Close()

	var majors []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("failed to scan major: %w", err)
		}
		majors = append(majors, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read majors: %w", err)
	}
	return majors, nil
}

// ExistsOther reports whether a student other than excludeID holds the given
// student number or email.
func (r *StudentRepository) ExistsOther(ctx context.Context, excludeID, studentNumber, email string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM students
			WHERE (student_number = $1 OR email = $2) AND id::text != $3
		)
	`
	var exists bool
	if err := r.conn.Pool().QueryRow(ctx, query, studentNumber, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check student existence: %w", err)
	}
	return exists, nil
}
