package command

import (
	"context"

	"github.com/campus-hub/student-records/internal/domain/shared"
	"github.com/campus-hub/student-records/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE STUDENT COMMAND
// Read-check-then-write: the duplicate pre-check gives a friendly error, the
// store's unique constraints settle concurrent races and surface as the same
// conflict error.
// ══════════════════════════════════════════════════════════════════════════════

// CreateStudentCommand contains the raw create-form fields.
type CreateStudentCommand struct {
	Fields StudentFields
}

// Validate checks required-field presence.
func (c CreateStudentCommand) Validate() error {
	return c.Fields.Validate()
}

// CreateStudentHandler executes CreateStudentCommand.
type CreateStudentHandler struct {
	students student.Repository
}

// NewCreateStudentHandler creates the handler.
func NewCreateStudentHandler(students student.Repository) *CreateStudentHandler {
	return &CreateStudentHandler{students: students}
}

// Execute validates, normalizes and persists a new student record.
func (h *CreateStudentHandler) Execute(ctx context.Context, cmd CreateStudentCommand) (*student.Student, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	age, err := cmd.Fields.parseAge()
	if err != nil {
		return nil, err
	}
	gpa, err := cmd.Fields.parseGPA()
	if err != nil {
		return nil, err
	}

	s := student.New(
		cmd.Fields.FirstName,
		cmd.Fields.LastName,
		cmd.Fields.Email,
		cmd.Fields.StudentNumber,
		age,
		cmd.Fields.Major,
		gpa,
	)
	if err := s.Validate(); err != nil {
		return nil, err
	}

	exists, err := h.students.ExistsOther(ctx, "", s.StudentNumber, s.Email)
	if err != nil {
		return nil, shared.WrapError("student", "Create", nil, "failed to check duplicates", err)
	}
	if exists {
		return nil, shared.ErrDuplicateStudent
	}

	if err := h.students.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
