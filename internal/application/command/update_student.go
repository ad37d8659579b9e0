package command

import (
	"context"
	"time"

	"github.com/campus-hub/student-records/internal/domain/shared"
	"github.com/campus-hub/student-records/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE STUDENT COMMAND
// Re-validates uniqueness excluding the record being edited, so saving a
// student with its own unchanged number/email succeeds.
// ══════════════════════════════════════════════════════════════════════════════

// UpdateStudentCommand contains the target id and the raw edit-form fields.
type UpdateStudentCommand struct {
	ID     string
	Fields StudentFields

	// IsActive is the raw checkbox value; "on" means active (HTML checkboxes
	// submit "on" when checked and nothing when not).
	IsActive string
}

// Validate checks the target id and required-field presence.
func (c UpdateStudentCommand) Validate() error {
	if c.ID == "" {
		return shared.NewDomainError("student", "Update", shared.ErrValidation, "Student id is required")
	}
	return c.Fields.Validate()
}

// UpdateStudentHandler executes UpdateStudentCommand.
type UpdateStudentHandler struct {
	students student.Repository
}

// NewUpdateStudentHandler creates the handler.
func NewUpdateStudentHandler(students student.Repository) *UpdateStudentHandler {
	return &UpdateStudentHandler{students: students}
}

// Execute loads the target, applies the normalized fields and persists the
// updated record.
func (h *UpdateStudentHandler) Execute(ctx context.Context, cmd UpdateStudentCommand) (*student.Student, error) {
	s, err := h.students.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

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

	s.FirstName = cmd.Fields.FirstName
	s.LastName = cmd.Fields.LastName
	s.Email = cmd.Fields.Email
	s.StudentNumber = cmd.Fields.StudentNumber
	s.Age = age
	s.Major = cmd.Fields.Major
	s.GPA = gpa
	s.IsActive = cmd.IsActive == "on"
	s.UpdatedAt = time.Now().UTC()
	s.Normalize()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	exists, err := h.students.ExistsOther(ctx, s.ID, s.StudentNumber, s.Email)
	if err != nil {
		return nil, shared.WrapError("student", "Update", nil, "failed to check duplicates", err)
	}
	if exists {
		return nil, shared.ErrDuplicateStudent
	}

	if err := h.students.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
