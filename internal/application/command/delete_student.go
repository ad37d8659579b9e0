package command

import (
	"context"

	"github.com/campus-hub/student-records/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// DELETE STUDENT COMMAND
// Hard delete, no cascade. Deleting an unknown id is a not-found error.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteStudentHandler executes student deletion.
type DeleteStudentHandler struct {
	students student.Repository
}

// NewDeleteStudentHandler creates the handler.
func NewDeleteStudentHandler(students student.Repository) *DeleteStudentHandler {
	return &DeleteStudentHandler{students: students}
}

// Execute removes the student with the given id.
func (h *DeleteStudentHandler) Execute(ctx context.Context, id string) error {
	// GetByID first so an unknown id reports not-found rather than silently
	// deleting zero rows.
	if _, err := h.students.GetByID(ctx, id); err != nil {
		return err
	}
	return h.students.Delete(ctx, id)
}
