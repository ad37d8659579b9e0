package query

import (
	"context"

	"github.com/campus-hub/student-records/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STUDENT QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetStudentHandler loads a single student by internal id.
type GetStudentHandler struct {
	students student.Repository
}

// NewGetStudentHandler creates the handler.
func NewGetStudentHandler(students student.Repository) *GetStudentHandler {
	return &GetStudentHandler{students: students}
}

// Execute returns the student or shared.ErrStudentNotFound.
func (h *GetStudentHandler) Execute(ctx context.Context, id string) (*student.Student, error) {
	return h.students.GetByID(ctx, id)
}
