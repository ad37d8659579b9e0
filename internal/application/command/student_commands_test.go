package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-hub/student-records/internal/domain/shared"
	"github.com/campus-hub/student-records/internal/domain/student"
)

func validStudentFields() StudentFields {
	return StudentFields{
		FirstName:     "Alice",
		LastName:      "Smith",
		Email:         "Alice@Example.com",
		StudentNumber: "S-1001",
		Age:           "20",
		Major:         "Computer Science",
		GPA:           "3.5",
	}
}

func TestCreateStudent_Success(t *testing.T) {
	repo := newFakeStudentRepo()
	h := NewCreateStudentHandler(repo)

	s, err := h.Execute(context.Background(), CreateStudentCommand{Fields: validStudentFields()})
	require.NoError(t, err)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "alice@example.com", s.Email)
	assert.Equal(t, 20, s.Age)
	assert.InDelta(t, 3.5, s.GPA, 0.0001)
	assert.True(t, s.IsActive)

	stored, err := repo.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "S-1001", stored.StudentNumber)
}

func TestCreateStudent_EmptyGPADefaultsToZero(t *testing.T) {
	h := NewCreateStudentHandler(newFakeStudentRepo())

	fields := validStudentFields()
	fields.GPA = ""
	s, err := h.Execute(context.Background(), CreateStudentCommand{Fields: fields})
	require.NoError(t, err)
	assert.Zero(t, s.GPA)
}

func TestCreateStudent_MissingFields(t *testing.T) {
	h := NewCreateStudentHandler(newFakeStudentRepo())

	fields := validStudentFields()
	fields.Major = "   "
	_, err := h.Execute(context.Background(), CreateStudentCommand{Fields: fields})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
	assert.Equal(t, "All required fields must be filled", shared.UserMessage(err, ""))
}

func TestCreateStudent_BadNumbers(t *testing.T) {
	h := NewCreateStudentHandler(newFakeStudentRepo())

	fields := validStudentFields()
	fields.Age = "twenty"
	_, err := h.Execute(context.Background(), CreateStudentCommand{Fields: fields})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))

	fields = validStudentFields()
	fields.GPA = "high"
	_, err = h.Execute(context.Background(), CreateStudentCommand{Fields: fields})
	require.Error(t, err)
	assert.True(t, shared.IsValidation(err))
}

func TestCreateStudent_AgeOutOfRange(t *testing.T) {
	h := NewCreateStudentHandler(newFakeStudentRepo())

	fields := validStudentFields()
	fields.Age = "15"
	_, err := h.Execute(context.Background(), CreateStudentCommand{Fields: fields})
	require.Error(t, err)
	assert.Equal(t, "Age must be between 16 and 100", shared.UserMessage(err, ""))
}

func TestCreateStudent_Duplicate(t *testing.T) {
	repo := newFakeStudentRepo()
	h := NewCreateStudentHandler(repo)

	_, err := h.Execute(context.Background(), CreateStudentCommand{Fields: validStudentFields()})
	require.NoError(t, err)

	// Same student number, different email.
	fields := validStudentFields()
	fields.Email = "other@example.com"
	_, err = h.Execute(context.Background(), CreateStudentCommand{Fields: fields})
	require.Error(t, err)
	assert.True(t, shared.IsConflict(err))
	assert.Equal(t, "Student ID or email already exists", shared.UserMessage(err, ""))

	// Same email, different student number.
	fields = validStudentFields()
	fields.StudentNumber = "S-2002"
	_, err = h.Execute(context.Background(), CreateStudentCommand{Fields: fields})
	require.Error(t, err)
	assert.True(t, shared.IsConflict(err))
}

func mustCreateStudent(t *testing.T, repo *fakeStudentRepo, fields StudentFields) *student.Student {
	t.Helper()
	s, err := NewCreateStudentHandler(repo).Execute(context.Background(), CreateStudentCommand{Fields: fields})
	require.NoError(t, err)
	return s
}

func TestUpdateStudent_Success(t *testing.T) {
	repo := newFakeStudentRepo()
	s := mustCreateStudent(t, repo, validStudentFields())

	fields := validStudentFields()
	fields.Major = "Physics"
	fields.GPA = "3.9"
	updated, err := NewUpdateStudentHandler(repo).Execute(context.Background(), UpdateStudentCommand{
		ID:       s.ID,
		Fields:   fields,
		IsActive: "on",
	})
	require.NoError(t, err)

	assert.Equal(t, "Physics", updated.Major)
	assert.InDelta(t, 3.9, updated.GPA, 0.0001)
	assert.True(t, updated.IsActive)
	assert.Equal(t, s.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(s.UpdatedAt))
}

func TestUpdateStudent_UncheckedBoxDeactivates(t *testing.T) {
	repo := newFakeStudentRepo()
	s := mustCreateStudent(t, repo, validStudentFields())

	updated, err := NewUpdateStudentHandler(repo).Execute(context.Background(), UpdateStudentCommand{
		ID:     s.ID,
		Fields: validStudentFields(),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestUpdateStudent_KeepOwnUniqueValues(t *testing.T) {
	repo := newFakeStudentRepo()
	s := mustCreateStudent(t, repo, validStudentFields())

	// Saving without changing student number or email must not trip the
	// duplicate check against the record itself.
	_, err := NewUpdateStudentHandler(repo).Execute(context.Background(), UpdateStudentCommand{
		ID:       s.ID,
		Fields:   validStudentFields(),
		IsActive: "on",
	})
	assert.NoError(t, err)
}

func TestUpdateStudent_ConflictWithOtherStudent(t *testing.T) {
	repo := newFakeStudentRepo()
	mustCreateStudent(t, repo, validStudentFields())

	otherFields := validStudentFields()
	otherFields.Email = "bob@example.com"
	otherFields.StudentNumber = "S-2002"
	other := mustCreateStudent(t, repo, otherFields)

	// Try to steal the first student's number.
	otherFields.StudentNumber = "S-1001"
	_, err := NewUpdateStudentHandler(repo).Execute(context.Background(), UpdateStudentCommand{
		ID:       other.ID,
		Fields:   otherFields,
		IsActive: "on",
	})
	require.Error(t, err)
	assert.True(t, shared.IsConflict(err))
}

func TestUpdateStudent_NotFound(t *testing.T) {
	h := NewUpdateStudentHandler(newFakeStudentRepo())

	_, err := h.Execute(context.Background(), UpdateStudentCommand{
		ID:     "missing",
		Fields: validStudentFields(),
	})
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}

func TestDeleteStudent(t *testing.T) {
	repo := newFakeStudentRepo()
	s := mustCreateStudent(t, repo, validStudentFields())
	h := NewDeleteStudentHandler(repo)

	require.NoError(t, h.Execute(context.Background(), s.ID))
	_, err := repo.GetByID(context.Background(), s.ID)
	assert.True(t, shared.IsNotFound(err))

	// Deleting again reports not-found.
	err = h.Execute(context.Background(), s.ID)
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
}
