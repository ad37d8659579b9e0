package command

import (
	"strconv"
	"strings"

	"github.com/campus-hub/student-records/internal/domain/shared"
)

// StudentFields carries the raw student form values. Parsing and
// normalization happen here so handlers stay free of coercion logic;
// range validation lives on the entity.
type StudentFields struct {
	FirstName     string
	LastName      string
	Email         string
	StudentNumber string
	Age           string
	Major         string
	GPA           string // optional, defaults to 0
}

// Validate checks that every required field is present.
func (f StudentFields) Validate() error {
	if strings.TrimSpace(f.FirstName) == "" ||
		strings.TrimSpace(f.LastName) == "" ||
		strings.TrimSpace(f.Email) == "" ||
		strings.TrimSpace(f.StudentNumber) == "" ||
		strings.TrimSpace(f.Age) == "" ||
		strings.TrimSpace(f.Major) == "" {
		return shared.NewDomainError("student", "Validate", shared.ErrValidation, "All required fields must be filled")
	}
	return nil
}

// parseAge coerces the age field to an integer.
func (f StudentFields) parseAge() (int, error) {
	age, err := strconv.Atoi(strings.TrimSpace(f.Age))
	if err != nil {
		return 0, shared.NewDomainError("student", "Validate", shared.ErrValidation, "Age must be a whole number")
	}
	return age, nil
}

// parseGPA coerces the optional GPA field to a float, defaulting to 0.
func (f StudentFields) parseGPA() (float64, error) {
	raw := strings.TrimSpace(f.GPA)
	if raw == "" {
		return 0, nil
	}
	gpa, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, shared.NewDomainError("student", "Validate", shared.ErrValidation, "GPA must be a number")
	}
	return gpa, nil
}
