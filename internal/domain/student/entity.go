// Package student contains the student-records domain model. This is the
// core of the business logic and has no infrastructure dependencies.
package student

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campus-hub/student-records/internal/domain/shared"
)

// Field constraints, matching the storage schema.
const (
	MaxNameLength  = 50
	MaxMajorLength = 100
	MinAge         = 16
	MaxAge         = 100
	MinGPA         = 0.0
	MaxGPA         = 4.0
)

// Student represents a single student record.
//
// StudentNumber is the externally assigned identifier ("student ID" on the
// forms); ID is the internal primary key. Both StudentNumber and Email are
// unique across all records.
type Student struct {
	ID             string
	FirstName      string
	LastName       string
	Email          string // unique, stored lowercased and trimmed
	StudentNumber  string // unique, stored trimmed
	Age            int
	Major          string
	GPA            float64
	EnrollmentDate time.Time
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// New builds a normalized Student with a fresh id, default GPA 0, active
// flag set, and enrollment defaulting to now.
func New(firstName, lastName, email, studentNumber string, age int, major string, gpa float64) *Student {
	now := time.Now().UTC()
	s := &Student{
		ID:             uuid.NewString(),
		FirstName:      firstName,
		LastName:       lastName,
		Email:          email,
		StudentNumber:  studentNumber,
		Age:            age,
		Major:          major,
		GPA:            gpa,
		EnrollmentDate: now,
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	s.Normalize()
	return s
}

// FullName is derived on read; it is never stored.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Normalize trims string fields and lowercases the email. Safe to call more
// than once.
func (s *Student) Normalize() {
	s.FirstName = strings.TrimSpace(s.FirstName)
	s.LastName = strings.TrimSpace(s.LastName)
	s.Email = strings.ToLower(strings.TrimSpace(s.Email))
	s.StudentNumber = strings.TrimSpace(s.StudentNumber)
	s.Major = strings.TrimSpace(s.Major)
}

// Validate checks required fields and value ranges. Callers are expected to
// Normalize first; New does both.
func (s *Student) Validate() error {
	if s.FirstName == "" || s.LastName == "" || s.Email == "" || s.StudentNumber == "" || s.Major == "" {
		return shared.NewDomainError("student", "Validate", shared.ErrValidation, "All required fields must be filled")
	}
	if len(s.FirstName) > MaxNameLength || len(s.LastName) > MaxNameLength {
		return shared.NewDomainError("student", "Validate", shared.ErrValidation,
			fmt.Sprintf("Names must be at most %d characters", MaxNameLength))
	}
	if len(s.Major) > MaxMajorLength {
		return shared.NewDomainError("student", "Validate", shared.ErrValidation,
			fmt.Sprintf("Major must be at most %d characters", MaxMajorLength))
	}
	if !strings.Contains(s.Email, "@") {
		return shared.NewDomainError("student", "Validate", shared.ErrValidation, "A valid email is required")
	}
	if s.Age < MinAge || s.Age > MaxAge {
		return shared.NewDomainError("student", "Validate", shared.ErrValidation,
			fmt.Sprintf("Age must be between %d and %d", MinAge, MaxAge))
	}
	if s.GPA < MinGPA || s.GPA > MaxGPA {
		return shared.NewDomainError("student", "Validate", shared.ErrValidation,
			fmt.Sprintf("GPA must be between %.1f and %.1f", MinGPA, MaxGPA))
	}
	return nil
}
