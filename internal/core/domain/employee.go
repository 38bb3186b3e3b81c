package domain

import (
	"errors"
	"time"
)

var ErrEmployeeNotFound = errors.New("employee not found")
var ErrEmailExists = errors.New("email already exists")
var ErrExportFailed = errors.New("export failed")

// Employee is the core record managed by the system.
// CreatedAt, UpdatedAt and ID are server-assigned; Email is unique across all
// employees, enforced both by the service pre-check and by the database
// constraint (the constraint is authoritative).
type Employee struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phoneNumber"`
	CountryCode string    `json:"countryCode,omitempty"`
	Department  string    `json:"department"`
	Position    string    `json:"position"`
	Salary      float64   `json:"salary"`
	HireDate    time.Time `json:"hireDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ValidationError carries one human-readable message per violated field.
// It is rendered as the `details` array of the error envelope.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// NewValidationError builds a ValidationError from field messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}
