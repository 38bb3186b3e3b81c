package service

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ems-platform/employee-api/internal/core/domain"
	"github.com/ems-platform/employee-api/internal/core/ports"
)

// validate is shared by all service instances; validator.Validate is
// goroutine-safe after construction.
var validate = validator.New()

// phonePattern requires a "+", a 1-4 digit country code and an 8-15 digit
// subscriber number, e.g. +4915123456789.
var phonePattern = regexp.MustCompile(`^\+[1-9]\d{0,3}[0-9]{8,15}$`)

// employeeRules mirrors the client-settable employee fields purely for
// tag-driven validation. Phone format is checked separately because the
// country-code pattern is stricter than the stock e164 tag.
type employeeRules struct {
	FirstName  string  `validate:"required,min=2,max=50"`
	LastName   string  `validate:"required,min=2,max=50"`
	Email      string  `validate:"required,email"`
	Department string  `validate:"required"`
	Position   string  `validate:"required"`
	Salary     float64 `validate:"gte=0"`
}

// normalizePhone prefixes a bare number with the country code, matching the
// original creation-time behaviour. Already-prefixed numbers pass through.
func normalizePhone(phoneNumber, countryCode string) string {
	if phoneNumber == "" || strings.HasPrefix(phoneNumber, "+") {
		return phoneNumber
	}
	return countryCode + phoneNumber
}

// validateEmployeeInput checks all field-level rules and returns a
// ValidationError with one message per violated field, or nil when the input
// is clean. The phone number must already be normalized.
func validateEmployeeInput(input ports.EmployeeInput) *domain.ValidationError {
	var messages []string

	rules := employeeRules{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Department: input.Department,
		Position:   input.Position,
		Salary:     input.Salary,
	}

	if err := validate.Struct(&rules); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range ve {
				messages = append(messages, employeeFieldMessage(fe))
			}
		} else {
			messages = append(messages, err.Error())
		}
	}

	switch {
	case input.PhoneNumber == "":
		messages = append(messages, "phoneNumber: phone number is required")
	case !phonePattern.MatchString(input.PhoneNumber):
		messages = append(messages, "phoneNumber: phone number should be valid with country code (e.g., +1234567890)")
	}

	if len(messages) == 0 {
		return nil
	}
	return domain.NewValidationError(messages...)
}

// employeeFieldMessage converts a single tag violation into the
// "<jsonField>: <message>" form used in the details array.
func employeeFieldMessage(fe validator.FieldError) string {
	switch fe.StructField() {
	case "FirstName":
		if fe.Tag() == "required" {
			return "firstName: first name is required"
		}
		return "firstName: first name must be between 2 and 50 characters"
	case "LastName":
		if fe.Tag() == "required" {
			return "lastName: last name is required"
		}
		return "lastName: last name must be between 2 and 50 characters"
	case "Email":
		if fe.Tag() == "required" {
			return "email: email is required"
		}
		return "email: email should be valid"
	case "Department":
		return "department: department is required"
	case "Position":
		return "position: position is required"
	case "Salary":
		return "salary: salary must be positive"
	default:
		return strings.ToLower(fe.StructField()) + ": failed validation (" + fe.Tag() + ")"
	}
}
