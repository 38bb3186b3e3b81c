package ports

import (
	"context"

	"github.com/ems-platform/employee-api/internal/core/domain"
)

// EmployeeInput carries all client-settable fields for create and update.
// CountryCode is used to auto-prefix a bare PhoneNumber at creation time when
// the number does not already start with "+".
type EmployeeInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	CountryCode string
	Department  string
	Position    string
	Salary      float64
	HireDate    string // RFC 3339; empty defaults to creation time
}

// EmployeePage is the pagination envelope shared by Search and ByDepartment.
type EmployeePage struct {
	Content     []*domain.Employee
	CurrentPage int
	TotalItems  int64
	TotalPages  int
	PageSize    int
	HasNext     bool
	HasPrevious bool
}

// SearchInput carries all parameters for the search endpoint.
type SearchInput struct {
	Page       int
	Size       int
	Query      string
	Department string
	Position   string
	MinSalary  *float64
	MaxSalary  *float64
}

// EmployeeService defines the query and mutation use-cases over employees.
type EmployeeService interface {
	Search(ctx context.Context, input SearchInput) (*EmployeePage, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	ByDepartment(ctx context.Context, department string, page, size int) (*EmployeePage, error)
	DistinctDepartments(ctx context.Context) ([]string, error)
	DistinctPositions(ctx context.Context) ([]string, error)
	Statistics(ctx context.Context) (*Statistics, error)

	Create(ctx context.Context, input EmployeeInput) (*domain.Employee, error)
	Update(ctx context.Context, id int64, input EmployeeInput) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
}
