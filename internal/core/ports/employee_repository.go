package ports

import (
	"context"

	"github.com/ems-platform/employee-api/internal/core/domain"
)

// SearchFilter carries all query parameters for listing employees.
// Nil/zero values impose no constraint; all present filters combine with AND.
type SearchFilter struct {
	Query      string   // case-insensitive substring over firstName/lastName/email/department/position (OR)
	Department string   // exact match against the stored value
	Position   string   // exact match against the stored value
	MinSalary  *float64 // inclusive lower bound
	MaxSalary  *float64 // inclusive upper bound
	Page       int      // zero-based
	Size       int      // page length
}

// Statistics aggregates computed over the entire employee set.
type Statistics struct {
	TotalEmployees  int64
	AverageSalary   float64
	MinSalary       float64
	MaxSalary       float64
	DepartmentCount int64
	PositionCount   int64
	ByDepartment    map[string]int64
}

// EmployeeRepository defines persistence operations for employees.
// All listing operations return rows sorted by first_name ascending with id as
// the tiebreak, so pagination is deterministic.
type EmployeeRepository interface {
	Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	Update(ctx context.Context, e *domain.Employee) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Employee, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Search returns a page of employees matching filter and the total count.
	Search(ctx context.Context, filter SearchFilter) ([]*domain.Employee, int64, error)
	// FindAll returns the entire employee set in export order.
	FindAll(ctx context.Context) ([]*domain.Employee, error)
	DistinctDepartments(ctx context.Context) ([]string, error)
	DistinctPositions(ctx context.Context) ([]string, error)
	Statistics(ctx context.Context) (*Statistics, error)
	Count(ctx context.Context) (int64, error)
}
