package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ems-platform/employee-api/internal/core/domain"
	"github.com/ems-platform/employee-api/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// EmployeeService implements the query and mutation use-cases over the
// employee record store.
type EmployeeService struct {
	repo   ports.EmployeeRepository
	logger zerolog.Logger
}

func NewEmployeeService(repo ports.EmployeeRepository, logger zerolog.Logger) *EmployeeService {
	return &EmployeeService{repo: repo, logger: logger}
}

// Search returns a page of employees matching the given filters. Absent
// filters impose no constraint; present filters combine with AND.
func (s *EmployeeService) Search(ctx context.Context, input ports.SearchInput) (*ports.EmployeePage, error) {
	page, size := normalizePaging(input.Page, input.Size)

	items, total, err := s.repo.Search(ctx, ports.SearchFilter{
		Query:      input.Query,
		Department: input.Department,
		Position:   input.Position,
		MinSalary:  input.MinSalary,
		MaxSalary:  input.MaxSalary,
		Page:       page,
		Size:       size,
	})
	if err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}

	return buildPage(items, total, page, size), nil
}

// GetByID retrieves a single employee or ErrEmployeeNotFound.
func (s *EmployeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return s.repo.FindByID(ctx, id)
}

// ByDepartment lists employees whose department equals the given value
// exactly, with the same pagination and sort contract as Search.
func (s *EmployeeService) ByDepartment(ctx context.Context, department string, page, size int) (*ports.EmployeePage, error) {
	page, size = normalizePaging(page, size)

	items, total, err := s.repo.Search(ctx, ports.SearchFilter{
		Department: department,
		Page:       page,
		Size:       size,
	})
	if err != nil {
		return nil, fmt.Errorf("employees by department: %w", err)
	}

	return buildPage(items, total, page, size), nil
}

func (s *EmployeeService) DistinctDepartments(ctx context.Context) ([]string, error) {
	return s.repo.DistinctDepartments(ctx)
}

func (s *EmployeeService) DistinctPositions(ctx context.Context) ([]string, error) {
	return s.repo.DistinctPositions(ctx)
}

// Statistics aggregates over the entire record set, never the current page.
func (s *EmployeeService) Statistics(ctx context.Context) (*ports.Statistics, error) {
	return s.repo.Statistics(ctx)
}

// Create validates the input, rejects duplicate emails and persists a new
// employee. The existence pre-check is an optimization only: the store-level
// unique constraint remains the authoritative guard under concurrent creates.
func (s *EmployeeService) Create(ctx context.Context, input ports.EmployeeInput) (*domain.Employee, error) {
	input.PhoneNumber = normalizePhone(input.PhoneNumber, input.CountryCode)
	if verr := validateEmployeeInput(input); verr != nil {
		return nil, verr
	}

	exists, err := s.repo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("email existence check: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailExists
	}

	now := time.Now().UTC()
	hireDate, verr := parseHireDate(input.HireDate, now)
	if verr != nil {
		return nil, verr
	}

	created, err := s.repo.Create(ctx, &domain.Employee{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		CountryCode: input.CountryCode,
		Department:  input.Department,
		Position:    input.Position,
		Salary:      input.Salary,
		HireDate:    hireDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", created.ID).Str("email", created.Email).Msg("employee created")
	return created, nil
}

// Update replaces all mutable fields of an existing employee. Changing the
// email to one held by a different employee is a conflict; keeping the same
// email always succeeds.
func (s *EmployeeService) Update(ctx context.Context, id int64, input ports.EmployeeInput) (*domain.Employee, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input.PhoneNumber = normalizePhone(input.PhoneNumber, input.CountryCode)
	if verr := validateEmployeeInput(input); verr != nil {
		return nil, verr
	}

	if input.Email != existing.Email {
		exists, err := s.repo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, fmt.Errorf("email existence check: %w", err)
		}
		if exists {
			return nil, domain.ErrEmailExists
		}
	}

	hireDate, verr := parseHireDate(input.HireDate, existing.HireDate)
	if verr != nil {
		return nil, verr
	}

	updated, err := s.repo.Update(ctx, &domain.Employee{
		ID:          existing.ID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		CountryCode: input.CountryCode,
		Department:  input.Department,
		Position:    input.Position,
		Salary:      input.Salary,
		HireDate:    hireDate,
		CreatedAt:   existing.CreatedAt,
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", updated.ID).Msg("employee updated")
	return updated, nil
}

// Delete removes an employee irrecoverably, or fails with
// ErrEmployeeNotFound when the id is unknown.
func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("id", id).Msg("employee deleted")
	return nil
}

func normalizePaging(page, size int) (int, int) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}

func buildPage(items []*domain.Employee, total int64, page, size int) *ports.EmployeePage {
	if items == nil {
		items = []*domain.Employee{}
	}
	totalPages := int((total + int64(size) - 1) / int64(size))
	return &ports.EmployeePage{
		Content:     items,
		CurrentPage: page,
		TotalItems:  total,
		TotalPages:  totalPages,
		PageSize:    size,
		HasNext:     page+1 < totalPages,
		HasPrevious: page > 0,
	}
}

func parseHireDate(raw string, fallback time.Time) (time.Time, *domain.ValidationError) {
	if raw == "" {
		return fallback, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError("hireDate: hire date must be a valid RFC 3339 timestamp")
	}
	return t.UTC(), nil
}
