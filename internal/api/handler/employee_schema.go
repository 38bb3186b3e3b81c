package handler

import (
	"github.com/ems-platform/employee-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
// Timestamp is Unix milliseconds; Details carries one message per violated
// field on validation failures.
type errorResponse struct {
	Error     string   `json:"error"`
	Details   []string `json:"details,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

// --- Request types ---

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// employeeRequest carries the client-settable employee fields. Field-level
// validation happens in the mutation service so the rules hold for every
// caller, not just HTTP.
type employeeRequest struct {
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phoneNumber"`
	CountryCode string  `json:"countryCode"`
	Department  string  `json:"department"`
	Position    string  `json:"position"`
	Salary      float64 `json:"salary"`
	HireDate    string  `json:"hireDate"`
}

// --- Response types ---

type loginResponse struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	ExpiresIn int64  `json:"expiresIn"`
}

type employeePageResponse struct {
	Content     []*domain.Employee `json:"content"`
	CurrentPage int                `json:"currentPage"`
	TotalItems  int64              `json:"totalItems"`
	TotalPages  int                `json:"totalPages"`
	PageSize    int                `json:"pageSize"`
	HasNext     bool               `json:"hasNext"`
	HasPrevious bool               `json:"hasPrevious"`
}

// departmentPageResponse is the by-department listing envelope; it echoes the
// requested department back alongside the page.
type departmentPageResponse struct {
	employeePageResponse
	Department string `json:"department"`
}

type createEmployeeResponse struct {
	Message    string           `json:"message"`
	Employee   *domain.Employee `json:"employee"`
	EmployeeID int64            `json:"employeeId"`
}

type updateEmployeeResponse struct {
	Message  string           `json:"message"`
	Employee *domain.Employee `json:"employee"`
}

type deleteEmployeeResponse struct {
	Message   string `json:"message"`
	DeletedID int64  `json:"deletedId"`
}

type statisticsResponse struct {
	TotalEmployees        int64            `json:"totalEmployees"`
	AverageSalary         float64          `json:"averageSalary"`
	MinSalary             float64          `json:"minSalary"`
	MaxSalary             float64          `json:"maxSalary"`
	DepartmentCount       int64            `json:"departmentCount"`
	PositionCount         int64            `json:"positionCount"`
	EmployeesByDepartment map[string]int64 `json:"employeesByDepartment"`
}
