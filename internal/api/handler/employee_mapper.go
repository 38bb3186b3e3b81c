package handler

import (
	"github.com/ems-platform/employee-api/internal/core/ports"
)

// --- Request → Service input ---

func toEmployeeInput(req employeeRequest) ports.EmployeeInput {
	return ports.EmployeeInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		CountryCode: req.CountryCode,
		Department:  req.Department,
		Position:    req.Position,
		Salary:      req.Salary,
		HireDate:    req.HireDate,
	}
}

// --- Service result → HTTP response ---

func toPageResponse(p *ports.EmployeePage) employeePageResponse {
	return employeePageResponse{
		Content:     p.Content,
		CurrentPage: p.CurrentPage,
		TotalItems:  p.TotalItems,
		TotalPages:  p.TotalPages,
		PageSize:    p.PageSize,
		HasNext:     p.HasNext,
		HasPrevious: p.HasPrevious,
	}
}

func toStatisticsResponse(s *ports.Statistics) statisticsResponse {
	byDepartment := s.ByDepartment
	if byDepartment == nil {
		byDepartment = map[string]int64{}
	}
	return statisticsResponse{
		TotalEmployees:        s.TotalEmployees,
		AverageSalary:         s.AverageSalary,
		MinSalary:             s.MinSalary,
		MaxSalary:             s.MaxSalary,
		DepartmentCount:       s.DepartmentCount,
		PositionCount:         s.PositionCount,
		EmployeesByDepartment: byDepartment,
	}
}
