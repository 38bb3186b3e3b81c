package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ems-platform/employee-api/internal/api/metrics"
	"github.com/ems-platform/employee-api/internal/core/ports"
)

// EmployeeHandler handles HTTP requests for employee queries and mutations.
type EmployeeHandler struct {
	service ports.EmployeeService
}

func NewEmployeeHandler(service ports.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{service: service}
}

// List handles GET /api/employees — paginated, filtered search.
//
// @Summary      Search employees
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        page        query     int     false  "Zero-based page index"  default(0)
// @Param        size        query     int     false  "Page size"              default(10)
// @Param        search      query     string  false  "Case-insensitive substring over name, email, department, position"
// @Param        department  query     string  false  "Exact department filter"
// @Param        position    query     string  false  "Exact position filter"
// @Param        minSalary   query     number  false  "Inclusive salary lower bound"
// @Param        maxSalary   query     number  false  "Inclusive salary upper bound"
// @Success      200         {object}  employeePageResponse
// @Failure      400         {object}  errorResponse
// @Failure      401         {object}  errorResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	page, size, err := pagingParams(c)
	if err != nil {
		return err
	}

	minSalary, err := optionalFloat(c, "minSalary")
	if err != nil {
		return err
	}
	maxSalary, err := optionalFloat(c, "maxSalary")
	if err != nil {
		return err
	}

	result, err := h.service.Search(c.Request().Context(), ports.SearchInput{
		Page:       page,
		Size:       size,
		Query:      c.QueryParam("search"),
		Department: c.QueryParam("department"),
		Position:   c.QueryParam("position"),
		MinSalary:  minSalary,
		MaxSalary:  maxSalary,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toPageResponse(result))
}

// Get handles GET /api/employees/:id.
//
// @Summary      Get an employee by id
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Employee id"
// @Success      200  {object}  domain.Employee
// @Failure      404  {object}  errorResponse
// @Router       /api/employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	employee, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, employee)
}

// Create handles POST /api/employees.
//
// @Summary      Create an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      employeeRequest  true  "Employee fields"
// @Success      201   {object}  createEmployeeResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	created, err := h.service.Create(c.Request().Context(), toEmployeeInput(req))
	if err != nil {
		return err
	}

	metrics.EmployeeMutationsTotal.WithLabelValues("create").Inc()

	return c.JSON(http.StatusCreated, createEmployeeResponse{
		Message:    "Employee created successfully",
		Employee:   created,
		EmployeeID: created.ID,
	})
}

// Update handles PUT /api/employees/:id — full-record replacement.
//
// @Summary      Update an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Employee id"
// @Param        body  body      employeeRequest  true  "Employee fields"
// @Success      200   {object}  updateEmployeeResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req employeeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.service.Update(c.Request().Context(), id, toEmployeeInput(req))
	if err != nil {
		return err
	}

	metrics.EmployeeMutationsTotal.WithLabelValues("update").Inc()

	return c.JSON(http.StatusOK, updateEmployeeResponse{
		Message:  "Employee updated successfully",
		Employee: updated,
	})
}

// Delete handles DELETE /api/employees/:id.
//
// @Summary      Delete an employee
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Employee id"
// @Success      200  {object}  deleteEmployeeResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.EmployeeMutationsTotal.WithLabelValues("delete").Inc()

	return c.JSON(http.StatusOK, deleteEmployeeResponse{
		Message:   "Employee deleted successfully",
		DeletedID: id,
	})
}

// Departments handles GET /api/employees/departments.
//
// @Summary      List distinct departments
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  string
// @Router       /api/employees/departments [get]
func (h *EmployeeHandler) Departments(c echo.Context) error {
	departments, err := h.service.DistinctDepartments(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, departments)
}

// Positions handles GET /api/employees/positions.
//
// @Summary      List distinct positions
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  string
// @Router       /api/employees/positions [get]
func (h *EmployeeHandler) Positions(c echo.Context) error {
	positions, err := h.service.DistinctPositions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, positions)
}

// ByDepartment handles GET /api/employees/department/:department.
//
// @Summary      List employees in one department
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Param        department  path      string  true   "Department (exact match)"
// @Param        page        query     int     false  "Zero-based page index"  default(0)
// @Param        size        query     int     false  "Page size"              default(10)
// @Success      200         {object}  departmentPageResponse
// @Router       /api/employees/department/{department} [get]
func (h *EmployeeHandler) ByDepartment(c echo.Context) error {
	page, size, err := pagingParams(c)
	if err != nil {
		return err
	}

	department := c.Param("department")
	result, err := h.service.ByDepartment(c.Request().Context(), department, page, size)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, departmentPageResponse{
		employeePageResponse: toPageResponse(result),
		Department:           department,
	})
}

// Statistics handles GET /api/employees/stats/summary.
//
// @Summary      Aggregate employee statistics
// @Tags         employees
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statisticsResponse
// @Router       /api/employees/stats/summary [get]
func (h *EmployeeHandler) Statistics(c echo.Context) error {
	stats, err := h.service.Statistics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toStatisticsResponse(stats))
}

// --- Query/path parameter helpers ---

func pagingParams(c echo.Context) (page, size int, err error) {
	page, err = intParam(c, "page", 0)
	if err != nil {
		return 0, 0, err
	}
	size, err = intParam(c, "size", 10)
	if err != nil {
		return 0, 0, err
	}
	return page, size, nil
}

func intParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return n, nil
}

func optionalFloat(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}
	return &f, nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return id, nil
}
