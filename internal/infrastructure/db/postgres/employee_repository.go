package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ems-platform/employee-api/internal/core/domain"
	"github.com/ems-platform/employee-api/internal/core/ports"
)

const employeeColumns = `id, first_name, last_name, email, phone_number, country_code,
	department, position, salary, hire_date, created_at, updated_at`

// employeeOrder keeps every listing deterministic: first name ascending, id
// as tiebreak.
const employeeOrder = `ORDER BY first_name ASC, id ASC`

// EmployeeRepository is the PostgreSQL adapter for the employee record store.
type EmployeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create inserts a new employee and returns the stored record with its
// server-assigned id. A duplicate email surfaces as ErrEmailExists even when
// the service-level pre-check raced and passed.
func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	query := `
		INSERT INTO employees
			(first_name, last_name, email, phone_number, country_code, department, position, salary, hire_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	args := []any{
		e.FirstName, e.LastName, e.Email, e.PhoneNumber, e.CountryCode,
		e.Department, e.Position, e.Salary, e.HireDate, e.CreatedAt, e.UpdatedAt,
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&e.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert employee: %w", err)
	}
	return e, nil
}

// Update replaces all mutable fields of the row with the given id.
func (r *EmployeeRepository) Update(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	query := `
		UPDATE employees SET
			first_name = $1, last_name = $2, email = $3, phone_number = $4,
			country_code = $5, department = $6, position = $7, salary = $8,
			hire_date = $9, updated_at = $10
		WHERE id = $11
	`
	args := []any{
		e.FirstName, e.LastName, e.Email, e.PhoneNumber, e.CountryCode,
		e.Department, e.Position, e.Salary, e.HireDate, e.UpdatedAt, e.ID,
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update employee: %w", err)
	}
	if affected == 0 {
		return nil, domain.ErrEmployeeNotFound
	}
	return e, nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if affected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*domain.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees WHERE id = $1`, employeeColumns)

	var e domain.Employee
	if err := scanEmployee(r.db.QueryRowContext(ctx, query, id), &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("select employee: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("email exists: %w", err)
	}
	return exists, nil
}

// Search runs the combined filter query: one count round-trip, one page
// round-trip, both built from the same predicate list.
func (r *EmployeeRepository) Search(ctx context.Context, filter ports.SearchFilter) ([]*domain.Employee, int64, error) {
	where, args := buildPredicates(filter)

	var total int64
	countQuery := `SELECT count(*) FROM employees` + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM employees%s %s LIMIT $%d OFFSET $%d`,
		employeeColumns, where, employeeOrder, len(args)+1, len(args)+2)
	args = append(args, filter.Size, filter.Page*filter.Size)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select employees: %w", err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		var e domain.Employee
		if err := scanEmployee(rows, &e); err != nil {
			return nil, 0, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate employees: %w", err)
	}

	return employees, total, nil
}

func (r *EmployeeRepository) FindAll(ctx context.Context) ([]*domain.Employee, error) {
	query := fmt.Sprintf(`SELECT %s FROM employees %s`, employeeColumns, employeeOrder)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select employees: %w", err)
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		var e domain.Employee
		if err := scanEmployee(rows, &e); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		employees = append(employees, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return employees, nil
}

func (r *EmployeeRepository) DistinctDepartments(ctx context.Context) ([]string, error) {
	return r.distinctValues(ctx, `SELECT DISTINCT department FROM employees ORDER BY department ASC`)
}

func (r *EmployeeRepository) DistinctPositions(ctx context.Context) ([]string, error) {
	return r.distinctValues(ctx, `SELECT DISTINCT position FROM employees ORDER BY position ASC`)
}

func (r *EmployeeRepository) distinctValues(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select distinct values: %w", err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan value: %w", err)
		}
		values = append(values, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate values: %w", err)
	}
	return values, nil
}

// Statistics aggregates over the whole table. COALESCE keeps the salary
// aggregates well-defined on an empty store.
func (r *EmployeeRepository) Statistics(ctx context.Context) (*ports.Statistics, error) {
	stats := &ports.Statistics{ByDepartment: make(map[string]int64)}

	summary := `
		SELECT count(*),
			COALESCE(avg(salary), 0),
			COALESCE(min(salary), 0),
			COALESCE(max(salary), 0),
			count(DISTINCT department),
			count(DISTINCT position)
		FROM employees
	`
	dst := []any{
		&stats.TotalEmployees, &stats.AverageSalary, &stats.MinSalary,
		&stats.MaxSalary, &stats.DepartmentCount, &stats.PositionCount,
	}
	if err := r.db.QueryRowContext(ctx, summary).Scan(dst...); err != nil {
		return nil, fmt.Errorf("employee statistics: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT department, count(*) FROM employees GROUP BY department`)
	if err != nil {
		return nil, fmt.Errorf("department counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dept string
		var n int64
		if err := rows.Scan(&dept, &n); err != nil {
			return nil, fmt.Errorf("scan department count: %w", err)
		}
		stats.ByDepartment[dept] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate department counts: %w", err)
	}

	return stats, nil
}

func (r *EmployeeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM employees`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count employees: %w", err)
	}
	return n, nil
}

// buildPredicates composes the WHERE clause from the filter: the free-text
// query is an OR over five fields, every other filter ANDs in.
func buildPredicates(filter ports.SearchFilter) (string, []any) {
	var predicates []string
	var args []any

	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		n := len(args)
		predicates = append(predicates, fmt.Sprintf(
			`(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d OR department ILIKE $%d OR position ILIKE $%d)`,
			n, n, n, n, n))
	}
	if filter.Department != "" {
		args = append(args, filter.Department)
		predicates = append(predicates, fmt.Sprintf(`department = $%d`, len(args)))
	}
	if filter.Position != "" {
		args = append(args, filter.Position)
		predicates = append(predicates, fmt.Sprintf(`position = $%d`, len(args)))
	}
	if filter.MinSalary != nil {
		args = append(args, *filter.MinSalary)
		predicates = append(predicates, fmt.Sprintf(`salary >= $%d`, len(args)))
	}
	if filter.MaxSalary != nil {
		args = append(args, *filter.MaxSalary)
		predicates = append(predicates, fmt.Sprintf(`salary <= $%d`, len(args)))
	}

	if len(predicates) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(predicates, " AND "), args
}

// scanTarget is satisfied by both *sql.Row and *sql.Rows.
type scanTarget interface {
	Scan(dst ...any) error
}

func scanEmployee(row scanTarget, e *domain.Employee) error {
	return row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.PhoneNumber, &e.CountryCode,
		&e.Department, &e.Position, &e.Salary, &e.HireDate, &e.CreatedAt, &e.UpdatedAt,
	)
}
