package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ems-platform/employee-api/internal/core/domain"
	"github.com/ems-platform/employee-api/internal/core/ports"
)

// stubEmployeeRepo is an in-memory EmployeeRepository mirroring the filter
// and ordering semantics of the SQL implementation.
type stubEmployeeRepo struct {
	nextID    int64
	employees map[int64]*domain.Employee
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{nextID: 1, employees: make(map[int64]*domain.Employee)}
}

func cloneEmployee(e *domain.Employee) *domain.Employee {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

func (r *stubEmployeeRepo) Create(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	for _, existing := range r.employees {
		if existing.Email == e.Email {
			return nil, domain.ErrEmailExists
		}
	}
	copy := cloneEmployee(e)
	copy.ID = r.nextID
	r.nextID++
	r.employees[copy.ID] = cloneEmployee(copy)
	return cloneEmployee(copy), nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, e *domain.Employee) (*domain.Employee, error) {
	if _, ok := r.employees[e.ID]; !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	for _, existing := range r.employees {
		if existing.ID != e.ID && existing.Email == e.Email {
			return nil, domain.ErrEmailExists
		}
	}
	r.employees[e.ID] = cloneEmployee(e)
	return cloneEmployee(e), nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.employees[id]; !ok {
		return domain.ErrEmployeeNotFound
	}
	delete(r.employees, id)
	return nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id int64) (*domain.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}
	return cloneEmployee(e), nil
}

func (r *stubEmployeeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, e := range r.employees {
		if e.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubEmployeeRepo) sorted() []*domain.Employee {
	all := make([]*domain.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		all = append(all, cloneEmployee(e))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].FirstName != all[j].FirstName {
			return all[i].FirstName < all[j].FirstName
		}
		return all[i].ID < all[j].ID
	})
	return all
}

func matchesQuery(e *domain.Employee, query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{e.FirstName, e.LastName, e.Email, e.Department, e.Position} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

func (r *stubEmployeeRepo) Search(_ context.Context, filter ports.SearchFilter) ([]*domain.Employee, int64, error) {
	var matched []*domain.Employee
	for _, e := range r.sorted() {
		if filter.Query != "" && !matchesQuery(e, filter.Query) {
			continue
		}
		if filter.Department != "" && e.Department != filter.Department {
			continue
		}
		if filter.Position != "" && e.Position != filter.Position {
			continue
		}
		if filter.MinSalary != nil && e.Salary < *filter.MinSalary {
			continue
		}
		if filter.MaxSalary != nil && e.Salary > *filter.MaxSalary {
			continue
		}
		matched = append(matched, e)
	}

	total := int64(len(matched))
	start := filter.Page * filter.Size
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubEmployeeRepo) FindAll(_ context.Context) ([]*domain.Employee, error) {
	return r.sorted(), nil
}

func (r *stubEmployeeRepo) DistinctDepartments(_ context.Context) ([]string, error) {
	return r.distinct(func(e *domain.Employee) string { return e.Department }), nil
}

func (r *stubEmployeeRepo) DistinctPositions(_ context.Context) ([]string, error) {
	return r.distinct(func(e *domain.Employee) string { return e.Position }), nil
}

func (r *stubEmployeeRepo) distinct(field func(*domain.Employee) string) []string {
	seen := make(map[string]struct{})
	var values []string
	for _, e := range r.employees {
		v := field(e)
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			values = append(values, v)
		}
	}
	sort.Strings(values)
	return values
}

func (r *stubEmployeeRepo) Statistics(_ context.Context) (*ports.Statistics, error) {
	stats := &ports.Statistics{ByDepartment: make(map[string]int64)}
	positions := make(map[string]struct{})
	var sum float64
	for _, e := range r.employees {
		stats.TotalEmployees++
		sum += e.Salary
		if stats.TotalEmployees == 1 || e.Salary < stats.MinSalary {
			stats.MinSalary = e.Salary
		}
		if e.Salary > stats.MaxSalary {
			stats.MaxSalary = e.Salary
		}
		stats.ByDepartment[e.Department]++
		positions[e.Position] = struct{}{}
	}
	if stats.TotalEmployees > 0 {
		stats.AverageSalary = sum / float64(stats.TotalEmployees)
	}
	stats.DepartmentCount = int64(len(stats.ByDepartment))
	stats.PositionCount = int64(len(positions))
	return stats, nil
}

func (r *stubEmployeeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.employees)), nil
}

func testEmployeeService() (*EmployeeService, *stubEmployeeRepo) {
	repo := newStubEmployeeRepo()
	return NewEmployeeService(repo, zerolog.Nop()), repo
}

func validInput() ports.EmployeeInput {
	return ports.EmployeeInput{
		FirstName:   "John",
		LastName:    "Doe",
		Email:       "john.doe@example.com",
		PhoneNumber: "+12125551234",
		Department:  "IT",
		Position:    "Developer",
		Salary:      75000,
	}
}

func TestEmployeeService_CreateAndGet(t *testing.T) {
	svc, _ := testEmployeeService()

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected server-assigned id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatalf("expected timestamps to be set")
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if got.Email != "john.doe@example.com" {
		t.Fatalf("unexpected email: %s", got.Email)
	}
}

func TestEmployeeService_Create_DuplicateEmail(t *testing.T) {
	svc, _ := testEmployeeService()

	if _, err := svc.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	dup := validInput()
	dup.FirstName = "Johnny"
	if _, err := svc.Create(context.Background(), dup); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestEmployeeService_Create_Validation(t *testing.T) {
	svc, _ := testEmployeeService()

	input := ports.EmployeeInput{
		FirstName:   "J",
		LastName:    "",
		Email:       "not-an-email",
		PhoneNumber: "12345",
		Department:  "",
		Position:    "Developer",
		Salary:      -1,
	}

	_, err := svc.Create(context.Background(), input)
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	want := []string{
		"firstName: first name must be between 2 and 50 characters",
		"lastName: last name is required",
		"email: email should be valid",
		"department: department is required",
		"salary: salary must be positive",
		"phoneNumber: phone number should be valid with country code (e.g., +1234567890)",
	}
	for _, msg := range want {
		found := false
		for _, got := range verr.Messages {
			if got == msg {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing message %q in %v", msg, verr.Messages)
		}
	}
}

func TestEmployeeService_Create_PhoneCountryCodePrefix(t *testing.T) {
	svc, _ := testEmployeeService()

	input := validInput()
	input.PhoneNumber = "212555123456"
	input.CountryCode = "+1"

	created, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.PhoneNumber != "+1212555123456" {
		t.Fatalf("expected prefixed phone, got %s", created.PhoneNumber)
	}
}

func TestEmployeeService_Update_KeepOwnEmail(t *testing.T) {
	svc, _ := testEmployeeService()

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	input := validInput()
	input.Position = "Senior Developer"
	updated, err := svc.Update(context.Background(), created.ID, input)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Position != "Senior Developer" {
		t.Fatalf("position not updated: %s", updated.Position)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("CreatedAt must be preserved")
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) && !updated.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("UpdatedAt must be refreshed")
	}
}

func TestEmployeeService_Update_EmailCollision(t *testing.T) {
	svc, _ := testEmployeeService()

	first, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	other := validInput()
	other.Email = "jane.doe@example.com"
	other.FirstName = "Jane"
	if _, err := svc.Create(context.Background(), other); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	input := validInput()
	input.Email = "jane.doe@example.com"
	if _, err := svc.Update(context.Background(), first.ID, input); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestEmployeeService_Update_NotFound(t *testing.T) {
	svc, _ := testEmployeeService()

	if _, err := svc.Update(context.Background(), 999, validInput()); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeService_Delete(t *testing.T) {
	svc, _ := testEmployeeService()

	created, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), created.ID); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound after delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), created.ID); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound on second delete, got %v", err)
	}
}

func TestEmployeeService_Search_EmptyStore(t *testing.T) {
	svc, _ := testEmployeeService()

	page, err := svc.Search(context.Background(), ports.SearchInput{})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if page.Content == nil {
		t.Fatalf("Content must be non-nil even when empty")
	}
	if len(page.Content) != 0 || page.TotalItems != 0 || page.TotalPages != 0 {
		t.Fatalf("expected empty page, got %+v", page)
	}
	if page.HasNext || page.HasPrevious {
		t.Fatalf("empty page must not report neighbours")
	}
}

func seedThree(t *testing.T, svc *EmployeeService) {
	t.Helper()
	inputs := []ports.EmployeeInput{
		{FirstName: "John", LastName: "Smith", Email: "john.smith@example.com", PhoneNumber: "+12125550001", Department: "IT", Position: "Developer", Salary: 80000},
		{FirstName: "Alice", LastName: "Smith", Email: "alice.smith@example.com", PhoneNumber: "+12125550002", Department: "HR", Position: "Manager", Salary: 90000},
		{FirstName: "Bob", LastName: "Johnson", Email: "bob.johnson@example.com", PhoneNumber: "+12125550003", Department: "IT Support", Position: "Technician", Salary: 55000},
	}
	for _, in := range inputs {
		if _, err := svc.Create(context.Background(), in); err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
	}
}

func TestEmployeeService_Search_Query(t *testing.T) {
	svc, _ := testEmployeeService()
	seedThree(t, svc)

	page, err := svc.Search(context.Background(), ports.SearchInput{Query: "john"})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	// "john" matches John Smith (first name) and Bob Johnson (last name
	// and email), but not Alice Smith.
	if page.TotalItems != 2 {
		t.Fatalf("expected 2 matches, got %d", page.TotalItems)
	}
	for _, e := range page.Content {
		if e.FirstName == "Alice" {
			t.Fatalf("Alice Smith must not match query %q", "john")
		}
	}
}

func TestEmployeeService_Search_SalaryBounds(t *testing.T) {
	svc, _ := testEmployeeService()
	seedThree(t, svc)

	min, max := 80000.0, 90000.0
	page, err := svc.Search(context.Background(), ports.SearchInput{MinSalary: &min, MaxSalary: &max})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	// Bounds are inclusive: 80000 and 90000 both match, 55000 does not.
	if page.TotalItems != 2 {
		t.Fatalf("expected 2 matches, got %d", page.TotalItems)
	}
}

func TestEmployeeService_Search_Pagination(t *testing.T) {
	svc, _ := testEmployeeService()
	seedThree(t, svc)

	first, err := svc.Search(context.Background(), ports.SearchInput{Page: 0, Size: 2})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(first.Content) != 2 || first.TotalItems != 3 || first.TotalPages != 2 {
		t.Fatalf("unexpected first page: %+v", first)
	}
	if !first.HasNext || first.HasPrevious {
		t.Fatalf("first page neighbour flags wrong: %+v", first)
	}
	// Sorted by first name: Alice, Bob, John.
	if first.Content[0].FirstName != "Alice" || first.Content[1].FirstName != "Bob" {
		t.Fatalf("unexpected sort order: %s, %s", first.Content[0].FirstName, first.Content[1].FirstName)
	}

	second, err := svc.Search(context.Background(), ports.SearchInput{Page: 1, Size: 2})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(second.Content) != 1 || second.Content[0].FirstName != "John" {
		t.Fatalf("unexpected second page: %+v", second)
	}
	if second.HasNext || !second.HasPrevious {
		t.Fatalf("second page neighbour flags wrong: %+v", second)
	}
}

func TestEmployeeService_ByDepartment_ExactMatch(t *testing.T) {
	svc, _ := testEmployeeService()
	seedThree(t, svc)

	page, err := svc.ByDepartment(context.Background(), "IT", 0, 10)
	if err != nil {
		t.Fatalf("ByDepartment returned error: %v", err)
	}
	// Exact match: "IT Support" must not be included.
	if page.TotalItems != 1 || page.Content[0].Department != "IT" {
		t.Fatalf("expected only the IT department, got %+v", page)
	}
}

func TestEmployeeService_Statistics(t *testing.T) {
	svc, _ := testEmployeeService()
	seedThree(t, svc)

	stats, err := svc.Statistics(context.Background())
	if err != nil {
		t.Fatalf("Statistics returned error: %v", err)
	}
	if stats.TotalEmployees != 3 {
		t.Fatalf("expected 3 employees, got %d", stats.TotalEmployees)
	}
	if stats.MinSalary != 55000 || stats.MaxSalary != 90000 {
		t.Fatalf("unexpected salary bounds: %v..%v", stats.MinSalary, stats.MaxSalary)
	}
	if stats.DepartmentCount != 3 {
		t.Fatalf("expected 3 departments, got %d", stats.DepartmentCount)
	}
	if stats.ByDepartment["IT"] != 1 {
		t.Fatalf("unexpected department breakdown: %v", stats.ByDepartment)
	}
}
