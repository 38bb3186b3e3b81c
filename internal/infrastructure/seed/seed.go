// Package seed bootstraps empty stores with default login accounts and a
// sample employee dataset so a fresh deployment is usable immediately.
// Seeding only runs when the respective store is empty.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ems-platform/employee-api/internal/core/domain"
	"github.com/ems-platform/employee-api/internal/core/ports"
	"github.com/ems-platform/employee-api/internal/infrastructure/config"
)

type seedEmployee struct {
	firstName   string
	lastName    string
	email       string
	phone       string
	countryCode string
	department  string
	position    string
	salary      float64
}

var sampleEmployees = []seedEmployee{
	{"John", "Doe", "john.doe@company.com", "1234567890", "+1", "IT", "Software Engineer", 75000},
	{"Jane", "Smith", "jane.smith@company.com", "2345678901", "+1", "HR", "HR Manager", 65000},
	{"Mike", "Johnson", "mike.johnson@company.com", "3456789012", "+1", "Finance", "Financial Analyst", 70000},
	{"Sarah", "Wilson", "sarah.wilson@company.com", "7123456789", "+44", "Marketing", "Marketing Specialist", 60000},
	{"David", "Brown", "david.brown@company.com", "7456789012", "+44", "IT", "System Administrator", 68000},
	{"Emily", "Davis", "emily.davis@company.com", "9876543210", "+91", "Sales", "Sales Manager", 72000},
	{"Robert", "Miller", "robert.miller@company.com", "412345678", "+61", "Operations", "Operations Manager", 80000},
	{"Lisa", "Taylor", "lisa.taylor@company.com", "15123456789", "+49", "IT", "Frontend Developer", 70000},
	{"Carlos", "Rodriguez", "carlos.rodriguez@company.com", "5511999999999", "+55", "IT", "Backend Developer", 68000},
	{"Yuki", "Tanaka", "yuki.tanaka@company.com", "9012345678", "+81", "Design", "UI/UX Designer", 62000},
	{"Wei", "Zhang", "wei.zhang@company.com", "13123456789", "+86", "Finance", "Accountant", 58000},
	{"Marco", "Rossi", "marco.rossi@company.com", "3123456789", "+39", "Sales", "Sales Executive", 67000},
	{"Sophie", "Martin", "sophie.martin@company.com", "612345678", "+33", "HR", "Recruiter", 59000},
}

// Run seeds default users and sample employees into empty stores.
func Run(ctx context.Context, users ports.UserRepository, employees ports.EmployeeRepository, cfg config.SeedConfig, logger zerolog.Logger) error {
	if err := seedUsers(ctx, users, cfg, logger); err != nil {
		return err
	}
	return seedEmployees(ctx, employees, logger)
}

func seedUsers(ctx context.Context, repo ports.UserRepository, cfg config.SeedConfig, logger zerolog.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if count > 0 {
		return nil
	}

	accounts := []struct {
		username string
		password string
		email    string
		role     string
	}{
		{cfg.AdminUsername, cfg.AdminPassword, "admin@ems.com", domain.RoleAdmin},
		{cfg.UserUsername, cfg.UserPassword, "user@ems.com", domain.RoleUser},
	}

	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed users: hashing password: %w", err)
		}
		_, err = repo.Create(ctx, &domain.User{
			Username:     a.username,
			PasswordHash: string(hash),
			Email:        a.email,
			Role:         a.role,
		})
		if err != nil {
			// A concurrent boot may have won the race; the unique
			// constraint makes that harmless.
			if errors.Is(err, domain.ErrUserExists) {
				continue
			}
			return fmt.Errorf("seed users: %w", err)
		}
		logger.Info().Str("username", a.username).Str("role", a.role).Msg("default user created")
	}
	return nil
}

func seedEmployees(ctx context.Context, repo ports.EmployeeRepository, logger zerolog.Logger) error {
	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed employees: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, s := range sampleEmployees {
		_, err := repo.Create(ctx, &domain.Employee{
			FirstName:   s.firstName,
			LastName:    s.lastName,
			Email:       s.email,
			PhoneNumber: s.countryCode + s.phone,
			CountryCode: s.countryCode,
			Department:  s.department,
			Position:    s.position,
			Salary:      s.salary,
			HireDate:    now,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			if errors.Is(err, domain.ErrEmailExists) {
				continue
			}
			return fmt.Errorf("seed employees: %w", err)
		}
	}

	logger.Info().Int("count", len(sampleEmployees)).Msg("sample employees created")
	return nil
}
