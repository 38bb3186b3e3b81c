package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// migrations are applied in order on startup. Statements are idempotent so
// repeated boots are safe without a migration-tracking table.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id           bigserial PRIMARY KEY,
		first_name   text        NOT NULL,
		last_name    text        NOT NULL,
		email        text        NOT NULL,
		phone_number text        NOT NULL,
		country_code text        NOT NULL DEFAULT '',
		department   text        NOT NULL,
		position     text        NOT NULL,
		salary       double precision NOT NULL DEFAULT 0,
		hire_date    timestamptz NOT NULL,
		created_at   timestamptz NOT NULL,
		updated_at   timestamptz NOT NULL,
		CONSTRAINT employees_email_key UNIQUE (email)
	)`,
	`CREATE INDEX IF NOT EXISTS employees_department_idx ON employees (department)`,
	`CREATE INDEX IF NOT EXISTS employees_position_idx ON employees (position)`,
	`CREATE INDEX IF NOT EXISTS employees_first_name_idx ON employees (first_name, id)`,
	`CREATE TABLE IF NOT EXISTS users (
		id            bigserial PRIMARY KEY,
		username      text        NOT NULL,
		password_hash text        NOT NULL,
		email         text        NOT NULL DEFAULT '',
		role          text        NOT NULL,
		created_at    timestamptz NOT NULL DEFAULT now(),
		CONSTRAINT users_username_key UNIQUE (username),
		CONSTRAINT users_role_check CHECK (role IN ('ADMIN', 'USER'))
	)`,
}

// Migrate creates the schema when it does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
