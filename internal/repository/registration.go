// internal/repository/registration.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"trustpanel-registration/internal/domain/registration"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// DB is the part of *pgxpool.Pool the repository uses.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// RegistrationRepository stores a company together with its administrator.
// It satisfies registration.Submitter.
type RegistrationRepository struct {
	db DB
}

func NewRegistrationRepository(db DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Submit inserts the company and its admin user in one transaction.
func (r *RegistrationRepository) Submit(ctx context.Context, draft registration.Draft) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cnpj := registration.NormalizeCNPJ(draft.CNPJ)

	var existing uuid.UUID
	err = tx.QueryRow(ctx, "SELECT id FROM companies WHERE cnpj = $1", cnpj).Scan(&existing)
	switch {
	case err == nil:
		return registration.ErrCompanyExists
	case !errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("lookup company: %w", err)
	}

	companyID := uuid.New()
	_, err = tx.Exec(ctx,
		"INSERT INTO companies (id, name, cnpj, phone, email) VALUES ($1, $2, $3, $4, $5)",
		companyID, strings.TrimSpace(draft.CompanyName), cnpj, digits(draft.CompanyPhone), strings.ToLower(strings.TrimSpace(draft.CompanyEmail)))
	if err != nil {
		return conflictOr(err, "insert company")
	}

	_, err = tx.Exec(ctx,
		"INSERT INTO users (id, company_id, name, email, password_hash, role) VALUES ($1, $2, $3, $4, $5, 'admin')",
		uuid.New(), companyID, strings.TrimSpace(draft.AdminName), strings.ToLower(strings.TrimSpace(draft.AdminEmail)), string(hash))
	if err != nil {
		return conflictOr(err, "insert admin")
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// conflictOr maps unique violations to the domain conflicts. A concurrent
// submission for the same CNPJ can pass the lookup and fail here.
func conflictOr(err error, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		switch pgErr.ConstraintName {
		case "companies_cnpj_key":
			return registration.ErrCompanyExists
		case "users_email_key":
			return registration.ErrAdminExists
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id         UUID PRIMARY KEY,
	name       TEXT NOT NULL,
	cnpj       CHAR(14) NOT NULL UNIQUE,
	phone      TEXT NOT NULL,
	email      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	company_id    UUID NOT NULL REFERENCES companies (id) ON DELETE CASCADE,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// EnsureSchema creates the registration tables when they are missing.
func (r *RegistrationRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
