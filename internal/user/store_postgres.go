package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	id "registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/platform/tx"
	"registrar/pkg/requestcontext"
)

// PostgresStore persists accounts and domain roles.
//
// Schema:
//
//	CREATE TABLE users (
//	    id         UUID PRIMARY KEY,
//	    email      TEXT NOT NULL,
//	    first_name TEXT NOT NULL DEFAULT '',
//	    last_name  TEXT NOT NULL DEFAULT '',
//	    is_staff   BOOLEAN NOT NULL DEFAULT FALSE,
//	    restricted BOOLEAN NOT NULL DEFAULT FALSE,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
//
//	CREATE TABLE user_domain_roles (
//	    user_id    UUID NOT NULL REFERENCES users (id),
//	    domain_id  UUID NOT NULL,
//	    role       TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    PRIMARY KEY (user_id, domain_id, role)
//	);
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *PostgresStore) q(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

func (s *PostgresStore) FindByID(ctx context.Context, userID id.UserID) (*User, error) {
	var u User
	var rawID uuid.UUID
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT id, email, first_name, last_name, is_staff, restricted, created_at, updated_at
		FROM users WHERE id = $1
	`, uuid.UUID(userID)).Scan(
		&rawID, &u.Email, &u.FirstName, &u.LastName,
		&u.IsStaff, &u.Restricted, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.ID = id.UserID(rawID)
	return &u, nil
}

func (s *PostgresStore) Save(ctx context.Context, u *User) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO users (id, email, first_name, last_name, is_staff, restricted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			is_staff = EXCLUDED.is_staff,
			restricted = EXCLUDED.restricted,
			updated_at = EXCLUDED.updated_at
	`, uuid.UUID(u.ID), u.Email, u.FirstName, u.LastName, u.IsStaff, u.Restricted, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}

func (s *PostgresStore) Restrict(ctx context.Context, userID id.UserID) error {
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE users SET restricted = TRUE, updated_at = NOW() WHERE id = $1
	`, uuid.UUID(userID))
	if err != nil {
		return fmt.Errorf("restrict user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) GrantManager(ctx context.Context, userID id.UserID, domainID id.DomainID) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO user_domain_roles (user_id, domain_id, role, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, domain_id, role) DO NOTHING
	`, uuid.UUID(userID), uuid.UUID(domainID), string(RoleManager), requestcontext.Now(ctx))
	if err != nil {
		return fmt.Errorf("grant manager role: %w", err)
	}
	return nil
}
