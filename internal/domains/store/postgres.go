package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"registrar/internal/domains/models"
	id "registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/platform/tx"
)

// Postgres persists domains and their derived information records.
//
// Schema:
//
//	CREATE TABLE domains (
//	    id         UUID PRIMARY KEY,
//	    name       TEXT NOT NULL,
//	    state      TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE UNIQUE INDEX domains_name_lower_idx ON domains (LOWER(name));
//
//	CREATE TABLE domain_information (
//	    domain_id  UUID PRIMARY KEY REFERENCES domains (id) ON DELETE CASCADE,
//	    request_id UUID NOT NULL,
//	    creator    UUID NOT NULL,
//	    data       JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// q returns the transaction from context when one is running, otherwise the
// pool. Approve wraps its writes in a single transaction this way.
func (s *Postgres) q(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

func (s *Postgres) CreateIfNameAvailable(ctx context.Context, d *models.Domain) error {
	_, err := s.q(ctx).ExecContext(ctx, `
		INSERT INTO domains (id, name, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, uuid.UUID(d.ID), d.Name, string(d.State), d.CreatedAt, d.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrAlreadyUsed
		}
		return fmt.Errorf("create domain: %w", err)
	}
	return nil
}

func (s *Postgres) FindByID(ctx context.Context, domainID id.DomainID) (*models.Domain, error) {
	return s.scanDomain(s.q(ctx).QueryRowContext(ctx, `
		SELECT id, name, state, created_at, updated_at
		FROM domains WHERE id = $1
	`, uuid.UUID(domainID)))
}

func (s *Postgres) FindByName(ctx context.Context, name string) (*models.Domain, error) {
	return s.scanDomain(s.q(ctx).QueryRowContext(ctx, `
		SELECT id, name, state, created_at, updated_at
		FROM domains WHERE LOWER(name) = LOWER($1)
	`, name))
}

func (s *Postgres) Update(ctx context.Context, d *models.Domain) error {
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE domains SET state = $2, updated_at = $3 WHERE id = $1
	`, uuid.UUID(d.ID), string(d.State), d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update domain: %w", err)
	}
	return requireRow(res)
}

func (s *Postgres) Delete(ctx context.Context, domainID id.DomainID) error {
	res, err := s.q(ctx).ExecContext(ctx, `DELETE FROM domains WHERE id = $1`, uuid.UUID(domainID))
	if err != nil {
		return fmt.Errorf("delete domain: %w", err)
	}
	return requireRow(res)
}

func (s *Postgres) SaveInformation(ctx context.Context, info *models.DomainInformation) error {
	data, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal domain information: %w", err)
	}
	_, err = s.q(ctx).ExecContext(ctx, `
		INSERT INTO domain_information (domain_id, request_id, creator, data, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (domain_id) DO UPDATE SET data = EXCLUDED.data
	`, uuid.UUID(info.DomainID), uuid.UUID(info.RequestID), uuid.UUID(info.Creator), data, info.CreatedAt)
	if err != nil {
		return fmt.Errorf("save domain information: %w", err)
	}
	return nil
}

func (s *Postgres) scanDomain(row *sql.Row) (*models.Domain, error) {
	var d models.Domain
	var rawID uuid.UUID
	var state string
	err := row.Scan(&rawID, &d.Name, &state, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan domain: %w", err)
	}
	d.ID = id.DomainID(rawID)
	d.State = models.State(state)
	return &d, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
