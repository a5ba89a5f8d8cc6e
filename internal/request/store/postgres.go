package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"registrar/internal/request/models"
	id "registrar/pkg/domain"
	"registrar/pkg/platform/sentinel"
	"registrar/pkg/platform/tx"
)

// Postgres persists requests as a JSONB document with the hot columns broken
// out for indexing.
//
// Schema:
//
//	CREATE TABLE domain_requests (
//	    id         UUID PRIMARY KEY,
//	    status     TEXT NOT NULL,
//	    creator    UUID NOT NULL,
//	    data       JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
//	CREATE INDEX domain_requests_creator_idx ON domain_requests (creator);
//	CREATE INDEX domain_requests_status_idx ON domain_requests (status);
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Postgres) q(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return s.db
}

func (s *Postgres) Create(ctx context.Context, r *models.DomainRequest) error {
	if err := prepare(r, models.Snapshot{}, true, r.UpdatedAt); err != nil {
		return err
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	_, err = s.q(ctx).ExecContext(ctx, `
		INSERT INTO domain_requests (id, status, creator, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.UUID(r.ID), string(r.Status), uuid.UUID(r.Creator), data, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("create request: %w", err)
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, requestID id.RequestID) (*models.DomainRequest, models.Snapshot, error) {
	var data []byte
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT data FROM domain_requests WHERE id = $1
	`, uuid.UUID(requestID)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.Snapshot{}, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, models.Snapshot{}, fmt.Errorf("get request: %w", err)
	}
	var r models.DomainRequest
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, models.Snapshot{}, fmt.Errorf("unmarshal request: %w", err)
	}
	return &r, models.SnapshotOf(&r), nil
}

func (s *Postgres) Save(ctx context.Context, r *models.DomainRequest, prev models.Snapshot) (models.Snapshot, error) {
	if err := prepare(r, prev, false, time.Now().UTC()); err != nil {
		return models.Snapshot{}, err
	}
	data, err := json.Marshal(r)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("marshal request: %w", err)
	}
	res, err := s.q(ctx).ExecContext(ctx, `
		UPDATE domain_requests
		SET status = $2, data = $3, updated_at = $4
		WHERE id = $1
	`, uuid.UUID(r.ID), string(r.Status), data, r.UpdatedAt)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("save request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Snapshot{}, err
	}
	if n == 0 {
		return models.Snapshot{}, sentinel.ErrNotFound
	}
	return models.SnapshotOf(r), nil
}

func (s *Postgres) ListByCreator(ctx context.Context, creator id.UserID) ([]*models.DomainRequest, error) {
	rows, err := s.q(ctx).QueryContext(ctx, `
		SELECT data FROM domain_requests WHERE creator = $1 ORDER BY created_at
	`, uuid.UUID(creator))
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var out []*models.DomainRequest
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		var r models.DomainRequest
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("unmarshal request: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}
