package quota

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type db interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresStore persists contact quotas in the relational database. The
// check-and-decrement runs as a single statement so concurrent consumers for
// the same identity can never drive the counter below zero.
type PostgresStore struct {
	db        db
	allowance int
}

// NewPostgresStore initializes a store backed by pgx. The db argument is
// satisfied by *pgxpool.Pool.
func NewPostgresStore(db db, allowance int) *PostgresStore {
	if db == nil {
		panic("quota: database required")
	}
	if allowance <= 0 {
		allowance = DefaultAllowance
	}
	return &PostgresStore{db: db, allowance: allowance}
}

const checkQuery = `SELECT remaining FROM contact_quotas WHERE identity = $1`

// Check returns the counter state for the identity. Identities without a row
// have the full allowance; no row is created on read.
func (s *PostgresStore) Check(ctx context.Context, identity string) (Status, error) {
	var remaining int
	err := s.db.QueryRow(ctx, checkQuery, identity).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		return Status{CanContact: s.allowance > 0, RemainingUses: s.allowance}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("quota: check failed: %w", err)
	}
	return Status{CanContact: remaining > 0, RemainingUses: remaining}, nil
}

const consumeQuery = `
	INSERT INTO contact_quotas (identity, remaining, allowance)
	VALUES ($1, $2 - 1, $2)
	ON CONFLICT (identity) DO UPDATE
	SET remaining = contact_quotas.remaining - 1, updated_at = now()
	WHERE contact_quotas.remaining > 0
	RETURNING remaining
`

// Consume atomically decrements the counter by one. An exhausted counter is
// left untouched and reported as Success=false.
func (s *PostgresStore) Consume(ctx context.Context, identity string) (ConsumeResult, error) {
	var remaining int
	err := s.db.QueryRow(ctx, consumeQuery, identity, s.allowance).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		// The guarded upsert matched a row with remaining = 0.
		return ConsumeResult{Success: false, RemainingUses: 0}, nil
	}
	if err != nil {
		return ConsumeResult{}, fmt.Errorf("quota: consume failed: %w", err)
	}
	return ConsumeResult{Success: true, RemainingUses: remaining}, nil
}

const resetQuery = `
	INSERT INTO contact_quotas (identity, remaining, allowance)
	VALUES ($1, $2, $2)
	ON CONFLICT (identity) DO UPDATE
	SET remaining = EXCLUDED.remaining, updated_at = now()
`

// Reset restores the full allowance for an identity (admin operation).
func (s *PostgresStore) Reset(ctx context.Context, identity string) error {
	if _, err := s.db.Exec(ctx, resetQuery, identity, s.allowance); err != nil {
		return fmt.Errorf("quota: reset failed: %w", err)
	}
	return nil
}
