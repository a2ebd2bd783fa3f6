// Package db stores lead-capture submissions in PostgreSQL or SQLite.
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the lead storage used by the HTTP API.
type Store interface {
	EnsureSchema(ctx context.Context) error
	SaveLead(ctx context.Context, lead *Lead) error
	// ListLeads returns the newest leads first. An empty kind lists all kinds.
	ListLeads(ctx context.Context, kind LeadKind, limit int) ([]Lead, error)
	// GetLead returns nil, nil when no lead has the ID.
	GetLead(ctx context.Context, id uuid.UUID) (*Lead, error)
	Close()
}

// Open connects to the store named by databaseURL. postgres:// and
// postgresql:// URLs use PostgreSQL; sqlite:// and file: URLs use SQLite.
func Open(ctx context.Context, databaseURL string) (Store, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		pg, err := Connect(ctx, databaseURL)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case strings.HasPrefix(databaseURL, "sqlite://"), strings.HasPrefix(databaseURL, "file:"):
		lite, err := OpenSQLite(ctx, strings.TrimPrefix(databaseURL, "sqlite://"))
		if err != nil {
			return nil, err
		}
		return lite, nil
	default:
		return nil, fmt.Errorf("unsupported database URL scheme: %q", schemeOf(databaseURL))
	}
}

func schemeOf(u string) string {
	if i := strings.Index(u, ":"); i > 0 {
		return u[:i]
	}
	return u
}

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the leads table if it does not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveLead inserts a lead, filling in ID and CreatedAt when unset.
func (db *DB) SaveLead(ctx context.Context, lead *Lead) error {
	prepareLead(lead)
	_, err := db.pool.Exec(ctx,
		`INSERT INTO leads (id, kind, name, email, payload, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		lead.ID, string(lead.Kind), lead.Name, lead.Email, []byte(lead.Payload), lead.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save lead: %w", err)
	}
	return nil
}

// ListLeads returns the newest leads first.
func (db *DB) ListLeads(ctx context.Context, kind LeadKind, limit int) ([]Lead, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, kind, name, email, payload, created_at
		 FROM leads
		 WHERE ($1 = '' OR kind = $1)
		 ORDER BY created_at DESC
		 LIMIT $2`,
		string(kind), normalizeLimit(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	leads := []Lead{}
	for rows.Next() {
		lead, err := scanPostgresLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, *lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leads: %w", err)
	}
	return leads, nil
}

// GetLead retrieves a lead by ID.
func (db *DB) GetLead(ctx context.Context, id uuid.UUID) (*Lead, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, kind, name, email, payload, created_at FROM leads WHERE id = $1`, id)
	lead, err := scanPostgresLead(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return lead, nil
}

func scanPostgresLead(row pgx.Row) (*Lead, error) {
	var (
		lead    Lead
		kind    string
		payload []byte
	)
	if err := row.Scan(&lead.ID, &kind, &lead.Name, &lead.Email, &payload, &lead.CreatedAt); err != nil {
		return nil, err
	}
	lead.Kind = LeadKind(kind)
	lead.Payload = json.RawMessage(payload)
	return &lead, nil
}

func prepareLead(lead *Lead) {
	if lead.ID == uuid.Nil {
		lead.ID = uuid.New()
	}
	if lead.CreatedAt.IsZero() {
		lead.CreatedAt = time.Now().UTC()
	}
	if len(lead.Payload) == 0 {
		lead.Payload = json.RawMessage(`{}`)
	}
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS leads (
	id         UUID PRIMARY KEY,
	kind       TEXT NOT NULL,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	payload    JSONB NOT NULL DEFAULT '{}'::jsonb,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS leads_kind_created_at_idx ON leads (kind, created_at DESC);
`
