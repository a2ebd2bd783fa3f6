package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// sqliteTimeLayout is fixed width so text ordering matches time ordering.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLite stores leads in a local SQLite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the SQLite database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// a single writer avoids SQLITE_BUSY under concurrent requests
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	return &SQLite{db: conn}, nil
}

// Close closes the database.
func (s *SQLite) Close() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

// EnsureSchema creates the leads table if it does not exist.
func (s *SQLite) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveLead inserts a lead, filling in ID and CreatedAt when unset.
func (s *SQLite) SaveLead(ctx context.Context, lead *Lead) error {
	prepareLead(lead)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO leads (id, kind, name, email, payload, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		lead.ID.String(), string(lead.Kind), lead.Name, lead.Email, string(lead.Payload),
		lead.CreatedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save lead: %w", err)
	}
	return nil
}

// ListLeads returns the newest leads first.
func (s *SQLite) ListLeads(ctx context.Context, kind LeadKind, limit int) ([]Lead, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, name, email, payload, created_at
		FROM leads
		WHERE (? = '' OR kind = ?)
		ORDER BY created_at DESC
		LIMIT ?
	`, string(kind), string(kind), normalizeLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer func() { _ = rows.Close() }()

	leads := []Lead{}
	for rows.Next() {
		lead, err := scanSQLiteLead(rows)
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
func (s *SQLite) GetLead(ctx context.Context, id uuid.UUID) (*Lead, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, name, email, payload, created_at FROM leads WHERE id = ?`, id.String())
	lead, err := scanSQLiteLead(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}
	return lead, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSQLiteLead(row scanner) (*Lead, error) {
	var (
		lead                         Lead
		id, kind, payload, createdAt string
	)
	if err := row.Scan(&id, &kind, &lead.Name, &lead.Email, &payload, &createdAt); err != nil {
		return nil, err
	}

	parsedID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid lead id %q: %w", id, err)
	}
	ts, err := time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}

	lead.ID = parsedID
	lead.Kind = LeadKind(kind)
	lead.Payload = json.RawMessage(payload)
	lead.CreatedAt = ts
	return &lead, nil
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS leads (
	id         TEXT PRIMARY KEY,
	kind       TEXT NOT NULL,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL,
	payload    TEXT NOT NULL DEFAULT '{}',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS leads_kind_created_at_idx ON leads (kind, created_at DESC);
`
