// Package leadstore persists captured leads (e-mail plus the submitted
// profile and generated diagnosis) to SQLite. Saving is best-effort by
// contract: a storage failure must never fail the diagnosis request, so
// callers log the returned error and move on.
package leadstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/mauromattos-lab/NexusLab/internal/diagnosis"
)

const schema = `
CREATE TABLE IF NOT EXISTS leads (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	email          TEXT NOT NULL,
	diagnosis_data TEXT NOT NULL,
	created_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS leads_email_idx ON leads (email);
`

// Lead is one stored row. DiagnosisData holds the JSON envelope
// {collectedData, aiResult} exactly as captured at submission time.
type Lead struct {
	ID            int64  `db:"id" json:"id"`
	Email         string `db:"email" json:"email"`
	DiagnosisData string `db:"diagnosis_data" json:"diagnosis_data"`
	CreatedAt     string `db:"created_at" json:"created_at"`
}

type leadEnvelope struct {
	CollectedData diagnosis.BusinessProfile `json:"collectedData"`
	AIResult      diagnosis.DiagnosisResult `json:"aiResult"`
}

type Store struct {
	db *sqlx.DB
}

func Open(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply lead schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save records a lead. Leads without an e-mail are skipped silently:
// the visitor never identified themselves and there is nothing to
// follow up on.
func (s *Store) Save(ctx context.Context, profile diagnosis.BusinessProfile, result diagnosis.DiagnosisResult) error {
	if profile.Email == "" {
		return nil
	}
	blob, err := json.Marshal(leadEnvelope{CollectedData: profile, AIResult: result})
	if err != nil {
		return fmt.Errorf("encode lead: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO leads (email, diagnosis_data, created_at) VALUES (?, ?, ?)`,
		profile.Email, string(blob), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

// List returns the most recent leads, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = 50
	}
	var leads []Lead
	err := s.db.SelectContext(ctx, &leads,
		`SELECT id, email, diagnosis_data, created_at FROM leads ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM leads`); err != nil {
		return 0, fmt.Errorf("count leads: %w", err)
	}
	return n, nil
}
