// Package store keeps a history of served predictions in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// Record is one served prediction.
type Record struct {
	ID        string                 `json:"id"`
	Fields    map[string]interface{} `json:"fields"`
	Input     []float64              `json:"input"`
	Price     float64                `json:"predicted_price"`
	Cached    bool                   `json:"cached"`
	CreatedAt time.Time              `json:"created_at"`
}

// SQLiteStore persists records using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS predictions (
	id         TEXT PRIMARY KEY,
	fields     TEXT NOT NULL,
	input      TEXT NOT NULL,
	price      REAL NOT NULL,
	cached     INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions(created_at);
`

// Migrate creates the schema.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save stores a record, assigning its id and creation time when unset.
func (s *SQLiteStore) Save(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	fieldsJSON, err := json.Marshal(rec.Fields)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal fields")
	}
	inputJSON, err := json.Marshal(rec.Input)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal input")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO predictions (id, fields, input, price, cached, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, string(fieldsJSON), string(inputJSON), rec.Price, rec.Cached, rec.CreatedAt,
	)
	return eris.Wrapf(err, "sqlite: insert prediction %s", rec.ID)
}

// Recent returns up to limit records, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, fields, input, price, cached, created_at FROM predictions ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: query predictions")
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			rec        Record
			fieldsJSON string
			inputJSON  string
		)
		if err := rows.Scan(&rec.ID, &fieldsJSON, &inputJSON, &rec.Price, &rec.Cached, &rec.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan prediction")
		}
		if err := json.Unmarshal([]byte(fieldsJSON), &rec.Fields); err != nil {
			return nil, eris.Wrapf(err, "sqlite: unmarshal fields of %s", rec.ID)
		}
		if err := json.Unmarshal([]byte(inputJSON), &rec.Input); err != nil {
			return nil, eris.Wrapf(err, "sqlite: unmarshal input of %s", rec.ID)
		}
		records = append(records, rec)
	}
	return records, eris.Wrap(rows.Err(), "sqlite: iterate predictions")
}
