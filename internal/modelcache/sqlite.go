package modelcache

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps cache records in a local SQLite database. Useful for
// installs that prefer one database file over a directory of JSON records;
// the UPSERT inside a transaction gives the same atomic-replace guarantee
// as the file store's rename.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) the database at path and applies
// pending schema migrations.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := runMigrations(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func runMigrations(dbPath string) error {
	migrationsDir, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("access migrations: %w", err)
	}
	sourceDriver, err := iofs.New(migrationsDir, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	normalized := filepath.ToSlash(dbPath)
	if filepath.IsAbs(dbPath) && normalized[0] != '/' {
		normalized = "/" + normalized
	}
	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, "sqlite://"+normalized)
	if err != nil {
		return fmt.Errorf("create migration instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Get loads the record for a key. A row with an unparseable payload is
// reported as ErrNotFound so it gets overwritten by retraining.
func (s *SQLiteStore) Get(ctx context.Context, key string) (*Record, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM model_records WHERE player_key = ?`, key,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, ErrNotFound
	}
	return &rec, nil
}

// Put replaces the record for a key.
func (s *SQLiteStore) Put(ctx context.Context, key string, rec *Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO model_records (player_key, version, trained_at, samples, dims, payload)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(player_key) DO UPDATE SET
		   version = excluded.version,
		   trained_at = excluded.trained_at,
		   samples = excluded.samples,
		   dims = excluded.dims,
		   payload = excluded.payload`,
		key, rec.Version, rec.TrainedAt, rec.Samples, rec.Dims, string(payload),
	)
	if err != nil {
		return fmt.Errorf("store record: %w", err)
	}
	return nil
}

// Delete removes the record for a key.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM model_records WHERE player_key = ?`, key,
	); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
