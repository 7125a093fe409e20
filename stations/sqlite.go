package stations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const stationsSchema = `
CREATE TABLE IF NOT EXISTS processed_stations (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	lines       TEXT NOT NULL DEFAULT '',
	north_label TEXT NOT NULL DEFAULT '',
	south_label TEXT NOT NULL DEFAULT ''
);`

// SQLiteStore reads the processed_stations table written by the import job.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens the station registry at path and ensures the schema
// exists. SQLite only supports one writer, so the pool is pinned to a single
// connection.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_journal=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open station db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping station db: %w", err)
	}
	if _, err := db.Exec(stationsSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure station schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) Get(ctx context.Context, id string) (Station, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, lines, north_label, south_label FROM processed_stations WHERE id = ?`, id)

	var st Station
	var lines string
	if err := row.Scan(&st.ID, &st.Name, &lines, &st.NorthLabel, &st.SouthLabel); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Station{}, ErrNotFound
		}
		return Station{}, fmt.Errorf("query station %s: %w", id, err)
	}
	st.Lines = splitLines(lines)
	return st, nil
}

// Put upserts one station. Used by the importer and by tests.
func (s *SQLiteStore) Put(ctx context.Context, st Station) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO processed_stations (id, name, lines, north_label, south_label)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			lines = excluded.lines,
			north_label = excluded.north_label,
			south_label = excluded.south_label`,
		st.ID, st.Name, strings.Join(st.Lines, ","), st.NorthLabel, st.SouthLabel)
	if err != nil {
		return fmt.Errorf("upsert station %s: %w", st.ID, err)
	}
	return nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
