package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"roster/src/internal/schema"
)

// Store is a SQLite snapshot of the historical roster, one row per officer per
// roster date.
type Store struct {
	conn *sql.DB
}

// Metadata summarizes the stored roster.
type Metadata struct {
	Rows   int
	Latest string
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	conn, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// single writer
	conn.SetMaxOpenConns(1)
	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error { return s.conn.Close() }

func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS officers (
			date TEXT NOT NULL,
			badge TEXT NOT NULL DEFAULT '',
			full_name TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			unit TEXT NOT NULL DEFAULT '',
			unit_description TEXT NOT NULL DEFAULT '',
			first_name TEXT NOT NULL DEFAULT '',
			middle_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			suffix TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_officers_badge_date ON officers(badge, date)`,
		`CREATE INDEX IF NOT EXISTS idx_officers_last_name ON officers(last_name)`,
	}
	for _, m := range migrations {
		if _, err := s.conn.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

// Replace clears the officers table and inserts records in one transaction.
func (s *Store) Replace(ctx context.Context, records []schema.Record) (int, error) {
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	if _, err := tx.ExecContext(ctx, `DELETE FROM officers`); err != nil {
		return 0, fmt.Errorf("clear officers: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO officers
		(date, badge, full_name, title, unit, unit_description, first_name, middle_name, last_name, suffix)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Date, r.Badge, r.FullName, r.Title, r.Unit, r.UnitDescription,
			r.FirstName, r.MiddleName, r.LastName, r.Suffix); err != nil {
			return 0, fmt.Errorf("insert officer %d (badge %q): %w", i+1, r.Badge, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(records), nil
}

// Metadata returns the row count and the most recent roster date.
func (s *Store) Metadata(ctx context.Context) (Metadata, error) {
	var md Metadata
	var latest sql.NullString
	err := s.conn.QueryRowContext(ctx, `SELECT count(*), max(date) FROM officers`).Scan(&md.Rows, &latest)
	if err != nil {
		return Metadata{}, err
	}
	md.Latest = latest.String
	return md, nil
}

// Current returns the officers on the most recent roster, ordered by name.
func (s *Store) Current(ctx context.Context) ([]schema.Record, error) {
	return s.query(ctx, `WHERE date = (SELECT max(date) FROM officers) ORDER BY last_name, first_name, badge`)
}

// ByBadge returns every snapshot row for badge, oldest first.
func (s *Store) ByBadge(ctx context.Context, badge string) ([]schema.Record, error) {
	return s.query(ctx, `WHERE badge = ? ORDER BY date`, badge)
}

func (s *Store) query(ctx context.Context, where string, args ...any) ([]schema.Record, error) {
	rows, err := s.conn.QueryContext(ctx, `SELECT date, badge, full_name, title, unit, unit_description,
		first_name, middle_name, last_name, suffix FROM officers `+where, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []schema.Record
	for rows.Next() {
		var r schema.Record
		if err := rows.Scan(&r.Date, &r.Badge, &r.FullName, &r.Title, &r.Unit, &r.UnitDescription,
			&r.FirstName, &r.MiddleName, &r.LastName, &r.Suffix); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
