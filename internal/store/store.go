// Package store persists the train feed in a SQLite database.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/njohns-tmpl/TrainTracker/internal/trains"
)

// Feed deliveries replace the whole table; the rowid preserves delivery
// order so ListTrains returns records exactly as the feed sent them.
const schema = `
CREATE TABLE IF NOT EXISTS trains (
	id                   INTEGER PRIMARY KEY AUTOINCREMENT,
	number               TEXT NOT NULL,
	route_name           TEXT NOT NULL DEFAULT '',
	from_station         TEXT NOT NULL DEFAULT '',
	to_station           TEXT NOT NULL DEFAULT '',
	punctuality          TEXT NOT NULL DEFAULT '',
	heading              TEXT NOT NULL DEFAULT '',
	last_visited_station TEXT NOT NULL DEFAULT ''
);`

// Store wraps the SQLite connection holding the train feed.
type Store struct {
	db *sql.DB
}

// New opens the train database at path, creating it if needed.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// WAL keeps the viewer readable while a feed delivery is in flight.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReplaceAll swaps in a fresh feed delivery atomically. Readers see either
// the old set or the new one, never a mix.
func (s *Store) ReplaceAll(records []trains.Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM trains"); err != nil {
		tx.Rollback()
		return fmt.Errorf("clear trains: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO trains
		(number, route_name, from_station, to_station, punctuality, heading, last_visited_station)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.Number, r.RouteName, r.From, r.To,
			r.Punctuality, r.Heading, r.LastVisitedStation); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert train %q: %w", r.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// ListTrains returns every record in feed delivery order.
func (s *Store) ListTrains() ([]trains.Record, error) {
	rows, err := s.db.Query(`SELECT number, route_name, from_station, to_station,
		punctuality, heading, last_visited_station
		FROM trains ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list trains: %w", err)
	}
	defer rows.Close()

	var out []trains.Record
	for rows.Next() {
		var r trains.Record
		if err := rows.Scan(&r.Number, &r.RouteName, &r.From, &r.To,
			&r.Punctuality, &r.Heading, &r.LastVisitedStation); err != nil {
			return nil, fmt.Errorf("scan train: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trains: %w", err)
	}
	return out, nil
}

// CountTrains returns the number of stored records.
func (s *Store) CountTrains() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM trains").Scan(&n); err != nil {
		return 0, fmt.Errorf("count trains: %w", err)
	}
	return n, nil
}
