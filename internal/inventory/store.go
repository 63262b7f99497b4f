package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const schema = `
CREATE TABLE IF NOT EXISTS boxes (
    id         TEXT PRIMARY KEY,
    rack       TEXT NOT NULL,
    shelf      INTEGER NOT NULL,
    tray       INTEGER NOT NULL,
    slot       INTEGER NOT NULL DEFAULT 1,
    department TEXT NOT NULL DEFAULT '',
    status     TEXT NOT NULL DEFAULT '',
    label      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS boxes_rack_shelf ON boxes (rack, shelf);
`

// Store keeps the inventory in a SQLite file. The viewer only reads snapshots from it;
// Replace exists for seeding demo data.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Count returns the number of stored boxes.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM boxes`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Snapshot reads all boxes ordered by position.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, rack, shelf, tray, slot, department, status, label
        FROM boxes
        ORDER BY rack, shelf, tray, slot, id
    `)
	if err != nil {
		return Snapshot{}, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.RackID, &it.Shelf, &it.Tray, &it.Slot, &it.Department, &it.Status, &it.Label); err != nil {
			return Snapshot{}, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, err
	}
	return Snapshot{items: items}, nil
}

// Replace deletes all boxes and inserts items in one transaction.
func (s *Store) Replace(ctx context.Context, items []Item) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM boxes`); err != nil {
		return fmt.Errorf("clear boxes: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO boxes (id, rack, shelf, tray, slot, department, status, label)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, it := range items {
		if _, err := stmt.ExecContext(ctx, it.ID, it.RackID, it.Shelf, it.Tray, it.Slot, it.Department, it.Status, it.Label); err != nil {
			return fmt.Errorf("insert box %s: %w", it.ID, err)
		}
	}
	return tx.Commit()
}
