package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"blockdocs/internal/block"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS blocks (
			name TEXT PRIMARY KEY,
			title TEXT,
			description TEXT,
			category TEXT,
			supports JSON,
			attributes JSON,
			path TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_blocks_category ON blocks(category);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// SaveCatalog stores the snapshot in one transaction. Blocks missing from
// the snapshot are removed; a repeated name keeps the last record.
func (s *SQLiteStore) SaveCatalog(ctx context.Context, blocks []*block.Metadata) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM blocks`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO blocks (name, title, description, category, supports, attributes, path)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			title=excluded.title,
			description=excluded.description,
			category=excluded.category,
			supports=excluded.supports,
			attributes=excluded.attributes,
			path=excluded.path
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, m := range blocks {
		e := EntryFromMetadata(m)
		supports, _ := json.Marshal(e.Supports)
		attributes, _ := json.Marshal(e.Attributes)
		if _, err := stmt.ExecContext(ctx, e.Name, e.Title, e.Description, e.Category, supports, attributes, e.Path); err != nil {
			return fmt.Errorf("failed to save block %s: %w", e.Name, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) LoadCatalog(ctx context.Context) ([]CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, title, description, category, supports, attributes, path FROM blocks ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (s *SQLiteStore) FindByCategory(ctx context.Context, category string) ([]CatalogEntry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, title, description, category, supports, attributes, path FROM blocks WHERE category = ? ORDER BY name", category)
	if err != nil {
		return nil, fmt.Errorf("failed to query blocks: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]CatalogEntry, error) {
	var entries []CatalogEntry
	for rows.Next() {
		var e CatalogEntry
		var supports, attributes []byte
		if err := rows.Scan(&e.Name, &e.Title, &e.Description, &e.Category, &supports, &attributes, &e.Path); err != nil {
			return nil, fmt.Errorf("failed to scan block: %w", err)
		}
		if len(supports) > 0 {
			if err := json.Unmarshal(supports, &e.Supports); err != nil {
				return nil, fmt.Errorf("failed to decode supports for %s: %w", e.Name, err)
			}
		}
		if len(attributes) > 0 {
			if err := json.Unmarshal(attributes, &e.Attributes); err != nil {
				return nil, fmt.Errorf("failed to decode attributes for %s: %w", e.Name, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
