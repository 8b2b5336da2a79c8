// Package vecstore provides the persistent, SQLite-backed vector table for
// indexed notes, with vec0 similarity search and migration-on-open.
package vecstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	_ "github.com/mattn/go-sqlite3"

	"github.com/venlow/laguz/internal/apperr"
)

func init() {
	// Load the vec0 extension into every new sqlite connection.
	sqlite_vec.Auto()
}

// Embedder maps text to a fixed-length vector. Both stored note content and
// search queries pass through the same pinned model.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Store wraps a sql.DB holding the note vector table.
type Store struct {
	conn     *sql.DB
	embedder Embedder
	dims     int
}

// Open creates the store directory if needed, opens (or creates) the
// database, and reconciles the schema. When the vector table predates the
// index_version column it is dropped and rebuilt empty; previously indexed
// rows are lost and repopulated by the next indexing pass. Safe to call on
// every operation.
func Open(path string, dims int, embedder Embedder) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("%w: create store dir: %v", apperr.ErrStore, err)
	}

	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("%w: open db: %v", apperr.ErrStore, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: ping: %v", apperr.ErrStore, err)
	}

	s := &Store{conn: conn, embedder: embedder, dims: dims}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: migrate: %v", apperr.ErrStore, err)
	}
	return s, nil
}

// migrate reconciles the on-disk schema with the current one. The only
// handled evolution is destructive: a vector table without the
// index_version column is dropped wholesale, not migrated field by field.
func (s *Store) migrate() error {
	exists, err := s.tableExists(vectorTable)
	if err != nil {
		return err
	}
	if exists && !s.columnExists(vectorTable, "index_version") {
		if _, err := s.conn.Exec(`DROP TABLE ` + vectorTable); err != nil {
			return fmt.Errorf("drop outdated table: %w", err)
		}
		if _, err := s.conn.Exec(`DROP TABLE IF EXISTS ` + vecTable); err != nil {
			return fmt.Errorf("drop outdated vec table: %w", err)
		}
	}

	if _, err := s.conn.Exec(schemaSQL(s.dims)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (s *Store) tableExists(table string) (bool, error) {
	var n int
	err := s.conn.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("inspect schema: %w", err)
	}
	return n > 0, nil
}

func (s *Store) columnExists(table, column string) bool {
	rows, err := s.conn.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return false
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			continue
		}
		if name == column {
			return true
		}
	}
	return false
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
