// Package state persists catalog contents in SQLite.
//
// SQLiteStore implements catalog.Store so the CLI can bind against a
// catalog that outlives a single process. The schema is managed with
// embedded goose migrations; the first migration seeds the builtin
// catalog and its default database.
package state

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlbind/pkg/catalog"
	"github.com/leapstack-labs/sqlbind/pkg/typemap"

	// sqlite driver for the catalog database.
	_ "modernc.org/sqlite"
)

// SQLiteStore implements catalog.Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates a new SQLite catalog store. A nil logger
// discards output.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// Open opens the SQLite database at path and migrates it.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(ctx context.Context, path string) error {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path != ":memory:" {
		dsn += "&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	s.db = db
	s.path = path
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return err
	}
	s.logger.Debug("opened catalog store", "path", path)
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// Path returns the path the store was opened with.
func (s *SQLiteStore) Path() string { return s.path }

// CatalogExists implements catalog.Catalog.
func (s *SQLiteStore) CatalogExists(ctx context.Context, name string) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM catalogs WHERE name = ?`, name)
}

// DatabaseExists implements catalog.Catalog.
func (s *SQLiteStore) DatabaseExists(ctx context.Context, catalogName, database string) (bool, error) {
	return s.exists(ctx, `SELECT 1 FROM databases WHERE catalog = ? AND name = ?`, catalogName, database)
}

// GetDatabase implements catalog.Catalog.
func (s *SQLiteStore) GetDatabase(ctx context.Context, catalogName, database string) (*catalog.DatabaseDefinition, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	var comment sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT comment FROM databases WHERE catalog = ? AND name = ?`,
		catalogName, database,
	).Scan(&comment)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get database: %w", err)
	}

	def := &catalog.DatabaseDefinition{}
	if comment.Valid {
		def.Comment = &comment.String
	}
	def.Options, err = s.options(ctx,
		`SELECT key, value FROM database_options WHERE catalog = ? AND database = ?`,
		catalogName, database)
	if err != nil {
		return nil, err
	}
	return def, nil
}

// GetTable implements catalog.Catalog.
func (s *SQLiteStore) GetTable(ctx context.Context, id catalog.Identifier) (*catalog.TableDefinition, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}

	def := &catalog.TableDefinition{}
	err := s.db.QueryRowContext(ctx,
		`SELECT comment FROM tables WHERE catalog = ? AND database = ? AND name = ?`,
		id.Catalog, id.Database, id.Object,
	).Scan(&def.Comment)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}

	if def.Columns, err = s.columns(ctx, id); err != nil {
		return nil, err
	}
	if def.PartitionKeys, err = s.keys(ctx, id, keyPartition); err != nil {
		return nil, err
	}
	if def.PrimaryKey, err = s.keys(ctx, id, keyPrimary); err != nil {
		return nil, err
	}
	def.Options, err = s.options(ctx,
		`SELECT key, value FROM table_options WHERE catalog = ? AND database = ? AND table_name = ?`,
		id.Catalog, id.Database, id.Object)
	if err != nil {
		return nil, err
	}
	return def, nil
}

// ListCatalogs implements catalog.Lister.
func (s *SQLiteStore) ListCatalogs(ctx context.Context) ([]string, error) {
	return s.strings(ctx, `SELECT name FROM catalogs ORDER BY name`)
}

// ListDatabases implements catalog.Lister.
func (s *SQLiteStore) ListDatabases(ctx context.Context, catalogName string) ([]string, error) {
	ok, err := s.CatalogExists(ctx, catalogName)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &catalog.NotFoundError{Kind: "Catalog", Name: catalogName}
	}
	return s.strings(ctx, `SELECT name FROM databases WHERE catalog = ? ORDER BY name`, catalogName)
}

// ListTables implements catalog.Lister.
func (s *SQLiteStore) ListTables(ctx context.Context, catalogName, database string) ([]string, error) {
	ok, err := s.DatabaseExists(ctx, catalogName, database)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &catalog.NotFoundError{Kind: "Database", Name: catalogName + "." + database}
	}
	return s.strings(ctx,
		`SELECT name FROM tables WHERE catalog = ? AND database = ? ORDER BY name`,
		catalogName, database)
}

const (
	keyPartition = "partition"
	keyPrimary   = "primary"
)

func (s *SQLiteStore) columns(ctx context.Context, id catalog.Identifier) ([]catalog.Column, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, type, expr, comment FROM columns
		 WHERE catalog = ? AND database = ? AND table_name = ?
		 ORDER BY position`,
		id.Catalog, id.Database, id.Object)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cols []catalog.Column
	for rows.Next() {
		var c catalog.Column
		var typeText string
		if err := rows.Scan(&c.Name, &typeText, &c.Expr, &c.Comment); err != nil {
			return nil, fmt.Errorf("failed to scan column: %w", err)
		}
		if c.Type, err = typemap.Parse(typeText); err != nil {
			return nil, fmt.Errorf("table %s: column %s: %w", id, c.Name, err)
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

func (s *SQLiteStore) keys(ctx context.Context, id catalog.Identifier, kind string) ([]string, error) {
	return s.strings(ctx,
		`SELECT column_name FROM table_keys
		 WHERE catalog = ? AND database = ? AND table_name = ? AND kind = ?
		 ORDER BY position`,
		id.Catalog, id.Database, id.Object, kind)
}

func (s *SQLiteStore) options(ctx context.Context, query string, args ...any) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer func() { _ = rows.Close() }()

	opts := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		opts[k] = v
	}
	return opts, rows.Err()
}

func (s *SQLiteStore) strings(ctx context.Context, query string, args ...any) ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database not opened")
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) exists(ctx context.Context, query string, args ...any) (bool, error) {
	if s.db == nil {
		return false, fmt.Errorf("database not opened")
	}
	var one int
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query: %w", err)
	}
	return true, nil
}

var _ catalog.Store = (*SQLiteStore)(nil)
