package state

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/leapstack-labs/sqlbind/pkg/catalog"
)

// CreateCatalog implements catalog.Writer. Creating an existing catalog is
// a no-op.
func (s *SQLiteStore) CreateCatalog(ctx context.Context, name string) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	if _, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO catalogs (name) VALUES (?)`, name); err != nil {
		return fmt.Errorf("failed to create catalog: %w", err)
	}
	return nil
}

// CreateDatabase implements catalog.Writer.
func (s *SQLiteStore) CreateDatabase(ctx context.Context, catalogName, database string, def catalog.DatabaseDefinition) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if ok, err := txExists(ctx, tx, `SELECT 1 FROM catalogs WHERE name = ?`, catalogName); err != nil {
			return err
		} else if !ok {
			return &catalog.NotFoundError{Kind: "Catalog", Name: catalogName}
		}
		if ok, err := txExists(ctx, tx, `SELECT 1 FROM databases WHERE catalog = ? AND name = ?`, catalogName, database); err != nil {
			return err
		} else if ok {
			return &catalog.ExistsError{Kind: "Database", Name: catalogName + "." + database}
		}

		var comment sql.NullString
		if def.Comment != nil {
			comment = sql.NullString{String: *def.Comment, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO databases (catalog, name, comment) VALUES (?, ?, ?)`,
			catalogName, database, comment,
		); err != nil {
			return fmt.Errorf("failed to create database: %w", err)
		}
		for k, v := range def.Options {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO database_options (catalog, database, key, value) VALUES (?, ?, ?, ?)`,
				catalogName, database, k, v,
			); err != nil {
				return fmt.Errorf("failed to store database option: %w", err)
			}
		}
		return nil
	})
}

// CreateTable implements catalog.Writer. Column types are stored as their
// SQL text and parsed back on read.
func (s *SQLiteStore) CreateTable(ctx context.Context, id catalog.Identifier, def catalog.TableDefinition) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if ok, err := txExists(ctx, tx, `SELECT 1 FROM databases WHERE catalog = ? AND name = ?`, id.Catalog, id.Database); err != nil {
			return err
		} else if !ok {
			return &catalog.NotFoundError{Kind: "Database", Name: id.Catalog + "." + id.Database}
		}
		if ok, err := txExists(ctx, tx,
			`SELECT 1 FROM tables WHERE catalog = ? AND database = ? AND name = ?`,
			id.Catalog, id.Database, id.Object,
		); err != nil {
			return err
		} else if ok {
			return &catalog.ExistsError{Kind: "Table", Name: id.String()}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tables (catalog, database, name, comment) VALUES (?, ?, ?, ?)`,
			id.Catalog, id.Database, id.Object, def.Comment,
		); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}

		for i, c := range def.Columns {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO columns (catalog, database, table_name, position, name, type, expr, comment)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				id.Catalog, id.Database, id.Object, i, c.Name, c.Type.String(), c.Expr, c.Comment,
			); err != nil {
				return fmt.Errorf("failed to store column %s: %w", c.Name, err)
			}
		}
		if err := insertKeys(ctx, tx, id, keyPartition, def.PartitionKeys); err != nil {
			return err
		}
		if err := insertKeys(ctx, tx, id, keyPrimary, def.PrimaryKey); err != nil {
			return err
		}
		for k, v := range def.Options {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO table_options (catalog, database, table_name, key, value) VALUES (?, ?, ?, ?, ?)`,
				id.Catalog, id.Database, id.Object, k, v,
			); err != nil {
				return fmt.Errorf("failed to store table option: %w", err)
			}
		}
		return nil
	})
}

func insertKeys(ctx context.Context, tx *sql.Tx, id catalog.Identifier, kind string, cols []string) error {
	for i, c := range cols {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO table_keys (catalog, database, table_name, kind, position, column_name)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			id.Catalog, id.Database, id.Object, kind, i, c,
		); err != nil {
			return fmt.Errorf("failed to store %s key: %w", kind, err)
		}
	}
	return nil
}

// withTx runs fn in a transaction, committing when it returns nil.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if s.db == nil {
		return fmt.Errorf("database not opened")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func txExists(ctx context.Context, tx *sql.Tx, query string, args ...any) (bool, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to query: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return rows.Next(), rows.Err()
}
