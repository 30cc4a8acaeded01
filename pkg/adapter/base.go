package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"

	"github.com/leapstack-labs/sqlbind/pkg/catalog"
	"github.com/leapstack-labs/sqlbind/pkg/types"
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get Close, Exec
// and an information_schema backed catalog.
type BaseSQLAdapter struct {
	DB      *sql.DB
	Cfg     Config
	Logger  *slog.Logger
	Dialect *Dialect
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		return b.DB.Close()
	}
	return nil
}

// Exec executes a SQL statement that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, sqlStr string) error {
	if b.DB == nil {
		return fmt.Errorf("database connection not established")
	}
	_, err := b.DB.ExecContext(ctx, sqlStr)
	if err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// DefaultSession reads the current catalog and schema of the connection.
func (b *BaseSQLAdapter) DefaultSession(ctx context.Context) (catalog.Session, error) {
	if b.DB == nil {
		return catalog.Session{}, fmt.Errorf("database connection not established")
	}
	var s catalog.Session
	if err := b.DB.QueryRowContext(ctx, b.Dialect.SessionQuery).Scan(&s.Catalog, &s.Database); err != nil {
		return catalog.Session{}, fmt.Errorf("failed to read current schema: %w", err)
	}
	return s, nil
}

// queryStrings runs query and collects the first column of every row.
func (b *BaseSQLAdapter) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}
	rows, err := b.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}

// ListCatalogs implements catalog.Lister.
func (b *BaseSQLAdapter) ListCatalogs(ctx context.Context) ([]string, error) {
	names, err := b.queryStrings(ctx, b.Dialect.CatalogsQuery)
	if err != nil {
		return nil, err
	}
	slices.Sort(names)
	return names, nil
}

// ListDatabases implements catalog.Lister. Schemas are databases.
func (b *BaseSQLAdapter) ListDatabases(ctx context.Context, catalogName string) ([]string, error) {
	//nolint:gosec // Placeholders come from the dialect
	query := fmt.Sprintf(`
		SELECT schema_name
		FROM information_schema.schemata
		WHERE catalog_name = %s
		ORDER BY schema_name
	`, b.Dialect.Placeholder(1))
	return b.queryStrings(ctx, query, catalogName)
}

// ListTables implements catalog.Lister.
func (b *BaseSQLAdapter) ListTables(ctx context.Context, catalogName, database string) ([]string, error) {
	//nolint:gosec // Placeholders come from the dialect
	query := fmt.Sprintf(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_catalog = %s AND table_schema = %s
		ORDER BY table_name
	`, b.Dialect.Placeholder(1), b.Dialect.Placeholder(2))
	return b.queryStrings(ctx, query, catalogName, database)
}

// CatalogExists implements catalog.Catalog.
func (b *BaseSQLAdapter) CatalogExists(ctx context.Context, name string) (bool, error) {
	names, err := b.ListCatalogs(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, name), nil
}

// DatabaseExists implements catalog.Catalog.
func (b *BaseSQLAdapter) DatabaseExists(ctx context.Context, catalogName, database string) (bool, error) {
	names, err := b.ListDatabases(ctx, catalogName)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, database), nil
}

// GetDatabase implements catalog.Catalog. Schemas carry no comment or
// options.
func (b *BaseSQLAdapter) GetDatabase(ctx context.Context, catalogName, database string) (*catalog.DatabaseDefinition, error) {
	ok, err := b.DatabaseExists(ctx, catalogName, database)
	if err != nil || !ok {
		return nil, err
	}
	return &catalog.DatabaseDefinition{Options: map[string]string{}}, nil
}

// GetTable implements catalog.Catalog using information_schema.columns.
func (b *BaseSQLAdapter) GetTable(ctx context.Context, id catalog.Identifier) (*catalog.TableDefinition, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	//nolint:gosec // Placeholders come from the dialect
	query := fmt.Sprintf(`
		SELECT
			column_name,
			data_type,
			is_nullable
		FROM information_schema.columns
		WHERE table_catalog = %s AND table_schema = %s AND table_name = %s
		ORDER BY ordinal_position
	`, b.Dialect.Placeholder(1), b.Dialect.Placeholder(2), b.Dialect.Placeholder(3))

	rows, err := b.DB.QueryContext(ctx, query, id.Catalog, id.Database, id.Object)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	def := &catalog.TableDefinition{Options: map[string]string{}}
	for rows.Next() {
		var name, dataType, nullable string
		if err := rows.Scan(&name, &dataType, &nullable); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		dt, err := b.Dialect.ConvertType(dataType, nullable == "YES")
		if err != nil {
			// Native types without a semantic counterpart are read as text.
			if b.Logger != nil {
				b.Logger.Warn("unmapped column type", "table", id.String(), "column", name, "type", dataType, "error", err)
			}
			dt = types.String().WithNullable(nullable == "YES")
		}
		def.Columns = append(def.Columns, catalog.Column{Name: name, Type: dt})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	if len(def.Columns) == 0 {
		return nil, nil
	}
	if b.Logger != nil {
		b.Logger.Debug("loaded table metadata", "table", id.String(), "columns", len(def.Columns))
	}
	return def, nil
}
