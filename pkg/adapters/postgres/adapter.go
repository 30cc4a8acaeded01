// Package postgres provides a PostgreSQL backed catalog.
//
// A PostgreSQL connection exposes exactly one catalog, the connected
// database; its schemas are databases.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/leapstack-labs/sqlbind/pkg/adapter"
)

// systemSchemas are hidden from ListDatabases.
var systemSchemas = []string{"information_schema", "pg_catalog", "pg_toast"}

// Dialect describes PostgreSQL's information_schema.
var Dialect = &adapter.Dialect{
	Name:          "postgres",
	Placeholder:   adapter.DollarPlaceholder,
	CatalogsQuery: "SELECT current_database()",
	SessionQuery:  "SELECT current_database(), current_schema()",
	NativeTypes: map[string]string{
		"character varying":           "VARCHAR",
		"character":                   "CHAR",
		"text":                        "STRING",
		"uuid":                        "STRING",
		"json":                        "STRING",
		"jsonb":                       "STRING",
		"double precision":            "DOUBLE",
		"real":                        "FLOAT",
		"numeric":                     "DECIMAL(38, 18)",
		"timestamp without time zone": "TIMESTAMP",
		"timestamp with time zone":    "TIMESTAMP WITH LOCAL TIME ZONE",
		"time without time zone":      "TIME",
		"bytea":                       "BYTES",
	},
}

// Adapter implements adapter.Adapter for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger, Dialect: Dialect},
	}
}

// Connect establishes a connection to PostgreSQL.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	connCfg, err := parseConnConfig(cfg)
	if err != nil {
		return err
	}

	a.Logger.Debug("connecting to postgres", slog.String("host", connCfg.Host), slog.String("database", connCfg.Database))

	db := stdlib.OpenDB(*connCfg)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// ListDatabases lists user schemas of the connected database.
func (a *Adapter) ListDatabases(ctx context.Context, catalogName string) ([]string, error) {
	names, err := a.BaseSQLAdapter.ListDatabases(ctx, catalogName)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(names, func(s string) bool { return slices.Contains(systemSchemas, s) }), nil
}

// DatabaseExists reports whether a user schema exists.
func (a *Adapter) DatabaseExists(ctx context.Context, catalogName, database string) (bool, error) {
	names, err := a.ListDatabases(ctx, catalogName)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, database), nil
}

// parseConnConfig builds the pgx connection config. An explicit DSN wins
// over the discrete fields; Options other than sslmode become runtime
// parameters such as search_path.
func parseConnConfig(cfg adapter.Config) (*pgx.ConnConfig, error) {
	dsn := cfg.DSN
	if dsn == "" {
		dsn = buildPostgresDSN(cfg)
	}
	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres connection settings: %w", err)
	}
	if _, ok := connCfg.RuntimeParams["application_name"]; !ok {
		connCfg.RuntimeParams["application_name"] = "sqlbind"
	}
	for k, v := range cfg.Options {
		if k != "sslmode" {
			connCfg.RuntimeParams[k] = v
		}
	}
	return connCfg, nil
}

// buildPostgresDSN constructs a PostgreSQL connection string.
func buildPostgresDSN(cfg adapter.Config) string {
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := "disable"
	if mode, ok := cfg.Options["sslmode"]; ok {
		sslmode = mode
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, cfg.Database, sslmode)
	if cfg.Username != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.Username)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}
	return dsn
}

var _ adapter.Adapter = (*Adapter)(nil)
