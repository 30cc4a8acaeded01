// Package adapter provides catalogs backed by a live database.
//
// An adapter reads catalog metadata (catalogs, schemas, tables and their
// columns) through the database's information_schema and exposes it as a
// catalog.Catalog the binder can resolve against. Adapters never write
// catalog objects; they only describe what already exists.
//
// Concrete adapters are in pkg/adapters/ subdirectories and register
// themselves with Register from their init functions.
package adapter

import (
	"context"

	"github.com/leapstack-labs/sqlbind/pkg/catalog"
)

// Config holds configuration for connecting to a database.
type Config struct {
	Type     string            `mapstructure:"type"`
	Path     string            `mapstructure:"path"`
	DSN      string            `mapstructure:"dsn"`
	Host     string            `mapstructure:"host"`
	Port     int               `mapstructure:"port"`
	Database string            `mapstructure:"database"`
	Username string            `mapstructure:"username"`
	Password string            `mapstructure:"password"`
	Options  map[string]string `mapstructure:"options"`
	Params   map[string]any    `mapstructure:"params"`
}

// Adapter is a database-backed catalog.
type Adapter interface {
	catalog.Catalog
	catalog.Lister

	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// DefaultSession returns the connection's current catalog and schema.
	DefaultSession(ctx context.Context) (catalog.Session, error)

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string) error
}
