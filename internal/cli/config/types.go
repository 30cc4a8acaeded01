// Package config provides configuration management for the sqlbind CLI.
//
// Values are layered with koanf: built-in defaults, then sqlbind.yaml, then
// SQLBIND_ environment variables, then command-line flags.
package config

import (
	"github.com/leapstack-labs/sqlbind/pkg/adapter"
)

// Config holds all CLI configuration options.
type Config struct {
	Catalog     CatalogConfig `koanf:"catalog"`
	Session     SessionConfig `koanf:"session"`
	Binder      BinderConfig  `koanf:"binder"`
	Output      string        `koanf:"output"`
	HistoryFile string        `koanf:"history_file"`
	Verbose     bool          `koanf:"verbose"`
	LogFormat   string        `koanf:"log_format"`
}

// CatalogConfig selects the catalog the binder resolves against.
//
// Type is memory, sqlite or the name of a registered adapter. For memory,
// Path is an optional YAML snapshot; for sqlite and duckdb it is the
// database file.
type CatalogConfig struct {
	Type     string            `koanf:"type"`
	Path     string            `koanf:"path"`
	DSN      string            `koanf:"dsn"`
	Host     string            `koanf:"host"`
	Port     int               `koanf:"port"`
	Database string            `koanf:"database"`
	Username string            `koanf:"username"`
	Password string            `koanf:"password"`
	Options  map[string]string `koanf:"options"`
	Params   map[string]any    `koanf:"params"`
}

// AdapterConfig converts the catalog section into an adapter.Config.
func (c CatalogConfig) AdapterConfig() adapter.Config {
	return adapter.Config{
		Type:     c.Type,
		Path:     c.Path,
		DSN:      c.DSN,
		Host:     c.Host,
		Port:     c.Port,
		Database: c.Database,
		Username: c.Username,
		Password: c.Password,
		Options:  c.Options,
		Params:   c.Params,
	}
}

// SessionConfig overrides the initial catalog and database. Empty fields
// keep the catalog's own default.
type SessionConfig struct {
	Catalog  string `koanf:"catalog"`
	Database string `koanf:"database"`
}

// BinderConfig holds binder options.
type BinderConfig struct {
	ComputedColumns bool   `koanf:"computed_columns"`
	QueryCompiler   string `koanf:"query_compiler"`
}

// Catalog types handled by the CLI itself; any other type must name a
// registered adapter.
const (
	CatalogMemory = "memory"
	CatalogSQLite = "sqlite"
)

// Query compilers.
const (
	CompilerMySQL       = "mysql"
	CompilerPassthrough = "passthrough"
)

// Default configuration values.
const (
	DefaultCatalogType = CatalogMemory
	DefaultSQLitePath  = "sqlbind.db"
	DefaultOutput      = "auto" // Auto-detect: TTY=table, non-TTY=json
	DefaultLogFormat   = "text"
	DefaultCompiler    = CompilerMySQL
	DefaultHistoryFile = ".sqlbind_history"
)
