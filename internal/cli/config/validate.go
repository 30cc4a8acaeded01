package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/adapter"
)

var (
	outputModes = []string{"auto", "table", "json", "yaml"}
	logFormats  = []string{"text", "json"}
	compilers   = []string{CompilerMySQL, CompilerPassthrough}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Catalog.Type {
	case "":
		return fmt.Errorf("catalog.type is required")
	case CatalogMemory:
	case CatalogSQLite:
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for the sqlite catalog")
		}
	default:
		if !adapter.IsRegistered(c.Catalog.Type) {
			return &adapter.UnknownAdapterError{Type: c.Catalog.Type, Available: adapter.ListAdapters()}
		}
	}

	if c.Session.Database != "" && c.Session.Catalog == "" {
		return fmt.Errorf("session.database requires session.catalog")
	}
	if !slices.Contains(outputModes, c.Output) {
		return fmt.Errorf("invalid output %q: expected one of %s", c.Output, strings.Join(outputModes, ", "))
	}
	if !slices.Contains(logFormats, c.LogFormat) {
		return fmt.Errorf("invalid log_format %q: expected one of %s", c.LogFormat, strings.Join(logFormats, ", "))
	}
	if !slices.Contains(compilers, c.Binder.QueryCompiler) {
		return fmt.Errorf("invalid binder.query_compiler %q: expected one of %s", c.Binder.QueryCompiler, strings.Join(compilers, ", "))
	}
	return nil
}
