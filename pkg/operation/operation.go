// Package operation defines the bound, executable form of a statement.
//
// The set of operations is closed: every variant lives in this package and
// implements the unexported operation marker. Consumers dispatch with a
// type switch.
package operation

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/leapstack-labs/sqlbind/pkg/catalog"
)

// Operation is a fully bound statement ready for an executor.
type Operation interface {
	// Summary is a short human readable description.
	Summary() string
	operation()
}

// FunctionScope selects which functions SHOW FUNCTIONS lists.
type FunctionScope int

// Function scopes.
const (
	ScopeAll FunctionScope = iota
	ScopeUser
)

func (s FunctionScope) String() string {
	if s == ScopeUser {
		return "USER"
	}
	return "ALL"
}

// UseCatalogOperation switches the current catalog.
type UseCatalogOperation struct {
	Catalog string
}

// UseDatabaseOperation switches the current catalog and database.
type UseDatabaseOperation struct {
	Catalog  string
	Database string
}

// CreateDatabaseOperation creates a database.
type CreateDatabaseOperation struct {
	Catalog        string
	Database       string
	Definition     catalog.DatabaseDefinition
	IgnoreIfExists bool
}

// AlterDatabaseOperation replaces a database definition. Definition holds
// the existing comment and the merged options.
type AlterDatabaseOperation struct {
	Catalog    string
	Database   string
	Definition catalog.DatabaseDefinition
}

// DropDatabaseOperation drops a database.
type DropDatabaseOperation struct {
	Catalog  string
	Database string
	IfExists bool
	Cascade  bool
}

// CreateTableOperation creates a table.
type CreateTableOperation struct {
	Identifier     catalog.Identifier
	Definition     catalog.TableDefinition
	IgnoreIfExists bool
}

// DropTableOperation drops a table.
type DropTableOperation struct {
	Identifier catalog.Identifier
	IfExists   bool
}

// AlterTableRenameOperation renames a table.
type AlterTableRenameOperation struct {
	Source catalog.Identifier
	Target catalog.Identifier
}

// AlterTableOptionsOperation replaces a table definition with one whose
// options were merged with the new ones.
type AlterTableOptionsOperation struct {
	Identifier catalog.Identifier
	Definition catalog.TableDefinition
}

// QueryOperation is a validated query. SQL is the query text as written;
// Sources lists the tables it reads, when known.
type QueryOperation struct {
	SQL     string
	Sources []catalog.Identifier
}

// InsertOperation writes the result of Query into Target.
type InsertOperation struct {
	Target           catalog.Identifier
	StaticPartitions map[string]string
	Overwrite        bool
	Query            QueryOperation
}

// ShowFunctionsOperation lists functions.
type ShowFunctionsOperation struct {
	Scope FunctionScope
}

// ShowCatalogsOperation lists catalogs.
type ShowCatalogsOperation struct{}

// ShowDatabasesOperation lists the databases of the current catalog.
type ShowDatabasesOperation struct{}

// ShowTablesOperation lists the tables of the current database.
type ShowTablesOperation struct{}

// ShowCurrentCatalogOperation prints the current catalog.
type ShowCurrentCatalogOperation struct{}

// ShowCurrentDatabaseOperation prints the current database.
type ShowCurrentDatabaseOperation struct{}

// DescribeTableOperation prints the schema of a table.
type DescribeTableOperation struct {
	Identifier catalog.Identifier
}

// SetOperation sets a session property. With an empty Key it lists all
// properties instead.
type SetOperation struct {
	Key   string
	Value string
}

// Operands returns nothing for a bare SET, otherwise the key and value.
func (o *SetOperation) Operands() []string {
	if o.Key == "" {
		return []string{}
	}
	return []string{o.Key, o.Value}
}

// ResetOperation resets all session properties.
type ResetOperation struct{}

// ClearOperation clears the terminal.
type ClearOperation struct{}

// HelpOperation prints the command help.
type HelpOperation struct{}

// QuitOperation ends the interactive session.
type QuitOperation struct{}

func (*UseCatalogOperation) operation()          {}
func (*UseDatabaseOperation) operation()         {}
func (*CreateDatabaseOperation) operation()      {}
func (*AlterDatabaseOperation) operation()       {}
func (*DropDatabaseOperation) operation()        {}
func (*CreateTableOperation) operation()         {}
func (*DropTableOperation) operation()           {}
func (*AlterTableRenameOperation) operation()    {}
func (*AlterTableOptionsOperation) operation()   {}
func (*QueryOperation) operation()               {}
func (*InsertOperation) operation()              {}
func (*ShowFunctionsOperation) operation()       {}
func (*ShowCatalogsOperation) operation()        {}
func (*ShowDatabasesOperation) operation()       {}
func (*ShowTablesOperation) operation()          {}
func (*ShowCurrentCatalogOperation) operation()  {}
func (*ShowCurrentDatabaseOperation) operation() {}
func (*DescribeTableOperation) operation()       {}
func (*SetOperation) operation()                 {}
func (*ResetOperation) operation()               {}
func (*ClearOperation) operation()               {}
func (*HelpOperation) operation()                {}
func (*QuitOperation) operation()                {}

// formatParams renders "NAME: (k1: [v1], k2: [v2])" with params in the
// order given. Map values are rendered with sorted keys.
func formatParams(name string, params ...any) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString(": (")
	for i := 0; i+1 < len(params); i += 2 {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: [%s]", params[i], formatValue(params[i+1]))
	}
	b.WriteString(")")
	return b.String()
}

func formatValue(v any) string {
	switch vv := v.(type) {
	case map[string]string:
		keys := slices.Sorted(maps.Keys(vv))
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + "=" + vv[k]
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case *string:
		if vv == nil {
			return ""
		}
		return *vv
	case []string:
		return strings.Join(vv, ", ")
	default:
		return fmt.Sprint(v)
	}
}
