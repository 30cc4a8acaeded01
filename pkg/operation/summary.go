package operation

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

func (o *UseCatalogOperation) Summary() string {
	return "USE CATALOG " + o.Catalog
}

func (o *UseDatabaseOperation) Summary() string {
	return fmt.Sprintf("USE %s.%s", o.Catalog, o.Database)
}

func (o *CreateDatabaseOperation) Summary() string {
	return formatParams("CREATE DATABASE",
		"catalogName", o.Catalog,
		"databaseName", o.Database,
		"comment", o.Definition.Comment,
		"options", o.Definition.Options,
		"ignoreIfExists", o.IgnoreIfExists)
}

func (o *AlterDatabaseOperation) Summary() string {
	return formatParams("ALTER DATABASE",
		"catalogName", o.Catalog,
		"databaseName", o.Database,
		"comment", o.Definition.Comment,
		"options", o.Definition.Options)
}

func (o *DropDatabaseOperation) Summary() string {
	return formatParams("DROP DATABASE",
		"catalogName", o.Catalog,
		"databaseName", o.Database,
		"ifExists", o.IfExists,
		"isCascade", o.Cascade)
}

func (o *CreateTableOperation) Summary() string {
	cols := make([]string, len(o.Definition.Columns))
	for i, c := range o.Definition.Columns {
		cols[i] = c.Name + " " + c.Type.String()
		if c.IsComputed() {
			cols[i] += " AS " + c.Expr
		}
	}
	return formatParams("CREATE TABLE",
		"identifier", o.Identifier.Quoted(),
		"columns", cols,
		"partitionKeys", o.Definition.PartitionKeys,
		"options", o.Definition.Options,
		"ignoreIfExists", o.IgnoreIfExists)
}

func (o *DropTableOperation) Summary() string {
	return formatParams("DROP TABLE",
		"identifier", o.Identifier.Quoted(),
		"IfExists", o.IfExists)
}

func (o *AlterTableRenameOperation) Summary() string {
	return fmt.Sprintf("ALTER TABLE %s RENAME TO %s", o.Source, o.Target)
}

func (o *AlterTableOptionsOperation) Summary() string {
	keys := slices.Sorted(maps.Keys(o.Definition.Options))
	opts := make([]string, len(keys))
	for i, k := range keys {
		opts[i] = fmt.Sprintf("'%s' = '%s'", k, o.Definition.Options[k])
	}
	return fmt.Sprintf("ALTER TABLE %s SET (%s)", o.Identifier, strings.Join(opts, ", "))
}

func (o *QueryOperation) Summary() string {
	return o.SQL
}

func (o *InsertOperation) Summary() string {
	return formatParams("INSERT",
		"identifier", o.Target.Quoted(),
		"overwrite", o.Overwrite,
		"staticPartitions", o.StaticPartitions,
		"query", o.Query.SQL)
}

func (o *ShowFunctionsOperation) Summary() string {
	if o.Scope == ScopeUser {
		return "SHOW USER FUNCTIONS"
	}
	return "SHOW FUNCTIONS"
}

func (*ShowCatalogsOperation) Summary() string        { return "SHOW CATALOGS" }
func (*ShowDatabasesOperation) Summary() string       { return "SHOW DATABASES" }
func (*ShowTablesOperation) Summary() string          { return "SHOW TABLES" }
func (*ShowCurrentCatalogOperation) Summary() string  { return "SHOW CURRENT CATALOG" }
func (*ShowCurrentDatabaseOperation) Summary() string { return "SHOW CURRENT DATABASE" }

func (o *DescribeTableOperation) Summary() string {
	return "DESCRIBE " + o.Identifier.Quoted()
}

func (o *SetOperation) Summary() string {
	if o.Key == "" {
		return "SET"
	}
	return fmt.Sprintf("SET %s=%s", o.Key, o.Value)
}

func (*ResetOperation) Summary() string { return "RESET" }
func (*ClearOperation) Summary() string { return "CLEAR" }
func (*HelpOperation) Summary() string  { return "HELP" }
func (*QuitOperation) Summary() string  { return "QUIT" }
