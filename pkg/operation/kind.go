package operation

// Kind returns a stable upper case name for the variant of op, such as
// CREATE_TABLE. It is used by renderers and logs.
func Kind(op Operation) string {
	switch op.(type) {
	case *UseCatalogOperation:
		return "USE_CATALOG"
	case *UseDatabaseOperation:
		return "USE_DATABASE"
	case *CreateDatabaseOperation:
		return "CREATE_DATABASE"
	case *AlterDatabaseOperation:
		return "ALTER_DATABASE"
	case *DropDatabaseOperation:
		return "DROP_DATABASE"
	case *CreateTableOperation:
		return "CREATE_TABLE"
	case *DropTableOperation:
		return "DROP_TABLE"
	case *AlterTableRenameOperation:
		return "ALTER_TABLE_RENAME"
	case *AlterTableOptionsOperation:
		return "ALTER_TABLE_OPTIONS"
	case *QueryOperation:
		return "QUERY"
	case *InsertOperation:
		return "INSERT"
	case *ShowFunctionsOperation:
		return "SHOW_FUNCTIONS"
	case *ShowCatalogsOperation:
		return "SHOW_CATALOGS"
	case *ShowDatabasesOperation:
		return "SHOW_DATABASES"
	case *ShowTablesOperation:
		return "SHOW_TABLES"
	case *ShowCurrentCatalogOperation:
		return "SHOW_CURRENT_CATALOG"
	case *ShowCurrentDatabaseOperation:
		return "SHOW_CURRENT_DATABASE"
	case *DescribeTableOperation:
		return "DESCRIBE_TABLE"
	case *SetOperation:
		return "SET"
	case *ResetOperation:
		return "RESET"
	case *ClearOperation:
		return "CLEAR"
	case *HelpOperation:
		return "HELP"
	case *QuitOperation:
		return "QUIT"
	}
	return "UNKNOWN"
}

// IsCommand reports whether op is a client command (SET, RESET, CLEAR,
// HELP, QUIT) rather than a catalog or query operation.
func IsCommand(op Operation) bool {
	switch op.(type) {
	case *SetOperation, *ResetOperation, *ClearOperation, *HelpOperation, *QuitOperation:
		return true
	}
	return false
}
