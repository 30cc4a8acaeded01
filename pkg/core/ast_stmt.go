package core

// ---------- Session Statements ----------

// UseCatalogStmt represents USE CATALOG name.
type UseCatalogStmt struct {
	NodeInfo
	Name string
}

func (*UseCatalogStmt) stmtNode() {}

// UseStmt represents USE [catalog.]database. Name is kept as written so the
// binder can reject over-qualified names.
type UseStmt struct {
	NodeInfo
	Name ObjectName
}

func (*UseStmt) stmtNode() {}

// ---------- Database Statements ----------

// CreateDatabaseStmt represents CREATE DATABASE.
type CreateDatabaseStmt struct {
	NodeInfo
	Name        ObjectName
	IfNotExists bool
	Comment     *string
	Properties  []Property
}

func (*CreateDatabaseStmt) stmtNode() {}

// AlterDatabaseStmt represents ALTER DATABASE name SET (...).
type AlterDatabaseStmt struct {
	NodeInfo
	Name       ObjectName
	Properties []Property
}

func (*AlterDatabaseStmt) stmtNode() {}

// DropDatabaseStmt represents DROP DATABASE.
type DropDatabaseStmt struct {
	NodeInfo
	Name     ObjectName
	IfExists bool
	Cascade  bool
}

func (*DropDatabaseStmt) stmtNode() {}

// ---------- Table Statements ----------

// CreateTableStmt represents CREATE TABLE.
type CreateTableStmt struct {
	NodeInfo
	Name          ObjectName
	IfNotExists   bool
	Columns       []*ColumnDef
	Constraints   []*TableConstraint
	Watermark     *WatermarkDef
	Comment       *string
	PartitionKeys []string
	Properties    []Property
}

func (*CreateTableStmt) stmtNode() {}

// ColumnDef is one column of a CREATE TABLE element list.
//
// A physical column has Type set. A computed column has Expr set and no
// Type. A metadata column has Type set and Metadata true.
type ColumnDef struct {
	NodeInfo
	Name        string
	Type        TypeExpr
	Expr        Expr
	ExprText    string
	Metadata    bool
	MetadataKey string
	Virtual     bool
	PrimaryKey  bool
	Comment     *string
}

// IsComputed reports whether the column is defined by an expression.
func (c *ColumnDef) IsComputed() bool { return c.Expr != nil }

// ConstraintKind distinguishes table constraints.
type ConstraintKind int

// ConstraintKind constants.
const (
	ConstraintPrimaryKey ConstraintKind = iota
	ConstraintUnique
)

// String returns the SQL spelling of the constraint kind.
func (k ConstraintKind) String() string {
	if k == ConstraintUnique {
		return "UNIQUE"
	}
	return "PRIMARY KEY"
}

// TableConstraint is a table level PRIMARY KEY or UNIQUE constraint.
type TableConstraint struct {
	NodeInfo
	Name     string
	Kind     ConstraintKind
	Columns  []string
	Enforced bool
}

// WatermarkDef is WATERMARK FOR column AS expr.
type WatermarkDef struct {
	NodeInfo
	Column string
	Expr   Expr
}

// AlterTableRenameStmt represents ALTER TABLE name RENAME TO new_name.
type AlterTableRenameStmt struct {
	NodeInfo
	Name    ObjectName
	NewName ObjectName
}

func (*AlterTableRenameStmt) stmtNode() {}

// AlterTableSetStmt represents ALTER TABLE name SET (...).
type AlterTableSetStmt struct {
	NodeInfo
	Name       ObjectName
	Properties []Property
}

func (*AlterTableSetStmt) stmtNode() {}

// DropTableStmt represents DROP TABLE.
type DropTableStmt struct {
	NodeInfo
	Name     ObjectName
	IfExists bool
}

func (*DropTableStmt) stmtNode() {}

// DescribeTableStmt represents DESCRIBE name or DESC name.
type DescribeTableStmt struct {
	NodeInfo
	Name ObjectName
}

func (*DescribeTableStmt) stmtNode() {}

// ---------- DML ----------

// PartitionValue is one column = literal pair of a PARTITION clause.
// Value holds the literal unquoted.
type PartitionValue struct {
	Column string
	Value  string
}

// InsertStmt represents INSERT INTO|OVERWRITE target [PARTITION (...)] query.
// The query is kept as raw source text for the query compiler.
type InsertStmt struct {
	NodeInfo
	Table     ObjectName
	Overwrite bool
	Partition []PartitionValue
	Query     string
}

func (*InsertStmt) stmtNode() {}

// QueryStmt is a standalone SELECT, WITH or VALUES query kept as raw text.
type QueryStmt struct {
	NodeInfo
	Query string
}

func (*QueryStmt) stmtNode() {}

// ---------- SHOW ----------

// ShowFunctionsStmt represents SHOW [USER] FUNCTIONS.
type ShowFunctionsStmt struct {
	NodeInfo
	User bool
}

func (*ShowFunctionsStmt) stmtNode() {}

// ShowKind selects what a ShowStmt lists.
type ShowKind int

// ShowKind constants.
const (
	ShowCatalogs ShowKind = iota
	ShowDatabases
	ShowTables
	ShowCurrentCatalog
	ShowCurrentDatabase
)

// ShowStmt represents the remaining SHOW statements.
type ShowStmt struct {
	NodeInfo
	Kind ShowKind
}

func (*ShowStmt) stmtNode() {}
