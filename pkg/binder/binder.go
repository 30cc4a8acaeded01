// Package binder turns parsed statements into catalog-bound operations.
//
// A Binder resolves names against the session's current catalog and
// database, maps declared types onto semantic data types, and validates
// the statement against the catalog before building an operation. It holds
// no state between calls and never writes to the catalog.
package binder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/sqlbind/pkg/catalog"
	"github.com/leapstack-labs/sqlbind/pkg/core"
	"github.com/leapstack-labs/sqlbind/pkg/operation"
	"github.com/leapstack-labs/sqlbind/pkg/parser"
)

// Binder binds statements against a catalog.
type Binder struct {
	catalog  catalog.Catalog
	compiler QueryCompiler
	computed bool
	logger   *slog.Logger
}

// Option configures a Binder.
type Option func(*Binder)

// WithComputedColumns enables type checking of computed columns. When
// disabled, computed columns in CREATE TABLE are rejected as unsupported
// and stored tables with computed columns cannot be queried.
func WithComputedColumns(enabled bool) Option {
	return func(b *Binder) {
		b.computed = enabled
	}
}

// WithQueryCompiler sets the collaborator that validates queries.
func WithQueryCompiler(c QueryCompiler) Option {
	return func(b *Binder) {
		if c != nil {
			b.compiler = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Binder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// New creates a Binder reading from cat.
func New(cat catalog.Catalog, opts ...Option) *Binder {
	b := &Binder{
		catalog:  cat,
		compiler: PassthroughCompiler{},
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ComputedColumns reports whether computed column validation is enabled.
func (b *Binder) ComputedColumns() bool {
	return b.computed
}

// BindSQL parses sql and binds the resulting statement. Syntax errors are
// reported as KindMalformed.
func (b *Binder) BindSQL(ctx context.Context, sql string, s catalog.Session) (operation.Operation, error) {
	stmt, err := parser.ParseStatement(sql)
	if err != nil {
		return nil, NewError(KindMalformed, sql, err.Error(), err)
	}
	return b.Bind(ctx, stmt, sql, s)
}

// Bind converts stmt into an operation. sql is the statement text, carried
// into errors. The result is either a complete operation or an *Error.
func (b *Binder) Bind(ctx context.Context, stmt core.Stmt, sql string, s catalog.Session) (operation.Operation, error) {
	c := &call{ctx: ctx, b: b, sql: sql, session: s}

	var (
		op  operation.Operation
		err error
	)
	switch st := stmt.(type) {
	case *core.UseCatalogStmt:
		op = &operation.UseCatalogOperation{Catalog: st.Name}
	case *core.UseStmt:
		op, err = c.bindUse(st)
	case *core.CreateDatabaseStmt:
		op, err = c.bindCreateDatabase(st)
	case *core.AlterDatabaseStmt:
		op, err = c.bindAlterDatabase(st)
	case *core.DropDatabaseStmt:
		op, err = c.bindDropDatabase(st)
	case *core.CreateTableStmt:
		op, err = c.bindCreateTable(st)
	case *core.AlterTableRenameStmt:
		op, err = c.bindAlterTableRename(st)
	case *core.AlterTableSetStmt:
		op, err = c.bindAlterTableSet(st)
	case *core.DropTableStmt:
		op, err = c.bindDropTable(st)
	case *core.DescribeTableStmt:
		op, err = c.bindDescribeTable(st)
	case *core.InsertStmt:
		op, err = c.bindInsert(st)
	case *core.QueryStmt:
		op, err = c.bindQuery(st.Query)
	case *core.ShowFunctionsStmt:
		scope := operation.ScopeAll
		if st.User {
			scope = operation.ScopeUser
		}
		op = &operation.ShowFunctionsOperation{Scope: scope}
	case *core.ShowStmt:
		op, err = c.bindShow(st)
	default:
		err = c.fail(KindUnsupported, nil, fmt.Sprintf("Unsupported statement type %T.", stmt))
	}

	if err != nil {
		b.logger.Debug("bind failed", "statement", sql, "error", err)
		return nil, err
	}
	b.logger.Debug("bound statement", "kind", operation.Kind(op), "summary", op.Summary())
	return op, nil
}

// call holds the inputs of a single Bind.
type call struct {
	ctx     context.Context
	b       *Binder
	sql     string
	session catalog.Session
}

func (c *call) fail(kind ErrorKind, cause error, message string) *Error {
	return NewError(kind, c.sql, message, cause)
}

// catalogError classifies an error returned by the catalog resolver.
func (c *call) catalogError(err error) *Error {
	var idErr *catalog.IdentifierError
	if errors.As(err, &idErr) {
		return c.fail(KindValidation, err, idErr.Error())
	}
	return c.fail(KindResolution, err, err.Error())
}

func (c *call) resolve(name core.ObjectName) (catalog.Identifier, error) {
	id, err := catalog.Resolve(name, c.session)
	if err != nil {
		return catalog.Identifier{}, c.catalogError(err)
	}
	return id, nil
}

func (c *call) resolveDatabase(name core.ObjectName) (string, string, error) {
	cat, db, err := catalog.ResolveDatabase(name, c.session)
	if err != nil {
		return "", "", c.catalogError(err)
	}
	return cat, db, nil
}

// lookupTable resolves name and fetches the table, which must exist.
func (c *call) lookupTable(name core.ObjectName) (catalog.Identifier, *catalog.TableDefinition, error) {
	id, def, err := catalog.LookupTable(c.ctx, c.b.catalog, name, c.session)
	if err != nil {
		return catalog.Identifier{}, nil, c.catalogError(err)
	}
	return id, def, nil
}

func (c *call) bindUse(st *core.UseStmt) (operation.Operation, error) {
	cat, db, err := c.resolveDatabase(st.Name)
	if err != nil {
		return nil, err
	}
	return &operation.UseDatabaseOperation{Catalog: cat, Database: db}, nil
}

func (c *call) bindShow(st *core.ShowStmt) (operation.Operation, error) {
	switch st.Kind {
	case core.ShowCatalogs:
		return &operation.ShowCatalogsOperation{}, nil
	case core.ShowDatabases:
		return &operation.ShowDatabasesOperation{}, nil
	case core.ShowTables:
		return &operation.ShowTablesOperation{}, nil
	case core.ShowCurrentCatalog:
		return &operation.ShowCurrentCatalogOperation{}, nil
	case core.ShowCurrentDatabase:
		return &operation.ShowCurrentDatabaseOperation{}, nil
	}
	return nil, c.fail(KindUnsupported, nil, fmt.Sprintf("Unsupported SHOW statement %d.", st.Kind))
}

// properties converts a property list to a map. Keys are kept verbatim and
// later entries win.
func properties(props []core.Property) map[string]string {
	m := make(map[string]string, len(props))
	for _, p := range props {
		m[p.Key] = p.Value
	}
	return m
}
