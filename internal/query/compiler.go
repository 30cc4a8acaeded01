// Package query compiles the SELECT text of queries and INSERT statements.
//
// The compiler parses the text with the TiDB (MySQL dialect) parser,
// rejects anything that is not a query, and resolves every table the query
// reads against the session. Names bound by WITH clauses are not sources.
//
// MySQL names have at most two parts, so parsed sources are resolved in the
// session catalog. Text the MySQL grammar cannot read, such as a
// catalog.database.table source, is passed through opaquely with no sources.
package query

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	tiparser "github.com/pingcap/tidb/parser"
	"github.com/pingcap/tidb/parser/ast"

	// value expression driver required by the parser.
	_ "github.com/pingcap/tidb/parser/test_driver"

	"github.com/leapstack-labs/sqlbind/pkg/catalog"
	"github.com/leapstack-labs/sqlbind/pkg/operation"
)

// Compiler implements binder.QueryCompiler.
type Compiler struct {
	parsers sync.Pool
	logger  *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the compiler's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Compiler) { c.logger = logger }
}

// New creates a Compiler. It is safe for concurrent use.
func New(opts ...Option) *Compiler {
	c := &Compiler{logger: slog.New(slog.DiscardHandler)}
	c.parsers.New = func() any { return tiparser.New() }
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InvalidQueryError reports query text that parses to something other than
// a query.
type InvalidQueryError struct {
	Message string
	Err     error
}

func (e *InvalidQueryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *InvalidQueryError) Unwrap() error { return e.Err }

// Compile parses sql and lists the tables it reads in order of first
// appearance.
func (c *Compiler) Compile(_ context.Context, sql string, s catalog.Session) (*operation.QueryOperation, error) {
	p := c.parsers.Get().(*tiparser.Parser)
	defer c.parsers.Put(p)

	stmt, err := p.ParseOneStmt(sql, "", "")
	if err != nil {
		c.logger.Debug("query outside the MySQL grammar, passing through", "error", err)
		return &operation.QueryOperation{SQL: sql}, nil
	}
	switch stmt.(type) {
	case *ast.SelectStmt, *ast.SetOprStmt:
	default:
		return nil, &InvalidQueryError{Message: fmt.Sprintf("expected a query, got %T", stmt)}
	}

	v := &sourceCollector{ctes: map[string]bool{}}
	stmt.Accept(v)

	q := &operation.QueryOperation{SQL: sql}
	seen := make(map[catalog.Identifier]bool)
	for _, parts := range v.tables {
		id, err := catalog.Resolve(parts, s)
		if err != nil {
			return nil, err
		}
		if !seen[id] {
			seen[id] = true
			q.Sources = append(q.Sources, id)
		}
	}
	c.logger.Debug("compiled query", "sources", len(q.Sources))
	return q, nil
}

// sourceCollector gathers table references that are not CTE names.
type sourceCollector struct {
	ctes   map[string]bool
	tables [][]string
}

func (v *sourceCollector) Enter(n ast.Node) (ast.Node, bool) {
	switch node := n.(type) {
	case *ast.WithClause:
		for _, cte := range node.CTEs {
			v.ctes[cte.Name.L] = true
		}
	case *ast.TableName:
		if node.Schema.O == "" && v.ctes[node.Name.L] {
			return n, true
		}
		if node.Schema.O != "" {
			v.tables = append(v.tables, []string{node.Schema.O, node.Name.O})
		} else {
			v.tables = append(v.tables, []string{node.Name.O})
		}
	}
	return n, false
}

func (v *sourceCollector) Leave(n ast.Node) (ast.Node, bool) {
	return n, true
}
