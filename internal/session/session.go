// Package session runs statements for an interactive client.
//
// A Session first offers each statement to the command recognizer chain and
// otherwise parses and binds it. USE, SET and RESET update session state;
// SHOW and DESCRIBE are answered from the catalog. Every other operation is
// returned as bound, without being executed.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/leapstack-labs/sqlbind/pkg/binder"
	"github.com/leapstack-labs/sqlbind/pkg/catalog"
	"github.com/leapstack-labs/sqlbind/pkg/command"
	"github.com/leapstack-labs/sqlbind/pkg/operation"
)

// Result is the outcome of one statement. Columns and Rows are set for
// statements that produce a listing.
type Result struct {
	Operation operation.Operation
	Columns   []string
	Rows      [][]string
}

// Session holds the current catalog, database and properties.
type Session struct {
	binder  *binder.Binder
	catalog catalog.Catalog
	chain   command.Chain
	logger  *slog.Logger

	mu      sync.Mutex
	current catalog.Session
	props   map[string]string
}

// Option configures a Session.
type Option func(*Session)

// WithChain replaces the default command recognizer chain.
func WithChain(c command.Chain) Option {
	return func(s *Session) { s.chain = c }
}

// WithLogger sets the session's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithCurrent sets the initial catalog and database.
func WithCurrent(cur catalog.Session) Option {
	return func(s *Session) { s.current = cur }
}

// New creates a session binding against cat with b. The session starts in
// builtin.default unless WithCurrent says otherwise.
func New(cat catalog.Catalog, b *binder.Binder, opts ...Option) *Session {
	s := &Session{
		binder:  b,
		catalog: cat,
		chain:   command.DefaultChain,
		logger:  slog.New(slog.DiscardHandler),
		current: catalog.DefaultSession(),
		props:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns the current catalog and database.
func (s *Session) Current() catalog.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Properties returns a copy of the properties set with SET.
func (s *Session) Properties() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.props)
}

// Execute runs one statement. Statements are applied in call order.
func (s *Session) Execute(ctx context.Context, stmt string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	op, ok, err := s.chain.Recognize(stmt)
	if err != nil {
		return nil, err
	}
	if !ok {
		op, err = s.binder.BindSQL(ctx, strings.TrimSpace(stmt), s.current)
		if err != nil {
			return nil, err
		}
	}

	res, err := s.apply(ctx, stmt, op)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("executed statement", "kind", operation.Kind(op), "catalog", s.current.Catalog, "database", s.current.Database)
	return res, nil
}

// apply updates session state for op. Callers hold s.mu.
func (s *Session) apply(ctx context.Context, stmt string, op operation.Operation) (*Result, error) {
	res := &Result{Operation: op}

	switch o := op.(type) {
	case *operation.UseCatalogOperation:
		ok, err := s.catalog.CatalogExists(ctx, o.Catalog)
		if err != nil {
			return nil, binder.NewError(binder.KindResolution, stmt, err.Error(), err)
		}
		if !ok {
			return nil, binder.NewError(binder.KindValidation, stmt, fmt.Sprintf(binder.MsgCatalogNotExist, o.Catalog), nil)
		}
		s.current = catalog.Session{Catalog: o.Catalog, Database: catalog.DefaultDatabase}

	case *operation.UseDatabaseOperation:
		ok, err := s.catalog.DatabaseExists(ctx, o.Catalog, o.Database)
		if err != nil {
			return nil, binder.NewError(binder.KindResolution, stmt, err.Error(), err)
		}
		if !ok {
			return nil, binder.NewError(binder.KindValidation, stmt, fmt.Sprintf(binder.MsgDatabaseNotExist, o.Database, o.Catalog), nil)
		}
		s.current = catalog.Session{Catalog: o.Catalog, Database: o.Database}

	case *operation.SetOperation:
		if o.Key == "" {
			res.Columns = []string{"key", "value"}
			for _, k := range slices.Sorted(maps.Keys(s.props)) {
				res.Rows = append(res.Rows, []string{k, s.props[k]})
			}
			break
		}
		s.props[o.Key] = o.Value

	case *operation.ResetOperation:
		clear(s.props)

	case *operation.ShowCurrentCatalogOperation:
		res.Columns = []string{"current catalog name"}
		res.Rows = [][]string{{s.current.Catalog}}

	case *operation.ShowCurrentDatabaseOperation:
		res.Columns = []string{"current database name"}
		res.Rows = [][]string{{s.current.Database}}

	case *operation.ShowCatalogsOperation, *operation.ShowDatabasesOperation, *operation.ShowTablesOperation:
		if err := s.list(ctx, stmt, op, res); err != nil {
			return nil, err
		}

	case *operation.DescribeTableOperation:
		if err := s.describe(ctx, stmt, o.Identifier, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *Session) list(ctx context.Context, stmt string, op operation.Operation, res *Result) error {
	lister, ok := s.catalog.(catalog.Lister)
	if !ok {
		return binder.NewError(binder.KindUnsupported, stmt, "The catalog cannot list its contents.", nil)
	}

	var (
		names []string
		err   error
	)
	switch op.(type) {
	case *operation.ShowCatalogsOperation:
		res.Columns = []string{"catalog name"}
		names, err = lister.ListCatalogs(ctx)
	case *operation.ShowDatabasesOperation:
		res.Columns = []string{"database name"}
		names, err = lister.ListDatabases(ctx, s.current.Catalog)
	case *operation.ShowTablesOperation:
		res.Columns = []string{"table name"}
		names, err = lister.ListTables(ctx, s.current.Catalog, s.current.Database)
	}
	if err != nil {
		return binder.NewError(binder.KindResolution, stmt, err.Error(), err)
	}
	for _, n := range names {
		res.Rows = append(res.Rows, []string{n})
	}
	return nil
}

func (s *Session) describe(ctx context.Context, stmt string, id catalog.Identifier, res *Result) error {
	def, err := s.catalog.GetTable(ctx, id)
	if err != nil {
		return binder.NewError(binder.KindResolution, stmt, err.Error(), err)
	}
	if def == nil {
		nf := &catalog.NotFoundError{Kind: "Table", Name: id.String()}
		return binder.NewError(binder.KindResolution, stmt, nf.Error(), nf)
	}

	res.Columns = []string{"name", "type", "null", "key", "extras", "comment"}
	for _, c := range def.Columns {
		key := ""
		if slices.Contains(def.PrimaryKey, c.Name) {
			key = "PRI(" + strings.Join(def.PrimaryKey, ", ") + ")"
		}
		extras := ""
		if c.IsComputed() {
			extras = "AS " + c.Expr
		}
		res.Rows = append(res.Rows, []string{
			c.Name,
			c.Type.AsNullable().String(),
			fmt.Sprint(c.Type.Nullable),
			key,
			extras,
			c.Comment,
		})
	}
	return nil
}
