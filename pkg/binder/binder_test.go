package binder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbind/internal/testutil"
	"github.com/leapstack-labs/sqlbind/pkg/catalog"
	"github.com/leapstack-labs/sqlbind/pkg/operation"
	"github.com/leapstack-labs/sqlbind/pkg/types"
)

func newTestBinder(t *testing.T, opts ...Option) *Binder {
	t.Helper()
	opts = append([]Option{WithLogger(testutil.NewTestLogger(t))}, opts...)
	return New(testutil.NewCatalog(t), opts...)
}

func bind(t *testing.T, b *Binder, sql string) (operation.Operation, error) {
	t.Helper()
	return b.BindSQL(context.Background(), sql, catalog.DefaultSession())
}

func mustBind(t *testing.T, b *Binder, sql string) operation.Operation {
	t.Helper()
	op, err := bind(t, b, sql)
	require.NoError(t, err, sql)
	return op
}

func TestBind_UseCatalog(t *testing.T) {
	op := mustBind(t, newTestBinder(t), "USE CATALOG cat1")
	assert.Equal(t, &operation.UseCatalogOperation{Catalog: "cat1"}, op)
}

func TestBind_UseDatabase(t *testing.T) {
	b := newTestBinder(t)

	tests := []struct {
		sql      string
		catalog  string
		database string
	}{
		{"USE db1", "builtin", "db1"},
		{"USE cat1.db1", "cat1", "db1"},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			op := mustBind(t, b, tt.sql)
			assert.Equal(t, &operation.UseDatabaseOperation{Catalog: tt.catalog, Database: tt.database}, op)
		})
	}
}

func TestBind_UseOverQualified(t *testing.T) {
	_, err := bind(t, newTestBinder(t), "USE cat1.db1.tbl1")
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	var be *Error
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "USE cat1.db1.tbl1", be.Statement)
	var idErr *catalog.IdentifierError
	assert.ErrorAs(t, err, &idErr)
}

func TestBind_CreateDatabase(t *testing.T) {
	b := newTestBinder(t)
	comment := "db1_comment"

	tests := []struct {
		sql            string
		catalog        string
		comment        *string
		ignoreIfExists bool
		options        map[string]string
	}{
		{"create database db1", "builtin", nil, false, map[string]string{}},
		{"create database if not exists cat1.db1", "cat1", nil, true, map[string]string{}},
		{"create database cat1.db1 comment 'db1_comment'", "cat1", &comment, false, map[string]string{}},
		{
			"create database cat1.db1 comment 'db1_comment' with ('k1' = 'v1', 'K2' = 'V2')",
			"cat1", &comment, false, map[string]string{"k1": "v1", "K2": "V2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			op := mustBind(t, b, tt.sql)
			create, ok := op.(*operation.CreateDatabaseOperation)
			require.True(t, ok, "got %T", op)
			assert.Equal(t, tt.catalog, create.Catalog)
			assert.Equal(t, "db1", create.Database)
			assert.Equal(t, tt.comment, create.Definition.Comment)
			assert.Equal(t, tt.ignoreIfExists, create.IgnoreIfExists)
			assert.Equal(t, tt.options, create.Definition.Options)
		})
	}
}

func TestBind_AlterDatabase(t *testing.T) {
	b := newTestBinder(t)

	op := mustBind(t, b, "alter database cat1.db1 set ('k1'='v1', 'K2'='V2')")
	alter, ok := op.(*operation.AlterDatabaseOperation)
	require.True(t, ok, "got %T", op)
	assert.Equal(t, "cat1", alter.Catalog)
	assert.Equal(t, "db1", alter.Database)
	require.NotNil(t, alter.Definition.Comment)
	assert.Equal(t, "db1_comment", *alter.Definition.Comment)
	assert.Equal(t, map[string]string{"k1": "v1", "K2": "V2"}, alter.Definition.Options)

	tests := []struct {
		sql string
		msg string
	}{
		{"alter database nocat.db1 set ('k' = 'v')", "validation failed: Catalog 'nocat' does not exist."},
		{"alter database cat1.nodb set ('k' = 'v')", "validation failed: Database 'nodb' does not exist in catalog 'cat1'."},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			_, err := bind(t, b, tt.sql)
			require.Error(t, err)
			assert.EqualError(t, err, tt.msg)
		})
	}
}

func TestBind_DropDatabase(t *testing.T) {
	b := newTestBinder(t)

	tests := []struct {
		sql      string
		catalog  string
		ifExists bool
		cascade  bool
	}{
		{"drop database db1", "builtin", false, false},
		{"drop database if exists db1", "builtin", true, false},
		{"drop database if exists cat1.db1 CASCADE", "cat1", true, true},
		{"drop database if exists cat1.db1 RESTRICT", "cat1", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			op := mustBind(t, b, tt.sql)
			assert.Equal(t, &operation.DropDatabaseOperation{
				Catalog:  tt.catalog,
				Database: "db1",
				IfExists: tt.ifExists,
				Cascade:  tt.cascade,
			}, op)
		})
	}
}

func TestBind_ShowFunctions(t *testing.T) {
	b := newTestBinder(t)

	tests := []struct {
		sql   string
		scope operation.FunctionScope
	}{
		{"SHOW FUNCTIONS", operation.ScopeAll},
		{"SHOW USER FUNCTIONS", operation.ScopeUser},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			op := mustBind(t, b, tt.sql)
			show, ok := op.(*operation.ShowFunctionsOperation)
			require.True(t, ok, "got %T", op)
			assert.Equal(t, tt.scope, show.Scope)
			assert.Equal(t, tt.sql, show.Summary())
		})
	}
}

func TestBind_Show(t *testing.T) {
	b := newTestBinder(t)

	tests := []struct {
		sql  string
		want operation.Operation
	}{
		{"SHOW CATALOGS", &operation.ShowCatalogsOperation{}},
		{"SHOW DATABASES", &operation.ShowDatabasesOperation{}},
		{"SHOW TABLES", &operation.ShowTablesOperation{}},
		{"SHOW CURRENT CATALOG", &operation.ShowCurrentCatalogOperation{}},
		{"SHOW CURRENT DATABASE", &operation.ShowCurrentDatabaseOperation{}},
	}

	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			assert.Equal(t, tt.want, mustBind(t, b, tt.sql))
		})
	}
}

func TestBind_Insert(t *testing.T) {
	b := newTestBinder(t)

	op := mustBind(t, b, "insert into t1 partition(a=1) select b, c, d from t2")
	insert, ok := op.(*operation.InsertOperation)
	require.True(t, ok, "got %T", op)
	assert.Equal(t, catalog.NewIdentifier("builtin", "default", "t1"), insert.Target)
	assert.Equal(t, map[string]string{"a": "1"}, insert.StaticPartitions)
	assert.False(t, insert.Overwrite)
	assert.Equal(t, "select b, c, d from t2", insert.Query.SQL)

	op = mustBind(t, b, "INSERT OVERWRITE t1 SELECT * FROM t2")
	insert = op.(*operation.InsertOperation)
	assert.True(t, insert.Overwrite)
	assert.Empty(t, insert.StaticPartitions)
}

func TestBind_InsertErrors(t *testing.T) {
	b := newTestBinder(t)

	tests := []struct {
		name string
		sql  string
		kind ErrorKind
		msg  string
	}{
		{"missing target", "insert into missing select 1", KindResolution, "Table 'builtin.default.missing' does not exist"},
		{"unknown partition column", "insert into t1 partition(x=1) select 1", KindValidation, "Static partition column 'x' is not defined in table builtin.default.t1."},
		{"duplicate partition column", "insert into t1 partition(a=1, a=2) select 1", KindValidation, "Partition column 'a' is declared more than once."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := bind(t, b, tt.sql)
			require.Error(t, err)
			var be *Error
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tt.kind, be.Kind)
			assert.Equal(t, tt.msg, be.Message)
			assert.Equal(t, tt.sql, be.Statement)
		})
	}
}

func TestBind_AlterTable(t *testing.T) {
	b := newTestBinder(t)
	session := catalog.Session{Catalog: "cat1", Database: "db1"}
	ctx := context.Background()

	source := catalog.NewIdentifier("cat1", "db1", "tb1")
	target := catalog.NewIdentifier("cat1", "db1", "tb2")

	for _, sql := range []string{
		"alter table cat1.db1.tb1 rename to tb2",
		"alter table db1.tb1 rename to tb2",
		"alter table tb1 rename to cat1.db1.tb2",
	} {
		t.Run(sql, func(t *testing.T) {
			op, err := b.BindSQL(ctx, sql, session)
			require.NoError(t, err)
			assert.Equal(t, &operation.AlterTableRenameOperation{Source: source, Target: target}, op)
		})
	}

	op, err := b.BindSQL(ctx, "alter table cat1.db1.tb1 set ('k1' = 'v1', 'K2' = 'V2')", session)
	require.NoError(t, err)
	alter, ok := op.(*operation.AlterTableOptionsOperation)
	require.True(t, ok, "got %T", op)
	assert.Equal(t, source, alter.Identifier)
	assert.Equal(t, map[string]string{"k1": "v1", "K2": "V2"}, alter.Definition.Options)
	assert.Equal(t, []string{"a"}, alter.Definition.ColumnNames())
	assert.Equal(t, "tb1", alter.Definition.Comment)

	_, err = b.BindSQL(ctx, "alter table nope rename to tb2", session)
	assert.True(t, IsResolution(err))
}

func TestBind_DropAndDescribeTable(t *testing.T) {
	b := newTestBinder(t)

	op := mustBind(t, b, "DROP TABLE IF EXISTS cat1.db1.tb1")
	assert.Equal(t, &operation.DropTableOperation{Identifier: catalog.NewIdentifier("cat1", "db1", "tb1"), IfExists: true}, op)

	op = mustBind(t, b, "DESCRIBE t1")
	assert.Equal(t, &operation.DescribeTableOperation{Identifier: catalog.NewIdentifier("builtin", "default", "t1")}, op)

	_, err := bind(t, b, "DESC missing")
	assert.True(t, IsResolution(err))
}

func TestBind_SyntaxError(t *testing.T) {
	_, err := bind(t, newTestBinder(t), "CREATE TABLE (")
	require.Error(t, err)
	assert.True(t, IsMalformed(err))
	assert.Contains(t, err.Error(), "parse error at line 1")
}

func TestErrorKind(t *testing.T) {
	err := NewError(KindUnsupported, "CREATE TABLE t (a BYTES)", "Type is not supported: VARBINARY", nil)
	assert.Equal(t, "unsupported feature: Type is not supported: VARBINARY", err.Error())
	assert.True(t, IsUnsupported(err))
	assert.False(t, IsValidation(err))

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindUnsupported, kind)

	_, ok = KindOf(assert.AnError)
	assert.False(t, ok)
}

func assertType(t *testing.T, want, got types.DataType) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %s, got %s", want, got)
}
