package adapter

import (
	"context"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbind/internal/testutil"
	"github.com/leapstack-labs/sqlbind/pkg/catalog"
	"github.com/leapstack-labs/sqlbind/pkg/types"
)

func testDialect() *Dialect {
	return &Dialect{
		Name:          "test",
		Placeholder:   DollarPlaceholder,
		CatalogsQuery: "SELECT catalog_name FROM catalogs",
		SessionQuery:  "SELECT current_database(), current_schema()",
		NativeTypes: map[string]string{
			"character varying": "VARCHAR",
			"text":              "STRING",
			"integer":           "INT",
		},
	}
}

func newMockAdapter(t *testing.T) (*BaseSQLAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &BaseSQLAdapter{DB: db, Dialect: testDialect(), Logger: testutil.NewTestLogger(t)}, mock
}

func TestBaseSQLAdapter_Close(t *testing.T) {
	tests := []struct {
		name    string
		setupDB bool
	}{
		{name: "close with nil DB", setupDB: false},
		{name: "close with open DB", setupDB: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectClose()
				base.DB = db
			}

			assert.NoError(t, base.Close())
		})
	}
}

func TestBaseSQLAdapter_Exec(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		setupMock func(mock sqlmock.Sqlmock)
		sql       string
		errMsg    string
	}{
		{
			name:   "exec without connection",
			sql:    "SET search_path = public",
			errMsg: "database connection not established",
		},
		{
			name:    "exec success",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("SET search_path").WillReturnResult(sqlmock.NewResult(0, 0))
			},
			sql: "SET search_path = public",
		},
		{
			name:    "exec with error",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INVALID SQL").WillReturnError(assert.AnError)
			},
			sql:    "INVALID SQL",
			errMsg: "failed to execute SQL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &BaseSQLAdapter{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				defer func() { _ = db.Close() }()
				tt.setupMock(mock)
				base.DB = db
			}

			err := base.Exec(context.Background(), tt.sql)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBaseSQLAdapter_IsConnected(t *testing.T) {
	base := &BaseSQLAdapter{}
	assert.False(t, base.IsConnected())

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	base.DB = db
	assert.True(t, base.IsConnected())
}

func TestBaseSQLAdapter_ListCatalogs(t *testing.T) {
	base, mock := newMockAdapter(t)
	mock.ExpectQuery("SELECT catalog_name FROM catalogs").
		WillReturnRows(sqlmock.NewRows([]string{"catalog_name"}).AddRow("warehouse").AddRow("analytics"))

	got, err := base.ListCatalogs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"analytics", "warehouse"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBaseSQLAdapter_DatabaseExists(t *testing.T) {
	base, mock := newMockAdapter(t)
	rows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"schema_name"}).AddRow("public").AddRow("staging")
	}
	mock.ExpectQuery("information_schema.schemata").WithArgs("warehouse").WillReturnRows(rows())
	mock.ExpectQuery("information_schema.schemata").WithArgs("warehouse").WillReturnRows(rows())

	ok, err := base.DatabaseExists(context.Background(), "warehouse", "staging")
	require.NoError(t, err)
	assert.True(t, ok)

	def, err := base.GetDatabase(context.Background(), "warehouse", "missing")
	require.NoError(t, err)
	assert.Nil(t, def)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBaseSQLAdapter_ListTables(t *testing.T) {
	base, mock := newMockAdapter(t)
	mock.ExpectQuery("information_schema.tables").
		WithArgs("warehouse", "public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("orders").AddRow("users"))

	got, err := base.ListTables(context.Background(), "warehouse", "public")
	require.NoError(t, err)
	assert.Equal(t, []string{"orders", "users"}, got)
}

func TestBaseSQLAdapter_GetTable(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      *catalog.TableDefinition
		errMsg    string
	}{
		{
			name: "columns mapped",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("information_schema.columns").
					WithArgs("warehouse", "public", "users").
					WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable"}).
						AddRow("id", "integer", "NO").
						AddRow("name", "character varying", "YES").
						AddRow("payload", "jsonb", "YES"))
			},
			want: &catalog.TableDefinition{
				Columns: []catalog.Column{
					{Name: "id", Type: types.Int().NotNull()},
					{Name: "name", Type: types.String()},
					{Name: "payload", Type: types.String()},
				},
				Options: map[string]string{},
			},
		},
		{
			name: "missing table",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("information_schema.columns").
					WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable"}))
			},
		},
		{
			name: "query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("information_schema.columns").WillReturnError(assert.AnError)
			},
			errMsg: "failed to query column metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, mock := newMockAdapter(t)
			tt.setupMock(mock)

			got, err := base.GetTable(context.Background(), catalog.NewIdentifier("warehouse", "public", "users"))
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBaseSQLAdapter_DefaultSession(t *testing.T) {
	base, mock := newMockAdapter(t)
	mock.ExpectQuery("current_database").
		WillReturnRows(sqlmock.NewRows([]string{"current_database", "current_schema"}).AddRow("warehouse", "public"))

	s, err := base.DefaultSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, catalog.Session{Catalog: "warehouse", Database: "public"}, s)
}

func TestDialect_ConvertType(t *testing.T) {
	d := testDialect()

	got, err := d.ConvertType("INTEGER", false)
	require.NoError(t, err)
	assert.True(t, types.Int().NotNull().Equal(got))

	got, err = d.ConvertType("DECIMAL(10, 2)", true)
	require.NoError(t, err)
	assert.True(t, types.Decimal(10, 2).Equal(got))

	_, err = d.ConvertType("geometry", true)
	assert.Error(t, err)

	d.Rewrite = strings.ToUpper
	got, err = d.ConvertType("bigint", true)
	require.NoError(t, err)
	assert.True(t, types.BigInt().Equal(got))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "?", QuestionPlaceholder(3))
	assert.Equal(t, "$3", DollarPlaceholder(3))
}
