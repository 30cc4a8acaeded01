package duckdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbind/internal/testutil"
	"github.com/leapstack-labs/sqlbind/pkg/adapter"
	"github.com/leapstack-labs/sqlbind/pkg/catalog"
	"github.com/leapstack-labs/sqlbind/pkg/types"
)

func connect(t *testing.T, cfg adapter.Config) *Adapter {
	t.Helper()
	adp := New(testutil.NewTestLogger(t))
	require.NoError(t, adp.Connect(context.Background(), cfg))
	t.Cleanup(func() { _ = adp.Close() })
	return adp
}

func TestAdapter_Connect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "warehouse.duckdb")
	adp := connect(t, adapter.Config{Path: path})
	assert.True(t, adp.IsConnected())

	_, err := os.Stat(path)
	assert.NoError(t, err, "database file was not created")

	s, err := adp.DefaultSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, catalog.Session{Catalog: "warehouse", Database: "main"}, s)
}

func TestAdapter_ConnectInvalidParams(t *testing.T) {
	adp := New(nil)
	err := adp.Connect(context.Background(), adapter.Config{Params: map[string]any{"bogus": true}})
	require.Error(t, err)
	assert.False(t, adp.IsConnected())
}

func TestAdapter_NotConnected(t *testing.T) {
	adp := New(nil)
	ctx := context.Background()

	assert.Error(t, adp.Exec(ctx, "SELECT 1"))
	_, err := adp.GetTable(ctx, catalog.NewIdentifier("memory", "main", "t"))
	assert.Error(t, err)
}

func TestAdapter_Catalog(t *testing.T) {
	ctx := context.Background()
	adp := connect(t, adapter.Config{
		Params: map[string]any{"settings": map[string]any{"threads": 1}},
	})

	require.NoError(t, adp.Exec(ctx, "CREATE SCHEMA sales"))
	require.NoError(t, adp.Exec(ctx, `CREATE TABLE sales.orders (
		id BIGINT NOT NULL,
		amount DECIMAL(10, 2),
		tags VARCHAR[],
		placed_at TIMESTAMP
	)`))

	catalogs, err := adp.ListCatalogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"memory"}, catalogs)

	ok, err := adp.CatalogExists(ctx, "memory")
	require.NoError(t, err)
	assert.True(t, ok)

	dbs, err := adp.ListDatabases(ctx, "memory")
	require.NoError(t, err)
	assert.Contains(t, dbs, "main")
	assert.Contains(t, dbs, "sales")

	tables, err := adp.ListTables(ctx, "memory", "sales")
	require.NoError(t, err)
	assert.Equal(t, []string{"orders"}, tables)

	def, err := adp.GetTable(ctx, catalog.NewIdentifier("memory", "sales", "orders"))
	require.NoError(t, err)
	require.NotNil(t, def)
	require.Len(t, def.Columns, 4)
	assert.True(t, types.BigInt().NotNull().Equal(def.Columns[0].Type))
	assert.True(t, types.Decimal(10, 2).Equal(def.Columns[1].Type))
	assert.True(t, types.Array(types.String()).Equal(def.Columns[2].Type), def.Columns[2].Type.String())
	assert.Equal(t, types.KindTimestamp, def.Columns[3].Type.Kind)

	missing, err := adp.GetTable(ctx, catalog.NewIdentifier("memory", "sales", "refunds"))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAdapter_Registered(t *testing.T) {
	assert.True(t, adapter.IsRegistered("duckdb"))
	adp, err := adapter.NewAdapter(adapter.Config{Type: "duckdb"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &Adapter{}, adp)
}
