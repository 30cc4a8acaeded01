package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlbind/pkg/types"
)

func TestMemory_Defaults(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	ok, err := m.CatalogExists(ctx, "builtin")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.DatabaseExists(ctx, "builtin", "default")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.DatabaseExists(ctx, "cat1", "db1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	comment := "db1_comment"

	require.NoError(t, m.CreateCatalog(ctx, "cat1"))
	require.NoError(t, m.CreateDatabase(ctx, "cat1", "db1", DatabaseDefinition{Comment: &comment}))

	err := m.CreateDatabase(ctx, "cat1", "db1", DatabaseDefinition{})
	var exists *ExistsError
	require.ErrorAs(t, err, &exists)

	err = m.CreateDatabase(ctx, "nope", "db1", DatabaseDefinition{})
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)

	db, err := m.GetDatabase(ctx, "cat1", "db1")
	require.NoError(t, err)
	require.NotNil(t, db)
	assert.Equal(t, "db1_comment", *db.Comment)
	assert.Empty(t, db.Options)

	id := NewIdentifier("cat1", "db1", "tb1")
	require.NoError(t, m.CreateTable(ctx, id, TableDefinition{
		Columns: []Column{{Name: "a", Type: types.BigInt()}},
		Options: map[string]string{"k": "v"},
	}))

	tbl, err := m.GetTable(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, tbl)

	// Returned definitions are copies.
	tbl.Options["k"] = "changed"
	again, err := m.GetTable(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "v", again.Options["k"])

	missing, err := m.GetTable(ctx, NewIdentifier("cat1", "db1", "nope"))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemory_List(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.CreateCatalog(ctx, "cat1"))
	require.NoError(t, m.CreateDatabase(ctx, "cat1", "b", DatabaseDefinition{}))
	require.NoError(t, m.CreateDatabase(ctx, "cat1", "a", DatabaseDefinition{}))
	require.NoError(t, m.CreateTable(ctx, NewIdentifier("cat1", "a", "t2"), TableDefinition{}))
	require.NoError(t, m.CreateTable(ctx, NewIdentifier("cat1", "a", "t1"), TableDefinition{}))

	catalogs, err := m.ListCatalogs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"builtin", "cat1"}, catalogs)

	dbs, err := m.ListDatabases(ctx, "cat1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, dbs)

	tables, err := m.ListTables(ctx, "cat1", "a")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, tables)

	_, err = m.ListTables(ctx, "cat1", "zzz")
	assert.Error(t, err)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = m.CreateCatalog(ctx, "cat1")
		}()
		go func() {
			defer wg.Done()
			_, _ = m.CatalogExists(ctx, "cat1")
		}()
	}
	wg.Wait()

	ok, err := m.CatalogExists(ctx, "cat1")
	require.NoError(t, err)
	assert.True(t, ok)
}
