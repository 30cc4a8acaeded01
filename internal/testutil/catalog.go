package testutil

import (
	"context"
	"testing"

	"github.com/leapstack-labs/sqlbind/pkg/catalog"
	"github.com/leapstack-labs/sqlbind/pkg/types"
)

// NewCatalog returns an in-memory catalog seeded with the fixtures most
// binder tests use:
//
//	builtin.default.t1, builtin.default.t2  (a BIGINT, b STRING, c INT, d STRING)
//	cat1.db1                                comment 'db1_comment'
//	cat1.db1.tb1                            (a STRING)
func NewCatalog(t testing.TB) *catalog.Memory {
	t.Helper()
	ctx := context.Background()
	m := catalog.NewMemory()

	abcd := catalog.TableDefinition{
		Columns: []catalog.Column{
			{Name: "a", Type: types.BigInt()},
			{Name: "b", Type: types.String()},
			{Name: "c", Type: types.Int()},
			{Name: "d", Type: types.String()},
		},
		Options: map[string]string{"connector": "COLLECTION"},
	}
	comment := "db1_comment"

	steps := []error{
		m.CreateTable(ctx, catalog.NewIdentifier("builtin", "default", "t1"), abcd),
		m.CreateTable(ctx, catalog.NewIdentifier("builtin", "default", "t2"), abcd),
		m.CreateCatalog(ctx, "cat1"),
		m.CreateDatabase(ctx, "cat1", "db1", catalog.DatabaseDefinition{Comment: &comment}),
		m.CreateTable(ctx, catalog.NewIdentifier("cat1", "db1", "tb1"), catalog.TableDefinition{
			Columns: []catalog.Column{{Name: "a", Type: types.String()}},
			Comment: "tb1",
		}),
	}
	for _, err := range steps {
		if err != nil {
			t.Fatalf("seed catalog: %v", err)
		}
	}
	return m
}
